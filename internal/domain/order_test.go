package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func validCart(t *testing.T) *Cart {
	t.Helper()
	cart, err := NewCart(uuid.New())
	if err != nil {
		t.Fatalf("NewCart returned error: %v", err)
	}
	cart.Items = []CartItem{
		{ID: uuid.New(), Product: uuid.New(), Quantity: 2, Price: 100},
	}
	cart.RecalcTotal()
	return cart
}

func TestNewOrderSnapshotsCart(t *testing.T) {
	cart := validCart(t)

	order, err := NewOrder(cart, 10, 5, ShippingAddress{City: "Cairo"}, PaymentMethodCash)
	if err != nil {
		t.Fatalf("NewOrder returned error: %v", err)
	}

	if order.User != cart.User {
		t.Errorf("order user = %v, want %v", order.User, cart.User)
	}
	if order.TotalOrderPrice != 215 {
		t.Errorf("total = %v, want 215", order.TotalOrderPrice)
	}
	if len(order.Items) != 1 {
		t.Fatalf("order has %d items, want 1", len(order.Items))
	}

	// Items are copied; later cart mutation must not leak into the order.
	cart.Items[0].Quantity = 99
	if order.Items[0].Quantity != 2 {
		t.Error("order item mutated through the cart")
	}
}

func TestNewOrderUsesDiscountedTotal(t *testing.T) {
	cart := validCart(t)
	cart.ApplyDiscount(50)

	order, err := NewOrder(cart, 0, 0, ShippingAddress{}, PaymentMethodCash)
	if err != nil {
		t.Fatalf("NewOrder returned error: %v", err)
	}
	if order.TotalOrderPrice != 100 {
		t.Errorf("total = %v, want 100 (discounted)", order.TotalOrderPrice)
	}
}

func TestNewOrderRejectsBadInput(t *testing.T) {
	cart := validCart(t)

	if _, err := NewOrder(nil, 0, 0, ShippingAddress{}, PaymentMethodCash); err == nil {
		t.Error("accepted a nil cart")
	}

	empty, _ := NewCart(uuid.New())
	if _, err := NewOrder(empty, 0, 0, ShippingAddress{}, PaymentMethodCash); !errors.Is(err, ErrValidation) {
		t.Errorf("empty cart error = %v, want ErrValidation", err)
	}

	if _, err := NewOrder(cart, 0, 0, ShippingAddress{}, "bitcoin"); !errors.Is(err, ErrInvalidPaymentMethod) {
		t.Errorf("bad payment method error = %v, want ErrInvalidPaymentMethod", err)
	}
}

func TestOrderMarkPaidIsIdempotent(t *testing.T) {
	cart := validCart(t)
	order, err := NewOrder(cart, 0, 0, ShippingAddress{}, PaymentMethodCash)
	if err != nil {
		t.Fatalf("NewOrder returned error: %v", err)
	}

	first := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if !order.MarkPaid(first) {
		t.Fatal("first MarkPaid reported no transition")
	}
	if order.PaidAt == nil || !order.PaidAt.Equal(first) {
		t.Errorf("paidAt = %v, want %v", order.PaidAt, first)
	}

	// A replayed confirmation changes nothing.
	if order.MarkPaid(first.Add(time.Hour)) {
		t.Error("second MarkPaid reported a transition")
	}
	if !order.PaidAt.Equal(first) {
		t.Errorf("paidAt moved to %v on replay", order.PaidAt)
	}
}

func TestOrderMarkDeliveredRequiresPayment(t *testing.T) {
	cart := validCart(t)
	order, err := NewOrder(cart, 0, 0, ShippingAddress{}, PaymentMethodCash)
	if err != nil {
		t.Fatalf("NewOrder returned error: %v", err)
	}

	now := time.Now().UTC()
	if err := order.MarkDelivered(now); !errors.Is(err, ErrValidation) {
		t.Errorf("delivery before payment error = %v, want ErrValidation", err)
	}

	order.MarkPaid(now)
	if err := order.MarkDelivered(now); err != nil {
		t.Errorf("delivery after payment failed: %v", err)
	}
	if !order.IsDelivered {
		t.Error("order not marked delivered")
	}
}

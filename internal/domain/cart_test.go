package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewCart(t *testing.T) {
	userID := uuid.New()

	cart, err := NewCart(userID)
	if err != nil {
		t.Fatalf("NewCart returned error: %v", err)
	}
	if cart.User != userID {
		t.Errorf("cart user = %v, want %v", cart.User, userID)
	}
	if len(cart.Items) != 0 {
		t.Errorf("new cart has %d items, want 0", len(cart.Items))
	}

	if _, err := NewCart(uuid.Nil); err == nil {
		t.Error("NewCart accepted a nil user")
	}
}

func TestCartRecalcTotal(t *testing.T) {
	cart := &Cart{
		Items: []CartItem{
			{ID: uuid.New(), Product: uuid.New(), Quantity: 2, Price: 10},
			{ID: uuid.New(), Product: uuid.New(), Quantity: 1, Price: 5.5},
		},
	}

	cart.RecalcTotal()
	if cart.TotalCartPrice != 25.5 {
		t.Errorf("total = %v, want 25.5", cart.TotalCartPrice)
	}
}

func TestCartRecalcTotalClearsDiscount(t *testing.T) {
	cart := &Cart{
		Items: []CartItem{{ID: uuid.New(), Product: uuid.New(), Quantity: 1, Price: 100}},
	}
	cart.RecalcTotal()
	cart.ApplyDiscount(10)

	if cart.TotalPriceAfterDiscount == nil || *cart.TotalPriceAfterDiscount != 90 {
		t.Fatalf("discounted total = %v, want 90", cart.TotalPriceAfterDiscount)
	}

	// Any line mutation invalidates the discount.
	cart.Items[0].Quantity = 2
	cart.RecalcTotal()

	if cart.TotalCartPrice != 200 {
		t.Errorf("total = %v, want 200", cart.TotalCartPrice)
	}
	if cart.TotalPriceAfterDiscount != nil {
		t.Error("discounted total survived a recalculation")
	}
}

func TestCartApplyDiscountKeepsPlainTotal(t *testing.T) {
	cart := &Cart{
		Items: []CartItem{{ID: uuid.New(), Product: uuid.New(), Quantity: 1, Price: 50}},
	}
	cart.RecalcTotal()
	cart.ApplyDiscount(20)

	if cart.TotalCartPrice != 50 {
		t.Errorf("plain total mutated to %v", cart.TotalCartPrice)
	}
	if cart.TotalPriceAfterDiscount == nil || *cart.TotalPriceAfterDiscount != 40 {
		t.Errorf("discounted total = %v, want 40", cart.TotalPriceAfterDiscount)
	}
}

func TestCartFindAndRemove(t *testing.T) {
	productID := uuid.New()
	lineID := uuid.New()
	cart := &Cart{
		Items: []CartItem{
			{ID: lineID, Product: productID, Color: "red", Quantity: 1, Price: 10},
		},
	}

	if cart.FindItem(productID, "red") == nil {
		t.Error("FindItem missed the (product, color) line")
	}
	if cart.FindItem(productID, "blue") != nil {
		t.Error("FindItem matched a different color")
	}
	if cart.FindItemByID(lineID) == nil {
		t.Error("FindItemByID missed the line")
	}

	if !cart.RemoveItemByID(lineID) {
		t.Error("RemoveItemByID failed to remove an existing line")
	}
	if cart.RemoveItemByID(lineID) {
		t.Error("RemoveItemByID removed an already-removed line")
	}
	if len(cart.Items) != 0 {
		t.Errorf("cart has %d items after removal, want 0", len(cart.Items))
	}
}

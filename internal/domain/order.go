package domain

import (
	"time"

	"github.com/google/uuid"
)

// Payment methods accepted at checkout.
const (
	PaymentMethodCard = "card"
	PaymentMethodCash = "cash"
)

// ShippingAddress is the free-text destination block on an order.
type ShippingAddress struct {
	Details    string `json:"details,omitempty"`
	Phone      string `json:"phone,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
}

// Order is a checkout-time snapshot of a cart. Items are copied, not
// referenced, so later cart or product mutation never changes a placed
// order.
type Order struct {
	ID              uuid.UUID       `json:"id"`
	User            uuid.UUID       `json:"user"`
	Items           []CartItem      `json:"cartItems"`
	TaxPrice        float64         `json:"taxPrice"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	ShippingPrice   float64         `json:"shippingPrice"`
	TotalOrderPrice float64         `json:"totalOrderPrice"`
	PaymentMethod   string          `json:"paymentMethodType"`
	IsPaid          bool            `json:"isPaid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	IsDelivered     bool            `json:"isDelivered"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// NewOrder snapshots the cart into an order. The cart total used is the
// discounted total when a coupon was applied, the plain total otherwise.
func NewOrder(
	cart *Cart,
	taxPrice, shippingPrice float64,
	address ShippingAddress,
	paymentMethod string,
) (*Order, error) {
	if cart == nil || cart.User == uuid.Nil {
		return nil, ErrMissingReference
	}
	if len(cart.Items) == 0 {
		return nil, ErrValidation
	}
	if paymentMethod != PaymentMethodCard && paymentMethod != PaymentMethodCash {
		return nil, ErrInvalidPaymentMethod
	}

	cartTotal := cart.TotalCartPrice
	if cart.TotalPriceAfterDiscount != nil {
		cartTotal = *cart.TotalPriceAfterDiscount
	}

	items := make([]CartItem, len(cart.Items))
	copy(items, cart.Items)

	now := time.Now().UTC()
	return &Order{
		ID:              uuid.New(),
		User:            cart.User,
		Items:           items,
		TaxPrice:        taxPrice,
		ShippingAddress: address,
		ShippingPrice:   shippingPrice,
		TotalOrderPrice: cartTotal + taxPrice + shippingPrice,
		PaymentMethod:   paymentMethod,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// MarkPaid transitions the order to paid. The transition happens at most
// once: marking an already-paid order is a no-op so payment confirmation
// replays are harmless.
func (o *Order) MarkPaid(at time.Time) bool {
	if o.IsPaid {
		return false
	}
	o.IsPaid = true
	o.PaidAt = &at
	return true
}

// MarkDelivered transitions the order to delivered, only after payment.
func (o *Order) MarkDelivered(at time.Time) error {
	if !o.IsPaid {
		return ErrValidation
	}
	if o.IsDelivered {
		return nil
	}
	o.IsDelivered = true
	o.DeliveredAt = &at
	return nil
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one product+color line in a cart. Price is a snapshot of the
// product price captured when the line was added; later catalog changes do
// not alter it.
type CartItem struct {
	ID       uuid.UUID `json:"id"`
	Product  uuid.UUID `json:"product"`
	Quantity int       `json:"quantity"`
	Color    string    `json:"color,omitempty"`
	Price    float64   `json:"price"`
}

// Cart holds a user's pending line items. Exactly one cart exists per user,
// created lazily on the first add.
type Cart struct {
	ID                      uuid.UUID  `json:"id"`
	User                    uuid.UUID  `json:"user"`
	Items                   []CartItem `json:"cartItems"`
	TotalCartPrice          float64    `json:"totalCartPrice"`
	TotalPriceAfterDiscount *float64   `json:"totalPriceAfterDiscount,omitempty"`
	CreatedAt               time.Time  `json:"createdAt"`
	UpdatedAt               time.Time  `json:"updatedAt"`
}

// NewCart creates an empty cart for the user.
func NewCart(userID uuid.UUID) (*Cart, error) {
	if userID == uuid.Nil {
		return nil, ErrMissingReference
	}
	now := time.Now().UTC()
	return &Cart{
		ID:        uuid.New(),
		User:      userID,
		Items:     []CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// FindItem returns the line matching the (product, color) pair, or nil.
func (c *Cart) FindItem(productID uuid.UUID, color string) *CartItem {
	for i := range c.Items {
		if c.Items[i].Product == productID && c.Items[i].Color == color {
			return &c.Items[i]
		}
	}
	return nil
}

// FindItemByID returns the line with the given line ID, or nil.
func (c *Cart) FindItemByID(itemID uuid.UUID) *CartItem {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return &c.Items[i]
		}
	}
	return nil
}

// RemoveItemByID deletes the line with the given ID.
// Reports whether a line was removed.
func (c *Cart) RemoveItemByID(itemID uuid.UUID) bool {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// RecalcTotal recomputes TotalCartPrice from the lines and clears any
// previously applied coupon discount, since the total it was computed
// against has changed.
func (c *Cart) RecalcTotal() {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	c.TotalCartPrice = total
	c.TotalPriceAfterDiscount = nil
}

// ApplyDiscount stores the discounted total for the given percentage.
// TotalCartPrice itself is never mutated by a coupon.
func (c *Cart) ApplyDiscount(percent float64) {
	discounted := c.TotalCartPrice - c.TotalCartPrice*percent/100
	c.TotalPriceAfterDiscount = &discounted
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Coupon is a time-bounded percentage discount applied to cart totals.
type Coupon struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Expire    time.Time `json:"expire"`
	Discount  float64   `json:"discount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewCoupon creates a Coupon. Name uniqueness is enforced by storage.
func NewCoupon(name string, expire time.Time, discount float64) (*Coupon, error) {
	now := time.Now().UTC()
	c := &Coupon{
		ID:        uuid.New(),
		Name:      name,
		Expire:    expire,
		Discount:  discount,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the Coupon invariants.
func (c *Coupon) Validate() error {
	if c.Name == "" {
		return ErrNameEmpty
	}
	if c.Discount < 0 || c.Discount > 100 {
		return ErrInvalidDiscount
	}
	if c.Expire.IsZero() {
		return ErrValidation
	}
	return nil
}

// IsExpired reports whether the coupon can no longer be applied.
// A coupon is applicable only while now is strictly before its expiry.
func (c *Coupon) IsExpired(now time.Time) bool {
	return !now.Before(c.Expire)
}

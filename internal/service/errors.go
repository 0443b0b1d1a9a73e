// Package service implements the business operations on top of the store
// layer: generic CRUD resources, the cart engine, the rating aggregator,
// checkout and wishlists.
package service

import "errors"

// Service-level errors surfaced to the API layer.
var (
	// ErrLineNotFound is returned when a cart line ID does not belong to
	// the user's cart.
	ErrLineNotFound = errors.New("cart line not found")

	// ErrCouponExpired is returned when a coupon's expiry has passed.
	// Applying an expired coupon never mutates cart totals.
	ErrCouponExpired = errors.New("coupon expired")

	// ErrOrderNotPaid is returned when a delivery transition is attempted
	// on an unpaid order.
	ErrOrderNotPaid = errors.New("order is not paid yet")

	// ErrForbidden is returned when the requester does not own the target
	// entity and is not an admin.
	ErrForbidden = errors.New("operation not allowed")
)

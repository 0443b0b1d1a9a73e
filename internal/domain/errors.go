// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is the root of every client-input validation error. The
// specific sentinels below wrap it, so one errors.Is check at the API
// boundary maps all of them to a bad-request response.
var ErrValidation = errors.New("validation failed")

var (
	// ErrNameEmpty is returned when a required name field is empty.
	ErrNameEmpty = fmt.Errorf("%w: name cannot be empty", ErrValidation)

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = fmt.Errorf("%w: invalid email format", ErrValidation)

	// ErrInvalidPrice is returned when a price is negative.
	ErrInvalidPrice = fmt.Errorf("%w: price cannot be negative", ErrValidation)

	// ErrInvalidDiscountPrice is returned when a discounted price is not
	// strictly below the regular price.
	ErrInvalidDiscountPrice = fmt.Errorf("%w: discounted price must be below price", ErrValidation)

	// ErrInvalidQuantity is returned when a quantity is not a positive integer
	// where one is required, or negative where zero is allowed.
	ErrInvalidQuantity = fmt.Errorf("%w: invalid quantity", ErrValidation)

	// ErrInvalidRating is returned when a review rating is outside [1,5].
	ErrInvalidRating = fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)

	// ErrInvalidDiscount is returned when a coupon discount is outside [0,100].
	ErrInvalidDiscount = fmt.Errorf("%w: discount must be between 0 and 100", ErrValidation)

	// ErrInvalidPaymentMethod is returned when an order payment method is
	// neither card nor cash.
	ErrInvalidPaymentMethod = fmt.Errorf("%w: payment method must be card or cash", ErrValidation)

	// ErrMissingReference is returned when a required entity reference
	// (category, product, user) is absent.
	ErrMissingReference = fmt.Errorf("%w: missing entity reference", ErrValidation)
)

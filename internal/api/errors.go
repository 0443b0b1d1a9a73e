package api

import (
	"errors"
	"net/http"

	"github.com/souqhq/souq-api/internal/api/shared"
	"github.com/souqhq/souq-api/internal/domain"
	"github.com/souqhq/souq-api/internal/service"
	"github.com/souqhq/souq-api/internal/service/auth"
	"github.com/souqhq/souq-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes based on
// the error type. This prevents leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, service.ErrLineNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate),
		errors.Is(err, store.ErrInsufficientStock),
		errors.Is(err, service.ErrOrderNotPaid):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, service.ErrCouponExpired):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly message based on
// the error type. Internal details never reach the client.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid token"

	case errors.Is(err, auth.ErrExpiredToken):
		return "Token has expired"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Incorrect email or password"

	case errors.Is(err, service.ErrForbidden):
		return "You are not allowed to perform this action"

	case errors.Is(err, service.ErrLineNotFound):
		return "Cart item not found"

	case errors.Is(err, store.ErrNotFound):
		return notFoundMessage(err)

	case errors.Is(err, store.ErrDuplicate):
		return "A record with this value already exists"

	case errors.Is(err, store.ErrInsufficientStock):
		return "Insufficient stock for this product"

	case errors.Is(err, service.ErrOrderNotPaid):
		return "Order has not been paid yet"

	case errors.Is(err, service.ErrCouponExpired):
		return "Coupon is invalid or has expired"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		// Validation messages are written for clients and safe to expose.
		return err.Error()

	default:
		return "An unexpected error occurred"
	}
}

// notFoundMessage keeps the entity name from store.NotFound wrappers when
// present, so clients see "entity not found: product" rather than a
// generic line.
func notFoundMessage(err error) string {
	msg := err.Error()
	if msg != "" && msg != store.ErrNotFound.Error() {
		return msg
	}
	return "Resource not found"
}

// RespondError maps err to a status and safe message, logs the original
// error, and writes the response. Handlers use this for every error path.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// Package auth provides token issuance/validation and password hashing.
package auth

import "errors"

// Authentication errors.
var (
	// ErrInvalidToken is returned when a token fails signature or claim
	// validation.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token is past its expiry.
	ErrExpiredToken = errors.New("token expired")

	// ErrWrongTokenType is returned when an access token is presented
	// where a refresh token is required, or vice versa.
	ErrWrongTokenType = errors.New("wrong token type")

	// ErrInvalidCredentials is returned on login when the email/password
	// pair does not match an account.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

package auth

import (
	"context"

	"github.com/google/uuid"
)

// Claims are the validated contents of a token.
type Claims struct {
	UserID uuid.UUID
	Role   string
}

// JWTService issues and validates access and refresh tokens. Tokens carry
// the user id and role; the API layer trusts these claims verbatim.
type JWTService interface {
	// GenerateToken creates a signed access token for the user.
	GenerateToken(ctx context.Context, userID uuid.UUID, role string) (string, error)

	// GenerateRefreshToken creates a signed refresh token for the user.
	GenerateRefreshToken(ctx context.Context, userID uuid.UUID, role string) (string, error)

	// ValidateToken validates an access token and returns its claims.
	// Returns ErrExpiredToken, ErrInvalidToken or ErrWrongTokenType.
	ValidateToken(ctx context.Context, token string) (*Claims, error)

	// ValidateRefreshToken validates a refresh token and returns its
	// claims.
	ValidateRefreshToken(ctx context.Context, token string) (*Claims, error)
}

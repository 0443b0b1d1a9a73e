// Package shared provides helpers used by every API handler: context keys,
// request decoding and JSON responses.
package shared

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

// ContextKey is the private type for context values set by middleware.
type ContextKey string

// Context keys for request-scoped values.
const (
	// UserIDContextKey holds the authenticated user's ID.
	UserIDContextKey ContextKey = "userID"

	// UserRoleContextKey holds the authenticated user's role.
	UserRoleContextKey ContextKey = "userRole"

	// TraceIDKey holds the request trace ID.
	TraceIDKey ContextKey = "traceID"
)

// SetTraceID attaches a fresh trace ID to the context.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// GetTraceID returns the trace ID from the context, or "" when absent.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// UserID returns the authenticated user ID from the context.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(UserIDContextKey).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// UserRole returns the authenticated user's role from the context.
func UserRole(ctx context.Context) string {
	role, _ := ctx.Value(UserRoleContextKey).(string)
	return role
}

// IsAdmin reports whether the context belongs to an admin.
func IsAdmin(ctx context.Context) bool {
	return UserRole(ctx) == "admin"
}

func generateTraceID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// Fall back to a UUID; never return a static value.
		return uuid.New().String()
	}
	return hex.EncodeToString(b)
}

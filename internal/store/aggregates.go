package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

// ErrInsufficientStock is returned when a stock adjustment would drive a
// product's quantity below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

// RatingSummary is the recomputed aggregate over all reviews of a product.
type RatingSummary struct {
	Average  float64
	Quantity int
}

// RatingStore computes review aggregates for the rating aggregator.
type RatingStore interface {
	// Summarize returns the average rating and review count for the
	// product. A product with no reviews yields the zero summary.
	Summarize(ctx context.Context, productID uuid.UUID) (RatingSummary, error)
}

// StockStore adjusts product stock counters at checkout.
type StockStore interface {
	// AdjustStock atomically decrements quantity and increments sold by n.
	// Returns ErrInsufficientStock when quantity < n, ErrNotFound when the
	// product does not exist. Quantity never goes negative.
	AdjustStock(ctx context.Context, productID uuid.UUID, n int) error

	// WithTx returns a stock store bound to the transaction.
	WithTx(tx *sql.Tx) StockStore
}

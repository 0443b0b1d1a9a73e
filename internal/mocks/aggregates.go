package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"
	"github.com/souqhq/souq-api/internal/store"
)

// MockRatingStore implements store.RatingStore for testing.
type MockRatingStore struct {
	mu sync.Mutex

	// SummarizeFn overrides the default behavior when set.
	SummarizeFn func(ctx context.Context, productID uuid.UUID) (store.RatingSummary, error)

	// Summary and Err are the default responses.
	Summary store.RatingSummary
	Err     error

	// Calls records the product IDs Summarize was invoked with.
	Calls []uuid.UUID
}

var _ store.RatingStore = (*MockRatingStore)(nil)

// Summarize implements store.RatingStore.
func (m *MockRatingStore) Summarize(ctx context.Context, productID uuid.UUID) (store.RatingSummary, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, productID)
	m.mu.Unlock()

	if m.SummarizeFn != nil {
		return m.SummarizeFn(ctx, productID)
	}
	return m.Summary, m.Err
}

// StockAdjustment records one AdjustStock call.
type StockAdjustment struct {
	Product uuid.UUID
	N       int
}

// MockStockStore implements store.StockStore for testing.
type MockStockStore struct {
	mu sync.Mutex

	// AdjustFn overrides the default behavior when set.
	AdjustFn func(ctx context.Context, productID uuid.UUID, n int) error

	// Err is the default response.
	Err error

	// Calls records every adjustment in order.
	Calls []StockAdjustment
}

var _ store.StockStore = (*MockStockStore)(nil)

// AdjustStock implements store.StockStore.
func (m *MockStockStore) AdjustStock(ctx context.Context, productID uuid.UUID, n int) error {
	m.mu.Lock()
	m.Calls = append(m.Calls, StockAdjustment{Product: productID, N: n})
	m.mu.Unlock()

	if m.AdjustFn != nil {
		return m.AdjustFn(ctx, productID, n)
	}
	return m.Err
}

// WithTx implements store.StockStore; the mock has no transactions.
func (m *MockStockStore) WithTx(tx *sql.Tx) store.StockStore {
	return m
}

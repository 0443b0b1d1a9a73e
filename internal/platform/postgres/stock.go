package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/souqhq/souq-api/internal/store"
)

// StockStore implements store.StockStore. The decrement is a single guarded
// UPDATE, so the "quantity never goes negative" invariant holds under
// concurrent checkouts without an explicit lock.
type StockStore struct {
	db store.DBTX
}

// NewStockStore creates a StockStore.
func NewStockStore(db store.DBTX) *StockStore {
	if db == nil {
		panic("db cannot be nil")
	}
	return &StockStore{db: db}
}

var _ store.StockStore = (*StockStore)(nil)

// WithTx implements store.StockStore.WithTx.
func (s *StockStore) WithTx(tx *sql.Tx) store.StockStore {
	return &StockStore{db: tx}
}

// AdjustStock implements store.StockStore.AdjustStock.
func (s *StockStore) AdjustStock(ctx context.Context, productID uuid.UUID, n int) error {
	const adjust = `
		UPDATE products
		SET doc = doc || jsonb_build_object(
			'quantity', (doc->>'quantity')::int - $2,
			'sold', (doc->>'sold')::int + $2
		), updated_at = now()
		WHERE id = $1 AND (doc->>'quantity')::int >= $2
	`

	result, err := s.db.ExecContext(ctx, adjust, productID, n)
	if err != nil {
		return MapError(err, "product")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}

	// Distinguish a missing product from a guarded-out decrement.
	var exists bool
	err = s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists)
	if err != nil {
		return MapError(err, "product")
	}
	if !exists {
		return fmt.Errorf("%w: product", store.ErrNotFound)
	}
	return fmt.Errorf("%w: product %s", store.ErrInsufficientStock, productID)
}

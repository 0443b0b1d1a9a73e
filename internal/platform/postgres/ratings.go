package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/souqhq/souq-api/internal/store"
)

// RatingStore implements store.RatingStore with a single aggregate query
// over the reviews collection.
type RatingStore struct {
	db store.DBTX
}

// NewRatingStore creates a RatingStore.
func NewRatingStore(db store.DBTX) *RatingStore {
	if db == nil {
		panic("db cannot be nil")
	}
	return &RatingStore{db: db}
}

var _ store.RatingStore = (*RatingStore)(nil)

// Summarize implements store.RatingStore.Summarize.
func (s *RatingStore) Summarize(ctx context.Context, productID uuid.UUID) (store.RatingSummary, error) {
	const aggregate = `
		SELECT COALESCE(AVG((doc->>'ratings')::numeric), 0), COUNT(*)
		FROM reviews
		WHERE doc->>'product' = $1
	`

	var summary store.RatingSummary
	err := s.db.QueryRowContext(ctx, aggregate, productID.String()).
		Scan(&summary.Average, &summary.Quantity)
	if err != nil {
		return store.RatingSummary{}, MapError(err, "review")
	}
	return summary, nil
}

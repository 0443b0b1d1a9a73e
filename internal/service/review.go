package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/souqhq/souq-api/internal/domain"
	"github.com/souqhq/souq-api/internal/platform/logger"
	"github.com/souqhq/souq-api/internal/query"
	"github.com/souqhq/souq-api/internal/store"
)

// ReviewService persists reviews and keeps the product rating aggregates in
// sync. The aggregates are recomputed from scratch after every mutation
// rather than maintained incrementally, which avoids drift at the cost of
// one aggregate query per write.
type ReviewService struct {
	// Resource serves the read-side CRUD operations for reviews.
	Resource *Resource[domain.Review]

	reviews  store.DocumentStore[domain.Review]
	products store.DocumentStore[domain.Product]
	ratings  store.RatingStore
	logger   *slog.Logger
}

// NewReviewService creates a ReviewService.
func NewReviewService(
	reviews store.DocumentStore[domain.Review],
	products store.DocumentStore[domain.Product],
	ratings store.RatingStore,
	log *slog.Logger,
) *ReviewService {
	if reviews == nil || products == nil || ratings == nil {
		panic("review service stores cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &ReviewService{
		Resource: NewResource("review", reviews, query.Shaper{DefaultLimit: 10}, log),
		reviews:  reviews,
		products: products,
		ratings:  ratings,
		logger:   log.With(slog.String("component", "review_service")),
	}
}

// Create persists the review and synchronously recomputes the product's
// rating aggregates. A second review by the same user for the same product
// fails with store.ErrDuplicate.
func (s *ReviewService) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	if _, err := s.products.FindByID(ctx, review.Product); err != nil {
		if store.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: product %s does not exist",
				domain.ErrValidation, review.Product)
		}
		return nil, err
	}

	if err := s.reviews.Insert(ctx, review.ID, review); err != nil {
		return nil, err
	}

	if err := s.recompute(ctx, review.Product); err != nil {
		return nil, err
	}
	return review, nil
}

// Update patches the requester's own review and recomputes the aggregates.
func (s *ReviewService) Update(
	ctx context.Context,
	id, userID uuid.UUID,
	title *string,
	ratings *float64,
) (*domain.Review, error) {
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if review.User != userID {
		return nil, fmt.Errorf("%w: review belongs to another user", ErrForbidden)
	}

	patch := map[string]any{}
	if title != nil {
		patch["title"] = *title
	}
	if ratings != nil {
		if *ratings < 1 || *ratings > 5 {
			return nil, domain.ErrInvalidRating
		}
		patch["ratings"] = *ratings
	}

	updated, err := s.reviews.Patch(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	if err := s.recompute(ctx, updated.Product); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a review (owner or admin only) and recomputes the
// aggregates; deleting the product's last review resets them to zero.
func (s *ReviewService) Delete(ctx context.Context, id, userID uuid.UUID, isAdmin bool) error {
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin && review.User != userID {
		return fmt.Errorf("%w: review belongs to another user", ErrForbidden)
	}

	if err := s.reviews.Delete(ctx, id); err != nil {
		return err
	}
	return s.recompute(ctx, review.Product)
}

// recompute aggregates all reviews for the product and writes the results
// back onto the product document.
func (s *ReviewService) recompute(ctx context.Context, productID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	summary, err := s.ratings.Summarize(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to aggregate ratings: %w", err)
	}

	_, err = s.products.Patch(ctx, productID, map[string]any{
		"ratingsAverage":  summary.Average,
		"ratingsQuantity": summary.Quantity,
	})
	if err != nil {
		return fmt.Errorf("failed to write rating aggregates: %w", err)
	}

	log.Debug("rating aggregates recomputed",
		slog.String("product_id", productID.String()),
		slog.Float64("average", summary.Average),
		slog.Int("quantity", summary.Quantity))
	return nil
}

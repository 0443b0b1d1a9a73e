package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/souqhq/souq-api/internal/domain"
	"github.com/souqhq/souq-api/internal/store"
)

// WishlistService maintains the product-id set on the user document.
type WishlistService struct {
	users    store.DocumentStore[domain.User]
	products store.DocumentStore[domain.Product]
	logger   *slog.Logger
}

// NewWishlistService creates a WishlistService.
func NewWishlistService(
	users store.DocumentStore[domain.User],
	products store.DocumentStore[domain.Product],
	log *slog.Logger,
) *WishlistService {
	if users == nil || products == nil {
		panic("wishlist service stores cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &WishlistService{
		users:    users,
		products: products,
		logger:   log.With(slog.String("component", "wishlist_service")),
	}
}

// Add puts the product in the user's wishlist. Adding a product twice is a
// no-op (set semantics).
func (s *WishlistService) Add(ctx context.Context, userID, productID uuid.UUID) ([]uuid.UUID, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.HasInWishlist(productID) {
		return user.Wishlist, nil
	}

	wishlist := append(user.Wishlist, productID)
	updated, err := s.users.Patch(ctx, userID, map[string]any{"wishlist": wishlist})
	if err != nil {
		return nil, err
	}
	return updated.Wishlist, nil
}

// Remove drops the product from the user's wishlist; removing an absent
// product is a no-op.
func (s *WishlistService) Remove(ctx context.Context, userID, productID uuid.UUID) ([]uuid.UUID, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	wishlist := make([]uuid.UUID, 0, len(user.Wishlist))
	for _, id := range user.Wishlist {
		if id != productID {
			wishlist = append(wishlist, id)
		}
	}

	updated, err := s.users.Patch(ctx, userID, map[string]any{"wishlist": wishlist})
	if err != nil {
		return nil, err
	}
	return updated.Wishlist, nil
}

// Get returns the user's wishlist.
func (s *WishlistService) Get(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Wishlist, nil
}

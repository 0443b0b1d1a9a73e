package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souqhq/souq-api/internal/domain"
	"github.com/souqhq/souq-api/internal/mocks"
	"github.com/souqhq/souq-api/internal/store"
)

func TestWishlistSetSemantics(t *testing.T) {
	t.Parallel()

	users := mocks.NewMockDocumentStore[domain.User]("email")
	products := mocks.NewMockDocumentStore[domain.Product]()
	svc := NewWishlistService(users, products, nil)
	ctx := context.Background()

	user, err := domain.NewUser("Sam", "sam@example.com", "hash")
	require.NoError(t, err)
	users.Seed(user.ID, user)

	product, err := domain.NewProduct(domain.NewProductInput{
		Title:       "Widget",
		Description: "A widget with enough description to be plausible.",
		Quantity:    1,
		Price:       10,
		Category:    uuid.New(),
	})
	require.NoError(t, err)
	products.Seed(product.ID, product)

	wishlist, err := svc.Add(ctx, user.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{product.ID}, wishlist)

	// Adding twice keeps the set unchanged.
	wishlist, err = svc.Add(ctx, user.ID, product.ID)
	require.NoError(t, err)
	assert.Len(t, wishlist, 1)

	wishlist, err = svc.Remove(ctx, user.ID, product.ID)
	require.NoError(t, err)
	assert.Empty(t, wishlist)

	// Removing an absent product is a no-op.
	_, err = svc.Remove(ctx, user.ID, product.ID)
	assert.NoError(t, err)

	_, err = svc.Add(ctx, user.ID, uuid.New())
	assert.True(t, store.IsNotFoundError(err))
}

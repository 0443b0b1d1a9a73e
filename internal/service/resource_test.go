package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souqhq/souq-api/internal/domain"
	"github.com/souqhq/souq-api/internal/mocks"
	"github.com/souqhq/souq-api/internal/query"
	"github.com/souqhq/souq-api/internal/store"
)

func newBrandResource(st store.DocumentStore[domain.Brand], opts ...ResourceOption[domain.Brand]) *Resource[domain.Brand] {
	return NewResource("brand", st, query.Shaper{DefaultLimit: 10}, nil, opts...)
}

func TestResourceCreate(t *testing.T) {
	t.Parallel()
	st := mocks.NewMockDocumentStore[domain.Brand]("name")
	res := newBrandResource(st)
	ctx := context.Background()

	brand, err := domain.NewBrand("Acme", "")
	require.NoError(t, err)

	created, err := res.Create(ctx, brand.ID, brand)
	require.NoError(t, err)
	assert.Equal(t, brand.ID, created.ID)

	// Same name again violates uniqueness.
	dup, err := domain.NewBrand("Acme", "")
	require.NoError(t, err)
	_, err = res.Create(ctx, dup.ID, dup)
	assert.True(t, store.IsDuplicateError(err))
}

func TestResourceCreateHookRejection(t *testing.T) {
	t.Parallel()
	st := mocks.NewMockDocumentStore[domain.Brand]()
	hookErr := errors.New("rejected")
	res := newBrandResource(st, WithBeforeCreate(func(ctx context.Context, b *domain.Brand) error {
		return hookErr
	}))

	brand, err := domain.NewBrand("Acme", "")
	require.NoError(t, err)

	_, err = res.Create(context.Background(), brand.ID, brand)
	assert.ErrorIs(t, err, hookErr)
	assert.Equal(t, 0, st.Len())
}

func TestResourceGetUpdateDelete(t *testing.T) {
	t.Parallel()
	st := mocks.NewMockDocumentStore[domain.Brand]()
	res := newBrandResource(st)
	ctx := context.Background()

	brand, err := domain.NewBrand("Acme", "")
	require.NoError(t, err)
	st.Seed(brand.ID, brand)

	got, err := res.Get(ctx, brand.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)

	updated, err := res.Update(ctx, brand.ID, map[string]any{"name": "Umbrella"})
	require.NoError(t, err)
	assert.Equal(t, "Umbrella", updated.Name)

	require.NoError(t, res.Delete(ctx, brand.ID))

	_, err = res.Get(ctx, brand.ID)
	assert.True(t, store.IsNotFoundError(err))
	assert.ErrorIs(t, res.Delete(ctx, brand.ID), store.ErrNotFound)
}

func TestResourceUpdateRejectsInvariantBreakingPatch(t *testing.T) {
	t.Parallel()
	st := mocks.NewMockDocumentStore[domain.Product]()
	res := NewResource("product", st, query.Shaper{DefaultLimit: 10}, nil)
	ctx := context.Background()

	product, err := domain.NewProduct(domain.NewProductInput{
		Title:       "Phone",
		Description: "A phone with enough description to be plausible.",
		Quantity:    5,
		Price:       10,
		Category:    uuid.New(),
	})
	require.NoError(t, err)
	st.Seed(product.ID, product)

	// A discounted price above the price must not reach storage.
	_, err = res.Update(ctx, product.ID, map[string]any{"priceAfterDiscount": 999.0})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = res.Update(ctx, product.ID, map[string]any{"price": -5.0})
	assert.ErrorIs(t, err, domain.ErrValidation)

	// A type mismatch in the patch is a client error too.
	_, err = res.Update(ctx, product.ID, map[string]any{"price": "expensive"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	stored, err := st.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, stored.Price)
	assert.Nil(t, stored.PriceAfterDiscount)
	assert.Equal(t, 0, st.PatchCount)

	updated, err := res.Update(ctx, product.ID, map[string]any{"priceAfterDiscount": 8.0})
	require.NoError(t, err)
	require.NotNil(t, updated.PriceAfterDiscount)
	assert.Equal(t, 8.0, *updated.PriceAfterDiscount)
}

func TestResourceListPaginatesFilteredCount(t *testing.T) {
	t.Parallel()
	st := mocks.NewMockDocumentStore[domain.Brand]()
	res := newBrandResource(st)
	ctx := context.Background()

	for i := 0; i < 23; i++ {
		brand, err := domain.NewBrand("Brand "+strings.Repeat("x", i+1), "")
		require.NoError(t, err)
		st.Seed(brand.ID, brand)
	}

	docs, pagination, plan, err := res.List(ctx, nil, url.Values{"page": {"3"}})
	require.NoError(t, err)
	assert.Len(t, docs, 3)
	assert.Equal(t, 3, pagination.CurrentPage)
	assert.Equal(t, 3, pagination.TotalPages)
	assert.Nil(t, pagination.Next)
	require.NotNil(t, pagination.Prev)
	assert.Equal(t, 2, *pagination.Prev)
	assert.Equal(t, 10, plan.Limit)
}

func TestResourceListScopeFilters(t *testing.T) {
	t.Parallel()
	st := mocks.NewMockDocumentStore[domain.SubCategory]()
	res := NewResource("subcategory", st, query.Shaper{DefaultLimit: 10}, nil)
	ctx := context.Background()

	parent := uuid.New()
	other := uuid.New()
	for i, categoryID := range []uuid.UUID{parent, parent, other} {
		sc, err := domain.NewSubCategory("Sub "+strings.Repeat("y", i+1), categoryID)
		require.NoError(t, err)
		st.Seed(sc.ID, sc)
	}

	scope := []query.Filter{{Field: "category", Op: query.OpEq, Value: parent.String()}}
	docs, pagination, _, err := res.List(ctx, scope, url.Values{})
	require.NoError(t, err)
	assert.Len(t, docs, 2)
	assert.Equal(t, 1, pagination.TotalPages)
}

func TestResourceAfterLoadHook(t *testing.T) {
	t.Parallel()
	st := mocks.NewMockDocumentStore[domain.Brand]()
	media := NewURLRewriter("https://cdn.example.com")
	res := newBrandResource(st, WithAfterLoad[domain.Brand](media.BrandImage))
	ctx := context.Background()

	brand, err := domain.NewBrand("Acme", "acme.png")
	require.NoError(t, err)
	st.Seed(brand.ID, brand)

	got, err := res.Get(ctx, brand.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/acme.png", got.Image)

	// The stored document keeps the relative filename.
	stored, err := st.FindByID(ctx, brand.ID)
	require.NoError(t, err)
	assert.Equal(t, "acme.png", stored.Image)
}

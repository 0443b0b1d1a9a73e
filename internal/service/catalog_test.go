package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souqhq/souq-api/internal/domain"
	"github.com/souqhq/souq-api/internal/mocks"
)

type catalogFixture struct {
	catalog       *Catalog
	categories    *mocks.MockDocumentStore[domain.Category]
	subcategories *mocks.MockDocumentStore[domain.SubCategory]
	category      *domain.Category
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	t.Helper()
	f := &catalogFixture{
		categories:    mocks.NewMockDocumentStore[domain.Category]("name"),
		subcategories: mocks.NewMockDocumentStore[domain.SubCategory]("name"),
	}
	brands := mocks.NewMockDocumentStore[domain.Brand]("name")
	products := mocks.NewMockDocumentStore[domain.Product]()

	category, err := domain.NewCategory("Electronics", "")
	require.NoError(t, err)
	f.categories.Seed(category.ID, category)
	f.category = category

	f.catalog = NewCatalog(f.categories, brands, f.subcategories, products,
		NewURLRewriter(""), nil)
	return f
}

func TestCatalogSubCategoryRequiresExistingCategory(t *testing.T) {
	t.Parallel()
	f := newCatalogFixture(t)
	ctx := context.Background()

	sc, err := domain.NewSubCategory("Phones", f.category.ID)
	require.NoError(t, err)
	_, err = f.catalog.SubCategories.Create(ctx, sc.ID, sc)
	assert.NoError(t, err)

	orphan, err := domain.NewSubCategory("Ghost", uuid.New())
	require.NoError(t, err)
	_, err = f.catalog.SubCategories.Create(ctx, orphan.ID, orphan)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCatalogProductReferentialChecks(t *testing.T) {
	t.Parallel()
	f := newCatalogFixture(t)
	ctx := context.Background()

	sc, err := domain.NewSubCategory("Phones", f.category.ID)
	require.NoError(t, err)
	f.subcategories.Seed(sc.ID, sc)

	otherCategory, err := domain.NewCategory("Clothes", "")
	require.NoError(t, err)
	f.categories.Seed(otherCategory.ID, otherCategory)
	foreignSC, err := domain.NewSubCategory("Shirts", otherCategory.ID)
	require.NoError(t, err)
	f.subcategories.Seed(foreignSC.ID, foreignSC)

	newProduct := func(category uuid.UUID, subs ...uuid.UUID) *domain.Product {
		p, err := domain.NewProduct(domain.NewProductInput{
			Title:         "Phone",
			Description:   "A phone with enough description to be plausible.",
			Quantity:      1,
			Price:         100,
			Category:      category,
			Subcategories: subs,
		})
		require.NoError(t, err)
		return p
	}

	// Valid: subcategory belongs to the product's category.
	p := newProduct(f.category.ID, sc.ID)
	_, err = f.catalog.Products.Create(ctx, p.ID, p)
	assert.NoError(t, err)

	// Unknown category.
	p = newProduct(uuid.New())
	_, err = f.catalog.Products.Create(ctx, p.ID, p)
	assert.ErrorIs(t, err, domain.ErrValidation)

	// Unknown subcategory.
	p = newProduct(f.category.ID, uuid.New())
	_, err = f.catalog.Products.Create(ctx, p.ID, p)
	assert.ErrorIs(t, err, domain.ErrValidation)

	// Subcategory from a different category.
	p = newProduct(f.category.ID, foreignSC.ID)
	_, err = f.catalog.Products.Create(ctx, p.ID, p)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

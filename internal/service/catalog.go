package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/souqhq/souq-api/internal/domain"
	"github.com/souqhq/souq-api/internal/query"
	"github.com/souqhq/souq-api/internal/store"
)

// Catalog bundles the CRUD resources for the catalog entity types and wires
// their referential checks and image-URL rewrites.
type Catalog struct {
	Categories    *Resource[domain.Category]
	Brands        *Resource[domain.Brand]
	SubCategories *Resource[domain.SubCategory]
	Products      *Resource[domain.Product]
}

// NewCatalog creates the catalog resources.
func NewCatalog(
	categories store.DocumentStore[domain.Category],
	brands store.DocumentStore[domain.Brand],
	subcategories store.DocumentStore[domain.SubCategory],
	products store.DocumentStore[domain.Product],
	media *URLRewriter,
	log *slog.Logger,
) *Catalog {
	c := &Catalog{}

	c.Categories = NewResource("category", categories, query.Shaper{DefaultLimit: 10}, log,
		WithAfterLoad[domain.Category](media.CategoryImage))

	c.Brands = NewResource("brand", brands, query.Shaper{DefaultLimit: 10}, log,
		WithAfterLoad[domain.Brand](media.BrandImage))

	c.SubCategories = NewResource("subcategory", subcategories, query.Shaper{DefaultLimit: 10}, log,
		WithBeforeCreate(func(ctx context.Context, sc *domain.SubCategory) error {
			return c.requireCategory(ctx, categories, sc.Category)
		}))

	c.Products = NewResource("product", products, query.Shaper{DefaultLimit: 50}, log,
		WithAfterLoad[domain.Product](media.ProductImages),
		WithBeforeCreate(func(ctx context.Context, p *domain.Product) error {
			if err := c.requireCategory(ctx, categories, p.Category); err != nil {
				return err
			}
			// Every referenced subcategory must belong to the product's
			// category.
			for _, scID := range p.Subcategories {
				sc, err := subcategories.FindByID(ctx, scID)
				if err != nil {
					if store.IsNotFoundError(err) {
						return fmt.Errorf("%w: subcategory %s does not exist",
							domain.ErrValidation, scID)
					}
					return err
				}
				if sc.Category != p.Category {
					return fmt.Errorf("%w: subcategory %s does not belong to category %s",
						domain.ErrValidation, scID, p.Category)
				}
			}
			return nil
		}))

	return c
}

func (c *Catalog) requireCategory(
	ctx context.Context,
	categories store.DocumentStore[domain.Category],
	id uuid.UUID,
) error {
	if _, err := categories.FindByID(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return fmt.Errorf("%w: category %s does not exist", domain.ErrValidation, id)
		}
		return err
	}
	return nil
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/souqhq/souq-api/internal/api/shared"
	"github.com/souqhq/souq-api/internal/domain"
	"github.com/souqhq/souq-api/internal/query"
	"github.com/souqhq/souq-api/internal/service"
)

// CatalogHandler bundles the CRUD handlers for the catalog entity types.
type CatalogHandler struct {
	Categories    *ResourceHandler[domain.Category]
	Brands        *ResourceHandler[domain.Brand]
	SubCategories *ResourceHandler[domain.SubCategory]
	Products      *ResourceHandler[domain.Product]
}

// NewCatalogHandler creates the catalog handlers on top of the catalog
// resources.
func NewCatalogHandler(catalog *service.Catalog) *CatalogHandler {
	return &CatalogHandler{
		Categories: NewResourceHandler(catalog.Categories,
			parseCategoryCreate,
			func(c *domain.Category) uuid.UUID { return c.ID }),
		Brands: NewResourceHandler(catalog.Brands,
			parseBrandCreate,
			func(b *domain.Brand) uuid.UUID { return b.ID }),
		SubCategories: NewResourceHandler(catalog.SubCategories,
			parseSubCategoryCreate,
			func(sc *domain.SubCategory) uuid.UUID { return sc.ID }),
		Products: NewResourceHandler(catalog.Products,
			parseProductCreate,
			func(p *domain.Product) uuid.UUID { return p.ID }),
	}
}

// NestedSubCategories restricts subcategory listing and creation to the
// category named in the route.
func (h *CatalogHandler) NestedSubCategories() *ResourceHandler[domain.SubCategory] {
	return h.SubCategories.WithScope(categoryScope)
}

// categoryScope builds the filter for /categories/{categoryId}/subcategories.
func categoryScope(r *http.Request) ([]query.Filter, error) {
	categoryID, err := getPathUUID(r, "categoryId")
	if err != nil {
		return nil, err
	}
	return []query.Filter{{
		Field: "category",
		Op:    query.OpEq,
		Value: categoryID.String(),
	}}, nil
}

func parseCategoryCreate(r *http.Request) (*domain.Category, error) {
	var req CreateCategoryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		return nil, wrapBadRequest(err)
	}
	if err := shared.ValidateRequest(req); err != nil {
		return nil, wrapBadRequest(err)
	}
	return domain.NewCategory(req.Name, req.Image)
}

func parseBrandCreate(r *http.Request) (*domain.Brand, error) {
	var req CreateBrandRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		return nil, wrapBadRequest(err)
	}
	if err := shared.ValidateRequest(req); err != nil {
		return nil, wrapBadRequest(err)
	}
	return domain.NewBrand(req.Name, req.Image)
}

// parseSubCategoryCreate accepts the category from the body or, on the
// nested route, from the path segment.
func parseSubCategoryCreate(r *http.Request) (*domain.SubCategory, error) {
	var req CreateSubCategoryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		return nil, wrapBadRequest(err)
	}
	if err := shared.ValidateRequest(req); err != nil {
		return nil, wrapBadRequest(err)
	}

	categoryID := req.Category
	if categoryID == uuid.Nil {
		if pathParam := chi.URLParam(r, "categoryId"); pathParam != "" {
			parsed, err := uuid.Parse(pathParam)
			if err != nil {
				return nil, wrapBadRequest(err)
			}
			categoryID = parsed
		}
	}

	return domain.NewSubCategory(req.Name, categoryID)
}

func parseProductCreate(r *http.Request) (*domain.Product, error) {
	var req CreateProductRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		return nil, wrapBadRequest(err)
	}
	if err := shared.ValidateRequest(req); err != nil {
		return nil, wrapBadRequest(err)
	}

	return domain.NewProduct(domain.NewProductInput{
		Title:              req.Title,
		Description:        req.Description,
		Quantity:           req.Quantity,
		Price:              req.Price,
		PriceAfterDiscount: req.PriceAfterDiscount,
		Colors:             req.Colors,
		ImageCover:         req.ImageCover,
		Images:             req.Images,
		Category:           req.Category,
		Subcategories:      req.Subcategories,
		Brand:              req.Brand,
	})
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a sellable catalog item.
//
// RatingsAverage and RatingsQuantity are derived fields owned by the rating
// aggregator: they are recomputed from the product's reviews and are zero
// when no reviews exist.
type Product struct {
	ID                 uuid.UUID   `json:"id"`
	Title              string      `json:"title"`
	Slug               string      `json:"slug"`
	Description        string      `json:"description"`
	Quantity           int         `json:"quantity"`
	Sold               int         `json:"sold"`
	Price              float64     `json:"price"`
	PriceAfterDiscount *float64    `json:"priceAfterDiscount,omitempty"`
	Colors             []string    `json:"colors,omitempty"`
	ImageCover         string      `json:"imageCover,omitempty"`
	Images             []string    `json:"images,omitempty"`
	Category           uuid.UUID   `json:"category"`
	Subcategories      []uuid.UUID `json:"subcategories,omitempty"`
	Brand              *uuid.UUID  `json:"brand,omitempty"`
	RatingsAverage     float64     `json:"ratingsAverage"`
	RatingsQuantity    int         `json:"ratingsQuantity"`
	CreatedAt          time.Time   `json:"createdAt"`
	UpdatedAt          time.Time   `json:"updatedAt"`
}

// NewProductInput carries the caller-supplied fields for product creation.
type NewProductInput struct {
	Title              string
	Description        string
	Quantity           int
	Price              float64
	PriceAfterDiscount *float64
	Colors             []string
	ImageCover         string
	Images             []string
	Category           uuid.UUID
	Subcategories      []uuid.UUID
	Brand              *uuid.UUID
}

// NewProduct creates a Product with a generated ID and derived slug.
// Referential checks (category exists, subcategories belong to it) are the
// catalog service's responsibility.
func NewProduct(in NewProductInput) (*Product, error) {
	now := time.Now().UTC()
	p := &Product{
		ID:                 uuid.New(),
		Title:              in.Title,
		Slug:               Slugify(in.Title),
		Description:        in.Description,
		Quantity:           in.Quantity,
		Price:              in.Price,
		PriceAfterDiscount: in.PriceAfterDiscount,
		Colors:             in.Colors,
		ImageCover:         in.ImageCover,
		Images:             in.Images,
		Category:           in.Category,
		Subcategories:      in.Subcategories,
		Brand:              in.Brand,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the Product invariants.
func (p *Product) Validate() error {
	if p.Title == "" {
		return ErrNameEmpty
	}
	if p.Price < 0 {
		return ErrInvalidPrice
	}
	if p.PriceAfterDiscount != nil && *p.PriceAfterDiscount >= p.Price {
		return ErrInvalidDiscountPrice
	}
	if p.Quantity < 0 {
		return ErrInvalidQuantity
	}
	if p.Category == uuid.Nil {
		return ErrMissingReference
	}
	if p.RatingsAverage != 0 && (p.RatingsAverage < 1 || p.RatingsAverage > 5) {
		return ErrInvalidRating
	}
	return nil
}

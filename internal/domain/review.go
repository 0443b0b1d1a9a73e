package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review is a user's rating of a product. A user reviews a given product at
// most once; the unique index on (user, product) enforces it at write time.
type Review struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title,omitempty"`
	Ratings   float64   `json:"ratings"`
	User      uuid.UUID `json:"user"`
	Product   uuid.UUID `json:"product"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewReview creates a Review for the given user and product.
func NewReview(title string, ratings float64, userID, productID uuid.UUID) (*Review, error) {
	now := time.Now().UTC()
	r := &Review{
		ID:        uuid.New(),
		Title:     title,
		Ratings:   ratings,
		User:      userID,
		Product:   productID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate checks the Review invariants.
func (r *Review) Validate() error {
	if r.Ratings < 1 || r.Ratings > 5 {
		return ErrInvalidRating
	}
	if r.User == uuid.Nil || r.Product == uuid.Nil {
		return ErrMissingReference
	}
	return nil
}

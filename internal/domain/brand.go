package domain

import (
	"time"

	"github.com/google/uuid"
)

// Brand represents a product manufacturer or label.
type Brand struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewBrand creates a Brand with a generated ID and derived slug.
func NewBrand(name, image string) (*Brand, error) {
	now := time.Now().UTC()
	b := &Brand{
		ID:        uuid.New(),
		Name:      name,
		Slug:      Slugify(name),
		Image:     image,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate checks the Brand invariants.
func (b *Brand) Validate() error {
	if b.Name == "" {
		return ErrNameEmpty
	}
	return nil
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// SubCategory represents a second-level grouping that belongs to exactly
// one Category.
type SubCategory struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Category  uuid.UUID `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewSubCategory creates a SubCategory under the given category.
// The category is only checked for presence here; its existence is verified
// against storage by the catalog service before any write.
func NewSubCategory(name string, categoryID uuid.UUID) (*SubCategory, error) {
	now := time.Now().UTC()
	sc := &SubCategory{
		ID:        uuid.New(),
		Name:      name,
		Slug:      Slugify(name),
		Category:  categoryID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// Validate checks the SubCategory invariants.
func (sc *SubCategory) Validate() error {
	if sc.Name == "" {
		return ErrNameEmpty
	}
	if sc.Category == uuid.Nil {
		return ErrMissingReference
	}
	return nil
}

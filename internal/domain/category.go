package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category represents a top-level product grouping.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewCategory creates a Category with a generated ID, derived slug and
// creation timestamps. Returns an error if validation fails.
func NewCategory(name, image string) (*Category, error) {
	now := time.Now().UTC()
	c := &Category{
		ID:        uuid.New(),
		Name:      name,
		Slug:      Slugify(name),
		Image:     image,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the Category invariants.
func (c *Category) Validate() error {
	if c.Name == "" {
		return ErrNameEmpty
	}
	return nil
}

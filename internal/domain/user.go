package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account. HashedPassword is a bcrypt hash; the API layer
// never serializes users directly, it maps them to response DTOs.
type User struct {
	ID             uuid.UUID   `json:"id"`
	Name           string      `json:"name"`
	Slug           string      `json:"slug"`
	Email          string      `json:"email"`
	Phone          string      `json:"phone,omitempty"`
	HashedPassword string      `json:"hashedPassword"`
	ProfileImage   string      `json:"profileImg,omitempty"`
	Role           string      `json:"role"`
	Active         bool        `json:"active"`
	Wishlist       []uuid.UUID `json:"wishlist,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// NewUser creates a User with a generated ID and the default "user" role.
// The password must already be hashed by the auth layer.
func NewUser(name, email, hashedPassword string) (*User, error) {
	now := time.Now().UTC()
	u := &User{
		ID:             uuid.New(),
		Name:           name,
		Slug:           Slugify(name),
		Email:          strings.ToLower(strings.TrimSpace(email)),
		HashedPassword: hashedPassword,
		Role:           RoleUser,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Validate checks the User invariants.
func (u *User) Validate() error {
	if u.Name == "" {
		return ErrNameEmpty
	}
	if !strings.Contains(u.Email, "@") {
		return ErrInvalidEmail
	}
	if u.HashedPassword == "" {
		return ErrValidation
	}
	if u.Role != RoleUser && u.Role != RoleAdmin {
		return ErrValidation
	}
	return nil
}

// HasInWishlist reports whether the product is already in the wishlist.
func (u *User) HasInWishlist(productID uuid.UUID) bool {
	for _, id := range u.Wishlist {
		if id == productID {
			return true
		}
	}
	return false
}

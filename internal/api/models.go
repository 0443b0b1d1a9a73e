package api

import (
	"time"

	"github.com/google/uuid"
)

// Common request/response structures

// SignupRequest defines the payload for the signup endpoint.
type SignupRequest struct {
	Name     string `json:"name"     validate:"required,min=2"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
}

// UserResponse is the serialized form of a user. The password hash never
// leaves the server.
type UserResponse struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	Slug         string      `json:"slug"`
	Email        string      `json:"email"`
	Phone        string      `json:"phone,omitempty"`
	ProfileImage string      `json:"profileImg,omitempty"`
	Role         string      `json:"role"`
	Active       bool        `json:"active"`
	Wishlist     []uuid.UUID `json:"wishlist,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// CreateCategoryRequest defines the payload for category creation.
type CreateCategoryRequest struct {
	Name  string `json:"name"  validate:"required,min=2,max=32"`
	Image string `json:"image" validate:"omitempty"`
}

// CreateBrandRequest defines the payload for brand creation.
type CreateBrandRequest struct {
	Name  string `json:"name"  validate:"required,min=2,max=32"`
	Image string `json:"image" validate:"omitempty"`
}

// CreateSubCategoryRequest defines the payload for subcategory creation.
// Category may come from the body or from the parent route segment.
type CreateSubCategoryRequest struct {
	Name     string    `json:"name"     validate:"required,min=2,max=32"`
	Category uuid.UUID `json:"category" validate:"omitempty"`
}

// CreateProductRequest defines the payload for product creation.
type CreateProductRequest struct {
	Title              string      `json:"title"       validate:"required,min=3"`
	Description        string      `json:"description" validate:"required,min=20"`
	Quantity           int         `json:"quantity"    validate:"gte=0"`
	Price              float64     `json:"price"       validate:"gte=0"`
	PriceAfterDiscount *float64    `json:"priceAfterDiscount,omitempty"`
	Colors             []string    `json:"colors,omitempty"`
	ImageCover         string      `json:"imageCover,omitempty"`
	Images             []string    `json:"images,omitempty"`
	Category           uuid.UUID   `json:"category" validate:"required"`
	Subcategories      []uuid.UUID `json:"subcategories,omitempty"`
	Brand              *uuid.UUID  `json:"brand,omitempty"`
}

// CreateCouponRequest defines the payload for coupon creation.
type CreateCouponRequest struct {
	Name     string    `json:"name"     validate:"required"`
	Expire   time.Time `json:"expire"   validate:"required"`
	Discount float64   `json:"discount" validate:"gte=0,lte=100"`
}

// CreateUserRequest defines the payload for admin user creation.
type CreateUserRequest struct {
	Name     string `json:"name"     validate:"required,min=2"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Phone    string `json:"phone"    validate:"omitempty"`
	Role     string `json:"role"     validate:"omitempty,oneof=user admin"`
}

// ChangePasswordRequest defines the payload for the password change endpoint.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=6,max=72"`
}

// CreateReviewRequest defines the payload for review creation. Product may
// come from the body or from the parent route segment.
type CreateReviewRequest struct {
	Title   string    `json:"title"   validate:"omitempty"`
	Ratings float64   `json:"ratings" validate:"required,gte=1,lte=5"`
	Product uuid.UUID `json:"product" validate:"omitempty"`
}

// UpdateReviewRequest defines the payload for review updates.
type UpdateReviewRequest struct {
	Title   *string  `json:"title,omitempty"`
	Ratings *float64 `json:"ratings,omitempty"`
}

// AddCartItemRequest defines the payload for adding a product to the cart.
type AddCartItemRequest struct {
	Product  uuid.UUID `json:"productId" validate:"required"`
	Color    string    `json:"color"     validate:"omitempty"`
	Quantity int       `json:"quantity"  validate:"gte=0"`
}

// UpdateCartItemRequest defines the payload for changing a line's quantity.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

// ApplyCouponRequest defines the payload for applying a coupon to the cart.
type ApplyCouponRequest struct {
	Coupon string `json:"coupon" validate:"required"`
}

// CreateOrderRequest defines the payload for cash checkout.
type CreateOrderRequest struct {
	ShippingAddress ShippingAddressPayload `json:"shippingAddress"`
}

// ShippingAddressPayload mirrors the order's shipping address block.
type ShippingAddressPayload struct {
	Details    string `json:"details,omitempty"`
	Phone      string `json:"phone,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
}

// WishlistRequest defines the payload for wishlist mutation.
type WishlistRequest struct {
	Product uuid.UUID `json:"productId" validate:"required"`
}

// WishlistResponse wraps the wishlist product-id set.
type WishlistResponse struct {
	Results int         `json:"results"`
	Data    []uuid.UUID `json:"data"`
}

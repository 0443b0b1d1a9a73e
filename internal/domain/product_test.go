package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewProduct(t *testing.T) {
	in := NewProductInput{
		Title:       "Gaming Laptop",
		Description: "A laptop with a discrete GPU and a mechanical keyboard.",
		Quantity:    5,
		Price:       1500,
		Category:    uuid.New(),
	}

	p, err := NewProduct(in)
	if err != nil {
		t.Fatalf("NewProduct returned error: %v", err)
	}
	if p.Slug != "gaming-laptop" {
		t.Errorf("slug = %q, want %q", p.Slug, "gaming-laptop")
	}
	if p.RatingsAverage != 0 || p.RatingsQuantity != 0 {
		t.Error("new product has nonzero rating aggregates")
	}
}

func TestProductValidate(t *testing.T) {
	category := uuid.New()
	bad := func(mutate func(*NewProductInput)) error {
		in := NewProductInput{Title: "X", Price: 100, Quantity: 1, Category: category}
		mutate(&in)
		_, err := NewProduct(in)
		return err
	}

	if err := bad(func(in *NewProductInput) { in.Title = "" }); !errors.Is(err, ErrNameEmpty) {
		t.Errorf("empty title error = %v", err)
	}
	if err := bad(func(in *NewProductInput) { in.Price = -1 }); !errors.Is(err, ErrInvalidPrice) {
		t.Errorf("negative price error = %v", err)
	}
	if err := bad(func(in *NewProductInput) { in.Quantity = -1 }); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("negative quantity error = %v", err)
	}
	if err := bad(func(in *NewProductInput) { in.Category = uuid.Nil }); !errors.Is(err, ErrMissingReference) {
		t.Errorf("missing category error = %v", err)
	}

	discount := 100.0
	if err := bad(func(in *NewProductInput) { in.PriceAfterDiscount = &discount }); !errors.Is(err, ErrInvalidDiscountPrice) {
		t.Errorf("discount >= price error = %v", err)
	}

	ok := 50.0
	if err := bad(func(in *NewProductInput) { in.PriceAfterDiscount = &ok }); err != nil {
		t.Errorf("valid discount rejected: %v", err)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Gaming Laptop":    "gaming-laptop",
		"  Trimmed  ":      "trimmed",
		"Multi --- Hyphen": "multi-hyphen",
		"CamelCase123":     "camelcase123",
		"ünïcode":          "n-code",
		"":                 "",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

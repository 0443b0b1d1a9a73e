package postgres

import "github.com/souqhq/souq-api/internal/store"

// Collection specs for every entity type. Keyword search matches title and
// description on products and name everywhere else; numeric fields get
// numeric comparison and sort semantics.
var (
	CategoriesSpec = store.CollectionSpec{
		Table:      "categories",
		Entity:     "category",
		Searchable: []string{"name"},
	}

	BrandsSpec = store.CollectionSpec{
		Table:      "brands",
		Entity:     "brand",
		Searchable: []string{"name"},
	}

	SubCategoriesSpec = store.CollectionSpec{
		Table:      "subcategories",
		Entity:     "subcategory",
		Searchable: []string{"name"},
	}

	ProductsSpec = store.CollectionSpec{
		Table:      "products",
		Entity:     "product",
		Searchable: []string{"title", "description"},
		Numeric: []string{
			"price", "priceAfterDiscount", "quantity", "sold",
			"ratingsAverage", "ratingsQuantity",
		},
	}

	UsersSpec = store.CollectionSpec{
		Table:      "users",
		Entity:     "user",
		Searchable: []string{"name"},
	}

	CouponsSpec = store.CollectionSpec{
		Table:      "coupons",
		Entity:     "coupon",
		Searchable: []string{"name"},
		Numeric:    []string{"discount"},
	}

	CartsSpec = store.CollectionSpec{
		Table:  "carts",
		Entity: "cart",
		Numeric: []string{
			"totalCartPrice", "totalPriceAfterDiscount",
		},
	}

	OrdersSpec = store.CollectionSpec{
		Table:  "orders",
		Entity: "order",
		Numeric: []string{
			"taxPrice", "shippingPrice", "totalOrderPrice",
		},
	}

	ReviewsSpec = store.CollectionSpec{
		Table:      "reviews",
		Entity:     "review",
		Searchable: []string{"title"},
		Numeric:    []string{"ratings"},
	}
)

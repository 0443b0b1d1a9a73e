package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souqhq/souq-api/internal/domain"
	"github.com/souqhq/souq-api/internal/mocks"
	"github.com/souqhq/souq-api/internal/store"
)

type cartFixture struct {
	svc      *CartService
	carts    *mocks.MockDocumentStore[domain.Cart]
	products *mocks.MockDocumentStore[domain.Product]
	coupons  *mocks.MockDocumentStore[domain.Coupon]
	userID   uuid.UUID
}

func newCartFixture(t *testing.T) *cartFixture {
	t.Helper()
	f := &cartFixture{
		carts:    mocks.NewMockDocumentStore[domain.Cart](),
		products: mocks.NewMockDocumentStore[domain.Product](),
		coupons:  mocks.NewMockDocumentStore[domain.Coupon](),
		userID:   uuid.New(),
	}
	f.svc = NewCartService(f.carts, f.products, f.coupons, nil)
	return f
}

func (f *cartFixture) seedProduct(t *testing.T, price float64) *domain.Product {
	t.Helper()
	p, err := domain.NewProduct(domain.NewProductInput{
		Title:       "Widget",
		Description: "A widget with enough description to be plausible.",
		Quantity:    10,
		Price:       price,
		Category:    uuid.New(),
	})
	require.NoError(t, err)
	f.products.Seed(p.ID, p)
	return p
}

func TestCartAddItemCreatesCartLazily(t *testing.T) {
	t.Parallel()
	f := newCartFixture(t)
	ctx := context.Background()
	product := f.seedProduct(t, 25)

	_, err := f.svc.Get(ctx, f.userID)
	assert.True(t, store.IsNotFoundError(err))

	cart, err := f.svc.AddItem(ctx, f.userID, product.ID, 2, "red")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, product.ID, cart.Items[0].Product)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 25.0, cart.Items[0].Price)
	assert.Equal(t, 50.0, cart.TotalCartPrice)

	// The cart is persisted and retrievable now.
	stored, err := f.svc.Get(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, stored.ID)
}

func TestCartAddItemMergesSameProductAndColor(t *testing.T) {
	t.Parallel()
	f := newCartFixture(t)
	ctx := context.Background()
	product := f.seedProduct(t, 10)

	_, err := f.svc.AddItem(ctx, f.userID, product.ID, 1, "red")
	require.NoError(t, err)
	cart, err := f.svc.AddItem(ctx, f.userID, product.ID, 3, "red")
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 4, cart.Items[0].Quantity)
	assert.Equal(t, 40.0, cart.TotalCartPrice)

	// A different color is a separate line.
	cart, err = f.svc.AddItem(ctx, f.userID, product.ID, 1, "blue")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
}

func TestCartAddItemQuantityRules(t *testing.T) {
	t.Parallel()
	f := newCartFixture(t)
	ctx := context.Background()
	product := f.seedProduct(t, 10)

	// Zero means one.
	cart, err := f.svc.AddItem(ctx, f.userID, product.ID, 0, "")
	require.NoError(t, err)
	assert.Equal(t, 1, cart.Items[0].Quantity)

	_, err = f.svc.AddItem(ctx, f.userID, product.ID, -2, "")
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestCartAddItemUnknownProduct(t *testing.T) {
	t.Parallel()
	f := newCartFixture(t)

	_, err := f.svc.AddItem(context.Background(), f.userID, uuid.New(), 1, "")
	assert.True(t, store.IsNotFoundError(err))
}

func TestCartPriceSnapshotSurvivesCatalogChange(t *testing.T) {
	t.Parallel()
	f := newCartFixture(t)
	ctx := context.Background()
	product := f.seedProduct(t, 100)

	_, err := f.svc.AddItem(ctx, f.userID, product.ID, 1, "")
	require.NoError(t, err)

	// Reprice the catalog product after the line was added.
	_, err = f.products.Patch(ctx, product.ID, map[string]any{"price": 999})
	require.NoError(t, err)

	cart, err := f.svc.Get(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, cart.Items[0].Price)
}

func TestCartUpdateItemQuantity(t *testing.T) {
	t.Parallel()
	f := newCartFixture(t)
	ctx := context.Background()
	product := f.seedProduct(t, 10)

	cart, err := f.svc.AddItem(ctx, f.userID, product.ID, 1, "")
	require.NoError(t, err)
	lineID := cart.Items[0].ID

	cart, err = f.svc.UpdateItemQuantity(ctx, f.userID, lineID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 50.0, cart.TotalCartPrice)

	_, err = f.svc.UpdateItemQuantity(ctx, f.userID, uuid.New(), 2)
	assert.ErrorIs(t, err, ErrLineNotFound)

	_, err = f.svc.UpdateItemQuantity(ctx, f.userID, lineID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestCartRemoveItemAndClear(t *testing.T) {
	t.Parallel()
	f := newCartFixture(t)
	ctx := context.Background()
	product := f.seedProduct(t, 10)

	cart, err := f.svc.AddItem(ctx, f.userID, product.ID, 2, "")
	require.NoError(t, err)

	cart, err = f.svc.RemoveItem(ctx, f.userID, cart.Items[0].ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalCartPrice)

	_, err = f.svc.RemoveItem(ctx, f.userID, uuid.New())
	assert.ErrorIs(t, err, ErrLineNotFound)

	// Clear keeps the cart document itself.
	_, err = f.svc.AddItem(ctx, f.userID, product.ID, 1, "")
	require.NoError(t, err)
	cart, err = f.svc.Clear(ctx, f.userID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	stored, err := f.svc.Get(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, stored.ID)
}

func TestCartApplyCoupon(t *testing.T) {
	t.Parallel()
	f := newCartFixture(t)
	ctx := context.Background()
	product := f.seedProduct(t, 100)

	_, err := f.svc.AddItem(ctx, f.userID, product.ID, 1, "")
	require.NoError(t, err)

	live, err := domain.NewCoupon("LIVE10", time.Now().Add(time.Hour), 10)
	require.NoError(t, err)
	f.coupons.Seed(live.ID, live)

	cart, err := f.svc.ApplyCoupon(ctx, f.userID, "LIVE10")
	require.NoError(t, err)
	assert.Equal(t, 100.0, cart.TotalCartPrice)
	require.NotNil(t, cart.TotalPriceAfterDiscount)
	assert.Equal(t, 90.0, *cart.TotalPriceAfterDiscount)
}

func TestCartApplyExpiredCouponMutatesNothing(t *testing.T) {
	t.Parallel()
	f := newCartFixture(t)
	ctx := context.Background()
	product := f.seedProduct(t, 100)

	_, err := f.svc.AddItem(ctx, f.userID, product.ID, 1, "")
	require.NoError(t, err)

	expired := &domain.Coupon{
		ID:       uuid.New(),
		Name:     "OLD",
		Discount: 10,
		Expire:   time.Now().Add(-time.Hour),
	}
	f.coupons.Seed(expired.ID, expired)

	_, err = f.svc.ApplyCoupon(ctx, f.userID, "OLD")
	assert.ErrorIs(t, err, ErrCouponExpired)

	cart, err := f.svc.Get(ctx, f.userID)
	require.NoError(t, err)
	assert.Nil(t, cart.TotalPriceAfterDiscount)
}

func TestCartLineMutationClearsAppliedDiscount(t *testing.T) {
	t.Parallel()
	f := newCartFixture(t)
	ctx := context.Background()
	product := f.seedProduct(t, 100)

	_, err := f.svc.AddItem(ctx, f.userID, product.ID, 1, "")
	require.NoError(t, err)

	live, err := domain.NewCoupon("LIVE20", time.Now().Add(time.Hour), 20)
	require.NoError(t, err)
	f.coupons.Seed(live.ID, live)

	cart, err := f.svc.ApplyCoupon(ctx, f.userID, "LIVE20")
	require.NoError(t, err)
	require.NotNil(t, cart.TotalPriceAfterDiscount)

	// The discounted total was computed against the old plain total; any
	// line change drops it.
	cart, err = f.svc.AddItem(ctx, f.userID, product.ID, 1, "")
	require.NoError(t, err)
	assert.Equal(t, 200.0, cart.TotalCartPrice)
	assert.Nil(t, cart.TotalPriceAfterDiscount)
}

func TestCartApplyUnknownCoupon(t *testing.T) {
	t.Parallel()
	f := newCartFixture(t)

	_, err := f.svc.ApplyCoupon(context.Background(), f.userID, "NOPE")
	assert.True(t, store.IsNotFoundError(err))
}

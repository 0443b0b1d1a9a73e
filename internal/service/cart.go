package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/souqhq/souq-api/internal/domain"
	"github.com/souqhq/souq-api/internal/platform/logger"
	"github.com/souqhq/souq-api/internal/store"
)

// CartService maintains the authenticated user's cart: line merging, price
// snapshots, total recomputation and coupon application.
type CartService struct {
	carts    store.DocumentStore[domain.Cart]
	products store.DocumentStore[domain.Product]
	coupons  store.DocumentStore[domain.Coupon]
	logger   *slog.Logger
	now      func() time.Time
}

// NewCartService creates a CartService.
func NewCartService(
	carts store.DocumentStore[domain.Cart],
	products store.DocumentStore[domain.Product],
	coupons store.DocumentStore[domain.Coupon],
	log *slog.Logger,
) *CartService {
	if carts == nil || products == nil || coupons == nil {
		panic("cart service stores cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &CartService{
		carts:    carts,
		products: products,
		coupons:  coupons,
		logger:   log.With(slog.String("component", "cart_service")),
		now:      time.Now,
	}
}

// Get returns the user's cart. Returns store.ErrNotFound when the user has
// never added anything.
func (s *CartService) Get(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	return s.carts.FindOne(ctx, "user", userID)
}

// AddItem appends a line for (product, color) with the product's current
// price as a snapshot, or increments the quantity when such a line already
// exists. The cart is created lazily on the first add.
func (s *CartService) AddItem(
	ctx context.Context,
	userID, productID uuid.UUID,
	quantity int,
	color string,
) (*domain.Cart, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	cart, created, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if line := cart.FindItem(productID, color); line != nil {
		line.Quantity += quantity
	} else {
		cart.Items = append(cart.Items, domain.CartItem{
			ID:       uuid.New(),
			Product:  productID,
			Quantity: quantity,
			Color:    color,
			Price:    product.Price,
		})
	}
	cart.RecalcTotal()

	log.Debug("cart item added",
		slog.String("user_id", userID.String()),
		slog.String("product_id", productID.String()),
		slog.Int("quantity", quantity))
	return s.save(ctx, cart, created)
}

// UpdateItemQuantity sets a line's quantity. Returns ErrLineNotFound when
// the line does not belong to the user's cart.
func (s *CartService) UpdateItemQuantity(
	ctx context.Context,
	userID, lineID uuid.UUID,
	quantity int,
) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	cart, err := s.carts.FindOne(ctx, "user", userID)
	if err != nil {
		return nil, err
	}

	line := cart.FindItemByID(lineID)
	if line == nil {
		return nil, fmt.Errorf("%w: %s", ErrLineNotFound, lineID)
	}
	line.Quantity = quantity
	cart.RecalcTotal()

	return s.save(ctx, cart, false)
}

// RemoveItem deletes a line. A cart with zero lines remains a valid empty
// cart.
func (s *CartService) RemoveItem(ctx context.Context, userID, lineID uuid.UUID) (*domain.Cart, error) {
	cart, err := s.carts.FindOne(ctx, "user", userID)
	if err != nil {
		return nil, err
	}

	if !cart.RemoveItemByID(lineID) {
		return nil, fmt.Errorf("%w: %s", ErrLineNotFound, lineID)
	}
	cart.RecalcTotal()

	return s.save(ctx, cart, false)
}

// Clear removes all lines and resets the totals. The cart document itself
// survives; only checkout deletes it.
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	cart, err := s.carts.FindOne(ctx, "user", userID)
	if err != nil {
		return nil, err
	}

	cart.Items = []domain.CartItem{}
	cart.RecalcTotal()

	return s.save(ctx, cart, false)
}

// ApplyCoupon computes and stores totalPriceAfterDiscount for a live
// coupon. The plain total is never mutated; an expired coupon mutates
// nothing and reports ErrCouponExpired.
func (s *CartService) ApplyCoupon(ctx context.Context, userID uuid.UUID, code string) (*domain.Cart, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	coupon, err := s.coupons.FindOne(ctx, "name", code)
	if err != nil {
		return nil, err
	}
	if coupon.IsExpired(s.now()) {
		log.Debug("rejected expired coupon",
			slog.String("user_id", userID.String()),
			slog.String("coupon", code))
		return nil, fmt.Errorf("%w: %s", ErrCouponExpired, code)
	}

	cart, err := s.carts.FindOne(ctx, "user", userID)
	if err != nil {
		return nil, err
	}

	cart.ApplyDiscount(coupon.Discount)

	log.Info("coupon applied",
		slog.String("user_id", userID.String()),
		slog.String("coupon", code),
		slog.Float64("discount", coupon.Discount))
	return s.save(ctx, cart, false)
}

func (s *CartService) loadOrCreate(ctx context.Context, userID uuid.UUID) (*domain.Cart, bool, error) {
	cart, err := s.carts.FindOne(ctx, "user", userID)
	if err == nil {
		return cart, false, nil
	}
	if !store.IsNotFoundError(err) {
		return nil, false, err
	}
	cart, err = domain.NewCart(userID)
	if err != nil {
		return nil, false, err
	}
	return cart, true, nil
}

func (s *CartService) save(ctx context.Context, cart *domain.Cart, created bool) (*domain.Cart, error) {
	cart.UpdatedAt = s.now().UTC()
	if created {
		if err := s.carts.Insert(ctx, cart.ID, cart); err != nil {
			return nil, err
		}
		return cart, nil
	}
	return s.carts.Replace(ctx, cart.ID, cart)
}

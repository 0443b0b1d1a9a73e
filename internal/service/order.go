package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/souqhq/souq-api/internal/domain"
	"github.com/souqhq/souq-api/internal/events"
	"github.com/souqhq/souq-api/internal/platform/logger"
	"github.com/souqhq/souq-api/internal/query"
	"github.com/souqhq/souq-api/internal/store"
)

// OrderPricing carries the flat checkout surcharges.
type OrderPricing struct {
	TaxPrice      float64
	ShippingPrice float64
}

// OrderEvent is the payload published on order lifecycle events.
type OrderEvent struct {
	OrderID uuid.UUID `json:"order_id"`
	UserID  uuid.UUID `json:"user_id"`
	Total   float64   `json:"total"`
}

// txRunner executes fn within a database transaction.
type txRunner func(ctx context.Context, db *sql.DB, fn store.TxFn) error

// OrderService finalizes carts into orders and drives the paid/delivered
// transitions. Checkout runs in one transaction: the order insert, the
// per-line stock adjustments and the cart deletion all commit or roll back
// together.
type OrderService struct {
	// Resource serves order listing and retrieval.
	Resource *Resource[domain.Order]

	db      *sql.DB
	runTx   txRunner
	orders  store.DocumentStore[domain.Order]
	carts   store.DocumentStore[domain.Cart]
	stock   store.StockStore
	emitter events.Emitter
	pricing OrderPricing
	logger  *slog.Logger
	now     func() time.Time
}

// NewOrderService creates an OrderService.
func NewOrderService(
	db *sql.DB,
	orders store.DocumentStore[domain.Order],
	carts store.DocumentStore[domain.Cart],
	stock store.StockStore,
	emitter events.Emitter,
	pricing OrderPricing,
	log *slog.Logger,
) *OrderService {
	if orders == nil || carts == nil || stock == nil {
		panic("order service stores cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &OrderService{
		Resource: NewResource("order", orders, query.Shaper{DefaultLimit: 10}, log),
		db:       db,
		runTx:    store.RunInTransaction,
		orders:   orders,
		carts:    carts,
		stock:    stock,
		emitter:  emitter,
		pricing:  pricing,
		logger:   log.With(slog.String("component", "order_service")),
		now:      time.Now,
	}
}

// CreateCashOrder snapshots the user's cart into a cash order, decrements
// stock with a guarded update per line and deletes the cart. Insufficient
// stock on any line aborts the whole checkout.
func (s *OrderService) CreateCashOrder(
	ctx context.Context,
	userID uuid.UUID,
	address domain.ShippingAddress,
) (*domain.Order, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cart, err := s.carts.FindOne(ctx, "user", userID)
	if err != nil {
		return nil, err
	}

	order, err := domain.NewOrder(
		cart, s.pricing.TaxPrice, s.pricing.ShippingPrice, address, domain.PaymentMethodCash,
	)
	if err != nil {
		return nil, err
	}

	err = s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.orders.WithTx(tx).Insert(ctx, order.ID, order); err != nil {
			return err
		}
		stockTx := s.stock.WithTx(tx)
		for _, item := range order.Items {
			if err := stockTx.AdjustStock(ctx, item.Product, item.Quantity); err != nil {
				return err
			}
		}
		return s.carts.WithTx(tx).Delete(ctx, cart.ID)
	})
	if err != nil {
		return nil, err
	}

	log.Info("order placed",
		slog.String("order_id", order.ID.String()),
		slog.String("user_id", userID.String()),
		slog.Float64("total", order.TotalOrderPrice))

	s.emit(ctx, events.TypeOrderPlaced, order)
	return order, nil
}

// Get retrieves one order, restricted to its owner unless the requester is
// an admin.
func (s *OrderService) Get(ctx context.Context, orderID, userID uuid.UUID, isAdmin bool) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.User != userID {
		return nil, fmt.Errorf("%w: order belongs to another user", ErrForbidden)
	}
	return order, nil
}

// MarkPaid transitions the order to paid. The payment confirmation path may
// be replayed by the gateway; marking an already-paid order changes nothing
// and emits nothing.
func (s *OrderService) MarkPaid(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	paidAt := s.now().UTC()
	if !order.MarkPaid(paidAt) {
		log.Debug("ignoring paid transition replay", slog.String("order_id", orderID.String()))
		return order, nil
	}

	updated, err := s.orders.Patch(ctx, orderID, map[string]any{
		"isPaid": true,
		"paidAt": paidAt,
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, events.TypeOrderPaid, updated)
	return updated, nil
}

// MarkDelivered transitions the order to delivered; delivery before payment
// is rejected with ErrOrderNotPaid.
func (s *OrderService) MarkDelivered(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.IsPaid {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotPaid, orderID)
	}
	if order.IsDelivered {
		return order, nil
	}

	return s.orders.Patch(ctx, orderID, map[string]any{
		"isDelivered": true,
		"deliveredAt": s.now().UTC(),
	})
}

// emit publishes an order lifecycle event; delivery failures are logged,
// not surfaced, since the order mutation already committed.
func (s *OrderService) emit(ctx context.Context, eventType string, order *domain.Order) {
	if s.emitter == nil {
		return
	}
	event, err := events.New(eventType, OrderEvent{
		OrderID: order.ID,
		UserID:  order.User,
		Total:   order.TotalOrderPrice,
	})
	if err != nil {
		s.logger.Error("failed to build order event", slog.String("error", err.Error()))
		return
	}
	if err := s.emitter.Emit(ctx, event); err != nil {
		s.logger.Error("failed to emit order event",
			slog.String("error", err.Error()),
			slog.String("event_type", eventType),
			slog.String("order_id", order.ID.String()))
	}
}

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/souqhq/souq-api/internal/api"
	"github.com/souqhq/souq-api/internal/api/middleware"
	"github.com/souqhq/souq-api/internal/config"
	"github.com/souqhq/souq-api/internal/domain"
	"github.com/souqhq/souq-api/internal/events"
	"github.com/souqhq/souq-api/internal/platform/kafka"
	"github.com/souqhq/souq-api/internal/platform/postgres"
	"github.com/souqhq/souq-api/internal/query"
	"github.com/souqhq/souq-api/internal/service"
	"github.com/souqhq/souq-api/internal/service/auth"
)

// Default checkout surcharges. These are flat amounts applied to every
// order; per-order pricing would come from a pricing service.
const (
	defaultTaxPrice      = 0
	defaultShippingPrice = 0
)

// application holds the wired dependency graph.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	authHandler     *api.AuthHandler
	catalogHandler  *api.CatalogHandler
	couponHandler   *api.ResourceHandler[domain.Coupon]
	userHandler     *api.UserHandler
	reviewHandler   *api.ReviewHandler
	cartHandler     *api.CartHandler
	orderHandler    *api.OrderHandler
	wishlistHandler *api.WishlistHandler

	authMiddleware *middleware.AuthMiddleware
	metrics        *middleware.Metrics

	publisher *kafka.Publisher
}

// newApplication connects the database, applies migrations and wires every
// store, service and handler.
func newApplication(ctx context.Context, cfg *config.Config) (*application, error) {
	log := slog.Default()

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := postgres.RunMigrations(ctx, db); err != nil {
		return nil, err
	}

	// Stores
	categories := postgres.NewCollection[domain.Category](db, postgres.CategoriesSpec, log)
	brands := postgres.NewCollection[domain.Brand](db, postgres.BrandsSpec, log)
	subcategories := postgres.NewCollection[domain.SubCategory](db, postgres.SubCategoriesSpec, log)
	products := postgres.NewCollection[domain.Product](db, postgres.ProductsSpec, log)
	users := postgres.NewCollection[domain.User](db, postgres.UsersSpec, log)
	coupons := postgres.NewCollection[domain.Coupon](db, postgres.CouponsSpec, log)
	carts := postgres.NewCollection[domain.Cart](db, postgres.CartsSpec, log)
	orders := postgres.NewCollection[domain.Order](db, postgres.OrdersSpec, log)
	reviews := postgres.NewCollection[domain.Review](db, postgres.ReviewsSpec, log)
	ratings := postgres.NewRatingStore(db)
	stock := postgres.NewStockStore(db)

	// Auth
	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}
	hasher := auth.NewBcryptHasher()

	// Events
	emitter := events.NewInMemoryEmitter(log)
	var publisher *kafka.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		emitter.RegisterHandler(publisher)
	}

	// Services
	media := service.NewURLRewriter(cfg.Media.BaseURL)
	catalog := service.NewCatalog(categories, brands, subcategories, products, media, log)
	cartService := service.NewCartService(carts, products, coupons, log)
	reviewService := service.NewReviewService(reviews, products, ratings, log)
	orderService := service.NewOrderService(db, orders, carts, stock, emitter, service.OrderPricing{
		TaxPrice:      defaultTaxPrice,
		ShippingPrice: defaultShippingPrice,
	}, log)
	wishlistService := service.NewWishlistService(users, products, log)
	userResource := service.NewResource("user", users, query.Shaper{DefaultLimit: 10}, log,
		service.WithAfterLoad[domain.User](media.UserImage))
	couponResource := service.NewResource("coupon", coupons, query.Shaper{DefaultLimit: 10}, log)

	app := &application{
		config: cfg,
		logger: log,
		db:     db,

		authHandler:     api.NewAuthHandler(users, jwtService, hasher, log),
		catalogHandler:  api.NewCatalogHandler(catalog),
		couponHandler:   api.NewCouponHandler(couponResource),
		userHandler:     api.NewUserHandler(userResource, hasher, log),
		reviewHandler:   api.NewReviewHandler(reviewService),
		cartHandler:     api.NewCartHandler(cartService),
		orderHandler:    api.NewOrderHandler(orderService),
		wishlistHandler: api.NewWishlistHandler(wishlistService),

		authMiddleware: middleware.NewAuthMiddleware(jwtService),
		metrics:        middleware.NewMetrics(),

		publisher: publisher,
	}
	return app, nil
}

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails. Shutdown drains in-flight requests.
func (app *application) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:           app.setupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("server listening", slog.Int("port", app.config.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// Close releases held resources.
func (app *application) Close() {
	if app.publisher != nil {
		if err := app.publisher.Close(); err != nil {
			app.logger.Error("failed to close event publisher", slog.String("error", err.Error()))
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", slog.String("error", err.Error()))
		}
	}
}

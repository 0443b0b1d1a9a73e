package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/souqhq/souq-api/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.TraceMiddleware)
	r.Use(app.metrics.Middleware)

	authenticate := app.authMiddleware.Authenticate
	requireAdmin := app.authMiddleware.RequireAdmin

	r.Route("/api/v1", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/signup", app.authHandler.Signup)
		r.Post("/auth/login", app.authHandler.Login)
		r.Post("/auth/refresh", app.authHandler.Refresh)

		// Catalog reads are public.
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", app.catalogHandler.Categories.List)
			r.Get("/{id}", app.catalogHandler.Categories.Get)
			r.With(authenticate, requireAdmin).Post("/", app.catalogHandler.Categories.Create)
			r.With(authenticate, requireAdmin).Put("/{id}", app.catalogHandler.Categories.Update)
			r.With(authenticate, requireAdmin).Delete("/{id}", app.catalogHandler.Categories.Delete)

			// Nested subcategories scoped to the parent category.
			nested := app.catalogHandler.NestedSubCategories()
			r.Get("/{categoryId}/subcategories", nested.List)
			r.With(authenticate, requireAdmin).Post("/{categoryId}/subcategories", nested.Create)
		})

		r.Route("/brands", func(r chi.Router) {
			r.Get("/", app.catalogHandler.Brands.List)
			r.Get("/{id}", app.catalogHandler.Brands.Get)
			r.With(authenticate, requireAdmin).Post("/", app.catalogHandler.Brands.Create)
			r.With(authenticate, requireAdmin).Put("/{id}", app.catalogHandler.Brands.Update)
			r.With(authenticate, requireAdmin).Delete("/{id}", app.catalogHandler.Brands.Delete)
		})

		r.Route("/subcategories", func(r chi.Router) {
			r.Get("/", app.catalogHandler.SubCategories.List)
			r.Get("/{id}", app.catalogHandler.SubCategories.Get)
			r.With(authenticate, requireAdmin).Post("/", app.catalogHandler.SubCategories.Create)
			r.With(authenticate, requireAdmin).Put("/{id}", app.catalogHandler.SubCategories.Update)
			r.With(authenticate, requireAdmin).Delete("/{id}", app.catalogHandler.SubCategories.Delete)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", app.catalogHandler.Products.List)
			r.Get("/{id}", app.catalogHandler.Products.Get)
			r.With(authenticate, requireAdmin).Post("/", app.catalogHandler.Products.Create)
			r.With(authenticate, requireAdmin).Put("/{id}", app.catalogHandler.Products.Update)
			r.With(authenticate, requireAdmin).Delete("/{id}", app.catalogHandler.Products.Delete)

			// Nested reviews scoped to the product.
			r.Get("/{productId}/reviews", app.reviewHandler.List)
			r.With(authenticate).Post("/{productId}/reviews", app.reviewHandler.Create)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", app.reviewHandler.List)
			r.Get("/{id}", app.reviewHandler.Get)
			r.With(authenticate).Post("/", app.reviewHandler.Create)
			r.With(authenticate).Put("/{id}", app.reviewHandler.Update)
			r.With(authenticate).Delete("/{id}", app.reviewHandler.Delete)
		})

		r.Route("/coupons", func(r chi.Router) {
			r.Use(authenticate, requireAdmin)
			r.Get("/", app.couponHandler.List)
			r.Get("/{id}", app.couponHandler.Get)
			r.Post("/", app.couponHandler.Create)
			r.Put("/{id}", app.couponHandler.Update)
			r.Delete("/{id}", app.couponHandler.Delete)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(authenticate)

			// Self-service endpoints
			r.Get("/me", app.userHandler.GetMe)
			r.Put("/changeMyPassword", app.userHandler.ChangeMyPassword)

			// Admin account management
			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Get("/", app.userHandler.List)
				r.Get("/{id}", app.userHandler.Get)
				r.Post("/", app.userHandler.Create)
				r.Put("/{id}", app.userHandler.Update)
				r.Delete("/{id}", app.userHandler.Delete)
			})
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/", app.cartHandler.Get)
			r.Post("/", app.cartHandler.AddItem)
			r.Delete("/", app.cartHandler.Clear)
			r.Put("/applyCoupon", app.cartHandler.ApplyCoupon)
			r.Put("/{itemId}", app.cartHandler.UpdateItem)
			r.Delete("/{itemId}", app.cartHandler.RemoveItem)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/", app.wishlistHandler.Get)
			r.Post("/", app.wishlistHandler.Add)
			r.Delete("/{productId}", app.wishlistHandler.Remove)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/", app.orderHandler.List)
			r.Post("/", app.orderHandler.CreateCashOrder)
			r.Get("/{id}", app.orderHandler.Get)
			r.With(requireAdmin).Put("/{id}/pay", app.orderHandler.MarkPaid)
			r.With(requireAdmin).Put("/{id}/deliver", app.orderHandler.MarkDelivered)
		})
	})

	// Operational endpoints
	r.Handle("/metrics", app.metrics.Handler())
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}

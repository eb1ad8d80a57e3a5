package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/payflow/checkout-backend/internal/api/handlers"
	"github.com/payflow/checkout-backend/internal/config"
	"github.com/payflow/checkout-backend/internal/middleware"
	"github.com/payflow/checkout-backend/internal/services"
)

func NewRouter(cfg config.Config, checkout *services.CheckoutService, catalog *services.CatalogService) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.RateLimit(cfg.RateRPS), middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", promhttp.Handler())

	// ---------- checkout ----------
	// Paths match what the payment processor is configured to redirect to.
	r.Post("/create-checkout-session/{product_id}/", handlers.CreateCheckoutSession(checkout))
	r.Get("/success", handlers.Success(checkout))
	r.Get("/cancel/", handlers.Cancel(checkout))

	// ---------- catalog (read-only) ----------
	r.Get("/products", handlers.ListProducts(catalog))
	r.Get("/products/{id}", handlers.GetProduct(catalog))

	// ---------- transactions ----------
	r.Get("/transactions", handlers.ListTransactions(checkout))
	r.Get("/transactions/{id}", handlers.GetTransaction(checkout))

	return r
}

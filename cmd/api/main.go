package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/payflow/checkout-backend/internal/api"
	"github.com/payflow/checkout-backend/internal/config"
	"github.com/payflow/checkout-backend/internal/db"
	"github.com/payflow/checkout-backend/internal/logger"
	"github.com/payflow/checkout-backend/internal/metrics"
	"github.com/payflow/checkout-backend/internal/payment"
	"github.com/payflow/checkout-backend/internal/repository/postgres"
	"github.com/payflow/checkout-backend/internal/services"
	"github.com/payflow/checkout-backend/internal/worker"
)

var dbPool *pgxpool.Pool

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error
	dbPool, err = db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if os.Getenv("APP_MIGRATE") == "true" {
		if err := db.RunMigrations(ctx, dbPool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	metrics.Init()

	repos := postgres.NewRepositories(dbPool)
	wp := worker.NewPool(4)
	defer wp.Stop()

	gateway := payment.NewStripeGateway(cfg.StripeSecretKey, cfg.DomainURL)
	checkoutSvc := services.NewCheckoutService(
		repos.Products,
		repos.Transactions,
		repos.CheckoutEvents,
		gateway,
		wp,
		cfg.Currency,
	)
	catalogSvc := services.NewCatalogService(repos.Products)

	r := api.NewRouter(cfg, checkoutSvc, catalogSvc)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

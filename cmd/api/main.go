package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/savorbowl/storefront-backend/api/routes"
	"github.com/savorbowl/storefront-backend/internal/cart"
	"github.com/savorbowl/storefront-backend/internal/cartstore"
	"github.com/savorbowl/storefront-backend/internal/notify"
	"github.com/savorbowl/storefront-backend/pkg/config"
	"github.com/savorbowl/storefront-backend/pkg/logger"
	"github.com/savorbowl/storefront-backend/pkg/metrics"
	"github.com/savorbowl/storefront-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	storeProvider, err := cartstore.NewRedisProvider(redisClient, cfg.Pricing.CartTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store provider", err)
		os.Exit(1)
	}

	notifier, err := notify.NewLoggerNotifier(logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create notifier", err)
		os.Exit(1)
	}

	taxRate, err := cfg.Pricing.TaxRateDecimal()
	if err != nil {
		logg.Error(context.Background(), "invalid tax rate", err)
		os.Exit(1)
	}
	shippingFee, err := cfg.Pricing.ShippingFeeDecimal()
	if err != nil {
		logg.Error(context.Background(), "invalid shipping fee", err)
		os.Exit(1)
	}

	promRegistry := prometheus.NewRegistry()
	cartMetrics := metrics.NewCartMetrics(promRegistry)

	cartFactory, err := cart.NewFactory(cart.FactoryParams{
		Catalog:  cart.DefaultCatalog(),
		Stores:   storeProvider,
		Notifier: notifier,
		Metrics:  cartMetrics,
		Pricing:  cart.Pricing{TaxRate: taxRate, ShippingFee: shippingFee},
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart factory", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, redisClient, cartFactory, promRegistry),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

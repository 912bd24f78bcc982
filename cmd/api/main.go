package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ingenio-organico-app/ingenio-organico-app/api/controllers"
	"github.com/ingenio-organico-app/ingenio-organico-app/api/routes"
	"github.com/ingenio-organico-app/ingenio-organico-app/internal/adminauth"
	"github.com/ingenio-organico-app/ingenio-organico-app/internal/catalog"
	checkoutsvc "github.com/ingenio-organico-app/ingenio-organico-app/internal/checkout"
	"github.com/ingenio-organico-app/ingenio-organico-app/internal/media"
	"github.com/ingenio-organico-app/ingenio-organico-app/internal/orders"
	"github.com/ingenio-organico-app/ingenio-organico-app/internal/stats"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/config"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/db"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/logger"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/migrate"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/redis"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/storage/gcs"
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

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	pingers := map[string]controllers.Pinger{
		"postgres": dbClient,
		"redis":    redisClient,
	}

	var mediaService media.Service
	catalogRepo := catalog.NewRepository(dbClient.DB())

	if cfg.GCS.BucketName != "" {
		gcsClient, err := gcs.NewClient(context.Background(), cfg.GCS, cfg.GCP, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap object storage", err)
			os.Exit(1)
		}
		pingers["gcs"] = gcsClient

		mediaService, err = media.NewService(gcsClient, catalogRepo, cfg.GCS)
		if err != nil {
			logg.Error(context.Background(), "failed to create media service", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "object storage not configured, product images disabled")
	}

	catalogService, err := catalog.NewService(catalogRepo, dbClient, mediaService, mediaService)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	ordersRepo := orders.NewRepository(dbClient.DB())
	ordersService, err := orders.NewService(ordersRepo, dbClient, redisClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(catalogRepo, ordersService, cfg.Checkout)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	statsService, err := stats.NewService(ordersRepo, stats.NewRedisNotifier(redisClient), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create stats service", err)
		os.Exit(1)
	}

	authService, err := adminauth.NewService(cfg.Admin, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
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
		Addr: addr,
		Handler: routes.NewRouter(routes.Dependencies{
			Config:          cfg,
			Logger:          logg,
			Redis:           redisClient,
			Pingers:         pingers,
			AuthService:     authService,
			CatalogService:  catalogService,
			CheckoutService: checkoutService,
			OrdersService:   ordersService,
			StatsService:    statsService,
			MediaService:    mediaService,
			MetricsRegistry: prometheus.NewRegistry(),
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"net/http"
	"os"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/visionhut/visionhut-backend/api/routes"
	"github.com/visionhut/visionhut-backend/internal/audit"
	"github.com/visionhut/visionhut-backend/internal/categories"
	"github.com/visionhut/visionhut-backend/internal/coupons"
	"github.com/visionhut/visionhut-backend/internal/offers"
	"github.com/visionhut/visionhut-backend/internal/rules"
	"github.com/visionhut/visionhut-backend/internal/staff"
	"github.com/visionhut/visionhut-backend/pkg/bigquery"
	"github.com/visionhut/visionhut-backend/pkg/config"
	"github.com/visionhut/visionhut-backend/pkg/db"
	"github.com/visionhut/visionhut-backend/pkg/logger"
	"github.com/visionhut/visionhut-backend/pkg/metrics"
	"github.com/visionhut/visionhut-backend/pkg/migrate"
	"github.com/visionhut/visionhut-backend/pkg/pubsub"
	"github.com/visionhut/visionhut-backend/pkg/redis"
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

	var auditPublisher *gcppubsub.Publisher
	var warehouse bigquery.Pinger
	if cfg.GCP.ProjectID != "" {
		psClient, err := pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap pubsub", err)
			os.Exit(1)
		}
		defer func() {
			if err := psClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing pubsub", err)
			}
		}()
		if cfg.FeatureFlags.AuditPublishEvents {
			auditPublisher = psClient.CalculationPublisher()
		}

		bqClient, err := bigquery.NewClient(context.Background(), cfg.GCP, cfg.BigQuery, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap bigquery", err)
			os.Exit(1)
		}
		defer func() {
			if err := bqClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing bigquery", err)
			}
		}()
		warehouse = bqClient
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	calcMetrics := metrics.NewCalculationMetrics(registry)

	conn := dbClient.DB()
	ruleRepo := rules.NewRepository(conn)
	couponRepo := coupons.NewRepository(conn)
	categoryRepo := categories.NewRepository(conn)

	staffService, err := staff.NewService(staff.NewRepository(conn), cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create staff service", err)
		os.Exit(1)
	}

	recorder, err := audit.NewRecorder(audit.NewRepository(conn), auditPublisher, cfg.PubSub.CalculationTopic, calcMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create audit recorder", err)
		os.Exit(1)
	}

	offersService, err := offers.NewService(ruleRepo, categoryRepo, couponRepo, recorder, calcMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create offers service", err)
		os.Exit(1)
	}

	ruleService, err := rules.NewService(ruleRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create rule service", err)
		os.Exit(1)
	}
	couponService, err := coupons.NewService(couponRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create coupon service", err)
		os.Exit(1)
	}
	categoryService, err := categories.NewService(categoryRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create category discount service", err)
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
		Handler: routes.NewRouter(routes.Deps{
			Config:          cfg,
			Logger:          logg,
			DB:              dbClient,
			Redis:           redisClient,
			BigQuery:        warehouse,
			Registry:        registry,
			StaffService:    staffService,
			OffersService:   offersService,
			RuleService:     ruleService,
			CouponService:   couponService,
			CategoryService: categoryService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

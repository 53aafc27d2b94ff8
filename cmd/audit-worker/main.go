package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/visionhut/visionhut-backend/internal/audit"
	"github.com/visionhut/visionhut-backend/pkg/bigquery"
	"github.com/visionhut/visionhut-backend/pkg/config"
	"github.com/visionhut/visionhut-backend/pkg/logger"
	"github.com/visionhut/visionhut-backend/pkg/outbox/idempotency"
	"github.com/visionhut/visionhut-backend/pkg/pubsub"
	"github.com/visionhut/visionhut-backend/pkg/redis"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "audit-worker"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "audit-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	requireResource(ctx, logg, "redis", err)
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(ctx, "failed to close redis client", err)
		}
	}()

	pubsubClient, err := pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
	requireResource(ctx, logg, "pubsub", err)
	defer func() {
		if err := pubsubClient.Close(); err != nil {
			logg.Error(ctx, "failed to close pubsub client", err)
		}
	}()

	bqClient, err := bigquery.NewClient(context.Background(), cfg.GCP, cfg.BigQuery, logg)
	requireResource(ctx, logg, "bigquery client", err)
	defer func() {
		if err := bqClient.Close(); err != nil {
			logg.Error(ctx, "failed to close bigquery client", err)
		}
	}()

	subscription := pubsubClient.CalculationSubscription()
	if subscription == nil {
		requireResource(ctx, logg, "calculation subscription", errors.New("subscription not configured"))
	}

	manager, err := idempotency.NewManager(redisClient, cfg.PubSub.IdempotencyTTL)
	requireResource(ctx, logg, "idempotency manager", err)

	writer, err := audit.NewWarehouseWriter(bqClient, cfg.BigQuery.CalculationsTable, audit.RetryPolicy{})
	requireResource(ctx, logg, "warehouse writer", err)

	worker, err := audit.NewWorker(subscription, audit.EventHandlerFunc(func(ctx context.Context, event audit.CalculationEvent) error {
		return writer.Write(ctx, event)
	}), manager, logg)
	requireResource(ctx, logg, "audit worker", err)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	runCtx = logg.WithFields(runCtx, map[string]any{"env": cfg.App.Env})
	logg.Info(runCtx, "audit worker ready")

	if err := worker.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(runCtx, "audit worker failed", err)
		os.Exit(1)
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}

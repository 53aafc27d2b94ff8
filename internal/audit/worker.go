package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/visionhut/visionhut-backend/pkg/logger"
)

const auditConsumerName = "audit-worker"

// EventHandler processes a decoded calculation event.
type EventHandler interface {
	Handle(ctx context.Context, event CalculationEvent) error
}

// EventHandlerFunc adapts functions to the EventHandler interface.
type EventHandlerFunc func(ctx context.Context, event CalculationEvent) error

// Handle calls the underlying function.
func (fn EventHandlerFunc) Handle(ctx context.Context, event CalculationEvent) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, event)
}

type idempotencyChecker interface {
	CheckAndMarkProcessed(ctx context.Context, consumer string, eventID uuid.UUID) (bool, error)
	Delete(ctx context.Context, consumer string, eventID uuid.UUID) error
}

// Worker consumes calculation events from Pub/Sub and hands each one to the
// handler exactly once per audit id.
type Worker struct {
	subscription *gcppubsub.Subscriber
	handler      EventHandler
	manager      idempotencyChecker
	logg         *logger.Logger
}

// NewWorker creates a calculation event worker.
func NewWorker(subscription *gcppubsub.Subscriber, handler EventHandler, manager idempotencyChecker, logg *logger.Logger) (*Worker, error) {
	if subscription == nil {
		return nil, errors.New("calculation subscription is required")
	}
	if handler == nil {
		return nil, errors.New("event handler is required")
	}
	if manager == nil {
		return nil, errors.New("idempotency manager is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	return &Worker{
		subscription: subscription,
		handler:      handler,
		manager:      manager,
		logg:         logg,
	}, nil
}

type processResult struct {
	nack bool
}

// Run consumes calculation messages until the context is canceled.
func (w *Worker) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return w.subscription.Receive(ctx, func(innerCtx context.Context, msg *gcppubsub.Message) {
		if w.process(innerCtx, msg).nack {
			msg.Nack()
			return
		}
		msg.Ack()
	})
}

func (w *Worker) process(ctx context.Context, msg *gcppubsub.Message) processResult {
	fields := map[string]any{"message_id": msg.ID}
	logCtx := w.logg.WithFields(ctx, fields)

	event, err := decodeEvent(msg)
	if err != nil {
		fields["error"] = err.Error()
		w.logg.Warn(w.logg.WithFields(ctx, fields), "invalid calculation event")
		return processResult{}
	}
	fields["audit_id"] = event.AuditID
	fields["occurred_at"] = event.OccurredAt.Format(time.RFC3339Nano)
	logCtx = w.logg.WithFields(ctx, fields)

	auditID, err := uuid.Parse(event.AuditID)
	if err != nil {
		w.logg.Warn(logCtx, "invalid audit id")
		return processResult{}
	}

	already, err := w.manager.CheckAndMarkProcessed(logCtx, auditConsumerName, auditID)
	if err != nil {
		w.logg.Error(logCtx, "idempotency check failed", err)
		return processResult{nack: true}
	}
	if already {
		w.logg.Info(logCtx, "event already processed")
		return processResult{}
	}

	if err := w.handler.Handle(logCtx, event); err != nil {
		w.logg.Error(logCtx, "handler error", err)
		_ = w.manager.Delete(logCtx, auditConsumerName, auditID)
		return processResult{nack: true}
	}

	w.logg.Info(logCtx, "calculation event loaded")
	return processResult{}
}

func decodeEvent(msg *gcppubsub.Message) (CalculationEvent, error) {
	var event CalculationEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		return event, fmt.Errorf("decode calculation event: %w", err)
	}
	if event.AuditID == "" {
		event.AuditID = msg.Attributes["audit_id"]
	}
	if event.AuditID == "" {
		return event, errors.New("audit_id missing")
	}
	if event.OccurredAt.IsZero() {
		if raw := msg.Attributes["occurred_at"]; raw != "" {
			if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
				event.OccurredAt = parsed
			}
		}
	}
	return event, nil
}

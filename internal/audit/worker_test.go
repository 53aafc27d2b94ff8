package audit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/visionhut/visionhut-backend/pkg/logger"
)

func TestDecodeEvent(t *testing.T) {
	auditID := uuid.NewString()
	occurred := time.Date(2026, 2, 14, 10, 30, 0, 0, time.UTC)
	event := CalculationEvent{
		AuditID:      auditID,
		FrameBrand:   "RAYBAN",
		FramePrice:   decimal.NewFromInt(5000),
		LensItemCode: "LENS-AR",
		LensPrice:    decimal.NewFromInt(3000),
		BaseTotal:    decimal.NewFromInt(8000),
		FinalPayable: decimal.NewFromInt(6500),
		TotalSavings: decimal.NewFromInt(1500),
		OccurredAt:   occurred,
	}
	data, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}

	decoded, err := decodeEvent(&gcppubsub.Message{ID: "msg-1", Data: data})
	if err != nil {
		t.Fatalf("decode event: %v", err)
	}
	if decoded.AuditID != auditID {
		t.Fatalf("unexpected audit id %s", decoded.AuditID)
	}
	if !decoded.FinalPayable.Equal(decimal.NewFromInt(6500)) {
		t.Fatalf("unexpected final payable %s", decoded.FinalPayable)
	}
	if !decoded.OccurredAt.Equal(occurred) {
		t.Fatalf("unexpected occurred at %v", decoded.OccurredAt)
	}
}

func TestDecodeEventFallsBackToAttributes(t *testing.T) {
	auditID := uuid.NewString()
	occurred := time.Date(2026, 2, 14, 10, 30, 0, 0, time.UTC)
	msg := &gcppubsub.Message{
		Data: []byte(`{"frame_brand":"TITAN"}`),
		Attributes: map[string]string{
			"audit_id":    auditID,
			"occurred_at": occurred.Format(time.RFC3339Nano),
		},
	}

	decoded, err := decodeEvent(msg)
	if err != nil {
		t.Fatalf("decode event: %v", err)
	}
	if decoded.AuditID != auditID {
		t.Fatalf("unexpected audit id %s", decoded.AuditID)
	}
	if !decoded.OccurredAt.Equal(occurred) {
		t.Fatalf("unexpected occurred at %v", decoded.OccurredAt)
	}
}

func TestProcessAlreadyProcessed(t *testing.T) {
	manager := &stubManager{checkResult: true}
	handler := &stubHandler{}
	worker := newTestWorker(t, handler, manager)

	res := worker.process(context.Background(), buildCalculationMessage(t))
	if res.nack {
		t.Fatalf("expected ack, got nack")
	}
	if handler.called {
		t.Fatal("handler should not be invoked when already processed")
	}
	if len(manager.checked) != 1 {
		t.Fatalf("expected check once, got %d", len(manager.checked))
	}
}

func TestProcessHandlerErrorRetries(t *testing.T) {
	manager := &stubManager{}
	handler := &stubHandler{err: errors.New("boom")}
	worker := newTestWorker(t, handler, manager)

	res := worker.process(context.Background(), buildCalculationMessage(t))
	if !res.nack {
		t.Fatalf("expected nack on handler error")
	}
	if !handler.called {
		t.Fatal("handler should be invoked")
	}
	if len(manager.deleted) != 1 {
		t.Fatalf("expected idempotency delete on failure")
	}
}

func TestProcessInvalidPayload(t *testing.T) {
	manager := &stubManager{}
	handler := &stubHandler{}
	worker := newTestWorker(t, handler, manager)

	res := worker.process(context.Background(), &gcppubsub.Message{Data: []byte("invalid json")})
	if res.nack {
		t.Fatalf("invalid payload should ack")
	}
	if handler.called {
		t.Fatal("handler should not be invoked")
	}
	if len(manager.checked) != 0 {
		t.Fatalf("idempotency manager should not be touched")
	}
}

func TestProcessIdempotencyFailureNacks(t *testing.T) {
	manager := &stubManager{checkErr: errors.New("redis down")}
	handler := &stubHandler{}
	worker := newTestWorker(t, handler, manager)

	res := worker.process(context.Background(), buildCalculationMessage(t))
	if !res.nack {
		t.Fatalf("expected nack when idempotency check fails")
	}
	if handler.called {
		t.Fatal("handler should not run on idempotency failure")
	}
}

func buildCalculationMessage(t *testing.T) *gcppubsub.Message {
	t.Helper()
	event := CalculationEvent{
		AuditID:      uuid.NewString(),
		FrameBrand:   "RAYBAN",
		FramePrice:   decimal.NewFromInt(5000),
		LensItemCode: "LENS-AR",
		LensPrice:    decimal.NewFromInt(3000),
		BaseTotal:    decimal.NewFromInt(8000),
		FinalPayable: decimal.NewFromInt(8000),
		OccurredAt:   time.Now().UTC(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}
	return &gcppubsub.Message{ID: "msg-1", Data: data}
}

func newTestWorker(t *testing.T, handler EventHandler, manager *stubManager) *Worker {
	t.Helper()
	return &Worker{
		handler: handler,
		manager: manager,
		logg:    logger.New(logger.Options{ServiceName: "audit-worker-test"}),
	}
}

type stubHandler struct {
	called bool
	event  CalculationEvent
	err    error
}

func (h *stubHandler) Handle(ctx context.Context, event CalculationEvent) error {
	h.called = true
	h.event = event
	return h.err
}

type stubManager struct {
	checkResult bool
	checkErr    error
	deleteErr   error
	checked     []uuid.UUID
	deleted     []uuid.UUID
}

func (s *stubManager) CheckAndMarkProcessed(ctx context.Context, consumer string, eventID uuid.UUID) (bool, error) {
	s.checked = append(s.checked, eventID)
	return s.checkResult, s.checkErr
}

func (s *stubManager) Delete(ctx context.Context, consumer string, eventID uuid.UUID) error {
	s.deleted = append(s.deleted, eventID)
	return s.deleteErr
}

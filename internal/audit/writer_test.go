package audit

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/api/googleapi"

	pkgbigquery "github.com/visionhut/visionhut-backend/pkg/bigquery"
	"github.com/visionhut/visionhut-backend/pkg/types"
)

func TestNewWarehouseWriterValidation(t *testing.T) {
	if _, err := NewWarehouseWriter(nil, "calculation_events", RetryPolicy{}); err == nil {
		t.Fatal("expected error when client missing")
	}
	if _, err := NewWarehouseWriter(&pkgbigquery.Client{}, "  ", RetryPolicy{}); err == nil {
		t.Fatal("expected error when table missing")
	}
}

func TestWriterRetriesOnTransientError(t *testing.T) {
	writer, fake := newWriterWithFakeInserter(t)
	fake.responses = []error{
		&googleapi.Error{Code: http.StatusServiceUnavailable},
		nil,
	}

	if err := writer.Write(context.Background(), testEvent()); err != nil {
		t.Fatalf("unexpected error writing row: %v", err)
	}
	if len(fake.calls) != 2 {
		t.Fatalf("expected two insert attempts, got %d", len(fake.calls))
	}
	if fake.calls[1].table != "calculation_events" {
		t.Fatalf("unexpected table on retry: %s", fake.calls[1].table)
	}
}

func TestWriterGivesUpOnPermanentError(t *testing.T) {
	writer, fake := newWriterWithFakeInserter(t)
	fake.responses = []error{
		&googleapi.Error{Code: http.StatusBadRequest},
	}

	if err := writer.Write(context.Background(), testEvent()); err == nil {
		t.Fatal("expected error on permanent failure")
	}
	if len(fake.calls) != 1 {
		t.Fatalf("expected single attempt, got %d", len(fake.calls))
	}
}

func TestRowFromEvent(t *testing.T) {
	event := testEvent()
	event.CouponCode = "WELCOME10"
	event.AppliedOffers = types.AppliedOffers{{RuleCode: "YOPO_DEFAULT"}}

	row := rowFromEvent(event)
	if row.AuditID != event.AuditID {
		t.Fatalf("unexpected audit id %s", row.AuditID)
	}
	if row.FinalPayable != "6500" {
		t.Fatalf("unexpected final payable %s", row.FinalPayable)
	}
	if row.CouponCode == nil || *row.CouponCode != "WELCOME10" {
		t.Fatal("expected coupon code to carry over")
	}
	if row.RequestID != nil {
		t.Fatal("expected empty request id to stay null")
	}
	if !row.AppliedOffers.Valid {
		t.Fatal("expected applied offers json to be valid")
	}
}

func testEvent() CalculationEvent {
	return CalculationEvent{
		AuditID:      "0c8a2f74-1111-4222-8333-944445555666",
		FrameBrand:   "RAYBAN",
		FramePrice:   decimal.NewFromInt(5000),
		LensItemCode: "LENS-AR",
		LensPrice:    decimal.NewFromInt(3000),
		BaseTotal:    decimal.NewFromInt(8000),
		FinalPayable: decimal.NewFromInt(6500),
		TotalSavings: decimal.NewFromInt(1500),
		OccurredAt:   time.Date(2026, 2, 14, 10, 30, 0, 0, time.UTC),
	}
}

type insertCall struct {
	table    string
	rowCount int
}

type fakeInserter struct {
	responses []error
	calls     []insertCall
}

func (f *fakeInserter) InsertRows(ctx context.Context, table string, rows []any) error {
	f.calls = append(f.calls, insertCall{table: table, rowCount: len(rows)})
	if len(f.responses) == 0 {
		return nil
	}
	err := f.responses[0]
	f.responses = f.responses[1:]
	return err
}

func newWriterWithFakeInserter(t *testing.T) (*WarehouseWriter, *fakeInserter) {
	t.Helper()
	fake := &fakeInserter{}
	return &WarehouseWriter{
		client: fake,
		table:  "calculation_events",
		retry: RetryPolicy{
			MaxAttempts:    3,
			InitialBackoff: time.Millisecond,
			MaximumBackoff: 2 * time.Millisecond,
		},
	}, fake
}

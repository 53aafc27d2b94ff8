package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/visionhut/visionhut-backend/internal/offers"
)

type stubCalculationService struct {
	result *offers.CalculationResult
	err    error
	input  *offers.CalculationInput
}

func (s *stubCalculationService) Calculate(ctx context.Context, input *offers.CalculationInput) (*offers.CalculationResult, error) {
	s.input = input
	return s.result, s.err
}

func TestCalculateSuccess(t *testing.T) {
	svc := &stubCalculationService{result: &offers.CalculationResult{
		BaseTotal:    decimal.NewFromInt(8000),
		FinalPayable: decimal.NewFromInt(6500),
		TotalSavings: decimal.NewFromInt(1500),
	}}
	handler := Calculate(svc, testLogger())

	body := `{
		"frame": {"brand": " RAYBAN ", "sub_category": "AVIATOR", "price": "5000", "product_type": "FRAME"},
		"lens": {"item_code": "LENS-AR", "price": "3000", "yopo_eligible": true},
		"customer_category": "STUDENT",
		"coupon_code": "WELCOME10"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/offers/calculate", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.input == nil {
		t.Fatal("expected service to receive input")
	}
	if svc.input.Frame.Brand != "RAYBAN" {
		t.Fatalf("expected trimmed brand, got %q", svc.input.Frame.Brand)
	}
	if !svc.input.Lens.YopoEligible {
		t.Fatal("expected lens yopo eligibility to carry over")
	}
	if svc.input.CouponCode != "WELCOME10" {
		t.Fatalf("unexpected coupon code %q", svc.input.CouponCode)
	}

	var envelope struct {
		Data offers.CalculationResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Data.FinalPayable.Equal(decimal.NewFromInt(6500)) {
		t.Fatalf("unexpected final payable %s", envelope.Data.FinalPayable)
	}
}

func TestCalculateMapsSecondPair(t *testing.T) {
	svc := &stubCalculationService{result: &offers.CalculationResult{}}
	handler := Calculate(svc, testLogger())

	body := `{
		"frame": {"brand": "TITAN", "price": "4000"},
		"lens": {"item_code": "LENS-BLU", "price": "2500"},
		"second_pair": {"frame_price": "2000", "lens_price": "1500"}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/offers/calculate", bytes.NewReader([]byte(body)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.input.SecondPair == nil || !svc.input.SecondPair.Enabled {
		t.Fatal("expected second pair to be enabled when provided")
	}
	if !svc.input.SecondPair.FramePrice.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("unexpected second pair frame price %s", svc.input.SecondPair.FramePrice)
	}
}

func TestCalculateRejectsMissingFrameBrand(t *testing.T) {
	svc := &stubCalculationService{result: &offers.CalculationResult{}}
	handler := Calculate(svc, testLogger())

	body := `{"frame": {"price": "5000"}, "lens": {"item_code": "LENS-AR", "price": "3000"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/offers/calculate", bytes.NewReader([]byte(body)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if svc.input != nil {
		t.Fatal("service should not be called on validation failure")
	}
}

func TestCalculateRejectsUnknownProductType(t *testing.T) {
	svc := &stubCalculationService{result: &offers.CalculationResult{}}
	handler := Calculate(svc, testLogger())

	body := `{"frame": {"brand": "TITAN", "price": "5000", "product_type": "watch"}, "lens": {"item_code": "LENS-AR", "price": "3000"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/offers/calculate", bytes.NewReader([]byte(body)))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

package audit

import (
	"encoding/json"
	"time"

	cbigquery "cloud.google.com/go/bigquery"
)

// CalculationRow mirrors the calculation_events BigQuery schema.
type CalculationRow struct {
	AuditID          string             `bigquery:"audit_id"`
	RequestID        *string            `bigquery:"request_id"`
	FrameBrand       string             `bigquery:"frame_brand"`
	FrameSubCategory *string            `bigquery:"frame_sub_category"`
	FramePrice       string             `bigquery:"frame_price"`
	LensItemCode     string             `bigquery:"lens_item_code"`
	LensPrice        string             `bigquery:"lens_price"`
	CustomerCategory *string            `bigquery:"customer_category"`
	CouponCode       *string            `bigquery:"coupon_code"`
	BaseTotal        string             `bigquery:"base_total"`
	FinalPayable     string             `bigquery:"final_payable"`
	TotalSavings     string             `bigquery:"total_savings"`
	Locked           bool               `bigquery:"locked"`
	AppliedOffers    cbigquery.NullJSON `bigquery:"applied_offers"`
	PriceComponents  cbigquery.NullJSON `bigquery:"price_components"`
	OccurredAt       time.Time          `bigquery:"occurred_at"`
}

func rowFromEvent(event CalculationEvent) CalculationRow {
	row := CalculationRow{
		AuditID:      event.AuditID,
		FrameBrand:   event.FrameBrand,
		FramePrice:   event.FramePrice.String(),
		LensItemCode: event.LensItemCode,
		LensPrice:    event.LensPrice.String(),
		BaseTotal:    event.BaseTotal.String(),
		FinalPayable: event.FinalPayable.String(),
		TotalSavings: event.TotalSavings.String(),
		Locked:       event.Locked,
		OccurredAt:   event.OccurredAt.UTC(),
	}
	if event.RequestID != "" {
		row.RequestID = &event.RequestID
	}
	if event.FrameSubCategory != "" {
		row.FrameSubCategory = &event.FrameSubCategory
	}
	if event.CustomerCategory != "" {
		row.CustomerCategory = &event.CustomerCategory
	}
	if event.CouponCode != "" {
		row.CouponCode = &event.CouponCode
	}
	if len(event.AppliedOffers) > 0 {
		if raw, err := json.Marshal(event.AppliedOffers); err == nil {
			row.AppliedOffers = cbigquery.NullJSON{JSONVal: string(raw), Valid: true}
		}
	}
	if len(event.PriceComponents) > 0 {
		if raw, err := json.Marshal(event.PriceComponents); err == nil {
			row.PriceComponents = cbigquery.NullJSON{JSONVal: string(raw), Valid: true}
		}
	}
	return row
}

package audit

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/visionhut/visionhut-backend/pkg/db/models"
	"github.com/visionhut/visionhut-backend/pkg/types"
)

// CalculationEvent is the wire payload published after each calculation.
// The audit worker consumes it and loads it into the warehouse.
type CalculationEvent struct {
	AuditID          string                `json:"audit_id"`
	RequestID        string                `json:"request_id,omitempty"`
	FrameBrand       string                `json:"frame_brand"`
	FrameSubCategory string                `json:"frame_sub_category,omitempty"`
	FramePrice       decimal.Decimal       `json:"frame_price"`
	LensItemCode     string                `json:"lens_item_code"`
	LensPrice        decimal.Decimal       `json:"lens_price"`
	CustomerCategory string                `json:"customer_category,omitempty"`
	CouponCode       string                `json:"coupon_code,omitempty"`
	BaseTotal        decimal.Decimal       `json:"base_total"`
	FinalPayable     decimal.Decimal       `json:"final_payable"`
	TotalSavings     decimal.Decimal       `json:"total_savings"`
	Locked           bool                  `json:"locked"`
	AppliedOffers    types.AppliedOffers   `json:"applied_offers,omitempty"`
	PriceComponents  types.PriceComponents `json:"price_components,omitempty"`
	OccurredAt       time.Time             `json:"occurred_at"`
}

func eventFromAudit(audit *models.CalculationAudit, occurredAt time.Time) CalculationEvent {
	event := CalculationEvent{
		AuditID:         audit.ID.String(),
		FrameBrand:      audit.FrameBrand,
		FramePrice:      audit.FramePrice,
		LensItemCode:    audit.LensItemCode,
		LensPrice:       audit.LensPrice,
		BaseTotal:       audit.BaseTotal,
		FinalPayable:    audit.FinalPayable,
		TotalSavings:    audit.TotalSavings,
		Locked:          audit.Locked,
		AppliedOffers:   audit.AppliedOffers,
		PriceComponents: audit.PriceComponents,
		OccurredAt:      occurredAt.UTC(),
	}
	if audit.RequestID != nil {
		event.RequestID = *audit.RequestID
	}
	if audit.FrameSubCategory != nil {
		event.FrameSubCategory = *audit.FrameSubCategory
	}
	if audit.CustomerCategory != nil {
		event.CustomerCategory = *audit.CustomerCategory
	}
	if audit.CouponCode != nil {
		event.CouponCode = *audit.CouponCode
	}
	return event
}

package offers

import (
	"github.com/shopspring/decimal"

	"github.com/visionhut/visionhut-backend/pkg/types"
)

// StageSummary breaks the total savings down by pipeline stage.
type StageSummary struct {
	PrimarySavings    decimal.Decimal `json:"primary_savings"`
	SecondPairSavings decimal.Decimal `json:"second_pair_savings"`
	CategorySavings   decimal.Decimal `json:"category_savings"`
	BonusSavings      decimal.Decimal `json:"bonus_savings"`
	CouponSavings     decimal.Decimal `json:"coupon_savings"`
}

// CalculationResult is the full output of one calculation.
type CalculationResult struct {
	FramePrice      decimal.Decimal       `json:"frame_price"`
	LensPrice       decimal.Decimal       `json:"lens_price"`
	BaseTotal       decimal.Decimal       `json:"base_total"`
	FinalPayable    decimal.Decimal       `json:"final_payable"`
	TotalSavings    decimal.Decimal       `json:"total_savings"`
	Locked          bool                  `json:"locked"`
	AppliedOffers   types.AppliedOffers   `json:"applied_offers"`
	PriceComponents types.PriceComponents `json:"price_components"`
	Stages          StageSummary          `json:"stages"`
	Upsell          *UpsellSuggestion     `json:"upsell,omitempty"`
}

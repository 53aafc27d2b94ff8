package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/visionhut/visionhut-backend/pkg/types"
)

// CalculationAudit is the best-effort record written after each price
// calculation. Failures to persist it never surface to the caller.
type CalculationAudit struct {
	ID               uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	RequestID        *string               `gorm:"column:request_id"`
	FrameBrand       string                `gorm:"column:frame_brand;not null"`
	FrameSubCategory *string               `gorm:"column:frame_sub_category"`
	FramePrice       decimal.Decimal       `gorm:"column:frame_price;type:numeric(12,2);not null"`
	LensItemCode     string                `gorm:"column:lens_item_code;not null"`
	LensPrice        decimal.Decimal       `gorm:"column:lens_price;type:numeric(12,2);not null"`
	CustomerCategory *string               `gorm:"column:customer_category"`
	CouponCode       *string               `gorm:"column:coupon_code"`
	BaseTotal        decimal.Decimal       `gorm:"column:base_total;type:numeric(12,2);not null"`
	FinalPayable     decimal.Decimal       `gorm:"column:final_payable;type:numeric(12,2);not null"`
	TotalSavings     decimal.Decimal       `gorm:"column:total_savings;type:numeric(12,2);not null"`
	Locked           bool                  `gorm:"column:locked;not null;default:false"`
	AppliedOffers    types.AppliedOffers   `gorm:"column:applied_offers;type:jsonb"`
	PriceComponents  types.PriceComponents `gorm:"column:price_components;type:jsonb"`
	CreatedAt        time.Time             `gorm:"column:created_at;autoCreateTime"`
}

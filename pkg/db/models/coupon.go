package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/visionhut/visionhut-backend/pkg/enums"
)

// Coupon is a customer-entered code applied as the last pricing stage.
type Coupon struct {
	ID           uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code         string              `gorm:"column:code;not null;uniqueIndex"`
	DiscountType enums.DiscountType  `gorm:"column:discount_type;not null"`
	Value        decimal.Decimal     `gorm:"column:value;type:numeric(12,2);not null"`
	MaxDiscount  decimal.NullDecimal `gorm:"column:max_discount;type:numeric(12,2)"`
	MinCartValue decimal.NullDecimal `gorm:"column:min_cart_value;type:numeric(12,2)"`
	IsActive     bool                `gorm:"column:is_active;not null"`
	StartDate    *time.Time          `gorm:"column:start_date"`
	EndDate      *time.Time          `gorm:"column:end_date"`
	CreatedAt    time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

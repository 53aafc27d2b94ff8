package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryDiscountWildcard matches any frame brand.
const CategoryDiscountWildcard = "*"

// CategoryDiscount is a loyalty-tier percentage keyed by customer category and
// frame brand (or the wildcard).
type CategoryDiscount struct {
	ID               uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerCategory string              `gorm:"column:customer_category;not null;uniqueIndex:idx_category_brand"`
	BrandCode        string              `gorm:"column:brand_code;not null;uniqueIndex:idx_category_brand"`
	Percent          decimal.Decimal     `gorm:"column:percent;type:numeric(5,2);not null"`
	MaxCap           decimal.NullDecimal `gorm:"column:max_cap;type:numeric(12,2)"`
	IsActive         bool                `gorm:"column:is_active;not null"`
	StartDate        *time.Time          `gorm:"column:start_date"`
	EndDate          *time.Time          `gorm:"column:end_date"`
	CreatedAt        time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/visionhut/visionhut-backend/pkg/enums"
	"github.com/visionhut/visionhut-backend/pkg/types"
)

// OfferRule is a persisted promotional rule evaluated by the offer engine.
//
// Brand and sub-category eligibility exist in both array and legacy single-value
// form; the array form is authoritative whenever both are present.
type OfferRule struct {
	ID            uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code          string             `gorm:"column:code;not null;uniqueIndex"`
	Name          string             `gorm:"column:name;not null"`
	OfferType     enums.OfferType    `gorm:"column:offer_type;not null"`
	DiscountType  enums.DiscountType `gorm:"column:discount_type;not null"`
	DiscountValue decimal.Decimal    `gorm:"column:discount_value;type:numeric(12,2);not null;default:0"`
	ComboPrice    decimal.NullDecimal `gorm:"column:combo_price;type:numeric(12,2)"`

	Brands            pq.StringArray `gorm:"column:brands;type:text[];default:ARRAY[]::text[]"`
	LegacyBrand       *string        `gorm:"column:legacy_brand"`
	SubCategories     pq.StringArray `gorm:"column:sub_categories;type:text[];default:ARRAY[]::text[]"`
	LegacySubCategory *string        `gorm:"column:legacy_sub_category"`
	ProductTypes      pq.StringArray `gorm:"column:product_types;type:text[];default:ARRAY[]::text[]"`
	MinFrameMRP       decimal.NullDecimal `gorm:"column:min_frame_mrp;type:numeric(12,2)"`
	MaxFrameMRP       decimal.NullDecimal `gorm:"column:max_frame_mrp;type:numeric(12,2)"`
	LensBrandLines    pq.StringArray `gorm:"column:lens_brand_lines;type:text[];default:ARRAY[]::text[]"`
	LensItemCodes     pq.StringArray `gorm:"column:lens_item_codes;type:text[];default:ARRAY[]::text[]"`

	StartDate *time.Time `gorm:"column:start_date"`
	EndDate   *time.Time `gorm:"column:end_date"`

	Priority         int  `gorm:"column:priority;not null"`
	IsActive         bool `gorm:"column:is_active;not null"`
	IsSecondPairRule bool `gorm:"column:is_second_pair_rule;not null;default:false"`

	UpsellEnabled    bool                `gorm:"column:upsell_enabled;not null;default:false"`
	UpsellThreshold  decimal.NullDecimal `gorm:"column:upsell_threshold;type:numeric(12,2)"`
	FreeProductValue decimal.NullDecimal `gorm:"column:free_product_value;type:numeric(12,2)"`
	RewardText       *string             `gorm:"column:reward_text"`

	Config types.RuleConfig `gorm:"column:config;type:jsonb"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

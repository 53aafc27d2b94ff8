package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/visionhut/visionhut-backend/pkg/enums"
)

// RuleConfig is the structured per-offer-type configuration stored on an offer
// rule. It is decoded exactly once when the rule row is scanned; handlers read
// only the fields relevant to their offer type and fall back to documented
// defaults when a field is absent.
type RuleConfig struct {
	// Combo
	Lock                *bool    `json:"lock,omitempty"`
	ComboSubCategories  []string `json:"combo_sub_categories,omitempty"`
	ComboLensBrandLines []string `json:"combo_lens_brand_lines,omitempty"`

	// Yopo
	RequireYopoEligibleLens *bool            `json:"require_yopo_eligible_lens,omitempty"`
	MinFramePrice           *decimal.Decimal `json:"min_frame_price,omitempty"`
	EligibleLensBrands      []string         `json:"eligible_lens_brands,omitempty"`

	// FreeLens
	RuleType          enums.FreeLensRuleType `json:"rule_type,omitempty"`
	PercentLimit      *decimal.Decimal       `json:"percent_limit,omitempty"`
	ValueCap          *decimal.Decimal       `json:"value_cap,omitempty"`
	LensBrandPrefixes []string               `json:"lens_brand_prefixes,omitempty"`
	LensSKU           string                 `json:"lens_sku,omitempty"`
	FreeProductID     string                 `json:"free_product_id,omitempty"`

	// Percent / Flat
	AppliesTo    enums.DiscountScope `json:"applies_to,omitempty"`
	Scope        enums.DiscountScope `json:"scope,omitempty"`
	MinBillValue *decimal.Decimal    `json:"min_bill_value,omitempty"`

	// Bog50
	EligibleBrands     []string `json:"eligible_brands,omitempty"`
	EligibleCategories []string `json:"eligible_categories,omitempty"`

	// BonusFreeProduct
	TriggerType     enums.BonusTrigger `json:"trigger_type,omitempty"`
	TriggerMinBill  *decimal.Decimal   `json:"trigger_min_bill,omitempty"`
	BonusLimit      *decimal.Decimal   `json:"bonus_limit,omitempty"`
	BonusCategories []string           `json:"bonus_categories,omitempty"`
	BonusBrands     []string           `json:"bonus_brands,omitempty"`
}

// Value serializes the config to JSON.
func (c RuleConfig) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan decodes JSONB into the config struct.
func (c *RuleConfig) Scan(value interface{}) error {
	if value == nil {
		*c = RuleConfig{}
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, c)
}

func asJSON(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported scan type %T", value)
	}
}

package offers

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/visionhut/visionhut-backend/pkg/db/models"
	"github.com/visionhut/visionhut-backend/pkg/enums"
)

// defaultFreeLensPercent is the share of the frame price a PERCENT_OF_FRAME
// rule covers when the rule does not set its own limit.
var defaultFreeLensPercent = decimal.NewFromInt(40)

// freeLensHandler makes the lens free, either in full or up to a cap.
type freeLensHandler struct{}

func (freeLensHandler) CanHandle(rule *models.OfferRule) bool {
	return rule.OfferType == enums.OfferTypeFreeLens
}

func (freeLensHandler) Execute(input *CalculationInput, rule *models.OfferRule, state *CalculationState) *Adjustment {
	cfg := rule.Config

	if len(cfg.LensBrandPrefixes) > 0 && !hasAnyPrefix(input.Lens.BrandLine, cfg.LensBrandPrefixes) {
		return nil
	}
	if cfg.LensSKU != "" && cfg.LensSKU != input.Lens.ItemCode {
		return nil
	}
	if cfg.FreeProductID != "" && cfg.FreeProductID != input.Lens.ItemCode {
		return nil
	}

	lensPrice := input.Lens.Price
	var savings decimal.Decimal
	var label string

	switch cfg.RuleType {
	case enums.FreeLensRuleTypePercentOfFrame:
		percent := defaultFreeLensPercent
		if cfg.PercentLimit != nil {
			percent = *cfg.PercentLimit
		}
		limit := input.Frame.Price.Mul(percent).Div(decimal.NewFromInt(100))
		savings = decimal.Min(lensPrice, limit)
		label = "Free Lens (up to " + percent.StringFixed(0) + "% of frame)"
	case enums.FreeLensRuleTypeValueCap:
		if cfg.ValueCap == nil {
			return nil
		}
		savings = decimal.Min(lensPrice, *cfg.ValueCap)
		label = "Free Lens (capped)"
	default:
		// FULL and unset both mean the lens is entirely free.
		savings = lensPrice
		label = "Free Lens"
	}

	if !savings.GreaterThan(decimal.Zero) {
		return nil
	}

	return &Adjustment{
		Savings:   savings,
		Label:     label,
		RuleCode:  rule.Code,
		OfferType: rule.OfferType,
	}
}

func hasAnyPrefix(value string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if prefix != "" && strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}

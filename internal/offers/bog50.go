package offers

import (
	"github.com/shopspring/decimal"

	"github.com/visionhut/visionhut-backend/pkg/db/models"
	"github.com/visionhut/visionhut-backend/pkg/enums"
)

var half = decimal.NewFromFloat(0.5)

// bog50Handler discounts half of the lower-value pair when a second pair is
// bundled, or half the lens for a single pair. A rule with no eligibility
// signal at all is treated as misconfigured and declined.
type bog50Handler struct{}

func (bog50Handler) CanHandle(rule *models.OfferRule) bool {
	return rule.OfferType == enums.OfferTypeBog50
}

func (bog50Handler) Execute(input *CalculationInput, rule *models.OfferRule, state *CalculationState) *Adjustment {
	cfg := rule.Config
	if !hasEligibilitySignal(rule) {
		return nil
	}
	if len(cfg.EligibleBrands) > 0 && !containsString(cfg.EligibleBrands, input.Frame.Brand) {
		return nil
	}
	if len(cfg.EligibleCategories) > 0 && !containsString(cfg.EligibleCategories, input.Frame.SubCategory) {
		return nil
	}

	var savings decimal.Decimal
	label := "Buy One Get 50% Off"
	if input.SecondPair != nil && input.SecondPair.Enabled {
		firstPair := input.Frame.Price.Add(input.Lens.Price)
		secondPair := input.SecondPair.FramePrice.Add(input.SecondPair.LensPrice)
		savings = decimal.Min(firstPair, secondPair).Mul(half)
		label = "Second Pair 50% Off"
	} else {
		savings = input.Lens.Price.Mul(half)
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

func hasEligibilitySignal(rule *models.OfferRule) bool {
	cfg := rule.Config
	if len(cfg.EligibleBrands) > 0 || len(cfg.EligibleCategories) > 0 {
		return true
	}
	return len(rule.Brands) > 0 || len(rule.SubCategories) > 0
}

package offers

import (
	"github.com/shopspring/decimal"

	"github.com/visionhut/visionhut-backend/pkg/db/models"
	"github.com/visionhut/visionhut-backend/pkg/enums"
)

// yopoHandler charges only the higher of frame and lens price.
type yopoHandler struct{}

func (yopoHandler) CanHandle(rule *models.OfferRule) bool {
	return rule.OfferType == enums.OfferTypeYopo
}

func (yopoHandler) Execute(input *CalculationInput, rule *models.OfferRule, state *CalculationState) *Adjustment {
	cfg := rule.Config

	requireEligible := true
	if cfg.RequireYopoEligibleLens != nil {
		requireEligible = *cfg.RequireYopoEligibleLens
	}
	if requireEligible && !input.Lens.YopoEligible {
		return nil
	}
	if cfg.MinFramePrice != nil && input.Frame.Price.LessThan(*cfg.MinFramePrice) {
		return nil
	}
	if len(cfg.EligibleLensBrands) > 0 && !containsString(cfg.EligibleLensBrands, input.Lens.BrandLine) {
		return nil
	}

	newTotal := decimal.Max(input.Frame.Price, input.Lens.Price)
	savings := state.BaseTotal.Sub(newTotal)
	if !savings.GreaterThan(decimal.Zero) {
		return nil
	}

	return &Adjustment{
		Savings:   savings,
		Label:     "You Only Pay One",
		RuleCode:  rule.Code,
		OfferType: rule.OfferType,
		Locks:     true,
	}
}

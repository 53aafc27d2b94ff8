package offers

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/visionhut/visionhut-backend/pkg/db/models"
	"github.com/visionhut/visionhut-backend/pkg/enums"
)

// flatHandler takes a fixed amount off, never more than the discountable base.
type flatHandler struct{}

func (flatHandler) CanHandle(rule *models.OfferRule) bool {
	return rule.OfferType == enums.OfferTypeFlatOff
}

func (flatHandler) Execute(input *CalculationInput, rule *models.OfferRule, state *CalculationState) *Adjustment {
	cfg := rule.Config
	if cfg.MinBillValue != nil && state.EffectiveBase.LessThan(*cfg.MinBillValue) {
		return nil
	}

	base := state.EffectiveBase
	if cfg.Scope == enums.DiscountScopeFrame {
		base = input.Frame.Price
	}

	savings := decimal.Min(rule.DiscountValue, base)
	if !savings.GreaterThan(decimal.Zero) {
		return nil
	}

	return &Adjustment{
		Savings:   savings,
		Label:     fmt.Sprintf("Flat %s Off", rule.DiscountValue.StringFixed(0)),
		RuleCode:  rule.Code,
		OfferType: rule.OfferType,
	}
}

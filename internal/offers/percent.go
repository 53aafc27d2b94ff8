package offers

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/visionhut/visionhut-backend/pkg/db/models"
	"github.com/visionhut/visionhut-backend/pkg/enums"
)

// percentHandler takes a percentage off the cart, the frame, or the lens.
type percentHandler struct{}

func (percentHandler) CanHandle(rule *models.OfferRule) bool {
	return rule.OfferType == enums.OfferTypePercentOff
}

func (percentHandler) Execute(input *CalculationInput, rule *models.OfferRule, state *CalculationState) *Adjustment {
	cfg := rule.Config
	if cfg.MinFramePrice != nil && input.Frame.Price.LessThan(*cfg.MinFramePrice) {
		return nil
	}

	var base decimal.Decimal
	switch cfg.AppliesTo {
	case enums.DiscountScopeFrame:
		base = input.Frame.Price
	case enums.DiscountScopeLens:
		base = input.Lens.Price
	default:
		base = state.EffectiveBase
	}

	savings := base.Mul(rule.DiscountValue).Div(decimal.NewFromInt(100))
	if !savings.GreaterThan(decimal.Zero) {
		return nil
	}

	return &Adjustment{
		Savings:   savings,
		Label:     fmt.Sprintf("%s%% Off", rule.DiscountValue.StringFixed(0)),
		RuleCode:  rule.Code,
		OfferType: rule.OfferType,
	}
}

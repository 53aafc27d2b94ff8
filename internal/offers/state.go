package offers

import (
	"github.com/shopspring/decimal"

	"github.com/visionhut/visionhut-backend/pkg/enums"
	"github.com/visionhut/visionhut-backend/pkg/types"
)

// CalculationState carries the running totals through the stages of a single
// calculation. It is allocated per call and never shared.
type CalculationState struct {
	BaseTotal     decimal.Decimal
	EffectiveBase decimal.Decimal
	Components    types.PriceComponents
	Applied       types.AppliedOffers
	Locked        bool
}

func newState(input *CalculationInput) *CalculationState {
	base := input.BaseTotal()
	return &CalculationState{
		BaseTotal:     base,
		EffectiveBase: base,
		Components: types.PriceComponents{
			{Label: "Frame MRP", Amount: input.Frame.Price},
			{Label: "Lens Offer Price", Amount: input.Lens.Price},
		},
	}
}

// applyDiscount records a savings line and reduces the effective base.
func (s *CalculationState) applyDiscount(label, ruleCode string, offerType enums.OfferType, savings decimal.Decimal) {
	code := ruleCode
	s.Components = append(s.Components, types.PriceComponent{
		Label:    label,
		Amount:   savings.Neg(),
		RuleCode: &code,
	})
	s.Applied = append(s.Applied, types.AppliedOffer{
		RuleCode:  ruleCode,
		OfferType: offerType,
		Label:     label,
		Savings:   savings,
	})
	s.EffectiveBase = s.EffectiveBase.Sub(savings)
}

// applyBonusItem records the additive component pair for a bonus free product.
// When the item value fits under the free limit the pair nets to zero; when it
// exceeds it, the customer pays the difference.
func (s *CalculationState) applyBonusItem(label, ruleCode string, itemValue, freeValue decimal.Decimal) {
	code := ruleCode
	s.Components = append(s.Components, types.PriceComponent{
		Label:  "Bonus Item",
		Amount: itemValue,
	})
	s.Components = append(s.Components, types.PriceComponent{
		Label:    label,
		Amount:   freeValue.Neg(),
		RuleCode: &code,
	})
	s.Applied = append(s.Applied, types.AppliedOffer{
		RuleCode:  ruleCode,
		OfferType: enums.OfferTypeBonusFreeProduct,
		Label:     label,
		Savings:   freeValue,
	})
	s.EffectiveBase = s.EffectiveBase.Add(itemValue).Sub(freeValue)
}

// TotalSavings sums the savings of every applied offer.
func (s *CalculationState) TotalSavings() decimal.Decimal {
	total := decimal.Zero
	for _, offer := range s.Applied {
		total = total.Add(offer.Savings)
	}
	return total
}

// FinalPayable rounds the effective base to the nearest whole rupee and
// clamps at zero.
func (s *CalculationState) FinalPayable() decimal.Decimal {
	final := s.EffectiveBase.Round(0)
	if final.IsNegative() {
		return decimal.Zero
	}
	return final
}

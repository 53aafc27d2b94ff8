package offers

import (
	"fmt"

	"github.com/visionhut/visionhut-backend/pkg/db/models"
	"github.com/visionhut/visionhut-backend/pkg/enums"
)

// comboHandler replaces the frame+lens total with a fixed bundle price.
type comboHandler struct{}

func (comboHandler) CanHandle(rule *models.OfferRule) bool {
	return rule.OfferType == enums.OfferTypeComboPrice && rule.ComboPrice.Valid
}

func (comboHandler) Execute(input *CalculationInput, rule *models.OfferRule, state *CalculationState) *Adjustment {
	cfg := rule.Config
	if len(cfg.ComboSubCategories) > 0 && !containsString(cfg.ComboSubCategories, input.Frame.SubCategory) {
		return nil
	}
	if len(cfg.ComboLensBrandLines) > 0 && !containsString(cfg.ComboLensBrandLines, input.Lens.BrandLine) {
		return nil
	}

	comboPrice := rule.ComboPrice.Decimal
	if comboPrice.GreaterThanOrEqual(state.BaseTotal) {
		return nil
	}

	// Combos lock the primary stage unless the rule opts out.
	locks := true
	if cfg.Lock != nil {
		locks = *cfg.Lock
	}

	return &Adjustment{
		Savings:   state.BaseTotal.Sub(comboPrice),
		Label:     fmt.Sprintf("Combo Price %s", comboPrice.StringFixed(0)),
		RuleCode:  rule.Code,
		OfferType: rule.OfferType,
		Locks:     locks,
	}
}

package offers

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/visionhut/visionhut-backend/pkg/db/models"
	"github.com/visionhut/visionhut-backend/pkg/enums"
)

// runBonusStage gives away the cart's pre-selected bonus item under the first
// matching BONUS_FREE_PRODUCT rule. It is suppressed entirely when the
// primary stage locked.
//
// The free item is additive: its value and its discount enter the breakdown
// as a pair, so an under-limit item nets to zero total change while an
// over-limit item charges the customer the excess.
func runBonusStage(input *CalculationInput, snapshot *Snapshot, state *CalculationState, now time.Time) decimal.Decimal {
	if state.Locked || input.BonusItem == nil {
		return decimal.Zero
	}

	for i := range snapshot.Rules {
		rule := &snapshot.Rules[i]
		if rule.OfferType != enums.OfferTypeBonusFreeProduct {
			continue
		}
		if !isApplicable(rule, input.Frame, input.Lens, now) {
			continue
		}
		if !bonusTriggered(rule, state) {
			continue
		}
		if !bonusItemEligible(rule, input.BonusItem) {
			continue
		}

		freeValue := input.BonusItem.Value
		if limit := bonusLimit(rule); limit != nil && freeValue.GreaterThan(*limit) {
			freeValue = *limit
		}
		if !freeValue.GreaterThan(decimal.Zero) {
			return decimal.Zero
		}

		label := "Bonus Free Product"
		if rule.RewardText != nil && *rule.RewardText != "" {
			label = *rule.RewardText
		}
		state.applyBonusItem(label, rule.Code, input.BonusItem.Value, freeValue)
		return freeValue
	}
	return decimal.Zero
}

func bonusTriggered(rule *models.OfferRule, state *CalculationState) bool {
	cfg := rule.Config
	switch cfg.TriggerType {
	case enums.BonusTriggerBillValue:
		return cfg.TriggerMinBill != nil && state.EffectiveBase.GreaterThanOrEqual(*cfg.TriggerMinBill)
	case enums.BonusTriggerAlways:
		return true
	default:
		// A rule with only a minimum bill configured behaves as BILL_VALUE.
		if cfg.TriggerMinBill != nil {
			return state.EffectiveBase.GreaterThanOrEqual(*cfg.TriggerMinBill)
		}
		return true
	}
}

func bonusItemEligible(rule *models.OfferRule, item *BonusItem) bool {
	cfg := rule.Config
	if len(cfg.BonusCategories) > 0 && !containsString(cfg.BonusCategories, item.Category) {
		return false
	}
	if len(cfg.BonusBrands) > 0 && !containsString(cfg.BonusBrands, item.Brand) {
		return false
	}
	return true
}

func bonusLimit(rule *models.OfferRule) *decimal.Decimal {
	if rule.Config.BonusLimit != nil {
		return rule.Config.BonusLimit
	}
	if rule.FreeProductValue.Valid {
		v := rule.FreeProductValue.Decimal
		return &v
	}
	return nil
}

package offers

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/visionhut/visionhut-backend/pkg/db/models"
	"github.com/visionhut/visionhut-backend/pkg/enums"
)

// upsellBandFactor limits suggestions to thresholds within 50% reach of the
// current total. Anything further away is not worth nudging the customer.
var upsellBandFactor = decimal.NewFromFloat(0.5)

// UpsellSuggestion is the single best "spend a bit more" nudge, if any.
type UpsellSuggestion struct {
	OfferType   enums.OfferType `json:"offer_type"`
	RuleCode    string          `json:"rule_code"`
	Threshold   decimal.Decimal `json:"threshold"`
	Remaining   decimal.Decimal `json:"remaining"`
	RewardValue decimal.Decimal `json:"reward_value"`
	RewardText  string          `json:"reward_text,omitempty"`
	Message     string          `json:"message"`
}

type upsellCandidate struct {
	rule      *models.OfferRule
	threshold decimal.Decimal
	reward    decimal.Decimal
	remaining decimal.Decimal
	score     decimal.Decimal
}

// suggestUpsell scores every upsell-enabled rule by reward per rupee still
// needed and returns the best one, or nil when nothing is in reach.
func suggestUpsell(rules []models.OfferRule, state *CalculationState, now time.Time) *UpsellSuggestion {
	currentTotal := state.EffectiveBase
	var best *upsellCandidate

	for i := range rules {
		rule := &rules[i]
		if !rule.UpsellEnabled || !rule.IsActive {
			continue
		}
		if !withinWindow(rule.StartDate, rule.EndDate, now) {
			continue
		}

		threshold, reward, ok := upsellFigures(rule)
		if !ok || !threshold.GreaterThan(decimal.Zero) || !reward.GreaterThan(decimal.Zero) {
			continue
		}

		remaining := threshold.Sub(currentTotal)
		if !remaining.GreaterThan(decimal.Zero) {
			continue
		}
		if remaining.GreaterThan(threshold.Mul(upsellBandFactor)) {
			continue
		}

		score := reward.Div(remaining)
		if best == nil || score.GreaterThan(best.score) {
			best = &upsellCandidate{
				rule:      rule,
				threshold: threshold,
				reward:    reward,
				remaining: remaining,
				score:     score,
			}
		}
	}

	if best == nil {
		return nil
	}
	return best.suggestion()
}

// upsellFigures derives the trigger threshold and estimated reward for one
// rule. An explicit upsell threshold always wins; otherwise each offer type
// falls back to its own trigger field.
func upsellFigures(rule *models.OfferRule) (threshold, reward decimal.Decimal, ok bool) {
	if rule.UpsellThreshold.Valid {
		threshold = rule.UpsellThreshold.Decimal
	}

	switch rule.OfferType {
	case enums.OfferTypeBonusFreeProduct:
		if threshold.IsZero() && rule.Config.TriggerMinBill != nil {
			threshold = *rule.Config.TriggerMinBill
		}
		if rule.FreeProductValue.Valid {
			reward = rule.FreeProductValue.Decimal
		}
	case enums.OfferTypeFlatOff:
		if threshold.IsZero() && rule.MinFrameMRP.Valid {
			threshold = rule.MinFrameMRP.Decimal
		}
		reward = rule.DiscountValue
	case enums.OfferTypePercentOff:
		if threshold.IsZero() && rule.MinFrameMRP.Valid {
			threshold = rule.MinFrameMRP.Decimal
		}
		reward = threshold.Mul(rule.DiscountValue).Div(decimal.NewFromInt(100))
	case enums.OfferTypeComboPrice:
		if !rule.ComboPrice.Valid {
			return decimal.Zero, decimal.Zero, false
		}
		if threshold.IsZero() && rule.MinFrameMRP.Valid {
			threshold = rule.MinFrameMRP.Decimal
		}
		reward = threshold.Sub(rule.ComboPrice.Decimal)
	default:
		return decimal.Zero, decimal.Zero, false
	}

	return threshold, reward, true
}

func (c *upsellCandidate) suggestion() *UpsellSuggestion {
	remaining := c.remaining.Round(0)
	reward := c.reward.Round(0)

	rewardText := ""
	if c.rule.RewardText != nil {
		rewardText = *c.rule.RewardText
	}
	if rewardText == "" {
		rewardText = fmt.Sprintf("benefits worth %s", reward.StringFixed(0))
	}

	return &UpsellSuggestion{
		OfferType:   c.rule.OfferType,
		RuleCode:    c.rule.Code,
		Threshold:   c.threshold,
		Remaining:   remaining,
		RewardValue: reward,
		RewardText:  rewardText,
		Message:     fmt.Sprintf("Add items worth %s more to unlock %s", remaining.StringFixed(0), rewardText),
	}
}

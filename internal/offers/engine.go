package offers

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/visionhut/visionhut-backend/pkg/db/models"
)

// Engine runs the full calculation pipeline over a cart and a rule snapshot.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	handlers []Handler
}

// NewEngine builds an engine with the fixed handler chain.
func NewEngine() *Engine {
	return &Engine{handlers: handlerChain()}
}

// Calculate is a pure function of the input, the snapshot, and the clock.
// Stages run in a fixed order: primary handler chain, second pair, category
// discount, bonus free product, coupon, upsell.
func (e *Engine) Calculate(input *CalculationInput, snapshot *Snapshot, now time.Time) *CalculationResult {
	state := newState(input)
	stages := StageSummary{}

	stages.PrimarySavings = e.runPrimaryStage(input, snapshot, state, now)
	stages.SecondPairSavings = e.runSecondPairStage(input, snapshot, state, now)
	stages.CategorySavings = runCategoryStage(input, snapshot, state, now)
	stages.BonusSavings = runBonusStage(input, snapshot, state, now)
	stages.CouponSavings = runCouponStage(input, snapshot, state, now)

	return &CalculationResult{
		FramePrice:      input.Frame.Price,
		LensPrice:       input.Lens.Price,
		BaseTotal:       state.BaseTotal,
		FinalPayable:    state.FinalPayable(),
		TotalSavings:    state.TotalSavings(),
		Locked:          state.Locked,
		AppliedOffers:   state.Applied,
		PriceComponents: state.Components,
		Stages:          stages,
		Upsell:          suggestUpsell(snapshot.Rules, state, now),
	}
}

// runPrimaryStage scans applicable rules in priority order and hands each to
// the first capable handler. The scan stops only when an adjustment locks;
// a rule that matches but yields nothing is simply skipped.
func (e *Engine) runPrimaryStage(input *CalculationInput, snapshot *Snapshot, state *CalculationState, now time.Time) decimal.Decimal {
	candidates := filterApplicable(snapshot.primaryRules(), input, now)
	sortByPriority(candidates)

	savings := decimal.Zero
	for _, rule := range candidates {
		handler := e.firstCapable(rule)
		if handler == nil {
			continue
		}
		adj := handler.Execute(input, rule, state)
		if !accepted(adj) {
			continue
		}
		state.applyDiscount(adj.Label, adj.RuleCode, adj.OfferType, adj.Savings)
		savings = savings.Add(adj.Savings)
		if adj.Locks {
			state.Locked = true
			break
		}
	}
	return savings
}

// runSecondPairStage applies the best second-pair rule through the BOG50
// handler. It runs whether or not the primary stage locked.
func (e *Engine) runSecondPairStage(input *CalculationInput, snapshot *Snapshot, state *CalculationState, now time.Time) decimal.Decimal {
	if input.SecondPair == nil || !input.SecondPair.Enabled {
		return decimal.Zero
	}

	candidates := filterApplicable(snapshot.secondPairRules(), input, now)
	sortByPriority(candidates)

	bog := bog50Handler{}
	for _, rule := range candidates {
		adj := bog.Execute(input, rule, state)
		if !accepted(adj) {
			continue
		}
		state.applyDiscount(adj.Label, adj.RuleCode, adj.OfferType, adj.Savings)
		return adj.Savings
	}
	return decimal.Zero
}

func (e *Engine) firstCapable(rule *models.OfferRule) Handler {
	for _, handler := range e.handlers {
		if handler.CanHandle(rule) {
			return handler
		}
	}
	return nil
}

func filterApplicable(rules []*models.OfferRule, input *CalculationInput, now time.Time) []*models.OfferRule {
	out := make([]*models.OfferRule, 0, len(rules))
	for _, rule := range rules {
		if isApplicable(rule, input.Frame, input.Lens, now) {
			out = append(out, rule)
		}
	}
	return out
}

// sortByPriority orders ascending by priority; the stable sort keeps the
// snapshot order for ties.
func sortByPriority(rules []*models.OfferRule) {
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority < rules[j].Priority
	})
}

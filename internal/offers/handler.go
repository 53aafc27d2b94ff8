package offers

import (
	"github.com/shopspring/decimal"

	"github.com/visionhut/visionhut-backend/pkg/db/models"
	"github.com/visionhut/visionhut-backend/pkg/enums"
)

// Adjustment is a handler's accepted price change. Savings of zero or less
// means the handler declined.
type Adjustment struct {
	Savings   decimal.Decimal
	Label     string
	RuleCode  string
	OfferType enums.OfferType
	Locks     bool
}

// Handler interprets one offer type. CanHandle is a cheap capability check;
// Execute either produces an adjustment or declines with nil.
type Handler interface {
	CanHandle(rule *models.OfferRule) bool
	Execute(input *CalculationInput, rule *models.OfferRule, state *CalculationState) *Adjustment
}

// handlerChain returns the handlers in their fixed registration order. The
// primary stage always hands a rule to the first handler that claims it.
func handlerChain() []Handler {
	return []Handler{
		comboHandler{},
		yopoHandler{},
		freeLensHandler{},
		percentHandler{},
		flatHandler{},
		bog50Handler{},
	}
}

func accepted(adj *Adjustment) bool {
	return adj != nil && adj.Savings.GreaterThan(decimal.Zero)
}

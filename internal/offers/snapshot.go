package offers

import (
	"github.com/visionhut/visionhut-backend/pkg/db/models"
)

// Snapshot is the read-only rule data a calculation runs against. It is
// fetched once at the start of the call; the engine itself never touches
// storage.
type Snapshot struct {
	Rules []models.OfferRule

	// CategoryExact matches (customerCategory, frameBrand); CategoryWildcard
	// matches (customerCategory, "*"). Either may be nil.
	CategoryExact    *models.CategoryDiscount
	CategoryWildcard *models.CategoryDiscount

	// Coupon is the row matching the cart's coupon code, if any.
	Coupon *models.Coupon
}

// primaryRules returns the non-second-pair rules in snapshot order.
func (s *Snapshot) primaryRules() []*models.OfferRule {
	out := make([]*models.OfferRule, 0, len(s.Rules))
	for i := range s.Rules {
		if s.Rules[i].IsSecondPairRule {
			continue
		}
		out = append(out, &s.Rules[i])
	}
	return out
}

// secondPairRules returns the rules flagged for the second-pair stage.
func (s *Snapshot) secondPairRules() []*models.OfferRule {
	out := make([]*models.OfferRule, 0)
	for i := range s.Rules {
		if s.Rules[i].IsSecondPairRule {
			out = append(out, &s.Rules[i])
		}
	}
	return out
}

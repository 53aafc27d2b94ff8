package offers

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/visionhut/visionhut-backend/pkg/enums"
)

// runCouponStage applies the cart's coupon last, after every other stage has
// settled the effective base.
func runCouponStage(input *CalculationInput, snapshot *Snapshot, state *CalculationState, now time.Time) decimal.Decimal {
	if input.CouponCode == "" || snapshot.Coupon == nil {
		return decimal.Zero
	}

	coupon := snapshot.Coupon
	if !coupon.IsActive || !withinWindow(coupon.StartDate, coupon.EndDate, now) {
		return decimal.Zero
	}
	if coupon.MinCartValue.Valid && state.EffectiveBase.LessThan(coupon.MinCartValue.Decimal) {
		return decimal.Zero
	}

	var savings decimal.Decimal
	var label string
	switch coupon.DiscountType {
	case enums.DiscountTypePercentage:
		savings = state.EffectiveBase.Mul(coupon.Value).Div(decimal.NewFromInt(100))
		if coupon.MaxDiscount.Valid {
			savings = decimal.Min(savings, coupon.MaxDiscount.Decimal)
		}
		label = fmt.Sprintf("Coupon %s (%s%%)", coupon.Code, coupon.Value.StringFixed(0))
	case enums.DiscountTypeFlatAmount:
		// A flat coupon can never push the total negative.
		savings = decimal.Min(coupon.Value, state.EffectiveBase)
		label = fmt.Sprintf("Coupon %s", coupon.Code)
	default:
		return decimal.Zero
	}

	if !savings.GreaterThan(decimal.Zero) {
		return decimal.Zero
	}

	state.applyDiscount(label, coupon.Code, enums.OfferTypeCoupon, savings)
	return savings
}

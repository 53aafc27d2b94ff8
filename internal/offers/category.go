package offers

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/visionhut/visionhut-backend/pkg/db/models"
	"github.com/visionhut/visionhut-backend/pkg/enums"
)

// runCategoryStage layers the customer-category discount on top of whatever
// the primary stage produced. Locking does not suppress it: category pricing
// is a loyalty benefit, not a promotion.
func runCategoryStage(input *CalculationInput, snapshot *Snapshot, state *CalculationState, now time.Time) decimal.Decimal {
	if input.CustomerCategory == "" {
		return decimal.Zero
	}

	discount := pickCategoryDiscount(snapshot, now)
	if discount == nil {
		return decimal.Zero
	}

	savings := state.EffectiveBase.Mul(discount.Percent).Div(decimal.NewFromInt(100))
	if discount.MaxCap.Valid {
		savings = decimal.Min(savings, discount.MaxCap.Decimal)
	}
	if !savings.GreaterThan(decimal.Zero) {
		return decimal.Zero
	}

	label := fmt.Sprintf("%s Category %s%% Off", input.CustomerCategory, discount.Percent.StringFixed(0))
	state.applyDiscount(label, categoryRuleCode(discount), enums.OfferTypeCategoryDiscount, savings)
	return savings
}

// pickCategoryDiscount prefers the exact brand row and falls back to the
// wildcard when the exact row is missing or unusable right now.
func pickCategoryDiscount(snapshot *Snapshot, now time.Time) *models.CategoryDiscount {
	if usableCategoryDiscount(snapshot.CategoryExact, now) {
		return snapshot.CategoryExact
	}
	if usableCategoryDiscount(snapshot.CategoryWildcard, now) {
		return snapshot.CategoryWildcard
	}
	return nil
}

func usableCategoryDiscount(discount *models.CategoryDiscount, now time.Time) bool {
	if discount == nil || !discount.IsActive {
		return false
	}
	return withinWindow(discount.StartDate, discount.EndDate, now)
}

func categoryRuleCode(discount *models.CategoryDiscount) string {
	return fmt.Sprintf("CAT:%s:%s", discount.CustomerCategory, discount.BrandCode)
}

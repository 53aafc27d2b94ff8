package offers

import (
	"github.com/shopspring/decimal"

	"github.com/visionhut/visionhut-backend/pkg/enums"
	pkgerrors "github.com/visionhut/visionhut-backend/pkg/errors"
)

// Frame is the frame half of the pair being priced.
type Frame struct {
	Brand       string
	SubCategory string
	Price       decimal.Decimal
	ProductType enums.ProductType
}

// Lens is the lens half of the pair being priced.
type Lens struct {
	ItemCode     string
	Price        decimal.Decimal
	BrandLine    string
	YopoEligible bool
}

// SecondPair is an optional bundled second frame+lens pair.
type SecondPair struct {
	Enabled    bool
	FramePrice decimal.Decimal
	LensPrice  decimal.Decimal
}

// BonusItem is an optional pre-selected product a bonus rule may make free.
type BonusItem struct {
	ProductID string
	Category  string
	Brand     string
	Value     decimal.Decimal
}

// CalculationInput is the unit of work handed to the engine. Frame and lens
// are mandatory; everything else modifies individual stages.
type CalculationInput struct {
	Frame            Frame
	Lens             Lens
	CustomerCategory string
	CouponCode       string
	SecondPair       *SecondPair
	BonusItem        *BonusItem
}

// BaseTotal returns the undiscounted frame + lens total.
func (in *CalculationInput) BaseTotal() decimal.Decimal {
	return in.Frame.Price.Add(in.Lens.Price)
}

// Validate rejects carts missing the fields every stage depends on.
func (in *CalculationInput) Validate() error {
	if in.Frame.Brand == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "frame brand is required")
	}
	if in.Frame.Price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "frame price must be non-negative")
	}
	if in.Frame.ProductType != "" && !in.Frame.ProductType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown frame product type")
	}
	if in.Lens.ItemCode == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "lens item code is required")
	}
	if in.Lens.Price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "lens price must be non-negative")
	}
	if in.SecondPair != nil && in.SecondPair.Enabled {
		if in.SecondPair.FramePrice.IsNegative() || in.SecondPair.LensPrice.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "second pair prices must be non-negative")
		}
	}
	if in.BonusItem != nil && in.BonusItem.Value.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "bonus item value must be non-negative")
	}
	return nil
}

// Type returns the product type used by eligibility gates, defaulting to
// FRAME when the cart does not declare one.
func (f Frame) Type() enums.ProductType {
	if f.ProductType == "" {
		return enums.ProductTypeFrame
	}
	return f.ProductType
}

package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/visionhut/visionhut-backend/api/responses"
	"github.com/visionhut/visionhut-backend/api/validators"
	"github.com/visionhut/visionhut-backend/internal/offers"
	"github.com/visionhut/visionhut-backend/pkg/enums"
	pkgerrors "github.com/visionhut/visionhut-backend/pkg/errors"
	"github.com/visionhut/visionhut-backend/pkg/logger"
)

type calculationFrameRequest struct {
	Brand       string          `json:"brand" validate:"required"`
	SubCategory string          `json:"sub_category,omitempty"`
	Price       decimal.Decimal `json:"price"`
	ProductType string          `json:"product_type,omitempty"`
}

type calculationLensRequest struct {
	ItemCode     string          `json:"item_code" validate:"required"`
	Price        decimal.Decimal `json:"price"`
	BrandLine    string          `json:"brand_line,omitempty"`
	YopoEligible bool            `json:"yopo_eligible,omitempty"`
}

type calculationSecondPairRequest struct {
	FramePrice decimal.Decimal `json:"frame_price"`
	LensPrice  decimal.Decimal `json:"lens_price"`
}

type calculationBonusItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Category  string          `json:"category,omitempty"`
	Brand     string          `json:"brand,omitempty"`
	Value     decimal.Decimal `json:"value"`
}

type calculationRequest struct {
	Frame            calculationFrameRequest       `json:"frame" validate:"required"`
	Lens             calculationLensRequest        `json:"lens" validate:"required"`
	CustomerCategory string                        `json:"customer_category,omitempty"`
	CouponCode       string                        `json:"coupon_code,omitempty"`
	SecondPair       *calculationSecondPairRequest `json:"second_pair,omitempty"`
	BonusItem        *calculationBonusItemRequest  `json:"bonus_item,omitempty"`
}

func (r calculationRequest) toInput() (*offers.CalculationInput, error) {
	input := &offers.CalculationInput{
		Frame: offers.Frame{
			Brand:       strings.TrimSpace(r.Frame.Brand),
			SubCategory: strings.TrimSpace(r.Frame.SubCategory),
			Price:       r.Frame.Price,
		},
		Lens: offers.Lens{
			ItemCode:     strings.TrimSpace(r.Lens.ItemCode),
			Price:        r.Lens.Price,
			BrandLine:    strings.TrimSpace(r.Lens.BrandLine),
			YopoEligible: r.Lens.YopoEligible,
		},
		CustomerCategory: validators.SanitizeString(r.CustomerCategory, 64),
		CouponCode:       validators.SanitizeString(r.CouponCode, 64),
	}

	if raw := strings.TrimSpace(r.Frame.ProductType); raw != "" {
		productType, err := enums.ParseProductType(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product type")
		}
		input.Frame.ProductType = productType
	}

	if r.SecondPair != nil {
		input.SecondPair = &offers.SecondPair{
			Enabled:    true,
			FramePrice: r.SecondPair.FramePrice,
			LensPrice:  r.SecondPair.LensPrice,
		}
	}
	if r.BonusItem != nil {
		input.BonusItem = &offers.BonusItem{
			ProductID: strings.TrimSpace(r.BonusItem.ProductID),
			Category:  strings.TrimSpace(r.BonusItem.Category),
			Brand:     strings.TrimSpace(r.BonusItem.Brand),
			Value:     r.BonusItem.Value,
		}
	}
	return input, nil
}

// Calculate prices one frame+lens cart through the full offer pipeline.
func Calculate(svc offers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "calculation service unavailable"))
			return
		}

		var body calculationRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Calculate(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

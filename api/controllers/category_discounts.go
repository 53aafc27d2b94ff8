package controllers

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/visionhut/visionhut-backend/api/responses"
	"github.com/visionhut/visionhut-backend/api/validators"
	categorysvc "github.com/visionhut/visionhut-backend/internal/categories"
	pkgerrors "github.com/visionhut/visionhut-backend/pkg/errors"
	"github.com/visionhut/visionhut-backend/pkg/logger"
)

type categoryDiscountRequest struct {
	CustomerCategory string           `json:"customer_category" validate:"required"`
	BrandCode        string           `json:"brand_code,omitempty"`
	Percent          decimal.Decimal  `json:"percent"`
	MaxCap           *decimal.Decimal `json:"max_cap,omitempty"`
	IsActive         *bool            `json:"is_active,omitempty"`
	StartDate        *time.Time       `json:"start_date,omitempty"`
	EndDate          *time.Time       `json:"end_date,omitempty"`
}

func (r categoryDiscountRequest) toInput() categorysvc.CategoryDiscountInput {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return categorysvc.CategoryDiscountInput{
		CustomerCategory: r.CustomerCategory,
		BrandCode:        r.BrandCode,
		Percent:          r.Percent,
		MaxCap:           toNullDecimal(r.MaxCap),
		IsActive:         active,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
	}
}

// ListCategoryDiscounts returns every category discount row.
func ListCategoryDiscounts(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "category discount service unavailable"))
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// CreateCategoryDiscount persists a new category discount.
func CreateCategoryDiscount(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "category discount service unavailable"))
			return
		}

		var body categoryDiscountRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// UpdateCategoryDiscount replaces the writable fields of an existing row.
func UpdateCategoryDiscount(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "category discount service unavailable"))
			return
		}

		id, err := parsePathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body categoryDiscountRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Update(r.Context(), id, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// DeleteCategoryDiscount removes a category discount.
func DeleteCategoryDiscount(svc categorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "category discount service unavailable"))
			return
		}

		id, err := parsePathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/visionhut/visionhut-backend/api/responses"
	"github.com/visionhut/visionhut-backend/api/validators"
	couponsvc "github.com/visionhut/visionhut-backend/internal/coupons"
	"github.com/visionhut/visionhut-backend/pkg/enums"
	pkgerrors "github.com/visionhut/visionhut-backend/pkg/errors"
	"github.com/visionhut/visionhut-backend/pkg/logger"
)

type couponRequest struct {
	Code         string           `json:"code" validate:"required"`
	DiscountType string           `json:"discount_type" validate:"required"`
	Value        decimal.Decimal  `json:"value"`
	MaxDiscount  *decimal.Decimal `json:"max_discount,omitempty"`
	MinCartValue *decimal.Decimal `json:"min_cart_value,omitempty"`
	IsActive     *bool            `json:"is_active,omitempty"`
	StartDate    *time.Time       `json:"start_date,omitempty"`
	EndDate      *time.Time       `json:"end_date,omitempty"`
}

func (r couponRequest) toInput() (couponsvc.CouponInput, error) {
	discountType, err := enums.ParseDiscountType(strings.TrimSpace(r.DiscountType))
	if err != nil {
		return couponsvc.CouponInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid discount type")
	}

	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}

	return couponsvc.CouponInput{
		Code:         r.Code,
		DiscountType: discountType,
		Value:        r.Value,
		MaxDiscount:  toNullDecimal(r.MaxDiscount),
		MinCartValue: toNullDecimal(r.MinCartValue),
		IsActive:     active,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
	}, nil
}

// ListCoupons returns every coupon.
func ListCoupons(svc couponsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "coupon service unavailable"))
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

// CreateCoupon persists a new coupon.
func CreateCoupon(svc couponsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "coupon service unavailable"))
			return
		}

		var body couponRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// UpdateCoupon replaces the writable fields of an existing coupon.
func UpdateCoupon(svc couponsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "coupon service unavailable"))
			return
		}

		id, err := parsePathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body couponRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// DeleteCoupon removes a coupon.
func DeleteCoupon(svc couponsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "coupon service unavailable"))
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

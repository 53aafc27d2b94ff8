package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/visionhut/visionhut-backend/api/responses"
	"github.com/visionhut/visionhut-backend/api/validators"
	rulesvc "github.com/visionhut/visionhut-backend/internal/rules"
	"github.com/visionhut/visionhut-backend/pkg/enums"
	pkgerrors "github.com/visionhut/visionhut-backend/pkg/errors"
	"github.com/visionhut/visionhut-backend/pkg/logger"
	"github.com/visionhut/visionhut-backend/pkg/pagination"
	"github.com/visionhut/visionhut-backend/pkg/types"
)

type ruleRequest struct {
	Code              string           `json:"code" validate:"required"`
	Name              string           `json:"name" validate:"required"`
	OfferType         string           `json:"offer_type" validate:"required"`
	DiscountType      string           `json:"discount_type" validate:"required"`
	DiscountValue     decimal.Decimal  `json:"discount_value"`
	ComboPrice        *decimal.Decimal `json:"combo_price,omitempty"`
	Brands            []string         `json:"brands,omitempty"`
	LegacyBrand       *string          `json:"legacy_brand,omitempty"`
	SubCategories     []string         `json:"sub_categories,omitempty"`
	LegacySubCategory *string          `json:"legacy_sub_category,omitempty"`
	ProductTypes      []string         `json:"product_types,omitempty"`
	MinFrameMRP       *decimal.Decimal `json:"min_frame_mrp,omitempty"`
	MaxFrameMRP       *decimal.Decimal `json:"max_frame_mrp,omitempty"`
	LensBrandLines    []string         `json:"lens_brand_lines,omitempty"`
	LensItemCodes     []string         `json:"lens_item_codes,omitempty"`
	StartDate         *time.Time       `json:"start_date,omitempty"`
	EndDate           *time.Time       `json:"end_date,omitempty"`
	Priority          int              `json:"priority" validate:"min=0"`
	IsActive          *bool            `json:"is_active,omitempty"`
	IsSecondPairRule  bool             `json:"is_second_pair_rule,omitempty"`
	UpsellEnabled     bool             `json:"upsell_enabled,omitempty"`
	UpsellThreshold   *decimal.Decimal `json:"upsell_threshold,omitempty"`
	FreeProductValue  *decimal.Decimal `json:"free_product_value,omitempty"`
	RewardText        *string          `json:"reward_text,omitempty"`
	Config            types.RuleConfig `json:"config,omitempty"`
}

func (r ruleRequest) toInput() (rulesvc.RuleInput, error) {
	offerType, err := enums.ParseOfferType(strings.TrimSpace(r.OfferType))
	if err != nil {
		return rulesvc.RuleInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid offer type")
	}
	discountType, err := enums.ParseDiscountType(strings.TrimSpace(r.DiscountType))
	if err != nil {
		return rulesvc.RuleInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid discount type")
	}
	for _, raw := range r.ProductTypes {
		if _, err := enums.ParseProductType(raw); err != nil {
			return rulesvc.RuleInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product type")
		}
	}

	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}

	return rulesvc.RuleInput{
		Code:              r.Code,
		Name:              r.Name,
		OfferType:         offerType,
		DiscountType:      discountType,
		DiscountValue:     r.DiscountValue,
		ComboPrice:        toNullDecimal(r.ComboPrice),
		Brands:            r.Brands,
		LegacyBrand:       r.LegacyBrand,
		SubCategories:     r.SubCategories,
		LegacySubCategory: r.LegacySubCategory,
		ProductTypes:      r.ProductTypes,
		MinFrameMRP:       toNullDecimal(r.MinFrameMRP),
		MaxFrameMRP:       toNullDecimal(r.MaxFrameMRP),
		LensBrandLines:    r.LensBrandLines,
		LensItemCodes:     r.LensItemCodes,
		StartDate:         r.StartDate,
		EndDate:           r.EndDate,
		Priority:          r.Priority,
		IsActive:          active,
		IsSecondPairRule:  r.IsSecondPairRule,
		UpsellEnabled:     r.UpsellEnabled,
		UpsellThreshold:   toNullDecimal(r.UpsellThreshold),
		FreeProductValue:  toNullDecimal(r.FreeProductValue),
		RewardText:        r.RewardText,
		Config:            r.Config,
	}, nil
}

func toNullDecimal(value *decimal.Decimal) decimal.NullDecimal {
	if value == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *value, Valid: true}
}

// ListRules returns a cursor-paginated page of offer rules.
func ListRules(svc rulesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rule service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, next, err := svc.List(r.Context(), pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"items":       items,
			"next_cursor": next,
		})
	}
}

// GetRule loads one offer rule by id.
func GetRule(svc rulesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rule service unavailable"))
			return
		}

		id, err := parsePathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rule, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rule)
	}
}

// CreateRule persists a new offer rule.
func CreateRule(svc rulesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rule service unavailable"))
			return
		}

		var body ruleRequest
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

// UpdateRule replaces the writable fields of an existing rule.
func UpdateRule(svc rulesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rule service unavailable"))
			return
		}

		id, err := parsePathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body ruleRequest
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

// DeleteRule removes an offer rule.
func DeleteRule(svc rulesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rule service unavailable"))
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

func parsePathID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid id")
	}
	return id, nil
}

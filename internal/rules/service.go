package rules

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/visionhut/visionhut-backend/pkg/db/models"
	"github.com/visionhut/visionhut-backend/pkg/enums"
	pkgerrors "github.com/visionhut/visionhut-backend/pkg/errors"
	"github.com/visionhut/visionhut-backend/pkg/pagination"
	"github.com/visionhut/visionhut-backend/pkg/types"
)

// Service manages offer rule lifecycle for the admin API.
type Service interface {
	List(ctx context.Context, params pagination.Params) ([]models.OfferRule, string, error)
	Get(ctx context.Context, id uuid.UUID) (*models.OfferRule, error)
	Create(ctx context.Context, input RuleInput) (*models.OfferRule, error)
	Update(ctx context.Context, id uuid.UUID, input RuleInput) (*models.OfferRule, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// RuleInput carries the writable fields of an offer rule.
type RuleInput struct {
	Code              string
	Name              string
	OfferType         enums.OfferType
	DiscountType      enums.DiscountType
	DiscountValue     decimal.Decimal
	ComboPrice        decimal.NullDecimal
	Brands            []string
	LegacyBrand       *string
	SubCategories     []string
	LegacySubCategory *string
	ProductTypes      []string
	MinFrameMRP       decimal.NullDecimal
	MaxFrameMRP       decimal.NullDecimal
	LensBrandLines    []string
	LensItemCodes     []string
	StartDate         *time.Time
	EndDate           *time.Time
	Priority          int
	IsActive          bool
	IsSecondPairRule  bool
	UpsellEnabled     bool
	UpsellThreshold   decimal.NullDecimal
	FreeProductValue  decimal.NullDecimal
	RewardText        *string
	Config            types.RuleConfig
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService constructs the rule management service.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("rules repository is required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) ([]models.OfferRule, string, error) {
	return s.repo.List(ctx, params)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.OfferRule, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, input RuleInput) (*models.OfferRule, error) {
	if err := validateRuleInput(input); err != nil {
		return nil, err
	}
	rule := input.toModel()
	return s.repo.Create(ctx, rule)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input RuleInput) (*models.OfferRule, error) {
	if err := validateRuleInput(input); err != nil {
		return nil, err
	}
	var updated *models.OfferRule
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		existing, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		next := input.toModel()
		next.ID = existing.ID
		next.CreatedAt = existing.CreatedAt
		updated, err = repo.Update(ctx, next)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (in RuleInput) toModel() *models.OfferRule {
	return &models.OfferRule{
		Code:              strings.ToUpper(strings.TrimSpace(in.Code)),
		Name:              strings.TrimSpace(in.Name),
		OfferType:         in.OfferType,
		DiscountType:      in.DiscountType,
		DiscountValue:     in.DiscountValue,
		ComboPrice:        in.ComboPrice,
		Brands:            pq.StringArray(in.Brands),
		LegacyBrand:       in.LegacyBrand,
		SubCategories:     pq.StringArray(in.SubCategories),
		LegacySubCategory: in.LegacySubCategory,
		ProductTypes:      pq.StringArray(in.ProductTypes),
		MinFrameMRP:       in.MinFrameMRP,
		MaxFrameMRP:       in.MaxFrameMRP,
		LensBrandLines:    pq.StringArray(in.LensBrandLines),
		LensItemCodes:     pq.StringArray(in.LensItemCodes),
		StartDate:         in.StartDate,
		EndDate:           in.EndDate,
		Priority:          in.Priority,
		IsActive:          in.IsActive,
		IsSecondPairRule:  in.IsSecondPairRule,
		UpsellEnabled:     in.UpsellEnabled,
		UpsellThreshold:   in.UpsellThreshold,
		FreeProductValue:  in.FreeProductValue,
		RewardText:        in.RewardText,
		Config:            in.Config,
	}
}

func validateRuleInput(in RuleInput) error {
	if strings.TrimSpace(in.Code) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "rule code is required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "rule name is required")
	}
	if !in.OfferType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown offer type %q", in.OfferType))
	}
	if !in.DiscountType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown discount type %q", in.DiscountType))
	}
	if in.DiscountValue.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount value must not be negative")
	}
	if in.Priority < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "priority must not be negative")
	}
	if in.OfferType == enums.OfferTypePercentOff && in.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
		return pkgerrors.New(pkgerrors.CodeValidation, "percent discount cannot exceed 100")
	}
	if in.OfferType == enums.OfferTypeComboPrice && (!in.ComboPrice.Valid || !in.ComboPrice.Decimal.IsPositive()) {
		return pkgerrors.New(pkgerrors.CodeValidation, "combo rules require a positive combo price")
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return pkgerrors.New(pkgerrors.CodeValidation, "end date must not precede start date")
	}
	if in.MinFrameMRP.Valid && in.MaxFrameMRP.Valid && in.MaxFrameMRP.Decimal.LessThan(in.MinFrameMRP.Decimal) {
		return pkgerrors.New(pkgerrors.CodeValidation, "max frame mrp must not be below min frame mrp")
	}
	return nil
}

package coupons

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/visionhut/visionhut-backend/pkg/db/models"
	"github.com/visionhut/visionhut-backend/pkg/enums"
	pkgerrors "github.com/visionhut/visionhut-backend/pkg/errors"
)

// Service manages coupon lifecycle for the admin API.
type Service interface {
	List(ctx context.Context) ([]models.Coupon, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Coupon, error)
	Create(ctx context.Context, input CouponInput) (*models.Coupon, error)
	Update(ctx context.Context, id uuid.UUID, input CouponInput) (*models.Coupon, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CouponInput carries the writable fields of a coupon.
type CouponInput struct {
	Code         string
	DiscountType enums.DiscountType
	Value        decimal.Decimal
	MaxDiscount  decimal.NullDecimal
	MinCartValue decimal.NullDecimal
	IsActive     bool
	StartDate    *time.Time
	EndDate      *time.Time
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService constructs the coupon management service.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("coupons repository is required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) List(ctx context.Context) ([]models.Coupon, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Coupon, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, input CouponInput) (*models.Coupon, error) {
	if err := validateCouponInput(input); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, input.toModel())
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input CouponInput) (*models.Coupon, error) {
	if err := validateCouponInput(input); err != nil {
		return nil, err
	}
	var updated *models.Coupon
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

func (in CouponInput) toModel() *models.Coupon {
	return &models.Coupon{
		Code:         in.Code,
		DiscountType: in.DiscountType,
		Value:        in.Value,
		MaxDiscount:  in.MaxDiscount,
		MinCartValue: in.MinCartValue,
		IsActive:     in.IsActive,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
	}
}

func validateCouponInput(in CouponInput) error {
	if strings.TrimSpace(in.Code) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "coupon code is required")
	}
	switch in.DiscountType {
	case enums.DiscountTypePercentage:
		if !in.Value.IsPositive() || in.Value.GreaterThan(decimal.NewFromInt(100)) {
			return pkgerrors.New(pkgerrors.CodeValidation, "percentage coupons require a value between 0 and 100")
		}
	case enums.DiscountTypeFlatAmount:
		if !in.Value.IsPositive() {
			return pkgerrors.New(pkgerrors.CodeValidation, "flat coupons require a positive value")
		}
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("coupons do not support discount type %q", in.DiscountType))
	}
	if in.EndDate != nil && in.StartDate != nil && in.EndDate.Before(*in.StartDate) {
		return pkgerrors.New(pkgerrors.CodeValidation, "end date must not precede start date")
	}
	return nil
}

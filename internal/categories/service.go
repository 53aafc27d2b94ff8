package categories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/visionhut/visionhut-backend/pkg/db/models"
	pkgerrors "github.com/visionhut/visionhut-backend/pkg/errors"
)

// Service manages category discount lifecycle for the admin API.
type Service interface {
	List(ctx context.Context) ([]models.CategoryDiscount, error)
	Create(ctx context.Context, input CategoryDiscountInput) (*models.CategoryDiscount, error)
	Update(ctx context.Context, id uuid.UUID, input CategoryDiscountInput) (*models.CategoryDiscount, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryDiscountInput carries the writable fields of a category discount.
type CategoryDiscountInput struct {
	CustomerCategory string
	BrandCode        string
	Percent          decimal.Decimal
	MaxCap           decimal.NullDecimal
	IsActive         bool
	StartDate        *time.Time
	EndDate          *time.Time
}

type service struct {
	repo Repository
}

// NewService constructs the category discount management service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("categories repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]models.CategoryDiscount, error) {
	return s.repo.List(ctx)
}

func (s *service) Create(ctx context.Context, input CategoryDiscountInput) (*models.CategoryDiscount, error) {
	if err := validateCategoryDiscountInput(input); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, input.toModel())
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input CategoryDiscountInput) (*models.CategoryDiscount, error) {
	if err := validateCategoryDiscountInput(input); err != nil {
		return nil, err
	}
	updated := input.toModel()
	updated.ID = id
	return s.repo.Update(ctx, updated)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (in CategoryDiscountInput) toModel() *models.CategoryDiscount {
	brand := strings.TrimSpace(in.BrandCode)
	if brand == "" {
		brand = models.CategoryDiscountWildcard
	}
	return &models.CategoryDiscount{
		CustomerCategory: strings.TrimSpace(in.CustomerCategory),
		BrandCode:        brand,
		Percent:          in.Percent,
		MaxCap:           in.MaxCap,
		IsActive:         in.IsActive,
		StartDate:        in.StartDate,
		EndDate:          in.EndDate,
	}
}

func validateCategoryDiscountInput(in CategoryDiscountInput) error {
	if strings.TrimSpace(in.CustomerCategory) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer category is required")
	}
	if !in.Percent.IsPositive() || in.Percent.GreaterThan(decimal.NewFromInt(100)) {
		return pkgerrors.New(pkgerrors.CodeValidation, "percent must be between 0 and 100")
	}
	if in.MaxCap.Valid && !in.MaxCap.Decimal.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "max cap must be positive when set")
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return pkgerrors.New(pkgerrors.CodeValidation, "end date must not precede start date")
	}
	return nil
}

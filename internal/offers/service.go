package offers

import (
	"context"
	"fmt"
	"time"

	"github.com/visionhut/visionhut-backend/pkg/db/models"
	pkgerrors "github.com/visionhut/visionhut-backend/pkg/errors"
	"github.com/visionhut/visionhut-backend/pkg/logger"
	"github.com/visionhut/visionhut-backend/pkg/metrics"
)

type ruleLoader interface {
	ListActive(ctx context.Context) ([]models.OfferRule, error)
}

type categoryLoader interface {
	Find(ctx context.Context, customerCategory, brandCode string) (*models.CategoryDiscount, error)
}

type couponLoader interface {
	FindByCode(ctx context.Context, code string) (*models.Coupon, error)
}

// Recorder receives the best-effort audit payload after each calculation.
// Implementations must never block the calculation on failure.
type Recorder interface {
	Record(ctx context.Context, audit *models.CalculationAudit)
}

// Service exposes the calculation entry point.
type Service interface {
	Calculate(ctx context.Context, input *CalculationInput) (*CalculationResult, error)
}

type service struct {
	engine     *Engine
	rules      ruleLoader
	categories categoryLoader
	coupons    couponLoader
	recorder   Recorder
	metrics    *metrics.CalculationMetrics
	logg       *logger.Logger
	now        func() time.Time
}

// NewService builds the calculation service. The recorder and metrics are
// optional; everything else is required.
func NewService(rules ruleLoader, categories categoryLoader, coupons couponLoader, recorder Recorder, calcMetrics *metrics.CalculationMetrics, logg *logger.Logger) (Service, error) {
	if rules == nil {
		return nil, fmt.Errorf("rule loader required")
	}
	if categories == nil {
		return nil, fmt.Errorf("category discount loader required")
	}
	if coupons == nil {
		return nil, fmt.Errorf("coupon loader required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		engine:     NewEngine(),
		rules:      rules,
		categories: categories,
		coupons:    coupons,
		recorder:   recorder,
		metrics:    calcMetrics,
		logg:       logg,
		now:        time.Now,
	}, nil
}

// Calculate validates the cart, fetches a read-only snapshot, runs the pure
// engine, and emits audit + metrics. Collaborator failures abort the call;
// the engine never guesses a price.
func (s *service) Calculate(ctx context.Context, input *CalculationInput) (*CalculationResult, error) {
	if input == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "calculation input is required")
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	started := s.now()
	snapshot, err := s.loadSnapshot(ctx, input)
	if err != nil {
		s.metrics.ObserveDuration("error", s.now().Sub(started))
		return nil, err
	}

	result := s.engine.Calculate(input, snapshot, s.now())

	s.metrics.ObserveDuration("success", s.now().Sub(started))
	savings, _ := result.TotalSavings.Float64()
	s.metrics.ObserveSavings(savings)
	for _, offer := range result.AppliedOffers {
		s.metrics.IncApplied(offer.OfferType.String())
	}

	if s.recorder != nil {
		s.recorder.Record(ctx, buildAudit(ctx, input, result))
	}

	return result, nil
}

func (s *service) loadSnapshot(ctx context.Context, input *CalculationInput) (*Snapshot, error) {
	rules, err := s.rules.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading offer rules")
	}

	snapshot := &Snapshot{Rules: rules}

	if input.CustomerCategory != "" {
		exact, err := s.categories.Find(ctx, input.CustomerCategory, input.Frame.Brand)
		if err != nil && !pkgerrors.IsNotFound(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading category discount")
		}
		snapshot.CategoryExact = exact

		wildcard, err := s.categories.Find(ctx, input.CustomerCategory, models.CategoryDiscountWildcard)
		if err != nil && !pkgerrors.IsNotFound(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading wildcard category discount")
		}
		snapshot.CategoryWildcard = wildcard
	}

	if input.CouponCode != "" {
		coupon, err := s.coupons.FindByCode(ctx, input.CouponCode)
		if err != nil && !pkgerrors.IsNotFound(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading coupon")
		}
		snapshot.Coupon = coupon
	}

	return snapshot, nil
}

func buildAudit(ctx context.Context, input *CalculationInput, result *CalculationResult) *models.CalculationAudit {
	audit := &models.CalculationAudit{
		FrameBrand:      input.Frame.Brand,
		FramePrice:      input.Frame.Price,
		LensItemCode:    input.Lens.ItemCode,
		LensPrice:       input.Lens.Price,
		BaseTotal:       result.BaseTotal,
		FinalPayable:    result.FinalPayable,
		TotalSavings:    result.TotalSavings,
		Locked:          result.Locked,
		AppliedOffers:   result.AppliedOffers,
		PriceComponents: result.PriceComponents,
	}
	if input.Frame.SubCategory != "" {
		sub := input.Frame.SubCategory
		audit.FrameSubCategory = &sub
	}
	if input.CustomerCategory != "" {
		cat := input.CustomerCategory
		audit.CustomerCategory = &cat
	}
	if input.CouponCode != "" {
		code := input.CouponCode
		audit.CouponCode = &code
	}
	if requestID := logger.RequestIDFromContext(ctx); requestID != "" {
		audit.RequestID = &requestID
	}
	return audit
}

package rules

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/visionhut/visionhut-backend/pkg/db"
	"github.com/visionhut/visionhut-backend/pkg/db/models"
	pkgerrors "github.com/visionhut/visionhut-backend/pkg/errors"
	"github.com/visionhut/visionhut-backend/pkg/pagination"
)

// Repository exposes offer rule persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListActive(ctx context.Context) ([]models.OfferRule, error)
	List(ctx context.Context, params pagination.Params) ([]models.OfferRule, string, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.OfferRule, error)
	GetByCode(ctx context.Context, code string) (*models.OfferRule, error)
	Create(ctx context.Context, rule *models.OfferRule) (*models.OfferRule, error)
	Update(ctx context.Context, rule *models.OfferRule) (*models.OfferRule, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an offer rule repository on the provided GORM DB.
func NewRepository(conn *gorm.DB) Repository {
	return &repository{db: conn}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// ListActive returns every active rule in evaluation order. The engine takes
// this as its read-only snapshot for one calculation.
func (r *repository) ListActive(ctx context.Context) ([]models.OfferRule, error) {
	var rows []models.OfferRule
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("priority ASC").
		Order("created_at ASC").
		Find(&rows).
		Error
	return rows, err
}

// List pages through all rules for the admin surface.
func (r *repository) List(ctx context.Context, params pagination.Params) ([]models.OfferRule, string, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	query := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit)

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	if cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var rows []models.OfferRule
	if err := query.Find(&rows).Error; err != nil {
		return nil, "", err
	}

	next := ""
	if pageSize := pagination.NormalizeLimit(params.Limit); len(rows) > pageSize {
		rows = rows[:pageSize]
		last := rows[len(rows)-1]
		next = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return rows, next, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*models.OfferRule, error) {
	var rule models.OfferRule
	if err := r.db.WithContext(ctx).First(&rule, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "offer rule not found")
		}
		return nil, err
	}
	return &rule, nil
}

func (r *repository) GetByCode(ctx context.Context, code string) (*models.OfferRule, error) {
	var rule models.OfferRule
	if err := r.db.WithContext(ctx).First(&rule, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "offer rule not found")
		}
		return nil, err
	}
	return &rule, nil
}

func (r *repository) Create(ctx context.Context, rule *models.OfferRule) (*models.OfferRule, error) {
	if err := r.db.WithContext(ctx).Create(rule).Error; err != nil {
		if db.IsUniqueViolation(err, "idx_offer_rules_code") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "offer rule code already exists")
		}
		return nil, err
	}
	return rule, nil
}

func (r *repository) Update(ctx context.Context, rule *models.OfferRule) (*models.OfferRule, error) {
	if err := r.db.WithContext(ctx).Save(rule).Error; err != nil {
		if db.IsUniqueViolation(err, "idx_offer_rules_code") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "offer rule code already exists")
		}
		return nil, err
	}
	return rule, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.OfferRule{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "offer rule not found")
	}
	return nil
}

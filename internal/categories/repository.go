package categories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/visionhut/visionhut-backend/pkg/db"
	"github.com/visionhut/visionhut-backend/pkg/db/models"
	pkgerrors "github.com/visionhut/visionhut-backend/pkg/errors"
)

// Repository exposes category discount persistence.
type Repository interface {
	Find(ctx context.Context, customerCategory, brandCode string) (*models.CategoryDiscount, error)
	List(ctx context.Context) ([]models.CategoryDiscount, error)
	Create(ctx context.Context, discount *models.CategoryDiscount) (*models.CategoryDiscount, error)
	Update(ctx context.Context, discount *models.CategoryDiscount) (*models.CategoryDiscount, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a category discount repository on the provided GORM DB.
func NewRepository(conn *gorm.DB) Repository {
	return &repository{db: conn}
}

// Find returns the row for an exact (category, brand) pair. The wildcard row
// is just a pair whose brand code is "*"; the engine decides the fallback.
func (r *repository) Find(ctx context.Context, customerCategory, brandCode string) (*models.CategoryDiscount, error) {
	var discount models.CategoryDiscount
	err := r.db.WithContext(ctx).
		First(&discount, "customer_category = ? AND brand_code = ?", customerCategory, brandCode).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category discount not found")
		}
		return nil, err
	}
	return &discount, nil
}

func (r *repository) List(ctx context.Context) ([]models.CategoryDiscount, error) {
	var rows []models.CategoryDiscount
	err := r.db.WithContext(ctx).
		Order("customer_category ASC").
		Order("brand_code ASC").
		Find(&rows).
		Error
	return rows, err
}

func (r *repository) Create(ctx context.Context, discount *models.CategoryDiscount) (*models.CategoryDiscount, error) {
	if err := r.db.WithContext(ctx).Create(discount).Error; err != nil {
		if db.IsUniqueViolation(err, "idx_category_brand") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category discount already exists for this category and brand")
		}
		return nil, err
	}
	return discount, nil
}

func (r *repository) Update(ctx context.Context, discount *models.CategoryDiscount) (*models.CategoryDiscount, error) {
	if err := r.db.WithContext(ctx).Save(discount).Error; err != nil {
		if db.IsUniqueViolation(err, "idx_category_brand") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category discount already exists for this category and brand")
		}
		return nil, err
	}
	return discount, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.CategoryDiscount{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "category discount not found")
	}
	return nil
}

package audit

import (
	"context"

	"gorm.io/gorm"

	"github.com/visionhut/visionhut-backend/pkg/db/models"
	pkgerrors "github.com/visionhut/visionhut-backend/pkg/errors"
)

// Repository persists calculation audit rows.
type Repository interface {
	Insert(ctx context.Context, audit *models.CalculationAudit) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, audit *models.CalculationAudit) error {
	if err := r.db.WithContext(ctx).Create(audit).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "inserting calculation audit")
	}
	return nil
}

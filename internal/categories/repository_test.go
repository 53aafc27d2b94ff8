package categories

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/visionhut/visionhut-backend/pkg/db/models"
	pkgerrors "github.com/visionhut/visionhut-backend/pkg/errors"
)

func setupCategoriesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS category_discounts (
  id TEXT PRIMARY KEY,
  customer_category TEXT NOT NULL,
  brand_code TEXT NOT NULL,
  percent TEXT NOT NULL DEFAULT '0',
  max_cap TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  start_date DATETIME,
  end_date DATETIME,
  created_at DATETIME,
  updated_at DATETIME,
  CONSTRAINT idx_category_brand UNIQUE (customer_category, brand_code)
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func newTestDiscount(category, brand string) *models.CategoryDiscount {
	return &models.CategoryDiscount{
		ID:               uuid.New(),
		CustomerCategory: category,
		BrandCode:        brand,
		Percent:          decimal.NewFromInt(10),
		IsActive:         true,
	}
}

func TestCategoryFindExactAndWildcard(t *testing.T) {
	db := setupCategoriesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	category := fmt.Sprintf("GOLD-%s", uuid.NewString())

	_, err := repo.Create(ctx, newTestDiscount(category, "RayBan"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newTestDiscount(category, models.CategoryDiscountWildcard))
	require.NoError(t, err)

	exact, err := repo.Find(ctx, category, "RayBan")
	require.NoError(t, err)
	assert.Equal(t, "RayBan", exact.BrandCode)

	wildcard, err := repo.Find(ctx, category, models.CategoryDiscountWildcard)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryDiscountWildcard, wildcard.BrandCode)

	_, err = repo.Find(ctx, category, "Oakley")
	assert.True(t, pkgerrors.IsNotFound(err), "expected not found for unknown brand, got %v", err)
}

func TestCategoryDuplicatePairConflicts(t *testing.T) {
	db := setupCategoriesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	category := fmt.Sprintf("SILVER-%s", uuid.NewString())
	_, err := repo.Create(ctx, newTestDiscount(category, "RayBan"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newTestDiscount(category, "RayBan"))
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeConflict), "expected conflict, got %v", err)
}

func TestCategoryDelete(t *testing.T) {
	db := setupCategoriesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, newTestDiscount(fmt.Sprintf("PLAT-%s", uuid.NewString()), "RayBan"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))

	err = repo.Delete(ctx, created.ID)
	assert.True(t, pkgerrors.IsNotFound(err), "expected not found on second delete, got %v", err)
}

func TestCategoryPersistsInactiveFlag(t *testing.T) {
	db := setupCategoriesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	discount := newTestDiscount(fmt.Sprintf("EMP-%s", uuid.NewString()), "RAYBAN")
	discount.IsActive = false
	_, err := repo.Create(ctx, discount)
	require.NoError(t, err)

	stored, err := repo.Find(ctx, discount.CustomerCategory, "RAYBAN")
	require.NoError(t, err)
	assert.False(t, stored.IsActive, "inactive flag must survive the insert")
}

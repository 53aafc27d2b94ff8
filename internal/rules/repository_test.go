package rules

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
	"github.com/visionhut/visionhut-backend/pkg/enums"
	pkgerrors "github.com/visionhut/visionhut-backend/pkg/errors"
	"github.com/visionhut/visionhut-backend/pkg/pagination"
)

func setupRulesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS offer_rules (
  id TEXT PRIMARY KEY,
  code TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  offer_type TEXT NOT NULL,
  discount_type TEXT NOT NULL DEFAULT '',
  discount_value TEXT NOT NULL DEFAULT '0',
  combo_price TEXT,
  brands TEXT,
  legacy_brand TEXT,
  sub_categories TEXT,
  legacy_sub_category TEXT,
  product_types TEXT,
  min_frame_mrp TEXT,
  max_frame_mrp TEXT,
  lens_brand_lines TEXT,
  lens_item_codes TEXT,
  start_date DATETIME,
  end_date DATETIME,
  priority INTEGER NOT NULL DEFAULT 100,
  is_active INTEGER NOT NULL DEFAULT 1,
  is_second_pair_rule INTEGER NOT NULL DEFAULT 0,
  upsell_enabled INTEGER NOT NULL DEFAULT 0,
  upsell_threshold TEXT,
  free_product_value TEXT,
  reward_text TEXT,
  config TEXT NOT NULL DEFAULT '{}',
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func newTestRule(code string) *models.OfferRule {
	return &models.OfferRule{
		ID:            uuid.New(),
		Code:          code,
		Name:          "Test rule",
		OfferType:     enums.OfferTypeFlatOff,
		DiscountType:  enums.DiscountTypeFlatAmount,
		DiscountValue: decimal.NewFromInt(500),
		IsActive:      true,
		Priority:      100,
	}
}

func TestRulesCreateAndGet(t *testing.T) {
	db := setupRulesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	code := fmt.Sprintf("FLAT-%s", uuid.NewString())
	created, err := repo.Create(ctx, newTestRule(code))
	require.NoError(t, err)

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, code, byID.Code)
	assert.True(t, byID.DiscountValue.Equal(decimal.NewFromInt(500)))

	byCode, err := repo.GetByCode(ctx, code)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byCode.ID)
}

func TestRulesGetMissingReturnsNotFound(t *testing.T) {
	db := setupRulesTestDB(t)
	repo := NewRepository(db)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.True(t, pkgerrors.IsNotFound(err), "expected not found, got %v", err)

	_, err = repo.GetByCode(context.Background(), "NO-SUCH-CODE")
	assert.True(t, pkgerrors.IsNotFound(err), "expected not found, got %v", err)
}

func TestRulesDuplicateCodeConflicts(t *testing.T) {
	db := setupRulesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	code := fmt.Sprintf("DUP-%s", uuid.NewString())
	_, err := repo.Create(ctx, newTestRule(code))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newTestRule(code))
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeConflict), "expected conflict, got %v", err)
}

func TestRulesListActiveOrdering(t *testing.T) {
	db := setupRulesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	prefix := uuid.NewString()

	low := newTestRule(fmt.Sprintf("LOW-%s", prefix))
	low.Priority = 10
	high := newTestRule(fmt.Sprintf("HIGH-%s", prefix))
	high.Priority = 200
	inactive := newTestRule(fmt.Sprintf("OFF-%s", prefix))
	inactive.Priority = 1
	inactive.IsActive = false

	for _, rule := range []*models.OfferRule{high, low, inactive} {
		_, err := repo.Create(ctx, rule)
		require.NoError(t, err)
	}

	rows, err := repo.ListActive(ctx)
	require.NoError(t, err)

	var lowIdx, highIdx = -1, -1
	for i, row := range rows {
		switch row.Code {
		case low.Code:
			lowIdx = i
		case high.Code:
			highIdx = i
		case inactive.Code:
			t.Fatal("inactive rules must not be listed")
		}
	}
	require.NotEqual(t, -1, lowIdx, "low priority rule missing")
	require.NotEqual(t, -1, highIdx, "high priority rule missing")
	assert.Less(t, lowIdx, highIdx, "lower priority value sorts first")
}

func TestRulesDelete(t *testing.T) {
	db := setupRulesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, newTestRule(fmt.Sprintf("DEL-%s", uuid.NewString())))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))

	err = repo.Delete(ctx, created.ID)
	assert.True(t, pkgerrors.IsNotFound(err), "deleting twice should be not found, got %v", err)
}

func TestRulesListPagination(t *testing.T) {
	db := setupRulesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, newTestRule(fmt.Sprintf("PG-%d-%s", i, uuid.NewString())))
		require.NoError(t, err)
	}

	page, next, err := repo.List(ctx, pagination.Params{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page, 2)
	assert.NotEmpty(t, next, "expected a next cursor with more rows available")

	_, _, err = repo.List(ctx, pagination.Params{Limit: 2, Cursor: "not-base64!!"})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation), "expected validation error, got %v", err)
}

func TestRulesPersistInactiveAndZeroPriority(t *testing.T) {
	db := setupRulesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	rule := newTestRule(fmt.Sprintf("OFF-%s", uuid.NewString()))
	rule.IsActive = false
	rule.Priority = 0
	created, err := repo.Create(ctx, rule)
	require.NoError(t, err)

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive, "inactive flag must survive the insert")
	assert.Equal(t, 0, stored.Priority, "priority zero must survive the insert")
}

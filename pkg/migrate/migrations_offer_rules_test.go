package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOfferRulesMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_offer_rules.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no offer rules migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS offer_rules",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_offer_rules_code ON offer_rules (code)",
		"CHECK (discount_value >= 0)",
		"CHECK (priority >= 0)",
		"config JSONB NOT NULL DEFAULT '{}'::JSONB",
		"DROP TABLE IF EXISTS offer_rules",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestCategoryDiscountMigrationEnforcesPercentRange(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_category_discounts.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no category discounts migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CHECK (percent >= 0 AND percent <= 100)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_category_brand ON category_discounts (customer_category, brand_code)",
		"DROP TABLE IF EXISTS category_discounts",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

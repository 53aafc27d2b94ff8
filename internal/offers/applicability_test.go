package offers

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/visionhut/visionhut-backend/pkg/db/models"
	"github.com/visionhut/visionhut-backend/pkg/enums"
)

func testFrame() Frame {
	return Frame{
		Brand:       "RayBan",
		SubCategory: "Aviator",
		Price:       decimal.NewFromInt(2000),
		ProductType: enums.ProductTypeFrame,
	}
}

func testLens() Lens {
	return Lens{
		ItemCode:  "LN-100",
		Price:     decimal.NewFromInt(1500),
		BrandLine: "Crizal",
	}
}

func activeRule(offerType enums.OfferType) models.OfferRule {
	return models.OfferRule{
		Code:      "TEST-RULE",
		OfferType: offerType,
		IsActive:  true,
		Priority:  100,
	}
}

func TestIsApplicableActiveFlag(t *testing.T) {
	rule := activeRule(enums.OfferTypeFlatOff)
	now := time.Now()

	if !isApplicable(&rule, testFrame(), testLens(), now) {
		t.Fatal("expected active unbounded rule to apply")
	}

	rule.IsActive = false
	if isApplicable(&rule, testFrame(), testLens(), now) {
		t.Fatal("inactive rule must never apply")
	}
}

func TestIsApplicableValidityWindow(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	before := now.Add(-48 * time.Hour)
	after := now.Add(48 * time.Hour)

	cases := []struct {
		name  string
		start *time.Time
		end   *time.Time
		want  bool
	}{
		{"unbounded", nil, nil, true},
		{"inside window", &before, &after, true},
		{"starts later", &after, nil, false},
		{"already ended", nil, &before, false},
		{"start boundary inclusive", &now, nil, true},
		{"end boundary inclusive", nil, &now, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rule := activeRule(enums.OfferTypeFlatOff)
			rule.StartDate = tc.start
			rule.EndDate = tc.end
			if got := isApplicable(&rule, testFrame(), testLens(), now); got != tc.want {
				t.Fatalf("isApplicable = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsApplicableProductTypeGate(t *testing.T) {
	now := time.Now()

	rule := activeRule(enums.OfferTypePercentOff)
	rule.ProductTypes = []string{"SUNGLASS"}
	if isApplicable(&rule, testFrame(), testLens(), now) {
		t.Fatal("frame should not pass a sunglass-only gate")
	}

	sunglass := testFrame()
	sunglass.ProductType = enums.ProductTypeSunglass
	if !isApplicable(&rule, sunglass, testLens(), now) {
		t.Fatal("sunglass frame should pass the gate")
	}
}

func TestIsApplicableYopoLegacyFrameOnly(t *testing.T) {
	now := time.Now()
	rule := activeRule(enums.OfferTypeYopo)

	if !isApplicable(&rule, testFrame(), testLens(), now) {
		t.Fatal("YOPO without product types should apply to frames")
	}

	sunglass := testFrame()
	sunglass.ProductType = enums.ProductTypeSunglass
	if isApplicable(&rule, sunglass, testLens(), now) {
		t.Fatal("YOPO without product types must not apply to non-frames")
	}

	// An explicit product-type list overrides the legacy default.
	rule.ProductTypes = []string{"SUNGLASS"}
	if !isApplicable(&rule, sunglass, testLens(), now) {
		t.Fatal("explicit product types should override the YOPO legacy gate")
	}
}

func TestIsApplicableBrandArrayWinsOverLegacy(t *testing.T) {
	now := time.Now()
	legacy := "Oakley"

	rule := activeRule(enums.OfferTypeFlatOff)
	rule.Brands = []string{"RayBan"}
	rule.LegacyBrand = &legacy

	if !isApplicable(&rule, testFrame(), testLens(), now) {
		t.Fatal("array brand list must win over the legacy field")
	}

	rule.Brands = nil
	if isApplicable(&rule, testFrame(), testLens(), now) {
		t.Fatal("legacy brand should gate when no array is present")
	}
}

func TestIsApplicableSubCategoryFallback(t *testing.T) {
	now := time.Now()
	legacy := "Wayfarer"

	rule := activeRule(enums.OfferTypeFlatOff)
	rule.LegacySubCategory = &legacy
	if isApplicable(&rule, testFrame(), testLens(), now) {
		t.Fatal("legacy sub-category mismatch should decline")
	}

	rule.SubCategories = []string{"Aviator"}
	if !isApplicable(&rule, testFrame(), testLens(), now) {
		t.Fatal("sub-category array should win over legacy field")
	}
}

func TestIsApplicableFramePriceBounds(t *testing.T) {
	now := time.Now()
	rule := activeRule(enums.OfferTypeFlatOff)
	rule.MinFrameMRP = decimal.NewNullDecimal(decimal.NewFromInt(2000))
	rule.MaxFrameMRP = decimal.NewNullDecimal(decimal.NewFromInt(3000))

	frame := testFrame()
	if !isApplicable(&rule, frame, testLens(), now) {
		t.Fatal("price on the min boundary is inclusive")
	}

	frame.Price = decimal.NewFromInt(3000)
	if !isApplicable(&rule, frame, testLens(), now) {
		t.Fatal("price on the max boundary is inclusive")
	}

	frame.Price = decimal.NewFromInt(1999)
	if isApplicable(&rule, frame, testLens(), now) {
		t.Fatal("price below min must decline")
	}

	frame.Price = decimal.NewFromInt(3001)
	if isApplicable(&rule, frame, testLens(), now) {
		t.Fatal("price above max must decline")
	}
}

func TestIsApplicableLensGates(t *testing.T) {
	now := time.Now()

	rule := activeRule(enums.OfferTypeFreeLens)
	rule.LensBrandLines = []string{"Crizal"}
	rule.LensItemCodes = []string{"LN-100"}
	if !isApplicable(&rule, testFrame(), testLens(), now) {
		t.Fatal("matching lens should pass both allow-lists")
	}

	otherLens := testLens()
	otherLens.BrandLine = "Essilor"
	if isApplicable(&rule, testFrame(), otherLens, now) {
		t.Fatal("lens brand line outside the allow-list must decline")
	}

	otherLens = testLens()
	otherLens.ItemCode = "LN-999"
	if isApplicable(&rule, testFrame(), otherLens, now) {
		t.Fatal("lens item code outside the allow-list must decline")
	}
}

func TestIsApplicableIsDeterministic(t *testing.T) {
	now := time.Now()
	rule := activeRule(enums.OfferTypePercentOff)
	rule.Brands = []string{"RayBan"}

	first := isApplicable(&rule, testFrame(), testLens(), now)
	for i := 0; i < 5; i++ {
		if isApplicable(&rule, testFrame(), testLens(), now) != first {
			t.Fatal("identical inputs must produce identical results")
		}
	}
}

func TestFrameTypeDefaultsToFrame(t *testing.T) {
	undeclared := Frame{}
	if got := undeclared.Type(); got != enums.ProductTypeFrame {
		t.Fatalf("empty product type should default to FRAME, got %s", got)
	}

	sunglass := Frame{ProductType: enums.ProductTypeSunglass}
	if got := sunglass.Type(); got != enums.ProductTypeSunglass {
		t.Fatalf("declared product type should pass through, got %s", got)
	}

	// A cart that never declares a product type must still clear a
	// frame-only YOPO gate.
	now := time.Now()
	rule := activeRule(enums.OfferTypeYopo)
	frame := testFrame()
	frame.ProductType = ""
	if !isApplicable(&rule, frame, testLens(), now) {
		t.Fatal("undeclared product type should count as a frame")
	}
}

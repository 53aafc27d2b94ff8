package offers

import (
	"time"

	"github.com/visionhut/visionhut-backend/pkg/db/models"
	"github.com/visionhut/visionhut-backend/pkg/enums"
)

// isApplicable is the pure candidate predicate: every gate below must pass for
// the rule to reach a handler at all.
func isApplicable(rule *models.OfferRule, frame Frame, lens Lens, now time.Time) bool {
	if !rule.IsActive {
		return false
	}
	if !withinWindow(rule.StartDate, rule.EndDate, now) {
		return false
	}

	frameType := frame.Type()
	if len(rule.ProductTypes) > 0 {
		if !containsString(rule.ProductTypes, string(frameType)) {
			return false
		}
	} else if rule.OfferType == enums.OfferTypeYopo && frameType != enums.ProductTypeFrame {
		// Legacy behavior: YOPO rules without an explicit product-type list
		// only ever applied to frames.
		return false
	}

	if len(rule.Brands) > 0 {
		if !containsString(rule.Brands, frame.Brand) {
			return false
		}
	} else if rule.LegacyBrand != nil && *rule.LegacyBrand != "" && *rule.LegacyBrand != frame.Brand {
		return false
	}

	if len(rule.SubCategories) > 0 {
		if !containsString(rule.SubCategories, frame.SubCategory) {
			return false
		}
	} else if rule.LegacySubCategory != nil && *rule.LegacySubCategory != "" && *rule.LegacySubCategory != frame.SubCategory {
		return false
	}

	if rule.MinFrameMRP.Valid && frame.Price.LessThan(rule.MinFrameMRP.Decimal) {
		return false
	}
	if rule.MaxFrameMRP.Valid && frame.Price.GreaterThan(rule.MaxFrameMRP.Decimal) {
		return false
	}

	if len(rule.LensBrandLines) > 0 && !containsString(rule.LensBrandLines, lens.BrandLine) {
		return false
	}
	if len(rule.LensItemCodes) > 0 && !containsString(rule.LensItemCodes, lens.ItemCode) {
		return false
	}

	return true
}

// withinWindow treats both bounds as optional and inclusive.
func withinWindow(start, end *time.Time, now time.Time) bool {
	if start != nil && now.Before(*start) {
		return false
	}
	if end != nil && now.After(*end) {
		return false
	}
	return true
}

func containsString(haystack []string, needle string) bool {
	for _, candidate := range haystack {
		if candidate == needle {
			return true
		}
	}
	return false
}

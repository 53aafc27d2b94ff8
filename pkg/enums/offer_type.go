package enums

import "fmt"

// OfferType identifies the promotional mechanic an offer rule encodes.
type OfferType string

const (
	OfferTypeYopo             OfferType = "YOPO"
	OfferTypeComboPrice       OfferType = "COMBO_PRICE"
	OfferTypeFreeLens         OfferType = "FREE_LENS"
	OfferTypePercentOff       OfferType = "PERCENT_OFF"
	OfferTypeFlatOff          OfferType = "FLAT_OFF"
	OfferTypeBog50            OfferType = "BOG50"
	OfferTypeCategoryDiscount OfferType = "CATEGORY_DISCOUNT"
	OfferTypeBonusFreeProduct OfferType = "BONUS_FREE_PRODUCT"

	// OfferTypeCoupon tags coupon-stage entries in applied-offer audit
	// lists. It is not a valid rule offer type.
	OfferTypeCoupon OfferType = "COUPON"
)

var validOfferTypes = []OfferType{
	OfferTypeYopo,
	OfferTypeComboPrice,
	OfferTypeFreeLens,
	OfferTypePercentOff,
	OfferTypeFlatOff,
	OfferTypeBog50,
	OfferTypeCategoryDiscount,
	OfferTypeBonusFreeProduct,
}

// String implements fmt.Stringer.
func (o OfferType) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OfferType.
func (o OfferType) IsValid() bool {
	for _, candidate := range validOfferTypes {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOfferType converts raw input into an OfferType.
func ParseOfferType(value string) (OfferType, error) {
	for _, candidate := range validOfferTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid offer type %q", value)
}

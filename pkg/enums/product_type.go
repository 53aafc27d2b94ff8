package enums

import "fmt"

// ProductType categorizes the primary item on a cart line.
type ProductType string

const (
	ProductTypeFrame       ProductType = "FRAME"
	ProductTypeSunglass    ProductType = "SUNGLASS"
	ProductTypeReading     ProductType = "READING_GLASSES"
	ProductTypeContactLens ProductType = "CONTACT_LENS"
	ProductTypeAccessory   ProductType = "ACCESSORY"
)

var validProductTypes = []ProductType{
	ProductTypeFrame,
	ProductTypeSunglass,
	ProductTypeReading,
	ProductTypeContactLens,
	ProductTypeAccessory,
}

// String implements fmt.Stringer.
func (p ProductType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProductType.
func (p ProductType) IsValid() bool {
	for _, candidate := range validProductTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProductType converts raw input into a ProductType.
func ParseProductType(value string) (ProductType, error) {
	for _, candidate := range validProductTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product type %q", value)
}

package enums

// DiscountScope names the slice of the cart a percentage or flat discount applies to.
type DiscountScope string

const (
	DiscountScopeCart  DiscountScope = "CART"
	DiscountScopeFrame DiscountScope = "FRAME"
	DiscountScopeLens  DiscountScope = "LENS"
)

// String implements fmt.Stringer.
func (d DiscountScope) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DiscountScope.
func (d DiscountScope) IsValid() bool {
	switch d {
	case DiscountScopeCart, DiscountScopeFrame, DiscountScopeLens:
		return true
	}
	return false
}

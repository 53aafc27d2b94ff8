package enums

// BonusTrigger controls when a BONUS_FREE_PRODUCT rule fires.
type BonusTrigger string

const (
	BonusTriggerBillValue BonusTrigger = "BILL_VALUE"
	BonusTriggerAlways    BonusTrigger = "ALWAYS"
)

// String implements fmt.Stringer.
func (b BonusTrigger) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BonusTrigger.
func (b BonusTrigger) IsValid() bool {
	switch b {
	case BonusTriggerBillValue, BonusTriggerAlways:
		return true
	}
	return false
}

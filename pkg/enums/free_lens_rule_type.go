package enums

// FreeLensRuleType selects the free-lens sub-policy configured on a FREE_LENS rule.
type FreeLensRuleType string

const (
	FreeLensRuleTypeFull           FreeLensRuleType = "FULL"
	FreeLensRuleTypePercentOfFrame FreeLensRuleType = "PERCENT_OF_FRAME"
	FreeLensRuleTypeValueCap       FreeLensRuleType = "VALUE_CAP"
)

// String implements fmt.Stringer.
func (f FreeLensRuleType) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FreeLensRuleType.
func (f FreeLensRuleType) IsValid() bool {
	switch f {
	case FreeLensRuleTypeFull, FreeLensRuleTypePercentOfFrame, FreeLensRuleTypeValueCap:
		return true
	}
	return false
}

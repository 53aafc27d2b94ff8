package types

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/visionhut/visionhut-backend/pkg/enums"
)

// PriceComponent is one line of the customer-facing price breakdown. Charges
// carry positive amounts, discounts negative ones.
type PriceComponent struct {
	Label    string          `json:"label"`
	Amount   decimal.Decimal `json:"amount"`
	RuleCode *string         `json:"rule_code,omitempty"`
}

// PriceComponents is an ordered breakdown persisted as JSONB on audit rows.
type PriceComponents []PriceComponent

// Value serializes the components to JSON.
func (p PriceComponents) Value() (driver.Value, error) {
	if p == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(p)
}

// Scan decodes JSONB into the component slice.
func (p *PriceComponents) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	var decoded PriceComponents
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*p = decoded
	return nil
}

// AppliedOffer records one offer that reduced the payable during a calculation.
type AppliedOffer struct {
	RuleCode  string          `json:"rule_code"`
	OfferType enums.OfferType `json:"offer_type"`
	Label     string          `json:"label"`
	Savings   decimal.Decimal `json:"savings"`
}

// AppliedOffers is the audit list persisted as JSONB.
type AppliedOffers []AppliedOffer

// Value serializes the applied offers to JSON.
func (a AppliedOffers) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}

// Scan decodes JSONB into the applied offer slice.
func (a *AppliedOffers) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	var decoded AppliedOffers
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*a = decoded
	return nil
}

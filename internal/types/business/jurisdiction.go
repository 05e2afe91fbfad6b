package business

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// JurisdictionRates are the sales tax rates of one jurisdiction, as fractions.
// A jurisdiction charges either HST alone or GST with optional PST/QST.
type JurisdictionRates struct {
	Code string              `json:"code" yaml:"code"`
	Name string              `json:"name" yaml:"name"`
	GST  decimal.NullDecimal `json:"gst" yaml:"-"`
	HST  decimal.NullDecimal `json:"hst" yaml:"-"`
	PST  decimal.NullDecimal `json:"pst" yaml:"-"`
	QST  decimal.NullDecimal `json:"qst" yaml:"-"`
}

// Validate checks the HST/GST exclusivity rule and rate bounds.
func (r JurisdictionRates) Validate() error {
	if r.Code == "" {
		return fmt.Errorf("jurisdiction code is required")
	}
	if r.HST.Valid && (r.GST.Valid || r.PST.Valid || r.QST.Valid) {
		return fmt.Errorf("jurisdiction %s: hst replaces gst and pst, they cannot be combined", r.Code)
	}
	if !r.HST.Valid && !r.GST.Valid {
		return fmt.Errorf("jurisdiction %s: either hst or gst is required", r.Code)
	}
	if r.PST.Valid && r.QST.Valid {
		return fmt.Errorf("jurisdiction %s: pst and qst cannot both apply", r.Code)
	}
	one := decimal.NewFromInt(1)
	for _, t := range AllTaxTypes {
		rate, ok := r.Rate(t)
		if ok && (rate.IsNegative() || rate.GreaterThanOrEqual(one)) {
			return fmt.Errorf("jurisdiction %s: %s rate %s out of range", r.Code, t, rate)
		}
	}
	return nil
}

// Rate returns the rate of t and whether the jurisdiction charges it.
func (r JurisdictionRates) Rate(t TaxType) (decimal.Decimal, bool) {
	var n decimal.NullDecimal
	switch t {
	case TaxTypeGST:
		n = r.GST
	case TaxTypeHST:
		n = r.HST
	case TaxTypePST:
		n = r.PST
	case TaxTypeQST:
		n = r.QST
	}
	return n.Decimal, n.Valid
}

// ApplicableTaxTypes lists the taxes charged in the jurisdiction in canonical order.
func (r JurisdictionRates) ApplicableTaxTypes() []TaxType {
	types := make([]TaxType, 0, 3)
	for _, t := range AllTaxTypes {
		if _, ok := r.Rate(t); ok {
			types = append(types, t)
		}
	}
	return types
}

// PSTFamilyTaxTypes lists the applicable provincial-only taxes.
func (r JurisdictionRates) PSTFamilyTaxTypes() []TaxType {
	types := make([]TaxType, 0, 1)
	for _, t := range r.ApplicableTaxTypes() {
		if t.IsPSTFamily() {
			types = append(types, t)
		}
	}
	return types
}

// NewRate wraps a rate for use in JurisdictionRates.
func NewRate(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

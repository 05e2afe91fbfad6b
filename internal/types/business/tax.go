package business

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TaxType is one of the Canadian sales taxes.
type TaxType string

const (
	TaxTypeGST TaxType = "gst"
	TaxTypeHST TaxType = "hst"
	TaxTypePST TaxType = "pst"
	TaxTypeQST TaxType = "qst"
)

// AllTaxTypes lists every tax type in canonical order.
var AllTaxTypes = []TaxType{TaxTypeGST, TaxTypeHST, TaxTypePST, TaxTypeQST}

// IsPSTFamily reports whether t is a provincial-only tax (PST or QST).
func (t TaxType) IsPSTFamily() bool {
	return t == TaxTypePST || t == TaxTypeQST
}

// ParseTaxType parses a case-insensitive tax type name.
func ParseTaxType(s string) (TaxType, error) {
	switch t := TaxType(strings.ToLower(strings.TrimSpace(s))); t {
	case TaxTypeGST, TaxTypeHST, TaxTypePST, TaxTypeQST:
		return t, nil
	default:
		return "", fmt.Errorf("unknown tax type %q", s)
	}
}

// TaxAmounts holds one amount per tax type.
type TaxAmounts struct {
	GST decimal.Decimal `json:"gst"`
	HST decimal.Decimal `json:"hst"`
	PST decimal.Decimal `json:"pst"`
	QST decimal.Decimal `json:"qst"`
}

// Total sums the amounts in canonical order.
func (a TaxAmounts) Total() decimal.Decimal {
	return a.GST.Add(a.HST).Add(a.PST).Add(a.QST)
}

// Add returns the per-type sum of a and b.
func (a TaxAmounts) Add(b TaxAmounts) TaxAmounts {
	return TaxAmounts{
		GST: a.GST.Add(b.GST),
		HST: a.HST.Add(b.HST),
		PST: a.PST.Add(b.PST),
		QST: a.QST.Add(b.QST),
	}
}

// Sub returns the per-type difference a - b.
func (a TaxAmounts) Sub(b TaxAmounts) TaxAmounts {
	return TaxAmounts{
		GST: a.GST.Sub(b.GST),
		HST: a.HST.Sub(b.HST),
		PST: a.PST.Sub(b.PST),
		QST: a.QST.Sub(b.QST),
	}
}

// Mul scales every amount by factor.
func (a TaxAmounts) Mul(factor decimal.Decimal) TaxAmounts {
	return TaxAmounts{
		GST: a.GST.Mul(factor),
		HST: a.HST.Mul(factor),
		PST: a.PST.Mul(factor),
		QST: a.QST.Mul(factor),
	}
}

// Round rounds every amount to places decimal places.
func (a TaxAmounts) Round(places int32) TaxAmounts {
	return TaxAmounts{
		GST: a.GST.Round(places),
		HST: a.HST.Round(places),
		PST: a.PST.Round(places),
		QST: a.QST.Round(places),
	}
}

// Get returns the amount for a single tax type.
func (a TaxAmounts) Get(t TaxType) decimal.Decimal {
	switch t {
	case TaxTypeGST:
		return a.GST
	case TaxTypeHST:
		return a.HST
	case TaxTypePST:
		return a.PST
	case TaxTypeQST:
		return a.QST
	default:
		return decimal.Zero
	}
}

// With returns a copy of a with the amount for t replaced by v.
func (a TaxAmounts) With(t TaxType, v decimal.Decimal) TaxAmounts {
	switch t {
	case TaxTypeGST:
		a.GST = v
	case TaxTypeHST:
		a.HST = v
	case TaxTypePST:
		a.PST = v
	case TaxTypeQST:
		a.QST = v
	}
	return a
}

// IsZero reports whether every amount is exactly zero.
func (a TaxAmounts) IsZero() bool {
	return a.GST.IsZero() && a.HST.IsZero() && a.PST.IsZero() && a.QST.IsZero()
}

// Equal compares per-type amounts by value.
func (a TaxAmounts) Equal(b TaxAmounts) bool {
	return a.GST.Equal(b.GST) && a.HST.Equal(b.HST) && a.PST.Equal(b.PST) && a.QST.Equal(b.QST)
}

package responses

import (
	"time"

	"github.com/google/uuid"
	"github.com/unations/tax-engine/internal/helpers"
	"github.com/unations/tax-engine/internal/types/business"
)

// TaxAmountsResponse holds per-type tax as fixed-scale money strings
type TaxAmountsResponse struct {
	GST string `json:"gst"`
	HST string `json:"hst"`
	PST string `json:"pst"`
	QST string `json:"qst"`
}

// ExemptionResponse describes the relief applied to a calculation
type ExemptionResponse struct {
	Relief          string     `json:"relief"`
	Type            string     `json:"type"`
	Percentage      string     `json:"percentage"`
	ExemptTaxTypes  []string   `json:"exempt_tax_types"`
	Provenance      string     `json:"provenance"`
	StatusCardValid bool       `json:"status_card_valid"`
	ExemptionID     *uuid.UUID `json:"exemption_id,omitempty"`
	ValidUntil      *time.Time `json:"valid_until,omitempty"`
}

// LineItemTaxResponse is the tax outcome of one line
type LineItemTaxResponse struct {
	ItemID   string             `json:"item_id"`
	Amount   string             `json:"amount"`
	IsExempt bool               `json:"is_exempt"`
	Taxes    TaxAmountsResponse `json:"taxes"`
	TotalTax string             `json:"total_tax"`
}

// TaxCalculationResponse represents a recorded calculation in API responses
type TaxCalculationResponse struct {
	CalculationID uuid.UUID             `json:"calculation_id"`
	EntityID      string                `json:"entity_id"`
	BuyerID       string                `json:"buyer_id,omitempty"`
	Jurisdiction  string                `json:"jurisdiction"`
	Subtotal      string                `json:"subtotal"`
	TaxableAmount string                `json:"taxable_amount"`
	ExemptAmount  string                `json:"exempt_amount"`
	Taxes         TaxAmountsResponse    `json:"taxes"`
	TotalTax      string                `json:"total_tax"`
	TotalAmount   string                `json:"total_amount"`
	Exemption     ExemptionResponse     `json:"exemption"`
	LineItems     []LineItemTaxResponse `json:"line_items"`
	SupersedesID  *uuid.UUID            `json:"supersedes_id,omitempty"`
	TaxPointAt    time.Time             `json:"tax_point_at"`
	CreatedAt     time.Time             `json:"created_at"`
}

// JurisdictionResponse lists the rates that apply in a jurisdiction. Absent
// tax types are omitted.
type JurisdictionResponse struct {
	Code     string   `json:"code"`
	Name     string   `json:"name"`
	GST      *string  `json:"gst,omitempty"`
	HST      *string  `json:"hst,omitempty"`
	PST      *string  `json:"pst,omitempty"`
	QST      *string  `json:"qst,omitempty"`
	TaxTypes []string `json:"tax_types"`
}

// NewTaxAmountsResponse renders per-type amounts rounded to cents. The
// presented amounts always sum to the presented total.
func NewTaxAmountsResponse(a business.TaxAmounts) TaxAmountsResponse {
	return presentedAmounts(helpers.RoundTaxAmounts(a))
}

func presentedAmounts(a business.TaxAmounts) TaxAmountsResponse {
	return TaxAmountsResponse{
		GST: helpers.FormatMoney(a.GST),
		HST: helpers.FormatMoney(a.HST),
		PST: helpers.FormatMoney(a.PST),
		QST: helpers.FormatMoney(a.QST),
	}
}

// NewExemptionResponse renders an exemption decision
func NewExemptionResponse(d business.ExemptionDecision) ExemptionResponse {
	relief := "none"
	switch d.Relief.(type) {
	case business.FullRelief:
		relief = "full"
	case business.PartialRelief:
		relief = "partial"
	}
	return ExemptionResponse{
		Relief:          relief,
		Type:            string(d.Type),
		Percentage:      helpers.FormatRate(d.Percentage()),
		ExemptTaxTypes:  taxTypeStrings(d.ExemptTaxTypes()),
		Provenance:      d.Provenance,
		StatusCardValid: d.StatusCardValid,
		ExemptionID:     d.ExemptionID,
		ValidUntil:      d.ValidUntil,
	}
}

// NewTaxCalculationResponse renders a calculation with money at two decimals.
// Total tax is the sum of the presented per-type amounts and total amount is
// subtotal plus that presented tax.
func NewTaxCalculationResponse(c business.TaxCalculation) TaxCalculationResponse {
	items := make([]LineItemTaxResponse, 0, len(c.LineItems))
	for _, item := range c.LineItems {
		taxes := helpers.RoundTaxAmounts(item.Taxes)
		items = append(items, LineItemTaxResponse{
			ItemID:   item.ItemID,
			Amount:   helpers.FormatMoney(item.Amount),
			IsExempt: item.IsExempt,
			Taxes:    presentedAmounts(taxes),
			TotalTax: helpers.FormatMoney(taxes.Total()),
		})
	}
	taxes := helpers.RoundTaxAmounts(c.Taxes)
	totalTax := taxes.Total()
	return TaxCalculationResponse{
		CalculationID: c.CalculationID,
		EntityID:      c.EntityID,
		BuyerID:       c.BuyerID,
		Jurisdiction:  c.Jurisdiction,
		Subtotal:      helpers.FormatMoney(c.Subtotal),
		TaxableAmount: helpers.FormatMoney(c.TaxableAmount),
		ExemptAmount:  helpers.FormatMoney(c.ExemptAmount),
		Taxes:         presentedAmounts(taxes),
		TotalTax:      helpers.FormatMoney(totalTax),
		TotalAmount:   helpers.FormatMoney(helpers.RoundMoney(c.Subtotal).Add(totalTax)),
		Exemption:     NewExemptionResponse(c.Exemption),
		LineItems:     items,
		SupersedesID:  c.SupersedesID,
		TaxPointAt:    c.TaxPointAt,
		CreatedAt:     c.CreatedAt,
	}
}

// NewJurisdictionResponse renders the rate entry of a jurisdiction
func NewJurisdictionResponse(r business.JurisdictionRates) JurisdictionResponse {
	resp := JurisdictionResponse{
		Code:     r.Code,
		Name:     r.Name,
		TaxTypes: taxTypeStrings(r.ApplicableTaxTypes()),
	}
	for _, t := range r.ApplicableTaxTypes() {
		rate, _ := r.Rate(t)
		s := helpers.FormatRate(rate)
		switch t {
		case business.TaxTypeGST:
			resp.GST = &s
		case business.TaxTypeHST:
			resp.HST = &s
		case business.TaxTypePST:
			resp.PST = &s
		case business.TaxTypeQST:
			resp.QST = &s
		}
	}
	return resp
}

func taxTypeStrings(types []business.TaxType) []string {
	out := make([]string, 0, len(types))
	for _, t := range types {
		out = append(out, string(t))
	}
	return out
}

package services

import (
	"github.com/shopspring/decimal"
	"github.com/unations/tax-engine/internal/types/business"
)

// LineItemTaxer applies jurisdiction rates and an exemption decision to one line item.
type LineItemTaxer struct{}

// IsExempt reports whether the decision removes all tax from the item. Partial
// exemptions only reach items flagged as Indigenous products.
func (LineItemTaxer) IsExempt(item business.LineItem, decision business.ExemptionDecision) bool {
	return decision.IsFullyExempt() ||
		(item.IsIndigenousProduct && decision.HasExemption() && decision.Percentage().IsPositive())
}

// Apply taxes amount, which must be item.Amount() computed once by the caller.
// Arithmetic is exact; nothing is rounded here.
func (t LineItemTaxer) Apply(item business.LineItem, amount decimal.Decimal, rates business.JurisdictionRates, decision business.ExemptionDecision) business.LineItemTaxResult {
	result := business.LineItemTaxResult{
		ItemID: item.ItemID,
		Amount: amount,
		Taxes: business.TaxAmounts{
			GST: decimal.Zero,
			HST: decimal.Zero,
			PST: decimal.Zero,
			QST: decimal.Zero,
		},
		TotalTax: decimal.Zero,
	}

	if t.IsExempt(item, decision) {
		result.IsExempt = true
		return result
	}

	if hst, ok := rates.Rate(business.TaxTypeHST); ok {
		result.Taxes.HST = amount.Mul(hst)
	} else {
		if gst, ok := rates.Rate(business.TaxTypeGST); ok {
			result.Taxes.GST = amount.Mul(gst)
		}
		if pst, ok := rates.Rate(business.TaxTypePST); ok {
			result.Taxes.PST = amount.Mul(pst)
		}
		if qst, ok := rates.Rate(business.TaxTypeQST); ok {
			// QST is levied on the GST-inclusive amount
			result.Taxes.QST = amount.Add(result.Taxes.GST).Mul(qst)
		}
	}

	result.TotalTax = result.Taxes.Total()
	return result
}

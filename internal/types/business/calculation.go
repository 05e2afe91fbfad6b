package business

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/unations/tax-engine/internal/taxerr"
)

// LineItem is a single priced item of a transaction.
type LineItem struct {
	ItemID              string          `json:"item_id"`
	Description         string          `json:"description"`
	Quantity            uint32          `json:"quantity"`
	UnitPrice           decimal.Decimal `json:"unit_price"`
	TaxCode             string          `json:"tax_code,omitempty"`
	IsIndigenousProduct bool            `json:"is_indigenous_product"`
}

// Amount is unitPrice * quantity. Callers compute it once and carry the result.
func (i LineItem) Amount() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// LineItemTaxResult is the tax applied to one line item.
type LineItemTaxResult struct {
	ItemID   string          `json:"item_id"`
	Amount   decimal.Decimal `json:"amount"`
	IsExempt bool            `json:"is_exempt"`
	Taxes    TaxAmounts      `json:"taxes"`
	TotalTax decimal.Decimal `json:"total_tax"`
}

// Validate asserts totalTax == gst+pst+hst+qst and zero taxes on exempt items.
func (r LineItemTaxResult) Validate() error {
	if !r.TotalTax.Equal(r.Taxes.Total()) {
		return taxerr.InvariantViolation("line item %s total tax %s != sum of taxes %s", r.ItemID, r.TotalTax, r.Taxes.Total())
	}
	if r.IsExempt && !(r.Taxes.IsZero() && r.TotalTax.IsZero()) {
		return taxerr.InvariantViolation("exempt line item %s carries tax %s", r.ItemID, r.TotalTax)
	}
	return nil
}

// TaxCalculation is the immutable transaction-level tax record.
type TaxCalculation struct {
	CalculationID uuid.UUID           `json:"calculation_id"`
	EntityID      string              `json:"entity_id"`
	BuyerID       string              `json:"buyer_id,omitempty"`
	Jurisdiction  string              `json:"jurisdiction"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	TaxableAmount decimal.Decimal     `json:"taxable_amount"`
	ExemptAmount  decimal.Decimal     `json:"exempt_amount"`
	Taxes         TaxAmounts          `json:"taxes"`
	TotalTax      decimal.Decimal     `json:"total_tax"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	Exemption     ExemptionDecision   `json:"exemption"`
	LineItems     []LineItemTaxResult `json:"line_items"`
	SupersedesID  *uuid.UUID          `json:"supersedes_id,omitempty"`
	// TaxPointAt places the calculation in a filing period. Corrections keep
	// the tax point of the calculation they supersede.
	TaxPointAt    time.Time           `json:"tax_point_at"`
	CreatedAt     time.Time           `json:"created_at"`
}

// HasIndigenousExemption reports whether the buyer held any Indigenous exemption.
func (c TaxCalculation) HasIndigenousExemption() bool {
	return c.Exemption.HasExemption()
}

// Validate asserts every monetary invariant of the calculation with exact
// decimal equality.
func (c TaxCalculation) Validate() error {
	if !c.Subtotal.Equal(c.TaxableAmount.Add(c.ExemptAmount)) {
		return taxerr.InvariantViolation("calculation %s subtotal %s != taxable %s + exempt %s",
			c.CalculationID, c.Subtotal, c.TaxableAmount, c.ExemptAmount)
	}
	if !c.TotalAmount.Equal(c.Subtotal.Add(c.TotalTax)) {
		return taxerr.InvariantViolation("calculation %s total %s != subtotal %s + tax %s",
			c.CalculationID, c.TotalAmount, c.Subtotal, c.TotalTax)
	}
	if !c.TotalTax.Equal(c.Taxes.Total()) {
		return taxerr.InvariantViolation("calculation %s total tax %s != sum of per-type totals %s",
			c.CalculationID, c.TotalTax, c.Taxes.Total())
	}

	lineTax := decimal.Zero
	lineAmount := decimal.Zero
	exempt := decimal.Zero
	for _, item := range c.LineItems {
		if err := item.Validate(); err != nil {
			return err
		}
		lineTax = lineTax.Add(item.TotalTax)
		lineAmount = lineAmount.Add(item.Amount)
		if item.IsExempt {
			exempt = exempt.Add(item.Amount)
		}
	}
	if !c.TotalTax.Equal(lineTax) {
		return taxerr.InvariantViolation("calculation %s total tax %s != sum of line item tax %s",
			c.CalculationID, c.TotalTax, lineTax)
	}
	if !c.Subtotal.Equal(lineAmount) {
		return taxerr.InvariantViolation("calculation %s subtotal %s != sum of line amounts %s",
			c.CalculationID, c.Subtotal, lineAmount)
	}
	if !c.ExemptAmount.Equal(exempt) {
		return taxerr.InvariantViolation("calculation %s exempt amount %s != sum of exempt lines %s",
			c.CalculationID, c.ExemptAmount, exempt)
	}
	return nil
}

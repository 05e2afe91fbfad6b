package business

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/unations/tax-engine/internal/taxerr"
)

// ReturnStatus is the filing state of a tax return.
type ReturnStatus string

const (
	ReturnStatusDraft ReturnStatus = "draft"
	ReturnStatusReady ReturnStatus = "ready"
	ReturnStatusFiled ReturnStatus = "filed"
)

// RiskLevel grades audit risk and compliance risk.
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// TaxReturn aggregates the calculations of one entity over a filing period.
type TaxReturn struct {
	ReturnID           uuid.UUID       `json:"return_id"`
	LineageID          uuid.UUID       `json:"lineage_id"`
	Version            int             `json:"version"`
	AmendsReturnID     *uuid.UUID      `json:"amends_return_id,omitempty"`
	EntityID           string          `json:"entity_id"`
	ReturnType         string          `json:"return_type"`
	Period             string          `json:"period"`
	StartDate          time.Time       `json:"start_date"`
	EndDate            time.Time       `json:"end_date"`
	TotalSales         decimal.Decimal `json:"total_sales"`
	TaxableSales       decimal.Decimal `json:"taxable_sales"`
	ExemptSales        decimal.Decimal `json:"exempt_sales"`
	IndigenousSales    decimal.Decimal `json:"indigenous_sales"`
	CollectedTax       TaxAmounts      `json:"collected_tax"`
	TotalTaxCollected  decimal.Decimal `json:"total_tax_collected"`
	InputTaxCredits    decimal.Decimal `json:"input_tax_credits"`
	NetTaxOwing        decimal.Decimal `json:"net_tax_owing"`
	CalculationCount   int             `json:"calculation_count"`
	IndigenousCount    int             `json:"indigenous_count"`
	CalculationIDs     []uuid.UUID     `json:"calculation_ids"`
	Status             ReturnStatus    `json:"status"`
	AuditRisk          RiskLevel       `json:"audit_risk"`
	DueDate            time.Time       `json:"due_date"`
	ConfirmationNumber string          `json:"confirmation_number,omitempty"`
	ReviewedBy         string          `json:"reviewed_by,omitempty"`
	ApprovedBy         string          `json:"approved_by,omitempty"`
	FiledAt            *time.Time      `json:"filed_at,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// IsOutstanding reports whether the return is past due and still unfiled.
func (r TaxReturn) IsOutstanding(now time.Time) bool {
	return r.Status != ReturnStatusFiled && r.DueDate.Before(now)
}

// Validate asserts the aggregate invariants of the return.
func (r TaxReturn) Validate() error {
	if !r.TotalSales.Equal(r.TaxableSales.Add(r.ExemptSales)) {
		return taxerr.InvariantViolation("return %s total sales %s != taxable %s + exempt %s",
			r.ReturnID, r.TotalSales, r.TaxableSales, r.ExemptSales)
	}
	if !r.TotalTaxCollected.Equal(r.CollectedTax.Total()) {
		return taxerr.InvariantViolation("return %s total tax collected %s != sum of collected tax %s",
			r.ReturnID, r.TotalTaxCollected, r.CollectedTax.Total())
	}
	if r.NetTaxOwing.IsNegative() {
		return taxerr.InvariantViolation("return %s net tax owing %s is negative", r.ReturnID, r.NetTaxOwing)
	}
	if r.IndigenousSales.GreaterThan(r.TotalSales) {
		return taxerr.InvariantViolation("return %s indigenous sales %s exceed total sales %s",
			r.ReturnID, r.IndigenousSales, r.TotalSales)
	}
	if r.CalculationCount != len(r.CalculationIDs) {
		return taxerr.InvariantViolation("return %s counts %d calculations but claims %d",
			r.ReturnID, r.CalculationCount, len(r.CalculationIDs))
	}
	if !r.EndDate.After(r.StartDate) {
		return taxerr.InvariantViolation("return %s period end %s not after start %s", r.ReturnID, r.EndDate, r.StartDate)
	}
	return nil
}

// RemittanceStatus is the payment state of a remittance.
type RemittanceStatus string

const (
	RemittanceStatusPending RemittanceStatus = "pending"
	RemittanceStatusPaid    RemittanceStatus = "paid"
	RemittanceStatusOverdue RemittanceStatus = "overdue"
)

// Remittance is the payment obligation derived from a filed return.
type Remittance struct {
	RemittanceID uuid.UUID        `json:"remittance_id"`
	ReturnID     uuid.UUID        `json:"return_id"`
	EntityID     string           `json:"entity_id"`
	Amounts      TaxAmounts       `json:"amounts"`
	TotalAmount  decimal.Decimal  `json:"total_amount"`
	DueDate      time.Time        `json:"due_date"`
	Status       RemittanceStatus `json:"status"`
	PaidAt       *time.Time       `json:"paid_at,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// Validate asserts that the per-type amounts are whole cents summing to the
// total owed.
func (r Remittance) Validate() error {
	if !r.TotalAmount.IsPositive() {
		return taxerr.InvariantViolation("remittance %s total %s is not positive", r.RemittanceID, r.TotalAmount)
	}
	for _, t := range AllTaxTypes {
		if v := r.Amounts.Get(t); !v.Equal(v.Round(2)) {
			return taxerr.InvariantViolation("remittance %s %s amount %s is not whole cents", r.RemittanceID, t, v)
		}
	}
	if !r.Amounts.Total().Equal(r.TotalAmount) {
		return taxerr.InvariantViolation("remittance %s per-type sum %s != total %s",
			r.RemittanceID, r.Amounts.Total(), r.TotalAmount)
	}
	return nil
}

// IsOutstanding reports whether the remittance still counts toward the balance.
func (r Remittance) IsOutstanding() bool {
	return r.Status == RemittanceStatusPending || r.Status == RemittanceStatusOverdue
}

// ComplianceRecord is the recomputed compliance snapshot of one entity.
type ComplianceRecord struct {
	EntityID           string          `json:"entity_id"`
	FilingCompliant    bool            `json:"filing_compliant"`
	PaymentCompliant   bool            `json:"payment_compliant"`
	OutstandingReturns uint32          `json:"outstanding_returns"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
	RiskLevel          RiskLevel       `json:"risk_level"`
	RiskFactors        []string        `json:"risk_factors"`
	LastAssessment     time.Time       `json:"last_assessment"`
}

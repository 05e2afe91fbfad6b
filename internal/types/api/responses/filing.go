package responses

import (
	"time"

	"github.com/google/uuid"
	"github.com/unations/tax-engine/internal/helpers"
	"github.com/unations/tax-engine/internal/types/business"
)

// TaxReturnResponse represents a tax return in API responses
type TaxReturnResponse struct {
	ReturnID           uuid.UUID          `json:"return_id"`
	LineageID          uuid.UUID          `json:"lineage_id"`
	Version            int                `json:"version"`
	AmendsReturnID     *uuid.UUID         `json:"amends_return_id,omitempty"`
	EntityID           string             `json:"entity_id"`
	ReturnType         string             `json:"return_type"`
	Period             string             `json:"period"`
	StartDate          time.Time          `json:"start_date"`
	EndDate            time.Time          `json:"end_date"`
	TotalSales         string             `json:"total_sales"`
	TaxableSales       string             `json:"taxable_sales"`
	ExemptSales        string             `json:"exempt_sales"`
	IndigenousSales    string             `json:"indigenous_sales"`
	CollectedTax       TaxAmountsResponse `json:"collected_tax"`
	TotalTaxCollected  string             `json:"total_tax_collected"`
	InputTaxCredits    string             `json:"input_tax_credits"`
	NetTaxOwing        string             `json:"net_tax_owing"`
	CalculationCount   int                `json:"calculation_count"`
	IndigenousCount    int                `json:"indigenous_count"`
	Status             string             `json:"status"`
	AuditRisk          string             `json:"audit_risk"`
	DueDate            time.Time          `json:"due_date"`
	ConfirmationNumber string             `json:"confirmation_number,omitempty"`
	ReviewedBy         string             `json:"reviewed_by,omitempty"`
	ApprovedBy         string             `json:"approved_by,omitempty"`
	FiledAt            *time.Time         `json:"filed_at,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// RemittanceResponse represents a remittance in API responses
type RemittanceResponse struct {
	RemittanceID uuid.UUID          `json:"remittance_id"`
	ReturnID     uuid.UUID          `json:"return_id"`
	EntityID     string             `json:"entity_id"`
	Amounts      TaxAmountsResponse `json:"amounts"`
	TotalAmount  string             `json:"total_amount"`
	DueDate      time.Time          `json:"due_date"`
	Status       string             `json:"status"`
	PaidAt       *time.Time         `json:"paid_at,omitempty"`
}

// SubmitReturnResponse is the outcome of filing a return
type SubmitReturnResponse struct {
	ConfirmationNumber string              `json:"confirmation_number"`
	Return             TaxReturnResponse   `json:"return"`
	Remittance         *RemittanceResponse `json:"remittance,omitempty"`
}

// BatchFileReturnsResponse reports how many period closes were queued
type BatchFileReturnsResponse struct {
	Queued    int       `json:"queued"`
	EntityIDs []string  `json:"entity_ids"`
	Period    string    `json:"period"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// ComplianceRecordResponse represents an entity's compliance status
type ComplianceRecordResponse struct {
	EntityID           string    `json:"entity_id"`
	FilingCompliant    bool      `json:"filing_compliant"`
	PaymentCompliant   bool      `json:"payment_compliant"`
	OutstandingReturns uint32    `json:"outstanding_returns"`
	OutstandingBalance string    `json:"outstanding_balance"`
	RiskLevel          string    `json:"risk_level"`
	RiskFactors        []string  `json:"risk_factors"`
	LastAssessment     time.Time `json:"last_assessment"`
}

// NewTaxReturnResponse renders a return with money at two decimals
func NewTaxReturnResponse(r business.TaxReturn) TaxReturnResponse {
	return TaxReturnResponse{
		ReturnID:           r.ReturnID,
		LineageID:          r.LineageID,
		Version:            r.Version,
		AmendsReturnID:     r.AmendsReturnID,
		EntityID:           r.EntityID,
		ReturnType:         r.ReturnType,
		Period:             r.Period,
		StartDate:          r.StartDate,
		EndDate:            r.EndDate,
		TotalSales:         helpers.FormatMoney(r.TotalSales),
		TaxableSales:       helpers.FormatMoney(r.TaxableSales),
		ExemptSales:        helpers.FormatMoney(r.ExemptSales),
		IndigenousSales:    helpers.FormatMoney(r.IndigenousSales),
		CollectedTax:       NewTaxAmountsResponse(r.CollectedTax),
		TotalTaxCollected:  helpers.FormatMoney(r.TotalTaxCollected),
		InputTaxCredits:    helpers.FormatMoney(r.InputTaxCredits),
		NetTaxOwing:        helpers.FormatMoney(r.NetTaxOwing),
		CalculationCount:   r.CalculationCount,
		IndigenousCount:    r.IndigenousCount,
		Status:             string(r.Status),
		AuditRisk:          string(r.AuditRisk),
		DueDate:            r.DueDate,
		ConfirmationNumber: r.ConfirmationNumber,
		ReviewedBy:         r.ReviewedBy,
		ApprovedBy:         r.ApprovedBy,
		FiledAt:            r.FiledAt,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

// NewRemittanceResponse renders a remittance
func NewRemittanceResponse(r business.Remittance) RemittanceResponse {
	return RemittanceResponse{
		RemittanceID: r.RemittanceID,
		ReturnID:     r.ReturnID,
		EntityID:     r.EntityID,
		Amounts:      NewTaxAmountsResponse(r.Amounts),
		TotalAmount:  helpers.FormatMoney(r.TotalAmount),
		DueDate:      r.DueDate,
		Status:       string(r.Status),
		PaidAt:       r.PaidAt,
	}
}

// NewSubmitReturnResponse renders the outcome of a filing
func NewSubmitReturnResponse(res business.SubmitReturnResult) SubmitReturnResponse {
	resp := SubmitReturnResponse{
		ConfirmationNumber: res.ConfirmationNumber,
		Return:             NewTaxReturnResponse(res.Return),
	}
	if res.Remittance != nil {
		rem := NewRemittanceResponse(*res.Remittance)
		resp.Remittance = &rem
	}
	return resp
}

// NewComplianceRecordResponse renders a compliance record
func NewComplianceRecordResponse(r business.ComplianceRecord) ComplianceRecordResponse {
	factors := r.RiskFactors
	if factors == nil {
		factors = []string{}
	}
	return ComplianceRecordResponse{
		EntityID:           r.EntityID,
		FilingCompliant:    r.FilingCompliant,
		PaymentCompliant:   r.PaymentCompliant,
		OutstandingReturns: r.OutstandingReturns,
		OutstandingBalance: helpers.FormatMoney(r.OutstandingBalance),
		RiskLevel:          string(r.RiskLevel),
		RiskFactors:        factors,
		LastAssessment:     r.LastAssessment,
	}
}

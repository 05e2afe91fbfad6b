package business

import (
	"time"

	"github.com/google/uuid"
)

// StatusCardValidation is the outcome of validating a presented status card.
type StatusCardValidation struct {
	Valid       bool             `json:"valid"`
	Status      StatusCardStatus `json:"status"`
	ExemptionID *uuid.UUID       `json:"exemption_id,omitempty"`
	Registered  bool             `json:"registered"`
	ValidUntil  *time.Time       `json:"valid_until,omitempty"`
}

// SubmitReturnResult is the outcome of filing a return.
type SubmitReturnResult struct {
	Return             TaxReturn   `json:"return"`
	ConfirmationNumber string      `json:"confirmation_number"`
	Remittance         *Remittance `json:"remittance,omitempty"`
}

// ReturnRequest asks for a Draft return to be prepared asynchronously.
type ReturnRequest struct {
	EntityID    string    `json:"entity_id"`
	ReturnType  string    `json:"return_type"`
	Period      string    `json:"period"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	RequestedBy string    `json:"requested_by,omitempty"`
}

// ComplianceRunResults summarises one scheduled compliance pass.
type ComplianceRunResults struct {
	Entities           int `json:"entities"`
	Assessed           int `json:"assessed"`
	Failed             int `json:"failed"`
	OverdueRemittances int `json:"overdue_remittances"`
	HighRiskEntities   int `json:"high_risk_entities"`
	MediumRiskEntities int `json:"medium_risk_entities"`
}

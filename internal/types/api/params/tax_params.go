package params

import (
	"time"

	"github.com/google/uuid"
	"github.com/unations/tax-engine/internal/types/business"
)

// CalculateTaxParams contains parameters for calculating tax on a transaction
type CalculateTaxParams struct {
	EntityID     string
	BuyerID      string
	Jurisdiction string
	LineItems    []business.LineItem
	Claim        business.ExemptionClaim
	SupersedesID *uuid.UUID
	TaxPointAt   *time.Time
}

// FileReturnParams contains parameters for preparing a Draft return
type FileReturnParams struct {
	EntityID   string
	ReturnType string
	Period     string
	StartDate  time.Time
	EndDate    time.Time
}

// AggregateReturnParams describes the period folded by the return aggregator
type AggregateReturnParams struct {
	ReturnID       uuid.UUID
	LineageID      uuid.UUID
	Version        int
	AmendsReturnID *uuid.UUID
	EntityID       string
	ReturnType     string
	Period         string
	StartDate      time.Time
	EndDate        time.Time
}

// SubmitReturnParams contains parameters for filing a return
type SubmitReturnParams struct {
	ReturnID   uuid.UUID
	ApprovedBy string
}

// MarkReadyParams contains parameters for the review step of a return
type MarkReadyParams struct {
	ReturnID   uuid.UUID
	ReviewedBy string
}

// ValidateStatusCardParams contains parameters for validating a status card
type ValidateStatusCardParams struct {
	CardNumber  string
	HolderName  string
	DateOfBirth *time.Time
	BandNumber  string
	ValidUntil  *time.Time
}

// UpsertBandExemptionParams contains parameters for recording a band exemption
type UpsertBandExemptionParams struct {
	BandNumber    string
	BandName      string
	Jurisdictions []string
	Active        bool
	ValidFrom     *time.Time
	ValidUntil    *time.Time
}

// UpsertTreatyExemptionParams contains parameters for recording a treaty table entry
type UpsertTreatyExemptionParams struct {
	TreatyNumber   string
	Jurisdiction   string
	ExemptTaxTypes []business.TaxType
	Percentage     string
	Active         bool
	ValidFrom      *time.Time
	ValidUntil     *time.Time
}

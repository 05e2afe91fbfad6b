package requests

import "time"

// ValidateStatusCardRequest represents the request to validate a status card
type ValidateStatusCardRequest struct {
	CardNumber  string     `json:"card_number" binding:"required"`
	HolderName  string     `json:"holder_name" binding:"required"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	BandNumber  string     `json:"band_number,omitempty"`
	ValidUntil  *time.Time `json:"valid_until,omitempty"`
}

// UpdateStatusCardStatusRequest changes the registry status of a card
type UpdateStatusCardStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active suspended revoked"`
}

// UpsertBandExemptionRequest records the registry entry of a band
type UpsertBandExemptionRequest struct {
	BandName      string     `json:"band_name" binding:"required"`
	Jurisdictions []string   `json:"jurisdictions,omitempty"`
	Active        *bool      `json:"active,omitempty"`
	ValidFrom     *time.Time `json:"valid_from,omitempty"`
	ValidUntil    *time.Time `json:"valid_until,omitempty"`
}

// UpsertTreatyExemptionRequest records a treaty table entry for one jurisdiction
type UpsertTreatyExemptionRequest struct {
	Jurisdiction   string     `json:"jurisdiction" binding:"required"`
	ExemptTaxTypes []string   `json:"exempt_tax_types" binding:"required,min=1"`
	Percentage     string     `json:"percentage" binding:"required"`
	Active         *bool      `json:"active,omitempty"`
	ValidFrom      *time.Time `json:"valid_from,omitempty"`
	ValidUntil     *time.Time `json:"valid_until,omitempty"`
}

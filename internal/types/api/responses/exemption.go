package responses

import (
	"time"

	"github.com/google/uuid"
	"github.com/unations/tax-engine/internal/helpers"
	"github.com/unations/tax-engine/internal/types/business"
)

// StatusCardValidationResponse is the outcome of a status card check
type StatusCardValidationResponse struct {
	Valid       bool       `json:"valid"`
	Status      string     `json:"status"`
	ExemptionID *uuid.UUID `json:"exemption_id,omitempty"`
	Registered  bool       `json:"registered"`
	ValidUntil  *time.Time `json:"valid_until,omitempty"`
}

// StatusCardResponse represents a registered status card. The holder's
// identity is not echoed back.
type StatusCardResponse struct {
	ExemptionID uuid.UUID `json:"exemption_id"`
	CardNumber  string    `json:"card_number"`
	BandNumber  string    `json:"band_number,omitempty"`
	Status      string    `json:"status"`
	ValidFrom   time.Time `json:"valid_from"`
	ValidUntil  time.Time `json:"valid_until"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BandExemptionResponse represents a band registry entry
type BandExemptionResponse struct {
	BandNumber    string     `json:"band_number"`
	BandName      string     `json:"band_name"`
	Jurisdictions []string   `json:"jurisdictions"`
	Active        bool       `json:"active"`
	ValidFrom     time.Time  `json:"valid_from"`
	ValidUntil    *time.Time `json:"valid_until,omitempty"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TreatyExemptionResponse represents a treaty table entry
type TreatyExemptionResponse struct {
	TreatyNumber   string     `json:"treaty_number"`
	Jurisdiction   string     `json:"jurisdiction"`
	ExemptTaxTypes []string   `json:"exempt_tax_types"`
	Percentage     string     `json:"percentage"`
	Active         bool       `json:"active"`
	ValidFrom      time.Time  `json:"valid_from"`
	ValidUntil     *time.Time `json:"valid_until,omitempty"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func NewStatusCardValidationResponse(v business.StatusCardValidation) StatusCardValidationResponse {
	return StatusCardValidationResponse{
		Valid:       v.Valid,
		Status:      string(v.Status),
		ExemptionID: v.ExemptionID,
		Registered:  v.Registered,
		ValidUntil:  v.ValidUntil,
	}
}

func NewStatusCardResponse(r business.StatusCardRecord) StatusCardResponse {
	return StatusCardResponse{
		ExemptionID: r.ExemptionID,
		CardNumber:  r.CardNumber,
		BandNumber:  r.BandNumber,
		Status:      string(r.Status),
		ValidFrom:   r.ValidFrom,
		ValidUntil:  r.ValidUntil,
		UpdatedAt:   r.UpdatedAt,
	}
}

func NewBandExemptionResponse(r business.BandExemptionRecord) BandExemptionResponse {
	jurisdictions := r.Jurisdictions
	if jurisdictions == nil {
		jurisdictions = []string{}
	}
	return BandExemptionResponse{
		BandNumber:    r.BandNumber,
		BandName:      r.BandName,
		Jurisdictions: jurisdictions,
		Active:        r.Active,
		ValidFrom:     r.ValidFrom,
		ValidUntil:    r.ValidUntil,
		UpdatedAt:     r.UpdatedAt,
	}
}

func NewTreatyExemptionResponse(r business.TreatyExemptionRecord) TreatyExemptionResponse {
	return TreatyExemptionResponse{
		TreatyNumber:   r.TreatyNumber,
		Jurisdiction:   r.Jurisdiction,
		ExemptTaxTypes: taxTypeStrings(r.ExemptTaxTypes),
		Percentage:     helpers.FormatRate(r.Percentage),
		Active:         r.Active,
		ValidFrom:      r.ValidFrom,
		ValidUntil:     r.ValidUntil,
		UpdatedAt:      r.UpdatedAt,
	}
}

package business

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StatusCardStatus is the registry state of a status card.
type StatusCardStatus string

const (
	StatusCardStatusActive    StatusCardStatus = "active"
	StatusCardStatusSuspended StatusCardStatus = "suspended"
	StatusCardStatusRevoked   StatusCardStatus = "revoked"
	// Derived, never stored.
	StatusCardStatusExpired        StatusCardStatus = "expired"
	StatusCardStatusHolderMismatch StatusCardStatus = "holder_mismatch"
)

// StatusCardRecord is the eligibility record of one status-card holder.
type StatusCardRecord struct {
	ExemptionID uuid.UUID        `json:"exemption_id"`
	CardNumber  string           `json:"card_number"`
	HolderName  string           `json:"holder_name"`
	DateOfBirth *time.Time       `json:"date_of_birth,omitempty"`
	BandNumber  string           `json:"band_number,omitempty"`
	Status      StatusCardStatus `json:"status"`
	ValidFrom   time.Time        `json:"valid_from"`
	ValidUntil  time.Time        `json:"valid_until"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// IsActiveAt reports whether the card grants exemptions at t.
func (r StatusCardRecord) IsActiveAt(t time.Time) bool {
	return r.Status == StatusCardStatusActive && !t.Before(r.ValidFrom) && !r.ValidUntil.Before(t)
}

// EffectiveStatus folds expiry into the stored status.
func (r StatusCardRecord) EffectiveStatus(t time.Time) StatusCardStatus {
	if r.Status == StatusCardStatusActive && r.ValidUntil.Before(t) {
		return StatusCardStatusExpired
	}
	return r.Status
}

// BandExemptionRecord allows a band council to purchase tax free.
type BandExemptionRecord struct {
	BandNumber    string     `json:"band_number"`
	BandName      string     `json:"band_name"`
	Jurisdictions []string   `json:"jurisdictions"`
	Active        bool       `json:"active"`
	ValidFrom     time.Time  `json:"valid_from"`
	ValidUntil    *time.Time `json:"valid_until,omitempty"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// AppliesTo reports whether the band exemption covers the jurisdiction at t.
// An empty jurisdiction list covers every jurisdiction.
func (r BandExemptionRecord) AppliesTo(jurisdiction string, t time.Time) bool {
	if !r.Active || t.Before(r.ValidFrom) || (r.ValidUntil != nil && r.ValidUntil.Before(t)) {
		return false
	}
	if len(r.Jurisdictions) == 0 {
		return true
	}
	for _, j := range r.Jurisdictions {
		if strings.EqualFold(j, jurisdiction) {
			return true
		}
	}
	return false
}

// TreatyExemptionRecord is one row of the jurisdiction-scoped treaty table.
type TreatyExemptionRecord struct {
	TreatyNumber   string          `json:"treaty_number"`
	Jurisdiction   string          `json:"jurisdiction"`
	ExemptTaxTypes []TaxType       `json:"exempt_tax_types"`
	Percentage     decimal.Decimal `json:"percentage"`
	Active         bool            `json:"active"`
	ValidFrom      time.Time       `json:"valid_from"`
	ValidUntil     *time.Time      `json:"valid_until,omitempty"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// IsActiveAt reports whether the treaty entry applies at t.
func (r TreatyExemptionRecord) IsActiveAt(t time.Time) bool {
	return r.Active && !t.Before(r.ValidFrom) && (r.ValidUntil == nil || !r.ValidUntil.Before(t))
}

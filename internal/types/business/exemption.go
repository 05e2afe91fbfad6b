package business

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExemptionType records which rule granted an exemption.
type ExemptionType string

const (
	ExemptionTypeNone             ExemptionType = "none"
	ExemptionTypeIndigenousStatus ExemptionType = "indigenous_status"
	ExemptionTypeBandPurchase     ExemptionType = "band_purchase"
	ExemptionTypeTreatyRights     ExemptionType = "treaty_rights"
)

// ExemptionClaim is the evidence a buyer presents. It is never persisted.
type ExemptionClaim struct {
	BuyerID           string `json:"buyer_id,omitempty"`
	StatusCardNumber  string `json:"status_card_number,omitempty"`
	BandNumber        string `json:"band_number,omitempty"`
	TreatyNumber      string `json:"treaty_number,omitempty"`
	OnReserveDelivery bool   `json:"on_reserve_delivery"`
	Jurisdiction      string `json:"jurisdiction"`
}

// HasIdentifiers reports whether the claim carries any exemption evidence.
func (c ExemptionClaim) HasIdentifiers() bool {
	return c.StatusCardNumber != "" || c.BandNumber != "" || c.TreatyNumber != ""
}

// Relief is the closed set of exemption shapes: NoRelief, FullRelief and
// PartialRelief. Consumers switch on the concrete type.
type Relief interface {
	isRelief()
}

// NoRelief means nothing is exempted.
type NoRelief struct{}

// FullRelief exempts every applicable tax type at 100%.
type FullRelief struct {
	TaxTypes []TaxType
}

// PartialRelief exempts a subset of tax types at a percentage.
type PartialRelief struct {
	TaxTypes   []TaxType
	Percentage decimal.Decimal
}

func (NoRelief) isRelief()      {}
func (FullRelief) isRelief()    {}
func (PartialRelief) isRelief() {}

var hundredPercent = decimal.NewFromInt(100)

// ExemptionDecision is the resolved outcome of an ExemptionClaim.
type ExemptionDecision struct {
	Relief          Relief
	Type            ExemptionType
	Provenance      string
	StatusCardValid bool
	// ExemptionID identifies the record that granted the relief, if any.
	ExemptionID *uuid.UUID
	// ValidUntil is the instant the granting record stops being active.
	ValidUntil *time.Time
}

// NoExemption builds a decision that grants nothing.
func NoExemption(provenance string) ExemptionDecision {
	return ExemptionDecision{Relief: NoRelief{}, Type: ExemptionTypeNone, Provenance: provenance}
}

func (d ExemptionDecision) relief() Relief {
	if d.Relief == nil {
		return NoRelief{}
	}
	return d.Relief
}

// HasExemption reports whether any relief was granted.
func (d ExemptionDecision) HasExemption() bool {
	switch d.relief().(type) {
	case FullRelief, PartialRelief:
		return true
	default:
		return false
	}
}

// IsFullyExempt reports point-of-sale or band-purchase style full relief.
func (d ExemptionDecision) IsFullyExempt() bool {
	_, ok := d.relief().(FullRelief)
	return ok
}

// Percentage returns the relief percentage in 0..100.
func (d ExemptionDecision) Percentage() decimal.Decimal {
	switch r := d.relief().(type) {
	case FullRelief:
		return hundredPercent
	case PartialRelief:
		return r.Percentage
	default:
		return decimal.Zero
	}
}

// ExemptTaxTypes returns the exempted tax types in canonical order.
func (d ExemptionDecision) ExemptTaxTypes() []TaxType {
	switch r := d.relief().(type) {
	case FullRelief:
		return sortTaxTypes(r.TaxTypes)
	case PartialRelief:
		return sortTaxTypes(r.TaxTypes)
	default:
		return []TaxType{}
	}
}

// Validate checks that a full decision covers exactly the applicable types.
func (d ExemptionDecision) Validate(rates JurisdictionRates) error {
	switch r := d.relief().(type) {
	case FullRelief:
		want := rates.ApplicableTaxTypes()
		got := sortTaxTypes(r.TaxTypes)
		if len(want) != len(got) {
			return fmt.Errorf("full exemption covers %v, jurisdiction %s applies %v", got, rates.Code, want)
		}
		for i := range want {
			if want[i] != got[i] {
				return fmt.Errorf("full exemption covers %v, jurisdiction %s applies %v", got, rates.Code, want)
			}
		}
	case PartialRelief:
		if r.Percentage.IsNegative() || r.Percentage.GreaterThan(hundredPercent) {
			return fmt.Errorf("partial exemption percentage %s out of range", r.Percentage)
		}
	}
	if d.HasExemption() == (d.Type == ExemptionTypeNone) {
		return fmt.Errorf("exemption type %s inconsistent with relief %T", d.Type, d.relief())
	}
	return nil
}

func sortTaxTypes(in []TaxType) []TaxType {
	order := map[TaxType]int{}
	for i, t := range AllTaxTypes {
		order[t] = i
	}
	out := make([]TaxType, len(in))
	copy(out, in)
	sort.Slice(out, func(i, j int) bool { return order[out[i]] < order[out[j]] })
	return out
}

const (
	reliefNone    = "none"
	reliefFull    = "full"
	reliefPartial = "partial"
)

type exemptionDecisionJSON struct {
	Relief          string          `json:"relief"`
	HasExemption    bool            `json:"has_exemption"`
	IsFullyExempt   bool            `json:"is_fully_exempt"`
	ExemptTaxTypes  []TaxType       `json:"exempt_tax_types"`
	Percentage      decimal.Decimal `json:"percentage"`
	Type            ExemptionType   `json:"type"`
	Provenance      string          `json:"provenance"`
	StatusCardValid bool            `json:"status_card_valid"`
	ExemptionID     *uuid.UUID      `json:"exemption_id,omitempty"`
	ValidUntil      *time.Time      `json:"valid_until,omitempty"`
}

// MarshalJSON writes the flat snapshot stored alongside a calculation.
func (d ExemptionDecision) MarshalJSON() ([]byte, error) {
	relief := reliefNone
	switch d.relief().(type) {
	case FullRelief:
		relief = reliefFull
	case PartialRelief:
		relief = reliefPartial
	}
	return json.Marshal(exemptionDecisionJSON{
		Relief:          relief,
		HasExemption:    d.HasExemption(),
		IsFullyExempt:   d.IsFullyExempt(),
		ExemptTaxTypes:  d.ExemptTaxTypes(),
		Percentage:      d.Percentage(),
		Type:            d.Type,
		Provenance:      d.Provenance,
		StatusCardValid: d.StatusCardValid,
		ExemptionID:     d.ExemptionID,
		ValidUntil:      d.ValidUntil,
	})
}

// UnmarshalJSON restores the tagged relief from its snapshot.
func (d *ExemptionDecision) UnmarshalJSON(data []byte) error {
	var raw exemptionDecisionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.Relief {
	case reliefFull:
		d.Relief = FullRelief{TaxTypes: raw.ExemptTaxTypes}
	case reliefPartial:
		d.Relief = PartialRelief{TaxTypes: raw.ExemptTaxTypes, Percentage: raw.Percentage}
	case reliefNone, "":
		d.Relief = NoRelief{}
	default:
		return fmt.Errorf("unknown relief %q", raw.Relief)
	}
	d.Type = raw.Type
	if d.Type == "" {
		d.Type = ExemptionTypeNone
	}
	d.Provenance = raw.Provenance
	d.StatusCardValid = raw.StatusCardValid
	d.ExemptionID = raw.ExemptionID
	d.ValidUntil = raw.ValidUntil
	return nil
}

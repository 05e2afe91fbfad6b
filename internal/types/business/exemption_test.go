package business_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unations/tax-engine/internal/types/business"
)

func bcRates() business.JurisdictionRates {
	return business.JurisdictionRates{Code: "BC", GST: business.NewRate("0.05"), PST: business.NewRate("0.07")}
}

func TestExemptionDecisionAccessors(t *testing.T) {
	tests := []struct {
		name        string
		decision    business.ExemptionDecision
		wantHas     bool
		wantFull    bool
		wantPercent string
		wantTypes   []business.TaxType
	}{
		{
			name:        "none",
			decision:    business.NoExemption("no identifiers"),
			wantPercent: "0",
			wantTypes:   []business.TaxType{},
		},
		{
			name:        "nil relief behaves as none",
			decision:    business.ExemptionDecision{Type: business.ExemptionTypeNone},
			wantPercent: "0",
			wantTypes:   []business.TaxType{},
		},
		{
			name: "full sorts types",
			decision: business.ExemptionDecision{
				Relief: business.FullRelief{TaxTypes: []business.TaxType{business.TaxTypePST, business.TaxTypeGST}},
				Type:   business.ExemptionTypeBandPurchase,
			},
			wantHas:     true,
			wantFull:    true,
			wantPercent: "100",
			wantTypes:   []business.TaxType{business.TaxTypeGST, business.TaxTypePST},
		},
		{
			name: "partial at zero percent still counts as an exemption",
			decision: business.ExemptionDecision{
				Relief: business.PartialRelief{Percentage: decimal.Zero},
				Type:   business.ExemptionTypeIndigenousStatus,
			},
			wantHas:     true,
			wantPercent: "0",
			wantTypes:   []business.TaxType{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantHas, tt.decision.HasExemption())
			assert.Equal(t, tt.wantFull, tt.decision.IsFullyExempt())
			assert.True(t, tt.decision.Percentage().Equal(decimal.RequireFromString(tt.wantPercent)))
			assert.Equal(t, tt.wantTypes, tt.decision.ExemptTaxTypes())
		})
	}
}

func TestExemptionDecisionValidate(t *testing.T) {
	full := business.ExemptionDecision{
		Relief: business.FullRelief{TaxTypes: []business.TaxType{business.TaxTypeGST, business.TaxTypePST}},
		Type:   business.ExemptionTypeIndigenousStatus,
	}
	assert.NoError(t, full.Validate(bcRates()))

	missingPST := business.ExemptionDecision{
		Relief: business.FullRelief{TaxTypes: []business.TaxType{business.TaxTypeGST}},
		Type:   business.ExemptionTypeBandPurchase,
	}
	assert.Error(t, missingPST.Validate(bcRates()))

	mislabelled := business.ExemptionDecision{Relief: business.NoRelief{}, Type: business.ExemptionTypeTreatyRights}
	assert.Error(t, mislabelled.Validate(bcRates()))
}

func TestExemptionDecisionSnapshotRestoresVariant(t *testing.T) {
	original := business.ExemptionDecision{
		Relief: business.PartialRelief{
			TaxTypes:   []business.TaxType{business.TaxTypePST},
			Percentage: decimal.NewFromInt(100),
		},
		Type:            business.ExemptionTypeIndigenousStatus,
		Provenance:      "status card 1234567890 (off-reserve)",
		StatusCardValid: true,
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"relief":"partial"`)
	assert.Contains(t, string(data), `"has_exemption":true`)

	var restored business.ExemptionDecision
	require.NoError(t, json.Unmarshal(data, &restored))
	partial, ok := restored.Relief.(business.PartialRelief)
	require.True(t, ok, "expected partial relief, got %T", restored.Relief)
	assert.True(t, partial.Percentage.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, original.Provenance, restored.Provenance)
	assert.True(t, restored.StatusCardValid)

	assert.Error(t, json.Unmarshal([]byte(`{"relief":"sideways"}`), &restored))
}

func TestJurisdictionRatesValidate(t *testing.T) {
	tests := []struct {
		name    string
		rates   business.JurisdictionRates
		wantErr bool
	}{
		{name: "gst and pst", rates: bcRates()},
		{name: "hst only", rates: business.JurisdictionRates{Code: "ON", HST: business.NewRate("0.13")}},
		{name: "gst and qst", rates: business.JurisdictionRates{Code: "QC", GST: business.NewRate("0.05"), QST: business.NewRate("0.09975")}},
		{name: "hst with gst", rates: business.JurisdictionRates{Code: "XX", HST: business.NewRate("0.13"), GST: business.NewRate("0.05")}, wantErr: true},
		{name: "nothing", rates: business.JurisdictionRates{Code: "XX"}, wantErr: true},
		{name: "no code", rates: business.JurisdictionRates{GST: business.NewRate("0.05")}, wantErr: true},
		{name: "rate above one", rates: business.JurisdictionRates{Code: "XX", GST: business.NewRate("1.5")}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rates.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	assert.Equal(t, []business.TaxType{business.TaxTypeGST, business.TaxTypePST}, bcRates().ApplicableTaxTypes())
	assert.Equal(t, []business.TaxType{business.TaxTypePST}, bcRates().PSTFamilyTaxTypes())
}

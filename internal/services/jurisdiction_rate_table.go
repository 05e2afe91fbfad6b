package services

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/unations/tax-engine/internal/helpers"
	"github.com/unations/tax-engine/internal/types/business"
	"gopkg.in/yaml.v3"
)

// RateTable maps jurisdiction codes to their sales tax rates and off-reserve
// relief percentages. Reads are safe for concurrent use; Replace swaps the
// whole table at once.
type RateTable struct {
	mu     sync.RWMutex
	rates  map[string]business.JurisdictionRates
	relief map[string]decimal.Decimal
}

// RateTableEntry is one jurisdiction in a rate table file.
type RateTableEntry struct {
	Code             string  `yaml:"code"`
	Name             string  `yaml:"name"`
	GST              *string `yaml:"gst,omitempty"`
	HST              *string `yaml:"hst,omitempty"`
	PST              *string `yaml:"pst,omitempty"`
	QST              *string `yaml:"qst,omitempty"`
	OffReserveRelief *string `yaml:"off_reserve_relief,omitempty"`
}

// RateTableFile is the on-disk layout of a rate table.
type RateTableFile struct {
	Jurisdictions []RateTableEntry `yaml:"jurisdictions"`
}

func rate(s string) *string { return &s }

// DefaultRateTableEntries are the Canadian federal, provincial and territorial rates.
func DefaultRateTableEntries() []RateTableEntry {
	return []RateTableEntry{
		{Code: "AB", Name: "Alberta", GST: rate("0.05")},
		{Code: "BC", Name: "British Columbia", GST: rate("0.05"), PST: rate("0.07"), OffReserveRelief: rate("100")},
		{Code: "MB", Name: "Manitoba", GST: rate("0.05"), PST: rate("0.07"), OffReserveRelief: rate("100")},
		{Code: "NB", Name: "New Brunswick", HST: rate("0.15")},
		{Code: "NL", Name: "Newfoundland and Labrador", HST: rate("0.15")},
		{Code: "NS", Name: "Nova Scotia", HST: rate("0.14")},
		{Code: "NT", Name: "Northwest Territories", GST: rate("0.05")},
		{Code: "NU", Name: "Nunavut", GST: rate("0.05")},
		{Code: "ON", Name: "Ontario", HST: rate("0.13")},
		{Code: "PE", Name: "Prince Edward Island", HST: rate("0.15")},
		{Code: "QC", Name: "Quebec", GST: rate("0.05"), QST: rate("0.09975"), OffReserveRelief: rate("100")},
		{Code: "SK", Name: "Saskatchewan", GST: rate("0.05"), PST: rate("0.06"), OffReserveRelief: rate("100")},
		{Code: "YT", Name: "Yukon", GST: rate("0.05")},
	}
}

// NewRateTable builds a table from entries, rejecting invalid rate combinations.
func NewRateTable(entries []RateTableEntry) (*RateTable, error) {
	t := &RateTable{}
	if err := t.Replace(entries); err != nil {
		return nil, err
	}
	return t, nil
}

// NewDefaultRateTable builds the table from DefaultRateTableEntries.
func NewDefaultRateTable() *RateTable {
	t, err := NewRateTable(DefaultRateTableEntries())
	if err != nil {
		panic(fmt.Sprintf("default rate table is invalid: %v", err))
	}
	return t
}

// LoadRateTableFile reads a YAML rate table from path.
func LoadRateTableFile(path string) (*RateTable, error) {
	entries, err := ReadRateTableFile(path)
	if err != nil {
		return nil, err
	}
	return NewRateTable(entries)
}

// ReadRateTableFile parses the entries of a YAML rate table.
func ReadRateTableFile(path string) ([]RateTableEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rate table %s: %w", path, err)
	}
	var file RateTableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse rate table %s: %w", path, err)
	}
	if len(file.Jurisdictions) == 0 {
		return nil, fmt.Errorf("rate table %s has no jurisdictions", path)
	}
	return file.Jurisdictions, nil
}

// Replace validates entries and swaps them in atomically. On error the
// current table is left untouched.
func (t *RateTable) Replace(entries []RateTableEntry) error {
	rates := make(map[string]business.JurisdictionRates, len(entries))
	relief := make(map[string]decimal.Decimal, len(entries))

	for _, e := range entries {
		code := normalizeJurisdiction(e.Code)
		if _, dup := rates[code]; dup {
			return fmt.Errorf("jurisdiction %s listed twice", code)
		}
		r := business.JurisdictionRates{Code: code, Name: e.Name}
		var err error
		if r.GST, err = parseOptionalRate(e.GST); err != nil {
			return fmt.Errorf("jurisdiction %s gst: %w", code, err)
		}
		if r.HST, err = parseOptionalRate(e.HST); err != nil {
			return fmt.Errorf("jurisdiction %s hst: %w", code, err)
		}
		if r.PST, err = parseOptionalRate(e.PST); err != nil {
			return fmt.Errorf("jurisdiction %s pst: %w", code, err)
		}
		if r.QST, err = parseOptionalRate(e.QST); err != nil {
			return fmt.Errorf("jurisdiction %s qst: %w", code, err)
		}
		if err := r.Validate(); err != nil {
			return err
		}

		pct := decimal.Zero
		if e.OffReserveRelief != nil {
			if pct, err = helpers.ParsePercentage(*e.OffReserveRelief); err != nil {
				return fmt.Errorf("jurisdiction %s off_reserve_relief: %w", code, err)
			}
		}
		if pct.IsPositive() && len(r.PSTFamilyTaxTypes()) == 0 {
			return fmt.Errorf("jurisdiction %s has off-reserve relief but no provincial sales tax", code)
		}

		rates[code] = r
		relief[code] = pct
	}

	t.mu.Lock()
	t.rates = rates
	t.relief = relief
	t.mu.Unlock()
	return nil
}

// GetRates returns the rates for a jurisdiction code.
func (t *RateTable) GetRates(code string) (business.JurisdictionRates, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.rates[normalizeJurisdiction(code)]
	return r, ok
}

// ListRates returns every jurisdiction ordered by code.
func (t *RateTable) ListRates() []business.JurisdictionRates {
	t.mu.RLock()
	out := make([]business.JurisdictionRates, 0, len(t.rates))
	for _, r := range t.rates {
		out = append(out, r)
	}
	t.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// OffReserveReliefPercentage returns the PST-family relief granted to status
// card holders off reserve. Unknown jurisdictions and HST jurisdictions get 0.
func (t *RateTable) OffReserveReliefPercentage(code string) decimal.Decimal {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.relief[normalizeJurisdiction(code)]
}

func parseOptionalRate(s *string) (decimal.NullDecimal, error) {
	if s == nil {
		return decimal.NullDecimal{}, nil
	}
	d, err := helpers.ParseRate(*s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

func normalizeJurisdiction(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Package memory holds in-process implementations of the engine's stores,
// used by the local server, the CLI and tests.
package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/unations/tax-engine/internal/db"
	"github.com/unations/tax-engine/internal/interfaces"
	"github.com/unations/tax-engine/internal/taxerr"
	"github.com/unations/tax-engine/internal/types/business"
)

var (
	_ interfaces.TaxStore             = (*Store)(nil)
	_ interfaces.ExemptionRecordStore = (*Store)(nil)
)

// Store keeps every record in memory behind a single lock.
type Store struct {
	mu sync.RWMutex

	calculations map[uuid.UUID]business.TaxCalculation
	returns      map[uuid.UUID]business.TaxReturn
	versions     map[uuid.UUID]map[int]uuid.UUID // lineage -> version -> return
	claims       map[uuid.UUID]uuid.UUID         // calculation -> lineage
	remittances  map[uuid.UUID]business.Remittance
	byReturn     map[uuid.UUID]uuid.UUID // return -> remittance
	compliance   map[string]business.ComplianceRecord

	statusCards map[string]business.StatusCardRecord
	bands       map[string]business.BandExemptionRecord
	treaties    map[treatyKey]business.TreatyExemptionRecord
}

type treatyKey struct {
	number       string
	jurisdiction string
}

// New creates an empty store
func New() *Store {
	return &Store{
		calculations: make(map[uuid.UUID]business.TaxCalculation),
		returns:      make(map[uuid.UUID]business.TaxReturn),
		versions:     make(map[uuid.UUID]map[int]uuid.UUID),
		claims:       make(map[uuid.UUID]uuid.UUID),
		remittances:  make(map[uuid.UUID]business.Remittance),
		byReturn:     make(map[uuid.UUID]uuid.UUID),
		compliance:   make(map[string]business.ComplianceRecord),
		statusCards:  make(map[string]business.StatusCardRecord),
		bands:        make(map[string]business.BandExemptionRecord),
		treaties:     make(map[treatyKey]business.TreatyExemptionRecord),
	}
}

func (s *Store) CreateTaxCalculation(ctx context.Context, calc business.TaxCalculation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.calculations[calc.CalculationID]; ok {
		return nil
	}
	calc.LineItems = slices.Clone(calc.LineItems)
	s.calculations[calc.CalculationID] = calc
	return nil
}

func (s *Store) GetTaxCalculation(ctx context.Context, id uuid.UUID) (business.TaxCalculation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	calc, ok := s.calculations[id]
	if !ok {
		return business.TaxCalculation{}, taxerr.NotFound("tax calculation", id.String())
	}
	calc.LineItems = slices.Clone(calc.LineItems)
	return calc, nil
}

// ListTaxCalculationsForPeriod returns calculations whose tax point falls in [start, end).
func (s *Store) ListTaxCalculationsForPeriod(ctx context.Context, entityID string, start, end time.Time) ([]business.TaxCalculation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []business.TaxCalculation
	for _, calc := range s.calculations {
		if calc.EntityID != entityID || calc.TaxPointAt.Before(start) || !calc.TaxPointAt.Before(end) {
			continue
		}
		calc.LineItems = slices.Clone(calc.LineItems)
		out = append(out, calc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TaxPointAt.Equal(out[j].TaxPointAt) {
			return out[i].CalculationID.String() < out[j].CalculationID.String()
		}
		return out[i].TaxPointAt.Before(out[j].TaxPointAt)
	})
	return out, nil
}

// CreateTaxReturn stores ret and claims its calculations for its lineage. A
// return from another lineage whose dates overlap ret's is a PeriodOverlap.
func (s *Store) CreateTaxReturn(ctx context.Context, ret business.TaxReturn) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.returns[ret.ReturnID]; ok {
		return db.ErrUniqueViolation
	}
	if _, ok := s.versions[ret.LineageID][ret.Version]; ok {
		return db.ErrUniqueViolation
	}
	for _, other := range s.returns {
		if other.EntityID == ret.EntityID && other.LineageID != ret.LineageID &&
			other.StartDate.Before(ret.EndDate) && ret.StartDate.Before(other.EndDate) {
			return taxerr.PeriodOverlap("period %s overlaps return %s (%s)", ret.Period, other.ReturnID, other.Period)
		}
	}
	for _, id := range ret.CalculationIDs {
		if lineage, ok := s.claims[id]; ok && lineage != ret.LineageID {
			return taxerr.PeriodOverlap("calculation %s is already claimed by return lineage %s", id, lineage)
		}
	}

	for _, id := range ret.CalculationIDs {
		s.claims[id] = ret.LineageID
	}
	if s.versions[ret.LineageID] == nil {
		s.versions[ret.LineageID] = make(map[int]uuid.UUID)
	}
	s.versions[ret.LineageID][ret.Version] = ret.ReturnID
	s.returns[ret.ReturnID] = cloneReturn(ret)
	return nil
}

func (s *Store) GetTaxReturn(ctx context.Context, id uuid.UUID) (business.TaxReturn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ret, ok := s.returns[id]
	if !ok {
		return business.TaxReturn{}, taxerr.NotFound("tax return", id.String())
	}
	return cloneReturn(ret), nil
}

// ListTaxReturnsByEntity returns the entity's returns ordered by period start then version.
func (s *Store) ListTaxReturnsByEntity(ctx context.Context, entityID string) ([]business.TaxReturn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []business.TaxReturn
	for _, ret := range s.returns {
		if ret.EntityID == entityID {
			out = append(out, cloneReturn(ret))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].Version < out[j].Version
		}
		return out[i].StartDate.Before(out[j].StartDate)
	})
	return out, nil
}

func (s *Store) UpdateTaxReturnStatus(ctx context.Context, ret business.TaxReturn, expected business.ReturnStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkReturnStatus(ret.ReturnID, expected); err != nil {
		return err
	}
	s.returns[ret.ReturnID] = cloneReturn(ret)
	return nil
}

func (s *Store) FileTaxReturn(ctx context.Context, ret business.TaxReturn, expected business.ReturnStatus, remittance *business.Remittance) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkReturnStatus(ret.ReturnID, expected); err != nil {
		return err
	}
	if remittance != nil {
		if _, ok := s.byReturn[ret.ReturnID]; ok {
			return db.ErrUniqueViolation
		}
		s.remittances[remittance.RemittanceID] = *remittance
		s.byReturn[ret.ReturnID] = remittance.RemittanceID
	}
	s.returns[ret.ReturnID] = cloneReturn(ret)
	return nil
}

func (s *Store) checkReturnStatus(id uuid.UUID, expected business.ReturnStatus) error {
	stored, ok := s.returns[id]
	if !ok {
		return taxerr.NotFound("tax return", id.String())
	}
	if stored.Status != expected {
		return db.ErrStaleStatus
	}
	return nil
}

func (s *Store) GetRemittance(ctx context.Context, id uuid.UUID) (business.Remittance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rem, ok := s.remittances[id]
	if !ok {
		return business.Remittance{}, taxerr.NotFound("remittance", id.String())
	}
	return rem, nil
}

// ListRemittancesByEntity returns the entity's remittances ordered by due date.
func (s *Store) ListRemittancesByEntity(ctx context.Context, entityID string) ([]business.Remittance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []business.Remittance
	for _, rem := range s.remittances {
		if rem.EntityID == entityID {
			out = append(out, rem)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].RemittanceID.String() < out[j].RemittanceID.String()
		}
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out, nil
}

func (s *Store) UpdateRemittanceStatus(ctx context.Context, remittance business.Remittance, expected business.RemittanceStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.remittances[remittance.RemittanceID]
	if !ok {
		return taxerr.NotFound("remittance", remittance.RemittanceID.String())
	}
	if stored.Status != expected {
		return db.ErrStaleStatus
	}
	s.remittances[remittance.RemittanceID] = remittance
	return nil
}

func (s *Store) MarkOverdueRemittances(ctx context.Context, asOf time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	marked := 0
	for id, rem := range s.remittances {
		if rem.Status == business.RemittanceStatusPending && rem.DueDate.Before(asOf) {
			rem.Status = business.RemittanceStatusOverdue
			rem.UpdatedAt = asOf
			s.remittances[id] = rem
			marked++
		}
	}
	return marked, nil
}

func (s *Store) UpsertComplianceRecord(ctx context.Context, record business.ComplianceRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	record.RiskFactors = slices.Clone(record.RiskFactors)
	s.compliance[record.EntityID] = record
	return nil
}

func (s *Store) GetComplianceRecord(ctx context.Context, entityID string) (business.ComplianceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.compliance[entityID]
	if !ok {
		return business.ComplianceRecord{}, taxerr.NotFound("compliance record", entityID)
	}
	record.RiskFactors = slices.Clone(record.RiskFactors)
	return record, nil
}

// ListEntityIDs returns every entity with a calculation, return or remittance, sorted.
func (s *Store) ListEntityIDs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	for _, c := range s.calculations {
		seen[c.EntityID] = struct{}{}
	}
	for _, r := range s.returns {
		seen[r.EntityID] = struct{}{}
	}
	for _, r := range s.remittances {
		seen[r.EntityID] = struct{}{}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func cloneReturn(ret business.TaxReturn) business.TaxReturn {
	ret.CalculationIDs = slices.Clone(ret.CalculationIDs)
	return ret
}

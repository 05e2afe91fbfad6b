package memory

import (
	"context"
	"slices"

	"github.com/unations/tax-engine/internal/db"
	"github.com/unations/tax-engine/internal/taxerr"
	"github.com/unations/tax-engine/internal/types/business"
)

func (s *Store) GetStatusCardByNumber(ctx context.Context, cardNumber string) (business.StatusCardRecord, error) {
	if err := ctx.Err(); err != nil {
		return business.StatusCardRecord{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.statusCards[cardNumber]
	if !ok {
		return business.StatusCardRecord{}, taxerr.NotFound("status card", cardNumber)
	}
	return record, nil
}

func (s *Store) CreateStatusCard(ctx context.Context, record business.StatusCardRecord) (business.StatusCardRecord, error) {
	if err := ctx.Err(); err != nil {
		return business.StatusCardRecord{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.statusCards[record.CardNumber]; ok {
		return business.StatusCardRecord{}, db.ErrUniqueViolation
	}
	s.statusCards[record.CardNumber] = record
	return record, nil
}

func (s *Store) UpdateStatusCardStatus(ctx context.Context, cardNumber string, status business.StatusCardStatus) (business.StatusCardRecord, error) {
	if err := ctx.Err(); err != nil {
		return business.StatusCardRecord{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.statusCards[cardNumber]
	if !ok {
		return business.StatusCardRecord{}, taxerr.NotFound("status card", cardNumber)
	}
	record.Status = status
	s.statusCards[cardNumber] = record
	return record, nil
}

func (s *Store) GetBandExemption(ctx context.Context, bandNumber string) (business.BandExemptionRecord, error) {
	if err := ctx.Err(); err != nil {
		return business.BandExemptionRecord{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.bands[bandNumber]
	if !ok {
		return business.BandExemptionRecord{}, taxerr.NotFound("band exemption", bandNumber)
	}
	record.Jurisdictions = slices.Clone(record.Jurisdictions)
	return record, nil
}

func (s *Store) UpsertBandExemption(ctx context.Context, record business.BandExemptionRecord) (business.BandExemptionRecord, error) {
	if err := ctx.Err(); err != nil {
		return business.BandExemptionRecord{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	record.Jurisdictions = slices.Clone(record.Jurisdictions)
	s.bands[record.BandNumber] = record
	return record, nil
}

func (s *Store) GetTreatyExemption(ctx context.Context, treatyNumber, jurisdiction string) (business.TreatyExemptionRecord, error) {
	if err := ctx.Err(); err != nil {
		return business.TreatyExemptionRecord{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.treaties[treatyKey{number: treatyNumber, jurisdiction: jurisdiction}]
	if !ok {
		return business.TreatyExemptionRecord{}, taxerr.NotFound("treaty exemption", treatyNumber+"/"+jurisdiction)
	}
	record.ExemptTaxTypes = slices.Clone(record.ExemptTaxTypes)
	return record, nil
}

func (s *Store) UpsertTreatyExemption(ctx context.Context, record business.TreatyExemptionRecord) (business.TreatyExemptionRecord, error) {
	if err := ctx.Err(); err != nil {
		return business.TreatyExemptionRecord{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	record.ExemptTaxTypes = slices.Clone(record.ExemptTaxTypes)
	s.treaties[treatyKey{number: record.TreatyNumber, jurisdiction: record.Jurisdiction}] = record
	return record, nil
}

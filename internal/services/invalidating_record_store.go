package services

import (
	"context"
	"fmt"

	"github.com/unations/tax-engine/internal/interfaces"
	"github.com/unations/tax-engine/internal/types/business"
)

// InvalidatingRecordStore wraps an ExemptionRecordStore and invalidates the
// cached decisions of every record it writes before acknowledging the write.
type InvalidatingRecordStore struct {
	interfaces.ExemptionRecordStore
	cache interfaces.ExemptionCache
}

// NewInvalidatingRecordStore decorates store with cache invalidation.
func NewInvalidatingRecordStore(store interfaces.ExemptionRecordStore, cache interfaces.ExemptionCache) *InvalidatingRecordStore {
	return &InvalidatingRecordStore{ExemptionRecordStore: store, cache: cache}
}

func (s *InvalidatingRecordStore) invalidate(ctx context.Context, kind, id string) error {
	if err := s.cache.InvalidateTag(ctx, CacheTag(kind, id)); err != nil {
		return fmt.Errorf("record %s:%s written but cache invalidation failed: %w", kind, id, err)
	}
	return nil
}

func (s *InvalidatingRecordStore) CreateStatusCard(ctx context.Context, record business.StatusCardRecord) (business.StatusCardRecord, error) {
	created, err := s.ExemptionRecordStore.CreateStatusCard(ctx, record)
	if err != nil {
		return created, err
	}
	return created, s.invalidate(ctx, CacheTagStatusCard, created.CardNumber)
}

func (s *InvalidatingRecordStore) UpdateStatusCardStatus(ctx context.Context, cardNumber string, status business.StatusCardStatus) (business.StatusCardRecord, error) {
	updated, err := s.ExemptionRecordStore.UpdateStatusCardStatus(ctx, cardNumber, status)
	if err != nil {
		return updated, err
	}
	return updated, s.invalidate(ctx, CacheTagStatusCard, cardNumber)
}

func (s *InvalidatingRecordStore) UpsertBandExemption(ctx context.Context, record business.BandExemptionRecord) (business.BandExemptionRecord, error) {
	saved, err := s.ExemptionRecordStore.UpsertBandExemption(ctx, record)
	if err != nil {
		return saved, err
	}
	return saved, s.invalidate(ctx, CacheTagBand, saved.BandNumber)
}

func (s *InvalidatingRecordStore) UpsertTreatyExemption(ctx context.Context, record business.TreatyExemptionRecord) (business.TreatyExemptionRecord, error) {
	saved, err := s.ExemptionRecordStore.UpsertTreatyExemption(ctx, record)
	if err != nil {
		return saved, err
	}
	return saved, s.invalidate(ctx, CacheTagTreaty, saved.TreatyNumber)
}

package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unations/tax-engine/internal/db"
	"github.com/unations/tax-engine/internal/interfaces"
	"github.com/unations/tax-engine/internal/mocks"
	"github.com/unations/tax-engine/internal/services"
	"github.com/unations/tax-engine/internal/taxerr"
	"github.com/unations/tax-engine/internal/types/api/params"
	"github.com/unations/tax-engine/internal/types/business"
	"go.uber.org/mock/gomock"
)

func newTestRegistry(records interfaces.ExemptionRecordStore) *services.StatusCardRegistry {
	return services.NewStatusCardRegistry(services.StatusCardRegistryConfig{
		Records:      records,
		StoreTimeout: time.Second,
		Now:          fixedClock,
	})
}

func TestStatusCardRegistry_ValidateKnownCards(t *testing.T) {
	ctx := context.Background()
	registry := newTestRegistry(seededRecords(t))

	tests := []struct {
		name       string
		params     params.ValidateStatusCardParams
		wantValid  bool
		wantStatus business.StatusCardStatus
	}{
		{
			name:       "active card",
			params:     params.ValidateStatusCardParams{CardNumber: activeCard, HolderName: "Mary Bearspaw"},
			wantValid:  true,
			wantStatus: business.StatusCardStatusActive,
		},
		{
			name:       "holder name compared loosely",
			params:     params.ValidateStatusCardParams{CardNumber: "123-456-7890", HolderName: "  mary   BEARSPAW "},
			wantValid:  true,
			wantStatus: business.StatusCardStatusActive,
		},
		{
			name:       "holder mismatch",
			params:     params.ValidateStatusCardParams{CardNumber: activeCard, HolderName: "Someone Else"},
			wantStatus: business.StatusCardStatusHolderMismatch,
		},
		{
			name:       "suspended card",
			params:     params.ValidateStatusCardParams{CardNumber: suspendedCard, HolderName: "John Cardinal"},
			wantStatus: business.StatusCardStatusSuspended,
		},
		{
			name:       "expired card",
			params:     params.ValidateStatusCardParams{CardNumber: expiredCard, HolderName: "Ann Littlechild"},
			wantStatus: business.StatusCardStatusExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := registry.ValidateStatusCard(ctx, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, result.Valid)
			assert.Equal(t, tt.wantStatus, result.Status)
			assert.False(t, result.Registered)
			if tt.wantValid {
				assert.NotNil(t, result.ExemptionID)
			} else {
				assert.Nil(t, result.ExemptionID)
			}
		})
	}
}

func TestStatusCardRegistry_RegistersUnknownCard(t *testing.T) {
	ctx := context.Background()
	store := seededRecords(t)
	registry := newTestRegistry(store)
	dob := time.Date(1980, 6, 21, 0, 0, 0, 0, time.UTC)
	p := params.ValidateStatusCardParams{CardNumber: "5555555555", HolderName: "Lee Sinclair", DateOfBirth: &dob, BandNumber: "0601"}

	first, err := registry.ValidateStatusCard(ctx, p)
	require.NoError(t, err)
	assert.True(t, first.Valid)
	assert.True(t, first.Registered)
	assert.Equal(t, business.StatusCardStatusActive, first.Status)
	require.NotNil(t, first.ValidUntil)
	assert.Equal(t, testNow.AddDate(services.DefaultStatusCardValidityYears, 0, 0), *first.ValidUntil)

	record, err := store.GetStatusCardByNumber(ctx, "5555555555")
	require.NoError(t, err)
	assert.Equal(t, "601", record.BandNumber)
	assert.Equal(t, *first.ExemptionID, record.ExemptionID)

	second, err := registry.ValidateStatusCard(ctx, p)
	require.NoError(t, err)
	assert.True(t, second.Valid)
	assert.False(t, second.Registered)
	assert.Equal(t, *first.ExemptionID, *second.ExemptionID)

	otherDOB := dob.AddDate(1, 0, 0)
	p.DateOfBirth = &otherDOB
	mismatch, err := registry.ValidateStatusCard(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, business.StatusCardStatusHolderMismatch, mismatch.Status)
}

func TestStatusCardRegistry_ExpiredUnknownCardIsNotRegistered(t *testing.T) {
	ctx := context.Background()
	store := seededRecords(t)
	registry := newTestRegistry(store)
	expired := testNow.AddDate(0, -1, 0)

	result, err := registry.ValidateStatusCard(ctx, params.ValidateStatusCardParams{
		CardNumber: "6666666666", HolderName: "Pat Morin", ValidUntil: &expired,
	})
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, business.StatusCardStatusExpired, result.Status)

	_, err = store.GetStatusCardByNumber(ctx, "6666666666")
	assert.ErrorIs(t, err, taxerr.ErrNotFound)
}

func TestStatusCardRegistry_RegistrationRace(t *testing.T) {
	ctx := context.Background()
	winner := business.StatusCardRecord{
		ExemptionID: uuid.New(),
		CardNumber:  "7777777777",
		HolderName:  "Sam Thunderchild",
		Status:      business.StatusCardStatusActive,
		ValidFrom:   testNow.AddDate(0, 0, -1),
		ValidUntil:  testNow.AddDate(5, 0, 0),
	}

	records := mocks.NewMockExemptionRecordStoreForTest(t)
	gomock.InOrder(
		records.EXPECT().GetStatusCardByNumber(gomock.Any(), "7777777777").Return(business.StatusCardRecord{}, taxerr.NotFound("status card", "7777777777")),
		records.EXPECT().CreateStatusCard(gomock.Any(), gomock.Any()).Return(business.StatusCardRecord{}, db.ErrUniqueViolation),
		records.EXPECT().GetStatusCardByNumber(gomock.Any(), "7777777777").Return(winner, nil),
	)

	result, err := newTestRegistry(records).ValidateStatusCard(ctx, params.ValidateStatusCardParams{
		CardNumber: "7777777777", HolderName: "Sam Thunderchild",
	})
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.False(t, result.Registered)
	require.NotNil(t, result.ExemptionID)
	assert.Equal(t, winner.ExemptionID, *result.ExemptionID)
}

func TestStatusCardRegistry_ValidationErrors(t *testing.T) {
	registry := newTestRegistry(seededRecords(t))
	ctx := context.Background()

	_, err := registry.ValidateStatusCard(ctx, params.ValidateStatusCardParams{HolderName: "Mary Bearspaw"})
	assert.Equal(t, taxerr.CodeInvalidExemptionClaim, taxerr.CodeOf(err))

	_, err = registry.ValidateStatusCard(ctx, params.ValidateStatusCardParams{CardNumber: "12ab", HolderName: "Mary Bearspaw"})
	assert.Equal(t, taxerr.CodeInvalidExemptionClaim, taxerr.CodeOf(err))
	require.Len(t, taxerr.FieldsOf(err), 1)
	assert.Equal(t, "status_card_number", taxerr.FieldsOf(err)[0].Field)

	_, err = registry.ValidateStatusCard(ctx, params.ValidateStatusCardParams{CardNumber: activeCard})
	assert.Equal(t, taxerr.CodeInvalidRequest, taxerr.CodeOf(err))
}

func TestStatusCardRegistry_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	cache := services.NewMemoryExemptionCache()
	store := services.NewInvalidatingRecordStore(seededRecords(t), cache)
	registry := newTestRegistry(store)
	rates := services.NewDefaultRateTable()
	resolver := services.NewExemptionResolver(store, rates, rates,
		services.WithResolverClock(fixedClock),
		services.WithExemptionCache(cache, services.DefaultExemptionCacheTTL))
	claim := business.ExemptionClaim{BuyerID: "buyer-1", StatusCardNumber: suspendedCard, Jurisdiction: "BC", OnReserveDelivery: true}

	before, err := resolver.Resolve(ctx, claim)
	require.NoError(t, err)
	assert.False(t, before.HasExemption())

	updated, err := registry.UpdateStatusCardStatus(ctx, suspendedCard, business.StatusCardStatusActive)
	require.NoError(t, err)
	assert.Equal(t, business.StatusCardStatusActive, updated.Status)

	after, err := resolver.Resolve(ctx, claim)
	require.NoError(t, err)
	assert.True(t, after.HasExemption())

	_, err = registry.UpdateStatusCardStatus(ctx, suspendedCard, business.StatusCardStatusExpired)
	assert.Equal(t, taxerr.CodeInvalidRequest, taxerr.CodeOf(err))

	_, err = registry.UpdateStatusCardStatus(ctx, "9999999999", business.StatusCardStatusRevoked)
	assert.Equal(t, taxerr.CodeNotFound, taxerr.CodeOf(err))
}

func TestStatusCardRegistry_UpsertBandExemption(t *testing.T) {
	ctx := context.Background()
	store := seededRecords(t)
	registry := newTestRegistry(store)

	saved, err := registry.UpsertBandExemption(ctx, params.UpsertBandExemptionParams{
		BandNumber: "00602", BandName: " Second Nation ", Jurisdictions: []string{"sk", " ab "}, Active: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "602", saved.BandNumber)
	assert.Equal(t, "Second Nation", saved.BandName)
	assert.Equal(t, []string{"SK", "AB"}, saved.Jurisdictions)
	assert.Equal(t, testNow, saved.ValidFrom)

	stored, err := store.GetBandExemption(ctx, "602")
	require.NoError(t, err)
	assert.Equal(t, *saved, stored)

	_, err = registry.UpsertBandExemption(ctx, params.UpsertBandExemptionParams{BandName: "No Number"})
	assert.Equal(t, taxerr.CodeInvalidExemptionClaim, taxerr.CodeOf(err))
}

func TestStatusCardRegistry_UpsertTreatyExemption(t *testing.T) {
	ctx := context.Background()
	store := seededRecords(t)
	registry := newTestRegistry(store)

	saved, err := registry.UpsertTreatyExemption(ctx, params.UpsertTreatyExemptionParams{
		TreatyNumber: "Treaty No. 8", Jurisdiction: "ab", ExemptTaxTypes: []business.TaxType{business.TaxTypeGST},
		Percentage: "100", Active: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "T8", saved.TreatyNumber)
	assert.Equal(t, "AB", saved.Jurisdiction)
	assertDecimal(t, "100", saved.Percentage)

	_, err = store.GetTreatyExemption(ctx, "T8", "AB")
	require.NoError(t, err)

	_, err = registry.UpsertTreatyExemption(ctx, params.UpsertTreatyExemptionParams{Percentage: "150"})
	require.Error(t, err)
	assert.Equal(t, taxerr.CodeInvalidRequest, taxerr.CodeOf(err))
	fields := make([]string, 0, 4)
	for _, f := range taxerr.FieldsOf(err) {
		fields = append(fields, f.Field)
	}
	assert.Equal(t, []string{"treaty_number", "jurisdiction", "percentage", "exempt_tax_types"}, fields)

	_, err = registry.UpsertTreatyExemption(ctx, params.UpsertTreatyExemptionParams{
		TreatyNumber: "T12", Jurisdiction: "AB", ExemptTaxTypes: []business.TaxType{business.TaxTypeGST}, Percentage: "10",
	})
	assert.Equal(t, taxerr.CodeInvalidExemptionClaim, taxerr.CodeOf(err))
}

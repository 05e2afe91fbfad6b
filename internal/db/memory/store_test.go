package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unations/tax-engine/internal/db"
	"github.com/unations/tax-engine/internal/db/memory"
	"github.com/unations/tax-engine/internal/taxerr"
	"github.com/unations/tax-engine/internal/types/business"
)

var periodStart = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

func calculation(entity string, at time.Time) business.TaxCalculation {
	return business.TaxCalculation{
		CalculationID: uuid.New(),
		EntityID:      entity,
		Jurisdiction:  "ON",
		Subtotal:      decimal.NewFromInt(100),
		TaxableAmount: decimal.NewFromInt(100),
		ExemptAmount:  decimal.Zero,
		Taxes:         business.TaxAmounts{HST: decimal.NewFromInt(13)},
		TotalTax:      decimal.NewFromInt(13),
		TotalAmount:   decimal.NewFromInt(113),
		Exemption:     business.NoExemption(""),
		TaxPointAt:    at,
		CreatedAt:     at,
	}
}

func draftReturn(entity string, calcs ...uuid.UUID) business.TaxReturn {
	id := uuid.New()
	return business.TaxReturn{
		ReturnID:         id,
		LineageID:        id,
		Version:          1,
		EntityID:         entity,
		ReturnType:       "monthly",
		Period:           "2025-03",
		StartDate:        periodStart,
		EndDate:          periodStart.AddDate(0, 1, 0),
		CalculationIDs:   calcs,
		CalculationCount: len(calcs),
		Status:           business.ReturnStatusDraft,
		DueDate:          periodStart.AddDate(0, 2, 0),
	}
}

func TestStore_Calculations(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	inside := calculation("merchant-1", periodStart.Add(time.Hour))
	first := calculation("merchant-1", periodStart)
	atEnd := calculation("merchant-1", periodStart.AddDate(0, 1, 0))
	other := calculation("merchant-2", periodStart.Add(time.Hour))
	for _, c := range []business.TaxCalculation{inside, first, atEnd, other} {
		require.NoError(t, s.CreateTaxCalculation(ctx, c))
	}

	// Writes are idempotent on the calculation ID.
	changed := inside
	changed.TotalTax = decimal.NewFromInt(99)
	require.NoError(t, s.CreateTaxCalculation(ctx, changed))
	got, err := s.GetTaxCalculation(ctx, inside.CalculationID)
	require.NoError(t, err)
	assert.True(t, got.TotalTax.Equal(decimal.NewFromInt(13)))

	list, err := s.ListTaxCalculationsForPeriod(ctx, "merchant-1", periodStart, periodStart.AddDate(0, 1, 0))
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.CalculationID, list[0].CalculationID)
	assert.Equal(t, inside.CalculationID, list[1].CalculationID)

	_, err = s.GetTaxCalculation(ctx, uuid.New())
	assert.ErrorIs(t, err, taxerr.ErrNotFound)
}

func TestStore_CreateTaxReturnClaims(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	c1 := calculation("merchant-1", periodStart)
	c2 := calculation("merchant-1", periodStart.Add(time.Hour))

	ret := draftReturn("merchant-1", c1.CalculationID)
	require.NoError(t, s.CreateTaxReturn(ctx, ret))

	assert.ErrorIs(t, s.CreateTaxReturn(ctx, ret), db.ErrUniqueViolation)

	competing := draftReturn("merchant-1", c2.CalculationID, c1.CalculationID)
	err := s.CreateTaxReturn(ctx, competing)
	assert.ErrorIs(t, err, taxerr.ErrPeriodOverlap)

	// The failed write claimed nothing.
	alone := draftReturn("merchant-1", c2.CalculationID)
	alone.Period = "2025-04"
	alone.StartDate = periodStart.AddDate(0, 1, 0)
	alone.EndDate = periodStart.AddDate(0, 2, 0)
	require.NoError(t, s.CreateTaxReturn(ctx, alone))

	amended := draftReturn("merchant-1", c1.CalculationID)
	amended.LineageID = ret.LineageID
	amended.Version = 2
	amended.AmendsReturnID = &ret.ReturnID
	require.NoError(t, s.CreateTaxReturn(ctx, amended))

	duplicateVersion := draftReturn("merchant-1")
	duplicateVersion.LineageID = ret.LineageID
	duplicateVersion.Version = 2
	assert.ErrorIs(t, s.CreateTaxReturn(ctx, duplicateVersion), db.ErrUniqueViolation)

	returns, err := s.ListTaxReturnsByEntity(ctx, "merchant-1")
	require.NoError(t, err)
	assert.Len(t, returns, 3)
}

func TestStore_CreateTaxReturnRejectsOverlappingPeriod(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	march := draftReturn("merchant-1")
	require.NoError(t, s.CreateTaxReturn(ctx, march))

	quarter := draftReturn("merchant-1")
	quarter.ReturnType = "quarterly"
	quarter.Period = "2025-Q1"
	quarter.StartDate = periodStart.AddDate(0, -2, 0)
	quarter.EndDate = periodStart.AddDate(0, 1, 0)
	assert.ErrorIs(t, s.CreateTaxReturn(ctx, quarter), taxerr.ErrPeriodOverlap)

	assert.ErrorIs(t, s.CreateTaxReturn(ctx, draftReturn("merchant-1")), taxerr.ErrPeriodOverlap)

	// Adjacent periods, other entities and amendments of the same lineage are free.
	april := draftReturn("merchant-1")
	april.Period = "2025-04"
	april.StartDate = march.EndDate
	april.EndDate = march.EndDate.AddDate(0, 1, 0)
	require.NoError(t, s.CreateTaxReturn(ctx, april))
	require.NoError(t, s.CreateTaxReturn(ctx, draftReturn("merchant-2")))

	amended := draftReturn("merchant-1")
	amended.LineageID = march.LineageID
	amended.Version = 2
	amended.AmendsReturnID = &march.ReturnID
	require.NoError(t, s.CreateTaxReturn(ctx, amended))
}

func TestStore_ConcurrentDraftsForOnePeriodHaveOneWinner(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	const racers = 8
	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.CreateTaxReturn(ctx, draftReturn("merchant-1"))
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		assert.ErrorIs(t, err, taxerr.ErrPeriodOverlap)
	}
	assert.Equal(t, 1, wins)
}

func TestStore_ReturnsAreCopied(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	c1 := calculation("merchant-1", periodStart)
	ret := draftReturn("merchant-1", c1.CalculationID)
	require.NoError(t, s.CreateTaxReturn(ctx, ret))

	ret.CalculationIDs[0] = uuid.Nil
	got, err := s.GetTaxReturn(ctx, ret.ReturnID)
	require.NoError(t, err)
	assert.Equal(t, c1.CalculationID, got.CalculationIDs[0])
}

func TestStore_StatusCompareAndSet(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	ret := draftReturn("merchant-1")
	require.NoError(t, s.CreateTaxReturn(ctx, ret))

	ready := ret
	ready.Status = business.ReturnStatusReady
	require.NoError(t, s.UpdateTaxReturnStatus(ctx, ready, business.ReturnStatusDraft))
	assert.ErrorIs(t, s.UpdateTaxReturnStatus(ctx, ready, business.ReturnStatusDraft), db.ErrStaleStatus)

	missing := draftReturn("merchant-1")
	assert.ErrorIs(t, s.UpdateTaxReturnStatus(ctx, missing, business.ReturnStatusDraft), taxerr.ErrNotFound)

	filed := ready
	filed.Status = business.ReturnStatusFiled
	rem := &business.Remittance{
		RemittanceID: uuid.New(),
		ReturnID:     ret.ReturnID,
		EntityID:     "merchant-1",
		TotalAmount:  decimal.NewFromInt(10),
		DueDate:      ret.DueDate,
		Status:       business.RemittanceStatusPending,
	}
	require.NoError(t, s.FileTaxReturn(ctx, filed, business.ReturnStatusReady, rem))
	assert.ErrorIs(t, s.FileTaxReturn(ctx, filed, business.ReturnStatusReady, rem), db.ErrStaleStatus)

	got, err := s.GetTaxReturn(ctx, ret.ReturnID)
	require.NoError(t, err)
	assert.Equal(t, business.ReturnStatusFiled, got.Status)

	remittances, err := s.ListRemittancesByEntity(ctx, "merchant-1")
	require.NoError(t, err)
	require.Len(t, remittances, 1)

	paid := remittances[0]
	paid.Status = business.RemittanceStatusPaid
	require.NoError(t, s.UpdateRemittanceStatus(ctx, paid, business.RemittanceStatusPending))
	assert.ErrorIs(t, s.UpdateRemittanceStatus(ctx, paid, business.RemittanceStatusPending), db.ErrStaleStatus)
}

func TestStore_MarkOverdueRemittances(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	asOf := periodStart.AddDate(0, 3, 0)

	for i, due := range []time.Time{asOf.AddDate(0, 0, -1), asOf, asOf.AddDate(0, 0, 1)} {
		ret := draftReturn("merchant-1")
		ret.Period = []string{"a", "b", "c"}[i]
		ret.StartDate = periodStart.AddDate(0, i, 0)
		ret.EndDate = periodStart.AddDate(0, i+1, 0)
		require.NoError(t, s.CreateTaxReturn(ctx, ret))
		filed := ret
		filed.Status = business.ReturnStatusFiled
		require.NoError(t, s.FileTaxReturn(ctx, filed, business.ReturnStatusDraft, &business.Remittance{
			RemittanceID: uuid.New(),
			ReturnID:     ret.ReturnID,
			EntityID:     "merchant-1",
			TotalAmount:  decimal.NewFromInt(5),
			DueDate:      due,
			Status:       business.RemittanceStatusPending,
		}))
	}

	n, err := s.MarkOverdueRemittances(ctx, asOf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = s.MarkOverdueRemittances(ctx, asOf)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	remittances, err := s.ListRemittancesByEntity(ctx, "merchant-1")
	require.NoError(t, err)
	require.Len(t, remittances, 3)
	assert.Equal(t, business.RemittanceStatusOverdue, remittances[0].Status)
	assert.Equal(t, business.RemittanceStatusPending, remittances[1].Status)
}

func TestStore_ListEntityIDs(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	require.NoError(t, s.CreateTaxCalculation(ctx, calculation("zeta", periodStart)))
	require.NoError(t, s.CreateTaxCalculation(ctx, calculation("alpha", periodStart)))
	require.NoError(t, s.CreateTaxReturn(ctx, draftReturn("mid")))
	require.NoError(t, s.CreateTaxCalculation(ctx, calculation("alpha", periodStart.Add(time.Minute))))

	ids, err := s.ListEntityIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, ids)
}

func TestStore_ConcurrentClaimsHaveOneWinner(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	calc := calculation("merchant-1", periodStart)

	const racers = 8
	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.CreateTaxReturn(ctx, draftReturn("merchant-1", calc.CalculationID))
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		assert.ErrorIs(t, err, taxerr.ErrPeriodOverlap)
	}
	assert.Equal(t, 1, wins)
}

func TestStore_StatusCards(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	card := business.StatusCardRecord{ExemptionID: uuid.New(), CardNumber: "1234567890", HolderName: "Mary Bearspaw", Status: business.StatusCardStatusActive}

	_, err := s.CreateStatusCard(ctx, card)
	require.NoError(t, err)
	_, err = s.CreateStatusCard(ctx, card)
	assert.ErrorIs(t, err, db.ErrUniqueViolation)

	updated, err := s.UpdateStatusCardStatus(ctx, "1234567890", business.StatusCardStatusRevoked)
	require.NoError(t, err)
	assert.Equal(t, business.StatusCardStatusRevoked, updated.Status)

	_, err = s.UpdateStatusCardStatus(ctx, "0000000000", business.StatusCardStatusRevoked)
	assert.ErrorIs(t, err, taxerr.ErrNotFound)

	_, err = s.GetTreatyExemption(ctx, "T6", "SK")
	assert.ErrorIs(t, err, taxerr.ErrNotFound)
}

package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unations/tax-engine/internal/db"
	"github.com/unations/tax-engine/internal/db/memory"
	"github.com/unations/tax-engine/internal/interfaces"
	"github.com/unations/tax-engine/internal/mocks"
	"github.com/unations/tax-engine/internal/services"
	"github.com/unations/tax-engine/internal/taxerr"
	"github.com/unations/tax-engine/internal/types/api/params"
	"github.com/unations/tax-engine/internal/types/business"
	"go.uber.org/mock/gomock"
)

type filingFixture struct {
	store      *memory.Store
	calc       *services.TransactionCalculator
	filing     *services.FilingService
	compliance *services.ComplianceTracker
}

func newFilingFixture(t *testing.T, gateway interfaces.FilingGateway) *filingFixture {
	t.Helper()
	store := memory.New()
	compliance := services.NewComplianceTracker(store, time.Second, fixedClock)
	return &filingFixture{
		store:      store,
		calc:       newTestCalculator(t),
		compliance: compliance,
		filing: services.NewFilingService(services.FilingServiceConfig{
			Store:      store,
			Aggregator: services.NewReturnAggregator(nil, fixedClock),
			Gateway:    gateway,
			Compliance: compliance,
			Retry:      services.NewStoreRetry(time.Millisecond, nil),
			Now:        fixedClock,
		}),
	}
}

func (f *filingFixture) record(t *testing.T, p params.CalculateTaxParams, at time.Time) business.TaxCalculation {
	t.Helper()
	c := calculateAt(t, f.calc, p, at)
	require.NoError(t, f.store.CreateTaxCalculation(context.Background(), c))
	return c
}

func marchReturn() params.FileReturnParams {
	return params.FileReturnParams{EntityID: "merchant-1", ReturnType: "monthly", Period: "2025-03"}
}

func TestFilingService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFilingFixture(t, nil)
	f.record(t, params.CalculateTaxParams{Jurisdiction: "ON", LineItems: []business.LineItem{item("a", "100.00", 1)}}, marchStart.Add(time.Hour))
	f.record(t, params.CalculateTaxParams{Jurisdiction: "ON", LineItems: []business.LineItem{item("b", "50.00", 2)}}, marchEnd.Add(-time.Second))
	f.record(t, params.CalculateTaxParams{Jurisdiction: "ON", LineItems: []business.LineItem{item("c", "999.00", 1)}}, marchEnd)

	draft, err := f.filing.FileReturn(ctx, marchReturn())
	require.NoError(t, err)
	assert.Equal(t, business.ReturnStatusDraft, draft.Status)
	assert.Equal(t, marchStart, draft.StartDate)
	assert.Equal(t, marchEnd, draft.EndDate)
	assert.Equal(t, 2, draft.CalculationCount)
	assertDecimal(t, "26", draft.TotalTaxCollected)
	assertDecimal(t, "18.20", draft.NetTaxOwing)

	ready, err := f.filing.MarkReady(ctx, params.MarkReadyParams{ReturnID: draft.ReturnID, ReviewedBy: "reviewer"})
	require.NoError(t, err)
	assert.Equal(t, business.ReturnStatusReady, ready.Status)

	_, err = f.filing.MarkReady(ctx, params.MarkReadyParams{ReturnID: draft.ReturnID, ReviewedBy: "reviewer"})
	assert.Equal(t, taxerr.CodeInvalidReturnState, taxerr.CodeOf(err))

	result, err := f.filing.SubmitReturn(ctx, params.SubmitReturnParams{ReturnID: draft.ReturnID, ApprovedBy: "controller"})
	require.NoError(t, err)
	assert.Equal(t, business.ReturnStatusFiled, result.Return.Status)
	assert.True(t, strings.HasPrefix(result.ConfirmationNumber, "CN-"))
	require.NotNil(t, result.Return.FiledAt)
	require.NotNil(t, result.Remittance)
	assertDecimal(t, "18.20", result.Remittance.TotalAmount)
	assert.Equal(t, business.RemittanceStatusPending, result.Remittance.Status)

	stored, err := f.filing.GetReturn(ctx, draft.ReturnID)
	require.NoError(t, err)
	assert.Equal(t, result.ConfirmationNumber, stored.ConfirmationNumber)
	assert.Equal(t, "reviewer", stored.ReviewedBy)
	assert.Equal(t, "controller", stored.ApprovedBy)

	_, err = f.filing.SubmitReturn(ctx, params.SubmitReturnParams{ReturnID: draft.ReturnID, ApprovedBy: "controller"})
	assert.Equal(t, taxerr.CodeInvalidReturnState, taxerr.CodeOf(err))

	remittances, err := f.store.ListRemittancesByEntity(ctx, "merchant-1")
	require.NoError(t, err)
	assert.Len(t, remittances, 1)

	record, err := f.store.GetComplianceRecord(ctx, "merchant-1")
	require.NoError(t, err)
	assert.True(t, record.FilingCompliant)
	assertDecimal(t, "18.20", record.OutstandingBalance)

	paid, err := f.filing.RecordPayment(ctx, result.Remittance.RemittanceID)
	require.NoError(t, err)
	assert.Equal(t, business.RemittanceStatusPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)

	_, err = f.filing.RecordPayment(ctx, result.Remittance.RemittanceID)
	assert.Equal(t, taxerr.CodeInvalidReturnState, taxerr.CodeOf(err))

	record, err = f.store.GetComplianceRecord(ctx, "merchant-1")
	require.NoError(t, err)
	assertDecimal(t, "0", record.OutstandingBalance)
}

func TestFilingService_SubmitDraftDirectly(t *testing.T) {
	ctx := context.Background()
	f := newFilingFixture(t, nil)
	f.record(t, params.CalculateTaxParams{Jurisdiction: "AB", LineItems: []business.LineItem{item("a", "10.00", 1)}}, marchStart)

	draft, err := f.filing.FileReturn(ctx, marchReturn())
	require.NoError(t, err)

	result, err := f.filing.SubmitReturn(ctx, params.SubmitReturnParams{ReturnID: draft.ReturnID, ApprovedBy: "owner"})
	require.NoError(t, err)
	assert.Equal(t, business.ReturnStatusFiled, result.Return.Status)
	assert.Equal(t, "owner", result.Return.ReviewedBy)
}

func TestFilingService_NothingOwedCreatesNoRemittance(t *testing.T) {
	ctx := context.Background()
	f := newFilingFixture(t, nil)
	f.record(t, params.CalculateTaxParams{Jurisdiction: "BC", LineItems: []business.LineItem{item("a", "10.00", 1)},
		Claim: business.ExemptionClaim{StatusCardNumber: activeCard, OnReserveDelivery: true}}, marchStart)

	draft, err := f.filing.FileReturn(ctx, marchReturn())
	require.NoError(t, err)
	assertDecimal(t, "0", draft.NetTaxOwing)
	assert.Equal(t, business.RiskLevelHigh, draft.AuditRisk)

	result, err := f.filing.SubmitReturn(ctx, params.SubmitReturnParams{ReturnID: draft.ReturnID, ApprovedBy: "owner"})
	require.NoError(t, err)
	assert.Nil(t, result.Remittance)

	remittances, err := f.store.ListRemittancesByEntity(ctx, "merchant-1")
	require.NoError(t, err)
	assert.Empty(t, remittances)
}

func TestFilingService_PeriodOverlap(t *testing.T) {
	ctx := context.Background()
	f := newFilingFixture(t, nil)
	f.record(t, params.CalculateTaxParams{Jurisdiction: "AB", LineItems: []business.LineItem{item("a", "10.00", 1)}}, marchStart)

	_, err := f.filing.FileReturn(ctx, marchReturn())
	require.NoError(t, err)

	_, err = f.filing.FileReturn(ctx, marchReturn())
	assert.Equal(t, taxerr.CodePeriodOverlap, taxerr.CodeOf(err))

	_, err = f.filing.FileReturn(ctx, params.FileReturnParams{EntityID: "merchant-1", ReturnType: "quarterly", Period: "2025-Q1"})
	assert.Equal(t, taxerr.CodePeriodOverlap, taxerr.CodeOf(err))

	april, err := f.filing.FileReturn(ctx, params.FileReturnParams{EntityID: "merchant-1", ReturnType: "monthly", Period: "2025-04"})
	require.NoError(t, err)
	assert.Equal(t, 0, april.CalculationCount)
}

func TestFilingService_PeriodTakenConcurrently(t *testing.T) {
	store := mocks.NewMockTaxStoreForTest(t)
	gomock.InOrder(
		store.EXPECT().ListTaxReturnsByEntity(gomock.Any(), "merchant-1").Return(nil, nil),
		store.EXPECT().ListTaxCalculationsForPeriod(gomock.Any(), "merchant-1", marchStart, marchEnd).Return(nil, nil),
		store.EXPECT().CreateTaxReturn(gomock.Any(), gomock.Any()).
			Return(taxerr.PeriodOverlap("period 2025-03 overlaps return %s (2025-03)", uuid.New())),
	)
	filing := services.NewFilingService(services.FilingServiceConfig{
		Store:      store,
		Aggregator: services.NewReturnAggregator(nil, fixedClock),
		Retry:      services.NewStoreRetry(time.Millisecond, nil),
		Now:        fixedClock,
	})

	_, err := filing.FileReturn(context.Background(), marchReturn())
	assert.Equal(t, taxerr.CodePeriodOverlap, taxerr.CodeOf(err))
}

func TestFilingService_FileReturnValidation(t *testing.T) {
	f := newFilingFixture(t, nil)
	_, err := f.filing.FileReturn(context.Background(), params.FileReturnParams{ReturnType: "weekly", Period: ""})
	require.Error(t, err)
	assert.Equal(t, taxerr.CodeInvalidRequest, taxerr.CodeOf(err))
	assert.Len(t, taxerr.FieldsOf(err), 3)

	_, err = f.filing.FileReturn(context.Background(), params.FileReturnParams{EntityID: "merchant-1", ReturnType: "monthly", Period: "March"})
	assert.Equal(t, taxerr.CodeInvalidRequest, taxerr.CodeOf(err))
}

func TestFilingService_Amend(t *testing.T) {
	ctx := context.Background()
	f := newFilingFixture(t, nil)
	original := f.record(t, params.CalculateTaxParams{Jurisdiction: "ON", LineItems: []business.LineItem{item("a", "100.00", 1)}}, marchStart)

	draft, err := f.filing.FileReturn(ctx, marchReturn())
	require.NoError(t, err)

	_, err = f.filing.AmendReturn(ctx, draft.ReturnID)
	assert.Equal(t, taxerr.CodeInvalidReturnState, taxerr.CodeOf(err), "draft returns cannot be amended")

	_, err = f.filing.SubmitReturn(ctx, params.SubmitReturnParams{ReturnID: draft.ReturnID, ApprovedBy: "owner"})
	require.NoError(t, err)

	// A correction filed in April keeps the March tax point.
	f.record(t, params.CalculateTaxParams{Jurisdiction: "ON", LineItems: []business.LineItem{item("a", "300.00", 1)},
		SupersedesID: &original.CalculationID}, original.TaxPointAt)

	amended, err := f.filing.AmendReturn(ctx, draft.ReturnID)
	require.NoError(t, err)
	assert.Equal(t, 2, amended.Version)
	assert.Equal(t, draft.LineageID, amended.LineageID)
	require.NotNil(t, amended.AmendsReturnID)
	assert.Equal(t, draft.ReturnID, *amended.AmendsReturnID)
	assert.Equal(t, business.ReturnStatusDraft, amended.Status)
	assertDecimal(t, "300", amended.TotalSales)
	assertDecimal(t, "39", amended.TotalTaxCollected)

	filed, err := f.filing.GetReturn(ctx, draft.ReturnID)
	require.NoError(t, err)
	assert.Equal(t, business.ReturnStatusFiled, filed.Status)
	assertDecimal(t, "100", filed.TotalSales)

	_, err = f.filing.AmendReturn(ctx, draft.ReturnID)
	assert.Equal(t, taxerr.CodeInvalidReturnState, taxerr.CodeOf(err), "only the latest version can be amended")
}

func TestFilingService_GatewayFailureLeavesReturnUnfiled(t *testing.T) {
	ctx := context.Background()
	gateway := mocks.NewMockFilingGatewayForTest(t)
	gateway.EXPECT().Submit(gomock.Any(), gomock.Any()).Return("", errors.New("authority timeout"))
	f := newFilingFixture(t, gateway)
	f.record(t, params.CalculateTaxParams{Jurisdiction: "AB", LineItems: []business.LineItem{item("a", "10.00", 1)}}, marchStart)

	draft, err := f.filing.FileReturn(ctx, marchReturn())
	require.NoError(t, err)

	_, err = f.filing.SubmitReturn(ctx, params.SubmitReturnParams{ReturnID: draft.ReturnID, ApprovedBy: "owner"})
	assert.Equal(t, taxerr.CodeStoreUnavailable, taxerr.CodeOf(err))

	stored, err := f.filing.GetReturn(ctx, draft.ReturnID)
	require.NoError(t, err)
	assert.Equal(t, business.ReturnStatusDraft, stored.Status)
}

func readyReturn() business.TaxReturn {
	id := uuid.New()
	return business.TaxReturn{
		ReturnID:    id,
		LineageID:   id,
		Version:     1,
		EntityID:    "merchant-1",
		ReturnType:  "monthly",
		Period:      "2025-03",
		StartDate:   marchStart,
		EndDate:     marchEnd,
		NetTaxOwing: dec("10.00"),
		Status:      business.ReturnStatusReady,
		ReviewedBy:  "reviewer",
		DueDate:     marchEnd.AddDate(0, 0, 30),
	}
}

func TestFilingService_ConcurrentFiling(t *testing.T) {
	ctx := context.Background()

	newService := func(store interfaces.TaxStore, gateway interfaces.FilingGateway) *services.FilingService {
		return services.NewFilingService(services.FilingServiceConfig{
			Store:   store,
			Gateway: gateway,
			Retry:   services.NewStoreRetry(time.Millisecond, nil),
			Now:     fixedClock,
		})
	}

	t.Run("lost race reports the stored state", func(t *testing.T) {
		ret := readyReturn()
		filedElsewhere := ret
		filedElsewhere.Status = business.ReturnStatusFiled
		filedElsewhere.ConfirmationNumber = "CN-OTHER"

		store := mocks.NewMockTaxStoreForTest(t)
		gateway := mocks.NewMockFilingGatewayForTest(t)
		gomock.InOrder(
			store.EXPECT().GetTaxReturn(gomock.Any(), ret.ReturnID).Return(ret, nil),
			gateway.EXPECT().Submit(gomock.Any(), gomock.Any()).Return("CN-MINE", nil),
			store.EXPECT().FileTaxReturn(gomock.Any(), gomock.Any(), business.ReturnStatusReady, gomock.Not(gomock.Nil())).Return(db.ErrStaleStatus),
			store.EXPECT().GetTaxReturn(gomock.Any(), ret.ReturnID).Return(filedElsewhere, nil).Times(2),
		)

		_, err := newService(store, gateway).SubmitReturn(ctx, params.SubmitReturnParams{ReturnID: ret.ReturnID, ApprovedBy: "owner"})
		require.Error(t, err)
		assert.Equal(t, taxerr.CodeInvalidReturnState, taxerr.CodeOf(err))
		assert.Contains(t, err.Error(), "filed")
	})

	t.Run("retried write that already committed succeeds", func(t *testing.T) {
		ret := readyReturn()
		var committed business.TaxReturn

		store := mocks.NewMockTaxStoreForTest(t)
		gateway := mocks.NewMockFilingGatewayForTest(t)
		gomock.InOrder(
			store.EXPECT().GetTaxReturn(gomock.Any(), ret.ReturnID).Return(ret, nil),
			gateway.EXPECT().Submit(gomock.Any(), gomock.Any()).Return("CN-MINE", nil),
			store.EXPECT().FileTaxReturn(gomock.Any(), gomock.Any(), business.ReturnStatusReady, gomock.Any()).
				DoAndReturn(func(_ context.Context, r business.TaxReturn, _ business.ReturnStatus, _ *business.Remittance) error {
					committed = r
					return errors.New("connection reset after commit")
				}),
			store.EXPECT().FileTaxReturn(gomock.Any(), gomock.Any(), business.ReturnStatusReady, gomock.Any()).Return(db.ErrStaleStatus),
			store.EXPECT().GetTaxReturn(gomock.Any(), ret.ReturnID).DoAndReturn(func(context.Context, uuid.UUID) (business.TaxReturn, error) {
				return committed, nil
			}),
		)

		result, err := newService(store, gateway).SubmitReturn(ctx, params.SubmitReturnParams{ReturnID: ret.ReturnID, ApprovedBy: "owner"})
		require.NoError(t, err)
		assert.Equal(t, "CN-MINE", result.ConfirmationNumber)
		require.NotNil(t, result.Remittance)
	})
}

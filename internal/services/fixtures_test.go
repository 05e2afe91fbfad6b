package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/unations/tax-engine/internal/db/memory"
	"github.com/unations/tax-engine/internal/logger"
	"github.com/unations/tax-engine/internal/types/business"
)

func init() {
	logger.InitLogger("test")
}

var testNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func item(id, price string, qty uint32) business.LineItem {
	return business.LineItem{ItemID: id, Description: "item " + id, Quantity: qty, UnitPrice: dec(price)}
}

func indigenousItem(id, price string, qty uint32) business.LineItem {
	i := item(id, price, qty)
	i.IsIndigenousProduct = true
	return i
}

const (
	activeCard    = "1234567890"
	suspendedCard = "2222222222"
	expiredCard   = "3333333333"
)

// seededRecords registers one card of each status, band 601 for BC and MB,
// and treaty 6 in SK with GST relief at 50%.
func seededRecords(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.New()
	ctx := context.Background()

	cards := []business.StatusCardRecord{
		{ExemptionID: uuid.New(), CardNumber: activeCard, HolderName: "Mary Bearspaw", Status: business.StatusCardStatusActive,
			ValidFrom: testNow.AddDate(-1, 0, 0), ValidUntil: testNow.AddDate(4, 0, 0)},
		{ExemptionID: uuid.New(), CardNumber: suspendedCard, HolderName: "John Cardinal", Status: business.StatusCardStatusSuspended,
			ValidFrom: testNow.AddDate(-1, 0, 0), ValidUntil: testNow.AddDate(4, 0, 0)},
		{ExemptionID: uuid.New(), CardNumber: expiredCard, HolderName: "Ann Littlechild", Status: business.StatusCardStatusActive,
			ValidFrom: testNow.AddDate(-6, 0, 0), ValidUntil: testNow.AddDate(0, 0, -1)},
	}
	for _, c := range cards {
		_, err := store.CreateStatusCard(ctx, c)
		require.NoError(t, err)
	}

	_, err := store.UpsertBandExemption(ctx, business.BandExemptionRecord{
		BandNumber: "601", BandName: "Test First Nation", Jurisdictions: []string{"BC", "MB"},
		Active: true, ValidFrom: testNow.AddDate(-1, 0, 0),
	})
	require.NoError(t, err)

	_, err = store.UpsertTreatyExemption(ctx, business.TreatyExemptionRecord{
		TreatyNumber: "T6", Jurisdiction: "SK", ExemptTaxTypes: []business.TaxType{business.TaxTypeGST},
		Percentage: dec("50"), Active: true, ValidFrom: testNow.AddDate(-1, 0, 0),
	})
	require.NoError(t, err)
	return store
}

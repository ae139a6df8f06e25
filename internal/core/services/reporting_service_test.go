package services

import (
	"context"
	"testing"
	"time"

	"github.com/ledgerbooks/bookkeeping/internal/apperrors"
	"github.com/ledgerbooks/bookkeeping/internal/core/domain"
	"github.com/ledgerbooks/bookkeeping/internal/core/ports/repositories"
	"github.com/ledgerbooks/bookkeeping/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type reportingMocks struct {
	nominalRepo *MockNominalRepository
	txRepo      *MockTransactionRepository
	matchRepo   *MockMatchRepository
	partyRepo   *MockPartyRepository
	periodRepo  *MockPeriodRepository
}

func newTestReportingService(t *testing.T) (*ReportingService, *reportingMocks) {
	t.Helper()
	m := &reportingMocks{
		nominalRepo: new(MockNominalRepository),
		txRepo:      new(MockTransactionRepository),
		matchRepo:   new(MockMatchRepository),
		partyRepo:   new(MockPartyRepository),
		periodRepo:  new(MockPeriodRepository),
	}
	svc := NewReportingService(m.nominalRepo, m.txRepo, m.matchRepo, m.partyRepo, m.periodRepo)
	return svc, m
}

func TestTrialBalanceSplitsDebitAndCreditTotals(t *testing.T) {
	svc, m := newTestReportingService(t)
	m.periodRepo.On("GetCalendar", mock.Anything).Return(testCalendar(), nil)
	m.nominalRepo.On("TrialBalance", mock.Anything, "202001", "202003", "202001").
		Return([]domain.TrialBalanceRow{
			{NominalID: "n-bank", NominalName: "Bank", Type: domain.NominalBalanceSheet, Total: dec("150"), YTD: dec("150")},
			{NominalID: "n-sales", NominalName: "Sales", Type: domain.NominalProfitAndLoss, Total: dec("-500"), YTD: dec("-500")},
			{NominalID: "n-exp", NominalName: "Expenses", Type: domain.NominalProfitAndLoss, Total: dec("350"), YTD: dec("350")},
		}, nil)

	resp, err := svc.TrialBalance(context.Background(), dto.TrialBalanceRequest{
		FromPeriod: "202001",
		ToPeriod:   "202003",
	})
	require.NoError(t, err)
	require.Len(t, resp.Rows, 3)
	assert.True(t, resp.TotalDebit.Equal(dec("500")))
	assert.True(t, resp.TotalCredit.Equal(dec("-500")))
}

func TestTrialBalanceReversedRangeRejected(t *testing.T) {
	svc, _ := newTestReportingService(t)
	_, err := svc.TrialBalance(context.Background(), dto.TrialBalanceRequest{
		FromPeriod: "202003",
		ToPeriod:   "202001",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAgedBalancesBucketsByAge(t *testing.T) {
	svc, m := newTestReportingService(t)
	asAt := time.Date(2020, 4, 15, 0, 0, 0, 0, time.UTC)
	m.txRepo.On("ListHeaders", mock.Anything, repositories.HeaderFilter{
		Module:      domain.ModulePurchases,
		Outstanding: true,
	}).Return([]domain.TransactionHeader{
		{HeaderID: "h-1", PartyID: "sup-1", Date: time.Date(2020, 4, 1, 0, 0, 0, 0, time.UTC), Due: dec("100")},
		{HeaderID: "h-2", PartyID: "sup-1", Date: time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC), Due: dec("50")},
		{HeaderID: "h-3", PartyID: "sup-1", Date: time.Date(2019, 11, 1, 0, 0, 0, 0, time.UTC), Due: dec("25")},
		// Posted after the report date, ignored.
		{HeaderID: "h-4", PartyID: "sup-1", Date: time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC), Due: dec("999")},
	}, nil)
	m.partyRepo.On("ListSuppliers", mock.Anything).
		Return([]domain.Supplier{{SupplierID: "sup-1", Code: "SUP1", Name: "Paper Co"}}, nil)

	rows, err := svc.AgedBalances(context.Background(), dto.AgedBalancesRequest{
		Module: domain.ModulePurchases,
		AsAt:   asAt,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "Paper Co", row.PartyName)
	assert.True(t, row.Current.Equal(dec("100")))
	assert.True(t, row.OneMonth.Equal(dec("50")))
	assert.True(t, row.Older.Equal(dec("25")))
	assert.True(t, row.Total.Equal(dec("175")))
}

func TestAgedBalancesRejectsNominalLedger(t *testing.T) {
	svc, _ := newTestReportingService(t)
	_, err := svc.AgedBalances(context.Background(), dto.AgedBalancesRequest{
		Module: domain.ModuleNominal,
		AsAt:   time.Date(2020, 4, 15, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

// An invoice fully paid in a later period must still show as outstanding when
// the report runs as of an earlier period.
func TestAgedBalancesAsOfPeriodBacksOutLaterMatches(t *testing.T) {
	svc, m := newTestReportingService(t)
	m.periodRepo.On("GetCalendar", mock.Anything).Return(testCalendar(), nil)
	m.txRepo.On("ListHeaders", mock.Anything, repositories.HeaderFilter{
		Module:   domain.ModulePurchases,
		PeriodTo: "202002",
	}).Return([]domain.TransactionHeader{
		{
			HeaderID: "h-inv", PartyID: "sup-1", Type: domain.TypePurchaseInvoice,
			Period: "202001", Date: time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC),
			Status: domain.StatusCreated,
			Total:  dec("120"), Paid: dec("120"), Due: dec("0"),
		},
	}, nil)
	m.matchRepo.On("ListMatchesAfter", mock.Anything, domain.ModulePurchases, "202002").
		Return([]domain.MatchedHeaders{
			{MatchID: "mh-1", Module: domain.ModulePurchases, MatchedByID: "h-pay", MatchedToID: "h-inv", Value: dec("120"), Period: "202003"},
		}, nil)
	m.partyRepo.On("ListSuppliers", mock.Anything).
		Return([]domain.Supplier{{SupplierID: "sup-1", Code: "SUP1", Name: "Paper Co"}}, nil)

	rows, err := svc.AgedBalances(context.Background(), dto.AgedBalancesRequest{
		Module: domain.ModulePurchases,
		AsAt:   time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC),
		Period: "202002",
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].OneMonth.Equal(dec("120")))
	assert.True(t, rows[0].Total.Equal(dec("120")))
}

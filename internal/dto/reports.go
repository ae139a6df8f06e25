package dto

import (
	"time"

	"github.com/ledgerbooks/bookkeeping/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FinaliseYearRequest runs the year end for one financial year.
type FinaliseYearRequest struct {
	Year int `json:"year" binding:"required"`
}

// RollbackYearRequest undoes the year end for the year and every later one.
type RollbackYearRequest struct {
	Year int `json:"year" binding:"required"`
}

// TrialBalanceRequest aggregates nominal balances over a period range.
type TrialBalanceRequest struct {
	FromPeriod string `form:"from" binding:"required,len=6"`
	ToPeriod   string `form:"to" binding:"required,len=6"`
}

// TrialBalanceResponse is the report plus its control totals, which are zero
// when the ledger is intact.
type TrialBalanceResponse struct {
	Rows        []domain.TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal          `json:"totalDebit"`
	TotalCredit decimal.Decimal          `json:"totalCredit"`
}

// AgedBalancesRequest reports outstanding balances per party, bucketed by
// transaction age at the given date. When Period is set the report is as of
/// that period: allocations matched in later periods are backed out, so a
// transaction paid off since still shows as outstanding then.
type AgedBalancesRequest struct {
	Module domain.Module `form:"module" binding:"required"`
	AsAt   time.Time     `form:"asAt" binding:"required" time_format:"2006-01-02"`
	Period string        `form:"period" binding:"omitempty,len=6"`
}

// AgedBalanceRow is one party's outstanding balance by age bucket.
type AgedBalanceRow struct {
	PartyID   string          `json:"partyID"`
	PartyName string          `json:"partyName"`
	Current   decimal.Decimal `json:"current"`
	OneMonth  decimal.Decimal `json:"oneMonth"`
	TwoMonths decimal.Decimal `json:"twoMonths"`
	Older     decimal.Decimal `json:"older"`
	Total     decimal.Decimal `json:"total"`
}

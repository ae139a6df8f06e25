package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ledgerbooks/bookkeeping/internal/apperrors"
	"github.com/ledgerbooks/bookkeeping/internal/core/domain"
	"github.com/ledgerbooks/bookkeeping/internal/core/ports/repositories"
	"github.com/ledgerbooks/bookkeeping/internal/dto"
	"github.com/shopspring/decimal"
)

// ReportingService produces the trial balance and aged balance reports.
type ReportingService struct {
	nominalRepo repositories.NominalReader
	txRepo      repositories.TransactionReader
	matchRepo   repositories.MatchReader
	partyRepo   repositories.PartyReader
	periodRepo  repositories.PeriodReader
}

// NewReportingService creates a ReportingService.
func NewReportingService(
	nominalRepo repositories.NominalReader,
	txRepo repositories.TransactionReader,
	matchRepo repositories.MatchReader,
	partyRepo repositories.PartyReader,
	periodRepo repositories.PeriodReader,
) *ReportingService {
	return &ReportingService{
		nominalRepo: nominalRepo,
		txRepo:      txRepo,
		matchRepo:   matchRepo,
		partyRepo:   partyRepo,
		periodRepo:  periodRepo,
	}
}

// TrialBalance aggregates nominal balances over a period range. The YTD
// column runs from the first period of the range's closing financial year.
func (s *ReportingService) TrialBalance(ctx context.Context, req dto.TrialBalanceRequest) (*dto.TrialBalanceResponse, error) {
	if req.FromPeriod > req.ToPeriod {
		return nil, fmt.Errorf("the period range is reversed: %w", apperrors.ErrValidation)
	}
	cal, err := s.periodRepo.GetCalendar(ctx)
	if err != nil {
		return nil, err
	}
	to, err := cal.Get(req.ToPeriod)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), apperrors.ErrValidation)
	}
	if _, err := cal.Get(req.FromPeriod); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), apperrors.ErrValidation)
	}
	ytdFrom, err := cal.FirstPeriodOf(to.Year())
	if err != nil {
		return nil, err
	}

	rows, err := s.nominalRepo.TrialBalance(ctx, req.FromPeriod, req.ToPeriod, ytdFrom.FYAndPeriod)
	if err != nil {
		return nil, err
	}
	resp := &dto.TrialBalanceResponse{Rows: rows, TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
	for _, r := range rows {
		if r.Total.IsNegative() {
			resp.TotalCredit = resp.TotalCredit.Add(r.Total)
		} else {
			resp.TotalDebit = resp.TotalDebit.Add(r.Total)
		}
	}
	return resp, nil
}

// AgedBalances buckets each party's outstanding transactions by age at the
// given date: current, one month, two months, older.
func (s *ReportingService) AgedBalances(ctx context.Context, req dto.AgedBalancesRequest) ([]dto.AgedBalanceRow, error) {
	if req.Module != domain.ModulePurchases && req.Module != domain.ModuleSales {
		return nil, fmt.Errorf("aged balances only exist for the purchase and sales ledgers: %w", apperrors.ErrValidation)
	}
	dueBy, headers, err := s.outstandingAt(ctx, req)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string)
	if req.Module == domain.ModulePurchases {
		suppliers, err := s.partyRepo.ListSuppliers(ctx)
		if err != nil {
			return nil, err
		}
		for _, sup := range suppliers {
			names[sup.SupplierID] = sup.Name
		}
	} else {
		customers, err := s.partyRepo.ListCustomers(ctx)
		if err != nil {
			return nil, err
		}
		for _, c := range customers {
			names[c.CustomerID] = c.Name
		}
	}

	byParty := make(map[string]*dto.AgedBalanceRow)
	var order []string
	for i := range headers {
		h := &headers[i]
		if h.Date.After(req.AsAt) {
			continue
		}
		due := dueBy[h.HeaderID]
		if due.IsZero() {
			continue
		}
		row, ok := byParty[h.PartyID]
		if !ok {
			row = &dto.AgedBalanceRow{PartyID: h.PartyID, PartyName: names[h.PartyID]}
			byParty[h.PartyID] = row
			order = append(order, h.PartyID)
		}
		months := monthsBetween(h.Date, req.AsAt)
		switch {
		case months < 1:
			row.Current = row.Current.Add(due)
		case months == 1:
			row.OneMonth = row.OneMonth.Add(due)
		case months == 2:
			row.TwoMonths = row.TwoMonths.Add(due)
		default:
			row.Older = row.Older.Add(due)
		}
		row.Total = row.Total.Add(due)
	}

	out := make([]dto.AgedBalanceRow, 0, len(order))
	for _, id := range order {
		out = append(out, *byParty[id])
	}
	return out, nil
}

// outstandingAt returns the candidate headers and each one's due amount. With
// no period it is simply the currently outstanding set. With a period it
// reconstructs the position as of that period by adding back every allocation
// matched in a later period.
func (s *ReportingService) outstandingAt(ctx context.Context, req dto.AgedBalancesRequest) (map[string]decimal.Decimal, []domain.TransactionHeader, error) {
	dueBy := make(map[string]decimal.Decimal)

	if req.Period == "" {
		headers, err := s.txRepo.ListHeaders(ctx, repositories.HeaderFilter{
			Module:      req.Module,
			Outstanding: true,
		})
		if err != nil {
			return nil, nil, err
		}
		for i := range headers {
			dueBy[headers[i].HeaderID] = headers[i].Due
		}
		return dueBy, headers, nil
	}

	cal, err := s.periodRepo.GetCalendar(ctx)
	if err != nil {
		return nil, nil, err
	}
	if _, err := cal.Get(req.Period); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", err.Error(), apperrors.ErrValidation)
	}
	headers, err := s.txRepo.ListHeaders(ctx, repositories.HeaderFilter{
		Module:   req.Module,
		PeriodTo: req.Period,
	})
	if err != nil {
		return nil, nil, err
	}
	laterMatches, err := s.matchRepo.ListMatchesAfter(ctx, req.Module, req.Period)
	if err != nil {
		return nil, nil, err
	}
	for i := range headers {
		h := &headers[i]
		if h.IsVoid() {
			continue
		}
		due := h.Due
		for _, m := range laterMatches {
			if m.Involves(h.HeaderID) {
				due = due.Add(m.AllocationFor(h.HeaderID))
			}
		}
		dueBy[h.HeaderID] = due
	}
	return dueBy, headers, nil
}

// monthsBetween counts whole calendar months from one date to another.
func monthsBetween(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

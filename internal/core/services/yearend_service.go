package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"github.com/ledgerbooks/bookkeeping/internal/apperrors"
	"github.com/ledgerbooks/bookkeeping/internal/core/domain"
	"github.com/ledgerbooks/bookkeeping/internal/core/ports/repositories"
	"github.com/ledgerbooks/bookkeeping/internal/middleware"
	"github.com/shopspring/decimal"
)

// Year end validation failures.
var (
	ErrNoFollowingYear  = fmt.Errorf("the following financial year must be created before finalising: %w", apperrors.ErrValidation)
	ErrAlreadyFinalised = fmt.Errorf("the financial year is already finalised: %w", apperrors.ErrConflict)
	ErrEarlierYearOpen  = fmt.Errorf("earlier financial years must be finalised first: %w", apperrors.ErrConflict)
)

// YearEndService finalises financial years and rolls finalisations back.
//
// Finalising year Y zeroes the profit and loss into retained earnings and
// carries every balance sheet nominal's balance into the first period of
// Y+1 as one brought forward journal, then advances each module's posting
// period out of the finalised year.
type YearEndService struct {
	periodRepo   repositories.PeriodReader
	nominalRepo  repositories.NominalReader
	yearEndRepo  repositories.YearEndWriter
	settingsRepo repositories.SettingsReader
	accounts     SystemAccounts
}

// NewYearEndService creates a YearEndService.
func NewYearEndService(
	periodRepo repositories.PeriodReader,
	nominalRepo repositories.NominalReader,
	yearEndRepo repositories.YearEndWriter,
	settingsRepo repositories.SettingsReader,
	accounts SystemAccounts,
) *YearEndService {
	return &YearEndService{
		periodRepo:   periodRepo,
		nominalRepo:  nominalRepo,
		yearEndRepo:  yearEndRepo,
		settingsRepo: settingsRepo,
		accounts:     accounts,
	}
}

func (s *YearEndService) resolveNominal(ctx context.Context, name string) (*domain.Nominal, error) {
	n, err := s.nominalRepo.GetNominalByName(ctx, name)
	if err == nil {
		return n, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	n, err = s.nominalRepo.GetNominalByName(ctx, s.accounts.Suspense)
	if err != nil {
		return nil, fmt.Errorf("resolving nominal %q and suspense fallback: %w", name, err)
	}
	return n, nil
}

// Finalise runs the year end for one financial year.
func (s *YearEndService) Finalise(ctx context.Context, year int) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	cal, err := s.periodRepo.GetCalendar(ctx)
	if err != nil {
		return err
	}
	if _, err := cal.Year(year); err != nil {
		return fmt.Errorf("%s: %w", err.Error(), apperrors.ErrNotFound)
	}
	target, err := cal.FirstPeriodOf(year + 1)
	if err != nil {
		return ErrNoFollowingYear
	}
	finalised, err := s.yearEndRepo.HasBroughtForwardIn(ctx, target.FYAndPeriod)
	if err != nil {
		return err
	}
	if finalised {
		return ErrAlreadyFinalised
	}
	if _, err := cal.Year(year - 1); err == nil {
		first, err := cal.FirstPeriodOf(year)
		if err != nil {
			return err
		}
		prevDone, err := s.yearEndRepo.HasBroughtForwardIn(ctx, first.FYAndPeriod)
		if err != nil {
			return err
		}
		if !prevDone {
			return ErrEarlierYearOpen
		}
	}

	balances, err := s.nominalRepo.AggregateBalancesForYear(ctx, year)
	if err != nil {
		return err
	}
	retained, err := s.resolveNominal(ctx, s.accounts.RetainedEarnings)
	if err != nil {
		return err
	}
	suspense, err := s.resolveNominal(ctx, s.accounts.Suspense)
	if err != nil {
		return err
	}

	// profit zeroes into retained earnings; balance sheet balances carry
	// forward as they stand, with retained earnings merged into one row
	profit := decimal.Zero
	carried := make(map[string]decimal.Decimal)
	for _, b := range balances {
		if b.Type == domain.NominalProfitAndLoss {
			profit = profit.Add(b.Total)
			continue
		}
		if !b.Total.IsZero() {
			carried[b.NominalID] = carried[b.NominalID].Add(b.Total)
		}
	}
	carried[retained.NominalID] = carried[retained.NominalID].Add(profit)
	if carried[retained.NominalID].IsZero() {
		delete(carried, retained.NominalID)
	}

	header := &domain.TransactionHeader{
		HeaderID: uuid.NewString(),
		Module:   domain.ModuleNominal,
		Type:     domain.TypeBroughtForward,
		Ref:      fmt.Sprintf("YEAR END %d", year),
		Period:   target.FYAndPeriod,
		Date:     target.MonthStart.AddDate(0, 0, -1),
		Status:   domain.StatusCreated,
	}

	nominalIDs := make([]string, 0, len(carried))
	for id := range carried {
		nominalIDs = append(nominalIDs, id)
	}
	sort.Strings(nominalIDs)

	var lines []domain.TransactionLine
	var rows []domain.NominalTransaction
	for i, id := range nominalIDs {
		value := carried[id]
		line := domain.TransactionLine{
			LineID:      uuid.NewString(),
			HeaderID:    header.HeaderID,
			LineNo:      i + 1,
			Description: fmt.Sprintf("Balance brought forward from %d", year),
			Goods:       value,
			NominalID:   id,
		}
		row := newNominalRow(header, line.LineNo, id, value, domain.FieldGoods)
		line.GoodsPostingID = row.ID
		lines = append(lines, line)
		rows = append(rows, row)
	}
	if len(lines) == 0 {
		// nothing to carry at all still marks the year finalised
		line := domain.TransactionLine{
			LineID:      uuid.NewString(),
			HeaderID:    header.HeaderID,
			LineNo:      1,
			Description: fmt.Sprintf("Balance brought forward from %d", year),
			Goods:       decimal.Zero,
			NominalID:   suspense.NominalID,
		}
		row := newNominalRow(header, 1, suspense.NominalID, decimal.Zero, domain.FieldGoods)
		line.GoodsPostingID = row.ID
		lines = append(lines, line)
		rows = append(rows, row)
	}

	settings, err := s.settingsRepo.GetModuleSettings(ctx)
	if err != nil {
		return err
	}
	last, err := cal.LastPeriodOf(year)
	if err != nil {
		return err
	}
	for _, m := range domain.AllModules {
		if cur := settings.PeriodFor(m); cur != "" && cur <= last.FYAndPeriod {
			settings.SetPeriodFor(m, target.FYAndPeriod)
		}
	}

	batch := &domain.PostingBatch{
		Module:        domain.ModuleNominal,
		Header:        header,
		HeaderIsNew:   true,
		LinesInsert:   lines,
		NominalInsert: rows,
	}
	if err := s.yearEndRepo.SaveCarryForward(ctx, batch, settings); err != nil {
		logger.Error("year end failed", slog.Int("year", year), slog.Any("error", err))
		return err
	}
	logger.Info("financial year finalised",
		slog.Int("year", year),
		slog.String("profit", profit.StringFixed(2)),
		slog.Int("carriedNominals", len(lines)),
	)
	return nil
}

// Rollback undoes the year end for the given year and every later one, so
// finalisations never leave gaps. Rolling back a year that was never
// finalised is a no-op.
func (s *YearEndService) Rollback(ctx context.Context, year int) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	cal, err := s.periodRepo.GetCalendar(ctx)
	if err != nil {
		return err
	}
	if _, err := cal.Year(year); err != nil {
		return fmt.Errorf("%s: %w", err.Error(), apperrors.ErrNotFound)
	}
	target, err := cal.FirstPeriodOf(year + 1)
	if err != nil {
		// no following year means nothing was ever carried forward
		return nil
	}
	finalised, err := s.yearEndRepo.HasBroughtForwardIn(ctx, target.FYAndPeriod)
	if err != nil {
		return err
	}
	if !finalised {
		logger.Info("year end rollback skipped, nothing carried forward", slog.Int("year", year))
		return nil
	}

	if err := s.yearEndRepo.DeleteBroughtForward(ctx, target.FYAndPeriod); err != nil {
		logger.Error("year end rollback failed", slog.Int("year", year), slog.Any("error", err))
		return err
	}
	logger.Info("year end rolled back", slog.Int("year", year))
	return nil
}

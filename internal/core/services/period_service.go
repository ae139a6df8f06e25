package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"github.com/ledgerbooks/bookkeeping/internal/apperrors"
	"github.com/ledgerbooks/bookkeeping/internal/core/domain"
	"github.com/ledgerbooks/bookkeeping/internal/core/ports/repositories"
	"github.com/ledgerbooks/bookkeeping/internal/dto"
	"github.com/ledgerbooks/bookkeeping/internal/middleware"
)

// Financial year validation failures.
var (
	ErrYearExists       = fmt.Errorf("financial year already exists: %w", apperrors.ErrDuplicate)
	ErrYearNotNext      = fmt.Errorf("financial years must be created consecutively: %w", apperrors.ErrValidation)
	ErrFirstMonthNeeded = fmt.Errorf("the first financial year needs a starting month: %w", apperrors.ErrValidation)
)

// PeriodService manages financial years, periods and module settings.
type PeriodService struct {
	periodRepo   repositories.PeriodRepositoryFacade
	settingsRepo repositories.SettingsRepositoryFacade
	yearEndRepo  repositories.YearEndWriter
}

// NewPeriodService creates a PeriodService.
func NewPeriodService(
	periodRepo repositories.PeriodRepositoryFacade,
	settingsRepo repositories.SettingsRepositoryFacade,
	yearEndRepo repositories.YearEndWriter,
) *PeriodService {
	return &PeriodService{
		periodRepo:   periodRepo,
		settingsRepo: settingsRepo,
		yearEndRepo:  yearEndRepo,
	}
}

// CreateFinancialYear creates a year with monthly periods continuing straight
// on from the existing calendar. The very first year also needs its starting
// month, and seeds the module settings with its first period.
func (s *PeriodService) CreateFinancialYear(ctx context.Context, req dto.CreateFinancialYearRequest) (*dto.FinancialYearResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	cal, err := s.periodRepo.GetCalendar(ctx)
	if err != nil {
		return nil, err
	}
	existing := cal.Periods()

	if _, err := cal.Year(req.Year); err == nil {
		return nil, ErrYearExists
	}

	var firstMonth domain.Period
	if len(existing) == 0 {
		if req.FirstMonth == nil {
			return nil, ErrFirstMonthNeeded
		}
	} else {
		firstMonth = existing[len(existing)-1]
		if firstMonth.Year()+1 != req.Year {
			return nil, ErrYearNotNext
		}
	}

	fy := &domain.FinancialYear{
		FinancialYearID: uuid.NewString(),
		Year:            req.Year,
		NumberOfPeriods: req.NumberOfPeriods,
	}
	month := firstMonth.MonthStart.AddDate(0, 1, 0)
	if len(existing) == 0 {
		month = *req.FirstMonth
	}
	periods := make([]domain.Period, 0, req.NumberOfPeriods)
	for i := 1; i <= req.NumberOfPeriods; i++ {
		periods = append(periods, domain.Period{
			PeriodID:        uuid.NewString(),
			FinancialYearID: fy.FinancialYearID,
			Number:          fmt.Sprintf("%02d", i),
			FYAndPeriod:     domain.FYAndPeriodKey(req.Year, i),
			MonthStart:      month,
			MonthEnd:        domain.EndOfMonth(month),
		})
		month = month.AddDate(0, 1, 0)
	}

	if err := s.periodRepo.SaveFinancialYear(ctx, fy, periods); err != nil {
		return nil, err
	}
	logger.Info("financial year created", slog.Int("year", req.Year), slog.Int("periods", req.NumberOfPeriods))

	if len(existing) == 0 {
		settings, err := s.settingsRepo.GetModuleSettings(ctx)
		if err != nil {
			return nil, err
		}
		first := periods[0].FYAndPeriod
		for _, m := range domain.AllModules {
			if settings.PeriodFor(m) == "" {
				settings.SetPeriodFor(m, first)
			}
		}
		if err := s.settingsRepo.UpdateModuleSettings(ctx, settings); err != nil {
			return nil, err
		}
	}

	resp := dto.NewFinancialYearResponse(fy, periods)
	return &resp, nil
}

// AdjustFinancialYears reassigns periods to financial years. Periods keep
// their calendar order; ordinals and keys are renumbered per year. An invalid
// assignment is rejected before anything changes. Touching a finalised year
// rolls its year end back, together with every later year's, so the carry
// forwards are rebuilt against the new boundaries.
func (s *PeriodService) AdjustFinancialYears(ctx context.Context, req dto.AdjustFinancialYearRequest) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	cal, err := s.periodRepo.GetCalendar(ctx)
	if err != nil {
		return err
	}
	periods := cal.Periods()
	byID := make(map[string]*domain.Period, len(periods))
	for i := range periods {
		byID[periods[i].PeriodID] = &periods[i]
	}

	var years []domain.FinancialYear
	lowestTouched := 0
	for _, a := range req.Assignments {
		p, ok := byID[a.PeriodID]
		if !ok {
			return fmt.Errorf("period %s: %w", a.PeriodID, apperrors.ErrNotFound)
		}
		fy, err := cal.Year(a.Year)
		if err != nil {
			return fmt.Errorf("%s: %w", err.Error(), apperrors.ErrValidation)
		}
		if lowestTouched == 0 || a.Year < lowestTouched {
			lowestTouched = a.Year
		}
		if y := p.Year(); y < lowestTouched {
			lowestTouched = y
		}
		p.FinancialYearID = fy.FinancialYearID
	}

	// renumber every year's periods in calendar order
	labels := make(map[string]int)
	for _, fy := range cal.Years() {
		labels[fy.FinancialYearID] = fy.Year
	}
	counts := make(map[string]int)
	for i := range periods {
		p := &periods[i]
		label, ok := labels[p.FinancialYearID]
		if !ok {
			return fmt.Errorf("financial year %s: %w", p.FinancialYearID, apperrors.ErrNotFound)
		}
		counts[p.FinancialYearID]++
		n := counts[p.FinancialYearID]
		p.Number = fmt.Sprintf("%02d", n)
		p.FYAndPeriod = domain.FYAndPeriodKey(label, n)
	}
	// a year left with no periods, or years whose periods are no longer a
	// contiguous block, fail the calendar check
	for id, label := range labels {
		if counts[id] == 0 {
			return fmt.Errorf("FY %d would be left with no periods: %w", label, apperrors.ErrValidation)
		}
		years = append(years, domain.FinancialYear{
			FinancialYearID: id,
			Year:            label,
			NumberOfPeriods: counts[id],
		})
	}
	sort.Slice(years, func(i, j int) bool { return years[i].Year < years[j].Year })

	check := domain.NewCalendar(years, periods)
	if err := check.CheckContiguous(); err != nil {
		return fmt.Errorf("%s: %w", err.Error(), apperrors.ErrValidation)
	}

	// only once the proposed calendar is known to be valid does a finalised
	// boundary get unwound, along with every later year's, forcing
	// re-finalisation afterwards
	if next, err := cal.FirstPeriodOf(lowestTouched + 1); err == nil {
		finalised, err := s.yearEndRepo.HasBroughtForwardIn(ctx, next.FYAndPeriod)
		if err != nil {
			return err
		}
		if finalised {
			if err := s.yearEndRepo.DeleteBroughtForward(ctx, next.FYAndPeriod); err != nil {
				return err
			}
			logger.Info("year end rolled back for boundary adjustment", slog.Int("fromYear", lowestTouched))
		}
	}

	if err := s.periodRepo.ReplacePeriods(ctx, years, periods); err != nil {
		return err
	}
	logger.Info("financial years adjusted", slog.Int("assignments", len(req.Assignments)))
	return nil
}

// GetCalendar returns every financial year with its periods.
func (s *PeriodService) GetCalendar(ctx context.Context) ([]dto.FinancialYearResponse, error) {
	cal, err := s.periodRepo.GetCalendar(ctx)
	if err != nil {
		return nil, err
	}
	byYear := make(map[int][]domain.Period)
	var labels []int
	for _, p := range cal.Periods() {
		if _, ok := byYear[p.Year()]; !ok {
			labels = append(labels, p.Year())
		}
		byYear[p.Year()] = append(byYear[p.Year()], p)
	}
	sort.Ints(labels)
	out := make([]dto.FinancialYearResponse, 0, len(labels))
	for _, label := range labels {
		fy, err := cal.Year(label)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.NewFinancialYearResponse(&fy, byYear[label]))
	}
	return out, nil
}

// GetModuleSettings returns the current posting period per ledger.
func (s *PeriodService) GetModuleSettings(ctx context.Context) (*dto.ModuleSettingsResponse, error) {
	settings, err := s.settingsRepo.GetModuleSettings(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ModuleSettingsResponse{
		CashBookPeriod: settings.CashBookPeriod,
		NominalPeriod:  settings.NominalPeriod,
		PurchasePeriod: settings.PurchasePeriod,
		SalesPeriod:    settings.SalesPeriod,
	}, nil
}

// UpdateModuleSettings sets the current posting period per ledger. Every
// period named must exist.
func (s *PeriodService) UpdateModuleSettings(ctx context.Context, req dto.UpdateModuleSettingsRequest) error {
	cal, err := s.periodRepo.GetCalendar(ctx)
	if err != nil {
		return err
	}
	for _, key := range []string{req.CashBookPeriod, req.NominalPeriod, req.PurchasePeriod, req.SalesPeriod} {
		if _, err := cal.Get(key); err != nil {
			return fmt.Errorf("%s: %w", err.Error(), apperrors.ErrValidation)
		}
	}
	settings, err := s.settingsRepo.GetModuleSettings(ctx)
	if err != nil {
		return err
	}
	settings.CashBookPeriod = req.CashBookPeriod
	settings.NominalPeriod = req.NominalPeriod
	settings.PurchasePeriod = req.PurchasePeriod
	settings.SalesPeriod = req.SalesPeriod
	return s.settingsRepo.UpdateModuleSettings(ctx, settings)
}

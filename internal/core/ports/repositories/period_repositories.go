package repositories

import (
	"context"

	"github.com/ledgerbooks/bookkeeping/internal/core/domain"
)

// PeriodReader defines read operations for financial years and periods.
type PeriodReader interface {
	// GetCalendar loads every financial year and period.
	GetCalendar(ctx context.Context) (*domain.Calendar, error)
	GetFinancialYearByLabel(ctx context.Context, year int) (*domain.FinancialYear, error)
}

// PeriodWriter defines write operations for financial years and periods.
type PeriodWriter interface {
	SaveFinancialYear(ctx context.Context, fy *domain.FinancialYear, periods []domain.Period) error
	// ReplacePeriods rewrites the period set of existing years in one
	// transaction, used when a year's period count is adjusted.
	ReplacePeriods(ctx context.Context, years []domain.FinancialYear, periods []domain.Period) error
}

// PeriodRepositoryFacade combines reader and writer.
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodWriter
}

// SettingsReader defines read operations for module settings.
type SettingsReader interface {
	GetModuleSettings(ctx context.Context) (*domain.ModuleSettings, error)
}

// SettingsWriter defines write operations for module settings.
type SettingsWriter interface {
	UpdateModuleSettings(ctx context.Context, settings *domain.ModuleSettings) error
}

// SettingsRepositoryFacade combines reader and writer.
type SettingsRepositoryFacade interface {
	SettingsReader
	SettingsWriter
}

package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerbooks/bookkeeping/internal/core/domain"
)

// PeriodRepository persists financial years and periods.
type PeriodRepository struct {
	*BaseRepository
}

// NewPeriodRepository creates a PeriodRepository.
func NewPeriodRepository(db *pgxpool.Pool) *PeriodRepository {
	return &PeriodRepository{BaseRepository: NewBaseRepository(db)}
}

// GetCalendar loads every financial year and period.
func (r *PeriodRepository) GetCalendar(ctx context.Context) (*domain.Calendar, error) {
	rows, err := r.db.Query(ctx, `SELECT financial_year_id, year, number_of_periods FROM financial_years`)
	if err != nil {
		return nil, translateError(err, "fetching financial years")
	}
	var years []domain.FinancialYear
	for rows.Next() {
		var fy domain.FinancialYear
		if err := rows.Scan(&fy.FinancialYearID, &fy.Year, &fy.NumberOfPeriods); err != nil {
			rows.Close()
			return nil, translateError(err, "scanning financial year")
		}
		years = append(years, fy)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "fetching financial years")
	}

	rows, err = r.db.Query(ctx, `
		SELECT period_id, financial_year_id, number, fy_and_period, month_start, month_end
		FROM periods ORDER BY fy_and_period`)
	if err != nil {
		return nil, translateError(err, "fetching periods")
	}
	defer rows.Close()
	var periods []domain.Period
	for rows.Next() {
		var p domain.Period
		if err := rows.Scan(&p.PeriodID, &p.FinancialYearID, &p.Number, &p.FYAndPeriod, &p.MonthStart, &p.MonthEnd); err != nil {
			return nil, translateError(err, "scanning period")
		}
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "fetching periods")
	}
	return domain.NewCalendar(years, periods), nil
}

// GetFinancialYearByLabel fetches one financial year.
func (r *PeriodRepository) GetFinancialYearByLabel(ctx context.Context, year int) (*domain.FinancialYear, error) {
	var fy domain.FinancialYear
	err := r.db.QueryRow(ctx, `
		SELECT financial_year_id, year, number_of_periods FROM financial_years WHERE year = $1`, year).
		Scan(&fy.FinancialYearID, &fy.Year, &fy.NumberOfPeriods)
	if err != nil {
		return nil, translateError(err, "fetching financial year")
	}
	return &fy, nil
}

// SaveFinancialYear inserts a year and its periods in one transaction.
func (r *PeriodRepository) SaveFinancialYear(ctx context.Context, fy *domain.FinancialYear, periods []domain.Period) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO financial_years (financial_year_id, year, number_of_periods)
			VALUES ($1, $2, $3)`,
			fy.FinancialYearID, fy.Year, fy.NumberOfPeriods)
		if err != nil {
			return translateError(err, "inserting financial year")
		}
		b := &pgx.Batch{}
		for _, p := range periods {
			b.Queue(`
				INSERT INTO periods (period_id, financial_year_id, number, fy_and_period, month_start, month_end)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				p.PeriodID, p.FinancialYearID, p.Number, p.FYAndPeriod, p.MonthStart, p.MonthEnd)
		}
		if err := tx.SendBatch(ctx, b).Close(); err != nil {
			return translateError(err, "inserting periods")
		}
		return nil
	})
}

// ReplacePeriods rewrites period membership and year sizes after an
// adjustment.
func (r *PeriodRepository) ReplacePeriods(ctx context.Context, years []domain.FinancialYear, periods []domain.Period) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		b := &pgx.Batch{}
		for _, fy := range years {
			b.Queue(`UPDATE financial_years SET number_of_periods = $2 WHERE financial_year_id = $1`,
				fy.FinancialYearID, fy.NumberOfPeriods)
		}
		for _, p := range periods {
			b.Queue(`
				UPDATE periods SET financial_year_id = $2, number = $3, fy_and_period = $4
				WHERE period_id = $1`,
				p.PeriodID, p.FinancialYearID, p.Number, p.FYAndPeriod)
		}
		if err := tx.SendBatch(ctx, b).Close(); err != nil {
			return translateError(err, "replacing periods")
		}
		return nil
	})
}

// SettingsRepository persists the single module settings row.
type SettingsRepository struct {
	*BaseRepository
}

// NewSettingsRepository creates a SettingsRepository.
func NewSettingsRepository(db *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{BaseRepository: NewBaseRepository(db)}
}

// GetModuleSettings fetches the settings row.
func (r *SettingsRepository) GetModuleSettings(ctx context.Context) (*domain.ModuleSettings, error) {
	var s domain.ModuleSettings
	err := r.db.QueryRow(ctx, `
		SELECT cash_book_period, nominal_period, purchase_period, sales_period
		FROM module_settings WHERE id = 1`).
		Scan(&s.CashBookPeriod, &s.NominalPeriod, &s.PurchasePeriod, &s.SalesPeriod)
	if err != nil {
		return nil, translateError(err, "fetching module settings")
	}
	return &s, nil
}

// UpdateModuleSettings updates the settings row.
func (r *SettingsRepository) UpdateModuleSettings(ctx context.Context, settings *domain.ModuleSettings) error {
	_, err := r.db.Exec(ctx, `
		UPDATE module_settings
		SET cash_book_period = $1, nominal_period = $2, purchase_period = $3, sales_period = $4,
		    last_updated_at = now()
		WHERE id = 1`,
		settings.CashBookPeriod, settings.NominalPeriod, settings.PurchasePeriod, settings.SalesPeriod)
	return translateError(err, "updating module settings")
}

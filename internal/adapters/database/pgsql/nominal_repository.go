package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerbooks/bookkeeping/internal/core/domain"
	"github.com/ledgerbooks/bookkeeping/internal/core/ports/repositories"
)

// NominalRepository persists the chart of accounts and answers the aggregate
// queries the year end and reports need.
type NominalRepository struct {
	*BaseRepository
}

// NewNominalRepository creates a NominalRepository.
func NewNominalRepository(db *pgxpool.Pool) *NominalRepository {
	return &NominalRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *NominalRepository) GetNominalByID(ctx context.Context, nominalID string) (*domain.Nominal, error) {
	var n domain.Nominal
	err := r.db.QueryRow(ctx, `
		SELECT nominal_id, name, COALESCE(parent_id, ''), type FROM nominals WHERE nominal_id = $1`, nominalID).
		Scan(&n.NominalID, &n.Name, &n.ParentID, &n.Type)
	if err != nil {
		return nil, translateError(err, "fetching nominal")
	}
	return &n, nil
}

func (r *NominalRepository) GetNominalByName(ctx context.Context, name string) (*domain.Nominal, error) {
	var n domain.Nominal
	err := r.db.QueryRow(ctx, `
		SELECT nominal_id, name, COALESCE(parent_id, ''), type FROM nominals WHERE name = $1`, name).
		Scan(&n.NominalID, &n.Name, &n.ParentID, &n.Type)
	if err != nil {
		return nil, translateError(err, "fetching nominal by name")
	}
	return &n, nil
}

func (r *NominalRepository) ListNominals(ctx context.Context) ([]domain.Nominal, error) {
	rows, err := r.db.Query(ctx, `
		SELECT nominal_id, name, COALESCE(parent_id, ''), type FROM nominals ORDER BY name`)
	if err != nil {
		return nil, translateError(err, "listing nominals")
	}
	defer rows.Close()

	var out []domain.Nominal
	for rows.Next() {
		var n domain.Nominal
		if err := rows.Scan(&n.NominalID, &n.Name, &n.ParentID, &n.Type); err != nil {
			return nil, translateError(err, "scanning nominal")
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *NominalRepository) SaveNominal(ctx context.Context, nominal *domain.Nominal) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO nominals (nominal_id, name, parent_id, type)
		VALUES ($1, $2, NULLIF($3, ''), $4)`,
		nominal.NominalID, nominal.Name, nominal.ParentID, nominal.Type)
	return translateError(err, "inserting nominal")
}

func (r *NominalRepository) UpdateNominal(ctx context.Context, nominal *domain.Nominal) error {
	_, err := r.db.Exec(ctx, `
		UPDATE nominals SET name = $2, parent_id = NULLIF($3, ''), type = $4, last_updated_at = now()
		WHERE nominal_id = $1`,
		nominal.NominalID, nominal.Name, nominal.ParentID, nominal.Type)
	return translateError(err, "updating nominal")
}

// AggregateBalancesForYear sums posting values per nominal over a financial
// year's periods.
func (r *NominalRepository) AggregateBalancesForYear(ctx context.Context, year int) ([]repositories.NominalBalance, error) {
	from := domain.FYAndPeriodKey(year, 0)
	to := domain.FYAndPeriodKey(year, 99)
	rows, err := r.db.Query(ctx, `
		SELECT nt.nominal_id, n.type, COALESCE(SUM(nt.value), 0)
		FROM nominal_transactions nt
		JOIN nominals n ON n.nominal_id = nt.nominal_id
		WHERE nt.period > $1 AND nt.period < $2
		GROUP BY nt.nominal_id, n.type`, from, to)
	if err != nil {
		return nil, translateError(err, "aggregating nominal balances")
	}
	defer rows.Close()

	var out []repositories.NominalBalance
	for rows.Next() {
		var b repositories.NominalBalance
		if err := rows.Scan(&b.NominalID, &b.Type, &b.Total); err != nil {
			return nil, translateError(err, "scanning nominal balance")
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// TrialBalance aggregates per nominal over the period range, with a
// year-to-date column from ytdFromPeriod.
func (r *NominalRepository) TrialBalance(ctx context.Context, fromPeriod, toPeriod, ytdFromPeriod string) ([]domain.TrialBalanceRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT n.nominal_id, n.name, n.type,
		       COALESCE(SUM(nt.value) FILTER (WHERE nt.period >= $1 AND nt.period <= $2), 0) AS total,
		       COALESCE(SUM(nt.value) FILTER (WHERE nt.period >= $3 AND nt.period <= $2), 0) AS ytd
		FROM nominals n
		JOIN nominal_transactions nt ON nt.nominal_id = n.nominal_id
		GROUP BY n.nominal_id, n.name, n.type
		HAVING COALESCE(SUM(nt.value) FILTER (WHERE nt.period >= $1 AND nt.period <= $2), 0) <> 0
		    OR COALESCE(SUM(nt.value) FILTER (WHERE nt.period >= $3 AND nt.period <= $2), 0) <> 0
		ORDER BY n.name`, fromPeriod, toPeriod, ytdFromPeriod)
	if err != nil {
		return nil, translateError(err, "building trial balance")
	}
	defer rows.Close()

	var out []domain.TrialBalanceRow
	for rows.Next() {
		var row domain.TrialBalanceRow
		if err := rows.Scan(&row.NominalID, &row.NominalName, &row.Type, &row.Total, &row.YTD); err != nil {
			return nil, translateError(err, "scanning trial balance row")
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// YearEndRepository persists carry-forward runs.
type YearEndRepository struct {
	*BaseRepository
}

// NewYearEndRepository creates a YearEndRepository.
func NewYearEndRepository(db *pgxpool.Pool) *YearEndRepository {
	return &YearEndRepository{BaseRepository: NewBaseRepository(db)}
}

// SaveCarryForward writes the brought forward header, lines and postings and
// the advanced module settings, all under the nominal ledger's posting lock.
func (r *YearEndRepository) SaveCarryForward(ctx context.Context, batch *domain.PostingBatch, settings *domain.ModuleSettings) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		if err := acquirePostingLock(ctx, tx, string(domain.ModuleNominal)); err != nil {
			return err
		}
		b := &pgx.Batch{}
		queuePostingBatch(b, batch)
		b.Queue(`
			UPDATE module_settings
			SET cash_book_period = $1, nominal_period = $2, purchase_period = $3, sales_period = $4,
			    last_updated_at = now()
			WHERE id = 1`,
			settings.CashBookPeriod, settings.NominalPeriod, settings.PurchasePeriod, settings.SalesPeriod)
		if err := tx.SendBatch(ctx, b).Close(); err != nil {
			return translateError(err, "saving carry forward")
		}
		return nil
	})
}

// DeleteBroughtForward removes brought forward headers and their rows in
// every period at or after fromPeriod. Safe to run repeatedly.
func (r *YearEndRepository) DeleteBroughtForward(ctx context.Context, fromPeriod string) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		if err := acquirePostingLock(ctx, tx, string(domain.ModuleNominal)); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `
			DELETE FROM nominal_transactions
			WHERE module = $1 AND type = $2 AND period >= $3`,
			domain.ModuleNominal, domain.TypeBroughtForward, fromPeriod)
		if err != nil {
			return translateError(err, "deleting brought forward postings")
		}
		_, err = tx.Exec(ctx, `
			DELETE FROM transaction_lines
			WHERE header_id IN (
				SELECT header_id FROM transaction_headers
				WHERE module = $1 AND type = $2 AND period >= $3)`,
			domain.ModuleNominal, domain.TypeBroughtForward, fromPeriod)
		if err != nil {
			return translateError(err, "deleting brought forward lines")
		}
		_, err = tx.Exec(ctx, `
			DELETE FROM transaction_headers
			WHERE module = $1 AND type = $2 AND period >= $3`,
			domain.ModuleNominal, domain.TypeBroughtForward, fromPeriod)
		if err != nil {
			return translateError(err, "deleting brought forward headers")
		}
		return nil
	})
}

// HasBroughtForwardIn reports whether any brought forward posting exists in
// the period.
func (r *YearEndRepository) HasBroughtForwardIn(ctx context.Context, fyAndPeriod string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM transaction_headers
			WHERE module = $1 AND type = $2 AND period = $3)`,
		domain.ModuleNominal, domain.TypeBroughtForward, fyAndPeriod).Scan(&exists)
	if err != nil {
		return false, translateError(err, "checking brought forward")
	}
	return exists, nil
}

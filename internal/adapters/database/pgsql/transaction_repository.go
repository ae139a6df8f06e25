package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerbooks/bookkeeping/internal/core/domain"
	"github.com/ledgerbooks/bookkeeping/internal/core/ports/repositories"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var postingBatchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bookkeeping_posting_batches_total",
		Help: "Posting batches applied, by ledger module.",
	},
	[]string{"module"},
)

// TransactionRepository persists headers, lines, postings and matches.
type TransactionRepository struct {
	*BaseRepository
}

// NewTransactionRepository creates a TransactionRepository.
func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{BaseRepository: NewBaseRepository(db)}
}

const headerColumns = `header_id, module, type, ref, period, date, due_date, status,
	goods, vat, total, paid, due, COALESCE(cash_book_id, ''), party_id, created_at, last_updated_at`

func scanHeader(row pgx.Row) (*domain.TransactionHeader, error) {
	var h domain.TransactionHeader
	err := row.Scan(
		&h.HeaderID, &h.Module, &h.Type, &h.Ref, &h.Period, &h.Date, &h.DueDate, &h.Status,
		&h.Goods, &h.Vat, &h.Total, &h.Paid, &h.Due, &h.CashBookID, &h.PartyID,
		&h.CreatedAt, &h.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// GetHeaderByID fetches one header.
func (r *TransactionRepository) GetHeaderByID(ctx context.Context, module domain.Module, headerID string) (*domain.TransactionHeader, error) {
	query := fmt.Sprintf(`SELECT %s FROM transaction_headers WHERE module = $1 AND header_id = $2`, headerColumns)
	h, err := scanHeader(r.db.QueryRow(ctx, query, module, headerID))
	if err != nil {
		return nil, translateError(err, "fetching transaction header")
	}
	return h, nil
}

// GetHeadersByIDs fetches a set of headers in one round trip.
func (r *TransactionRepository) GetHeadersByIDs(ctx context.Context, module domain.Module, headerIDs []string) ([]domain.TransactionHeader, error) {
	query := fmt.Sprintf(`SELECT %s FROM transaction_headers WHERE module = $1 AND header_id = ANY($2)`, headerColumns)
	rows, err := r.db.Query(ctx, query, module, headerIDs)
	if err != nil {
		return nil, translateError(err, "fetching transaction headers")
	}
	defer rows.Close()

	var out []domain.TransactionHeader
	for rows.Next() {
		h, err := scanHeader(rows)
		if err != nil {
			return nil, translateError(err, "scanning transaction header")
		}
		out = append(out, *h)
	}
	return out, rows.Err()
}

// ListHeaders fetches headers matching the filter, newest first.
func (r *TransactionRepository) ListHeaders(ctx context.Context, filter repositories.HeaderFilter) ([]domain.TransactionHeader, error) {
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	add("module = $%d", filter.Module)
	if len(filter.Types) > 0 {
		add("type = ANY($%d)", filter.Types)
	}
	if filter.PartyID != "" {
		add("party_id = $%d", filter.PartyID)
	}
	if filter.Period != "" {
		add("period = $%d", filter.Period)
	}
	if filter.PeriodTo != "" {
		add("period <= $%d", filter.PeriodTo)
	}
	if filter.Outstanding {
		conds = append(conds, "due <> 0", "status = 'c'")
	}
	query := fmt.Sprintf(`SELECT %s FROM transaction_headers WHERE %s ORDER BY date DESC, ref DESC`,
		headerColumns, strings.Join(conds, " AND "))
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filter.Limit, filter.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "listing transaction headers")
	}
	defer rows.Close()

	var out []domain.TransactionHeader
	for rows.Next() {
		h, err := scanHeader(rows)
		if err != nil {
			return nil, translateError(err, "scanning transaction header")
		}
		out = append(out, *h)
	}
	return out, rows.Err()
}

// GetLinesForHeader fetches a header's lines in line number order.
func (r *TransactionRepository) GetLinesForHeader(ctx context.Context, headerID string) ([]domain.TransactionLine, error) {
	rows, err := r.db.Query(ctx, `
		SELECT line_id, header_id, line_no, description, goods, vat,
		       COALESCE(nominal_id, ''), COALESCE(vat_code_id, ''),
		       goods_posting_id, vat_posting_id, total_posting_id
		FROM transaction_lines WHERE header_id = $1 ORDER BY line_no`, headerID)
	if err != nil {
		return nil, translateError(err, "fetching transaction lines")
	}
	defer rows.Close()

	var out []domain.TransactionLine
	for rows.Next() {
		var l domain.TransactionLine
		if err := rows.Scan(
			&l.LineID, &l.HeaderID, &l.LineNo, &l.Description, &l.Goods, &l.Vat,
			&l.NominalID, &l.VatCodeID, &l.GoodsPostingID, &l.VatPostingID, &l.TotalPostingID,
		); err != nil {
			return nil, translateError(err, "scanning transaction line")
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// GetNominalTransactions fetches a header's nominal posting rows.
func (r *TransactionRepository) GetNominalTransactions(ctx context.Context, module domain.Module, headerID string) ([]domain.NominalTransaction, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, module, header_id, line_no, nominal_id, value, ref, period, date, type, field
		FROM nominal_transactions WHERE module = $1 AND header_id = $2 ORDER BY line_no, field`,
		module, headerID)
	if err != nil {
		return nil, translateError(err, "fetching nominal transactions")
	}
	defer rows.Close()

	var out []domain.NominalTransaction
	for rows.Next() {
		var n domain.NominalTransaction
		if err := rows.Scan(
			&n.ID, &n.Module, &n.HeaderID, &n.LineNo, &n.NominalID, &n.Value,
			&n.Ref, &n.Period, &n.Date, &n.Type, &n.Field,
		); err != nil {
			return nil, translateError(err, "scanning nominal transaction")
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// GetVatTransactions fetches a header's VAT register rows.
func (r *TransactionRepository) GetVatTransactions(ctx context.Context, module domain.Module, headerID string) ([]domain.VatTransaction, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, module, header_id, line_no, vat_code_id, code, rate, goods, vat, ref, period, date, type
		FROM vat_transactions WHERE module = $1 AND header_id = $2 ORDER BY line_no`,
		module, headerID)
	if err != nil {
		return nil, translateError(err, "fetching vat transactions")
	}
	defer rows.Close()

	var out []domain.VatTransaction
	for rows.Next() {
		var v domain.VatTransaction
		if err := rows.Scan(
			&v.ID, &v.Module, &v.HeaderID, &v.LineNo, &v.VatCodeID, &v.Code, &v.Rate,
			&v.Goods, &v.Vat, &v.Ref, &v.Period, &v.Date, &v.Type,
		); err != nil {
			return nil, translateError(err, "scanning vat transaction")
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// GetCashBookTransactions fetches a header's cash book register rows.
func (r *TransactionRepository) GetCashBookTransactions(ctx context.Context, module domain.Module, headerID string) ([]domain.CashBookTransaction, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, module, header_id, line_no, cash_book_id, value, ref, period, date, type
		FROM cash_book_transactions WHERE module = $1 AND header_id = $2 ORDER BY line_no`,
		module, headerID)
	if err != nil {
		return nil, translateError(err, "fetching cash book transactions")
	}
	defer rows.Close()

	var out []domain.CashBookTransaction
	for rows.Next() {
		var c domain.CashBookTransaction
		if err := rows.Scan(
			&c.ID, &c.Module, &c.HeaderID, &c.LineNo, &c.CashBookID, &c.Value,
			&c.Ref, &c.Period, &c.Date, &c.Type,
		); err != nil {
			return nil, translateError(err, "scanning cash book transaction")
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SaveBatch applies one posting batch atomically. It opens a transaction,
// takes the module's posting lock, then queues every change on a pgx batch.
func (r *TransactionRepository) SaveBatch(ctx context.Context, batch *domain.PostingBatch) error {
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		if err := acquirePostingLock(ctx, tx, string(batch.Module)); err != nil {
			return err
		}
		b := &pgx.Batch{}
		queuePostingBatch(b, batch)
		if err := tx.SendBatch(ctx, b).Close(); err != nil {
			return translateError(err, "applying posting batch")
		}
		return nil
	})
	if err != nil {
		return err
	}
	postingBatchesTotal.WithLabelValues(string(batch.Module)).Inc()
	return nil
}

// queuePostingBatch queues every row change in a deterministic order:
// deletes first, then header upserts, then inserts.
func queuePostingBatch(b *pgx.Batch, batch *domain.PostingBatch) {
	for _, id := range batch.MatchesDelete {
		b.Queue(`DELETE FROM matched_headers WHERE match_id = $1`, id)
	}
	for _, id := range batch.NominalDelete {
		b.Queue(`DELETE FROM nominal_transactions WHERE id = $1`, id)
	}
	for _, id := range batch.VatDelete {
		b.Queue(`DELETE FROM vat_transactions WHERE id = $1`, id)
	}
	for _, id := range batch.CashBookDelete {
		b.Queue(`DELETE FROM cash_book_transactions WHERE id = $1`, id)
	}
	for _, id := range batch.LinesDelete {
		b.Queue(`DELETE FROM transaction_lines WHERE line_id = $1`, id)
	}

	if h := batch.Header; h != nil {
		if batch.HeaderIsNew {
			// empty cash book ids become NULL so the FK holds
			b.Queue(`
				INSERT INTO transaction_headers
					(header_id, module, type, ref, period, date, due_date, status,
					 goods, vat, total, paid, due, cash_book_id, party_id)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NULLIF($14, ''), $15)`,
				h.HeaderID, h.Module, h.Type, h.Ref, h.Period, h.Date, h.DueDate, h.Status,
				h.Goods, h.Vat, h.Total, h.Paid, h.Due, h.CashBookID, h.PartyID)
		} else {
			queueHeaderUpdate(b, h)
		}
	}
	for i := range batch.HeaderUpdate {
		queueHeaderUpdate(b, &batch.HeaderUpdate[i])
	}

	for _, l := range batch.LinesInsert {
		b.Queue(`
			INSERT INTO transaction_lines
				(line_id, header_id, line_no, description, goods, vat, nominal_id, vat_code_id,
				 goods_posting_id, vat_posting_id, total_posting_id)
			VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), $9, $10, $11)`,
			l.LineID, l.HeaderID, l.LineNo, l.Description, l.Goods, l.Vat, l.NominalID, l.VatCodeID,
			l.GoodsPostingID, l.VatPostingID, l.TotalPostingID)
	}
	for _, l := range batch.LinesUpdate {
		b.Queue(`
			UPDATE transaction_lines
			SET line_no = $2, description = $3, goods = $4, vat = $5, nominal_id = NULLIF($6, ''),
			    vat_code_id = NULLIF($7, ''), goods_posting_id = $8, vat_posting_id = $9,
			    total_posting_id = $10, last_updated_at = now()
			WHERE line_id = $1`,
			l.LineID, l.LineNo, l.Description, l.Goods, l.Vat, l.NominalID, l.VatCodeID,
			l.GoodsPostingID, l.VatPostingID, l.TotalPostingID)
	}
	for _, n := range batch.NominalInsert {
		b.Queue(`
			INSERT INTO nominal_transactions
				(id, module, header_id, line_no, nominal_id, value, ref, period, date, type, field)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			n.ID, n.Module, n.HeaderID, n.LineNo, n.NominalID, n.Value, n.Ref, n.Period, n.Date, n.Type, n.Field)
	}
	for _, v := range batch.VatInsert {
		b.Queue(`
			INSERT INTO vat_transactions
				(id, module, header_id, line_no, vat_code_id, code, rate, goods, vat, ref, period, date, type)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			v.ID, v.Module, v.HeaderID, v.LineNo, v.VatCodeID, v.Code, v.Rate, v.Goods, v.Vat,
			v.Ref, v.Period, v.Date, v.Type)
	}
	for _, c := range batch.CashBookInsert {
		b.Queue(`
			INSERT INTO cash_book_transactions
				(id, module, header_id, line_no, cash_book_id, value, ref, period, date, type)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			c.ID, c.Module, c.HeaderID, c.LineNo, c.CashBookID, c.Value, c.Ref, c.Period, c.Date, c.Type)
	}
	for _, m := range batch.MatchesInsert {
		b.Queue(`
			INSERT INTO matched_headers (match_id, module, matched_by_id, matched_to_id, value, period)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			m.MatchID, m.Module, m.MatchedByID, m.MatchedToID, m.Value, m.Period)
	}
	for _, m := range batch.MatchesUpdate {
		b.Queue(`UPDATE matched_headers SET value = $2, period = $3, last_updated_at = now() WHERE match_id = $1`,
			m.MatchID, m.Value, m.Period)
	}
}

func queueHeaderUpdate(b *pgx.Batch, h *domain.TransactionHeader) {
	b.Queue(`
		UPDATE transaction_headers
		SET ref = $2, period = $3, date = $4, due_date = $5, status = $6,
		    goods = $7, vat = $8, total = $9, paid = $10, due = $11,
		    cash_book_id = NULLIF($12, ''), party_id = $13, last_updated_at = now()
		WHERE header_id = $1`,
		h.HeaderID, h.Ref, h.Period, h.Date, h.DueDate, h.Status,
		h.Goods, h.Vat, h.Total, h.Paid, h.Due, h.CashBookID, h.PartyID)
}

// MatchRepository reads header match rows.
type MatchRepository struct {
	*BaseRepository
}

// NewMatchRepository creates a MatchRepository.
func NewMatchRepository(db *pgxpool.Pool) *MatchRepository {
	return &MatchRepository{BaseRepository: NewBaseRepository(db)}
}

const matchColumns = `match_id, module, matched_by_id, matched_to_id, value, period`

func (r *MatchRepository) scanMatches(rows pgx.Rows) ([]domain.MatchedHeaders, error) {
	defer rows.Close()
	var out []domain.MatchedHeaders
	for rows.Next() {
		var m domain.MatchedHeaders
		if err := rows.Scan(&m.MatchID, &m.Module, &m.MatchedByID, &m.MatchedToID, &m.Value, &m.Period); err != nil {
			return nil, translateError(err, "scanning match")
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetMatchesForHeader fetches every match a header is party to.
func (r *MatchRepository) GetMatchesForHeader(ctx context.Context, module domain.Module, headerID string) ([]domain.MatchedHeaders, error) {
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM matched_headers
		WHERE module = $1 AND (matched_by_id = $2 OR matched_to_id = $2)`, matchColumns),
		module, headerID)
	if err != nil {
		return nil, translateError(err, "fetching matches")
	}
	return r.scanMatches(rows)
}

// ListMatchesAfter fetches every match in the module allocated after the
// period.
func (r *MatchRepository) ListMatchesAfter(ctx context.Context, module domain.Module, fyAndPeriod string) ([]domain.MatchedHeaders, error) {
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM matched_headers WHERE module = $1 AND period > $2`, matchColumns),
		module, fyAndPeriod)
	if err != nil {
		return nil, translateError(err, "fetching matches")
	}
	return r.scanMatches(rows)
}

// GetMatchesBetween fetches the matches between a header and a set of
// counters.
func (r *MatchRepository) GetMatchesBetween(ctx context.Context, module domain.Module, headerID string, counterIDs []string) ([]domain.MatchedHeaders, error) {
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM matched_headers
		WHERE module = $1
		  AND ((matched_by_id = $2 AND matched_to_id = ANY($3))
		    OR (matched_to_id = $2 AND matched_by_id = ANY($3)))`, matchColumns),
		module, headerID, counterIDs)
	if err != nil {
		return nil, translateError(err, "fetching matches")
	}
	return r.scanMatches(rows)
}

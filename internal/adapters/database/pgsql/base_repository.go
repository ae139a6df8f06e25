package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerbooks/bookkeeping/internal/apperrors"
)

// BaseRepository provides the pgx pool and shared helpers to every
// repository.
type BaseRepository struct {
	db *pgxpool.Pool
}

// NewBaseRepository creates a BaseRepository.
func NewBaseRepository(db *pgxpool.Pool) *BaseRepository {
	return &BaseRepository{db: db}
}

// translateError maps database errors onto the application's sentinel
// errors.
func translateError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, apperrors.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%s: %w", what, apperrors.ErrDuplicate)
		case "23503":
			return fmt.Errorf("%s: %w", what, apperrors.ErrValidation)
		}
	}
	return fmt.Errorf("%s: %w", what, err)
}

// withTx runs fn inside a transaction, committing on success and rolling
// back on error.
func (r *BaseRepository) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// acquirePostingLock takes the module's sentinel row lock, serialising every
// posting into the same ledger until the transaction ends.
func acquirePostingLock(ctx context.Context, tx pgx.Tx, module string) error {
	var m string
	err := tx.QueryRow(ctx, `SELECT module FROM posting_locks WHERE module = $1 FOR UPDATE`, module).Scan(&m)
	if err != nil {
		return translateError(err, "acquiring posting lock")
	}
	return nil
}

package repositories

import (
	"context"

	"github.com/ledgerbooks/bookkeeping/internal/core/domain"
	"github.com/shopspring/decimal"
)

// NominalBalance is one nominal's aggregate posting value over a year.
type NominalBalance struct {
	NominalID string
	Type      domain.NominalType
	Total     decimal.Decimal
}

// NominalReader defines read operations for the chart of accounts.
type NominalReader interface {
	GetNominalByID(ctx context.Context, nominalID string) (*domain.Nominal, error)
	GetNominalByName(ctx context.Context, name string) (*domain.Nominal, error)
	ListNominals(ctx context.Context) ([]domain.Nominal, error)
	// AggregateBalancesForYear sums nominal transaction values per nominal
	// over every period of the financial year.
	AggregateBalancesForYear(ctx context.Context, year int) ([]NominalBalance, error)
	// TrialBalance aggregates per nominal over a period range, with a
	// year-to-date column from the year's first period.
	TrialBalance(ctx context.Context, fromPeriod, toPeriod, ytdFromPeriod string) ([]domain.TrialBalanceRow, error)
}

// NominalWriter defines write operations for the chart of accounts.
type NominalWriter interface {
	SaveNominal(ctx context.Context, nominal *domain.Nominal) error
	UpdateNominal(ctx context.Context, nominal *domain.Nominal) error
}

// NominalRepositoryFacade combines reader and writer.
type NominalRepositoryFacade interface {
	NominalReader
	NominalWriter
}

// YearEndWriter persists carry-forward runs. Both operations span every row
// they touch in a single transaction under the nominal ledger's posting lock.
type YearEndWriter interface {
	// SaveCarryForward writes the synthetic brought forward header, its
	// lines and postings, and the advanced module settings.
	SaveCarryForward(ctx context.Context, batch *domain.PostingBatch, settings *domain.ModuleSettings) error
	// DeleteBroughtForward removes brought forward headers, lines and
	// postings in every period at or after the given one. Idempotent.
	DeleteBroughtForward(ctx context.Context, fromPeriod string) error
	// HasBroughtForwardIn reports whether any brought forward posting
	// exists in the given period, which marks the prior year finalised.
	HasBroughtForwardIn(ctx context.Context, fyAndPeriod string) (bool, error)
}

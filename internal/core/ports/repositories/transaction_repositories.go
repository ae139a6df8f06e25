package repositories

import (
	"context"

	"github.com/ledgerbooks/bookkeeping/internal/core/domain"
)

// HeaderFilter narrows header listings.
type HeaderFilter struct {
	Module  domain.Module
	Types   []domain.TransactionType
	PartyID string
	Period  string
	// PeriodTo keeps only headers posted in or before the given period.
	PeriodTo string
	// Outstanding keeps only headers with a non-zero due amount.
	Outstanding bool
	Limit       int
	Offset      int
}

// TransactionReader defines read operations for ledger transactions.
type TransactionReader interface {
	GetHeaderByID(ctx context.Context, module domain.Module, headerID string) (*domain.TransactionHeader, error)
	GetHeadersByIDs(ctx context.Context, module domain.Module, headerIDs []string) ([]domain.TransactionHeader, error)
	ListHeaders(ctx context.Context, filter HeaderFilter) ([]domain.TransactionHeader, error)
	GetLinesForHeader(ctx context.Context, headerID string) ([]domain.TransactionLine, error)
	GetNominalTransactions(ctx context.Context, module domain.Module, headerID string) ([]domain.NominalTransaction, error)
	GetVatTransactions(ctx context.Context, module domain.Module, headerID string) ([]domain.VatTransaction, error)
	GetCashBookTransactions(ctx context.Context, module domain.Module, headerID string) ([]domain.CashBookTransaction, error)
}

// TransactionWriter applies posting batches. SaveBatch must run in a single
// database transaction that first acquires the module's posting lock, so
// concurrent posts into the same ledger serialise.
type TransactionWriter interface {
	SaveBatch(ctx context.Context, batch *domain.PostingBatch) error
}

// TransactionRepositoryFacade combines reader and writer.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// MatchReader defines read operations for header matching.
type MatchReader interface {
	GetMatchesForHeader(ctx context.Context, module domain.Module, headerID string) ([]domain.MatchedHeaders, error)
	GetMatchesBetween(ctx context.Context, module domain.Module, headerID string, counterIDs []string) ([]domain.MatchedHeaders, error)
	// ListMatchesAfter fetches every match in the module allocated in a
	// period after the given one.
	ListMatchesAfter(ctx context.Context, module domain.Module, fyAndPeriod string) ([]domain.MatchedHeaders, error)
}

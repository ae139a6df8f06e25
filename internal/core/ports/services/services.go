package services

import (
	"context"

	"github.com/ledgerbooks/bookkeeping/internal/core/domain"
	"github.com/ledgerbooks/bookkeeping/internal/core/ports/repositories"
	"github.com/ledgerbooks/bookkeeping/internal/dto"
)

// TransactionService creates, edits and voids ledger transactions, posting
// their nominal, VAT and cash book rows and applying match allocations.
type TransactionService interface {
	Create(ctx context.Context, req dto.CreateTransactionRequest) (*dto.TransactionResponse, error)
	Edit(ctx context.Context, module domain.Module, headerID string, req dto.EditTransactionRequest) (*dto.TransactionResponse, error)
	Void(ctx context.Context, module domain.Module, headerID string) error
	Get(ctx context.Context, module domain.Module, headerID string) (*dto.TransactionResponse, error)
	List(ctx context.Context, filter repositories.HeaderFilter) ([]dto.TransactionResponse, error)
}

// PeriodService manages financial years and the global period calendar.
type PeriodService interface {
	CreateFinancialYear(ctx context.Context, req dto.CreateFinancialYearRequest) (*dto.FinancialYearResponse, error)
	AdjustFinancialYears(ctx context.Context, req dto.AdjustFinancialYearRequest) error
	GetCalendar(ctx context.Context) ([]dto.FinancialYearResponse, error)
	GetModuleSettings(ctx context.Context) (*dto.ModuleSettingsResponse, error)
	UpdateModuleSettings(ctx context.Context, req dto.UpdateModuleSettingsRequest) error
}

// YearEndService finalises financial years and rolls finalisations back.
type YearEndService interface {
	Finalise(ctx context.Context, year int) error
	Rollback(ctx context.Context, year int) error
}

// ReportingService produces ledger reports.
type ReportingService interface {
	TrialBalance(ctx context.Context, req dto.TrialBalanceRequest) (*dto.TrialBalanceResponse, error)
	AgedBalances(ctx context.Context, req dto.AgedBalancesRequest) ([]dto.AgedBalanceRow, error)
}

// ServiceContainer bundles the application services for route registration.
type ServiceContainer struct {
	Transaction TransactionService
	Period      PeriodService
	YearEnd     YearEndService
	Reporting   ReportingService
	Reference   ReferenceService
}

// ReferenceService manages the chart of accounts and other reference data.
type ReferenceService interface {
	CreateNominal(ctx context.Context, req dto.CreateNominalRequest) (*domain.Nominal, error)
	ListNominals(ctx context.Context) ([]domain.Nominal, error)
	CreateVatCode(ctx context.Context, req dto.CreateVatCodeRequest) (*domain.VatCode, error)
	ListVatCodes(ctx context.Context) ([]domain.VatCode, error)
	CreateCashBook(ctx context.Context, req dto.CreateCashBookRequest) (*domain.CashBook, error)
	ListCashBooks(ctx context.Context) ([]domain.CashBook, error)
	CreateSupplier(ctx context.Context, req dto.CreatePartyRequest) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context) ([]domain.Supplier, error)
	CreateCustomer(ctx context.Context, req dto.CreatePartyRequest) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
}

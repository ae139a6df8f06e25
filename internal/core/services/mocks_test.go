package services

import (
	"context"

	"github.com/ledgerbooks/bookkeeping/internal/core/domain"
	"github.com/ledgerbooks/bookkeeping/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) GetHeaderByID(ctx context.Context, module domain.Module, headerID string) (*domain.TransactionHeader, error) {
	args := m.Called(ctx, module, headerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionHeader), args.Error(1)
}

func (m *MockTransactionRepository) GetHeadersByIDs(ctx context.Context, module domain.Module, headerIDs []string) ([]domain.TransactionHeader, error) {
	args := m.Called(ctx, module, headerIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionHeader), args.Error(1)
}

func (m *MockTransactionRepository) ListHeaders(ctx context.Context, filter repositories.HeaderFilter) ([]domain.TransactionHeader, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionHeader), args.Error(1)
}

func (m *MockTransactionRepository) GetLinesForHeader(ctx context.Context, headerID string) ([]domain.TransactionLine, error) {
	args := m.Called(ctx, headerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionLine), args.Error(1)
}

func (m *MockTransactionRepository) GetNominalTransactions(ctx context.Context, module domain.Module, headerID string) ([]domain.NominalTransaction, error) {
	args := m.Called(ctx, module, headerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NominalTransaction), args.Error(1)
}

func (m *MockTransactionRepository) GetVatTransactions(ctx context.Context, module domain.Module, headerID string) ([]domain.VatTransaction, error) {
	args := m.Called(ctx, module, headerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VatTransaction), args.Error(1)
}

func (m *MockTransactionRepository) GetCashBookTransactions(ctx context.Context, module domain.Module, headerID string) ([]domain.CashBookTransaction, error) {
	args := m.Called(ctx, module, headerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashBookTransaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveBatch(ctx context.Context, batch *domain.PostingBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

type MockMatchRepository struct {
	mock.Mock
}

func (m *MockMatchRepository) GetMatchesForHeader(ctx context.Context, module domain.Module, headerID string) ([]domain.MatchedHeaders, error) {
	args := m.Called(ctx, module, headerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MatchedHeaders), args.Error(1)
}

func (m *MockMatchRepository) GetMatchesBetween(ctx context.Context, module domain.Module, headerID string, counterIDs []string) ([]domain.MatchedHeaders, error) {
	args := m.Called(ctx, module, headerID, counterIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MatchedHeaders), args.Error(1)
}

func (m *MockMatchRepository) ListMatchesAfter(ctx context.Context, module domain.Module, fyAndPeriod string) ([]domain.MatchedHeaders, error) {
	args := m.Called(ctx, module, fyAndPeriod)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MatchedHeaders), args.Error(1)
}

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) RecordEvent(ctx context.Context, event domain.AuditEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockNominalRepository struct {
	mock.Mock
}

func (m *MockNominalRepository) GetNominalByID(ctx context.Context, nominalID string) (*domain.Nominal, error) {
	args := m.Called(ctx, nominalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Nominal), args.Error(1)
}

func (m *MockNominalRepository) GetNominalByName(ctx context.Context, name string) (*domain.Nominal, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Nominal), args.Error(1)
}

func (m *MockNominalRepository) ListNominals(ctx context.Context) ([]domain.Nominal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Nominal), args.Error(1)
}

func (m *MockNominalRepository) AggregateBalancesForYear(ctx context.Context, year int) ([]repositories.NominalBalance, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.NominalBalance), args.Error(1)
}

func (m *MockNominalRepository) TrialBalance(ctx context.Context, fromPeriod, toPeriod, ytdFromPeriod string) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, fromPeriod, toPeriod, ytdFromPeriod)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

func (m *MockNominalRepository) SaveNominal(ctx context.Context, nominal *domain.Nominal) error {
	args := m.Called(ctx, nominal)
	return args.Error(0)
}

func (m *MockNominalRepository) UpdateNominal(ctx context.Context, nominal *domain.Nominal) error {
	args := m.Called(ctx, nominal)
	return args.Error(0)
}

type MockVatCodeRepository struct {
	mock.Mock
}

func (m *MockVatCodeRepository) GetVatCodeByID(ctx context.Context, vatCodeID string) (*domain.VatCode, error) {
	args := m.Called(ctx, vatCodeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VatCode), args.Error(1)
}

func (m *MockVatCodeRepository) ListVatCodes(ctx context.Context) ([]domain.VatCode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VatCode), args.Error(1)
}

func (m *MockVatCodeRepository) SaveVatCode(ctx context.Context, code *domain.VatCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockVatCodeRepository) UpdateVatCode(ctx context.Context, code *domain.VatCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

type MockCashBookRepository struct {
	mock.Mock
}

func (m *MockCashBookRepository) GetCashBookByID(ctx context.Context, cashBookID string) (*domain.CashBook, error) {
	args := m.Called(ctx, cashBookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashBook), args.Error(1)
}

func (m *MockCashBookRepository) ListCashBooks(ctx context.Context) ([]domain.CashBook, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashBook), args.Error(1)
}

func (m *MockCashBookRepository) SaveCashBook(ctx context.Context, book *domain.CashBook) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockCashBookRepository) UpdateCashBook(ctx context.Context, book *domain.CashBook) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

type MockPeriodRepository struct {
	mock.Mock
}

func (m *MockPeriodRepository) GetCalendar(ctx context.Context) (*domain.Calendar, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Calendar), args.Error(1)
}

func (m *MockPeriodRepository) GetFinancialYearByLabel(ctx context.Context, year int) (*domain.FinancialYear, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialYear), args.Error(1)
}

func (m *MockPeriodRepository) SaveFinancialYear(ctx context.Context, fy *domain.FinancialYear, periods []domain.Period) error {
	args := m.Called(ctx, fy, periods)
	return args.Error(0)
}

func (m *MockPeriodRepository) ReplacePeriods(ctx context.Context, years []domain.FinancialYear, periods []domain.Period) error {
	args := m.Called(ctx, years, periods)
	return args.Error(0)
}

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) GetModuleSettings(ctx context.Context) (*domain.ModuleSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ModuleSettings), args.Error(1)
}

func (m *MockSettingsRepository) UpdateModuleSettings(ctx context.Context, settings *domain.ModuleSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

type MockYearEndRepository struct {
	mock.Mock
}

func (m *MockYearEndRepository) SaveCarryForward(ctx context.Context, batch *domain.PostingBatch, settings *domain.ModuleSettings) error {
	args := m.Called(ctx, batch, settings)
	return args.Error(0)
}

func (m *MockYearEndRepository) DeleteBroughtForward(ctx context.Context, fromPeriod string) error {
	args := m.Called(ctx, fromPeriod)
	return args.Error(0)
}

func (m *MockYearEndRepository) HasBroughtForwardIn(ctx context.Context, fyAndPeriod string) (bool, error) {
	args := m.Called(ctx, fyAndPeriod)
	return args.Bool(0), args.Error(1)
}

type MockPartyRepository struct {
	mock.Mock
}

func (m *MockPartyRepository) GetSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

func (m *MockPartyRepository) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Supplier), args.Error(1)
}

func (m *MockPartyRepository) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockPartyRepository) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockPartyRepository) SaveSupplier(ctx context.Context, supplier *domain.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockPartyRepository) SaveCustomer(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

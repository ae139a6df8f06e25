package repositories

import (
	"context"

	"github.com/ledgerbooks/bookkeeping/internal/core/domain"
)

// VatCodeReader defines read operations for VAT codes.
type VatCodeReader interface {
	GetVatCodeByID(ctx context.Context, vatCodeID string) (*domain.VatCode, error)
	ListVatCodes(ctx context.Context) ([]domain.VatCode, error)
}

// VatCodeWriter defines write operations for VAT codes.
type VatCodeWriter interface {
	SaveVatCode(ctx context.Context, code *domain.VatCode) error
	UpdateVatCode(ctx context.Context, code *domain.VatCode) error
}

// VatCodeRepositoryFacade combines reader and writer.
type VatCodeRepositoryFacade interface {
	VatCodeReader
	VatCodeWriter
}

// CashBookReader defines read operations for cash books.
type CashBookReader interface {
	GetCashBookByID(ctx context.Context, cashBookID string) (*domain.CashBook, error)
	ListCashBooks(ctx context.Context) ([]domain.CashBook, error)
}

// CashBookWriter defines write operations for cash books.
type CashBookWriter interface {
	SaveCashBook(ctx context.Context, book *domain.CashBook) error
	UpdateCashBook(ctx context.Context, book *domain.CashBook) error
}

// CashBookRepositoryFacade combines reader and writer.
type CashBookRepositoryFacade interface {
	CashBookReader
	CashBookWriter
}

// PartyReader defines read operations for suppliers and customers.
type PartyReader interface {
	GetSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context) ([]domain.Supplier, error)
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
}

// PartyWriter defines write operations for suppliers and customers.
type PartyWriter interface {
	SaveSupplier(ctx context.Context, supplier *domain.Supplier) error
	SaveCustomer(ctx context.Context, customer *domain.Customer) error
}

// PartyRepositoryFacade combines reader and writer.
type PartyRepositoryFacade interface {
	PartyReader
	PartyWriter
}

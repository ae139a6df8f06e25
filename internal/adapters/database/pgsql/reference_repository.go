package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerbooks/bookkeeping/internal/core/domain"
)

// VatCodeRepository persists VAT codes.
type VatCodeRepository struct {
	*BaseRepository
}

// NewVatCodeRepository creates a VatCodeRepository.
func NewVatCodeRepository(db *pgxpool.Pool) *VatCodeRepository {
	return &VatCodeRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *VatCodeRepository) GetVatCodeByID(ctx context.Context, vatCodeID string) (*domain.VatCode, error) {
	var v domain.VatCode
	err := r.db.QueryRow(ctx, `
		SELECT vat_code_id, code, name, rate, registered FROM vat_codes WHERE vat_code_id = $1`, vatCodeID).
		Scan(&v.VatCodeID, &v.Code, &v.Name, &v.Rate, &v.Registered)
	if err != nil {
		return nil, translateError(err, "fetching vat code")
	}
	return &v, nil
}

func (r *VatCodeRepository) ListVatCodes(ctx context.Context) ([]domain.VatCode, error) {
	rows, err := r.db.Query(ctx, `SELECT vat_code_id, code, name, rate, registered FROM vat_codes ORDER BY code`)
	if err != nil {
		return nil, translateError(err, "listing vat codes")
	}
	defer rows.Close()

	var out []domain.VatCode
	for rows.Next() {
		var v domain.VatCode
		if err := rows.Scan(&v.VatCodeID, &v.Code, &v.Name, &v.Rate, &v.Registered); err != nil {
			return nil, translateError(err, "scanning vat code")
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *VatCodeRepository) SaveVatCode(ctx context.Context, code *domain.VatCode) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO vat_codes (vat_code_id, code, name, rate, registered)
		VALUES ($1, $2, $3, $4, $5)`,
		code.VatCodeID, code.Code, code.Name, code.Rate, code.Registered)
	return translateError(err, "inserting vat code")
}

func (r *VatCodeRepository) UpdateVatCode(ctx context.Context, code *domain.VatCode) error {
	_, err := r.db.Exec(ctx, `
		UPDATE vat_codes SET code = $2, name = $3, rate = $4, registered = $5, last_updated_at = now()
		WHERE vat_code_id = $1`,
		code.VatCodeID, code.Code, code.Name, code.Rate, code.Registered)
	return translateError(err, "updating vat code")
}

// CashBookRepository persists cash books.
type CashBookRepository struct {
	*BaseRepository
}

// NewCashBookRepository creates a CashBookRepository.
func NewCashBookRepository(db *pgxpool.Pool) *CashBookRepository {
	return &CashBookRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *CashBookRepository) GetCashBookByID(ctx context.Context, cashBookID string) (*domain.CashBook, error) {
	var b domain.CashBook
	err := r.db.QueryRow(ctx, `
		SELECT cash_book_id, name, nominal_id FROM cash_books WHERE cash_book_id = $1`, cashBookID).
		Scan(&b.CashBookID, &b.Name, &b.NominalID)
	if err != nil {
		return nil, translateError(err, "fetching cash book")
	}
	return &b, nil
}

func (r *CashBookRepository) ListCashBooks(ctx context.Context) ([]domain.CashBook, error) {
	rows, err := r.db.Query(ctx, `SELECT cash_book_id, name, nominal_id FROM cash_books ORDER BY name`)
	if err != nil {
		return nil, translateError(err, "listing cash books")
	}
	defer rows.Close()

	var out []domain.CashBook
	for rows.Next() {
		var b domain.CashBook
		if err := rows.Scan(&b.CashBookID, &b.Name, &b.NominalID); err != nil {
			return nil, translateError(err, "scanning cash book")
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *CashBookRepository) SaveCashBook(ctx context.Context, book *domain.CashBook) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO cash_books (cash_book_id, name, nominal_id) VALUES ($1, $2, $3)`,
		book.CashBookID, book.Name, book.NominalID)
	return translateError(err, "inserting cash book")
}

func (r *CashBookRepository) UpdateCashBook(ctx context.Context, book *domain.CashBook) error {
	_, err := r.db.Exec(ctx, `
		UPDATE cash_books SET name = $2, nominal_id = $3, last_updated_at = now()
		WHERE cash_book_id = $1`,
		book.CashBookID, book.Name, book.NominalID)
	return translateError(err, "updating cash book")
}

// PartyRepository persists suppliers and customers.
type PartyRepository struct {
	*BaseRepository
}

// NewPartyRepository creates a PartyRepository.
func NewPartyRepository(db *pgxpool.Pool) *PartyRepository {
	return &PartyRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *PartyRepository) GetSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	var s domain.Supplier
	err := r.db.QueryRow(ctx, `
		SELECT supplier_id, code, name, COALESCE(email, '') FROM suppliers WHERE supplier_id = $1`, supplierID).
		Scan(&s.SupplierID, &s.Code, &s.Name, &s.Email)
	if err != nil {
		return nil, translateError(err, "fetching supplier")
	}
	return &s, nil
}

func (r *PartyRepository) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	rows, err := r.db.Query(ctx, `SELECT supplier_id, code, name, COALESCE(email, '') FROM suppliers ORDER BY code`)
	if err != nil {
		return nil, translateError(err, "listing suppliers")
	}
	defer rows.Close()

	var out []domain.Supplier
	for rows.Next() {
		var s domain.Supplier
		if err := rows.Scan(&s.SupplierID, &s.Code, &s.Name, &s.Email); err != nil {
			return nil, translateError(err, "scanning supplier")
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PartyRepository) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	var c domain.Customer
	err := r.db.QueryRow(ctx, `
		SELECT customer_id, code, name, COALESCE(email, '') FROM customers WHERE customer_id = $1`, customerID).
		Scan(&c.CustomerID, &c.Code, &c.Name, &c.Email)
	if err != nil {
		return nil, translateError(err, "fetching customer")
	}
	return &c, nil
}

func (r *PartyRepository) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.db.Query(ctx, `SELECT customer_id, code, name, COALESCE(email, '') FROM customers ORDER BY code`)
	if err != nil {
		return nil, translateError(err, "listing customers")
	}
	defer rows.Close()

	var out []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.CustomerID, &c.Code, &c.Name, &c.Email); err != nil {
			return nil, translateError(err, "scanning customer")
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PartyRepository) SaveSupplier(ctx context.Context, supplier *domain.Supplier) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO suppliers (supplier_id, code, name, email) VALUES ($1, $2, $3, NULLIF($4, ''))`,
		supplier.SupplierID, supplier.Code, supplier.Name, supplier.Email)
	return translateError(err, "inserting supplier")
}

func (r *PartyRepository) SaveCustomer(ctx context.Context, customer *domain.Customer) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO customers (customer_id, code, name, email) VALUES ($1, $2, $3, NULLIF($4, ''))`,
		customer.CustomerID, customer.Code, customer.Name, customer.Email)
	return translateError(err, "inserting customer")
}

package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ledgerbooks/bookkeeping/internal/core/domain"
	"github.com/ledgerbooks/bookkeeping/internal/core/ports/repositories"
	"github.com/ledgerbooks/bookkeeping/internal/dto"
	"github.com/ledgerbooks/bookkeeping/internal/middleware"
)

// ReferenceService manages the chart of accounts, VAT codes, cash books,
// suppliers and customers.
type ReferenceService struct {
	nominalRepo  repositories.NominalRepositoryFacade
	vatRepo      repositories.VatCodeRepositoryFacade
	cashBookRepo repositories.CashBookRepositoryFacade
	partyRepo    repositories.PartyRepositoryFacade
}

// NewReferenceService creates a ReferenceService.
func NewReferenceService(
	nominalRepo repositories.NominalRepositoryFacade,
	vatRepo repositories.VatCodeRepositoryFacade,
	cashBookRepo repositories.CashBookRepositoryFacade,
	partyRepo repositories.PartyRepositoryFacade,
) *ReferenceService {
	return &ReferenceService{
		nominalRepo:  nominalRepo,
		vatRepo:      vatRepo,
		cashBookRepo: cashBookRepo,
		partyRepo:    partyRepo,
	}
}

func (s *ReferenceService) CreateNominal(ctx context.Context, req dto.CreateNominalRequest) (*domain.Nominal, error) {
	if req.ParentID != "" {
		if _, err := s.nominalRepo.GetNominalByID(ctx, req.ParentID); err != nil {
			return nil, err
		}
	}
	n := &domain.Nominal{
		NominalID: uuid.NewString(),
		Name:      req.Name,
		ParentID:  req.ParentID,
		Type:      domain.NominalType(req.Type),
	}
	if err := s.nominalRepo.SaveNominal(ctx, n); err != nil {
		return nil, err
	}
	middleware.GetLoggerFromCtx(ctx).Info("nominal created", slog.String("name", n.Name))
	return n, nil
}

func (s *ReferenceService) ListNominals(ctx context.Context) ([]domain.Nominal, error) {
	return s.nominalRepo.ListNominals(ctx)
}

func (s *ReferenceService) CreateVatCode(ctx context.Context, req dto.CreateVatCodeRequest) (*domain.VatCode, error) {
	code := &domain.VatCode{
		VatCodeID:  uuid.NewString(),
		Code:       req.Code,
		Name:       req.Name,
		Rate:       req.Rate,
		Registered: req.Registered,
	}
	if err := s.vatRepo.SaveVatCode(ctx, code); err != nil {
		return nil, err
	}
	return code, nil
}

func (s *ReferenceService) ListVatCodes(ctx context.Context) ([]domain.VatCode, error) {
	return s.vatRepo.ListVatCodes(ctx)
}

func (s *ReferenceService) CreateCashBook(ctx context.Context, req dto.CreateCashBookRequest) (*domain.CashBook, error) {
	if _, err := s.nominalRepo.GetNominalByID(ctx, req.NominalID); err != nil {
		return nil, err
	}
	book := &domain.CashBook{
		CashBookID: uuid.NewString(),
		Name:       req.Name,
		NominalID:  req.NominalID,
	}
	if err := s.cashBookRepo.SaveCashBook(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *ReferenceService) ListCashBooks(ctx context.Context) ([]domain.CashBook, error) {
	return s.cashBookRepo.ListCashBooks(ctx)
}

func (s *ReferenceService) CreateSupplier(ctx context.Context, req dto.CreatePartyRequest) (*domain.Supplier, error) {
	supplier := &domain.Supplier{
		SupplierID: uuid.NewString(),
		Code:       req.Code,
		Name:       req.Name,
		Email:      req.Email,
	}
	if err := s.partyRepo.SaveSupplier(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *ReferenceService) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	return s.partyRepo.ListSuppliers(ctx)
}

func (s *ReferenceService) CreateCustomer(ctx context.Context, req dto.CreatePartyRequest) (*domain.Customer, error) {
	customer := &domain.Customer{
		CustomerID: uuid.NewString(),
		Code:       req.Code,
		Name:       req.Name,
		Email:      req.Email,
	}
	if err := s.partyRepo.SaveCustomer(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *ReferenceService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.partyRepo.ListCustomers(ctx)
}

package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ledgerbooks/bookkeeping/internal/apperrors"
	"github.com/ledgerbooks/bookkeeping/internal/core/domain"
	"github.com/ledgerbooks/bookkeeping/internal/core/ports/repositories"
	portssvc "github.com/ledgerbooks/bookkeeping/internal/core/ports/services"
	"github.com/ledgerbooks/bookkeeping/internal/dto"
	"github.com/ledgerbooks/bookkeeping/internal/handlers"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) Create(ctx context.Context, req dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TransactionResponse), args.Error(1)
}

func (m *MockTransactionService) Edit(ctx context.Context, module domain.Module, headerID string, req dto.EditTransactionRequest) (*dto.TransactionResponse, error) {
	args := m.Called(ctx, module, headerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TransactionResponse), args.Error(1)
}

func (m *MockTransactionService) Void(ctx context.Context, module domain.Module, headerID string) error {
	args := m.Called(ctx, module, headerID)
	return args.Error(0)
}

func (m *MockTransactionService) Get(ctx context.Context, module domain.Module, headerID string) (*dto.TransactionResponse, error) {
	args := m.Called(ctx, module, headerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TransactionResponse), args.Error(1)
}

func (m *MockTransactionService) List(ctx context.Context, filter repositories.HeaderFilter) ([]dto.TransactionResponse, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.TransactionResponse), args.Error(1)
}

var _ portssvc.TransactionService = (*MockTransactionService)(nil)

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router  *gin.Engine
	mockSvc *MockTransactionService
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockSvc = new(MockTransactionService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterTransactionRoutes(v1, suite.mockSvc)
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_Success() {
	req := dto.CreateTransactionRequest{
		Type:    domain.TypePurchaseInvoice,
		Ref:     "INV-001",
		PartyID: uuid.NewString(),
		Date:    time.Date(2020, 3, 14, 0, 0, 0, 0, time.UTC),
		Lines: []dto.LineInput{
			{Description: "Stationery", Goods: decimal.NewFromInt(100), Vat: decimal.NewFromInt(20), NominalID: uuid.NewString()},
		},
	}
	expected := &dto.TransactionResponse{
		HeaderID: uuid.NewString(),
		Module:   domain.ModulePurchases,
		Type:     domain.TypePurchaseInvoice,
		Ref:      req.Ref,
		Period:   "202003",
		Total:    decimal.NewFromInt(120),
		UIStatus: "outstanding",
	}

	suite.mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(r dto.CreateTransactionRequest) bool {
		return r.Ref == req.Ref && r.Type == req.Type && len(r.Lines) == 1
	})).Return(expected, nil).Once()

	body, _ := json.Marshal(req)
	httpReq, _ := http.NewRequest(http.MethodPost, "/api/v1/transactions", bytes.NewReader(body))
	httpReq.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusCreated, w.Code)
	var got dto.TransactionResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal(expected.HeaderID, got.HeaderID)
	suite.True(got.Total.Equal(decimal.NewFromInt(120)))
	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_MissingRefRejected() {
	body := []byte(`{"type": "pi", "date": "2020-03-14T00:00:00Z"}`)
	httpReq, _ := http.NewRequest(http.MethodPost, "/api/v1/transactions", bytes.NewReader(body))
	httpReq.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockSvc.AssertNotCalled(suite.T(), "Create")
}

func (suite *TransactionHandlerTestSuite) TestGetTransaction_NotFound() {
	headerID := uuid.NewString()
	suite.mockSvc.On("Get", mock.Anything, domain.ModuleSales, headerID).
		Return(nil, fmt.Errorf("fetching transaction header: %w", apperrors.ErrNotFound)).Once()

	httpReq, _ := http.NewRequest(http.MethodGet, "/api/v1/SL/transactions/"+headerID, nil)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestGetTransaction_UnknownModuleRejected() {
	httpReq, _ := http.NewRequest(http.MethodGet, "/api/v1/XX/transactions/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockSvc.AssertNotCalled(suite.T(), "Get")
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_PassesFilter() {
	expected := []dto.TransactionResponse{{HeaderID: uuid.NewString(), Module: domain.ModulePurchases}}
	suite.mockSvc.On("List", mock.Anything, mock.MatchedBy(func(f repositories.HeaderFilter) bool {
		return f.Module == domain.ModulePurchases && f.Period == "202003" && f.Outstanding
	})).Return(expected, nil).Once()

	httpReq, _ := http.NewRequest(http.MethodGet, "/api/v1/PL/transactions?period=202003&outstanding=true", nil)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusOK, w.Code)
	var got []dto.TransactionResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Len(got, 1)
	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestVoidTransaction_Success() {
	headerID := uuid.NewString()
	suite.mockSvc.On("Void", mock.Anything, domain.ModulePurchases, headerID).Return(nil).Once()

	httpReq, _ := http.NewRequest(http.MethodPost, "/api/v1/PL/transactions/"+headerID+"/void", nil)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestVoidTransaction_AlreadyVoidConflicts() {
	headerID := uuid.NewString()
	suite.mockSvc.On("Void", mock.Anything, domain.ModulePurchases, headerID).
		Return(fmt.Errorf("voiding transaction: %w", apperrors.ErrConflict)).Once()

	httpReq, _ := http.NewRequest(http.MethodPost, "/api/v1/PL/transactions/"+headerID+"/void", nil)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockSvc.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestTransactionHandler(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerbooks/bookkeeping/internal/core/ports/services"
	"github.com/ledgerbooks/bookkeeping/internal/dto"
)

// ReferenceHandler serves the reference data endpoints: nominals, VAT codes,
// cash books, suppliers and customers.
type ReferenceHandler struct {
	svc services.ReferenceService
}

// NewReferenceHandler creates a ReferenceHandler.
func NewReferenceHandler(svc services.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{svc: svc}
}

func (h *ReferenceHandler) CreateNominal(c *gin.Context) {
	var req dto.CreateNominalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	n, err := h.svc.CreateNominal(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, n)
}

func (h *ReferenceHandler) ListNominals(c *gin.Context) {
	out, err := h.svc.ListNominals(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *ReferenceHandler) CreateVatCode(c *gin.Context) {
	var req dto.CreateVatCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	v, err := h.svc.CreateVatCode(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (h *ReferenceHandler) ListVatCodes(c *gin.Context) {
	out, err := h.svc.ListVatCodes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *ReferenceHandler) CreateCashBook(c *gin.Context) {
	var req dto.CreateCashBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	b, err := h.svc.CreateCashBook(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *ReferenceHandler) ListCashBooks(c *gin.Context) {
	out, err := h.svc.ListCashBooks(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *ReferenceHandler) CreateSupplier(c *gin.Context) {
	var req dto.CreatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	s, err := h.svc.CreateSupplier(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *ReferenceHandler) ListSuppliers(c *gin.Context) {
	out, err := h.svc.ListSuppliers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *ReferenceHandler) CreateCustomer(c *gin.Context) {
	var req dto.CreatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	cust, err := h.svc.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cust)
}

func (h *ReferenceHandler) ListCustomers(c *gin.Context) {
	out, err := h.svc.ListCustomers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

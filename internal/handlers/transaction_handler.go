package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerbooks/bookkeeping/internal/core/domain"
	"github.com/ledgerbooks/bookkeeping/internal/core/ports/repositories"
	"github.com/ledgerbooks/bookkeeping/internal/core/ports/services"
	"github.com/ledgerbooks/bookkeeping/internal/dto"
)

// TransactionHandler serves the ledger transaction endpoints.
type TransactionHandler struct {
	svc services.TransactionService
}

// NewTransactionHandler creates a TransactionHandler.
func NewTransactionHandler(svc services.TransactionService) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

func moduleParam(c *gin.Context) (domain.Module, bool) {
	m := domain.Module(c.Param("module"))
	if !m.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown ledger module"})
		return "", false
	}
	return m, true
}

// Create handles POST /transactions.
func (h *TransactionHandler) Create(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get handles GET /:module/transactions/:id.
func (h *TransactionHandler) Get(c *gin.Context) {
	module, ok := moduleParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), module, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List handles GET /:module/transactions.
func (h *TransactionHandler) List(c *gin.Context) {
	module, ok := moduleParam(c)
	if !ok {
		return
	}
	filter := repositories.HeaderFilter{
		Module:      module,
		PartyID:     c.Query("partyID"),
		Period:      c.Query("period"),
		Outstanding: c.Query("outstanding") == "true",
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Edit handles PUT /:module/transactions/:id.
func (h *TransactionHandler) Edit(c *gin.Context) {
	module, ok := moduleParam(c)
	if !ok {
		return
	}
	var req dto.EditTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	resp, err := h.svc.Edit(c.Request.Context(), module, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Void handles POST /:module/transactions/:id/void.
func (h *TransactionHandler) Void(c *gin.Context) {
	module, ok := moduleParam(c)
	if !ok {
		return
	}
	if err := h.svc.Void(c.Request.Context(), module, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

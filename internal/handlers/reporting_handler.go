package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerbooks/bookkeeping/internal/core/ports/services"
	"github.com/ledgerbooks/bookkeeping/internal/dto"
)

// ReportingHandler serves the report endpoints.
type ReportingHandler struct {
	svc services.ReportingService
}

// NewReportingHandler creates a ReportingHandler.
func NewReportingHandler(svc services.ReportingService) *ReportingHandler {
	return &ReportingHandler{svc: svc}
}

// TrialBalance handles GET /reports/trial-balance.
func (h *ReportingHandler) TrialBalance(c *gin.Context) {
	var req dto.TrialBalanceRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	resp, err := h.svc.TrialBalance(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AgedBalances handles GET /reports/aged-balances.
func (h *ReportingHandler) AgedBalances(c *gin.Context) {
	var req dto.AgedBalancesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	resp, err := h.svc.AgedBalances(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

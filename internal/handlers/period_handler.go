package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ledgerbooks/bookkeeping/internal/core/ports/services"
	"github.com/ledgerbooks/bookkeeping/internal/dto"
)

// PeriodHandler serves the financial year, period and settings endpoints.
type PeriodHandler struct {
	periodSvc  services.PeriodService
	yearEndSvc services.YearEndService
}

// NewPeriodHandler creates a PeriodHandler.
func NewPeriodHandler(periodSvc services.PeriodService, yearEndSvc services.YearEndService) *PeriodHandler {
	return &PeriodHandler{periodSvc: periodSvc, yearEndSvc: yearEndSvc}
}

// CreateFinancialYear handles POST /financial-years.
func (h *PeriodHandler) CreateFinancialYear(c *gin.Context) {
	var req dto.CreateFinancialYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	resp, err := h.periodSvc.CreateFinancialYear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// AdjustFinancialYears handles PUT /financial-years.
func (h *PeriodHandler) AdjustFinancialYears(c *gin.Context) {
	var req dto.AdjustFinancialYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	if err := h.periodSvc.AdjustFinancialYears(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetCalendar handles GET /financial-years.
func (h *PeriodHandler) GetCalendar(c *gin.Context) {
	resp, err := h.periodSvc.GetCalendar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetModuleSettings handles GET /settings/periods.
func (h *PeriodHandler) GetModuleSettings(c *gin.Context) {
	resp, err := h.periodSvc.GetModuleSettings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateModuleSettings handles PUT /settings/periods.
func (h *PeriodHandler) UpdateModuleSettings(c *gin.Context) {
	var req dto.UpdateModuleSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	if err := h.periodSvc.UpdateModuleSettings(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func yearParam(c *gin.Context) (int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year must be an integer"})
		return 0, false
	}
	return year, true
}

// FinaliseYear handles POST /financial-years/:year/finalise.
func (h *PeriodHandler) FinaliseYear(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	if err := h.yearEndSvc.Finalise(c.Request.Context(), year); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RollbackYear handles POST /financial-years/:year/rollback.
func (h *PeriodHandler) RollbackYear(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	if err := h.yearEndSvc.Rollback(c.Request.Context(), year); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

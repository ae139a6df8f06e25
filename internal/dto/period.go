package dto

import (
	"time"

	"github.com/ledgerbooks/bookkeeping/internal/core/domain"
)

// CreateFinancialYearRequest creates a year and its monthly periods. The
// first month is only needed for the first year ever created; later years
// continue from the existing calendar.
type CreateFinancialYearRequest struct {
	Year            int        `json:"year" binding:"required"`
	NumberOfPeriods int        `json:"numberOfPeriods" binding:"required,min=1,max=18"`
	FirstMonth      *time.Time `json:"firstMonth,omitempty"`
}

// AdjustFinancialYearRequest moves periods between existing years by
// reassigning each period to a financial year. Periods stay in calendar
// order; only their year membership and ordinal change.
type AdjustFinancialYearRequest struct {
	Assignments []PeriodAssignment `json:"assignments" binding:"required,min=1,dive"`
}

// PeriodAssignment pins one period to a financial year.
type PeriodAssignment struct {
	PeriodID string `json:"periodID" binding:"required"`
	Year     int    `json:"year" binding:"required"`
}

// FinancialYearResponse returns a year with its periods.
type FinancialYearResponse struct {
	FinancialYearID string           `json:"financialYearID"`
	Year            int              `json:"year"`
	NumberOfPeriods int              `json:"numberOfPeriods"`
	Periods         []PeriodResponse `json:"periods"`
}

// PeriodResponse is one accounting period.
type PeriodResponse struct {
	PeriodID    string    `json:"periodID"`
	Number      string    `json:"number"`
	FYAndPeriod string    `json:"fyAndPeriod"`
	MonthStart  time.Time `json:"monthStart"`
	MonthEnd    time.Time `json:"monthEnd"`
}

// NewFinancialYearResponse maps a year and its periods.
func NewFinancialYearResponse(fy *domain.FinancialYear, periods []domain.Period) FinancialYearResponse {
	resp := FinancialYearResponse{
		FinancialYearID: fy.FinancialYearID,
		Year:            fy.Year,
		NumberOfPeriods: fy.NumberOfPeriods,
	}
	for _, p := range periods {
		if p.FinancialYearID != fy.FinancialYearID {
			continue
		}
		resp.Periods = append(resp.Periods, PeriodResponse{
			PeriodID:    p.PeriodID,
			Number:      p.Number,
			FYAndPeriod: p.FYAndPeriod,
			MonthStart:  p.MonthStart,
			MonthEnd:    p.MonthEnd,
		})
	}
	return resp
}

// ModuleSettingsResponse returns current posting periods per ledger.
type ModuleSettingsResponse struct {
	CashBookPeriod string `json:"cashBookPeriod"`
	NominalPeriod  string `json:"nominalPeriod"`
	PurchasePeriod string `json:"purchasePeriod"`
	SalesPeriod    string `json:"salesPeriod"`
}

// UpdateModuleSettingsRequest updates current posting periods per ledger.
type UpdateModuleSettingsRequest struct {
	CashBookPeriod string `json:"cashBookPeriod" binding:"required,len=6"`
	NominalPeriod  string `json:"nominalPeriod" binding:"required,len=6"`
	PurchasePeriod string `json:"purchasePeriod" binding:"required,len=6"`
	SalesPeriod    string `json:"salesPeriod" binding:"required,len=6"`
}

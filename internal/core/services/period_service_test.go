package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ledgerbooks/bookkeeping/internal/core/domain"
	"github.com/ledgerbooks/bookkeeping/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestPeriodService(t *testing.T) (*PeriodService, *MockPeriodRepository, *MockSettingsRepository, *MockYearEndRepository) {
	t.Helper()
	periodRepo := new(MockPeriodRepository)
	settingsRepo := new(MockSettingsRepository)
	yearEndRepo := new(MockYearEndRepository)
	return NewPeriodService(periodRepo, settingsRepo, yearEndRepo), periodRepo, settingsRepo, yearEndRepo
}

func TestCreateFirstFinancialYearSeedsSettings(t *testing.T) {
	svc, periodRepo, settingsRepo, _ := newTestPeriodService(t)
	periodRepo.On("GetCalendar", mock.Anything).
		Return(domain.NewCalendar(nil, nil), nil)

	var savedFY *domain.FinancialYear
	var savedPeriods []domain.Period
	periodRepo.On("SaveFinancialYear", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedFY = args.Get(1).(*domain.FinancialYear)
			savedPeriods = args.Get(2).([]domain.Period)
		}).
		Return(nil)
	settingsRepo.On("GetModuleSettings", mock.Anything).Return(&domain.ModuleSettings{}, nil)
	var savedSettings *domain.ModuleSettings
	settingsRepo.On("UpdateModuleSettings", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedSettings = args.Get(1).(*domain.ModuleSettings)
		}).
		Return(nil)

	firstMonth := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	resp, err := svc.CreateFinancialYear(context.Background(), dto.CreateFinancialYearRequest{
		Year:            2020,
		NumberOfPeriods: 12,
		FirstMonth:      &firstMonth,
	})
	require.NoError(t, err)
	require.NotNil(t, savedFY)
	require.Len(t, savedPeriods, 12)

	assert.Equal(t, "202001", savedPeriods[0].FYAndPeriod)
	assert.Equal(t, "202012", savedPeriods[11].FYAndPeriod)
	assert.Equal(t, time.Date(2020, 12, 1, 0, 0, 0, 0, time.UTC), savedPeriods[11].MonthStart)
	assert.Equal(t, time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC), savedPeriods[11].MonthEnd)

	require.NotNil(t, savedSettings)
	for _, m := range domain.AllModules {
		assert.Equal(t, "202001", savedSettings.PeriodFor(m))
	}
	assert.Len(t, resp.Periods, 12)
}

func TestCreateSecondYearContinuesCalendar(t *testing.T) {
	svc, periodRepo, _, _ := newTestPeriodService(t)
	periodRepo.On("GetCalendar", mock.Anything).Return(testCalendar(), nil)

	var savedPeriods []domain.Period
	periodRepo.On("SaveFinancialYear", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedPeriods = args.Get(2).([]domain.Period)
		}).
		Return(nil)

	_, err := svc.CreateFinancialYear(context.Background(), dto.CreateFinancialYearRequest{
		Year:            2021,
		NumberOfPeriods: 12,
	})
	require.NoError(t, err)
	require.Len(t, savedPeriods, 12)
	assert.Equal(t, "202101", savedPeriods[0].FYAndPeriod)
	assert.Equal(t, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), savedPeriods[0].MonthStart)
}

func TestCreateDuplicateYearRejected(t *testing.T) {
	svc, periodRepo, _, _ := newTestPeriodService(t)
	periodRepo.On("GetCalendar", mock.Anything).Return(testCalendar(), nil)

	_, err := svc.CreateFinancialYear(context.Background(), dto.CreateFinancialYearRequest{
		Year:            2020,
		NumberOfPeriods: 12,
	})
	assert.ErrorIs(t, err, ErrYearExists)
}

func TestCreateNonConsecutiveYearRejected(t *testing.T) {
	svc, periodRepo, _, _ := newTestPeriodService(t)
	periodRepo.On("GetCalendar", mock.Anything).Return(testCalendar(), nil)

	_, err := svc.CreateFinancialYear(context.Background(), dto.CreateFinancialYearRequest{
		Year:            2022,
		NumberOfPeriods: 12,
	})
	assert.ErrorIs(t, err, ErrYearNotNext)
}

func TestCreateFirstYearNeedsStartingMonth(t *testing.T) {
	svc, periodRepo, _, _ := newTestPeriodService(t)
	periodRepo.On("GetCalendar", mock.Anything).Return(domain.NewCalendar(nil, nil), nil)

	_, err := svc.CreateFinancialYear(context.Background(), dto.CreateFinancialYearRequest{
		Year:            2020,
		NumberOfPeriods: 12,
	})
	assert.ErrorIs(t, err, ErrFirstMonthNeeded)
}

func TestAdjustFinalisedYearRollsBackYearEnd(t *testing.T) {
	svc, periodRepo, _, yearEndRepo := newTestPeriodService(t)
	cal := twoYearCalendar()
	periodRepo.On("GetCalendar", mock.Anything).Return(cal, nil)
	yearEndRepo.On("HasBroughtForwardIn", mock.Anything, "202101").Return(true, nil)
	yearEndRepo.On("DeleteBroughtForward", mock.Anything, "202101").Return(nil)
	periodRepo.On("ReplacePeriods", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	last2020 := cal.Periods()[11]
	err := svc.AdjustFinancialYears(context.Background(), dto.AdjustFinancialYearRequest{
		Assignments: []dto.PeriodAssignment{{PeriodID: last2020.PeriodID, Year: 2021}},
	})
	require.NoError(t, err)
	yearEndRepo.AssertCalled(t, "DeleteBroughtForward", mock.Anything, "202101")
	periodRepo.AssertCalled(t, "ReplacePeriods", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdjustInvalidBoundaryLeavesYearEndAlone(t *testing.T) {
	svc, periodRepo, _, yearEndRepo := newTestPeriodService(t)
	cal := twoYearCalendar()
	periodRepo.On("GetCalendar", mock.Anything).Return(cal, nil)

	// June 2020 in FY 2021 splits 2020 and leaves a month gap, so the
	// adjustment must fail with the finalised year end untouched
	june2020 := cal.Periods()[5]
	err := svc.AdjustFinancialYears(context.Background(), dto.AdjustFinancialYearRequest{
		Assignments: []dto.PeriodAssignment{{PeriodID: june2020.PeriodID, Year: 2021}},
	})
	require.Error(t, err)
	yearEndRepo.AssertNotCalled(t, "DeleteBroughtForward", mock.Anything, mock.Anything)
	periodRepo.AssertNotCalled(t, "ReplacePeriods", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdjustMovesPeriodAndRenumbers(t *testing.T) {
	svc, periodRepo, _, yearEndRepo := newTestPeriodService(t)
	cal := twoYearCalendar()
	periodRepo.On("GetCalendar", mock.Anything).Return(cal, nil)
	yearEndRepo.On("HasBroughtForwardIn", mock.Anything, "202101").Return(false, nil)

	var savedYears []domain.FinancialYear
	var savedPeriods []domain.Period
	periodRepo.On("ReplacePeriods", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedYears = args.Get(1).([]domain.FinancialYear)
			savedPeriods = args.Get(2).([]domain.Period)
		}).
		Return(nil)

	// move December 2020 into FY 2021
	last2020 := cal.Periods()[11]
	err := svc.AdjustFinancialYears(context.Background(), dto.AdjustFinancialYearRequest{
		Assignments: []dto.PeriodAssignment{{PeriodID: last2020.PeriodID, Year: 2021}},
	})
	require.NoError(t, err)
	require.Len(t, savedYears, 2)
	assert.Equal(t, 11, savedYears[0].NumberOfPeriods)
	assert.Equal(t, 13, savedYears[1].NumberOfPeriods)

	byID := make(map[string]domain.Period)
	for _, p := range savedPeriods {
		byID[p.PeriodID] = p
	}
	moved := byID[last2020.PeriodID]
	assert.Equal(t, "fy-2021", moved.FinancialYearID)
	assert.Equal(t, "202101", moved.FYAndPeriod)
	assert.Equal(t, "01", moved.Number)
}

func TestUpdateModuleSettingsValidatesPeriods(t *testing.T) {
	svc, periodRepo, settingsRepo, _ := newTestPeriodService(t)
	periodRepo.On("GetCalendar", mock.Anything).Return(testCalendar(), nil)

	err := svc.UpdateModuleSettings(context.Background(), dto.UpdateModuleSettingsRequest{
		CashBookPeriod: "202001",
		NominalPeriod:  "202001",
		PurchasePeriod: "209901",
		SalesPeriod:    "202001",
	})
	require.Error(t, err)
	settingsRepo.AssertNotCalled(t, "UpdateModuleSettings", mock.Anything, mock.Anything)
}

// twoYearCalendar builds 2020 and 2021, twelve monthly periods each.
func twoYearCalendar() *domain.Calendar {
	var periods []domain.Period
	var years []domain.FinancialYear
	month := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, year := range []int{2020, 2021} {
		fyID := "fy-2020"
		if year == 2021 {
			fyID = "fy-2021"
		}
		years = append(years, domain.FinancialYear{FinancialYearID: fyID, Year: year, NumberOfPeriods: 12})
		for i := 1; i <= 12; i++ {
			periods = append(periods, domain.Period{
				PeriodID:        domain.FYAndPeriodKey(year, i),
				FinancialYearID: fyID,
				Number:          fmt.Sprintf("%02d", i),
				FYAndPeriod:     domain.FYAndPeriodKey(year, i),
				MonthStart:      month,
				MonthEnd:        domain.EndOfMonth(month),
			})
			month = month.AddDate(0, 1, 0)
		}
	}
	return domain.NewCalendar(years, periods)
}

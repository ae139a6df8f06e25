package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildCalendar(t *testing.T, startYear, numYears, periodsPerYear int, firstMonth time.Time) *Calendar {
	t.Helper()
	var years []FinancialYear
	var periods []Period
	month := firstMonth
	for y := 0; y < numYears; y++ {
		label := startYear + y
		fy := FinancialYear{
			FinancialYearID: fmt.Sprintf("fy-%d", label),
			Year:            label,
			NumberOfPeriods: periodsPerYear,
		}
		years = append(years, fy)
		for i := 1; i <= periodsPerYear; i++ {
			periods = append(periods, Period{
				PeriodID:        fmt.Sprintf("p-%d-%02d", label, i),
				FinancialYearID: fy.FinancialYearID,
				Number:          fmt.Sprintf("%02d", i),
				FYAndPeriod:     FYAndPeriodKey(label, i),
				MonthStart:      month,
				MonthEnd:        EndOfMonth(month),
			})
			month = month.AddDate(0, 1, 0)
		}
	}
	return NewCalendar(years, periods)
}

func TestCalendarAddCrossesYearBoundary(t *testing.T) {
	cal := buildCalendar(t, 2019, 2, 12, time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC))

	p, err := cal.Get("202001")
	require.NoError(t, err)

	prev, err := cal.Subtract(p, 1)
	require.NoError(t, err)
	assert.Equal(t, "201912", prev.FYAndPeriod)

	back, err := cal.Add(prev, 1)
	require.NoError(t, err)
	assert.Equal(t, "202001", back.FYAndPeriod)
}

func TestCalendarAddRoundTrip(t *testing.T) {
	cal := buildCalendar(t, 2019, 3, 12, time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC))

	p, err := cal.Get("201906")
	require.NoError(t, err)

	for _, n := range []int{1, 6, 12, 18, 29} {
		fwd, err := cal.Add(p, n)
		require.NoError(t, err)
		back, err := cal.Subtract(fwd, n)
		require.NoError(t, err)
		assert.Equal(t, p.FYAndPeriod, back.FYAndPeriod, "add then subtract %d", n)
	}
}

func TestCalendarAddOffEitherEnd(t *testing.T) {
	cal := buildCalendar(t, 2020, 1, 12, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))

	first, err := cal.Get("202001")
	require.NoError(t, err)
	_, err = cal.Subtract(first, 1)
	assert.ErrorIs(t, err, ErrMissingPeriod)

	last, err := cal.Get("202012")
	require.NoError(t, err)
	_, err = cal.Add(last, 1)
	assert.ErrorIs(t, err, ErrMissingPeriod)
}

func TestCalendarGetUnknownPeriod(t *testing.T) {
	cal := buildCalendar(t, 2020, 1, 12, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	_, err := cal.Get("203001")
	assert.ErrorIs(t, err, ErrMissingPeriod)
}

func TestCalendarFirstAndLastPeriodOf(t *testing.T) {
	cal := buildCalendar(t, 2019, 2, 12, time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC))

	first, err := cal.FirstPeriodOf(2020)
	require.NoError(t, err)
	assert.Equal(t, "202001", first.FYAndPeriod)

	last, err := cal.LastPeriodOf(2019)
	require.NoError(t, err)
	assert.Equal(t, "201912", last.FYAndPeriod)

	_, err = cal.FirstPeriodOf(2021)
	assert.ErrorIs(t, err, ErrMissingPeriod)
}

func TestCheckContiguousAcceptsValidCalendar(t *testing.T) {
	cal := buildCalendar(t, 2019, 3, 12, time.Date(2019, 4, 1, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, cal.CheckContiguous())
}

func TestCheckContiguousRejectsMonthGap(t *testing.T) {
	cal := buildCalendar(t, 2020, 1, 12, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	periods := cal.Periods()
	periods[5].MonthStart = periods[5].MonthStart.AddDate(0, 1, 0)
	broken := NewCalendar([]FinancialYear{{Year: 2020, NumberOfPeriods: 12}}, periods)
	assert.Error(t, broken.CheckContiguous())
}

func TestCheckContiguousRejectsNonConsecutiveYearLabels(t *testing.T) {
	a := buildCalendar(t, 2019, 1, 12, time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC))
	b := buildCalendar(t, 2021, 1, 12, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	merged := NewCalendar(
		[]FinancialYear{{Year: 2019, NumberOfPeriods: 12}, {Year: 2021, NumberOfPeriods: 12}},
		append(a.Periods(), b.Periods()...),
	)
	err := merged.CheckContiguous()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "consecutive")
}

func TestPeriodOrdering(t *testing.T) {
	earlier := Period{FYAndPeriod: "201912"}
	later := Period{FYAndPeriod: "202001"}
	assert.True(t, earlier.Before(later))
	assert.True(t, later.After(earlier))
	assert.Equal(t, 2019, earlier.Year())
}

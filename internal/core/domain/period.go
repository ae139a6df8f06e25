package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrMissingPeriod is returned when period arithmetic walks off either end of
// the global period sequence, or a financial year has no periods.
var ErrMissingPeriod = errors.New("missing period")

// ErrMissingFinancialYear is returned when a referenced financial year does
// not exist.
var ErrMissingFinancialYear = errors.New("missing financial year")

// FinancialYear is a contiguous span of periods labelled by an integer year.
// "Finalised" is derived, never stored: a year is finalised once a brought
// forward posting exists in the first period of the following year.
type FinancialYear struct {
	FinancialYearID string `json:"financialYearID"`
	Year            int    `json:"year"`
	NumberOfPeriods int    `json:"numberOfPeriods"`
	AuditFields
}

// Period is one calendar-month accounting period.
//
// FYAndPeriod is the six digit sortable key, e.g. "202001" for the first
// period of FY 2020. Lexicographic order on it must agree with chronological
// order, which CheckContiguous enforces.
type Period struct {
	PeriodID        string    `json:"periodID"`
	FinancialYearID string    `json:"financialYearID"`
	Number          string    `json:"number"`      // two digit ordinal within the year, "01".."NN"
	FYAndPeriod     string    `json:"fyAndPeriod"` // year + ordinal, "202001"
	MonthStart      time.Time `json:"monthStart"`
	MonthEnd        time.Time `json:"monthEnd"`
	AuditFields
}

// Year returns the financial year label encoded in FYAndPeriod.
func (p Period) Year() int {
	var y int
	fmt.Sscanf(p.FYAndPeriod, "%4d", &y)
	return y
}

func (p Period) Before(other Period) bool {
	return p.FYAndPeriod < other.FYAndPeriod
}

func (p Period) After(other Period) bool {
	return p.FYAndPeriod > other.FYAndPeriod
}

// FYAndPeriodKey builds the sortable key from a year label and ordinal.
func FYAndPeriodKey(year, ordinal int) string {
	return fmt.Sprintf("%04d%02d", year, ordinal)
}

// Calendar is the globally ordered period sequence across every financial
// year. All period arithmetic walks this sequence so additions and
// subtractions cross year boundaries transparently.
type Calendar struct {
	years   map[int]FinancialYear
	periods []Period // sorted by FYAndPeriod
	index   map[string]int
}

// NewCalendar builds a calendar from all known years and periods. It sorts
// defensively; it does not validate contiguity (see CheckContiguous).
func NewCalendar(years []FinancialYear, periods []Period) *Calendar {
	c := &Calendar{
		years:   make(map[int]FinancialYear, len(years)),
		periods: make([]Period, len(periods)),
		index:   make(map[string]int, len(periods)),
	}
	for _, fy := range years {
		c.years[fy.Year] = fy
	}
	copy(c.periods, periods)
	sort.Slice(c.periods, func(i, j int) bool {
		return c.periods[i].FYAndPeriod < c.periods[j].FYAndPeriod
	})
	for i, p := range c.periods {
		c.index[p.FYAndPeriod] = i
	}
	return c
}

// Periods returns the ordered sequence.
func (c *Calendar) Periods() []Period {
	return c.periods
}

// Years returns every financial year, ordered by label.
func (c *Calendar) Years() []FinancialYear {
	out := make([]FinancialYear, 0, len(c.years))
	for _, fy := range c.years {
		out = append(out, fy)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// Year looks up a financial year by its label.
func (c *Calendar) Year(label int) (FinancialYear, error) {
	fy, ok := c.years[label]
	if !ok {
		return FinancialYear{}, fmt.Errorf("FY %d: %w", label, ErrMissingFinancialYear)
	}
	return fy, nil
}

// Get returns the period with the given key.
func (c *Calendar) Get(fyAndPeriod string) (Period, error) {
	i, ok := c.index[fyAndPeriod]
	if !ok {
		return Period{}, fmt.Errorf("period %s: %w", fyAndPeriod, ErrMissingPeriod)
	}
	return c.periods[i], nil
}

// Add returns the period n calendar months after p. n may be negative.
// Fails with ErrMissingPeriod when the walk runs off either end of the
// sequence, i.e. no earlier/later financial year with periods exists.
func (c *Calendar) Add(p Period, n int) (Period, error) {
	i, ok := c.index[p.FYAndPeriod]
	if !ok {
		return Period{}, fmt.Errorf("period %s: %w", p.FYAndPeriod, ErrMissingPeriod)
	}
	j := i + n
	if j < 0 {
		return Period{}, fmt.Errorf("no FY with periods before %s: %w", p.FYAndPeriod, ErrMissingPeriod)
	}
	if j >= len(c.periods) {
		return Period{}, fmt.Errorf("no FY with periods after %s: %w", p.FYAndPeriod, ErrMissingPeriod)
	}
	return c.periods[j], nil
}

// Subtract returns the period n calendar months before p.
func (c *Calendar) Subtract(p Period, n int) (Period, error) {
	return c.Add(p, -n)
}

// FirstPeriodOf returns the earliest period of a financial year, ordered by
// FYAndPeriod.
func (c *Calendar) FirstPeriodOf(year int) (Period, error) {
	for _, p := range c.periods {
		if p.Year() == year {
			return p, nil
		}
	}
	return Period{}, fmt.Errorf("no periods found for FY %d: %w", year, ErrMissingPeriod)
}

// LastPeriodOf returns the latest period of a financial year.
func (c *Calendar) LastPeriodOf(year int) (Period, error) {
	for i := len(c.periods) - 1; i >= 0; i-- {
		if c.periods[i].Year() == year {
			return c.periods[i], nil
		}
	}
	return Period{}, fmt.Errorf("no periods found for FY %d: %w", year, ErrMissingPeriod)
}

// CheckContiguous validates the global calendar invariants:
//
//  1. period months are consecutive across the whole sequence, regardless of
//     financial year boundaries;
//  2. each year's periods are numbered densely from 01;
//  3. financial year labels are consecutive integers.
func (c *Calendar) CheckContiguous() error {
	for i := 0; i < len(c.periods)-1; i++ {
		cur, next := c.periods[i], c.periods[i+1]
		if nextMonth(cur.MonthStart) != monthOf(next.MonthStart) {
			return fmt.Errorf("periods %s and %s are not consecutive calendar months",
				cur.FYAndPeriod, next.FYAndPeriod)
		}
	}
	byYear := make(map[int][]Period)
	for _, p := range c.periods {
		byYear[p.Year()] = append(byYear[p.Year()], p)
	}
	var labels []int
	for label := range byYear {
		labels = append(labels, label)
	}
	sort.Ints(labels)
	for i := 0; i < len(labels)-1; i++ {
		if labels[i]+1 != labels[i+1] {
			return fmt.Errorf("financial years must be consecutive: %d is followed by %d",
				labels[i], labels[i+1])
		}
	}
	for _, label := range labels {
		for i, p := range byYear[label] {
			if want := fmt.Sprintf("%02d", i+1); p.Number != want {
				return fmt.Errorf("FY %d period %s is out of sequence, expected %s",
					label, p.Number, want)
			}
		}
	}
	return nil
}

func monthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func nextMonth(t time.Time) time.Time {
	return monthOf(t).AddDate(0, 1, 0)
}

// EndOfMonth returns the last calendar day of t's month.
func EndOfMonth(t time.Time) time.Time {
	return monthOf(t).AddDate(0, 1, -1)
}

package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuarterWindow(t *testing.T) {
	tests := []struct {
		year, quarter int
		start, end    time.Time
	}{
		{2025, 1, Day(2025, time.January, 1), Day(2025, time.March, 31)},
		{2025, 2, Day(2025, time.April, 1), Day(2025, time.June, 30)},
		{2025, 3, Day(2025, time.July, 1), Day(2025, time.September, 30)},
		{2025, 4, Day(2025, time.October, 1), Day(2025, time.December, 31)},
		{2024, 1, Day(2024, time.January, 1), Day(2024, time.March, 31)}, // leap year Feb covered
	}
	for _, tc := range tests {
		w := QuarterWindow(tc.year, tc.quarter)
		assert.Equal(t, tc.start, w.Start, "Q%d %d start", tc.quarter, tc.year)
		assert.Equal(t, tc.end, w.End, "Q%d %d end", tc.quarter, tc.year)
	}
}

func TestWeekWindow_MondayThroughSunday(t *testing.T) {
	// Mar 15 2025 is a Saturday.
	w := WeekWindow(Day(2025, time.March, 15))
	assert.Equal(t, Day(2025, time.March, 10), w.Start)
	assert.Equal(t, Day(2025, time.March, 16), w.End)

	// A Monday maps to itself.
	w = WeekWindow(Day(2025, time.March, 10))
	assert.Equal(t, Day(2025, time.March, 10), w.Start)

	// A Sunday belongs to the week that started six days earlier.
	w = WeekWindow(Day(2025, time.March, 16))
	assert.Equal(t, Day(2025, time.March, 10), w.Start)
}

func TestFourWeekPeriods2025(t *testing.T) {
	periods := FourWeekPeriods(2025)
	require.Len(t, periods, 13)

	assert.Equal(t, Day(2025, time.January, 5), periods[0].Start)
	assert.Equal(t, Day(2025, time.March, 2), periods[2].Start)
	assert.Equal(t, Day(2025, time.March, 29), periods[2].End)
	// Period 13 spans into the following January.
	assert.Equal(t, Day(2025, time.December, 7), periods[12].Start)
	assert.Equal(t, Day(2026, time.January, 3), periods[12].End)

	// Consecutive, no gaps.
	for i := 1; i < len(periods); i++ {
		assert.Equal(t, periods[i-1].End.AddDate(0, 0, 1), periods[i].Start, "period %d", i+1)
	}
}

func TestFourWeekPeriodsComputedYear(t *testing.T) {
	// Jan 4 2026 is a Sunday, so period 1 starts the NEXT Sunday.
	periods := FourWeekPeriods(2026)
	require.Len(t, periods, 13)
	assert.Equal(t, Day(2026, time.January, 11), periods[0].Start)

	for i, p := range periods {
		assert.Equal(t, time.Sunday, p.Start.Weekday(), "period %d start", i+1)
		assert.Equal(t, p.Start.AddDate(0, 0, 27), p.End, "period %d length", i+1)
	}
}

func TestCurrentPeriod(t *testing.T) {
	// Mar 15 2025 falls in period 3 (Mar 2 - Mar 29).
	idx, w := CurrentPeriod(2025, Day(2025, time.March, 15))
	assert.Equal(t, 3, idx)
	assert.Equal(t, Day(2025, time.March, 2), w.Start)
	assert.Equal(t, Day(2025, time.March, 29), w.End)

	// Before the year's first period: previous year's period 13.
	idx, w = CurrentPeriod(2025, Day(2025, time.January, 2))
	assert.Equal(t, 13, idx)
	assert.True(t, w.Contains(Day(2025, time.January, 2)))
}

func TestNavigationWrapsAcrossYears(t *testing.T) {
	y, q := NextQuarter(2024, 4)
	assert.Equal(t, 2025, y)
	assert.Equal(t, 1, q)

	y, q = PrevQuarter(2025, 1)
	assert.Equal(t, 2024, y)
	assert.Equal(t, 4, q)

	y, p := NextPeriod(2025, 13)
	assert.Equal(t, 2026, y)
	assert.Equal(t, 1, p)

	y, p = PrevPeriod(2026, 1)
	assert.Equal(t, 2025, y)
	assert.Equal(t, 13, p)

	week := WeekWindow(Day(2024, time.December, 30))
	next := NextWeek(week)
	assert.Equal(t, Day(2025, time.January, 6), next.Start)
	assert.Equal(t, week, PrevWeek(next))
}

func TestWindowDays(t *testing.T) {
	w := Window{Start: Day(2025, time.February, 27), End: Day(2025, time.March, 2)}
	days := w.Days()
	require.Len(t, days, 4)
	assert.Equal(t, "2025-02-28", FormatDay(days[1]))
	assert.Equal(t, "2025-03-01", FormatDay(days[2]))
}

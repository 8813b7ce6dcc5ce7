package period

import "time"

// Window is an inclusive calendar date range. Start and End are
// midnight-UTC day values; all arithmetic in this package works on
// whole days.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

const dayLayout = "2006-01-02"

// Day builds a midnight-UTC date value.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// FormatDay renders a date as yyyy-MM-dd. ISO dates sort
// lexicographically the same as chronologically, which the aggregation
// code relies on.
func FormatDay(t time.Time) string {
	return t.Format(dayLayout)
}

// ParseDay parses a yyyy-MM-dd string into a midnight-UTC date.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(dayLayout, s, time.UTC)
}

func truncateDay(t time.Time) time.Time {
	return Day(t.Year(), t.Month(), t.Day())
}

// Contains reports whether d falls inside the window, inclusive on
// both ends.
func (w Window) Contains(d time.Time) bool {
	d = truncateDay(d)
	return !d.Before(w.Start) && !d.After(w.End)
}

// Days enumerates every date in the window, inclusive.
func (w Window) Days() []time.Time {
	var days []time.Time
	for d := w.Start; !d.After(w.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// QuarterWindow maps a calendar quarter (1..4) to its 3-month span:
// Q1 = Jan 1 .. Mar 31 and so on. Out-of-range quarters are clamped.
func QuarterWindow(year, quarter int) Window {
	if quarter < 1 {
		quarter = 1
	}
	if quarter > 4 {
		quarter = 4
	}
	startMonth := time.Month((quarter-1)*3 + 1)
	start := Day(year, startMonth, 1)
	end := start.AddDate(0, 3, -1)
	return Window{Start: start, End: end}
}

// MonthWindow returns the full calendar month containing the first of
// the given month.
func MonthWindow(year int, month time.Month) Window {
	start := Day(year, month, 1)
	return Window{Start: start, End: start.AddDate(0, 1, -1)}
}

// WeekWindow returns the ISO week (Monday through Sunday) containing
// the given date.
func WeekWindow(date time.Time) Window {
	d := truncateDay(date)
	offset := (int(d.Weekday()) + 6) % 7 // Monday = 0
	start := d.AddDate(0, 0, -offset)
	return Window{Start: start, End: start.AddDate(0, 0, 6)}
}

// periods2025 is the hand-picked table used in production for 2025.
// Period 13 runs into the next year, through Jan 3 2026.
var periods2025 = []Window{
	{Day(2025, time.January, 5), Day(2025, time.February, 1)},
	{Day(2025, time.February, 2), Day(2025, time.March, 1)},
	{Day(2025, time.March, 2), Day(2025, time.March, 29)},
	{Day(2025, time.March, 30), Day(2025, time.April, 26)},
	{Day(2025, time.April, 27), Day(2025, time.May, 24)},
	{Day(2025, time.May, 25), Day(2025, time.June, 21)},
	{Day(2025, time.June, 22), Day(2025, time.July, 19)},
	{Day(2025, time.July, 20), Day(2025, time.August, 16)},
	{Day(2025, time.August, 17), Day(2025, time.September, 13)},
	{Day(2025, time.September, 14), Day(2025, time.October, 11)},
	{Day(2025, time.October, 12), Day(2025, time.November, 8)},
	{Day(2025, time.November, 9), Day(2025, time.December, 6)},
	{Day(2025, time.December, 7), Day(2026, time.January, 3)},
}

// FourWeekPeriods returns the 13 consecutive 28-day comparison periods
// for a year. 2025 uses the literal table above; any other year starts
// period 1 on the first Sunday strictly after January 4th.
func FourWeekPeriods(year int) []Window {
	if year == 2025 {
		out := make([]Window, len(periods2025))
		copy(out, periods2025)
		return out
	}

	start := Day(year, time.January, 5)
	for start.Weekday() != time.Sunday {
		start = start.AddDate(0, 0, 1)
	}

	periods := make([]Window, 0, 13)
	for i := 0; i < 13; i++ {
		periods = append(periods, Window{Start: start, End: start.AddDate(0, 0, 27)})
		start = start.AddDate(0, 0, 28)
	}
	return periods
}

// CurrentPeriod returns the 1-based index and window of the 4-week
// period containing today. If today precedes the year's first period
// it falls back to the previous year's 13th period.
func CurrentPeriod(year int, today time.Time) (int, Window) {
	today = truncateDay(today)
	periods := FourWeekPeriods(year)
	if today.Before(periods[0].Start) {
		prev := FourWeekPeriods(year - 1)
		return 13, prev[12]
	}
	for i, p := range periods {
		if p.Contains(today) {
			return i + 1, p
		}
	}
	// Past period 13: the caller asked with a stale year.
	next := FourWeekPeriods(year + 1)
	return 1, next[0]
}

// NextQuarter advances one quarter, wrapping Q4 into Q1 of the next
// year.
func NextQuarter(year, quarter int) (int, int) {
	if quarter >= 4 {
		return year + 1, 1
	}
	return year, quarter + 1
}

// PrevQuarter steps one quarter back, wrapping Q1 into Q4 of the
// previous year.
func PrevQuarter(year, quarter int) (int, int) {
	if quarter <= 1 {
		return year - 1, 4
	}
	return year, quarter - 1
}

// NextPeriod advances one 4-week period, wrapping period 13 into
// period 1 of the next year.
func NextPeriod(year, index int) (int, int) {
	if index >= 13 {
		return year + 1, 1
	}
	return year, index + 1
}

// PrevPeriod steps one 4-week period back, wrapping period 1 into
// period 13 of the previous year.
func PrevPeriod(year, index int) (int, int) {
	if index <= 1 {
		return year - 1, 13
	}
	return year, index - 1
}

// NextWeek shifts an ISO week window forward seven days.
func NextWeek(w Window) Window {
	return Window{Start: w.Start.AddDate(0, 0, 7), End: w.End.AddDate(0, 0, 7)}
}

// PrevWeek shifts an ISO week window back seven days.
func PrevWeek(w Window) Window {
	return Window{Start: w.Start.AddDate(0, 0, -7), End: w.End.AddDate(0, 0, -7)}
}

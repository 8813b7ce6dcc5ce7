package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doneRun(start time.Time, n int) []Entry {
	var entries []Entry
	for i := 0; i < n; i++ {
		entries = append(entries, Entry{Date: FormatDay(start.AddDate(0, 0, i)), Status: StatusDone})
	}
	return entries
}

func TestAggregateQuarterExample(t *testing.T) {
	// Q1 2025, today = Feb 10: past days are Jan 1 - Feb 10 (41 days),
	// with done entries on Feb 1 and Feb 2 only.
	habit := Habit{ID: 1, Name: "read", Entries: doneRun(Day(2025, time.February, 1), 2)}
	today := Day(2025, time.February, 10)

	s := Aggregate([]Habit{habit}, QuarterWindow(2025, 1), SubdivideMonth, today)

	assert.Equal(t, 41, s.PastDays)
	require.Len(t, s.PerHabit, 1)
	assert.Equal(t, 2, s.PerHabit[0].Done)
	assert.Equal(t, 5, s.PerHabit[0].Percentage) // round(2/41*100)
	assert.Equal(t, 2, s.TotalDone)
	assert.Equal(t, 41, s.TotalPossible)
	assert.Equal(t, 5, s.Percentage)

	// Monthly sub-periods: January fully past, February clamped at the 10th.
	require.Len(t, s.SubPeriods, 2)
	assert.Equal(t, "2025-01", s.SubPeriods[0].Key)
	assert.Equal(t, 31, s.SubPeriods[0].Possible)
	assert.Equal(t, 0, s.SubPeriods[0].Done)
	assert.Equal(t, "2025-02", s.SubPeriods[1].Key)
	assert.Equal(t, 10, s.SubPeriods[1].Possible)
	assert.Equal(t, 2, s.SubPeriods[1].Done)
	assert.Equal(t, 20, s.SubPeriods[1].Percentage)
}

func TestAggregateFutureWindowIsEmpty(t *testing.T) {
	habit := Habit{ID: 1, Entries: doneRun(Day(2025, time.April, 1), 5)}
	today := Day(2025, time.March, 1)

	s := Aggregate([]Habit{habit}, QuarterWindow(2025, 2), SubdivideMonth, today)

	assert.Equal(t, 0, s.PastDays)
	assert.Equal(t, 0, s.TotalPossible)
	assert.Equal(t, 0, s.Percentage)
	assert.Equal(t, 0, s.PerHabit[0].Percentage)
	assert.Empty(t, s.SubPeriods)
}

func TestAggregateNoHabits(t *testing.T) {
	s := Aggregate(nil, QuarterWindow(2025, 1), SubdivideNone, Day(2025, time.February, 1))
	assert.Equal(t, 0, s.TotalPossible)
	assert.Equal(t, 0, s.Percentage)
	assert.Empty(t, s.PerHabit)
}

func TestAggregateMissedAndSkippedTrackOnly(t *testing.T) {
	habit := Habit{ID: 1, Entries: []Entry{
		{Date: "2025-02-03", Status: StatusDone},
		{Date: "2025-02-04", Status: StatusMissed},
		{Date: "2025-02-05", Status: StatusSkipped},
	}}
	w := WeekWindow(Day(2025, time.February, 3))
	s := Aggregate([]Habit{habit}, w, SubdivideNone, Day(2025, time.February, 9))

	assert.Equal(t, 1, s.PerHabit[0].Done)
	assert.Equal(t, 3, s.PerHabit[0].Tracked)
	assert.Equal(t, 7, s.PastDays)
	assert.Equal(t, 14, s.PerHabit[0].Percentage) // round(1/7*100)
}

func TestAggregateMalformedDatesNeverMatch(t *testing.T) {
	habit := Habit{ID: 1, Entries: []Entry{
		{Date: "not-a-date", Status: StatusDone},
		{Date: "", Status: StatusDone},
		{Date: "9999-99-99", Status: StatusDone},
	}}
	s := Aggregate([]Habit{habit}, QuarterWindow(2025, 1), SubdivideMonth, Day(2025, time.February, 1))
	assert.Equal(t, 0, s.PerHabit[0].Done)
	assert.Equal(t, 0, s.PerHabit[0].Tracked)
}

func TestAggregateIdempotent(t *testing.T) {
	habits := []Habit{
		{ID: 1, Entries: doneRun(Day(2025, time.January, 10), 20)},
		{ID: 2, Entries: doneRun(Day(2025, time.February, 1), 3)},
	}
	today := Day(2025, time.February, 20)
	w := QuarterWindow(2025, 1)

	first := Aggregate(habits, w, SubdivideMonth, today)
	second := Aggregate(habits, w, SubdivideMonth, today)
	assert.Equal(t, first, second)
}

func TestSubPeriodsPartitionPastDaysExactly(t *testing.T) {
	habits := []Habit{
		{ID: 1, Entries: doneRun(Day(2025, time.January, 1), 30)},
		{ID: 2, Entries: doneRun(Day(2025, time.February, 5), 4)},
		{ID: 3},
	}
	today := Day(2025, time.March, 7)

	for _, subdiv := range []Subdivision{SubdivideWeek, SubdivideMonth} {
		s := Aggregate(habits, QuarterWindow(2025, 1), subdiv, today)

		sumPossible, sumDone := 0, 0
		for _, sp := range s.SubPeriods {
			sumPossible += sp.Possible
			sumDone += sp.Done
		}
		assert.Equal(t, s.TotalPossible, sumPossible)
		assert.Equal(t, s.TotalDone, sumDone)

		// Chronological ordering, never discovery order.
		for i := 1; i < len(s.SubPeriods); i++ {
			assert.Less(t, s.SubPeriods[i-1].Key, s.SubPeriods[i].Key)
		}
	}
}

func TestSubPeriodWeekKeysSortAcrossYearBoundary(t *testing.T) {
	// Jan 1-2 2027 belong to ISO week 53 of 2026; the week row must
	// come before 2027's week 1 row.
	habits := []Habit{{ID: 1}}
	w := MonthWindow(2027, time.January)
	s := Aggregate(habits, w, SubdivideWeek, Day(2027, time.January, 15))

	require.NotEmpty(t, s.SubPeriods)
	assert.Equal(t, "2026-W53", s.SubPeriods[0].Key)
	assert.Equal(t, "2027-W01", s.SubPeriods[1].Key)
}

func TestPercentageBounds(t *testing.T) {
	// Fully complete range pins at exactly 100.
	habit := Habit{ID: 1, Entries: doneRun(Day(2025, time.February, 3), 7)}
	w := WeekWindow(Day(2025, time.February, 3))
	s := Aggregate([]Habit{habit}, w, SubdivideNone, Day(2025, time.February, 9))
	assert.Equal(t, 100, s.Percentage)
	assert.Equal(t, 100, s.PerHabit[0].Percentage)
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		num, den, want int
	}{
		{1, 8, 13},  // 12.5 rounds up
		{1, 200, 1}, // 0.5 rounds up
		{2, 41, 5},
		{9, 21, 43},
		{0, 7, 0},
		{0, 0, 0},
		{7, 7, 100},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, roundPct(tc.num, tc.den), "%d/%d", tc.num, tc.den)
	}
}

func TestScoreWeekExample(t *testing.T) {
	// Done Mon, Tue, Wed of the current ISO week: 9 points, 43%.
	habit := Habit{ID: 1, Entries: doneRun(Day(2025, time.March, 10), 3)}
	week := WeekWindow(Day(2025, time.March, 12))

	score := ScoreWeek([]Habit{habit}, week, Day(2025, time.March, 12))
	assert.Equal(t, 9, score.Points)
	assert.Equal(t, 21, score.MaxPoints)
	assert.Equal(t, 43, score.Percentage)
}

func TestScoreWeekCapAndZeroHabits(t *testing.T) {
	// A full week is 21 points regardless of the habit's weekly target.
	habit := Habit{ID: 1, Entries: doneRun(Day(2025, time.March, 10), 7)}
	week := WeekWindow(Day(2025, time.March, 10))
	score := ScoreWeek([]Habit{habit}, week, Day(2025, time.March, 16))
	assert.Equal(t, 21, score.Points)
	assert.Equal(t, 100, score.Percentage)

	score = ScoreWeek(nil, week, Day(2025, time.March, 16))
	assert.Equal(t, 0, score.Points)
	assert.Equal(t, 0, score.Percentage)
}

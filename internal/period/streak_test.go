package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStreak(t *testing.T) {
	today := Day(2025, time.March, 15)

	tests := []struct {
		name    string
		entries []Entry
		want    int
	}{
		{"no entries", nil, 0},
		{
			"single done today",
			[]Entry{{Date: "2025-03-15", Status: StatusDone}},
			1,
		},
		{
			"run ending yesterday stays alive",
			doneRun(Day(2025, time.March, 11), 4), // Mar 11-14
			4,
		},
		{
			"run ending today",
			doneRun(Day(2025, time.March, 11), 5), // Mar 11-15
			5,
		},
		{
			"last done two days ago resets to zero",
			doneRun(Day(2025, time.March, 1), 13), // Mar 1-13
			0,
		},
		{
			"gap stops the walk",
			append(doneRun(Day(2025, time.March, 13), 3), Entry{Date: "2025-03-10", Status: StatusDone}),
			3,
		},
		{
			"missed day does not bridge a gap",
			[]Entry{
				{Date: "2025-03-15", Status: StatusDone},
				{Date: "2025-03-14", Status: StatusMissed},
				{Date: "2025-03-13", Status: StatusDone},
			},
			1,
		},
		{
			"skipped day does not extend",
			[]Entry{
				{Date: "2025-03-15", Status: StatusSkipped},
				{Date: "2025-03-14", Status: StatusDone},
				{Date: "2025-03-13", Status: StatusDone},
			},
			2,
		},
		{
			"quarter example: done Feb 1-2, nothing since",
			doneRun(Day(2025, time.February, 1), 2),
			0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Streak(tc.entries, today))
		})
	}
}

func TestStreakMonotonicity(t *testing.T) {
	// A streak of N as of yesterday becomes N+1 after marking today.
	entries := doneRun(Day(2025, time.March, 10), 5) // Mar 10-14
	today := Day(2025, time.March, 15)

	assert.Equal(t, 5, Streak(entries, today))

	entries = append(entries, Entry{Date: "2025-03-15", Status: StatusDone})
	assert.Equal(t, 6, Streak(entries, today))
}

func TestStreakAcrossMonthBoundary(t *testing.T) {
	entries := doneRun(Day(2025, time.February, 26), 4) // Feb 26 - Mar 1
	assert.Equal(t, 4, Streak(entries, Day(2025, time.March, 1)))
}

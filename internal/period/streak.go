package period

import (
	"sort"
	"time"
)

// Streak computes the current consecutive-day completion streak for
// one habit's entries, as of today. A streak is alive only if its most
// recent done day is today or yesterday; anything older reads as 0 no
// matter how long the historical run was. Non-done days are not
// skipped over: the walk stops at the first calendar gap.
//
// The value is derived on every read and never stored.
func Streak(entries []Entry, today time.Time) int {
	done := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.Status == StatusDone {
			done[e.Date] = true
		}
	}
	if len(done) == 0 {
		return 0
	}

	dates := make([]string, 0, len(done))
	for d := range done {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	today = truncateDay(today)
	latest := dates[0]
	if latest != FormatDay(today) && latest != FormatDay(today.AddDate(0, 0, -1)) {
		return 0
	}

	cursor, err := ParseDay(latest)
	if err != nil {
		return 0
	}

	streak := 0
	for done[FormatDay(cursor)] {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}

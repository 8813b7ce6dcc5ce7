package period

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// EntryStatus is the per-day completion state of a habit.
type EntryStatus string

const (
	StatusDone    EntryStatus = "done"
	StatusMissed  EntryStatus = "missed"
	StatusSkipped EntryStatus = "skipped"
)

// Entry is one day's record for a habit. Date is yyyy-MM-dd.
type Entry struct {
	Date   string      `json:"date"`
	Status EntryStatus `json:"status"`
}

// Habit is the plain record shape the aggregator consumes: a habit
// joined with all of its entries. Archived habits must be filtered out
// by the caller before aggregation.
type Habit struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Entries []Entry `json:"entries"`
}

// Subdivision selects how Aggregate partitions past days into
// sub-period rows.
type Subdivision int

const (
	SubdivideNone  Subdivision = iota
	SubdivideWeek              // ISO week rows, for month/period views
	SubdivideMonth             // calendar month rows, for quarter/year views
)

// HabitStats is the per-habit slice of a window summary.
type HabitStats struct {
	HabitID    int    `json:"habit_id"`
	Name       string `json:"name"`
	Done       int    `json:"done"`
	Tracked    int    `json:"tracked"` // days with any entry, shown in the grid
	Percentage int    `json:"percentage"`
}

// SubPeriodStats is one chronological partition of the past days in a
// window (an ISO week or a calendar month).
type SubPeriodStats struct {
	Key        string `json:"key"` // sortable: "2025-W06" or "2025-02"
	Start      string `json:"start"`
	End        string `json:"end"`
	Done       int    `json:"done"`
	Possible   int    `json:"possible"`
	Percentage int    `json:"percentage"`
}

// Summary is the display-ready reduction of a window.
type Summary struct {
	Window        Window           `json:"window"`
	PastDays      int              `json:"past_days"`
	PerHabit      []HabitStats     `json:"per_habit"`
	TotalDone     int              `json:"total_done"`
	TotalPossible int              `json:"total_possible"`
	Percentage    int              `json:"percentage"`
	SubPeriods    []SubPeriodStats `json:"sub_periods,omitempty"`
}

// roundPct is round-half-up of num/den as a percentage, with the zero
// denominator convention: never NaN, never negative.
func roundPct(num, den int) int {
	if den == 0 {
		return 0
	}
	return int(math.Floor(float64(num)/float64(den)*100.0 + 0.5))
}

// pastDays enumerates the days of w up to and including today. Days
// after today are excluded even though they belong to the window.
func pastDays(w Window, today time.Time) []time.Time {
	today = truncateDay(today)
	end := w.End
	if end.After(today) {
		end = today
	}
	if w.Start.After(end) {
		return nil
	}
	return Window{Start: w.Start, End: end}.Days()
}

// Aggregate reduces a window, a set of habits, and their entries into
// the statistics the habit grid and comparison views render. It is
// pure: "today" is injected and no input is mutated. Entries dated
// outside the window, including malformed dates, simply never match.
func Aggregate(habits []Habit, w Window, subdiv Subdivision, today time.Time) Summary {
	days := pastDays(w, today)

	startKey := FormatDay(w.Start)
	endKey := ""
	if len(days) > 0 {
		endKey = FormatDay(days[len(days)-1])
	}

	summary := Summary{Window: w, PastDays: len(days)}

	doneByDay := make(map[string]int)
	for _, h := range habits {
		stats := HabitStats{HabitID: h.ID, Name: h.Name}
		for _, e := range h.Entries {
			if endKey == "" || e.Date < startKey || e.Date > endKey {
				continue
			}
			stats.Tracked++
			if e.Status == StatusDone {
				stats.Done++
				doneByDay[e.Date]++
			}
		}
		stats.Percentage = roundPct(stats.Done, len(days))
		summary.TotalDone += stats.Done
		summary.PerHabit = append(summary.PerHabit, stats)
	}

	summary.TotalPossible = len(days) * len(habits)
	summary.Percentage = roundPct(summary.TotalDone, summary.TotalPossible)

	if subdiv != SubdivideNone {
		summary.SubPeriods = subdivide(days, doneByDay, len(habits), subdiv)
	}
	return summary
}

func subKey(d time.Time, subdiv Subdivision) string {
	if subdiv == SubdivideWeek {
		y, wk := d.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", y, wk)
	}
	return fmt.Sprintf("%04d-%02d", d.Year(), int(d.Month()))
}

// subdivide partitions the past days by ISO week or calendar month and
// computes the same done/possible/percentage triple per partition.
// Partitions come back ordered by key, which for both key shapes is
// chronological order.
func subdivide(days []time.Time, doneByDay map[string]int, habitCount int, subdiv Subdivision) []SubPeriodStats {
	byKey := make(map[string]*SubPeriodStats)
	for _, d := range days {
		key := subKey(d, subdiv)
		sp, ok := byKey[key]
		if !ok {
			sp = &SubPeriodStats{Key: key, Start: FormatDay(d)}
			byKey[key] = sp
		}
		sp.End = FormatDay(d)
		sp.Possible += habitCount
		sp.Done += doneByDay[FormatDay(d)]
	}

	out := make([]SubPeriodStats, 0, len(byKey))
	for _, sp := range byKey {
		sp.Percentage = roundPct(sp.Done, sp.Possible)
		out = append(out, *sp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Weekly scoring: a fixed currency of 3 points per done day, capped at
// 21 per habit per ISO week regardless of the habit's configured
// weekly target.
const (
	PointsPerDone   = 3
	MaxWeeklyPoints = 21
)

// WeeklyScore is one user's leaderboard row for an ISO week.
type WeeklyScore struct {
	Points     int `json:"points"`
	MaxPoints  int `json:"max_points"`
	Percentage int `json:"percentage"`
}

// ScoreWeek computes the weekly point total across habits for the
// Monday-through-Sunday window.
func ScoreWeek(habits []Habit, week Window, today time.Time) WeeklyScore {
	days := pastDays(week, today)
	if len(days) == 0 {
		return WeeklyScore{MaxPoints: len(habits) * MaxWeeklyPoints}
	}
	startKey := FormatDay(days[0])
	endKey := FormatDay(days[len(days)-1])

	score := WeeklyScore{MaxPoints: len(habits) * MaxWeeklyPoints}
	for _, h := range habits {
		pts := 0
		for _, e := range h.Entries {
			if e.Status != StatusDone || e.Date < startKey || e.Date > endKey {
				continue
			}
			pts += PointsPerDone
		}
		if pts > MaxWeeklyPoints {
			pts = MaxWeeklyPoints
		}
		score.Points += pts
	}
	score.Percentage = roundPct(score.Points, score.MaxPoints)
	return score
}

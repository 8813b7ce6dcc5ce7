package model

import "time"

type Habit struct {
	ID            int       `json:"id"`
	UserID        int       `json:"user_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Color         string    `json:"color"`
	TargetPerWeek int       `json:"target_per_week"`
	GoalMetric    string    `json:"goal_metric"`
	Archived      bool      `json:"archived"`
	CreatedAt     time.Time `json:"created_at"`
}

// HabitEntry is one day's record for a habit. EntryDate is a
// yyyy-MM-dd string; the entries table enforces at most one entry per
// (habit_id, entry_date) and entries cascade-delete with their habit.
type HabitEntry struct {
	ID        int       `json:"id"`
	HabitID   int       `json:"habit_id"`
	EntryDate string    `json:"entry_date"`
	Status    string    `json:"status"` // done | missed | skipped
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	EntryStatusDone    = "done"
	EntryStatusMissed  = "missed"
	EntryStatusSkipped = "skipped"
)

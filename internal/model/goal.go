package model

import "time"

type Goal struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Title     string    `json:"title"`
	Type      string    `json:"type"` // daily | weekly | monthly | quarterly | yearly
	Completed bool      `json:"completed"`
	Quarter   int       `json:"quarter,omitempty"`
	Year      int       `json:"year,omitempty"`
	WeekStart string    `json:"week_start,omitempty"` // yyyy-MM-dd Monday
	CreatedAt time.Time `json:"created_at"`
}

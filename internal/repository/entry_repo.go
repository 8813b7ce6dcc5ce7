package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"habitloop/internal/metrics"
	"habitloop/internal/model"
)

type EntryRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewEntryRepository(db *pgxpool.Pool, logger *zap.Logger) *EntryRepository {
	return &EntryRepository{
		db:     db,
		logger: logger,
	}
}

// FindByHabitAndDate returns the single entry for a (habit, date)
// pair; the unique index guarantees at most one exists.
func (r *EntryRepository) FindByHabitAndDate(ctx context.Context, habitID int, date string) (*model.HabitEntry, error) {
	query := `
        SELECT id, habit_id, entry_date, status, note, created_at
        FROM habit_entries
        WHERE habit_id = $1 AND entry_date = $2
    `
	var e model.HabitEntry
	err := r.db.QueryRow(ctx, query, habitID, date).Scan(
		&e.ID, &e.HabitID, &e.EntryDate, &e.Status, &e.Note, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EntryRepository) Insert(ctx context.Context, e *model.HabitEntry) error {
	start := time.Now()
	query := `
        INSERT INTO habit_entries (habit_id, entry_date, status, note, created_at)
        VALUES ($1, $2, $3, $4, NOW())
        RETURNING id
    `
	err := r.db.QueryRow(ctx, query, e.HabitID, e.EntryDate, e.Status, e.Note).Scan(&e.ID)
	metrics.RecordDBQueryDuration("insert", "habit_entries", time.Since(start))

	if err != nil {
		r.logger.Error("Failed to insert entry",
			zap.Int("habit_id", e.HabitID),
			zap.String("entry_date", e.EntryDate),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (r *EntryRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	start := time.Now()
	query := `UPDATE habit_entries SET status = $1 WHERE id = $2`
	_, err := r.db.Exec(ctx, query, status, id)
	metrics.RecordDBQueryDuration("update", "habit_entries", time.Since(start))

	if err != nil {
		r.logger.Error("Failed to update entry status",
			zap.Int("id", id),
			zap.String("status", status),
			zap.Error(err),
		)
	}
	return err
}

func (r *EntryRepository) UpdateNote(ctx context.Context, id int, note string) error {
	query := `UPDATE habit_entries SET note = $1 WHERE id = $2`
	_, err := r.db.Exec(ctx, query, note, id)
	if err != nil {
		r.logger.Error("Failed to update entry note", zap.Int("id", id), zap.Error(err))
	}
	return err
}

// Delete reverts a day to untracked.
func (r *EntryRepository) Delete(ctx context.Context, id int) error {
	start := time.Now()
	query := `DELETE FROM habit_entries WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	metrics.RecordDBQueryDuration("delete", "habit_entries", time.Since(start))

	if err != nil {
		r.logger.Error("Failed to delete entry", zap.Int("id", id), zap.Error(err))
	}
	return err
}

func (r *EntryRepository) ListByHabit(ctx context.Context, habitID int) ([]model.HabitEntry, error) {
	query := `
        SELECT id, habit_id, entry_date, status, note, created_at
        FROM habit_entries
        WHERE habit_id = $1
        ORDER BY entry_date ASC
    `
	return r.scanEntries(ctx, query, habitID)
}

// ListForUserBetween returns every entry of the user's non-archived
// habits with entry_date inside [start, end], both yyyy-MM-dd.
func (r *EntryRepository) ListForUserBetween(ctx context.Context, userID int, start, end string) ([]model.HabitEntry, error) {
	began := time.Now()
	query := `
        SELECT e.id, e.habit_id, e.entry_date, e.status, e.note, e.created_at
        FROM habit_entries e
        JOIN habits h ON h.id = e.habit_id
        WHERE h.user_id = $1 AND h.archived = FALSE
          AND e.entry_date >= $2 AND e.entry_date <= $3
        ORDER BY e.entry_date ASC
    `
	entries, err := r.scanEntries(ctx, query, userID, start, end)
	metrics.RecordDBQueryDuration("select", "habit_entries", time.Since(began))
	return entries, err
}

func (r *EntryRepository) scanEntries(ctx context.Context, query string, args ...any) ([]model.HabitEntry, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list entries", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var entries []model.HabitEntry
	for rows.Next() {
		var e model.HabitEntry
		if err := rows.Scan(
			&e.ID, &e.HabitID, &e.EntryDate, &e.Status, &e.Note, &e.CreatedAt,
		); err != nil {
			r.logger.Error("Failed to scan entry", zap.Error(err))
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

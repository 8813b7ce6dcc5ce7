package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"habitloop/internal/model"
)

type HabitRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewHabitRepository(db *pgxpool.Pool, logger *zap.Logger) *HabitRepository {
	return &HabitRepository{
		db:     db,
		logger: logger,
	}
}

func (r *HabitRepository) Insert(ctx context.Context, h *model.Habit) (int, error) {
	r.logger.Debug("Inserting habit",
		zap.Int("user_id", h.UserID),
		zap.String("name", h.Name),
	)

	query := `
        INSERT INTO habits (user_id, name, description, color, target_per_week, goal_metric, archived)
        VALUES ($1, $2, $3, $4, $5, $6, FALSE)
        RETURNING id
    `
	var id int
	err := r.db.QueryRow(ctx, query,
		h.UserID,
		h.Name,
		h.Description,
		h.Color,
		h.TargetPerWeek,
		h.GoalMetric,
	).Scan(&id)

	if err != nil {
		r.logger.Error("Failed to insert habit", zap.Error(err))
		return 0, err
	}

	r.logger.Info("Habit inserted successfully",
		zap.Int("id", id),
		zap.Int("user_id", h.UserID),
	)
	return id, nil
}

func (r *HabitRepository) GetByID(ctx context.Context, id int) (*model.Habit, error) {
	query := `
        SELECT id, user_id, name, description, color, target_per_week, goal_metric, archived, created_at
        FROM habits
        WHERE id = $1
    `
	var h model.Habit
	err := r.db.QueryRow(ctx, query, id).Scan(
		&h.ID,
		&h.UserID,
		&h.Name,
		&h.Description,
		&h.Color,
		&h.TargetPerWeek,
		&h.GoalMetric,
		&h.Archived,
		&h.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// ListActiveByUser returns the user's habits with the archived ones
// filtered out. Archived habits are invisible to every aggregation.
func (r *HabitRepository) ListActiveByUser(ctx context.Context, userID int) ([]model.Habit, error) {
	r.logger.Debug("Listing active habits for user", zap.Int("user_id", userID))

	query := `
        SELECT id, user_id, name, description, color, target_per_week, goal_metric, archived, created_at
        FROM habits
        WHERE user_id = $1 AND archived = FALSE
        ORDER BY created_at ASC
    `

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to list habits", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var habits []model.Habit
	for rows.Next() {
		var h model.Habit
		if err := rows.Scan(
			&h.ID,
			&h.UserID,
			&h.Name,
			&h.Description,
			&h.Color,
			&h.TargetPerWeek,
			&h.GoalMetric,
			&h.Archived,
			&h.CreatedAt,
		); err != nil {
			r.logger.Error("Failed to scan habit", zap.Error(err))
			return nil, err
		}
		habits = append(habits, h)
	}

	r.logger.Debug("Listed habits",
		zap.Int("user_id", userID),
		zap.Int("count", len(habits)),
	)
	return habits, nil
}

func (r *HabitRepository) Update(ctx context.Context, h *model.Habit) error {
	query := `
        UPDATE habits
        SET name = $1, description = $2, color = $3, target_per_week = $4, goal_metric = $5
        WHERE id = $6
    `
	_, err := r.db.Exec(ctx, query,
		h.Name,
		h.Description,
		h.Color,
		h.TargetPerWeek,
		h.GoalMetric,
		h.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update habit", zap.Int("id", h.ID), zap.Error(err))
	}
	return err
}

// SetArchived soft-deletes or restores a habit.
func (r *HabitRepository) SetArchived(ctx context.Context, id int, archived bool) error {
	query := `UPDATE habits SET archived = $1 WHERE id = $2`
	_, err := r.db.Exec(ctx, query, archived, id)
	if err != nil {
		r.logger.Error("Failed to set archived flag",
			zap.Int("id", id),
			zap.Bool("archived", archived),
			zap.Error(err),
		)
	}
	return err
}

// Delete removes a habit; its entries go with it via the cascade on
// habit_entries.habit_id.
func (r *HabitRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM habits WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to delete habit", zap.Int("id", id), zap.Error(err))
	}
	return err
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"habitloop/internal/model"
)

type GoalRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewGoalRepository(db *pgxpool.Pool, logger *zap.Logger) *GoalRepository {
	return &GoalRepository{
		db:     db,
		logger: logger,
	}
}

func (r *GoalRepository) Insert(ctx context.Context, g *model.Goal) (int, error) {
	query := `
        INSERT INTO goals (user_id, title, type, completed, quarter, year, week_start, created_at)
        VALUES ($1, $2, $3, FALSE, $4, $5, $6, NOW())
        RETURNING id
    `
	var id int
	err := r.db.QueryRow(ctx, query,
		g.UserID, g.Title, g.Type, g.Quarter, g.Year, g.WeekStart,
	).Scan(&id)
	if err != nil {
		r.logger.Error("Failed to insert goal", zap.Int("user_id", g.UserID), zap.Error(err))
		return 0, err
	}
	return id, nil
}

func (r *GoalRepository) GetByID(ctx context.Context, id int) (*model.Goal, error) {
	query := `
        SELECT id, user_id, title, type, completed, quarter, year, week_start, created_at
        FROM goals
        WHERE id = $1
    `
	var g model.Goal
	err := r.db.QueryRow(ctx, query, id).Scan(
		&g.ID, &g.UserID, &g.Title, &g.Type, &g.Completed,
		&g.Quarter, &g.Year, &g.WeekStart, &g.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GoalRepository) ListByUser(ctx context.Context, userID int) ([]model.Goal, error) {
	query := `
        SELECT id, user_id, title, type, completed, quarter, year, week_start, created_at
        FROM goals
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to list goals", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var goals []model.Goal
	for rows.Next() {
		var g model.Goal
		if err := rows.Scan(
			&g.ID, &g.UserID, &g.Title, &g.Type, &g.Completed,
			&g.Quarter, &g.Year, &g.WeekStart, &g.CreatedAt,
		); err != nil {
			r.logger.Error("Failed to scan goal", zap.Error(err))
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, nil
}

// SetCompleted flips the completed flag.
func (r *GoalRepository) SetCompleted(ctx context.Context, id int, completed bool) error {
	query := `UPDATE goals SET completed = $1 WHERE id = $2`
	_, err := r.db.Exec(ctx, query, completed, id)
	if err != nil {
		r.logger.Error("Failed to set goal completed", zap.Int("id", id), zap.Error(err))
	}
	return err
}

func (r *GoalRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM goals WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to delete goal", zap.Int("id", id), zap.Error(err))
	}
	return err
}

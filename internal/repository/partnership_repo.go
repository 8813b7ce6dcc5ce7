package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"habitloop/internal/model"
)

type PartnershipRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPartnershipRepository(db *pgxpool.Pool, logger *zap.Logger) *PartnershipRepository {
	return &PartnershipRepository{
		db:     db,
		logger: logger,
	}
}

func (r *PartnershipRepository) Insert(ctx context.Context, p *model.Partnership) (int, error) {
	query := `
        INSERT INTO partnerships (requester_id, target_id, status, created_at)
        VALUES ($1, $2, $3, NOW())
        RETURNING id
    `
	var id int
	err := r.db.QueryRow(ctx, query, p.RequesterID, p.TargetID, p.Status).Scan(&id)
	if err != nil {
		r.logger.Error("Failed to insert partnership",
			zap.Int("requester_id", p.RequesterID),
			zap.Int("target_id", p.TargetID),
			zap.Error(err),
		)
		return 0, err
	}
	return id, nil
}

func (r *PartnershipRepository) GetByID(ctx context.Context, id int) (*model.Partnership, error) {
	query := `
        SELECT id, requester_id, target_id, status, created_at
        FROM partnerships
        WHERE id = $1
    `
	var p model.Partnership
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.RequesterID, &p.TargetID, &p.Status, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindBetween looks up the partnership for an unordered user pair,
// ignoring rejected rows. At most one meaningful partnership exists
// per pair.
func (r *PartnershipRepository) FindBetween(ctx context.Context, userA, userB int) (*model.Partnership, error) {
	query := `
        SELECT id, requester_id, target_id, status, created_at
        FROM partnerships
        WHERE ((requester_id = $1 AND target_id = $2) OR (requester_id = $2 AND target_id = $1))
          AND status != 'rejected'
        LIMIT 1
    `
	var p model.Partnership
	err := r.db.QueryRow(ctx, query, userA, userB).Scan(
		&p.ID, &p.RequesterID, &p.TargetID, &p.Status, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PartnershipRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	query := `UPDATE partnerships SET status = $1 WHERE id = $2`
	_, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		r.logger.Error("Failed to update partnership status",
			zap.Int("id", id),
			zap.String("status", status),
			zap.Error(err),
		)
	}
	return err
}

// ListPartners returns the user IDs on the other side of every
// accepted partnership involving the user.
func (r *PartnershipRepository) ListPartners(ctx context.Context, userID int) ([]int, error) {
	query := `
        SELECT CASE WHEN requester_id = $1 THEN target_id ELSE requester_id END
        FROM partnerships
        WHERE (requester_id = $1 OR target_id = $1) AND status = 'accepted'
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to list partners", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var partners []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		partners = append(partners, id)
	}
	return partners, nil
}

// ListPendingForTarget returns invites awaiting the user's answer.
func (r *PartnershipRepository) ListPendingForTarget(ctx context.Context, userID int) ([]model.Partnership, error) {
	query := `
        SELECT id, requester_id, target_id, status, created_at
        FROM partnerships
        WHERE target_id = $1 AND status = 'pending'
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to list pending partnerships", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var pending []model.Partnership
	for rows.Next() {
		var p model.Partnership
		if err := rows.Scan(&p.ID, &p.RequesterID, &p.TargetID, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		pending = append(pending, p)
	}
	return pending, nil
}

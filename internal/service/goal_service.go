package service

import (
	"context"
	"errors"

	"habitloop/internal/model"
	"habitloop/internal/repository"
)

var ErrGoalNotOwner = errors.New("goal does not belong to user")

var validGoalTypes = map[string]bool{
	"daily":     true,
	"weekly":    true,
	"monthly":   true,
	"quarterly": true,
	"yearly":    true,
}

type GoalService struct {
	goalRepo *repository.GoalRepository
}

func NewGoalService(goalRepo *repository.GoalRepository) *GoalService {
	return &GoalService{goalRepo: goalRepo}
}

func (s *GoalService) Create(ctx context.Context, g *model.Goal) error {
	if g.Title == "" {
		return errors.New("goal title is required")
	}
	if !validGoalTypes[g.Type] {
		return errors.New("invalid goal type")
	}
	id, err := s.goalRepo.Insert(ctx, g)
	if err != nil {
		return err
	}
	g.ID = id
	return nil
}

func (s *GoalService) List(ctx context.Context, userID int) ([]model.Goal, error) {
	return s.goalRepo.ListByUser(ctx, userID)
}

func (s *GoalService) owned(ctx context.Context, userID, goalID int) (*model.Goal, error) {
	g, err := s.goalRepo.GetByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if g.UserID != userID {
		return nil, ErrGoalNotOwner
	}
	return g, nil
}

// Toggle flips the completed flag and returns the new state.
func (s *GoalService) Toggle(ctx context.Context, userID, goalID int) (*model.Goal, error) {
	g, err := s.owned(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	if err := s.goalRepo.SetCompleted(ctx, goalID, !g.Completed); err != nil {
		return nil, err
	}
	g.Completed = !g.Completed
	return g, nil
}

func (s *GoalService) Delete(ctx context.Context, userID, goalID int) error {
	if _, err := s.owned(ctx, userID, goalID); err != nil {
		return err
	}
	return s.goalRepo.Delete(ctx, goalID)
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"habitloop/internal/metrics"
	"habitloop/internal/model"
	"habitloop/internal/mq"
	"habitloop/internal/repository"
)

var ErrNotOwner = errors.New("habit does not belong to user")

type HabitService struct {
	habitRepo *repository.HabitRepository
	entryRepo *repository.EntryRepository
	publisher *mq.Publisher
	logger    *zap.Logger
}

func NewHabitService(
	habitRepo *repository.HabitRepository,
	entryRepo *repository.EntryRepository,
	publisher *mq.Publisher,
	logger *zap.Logger,
) *HabitService {
	return &HabitService{
		habitRepo: habitRepo,
		entryRepo: entryRepo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *HabitService) Create(ctx context.Context, h *model.Habit) error {
	if h.Name == "" {
		return errors.New("habit name is required")
	}
	id, err := s.habitRepo.Insert(ctx, h)
	if err != nil {
		return err
	}
	h.ID = id
	return nil
}

func (s *HabitService) List(ctx context.Context, userID int) ([]model.Habit, error) {
	return s.habitRepo.ListActiveByUser(ctx, userID)
}

func (s *HabitService) owned(ctx context.Context, userID, habitID int) (*model.Habit, error) {
	h, err := s.habitRepo.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if h.UserID != userID {
		return nil, ErrNotOwner
	}
	return h, nil
}

func (s *HabitService) Update(ctx context.Context, userID int, h *model.Habit) error {
	if _, err := s.owned(ctx, userID, h.ID); err != nil {
		return err
	}
	return s.habitRepo.Update(ctx, h)
}

// Archive soft-deletes a habit; archived habits drop out of every
// aggregation but keep their entries.
func (s *HabitService) Archive(ctx context.Context, userID, habitID int, archived bool) error {
	if _, err := s.owned(ctx, userID, habitID); err != nil {
		return err
	}
	return s.habitRepo.SetArchived(ctx, habitID, archived)
}

func (s *HabitService) Delete(ctx context.Context, userID, habitID int) error {
	if _, err := s.owned(ctx, userID, habitID); err != nil {
		return err
	}
	return s.habitRepo.Delete(ctx, habitID)
}

// CycleEntry advances a day through the status cycle:
// untracked -> done -> missed -> untracked. The returned entry is nil
// when the day reverted to untracked.
func (s *HabitService) CycleEntry(ctx context.Context, userID, habitID int, date string) (*model.HabitEntry, error) {
	if _, err := parseEntryDate(date); err != nil {
		return nil, errors.New("invalid entry date, want yyyy-MM-dd")
	}
	if _, err := s.owned(ctx, userID, habitID); err != nil {
		return nil, err
	}

	existing, err := s.entryRepo.FindByHabitAndDate(ctx, habitID, date)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	switch {
	case existing == nil:
		e := &model.HabitEntry{
			HabitID:   habitID,
			EntryDate: date,
			Status:    model.EntryStatusDone,
		}
		if err := s.entryRepo.Insert(ctx, e); err != nil {
			return nil, err
		}
		metrics.IncrementEntryTransition(model.EntryStatusDone)
		s.publishEntryChanged(userID, e, model.EntryStatusDone)
		return e, nil

	case existing.Status == model.EntryStatusDone:
		if err := s.entryRepo.UpdateStatus(ctx, existing.ID, model.EntryStatusMissed); err != nil {
			return nil, err
		}
		existing.Status = model.EntryStatusMissed
		metrics.IncrementEntryTransition(model.EntryStatusMissed)
		s.publishEntryChanged(userID, existing, model.EntryStatusMissed)
		return existing, nil

	default:
		// missed or skipped: remove, the day is untracked again
		if err := s.entryRepo.Delete(ctx, existing.ID); err != nil {
			return nil, err
		}
		metrics.IncrementEntryTransition("untracked")
		s.publishEntryChanged(userID, existing, "")
		return nil, nil
	}
}

// SetEntryStatus writes an explicit status for a day, bypassing the
// cycle (used for "skipped" and for the offline sync replay).
func (s *HabitService) SetEntryStatus(ctx context.Context, userID, habitID int, date, status, note string) (*model.HabitEntry, error) {
	if status != model.EntryStatusDone && status != model.EntryStatusMissed && status != model.EntryStatusSkipped {
		return nil, errors.New("invalid entry status")
	}
	if _, err := parseEntryDate(date); err != nil {
		return nil, errors.New("invalid entry date, want yyyy-MM-dd")
	}
	if _, err := s.owned(ctx, userID, habitID); err != nil {
		return nil, err
	}

	existing, err := s.entryRepo.FindByHabitAndDate(ctx, habitID, date)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	if existing != nil {
		if err := s.entryRepo.UpdateStatus(ctx, existing.ID, status); err != nil {
			return nil, err
		}
		if note != "" {
			if err := s.entryRepo.UpdateNote(ctx, existing.ID, note); err != nil {
				return nil, err
			}
			existing.Note = note
		}
		existing.Status = status
		metrics.IncrementEntryTransition(status)
		s.publishEntryChanged(userID, existing, status)
		return existing, nil
	}

	e := &model.HabitEntry{
		HabitID:   habitID,
		EntryDate: date,
		Status:    status,
		Note:      note,
	}
	if err := s.entryRepo.Insert(ctx, e); err != nil {
		return nil, err
	}
	metrics.IncrementEntryTransition(status)
	s.publishEntryChanged(userID, e, status)
	return e, nil
}

// ClearEntry reverts a day to untracked.
func (s *HabitService) ClearEntry(ctx context.Context, userID, habitID int, date string) error {
	if _, err := s.owned(ctx, userID, habitID); err != nil {
		return err
	}
	existing, err := s.entryRepo.FindByHabitAndDate(ctx, habitID, date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}
	if err := s.entryRepo.Delete(ctx, existing.ID); err != nil {
		return err
	}
	metrics.IncrementEntryTransition("untracked")
	s.publishEntryChanged(userID, existing, "")
	return nil
}

// publishEntryChanged emits the entry.changed event. A publish failure
// is logged and swallowed: the row is already committed and the
// leaderboard cache self-corrects on TTL expiry.
func (s *HabitService) publishEntryChanged(userID int, e *model.HabitEntry, status string) {
	payload := mq.EntryChangedPayload{
		EntryID:   e.ID,
		HabitID:   e.HabitID,
		UserID:    userID,
		EntryDate: e.EntryDate,
		Status:    status,
		ChangedAt: time.Now(),
	}
	if err := s.publisher.Publish(mq.RoutingEntryChanged, payload); err != nil {
		s.logger.Warn("Failed to publish entry.changed",
			zap.Int("habit_id", e.HabitID),
			zap.String("entry_date", e.EntryDate),
			zap.Error(err),
		)
	}
}

func parseEntryDate(date string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", date, time.UTC)
}

package service

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"habitloop/internal/localstate"
	"habitloop/internal/model"
)

// SyncChange is one replayed offline mutation. An empty status clears
// the day back to untracked.
type SyncChange struct {
	HabitID   int    `json:"habit_id"`
	EntryDate string `json:"entry_date"`
	Status    string `json:"status"`
	Note      string `json:"note"`
}

// SyncFailure reports a change that was rolled back.
type SyncFailure struct {
	HabitID   int    `json:"habit_id"`
	EntryDate string `json:"entry_date"`
	Reason    string `json:"reason"`
}

// SyncResult is the settled state after a replay: every change either
// committed or rolled back, plus the authoritative entry collection.
type SyncResult struct {
	Applied int                      `json:"applied"`
	Failed  []SyncFailure            `json:"failed,omitempty"`
	Entries []localstate.EntryRecord `json:"entries"`
}

// entryWriter is the remote write surface the replay drives.
type entryWriter interface {
	SetEntryStatus(ctx context.Context, userID, habitID int, date, status, note string) (*model.HabitEntry, error)
	ClearEntry(ctx context.Context, userID, habitID int, date string) error
}

type habitLister interface {
	ListActiveByUser(ctx context.Context, userID int) ([]model.Habit, error)
}

type entryLister interface {
	ListByHabit(ctx context.Context, habitID int) ([]model.HabitEntry, error)
}

// SyncService replays a batch of offline entry mutations through the
// optimistic-update discipline: each change is applied to an in-memory
// snapshot first, then written remotely, and rolled back from the
// snapshot if the write fails. The caller gets back the state a
// well-behaved client would converge to.
type SyncService struct {
	writer  entryWriter
	habits  habitLister
	entries entryLister
	logger  *zap.Logger
}

func NewSyncService(
	writer entryWriter,
	habits habitLister,
	entries entryLister,
	logger *zap.Logger,
) *SyncService {
	return &SyncService{
		writer:  writer,
		habits:  habits,
		entries: entries,
		logger:  logger,
	}
}

func (s *SyncService) snapshot(ctx context.Context, userID int) (localstate.State, error) {
	habits, err := s.habits.ListActiveByUser(ctx, userID)
	if err != nil {
		return localstate.State{}, err
	}

	var state localstate.State
	for _, h := range habits {
		entries, err := s.entries.ListByHabit(ctx, h.ID)
		if err != nil {
			return localstate.State{}, err
		}
		for _, e := range entries {
			state.Entries = append(state.Entries, localstate.EntryRecord{
				ID:        strconv.Itoa(e.ID),
				HabitID:   e.HabitID,
				EntryDate: e.EntryDate,
				Status:    e.Status,
				Note:      e.Note,
			})
		}
	}
	return state, nil
}

// Replay applies the changes in order. Failures roll back individually
// and are reported; the rest of the batch still commits.
func (s *SyncService) Replay(ctx context.Context, userID int, changes []SyncChange) (SyncResult, error) {
	state, err := s.snapshot(ctx, userID)
	if err != nil {
		return SyncResult{}, err
	}

	result := SyncResult{}
	for _, c := range changes {
		existing, found := state.Find(c.HabitID, c.EntryDate)

		var change localstate.Change
		switch {
		case c.Status == "" && !found:
			// clearing an untracked day is a no-op
			result.Applied++
			continue
		case c.Status == "":
			change = localstate.Change{Kind: localstate.ChangeDelete, Entry: existing}
		case found:
			updated := existing
			updated.Status = c.Status
			updated.Note = c.Note
			change = localstate.Change{Kind: localstate.ChangeUpdate, Entry: updated}
		default:
			change = localstate.Change{Kind: localstate.ChangeCreate, Entry: localstate.EntryRecord{
				HabitID:   c.HabitID,
				EntryDate: c.EntryDate,
				Status:    c.Status,
				Note:      c.Note,
			}}
		}

		next, receipt := localstate.Apply(state, change)

		var remoteID string
		var writeErr error
		if change.Kind == localstate.ChangeDelete {
			writeErr = s.writer.ClearEntry(ctx, userID, c.HabitID, c.EntryDate)
		} else {
			var entry *model.HabitEntry
			entry, writeErr = s.writer.SetEntryStatus(ctx, userID, c.HabitID, c.EntryDate, c.Status, c.Note)
			if writeErr == nil {
				remoteID = strconv.Itoa(entry.ID)
			}
		}

		if writeErr != nil {
			s.logger.Warn("Sync change rolled back",
				zap.Int("habit_id", c.HabitID),
				zap.String("entry_date", c.EntryDate),
				zap.Error(writeErr),
			)
			state = localstate.Rollback(next, receipt)
			result.Failed = append(result.Failed, SyncFailure{
				HabitID:   c.HabitID,
				EntryDate: c.EntryDate,
				Reason:    writeErr.Error(),
			})
			continue
		}

		state = localstate.Commit(next, receipt, remoteID)
		result.Applied++
	}

	result.Entries = state.Entries
	return result, nil
}

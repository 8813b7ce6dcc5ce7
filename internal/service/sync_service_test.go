package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"habitloop/internal/localstate"
	"habitloop/internal/model"
)

// fakeEntryStore backs the replay with an in-memory entry table and a
// configurable date whose remote writes are rejected.
type fakeEntryStore struct {
	habits  []model.Habit
	entries map[int]*model.HabitEntry
	nextID  int
	failOn  string
}

func newFakeEntryStore(habits ...model.Habit) *fakeEntryStore {
	return &fakeEntryStore{
		habits:  habits,
		entries: make(map[int]*model.HabitEntry),
		nextID:  1,
	}
}

func (f *fakeEntryStore) add(habitID int, date, status string) int {
	id := f.nextID
	f.nextID++
	f.entries[id] = &model.HabitEntry{ID: id, HabitID: habitID, EntryDate: date, Status: status}
	return id
}

func (f *fakeEntryStore) ListActiveByUser(ctx context.Context, userID int) ([]model.Habit, error) {
	return f.habits, nil
}

func (f *fakeEntryStore) ListByHabit(ctx context.Context, habitID int) ([]model.HabitEntry, error) {
	var out []model.HabitEntry
	for _, e := range f.entries {
		if e.HabitID == habitID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEntryStore) SetEntryStatus(ctx context.Context, userID, habitID int, date, status, note string) (*model.HabitEntry, error) {
	if date == f.failOn {
		return nil, errors.New("write rejected")
	}
	for _, e := range f.entries {
		if e.HabitID == habitID && e.EntryDate == date {
			e.Status = status
			e.Note = note
			return e, nil
		}
	}
	id := f.add(habitID, date, status)
	f.entries[id].Note = note
	return f.entries[id], nil
}

func (f *fakeEntryStore) ClearEntry(ctx context.Context, userID, habitID int, date string) error {
	if date == f.failOn {
		return errors.New("write rejected")
	}
	for id, e := range f.entries {
		if e.HabitID == habitID && e.EntryDate == date {
			delete(f.entries, id)
			return nil
		}
	}
	return nil
}

func findEntry(entries []localstate.EntryRecord, date string) (localstate.EntryRecord, bool) {
	for _, e := range entries {
		if e.EntryDate == date {
			return e, true
		}
	}
	return localstate.EntryRecord{}, false
}

func TestReplayRollsBackFailedWriteAndCommitsRest(t *testing.T) {
	store := newFakeEntryStore(model.Habit{ID: 7, UserID: 1, Name: "read"})
	existingID := store.add(7, "2025-03-10", "done")
	store.failOn = "2025-03-11"

	svc := NewSyncService(store, store, store, zap.NewNop())

	result, err := svc.Replay(context.Background(), 1, []SyncChange{
		{HabitID: 7, EntryDate: "2025-03-12", Status: "done"},
		{HabitID: 7, EntryDate: "2025-03-11", Status: "missed"},
		{HabitID: 7, EntryDate: "2025-03-10", Status: "skipped"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Applied)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "2025-03-11", result.Failed[0].EntryDate)
	assert.Equal(t, "write rejected", result.Failed[0].Reason)

	// Committed create carries the remote id, not a temp uuid.
	created, ok := findEntry(result.Entries, "2025-03-12")
	require.True(t, ok)
	assert.Equal(t, "done", created.Status)
	assert.False(t, created.Pending)
	_, err = strconv.Atoi(created.ID)
	assert.NoError(t, err)

	// Rolled-back create leaves no trace.
	_, ok = findEntry(result.Entries, "2025-03-11")
	assert.False(t, ok)

	// Committed update keeps the remote id and the new status.
	updated, ok := findEntry(result.Entries, "2025-03-10")
	require.True(t, ok)
	assert.Equal(t, strconv.Itoa(existingID), updated.ID)
	assert.Equal(t, "skipped", updated.Status)
	assert.False(t, updated.Pending)
}

func TestReplayRestoresEntryOnFailedDelete(t *testing.T) {
	store := newFakeEntryStore(model.Habit{ID: 7, UserID: 1, Name: "read"})
	existingID := store.add(7, "2025-03-10", "done")
	store.failOn = "2025-03-10"

	svc := NewSyncService(store, store, store, zap.NewNop())

	result, err := svc.Replay(context.Background(), 1, []SyncChange{
		{HabitID: 7, EntryDate: "2025-03-10", Status: ""},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Applied)
	require.Len(t, result.Failed, 1)

	restored, ok := findEntry(result.Entries, "2025-03-10")
	require.True(t, ok)
	assert.Equal(t, strconv.Itoa(existingID), restored.ID)
	assert.Equal(t, "done", restored.Status)
}

func TestReplayClearsAndSkipsUntrackedDays(t *testing.T) {
	store := newFakeEntryStore(model.Habit{ID: 7, UserID: 1, Name: "read"})
	store.add(7, "2025-03-10", "done")

	svc := NewSyncService(store, store, store, zap.NewNop())

	result, err := svc.Replay(context.Background(), 1, []SyncChange{
		{HabitID: 7, EntryDate: "2025-03-09", Status: ""},
		{HabitID: 7, EntryDate: "2025-03-10", Status: ""},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Applied)
	assert.Empty(t, result.Failed)
	assert.Empty(t, result.Entries)
}

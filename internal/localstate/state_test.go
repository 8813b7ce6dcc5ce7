package localstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyCreateAssignsTempID(t *testing.T) {
	s0 := State{}
	s1, r := Apply(s0, Change{
		Kind:  ChangeCreate,
		Entry: EntryRecord{HabitID: 7, EntryDate: "2025-03-15", Status: "done"},
	})

	require.Len(t, s1.Entries, 1)
	assert.NotEmpty(t, r.TempID)
	assert.Equal(t, r.TempID, s1.Entries[0].ID)
	assert.True(t, s1.Entries[0].Pending)
	assert.Empty(t, s0.Entries, "input state must not be mutated")
}

func TestCommitCreateSwapsInRemoteID(t *testing.T) {
	s1, r := Apply(State{}, Change{
		Kind:  ChangeCreate,
		Entry: EntryRecord{HabitID: 7, EntryDate: "2025-03-15", Status: "done"},
	})

	s2 := Commit(s1, r, "42")
	require.Len(t, s2.Entries, 1)
	assert.Equal(t, "42", s2.Entries[0].ID)
	assert.False(t, s2.Entries[0].Pending)
}

func TestRollbackCreateRemovesSpeculativeRecord(t *testing.T) {
	base := State{Entries: []EntryRecord{{ID: "1", HabitID: 1, EntryDate: "2025-03-14", Status: "done"}}}
	s1, r := Apply(base, Change{
		Kind:  ChangeCreate,
		Entry: EntryRecord{HabitID: 1, EntryDate: "2025-03-15", Status: "done"},
	})
	require.Len(t, s1.Entries, 2)

	s2 := Rollback(s1, r)
	assert.Equal(t, base, s2)
}

func TestUpdateCommitAndRollback(t *testing.T) {
	base := State{Entries: []EntryRecord{{ID: "9", HabitID: 3, EntryDate: "2025-03-15", Status: "done"}}}

	s1, r := Apply(base, Change{
		Kind:  ChangeUpdate,
		Entry: EntryRecord{ID: "9", HabitID: 3, EntryDate: "2025-03-15", Status: "missed"},
	})
	require.Len(t, s1.Entries, 1)
	assert.Equal(t, "missed", s1.Entries[0].Status)
	assert.True(t, s1.Entries[0].Pending)

	committed := Commit(s1, r, "")
	assert.Equal(t, "missed", committed.Entries[0].Status)
	assert.False(t, committed.Entries[0].Pending)

	rolledBack := Rollback(s1, r)
	assert.Equal(t, base, rolledBack)
}

func TestDeleteRollbackRestoresRecord(t *testing.T) {
	base := State{Entries: []EntryRecord{
		{ID: "1", HabitID: 1, EntryDate: "2025-03-14", Status: "missed"},
		{ID: "2", HabitID: 1, EntryDate: "2025-03-15", Status: "done"},
	}}

	s1, r := Apply(base, Change{Kind: ChangeDelete, Entry: EntryRecord{ID: "1"}})
	require.Len(t, s1.Entries, 1)

	s2 := Rollback(s1, r)
	require.Len(t, s2.Entries, 2)
	restored, ok := s2.Find(1, "2025-03-14")
	require.True(t, ok)
	assert.Equal(t, "missed", restored.Status)
}

func TestApplyUnknownIDIsNoop(t *testing.T) {
	base := State{Entries: []EntryRecord{{ID: "1", HabitID: 1, EntryDate: "2025-03-14", Status: "done"}}}

	s1, r := Apply(base, Change{Kind: ChangeUpdate, Entry: EntryRecord{ID: "nope", Status: "missed"}})
	assert.Equal(t, base, s1)
	assert.Nil(t, r.Replaced)

	s2, _ := Apply(base, Change{Kind: ChangeDelete, Entry: EntryRecord{ID: "nope"}})
	assert.Equal(t, base, s2)
}

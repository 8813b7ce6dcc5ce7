// Package localstate implements the optimistic-update discipline for a
// client-held collection of habit entries: the collection is mutated
// immediately with a temporary identifier, the remote write is issued,
// and on failure the collection is restored to its pre-optimistic
// value. All transitions are pure functions over immutable snapshots,
// independent of any UI state primitive.
package localstate

import (
	"github.com/google/uuid"
)

// EntryRecord mirrors a habit entry as the client holds it. ID is the
// remote row id once committed, or a temporary uuid while a create is
// in flight.
type EntryRecord struct {
	ID        string `json:"id"`
	HabitID   int    `json:"habit_id"`
	EntryDate string `json:"entry_date"`
	Status    string `json:"status"`
	Note      string `json:"note"`
	Pending   bool   `json:"pending"`
}

// State is an immutable snapshot of the entry collection.
type State struct {
	Entries []EntryRecord `json:"entries"`
}

type ChangeKind int

const (
	ChangeCreate ChangeKind = iota
	ChangeUpdate
	ChangeDelete
)

// Change is one optimistic mutation request.
type Change struct {
	Kind  ChangeKind
	Entry EntryRecord // create: no ID; update: ID + new fields; delete: ID
}

// Receipt carries what Commit or Rollback needs to finish a change:
// the temp ID assigned to a create and the snapshot displaced by an
// update or delete.
type Receipt struct {
	Kind     ChangeKind
	TempID   string
	Replaced *EntryRecord
}

func (s State) clone() State {
	out := State{Entries: make([]EntryRecord, len(s.Entries))}
	copy(out.Entries, s.Entries)
	return out
}

func (s State) indexOf(id string) int {
	for i, e := range s.Entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the entry for a (habit, date) pair, if present.
func (s State) Find(habitID int, date string) (EntryRecord, bool) {
	for _, e := range s.Entries {
		if e.HabitID == habitID && e.EntryDate == date {
			return e, true
		}
	}
	return EntryRecord{}, false
}

// Apply performs the optimistic half of a change: the returned state
// already reflects the mutation, flagged pending, and the receipt
// holds everything needed to commit or roll it back. The input state
// is never modified.
func Apply(s State, c Change) (State, Receipt) {
	next := s.clone()
	receipt := Receipt{Kind: c.Kind}

	switch c.Kind {
	case ChangeCreate:
		e := c.Entry
		e.ID = uuid.NewString()
		e.Pending = true
		receipt.TempID = e.ID
		next.Entries = append(next.Entries, e)

	case ChangeUpdate:
		if i := next.indexOf(c.Entry.ID); i >= 0 {
			prev := next.Entries[i]
			receipt.Replaced = &prev
			e := c.Entry
			e.Pending = true
			next.Entries[i] = e
		}

	case ChangeDelete:
		if i := next.indexOf(c.Entry.ID); i >= 0 {
			prev := next.Entries[i]
			receipt.Replaced = &prev
			next.Entries = append(next.Entries[:i], next.Entries[i+1:]...)
		}
	}
	return next, receipt
}

// Commit finishes a change after the remote write succeeded. For a
// create, remoteID replaces the temporary uuid; for updates the
// pending flag clears; deletes need no further work.
func Commit(s State, r Receipt, remoteID string) State {
	next := s.clone()

	switch r.Kind {
	case ChangeCreate:
		if i := next.indexOf(r.TempID); i >= 0 {
			next.Entries[i].ID = remoteID
			next.Entries[i].Pending = false
		}
	case ChangeUpdate:
		if r.Replaced != nil {
			if i := next.indexOf(r.Replaced.ID); i >= 0 {
				next.Entries[i].Pending = false
			}
		}
	}
	return next
}

// Rollback restores the pre-optimistic value after a failed remote
// write: speculative creates disappear, updates and deletes get their
// displaced snapshot back.
func Rollback(s State, r Receipt) State {
	next := s.clone()

	switch r.Kind {
	case ChangeCreate:
		if i := next.indexOf(r.TempID); i >= 0 {
			next.Entries = append(next.Entries[:i], next.Entries[i+1:]...)
		}
	case ChangeUpdate:
		if r.Replaced != nil {
			if i := next.indexOf(r.Replaced.ID); i >= 0 {
				next.Entries[i] = *r.Replaced
			}
		}
	case ChangeDelete:
		if r.Replaced != nil {
			next.Entries = append(next.Entries, *r.Replaced)
		}
	}
	return next
}

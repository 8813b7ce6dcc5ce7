package mq

import "time"

// Routing keys on the "events" exchange.
const (
	RoutingEntryChanged         = "entry.changed"
	RoutingPartnershipRequested = "partnership.requested"
	RoutingPartnershipAccepted  = "partnership.accepted"
)

// EntryChangedPayload is published whenever a day's completion state
// transitions (untracked -> done -> missed -> untracked).
type EntryChangedPayload struct {
	EntryID   int       `json:"entry_id"`
	HabitID   int       `json:"habit_id"`
	UserID    int       `json:"user_id"`
	EntryDate string    `json:"entry_date"`
	Status    string    `json:"status"` // empty when the entry was removed
	ChangedAt time.Time `json:"changed_at"`
}

// PartnershipRequestedPayload announces a new pending invite.
type PartnershipRequestedPayload struct {
	PartnershipID  int    `json:"partnership_id"`
	RequesterID    int    `json:"requester_id"`
	RequesterEmail string `json:"requester_email"`
	TargetID       int    `json:"target_id"`
}

// PartnershipAcceptedPayload announces that an invite was accepted.
type PartnershipAcceptedPayload struct {
	PartnershipID int `json:"partnership_id"`
	RequesterID   int `json:"requester_id"`
	TargetID      int `json:"target_id"`
	AcceptedBy    int `json:"accepted_by"`
}

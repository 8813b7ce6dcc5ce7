package model

import "time"

// Partnership is a directed accountability link that becomes mutually
// visible once accepted. At most one meaningful partnership exists per
// unordered pair of users.
type Partnership struct {
	ID          int       `json:"id"`
	RequesterID int       `json:"requester_id"`
	TargetID    int       `json:"target_id"`
	Status      string    `json:"status"` // pending | accepted | rejected
	CreatedAt   time.Time `json:"created_at"`
}

const (
	PartnershipPending  = "pending"
	PartnershipAccepted = "accepted"
	PartnershipRejected = "rejected"
)

package postulation

import (
	"time"

	"jobboard/internal/common"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

type Action string

const (
	ActionAccept Action = "accept"
	ActionReject Action = "reject"
)

// Status maps a company decision to the resulting postulation status.
func (a Action) Status() (Status, bool) {
	switch a {
	case ActionAccept:
		return StatusAccepted, true
	case ActionReject:
		return StatusRejected, true
	default:
		return "", false
	}
}

type Postulation struct {
	ID         common.UUID `json:"id"`
	StudentID  common.UUID `json:"student_id"`
	JobOfferID common.UUID `json:"job_offer_id"`
	Status     Status      `json:"status"`
	AppliedAt  time.Time   `json:"applied_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

type Decision struct {
	ID     common.UUID
	Action Action
}

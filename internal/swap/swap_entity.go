package swap

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusAccepted  Status = "ACCEPTED"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

var transitions = map[Status][]Status{
	StatusPending:  {StatusAccepted, StatusRejected, StatusCancelled},
	StatusAccepted: {StatusApproved, StatusRejected, StatusCancelled},
}

// CanTransition reports whether a request in s may move to next. APPROVED,
// REJECTED and CANCELLED are terminal.
func (s Status) CanTransition(next Status) bool {
	for _, to := range transitions[s] {
		if to == next {
			return true
		}
	}
	return false
}

func (s Status) Open() bool {
	return s == StatusPending || s == StatusAccepted
}

// SwapRequest asks TargetID to work RequesterID's shift on RequesterDate.
// With TargetDate set it is an exchange and the requester works the
// target's shift on that date in return.
type SwapRequest struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	RequesterID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	RequesterDate time.Time  `gorm:"type:date;not null"`
	TargetID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	TargetDate    *time.Time `gorm:"type:date"`
	Reason        string     `gorm:"type:text"`
	Status        Status     `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	RespondedAt   *time.Time
	ApprovedBy    *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt    *time.Time
	RejectedBy    *uuid.UUID `gorm:"type:uuid"`
	RejectReason  string     `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (SwapRequest) TableName() string {
	return "shift_swap_requests"
}

func (r SwapRequest) IsExchange() bool {
	return r.TargetDate != nil
}

package events

import "time"

const (
	ShiftSwapApprovedTopic = "restaurant.roster.swap.approved.v1"
	ShiftSwapApprovedType  = "shift_swap_approved"
)

// ShiftSwapApprovedEvent carries enough of both parties for the notifier to
// reach them without reading the database.
type ShiftSwapApprovedEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id,omitempty"`
	SwapRequestID string    `json:"swap_request_id"`
	CompanyID     string    `json:"company_id"`
	RequesterID   string    `json:"requester_id"`
	RequesterName string    `json:"requester_name"`
	RequesterMail string    `json:"requester_email"`
	TargetID      string    `json:"target_id"`
	TargetName    string    `json:"target_name"`
	TargetMail    string    `json:"target_email"`
	RequesterDate string    `json:"requester_date"`
	TargetDate    string    `json:"target_date,omitempty"`
	ShiftName     string    `json:"shift_name"`
	ApprovedBy    string    `json:"approved_by"`
	OccurredAt    time.Time `json:"occurred_at"`
}

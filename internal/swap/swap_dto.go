package swap

type CreateSwapRequest struct {
	TargetID      string `json:"target_id" binding:"required,uuid"`
	RequesterDate string `json:"requester_date" binding:"required"`
	TargetDate    string `json:"target_date"`
	Reason        string `json:"reason" binding:"max=500"`
}

type RejectSwapRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type ListFilter struct {
	Status     string `form:"status" binding:"omitempty,oneof=PENDING ACCEPTED APPROVED REJECTED CANCELLED"`
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
}

// Actor is who is acting on a swap request.
type Actor struct {
	EmployeeID string
	Manager    bool
}

type SwapResponse struct {
	ID            string  `json:"id"`
	RequesterID   string  `json:"requester_id"`
	RequesterDate string  `json:"requester_date"`
	TargetID      string  `json:"target_id"`
	TargetDate    *string `json:"target_date"`
	Reason        string  `json:"reason,omitempty"`
	Status        Status  `json:"status"`
	RespondedAt   *string `json:"responded_at,omitempty"`
	ApprovedBy    *string `json:"approved_by,omitempty"`
	ApprovedAt    *string `json:"approved_at,omitempty"`
	RejectReason  string  `json:"reject_reason,omitempty"`
}

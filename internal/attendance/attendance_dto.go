package attendance

import "time"

type CheckInRequest struct {
	Source string `json:"source" binding:"omitempty,oneof=APP LINE KIOSK MANUAL"`
	Note   string `json:"note" binding:"max=255"`
}

type CheckOutRequest struct {
	Source string `json:"source" binding:"omitempty,oneof=APP LINE KIOSK MANUAL"`
	Note   string `json:"note" binding:"max=255"`
}

type MarkAbsentRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Date       string `json:"date" binding:"required"`
	Note       string `json:"note" binding:"max=255"`
}

// ListFilter holds inclusive calendar dates; blank dates mean today.
type ListFilter struct {
	From       string
	To         string
	EmployeeID string
}

type AttendanceLogResponse struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employee_id"`
	ActionType ActionType `json:"action_type"`
	Timestamp  time.Time  `json:"timestamp"`
	Date       string     `json:"date"`
	Source     string     `json:"source"`
	Note       string     `json:"note,omitempty"`
}

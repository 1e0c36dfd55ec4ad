package roster

type ShiftRequest struct {
	Name      string  `json:"name" binding:"required"`
	Category  string  `json:"category" binding:"omitempty,oneof=morning evening double"`
	StartTime string  `json:"start_time" binding:"required"`
	EndTime   string  `json:"end_time" binding:"required"`
	Salary    float64 `json:"salary" binding:"gte=0"`
}

type ShiftResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Category  ShiftCategory `json:"category"`
	StartTime ClockTime     `json:"start_time"`
	EndTime   ClockTime     `json:"end_time"`
	Salary    float64       `json:"salary"`
}

type UpsertWeeklyRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	DayOfWeek  *int   `json:"day_of_week" binding:"required,min=0,max=6"`
	ShiftID    string `json:"shift_id" binding:"omitempty,uuid"`
	IsOff      bool   `json:"is_off"`
}

type WeeklyResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	DayOfWeek  int     `json:"day_of_week"`
	ShiftID    *string `json:"shift_id"`
	IsOff      bool    `json:"is_off"`
}

type CreateOverrideRequest struct {
	EmployeeID      string `json:"employee_id" binding:"required,uuid"`
	Date            string `json:"date" binding:"required"`
	ShiftID         string `json:"shift_id" binding:"omitempty,uuid"`
	IsOff           bool   `json:"is_off"`
	CustomStartTime string `json:"custom_start_time"`
	CustomEndTime   string `json:"custom_end_time"`
	Note            string `json:"note"`
}

type OverrideResponse struct {
	ID              string    `json:"id"`
	EmployeeID      string    `json:"employee_id"`
	Date            string    `json:"date"`
	ShiftID         *string   `json:"shift_id"`
	IsOff           bool      `json:"is_off"`
	CustomStartTime ClockTime `json:"custom_start_time,omitempty"`
	CustomEndTime   ClockTime `json:"custom_end_time,omitempty"`
	SwapRequestID   *string   `json:"swap_request_id,omitempty"`
	Note            string    `json:"note,omitempty"`
}

type EffectiveRosterResponse struct {
	Date    string        `json:"date"`
	Entries []RosterEntry `json:"entries"`
}

package payroll

type MonthQuery struct {
	Month string `form:"month" binding:"required"`
}

type GenerateRequest struct {
	Month string `json:"month" binding:"required"`
}

type GenerateResponse struct {
	Month     string                  `json:"month"`
	Generated int                     `json:"generated"`
	Skipped   int                     `json:"skipped"`
	Records   []PayrollRecordResponse `json:"records"`
}

type ListFilter struct {
	Month  string `form:"month"`
	Status string `form:"status"`
}

type PayrollRecordResponse struct {
	ID                 string      `json:"id"`
	EmployeeID         string      `json:"employee_id"`
	EmployeeName       string      `json:"employee_name"`
	EmployeeEmail      string      `json:"employee_email,omitempty"`
	Month              string      `json:"month"`
	WorkDays           int         `json:"work_days"`
	TotalSalary        float64     `json:"total_salary"`
	TotalOTHours       int         `json:"total_ot_hours"`
	TotalOTPay         float64     `json:"total_ot_pay"`
	TotalDeduct        float64     `json:"total_deduct"`
	NetSalary          float64     `json:"net_salary"`
	LateCount          int         `json:"late_count"`
	AbsentCount        int         `json:"absent_count"`
	DuplicateCount     int         `json:"duplicate_count"`
	DailyDetails       []DayDetail `json:"daily_details,omitempty"`
	Status             string      `json:"status"`
	ApprovedBy         *string     `json:"approved_by,omitempty"`
	ApprovedAt         *string     `json:"approved_at,omitempty"`
	PaidAt             *string     `json:"paid_at,omitempty"`
	PayslipURL         *string     `json:"payslip_url,omitempty"`
	PayslipGeneratedAt *string     `json:"payslip_generated_at,omitempty"`
}

type UpdateConfigRequest struct {
	OTRate          float64 `json:"ot_rate" binding:"gte=0"`
	DoubleShiftRate float64 `json:"double_shift_rate" binding:"gte=0"`
}

type ConfigResponse struct {
	OTRate          float64 `json:"ot_rate"`
	DoubleShiftRate float64 `json:"double_shift_rate"`
}

type CreateDeductionRequest struct {
	EmployeeID string   `json:"employee_id" binding:"required,uuid"`
	Month      string   `json:"month" binding:"required"`
	Amount     *float64 `json:"amount"`
	Percentage *float64 `json:"percentage"`
	Reason     string   `json:"reason" binding:"max=255"`
}

type DeductionResponse struct {
	ID         string   `json:"id"`
	EmployeeID string   `json:"employee_id"`
	Month      string   `json:"month"`
	Amount     *float64 `json:"amount,omitempty"`
	Percentage *float64 `json:"percentage,omitempty"`
	Reason     string   `json:"reason,omitempty"`
	CreatedAt  string   `json:"created_at"`
}

package payroll

import (
	"time"

	"github.com/google/uuid"
)

const MonthLayout = "2006-01"

type RecordStatus string

const (
	StatusDraft    RecordStatus = "DRAFT"
	StatusApproved RecordStatus = "APPROVED"
	StatusPaid     RecordStatus = "PAID"
)

func (s RecordStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusApproved, StatusPaid:
		return true
	}
	return false
}

// PayrollConfig is the stored form of Config, one row per company.
type PayrollConfig struct {
	CompanyID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	OTRate          float64   `gorm:"not null;default:50"`
	DoubleShiftRate float64   `gorm:"not null;default:0"`
	UpdatedAt       time.Time
}

func (PayrollConfig) TableName() string {
	return "payroll_configs"
}

// Deduction is taken off one employee's pay for one month, either as a flat
// Amount or as a Percentage of wages plus overtime.
type Deduction struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID  `gorm:"type:uuid;index:idx_deduction_company_month"`
	EmployeeID uuid.UUID  `gorm:"type:uuid;index"`
	Month      string     `gorm:"type:char(7);not null;index:idx_deduction_company_month"`
	Amount     *float64   `gorm:"type:numeric(12,2)"`
	Percentage *float64   `gorm:"type:numeric(5,2)"`
	Reason     string     `gorm:"type:varchar(255)"`
	CreatedBy  *uuid.UUID `gorm:"type:uuid"`
	CreatedAt  time.Time
}

func (Deduction) TableName() string {
	return "payroll_deductions"
}

// Value is the amount deducted given the month's wages plus overtime.
func (d Deduction) Value(gross float64) float64 {
	if d.Amount != nil {
		return *d.Amount
	}
	if d.Percentage != nil {
		return *d.Percentage / 100 * gross
	}
	return 0
}

// PayrollRecord freezes one employee's monthly summary for the approval
// workflow. Names are copied so payslips survive employee edits.
type PayrollRecord struct {
	ID                 uuid.UUID    `gorm:"type:uuid;primaryKey"`
	CompanyID          uuid.UUID    `gorm:"type:uuid;not null;index:idx_payroll_company_month"`
	EmployeeID         uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_employee_month"`
	Month              string       `gorm:"type:char(7);not null;uniqueIndex:uq_payroll_employee_month;index:idx_payroll_company_month"`
	EmployeeName       string       `gorm:"not null"`
	EmployeeEmail      string
	WorkDays           int
	TotalSalary        float64      `gorm:"type:numeric(12,2)"`
	TotalOTHours       int
	TotalOTPay         float64      `gorm:"type:numeric(12,2)"`
	TotalDeduct        float64      `gorm:"type:numeric(12,2)"`
	NetSalary          float64      `gorm:"type:numeric(12,2)"`
	LateCount          int
	AbsentCount        int
	DuplicateCount     int
	DailyDetails       []DayDetail  `gorm:"type:jsonb;serializer:json"`
	Status             RecordStatus `gorm:"type:varchar(16);not null;default:'DRAFT'"`
	GeneratedBy        *uuid.UUID   `gorm:"type:uuid"`
	ApprovedBy         *uuid.UUID   `gorm:"type:uuid"`
	ApprovedAt         *time.Time
	PaidAt             *time.Time
	PayslipURL         *string
	PayslipGeneratedAt *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (PayrollRecord) TableName() string {
	return "payroll_records"
}

func newDraft(companyID uuid.UUID, month string, s EmployeeSummary, generatedBy *uuid.UUID) PayrollRecord {
	return PayrollRecord{
		ID:             uuid.New(),
		CompanyID:      companyID,
		EmployeeID:     s.EmployeeID,
		Month:          month,
		EmployeeName:   s.EmployeeName,
		EmployeeEmail:  s.EmployeeEmail,
		WorkDays:       s.WorkDays,
		TotalSalary:    s.TotalSalary,
		TotalOTHours:   s.TotalOTHours,
		TotalOTPay:     s.TotalOTPay,
		TotalDeduct:    s.TotalDeduct,
		NetSalary:      s.NetSalary,
		LateCount:      s.LateCount,
		AbsentCount:    s.AbsentCount,
		DuplicateCount: s.DuplicateCount,
		DailyDetails:   s.DailyDetails,
		Status:         StatusDraft,
		GeneratedBy:    generatedBy,
	}
}

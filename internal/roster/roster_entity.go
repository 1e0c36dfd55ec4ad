package roster

import (
	"time"

	"github.com/google/uuid"
)

const DateLayout = "2006-01-02"

type Shift struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID     `gorm:"type:uuid;index"`
	Name      string        `gorm:"not null"`
	Category  ShiftCategory `gorm:"type:varchar(16);not null;default:''"`
	StartTime ClockTime     `gorm:"type:varchar(8);not null"`
	EndTime   ClockTime     `gorm:"type:varchar(8);not null"`
	Salary    float64       `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveCategory returns the stored category, inferring one from the name
// for rows saved before categories existed.
func (s Shift) EffectiveCategory() ShiftCategory {
	if s.Category != CategoryNone && s.Category.Valid() {
		return s.Category
	}
	return InferCategory(s.Name)
}

// WeeklySchedule is the recurring template for one employee and weekday
// (Sunday = 0).
type WeeklySchedule struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID  `gorm:"type:uuid;index"`
	EmployeeID uuid.UUID  `gorm:"type:uuid;uniqueIndex:uq_weekly_employee_day"`
	DayOfWeek  int        `gorm:"uniqueIndex:uq_weekly_employee_day"`
	ShiftID    *uuid.UUID `gorm:"type:uuid"`
	IsOff      bool       `gorm:"not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RosterOverride replaces the template for one employee on one date. Working
// overrides carry frozen times so later shift edits never change history.
type RosterOverride struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID       uuid.UUID  `gorm:"type:uuid;index"`
	EmployeeID      uuid.UUID  `gorm:"type:uuid;uniqueIndex:uq_override_employee_date"`
	OverrideDate    time.Time  `gorm:"type:date;uniqueIndex:uq_override_employee_date"`
	ShiftID         *uuid.UUID `gorm:"type:uuid"`
	IsOff           bool       `gorm:"not null;default:false"`
	CustomStartTime ClockTime  `gorm:"type:varchar(8)"`
	CustomEndTime   ClockTime  `gorm:"type:varchar(8)"`
	SwapRequestID   *uuid.UUID `gorm:"type:uuid"`
	Note            string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DateKey is the override's calendar date as YYYY-MM-DD.
func (o RosterOverride) DateKey() string {
	return o.OverrideDate.Format(DateLayout)
}

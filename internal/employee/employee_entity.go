package employee

import (
	"time"

	"github.com/google/uuid"
)

// Shift rate keys; they match roster shift categories.
const (
	RateMorning = "morning"
	RateEvening = "evening"
	RateDouble  = "double"
)

// ShiftRates maps a shift category to the flat wage paid for one shift.
type ShiftRates map[string]float64

// Rate returns the configured positive rate for category.
func (r ShiftRates) Rate(category string) (float64, bool) {
	if r == nil || category == "" {
		return 0, false
	}
	v, ok := r[category]
	if !ok || v <= 0 {
		return 0, false
	}
	return v, true
}

type Employee struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID    uuid.UUID `gorm:"type:uuid;index"`
	EmployeeCode string    `gorm:"uniqueIndex:uq_employee_code"`
	FullName     string
	Nickname     string
	Email        string `gorm:"uniqueIndex:uq_employee_email"`
	Phone        string
	Position     string
	ShiftRates   ShiftRates `gorm:"type:jsonb;serializer:json"`
	IsActive     bool       `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayName prefers the nickname staff use on the floor.
func (e Employee) DisplayName() string {
	if e.Nickname != "" {
		return e.Nickname
	}
	return e.FullName
}

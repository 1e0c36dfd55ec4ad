package attendance

import (
	"time"

	"github.com/google/uuid"
)

type ActionType string

const (
	ActionCheckIn  ActionType = "check_in"
	ActionCheckOut ActionType = "check_out"
	ActionAbsent   ActionType = "absent"
)

const (
	SourceApp    = "APP"
	SourceLine   = "LINE"
	SourceKiosk  = "KIOSK"
	SourceManual = "MANUAL"
)

// AttendanceLog is one punch. A day is reconstructed from its logs; rows are
// never updated in place.
type AttendanceLog struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID  `gorm:"column:company_id;type:uuid;not null;index:idx_attendance_company_time,priority:1"`
	EmployeeID uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;index"`
	ActionType ActionType `gorm:"column:action_type;type:varchar(20);not null"`
	Timestamp  time.Time  `gorm:"column:timestamp;type:timestamptz;not null;index:idx_attendance_company_time,priority:2"`
	Source     string     `gorm:"column:source;type:varchar(30);not null;default:APP"`
	Note       string     `gorm:"column:note;type:text"`
	RecordedBy *uuid.UUID `gorm:"column:recorded_by;type:uuid"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
}

func (AttendanceLog) TableName() string {
	return "attendance_logs"
}

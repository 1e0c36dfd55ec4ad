package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"inthehaus-hr/internal/attendance"
	"inthehaus-hr/internal/employee"
	"inthehaus-hr/internal/payroll"
	"inthehaus-hr/internal/roster"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const logLayout = "2006-01-02 15:04"

// Fixture is the on-disk shape. Employees and shifts are referenced by key;
// keys that are not UUIDs are mapped to stable name-based UUIDs.
type Fixture struct {
	Timezone   string             `yaml:"timezone"`
	Config     fixtureConfig      `yaml:"config"`
	Employees  []fixtureEmployee  `yaml:"employees"`
	Shifts     []fixtureShift     `yaml:"shifts"`
	Weekly     []fixtureWeekly    `yaml:"weekly"`
	Overrides  []fixtureOverride  `yaml:"overrides"`
	Logs       []fixtureLog       `yaml:"logs"`
	Deductions []fixtureDeduction `yaml:"deductions"`
}

type fixtureConfig struct {
	OTRate          float64 `yaml:"ot_rate"`
	DoubleShiftRate float64 `yaml:"double_shift_rate"`
}

type fixtureEmployee struct {
	ID       string             `yaml:"id"`
	Name     string             `yaml:"name"`
	Nickname string             `yaml:"nickname"`
	Email    string             `yaml:"email"`
	Position string             `yaml:"position"`
	Rates    map[string]float64 `yaml:"rates"`
	Active   *bool              `yaml:"active"`
}

type fixtureShift struct {
	ID       string  `yaml:"id"`
	Name     string  `yaml:"name"`
	Category string  `yaml:"category"`
	Start    string  `yaml:"start"`
	End      string  `yaml:"end"`
	Salary   float64 `yaml:"salary"`
}

type fixtureWeekly struct {
	Employee string `yaml:"employee"`
	Day      int    `yaml:"day"`
	Shift    string `yaml:"shift"`
	Off      bool   `yaml:"off"`
}

type fixtureOverride struct {
	Employee string `yaml:"employee"`
	Date     string `yaml:"date"`
	Shift    string `yaml:"shift"`
	Off      bool   `yaml:"off"`
	Start    string `yaml:"start"`
	End      string `yaml:"end"`
}

type fixtureLog struct {
	Employee string `yaml:"employee"`
	Action   string `yaml:"action"`
	At       string `yaml:"at"`
}

type fixtureDeduction struct {
	Employee   string   `yaml:"employee"`
	Month      string   `yaml:"month"`
	Amount     *float64 `yaml:"amount"`
	Percentage *float64 `yaml:"percentage"`
	Reason     string   `yaml:"reason"`
}

// dataset is a Fixture converted to domain types.
type dataset struct {
	loc        *time.Location
	config     payroll.Config
	employees  []employee.Employee
	shifts     []roster.Shift
	weekly     []roster.WeeklySchedule
	overrides  []roster.RosterOverride
	logs       []attendance.AttendanceLog
	deductions []payroll.Deduction
}

func loadFixture(path string) (*dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f Fixture
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return f.build()
}

func refID(key string) uuid.UUID {
	key = strings.TrimSpace(key)
	if id, err := uuid.Parse(key); err == nil {
		return id
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key))
}

func optionalRef(key string) *uuid.UUID {
	if strings.TrimSpace(key) == "" {
		return nil
	}
	id := refID(key)
	return &id
}

func (f Fixture) build() (*dataset, error) {
	loc := payroll.DefaultLocation()
	if f.Timezone != "" {
		l, err := time.LoadLocation(f.Timezone)
		if err != nil {
			return nil, fmt.Errorf("timezone %q: %w", f.Timezone, err)
		}
		loc = l
	}

	ds := &dataset{
		loc: loc,
		config: payroll.Config{
			OTRate:          f.Config.OTRate,
			DoubleShiftRate: f.Config.DoubleShiftRate,
			Location:        loc,
		},
	}

	for _, e := range f.Employees {
		active := e.Active == nil || *e.Active
		ds.employees = append(ds.employees, employee.Employee{
			ID:         refID(e.ID),
			FullName:   e.Name,
			Nickname:   e.Nickname,
			Email:      e.Email,
			Position:   e.Position,
			ShiftRates: employee.ShiftRates(e.Rates),
			IsActive:   active,
		})
	}

	for _, s := range f.Shifts {
		start, err := roster.ParseClockTime(s.Start)
		if err != nil {
			return nil, fmt.Errorf("shift %s start: %w", s.ID, err)
		}
		end, err := roster.ParseClockTime(s.End)
		if err != nil {
			return nil, fmt.Errorf("shift %s end: %w", s.ID, err)
		}
		ds.shifts = append(ds.shifts, roster.Shift{
			ID:        refID(s.ID),
			Name:      s.Name,
			Category:  roster.ShiftCategory(strings.ToLower(s.Category)),
			StartTime: start,
			EndTime:   end,
			Salary:    s.Salary,
		})
	}

	for _, w := range f.Weekly {
		if w.Day < 0 || w.Day > 6 {
			return nil, fmt.Errorf("weekly %s: day %d out of range 0-6", w.Employee, w.Day)
		}
		ds.weekly = append(ds.weekly, roster.WeeklySchedule{
			EmployeeID: refID(w.Employee),
			DayOfWeek:  w.Day,
			ShiftID:    optionalRef(w.Shift),
			IsOff:      w.Off,
		})
	}

	for _, o := range f.Overrides {
		day, err := roster.ParseDate(o.Date, loc)
		if err != nil {
			return nil, fmt.Errorf("override %s: %w", o.Employee, err)
		}
		start, err := parseOptionalClock(o.Start)
		if err != nil {
			return nil, fmt.Errorf("override %s start: %w", o.Employee, err)
		}
		end, err := parseOptionalClock(o.End)
		if err != nil {
			return nil, fmt.Errorf("override %s end: %w", o.Employee, err)
		}
		ds.overrides = append(ds.overrides, roster.RosterOverride{
			EmployeeID:      refID(o.Employee),
			OverrideDate:    day,
			ShiftID:         optionalRef(o.Shift),
			IsOff:           o.Off,
			CustomStartTime: start,
			CustomEndTime:   end,
		})
	}

	for _, l := range f.Logs {
		ts, err := parseLogTime(l.At, loc)
		if err != nil {
			return nil, fmt.Errorf("log %s: %w", l.Employee, err)
		}
		ds.logs = append(ds.logs, attendance.AttendanceLog{
			EmployeeID: refID(l.Employee),
			ActionType: attendance.ActionType(strings.ToLower(l.Action)),
			Timestamp:  ts,
		})
	}

	for _, d := range f.Deductions {
		ds.deductions = append(ds.deductions, payroll.Deduction{
			EmployeeID: refID(d.Employee),
			Month:      d.Month,
			Amount:     d.Amount,
			Percentage: d.Percentage,
			Reason:     d.Reason,
		})
	}
	return ds, nil
}

func parseOptionalClock(s string) (roster.ClockTime, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	return roster.ParseClockTime(s)
}

func parseLogTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	return time.ParseInLocation(logLayout, s, loc)
}

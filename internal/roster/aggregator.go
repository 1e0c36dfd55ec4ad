package roster

import (
	"sort"
	"strings"
	"time"

	"inthehaus-hr/internal/employee"

	"github.com/google/uuid"
)

type RosterEntry struct {
	EmployeeID   uuid.UUID  `json:"employee_id"`
	EmployeeName string     `json:"employee_name"`
	Position     string     `json:"position"`
	ShiftID      *uuid.UUID `json:"shift_id,omitempty"`
	ShiftName    string     `json:"shift_name"`
	StartTime    ClockTime  `json:"start_time"`
	EndTime      ClockTime  `json:"end_time"`
	Source       Source     `json:"source"`
}

// EffectiveRoster lists who works on date and when. Inactive employees and
// employees who are off are omitted. Entries are ordered by start time, then
// name.
func EffectiveRoster(
	employees []employee.Employee,
	schedules []WeeklySchedule,
	overrides []RosterOverride,
	shifts []Shift,
	date time.Time,
) []RosterEntry {
	return NewResolver(schedules, overrides, shifts).Roster(employees, date)
}

func (r *Resolver) Roster(employees []employee.Employee, date time.Time) []RosterEntry {
	entries := make([]RosterEntry, 0, len(employees))
	for _, e := range employees {
		if !e.IsActive {
			continue
		}
		a := r.Resolve(e.ID, date)
		if a == nil {
			continue
		}
		entries = append(entries, RosterEntry{
			EmployeeID:   e.ID,
			EmployeeName: e.DisplayName(),
			Position:     e.Position,
			ShiftID:      a.ShiftID,
			ShiftName:    a.ShiftName,
			StartTime:    a.StartTime,
			EndTime:      a.EndTime,
			Source:       a.Source,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		si, sj := sortMinutes(entries[i].StartTime), sortMinutes(entries[j].StartTime)
		if si != sj {
			return si < sj
		}
		return strings.ToLower(entries[i].EmployeeName) < strings.ToLower(entries[j].EmployeeName)
	})
	return entries
}

// sortMinutes puts unparseable times after every valid one.
func sortMinutes(t ClockTime) int {
	if m, ok := t.Minutes(); ok {
		return m
	}
	return 24 * 60
}

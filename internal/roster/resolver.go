package roster

import (
	"time"

	"github.com/google/uuid"
)

type Source string

const (
	SourceOverride Source = "OVERRIDE"
	SourceTemplate Source = "TEMPLATE"
)

const (
	swapSuffix       = " (Swap)"
	swappedShiftName = "Swapped Shift"
)

// Assignment is the shift an employee is expected to work on one date.
type Assignment struct {
	EmployeeID uuid.UUID
	Date       string
	Source     Source
	ShiftID    *uuid.UUID
	ShiftName  string
	Category   ShiftCategory
	StartTime  ClockTime
	EndTime    ClockTime
	Salary     float64
}

// Window returns the nominal start and end instants on day. An end earlier
// than the start belongs to the next calendar day.
func (a *Assignment) Window(day time.Time) (start, end time.Time, ok bool) {
	start, okStart := a.StartTime.On(day)
	end, okEnd := a.EndTime.On(day)
	if !okStart || !okEnd {
		return time.Time{}, time.Time{}, false
	}
	if end.Before(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end, true
}

type weeklyKey struct {
	employeeID uuid.UUID
	dayOfWeek  int
}

type overrideKey struct {
	employeeID uuid.UUID
	date       string
}

// Resolver answers which shift applies to an employee on a date. Overrides
// always take precedence over the weekly template.
type Resolver struct {
	weekly    map[weeklyKey]WeeklySchedule
	overrides map[overrideKey]RosterOverride
	shifts    map[uuid.UUID]Shift
}

// NewResolver indexes its inputs. When two rows share a key the later one
// wins.
func NewResolver(schedules []WeeklySchedule, overrides []RosterOverride, shifts []Shift) *Resolver {
	r := &Resolver{
		weekly:    make(map[weeklyKey]WeeklySchedule, len(schedules)),
		overrides: make(map[overrideKey]RosterOverride, len(overrides)),
		shifts:    make(map[uuid.UUID]Shift, len(shifts)),
	}
	for _, s := range shifts {
		r.shifts[s.ID] = s
	}
	for _, ws := range schedules {
		r.weekly[weeklyKey{ws.EmployeeID, ws.DayOfWeek}] = ws
	}
	for _, o := range overrides {
		r.overrides[overrideKey{o.EmployeeID, o.DateKey()}] = o
	}
	return r
}

func (r *Resolver) Shift(id uuid.UUID) (Shift, bool) {
	s, ok := r.shifts[id]
	return s, ok
}

// Override returns the override for employeeID on day, if any.
func (r *Resolver) Override(employeeID uuid.UUID, day time.Time) (RosterOverride, bool) {
	o, ok := r.overrides[overrideKey{employeeID, day.Format(DateLayout)}]
	return o, ok
}

// Resolve returns nil when the employee is off or unscheduled on day. day is
// interpreted in its own location.
func (r *Resolver) Resolve(employeeID uuid.UUID, day time.Time) *Assignment {
	date := day.Format(DateLayout)

	if o, ok := r.overrides[overrideKey{employeeID, date}]; ok {
		if o.IsOff {
			return nil
		}
		return r.fromOverride(o, date)
	}

	ws, ok := r.weekly[weeklyKey{employeeID, int(day.Weekday())}]
	if !ok || ws.IsOff || ws.ShiftID == nil {
		return nil
	}
	shift, ok := r.shifts[*ws.ShiftID]
	if !ok {
		return nil
	}
	id := shift.ID
	return &Assignment{
		EmployeeID: employeeID,
		Date:       date,
		Source:     SourceTemplate,
		ShiftID:    &id,
		ShiftName:  shift.Name,
		Category:   shift.EffectiveCategory(),
		StartTime:  shift.StartTime,
		EndTime:    shift.EndTime,
		Salary:     shift.Salary,
	}
}

func (r *Resolver) fromOverride(o RosterOverride, date string) *Assignment {
	a := &Assignment{
		EmployeeID: o.EmployeeID,
		Date:       date,
		Source:     SourceOverride,
		ShiftID:    o.ShiftID,
		ShiftName:  swappedShiftName,
		StartTime:  o.CustomStartTime,
		EndTime:    o.CustomEndTime,
	}
	if o.ShiftID == nil {
		a.Category = InferCategory(a.ShiftName)
		return a
	}
	shift, ok := r.shifts[*o.ShiftID]
	if !ok {
		a.Category = InferCategory(a.ShiftName)
		return a
	}
	a.ShiftName = shift.Name + swapSuffix
	a.Category = shift.EffectiveCategory()
	a.Salary = shift.Salary
	if a.StartTime.IsZero() {
		a.StartTime = shift.StartTime
	}
	if a.EndTime.IsZero() {
		a.EndTime = shift.EndTime
	}
	return a
}

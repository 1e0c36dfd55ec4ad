package payroll

import (
	"fmt"
	"sort"
	"time"

	"inthehaus-hr/internal/attendance"
	"inthehaus-hr/internal/employee"
	"inthehaus-hr/internal/roster"

	"github.com/google/uuid"
)

const (
	DayNormal     = "Normal"
	DayExtra      = "Extra (พิเศษ)"
	DayAbsent     = "Absent"
	DayIncomplete = "Incomplete"

	noShift = "-"
	noPunch = "-"
)

// Input is everything one payroll run needs, already fetched and filtered to
// the month by the caller.
type Input struct {
	Employees       []employee.Employee
	Logs            []attendance.AttendanceLog
	WeeklySchedules []roster.WeeklySchedule
	Shifts          []roster.Shift
	Overrides       []roster.RosterOverride
	Deductions      []Deduction
	Config          Config
	// Month is YYYY-MM. Only deductions for this month apply; an empty Month
	// applies all of them.
	Month string
}

type DayDetail struct {
	Date    string  `json:"date"`
	Shift   string  `json:"shift"`
	In      string  `json:"in"`
	Out     string  `json:"out"`
	Wage    float64 `json:"wage"`
	OTPay   float64 `json:"ot"`
	OTHours int     `json:"ot_hours"`
	Status  string  `json:"status"`
}

type EmployeeSummary struct {
	EmployeeID     uuid.UUID   `json:"employee_id"`
	EmployeeName   string      `json:"employee_name"`
	EmployeeEmail  string      `json:"employee_email"`
	Position       string      `json:"position"`
	WorkDays       int         `json:"work_days"`
	TotalSalary    float64     `json:"total_salary"`
	TotalOTHours   int         `json:"total_ot_hours"`
	TotalOTPay     float64     `json:"total_ot_pay"`
	TotalDeduct    float64     `json:"total_deduct"`
	NetSalary      float64     `json:"net_salary"`
	LateCount      int         `json:"late_count"`
	AbsentCount    int         `json:"absent_count"`
	DuplicateCount int         `json:"duplicate_count"`
	DailyDetails   []DayDetail `json:"daily_details"`
}

// CalculatePayroll returns one summary per active employee, in input order.
// Missing or inconsistent data degrades to zero-value days and never fails
// the run.
func CalculatePayroll(in Input) []EmployeeSummary {
	cfg := in.Config.withDefaults()
	resolver := roster.NewResolver(in.WeeklySchedules, in.Overrides, in.Shifts)

	logsByEmployee := make(map[uuid.UUID][]attendance.AttendanceLog)
	for _, l := range in.Logs {
		logsByEmployee[l.EmployeeID] = append(logsByEmployee[l.EmployeeID], l)
	}
	deductByEmployee := make(map[uuid.UUID][]Deduction)
	for _, d := range in.Deductions {
		if in.Month != "" && d.Month != in.Month {
			continue
		}
		deductByEmployee[d.EmployeeID] = append(deductByEmployee[d.EmployeeID], d)
	}

	out := make([]EmployeeSummary, 0, len(in.Employees))
	for _, emp := range in.Employees {
		if !emp.IsActive {
			continue
		}
		sum := summarize(emp, logsByEmployee[emp.ID], resolver, cfg)
		applyDeductions(&sum, deductByEmployee[emp.ID])
		out = append(out, sum)
	}
	return out
}

func summarize(emp employee.Employee, logs []attendance.AttendanceLog, resolver *roster.Resolver, cfg Config) EmployeeSummary {
	sum := EmployeeSummary{
		EmployeeID:    emp.ID,
		EmployeeName:  emp.DisplayName(),
		EmployeeEmail: emp.Email,
		Position:      emp.Position,
		DailyDetails:  []DayDetail{},
	}

	byDate := make(map[string][]attendance.AttendanceLog)
	for _, l := range logs {
		key := l.Timestamp.In(cfg.Location).Format(roster.DateLayout)
		byDate[key] = append(byDate[key], l)
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	for _, date := range dates {
		day, err := roster.ParseDate(date, cfg.Location)
		if err != nil {
			continue
		}
		detail := calculateDay(emp, day, byDate[date], resolver, cfg, &sum)
		sum.DailyDetails = append(sum.DailyDetails, detail)
		sum.TotalSalary += detail.Wage
		sum.TotalOTHours += detail.OTHours
		sum.TotalOTPay += detail.OTPay
	}
	return sum
}

// calculateDay prices one calendar day and bumps the summary's counters.
func calculateDay(
	emp employee.Employee,
	day time.Time,
	logs []attendance.AttendanceLog,
	resolver *roster.Resolver,
	cfg Config,
	sum *EmployeeSummary,
) DayDetail {
	assignment := resolver.Resolve(emp.ID, day)
	detail := DayDetail{
		Date:  day.Format(roster.DateLayout),
		Shift: noShift,
		In:    noPunch,
		Out:   noPunch,
	}
	if assignment != nil {
		detail.Shift = assignment.ShiftName
	}

	var checkIn, checkOut *time.Time
	var ins, outs int
	for _, l := range logs {
		ts := l.Timestamp.In(cfg.Location)
		switch l.ActionType {
		case attendance.ActionAbsent:
			detail.Status = DayAbsent
		case attendance.ActionCheckIn:
			ins++
			if checkIn == nil || ts.Before(*checkIn) {
				checkIn = &ts
			}
		case attendance.ActionCheckOut:
			outs++
			if checkOut == nil || ts.After(*checkOut) {
				checkOut = &ts
			}
		}
	}
	if ins > 1 {
		sum.DuplicateCount += ins - 1
	}
	if outs > 1 {
		sum.DuplicateCount += outs - 1
	}

	if detail.Status == DayAbsent {
		sum.AbsentCount++
		return detail
	}
	if checkIn != nil {
		detail.In = checkIn.Format("15:04")
	}
	if checkOut != nil {
		detail.Out = checkOut.Format("15:04")
	}
	if checkIn == nil || checkOut == nil {
		detail.Status = DayIncomplete
		return detail
	}

	var otMinutes int
	if assignment != nil {
		detail.Wage = scheduledWage(emp, assignment, cfg)
		detail.Status = DayNormal
		if start, end, ok := assignment.Window(day); ok {
			if late := minutesBetween(start, *checkIn); late > 0 {
				detail.Status = fmt.Sprintf("Late (%dm)", late)
				sum.LateCount++
			}
			otMinutes = minutesBetween(end, *checkOut)
		}
	} else {
		detail.Wage = extraWage(emp)
		detail.Status = DayExtra
		end := checkIn.Add(ExtraShiftMinutes * time.Minute)
		otMinutes = minutesBetween(end, *checkOut)
	}

	detail.OTHours = RoundOvertime(otMinutes)
	detail.OTPay = float64(detail.OTHours) * cfg.OTRate
	sum.WorkDays++
	return detail
}

// RoundOvertime converts raw overtime minutes into paid hours: under
// OTThresholdMinutes pays nothing, otherwise whole hours plus one more when
// the remainder is at least half an hour.
func RoundOvertime(minutes int) int {
	if minutes < OTThresholdMinutes {
		return 0
	}
	hours := minutes / 60
	if minutes%60 >= 30 {
		hours++
	}
	return hours
}

func scheduledWage(emp employee.Employee, a *roster.Assignment, cfg Config) float64 {
	if rate, ok := emp.ShiftRates.Rate(string(a.Category)); ok {
		return rate
	}
	if a.Category == roster.CategoryDouble && cfg.DoubleShiftRate > 0 {
		return cfg.DoubleShiftRate
	}
	if a.Salary > 0 {
		return a.Salary
	}
	return DefaultShiftWage
}

func extraWage(emp employee.Employee) float64 {
	if rate, ok := emp.ShiftRates.Rate(employee.RateMorning); ok {
		return rate
	}
	if rate, ok := emp.ShiftRates.Rate(employee.RateEvening); ok {
		return rate
	}
	return DefaultShiftWage
}

func applyDeductions(sum *EmployeeSummary, deductions []Deduction) {
	gross := sum.TotalSalary + sum.TotalOTPay
	for _, d := range deductions {
		sum.TotalDeduct += d.Value(gross)
	}
	sum.NetSalary = gross - sum.TotalDeduct
}

// minutesBetween returns whole minutes from a to b, negative when b is
// earlier.
func minutesBetween(a, b time.Time) int {
	return int(b.Sub(a) / time.Minute)
}

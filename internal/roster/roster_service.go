package roster

import (
	"context"
	"errors"
	"strings"
	"time"

	"inthehaus-hr/internal/employee"
	employeeerrors "inthehaus-hr/internal/employee/errors"
	rostererrors "inthehaus-hr/internal/roster/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EmployeeReader is the slice of the employee store the roster needs.
type EmployeeReader interface {
	FindAllByCompany(ctx context.Context, companyID string) ([]employee.Employee, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error)
}

//go:generate mockgen -source=roster_service.go -destination=mock/roster_service_mock.go -package=mock
type Service interface {
	CreateShift(ctx context.Context, companyID string, req ShiftRequest) (ShiftResponse, error)
	ListShifts(ctx context.Context, companyID string) ([]ShiftResponse, error)
	UpdateShift(ctx context.Context, companyID, id string, req ShiftRequest) (ShiftResponse, error)
	DeleteShift(ctx context.Context, companyID, id string) error

	ListWeekly(ctx context.Context, companyID, employeeID string) ([]WeeklyResponse, error)
	UpsertWeekly(ctx context.Context, companyID string, req UpsertWeeklyRequest) (WeeklyResponse, error)

	ListOverrides(ctx context.Context, companyID, from, to string) ([]OverrideResponse, error)
	CreateOverride(ctx context.Context, companyID string, req CreateOverrideRequest) (OverrideResponse, error)
	DeleteOverride(ctx context.Context, companyID, id string) error

	GetEffectiveRoster(ctx context.Context, companyID, date string) (EffectiveRosterResponse, error)
}

type service struct {
	repo      Repository
	employees EmployeeReader
	loc       *time.Location
	logger    *zap.Logger
}

func NewService(repo Repository, employees EmployeeReader, loc *time.Location, logger ...*zap.Logger) Service {
	l := zap.L().Named("roster.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("roster.service")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &service{repo: repo, employees: employees, loc: loc, logger: l}
}

func (s *service) CreateShift(ctx context.Context, companyID string, req ShiftRequest) (ShiftResponse, error) {
	shift, err := buildShift(req)
	if err != nil {
		return ShiftResponse{}, err
	}
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return ShiftResponse{}, employeeerrors.ErrInvalidCompanyID
	}
	shift.ID = uuid.New()
	shift.CompanyID = companyUUID

	if err := s.repo.CreateShift(ctx, shift); err != nil {
		s.logger.Error("create shift failed", zap.String("company_id", companyID), zap.Error(err))
		return ShiftResponse{}, err
	}

	s.logger.Info("shift created",
		zap.String("shift_id", shift.ID.String()),
		zap.String("category", string(shift.Category)),
	)
	return toShiftResponse(*shift), nil
}

func (s *service) ListShifts(ctx context.Context, companyID string) ([]ShiftResponse, error) {
	shifts, err := s.repo.FindShifts(ctx, companyID)
	if err != nil {
		s.logger.Error("list shifts failed", zap.Error(err))
		return nil, err
	}
	resp := make([]ShiftResponse, len(shifts))
	for i, sh := range shifts {
		resp[i] = toShiftResponse(sh)
	}
	return resp, nil
}

func (s *service) UpdateShift(ctx context.Context, companyID, id string, req ShiftRequest) (ShiftResponse, error) {
	next, err := buildShift(req)
	if err != nil {
		return ShiftResponse{}, err
	}

	shift, err := s.repo.FindShiftByID(ctx, companyID, id)
	if err != nil {
		return ShiftResponse{}, mapShiftError(err)
	}
	shift.Name = next.Name
	shift.Category = next.Category
	shift.StartTime = next.StartTime
	shift.EndTime = next.EndTime
	shift.Salary = next.Salary

	if err := s.repo.UpdateShift(ctx, shift); err != nil {
		s.logger.Error("update shift failed", zap.String("shift_id", id), zap.Error(err))
		return ShiftResponse{}, err
	}
	return toShiftResponse(*shift), nil
}

// DeleteShift refuses shifts still referenced by a working weekday.
// Overrides keep their frozen times and survive the deletion.
func (s *service) DeleteShift(ctx context.Context, companyID, id string) error {
	n, err := s.repo.CountWeeklyUsingShift(ctx, companyID, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return rostererrors.ErrShiftInUse
	}
	if err := s.repo.DeleteShift(ctx, companyID, id); err != nil {
		return mapShiftError(err)
	}
	s.logger.Info("shift deleted", zap.String("shift_id", id))
	return nil
}

func (s *service) ListWeekly(ctx context.Context, companyID, employeeID string) ([]WeeklyResponse, error) {
	var (
		rows []WeeklySchedule
		err  error
	)
	if employeeID != "" {
		rows, err = s.repo.FindWeeklyByEmployees(ctx, companyID, []string{employeeID})
	} else {
		rows, err = s.repo.FindWeekly(ctx, companyID)
	}
	if err != nil {
		return nil, err
	}
	resp := make([]WeeklyResponse, len(rows))
	for i, ws := range rows {
		resp[i] = toWeeklyResponse(ws)
	}
	return resp, nil
}

func (s *service) UpsertWeekly(ctx context.Context, companyID string, req UpsertWeeklyRequest) (WeeklyResponse, error) {
	if !req.IsOff && req.ShiftID == "" {
		return WeeklyResponse{}, rostererrors.ErrWeeklyNeedsShift
	}
	empl, err := s.employees.FindByIDAndCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		return WeeklyResponse{}, mapEmployeeError(err)
	}

	ws := &WeeklySchedule{
		ID:         uuid.New(),
		CompanyID:  empl.CompanyID,
		EmployeeID: empl.ID,
		DayOfWeek:  *req.DayOfWeek,
		IsOff:      req.IsOff,
	}
	if !req.IsOff {
		shift, err := s.repo.FindShiftByID(ctx, companyID, req.ShiftID)
		if err != nil {
			return WeeklyResponse{}, mapShiftError(err)
		}
		id := shift.ID
		ws.ShiftID = &id
	}

	if err := s.repo.UpsertWeekly(ctx, ws); err != nil {
		s.logger.Error("upsert weekly schedule failed",
			zap.String("employee_id", req.EmployeeID),
			zap.Int("day_of_week", ws.DayOfWeek),
			zap.Error(err),
		)
		return WeeklyResponse{}, err
	}
	return toWeeklyResponse(*ws), nil
}

func (s *service) ListOverrides(ctx context.Context, companyID, from, to string) ([]OverrideResponse, error) {
	fromDate, err := ParseDate(from, s.loc)
	if err != nil {
		return nil, rostererrors.ErrInvalidDate
	}
	toDate, err := ParseDate(to, s.loc)
	if err != nil {
		return nil, rostererrors.ErrInvalidDate
	}
	if toDate.Before(fromDate) {
		return nil, rostererrors.ErrInvalidDateRange
	}

	rows, err := s.repo.FindOverrides(ctx, companyID, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	resp := make([]OverrideResponse, len(rows))
	for i, o := range rows {
		resp[i] = ToOverrideResponse(o)
	}
	return resp, nil
}

// CreateOverride freezes the shift's times onto the override unless custom
// times are supplied.
func (s *service) CreateOverride(ctx context.Context, companyID string, req CreateOverrideRequest) (OverrideResponse, error) {
	date, err := ParseDate(req.Date, s.loc)
	if err != nil {
		return OverrideResponse{}, rostererrors.ErrInvalidDate
	}
	empl, err := s.employees.FindByIDAndCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		return OverrideResponse{}, mapEmployeeError(err)
	}

	o := &RosterOverride{
		ID:           uuid.New(),
		CompanyID:    empl.CompanyID,
		EmployeeID:   empl.ID,
		OverrideDate: date,
		IsOff:        req.IsOff,
		Note:         strings.TrimSpace(req.Note),
	}

	if !req.IsOff {
		if err := s.freezeTimes(ctx, companyID, o, req); err != nil {
			return OverrideResponse{}, err
		}
	}

	if err := s.repo.UpsertOverride(ctx, o); err != nil {
		s.logger.Error("upsert override failed",
			zap.String("employee_id", req.EmployeeID),
			zap.String("date", req.Date),
			zap.Error(err),
		)
		return OverrideResponse{}, err
	}

	s.logger.Info("roster override saved",
		zap.String("employee_id", req.EmployeeID),
		zap.String("date", o.DateKey()),
		zap.Bool("is_off", o.IsOff),
	)
	return ToOverrideResponse(*o), nil
}

func (s *service) freezeTimes(ctx context.Context, companyID string, o *RosterOverride, req CreateOverrideRequest) error {
	var start, end ClockTime
	if req.CustomStartTime != "" {
		t, err := ParseClockTime(req.CustomStartTime)
		if err != nil {
			return rostererrors.ErrInvalidClockTime
		}
		start = t
	}
	if req.CustomEndTime != "" {
		t, err := ParseClockTime(req.CustomEndTime)
		if err != nil {
			return rostererrors.ErrInvalidClockTime
		}
		end = t
	}

	if req.ShiftID != "" {
		shift, err := s.repo.FindShiftByID(ctx, companyID, req.ShiftID)
		if err != nil {
			return mapShiftError(err)
		}
		id := shift.ID
		o.ShiftID = &id
		if start.IsZero() {
			start = shift.StartTime
		}
		if end.IsZero() {
			end = shift.EndTime
		}
	}

	if start.IsZero() || end.IsZero() {
		return rostererrors.ErrOverrideNeedsShift
	}
	o.CustomStartTime = start
	o.CustomEndTime = end
	return nil
}

func (s *service) DeleteOverride(ctx context.Context, companyID, id string) error {
	if err := s.repo.DeleteOverride(ctx, companyID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return rostererrors.ErrOverrideNotFound
		}
		return err
	}
	return nil
}

func (s *service) GetEffectiveRoster(ctx context.Context, companyID, date string) (EffectiveRosterResponse, error) {
	day, err := ParseDate(date, s.loc)
	if err != nil {
		return EffectiveRosterResponse{}, rostererrors.ErrInvalidDate
	}

	employees, err := s.employees.FindAllByCompany(ctx, companyID)
	if err != nil {
		return EffectiveRosterResponse{}, err
	}
	schedules, err := s.repo.FindWeekly(ctx, companyID)
	if err != nil {
		return EffectiveRosterResponse{}, err
	}
	overrides, err := s.repo.FindOverrides(ctx, companyID, day, day)
	if err != nil {
		return EffectiveRosterResponse{}, err
	}
	shifts, err := s.repo.FindShifts(ctx, companyID)
	if err != nil {
		return EffectiveRosterResponse{}, err
	}

	entries := EffectiveRoster(employees, schedules, overrides, shifts, day)
	s.logger.Debug("effective roster resolved",
		zap.String("company_id", companyID),
		zap.String("date", date),
		zap.Int("entries", len(entries)),
	)
	return EffectiveRosterResponse{Date: day.Format(DateLayout), Entries: entries}, nil
}

func buildShift(req ShiftRequest) (*Shift, error) {
	start, err := ParseClockTime(req.StartTime)
	if err != nil {
		return nil, rostererrors.ErrInvalidClockTime
	}
	end, err := ParseClockTime(req.EndTime)
	if err != nil {
		return nil, rostererrors.ErrInvalidClockTime
	}
	category, err := ParseShiftCategory(req.Category)
	if err != nil {
		return nil, rostererrors.ErrInvalidCategory
	}
	name := strings.TrimSpace(req.Name)
	if category == CategoryNone {
		category = InferCategory(name)
	}
	return &Shift{
		Name:      name,
		Category:  category,
		StartTime: start,
		EndTime:   end,
		Salary:    req.Salary,
	}, nil
}

func mapShiftError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rostererrors.ErrShiftNotFound
	}
	return err
}

func mapEmployeeError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}
	return err
}

func toShiftResponse(s Shift) ShiftResponse {
	return ShiftResponse{
		ID:        s.ID.String(),
		Name:      s.Name,
		Category:  s.EffectiveCategory(),
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Salary:    s.Salary,
	}
}

func toWeeklyResponse(ws WeeklySchedule) WeeklyResponse {
	return WeeklyResponse{
		ID:         ws.ID.String(),
		EmployeeID: ws.EmployeeID.String(),
		DayOfWeek:  ws.DayOfWeek,
		ShiftID:    uuidString(ws.ShiftID),
		IsOff:      ws.IsOff,
	}
}

func ToOverrideResponse(o RosterOverride) OverrideResponse {
	return OverrideResponse{
		ID:              o.ID.String(),
		EmployeeID:      o.EmployeeID.String(),
		Date:            o.DateKey(),
		ShiftID:         uuidString(o.ShiftID),
		IsOff:           o.IsOff,
		CustomStartTime: o.CustomStartTime,
		CustomEndTime:   o.CustomEndTime,
		SwapRequestID:   uuidString(o.SwapRequestID),
		Note:            o.Note,
	}
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

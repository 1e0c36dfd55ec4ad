package attendance

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	attendanceerrors "inthehaus-hr/internal/attendance/errors"
	"inthehaus-hr/internal/employee"
	employeeerrors "inthehaus-hr/internal/employee/errors"
	"inthehaus-hr/internal/roster"
	"inthehaus-hr/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxRangeDays = 62

type EmployeeReader interface {
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error)
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, companyID, employeeID string, req CheckInRequest) (AttendanceLogResponse, error)
	CheckOut(ctx context.Context, companyID, employeeID string, req CheckOutRequest) (AttendanceLogResponse, error)
	MarkAbsent(ctx context.Context, companyID, actorID string, req MarkAbsentRequest) (AttendanceLogResponse, error)
	GetAll(ctx context.Context, companyID string, filter ListFilter) ([]AttendanceLogResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees EmployeeReader
	loc       *time.Location
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, employees EmployeeReader, loc *time.Location, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		loc:       loc,
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) CheckIn(ctx context.Context, companyID, employeeID string, req CheckInRequest) (AttendanceLogResponse, error) {
	return s.punch(ctx, companyID, employeeID, ActionCheckIn, req.Source, req.Note)
}

func (s *service) CheckOut(ctx context.Context, companyID, employeeID string, req CheckOutRequest) (AttendanceLogResponse, error) {
	return s.punch(ctx, companyID, employeeID, ActionCheckOut, req.Source, req.Note)
}

// punch appends a check-in or check-out. Repeated punches are stored as-is;
// payroll keeps the earliest check-in and latest check-out and counts the
// rest as duplicates. Punching into a day already marked absent is refused.
func (s *service) punch(
	ctx context.Context,
	companyID, employeeID string,
	action ActionType,
	source, note string,
) (AttendanceLogResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	if employeeID == "" {
		return AttendanceLogResponse{}, attendanceerrors.ErrEmployeeRequired
	}

	empl, err := s.activeEmployee(ctx, companyID, employeeID)
	if err != nil {
		return AttendanceLogResponse{}, err
	}

	now := s.now().In(s.loc)
	dayStart := startOfDay(now)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("attendance begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceLogResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	today, err := qtx.FindByRange(ctx, companyID, dayStart, dayStart.AddDate(0, 0, 1), employeeID)
	if err != nil {
		s.logger.Error("attendance load day failed", zap.String("employee_id", employeeID), zap.Error(err))
		return AttendanceLogResponse{}, err
	}
	for _, l := range today {
		if l.ActionType == ActionAbsent {
			return AttendanceLogResponse{}, attendanceerrors.ErrMarkedAbsent
		}
	}

	if source == "" {
		source = SourceApp
	}
	log := &AttendanceLog{
		ID:         uuid.New(),
		CompanyID:  empl.CompanyID,
		EmployeeID: empl.ID,
		ActionType: action,
		Timestamp:  now,
		Source:     source,
		Note:       strings.TrimSpace(note),
	}
	if err := qtx.Create(ctx, log); err != nil {
		s.logger.Error("attendance persist failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceLogResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("attendance commit failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceLogResponse{}, err
	}

	s.logger.Info("attendance recorded",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.String("action", string(action)),
		zap.Int("earlier_logs_today", len(today)),
	)
	return s.toResponse(*log), nil
}

// MarkAbsent records an absence at the start of the given day. Marking an
// already absent day returns the existing mark.
func (s *service) MarkAbsent(ctx context.Context, companyID, actorID string, req MarkAbsentRequest) (AttendanceLogResponse, error) {
	day, err := roster.ParseDate(req.Date, s.loc)
	if err != nil {
		return AttendanceLogResponse{}, attendanceerrors.ErrInvalidDate
	}
	empl, err := s.activeEmployee(ctx, companyID, req.EmployeeID)
	if err != nil {
		return AttendanceLogResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceLogResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	logs, err := qtx.FindByRange(ctx, companyID, day, day.AddDate(0, 0, 1), req.EmployeeID)
	if err != nil {
		return AttendanceLogResponse{}, err
	}
	for _, l := range logs {
		if l.ActionType == ActionAbsent {
			return s.toResponse(l), nil
		}
	}

	log := &AttendanceLog{
		ID:         uuid.New(),
		CompanyID:  empl.CompanyID,
		EmployeeID: empl.ID,
		ActionType: ActionAbsent,
		Timestamp:  day,
		Source:     SourceManual,
		Note:       strings.TrimSpace(req.Note),
	}
	if actor, err := uuid.Parse(actorID); err == nil {
		log.RecordedBy = &actor
	}
	if err := qtx.Create(ctx, log); err != nil {
		s.logger.Error("mark absent persist failed", zap.Error(err))
		return AttendanceLogResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceLogResponse{}, err
	}

	s.logger.Info("employee marked absent",
		zap.String("employee_id", req.EmployeeID),
		zap.String("date", req.Date),
		zap.String("actor_id", actorID),
		zap.Int("punches_overridden", len(logs)),
	)
	return s.toResponse(*log), nil
}

func (s *service) GetAll(ctx context.Context, companyID string, filter ListFilter) ([]AttendanceLogResponse, error) {
	from, to, err := s.parseRange(filter.From, filter.To)
	if err != nil {
		return nil, err
	}

	var ids []string
	if filter.EmployeeID != "" {
		ids = append(ids, filter.EmployeeID)
	}
	logs, err := s.repo.FindByRange(ctx, companyID, from, to, ids...)
	if err != nil {
		s.logger.Error("list attendance failed", zap.String("company_id", companyID), zap.Error(err))
		return nil, err
	}

	resp := make([]AttendanceLogResponse, len(logs))
	for i, l := range logs {
		resp[i] = s.toResponse(l)
	}
	return resp, nil
}

// parseRange turns inclusive dates into a half-open instant range.
func (s *service) parseRange(fromRaw, toRaw string) (time.Time, time.Time, error) {
	today := startOfDay(s.now().In(s.loc))
	from, to := today, today
	if fromRaw != "" {
		d, err := roster.ParseDate(fromRaw, s.loc)
		if err != nil {
			return time.Time{}, time.Time{}, attendanceerrors.ErrInvalidDate
		}
		from = d
	}
	if toRaw != "" {
		d, err := roster.ParseDate(toRaw, s.loc)
		if err != nil {
			return time.Time{}, time.Time{}, attendanceerrors.ErrInvalidDate
		}
		to = d
	} else if fromRaw != "" {
		to = from
	}
	if to.Before(from) || to.Sub(from) > maxRangeDays*24*time.Hour {
		return time.Time{}, time.Time{}, attendanceerrors.ErrInvalidDateRange
	}
	return from, to.AddDate(0, 0, 1), nil
}

func (s *service) activeEmployee(ctx context.Context, companyID, employeeID string) (*employee.Employee, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, employeeerrors.ErrInvalidEmployeeID
	}
	empl, err := s.employees.FindByIDAndCompany(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employeeerrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	if !empl.IsActive {
		return nil, employeeerrors.ErrEmployeeInactive
	}
	return empl, nil
}

func (s *service) toResponse(l AttendanceLog) AttendanceLogResponse {
	ts := l.Timestamp.In(s.loc)
	return AttendanceLogResponse{
		ID:         l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		ActionType: l.ActionType,
		Timestamp:  ts,
		Date:       ts.Format(roster.DateLayout),
		Source:     l.Source,
		Note:       l.Note,
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

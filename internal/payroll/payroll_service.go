package payroll

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"inthehaus-hr/internal/attendance"
	"inthehaus-hr/internal/employee"
	employeeerrors "inthehaus-hr/internal/employee/errors"
	"inthehaus-hr/internal/events"
	"inthehaus-hr/internal/messaging/kafka"
	payrollerrors "inthehaus-hr/internal/payroll/errors"
	"inthehaus-hr/internal/roster"
	"inthehaus-hr/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const aggregateType = "payroll_record"

type EmployeeReader interface {
	FindAllByCompany(ctx context.Context, companyID string) ([]employee.Employee, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error)
}

type AttendanceReader interface {
	FindByRange(ctx context.Context, companyID string, from, to time.Time, employeeIDs ...string) ([]attendance.AttendanceLog, error)
}

type RosterReader interface {
	FindWeekly(ctx context.Context, companyID string) ([]roster.WeeklySchedule, error)
	FindOverrides(ctx context.Context, companyID string, from, to time.Time) ([]roster.RosterOverride, error)
	FindShifts(ctx context.Context, companyID string) ([]roster.Shift, error)
}

// Options carries the deployment settings the payroll service needs.
type Options struct {
	Location      *time.Location
	StorageDir    string
	PublicBaseURL string
}

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Preview(ctx context.Context, companyID, month string) ([]EmployeeSummary, error)
	Generate(ctx context.Context, companyID, actorID string, req GenerateRequest) (GenerateResponse, error)
	GetAll(ctx context.Context, companyID string, filter ListFilter) ([]PayrollRecordResponse, error)
	GetByID(ctx context.Context, companyID, id string) (PayrollRecordResponse, error)
	Approve(ctx context.Context, companyID, actorID, id string) (PayrollRecordResponse, error)
	MarkAsPaid(ctx context.Context, companyID, actorID, id string) (PayrollRecordResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	GeneratePayslip(ctx context.Context, companyID, id string) (PayrollRecordResponse, error)
	ExportXLSX(ctx context.Context, companyID, month string) ([]byte, error)

	GetConfig(ctx context.Context, companyID string) (ConfigResponse, error)
	UpdateConfig(ctx context.Context, companyID string, req UpdateConfigRequest) (ConfigResponse, error)

	CreateDeduction(ctx context.Context, companyID, actorID string, req CreateDeductionRequest) (DeductionResponse, error)
	ListDeductions(ctx context.Context, companyID, month string) ([]DeductionResponse, error)
	DeleteDeduction(ctx context.Context, companyID, id string) error
}

type service struct {
	db         *sql.DB
	repo       Repository
	employees  EmployeeReader
	attendance AttendanceReader
	roster     RosterReader
	outbox     kafka.OutboxRepository
	opts       Options
	now        func() time.Time
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees EmployeeReader,
	attendanceRepo AttendanceReader,
	rosterRepo RosterReader,
	outbox kafka.OutboxRepository,
	opts Options,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	if opts.Location == nil {
		opts.Location = DefaultLocation()
	}
	if opts.StorageDir == "" {
		opts.StorageDir = "storage/payslips"
	}
	if opts.PublicBaseURL == "" {
		opts.PublicBaseURL = "/files/payslips"
	}
	return &service{
		db:         db,
		repo:       repo,
		employees:  employees,
		attendance: attendanceRepo,
		roster:     rosterRepo,
		outbox:     outbox,
		opts:       opts,
		now:        time.Now,
		logger:     l,
	}
}

func (s *service) Preview(ctx context.Context, companyID, month string) ([]EmployeeSummary, error) {
	in, err := s.loadInput(ctx, companyID, month)
	if err != nil {
		return nil, err
	}
	return CalculatePayroll(in), nil
}

// loadInput fetches everything the calculator needs for month.
func (s *service) loadInput(ctx context.Context, companyID, month string) (Input, error) {
	from, err := s.parseMonth(month)
	if err != nil {
		return Input{}, err
	}
	to := from.AddDate(0, 1, 0)

	cfg, err := s.loadConfig(ctx, companyID)
	if err != nil {
		return Input{}, err
	}
	empls, err := s.employees.FindAllByCompany(ctx, companyID)
	if err != nil {
		return Input{}, err
	}
	logs, err := s.attendance.FindByRange(ctx, companyID, from, to)
	if err != nil {
		return Input{}, err
	}
	weekly, err := s.roster.FindWeekly(ctx, companyID)
	if err != nil {
		return Input{}, err
	}
	overrides, err := s.roster.FindOverrides(ctx, companyID, from, to.AddDate(0, 0, -1))
	if err != nil {
		return Input{}, err
	}
	shifts, err := s.roster.FindShifts(ctx, companyID)
	if err != nil {
		return Input{}, err
	}
	deductions, err := s.repo.FindDeductions(ctx, companyID, from.Format(MonthLayout))
	if err != nil {
		return Input{}, err
	}

	s.logger.Debug("payroll input loaded",
		zap.String("company_id", companyID),
		zap.String("month", from.Format(MonthLayout)),
		zap.Int("employees", len(empls)),
		zap.Int("logs", len(logs)),
		zap.Int("overrides", len(overrides)),
	)
	return Input{
		Employees:       empls,
		Logs:            logs,
		WeeklySchedules: weekly,
		Shifts:          shifts,
		Overrides:       overrides,
		Deductions:      deductions,
		Config:          cfg,
		Month:           from.Format(MonthLayout),
	}, nil
}

func (s *service) loadConfig(ctx context.Context, companyID string) (Config, error) {
	cfg := Config{Location: s.opts.Location}
	stored, err := s.repo.FindConfig(ctx, companyID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return cfg.withDefaults(), nil
	}
	if err != nil {
		return Config{}, err
	}
	cfg.OTRate = stored.OTRate
	cfg.DoubleShiftRate = stored.DoubleShiftRate
	return cfg.withDefaults(), nil
}

// Generate recalculates month and stores the result as DRAFT records. Records
// that were already approved or paid are reported as skipped.
func (s *service) Generate(ctx context.Context, companyID, actorID string, req GenerateRequest) (GenerateResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return GenerateResponse{}, employeeerrors.ErrInvalidCompanyID
	}
	in, err := s.loadInput(ctx, companyID, req.Month)
	if err != nil {
		return GenerateResponse{}, err
	}
	summaries := CalculatePayroll(in)

	var generatedBy *uuid.UUID
	if id, err := uuid.Parse(actorID); err == nil {
		generatedBy = &id
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("generate payroll begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return GenerateResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	existing, err := qtx.FindRecords(ctx, companyID, ListFilter{Month: in.Month})
	if err != nil {
		return GenerateResponse{}, err
	}
	byEmployee := make(map[uuid.UUID]PayrollRecord, len(existing))
	for _, r := range existing {
		byEmployee[r.EmployeeID] = r
	}

	resp := GenerateResponse{Month: in.Month, Records: make([]PayrollRecordResponse, 0, len(summaries))}
	for _, sum := range summaries {
		prev, found := byEmployee[sum.EmployeeID]
		if found && prev.Status != StatusDraft {
			resp.Skipped++
			continue
		}
		rec := newDraft(companyUUID, in.Month, sum, generatedBy)
		if found {
			rec.ID = prev.ID
			rec.CreatedAt = prev.CreatedAt
		}
		if err := qtx.UpsertDraft(ctx, &rec); err != nil {
			s.logger.Error("upsert payroll draft failed",
				zap.String("request_id", rid),
				zap.String("employee_id", sum.EmployeeID.String()),
				zap.Error(err),
			)
			return GenerateResponse{}, err
		}
		resp.Generated++
		resp.Records = append(resp.Records, mapToResponse(rec))
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("generate payroll commit failed", zap.String("request_id", rid), zap.Error(err))
		return GenerateResponse{}, err
	}

	s.logger.Info("payroll generated",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("month", in.Month),
		zap.Int("generated", resp.Generated),
		zap.Int("skipped", resp.Skipped),
	)
	return resp, nil
}

func (s *service) GetAll(ctx context.Context, companyID string, filter ListFilter) ([]PayrollRecordResponse, error) {
	if filter.Month != "" {
		from, err := s.parseMonth(filter.Month)
		if err != nil {
			return nil, err
		}
		filter.Month = from.Format(MonthLayout)
	}
	if filter.Status != "" {
		filter.Status = strings.ToUpper(strings.TrimSpace(filter.Status))
		if !RecordStatus(filter.Status).Valid() {
			return nil, payrollerrors.ErrInvalidStatusFilter
		}
	}

	rows, err := s.repo.FindRecords(ctx, companyID, filter)
	if err != nil {
		s.logger.Error("list payroll records failed", zap.String("company_id", companyID), zap.Error(err))
		return nil, err
	}
	resp := make([]PayrollRecordResponse, len(rows))
	for i, r := range rows {
		resp[i] = mapToResponse(r)
		resp[i].DailyDetails = nil
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (PayrollRecordResponse, error) {
	rec, err := s.repo.FindRecordByID(ctx, companyID, id)
	if err != nil {
		return PayrollRecordResponse{}, mapNotFound(err)
	}
	return mapToResponse(*rec), nil
}

// Approve locks the record and queues PayrollPayslipRequested in the same
// transaction.
func (s *service) Approve(ctx context.Context, companyID, actorID, id string) (PayrollRecordResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	return s.transition(ctx, companyID, id, StatusDraft, StatusApproved, func(tx *sql.Tx, rec *PayrollRecord) error {
		now := s.now()
		rec.ApprovedAt = &now
		if by, err := uuid.Parse(actorID); err == nil {
			rec.ApprovedBy = &by
		}
		if s.outbox == nil {
			return nil
		}

		event := events.NewPayrollPayslipRequested(rid, companyID, rec.ID.String(), rec.EmployeeID.String(), rec.Month, actorID, now)
		outboxEvent, err := kafka.NewOutboxEvent(rid, aggregateType, rec.ID.String(), event.EventType, events.PayrollPayslipRequestedTopic, event)
		if err != nil {
			return err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
			s.logger.Error("approve payroll outbox persist failed",
				zap.String("request_id", rid),
				zap.String("payroll_id", id),
				zap.Error(err),
			)
			return err
		}
		return nil
	})
}

func (s *service) MarkAsPaid(ctx context.Context, companyID, actorID, id string) (PayrollRecordResponse, error) {
	return s.transition(ctx, companyID, id, StatusApproved, StatusPaid, func(_ *sql.Tx, rec *PayrollRecord) error {
		now := s.now()
		rec.PaidAt = &now
		return nil
	})
}

func (s *service) transition(
	ctx context.Context,
	companyID, id string,
	from, to RecordStatus,
	apply func(tx *sql.Tx, rec *PayrollRecord) error,
) (PayrollRecordResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollRecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	rec, err := qtx.FindRecordByIDForUpdate(ctx, companyID, id)
	if err != nil {
		return PayrollRecordResponse{}, mapNotFound(err)
	}
	if rec.Status != from {
		return PayrollRecordResponse{}, payrollerrors.ErrInvalidStatusTransition
	}
	if err := apply(tx, rec); err != nil {
		return PayrollRecordResponse{}, err
	}
	rec.Status = to
	if err := qtx.UpdateRecord(ctx, rec); err != nil {
		s.logger.Error("update payroll record failed", zap.String("payroll_id", id), zap.Error(err))
		return PayrollRecordResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return PayrollRecordResponse{}, err
	}

	s.logger.Info("payroll record transitioned",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("payroll_id", id),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
	return mapToResponse(*rec), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	rec, err := qtx.FindRecordByIDForUpdate(ctx, companyID, id)
	if err != nil {
		return mapNotFound(err)
	}
	if rec.Status != StatusDraft {
		return payrollerrors.ErrDeleteOnlyDraft
	}
	if err := qtx.DeleteRecord(ctx, companyID, id); err != nil {
		return mapNotFound(err)
	}
	return tx.Commit()
}

// GeneratePayslip renders the record's PDF into the storage directory and
// stores its public URL. Regenerating overwrites the previous file.
func (s *service) GeneratePayslip(ctx context.Context, companyID, id string) (PayrollRecordResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollRecordResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	rec, err := qtx.FindRecordByIDForUpdate(ctx, companyID, id)
	if err != nil {
		return PayrollRecordResponse{}, mapNotFound(err)
	}
	if rec.Status == StatusDraft {
		return PayrollRecordResponse{}, payrollerrors.ErrPayslipRequiresApproval
	}

	if err := os.MkdirAll(s.opts.StorageDir, 0o755); err != nil {
		return PayrollRecordResponse{}, fmt.Errorf("create payslip dir: %w", err)
	}
	filename := fmt.Sprintf("payslip_%s.pdf", rec.ID)
	if err := os.WriteFile(filepath.Join(s.opts.StorageDir, filename), renderPayslipPDF(payslipLines(*rec)), 0o644); err != nil {
		s.logger.Error("write payslip failed", zap.String("payroll_id", id), zap.Error(err))
		return PayrollRecordResponse{}, fmt.Errorf("write payslip: %w", err)
	}

	url := strings.TrimRight(s.opts.PublicBaseURL, "/") + "/" + filename
	now := s.now()
	rec.PayslipURL = &url
	rec.PayslipGeneratedAt = &now
	if err := qtx.UpdateRecord(ctx, rec); err != nil {
		return PayrollRecordResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return PayrollRecordResponse{}, err
	}

	s.logger.Info("payslip generated",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("payroll_id", id),
		zap.String("url", url),
	)
	return mapToResponse(*rec), nil
}

func (s *service) ExportXLSX(ctx context.Context, companyID, month string) ([]byte, error) {
	in, err := s.loadInput(ctx, companyID, month)
	if err != nil {
		return nil, err
	}
	buf, err := WriteXLSX(in.Month, CalculatePayroll(in))
	if err != nil {
		s.logger.Error("render payroll workbook failed", zap.String("month", in.Month), zap.Error(err))
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *service) GetConfig(ctx context.Context, companyID string) (ConfigResponse, error) {
	cfg, err := s.loadConfig(ctx, companyID)
	if err != nil {
		return ConfigResponse{}, err
	}
	return ConfigResponse{OTRate: cfg.OTRate, DoubleShiftRate: cfg.DoubleShiftRate}, nil
}

func (s *service) UpdateConfig(ctx context.Context, companyID string, req UpdateConfigRequest) (ConfigResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return ConfigResponse{}, employeeerrors.ErrInvalidCompanyID
	}
	if req.OTRate < 0 || req.DoubleShiftRate < 0 {
		return ConfigResponse{}, payrollerrors.ErrInvalidRate
	}

	stored := &PayrollConfig{
		CompanyID:       companyUUID,
		OTRate:          req.OTRate,
		DoubleShiftRate: req.DoubleShiftRate,
		UpdatedAt:       s.now(),
	}
	if err := s.repo.UpsertConfig(ctx, stored); err != nil {
		s.logger.Error("update payroll config failed", zap.String("company_id", companyID), zap.Error(err))
		return ConfigResponse{}, err
	}

	// A zero OT rate means "use the default", as in the calculator.
	cfg := Config{OTRate: stored.OTRate, DoubleShiftRate: stored.DoubleShiftRate}.withDefaults()
	return ConfigResponse{OTRate: cfg.OTRate, DoubleShiftRate: cfg.DoubleShiftRate}, nil
}

func (s *service) CreateDeduction(ctx context.Context, companyID, actorID string, req CreateDeductionRequest) (DeductionResponse, error) {
	from, err := s.parseMonth(req.Month)
	if err != nil {
		return DeductionResponse{}, err
	}
	if (req.Amount == nil) == (req.Percentage == nil) {
		return DeductionResponse{}, payrollerrors.ErrDeductionAmountOrPercentage
	}
	if req.Amount != nil && *req.Amount <= 0 {
		return DeductionResponse{}, payrollerrors.ErrInvalidAmount
	}
	if req.Percentage != nil && (*req.Percentage <= 0 || *req.Percentage > 100) {
		return DeductionResponse{}, payrollerrors.ErrInvalidPercentage
	}

	empl, err := s.employees.FindByIDAndCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DeductionResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return DeductionResponse{}, err
	}

	d := &Deduction{
		ID:         uuid.New(),
		CompanyID:  empl.CompanyID,
		EmployeeID: empl.ID,
		Month:      from.Format(MonthLayout),
		Amount:     req.Amount,
		Percentage: req.Percentage,
		Reason:     strings.TrimSpace(req.Reason),
		CreatedAt:  s.now(),
	}
	if by, err := uuid.Parse(actorID); err == nil {
		d.CreatedBy = &by
	}
	if err := s.repo.CreateDeduction(ctx, d); err != nil {
		s.logger.Error("create deduction failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("employee_id", req.EmployeeID),
			zap.Error(err),
		)
		return DeductionResponse{}, err
	}
	return mapDeduction(*d), nil
}

func (s *service) ListDeductions(ctx context.Context, companyID, month string) ([]DeductionResponse, error) {
	if month != "" {
		from, err := s.parseMonth(month)
		if err != nil {
			return nil, err
		}
		month = from.Format(MonthLayout)
	}
	rows, err := s.repo.FindDeductions(ctx, companyID, month)
	if err != nil {
		return nil, err
	}
	resp := make([]DeductionResponse, len(rows))
	for i, d := range rows {
		resp[i] = mapDeduction(d)
	}
	return resp, nil
}

func (s *service) DeleteDeduction(ctx context.Context, companyID, id string) error {
	if err := s.repo.DeleteDeduction(ctx, companyID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return payrollerrors.ErrDeductionNotFound
		}
		return err
	}
	return nil
}

// parseMonth returns midnight on the first day of a YYYY-MM month.
func (s *service) parseMonth(month string) (time.Time, error) {
	t, err := time.ParseInLocation(MonthLayout, strings.TrimSpace(month), s.opts.Location)
	if err != nil {
		return time.Time{}, payrollerrors.ErrInvalidMonth
	}
	return t, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollerrors.ErrPayrollNotFound
	}
	return err
}

func mapToResponse(r PayrollRecord) PayrollRecordResponse {
	resp := PayrollRecordResponse{
		ID:             r.ID.String(),
		EmployeeID:     r.EmployeeID.String(),
		EmployeeName:   r.EmployeeName,
		EmployeeEmail:  r.EmployeeEmail,
		Month:          r.Month,
		WorkDays:       r.WorkDays,
		TotalSalary:    r.TotalSalary,
		TotalOTHours:   r.TotalOTHours,
		TotalOTPay:     r.TotalOTPay,
		TotalDeduct:    r.TotalDeduct,
		NetSalary:      r.NetSalary,
		LateCount:      r.LateCount,
		AbsentCount:    r.AbsentCount,
		DuplicateCount: r.DuplicateCount,
		DailyDetails:   r.DailyDetails,
		Status:         string(r.Status),
		PayslipURL:     r.PayslipURL,
	}
	if r.ApprovedBy != nil {
		v := r.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if r.ApprovedAt != nil {
		v := r.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	if r.PaidAt != nil {
		v := r.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &v
	}
	if r.PayslipGeneratedAt != nil {
		v := r.PayslipGeneratedAt.Format(time.RFC3339)
		resp.PayslipGeneratedAt = &v
	}
	return resp
}

func mapDeduction(d Deduction) DeductionResponse {
	return DeductionResponse{
		ID:         d.ID.String(),
		EmployeeID: d.EmployeeID.String(),
		Month:      d.Month,
		Amount:     d.Amount,
		Percentage: d.Percentage,
		Reason:     d.Reason,
		CreatedAt:  d.CreatedAt.Format(time.RFC3339),
	}
}

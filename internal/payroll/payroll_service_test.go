package payroll_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"inthehaus-hr/internal/attendance"
	"inthehaus-hr/internal/employee"
	employeeerrors "inthehaus-hr/internal/employee/errors"
	"inthehaus-hr/internal/events"
	"inthehaus-hr/internal/messaging/kafka"
	"inthehaus-hr/internal/payroll"
	payrollerrors "inthehaus-hr/internal/payroll/errors"
	"inthehaus-hr/internal/roster"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type fakePayrollRepository struct {
	withTxFn                  func(tx *sql.Tx) payroll.Repository
	findConfigFn              func(ctx context.Context, companyID string) (*payroll.PayrollConfig, error)
	upsertConfigFn            func(ctx context.Context, cfg *payroll.PayrollConfig) error
	createDeductionFn         func(ctx context.Context, d *payroll.Deduction) error
	findDeductionsFn          func(ctx context.Context, companyID, month string) ([]payroll.Deduction, error)
	deleteDeductionFn         func(ctx context.Context, companyID, id string) error
	upsertDraftFn             func(ctx context.Context, rec *payroll.PayrollRecord) error
	findRecordsFn             func(ctx context.Context, companyID string, filter payroll.ListFilter) ([]payroll.PayrollRecord, error)
	findRecordByIDFn          func(ctx context.Context, companyID, id string) (*payroll.PayrollRecord, error)
	findRecordByIDForUpdateFn func(ctx context.Context, companyID, id string) (*payroll.PayrollRecord, error)
	updateRecordFn            func(ctx context.Context, rec *payroll.PayrollRecord) error
	deleteRecordFn            func(ctx context.Context, companyID, id string) error
}

func (f *fakePayrollRepository) WithTx(tx *sql.Tx) payroll.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakePayrollRepository) FindConfig(ctx context.Context, companyID string) (*payroll.PayrollConfig, error) {
	if f.findConfigFn != nil {
		return f.findConfigFn(ctx, companyID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePayrollRepository) UpsertConfig(ctx context.Context, cfg *payroll.PayrollConfig) error {
	if f.upsertConfigFn != nil {
		return f.upsertConfigFn(ctx, cfg)
	}
	return nil
}

func (f *fakePayrollRepository) CreateDeduction(ctx context.Context, d *payroll.Deduction) error {
	if f.createDeductionFn != nil {
		return f.createDeductionFn(ctx, d)
	}
	return nil
}

func (f *fakePayrollRepository) FindDeductions(ctx context.Context, companyID, month string) ([]payroll.Deduction, error) {
	if f.findDeductionsFn != nil {
		return f.findDeductionsFn(ctx, companyID, month)
	}
	return nil, nil
}

func (f *fakePayrollRepository) DeleteDeduction(ctx context.Context, companyID, id string) error {
	if f.deleteDeductionFn != nil {
		return f.deleteDeductionFn(ctx, companyID, id)
	}
	return nil
}

func (f *fakePayrollRepository) UpsertDraft(ctx context.Context, rec *payroll.PayrollRecord) error {
	if f.upsertDraftFn != nil {
		return f.upsertDraftFn(ctx, rec)
	}
	return nil
}

func (f *fakePayrollRepository) FindRecords(ctx context.Context, companyID string, filter payroll.ListFilter) ([]payroll.PayrollRecord, error) {
	if f.findRecordsFn != nil {
		return f.findRecordsFn(ctx, companyID, filter)
	}
	return nil, nil
}

func (f *fakePayrollRepository) FindRecordByID(ctx context.Context, companyID, id string) (*payroll.PayrollRecord, error) {
	if f.findRecordByIDFn != nil {
		return f.findRecordByIDFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePayrollRepository) FindRecordByIDForUpdate(ctx context.Context, companyID, id string) (*payroll.PayrollRecord, error) {
	if f.findRecordByIDForUpdateFn != nil {
		return f.findRecordByIDForUpdateFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePayrollRepository) UpdateRecord(ctx context.Context, rec *payroll.PayrollRecord) error {
	if f.updateRecordFn != nil {
		return f.updateRecordFn(ctx, rec)
	}
	return nil
}

func (f *fakePayrollRepository) DeleteRecord(ctx context.Context, companyID, id string) error {
	if f.deleteRecordFn != nil {
		return f.deleteRecordFn(ctx, companyID, id)
	}
	return nil
}

type fakeOutboxRepository struct {
	created []kafka.OutboxEvent
	err     error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type fakeEmployees struct {
	empls []employee.Employee
}

func (f *fakeEmployees) FindAllByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return f.empls, nil
}

func (f *fakeEmployees) FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error) {
	for i := range f.empls {
		if f.empls[i].ID.String() == id {
			return &f.empls[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeAttendance struct {
	logs     []attendance.AttendanceLog
	from, to time.Time
}

func (f *fakeAttendance) FindByRange(ctx context.Context, companyID string, from, to time.Time, employeeIDs ...string) ([]attendance.AttendanceLog, error) {
	f.from, f.to = from, to
	return f.logs, nil
}

type fakeRoster struct {
	weekly    []roster.WeeklySchedule
	overrides []roster.RosterOverride
	shifts    []roster.Shift
	from, to  time.Time
}

func (f *fakeRoster) FindWeekly(ctx context.Context, companyID string) ([]roster.WeeklySchedule, error) {
	return f.weekly, nil
}

func (f *fakeRoster) FindOverrides(ctx context.Context, companyID string, from, to time.Time) ([]roster.RosterOverride, error) {
	f.from, f.to = from, to
	return f.overrides, nil
}

func (f *fakeRoster) FindShifts(ctx context.Context, companyID string) ([]roster.Shift, error) {
	return f.shifts, nil
}

type payrollServiceDeps struct {
	db         *sql.DB
	sqlMock    sqlmock.Sqlmock
	service    payroll.Service
	repo       *fakePayrollRepository
	outbox     *fakeOutboxRepository
	employees  *fakeEmployees
	attendance *fakeAttendance
	roster     *fakeRoster
	companyID  string
	storageDir string
}

func setupPayrollServiceTest(t *testing.T) *payrollServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	deps := &payrollServiceDeps{
		db:         db,
		sqlMock:    sqlMock,
		repo:       &fakePayrollRepository{},
		outbox:     &fakeOutboxRepository{},
		employees:  &fakeEmployees{},
		attendance: &fakeAttendance{},
		roster:     &fakeRoster{},
		companyID:  uuid.New().String(),
		storageDir: t.TempDir(),
	}
	deps.service = payroll.NewService(db, deps.repo, deps.employees, deps.attendance, deps.roster, deps.outbox, payroll.Options{
		Location:      ict,
		StorageDir:    deps.storageDir,
		PublicBaseURL: "/files/payslips/",
	})
	return deps
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

// seedMonth gives two active employees one scheduled Morning day each.
func (d *payrollServiceDeps) seedMonth() (employee.Employee, employee.Employee) {
	company := uuid.MustParse(d.companyID)
	a := employee.Employee{ID: uuid.New(), CompanyID: company, FullName: "Somchai Jaidee", Email: "chai@inthehaus.test", ShiftRates: employee.ShiftRates{"morning": 500}, IsActive: true}
	b := employee.Employee{ID: uuid.New(), CompanyID: company, FullName: "Malee Srisuk", Email: "malee@inthehaus.test", IsActive: true}
	morning := roster.Shift{ID: uuid.New(), Name: "Morning", Category: roster.CategoryMorning, StartTime: "08:00", EndTime: "16:00"}

	d.employees.empls = []employee.Employee{a, b}
	d.roster.shifts = []roster.Shift{morning}
	d.roster.weekly = []roster.WeeklySchedule{
		{EmployeeID: a.ID, DayOfWeek: int(time.Tuesday), ShiftID: &morning.ID},
		{EmployeeID: b.ID, DayOfWeek: int(time.Tuesday), ShiftID: &morning.ID},
	}
	d.attendance.logs = []attendance.AttendanceLog{
		punch(a.ID, attendance.ActionCheckIn, at("2024-03-05", 8, 10)),
		punch(a.ID, attendance.ActionCheckOut, at("2024-03-05", 17, 50)),
		punch(b.ID, attendance.ActionCheckIn, at("2024-03-05", 8, 0)),
		punch(b.ID, attendance.ActionCheckOut, at("2024-03-05", 16, 0)),
	}
	return a, b
}

func TestPayrollService_Preview(t *testing.T) {
	deps := setupPayrollServiceTest(t)
	a, _ := deps.seedMonth()
	deps.repo.findConfigFn = func(ctx context.Context, companyID string) (*payroll.PayrollConfig, error) {
		return &payroll.PayrollConfig{OTRate: 80}, nil
	}
	deps.repo.findDeductionsFn = func(ctx context.Context, companyID, month string) ([]payroll.Deduction, error) {
		assert.Equal(t, "2024-03", month)
		return []payroll.Deduction{{EmployeeID: a.ID, Month: "2024-03", Amount: ptr(60)}}, nil
	}

	out, err := deps.service.Preview(context.Background(), deps.companyID, "2024-03")
	assert.NoError(t, err)
	if assert.Len(t, out, 2) {
		assert.Equal(t, 160.0, out[0].TotalOTPay)
		assert.Equal(t, 600.0, out[0].NetSalary)
		assert.Equal(t, 500.0, out[1].NetSalary)
	}

	assert.True(t, deps.attendance.from.Equal(at("2024-03-01", 0, 0)))
	assert.True(t, deps.attendance.to.Equal(at("2024-04-01", 0, 0)))
	assert.True(t, deps.roster.to.Equal(at("2024-03-31", 0, 0)))
}

func TestPayrollService_Preview_InvalidMonth(t *testing.T) {
	deps := setupPayrollServiceTest(t)

	for _, month := range []string{"", "2024-13", "03-2024", "2024/03"} {
		_, err := deps.service.Preview(context.Background(), deps.companyID, month)
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidMonth, month)
	}
}

func TestPayrollService_Generate_OnlyDraftsRegenerate(t *testing.T) {
	deps := setupPayrollServiceTest(t)
	a, b := deps.seedMonth()
	c := employee.Employee{ID: uuid.New(), FullName: "New Hire", IsActive: true}
	deps.employees.empls = append(deps.employees.empls, c)

	approvedID, draftID := uuid.New(), uuid.New()
	deps.repo.findRecordsFn = func(ctx context.Context, companyID string, filter payroll.ListFilter) ([]payroll.PayrollRecord, error) {
		assert.Equal(t, "2024-03", filter.Month)
		return []payroll.PayrollRecord{
			{ID: approvedID, EmployeeID: a.ID, Month: "2024-03", Status: payroll.StatusApproved},
			{ID: draftID, EmployeeID: b.ID, Month: "2024-03", Status: payroll.StatusDraft, NetSalary: 1},
		}, nil
	}
	var upserted []payroll.PayrollRecord
	deps.repo.upsertDraftFn = func(ctx context.Context, rec *payroll.PayrollRecord) error {
		upserted = append(upserted, *rec)
		return nil
	}

	expectTx(t, deps.sqlMock, true)
	actorID := uuid.New().String()
	resp, err := deps.service.Generate(context.Background(), deps.companyID, actorID, payroll.GenerateRequest{Month: "2024-03"})

	assert.NoError(t, err)
	assert.Equal(t, 2, resp.Generated)
	assert.Equal(t, 1, resp.Skipped)
	if assert.Len(t, upserted, 2) {
		assert.Equal(t, draftID, upserted[0].ID)
		assert.Equal(t, b.ID, upserted[0].EmployeeID)
		assert.Equal(t, 500.0, upserted[0].NetSalary)
		assert.Equal(t, c.ID, upserted[1].EmployeeID)
		assert.NotEqual(t, uuid.Nil, upserted[1].ID)
		for _, r := range upserted {
			assert.Equal(t, payroll.StatusDraft, r.Status)
			assert.Equal(t, actorID, r.GeneratedBy.String())
		}
	}
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_Generate_UpsertErrorRollsBack(t *testing.T) {
	deps := setupPayrollServiceTest(t)
	deps.seedMonth()
	deps.repo.upsertDraftFn = func(ctx context.Context, rec *payroll.PayrollRecord) error {
		return errors.New("db down")
	}

	expectTx(t, deps.sqlMock, false)
	_, err := deps.service.Generate(context.Background(), deps.companyID, "", payroll.GenerateRequest{Month: "2024-03"})

	assert.EqualError(t, err, "db down")
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_Approve_QueuesPayslipEvent(t *testing.T) {
	deps := setupPayrollServiceTest(t)
	actorID := uuid.New().String()
	rec := payroll.PayrollRecord{ID: uuid.New(), EmployeeID: uuid.New(), Month: "2024-03", Status: payroll.StatusDraft}
	deps.repo.findRecordByIDForUpdateFn = func(ctx context.Context, companyID, id string) (*payroll.PayrollRecord, error) {
		r := rec
		return &r, nil
	}
	var saved payroll.PayrollRecord
	deps.repo.updateRecordFn = func(ctx context.Context, r *payroll.PayrollRecord) error {
		saved = *r
		return nil
	}

	expectTx(t, deps.sqlMock, true)
	resp, err := deps.service.Approve(context.Background(), deps.companyID, actorID, rec.ID.String())

	assert.NoError(t, err)
	assert.Equal(t, "APPROVED", resp.Status)
	assert.Equal(t, payroll.StatusApproved, saved.Status)
	assert.NotNil(t, saved.ApprovedAt)
	assert.Equal(t, actorID, saved.ApprovedBy.String())

	if assert.Len(t, deps.outbox.created, 1) {
		event := deps.outbox.created[0]
		assert.Equal(t, events.PayrollPayslipRequestedTopic, event.Topic)
		assert.Equal(t, rec.ID.String(), event.AggregateID)
		var payload events.PayrollPayslipRequestedEvent
		assert.NoError(t, json.Unmarshal(event.Payload, &payload))
		assert.Equal(t, deps.companyID, payload.CompanyID)
		assert.Equal(t, rec.ID.String(), payload.PayrollID)
		assert.Equal(t, "2024-03", payload.Month)
	}
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_Approve_OutboxFailureRollsBack(t *testing.T) {
	deps := setupPayrollServiceTest(t)
	deps.outbox.err = errors.New("outbox unavailable")
	deps.repo.findRecordByIDForUpdateFn = func(ctx context.Context, companyID, id string) (*payroll.PayrollRecord, error) {
		return &payroll.PayrollRecord{ID: uuid.MustParse(id), Status: payroll.StatusDraft}, nil
	}
	updated := false
	deps.repo.updateRecordFn = func(ctx context.Context, r *payroll.PayrollRecord) error {
		updated = true
		return nil
	}

	expectTx(t, deps.sqlMock, false)
	_, err := deps.service.Approve(context.Background(), deps.companyID, uuid.NewString(), uuid.NewString())

	assert.EqualError(t, err, "outbox unavailable")
	assert.False(t, updated)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_Workflow_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		status  payroll.RecordStatus
		call    func(svc payroll.Service, companyID, id string) error
		wantErr error
	}{
		{
			name:   "approve draft",
			status: payroll.StatusDraft,
			call: func(svc payroll.Service, companyID, id string) error {
				_, err := svc.Approve(context.Background(), companyID, uuid.NewString(), id)
				return err
			},
		},
		{
			name:   "approve twice",
			status: payroll.StatusApproved,
			call: func(svc payroll.Service, companyID, id string) error {
				_, err := svc.Approve(context.Background(), companyID, uuid.NewString(), id)
				return err
			},
			wantErr: payrollerrors.ErrInvalidStatusTransition,
		},
		{
			name:   "pay approved",
			status: payroll.StatusApproved,
			call: func(svc payroll.Service, companyID, id string) error {
				_, err := svc.MarkAsPaid(context.Background(), companyID, uuid.NewString(), id)
				return err
			},
		},
		{
			name:   "pay draft",
			status: payroll.StatusDraft,
			call: func(svc payroll.Service, companyID, id string) error {
				_, err := svc.MarkAsPaid(context.Background(), companyID, uuid.NewString(), id)
				return err
			},
			wantErr: payrollerrors.ErrInvalidStatusTransition,
		},
		{
			name:   "delete draft",
			status: payroll.StatusDraft,
			call: func(svc payroll.Service, companyID, id string) error {
				return svc.Delete(context.Background(), companyID, id)
			},
		},
		{
			name:   "delete paid",
			status: payroll.StatusPaid,
			call: func(svc payroll.Service, companyID, id string) error {
				return svc.Delete(context.Background(), companyID, id)
			},
			wantErr: payrollerrors.ErrDeleteOnlyDraft,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := setupPayrollServiceTest(t)
			deps.repo.findRecordByIDForUpdateFn = func(ctx context.Context, companyID, id string) (*payroll.PayrollRecord, error) {
				return &payroll.PayrollRecord{ID: uuid.MustParse(id), Status: tt.status}, nil
			}

			expectTx(t, deps.sqlMock, tt.wantErr == nil)
			err := tt.call(deps.service, deps.companyID, uuid.NewString())

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		})
	}
}

func TestPayrollService_GetByID_NotFound(t *testing.T) {
	deps := setupPayrollServiceTest(t)

	_, err := deps.service.GetByID(context.Background(), deps.companyID, uuid.NewString())
	assert.ErrorIs(t, err, payrollerrors.ErrPayrollNotFound)
}

func TestPayrollService_GetAll_Filters(t *testing.T) {
	deps := setupPayrollServiceTest(t)
	deps.repo.findRecordsFn = func(ctx context.Context, companyID string, filter payroll.ListFilter) ([]payroll.PayrollRecord, error) {
		assert.Equal(t, payroll.ListFilter{Month: "2024-03", Status: "APPROVED"}, filter)
		return []payroll.PayrollRecord{{ID: uuid.New(), Status: payroll.StatusApproved, DailyDetails: []payroll.DayDetail{{Date: "2024-03-05"}}}}, nil
	}

	resp, err := deps.service.GetAll(context.Background(), deps.companyID, payroll.ListFilter{Month: "2024-03", Status: "approved"})
	assert.NoError(t, err)
	if assert.Len(t, resp, 1) {
		assert.Nil(t, resp[0].DailyDetails)
	}

	_, err = deps.service.GetAll(context.Background(), deps.companyID, payroll.ListFilter{Status: "SENT"})
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidStatusFilter)
}

func TestPayrollService_GeneratePayslip(t *testing.T) {
	deps := setupPayrollServiceTest(t)
	payrollID := uuid.New()
	deps.repo.findRecordByIDForUpdateFn = func(ctx context.Context, companyID, id string) (*payroll.PayrollRecord, error) {
		return &payroll.PayrollRecord{
			ID:           payrollID,
			EmployeeName: "Chai (ชัย)",
			Month:        "2024-03",
			WorkDays:     20,
			TotalSalary:  10000,
			TotalOTHours: 4,
			TotalOTPay:   200,
			NetSalary:    10200,
			Status:       payroll.StatusApproved,
		}, nil
	}

	expectTx(t, deps.sqlMock, true)
	resp, err := deps.service.GeneratePayslip(context.Background(), deps.companyID, payrollID.String())

	assert.NoError(t, err)
	if assert.NotNil(t, resp.PayslipURL) {
		assert.Equal(t, "/files/payslips/payslip_"+payrollID.String()+".pdf", *resp.PayslipURL)
	}
	assert.NotNil(t, resp.PayslipGeneratedAt)

	data, readErr := os.ReadFile(filepath.Join(deps.storageDir, "payslip_"+payrollID.String()+".pdf"))
	assert.NoError(t, readErr)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-1.4")))
	assert.Contains(t, string(data), "(Net salary: 10200.00) Tj")
	assert.Contains(t, string(data), `(Employee: Chai \(???\)) Tj`)
	assert.True(t, strings.HasSuffix(string(data), "%%EOF"))
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_GeneratePayslip_DraftRejected(t *testing.T) {
	deps := setupPayrollServiceTest(t)
	deps.repo.findRecordByIDForUpdateFn = func(ctx context.Context, companyID, id string) (*payroll.PayrollRecord, error) {
		return &payroll.PayrollRecord{ID: uuid.MustParse(id), Status: payroll.StatusDraft}, nil
	}

	expectTx(t, deps.sqlMock, false)
	_, err := deps.service.GeneratePayslip(context.Background(), deps.companyID, uuid.NewString())

	assert.ErrorIs(t, err, payrollerrors.ErrPayslipRequiresApproval)
	entries, _ := os.ReadDir(deps.storageDir)
	assert.Empty(t, entries)
}

func TestPayrollService_ExportXLSX(t *testing.T) {
	deps := setupPayrollServiceTest(t)
	deps.seedMonth()

	data, err := deps.service.ExportXLSX(context.Background(), deps.companyID, "2024-03")
	assert.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if !assert.NoError(t, err) {
		return
	}
	defer f.Close()

	summary, err := f.GetRows(payroll.SummarySheet)
	assert.NoError(t, err)
	if assert.Len(t, summary, 5) {
		assert.Equal(t, "Payroll 2024-03", summary[0][0])
		assert.Equal(t, "Net Salary", summary[1][7])
		assert.Equal(t, "Somchai Jaidee", summary[2][0])
		assert.Equal(t, "600", summary[2][7])
		assert.Equal(t, "Malee Srisuk", summary[3][0])
		assert.Equal(t, "Total", summary[4][0])
		assert.Equal(t, "1100", summary[4][7])
	}

	daily, err := f.GetRows(payroll.DailySheet)
	assert.NoError(t, err)
	if assert.Len(t, daily, 3) {
		assert.Equal(t, []string{"Somchai Jaidee", "2024-03-05", "Morning", "08:10", "17:50", "500", "2", "100", "Late (10m)"}, daily[1])
	}
}

func TestPayrollService_Config(t *testing.T) {
	deps := setupPayrollServiceTest(t)

	cfg, err := deps.service.GetConfig(context.Background(), deps.companyID)
	assert.NoError(t, err)
	assert.Equal(t, payroll.ConfigResponse{OTRate: payroll.DefaultOTRate}, cfg)

	var stored *payroll.PayrollConfig
	deps.repo.upsertConfigFn = func(ctx context.Context, c *payroll.PayrollConfig) error {
		stored = c
		return nil
	}
	cfg, err = deps.service.UpdateConfig(context.Background(), deps.companyID, payroll.UpdateConfigRequest{OTRate: 75, DoubleShiftRate: 900})
	assert.NoError(t, err)
	assert.Equal(t, payroll.ConfigResponse{OTRate: 75, DoubleShiftRate: 900}, cfg)
	if assert.NotNil(t, stored) {
		assert.Equal(t, deps.companyID, stored.CompanyID.String())
	}

	_, err = deps.service.UpdateConfig(context.Background(), deps.companyID, payroll.UpdateConfigRequest{OTRate: -1})
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidRate)
}

func TestPayrollService_CreateDeduction(t *testing.T) {
	deps := setupPayrollServiceTest(t)
	a, _ := deps.seedMonth()

	tests := []struct {
		name    string
		req     payroll.CreateDeductionRequest
		wantErr error
	}{
		{name: "flat amount", req: payroll.CreateDeductionRequest{EmployeeID: a.ID.String(), Month: "2024-03", Amount: ptr(120), Reason: " uniform "}},
		{name: "percentage", req: payroll.CreateDeductionRequest{EmployeeID: a.ID.String(), Month: "2024-03", Percentage: ptr(100)}},
		{name: "both", req: payroll.CreateDeductionRequest{EmployeeID: a.ID.String(), Month: "2024-03", Amount: ptr(1), Percentage: ptr(1)}, wantErr: payrollerrors.ErrDeductionAmountOrPercentage},
		{name: "neither", req: payroll.CreateDeductionRequest{EmployeeID: a.ID.String(), Month: "2024-03"}, wantErr: payrollerrors.ErrDeductionAmountOrPercentage},
		{name: "percentage over 100", req: payroll.CreateDeductionRequest{EmployeeID: a.ID.String(), Month: "2024-03", Percentage: ptr(100.5)}, wantErr: payrollerrors.ErrInvalidPercentage},
		{name: "zero percentage", req: payroll.CreateDeductionRequest{EmployeeID: a.ID.String(), Month: "2024-03", Percentage: ptr(0)}, wantErr: payrollerrors.ErrInvalidPercentage},
		{name: "negative amount", req: payroll.CreateDeductionRequest{EmployeeID: a.ID.String(), Month: "2024-03", Amount: ptr(-5)}, wantErr: payrollerrors.ErrInvalidAmount},
		{name: "bad month", req: payroll.CreateDeductionRequest{EmployeeID: a.ID.String(), Month: "March", Amount: ptr(5)}, wantErr: payrollerrors.ErrInvalidMonth},
		{name: "unknown employee", req: payroll.CreateDeductionRequest{EmployeeID: uuid.NewString(), Month: "2024-03", Amount: ptr(5)}, wantErr: employeeerrors.ErrEmployeeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var created *payroll.Deduction
			deps.repo.createDeductionFn = func(ctx context.Context, d *payroll.Deduction) error {
				created = d
				return nil
			}

			resp, err := deps.service.CreateDeduction(context.Background(), deps.companyID, uuid.NewString(), tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, created)
				return
			}
			assert.NoError(t, err)
			if assert.NotNil(t, created) {
				assert.Equal(t, a.ID, created.EmployeeID)
				assert.Equal(t, "2024-03", created.Month)
				assert.Equal(t, strings.TrimSpace(tt.req.Reason), created.Reason)
			}
			assert.Equal(t, a.ID.String(), resp.EmployeeID)
		})
	}
}

func TestPayrollService_DeleteDeduction_NotFound(t *testing.T) {
	deps := setupPayrollServiceTest(t)
	deps.repo.deleteDeductionFn = func(ctx context.Context, companyID, id string) error {
		return gorm.ErrRecordNotFound
	}

	err := deps.service.DeleteDeduction(context.Background(), deps.companyID, uuid.NewString())
	assert.ErrorIs(t, err, payrollerrors.ErrDeductionNotFound)
}

package roster

import (
	"context"
	"database/sql"
	"time"

	"inthehaus-hr/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=roster_repo.go -destination=mock/roster_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateShift(ctx context.Context, shift *Shift) error
	UpdateShift(ctx context.Context, shift *Shift) error
	DeleteShift(ctx context.Context, companyID, id string) error
	FindShifts(ctx context.Context, companyID string) ([]Shift, error)
	FindShiftByID(ctx context.Context, companyID, id string) (*Shift, error)
	CountWeeklyUsingShift(ctx context.Context, companyID, shiftID string) (int64, error)

	UpsertWeekly(ctx context.Context, ws *WeeklySchedule) error
	FindWeekly(ctx context.Context, companyID string) ([]WeeklySchedule, error)
	FindWeeklyByEmployees(ctx context.Context, companyID string, employeeIDs []string) ([]WeeklySchedule, error)

	UpsertOverride(ctx context.Context, o *RosterOverride) error
	FindOverrides(ctx context.Context, companyID string, from, to time.Time) ([]RosterOverride, error)
	FindOverridesForEmployees(ctx context.Context, companyID string, employeeIDs []string, dates []time.Time) ([]RosterOverride, error)
	DeleteOverride(ctx context.Context, companyID, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) CreateShift(ctx context.Context, shift *Shift) error {
	return r.conn(ctx).Create(shift).Error
}

func (r *repository) UpdateShift(ctx context.Context, shift *Shift) error {
	return r.conn(ctx).Save(shift).Error
}

func (r *repository) DeleteShift(ctx context.Context, companyID, id string) error {
	res := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Shift{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindShifts(ctx context.Context, companyID string) ([]Shift, error) {
	var shifts []Shift
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("start_time ASC, name ASC").
		Find(&shifts).Error
	return shifts, err
}

func (r *repository) FindShiftByID(ctx context.Context, companyID, id string) (*Shift, error) {
	var shift Shift
	if err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&shift, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *repository) CountWeeklyUsingShift(ctx context.Context, companyID, shiftID string) (int64, error) {
	var n int64
	err := r.conn(ctx).
		Model(&WeeklySchedule{}).
		Scopes(tenant.Scope(companyID)).
		Where("shift_id = ? AND is_off = ?", shiftID, false).
		Count(&n).Error
	return n, err
}

func (r *repository) UpsertWeekly(ctx context.Context, ws *WeeklySchedule) error {
	return r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "day_of_week"}},
			DoUpdates: clause.AssignmentColumns([]string{"shift_id", "is_off", "updated_at"}),
		}).
		Create(ws).Error
}

func (r *repository) FindWeekly(ctx context.Context, companyID string) ([]WeeklySchedule, error) {
	var rows []WeeklySchedule
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("employee_id ASC, day_of_week ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindWeeklyByEmployees(ctx context.Context, companyID string, employeeIDs []string) ([]WeeklySchedule, error) {
	var rows []WeeklySchedule
	if len(employeeIDs) == 0 {
		return rows, nil
	}
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id IN ?", employeeIDs).
		Find(&rows).Error
	return rows, err
}

// UpsertOverride keeps one override per employee and date; a later write
// replaces the earlier one.
func (r *repository) UpsertOverride(ctx context.Context, o *RosterOverride) error {
	return r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "employee_id"}, {Name: "override_date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"shift_id", "is_off", "custom_start_time", "custom_end_time",
				"swap_request_id", "note", "updated_at",
			}),
		}).
		Create(o).Error
}

func (r *repository) FindOverrides(ctx context.Context, companyID string, from, to time.Time) ([]RosterOverride, error) {
	var rows []RosterOverride
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("override_date BETWEEN ? AND ?", from.Format(DateLayout), to.Format(DateLayout)).
		Order("override_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindOverridesForEmployees(ctx context.Context, companyID string, employeeIDs []string, dates []time.Time) ([]RosterOverride, error) {
	var rows []RosterOverride
	if len(employeeIDs) == 0 || len(dates) == 0 {
		return rows, nil
	}
	keys := make([]string, len(dates))
	for i, d := range dates {
		keys[i] = d.Format(DateLayout)
	}
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id IN ?", employeeIDs).
		Where("override_date IN ?", keys).
		Find(&rows).Error
	return rows, err
}

func (r *repository) DeleteOverride(ctx context.Context, companyID, id string) error {
	res := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&RosterOverride{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

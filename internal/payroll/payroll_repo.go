package payroll

import (
	"context"
	"database/sql"

	"inthehaus-hr/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	FindConfig(ctx context.Context, companyID string) (*PayrollConfig, error)
	UpsertConfig(ctx context.Context, cfg *PayrollConfig) error

	CreateDeduction(ctx context.Context, d *Deduction) error
	FindDeductions(ctx context.Context, companyID, month string) ([]Deduction, error)
	DeleteDeduction(ctx context.Context, companyID, id string) error

	UpsertDraft(ctx context.Context, rec *PayrollRecord) error
	FindRecords(ctx context.Context, companyID string, filter ListFilter) ([]PayrollRecord, error)
	FindRecordByID(ctx context.Context, companyID, id string) (*PayrollRecord, error)
	FindRecordByIDForUpdate(ctx context.Context, companyID, id string) (*PayrollRecord, error)
	UpdateRecord(ctx context.Context, rec *PayrollRecord) error
	DeleteRecord(ctx context.Context, companyID, id string) error
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

func (r *repository) FindConfig(ctx context.Context, companyID string) (*PayrollConfig, error) {
	var cfg PayrollConfig
	if err := r.conn(ctx).
		First(&cfg, "company_id = ?", companyID).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *repository) UpsertConfig(ctx context.Context, cfg *PayrollConfig) error {
	return r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "company_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"ot_rate", "double_shift_rate", "updated_at"}),
		}).
		Create(cfg).Error
}

func (r *repository) CreateDeduction(ctx context.Context, d *Deduction) error {
	return r.conn(ctx).Create(d).Error
}

func (r *repository) FindDeductions(ctx context.Context, companyID, month string) ([]Deduction, error) {
	var rows []Deduction
	db := r.conn(ctx).Scopes(tenant.Scope(companyID))
	if month != "" {
		db = db.Where("month = ?", month)
	}
	err := db.Order("created_at ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) DeleteDeduction(ctx context.Context, companyID, id string) error {
	res := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Deduction{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpsertDraft inserts rec or refreshes the existing row for the same employee
// and month. Rows that already left DRAFT are not touched.
func (r *repository) UpsertDraft(ctx context.Context, rec *PayrollRecord) error {
	return r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "employee_id"}, {Name: "month"}},
			Where: clause.Where{Exprs: []clause.Expression{
				clause.Eq{Column: clause.Column{Table: "payroll_records", Name: "status"}, Value: string(StatusDraft)},
			}},
			DoUpdates: clause.AssignmentColumns([]string{
				"employee_name", "employee_email", "work_days", "total_salary",
				"total_ot_hours", "total_ot_pay", "total_deduct", "net_salary",
				"late_count", "absent_count", "duplicate_count", "daily_details",
				"generated_by", "updated_at",
			}),
		}).
		Create(rec).Error
}

func (r *repository) FindRecords(ctx context.Context, companyID string, filter ListFilter) ([]PayrollRecord, error) {
	var rows []PayrollRecord
	db := r.conn(ctx).Scopes(tenant.Scope(companyID))
	if filter.Month != "" {
		db = db.Where("month = ?", filter.Month)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	err := db.Order("month DESC, employee_name ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindRecordByID(ctx context.Context, companyID, id string) (*PayrollRecord, error) {
	var rec PayrollRecord
	if err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) FindRecordByIDForUpdate(ctx context.Context, companyID, id string) (*PayrollRecord, error) {
	var rec PayrollRecord
	if err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(tenant.Scope(companyID)).
		First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) UpdateRecord(ctx context.Context, rec *PayrollRecord) error {
	return r.conn(ctx).Save(rec).Error
}

func (r *repository) DeleteRecord(ctx context.Context, companyID, id string) error {
	res := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&PayrollRecord{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

package attendance

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, log *AttendanceLog) error
	// FindByRange returns logs with from <= timestamp < to, oldest first.
	// An empty employeeIDs means every employee of the company.
	FindByRange(ctx context.Context, companyID string, from, to time.Time, employeeIDs ...string) ([]AttendanceLog, error)
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

func (r *repository) Create(ctx context.Context, log *AttendanceLog) error {
	return r.conn(ctx).Create(log).Error
}

func (r *repository) FindByRange(
	ctx context.Context,
	companyID string,
	from, to time.Time,
	employeeIDs ...string,
) ([]AttendanceLog, error) {
	q := r.conn(ctx).
		Where("company_id = ?", companyID).
		Where("timestamp >= ? AND timestamp < ?", from, to)
	if len(employeeIDs) > 0 {
		q = q.Where("employee_id IN ?", employeeIDs)
	}

	var rows []AttendanceLog
	err := q.Order("timestamp ASC").Find(&rows).Error
	return rows, err
}

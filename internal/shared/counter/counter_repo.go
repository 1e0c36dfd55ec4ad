package counter

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"
)

// Counter kinds, one sequence per company each.
const (
	EmployeeCode = "employee_code"
)

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error)
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

const nextValueSQL = `
INSERT INTO company_counters (company_id, counter_type, last_value, updated_at)
VALUES (?, ?, 1, now())
ON CONFLICT (company_id, counter_type) DO UPDATE
SET last_value = company_counters.last_value + 1, updated_at = now()
RETURNING last_value`

// GetNextValue is a single upsert, so concurrent callers for one
// company/kind never see the same value.
func (r *repository) GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error) {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}

	var next int64
	if err := db.Raw(nextValueSQL, companyID, counterType).Scan(&next).Error; err != nil {
		return 0, fmt.Errorf("next %s for company %s: %w", counterType, companyID, err)
	}
	return next, nil
}

// Code renders a counter value as a zero-padded code, e.g. EMP-000042.
func Code(prefix string, value int64) string {
	return fmt.Sprintf("%s-%06d", prefix, value)
}

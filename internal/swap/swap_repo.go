package swap

import (
	"context"
	"database/sql"
	"time"

	"inthehaus-hr/internal/roster"
	"inthehaus-hr/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=swap_repo.go -destination=mock/swap_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, req *SwapRequest) error
	Update(ctx context.Context, req *SwapRequest) error
	FindByID(ctx context.Context, companyID, id string) (*SwapRequest, error)
	// FindByIDForUpdate locks the row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, companyID, id string) (*SwapRequest, error)
	FindAll(ctx context.Context, companyID string, filter ListFilter) ([]SwapRequest, error)
	CountOpenForRequesterDate(ctx context.Context, companyID, requesterID string, date time.Time) (int64, error)
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

func (r *repository) Create(ctx context.Context, req *SwapRequest) error {
	return r.conn(ctx).Create(req).Error
}

func (r *repository) Update(ctx context.Context, req *SwapRequest) error {
	return r.conn(ctx).Save(req).Error
}

func (r *repository) FindByID(ctx context.Context, companyID, id string) (*SwapRequest, error) {
	var req SwapRequest
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&req, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, companyID, id string) (*SwapRequest, error) {
	var req SwapRequest
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(tenant.Scope(companyID)).
		First(&req, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) FindAll(ctx context.Context, companyID string, filter ListFilter) ([]SwapRequest, error) {
	q := r.conn(ctx).Scopes(tenant.Scope(companyID))
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.EmployeeID != "" {
		q = q.Where("(requester_id = ? OR target_id = ?)", filter.EmployeeID, filter.EmployeeID)
	}

	var rows []SwapRequest
	err := q.Order("requester_date DESC, created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) CountOpenForRequesterDate(ctx context.Context, companyID, requesterID string, date time.Time) (int64, error) {
	var n int64
	err := r.conn(ctx).
		Model(&SwapRequest{}).
		Scopes(tenant.Scope(companyID)).
		Where("requester_id = ?", requesterID).
		Where("requester_date = ?", date.Format(roster.DateLayout)).
		Where("status IN ?", []Status{StatusPending, StatusAccepted}).
		Count(&n).Error
	return n, err
}

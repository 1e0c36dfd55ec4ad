package employee_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"inthehaus-hr/internal/employee"
	employeeerrors "inthehaus-hr/internal/employee/errors"
	employeeMock "inthehaus-hr/internal/employee/mock"
	counterMock "inthehaus-hr/internal/shared/counter/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   employee.Service
	repo      *employeeMock.MockRepository
	counter   *counterMock.MockRepository
	redismock redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	dbRedis, redisMock := redismock.NewClientMock()
	repo := employeeMock.NewMockRepository(ctrl)
	counterRepo := counterMock.NewMockRepository(ctrl)

	svc := employee.NewService(db, repo, counterRepo, dbRedis)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		counter:   counterRepo,
		redismock: redisMock,
	}
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

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("success - generates employee code", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := employee.CreateEmployeeRequest{
			FullName:   " Somchai Jaidee ",
			Nickname:   "Chai",
			Email:      "Chai@InTheHaus.co",
			Position:   "Barista",
			ShiftRates: map[string]float64{"morning": 450, "evening": 500},
		}

		expectTx(t, deps.sqlMock, true)
		deps.counter.EXPECT().WithTx(gomock.Any()).Return(deps.counter)
		deps.counter.EXPECT().
			GetNextValue(ctx, companyID, "employee_code").
			Return(int64(12), nil)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, e *employee.Employee) error {
				assert.Equal(t, "Somchai Jaidee", e.FullName)
				assert.Equal(t, "chai@inthehaus.co", e.Email)
				assert.Equal(t, "EMP-000012", e.EmployeeCode)
				assert.True(t, e.IsActive)
				assert.Equal(t, 450.0, e.ShiftRates["morning"])
				return nil
			})
		deps.redismock.ExpectDel(employee.GetEmployeeOptionsKey(companyID)).SetVal(1)

		resp, err := deps.service.Create(ctx, companyID, req)

		assert.NoError(t, err)
		assert.Equal(t, "EMP-000012", resp.EmployeeCode)
		assert.Equal(t, companyID, resp.CompanyID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("invalid company id", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, "not-a-uuid", employee.CreateEmployeeRequest{FullName: "A", Email: "a@b.co", Position: "Cook"})

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidCompanyID)
	})

	t.Run("counter error -> rollback", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.counter.EXPECT().WithTx(gomock.Any()).Return(deps.counter)
		deps.counter.EXPECT().
			GetNextValue(ctx, companyID, "employee_code").
			Return(int64(0), errors.New("db error"))

		_, err := deps.service.Create(ctx, companyID, employee.CreateEmployeeRequest{FullName: "A", Email: "a@b.co", Position: "Cook"})

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate email -> conflict", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.counter.EXPECT().WithTx(gomock.Any()).Return(deps.counter)
		deps.counter.EXPECT().GetNextValue(ctx, companyID, "employee_code").Return(int64(3), nil)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_email"})

		_, err := deps.service.Create(ctx, companyID, employee.CreateEmployeeRequest{FullName: "A", Email: "a@b.co", Position: "Cook"})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeAlreadyExists)
	})
}

func TestEmployeeService_GetAll(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps.repo.EXPECT().
			FindAllByCompany(ctx, companyID).
			Return([]employee.Employee{
				{ID: uuid.New(), FullName: "Anan", IsActive: true},
				{ID: uuid.New(), FullName: "Busaba", IsActive: false},
			}, nil)

		resp, err := deps.service.GetAll(ctx, companyID)

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, "Anan", resp[0].FullName)
		assert.False(t, resp[1].IsActive)
	})

	t.Run("error repository", func(t *testing.T) {
		deps.repo.EXPECT().
			FindAllByCompany(ctx, companyID).
			Return(nil, errors.New("db error"))

		resp, err := deps.service.GetAll(ctx, companyID)

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestEmployeeService_GetOptions(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()

	t.Run("cache hit skips the database", func(t *testing.T) {
		companyID := uuid.New().String()
		cached, _ := json.Marshal([]employee.EmployeeOptionResponse{{ID: "e-1", Name: "Chai", Position: "Barista"}})
		deps.redismock.ExpectGet(employee.GetEmployeeOptionsKey(companyID)).SetVal(string(cached))

		resp, err := deps.service.GetOptions(ctx, companyID)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "Chai", resp[0].Name)
	})

	t.Run("cache miss loads and stores", func(t *testing.T) {
		companyID := uuid.New().String()
		key := employee.GetEmployeeOptionsKey(companyID)
		id := uuid.New()

		deps.redismock.ExpectGet(key).RedisNil()
		deps.repo.EXPECT().
			FindOptionsByCompany(gomock.Any(), companyID).
			Return([]employee.Employee{{ID: id, FullName: "Dao Rueang", Nickname: "Dao", Position: "Cook"}}, nil)
		expected, _ := json.Marshal([]employee.EmployeeOptionResponse{{ID: id.String(), Name: "Dao", Position: "Cook"}})
		deps.redismock.ExpectSet(key, expected, time.Hour).SetVal("OK")

		resp, err := deps.service.GetOptions(ctx, companyID)

		assert.NoError(t, err)
		assert.Equal(t, []employee.EmployeeOptionResponse{{ID: id.String(), Name: "Dao", Position: "Cook"}}, resp)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		companyID := uuid.New().String()
		deps.redismock.ExpectGet(employee.GetEmployeeOptionsKey(companyID)).RedisNil()
		deps.repo.EXPECT().
			FindOptionsByCompany(gomock.Any(), companyID).
			Return(nil, errors.New("database connection lost"))

		resp, err := deps.service.GetOptions(ctx, companyID)

		assert.Error(t, err)
		assert.Nil(t, resp)
		assert.Contains(t, err.Error(), "database connection lost")
	})
}

func TestEmployeeService_GetByID(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()
	companyID := uuid.New().String()
	targetID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps.repo.EXPECT().
			FindByIDAndCompany(ctx, companyID, targetID).
			Return(&employee.Employee{ID: uuid.MustParse(targetID), FullName: "Ek"}, nil)

		resp, err := deps.service.GetByID(ctx, companyID, targetID)

		assert.NoError(t, err)
		assert.Equal(t, targetID, resp.ID)
	})

	t.Run("not found", func(t *testing.T) {
		deps.repo.EXPECT().
			FindByIDAndCompany(ctx, companyID, targetID).
			Return(nil, gorm.ErrRecordNotFound)

		resp, err := deps.service.GetByID(ctx, companyID, targetID)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
		assert.Empty(t, resp.ID)
	})
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()
	targetID := uuid.New()
	companyID := uuid.New()
	inactive := false

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := employee.UpdateEmployeeRequest{
			FullName: "Ek Updated",
			Email:    "ek@inthehaus.co",
			Position: "Head Cook",
			IsActive: &inactive,
		}

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByIDAndCompany(ctx, companyID.String(), targetID.String()).
			Return(&employee.Employee{ID: targetID, CompanyID: companyID, FullName: "Ek", IsActive: true}, nil)
		deps.repo.EXPECT().
			Update(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, e *employee.Employee) error {
				assert.Equal(t, "Head Cook", e.Position)
				assert.False(t, e.IsActive)
				return nil
			})
		deps.redismock.ExpectDel(employee.GetEmployeeOptionsKey(companyID.String())).SetVal(1)

		resp, err := deps.service.Update(ctx, companyID.String(), targetID.String(), req)

		assert.NoError(t, err)
		assert.Equal(t, "Ek Updated", resp.FullName)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("not found -> rollback", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByIDAndCompany(ctx, companyID.String(), targetID.String()).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Update(ctx, companyID.String(), targetID.String(), employee.UpdateEmployeeRequest{FullName: "x", Email: "x@y.co", Position: "Cook"})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_Deactivate(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	targetID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Deactivate(ctx, companyID, targetID).Return(nil)
		deps.redismock.ExpectDel(employee.GetEmployeeOptionsKey(companyID)).SetVal(1)

		err := deps.service.Deactivate(ctx, companyID, targetID)

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown employee", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Deactivate(ctx, companyID, targetID).Return(gorm.ErrRecordNotFound)

		err := deps.service.Deactivate(ctx, companyID, targetID)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

package employee_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"inthehaus-hr/internal/employee"
	employeeerrors "inthehaus-hr/internal/employee/errors"
	"inthehaus-hr/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeEmployeeService struct {
	CreateFn     func(ctx context.Context, companyID string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	GetAllFn     func(ctx context.Context, companyID string) ([]employee.EmployeeResponse, error)
	GetOptionsFn func(ctx context.Context, companyID string) ([]employee.EmployeeOptionResponse, error)
	GetByIDFn    func(ctx context.Context, companyID, id string) (employee.EmployeeResponse, error)
	UpdateFn     func(ctx context.Context, companyID, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	DeactivateFn func(ctx context.Context, companyID, id string) error
}

func (f *fakeEmployeeService) Create(ctx context.Context, companyID string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.CreateFn(ctx, companyID, req)
}
func (f *fakeEmployeeService) GetAll(ctx context.Context, companyID string) ([]employee.EmployeeResponse, error) {
	return f.GetAllFn(ctx, companyID)
}
func (f *fakeEmployeeService) GetOptions(ctx context.Context, companyID string) ([]employee.EmployeeOptionResponse, error) {
	return f.GetOptionsFn(ctx, companyID)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, companyID, id string) (employee.EmployeeResponse, error) {
	return f.GetByIDFn(ctx, companyID, id)
}
func (f *fakeEmployeeService) Update(ctx context.Context, companyID, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.UpdateFn(ctx, companyID, id, req)
}
func (f *fakeEmployeeService) Deactivate(ctx context.Context, companyID, id string) error {
	return f.DeactivateFn(ctx, companyID, id)
}

func setupRouter(companyID string, h *employee.Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("company_id", companyID)
		c.Next()
	})
	r.POST("/employees", h.Create)
	r.GET("/employees", h.GetAll)
	r.GET("/employees/options", h.GetOptions)
	r.GET("/employees/:id", h.GetByID)
	r.PUT("/employees/:id", h.Update)
	r.DELETE("/employees/:id", h.Deactivate)
	return r
}

func TestEmployeeHandler_Create(t *testing.T) {
	companyID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, cid string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, companyID, cid)
				assert.Equal(t, 500.0, req.ShiftRates["evening"])
				return employee.EmployeeResponse{ID: uuid.New().String(), FullName: req.FullName, Position: req.Position}, nil
			},
		}
		r := setupRouter(companyID, employee.NewHandler(svc))

		body := `{"full_name":"Nok Saelim","email":"nok@inthehaus.co","position":"Server","shift_rates":{"evening":500}}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "Nok Saelim")
	})

	t.Run("unknown shift rate key is rejected", func(t *testing.T) {
		r := setupRouter(companyID, employee.NewHandler(&fakeEmployeeService{}))

		body := `{"full_name":"Nok","email":"nok@inthehaus.co","position":"Server","shift_rates":{"brunch":300}}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeInvalidInput)
	})

	t.Run("missing required field", func(t *testing.T) {
		r := setupRouter(companyID, employee.NewHandler(&fakeEmployeeService{}))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate email returns conflict", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, cid string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeAlreadyExists
			},
		}
		r := setupRouter(companyID, employee.NewHandler(svc))

		body := `{"full_name":"Nok","email":"nok@inthehaus.co","position":"Server"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeConflict)
	})

	t.Run("unexpected error hides details", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, cid string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, errors.New("pq: connection refused")
			},
		}
		r := setupRouter(companyID, employee.NewHandler(svc))

		body := `{"full_name":"Nok","email":"nok@inthehaus.co","position":"Server"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	companyID := uuid.New().String()
	svc := &fakeEmployeeService{
		GetAllFn: func(ctx context.Context, cid string) ([]employee.EmployeeResponse, error) {
			return []employee.EmployeeResponse{
				{ID: "1", FullName: "Pim", Position: "Server", IsActive: true},
				{ID: "2", FullName: "Arthit", Position: "Cook", IsActive: true},
				{ID: "3", FullName: "Kanya", Position: "Server", IsActive: false},
			}, nil
		},
	}
	r := setupRouter(companyID, employee.NewHandler(svc))

	t.Run("filters active and sorts by name", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees?status=active", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Data []employee.EmployeeResponse `json:"data"`
			Meta struct {
				Total int `json:"total"`
			} `json:"meta"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, 2, body.Meta.Total)
		assert.Equal(t, "Arthit", body.Data[0].FullName)
		assert.Equal(t, "Pim", body.Data[1].FullName)
	})

	t.Run("search by position", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees?q=server&page_size=1", nil))

		var body struct {
			Data []employee.EmployeeResponse `json:"data"`
			Meta struct {
				Total      int `json:"total"`
				TotalPages int `json:"totalPages"`
			} `json:"meta"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, 2, body.Meta.Total)
		assert.Equal(t, 2, body.Meta.TotalPages)
		assert.Len(t, body.Data, 1)
		assert.Equal(t, "Kanya", body.Data[0].FullName)
	})
}

func TestEmployeeHandler_Deactivate(t *testing.T) {
	companyID := uuid.New().String()
	id := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			DeactivateFn: func(ctx context.Context, cid, eid string) error {
				assert.Equal(t, id, eid)
				return nil
			},
		}
		r := setupRouter(companyID, employee.NewHandler(svc))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/employees/"+id, nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"deactivated":true`)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeEmployeeService{
			DeactivateFn: func(ctx context.Context, cid, eid string) error {
				return employeeerrors.ErrEmployeeNotFound
			},
		}
		r := setupRouter(companyID, employee.NewHandler(svc))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/employees/"+id, nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

package attendance_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"inthehaus-hr/internal/attendance"
	attendanceerrors "inthehaus-hr/internal/attendance/errors"
	"inthehaus-hr/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	checkInFn    func(ctx context.Context, companyID, employeeID string, req attendance.CheckInRequest) (attendance.AttendanceLogResponse, error)
	checkOutFn   func(ctx context.Context, companyID, employeeID string, req attendance.CheckOutRequest) (attendance.AttendanceLogResponse, error)
	markAbsentFn func(ctx context.Context, companyID, actorID string, req attendance.MarkAbsentRequest) (attendance.AttendanceLogResponse, error)
	getAllFn     func(ctx context.Context, companyID string, filter attendance.ListFilter) ([]attendance.AttendanceLogResponse, error)
}

func (f *fakeService) CheckIn(ctx context.Context, companyID, employeeID string, req attendance.CheckInRequest) (attendance.AttendanceLogResponse, error) {
	return f.checkInFn(ctx, companyID, employeeID, req)
}
func (f *fakeService) CheckOut(ctx context.Context, companyID, employeeID string, req attendance.CheckOutRequest) (attendance.AttendanceLogResponse, error) {
	return f.checkOutFn(ctx, companyID, employeeID, req)
}
func (f *fakeService) MarkAbsent(ctx context.Context, companyID, actorID string, req attendance.MarkAbsentRequest) (attendance.AttendanceLogResponse, error) {
	return f.markAbsentFn(ctx, companyID, actorID, req)
}
func (f *fakeService) GetAll(ctx context.Context, companyID string, filter attendance.ListFilter) ([]attendance.AttendanceLogResponse, error) {
	return f.getAllFn(ctx, companyID, filter)
}

func setupRouter(svc attendance.Service, role, employeeID, companyID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	apperror.Init()
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("company_id", companyID)
		c.Set("employee_id", employeeID)
		c.Set("role", role)
		c.Next()
	})
	h := attendance.NewHandler(svc)
	r.GET("/attendances", h.GetAll)
	r.POST("/attendances/check-in", h.CheckIn)
	r.POST("/attendances/absent", h.MarkAbsent)
	return r
}

func TestHandler_CheckIn(t *testing.T) {
	companyID := uuid.New().String()
	employeeID := uuid.New().String()
	svc := &fakeService{
		checkInFn: func(ctx context.Context, cid, eid string, req attendance.CheckInRequest) (attendance.AttendanceLogResponse, error) {
			assert.Equal(t, companyID, cid)
			assert.Equal(t, employeeID, eid)
			assert.Equal(t, "LINE", req.Source)
			return attendance.AttendanceLogResponse{ID: uuid.New().String(), EmployeeID: eid, ActionType: attendance.ActionCheckIn}, nil
		},
	}
	r := setupRouter(svc, "STAFF", employeeID, companyID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/attendances/check-in", strings.NewReader(`{"source":"LINE"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"action_type":"check_in"`)
}

func TestHandler_CheckIn_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
		wantCode   string
	}{
		{name: "invalid source", body: `{"source":"FAX"}`, wantStatus: http.StatusBadRequest, wantCode: apperror.CodeInvalidInput},
		{name: "absent day", body: `{}`, serviceErr: attendanceerrors.ErrMarkedAbsent, wantStatus: http.StatusUnprocessableEntity, wantCode: apperror.CodeInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{
				checkInFn: func(ctx context.Context, cid, eid string, req attendance.CheckInRequest) (attendance.AttendanceLogResponse, error) {
					return attendance.AttendanceLogResponse{}, tt.serviceErr
				},
			}
			r := setupRouter(svc, "STAFF", uuid.NewString(), uuid.NewString())

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/attendances/check-in", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantCode)
		})
	}
}

func TestHandler_GetAll_StaffScopedToSelf(t *testing.T) {
	self := uuid.NewString()
	other := uuid.NewString()

	tests := []struct {
		role         string
		wantEmployee string
	}{
		{role: "STAFF", wantEmployee: self},
		{role: "manager", wantEmployee: other},
		{role: "OWNER", wantEmployee: other},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			svc := &fakeService{
				getAllFn: func(ctx context.Context, cid string, filter attendance.ListFilter) ([]attendance.AttendanceLogResponse, error) {
					assert.Equal(t, tt.wantEmployee, filter.EmployeeID)
					assert.Equal(t, "2024-03-01", filter.From)
					assert.Equal(t, "2024-03-31", filter.To)
					return []attendance.AttendanceLogResponse{{ID: "a"}, {ID: "b"}, {ID: "c"}}, nil
				},
			}
			r := setupRouter(svc, tt.role, self, uuid.NewString())

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/attendances?from=2024-03-01&to=2024-03-31&employee_id="+other+"&page_size=2", nil)
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), `"total":3`)
			assert.NotContains(t, w.Body.String(), `"id":"c"`)
		})
	}
}

func TestHandler_MarkAbsent_Validation(t *testing.T) {
	svc := &fakeService{}
	r := setupRouter(svc, "MANAGER", uuid.NewString(), uuid.NewString())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/attendances/absent", strings.NewReader(`{"date":"2024-03-01"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), apperror.CodeInvalidInput)
}

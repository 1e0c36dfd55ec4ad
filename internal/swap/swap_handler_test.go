package swap_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"inthehaus-hr/internal/shared/apperror"
	"inthehaus-hr/internal/swap"
	swaperrors "inthehaus-hr/internal/swap/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	createFn  func(ctx context.Context, companyID, requesterID string, req swap.CreateSwapRequest) (swap.SwapResponse, error)
	getAllFn  func(ctx context.Context, companyID string, actor swap.Actor, filter swap.ListFilter) ([]swap.SwapResponse, error)
	getByIDFn func(ctx context.Context, companyID string, actor swap.Actor, id string) (swap.SwapResponse, error)
	acceptFn  func(ctx context.Context, companyID string, actor swap.Actor, id string) (swap.SwapResponse, error)
	rejectFn  func(ctx context.Context, companyID string, actor swap.Actor, id string, req swap.RejectSwapRequest) (swap.SwapResponse, error)
	cancelFn  func(ctx context.Context, companyID string, actor swap.Actor, id string) (swap.SwapResponse, error)
	approveFn func(ctx context.Context, companyID string, actor swap.Actor, id string) (swap.SwapResponse, error)
}

func (f *fakeService) Create(ctx context.Context, companyID, requesterID string, req swap.CreateSwapRequest) (swap.SwapResponse, error) {
	return f.createFn(ctx, companyID, requesterID, req)
}
func (f *fakeService) GetAll(ctx context.Context, companyID string, actor swap.Actor, filter swap.ListFilter) ([]swap.SwapResponse, error) {
	return f.getAllFn(ctx, companyID, actor, filter)
}
func (f *fakeService) GetByID(ctx context.Context, companyID string, actor swap.Actor, id string) (swap.SwapResponse, error) {
	return f.getByIDFn(ctx, companyID, actor, id)
}
func (f *fakeService) Accept(ctx context.Context, companyID string, actor swap.Actor, id string) (swap.SwapResponse, error) {
	return f.acceptFn(ctx, companyID, actor, id)
}
func (f *fakeService) Reject(ctx context.Context, companyID string, actor swap.Actor, id string, req swap.RejectSwapRequest) (swap.SwapResponse, error) {
	return f.rejectFn(ctx, companyID, actor, id, req)
}
func (f *fakeService) Cancel(ctx context.Context, companyID string, actor swap.Actor, id string) (swap.SwapResponse, error) {
	return f.cancelFn(ctx, companyID, actor, id)
}
func (f *fakeService) Approve(ctx context.Context, companyID string, actor swap.Actor, id string) (swap.SwapResponse, error) {
	return f.approveFn(ctx, companyID, actor, id)
}

func setupRouter(svc swap.Service, role, employeeID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	apperror.Init()
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("company_id", "company-1")
		c.Set("employee_id", employeeID)
		c.Set("role", role)
		c.Next()
	})
	h := swap.NewHandler(svc, nil)
	r.GET("/swaps", h.GetAll)
	r.POST("/swaps", h.Create)
	r.POST("/swaps/:id/reject", h.Reject)
	r.POST("/swaps/:id/approve", h.Approve)
	return r
}

func TestHandler_Create(t *testing.T) {
	employeeID := uuid.NewString()
	targetID := uuid.NewString()
	svc := &fakeService{
		createFn: func(ctx context.Context, companyID, requesterID string, req swap.CreateSwapRequest) (swap.SwapResponse, error) {
			assert.Equal(t, employeeID, requesterID)
			assert.Equal(t, targetID, req.TargetID)
			return swap.SwapResponse{ID: uuid.NewString(), Status: swap.StatusPending}, nil
		},
	}
	r := setupRouter(svc, "STAFF", employeeID)

	w := httptest.NewRecorder()
	body := `{"target_id":"` + targetID + `","requester_date":"2024-03-05"}`
	req := httptest.NewRequest(http.MethodPost, "/swaps", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"PENDING"`)
}

func TestHandler_Create_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svcErr     error
		wantStatus int
		wantCode   string
	}{
		{name: "missing target", body: `{"requester_date":"2024-03-05"}`, wantStatus: http.StatusBadRequest, wantCode: apperror.CodeInvalidInput},
		{name: "self swap", body: `{"target_id":"` + uuid.NewString() + `","requester_date":"2024-03-05"}`, svcErr: swaperrors.ErrSelfSwap, wantStatus: http.StatusBadRequest, wantCode: apperror.CodeInvalidInput},
		{name: "duplicate", body: `{"target_id":"` + uuid.NewString() + `","requester_date":"2024-03-05"}`, svcErr: swaperrors.ErrDuplicateRequest, wantStatus: http.StatusConflict, wantCode: apperror.CodeConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			svc := &fakeService{
				createFn: func(ctx context.Context, companyID, requesterID string, req swap.CreateSwapRequest) (swap.SwapResponse, error) {
					called = true
					return swap.SwapResponse{}, tt.svcErr
				},
			}
			r := setupRouter(svc, "STAFF", uuid.NewString())

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/swaps", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantCode)
			assert.Equal(t, tt.svcErr != nil, called)
		})
	}
}

func TestHandler_GetAll_PassesActor(t *testing.T) {
	employeeID := uuid.NewString()
	tests := []struct {
		role        string
		wantManager bool
	}{
		{role: "STAFF", wantManager: false},
		{role: "manager", wantManager: true},
		{role: "OWNER", wantManager: true},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			svc := &fakeService{
				getAllFn: func(ctx context.Context, companyID string, actor swap.Actor, filter swap.ListFilter) ([]swap.SwapResponse, error) {
					assert.Equal(t, employeeID, actor.EmployeeID)
					assert.Equal(t, tt.wantManager, actor.Manager)
					assert.Equal(t, "ACCEPTED", filter.Status)
					return []swap.SwapResponse{{ID: "a"}, {ID: "b"}}, nil
				},
			}
			r := setupRouter(svc, tt.role, employeeID)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swaps?status=ACCEPTED", nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), `"id":"b"`)
		})
	}
}

func TestHandler_GetAll_InvalidStatus(t *testing.T) {
	r := setupRouter(&fakeService{}, "STAFF", uuid.NewString())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swaps?status=DONE", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Reject_OptionalBody(t *testing.T) {
	var gotReason string
	svc := &fakeService{
		rejectFn: func(ctx context.Context, companyID string, actor swap.Actor, id string, req swap.RejectSwapRequest) (swap.SwapResponse, error) {
			gotReason = req.Reason
			return swap.SwapResponse{ID: id, Status: swap.StatusRejected}, nil
		},
	}
	r := setupRouter(svc, "STAFF", uuid.NewString())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/swaps/abc/reject", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, gotReason)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/swaps/abc/reject", strings.NewReader(`{"reason":"cannot cover"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cannot cover", gotReason)
}

func TestHandler_Approve_Errors(t *testing.T) {
	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
	}{
		{name: "not found", svcErr: swaperrors.ErrSwapNotFound, wantStatus: http.StatusNotFound},
		{name: "invalid transition", svcErr: swaperrors.ErrInvalidTransition, wantStatus: http.StatusUnprocessableEntity},
		{name: "target busy", svcErr: swaperrors.ErrTargetBusy, wantStatus: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{
				approveFn: func(ctx context.Context, companyID string, actor swap.Actor, id string) (swap.SwapResponse, error) {
					assert.Equal(t, "abc", id)
					return swap.SwapResponse{}, tt.svcErr
				},
			}
			r := setupRouter(svc, "MANAGER", uuid.NewString())

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/swaps/abc/approve", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

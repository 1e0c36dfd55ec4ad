package roster

import (
	"net/http"

	"inthehaus-hr/internal/shared/apperror"
	"inthehaus-hr/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("roster.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("roster.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("roster request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return false
	}
	return true
}

func (h *Handler) CreateShift(c *gin.Context) {
	var req ShiftRequest
	if !h.bind(c, &req) {
		return
	}
	resp, err := h.service.CreateShift(c.Request.Context(), c.GetString("company_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ListShifts(c *gin.Context) {
	resp, err := h.service.ListShifts(c.Request.Context(), c.GetString("company_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateShift(c *gin.Context) {
	var req ShiftRequest
	if !h.bind(c, &req) {
		return
	}
	resp, err := h.service.UpdateShift(c.Request.Context(), c.GetString("company_id"), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DeleteShift(c *gin.Context) {
	if err := h.service.DeleteShift(c.Request.Context(), c.GetString("company_id"), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) ListWeekly(c *gin.Context) {
	resp, err := h.service.ListWeekly(c.Request.Context(), c.GetString("company_id"), c.Query("employee_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpsertWeekly(c *gin.Context) {
	var req UpsertWeeklyRequest
	if !h.bind(c, &req) {
		return
	}
	resp, err := h.service.UpsertWeekly(c.Request.Context(), c.GetString("company_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListOverrides(c *gin.Context) {
	from := c.Query("from")
	to := c.DefaultQuery("to", from)
	if from == "" {
		h.writeServiceError(c, apperror.RequiredField("From"))
		return
	}
	resp, err := h.service.ListOverrides(c.Request.Context(), c.GetString("company_id"), from, to)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CreateOverride(c *gin.Context) {
	var req CreateOverrideRequest
	if !h.bind(c, &req) {
		return
	}
	resp, err := h.service.CreateOverride(c.Request.Context(), c.GetString("company_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) DeleteOverride(c *gin.Context) {
	if err := h.service.DeleteOverride(c.Request.Context(), c.GetString("company_id"), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) GetEffective(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		h.writeServiceError(c, apperror.RequiredField("Date"))
		return
	}
	resp, err := h.service.GetEffectiveRoster(c.Request.Context(), c.GetString("company_id"), date)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

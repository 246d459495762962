package attendance

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	attendanceerrors "dayflow-hrms/internal/attendance/errors"
	"dayflow-hrms/internal/shared/apperror"
	"dayflow-hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultPageSize = 30

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("attendance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("attendance request failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) CheckIn(c *gin.Context) {
	resp, err := h.service.CheckIn(c.Request.Context(), c.GetString("employee_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) CheckOut(c *gin.Context) {
	resp, err := h.service.CheckOut(c.Request.Context(), c.GetString("employee_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetToday(c *gin.Context) {
	resp, err := h.service.GetToday(c.Request.Context(), c.GetString("employee_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if resp == nil {
		// keep "data":null in the envelope
		response.Success(c, http.StatusOK, json.RawMessage("null"), nil)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetMine(c *gin.Context) {
	h.list(c, c.GetString("employee_id"))
}

func (h *Handler) GetByEmployee(c *gin.Context) {
	h.list(c, c.Param("employeeId"))
}

func (h *Handler) GetAll(c *gin.Context) {
	h.list(c, "")
}

func (h *Handler) list(c *gin.Context, employeeID string) {
	filter, err := parseFilter(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	filter.EmployeeID = employeeID
	filter.Page, filter.Limit = response.ParsePagination(c, defaultPageSize)

	resp, total, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, filter.Page, filter.Limit)
	response.Success(c, http.StatusOK, resp, &meta)
}

// Mark answers 201 when the day had no record and 200 otherwise.
func (h *Handler) Mark(c *gin.Context) {
	var req MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, created, err := h.service.Mark(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.Success(c, status, resp, nil)
}

func (h *Handler) Summary(c *gin.Context) {
	h.summary(c, c.Query("employeeId"))
}

func (h *Handler) MySummary(c *gin.Context) {
	h.summary(c, c.GetString("employee_id"))
}

func (h *Handler) summary(c *gin.Context, employeeID string) {
	filter, err := parseFilter(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	filter.EmployeeID = employeeID

	resp, err := h.service.Summary(c.Request.Context(), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func parseFilter(c *gin.Context) (Filter, error) {
	var (
		f   Filter
		err error
	)
	if f.Date, err = parseQueryDate(c, "date"); err != nil {
		return f, err
	}
	if f.StartDate, err = parseQueryDate(c, "startDate"); err != nil {
		return f, err
	}
	if f.EndDate, err = parseQueryDate(c, "endDate"); err != nil {
		return f, err
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		if !IsValidStatus(status) {
			return f, attendanceerrors.ErrInvalidStatus
		}
		f.Status = status
	}
	return f, nil
}

func parseQueryDate(c *gin.Context, key string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidDate.WithDetails(map[string]string{"field": key})
	}
	return &d, nil
}

package payroll

import (
	"fmt"
	"net/http"

	"dayflow-hrms/internal/shared/apperror"
	"dayflow-hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultPageSize = 20

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("payroll.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("payroll request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Upsert answers 201 for a new record and 200 when an existing one was merged.
func (h *Handler) Upsert(c *gin.Context) {
	var req UpsertPayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, created, err := h.service.CreateOrUpdate(c.Request.Context(), req)
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

func (h *Handler) GetAll(c *gin.Context) {
	page, limit := response.ParsePagination(c, defaultPageSize)

	resp, total, err := h.service.GetAll(c.Request.Context(), ListFilter{Page: page, Limit: limit})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page, limit)
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) GetByEmployee(c *gin.Context) {
	h.getByEmployee(c, c.Param("employeeId"))
}

func (h *Handler) GetMine(c *gin.Context) {
	h.getByEmployee(c, c.GetString("employee_id"))
}

func (h *Handler) getByEmployee(c *gin.Context, employeeID string) {
	resp, err := h.service.GetByEmployee(c.Request.Context(), employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) DownloadPayslip(c *gin.Context) {
	h.payslip(c, c.Param("employeeId"))
}

func (h *Handler) DownloadMyPayslip(c *gin.Context) {
	h.payslip(c, c.GetString("employee_id"))
}

func (h *Handler) payslip(c *gin.Context, employeeID string) {
	pdf, err := h.service.Payslip(c.Request.Context(), employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="payslip-%s.pdf"`, employeeID))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

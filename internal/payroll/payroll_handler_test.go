package payroll_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dayflow-hrms/internal/payroll"
	payrollerrors "dayflow-hrms/internal/payroll/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePayrollService struct {
	upsertFn  func(ctx context.Context, req payroll.UpsertPayrollRequest) (payroll.PayrollResponse, bool, error)
	getFn     func(ctx context.Context, employeeID string) (payroll.PayrollResponse, error)
	getAllFn  func(ctx context.Context, filter payroll.ListFilter) ([]payroll.PayrollResponse, int64, error)
	deleteFn  func(ctx context.Context, id string) error
	payslipFn func(ctx context.Context, employeeID string) ([]byte, error)
}

func (f *fakePayrollService) CreateOrUpdate(ctx context.Context, req payroll.UpsertPayrollRequest) (payroll.PayrollResponse, bool, error) {
	return f.upsertFn(ctx, req)
}

func (f *fakePayrollService) GetByEmployee(ctx context.Context, employeeID string) (payroll.PayrollResponse, error) {
	return f.getFn(ctx, employeeID)
}

func (f *fakePayrollService) GetAll(ctx context.Context, filter payroll.ListFilter) ([]payroll.PayrollResponse, int64, error) {
	return f.getAllFn(ctx, filter)
}

func (f *fakePayrollService) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func (f *fakePayrollService) Payslip(ctx context.Context, employeeID string) ([]byte, error) {
	return f.payslipFn(ctx, employeeID)
}

func newContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestPayrollHandler_Upsert(t *testing.T) {
	empID := uuid.NewString()

	tests := []struct {
		name    string
		body    string
		created bool
		err     error
		status  int
	}{
		{"created", `{"employeeId":"` + empID + `","basicSalary":30000,"allowances":{"hra":"5000"}}`, true, nil, http.StatusCreated},
		{"updated", `{"employeeId":"` + empID + `","deductions":{"tax":100}}`, false, nil, http.StatusOK},
		{"missing employee id", `{"basicSalary":1}`, false, nil, http.StatusBadRequest},
		{"bad currency", `{"employeeId":"` + empID + `","currency":"RUPEE"}`, false, nil, http.StatusBadRequest},
		{"employee not found", `{"employeeId":"` + empID + `","basicSalary":1}`, false, payrollerrors.ErrEmployeeNotFound, http.StatusNotFound},
		{"conflict", `{"employeeId":"` + empID + `","basicSalary":1}`, false, payrollerrors.ErrPayrollAlreadyExists, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakePayrollService{
				upsertFn: func(_ context.Context, req payroll.UpsertPayrollRequest) (payroll.PayrollResponse, bool, error) {
					assert.Equal(t, empID, req.EmployeeID)
					if tt.err != nil {
						return payroll.PayrollResponse{}, false, tt.err
					}
					return payroll.PayrollResponse{EmployeeID: req.EmployeeID, NetSalary: decimal.NewFromInt(1)}, tt.created, nil
				},
			}
			c, w := newContext(http.MethodPost, "/api/v1/payroll", tt.body)

			payroll.NewHandler(svc).Upsert(c)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestPayrollHandler_GetMine(t *testing.T) {
	empID := uuid.NewString()
	svc := &fakePayrollService{
		getFn: func(_ context.Context, id string) (payroll.PayrollResponse, error) {
			assert.Equal(t, empID, id)
			return payroll.PayrollResponse{EmployeeID: id, NetSalary: decimal.RequireFromString("43549.49")}, nil
		},
	}
	c, w := newContext(http.MethodGet, "/api/v1/payroll/me", "")
	c.Set("employee_id", empID)

	payroll.NewHandler(svc).GetMine(c)

	require.Equal(t, http.StatusOK, w.Code)
	var env struct {
		Data payroll.PayrollResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "43549.49", env.Data.NetSalary.String())
}

func TestPayrollHandler_GetAll(t *testing.T) {
	svc := &fakePayrollService{
		getAllFn: func(_ context.Context, f payroll.ListFilter) ([]payroll.PayrollResponse, int64, error) {
			assert.Equal(t, payroll.ListFilter{Page: 3, Limit: 10}, f)
			return []payroll.PayrollResponse{}, 25, nil
		},
	}
	c, w := newContext(http.MethodGet, "/api/v1/payroll?page=3&limit=10", "")

	payroll.NewHandler(svc).GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalPages":3`)
}

func TestPayrollHandler_DownloadPayslip(t *testing.T) {
	empID := uuid.NewString()
	svc := &fakePayrollService{
		payslipFn: func(_ context.Context, id string) ([]byte, error) {
			assert.Equal(t, empID, id)
			return []byte("%PDF-1.3 test"), nil
		},
	}
	c, w := newContext(http.MethodGet, "/api/v1/payroll/employee/"+empID+"/payslip", "")
	c.Params = gin.Params{{Key: "employeeId", Value: empID}}

	payroll.NewHandler(svc).DownloadPayslip(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "payslip-"+empID+".pdf")
}

func TestPayrollHandler_Delete(t *testing.T) {
	svc := &fakePayrollService{
		deleteFn: func(context.Context, string) error { return payrollerrors.ErrPayrollNotFound },
	}
	c, w := newContext(http.MethodDelete, "/api/v1/payroll/x", "")
	c.Params = gin.Params{{Key: "id", Value: "x"}}

	payroll.NewHandler(svc).Delete(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

package employeesalary_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dayflow-hrms/internal/employeesalary"
	employeesalaryerrors "dayflow-hrms/internal/employeesalary/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeSalaryService struct {
	getFn    func(ctx context.Context, employeeID string) (employeesalary.SalaryProfileResponse, error)
	updateFn func(ctx context.Context, employeeID string, req employeesalary.UpdateSalaryProfileRequest) (employeesalary.SalaryProfileResponse, error)
}

func (f *fakeSalaryService) GetSalaryProfile(ctx context.Context, employeeID string) (employeesalary.SalaryProfileResponse, error) {
	return f.getFn(ctx, employeeID)
}

func (f *fakeSalaryService) UpdateSalaryProfile(ctx context.Context, employeeID string, req employeesalary.UpdateSalaryProfileRequest) (employeesalary.SalaryProfileResponse, error) {
	return f.updateFn(ctx, employeeID, req)
}

type apiEnvelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestEmployeeSalaryHandler_GetMine(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.NewString()

	svc := &fakeSalaryService{
		getFn: func(ctx context.Context, id string) (employeesalary.SalaryProfileResponse, error) {
			assert.Equal(t, employeeID, id)
			return employeesalary.SalaryProfileResponse{EmployeeID: id}, nil
		},
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/employees/me/salary", nil)
	c.Set("employee_id", employeeID)

	employeesalary.NewHandler(svc).GetMine(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.True(t, env.OK)
	assert.Contains(t, string(env.Data), employeeID)
}

func TestEmployeeSalaryHandler_Update(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		employeeID := uuid.NewString()
		svc := &fakeSalaryService{
			updateFn: func(ctx context.Context, id string, req employeesalary.UpdateSalaryProfileRequest) (employeesalary.SalaryProfileResponse, error) {
				assert.Equal(t, employeeID, id)
				require.NotNil(t, req.MonthWage)
				assert.Equal(t, "50000", req.MonthWage.String())
				require.NotNil(t, req.WorkingDays)
				assert.Equal(t, 6, *req.WorkingDays)
				return employeesalary.SalaryProfileResponse{EmployeeID: id}, nil
			},
		}

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPut, "/employees/"+employeeID+"/salary",
			strings.NewReader(`{"monthWage":50000,"workingDays":6}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: employeeID}}

		employeesalary.NewHandler(svc).Update(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPut, "/employees/x/salary", strings.NewReader(`{"monthWage":`))
		c.Request.Header.Set("Content-Type", "application/json")

		employeesalary.NewHandler(&fakeSalaryService{}).Update(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("service validation error", func(t *testing.T) {
		svc := &fakeSalaryService{
			updateFn: func(ctx context.Context, id string, req employeesalary.UpdateSalaryProfileRequest) (employeesalary.SalaryProfileResponse, error) {
				return employeesalary.SalaryProfileResponse{}, employeesalaryerrors.ErrOverrideWithWage
			},
		}

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPut, "/employees/x/salary",
			strings.NewReader(`{"monthWage":1000,"salaryComponents":{"hra":{"amount":10}}}`))
		c.Request.Header.Set("Content-Type", "application/json")

		core, logs := observer.New(zap.WarnLevel)
		employeesalary.NewHandler(svc, zap.New(core)).Update(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, "salary request rejected", entry.Message)
		assert.Equal(t, "employeesalary.handler", entry.LoggerName)
		assert.Equal(t, "INVALID_INPUT", entry.ContextMap()["code"])
		env := decodeEnvelope(t, w)
		assert.False(t, env.OK)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeSalaryService{
			updateFn: func(ctx context.Context, id string, req employeesalary.UpdateSalaryProfileRequest) (employeesalary.SalaryProfileResponse, error) {
				return employeesalary.SalaryProfileResponse{}, employeesalaryerrors.ErrEmployeeNotFound
			},
		}

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPut, "/employees/x/salary", strings.NewReader(`{"workingDays":5}`))
		c.Request.Header.Set("Content-Type", "application/json")

		employeesalary.NewHandler(svc).Update(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

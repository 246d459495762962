package employee_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dayflow-hrms/internal/employee"
	employeeerrors "dayflow-hrms/internal/employee/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeService struct {
	CreateFn       func(ctx context.Context, role string, req employee.CreateEmployeeRequest) (employee.CreateEmployeeResponse, error)
	GetAllFn       func(ctx context.Context, filter employee.ListFilter) ([]employee.EmployeeResponse, int64, error)
	GetOptionsFn   func(ctx context.Context) ([]employee.EmployeeOption, error)
	GetByIDFn      func(ctx context.Context, id string) (employee.EmployeeResponse, error)
	UpdateFn       func(ctx context.Context, role, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	UpdateStatusFn func(ctx context.Context, id, status string) (employee.EmployeeResponse, error)
	DeleteFn       func(ctx context.Context, id string) error
}

func (f *fakeEmployeeService) Create(ctx context.Context, role string, req employee.CreateEmployeeRequest) (employee.CreateEmployeeResponse, error) {
	return f.CreateFn(ctx, role, req)
}
func (f *fakeEmployeeService) GetAll(ctx context.Context, filter employee.ListFilter) ([]employee.EmployeeResponse, int64, error) {
	return f.GetAllFn(ctx, filter)
}
func (f *fakeEmployeeService) GetOptions(ctx context.Context) ([]employee.EmployeeOption, error) {
	return f.GetOptionsFn(ctx)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeEmployeeService) Update(ctx context.Context, role, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.UpdateFn(ctx, role, id, req)
}
func (f *fakeEmployeeService) UpdateStatus(ctx context.Context, id, status string) (employee.EmployeeResponse, error) {
	return f.UpdateStatusFn(ctx, id, status)
}
func (f *fakeEmployeeService) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}

type envelope struct {
	OK   bool            `json:"ok"`
	Data json.RawMessage `json:"data"`
	Meta *struct {
		Total int64 `json:"total"`
		Page  int   `json:"page"`
	} `json:"meta"`
	Error *struct {
		Code    string `json:"code"`
		Details any    `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func newTestContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func TestEmployeeHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(_ context.Context, role string, req employee.CreateEmployeeRequest) (employee.CreateEmployeeResponse, error) {
				assert.Equal(t, "hr", role)
				assert.Equal(t, "John", req.PersonalDetails.FirstName)
				assert.Equal(t, "60000", req.MonthWage.String())
				return employee.CreateEmployeeResponse{
					Employee:          employee.EmployeeResponse{ID: uuid.NewString()},
					LoginID:           "DAJODO20260001",
					TemporaryPassword: "Xk7#pQ2mZ9aB",
				}, nil
			},
		}

		body := `{"email":"john@dayflow.io","monthWage":60000,
			"personalDetails":{"firstName":"John","lastName":"Doe"},
			"jobDetails":{"designation":"Analyst","department":"Finance","joiningDate":"2026-02-01"}}`
		c, w := newTestContext(http.MethodPost, "/api/v1/employees", body)
		c.Set("role", "hr")

		employee.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decode(t, w)
		assert.True(t, env.OK)
		assert.Contains(t, string(env.Data), `"loginId":"DAJODO20260001"`)
		assert.Contains(t, string(env.Data), `"temporaryPassword"`)
	})

	t.Run("validation error", func(t *testing.T) {
		c, w := newTestContext(http.MethodPost, "/api/v1/employees", `{}`)

		employee.NewHandler(&fakeEmployeeService{}).Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, decode(t, w).OK)
	})

	t.Run("privileged role forbidden", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(context.Context, string, employee.CreateEmployeeRequest) (employee.CreateEmployeeResponse, error) {
				return employee.CreateEmployeeResponse{}, employeeerrors.ErrRoleNotAssignable
			},
		}
		body := `{"email":"a@b.io","role":"admin","personalDetails":{"firstName":"A","lastName":"B"},"jobDetails":{"designation":"x","department":"y"}}`
		c, w := newTestContext(http.MethodPost, "/api/v1/employees", body)
		c.Set("role", "hr")

		employee.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	svc := &fakeEmployeeService{
		GetAllFn: func(_ context.Context, f employee.ListFilter) ([]employee.EmployeeResponse, int64, error) {
			assert.Equal(t, "Engineering", f.Department)
			assert.Equal(t, "jan", f.Query)
			assert.Equal(t, 2, f.Page)
			assert.Equal(t, 5, f.Limit)
			return []employee.EmployeeResponse{{ID: "1"}}, 11, nil
		},
	}
	c, w := newTestContext(http.MethodGet, "/api/v1/employees?department=Engineering&q=jan&page=2&limit=5", "")

	employee.NewHandler(svc).GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(11), env.Meta.Total)
	assert.Equal(t, 2, env.Meta.Page)
}

func TestEmployeeHandler_GetOptions(t *testing.T) {
	svc := &fakeEmployeeService{
		GetOptionsFn: func(context.Context) ([]employee.EmployeeOption, error) {
			return []employee.EmployeeOption{{ID: "1", Name: "Caca"}}, nil
		},
	}
	c, w := newTestContext(http.MethodGet, "/api/v1/employees/options", "")

	employee.NewHandler(svc).GetOptions(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Caca")
}

func TestEmployeeHandler_GetMe(t *testing.T) {
	employeeID := uuid.NewString()
	svc := &fakeEmployeeService{
		GetByIDFn: func(_ context.Context, id string) (employee.EmployeeResponse, error) {
			assert.Equal(t, employeeID, id)
			return employee.EmployeeResponse{ID: id}, nil
		},
	}
	c, w := newTestContext(http.MethodGet, "/api/v1/employees/me", "")
	c.Set("employee_id", employeeID)

	employee.NewHandler(svc).GetMe(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEmployeeHandler_GetByID_NotFound(t *testing.T) {
	svc := &fakeEmployeeService{
		GetByIDFn: func(context.Context, string) (employee.EmployeeResponse, error) {
			return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		},
	}
	c, w := newTestContext(http.MethodGet, "/api/v1/employees/x", "")
	c.Params = gin.Params{{Key: "id", Value: "x"}}

	employee.NewHandler(svc).GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decode(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestEmployeeHandler_UpdateMe(t *testing.T) {
	employeeID := uuid.NewString()
	svc := &fakeEmployeeService{
		UpdateFn: func(_ context.Context, role, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
			assert.Equal(t, "employee", role)
			assert.Equal(t, employeeID, id)
			assert.Equal(t, []string{"personalDetails.phone"}, req.FieldPaths())
			return employee.EmployeeResponse{ID: id}, nil
		},
	}
	c, w := newTestContext(http.MethodPut, "/api/v1/employees/me", `{"personalDetails":{"phone":"999"}}`)
	c.Set("employee_id", employeeID)
	c.Set("role", "employee")

	employee.NewHandler(svc).UpdateMe(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEmployeeHandler_UpdateStatus(t *testing.T) {
	id := uuid.NewString()
	svc := &fakeEmployeeService{
		UpdateStatusFn: func(_ context.Context, gotID, status string) (employee.EmployeeResponse, error) {
			assert.Equal(t, id, gotID)
			return employee.EmployeeResponse{ID: gotID, Status: status}, nil
		},
	}
	c, w := newTestContext(http.MethodPatch, "/api/v1/employees/"+id+"/status", `{"status":"terminated"}`)
	c.Params = gin.Params{{Key: "id", Value: id}}

	employee.NewHandler(svc).UpdateStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"terminated"`)
}

func TestEmployeeHandler_Delete(t *testing.T) {
	id := uuid.NewString()
	svc := &fakeEmployeeService{
		DeleteFn: func(_ context.Context, gotID string) error {
			assert.Equal(t, id, gotID)
			return nil
		},
	}
	c, w := newTestContext(http.MethodDelete, "/api/v1/employees/"+id, "")
	c.Params = gin.Params{{Key: "id", Value: id}}

	employee.NewHandler(svc).Delete(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
}

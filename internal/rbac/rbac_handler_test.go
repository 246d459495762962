package rbac

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"dayflow-hrms/internal/domain"
	rbacerrors "dayflow-hrms/internal/rbac/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	enforceFn     func(req domain.EnforceRequest) (bool, error)
	permissionsFn func(role string) ([]PermissionResponse, error)
}

func (f *fakeService) Enforce(req domain.EnforceRequest) (bool, error) {
	return f.enforceFn(req)
}

func (f *fakeService) AuthorizeFields(role, entity string, fieldPaths []string) error {
	return nil
}

func (f *fakeService) PermissionsFor(role string) ([]PermissionResponse, error) {
	return f.permissionsFn(role)
}

func withRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("role", role)
		c.Next()
	}
}

func TestHandler_Enforce(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		enforceFn: func(req domain.EnforceRequest) (bool, error) {
			assert.Equal(t, domain.RoleHR, req.Role)
			return req.Resource == ResourcePayroll && req.Action == ActionWrite, nil
		},
	}
	handler := NewHandler(svc)

	router := gin.New()
	router.POST("/rbac/enforce", withRole(domain.RoleHR), handler.Enforce)

	body, _ := json.Marshal(map[string]string{"resource": ResourcePayroll, "action": ActionWrite})
	req, _ := http.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"allowed":true`)
}

func TestHandler_Enforce_ValidationError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := NewHandler(&fakeService{})
	router := gin.New()
	router.POST("/rbac/enforce", withRole(domain.RoleHR), handler.Enforce)

	req, _ := http.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_GetMyPermissions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		svc := &fakeService{
			permissionsFn: func(role string) ([]PermissionResponse, error) {
				return []PermissionResponse{{GrantedTo: role, Object: ResourcePayrollSelf, Action: ActionRead}}, nil
			},
		}
		router := gin.New()
		router.GET("/rbac/permissions", withRole(domain.RoleEmployee), NewHandler(svc).GetMyPermissions)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/rbac/permissions", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), ResourcePayrollSelf)
	})

	t.Run("unknown role", func(t *testing.T) {
		svc := &fakeService{
			permissionsFn: func(role string) ([]PermissionResponse, error) {
				return nil, rbacerrors.ErrUnknownRole
			},
		}
		router := gin.New()
		router.GET("/rbac/permissions", withRole("ghost"), NewHandler(svc).GetMyPermissions)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/rbac/permissions", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

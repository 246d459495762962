package rbac

import (
	"errors"
	"testing"

	"dayflow-hrms/internal/domain"
	rbacerrors "dayflow-hrms/internal/rbac/errors"
	"dayflow-hrms/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	enforcer, err := NewEnforcer(Rules, Inheritance)
	assert.NoError(t, err)
	return NewService(enforcer)
}

func TestRBACService_Enforce(t *testing.T) {
	svc := newTestService(t)

	cases := []struct {
		name     string
		role     string
		resource string
		action   string
		allowed  bool
	}{
		{"employee reads own payroll", domain.RoleEmployee, ResourcePayrollSelf, ActionRead, true},
		{"employee cannot write payroll", domain.RoleEmployee, ResourcePayroll, ActionWrite, false},
		{"employee cannot update salary", domain.RoleEmployee, ResourceSalary, ActionUpdate, false},
		{"hr writes payroll", domain.RoleHR, ResourcePayroll, ActionWrite, true},
		{"hr updates salary", domain.RoleHR, ResourceSalary, ActionUpdate, true},
		{"hr inherits self attendance", domain.RoleHR, ResourceAttendanceSelf, ActionWrite, true},
		{"hr cannot delete employees", domain.RoleHR, ResourceEmployee, ActionDelete, false},
		{"admin inherits hr", domain.RoleAdmin, ResourceLeave, ActionReview, true},
		{"admin deletes payroll", domain.RoleAdmin, ResourcePayroll, ActionDelete, true},
		{"unknown role", "contractor", ResourcePayrollSelf, ActionRead, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := svc.Enforce(domain.EnforceRequest{Role: tc.role, Resource: tc.resource, Action: tc.action})
			assert.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}

func TestRBACService_AuthorizeFields(t *testing.T) {
	svc := newTestService(t)

	t.Run("employee may change phone and address", func(t *testing.T) {
		err := svc.AuthorizeFields(domain.RoleEmployee, ResourceEmployee, []string{"personalDetails.phone", "personalDetails.address"})
		assert.NoError(t, err)
	})

	t.Run("employee denied job details", func(t *testing.T) {
		err := svc.AuthorizeFields(domain.RoleEmployee, ResourceEmployee, []string{"personalDetails.phone", "jobDetails.designation", "personalDetails.firstName"})
		assert.True(t, errors.Is(err, rbacerrors.ErrFieldsNotWritable))

		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, map[string][]string{"fields": {"jobDetails.designation", "personalDetails.firstName"}}, appErr.Details)
	})

	t.Run("hr may change any employee field", func(t *testing.T) {
		err := svc.AuthorizeFields(domain.RoleHR, ResourceEmployee, []string{"jobDetails.designation", "personalDetails.bankDetails.accountNumber"})
		assert.NoError(t, err)
	})

	t.Run("unknown role", func(t *testing.T) {
		err := svc.AuthorizeFields("guest", ResourceEmployee, []string{"personalDetails.phone"})
		assert.ErrorIs(t, err, rbacerrors.ErrUnknownRole)
	})
}

func TestRBACService_PermissionsFor(t *testing.T) {
	svc := newTestService(t)

	employeePerms, err := svc.PermissionsFor(domain.RoleEmployee)
	assert.NoError(t, err)

	adminPerms, err := svc.PermissionsFor(domain.RoleAdmin)
	assert.NoError(t, err)

	assert.NotEmpty(t, employeePerms)
	assert.Greater(t, len(adminPerms), len(employeePerms))
	assert.Contains(t, adminPerms, PermissionResponse{GrantedTo: domain.RoleAdmin, Object: ResourcePayroll, Action: ActionDelete})
	assert.Contains(t, adminPerms, PermissionResponse{GrantedTo: domain.RoleEmployee, Object: ResourceLeaveSelf, Action: ActionWrite})

	_, err = svc.PermissionsFor("nobody")
	assert.Error(t, err)
}

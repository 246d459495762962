package rbac

import "dayflow-hrms/internal/domain"

const (
	ActionRead   = "read"
	ActionWrite  = "write"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionReview = "review"
)

// Resources guarded at the route level. A "/self" suffix means the caller's
// own records.
const (
	ResourceEmployee       = "employee"
	ResourceEmployeeSelf   = "employee/self"
	ResourceSalary         = "salary"
	ResourceSalarySelf     = "salary/self"
	ResourcePayroll        = "payroll"
	ResourcePayrollSelf    = "payroll/self"
	ResourceAttendance     = "attendance"
	ResourceAttendanceSelf = "attendance/self"
	ResourceLeave          = "leave"
	ResourceLeaveSelf      = "leave/self"
	ResourceUser           = "user"
	ResourceUserSelf       = "user/self"
	ResourcePermissionSelf = "rbac/self"
)

// fieldPrefix namespaces field-path objects, e.g. field/employee/personalDetails/phone.
const fieldPrefix = "field/"

func FieldObject(entity, fieldPath string) string {
	return fieldPrefix + entity + "/" + fieldPath
}

type Rule struct {
	Role   string
	Object string
	Action string
}

// Inheritance lists (member, parent): admin holds every hr rule, hr every employee rule.
var Inheritance = [][2]string{
	{domain.RoleAdmin, domain.RoleHR},
	{domain.RoleHR, domain.RoleEmployee},
}

// Rules is the single permission table for routes and field writes.
var Rules = []Rule{
	{domain.RoleEmployee, ResourceEmployeeSelf, ActionRead},
	{domain.RoleEmployee, ResourceEmployeeSelf, ActionUpdate},
	{domain.RoleEmployee, FieldObject(ResourceEmployee, "personalDetails/phone"), ActionWrite},
	{domain.RoleEmployee, FieldObject(ResourceEmployee, "personalDetails/address"), ActionWrite},
	{domain.RoleEmployee, ResourceSalarySelf, ActionRead},
	{domain.RoleEmployee, ResourcePayrollSelf, ActionRead},
	{domain.RoleEmployee, ResourceAttendanceSelf, ActionRead},
	{domain.RoleEmployee, ResourceAttendanceSelf, ActionWrite},
	{domain.RoleEmployee, ResourceLeaveSelf, ActionRead},
	{domain.RoleEmployee, ResourceLeaveSelf, ActionWrite},
	{domain.RoleEmployee, ResourcePermissionSelf, ActionRead},
	{domain.RoleEmployee, ResourceUserSelf, ActionRead},
	{domain.RoleEmployee, ResourceUserSelf, ActionUpdate},

	{domain.RoleHR, ResourceEmployee, ActionRead},
	{domain.RoleHR, ResourceEmployee, ActionCreate},
	{domain.RoleHR, ResourceEmployee, ActionUpdate},
	{domain.RoleHR, FieldObject(ResourceEmployee, "*"), ActionWrite},
	{domain.RoleHR, ResourceSalary, ActionRead},
	{domain.RoleHR, ResourceSalary, ActionUpdate},
	{domain.RoleHR, ResourcePayroll, ActionRead},
	{domain.RoleHR, ResourcePayroll, ActionWrite},
	{domain.RoleHR, ResourceAttendance, ActionRead},
	{domain.RoleHR, ResourceAttendance, ActionWrite},
	{domain.RoleHR, ResourceLeave, ActionRead},
	{domain.RoleHR, ResourceLeave, ActionReview},
	{domain.RoleHR, ResourceUser, ActionUpdate},

	{domain.RoleAdmin, ResourceEmployee, ActionDelete},
	{domain.RoleAdmin, ResourcePayroll, ActionDelete},
}

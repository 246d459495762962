package employeesalary

import (
	"dayflow-hrms/internal/middleware"
	"dayflow-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	auth gin.HandlerFunc,
) {
	salaries := r.Group("/employees")
	salaries.Use(auth)
	{
		salaries.GET("/me/salary",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceSalarySelf, rbac.ActionRead),
			handler.GetMine,
		)
		salaries.GET("/:id/salary",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceSalary, rbac.ActionRead),
			handler.GetByEmployee,
		)
		salaries.PUT("/:id/salary",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceSalary, rbac.ActionUpdate),
			handler.Update,
		)
	}
}

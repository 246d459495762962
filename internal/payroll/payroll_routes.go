package payroll

import (
	"dayflow-hrms/internal/middleware"
	"dayflow-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
	auth gin.HandlerFunc,
) {
	payrolls := r.Group("/payroll")
	payrolls.Use(auth)
	{
		payrolls.GET("/me",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourcePayrollSelf, rbac.ActionRead),
			handler.GetMine,
		)
		payrolls.GET("/me/payslip",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourcePayrollSelf, rbac.ActionRead),
			handler.DownloadMyPayslip,
		)
		payrolls.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourcePayroll, rbac.ActionRead),
			handler.GetAll,
		)
		payrolls.GET("/employee/:employeeId",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourcePayroll, rbac.ActionRead),
			handler.GetByEmployee,
		)
		payrolls.GET("/employee/:employeeId/payslip",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourcePayroll, rbac.ActionRead),
			handler.DownloadPayslip,
		)
		payrolls.POST("",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourcePayroll, rbac.ActionWrite),
			middleware.Idempotency(rdb),
			handler.Upsert,
		)
		payrolls.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, rbac.ResourcePayroll, rbac.ActionDelete),
			handler.Delete,
		)
	}
}

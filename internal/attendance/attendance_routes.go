package attendance

import (
	"dayflow-hrms/internal/middleware"
	"dayflow-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, auth gin.HandlerFunc) {
	attendance := r.Group("/attendance")
	attendance.Use(auth)
	{
		attendance.POST("/check-in",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttendanceSelf, rbac.ActionWrite),
			h.CheckIn,
		)
		attendance.POST("/check-out",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttendanceSelf, rbac.ActionWrite),
			h.CheckOut,
		)
		attendance.GET("/today",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttendanceSelf, rbac.ActionRead),
			h.GetToday,
		)
		attendance.GET("/me",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttendanceSelf, rbac.ActionRead),
			h.GetMine,
		)
		attendance.GET("/me/summary",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttendanceSelf, rbac.ActionRead),
			h.MySummary,
		)
		attendance.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionRead),
			h.GetAll,
		)
		attendance.GET("/summary",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionRead),
			h.Summary,
		)
		attendance.GET("/employee/:employeeId",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionRead),
			h.GetByEmployee,
		)
		attendance.POST("/mark",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionWrite),
			h.Mark,
		)
	}
}

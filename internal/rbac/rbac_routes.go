package rbac

import (
	"dayflow-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, service Service, auth gin.HandlerFunc) {
	group := r.Group("/rbac")
	group.Use(auth)
	{
		group.GET("/permissions", middleware.RBACAuthorize(service, ResourcePermissionSelf, ActionRead), handler.GetMyPermissions)
		group.POST("/enforce", middleware.RBACAuthorize(service, ResourcePermissionSelf, ActionRead), handler.Enforce)
	}
}

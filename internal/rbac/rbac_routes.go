package rbac

import (
	"saral-hr/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, companies middleware.CompanyPermissionService) {
	group := r.Group("/rbac")
	group.Use(middleware.AuthMiddleware(), middleware.RateLimitByUser(5, 20))
	{
		group.POST("/enforce", handler.Enforce)
		group.GET("/companies", handler.PermittedCompanies)
		group.GET("/permissions", middleware.PermittedCompanies(companies), handler.Permissions)
	}
}

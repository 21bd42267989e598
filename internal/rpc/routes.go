package rpc

import (
	"saral-hr/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, companies middleware.CompanyPermissionService) {
	group := r.Group("/method")
	group.Use(middleware.AuthMiddleware(), middleware.PermittedCompanies(companies))
	{
		group.GET("", handler.List)
		group.POST("/:method", middleware.RateLimitByUser(20, 40), handler.Dispatch)
	}
}

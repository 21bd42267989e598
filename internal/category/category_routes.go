package category

import (
	"saral-hr/internal/domain"
	"saral-hr/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService middleware.RBACService,
) {
	categories := r.Group("/categories")
	categories.Use(middleware.AuthMiddleware())
	{
		categories.GET("", middleware.RBACAuthorize(rbacService, domain.ResourceCategory, domain.ActionRead), h.GetAll)
		categories.POST("", middleware.RBACAuthorize(rbacService, domain.ResourceCategory, domain.ActionCreate), h.Create)
		categories.GET("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceCategory, domain.ActionRead), h.GetById)
		categories.PUT("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceCategory, domain.ActionUpdate), h.Update)
		categories.DELETE("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceCategory, domain.ActionDelete), h.Delete)
	}
}

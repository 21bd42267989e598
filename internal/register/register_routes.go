package register

import (
	"saral-hr/internal/domain"
	"saral-hr/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService middleware.RBACService,
	companies middleware.CompanyPermissionService,
) {
	registers := r.Group("/registers")
	registers.Use(middleware.AuthMiddleware())
	registers.Use(middleware.PermittedCompanies(companies))
	{
		registers.GET("", middleware.RBACAuthorize(rbacService, domain.ResourceSalary, domain.ActionRead), h.Kinds)
		registers.GET("/:kind", middleware.RBACAuthorize(rbacService, domain.ResourceSalary, domain.ActionRead), h.Get)
		registers.GET("/:kind/xlsx",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceSalary, domain.ActionRead),
			h.Export,
		)
	}
}

package salaryhold

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
	holds := r.Group("/salary-holds")
	holds.Use(middleware.AuthMiddleware())
	holds.Use(middleware.PermittedCompanies(companies))
	{
		holds.GET("", middleware.RBACAuthorize(rbacService, domain.ResourceSalary, domain.ActionRead), h.GetAll)
		holds.GET("/status/:employee", middleware.RBACAuthorize(rbacService, domain.ResourceSalary, domain.ActionRead), h.Status)
		holds.GET("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceSalary, domain.ActionRead), h.GetByID)
		holds.POST("", middleware.RBACAuthorize(rbacService, domain.ResourceSalary, domain.ActionCreate), h.Create)
		holds.POST("/:id/submit", middleware.RBACAuthorize(rbacService, domain.ResourceSalary, domain.ActionUpdate), h.Submit)
		holds.POST("/:id/release",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceSalary, domain.ActionUpdate),
			h.Release,
		)
		holds.DELETE("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceSalary, domain.ActionDelete), h.Delete)
	}
}

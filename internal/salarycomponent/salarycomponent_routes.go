package salarycomponent

import (
	"saral-hr/internal/domain"
	"saral-hr/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	companies middleware.CompanyPermissionService,
	logger *zap.Logger,
) {
	components := r.Group("/salary-components")
	components.Use(middleware.AuthMiddleware())
	components.Use(middleware.ContextLogger(logger))
	components.Use(middleware.PermittedCompanies(companies))
	{
		components.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceSalary, domain.ActionRead),
			handler.GetAll,
		)
		components.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceSalary, domain.ActionRead),
			handler.GetByID,
		)
		components.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceSalary, domain.ActionCreate),
			handler.Create,
		)
		components.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceSalary, domain.ActionUpdate),
			handler.Update,
		)
		components.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, domain.ResourceSalary, domain.ActionDelete),
			handler.Delete,
		)
	}
}

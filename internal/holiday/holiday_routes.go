package holiday

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
	lists := r.Group("/holiday-lists")
	lists.Use(middleware.AuthMiddleware())
	lists.Use(middleware.ContextLogger(logger))
	lists.Use(middleware.PermittedCompanies(companies))
	{
		lists.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceHoliday, domain.ActionRead),
			handler.GetAll,
		)
		lists.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceHoliday, domain.ActionRead),
			handler.GetByID,
		)
		lists.POST("",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceHoliday, domain.ActionCreate),
			handler.Create,
		)
		lists.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceHoliday, domain.ActionUpdate),
			handler.Update,
		)
		lists.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, domain.ResourceHoliday, domain.ActionDelete),
			handler.Delete,
		)
	}
}

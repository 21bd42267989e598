package company

import (
	"saral-hr/internal/domain"
	"saral-hr/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	companies middleware.CompanyPermissionService,
) {
	company := r.Group("/companies")
	company.Use(middleware.AuthMiddleware())
	company.Use(middleware.PermittedCompanies(companies))
	{
		// Dipanggil dashboard di setiap refresh
		company.GET("/me",
			middleware.RateLimitByUser(2, 10),
			handler.Get,
		)

		company.GET("",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceCompany, domain.ActionRead),
			handler.GetAll,
		)

		company.POST("",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, domain.ResourceCompany, domain.ActionCreate),
			handler.Create,
		)

		company.GET("/:id",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceCompany, domain.ActionRead),
			handler.Get,
		)

		company.PUT("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, domain.ResourceCompany, domain.ActionUpdate),
			handler.Update,
		)

		company.POST("/:id/registrations",
			middleware.RateLimitByUser(0.5, 1),
			middleware.RBACAuthorize(rbacService, domain.ResourceCompany, domain.ActionUpdate),
			handler.UpsertRegistration,
		)

		company.GET("/:id/registrations",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, domain.ResourceCompany, domain.ActionRead),
			handler.ListRegistrations,
		)

		company.DELETE("/:id/registrations/:type",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, domain.ResourceCompany, domain.ActionDelete),
			handler.DeleteRegistration,
		)
	}
}

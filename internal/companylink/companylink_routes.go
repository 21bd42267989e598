package companylink

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
	links := r.Group("/company-links")
	links.Use(middleware.AuthMiddleware())
	links.Use(middleware.ContextLogger(logger))
	links.Use(middleware.PermittedCompanies(companies))
	{
		links.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceEmployee, domain.ActionRead),
			handler.GetAll,
		)

		links.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceEmployee, domain.ActionRead),
			handler.GetByID,
		)

		links.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceEmployee, domain.ActionCreate),
			handler.Create,
		)

		links.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceEmployee, domain.ActionUpdate),
			handler.Update,
		)
	}

	// Dipakai form absensi dan dropdown employee
	options := r.Group("/employee-options")
	options.Use(middleware.AuthMiddleware())
	options.Use(middleware.PermittedCompanies(companies))
	{
		options.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceEmployee, domain.ActionRead),
			handler.Options,
		)

		options.GET("/search",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, domain.ResourceEmployee, domain.ActionRead),
			handler.Search,
		)
	}

	history := r.Group("/employees")
	history.Use(middleware.AuthMiddleware())
	history.Use(middleware.ContextLogger(logger))
	history.Use(middleware.PermittedCompanies(companies))
	{
		history.GET("/:id/timeline",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceEmployee, domain.ActionRead),
			handler.Timeline,
		)

		history.POST("/:id/switch-company",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, domain.ResourceEmployee, domain.ActionUpdate),
			handler.SwitchCompany,
		)
	}
}

package salarystructure

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
	structures := r.Group("/salary-structures")
	structures.Use(middleware.AuthMiddleware())
	structures.Use(middleware.ContextLogger(logger))
	structures.Use(middleware.PermittedCompanies(companies))
	{
		structures.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceSalary, domain.ActionRead),
			handler.GetStructures,
		)
		structures.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceSalary, domain.ActionRead),
			handler.GetStructure,
		)
		structures.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceSalary, domain.ActionCreate),
			handler.CreateStructure,
		)
		structures.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceSalary, domain.ActionUpdate),
			handler.UpdateStructure,
		)
		structures.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, domain.ResourceSalary, domain.ActionDelete),
			handler.DeleteStructure,
		)
	}

	assignments := r.Group("/salary-structure-assignments")
	assignments.Use(middleware.AuthMiddleware())
	assignments.Use(middleware.ContextLogger(logger))
	assignments.Use(middleware.PermittedCompanies(companies))
	{
		assignments.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceSalary, domain.ActionRead),
			handler.GetAssignments,
		)
		assignments.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceSalary, domain.ActionRead),
			handler.GetAssignment,
		)
		assignments.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, domain.ResourceSalary, domain.ActionCreate),
			handler.CreateAssignment,
		)
		assignments.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceSalary, domain.ActionUpdate),
			handler.UpdateAssignment,
		)
		assignments.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, domain.ResourceSalary, domain.ActionDelete),
			handler.DeleteAssignment,
		)
	}
}

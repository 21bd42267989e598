package salaryslip

import (
	"saral-hr/internal/domain"
	"saral-hr/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	companies middleware.CompanyPermissionService,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	slips := r.Group("/salary-slips")
	slips.Use(middleware.AuthMiddleware())
	slips.Use(middleware.ContextLogger(logger))
	slips.Use(middleware.PermittedCompanies(companies))
	{
		slips.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceSalary, domain.ActionRead),
			handler.GetAll,
		)
		slips.GET("/eligibility",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, domain.ResourceSalary, domain.ActionRead),
			handler.Eligibility,
		)
		slips.GET("/status-chart",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceSalary, domain.ActionRead),
			handler.StatusChart,
		)
		slips.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceSalary, domain.ActionRead),
			handler.GetByID,
		)
		slips.GET("/:id/payslip",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, domain.ResourceSalary, domain.ActionRead),
			handler.Payslip,
		)
		slips.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceSalary, domain.ActionCreate),
			handler.Generate,
		)
		slips.POST("/bulk-generate",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, domain.ResourceSalary, domain.ActionCreate),
			middleware.Idempotency(rdb),
			handler.BulkGenerate,
		)
		slips.POST("/print",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceSalary, domain.ActionRead),
			handler.PrintBulk,
		)
		slips.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceSalary, domain.ActionUpdate),
			handler.Update,
		)
		slips.POST("/:id/submit",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceSalary, domain.ActionUpdate),
			handler.Submit,
		)
		slips.POST("/:id/cancel",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceSalary, domain.ActionUpdate),
			handler.Cancel,
		)
		slips.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, domain.ResourceSalary, domain.ActionDelete),
			handler.Delete,
		)
	}
}

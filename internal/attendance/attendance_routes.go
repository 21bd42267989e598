package attendance

import (
	"saral-hr/internal/domain"
	"saral-hr/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService middleware.RBACService,
	companies middleware.CompanyPermissionService,
	rdb *redis.Client,
) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	attendances.Use(middleware.PermittedCompanies(companies))
	{
		attendances.GET("", middleware.RBACAuthorize(rbacService, domain.ResourceAttendance, domain.ActionRead), h.GetAll)
		attendances.GET("/unmarked", middleware.RBACAuthorize(rbacService, domain.ResourceAttendance, domain.ActionRead), h.Unmarked)
		attendances.GET("/summary", middleware.RBACAuthorize(rbacService, domain.ResourceAttendance, domain.ActionRead), h.Summary)
		attendances.GET("/report/monthly", middleware.RBACAuthorize(rbacService, domain.ResourceAttendance, domain.ActionRead), h.MonthlyReport)
		attendances.GET("/report/monthly/xlsx",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceAttendance, domain.ActionRead),
			h.ExportMonthlyReport,
		)
		attendances.POST("", middleware.RBACAuthorize(rbacService, domain.ResourceAttendance, domain.ActionCreate), h.Create)
		attendances.POST("/mark", middleware.RBACAuthorize(rbacService, domain.ResourceAttendance, domain.ActionCreate), h.Mark)
		attendances.POST("/bulk",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceAttendance, domain.ActionCreate),
			h.MarkBulk,
		)
		attendances.POST("/batch",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, domain.ResourceAttendance, domain.ActionCreate),
			middleware.Idempotency(rdb),
			h.SaveBatch,
		)
		attendances.PUT("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceAttendance, domain.ActionUpdate), h.Update)
		attendances.DELETE("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceAttendance, domain.ActionDelete), h.Delete)
	}
}

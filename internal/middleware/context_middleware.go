package middleware

import (
	"saral-hr/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContextLogger dipasang di group yang sudah lewat AuthMiddleware supaya
// identitas user ikut di setiap log service/repo.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetString("request_id")
		if rid == "" {
			rid = uuid.NewString()
			c.Set("request_id", rid)
			c.Header(RequestIDHeader, rid)
		}

		id := contextutil.Identity{
			UserID:     c.GetString("user_id"),
			EmployeeID: c.GetString("employee_id"),
			CompanyID:  c.GetString("company_id"),
		}

		reqLogger := logger.With(
			zap.String("request_id", rid),
			zap.String("user_id", id.UserID),
			zap.String("company_id", id.CompanyID),
			zap.String("route", c.FullPath()),
		)

		ctx := contextutil.WithRequestID(c.Request.Context(), rid)
		ctx = contextutil.WithIdentity(ctx, id)
		ctx = contextutil.WithLogger(ctx, reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

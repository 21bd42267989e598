package middleware

import (
	"net/http"

	"saral-hr/internal/domain"
	"saral-hr/internal/shared/apperror"
	"saral-hr/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RBACService dipenuhi rbac.Service; middleware tidak import package rbac.
type RBACService interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

// RBACAuthorize dipasang setelah AuthMiddleware. Role selalu dicek di
// company default token, termasuk saat request menyasar company lain
// yang diizinkan lewat PermittedCompanies.
func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	required := resource + ":" + action
	return func(c *gin.Context) {
		employeeID := c.GetString("employee_id")
		companyID := c.GetString("company_id")
		if employeeID == "" || companyID == "" {
			abortWith(c, apperror.ErrUnauthorized.Withf("missing auth context"))
			return
		}

		allowed, err := service.Enforce(domain.EnforceRequest{
			EmployeeID: employeeID,
			CompanyID:  companyID,
			Resource:   resource,
			Action:     action,
		})
		if err != nil {
			zap.L().Named("middleware.rbac").Error("enforce failed",
				zap.String("employee_id", employeeID),
				zap.String("required", required),
				zap.Error(err),
			)
			abortWith(c, apperror.ErrInternal.Withf("Failed to evaluate permission"))
			return
		}
		if !allowed {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden,
				"You do not have permission to access this resource",
				gin.H{"required": required},
			)
			c.Abort()
			return
		}
		c.Next()
	}
}

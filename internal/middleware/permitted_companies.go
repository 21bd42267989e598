package middleware

import (
	"context"
	"net/http"

	"saral-hr/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const PermittedCompaniesKey = "permitted_company_ids"

type CompanyPermissionService interface {
	PermittedCompanies(ctx context.Context, userID, defaultCompanyID string) ([]string, error)
}

// PermittedCompanies menaruh daftar company yang boleh diakses user di gin context.
// Handler membacanya lewat GetPermittedCompanies.
func PermittedCompanies(service CompanyPermissionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ids, err := service.PermittedCompanies(c.Request.Context(), c.GetString("user_id"), c.GetString("company_id"))
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to resolve company permissions", nil)
			c.Abort()
			return
		}
		c.Set(PermittedCompaniesKey, ids)
		c.Next()
	}
}

// GetPermittedCompanies jatuh ke company di token kalau middleware tidak terpasang.
func GetPermittedCompanies(c *gin.Context) []string {
	if v, ok := c.Get(PermittedCompaniesKey); ok {
		if ids, ok := v.([]string); ok {
			return ids
		}
	}
	if companyID := c.GetString("company_id"); companyID != "" {
		return []string{companyID}
	}
	return nil
}

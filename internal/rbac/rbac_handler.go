package rbac

import (
	"net/http"
	"strings"

	"saral-hr/internal/domain"
	"saral-hr/internal/middleware"
	"saral-hr/internal/shared/apperror"
	"saral-hr/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func internalError(c *gin.Context, err error) {
	response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "Gagal memeriksa hak akses", err.Error())
}

// Enforce memeriksa satu permission; dipakai service lain dan CLI.
func (h *Handler) Enforce(c *gin.Context) {
	var req domain.EnforceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	req.EmployeeID = strings.TrimSpace(req.EmployeeID)
	req.CompanyID = strings.TrimSpace(req.CompanyID)
	req.Resource = strings.ToLower(strings.TrimSpace(req.Resource))
	req.Action = strings.ToLower(strings.TrimSpace(req.Action))

	allowed, err := h.service.Enforce(req)
	if err != nil {
		internalError(c, err)
		return
	}
	response.Success(c, http.StatusOK, domain.EnforceResponse{Allowed: allowed}, nil)
}

// Permissions: permission milik user login, atau ?company= lain yang diizinkan.
func (h *Handler) Permissions(c *gin.Context) {
	companyID := c.DefaultQuery("company", c.GetString("company_id"))
	employeeID := c.GetString("employee_id")

	allowed := false
	for _, id := range middleware.GetPermittedCompanies(c) {
		if id == companyID {
			allowed = true
			break
		}
	}
	if !allowed {
		response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "Company tidak termasuk dalam akses Anda", nil)
		return
	}

	perms, err := h.service.Permissions(c.Request.Context(), employeeID, companyID)
	if err != nil {
		internalError(c, err)
		return
	}
	response.Success(c, http.StatusOK, domain.PermissionsResponse{
		CompanyID:   companyID,
		EmployeeID:  employeeID,
		Permissions: perms,
	}, nil)
}

func (h *Handler) PermittedCompanies(c *gin.Context) {
	companyID := c.GetString("company_id")
	ids, err := h.service.PermittedCompanies(c.Request.Context(), c.GetString("user_id"), companyID)
	if err != nil {
		internalError(c, err)
		return
	}
	response.Success(c, http.StatusOK, domain.PermittedCompaniesResponse{
		DefaultCompanyID: companyID,
		CompanyIDs:       ids,
	}, nil)
}

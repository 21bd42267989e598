package company

import (
	"net/http"

	companyerrors "saral-hr/internal/company/errors"
	"saral-hr/internal/middleware"
	"saral-hr/internal/shared/apperror"
	"saral-hr/internal/shared/response"
	"saral-hr/internal/tenant"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("company.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("company request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// targetCompany mengambil :id bila ada, selain itu company dari token.
func (h *Handler) targetCompany(c *gin.Context) (string, bool) {
	companyID := c.Param("id")
	if companyID == "" {
		companyID = c.GetString("company_id")
	}
	if companyID == "" {
		h.writeServiceError(c, apperror.ErrUnauthorized)
		return "", false
	}
	if !tenant.Allows(middleware.GetPermittedCompanies(c), companyID) {
		h.writeServiceError(c, companyerrors.ErrCompanyForbidden)
		return "", false
	}
	return companyID, true
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	resp, err := h.service.GetAll(c.Request.Context(), middleware.GetPermittedCompanies(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Get(c *gin.Context) {
	companyID, ok := h.targetCompany(c)
	if !ok {
		return
	}

	comp, err := h.service.GetByID(c.Request.Context(), companyID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, comp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	companyID, ok := h.targetCompany(c)
	if !ok {
		return
	}

	var req UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	comp, err := h.service.Update(c.Request.Context(), companyID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, comp, nil)
}

func (h *Handler) UpsertRegistration(c *gin.Context) {
	companyID, ok := h.targetCompany(c)
	if !ok {
		return
	}

	var req UpsertCompanyRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	if err := h.service.UpsertRegistration(c.Request.Context(), companyID, req); err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListRegistrations(c *gin.Context) {
	companyID, ok := h.targetCompany(c)
	if !ok {
		return
	}

	result, err := h.service.ListRegistrations(c.Request.Context(), companyID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result, nil)
}

func (h *Handler) DeleteRegistration(c *gin.Context) {
	companyID, ok := h.targetCompany(c)
	if !ok {
		return
	}

	regType := RegistrationType(c.Param("type"))
	if err := h.service.DeleteRegistration(c.Request.Context(), companyID, regType); err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

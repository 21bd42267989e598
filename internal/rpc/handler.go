package rpc

import (
	"encoding/json"
	"io"
	"net/http"

	"saral-hr/internal/domain"
	"saral-hr/internal/middleware"
	"saral-hr/internal/shared/apperror"
	"saral-hr/internal/shared/contextutil"
	"saral-hr/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	registry *Registry
	rbac     middleware.RBACService
	logger   *zap.Logger
}

func NewHandler(registry *Registry, rbac middleware.RBACService, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("rpc.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rpc.handler")
	}
	return &Handler{registry: registry, rbac: rbac, logger: l}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Dispatch(c *gin.Context) {
	method := c.Param("method")
	e, ok := h.registry.lookup(method)
	if !ok {
		writeServiceError(c, ErrMethodNotFound)
		return
	}

	call := Call{
		Method:             method,
		UserID:             c.GetString("user_id"),
		EmployeeID:         c.GetString("employee_id"),
		CompanyID:          c.GetString("company_id"),
		PermittedCompanies: middleware.GetPermittedCompanies(c),
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 4<<20))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}
	if len(body) > 0 {
		if !json.Valid(body) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", "body must be a JSON object")
			return
		}
		call.Args = body
	}

	if e.resource != "" && h.rbac != nil {
		allowed, err := h.rbac.Enforce(domain.EnforceRequest{
			EmployeeID: call.EmployeeID,
			CompanyID:  call.CompanyID,
			Resource:   e.resource,
			Action:     e.action,
		})
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to evaluate permission", nil)
			return
		}
		if !allowed {
			response.Error(c, http.StatusForbidden, "FORBIDDEN",
				"You do not have permission to access this resource",
				gin.H{"required": e.resource + ":" + e.action},
			)
			return
		}
	}

	ctx := c.Request.Context()
	result, err := e.proc(ctx, call)
	if err != nil {
		contextutil.GetLogger(ctx, h.logger).Warn("rpc method failed",
			zap.String("method", method),
			zap.Error(err),
		)
		writeServiceError(c, err)
		return
	}

	response.Method(c, result)
}

func (h *Handler) List(c *gin.Context) {
	response.Success(c, http.StatusOK, h.registry.Methods(), nil)
}

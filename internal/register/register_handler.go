package register

import (
	"net/http"

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

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func bindArgs(c *gin.Context) (Args, bool) {
	var args Args
	if err := c.ShouldBindQuery(&args); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return args, false
	}
	if args.Company == "" {
		args.Company = c.GetString("company_id")
	}
	return args, true
}

func (h *Handler) Kinds(c *gin.Context) {
	response.Success(c, http.StatusOK, Kinds(), nil)
}

func (h *Handler) Get(c *gin.Context) {
	args, ok := bindArgs(c)
	if !ok {
		return
	}
	table, err := h.service.Build(c.Request.Context(), middleware.GetPermittedCompanies(c), c.Param("kind"), args)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, table, nil)
}

func (h *Handler) Export(c *gin.Context) {
	args, ok := bindArgs(c)
	if !ok {
		return
	}
	data, filename, err := h.service.Export(c.Request.Context(), middleware.GetPermittedCompanies(c), c.Param("kind"), args)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Attachment(c, xlsxContentType, filename, false, data)
}

package salaryslip

import (
	"net/http"
	"strconv"
	"strings"

	"saral-hr/internal/middleware"
	"saral-hr/internal/shared/apperror"
	"saral-hr/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

// rdb boleh nil; hasil bulk generate tidak disimpan untuk idempotency.
func NewHandler(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("salaryslip.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salaryslip.handler")
	}
	return &Handler{service: service, rdb: rdb, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("salary slip request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func companyOf(c *gin.Context) string {
	return strings.TrimSpace(c.DefaultQuery("company_id", c.GetString("company_id")))
}

func (h *Handler) GetAll(c *gin.Context) {
	filter := SlipFilter{
		Company:  c.Query("company_id"),
		Employee: c.Query("employee"),
		Status:   c.Query("status"),
		Month:    c.Query("month"),
	}
	if y := c.Query("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", "year must be a number")
			return
		}
		filter.Year = year
	}

	resp, err := h.service.GetAll(c.Request.Context(), middleware.GetPermittedCompanies(c), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), middleware.GetPermittedCompanies(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.Generate(c.Request.Context(), middleware.GetPermittedCompanies(c), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) BulkGenerate(c *gin.Context) {
	var req BulkGenerateArgs
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}
	if req.Company == "" {
		req.Company = companyOf(c)
	}

	resp, err := h.service.BulkGenerate(c.Request.Context(), middleware.GetPermittedCompanies(c), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	middleware.RememberIdempotentResponse(c, h.rdb, resp)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Eligibility(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", "year must be a number")
		return
	}
	args := EligibilityArgs{Company: companyOf(c), Year: year, Month: c.Query("month")}

	resp, err := h.service.Eligibility(c.Request.Context(), middleware.GetPermittedCompanies(c), args)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateSlipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), middleware.GetPermittedCompanies(c), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Submit(c *gin.Context) {
	resp, err := h.service.Submit(c.Request.Context(), middleware.GetPermittedCompanies(c), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Cancel(c *gin.Context) {
	resp, err := h.service.Cancel(c.Request.Context(), middleware.GetPermittedCompanies(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.GetPermittedCompanies(c), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) StatusChart(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", "year must be a number")
		return
	}

	resp, err := h.service.StatusChart(c.Request.Context(), middleware.GetPermittedCompanies(c), year, c.Query("month"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Payslip(c *gin.Context) {
	url, err := h.service.PayslipURL(c.Request.Context(), middleware.GetPermittedCompanies(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"url": url}, nil)
}

func (h *Handler) PrintBulk(c *gin.Context) {
	var req PrintBulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	body, err := h.service.PrintBulk(c.Request.Context(), middleware.GetPermittedCompanies(c), req.SalarySlips)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Attachment(c, payslipMediaType, "salary-slips.pdf", true, body)
}

package attendance

import (
	"net/http"
	"strconv"
	"time"

	attendanceerrors "saral-hr/internal/attendance/errors"
	"saral-hr/internal/middleware"
	"saral-hr/internal/shared/apperror"
	"saral-hr/internal/shared/period"
	"saral-hr/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	service Service
	rdb     *redis.Client
}

// rdb boleh nil; respons batch tidak disimpan untuk idempotency.
func NewHandler(service Service, rdb *redis.Client) *Handler {
	return &Handler{service: service, rdb: rdb}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	var req SaveAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), middleware.GetPermittedCompanies(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Mark(c *gin.Context) {
	var req SaveAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.MarkSingle(c.Request.Context(), middleware.GetPermittedCompanies(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), middleware.GetPermittedCompanies(c), c.Param("id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.GetPermittedCompanies(c), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) SaveBatch(c *gin.Context) {
	var args SaveBatchArgs
	if err := c.ShouldBindJSON(&args); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.SaveBatch(c.Request.Context(), middleware.GetPermittedCompanies(c), args.AttendanceData)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	middleware.RememberIdempotentResponse(c, h.rdb, resp)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) MarkBulk(c *gin.Context) {
	var req MarkBulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.MarkBulk(c.Request.Context(), middleware.GetPermittedCompanies(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	filter := AttendanceFilter{
		Employee: c.Query("employee"),
		From:     c.Query("from_date"),
		To:       c.Query("to_date"),
		Status:   c.Query("status"),
	}

	resp, err := h.service.GetAll(c.Request.Context(), middleware.GetPermittedCompanies(c), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Paged(c, resp, 31)
}

func (h *Handler) Unmarked(c *gin.Context) {
	year, month, ok := yearMonth(c)
	if !ok {
		return
	}
	exclude, _ := strconv.ParseBool(c.DefaultQuery("exclude_weekends", "false"))

	resp, err := h.service.UnmarkedDays(c.Request.Context(), middleware.GetPermittedCompanies(c), c.Query("employee"), year, month, exclude)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Summary(c *gin.Context) {
	from, err := period.ParseDate(c.Query("from_date"))
	if err != nil {
		writeServiceError(c, attendanceerrors.ErrInvalidDate)
		return
	}
	to := period.LastDayOf(from)
	if raw := c.Query("to_date"); raw != "" {
		if to, err = period.ParseDate(raw); err != nil {
			writeServiceError(c, attendanceerrors.ErrInvalidDate)
			return
		}
	}

	resp, err := h.service.SummaryFor(c.Request.Context(), middleware.GetPermittedCompanies(c), c.Query("employee"), from, to)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func yearMonth(c *gin.Context) (int, time.Month, bool) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 1900 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", "year is required")
		return 0, 0, false
	}
	month, err := period.ParseMonth(c.Query("month"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", "month is required")
		return 0, 0, false
	}
	return year, month, true
}

func bindReportFilter(c *gin.Context) (MonthlyReportFilter, bool) {
	var filter MonthlyReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return filter, false
	}
	if filter.Company == "" {
		filter.Company = c.GetString("company_id")
	}
	return filter, true
}

func (h *Handler) MonthlyReport(c *gin.Context) {
	filter, ok := bindReportFilter(c)
	if !ok {
		return
	}
	resp, err := h.service.MonthlyReport(c.Request.Context(), middleware.GetPermittedCompanies(c), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ExportMonthlyReport(c *gin.Context) {
	filter, ok := bindReportFilter(c)
	if !ok {
		return
	}
	data, filename, err := h.service.ExportMonthlyReport(c.Request.Context(), middleware.GetPermittedCompanies(c), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Attachment(c, XLSXContentType, filename, false, data)
}

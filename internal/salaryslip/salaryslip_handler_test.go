package salaryslip_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"saral-hr/internal/middleware"
	"saral-hr/internal/salaryslip"
	salarysliperrors "saral-hr/internal/salaryslip/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	salaryslip.Service
	bulkGenerateFn func(ctx context.Context, companyIDs []string, args salaryslip.BulkGenerateArgs) (salaryslip.BulkGenerateResult, error)
	printBulkFn    func(ctx context.Context, companyIDs []string, ids []string) ([]byte, error)
}

func (f *fakeService) BulkGenerate(ctx context.Context, companyIDs []string, args salaryslip.BulkGenerateArgs) (salaryslip.BulkGenerateResult, error) {
	return f.bulkGenerateFn(ctx, companyIDs, args)
}

func (f *fakeService) PrintBulk(ctx context.Context, companyIDs []string, ids []string) ([]byte, error) {
	return f.printBulkFn(ctx, companyIDs, ids)
}

func newRouter(h *salaryslip.Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("company_id", "comp-1")
		c.Set(middleware.PermittedCompaniesKey, []string{"comp-1"})
		c.Next()
	})
	r.POST("/salary-slips/bulk-generate", h.BulkGenerate)
	r.POST("/salary-slips/print", h.PrintBulk)
	return r
}

func TestHandler_BulkGenerate(t *testing.T) {
	var got salaryslip.BulkGenerateArgs
	svc := &fakeService{
		bulkGenerateFn: func(ctx context.Context, companyIDs []string, args salaryslip.BulkGenerateArgs) (salaryslip.BulkGenerateResult, error) {
			got = args
			return salaryslip.BulkGenerateResult{Success: 1, Failed: 1, Errors: []string{"link-2: failed"}}, nil
		},
	}
	r := newRouter(salaryslip.NewHandler(svc, nil))

	body := `{"year":2025,"month":"January","employees":["link-1","link-2"]}`
	req := httptest.NewRequest(http.MethodPost, "/salary-slips/bulk-generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "comp-1", got.Company)
	assert.Equal(t, []string{"link-1", "link-2"}, got.Employees)

	var resp struct {
		Data salaryslip.BulkGenerateResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Data.Failed)
}

func TestHandler_BulkGenerate_EmptySelection(t *testing.T) {
	svc := &fakeService{
		bulkGenerateFn: func(ctx context.Context, companyIDs []string, args salaryslip.BulkGenerateArgs) (salaryslip.BulkGenerateResult, error) {
			return salaryslip.BulkGenerateResult{}, salarysliperrors.ErrNoEmployeesSelected
		},
	}
	r := newRouter(salaryslip.NewHandler(svc, nil))

	req := httptest.NewRequest(http.MethodPost, "/salary-slips/bulk-generate", strings.NewReader(`{"year":2025,"month":"1"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Please select at least one employee")
}

func TestHandler_PrintBulk(t *testing.T) {
	svc := &fakeService{
		printBulkFn: func(ctx context.Context, companyIDs []string, ids []string) ([]byte, error) {
			assert.Equal(t, []string{"slip-1"}, ids)
			return []byte("%PDF-1.3 test"), nil
		},
	}
	r := newRouter(salaryslip.NewHandler(svc, nil))

	req := httptest.NewRequest(http.MethodPost, "/salary-slips/print", strings.NewReader(`{"salary_slips":["slip-1"]}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
}

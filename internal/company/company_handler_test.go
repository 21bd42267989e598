package company_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"saral-hr/internal/company"
	"saral-hr/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeCompanyService struct {
	company.Service
	getByIDFn func(ctx context.Context, id string) (*company.CompanyResponse, error)
	updateFn  func(ctx context.Context, id string, req company.UpdateCompanyRequest) (*company.CompanyResponse, error)
}

func (f *fakeCompanyService) GetByID(ctx context.Context, id string) (*company.CompanyResponse, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeCompanyService) Update(ctx context.Context, id string, req company.UpdateCompanyRequest) (*company.CompanyResponse, error) {
	return f.updateFn(ctx, id, req)
}

func newCompanyRouter(h *company.Handler, permitted []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("company_id", "comp-1")
		c.Set(middleware.PermittedCompaniesKey, permitted)
		c.Next()
	})
	r.GET("/companies/me", h.Get)
	r.GET("/companies/:id", h.Get)
	r.PUT("/companies/:id", h.Update)
	return r
}

func TestCompanyHandler_Get(t *testing.T) {
	svc := &fakeCompanyService{
		getByIDFn: func(ctx context.Context, id string) (*company.CompanyResponse, error) {
			return &company.CompanyResponse{ID: id, Name: "Saral"}, nil
		},
	}
	r := newCompanyRouter(company.NewHandler(svc), []string{"comp-1", "comp-2"})

	t.Run("me uses token company", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/companies/me", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Ok   bool                    `json:"ok"`
			Data company.CompanyResponse `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Ok)
		assert.Equal(t, "comp-1", body.Data.ID)
	})

	t.Run("permitted sibling company", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/companies/comp-2", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("foreign company is forbidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/companies/comp-9", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestCompanyHandler_Update_ValidationError(t *testing.T) {
	svc := &fakeCompanyService{
		updateFn: func(ctx context.Context, id string, req company.UpdateCompanyRequest) (*company.CompanyResponse, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}
	r := newCompanyRouter(company.NewHandler(svc), []string{"comp-1"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/companies/comp-1", strings.NewReader(`{"email":"not-an-email"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

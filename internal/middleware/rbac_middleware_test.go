package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"saral-hr/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeRBAC struct {
	enforceFn func(req domain.EnforceRequest) (bool, error)
}

func (f *fakeRBAC) Enforce(req domain.EnforceRequest) (bool, error) {
	return f.enforceFn(req)
}

type fakeCompanyPermissions struct {
	ids []string
	err error
}

func (f *fakeCompanyPermissions) PermittedCompanies(ctx context.Context, userID, defaultCompanyID string) ([]string, error) {
	return f.ids, f.err
}

func withIdentity(c *gin.Context) {
	c.Set("user_id", "user-1")
	c.Set("employee_id", "emp-1")
	c.Set("company_id", "company-1")
	c.Next()
}

func TestRBACAuthorize(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		allowed    bool
		err        error
		wantStatus int
	}{
		{name: "allowed", allowed: true, wantStatus: http.StatusOK},
		{name: "denied", allowed: false, wantStatus: http.StatusForbidden},
		{name: "enforcer error", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got domain.EnforceRequest
			svc := &fakeRBAC{enforceFn: func(req domain.EnforceRequest) (bool, error) {
				got = req
				return tt.allowed, tt.err
			}}

			r := gin.New()
			r.GET("/attendance", withIdentity, RBACAuthorize(svc, "attendance", "read"), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/attendance", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "emp-1", got.EmployeeID)
			assert.Equal(t, "company-1", got.CompanyID)
			assert.Equal(t, "attendance", got.Resource)
			assert.Equal(t, "read", got.Action)
		})
	}
}

func TestRBACAuthorize_MissingIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeRBAC{enforceFn: func(req domain.EnforceRequest) (bool, error) {
		t.Fatal("enforce must not be called")
		return false, nil
	}}

	r := gin.New()
	r.GET("/x", RBACAuthorize(svc, "attendance", "read"), func(c *gin.Context) {})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPermittedCompanies(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("stores ids", func(t *testing.T) {
		var ids []string
		r := gin.New()
		r.GET("/x", withIdentity, PermittedCompanies(&fakeCompanyPermissions{ids: []string{"company-1", "company-2"}}), func(c *gin.Context) {
			ids = GetPermittedCompanies(c)
		})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"company-1", "company-2"}, ids)
	})

	t.Run("service error", func(t *testing.T) {
		r := gin.New()
		r.GET("/x", withIdentity, PermittedCompanies(&fakeCompanyPermissions{err: errors.New("db down")}), func(c *gin.Context) {})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("falls back to token company", func(t *testing.T) {
		var ids []string
		r := gin.New()
		r.GET("/x", withIdentity, func(c *gin.Context) { ids = GetPermittedCompanies(c) })
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

		assert.Equal(t, []string{"company-1"}, ids)
	})
}

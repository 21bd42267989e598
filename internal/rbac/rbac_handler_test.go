package rbac

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"saral-hr/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type mockService struct{}

func (m *mockService) LoadCompanyPolicy(companyID string) error { return nil }

func (m *mockService) Invalidate(companyID string) {}

func (m *mockService) Permissions(ctx context.Context, employeeID, companyID string) ([]string, error) {
	return []string{"attendance:read", companyID + ":" + employeeID}, nil
}

func (m *mockService) Enforce(req domain.EnforceRequest) (bool, error) {
	return req.Resource == "attendance" && req.Action == "read", nil
}

func (m *mockService) PermittedCompanies(ctx context.Context, userID, defaultCompanyID string) ([]string, error) {
	return []string{defaultCompanyID, "company-2"}, nil
}

func TestHandler_Enforce(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/rbac/enforce", NewHandler(&mockService{}).Enforce)

	body, _ := json.Marshal(domain.EnforceRequest{
		EmployeeID: "emp-1",
		CompanyID:  "company-1",
		Resource:   " Attendance ",
		Action:     "READ",
	})
	req := httptest.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"allowed":true`)
}

func TestHandler_Enforce_ValidationError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/rbac/enforce", NewHandler(&mockService{}).Enforce)

	req := httptest.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBufferString(`{"resource":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_PermittedCompanies(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", "company-1")
	c.Set("user_id", "user-1")
	c.Request = httptest.NewRequest(http.MethodGet, "/rbac/companies", nil)

	NewHandler(&mockService{}).PermittedCompanies(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"company_ids":["company-1","company-2"]`)
}

func TestHandler_Permissions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	withIdentity := func(c *gin.Context) {
		c.Set("company_id", "company-1")
		c.Set("employee_id", "emp-1")
		c.Next()
	}
	router := gin.New()
	router.GET("/rbac/permissions", withIdentity, NewHandler(&mockService{}).Permissions)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rbac/permissions", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"permissions":["attendance:read","company-1:emp-1"]`)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rbac/permissions?company=company-9", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

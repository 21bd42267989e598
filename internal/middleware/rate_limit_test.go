package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"saral-hr/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimitByUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", c.GetHeader("X-User"))
		c.Next()
	})
	r.GET("/search", middleware.RateLimitByUser(0, 1), func(c *gin.Context) { c.Status(http.StatusOK) })

	call := func(user string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/search", nil)
		req.Header.Set("X-User", user)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, call("u1").Code)
	w := call("u1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"RATE_LIMITED"`)
	assert.Contains(t, w.Body.String(), "Too many requests from this user")

	// limiter terpisah per user; request tanpa user tidak dibatasi
	assert.Equal(t, http.StatusOK, call("u2").Code)
	assert.Equal(t, http.StatusOK, call("").Code)
	assert.Equal(t, http.StatusOK, call("").Code)
}

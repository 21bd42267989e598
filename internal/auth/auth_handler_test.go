package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"saral-hr/internal/auth"
	autherrors "saral-hr/internal/auth/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	loginFn   func(ctx context.Context, email, password string) (auth.TokenPair, auth.AuthResponse, error)
	refreshFn func(ctx context.Context, token string) (auth.TokenPair, auth.AuthResponse, error)
	getMeFn   func(ctx context.Context, userID string) (*auth.AuthResponse, error)
}

func (f *fakeService) Login(ctx context.Context, email, password string) (auth.TokenPair, auth.AuthResponse, error) {
	return f.loginFn(ctx, email, password)
}

func (f *fakeService) RefreshToken(ctx context.Context, token string) (auth.TokenPair, auth.AuthResponse, error) {
	return f.refreshFn(ctx, token)
}

func (f *fakeService) GetMe(ctx context.Context, userID string) (*auth.AuthResponse, error) {
	return f.getMeFn(ctx, userID)
}

func setupAuthRouter(svc auth.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := auth.NewHandler(svc)
	r.POST("/login", h.Login)
	r.POST("/refresh", h.RefreshToken)
	r.POST("/logout", h.Logout)
	r.GET("/me", func(c *gin.Context) { c.Set("user_id", c.GetHeader("X-User")); c.Next() }, h.Me)
	return r
}

func TestHandler_Login(t *testing.T) {
	svc := &fakeService{
		loginFn: func(ctx context.Context, email, password string) (auth.TokenPair, auth.AuthResponse, error) {
			if password != "password123" {
				return auth.TokenPair{}, auth.AuthResponse{}, autherrors.ErrInvalidCredentials
			}
			return auth.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, auth.AuthResponse{ID: "user-1", Email: email}, nil
		},
	}
	router := setupAuthRouter(svc)

	t.Run("web client gets cookies", func(t *testing.T) {
		body, _ := json.Marshal(auth.LoginRequest{Email: "hr@example.com", Password: "password123"})
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Client-Type", "web")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		cookies := w.Result().Cookies()
		names := map[string]string{}
		for _, c := range cookies {
			names[c.Name] = c.Value
		}
		assert.Equal(t, "access", names["access_token"])
		assert.Equal(t, "refresh", names["refresh_token"])
	})

	t.Run("mobile client gets no cookies", func(t *testing.T) {
		body, _ := json.Marshal(auth.LoginRequest{Email: "hr@example.com", Password: "password123"})
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
		req.Header.Set("X-Client-Type", "mobile")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Result().Cookies())
		assert.Contains(t, w.Body.String(), `"access_token":"access"`)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		body, _ := json.Marshal(auth.LoginRequest{Email: "hr@example.com", Password: "wrong"})
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("validation error", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"email":"not-an-email"}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Input tidak valid")
	})
}

func TestHandler_RefreshToken_Body(t *testing.T) {
	svc := &fakeService{
		refreshFn: func(ctx context.Context, token string) (auth.TokenPair, auth.AuthResponse, error) {
			if token != "refresh" {
				return auth.TokenPair{}, auth.AuthResponse{}, autherrors.ErrInvalidRefreshToken
			}
			return auth.TokenPair{AccessToken: "a2", RefreshToken: "r2"}, auth.AuthResponse{ID: "user-1"}, nil
		},
	}
	router := setupAuthRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/refresh", bytes.NewBufferString(`{"refresh_token":"refresh"}`))
	req.Header.Set("X-Client-Type", "mobile")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"access_token":"a2"`)

	req = httptest.NewRequest(http.MethodPost, "/refresh", bytes.NewBufferString(`{"refresh_token":"stale"}`))
	req.Header.Set("X-Client-Type", "mobile")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandler_Me(t *testing.T) {
	svc := &fakeService{
		getMeFn: func(ctx context.Context, userID string) (*auth.AuthResponse, error) {
			return &auth.AuthResponse{ID: userID, Email: "hr@example.com"}, nil
		},
	}
	router := setupAuthRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("X-User", "user-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"user-1"`)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandler_Logout(t *testing.T) {
	router := setupAuthRouter(&fakeService{})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/logout", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	for _, c := range w.Result().Cookies() {
		assert.Equal(t, -1, c.MaxAge)
	}
}

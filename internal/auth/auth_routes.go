package auth

import (
	"saral-hr/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Login dan refresh dibatasi per IP karena belum ada identitas user.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	group := r.Group("/auth")

	group.POST("/login", middleware.RateLimitByIP(0.08, 5), handler.Login)
	group.POST("/refresh", middleware.RateLimitByIP(0.5, 5), handler.RefreshToken)
	group.POST("/logout", handler.Logout)

	authed := group.Group("", middleware.AuthMiddleware(), middleware.RateLimitByUser(2, 5))
	authed.GET("/me", handler.Me)
}

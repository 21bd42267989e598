package middleware

import (
	"saral-hr/internal/shared/apperror"
	"saral-hr/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// abortWith menulis error envelope tanpa details lalu menghentikan chain.
func abortWith(c *gin.Context, err *apperror.AppError) {
	response.Error(c, err.HTTPStatus, err.Code, err.Message, nil)
	c.Abort()
}

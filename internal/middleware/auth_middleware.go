package middleware

import (
	"fmt"
	"os"
	"strings"

	autherrors "saral-hr/internal/auth/errors"
	"saral-hr/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			abortWith(c, apperror.ErrUnauthorized.Withf("Token not found"))
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			errObj := autherrors.ErrInvalidToken
			if err != nil && strings.Contains(err.Error(), "expired") {
				errObj = autherrors.ErrTokenExpired
			}
			abortWith(c, errObj)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortWith(c, autherrors.ErrInvalidToken.Withf("Invalid token claims"))
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			abortWith(c, autherrors.ErrInvalidToken.Withf("User ID not found in token"))
			return
		}

		companyID, ok := claims["company_id"].(string)
		if !ok || companyID == "" {
			abortWith(c, autherrors.ErrInvalidToken.Withf("Company ID not found in token"))
			return
		}

		// employee_id boleh kosong untuk akun admin yang bukan karyawan;
		// RBAC memakai user_id sebagai subject pengganti.
		employeeID, _ := claims["employee_id"].(string)
		if employeeID == "" {
			employeeID = userID
		}
		role, _ := claims["role"].(string)

		c.Set("user_id", userID)
		c.Set("employee_id", employeeID)
		c.Set("company_id", companyID)
		c.Set("role", role)

		c.Next()
	}
}

func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := strings.ToUpper(c.GetString("role"))
		for _, role := range allowedRoles {
			if userRole == strings.ToUpper(role) {
				c.Next()
				return
			}
		}

		abortWith(c, autherrors.ErrForbidden)
	}
}

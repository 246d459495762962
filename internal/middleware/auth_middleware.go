package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"dayflow-hrms/internal/domain"
	"dayflow-hrms/internal/shared/apperror"
	"dayflow-hrms/internal/shared/contextutil"
	"dayflow-hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenMissing = apperror.New(apperror.CodeUnauthorized, "Token not found", http.StatusUnauthorized)
	ErrTokenInvalid = apperror.New("INVALID_TOKEN", "Invalid token", http.StatusUnauthorized)
	ErrTokenExpired = apperror.New("TOKEN_EXPIRED", "Token has expired", http.StatusUnauthorized)
)

func abortWith(c *gin.Context, err *apperror.AppError, details any) {
	response.Error(c, err.HTTPStatus, err.Code, err.Message, details)
	c.Abort()
}

// AuthMiddleware verifies an HMAC-signed access token issued by the identity
// service and exposes user_id, employee_id and role to later handlers.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
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
			abortWith(c, ErrTokenMissing, nil)
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return secret, nil
		})

		if err != nil || !token.Valid {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWith(c, ErrTokenExpired, nil)
				return
			}
			abortWith(c, ErrTokenInvalid, nil)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortWith(c, ErrTokenInvalid, "invalid token claims")
			return
		}

		userID, _ := claims["user_id"].(string)
		if userID == "" {
			abortWith(c, ErrTokenInvalid, "user_id not found in token")
			return
		}

		employeeID, _ := claims["employee_id"].(string)
		if employeeID == "" {
			abortWith(c, ErrTokenInvalid, "employee_id not found in token")
			return
		}

		role, _ := claims["role"].(string)
		if !domain.IsValidRole(role) {
			abortWith(c, ErrTokenInvalid, "role not recognised")
			return
		}

		c.Set("user_id", userID)
		c.Set("employee_id", employeeID)
		c.Set("role", role)

		c.Request = c.Request.WithContext(contextutil.WithIdentity(c.Request.Context(), contextutil.Identity{
			UserID:     userID,
			EmployeeID: employeeID,
			Role:       role,
		}))

		c.Next()
	}
}

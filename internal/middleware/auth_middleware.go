package middleware

import (
	"errors"
	"fmt"
	"os"
	"strings"

	autherrors "github.com/Sedmeq/WorkTrack/internal/auth/errors"
	"github.com/Sedmeq/WorkTrack/internal/shared/apperror"
	"github.com/Sedmeq/WorkTrack/internal/shared/contextutil"
	"github.com/Sedmeq/WorkTrack/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	ContextEmployeeID   = "employee_id"
	ContextEmployeeName = "employee_name"
)

func abortWith(c *gin.Context, e *apperror.AppError, message string) {
	if message == "" {
		message = e.Message
	}
	response.Error(c, e.HTTPStatus, e.Code, message, nil)
	c.Abort()
}

// AuthMiddleware validates the bearer token (or access_token cookie) and
// exposes the employee id claim to the rest of the chain.
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
			e := autherrors.ErrTokenNotFound
			abortWith(c, e, "")
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			e := autherrors.ErrInvalidToken
			if errors.Is(err, jwt.ErrTokenExpired) {
				e = autherrors.ErrTokenExpired
			}
			abortWith(c, e, "")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			e := autherrors.ErrInvalidToken
			abortWith(c, e, "invalid token claims")
			return
		}

		employeeID, ok := claims["employee_id"].(string)
		if !ok || employeeID == "" {
			e := autherrors.ErrInvalidToken
			abortWith(c, e, "employee id not found in token")
			return
		}
		name, _ := claims["name"].(string)

		c.Set(ContextEmployeeID, employeeID)
		c.Set(ContextEmployeeName, name)
		ctx := contextutil.WithEmployeeID(c.Request.Context(), employeeID)
		ctx = contextutil.WithLogger(ctx, contextutil.GetLogger(ctx, zap.L()).With(zap.String("employee_id", employeeID)))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/payment-tracker/backend/internal/integration/entrypoint/dto"
)

// APIKeyMiddleware authenticates external integration requests with a static
// bearer token. It is independent of user auth: external callers act on the
// whole card set, not a single household.
type APIKeyMiddleware struct {
	token string
}

// NewAPIKeyMiddleware creates a new API key middleware instance.
func NewAPIKeyMiddleware(token string) *APIKeyMiddleware {
	return &APIKeyMiddleware{
		token: token,
	}
}

// Authenticate returns a Gin middleware handler that enforces the static
// bearer token.
func (m *APIKeyMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Unauthorized",
			})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if m.token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(m.token)) != 1 {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Unauthorized",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

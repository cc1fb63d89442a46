package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Diego-Alvarez-1/ChambaInfo/pkg/helpers"
	"github.com/Diego-Alvarez-1/ChambaInfo/pkg/response"
)

// SubjectKey is the Gin context key holding the authenticated token subject.
const SubjectKey = "auth_subject"

// Authenticate inspects the Authorization header and, when it carries a
// valid bearer token, attaches the subject to the context. It never aborts:
// a missing, malformed, or expired token just leaves the request anonymous
// and lets the route decide whether that matters.
func Authenticate(tokens *helpers.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			raw := strings.TrimPrefix(header, "Bearer ")
			if claims, err := tokens.Parse(raw); err == nil {
				c.Set(SubjectKey, claims.Subject)
			}
		}
		c.Next()
	}
}

// RequireAuth rejects requests that did not authenticate.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(SubjectKey) == "" {
			response.Error[any](c, http.StatusUnauthorized, "authentication required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// Subject returns the authenticated subject for the current request.
func Subject(c *gin.Context) string {
	return c.GetString(SubjectKey)
}

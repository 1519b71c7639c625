// Package middleware provides the request gates: session authentication,
// role checks and chat rate limiting.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"personaai/internal/auth"
	"personaai/internal/models"
)

const identityKey = "identity"

// Authenticate verifies the Bearer token and stores the claims in the
// request context. Missing or invalid tokens abort with 401.
func Authenticate(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authorization header required"})
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid authorization header format"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := tokens.Validate(tokenString)
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": msg})
			return
		}

		c.Set(identityKey, claims)
		c.Next()
	}
}

// RequireRole aborts with 403 when the authenticated identity does not
// satisfy the minimum role. Must run after Authenticate.
func RequireRole(min models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := Identity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authentication required"})
			return
		}
		if !claims.Role.AtLeast(min) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "Unauthorized access"})
			return
		}
		c.Next()
	}
}

// Identity returns the authenticated claims set by Authenticate.
func Identity(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

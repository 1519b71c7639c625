package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// InviteCode gates signup behind an X-Invite-Code header. An empty
// configured code disables the gate (open signup).
func InviteCode(code string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if code == "" {
			c.Next()
			return
		}
		if c.GetHeader("X-Invite-Code") != code {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "Invalid invite code"})
			return
		}
		c.Next()
	}
}

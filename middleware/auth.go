package middleware

import (
	"net/http"
	"strings"

	"finance-api/utils"

	"github.com/gin-gonic/gin"
)

const userEmailKey = "user_email"

// AuthMiddleware validates the bearer token and stores the caller's email
// in the request context. Handlers resolve it to a user row per request so
// a token for a vanished user fails closed.
func AuthMiddleware(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing bearer token"})
			c.Abort()
			return
		}

		email, err := tokens.Parse(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(userEmailKey, email)
		c.Next()
	}
}

// GetUserEmail returns the authenticated caller's email, empty when the
// request did not pass AuthMiddleware.
func GetUserEmail(c *gin.Context) string {
	return c.GetString(userEmailKey)
}

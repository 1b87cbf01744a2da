package middleware

import (
	"net/http"
	"strings"

	"clinicbook/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware requires a verified bearer token and stores the caller's
// identity ("userID", "email") in the gin context. Identity itself is issued
// by the external provider; this only verifies the signed token.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Bearer token is empty"})
			return
		}

		uid, email, err := utils.ExtractIdentityFromToken(tokenString)
		if err != nil || uid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set("userID", uid)
		c.Set("email", email)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the caller's identity when a valid token is
// present but never rejects the request. Read paths use it to personalize
// availability without requiring login.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if uid, email, err := utils.ExtractIdentityFromToken(tokenString); err == nil && uid != "" {
				c.Set("userID", uid)
				c.Set("email", email)
			}
		}
		c.Next()
	}
}

// CallerID returns the authenticated user id from the gin context, or "".
func CallerID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

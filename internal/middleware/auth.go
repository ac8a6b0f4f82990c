package middleware

import (
	"net/http"
	"strings"

	"archway_backend/internal/auth"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the Bearer token and stores the admin identity in
// the gin context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authorization header missing or invalid"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token"})
			return
		}

		c.Set("adminID", claims.AdminID)
		c.Set("adminEmail", claims.Email)
		c.Next()
	}
}

// GetAdminID returns the authenticated admin's id from the context, or "".
func GetAdminID(c *gin.Context) string {
	adminID, exists := c.Get("adminID")
	if !exists {
		return ""
	}

	id, ok := adminID.(string)
	if !ok {
		return ""
	}

	return id
}

package middleware

import (
	"net/http"
	"strings"

	"ingcap/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JWTAuthAdminMiddleware requires a valid admin bearer token signed with secret.
// An empty secret disables the check.
func JWTAuthAdminMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		subject, err := utils.ExtractAdminSubject(secret, tokenString)
		if err != nil {
			zap.L().Warn("Admin token rejected", zap.String("ip", getClientIP(c)), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized admin access"})
			return
		}

		c.Set("adminSubject", subject)
		c.Set("isAdmin", true)
		c.Next()
	}
}

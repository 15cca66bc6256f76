package auth

import (
	"strings"

	"warbler/backend/internal/config"
	"warbler/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// OptionalAuthMiddleware inspects for a bearer token and sets the userID if present and valid,
// but does not fail if the token is missing or invalid.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				userID, err := jwt.ParseUserID([]byte(config.Get().JWTSecret), parts[1])
				if err == nil {
					c.Set(UserIDKey, userID)
				}
			}
		}
		c.Next()
	}
}

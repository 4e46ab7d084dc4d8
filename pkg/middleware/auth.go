package middleware

import (
	"net/http"
	"strings"

	"inkwell/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware requires a valid identity provider token. The requester's
// external id and profile attributes are stored on the request context.
func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := extractClaims(c, jwtService)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_name", claims.Name)
		c.Set("user_email", claims.Email)
		c.Next()
	}
}

// OptionalAuthMiddleware extracts the requester identity when a valid token
// is present but lets anonymous requests through. Viewing never requires
// identity; handlers read an empty user_id as "anonymous".
func OptionalAuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := extractClaims(c, jwtService); ok {
			c.Set("user_id", claims.UserID)
			c.Set("user_name", claims.Name)
			c.Set("user_email", claims.Email)
		}
		c.Next()
	}
}

func extractClaims(c *gin.Context, jwtService *jwt.Service) (*jwt.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := jwtService.ValidateToken(parts[1])
	if err != nil {
		return nil, false
	}

	return claims, true
}

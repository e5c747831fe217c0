package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/devfolio/devfolio-api/pkg/auth"
)

const (
	GinContextKeyOwnerID        = "ownerID"
	GinContextKeyEmailConfirmed = "emailConfirmed"
)

func AuthMiddleware(jwtSvc *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}

		claims, err := jwtSvc.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(GinContextKeyOwnerID, claims.OwnerID)
		c.Set(GinContextKeyEmailConfirmed, claims.EmailConfirmed)

		c.Next()
	}
}

// RequireConfirmedEmail gates authoring routes: accounts that have not
// confirmed their email address cannot publish.
func RequireConfirmedEmail() gin.HandlerFunc {
	return func(c *gin.Context) {
		confirmed, ok := c.Get(GinContextKeyEmailConfirmed)
		if !ok || confirmed != true {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Email address must be confirmed first"})
			return
		}
		c.Next()
	}
}

func GetOwnerIDFromGinContext(c *gin.Context) (uuid.UUID, bool) {
	ownerID, ok := c.Get(GinContextKeyOwnerID)
	if !ok {
		return uuid.Nil, false
	}
	ownerIDUUID, ok := ownerID.(uuid.UUID)
	if !ok {
		return uuid.Nil, false
	}
	return ownerIDUUID, true
}

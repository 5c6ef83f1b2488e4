package middleware

import (
	"strings"

	"roombooking/models"
	"roombooking/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const identityKey = "identity"

// IdentityMiddleware reads the host identity token when present. Requests
// without a valid token continue anonymously; nothing is rejected here.
func IdentityMiddleware(secret []byte, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if len(secret) == 0 || !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		identity, err := utils.IdentityFromToken(secret, tokenString)
		if err != nil {
			logger.Debug("Ignoring invalid identity token", zap.Error(err))
			c.Next()
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// IdentityFrom returns the identity set by IdentityMiddleware, or nil.
func IdentityFrom(c *gin.Context) *models.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	identity, _ := v.(*models.Identity)
	return identity
}

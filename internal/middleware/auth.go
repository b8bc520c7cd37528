package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/taskboard-api/internal/constants"
	apierrors "github.com/taskboard/taskboard-api/internal/errors"
	"github.com/taskboard/taskboard-api/internal/services"
	"github.com/taskboard/taskboard-api/internal/token"
)

// RequireAuth verifies the bearer token and attaches the caller identity to
// the request context. Expired tokens get a distinct error code so clients
// can re-authenticate instead of discarding the session as tampered.
func RequireAuth(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			apierrors.Unauthorized(c, "No token provided")
			c.Abort()
			return
		}

		tokenString := authHeader
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = authHeader[len("Bearer "):]
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			if errors.Is(err, token.ErrTokenExpired) {
				apierrors.TokenExpired(c)
			} else {
				apierrors.Unauthorized(c, "Invalid token")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Set(constants.ContextKeyIdentity, services.Identity{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
		})
		c.Next()
	}
}

// GetIdentity retrieves the caller identity from context
func GetIdentity(c *gin.Context) (services.Identity, bool) {
	value, exists := c.Get(constants.ContextKeyIdentity)
	if !exists {
		return services.Identity{}, false
	}

	identity, ok := value.(services.Identity)
	return identity, ok
}

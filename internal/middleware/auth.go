package middleware

import (
	"net/http"
	"strings"

	"github.com/RomanSiu/contacts-api/internal/constants"
	"github.com/RomanSiu/contacts-api/internal/dto"
	"github.com/RomanSiu/contacts-api/internal/service"
	"github.com/RomanSiu/contacts-api/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthMiddleware struct {
	auth *service.AuthService
}

func NewAuthMiddleware(auth *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// RequireAuth resolves the bearer token into the current user and stores it
// in the gin context. Any failure aborts the request with 401.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.GetLogger().Warn("Missing Authorization header",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method))
			c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse("Unauthorized", nil))
			c.Abort()
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			logger.GetLogger().Warn("Invalid Authorization header format",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method))
			c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse("Unauthorized", nil))
			c.Abort()
			return
		}

		user, err := m.auth.ResolveCurrentUser(c.Request.Context(), tokenParts[1])
		if err != nil {
			logger.GetLogger().Warn("Failed to resolve current user",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.Error(err))
			c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse("Unauthorized", nil))
			c.Abort()
			return
		}

		c.Set(constants.CtxKeyCurrentUser, user)

		logger.GetLogger().Debug("User authenticated",
			zap.Uint("user_id", user.ID),
			zap.String("email", user.Email),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method))

		c.Next()
	}
}

// CurrentUser pulls the resolved user out of the gin context. Handlers
// behind RequireAuth can rely on ok being true.
func CurrentUser(c *gin.Context) (*dto.AuthUser, bool) {
	value, exists := c.Get(constants.CtxKeyCurrentUser)
	if !exists {
		return nil, false
	}

	user, ok := value.(*dto.AuthUser)
	return user, ok
}

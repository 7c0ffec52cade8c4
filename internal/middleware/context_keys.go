package middleware

import (
	"log/slog"

	"github.com/SscSPs/social_media_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// userIDKey is the key under which the authenticated user's ID is exposed on
// the Gin context for request-level middleware such as metrics.
const userIDKey = contextKey("userID")

// SetAuthenticatedUser records the authenticated user on the Gin context and
// enriches the request logger with the user ID. Handlers keep using the
// payload returned by the Authenticator; this is only for cross-cutting
// middleware that runs after the handler.
func SetAuthenticatedUser(c *gin.Context, payload *domain.TokenPayload) {
	if payload == nil {
		return
	}
	c.Set(string(userIDKey), payload.UserID)
	logger := GetLoggerFromCtx(c.Request.Context()).With(slog.String("user_id", payload.UserID))
	c.Request = c.Request.WithContext(WithLogger(c.Request.Context(), logger))
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		return "", false
	}
	userID, ok := userIDVal.(string)
	return userID, ok
}

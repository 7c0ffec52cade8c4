package middleware

import (
	"net/http"
	"strings"

	portssvc "github.com/SscSPs/social_media_app/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that are never tracked
var pathsToSkip = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// RequestTrackingMiddleware reports successful authenticated API calls to the
// tracker, named after the route ("/users/me" -> "users_me").
func RequestTrackingMiddleware(tracker portssvc.EventTracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tracker == nil || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		// Set by handlers once the access token is verified
		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		eventName := strings.TrimPrefix(c.FullPath(), "/")
		eventName = strings.NewReplacer("/", "_", ":", "").Replace(eventName)
		if eventName == "" {
			return
		}

		tracker.Track(c.Request.Context(), userID, eventName, map[string]any{
			"method":      c.Request.Method,
			"status_code": c.Writer.Status(),
		})
	}
}

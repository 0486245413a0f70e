package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionCookieName is the cookie holding the composer session id
	SessionCookieName = "composer_session"
	// SessionHeader lets non-browser clients pin a session explicitly
	SessionHeader = "X-Session-ID"
	// SessionMaxAge is the cookie lifetime in seconds (24 hours)
	SessionMaxAge = 24 * 60 * 60

	SessionIDKey = "session_id"
)

// SessionMiddleware ensures every request carries a session id, issuing a
// cookie when the client has none.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionHeader)
		if sessionID == "" {
			if cookie, err := c.Cookie(SessionCookieName); err == nil {
				sessionID = cookie
			}
		}

		if sessionID == "" {
			sessionID = uuid.New().String()
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     SessionCookieName,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   SessionMaxAge,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		c.Set(SessionIDKey, sessionID)
		c.Next()
	}
}

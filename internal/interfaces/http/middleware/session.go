package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/session"
)

const sessionKey = "session"

// Session resolves the browser session from its cookie, issuing a new id when
// the cookie is missing or malformed, and attaches the restored state.
func Session(cfg config.SessionConfig, sessions *session.Manager, log logrus.FieldLogger) gin.HandlerFunc {
	maxAge := int(cfg.MaxAge.Seconds())

	return func(c *gin.Context) {
		id, err := c.Cookie(cfg.CookieName)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
		}

		// Refresh the cookie on every request so active sessions do not expire.
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cfg.CookieName, id, maxAge, "/", "", cfg.Secure, true)

		st, err := sessions.Get(c.Request.Context(), id)
		if err != nil {
			log.WithError(err).WithField("session_id", id).Error("Failed to restore session")
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Your cart is temporarily unavailable, please try again",
			})
			c.Abort()
			return
		}

		c.Set("session_id", id)
		c.Set(sessionKey, st)
		c.Next()
	}
}

// GetSession returns the state attached by Session
func GetSession(c *gin.Context) *session.State {
	v, _ := c.Get(sessionKey)
	st, _ := v.(*session.State)
	return st
}

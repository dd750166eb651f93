// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/pkg/auth"
)

const identityKey = "identity"

// Identity reads the backend token from x-auth-token or Authorization and,
// when it parses, attaches the shopper's identity to the request. Requests
// without a usable token continue anonymously.
func Identity(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.ExtractToken(c.GetHeader(auth.TokenHeader), c.GetHeader("Authorization"))
		if token == "" {
			c.Next()
			return
		}

		id, err := auth.ParseToken(token, time.Now())
		if err != nil {
			log.WithError(err).Debug("Ignoring unusable auth token")
			c.Set("auth_error", err)
			c.Next()
			return
		}

		c.Set(identityKey, id)
		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

// RequireIdentity rejects requests that carry no valid identity
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetIdentity(c); ok {
			c.Next()
			return
		}

		msg := "Please sign in to continue"
		if v, ok := c.Get("auth_error"); ok {
			if err, _ := v.(error); errors.Is(err, auth.ErrTokenExpired) {
				msg = "Your session has expired, please sign in again"
			}
		}

		c.JSON(http.StatusUnauthorized, gin.H{
			"error":    msg,
			"redirect": "/login",
		})
		c.Abort()
	}
}

// GetIdentity returns the identity attached by Identity
func GetIdentity(c *gin.Context) (*auth.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	id, ok := v.(*auth.Identity)
	return id, ok
}

package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/basit/filestash-backend/apperrors"
	"github.com/basit/filestash-backend/auth"
)

// UserIDKey is the gin context key holding the authenticated user's
// uuid.UUID.
const UserIDKey = "userID"

// AuthRequired resolves the X-Token header and aborts with 401 when it
// doesn't name a live session. A session store outage is 503, not 401.
func AuthRequired(guard *auth.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := guard.Authenticate(c.Request.Context(), c.GetHeader("X-Token"))
		if err != nil {
			if errors.Is(err, apperrors.ErrUnavailable) {
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Service unavailable"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// AuthOptional resolves the token when one is present. The anonymous
// data endpoint uses it: public files need no token, private ones
// re-check ownership downstream. An invalid token falls through to
// anonymous access, but a session store outage does not — "cannot
// check" must never downgrade a token holder to nobody.
func AuthOptional(guard *auth.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := c.GetHeader("X-Token"); token != "" {
			userID, err := guard.Authenticate(c.Request.Context(), token)
			switch {
			case err == nil:
				c.Set(UserIDKey, userID)
			case errors.Is(err, apperrors.ErrUnavailable):
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Service unavailable"})
				return
			}
			// Invalid token — ignore, continue unauthenticated
		}
		c.Next()
	}
}

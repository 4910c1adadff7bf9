package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/oksasatya/go-user-registration/pkg/helpers"
)

// CtxSessionIDKey holds the caller's session id in the Gin context.
const CtxSessionIDKey = "session_id"

const sessionLifetime = 30 * 24 * time.Hour

// Session makes sure every request carries a session id cookie. Unknown or
// malformed ids are replaced with a fresh UUID so clients cannot pick keys.
func Session(cookieName string, cookies *helpers.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(cookieName)
		if err != nil || uuid.Validate(sid) != nil {
			sid = uuid.NewString()
			cookies.SetSession(c, cookieName, sid, time.Now().Add(sessionLifetime))
		}
		c.Set(CtxSessionIDKey, sid)
		c.Next()
	}
}

// SessionID returns the id set by Session, or "" when the middleware did not run.
func SessionID(c *gin.Context) string {
	return c.GetString(CtxSessionIDKey)
}

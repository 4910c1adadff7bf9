package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Manager writes the cookies this service owns.
type Manager struct {
	Domain string
	Secure bool
}

func NewCookie(domain string, secure bool) *Manager {
	return &Manager{Domain: domain, Secure: secure}
}

// SetSession stores the session id cookie used to key one-time flashes.
func (m *Manager) SetSession(c *gin.Context, name, sessionID string, exp time.Time) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, sessionID, maxAgeFrom(exp), "/", m.Domain, m.Secure, true)
}

func maxAgeFrom(exp time.Time) int {
	sec := int(time.Until(exp).Seconds())
	if sec < 0 {
		return 0
	}
	return sec
}

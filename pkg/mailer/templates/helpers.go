package templates

import (
	"strings"
	"time"

	"github.com/oksasatya/go-user-registration/config"
)

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithUsername(username string) Option {
	return func(d *EmailData) { d.Username = username }
}

func WithLoginURL(url string) Option {
	return func(d *EmailData) {
		if s := strings.TrimSpace(url); s != "" {
			d.LoginURL = s
		}
	}
}

func fullName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

// NewWelcomeData builds the data for the welcome email sent after registration.
func NewWelcomeData(cfg *config.Config, firstName, lastName, email string, opts ...Option) map[string]any {
	d := EmailData{
		Name:           fullName(firstName, lastName),
		Email:          email,
		RecipientEmail: email,
		Type:           Welcome,
	}
	if cfg != nil {
		d.AppName = cfg.AppName
		d.CompanyName = cfg.CompanyName
		d.SupportURL = cfg.SupportURL
		d.LoginURL = cfg.LoginURL
	}
	for _, o := range opts {
		o(&d)
	}
	return ToMap(d)
}

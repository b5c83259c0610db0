// internal/app/bootstrap/appconfig.go
package bootstrap

import (
	"time"

	statusfeature "github.com/dalemusser/stratametrics/internal/app/features/status"
	"github.com/dalemusser/stratametrics/internal/app/system/prefs"
)

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// Values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers the
// framework side: ports, TLS, logging, CORS, body limits.
type AppConfig struct {
	// Analytics backend
	APIBaseURL      string        // REST backend base URL (e.g., http://localhost:5000/api)
	APITimeout      time.Duration // transport timeout per backend request; 0 disables
	APIMaxIdleConns int           // idle connections kept per backend host
	ProbeInterval   time.Duration // how often the backend probe job runs

	// Default panel windows; viewers can override them on /preferences
	VolumeDays        int
	ActivityDays      int
	MarketDays        int
	GasDays           int
	TopProtocolsLimit int

	// Branding
	SiteName   string
	FooterHTML string // sanitized before display

	// Preferences cookie
	SessionKey    string        // signing key (must be strong in production)
	SessionName   string        // cookie name
	SessionMaxAge time.Duration // cookie lifetime

	// CSRF protection for the preferences form
	CSRFKey string

	// Server-side timeouts
	PingTimeout    time.Duration // health checks and backend probes
	RequestTimeout time.Duration // whole inbound request
}

// PanelDefaults returns the configured panel windows as preferences.
func (c AppConfig) PanelDefaults() prefs.Preferences {
	return prefs.Preferences{
		VolumeDays:   c.VolumeDays,
		ActivityDays: c.ActivityDays,
		MarketDays:   c.MarketDays,
		GasDays:      c.GasDays,
		TopLimit:     c.TopProtocolsLimit,
	}
}

// StatusSettings returns the values shown on the status page.
func (c AppConfig) StatusSettings() statusfeature.Settings {
	return statusfeature.Settings{
		APIBaseURL:        c.APIBaseURL,
		APITimeout:        c.APITimeout,
		APIMaxIdleConns:   c.APIMaxIdleConns,
		ProbeInterval:     c.ProbeInterval,
		VolumeDays:        c.VolumeDays,
		ActivityDays:      c.ActivityDays,
		MarketDays:        c.MarketDays,
		GasDays:           c.GasDays,
		TopProtocolsLimit: c.TopProtocolsLimit,
		SessionKey:        c.SessionKey,
		SessionName:       c.SessionName,
		SessionMaxAge:     c.SessionMaxAge,
		CSRFKey:           c.CSRFKey,
	}
}

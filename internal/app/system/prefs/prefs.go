// Package prefs stores per-browser dashboard preferences (time windows and
// the top-protocols limit) in a signed cookie session.
package prefs

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/stratametrics/internal/app/system/inputval"
	"github.com/dalemusser/stratametrics/internal/app/system/network"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// Preferences are the knobs a viewer can change. Zero values are never
// stored; Load fills them from the configured defaults.
type Preferences struct {
	VolumeDays   int `form:"volume_days" validate:"daywindow" label:"Transaction volume window"`
	ActivityDays int `form:"activity_days" validate:"daywindow" label:"User activity window"`
	MarketDays   int `form:"market_days" validate:"daywindow" label:"Market performance window"`
	GasDays      int `form:"gas_days" validate:"daywindow" label:"Gas analysis window"`
	TopLimit     int `form:"top_limit" validate:"min=1,max=50" label:"Top protocols shown"`
}

// Validate checks every field.
func (p Preferences) Validate() *inputval.Result {
	return inputval.Validate(p)
}

// orDefault replaces non-positive fields with the matching default.
func (p Preferences) orDefault(def Preferences) Preferences {
	if p.VolumeDays <= 0 {
		p.VolumeDays = def.VolumeDays
	}
	if p.ActivityDays <= 0 {
		p.ActivityDays = def.ActivityDays
	}
	if p.MarketDays <= 0 {
		p.MarketDays = def.MarketDays
	}
	if p.GasDays <= 0 {
		p.GasDays = def.GasDays
	}
	if p.TopLimit <= 0 {
		p.TopLimit = def.TopLimit
	}
	return p
}

// session value keys
const (
	keyVolumeDays   = "volume_days"
	keyActivityDays = "activity_days"
	keyMarketDays   = "market_days"
	keyGasDays      = "gas_days"
	keyTopLimit     = "top_limit"
)

// Manager reads and writes preferences. Use NewManager to create one.
type Manager struct {
	store    *sessions.CookieStore
	name     string
	defaults Preferences
	logger   *zap.Logger
}

// ConfigError is returned when the session configuration is unusable.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// NewManager creates a Manager.
//
// Parameters:
//   - key: signing key for the cookie (at least 32 chars in production)
//   - name: cookie name
//   - maxAge: cookie lifetime
//   - secure: mark the cookie Secure (HTTPS deployments)
//   - defaults: values used for anything the viewer has not set
//
// In secure mode a short or placeholder key is rejected.
func NewManager(key, name string, maxAge time.Duration, secure bool, defaults Preferences, logger *zap.Logger) (*Manager, error) {
	if key == "" {
		return nil, &ConfigError{Message: "session key is empty; provide ≥32 random chars"}
	}
	weak := len(key) < 32 || isPlaceholderKey(key)
	if weak && secure {
		return nil, &ConfigError{Message: "session key is too weak for production; provide ≥32 random chars (not the default dev key)"}
	}
	if weak {
		logger.Warn("session key is weak; 32+ random chars required in production",
			zap.Int("length", len(key)))
	}
	if res := defaults.Validate(); res.HasErrors() {
		return nil, &ConfigError{Message: "invalid default preferences: " + res.All()}
	}
	if name == "" {
		name = "stratametrics-prefs"
	}

	store := sessions.NewCookieStore([]byte(key))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{store: store, name: name, defaults: defaults, logger: logger}, nil
}

// Load returns the viewer's preferences. A missing, expired, or tampered
// cookie yields the defaults.
func (m *Manager) Load(r *http.Request) Preferences {
	sess, err := m.store.Get(r, m.name)
	if err != nil {
		m.logSessionError(r, err)
	}

	p := Preferences{
		VolumeDays:   getInt(sess, keyVolumeDays),
		ActivityDays: getInt(sess, keyActivityDays),
		MarketDays:   getInt(sess, keyMarketDays),
		GasDays:      getInt(sess, keyGasDays),
		TopLimit:     getInt(sess, keyTopLimit),
	}
	p = p.orDefault(m.defaults)

	// A cookie signed with our key but holding out-of-range values (older
	// limits) falls back to defaults as a whole.
	if p.Validate().HasErrors() {
		return m.defaults
	}
	return p
}

// Save validates p and writes it to the cookie.
func (m *Manager) Save(w http.ResponseWriter, r *http.Request, p Preferences) error {
	if err := p.Validate().Err(); err != nil {
		return err
	}
	sess, err := m.store.Get(r, m.name)
	if err != nil {
		m.logSessionError(r, err)
	}
	sess.Values[keyVolumeDays] = p.VolumeDays
	sess.Values[keyActivityDays] = p.ActivityDays
	sess.Values[keyMarketDays] = p.MarketDays
	sess.Values[keyGasDays] = p.GasDays
	sess.Values[keyTopLimit] = p.TopLimit
	return sess.Save(r, w)
}

// Reset clears the cookie so the defaults apply again.
func (m *Manager) Reset(w http.ResponseWriter, r *http.Request) error {
	sess, err := m.store.Get(r, m.name)
	if err != nil {
		m.logSessionError(r, err)
	}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

type ctxKey struct{}

// Middleware loads preferences once per request and stores them in the
// request context for FromContext.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := m.Load(r)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, p)))
	})
}

// FromContext returns the preferences stored by Middleware, or def when the
// middleware did not run.
func FromContext(ctx context.Context, def Preferences) Preferences {
	if p, ok := ctx.Value(ctxKey{}).(Preferences); ok {
		return p
	}
	return def
}

func getInt(s *sessions.Session, key string) int {
	if s == nil {
		return 0
	}
	v, _ := s.Values[key].(int)
	return v
}

// logSessionError logs a cookie decode failure at a level matching its cause.
func (m *Manager) logSessionError(r *http.Request, err error) {
	msg := strings.ToLower(err.Error())
	scErr, ok := err.(securecookie.Error)
	switch {
	case ok && !scErr.IsDecode():
		m.logger.Error("preferences cookie store error", zap.Error(err))
	case strings.Contains(msg, "expired timestamp"):
		m.logger.Debug("preferences cookie expired", zap.String("path", r.URL.Path))
	case strings.Contains(msg, "mac") || strings.Contains(msg, "hash"):
		m.logger.Warn("preferences cookie MAC validation failed (possible tampering)",
			zap.String("path", r.URL.Path),
			network.Field(r))
	default:
		m.logger.Info("preferences cookie unreadable, using defaults",
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
}

// isPlaceholderKey reports keys that look like shipped defaults.
func isPlaceholderKey(key string) bool {
	lower := strings.ToLower(key)
	for _, p := range []string{"dev-only", "change-me", "placeholder", "default", "example", "insecure"} {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

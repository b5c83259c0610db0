// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/stratametrics/internal/app/system/apiclient"
	"github.com/dalemusser/stratametrics/internal/app/system/inputval"
	"github.com/dalemusser/stratametrics/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// EnvVarPrefix is the prefix for environment variables.
const EnvVarPrefix = "STRATAMETRICS"

// appConfigKeys defines the configuration keys for this application.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: api_base_url, volume_days, etc.
//   - Environment variables: STRATAMETRICS_API_BASE_URL, STRATAMETRICS_VOLUME_DAYS, etc.
//   - Command-line flags: --api_base_url, --volume_days, etc.
var appConfigKeys = []config.AppKey{
	// Analytics backend
	{Name: "api_base_url", Default: apiclient.DefaultBaseURL, Desc: "Analytics REST backend base URL"},
	{Name: "api_timeout", Default: "30s", Desc: "Per-request timeout for backend calls (0 disables)"},
	{Name: "api_max_idle_conns", Default: 16, Desc: "Idle connections kept per backend host"},
	{Name: "probe_interval", Default: "1m", Desc: "Backend reachability probe interval"},

	// Panel windows
	{Name: "volume_days", Default: 30, Desc: "Default transaction volume window (days)"},
	{Name: "activity_days", Default: 30, Desc: "Default user activity window (days)"},
	{Name: "market_days", Default: 14, Desc: "Default market performance window (days)"},
	{Name: "gas_days", Default: 30, Desc: "Default gas analysis window (days)"},
	{Name: "top_protocols_limit", Default: 8, Desc: "Default number of top protocols shown"},

	// Branding
	{Name: "site_name", Default: viewdata.DefaultSiteName, Desc: "Name shown in the header"},
	{Name: "footer_html", Default: "", Desc: "Footer HTML (sanitized; links and basic formatting only)"},

	// Preferences cookie
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Preferences cookie signing key (must be strong in production)"},
	{Name: "session_name", Default: "stratametrics-prefs", Desc: "Preferences cookie name"},
	{Name: "session_max_age", Default: "720h", Desc: "Preferences cookie max age (e.g., 24h, 720h)"},

	{Name: "csrf_key", Default: "dev-only-csrf-key-please-change-0123456789", Desc: "CSRF token signing key (32+ chars in production)"},

	// Timeouts
	{Name: "ping_timeout", Default: "2s", Desc: "Timeout for health checks and backend probes"},
	{Name: "request_timeout", Default: "60s", Desc: "Upper bound for handling one inbound request"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config.yaml/json/toml
// files, environment variables (WAFFLE_* for core, STRATAMETRICS_* for app),
// and command-line flags, merged with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, EnvVarPrefix, appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		APIBaseURL:      appValues.String("api_base_url"),
		APITimeout:      appValues.Duration("api_timeout", 30*time.Second),
		APIMaxIdleConns: appValues.Int("api_max_idle_conns"),
		ProbeInterval:   appValues.Duration("probe_interval", time.Minute),

		VolumeDays:        appValues.Int("volume_days"),
		ActivityDays:      appValues.Int("activity_days"),
		MarketDays:        appValues.Int("market_days"),
		GasDays:           appValues.Int("gas_days"),
		TopProtocolsLimit: appValues.Int("top_protocols_limit"),

		SiteName:   appValues.String("site_name"),
		FooterHTML: appValues.String("footer_html"),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionMaxAge: appValues.Duration("session_max_age", 720*time.Hour),

		CSRFKey: appValues.String("csrf_key"),

		PingTimeout:    appValues.Duration("ping_timeout", 2*time.Second),
		RequestTimeout: appValues.Duration("request_timeout", 60*time.Second),
	}

	return coreCfg, appCfg, nil
}

// configInput is the validated subset of AppConfig, reported under the
// config key names.
type configInput struct {
	APIBaseURL        string `json:"api_base_url" validate:"httpurl"`
	APIMaxIdleConns   int    `json:"api_max_idle_conns" validate:"gte=0"`
	VolumeDays        int    `json:"volume_days" validate:"daywindow"`
	ActivityDays      int    `json:"activity_days" validate:"daywindow"`
	MarketDays        int    `json:"market_days" validate:"daywindow"`
	GasDays           int    `json:"gas_days" validate:"daywindow"`
	TopProtocolsLimit int    `json:"top_protocols_limit" validate:"min=1,max=50"`
	SessionName       string `json:"session_name" validate:"required"`
	CSRFKey           string `json:"csrf_key" validate:"required"`
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	in := configInput{
		APIBaseURL:        appCfg.APIBaseURL,
		APIMaxIdleConns:   appCfg.APIMaxIdleConns,
		VolumeDays:        appCfg.VolumeDays,
		ActivityDays:      appCfg.ActivityDays,
		MarketDays:        appCfg.MarketDays,
		GasDays:           appCfg.GasDays,
		TopProtocolsLimit: appCfg.TopProtocolsLimit,
		SessionName:       appCfg.SessionName,
		CSRFKey:           appCfg.CSRFKey,
	}

	var errs []error
	if res := inputval.Validate(in); res.HasErrors() {
		errs = append(errs, res.Err())
	}
	if appCfg.APITimeout < 0 {
		errs = append(errs, errors.New("api_timeout must not be negative"))
	}
	if appCfg.ProbeInterval <= 0 {
		errs = append(errs, errors.New("probe_interval must be positive"))
	}
	if appCfg.SessionMaxAge <= 0 {
		errs = append(errs, errors.New("session_max_age must be positive"))
	}

	if err := errors.Join(errs...); err != nil {
		logger.Error("invalid configuration", zap.Error(err))
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

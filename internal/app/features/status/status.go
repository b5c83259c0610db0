// internal/app/features/status/status.go
package status

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/stratametrics/internal/app/system/apiclient"
	"github.com/dalemusser/stratametrics/internal/app/system/timeouts"
	"github.com/dalemusser/stratametrics/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

var startTime = time.Now()

// Pinger checks the analytics backend. *apiclient.Client satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Settings is the part of the app configuration shown on the status page.
type Settings struct {
	APIBaseURL      string
	APITimeout      time.Duration
	APIMaxIdleConns int
	ProbeInterval   time.Duration

	VolumeDays        int
	ActivityDays      int
	MarketDays        int
	GasDays           int
	TopProtocolsLimit int

	SessionKey    string
	SessionName   string
	SessionMaxAge time.Duration
	CSRFKey       string
}

// Handler serves the operator status page.
type Handler struct {
	backend  Pinger
	layout   viewdata.Layout
	coreCfg  *config.CoreConfig
	settings Settings
	logger   *zap.Logger
}

// NewHandler creates a new status Handler. coreCfg may be nil.
func NewHandler(backend Pinger, layout viewdata.Layout, coreCfg *config.CoreConfig, settings Settings, logger *zap.Logger) *Handler {
	return &Handler{
		backend:  backend,
		layout:   layout,
		coreCfg:  coreCfg,
		settings: settings,
		logger:   logger,
	}
}

// Routes returns a chi.Router with status routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Serve)
	return r
}

// ConfigItem is one configuration value for display.
type ConfigItem struct {
	Name  string
	Value string
}

// ConfigGroup is a titled group of configuration values.
type ConfigGroup struct {
	Name  string
	Items []ConfigItem
}

// StatusVM is the view model for the status page.
type StatusVM struct {
	viewdata.BaseVM

	BackendURL    string
	BackendUp     bool
	BackendKind   string // failure kind when down
	BackendError  string
	BackendPingMS int64
	GoVersion     string
	Uptime        string
	NumGoroutine  int
	MemAlloc      string
	ConfigGroups  []ConfigGroup
}

// Serve handles GET /status.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	vm := StatusVM{
		BaseVM:       viewdata.New(r, h.layout, "System Status"),
		BackendURL:   h.settings.APIBaseURL,
		GoVersion:    runtime.Version(),
		Uptime:       formatUptime(time.Since(startTime)),
		NumGoroutine: runtime.NumGoroutine(),
		ConfigGroups: h.configGroups(),
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	vm.MemAlloc = formatMiB(m.Alloc)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Ping(), h.logger, "status ping")
	defer cancel()

	start := time.Now()
	if err := h.backend.Ping(ctx); err != nil {
		vm.BackendKind = apiclient.KindOf(err)
		vm.BackendError = err.Error()
		h.logger.Warn("status page: backend ping failed",
			zap.String("kind", vm.BackendKind),
			zap.Error(err))
	} else {
		vm.BackendUp = true
		vm.BackendPingMS = time.Since(start).Milliseconds()
	}

	templates.Render(w, r, "status/show", vm)
}

func (h *Handler) configGroups() []ConfigGroup {
	s := h.settings
	itoa := strconv.Itoa

	var groups []ConfigGroup
	if h.coreCfg != nil {
		groups = append(groups, ConfigGroup{
			Name: "Environment",
			Items: []ConfigItem{
				{Name: "env", Value: h.coreCfg.Env},
				{Name: "log_level", Value: h.coreCfg.LogLevel},
			},
		})
	}

	return append(groups,
		ConfigGroup{
			Name: "Analytics Backend",
			Items: []ConfigItem{
				{Name: "api_base_url", Value: s.APIBaseURL},
				{Name: "api_timeout", Value: s.APITimeout.String()},
				{Name: "api_max_idle_conns", Value: itoa(s.APIMaxIdleConns)},
				{Name: "probe_interval", Value: s.ProbeInterval.String()},
			},
		},
		ConfigGroup{
			Name: "Panel Windows",
			Items: []ConfigItem{
				{Name: "volume_days", Value: itoa(s.VolumeDays)},
				{Name: "activity_days", Value: itoa(s.ActivityDays)},
				{Name: "market_days", Value: itoa(s.MarketDays)},
				{Name: "gas_days", Value: itoa(s.GasDays)},
				{Name: "top_protocols_limit", Value: itoa(s.TopProtocolsLimit)},
			},
		},
		ConfigGroup{
			Name: "Preferences Cookie",
			Items: []ConfigItem{
				{Name: "session_key", Value: mask(s.SessionKey)},
				{Name: "session_name", Value: s.SessionName},
				{Name: "session_max_age", Value: s.SessionMaxAge.String()},
				{Name: "csrf_key", Value: mask(s.CSRFKey)},
			},
		},
		ConfigGroup{
			Name: "Timeouts",
			Items: []ConfigItem{
				{Name: "ping_timeout", Value: timeouts.Ping().String()},
				{Name: "request_timeout", Value: timeouts.Request().String()},
			},
		},
	)
}

// mask keeps the first and last two characters of a secret.
func mask(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}

// formatUptime renders whole days then the remainder to the minute,
// e.g. "2d 3h5m0s".
func formatUptime(d time.Duration) string {
	const day = 24 * time.Hour
	days := int(d / day)
	rest := (d % day).Truncate(time.Minute)
	if days > 0 {
		return fmt.Sprintf("%dd %s", days, rest)
	}
	return rest.String()
}

func formatMiB(b uint64) string {
	return fmt.Sprintf("%.1f MiB", float64(b)/(1<<20))
}

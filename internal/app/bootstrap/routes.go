// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	dashboardfeature "github.com/dalemusser/stratametrics/internal/app/features/dashboard"
	errorsfeature "github.com/dalemusser/stratametrics/internal/app/features/errors"
	healthfeature "github.com/dalemusser/stratametrics/internal/app/features/health"
	preferencesfeature "github.com/dalemusser/stratametrics/internal/app/features/preferences"
	statusfeature "github.com/dalemusser/stratametrics/internal/app/features/status"
	appresources "github.com/dalemusser/stratametrics/internal/app/resources"
	"github.com/dalemusser/stratametrics/internal/app/system/metrics"
	"github.com/dalemusser/stratametrics/internal/app/system/network"
	"github.com/dalemusser/stratametrics/internal/app/system/palette"
	"github.com/dalemusser/stratametrics/internal/app/system/prefs"
	"github.com/dalemusser/stratametrics/internal/app/system/timeouts"
	"github.com/dalemusser/stratametrics/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, backend setup, and Startup have
// completed. Routes:
//   - /dashboard: the dashboard page, its per-panel fragments, and /dashboard/data
//   - /preferences: per-viewer panel windows (cookie backed, CSRF protected)
//   - /status: operator view of backend reachability, runtime, and config
//   - /health, /ready, /live: probes
//   - /metrics: Prometheus exposition
//   - /assets/*: embedded CSS and JS
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	dev := coreCfg.Env == "dev"

	defaults := appCfg.PanelDefaults()
	prefsMgr, err := prefs.NewManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionMaxAge, secure, defaults, logger)
	if err != nil {
		logger.Error("preferences manager init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading.
	eng := templates.New(dev)
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	layout := viewdata.NewLayout(appCfg.SiteName, appCfg.FooterHTML)
	if err := layout.Validate(); err != nil {
		logger.Error("layout is invalid", zap.Error(err))
		return nil, err
	}

	errLog := errorsfeature.NewErrorLogger(logger)
	errHandler := errorsfeature.NewHandler(layout)

	r := chi.NewRouter()

	// ─────────────────────────────────────────────────────────────────────────────
	// Global Middleware (applies to ALL routes)
	// ─────────────────────────────────────────────────────────────────────────────

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)

	// Request timeout middleware: prevents requests from hanging indefinitely.
	// Panel loads end with the request, so this also bounds them.
	r.Use(chimw.Timeout(timeouts.Request()))

	// CORS middleware: must be early in the chain to handle preflight requests.
	r.Use(middleware.CORSFromConfig(coreCfg))

	// Security headers middleware: adds X-Frame-Options, X-Content-Type-Options, etc.
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	// CSRF protection for the preferences forms. Safe methods pass through.
	csrfOpts := []csrf.Option{
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.CookieName("stratametrics_csrf"),
		csrf.FieldName("csrf_token"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			logger.Warn("CSRF validation failed",
				zap.String("path", req.URL.Path),
				zap.String("method", req.Method),
				network.Field(req),
				zap.String("reason", csrf.FailureReason(req).Error()),
			)
			if req.Header.Get("HX-Request") == "true" {
				w.Header().Set("HX-Redirect", "/preferences")
				w.WriteHeader(http.StatusForbidden)
				return
			}
			http.Error(w, "CSRF token invalid or missing", http.StatusForbidden)
		})),
	}
	// In dev mode, trust localhost origins for CSRF validation.
	if !secure {
		csrfOpts = append(csrfOpts, csrf.TrustedOrigins([]string{
			"localhost:8080",
			"localhost:3000",
			"127.0.0.1:8080",
			"127.0.0.1:3000",
		}))
	}
	r.Use(csrf.Protect([]byte(appCfg.CSRFKey), csrfOpts...))

	// ─────────────────────────────────────────────────────────────────────────────
	// Infrastructure
	// ─────────────────────────────────────────────────────────────────────────────

	healthHandler := healthfeature.NewHandler(deps.API, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	healthfeature.MountRootEndpoints(r, healthHandler)

	r.Handle("/metrics", metrics.Handler())

	// Embedded CSS/JS (panel renderer, layout styles).
	r.Handle("/assets/*", appresources.AssetsHandler("/assets", dev))

	// ─────────────────────────────────────────────────────────────────────────────
	// Pages
	// ─────────────────────────────────────────────────────────────────────────────

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/dashboard", http.StatusSeeOther)
	})

	dashboardHandler := dashboardfeature.NewHandler(deps.API.Dashboard(), layout, palette.Defaults(), defaults, errHandler, logger)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, prefsMgr))

	prefsHandler := preferencesfeature.NewHandler(prefsMgr, layout, errLog, logger)
	r.Route("/preferences", func(sr chi.Router) {
		prefsHandler.MountRoutes(sr)
	})

	statusHandler := statusfeature.NewHandler(deps.API, layout, coreCfg, appCfg.StatusSettings(), logger)
	r.Mount("/status", statusfeature.Routes(statusHandler))

	r.NotFound(errHandler.NotFound)
	r.MethodNotAllowed(errHandler.MethodNotAllowed)

	return r, nil
}

// internal/app/features/dashboard/dashboard.go
package dashboard

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	errorsfeature "github.com/dalemusser/stratametrics/internal/app/features/errors"
	"github.com/dalemusser/stratametrics/internal/app/system/jsonutil"
	"github.com/dalemusser/stratametrics/internal/app/system/palette"
	"github.com/dalemusser/stratametrics/internal/app/system/panel"
	"github.com/dalemusser/stratametrics/internal/app/system/prefs"
	"github.com/dalemusser/stratametrics/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Handler provides dashboard handlers.
type Handler struct {
	src      Source
	layout   viewdata.Layout
	pal      palette.Set
	defaults prefs.Preferences
	errs     *errorsfeature.Handler
	logger   *zap.Logger
}

// NewHandler creates a new dashboard Handler. Unknown panels get errs's
// 404 page.
func NewHandler(src Source, layout viewdata.Layout, pal palette.Set, defaults prefs.Preferences, errs *errorsfeature.Handler, logger *zap.Logger) *Handler {
	return &Handler{
		src:      src,
		layout:   layout,
		pal:      pal,
		defaults: defaults,
		errs:     errs,
		logger:   logger,
	}
}

// DashboardVM is the view model for the dashboard page. Every panel starts
// in its loading state; the browser then fetches each card separately.
type DashboardVM struct {
	viewdata.BaseVM
	Summary View
	Rows    [][]View
	Prefs   prefs.Preferences
}

// Routes returns a chi.Router with dashboard routes mounted.
func Routes(h *Handler, pm *prefs.Manager) http.Handler {
	r := chi.NewRouter()
	r.Use(pm.Middleware)
	r.Get("/", h.showDashboard)
	r.Get("/data", h.serveData)
	r.Get("/panels/{name}", h.servePanel)
	return r
}

func (h *Handler) env(r *http.Request) env {
	return env{
		src:    h.src,
		pal:    h.pal,
		prefs:  prefs.FromContext(r.Context(), h.defaults),
		logger: h.logger,
	}
}

// showDashboard renders the page shell with every panel loading.
func (h *Handler) showDashboard(w http.ResponseWriter, r *http.Request) {
	vm := DashboardVM{
		BaseVM: viewdata.New(r, h.layout, "Dashboard"),
		Prefs:  prefs.FromContext(r.Context(), h.defaults),
	}

	var charts []View
	for _, d := range definitions {
		if d.name == PanelSummary {
			vm.Summary = d.loadingView(h.pal)
			continue
		}
		charts = append(charts, d.loadingView(h.pal))
	}
	vm.Rows = pairs(charts)

	templates.Render(w, r, "dashboard/index", vm)
}

// servePanel loads one panel for the request's lifetime and renders its
// card, or its JSON form when the name ends in ".json".
//
// The request context is the panel lifetime: if the browser goes away
// before the backend answers, the load is cancelled and nothing is written.
func (h *Handler) servePanel(w http.ResponseWriter, r *http.Request) {
	name, asJSON := strings.CutSuffix(chi.URLParam(r, "name"), ".json")

	d, ok := lookup(name)
	if !ok {
		if asJSON {
			jsonutil.NotFound(w, "unknown panel")
			return
		}
		h.errs.NotFound(w, r)
		return
	}

	v, data := d.render(r.Context(), h.env(r))
	if v.State == panel.Loading {
		h.logger.Debug("panel request ended before the panel settled",
			zap.String("panel", name),
			zap.Error(r.Context().Err()))
		return
	}

	if asJSON {
		jsonutil.OK(w, toResult(v, data))
		return
	}
	templates.RenderSnippet(w, "dashboard_panel", v)
}

// DataResponse is the body of GET /dashboard/data.
type DataResponse struct {
	Panels []Result `json:"panels"`
}

// serveData mounts every panel concurrently, waits for each to settle, and
// reports per-panel state. One failing panel never affects the others; only
// the request ending stops the group, and then nothing is written.
func (h *Handler) serveData(w http.ResponseWriter, r *http.Request) {
	e := h.env(r)
	results := make([]Result, len(definitions))

	g, ctx := errgroup.WithContext(r.Context())
	for i, d := range definitions {
		g.Go(func() error {
			v, data := d.render(ctx, e)
			if v.State == panel.Loading {
				return fmt.Errorf("panel %s did not settle: %w", d.name, context.Cause(ctx))
			}
			results[i] = toResult(v, data)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		h.logger.Debug("dashboard data request ended early", zap.Error(err))
		return
	}

	jsonutil.OK(w, DataResponse{Panels: results})
}

func toResult(v View, data any) Result {
	return Result{Name: v.Name, Title: v.Title, State: v.State, Data: data, Chart: v.Chart}
}

// pairs splits views into rows of two for the chart grid.
func pairs(views []View) [][]View {
	var rows [][]View
	for i := 0; i < len(views); i += 2 {
		end := min(i+2, len(views))
		rows = append(rows, views[i:end])
	}
	return rows
}

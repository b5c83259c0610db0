// internal/app/features/preferences/preferences.go
package preferences

import (
	"net/http"
	"strconv"
	"strings"

	errorsfeature "github.com/dalemusser/stratametrics/internal/app/features/errors"
	"github.com/dalemusser/stratametrics/internal/app/system/prefs"
	"github.com/dalemusser/stratametrics/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler provides the dashboard preferences form.
type Handler struct {
	prefs  *prefs.Manager
	layout viewdata.Layout
	errLog *errorsfeature.ErrorLogger
	logger *zap.Logger
}

// NewHandler creates a new preferences Handler.
func NewHandler(pm *prefs.Manager, layout viewdata.Layout, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		prefs:  pm,
		layout: layout,
		errLog: errLog,
		logger: logger,
	}
}

// Field is one number input on the form.
type Field struct {
	Name  string
	Label string
	Value string
	Min   int
	Max   int
	Error string
}

// PreferencesVM is the view model for the preferences page.
type PreferencesVM struct {
	viewdata.BaseVM
	Fields  []Field
	Success string
	Error   string
}

// MountRoutes mounts preferences routes on the given router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.show)
	r.Post("/", h.update)
	r.Post("/reset", h.reset)
}

// show displays the current preferences.
func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	p := h.prefs.Load(r)

	vm := PreferencesVM{
		BaseVM: viewdata.New(r, h.layout, "Dashboard Preferences"),
		Fields: fieldsFor(formValues(p), nil),
	}
	switch r.URL.Query().Get("success") {
	case "saved":
		vm.Success = "Preferences saved."
	case "reset":
		vm.Success = "Preferences reset to defaults."
	}

	templates.Render(w, r, "preferences/show", vm)
}

// update validates and saves the submitted preferences.
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderWithErrors(w, r, http.StatusBadRequest, nil, nil, "Invalid form submission.")
		return
	}

	values := make(map[string]string, len(formFields))
	for _, f := range formFields {
		values[f.name] = strings.TrimSpace(r.PostForm.Get(f.name))
	}

	p, fieldErrs := parse(values)
	if len(fieldErrs) == 0 {
		if res := p.Validate(); res.HasErrors() {
			fieldErrs = res.ByField()
		}
	}
	if len(fieldErrs) > 0 {
		h.renderWithErrors(w, r, http.StatusUnprocessableEntity, values, fieldErrs, "Please fix the highlighted fields.")
		return
	}

	if err := h.prefs.Save(w, r, p); err != nil {
		h.errLog.Log(r, "failed to save preferences", err)
		h.renderWithErrors(w, r, http.StatusInternalServerError, values, nil, "Failed to save preferences.")
		return
	}

	h.logger.Info("dashboard preferences saved",
		zap.Int("volume_days", p.VolumeDays),
		zap.Int("activity_days", p.ActivityDays),
		zap.Int("market_days", p.MarketDays),
		zap.Int("gas_days", p.GasDays),
		zap.Int("top_limit", p.TopLimit))

	http.Redirect(w, r, "/preferences?success=saved", http.StatusSeeOther)
}

// reset clears the preferences cookie.
func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	if err := h.prefs.Reset(w, r); err != nil {
		h.errLog.Log(r, "failed to reset preferences", err)
		h.renderWithErrors(w, r, http.StatusInternalServerError, nil, nil, "Failed to reset preferences.")
		return
	}
	http.Redirect(w, r, "/preferences?success=reset", http.StatusSeeOther)
}

// renderWithErrors re-renders the form with the submitted values. A nil
// values map shows the stored preferences instead.
func (h *Handler) renderWithErrors(w http.ResponseWriter, r *http.Request, status int, values, fieldErrs map[string]string, errMsg string) {
	if values == nil {
		values = formValues(h.prefs.Load(r))
	}
	vm := PreferencesVM{
		BaseVM: viewdata.New(r, h.layout, "Dashboard Preferences"),
		Fields: fieldsFor(values, fieldErrs),
		Error:  errMsg,
	}

	w.WriteHeader(status)
	templates.Render(w, r, "preferences/show", vm)
}

type formField struct {
	name  string
	label string
	min   int
	max   int
	get   func(prefs.Preferences) int
	set   func(*prefs.Preferences, int)
}

var formFields = []formField{
	{"volume_days", "Transaction volume window (days)", 1, 365,
		func(p prefs.Preferences) int { return p.VolumeDays }, func(p *prefs.Preferences, v int) { p.VolumeDays = v }},
	{"activity_days", "User activity window (days)", 1, 365,
		func(p prefs.Preferences) int { return p.ActivityDays }, func(p *prefs.Preferences, v int) { p.ActivityDays = v }},
	{"market_days", "Market performance window (days)", 1, 365,
		func(p prefs.Preferences) int { return p.MarketDays }, func(p *prefs.Preferences, v int) { p.MarketDays = v }},
	{"gas_days", "Gas analysis window (days)", 1, 365,
		func(p prefs.Preferences) int { return p.GasDays }, func(p *prefs.Preferences, v int) { p.GasDays = v }},
	{"top_limit", "Top protocols shown", 1, 50,
		func(p prefs.Preferences) int { return p.TopLimit }, func(p *prefs.Preferences, v int) { p.TopLimit = v }},
}

func formValues(p prefs.Preferences) map[string]string {
	out := make(map[string]string, len(formFields))
	for _, f := range formFields {
		out[f.name] = strconv.Itoa(f.get(p))
	}
	return out
}

// parse converts submitted strings to Preferences. Non-numeric input is
// reported per field; range checks are left to Validate.
func parse(values map[string]string) (prefs.Preferences, map[string]string) {
	var p prefs.Preferences
	errs := map[string]string{}
	for _, f := range formFields {
		n, err := strconv.Atoi(values[f.name])
		if err != nil {
			errs[f.name] = "Enter a whole number."
			continue
		}
		f.set(&p, n)
	}
	return p, errs
}

func fieldsFor(values, errs map[string]string) []Field {
	out := make([]Field, len(formFields))
	for i, f := range formFields {
		out[i] = Field{
			Name:  f.name,
			Label: f.label,
			Value: values[f.name],
			Min:   f.min,
			Max:   f.max,
			Error: errs[f.name],
		}
	}
	return out
}

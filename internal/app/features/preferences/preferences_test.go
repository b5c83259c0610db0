package preferences

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	errorsfeature "github.com/dalemusser/stratametrics/internal/app/features/errors"
	"github.com/dalemusser/stratametrics/internal/app/system/prefs"
	"github.com/dalemusser/stratametrics/internal/app/system/viewdata"
	"github.com/dalemusser/stratametrics/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

var testDefaults = prefs.Preferences{VolumeDays: 30, ActivityDays: 30, MarketDays: 14, GasDays: 30, TopLimit: 8}

func newTestRouter(t *testing.T) (chi.Router, *prefs.Manager) {
	t.Helper()
	pm, err := prefs.NewManager("0123456789abcdef0123456789abcdef", "prefs", time.Hour, false, testDefaults, zap.NewNop())
	if err != nil {
		t.Fatalf("prefs.NewManager: %v", err)
	}
	logger := zap.NewNop()
	h := NewHandler(pm, viewdata.NewLayout("", ""), errorsfeature.NewErrorLogger(logger), logger)

	r := chi.NewRouter()
	h.MountRoutes(r)
	return r, pm
}

func validForm() url.Values {
	return url.Values{
		"volume_days":   {"7"},
		"activity_days": {"14"},
		"market_days":   {"30"},
		"gas_days":      {"90"},
		"top_limit":     {"5"},
	}
}

func TestShow_DisplaysDefaults(t *testing.T) {
	testutil.MustBootTemplates(t)
	r, _ := newTestRouter(t)

	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.WithCSRFToken(testutil.NewRequest(http.MethodGet, "/")))

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `name="market_days" value="14"`)
	rec.AssertContains(t, testutil.TestCSRFToken)
}

func TestShow_SuccessFlash(t *testing.T) {
	testutil.MustBootTemplates(t)
	r, _ := newTestRouter(t)

	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.WithCSRFToken(testutil.NewRequest(http.MethodGet, "/?success=saved")))

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Preferences saved.")
}

func TestUpdate_SavesAndRedirects(t *testing.T) {
	r, pm := newTestRouter(t)

	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.NewFormRequestWithCSRF("/", validForm()))

	rec.AssertRedirect(t, "/preferences?success=saved")

	req := testutil.NewRequest(http.MethodGet, "/")
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	got := pm.Load(req)
	want := prefs.Preferences{VolumeDays: 7, ActivityDays: 14, MarketDays: 30, GasDays: 90, TopLimit: 5}
	if got != want {
		t.Errorf("saved preferences = %+v, want %+v", got, want)
	}
}

func TestUpdate_ValidationErrors(t *testing.T) {
	testutil.MustBootTemplates(t)

	tests := []struct {
		name  string
		field string
		value string
		want  string
	}{
		{"out of range window", "volume_days", "400", "must be between 1 and 365 days"},
		{"zero window", "gas_days", "0", "must be between 1 and 365 days"},
		{"not a number", "market_days", "two weeks", "Enter a whole number."},
		{"top limit too large", "top_limit", "51", "must be at most 50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRouter(t)
			form := validForm()
			form.Set(tt.field, tt.value)

			rec := testutil.NewRecorder()
			r.ServeHTTP(rec, testutil.NewFormRequestWithCSRF("/", form))

			rec.AssertStatus(t, http.StatusUnprocessableEntity)
			rec.AssertContains(t, tt.want)
			if len(rec.Result().Cookies()) != 0 {
				t.Error("invalid input must not set the preferences cookie")
			}
		})
	}
}

func TestReset_ExpiresCookie(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.NewFormRequestWithCSRF("/reset", url.Values{}))

	rec.AssertRedirect(t, "/preferences?success=reset")
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Errorf("cookies = %+v, want one expired cookie", cookies)
	}
}

func TestParse(t *testing.T) {
	p, errs := parse(map[string]string{
		"volume_days": "10", "activity_days": "x", "market_days": "3", "gas_days": "4", "top_limit": "5",
	})
	if len(errs) != 1 || errs["activity_days"] == "" {
		t.Errorf("errs = %v, want one error for activity_days", errs)
	}
	if p.VolumeDays != 10 || p.TopLimit != 5 {
		t.Errorf("parsed = %+v", p)
	}
}

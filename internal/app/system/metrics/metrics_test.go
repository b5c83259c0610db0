package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObservePanel(t *testing.T) {
	before := testutil.ToFloat64(PanelLoadsTotal.WithLabelValues("metrics-test", OutcomeEmpty))
	ObservePanel("metrics-test", OutcomeEmpty, 10*time.Millisecond)
	after := testutil.ToFloat64(PanelLoadsTotal.WithLabelValues("metrics-test", OutcomeEmpty))

	if after-before != 1 {
		t.Errorf("panel_loads_total delta = %v, want 1", after-before)
	}
}

func TestSetBackendUp(t *testing.T) {
	SetBackendUp(true)
	if got := testutil.ToFloat64(BackendUp); got != 1 {
		t.Errorf("backend_up = %v, want 1", got)
	}
	SetBackendUp(false)
	if got := testutil.ToFloat64(BackendUp); got != 0 {
		t.Errorf("backend_up = %v, want 0", got)
	}
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/things/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	counter := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/things/{id}", "4xx")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/things/42", nil))

	if rec.Code != http.StatusTeapot {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("http_requests_total delta = %v, want 1", got)
	}
}

func TestStatusBucket(t *testing.T) {
	tests := map[int]string{200: "2xx", 302: "3xx", 404: "4xx", 503: "5xx", 101: "101"}
	for code, want := range tests {
		if got := statusBucket(code); got != want {
			t.Errorf("statusBucket(%d) = %q, want %q", code, got, want)
		}
	}
}

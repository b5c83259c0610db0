package jsonutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
)

func TestJSON(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		data       any
		wantStatus int
		wantBody   string
	}{
		{
			name:       "200 OK with data",
			status:     http.StatusOK,
			data:       map[string]string{"state": "ready"},
			wantStatus: http.StatusOK,
			wantBody:   `{"state":"ready"}`,
		},
		{
			name:       "503 with data",
			status:     http.StatusServiceUnavailable,
			data:       map[string]int{"up": 0},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"up":0}`,
		},
		{
			name:       "nil data",
			status:     http.StatusOK,
			data:       nil,
			wantStatus: http.StatusOK,
			wantBody:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			JSON(rec, tt.status, tt.data)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}
			body := strings.TrimSpace(rec.Body.String())
			if body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name       string
		write      func(http.ResponseWriter)
		wantStatus int
		wantMsg    string
	}{
		{"not found", func(w http.ResponseWriter) { NotFound(w, "unknown panel") }, 404, "unknown panel"},
		{"explicit", func(w http.ResponseWriter) { Error(w, http.StatusBadRequest, "bad days") }, 400, "bad days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var got map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("json unmarshal error: %v", err)
			}
			if got["error"] != tt.wantMsg {
				t.Errorf("error = %q, want %q", got["error"], tt.wantMsg)
			}
		})
	}
}

func TestOKAndServiceUnavailable(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, map[string]any{"total": 2})
	if rec.Code != http.StatusOK {
		t.Errorf("OK status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	ServiceUnavailable(rec, map[string]string{"status": "degraded"})
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("ServiceUnavailable status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "degraded") {
		t.Errorf("body = %q", rec.Body.String())
	}
}

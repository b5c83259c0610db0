package inputval

import (
	"strings"
	"testing"
)

func TestIsValidHTTPURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		// Valid URLs
		{"http://example.com", true},
		{"https://example.com/api", true},
		{"http://localhost:5000/api", true},

		// Invalid URLs
		{"", false},
		{"   ", false},
		{"example.com", false},          // No scheme
		{"ftp://example.com", false},    // Wrong scheme
		{"file:///path/to/file", false}, // Wrong scheme
		{"javascript:alert(1)", false},  // Wrong scheme
		{"http://", false},              // No host
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got := IsValidHTTPURL(tt.url)
			if got != tt.want {
				t.Errorf("IsValidHTTPURL(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

type windowInput struct {
	VolumeDays int    `form:"volume_days" validate:"daywindow" label:"Volume window"`
	TopLimit   int    `form:"top_limit" validate:"min=1,max=50" label:"Top protocols"`
	BaseURL    string `json:"api_base_url" validate:"httpurl" label:"API base URL"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		in        windowInput
		wantField string
		wantMsg   string
	}{
		{
			name: "valid",
			in:   windowInput{VolumeDays: 30, TopLimit: 8, BaseURL: "http://localhost:5000/api"},
		},
		{
			name:      "zero days",
			in:        windowInput{VolumeDays: 0, TopLimit: 8, BaseURL: "http://x"},
			wantField: "volume_days",
			wantMsg:   "Volume window must be between 1 and 365 days.",
		},
		{
			name:      "limit too large",
			in:        windowInput{VolumeDays: 7, TopLimit: 51, BaseURL: "http://x"},
			wantField: "top_limit",
			wantMsg:   "Top protocols must be at most 50.",
		},
		{
			name:      "bad url",
			in:        windowInput{VolumeDays: 7, TopLimit: 5, BaseURL: "localhost"},
			wantField: "api_base_url",
			wantMsg:   "API base URL must be a valid URL starting with http:// or https://.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.in)
			if tt.wantField == "" {
				if res.HasErrors() {
					t.Fatalf("unexpected errors: %s", res.All())
				}
				return
			}
			if !res.HasErrors() {
				t.Fatal("expected errors")
			}
			if got := res.ByField()[tt.wantField]; got != tt.wantMsg {
				t.Errorf("message for %s = %q, want %q", tt.wantField, got, tt.wantMsg)
			}
		})
	}
}

func TestResult_AllAndErr(t *testing.T) {
	res := Validate(windowInput{VolumeDays: 0, TopLimit: 0, BaseURL: ""})
	if len(res.Errors) != 3 {
		t.Fatalf("got %d errors, want 3", len(res.Errors))
	}
	if !strings.Contains(res.All(), "; ") {
		t.Errorf("All() = %q", res.All())
	}
	if res.Err() == nil {
		t.Error("Err() = nil, want error")
	}

	ok := Validate(windowInput{VolumeDays: 1, TopLimit: 1, BaseURL: "https://a.b"})
	if ok.Err() != nil {
		t.Errorf("Err() = %v, want nil", ok.Err())
	}
}

func TestValidate_FieldNames(t *testing.T) {
	type input struct {
		Name   string `validate:"required"`
		Window int    `json:"window,omitempty" validate:"daywindow" label:"Window"`
	}

	res := Validate(input{})
	byField := res.ByField()
	if got := byField["Name"]; got != "Name is required." {
		t.Errorf("untagged field message = %q, want it reported under the Go name", got)
	}
	if got := byField["window"]; got != "Window must be between 1 and 365 days." {
		t.Errorf("json-tagged field message = %q", got)
	}
}

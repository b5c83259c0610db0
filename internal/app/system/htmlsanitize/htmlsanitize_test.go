package htmlsanitize

import (
	"strings"
	"testing"
)

func TestFooter(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string // Strings that should be in output
		excludes []string // Strings that should NOT be in output
	}{
		{
			name:  "empty string",
			input: "",
		},
		{
			name:     "plain text",
			input:    "DeFi Analytics",
			contains: []string{"DeFi Analytics"},
		},
		{
			name:     "inline formatting preserved",
			input:    "<p>Data by <strong>Example</strong></p>",
			contains: []string{"<p>", "<strong>", "Example"},
		},
		{
			name:     "script tag removed",
			input:    "<p>Hi</p><script>alert('xss')</script>",
			contains: []string{"<p>Hi</p>"},
			excludes: []string{"<script>", "alert"},
		},
		{
			name:     "javascript URL removed",
			input:    `<a href="javascript:alert('xss')">Link</a>`,
			contains: []string{"Link"},
			excludes: []string{"javascript:"},
		},
		{
			name:     "external link gets nofollow",
			input:    `<a href="https://example.com">Docs</a>`,
			contains: []string{`href="https://example.com"`, "nofollow", "Docs"},
		},
		{
			name:     "images not allowed",
			input:    `<img src="https://example.com/x.png">`,
			excludes: []string{"<img"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Footer(tt.input)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Footer(%q) = %q, want it to contain %q", tt.input, got, want)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("Footer(%q) = %q, should not contain %q", tt.input, got, bad)
				}
			}
		})
	}
}

func TestFooterHTML(t *testing.T) {
	if got := FooterHTML("<em>x</em>"); string(got) != "<em>x</em>" {
		t.Errorf("FooterHTML = %q", got)
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"  Uniswap ", "Uniswap"},
		{"<b>Aave</b>", "Aave"},
		{"Curve<script>alert(1)</script>", "Curve"},
		{"AT&amp;T", "AT&T"},
	}
	for _, tt := range tests {
		if got := Label(tt.in); got != tt.want {
			t.Errorf("Label(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLabels(t *testing.T) {
	in := []string{"<i>DEX</i>", "Lending"}
	got := Labels(in)
	if got[0] != "DEX" || got[1] != "Lending" {
		t.Errorf("Labels = %v", got)
	}
	if in[0] != "<i>DEX</i>" {
		t.Error("Labels modified its input")
	}
}

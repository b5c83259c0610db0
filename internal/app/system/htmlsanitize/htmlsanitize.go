// Package htmlsanitize cleans markup that reaches the dashboard from outside
// the binary: the operator-configured footer HTML and the category, chain,
// and protocol labels returned by the analytics backend.
package htmlsanitize

import (
	"html"
	"html/template"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	footerPolicy     *bluemonday.Policy
	footerPolicyOnce sync.Once

	labelPolicy     *bluemonday.Policy
	labelPolicyOnce sync.Once
)

// footer returns the policy for footer HTML: inline formatting and links.
func footer() *bluemonday.Policy {
	footerPolicyOnce.Do(func() {
		p := bluemonday.NewPolicy()
		p.AllowStandardURLs()
		p.AllowAttrs("href").OnElements("a")
		p.RequireNoFollowOnLinks(true)
		p.AddTargetBlankToFullyQualifiedLinks(true)
		p.AllowElements("p", "span", "br", "strong", "em", "b", "i", "u", "small")
		p.AllowAttrs("class").OnElements("p", "span", "a")
		footerPolicy = p
	})
	return footerPolicy
}

// label returns the policy that strips every tag.
func label() *bluemonday.Policy {
	labelPolicyOnce.Do(func() {
		labelPolicy = bluemonday.StrictPolicy()
	})
	return labelPolicy
}

// Footer sanitizes operator-supplied footer HTML.
func Footer(raw string) string {
	if raw == "" {
		return ""
	}
	return footer().Sanitize(raw)
}

// FooterHTML sanitizes footer HTML and returns it as template.HTML,
// which is safe to render directly in Go templates without escaping.
func FooterHTML(raw string) template.HTML {
	return template.HTML(Footer(raw))
}

// Label reduces a backend-supplied label to plain text: tags are removed,
// entities decoded, and surrounding whitespace trimmed. Templates escape the
// result again on output.
func Label(raw string) string {
	if raw == "" {
		return ""
	}
	if !strings.ContainsAny(raw, "<>&") {
		return strings.TrimSpace(raw)
	}
	return strings.TrimSpace(html.UnescapeString(label().Sanitize(raw)))
}

// Labels applies Label to every element, returning a new slice.
func Labels(raw []string) []string {
	out := make([]string, len(raw))
	for i, s := range raw {
		out[i] = Label(s)
	}
	return out
}

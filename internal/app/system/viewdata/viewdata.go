// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"unicode"

	"github.com/dalemusser/stratametrics/internal/app/system/htmlsanitize"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// DefaultSiteName is shown in the header when no site name is configured.
const DefaultSiteName = "DeFi Analytics"

// MenuItem is one sidebar entry. Links are inert ("#") unless Href is set.
type MenuItem struct {
	Label  string
	Icon   string
	Href   string
	Active bool
}

// IconButton is a header button. It carries no behavior.
type IconButton struct {
	Icon  string
	Label string // accessible name
}

// Layout is the static page chrome: branding, header buttons, and sidebar
// menu. It is built once at startup and shared read-only by all handlers.
type Layout struct {
	SiteName      string
	BrandInitials string
	FooterHTML    template.HTML
	HeaderButtons []IconButton
	Menu          []MenuItem
}

// DefaultMenu is the dashboard sidebar: Dashboard is the active entry, the
// rest are placeholders.
func DefaultMenu() []MenuItem {
	return []MenuItem{
		{Label: "Dashboard", Icon: "grid", Href: "/dashboard", Active: true},
		{Label: "Protocols", Icon: "layers", Href: "#"},
		{Label: "Contracts", Icon: "file-code", Href: "#"},
		{Label: "Users", Icon: "users", Href: "#"},
		{Label: "Transactions", Icon: "activity", Href: "#"},
		{Label: "Market", Icon: "trending-up", Href: "#"},
	}
}

// NewLayout builds the layout for siteName with sanitized footer HTML and
// the default header buttons and menu.
func NewLayout(siteName, footerHTML string) Layout {
	siteName = strings.TrimSpace(siteName)
	if siteName == "" {
		siteName = DefaultSiteName
	}
	return Layout{
		SiteName:      siteName,
		BrandInitials: Initials(siteName),
		FooterHTML:    htmlsanitize.FooterHTML(footerHTML),
		HeaderButtons: []IconButton{
			{Icon: "bell", Label: "Notifications"},
			{Icon: "settings", Label: "Settings"},
		},
		Menu: DefaultMenu(),
	}
}

// Validate checks that exactly one menu item is active.
func (l Layout) Validate() error {
	active := 0
	for _, m := range l.Menu {
		if m.Active {
			active++
		}
	}
	if active != 1 {
		return fmt.Errorf("viewdata: sidebar must have exactly one active item, has %d", active)
	}
	if l.SiteName == "" {
		return errors.New("viewdata: site name is empty")
	}
	return nil
}

// Initials returns up to two uppercase initials of name's words:
// "DeFi Analytics" -> "DA".
func Initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r := []rune(word)[0]
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
		if b.Len() >= 2 {
			break
		}
	}
	return b.String()
}

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.New(r, h.layout, "Page Title"),
//	}
type BaseVM struct {
	Layout

	// Page context
	Title       string
	CurrentPath string

	// Security
	CSRFToken string // CSRF token for forms (use in hidden input field)
}

// New creates a BaseVM for a page rendered with layout.
func New(r *http.Request, layout Layout, title string) BaseVM {
	return BaseVM{
		Layout:      layout,
		Title:       title,
		CurrentPath: httpnav.CurrentPath(r),
		CSRFToken:   csrf.Token(r),
	}
}

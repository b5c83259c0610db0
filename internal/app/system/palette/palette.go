// Package palette provides the color sequences used by chart panels.
package palette

// Palette is an ordered list of CSS colors. When a chart has more series or
// slices than colors, colors are reused cyclically.
type Palette []string

// Color returns the color for the i-th series or slice (i % len(p)).
// An empty palette yields "".
func (p Palette) Color(i int) string {
	if len(p) == 0 {
		return ""
	}
	i %= len(p)
	if i < 0 {
		i += len(p)
	}
	return p[i]
}

// Colors returns the colors for n consecutive series starting at index 0.
func (p Palette) Colors(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = p.Color(i)
	}
	return out
}

// Set groups the palettes the dashboard panels draw from. It is built once
// at startup and passed to the panels that need it.
type Set struct {
	Distribution Palette // protocol distribution pie
	MarketShare  Palette // protocol market share pie
	Performance  Palette // market performance lines
	Primary      string  // single-series lines and bars
	Secondary    string  // second series (new users, top protocol bars)
	Accent       string  // third series (average fee)
	Positive     string
	Tiles        Palette // stat tile accents, in tile order
}

// Defaults returns the standard dashboard palettes.
func Defaults() Set {
	return Set{
		Distribution: Palette{"#6366f1", "#8b5cf6", "#a855f7", "#d946ef", "#ec4899", "#f43f5e"},
		MarketShare: Palette{
			"#6366f1", "#8b5cf6", "#a855f7", "#d946ef", "#ec4899",
			"#f43f5e", "#f59e0b", "#10b981", "#14b8a6", "#06b6d4",
		},
		Performance: Palette{"#6366f1", "#8b5cf6", "#ec4899", "#f59e0b", "#10b981"},
		Primary:     "#6366f1",
		Secondary:   "#8b5cf6",
		Accent:      "#f59e0b",
		Positive:    "#10b981",
		Tiles:       Palette{"#4f46e5", "#9333ea", "#db2777", "#d97706", "#059669", "#0891b2"},
	}
}

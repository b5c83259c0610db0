// Package chart builds declarative Chart.js configurations for dashboard
// panels. The browser side (assets/js/panels.js) hands a Config to Chart.js
// unchanged, apart from turning the Format hints into tick and tooltip
// callbacks.
package chart

import (
	"html/template"

	json "github.com/goccy/go-json"
)

// Chart.js chart types.
const (
	TypePie      = "pie"
	TypeDoughnut = "doughnut"
	TypeBar      = "bar"
	TypeLine     = "line"
)

// Value formats understood by panels.js.
const (
	FormatNumber = "number" // format.Number rules
	FormatVolume = "volume" // format.Volume rules
)

// Config is one Chart.js chart.
type Config struct {
	Type    string  `json:"type"`
	Data    Data    `json:"data"`
	Options Options `json:"options"`
}

// Data holds the category labels and the series drawn against them.
type Data struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Dataset is one series. Key is the field of the source rows the values were
// read from (a protocol symbol for market performance).
type Dataset struct {
	Key             string    `json:"key"`
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor []string  `json:"backgroundColor,omitempty"`
	BorderColor     string    `json:"borderColor,omitempty"`
	BorderWidth     int       `json:"borderWidth,omitempty"`
	Fill            bool      `json:"fill,omitempty"`
	Tension         float64   `json:"tension,omitempty"`
	PointRadius     *int      `json:"pointRadius,omitempty"`

	// Per-point extras shown in tooltips and slice labels.
	Percentages []float64 `json:"percentages,omitempty"`
	Types       []string  `json:"types,omitempty"`
}

// Options carries the subset of Chart.js options the dashboard sets plus
// formatting hints.
type Options struct {
	IndexAxis   string `json:"indexAxis,omitempty"` // "y" for horizontal bars
	Cutout      string `json:"cutout,omitempty"`
	Legend      bool   `json:"legend"`
	SliceLabels bool   `json:"sliceLabels,omitempty"` // draw "name: pct%" on slices
	ValueFormat string `json:"valueFormat,omitempty"` // axis and tooltip value format
	ShortDates  bool   `json:"shortDates,omitempty"`  // render YYYY-MM-DD ticks as MM-DD
}

// JSON encodes c for embedding in a data attribute or script block.
func (c Config) JSON() (template.JS, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}

// Dataset returns the dataset whose Key is key.
func (c Config) Dataset(key string) (Dataset, bool) {
	for _, ds := range c.Data.Datasets {
		if ds.Key == key {
			return ds, true
		}
	}
	return Dataset{}, false
}

func solid(color string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = color
	}
	return out
}

func noPoints() *int {
	zero := 0
	return &zero
}

// internal/app/features/dashboard/panels.go
package dashboard

import (
	"context"
	"fmt"
	"html/template"

	"github.com/dalemusser/stratametrics/internal/app/system/chart"
	"github.com/dalemusser/stratametrics/internal/app/system/format"
	"github.com/dalemusser/stratametrics/internal/app/system/palette"
	"github.com/dalemusser/stratametrics/internal/app/system/panel"
	"github.com/dalemusser/stratametrics/internal/app/system/prefs"
	"github.com/dalemusser/stratametrics/internal/domain/models"
	"go.uber.org/zap"
)

// Source is the data port the panels load from. *apiclient.DashboardAPI
// satisfies it; tests substitute fakes.
type Source interface {
	Summary(ctx context.Context) (models.Summary, error)
	ProtocolDistribution(ctx context.Context) ([]models.CategorySlice, error)
	ContractsByBlockchain(ctx context.Context) ([]models.BlockchainContracts, error)
	TransactionVolume(ctx context.Context, days int) ([]models.VolumePoint, error)
	TopProtocols(ctx context.Context, limit int) ([]models.RankedProtocol, error)
	UserActivity(ctx context.Context, days int) ([]models.ActivityPoint, error)
	MarketPerformance(ctx context.Context, days int) (models.MarketPerformance, error)
	GasAnalysis(ctx context.Context, days int) ([]models.GasPoint, error)
	MarketShare(ctx context.Context) ([]models.MarketShareSlice, error)
}

// Panel names, used in URLs and logs.
const (
	PanelSummary               = "summary"
	PanelProtocolDistribution  = "protocol-distribution"
	PanelContractsByBlockchain = "contracts-by-blockchain"
	PanelTransactionVolume     = "transaction-volume"
	PanelTopProtocols          = "top-protocols"
	PanelUserActivity          = "user-activity"
	PanelMarketPerformance     = "market-performance"
	PanelGasAnalysis           = "gas-analysis"
	PanelMarketShare           = "market-share"
)

// Tile is one stat tile in the summary grid.
type Tile struct {
	Title  string
	Value  string
	Icon   string
	Accent string
}

// View is what a card template needs to draw one panel in any state.
type View struct {
	Name      string
	Title     string
	State     panel.State
	Chart     *chart.Config
	ChartJSON template.JS
	Caption   string
	Tiles     []Tile
}

// Loading reports whether the panel has not settled.
func (v View) Loading() bool { return v.State == panel.Loading }

// Empty reports whether the load failed.
func (v View) Empty() bool { return v.State == panel.Empty }

// IsStats reports whether the panel renders as a stat grid rather than a chart.
func (v View) IsStats() bool { return v.Name == PanelSummary }

// Result is the JSON form of one panel for /dashboard/data and the .json
// panel endpoint.
type Result struct {
	Name  string        `json:"name"`
	Title string        `json:"title"`
	State panel.State   `json:"state"`
	Data  any           `json:"data,omitempty"`
	Chart *chart.Config `json:"chart,omitempty"`
}

// env is everything a panel needs to load and render.
type env struct {
	src    Source
	pal    palette.Set
	prefs  prefs.Preferences
	logger *zap.Logger
}

// definition describes one dashboard panel.
type definition struct {
	name         string
	loadingTitle string
	title        func(p prefs.Preferences) string

	// run mounts the panel, waits for it under ctx, and returns the view
	// together with the raw payload (nil unless Ready).
	run func(ctx context.Context, e env) (View, any)
}

func fixed(s string) func(prefs.Preferences) string {
	return func(prefs.Preferences) string { return s }
}

// definitions lists the panels in page order.
var definitions = []definition{
	{
		name:         PanelSummary,
		loadingTitle: "Summary",
		title:        fixed("Summary"),
		run:          runSummary,
	},
	{
		name:         PanelProtocolDistribution,
		loadingTitle: "Protocol Distribution",
		title:        fixed("Protocol Distribution by Type"),
		run: chartPanel(PanelProtocolDistribution,
			func(ctx context.Context, e env) ([]models.CategorySlice, error) {
				return e.src.ProtocolDistribution(ctx)
			},
			func(v []models.CategorySlice, pal palette.Set) chart.Config {
				return chart.ProtocolDistribution(v, pal.Distribution)
			}),
	},
	{
		name:         PanelContractsByBlockchain,
		loadingTitle: "Contracts by Blockchain",
		title:        fixed("Contracts by Blockchain"),
		run: chartPanel(PanelContractsByBlockchain,
			func(ctx context.Context, e env) ([]models.BlockchainContracts, error) {
				return e.src.ContractsByBlockchain(ctx)
			},
			func(v []models.BlockchainContracts, pal palette.Set) chart.Config {
				return chart.ContractsByBlockchain(v, pal.Primary)
			}),
	},
	{
		name:         PanelTransactionVolume,
		loadingTitle: "Transaction Volume",
		title: func(p prefs.Preferences) string {
			return fmt.Sprintf("Transaction Volume (%d Days)", p.VolumeDays)
		},
		run: chartPanel(PanelTransactionVolume,
			func(ctx context.Context, e env) ([]models.VolumePoint, error) {
				return e.src.TransactionVolume(ctx, e.prefs.VolumeDays)
			},
			func(v []models.VolumePoint, pal palette.Set) chart.Config {
				return chart.TransactionVolume(v, pal.Primary)
			}),
	},
	{
		name:         PanelTopProtocols,
		loadingTitle: "Top Protocols",
		title:        fixed("Top Protocols by Volume"),
		run: chartPanel(PanelTopProtocols,
			func(ctx context.Context, e env) ([]models.RankedProtocol, error) {
				return e.src.TopProtocols(ctx, e.prefs.TopLimit)
			},
			func(v []models.RankedProtocol, pal palette.Set) chart.Config {
				return chart.TopProtocols(v, pal.Secondary)
			}),
	},
	{
		name:         PanelUserActivity,
		loadingTitle: "User Activity",
		title:        fixed("User Activity Trends"),
		run: chartPanel(PanelUserActivity,
			func(ctx context.Context, e env) ([]models.ActivityPoint, error) {
				return e.src.UserActivity(ctx, e.prefs.ActivityDays)
			},
			func(v []models.ActivityPoint, pal palette.Set) chart.Config {
				return chart.UserActivity(v, pal.Primary, pal.Positive)
			}),
	},
	{
		name:         PanelMarketPerformance,
		loadingTitle: "Market Performance",
		title:        fixed("Market Performance Comparison"),
		run: chartPanel(PanelMarketPerformance,
			func(ctx context.Context, e env) (models.MarketPerformance, error) {
				return e.src.MarketPerformance(ctx, e.prefs.MarketDays)
			},
			func(v models.MarketPerformance, pal palette.Set) chart.Config {
				return chart.MarketPerformance(v, pal.Performance)
			}),
	},
	{
		name:         PanelGasAnalysis,
		loadingTitle: "Gas Fee Analysis",
		title:        fixed("Gas Fee Analysis"),
		run: chartPanel(PanelGasAnalysis,
			func(ctx context.Context, e env) ([]models.GasPoint, error) {
				return e.src.GasAnalysis(ctx, e.prefs.GasDays)
			},
			func(v []models.GasPoint, pal palette.Set) chart.Config {
				return chart.GasAnalysis(v, pal.Primary, pal.Accent)
			}),
	},
	{
		name:         PanelMarketShare,
		loadingTitle: "Protocol Market Share",
		title:        fixed("Protocol Market Share"),
		run: chartPanel(PanelMarketShare,
			func(ctx context.Context, e env) ([]models.MarketShareSlice, error) {
				return e.src.MarketShare(ctx)
			},
			func(v []models.MarketShareSlice, pal palette.Set) chart.Config {
				return chart.MarketShare(v, pal.MarketShare)
			}),
	},
}

// lookup returns the definition named name.
func lookup(name string) (definition, bool) {
	for _, d := range definitions {
		if d.name == name {
			return d, true
		}
	}
	return definition{}, false
}

// loadingView is the card drawn before a panel has loaded.
func (d definition) loadingView(pal palette.Set) View {
	v := View{Name: d.name, Title: d.loadingTitle, State: panel.Loading}
	if d.name == PanelSummary {
		v.Tiles = summaryTiles(nil, pal.Tiles)
	}
	return v
}

// mount runs one panel until it settles or ctx ends and returns its final
// snapshot. The panel is unmounted on return.
func mount[T any](ctx context.Context, name string, e env, load func(context.Context, env) (T, error)) panel.Snapshot[T] {
	p := panel.New[T](name, panel.LoaderFunc[T](func(ctx context.Context) (T, error) {
		return load(ctx, e)
	}), panel.WithLogger(e.logger))
	p.Mount(ctx)
	defer p.Unmount()
	return p.Wait(ctx)
}

// chartPanel builds a run function for a chart panel. An empty panel still
// gets a chart built from zero data so the card keeps its shape.
func chartPanel[T any](name string, load func(context.Context, env) (T, error), build func(T, palette.Set) chart.Config) func(context.Context, env) (View, any) {
	return func(ctx context.Context, e env) (View, any) {
		snap := mount(ctx, name, e, load)
		v := View{Name: name, State: snap.State}
		if snap.State == panel.Loading {
			return v, nil
		}
		cfg := build(snap.Data, e.pal)
		v.Chart = &cfg
		if js, err := cfg.JSON(); err == nil {
			v.ChartJSON = js
		} else {
			e.logger.Warn("chart config encode failed", zap.String("panel", name), zap.Error(err))
		}
		if snap.State == panel.Ready {
			v.Caption = caption(cfg)
			return v, snap.Data
		}
		return v, nil
	}
}

// caption is the one-line text shown under a loaded chart: the date span
// for time series, or the largest slice and its share for pies.
func caption(cfg chart.Config) string {
	labels := cfg.Data.Labels
	if len(labels) == 0 {
		return ""
	}
	if cfg.Options.ShortDates {
		first, last := format.ShortDate(labels[0]), format.ShortDate(labels[len(labels)-1])
		if first == last {
			return first
		}
		return first + " to " + last
	}
	if len(cfg.Data.Datasets) == 0 {
		return ""
	}
	pcts := cfg.Data.Datasets[0].Percentages
	if len(pcts) != len(labels) {
		return ""
	}
	top := 0
	for i, p := range pcts {
		if p > pcts[top] {
			top = i
		}
	}
	return "Largest: " + labels[top] + " (" + format.Percent(pcts[top]) + ")"
}

func runSummary(ctx context.Context, e env) (View, any) {
	snap := mount(ctx, PanelSummary, e, func(ctx context.Context, e env) (models.Summary, error) {
		return e.src.Summary(ctx)
	})
	v := View{Name: PanelSummary, State: snap.State}
	switch snap.State {
	case panel.Loading:
		v.Tiles = summaryTiles(nil, e.pal.Tiles)
		return v, nil
	case panel.Ready:
		v.Tiles = summaryTiles(&snap.Data, e.pal.Tiles)
		return v, snap.Data
	default:
		v.Tiles = summaryTiles(&models.Summary{}, e.pal.Tiles)
		return v, nil
	}
}

// summaryTiles lays out the six stat tiles. A nil summary means still
// loading and every value shows "...".
func summaryTiles(s *models.Summary, accents palette.Palette) []Tile {
	tiles := []Tile{
		{Title: "Total Protocols", Icon: "layers"},
		{Title: "Total Contracts", Icon: "file-code"},
		{Title: "Total Users", Icon: "users"},
		{Title: "Transactions", Icon: "activity"},
		{Title: "Total Volume", Icon: "trending-up"},
		{Title: "Blockchains", Icon: "globe"},
	}
	var values []string
	if s != nil {
		values = []string{
			format.NumberOf(s.TotalProtocols),
			format.NumberOf(s.TotalContracts),
			format.NumberOf(s.TotalUsers),
			format.NumberOf(s.TotalTransactions),
			format.VolumeOf(s.TotalVolume),
			format.Count(s.UniqueBlockchains),
		}
	}
	for i := range tiles {
		tiles[i].Accent = accents.Color(i)
		tiles[i].Value = "..."
		if values != nil {
			tiles[i].Value = values[i]
		}
	}
	return tiles
}

// render runs definition d and fills in the title for the settled state.
func (d definition) render(ctx context.Context, e env) (View, any) {
	v, data := d.run(ctx, e)
	if v.State == panel.Loading {
		v.Title = d.loadingTitle
	} else {
		v.Title = d.title(e.prefs)
	}
	return v, data
}

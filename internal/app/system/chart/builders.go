// internal/app/system/chart/builders.go
package chart

import (
	"github.com/dalemusser/stratametrics/internal/app/system/htmlsanitize"
	"github.com/dalemusser/stratametrics/internal/app/system/palette"
	"github.com/dalemusser/stratametrics/internal/domain/models"
	"github.com/samber/lo"
)

// ProtocolDistribution is a doughnut of protocol counts by type. Slice i is
// colored pal.Color(i).
func ProtocolDistribution(slices []models.CategorySlice, pal palette.Palette) Config {
	slices = models.WithPercentages(slices)
	return Config{
		Type: TypeDoughnut,
		Data: Data{
			Labels: htmlsanitize.Labels(lo.Map(slices, func(s models.CategorySlice, _ int) string { return s.Name })),
			Datasets: []Dataset{{
				Key:             "value",
				Label:           "Protocols",
				Data:            lo.Map(slices, func(s models.CategorySlice, _ int) float64 { return s.Value }),
				BackgroundColor: pal.Colors(len(slices)),
				Percentages:     lo.Map(slices, func(s models.CategorySlice, _ int) float64 { return s.Percentage }),
			}},
		},
		Options: Options{Cutout: "60%", Legend: true, ValueFormat: FormatNumber},
	}
}

// MarketShare is a pie of each protocol's share of volume with
// "name: pct%" slice labels.
func MarketShare(slices []models.MarketShareSlice, pal palette.Palette) Config {
	return Config{
		Type: TypePie,
		Data: Data{
			Labels: htmlsanitize.Labels(lo.Map(slices, func(s models.MarketShareSlice, _ int) string { return s.Name })),
			Datasets: []Dataset{{
				Key:             "value",
				Label:           "Volume",
				Data:            lo.Map(slices, func(s models.MarketShareSlice, _ int) float64 { return s.Value }),
				BackgroundColor: pal.Colors(len(slices)),
				Percentages:     lo.Map(slices, func(s models.MarketShareSlice, _ int) float64 { return s.Percentage }),
				Types:           lo.Map(slices, func(s models.MarketShareSlice, _ int) string { return s.Type }),
			}},
		},
		Options: Options{Legend: false, SliceLabels: true, ValueFormat: FormatVolume},
	}
}

// ContractsByBlockchain is a horizontal bar of contract counts per chain,
// in server order.
func ContractsByBlockchain(rows []models.BlockchainContracts, color string) Config {
	return Config{
		Type: TypeBar,
		Data: Data{
			Labels: htmlsanitize.Labels(lo.Map(rows, func(r models.BlockchainContracts, _ int) string { return r.Blockchain })),
			Datasets: []Dataset{{
				Key:             "contracts",
				Label:           "Contracts",
				Data:            lo.Map(rows, func(r models.BlockchainContracts, _ int) float64 { return float64(r.Contracts) }),
				BackgroundColor: solid(color, len(rows)),
			}},
		},
		Options: Options{IndexAxis: "y", ValueFormat: FormatNumber},
	}
}

// TopProtocols is a horizontal bar of protocol volume, in server rank order.
func TopProtocols(rows []models.RankedProtocol, color string) Config {
	return Config{
		Type: TypeBar,
		Data: Data{
			Labels: htmlsanitize.Labels(lo.Map(rows, func(r models.RankedProtocol, _ int) string { return r.Name })),
			Datasets: []Dataset{{
				Key:             "volume",
				Label:           "Volume",
				Data:            lo.Map(rows, func(r models.RankedProtocol, _ int) float64 { return r.Volume }),
				BackgroundColor: solid(color, len(rows)),
			}},
		},
		Options: Options{IndexAxis: "y", ValueFormat: FormatVolume},
	}
}

// TransactionVolume is a single line of daily volume.
func TransactionVolume(points []models.VolumePoint, color string) Config {
	return Config{
		Type: TypeLine,
		Data: Data{
			Labels: lo.Map(points, func(p models.VolumePoint, _ int) string { return p.Date }),
			Datasets: []Dataset{{
				Key:         "volume",
				Label:       "Volume",
				Data:        lo.Map(points, func(p models.VolumePoint, _ int) float64 { return p.Volume }),
				BorderColor: color,
				BorderWidth: 2,
				Tension:     0.3,
				PointRadius: noPoints(),
			}},
		},
		Options: Options{ValueFormat: FormatVolume, ShortDates: true},
	}
}

// UserActivity is a filled area of active users and new users.
func UserActivity(points []models.ActivityPoint, active, newUsers string) Config {
	return Config{
		Type: TypeLine,
		Data: Data{
			Labels: lo.Map(points, func(p models.ActivityPoint, _ int) string { return p.Date }),
			Datasets: []Dataset{
				{
					Key:             "activeUsers",
					Label:           "Active Users",
					Data:            lo.Map(points, func(p models.ActivityPoint, _ int) float64 { return float64(p.ActiveUsers) }),
					BorderColor:     active,
					BackgroundColor: []string{active + "4d"},
					Fill:            true,
					Tension:         0.3,
				},
				{
					Key:             "newUsers",
					Label:           "New Users",
					Data:            lo.Map(points, func(p models.ActivityPoint, _ int) float64 { return float64(p.NewUsers) }),
					BorderColor:     newUsers,
					BackgroundColor: []string{newUsers + "4d"},
					Fill:            true,
					Tension:         0.3,
				},
			},
		},
		Options: Options{Legend: true, ValueFormat: FormatNumber, ShortDates: true},
	}
}

// GasAnalysis is two lines: average gas price and average fee.
func GasAnalysis(points []models.GasPoint, price, fee string) Config {
	return Config{
		Type: TypeLine,
		Data: Data{
			Labels: lo.Map(points, func(p models.GasPoint, _ int) string { return p.Date }),
			Datasets: []Dataset{
				{
					Key:         "avgGasPrice",
					Label:       "Avg Gas Price (Gwei)",
					Data:        lo.Map(points, func(p models.GasPoint, _ int) float64 { return p.AvgGasPrice }),
					BorderColor: price,
					BorderWidth: 2,
				},
				{
					Key:         "avgFee",
					Label:       "Avg Fee ($)",
					Data:        lo.Map(points, func(p models.GasPoint, _ int) float64 { return p.AvgFee }),
					BorderColor: fee,
					BorderWidth: 2,
				},
			},
		},
		Options: Options{Legend: true, ShortDates: true},
	}
}

// MarketPerformance draws one line per protocol named in mp.Protocols, in
// that order, colored pal.Color(i). Each dataset's Key is the protocol name
// exactly as sent; only the legend label is reduced to plain text. A row
// without a value for a protocol contributes 0.
func MarketPerformance(mp models.MarketPerformance, pal palette.Palette) Config {
	labels := lo.Map(mp.Data, func(r models.MarketRow, _ int) string { return r.Date })

	datasets := lo.Map(mp.Protocols, func(name string, i int) Dataset {
		return Dataset{
			Key:         name,
			Label:       htmlsanitize.Label(name),
			Data:        lo.Map(mp.Data, func(r models.MarketRow, _ int) float64 { return r.Values[name] }),
			BorderColor: pal.Color(i),
			BorderWidth: 2,
			PointRadius: noPoints(),
		}
	})

	return Config{
		Type:    TypeLine,
		Data:    Data{Labels: labels, Datasets: datasets},
		Options: Options{Legend: true, ValueFormat: FormatVolume, ShortDates: true},
	}
}

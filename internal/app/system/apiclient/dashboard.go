// internal/app/system/apiclient/dashboard.go
package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dalemusser/stratametrics/internal/domain/models"
	"github.com/tidwall/gjson"
)

// Default query values used when a caller passes a non-positive window or limit.
const (
	DefaultVolumeDays   = 30
	DefaultActivityDays = 30
	DefaultMarketDays   = 14
	DefaultGasDays      = 30
	DefaultTopLimit     = 10
)

// DashboardAPI groups the pre-aggregated dashboard endpoints.
type DashboardAPI struct {
	c *Client
}

// Summary fetches the headline totals.
func (d *DashboardAPI) Summary(ctx context.Context) (models.Summary, error) {
	var out models.Summary
	err := d.c.getData(ctx, "/dashboard/summary", nil, &out)
	return out, err
}

// ProtocolDistribution fetches protocol counts by type.
func (d *DashboardAPI) ProtocolDistribution(ctx context.Context) ([]models.CategorySlice, error) {
	var out []models.CategorySlice
	err := d.c.getData(ctx, "/dashboard/protocol-distribution", nil, &out)
	return out, err
}

// ContractsByBlockchain fetches contract counts per chain.
func (d *DashboardAPI) ContractsByBlockchain(ctx context.Context) ([]models.BlockchainContracts, error) {
	var out []models.BlockchainContracts
	err := d.c.getData(ctx, "/dashboard/contracts-by-blockchain", nil, &out)
	return out, err
}

// TransactionVolume fetches daily volume for the last days days.
func (d *DashboardAPI) TransactionVolume(ctx context.Context, days int) ([]models.VolumePoint, error) {
	var out []models.VolumePoint
	err := d.c.getData(ctx, "/dashboard/transaction-volume", daysQuery(days, DefaultVolumeDays), &out)
	return out, err
}

// TopProtocols fetches the protocols with the highest volume, server-ranked.
func (d *DashboardAPI) TopProtocols(ctx context.Context, limit int) ([]models.RankedProtocol, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	var out []models.RankedProtocol
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	err := d.c.getData(ctx, "/dashboard/top-protocols", q, &out)
	return out, err
}

// UserActivity fetches daily active and new users.
func (d *DashboardAPI) UserActivity(ctx context.Context, days int) ([]models.ActivityPoint, error) {
	var out []models.ActivityPoint
	err := d.c.getData(ctx, "/dashboard/user-activity", daysQuery(days, DefaultActivityDays), &out)
	return out, err
}

// MarketPerformance fetches per-protocol daily volume. The protocol list
// comes from the "protocols" member next to "data"; a missing or null list
// is empty.
func (d *DashboardAPI) MarketPerformance(ctx context.Context, days int) (models.MarketPerformance, error) {
	const path = "/dashboard/market-performance"

	var out models.MarketPerformance
	body, err := d.c.do(ctx, http.MethodGet, path, path, daysQuery(days, DefaultMarketDays), nil)
	if err != nil {
		return out, err
	}
	if err := decodeMember(path, body, "data", &out.Data); err != nil {
		return models.MarketPerformance{}, err
	}

	protocols := gjson.GetBytes(body, "protocols")
	if protocols.Exists() && protocols.Type != gjson.Null && !protocols.IsArray() {
		return models.MarketPerformance{}, &PayloadError{Endpoint: path, Err: errProtocolsNotArray}
	}
	out.Protocols = make([]string, 0, len(protocols.Array()))
	for _, p := range protocols.Array() {
		out.Protocols = append(out.Protocols, p.String())
	}
	return out, nil
}

// GasAnalysis fetches daily gas price and fee averages.
func (d *DashboardAPI) GasAnalysis(ctx context.Context, days int) ([]models.GasPoint, error) {
	var out []models.GasPoint
	err := d.c.getData(ctx, "/dashboard/gas-analysis", daysQuery(days, DefaultGasDays), &out)
	return out, err
}

// MarketShare fetches each protocol's share of total volume.
func (d *DashboardAPI) MarketShare(ctx context.Context) ([]models.MarketShareSlice, error) {
	var out []models.MarketShareSlice
	err := d.c.getData(ctx, "/dashboard/market-share", nil, &out)
	return out, err
}

func daysQuery(days, def int) url.Values {
	if days <= 0 {
		days = def
	}
	return url.Values{"days": {strconv.Itoa(days)}}
}

// internal/domain/models/series.go
package models

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Time-series points carry a calendar day ("2006-01-02") as sent by the
// backend. Ordering is whatever the server returned; nothing here re-sorts.

// VolumePoint is one day of transaction volume.
type VolumePoint struct {
	Date         string  `json:"date"`
	Volume       float64 `json:"volume"`
	Transactions int64   `json:"transactions,omitempty"`
}

// ActivityPoint is one day of user activity.
type ActivityPoint struct {
	Date         string `json:"date"`
	ActiveUsers  int64  `json:"activeUsers"`
	NewUsers     int64  `json:"newUsers"`
	Transactions int64  `json:"transactions,omitempty"`
}

// GasPoint is one day of gas price and fee averages.
type GasPoint struct {
	Date        string  `json:"date"`
	AvgGasPrice float64 `json:"avgGasPrice"`
	AvgFee      float64 `json:"avgFee"`
	TotalFees   float64 `json:"totalFees,omitempty"`
}

// MarketRow is one day of per-protocol volume. On the wire it is a flat
// object: {"date": "...", "UNI": 1234.5, "AAVE": 99.1, ...}.
type MarketRow struct {
	Date   string
	Values map[string]float64
}

// UnmarshalJSON decodes the flat wire shape into Date + Values.
func (m *MarketRow) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	row := MarketRow{Values: make(map[string]float64, len(raw))}
	for k, v := range raw {
		if k == "date" {
			if err := json.Unmarshal(v, &row.Date); err != nil {
				return fmt.Errorf("market row date: %w", err)
			}
			continue
		}
		var f float64
		if err := json.Unmarshal(v, &f); err != nil {
			return fmt.Errorf("market row %q: %w", k, err)
		}
		row.Values[k] = f
	}

	*m = row
	return nil
}

// MarshalJSON writes the flat wire shape back out.
func (m MarketRow) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m.Values)+1)
	for k, v := range m.Values {
		out[k] = v
	}
	out["date"] = m.Date
	return json.Marshal(out)
}

// MarketPerformance is the market-performance payload: the rows plus the
// ordered list of protocol series keys that appear in each row.
type MarketPerformance struct {
	Data      []MarketRow `json:"data"`
	Protocols []string    `json:"protocols"`
}

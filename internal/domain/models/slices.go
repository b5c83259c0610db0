// internal/domain/models/slices.go
package models

// CategorySlice is one wedge of the protocol-distribution chart.
// Percentage is derived client-side when the server omits it.
type CategorySlice struct {
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage,omitempty"`
}

// MarketShareSlice is one wedge of the protocol market-share chart.
type MarketShareSlice struct {
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
}

// BlockchainContracts is the number of contracts deployed on one chain.
type BlockchainContracts struct {
	Blockchain string `json:"blockchain"`
	Contracts  int64  `json:"contracts"`
}

// RankedProtocol is one entry of the top-protocols ranking, pre-sorted by
// the server.
type RankedProtocol struct {
	Name         string  `json:"name"`
	Symbol       string  `json:"symbol,omitempty"`
	Type         string  `json:"type,omitempty"`
	Volume       float64 `json:"volume"`
	Transactions int64   `json:"transactions,omitempty"`
}

// WithPercentages returns a copy of slices where every zero Percentage is
// replaced by value/sum*100 rounded to two decimals.
func WithPercentages(slices []CategorySlice) []CategorySlice {
	var total float64
	for _, s := range slices {
		total += s.Value
	}

	out := make([]CategorySlice, len(slices))
	for i, s := range slices {
		if s.Percentage == 0 && total > 0 {
			s.Percentage = roundTo2(s.Value / total * 100)
		}
		out[i] = s
	}
	return out
}

func roundTo2(f float64) float64 {
	if f < 0 {
		return -roundTo2(-f)
	}
	return float64(int64(f*100+0.5)) / 100
}

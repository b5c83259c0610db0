// internal/domain/models/summary.go
package models

// Summary holds the top-level aggregate counts shown as stat tiles.
//
// Fields are pointers so that a count missing from the payload is
// distinguishable from a real zero; formatters render nil as "0".
type Summary struct {
	TotalProtocols    *float64 `json:"totalProtocols"`
	TotalContracts    *float64 `json:"totalContracts"`
	TotalUsers        *float64 `json:"totalUsers"`
	TotalTransactions *float64 `json:"totalTransactions"`
	TotalVolume       *float64 `json:"totalVolume"`
	UniqueBlockchains *float64 `json:"uniqueBlockchains"`
}

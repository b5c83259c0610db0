// internal/domain/models/entities.go
package models

// The types in this file mirror the backend's CRUD resources. The dashboard
// does not render them; they exist so the client can describe the full
// backend contract with typed signatures.

// Pagination is the paging block the backend appends to list responses.
type Pagination struct {
	Total       int `json:"total"`
	Pages       int `json:"pages"`
	CurrentPage int `json:"current_page"`
}

// Protocol is a DeFi protocol record.
type Protocol struct {
	ProtocolID     int64   `json:"protocol_id,omitempty"`
	ProtocolName   string  `json:"protocol_name"`
	ProtocolSymbol string  `json:"protocol_symbol"`
	Type           string  `json:"type"`
	Description    *string `json:"description,omitempty"`
	WebsiteURL     *string `json:"website_url,omitempty"`
	CreatedAt      string  `json:"created_at,omitempty"`
}

// ProtocolPage is one page of protocols.
type ProtocolPage struct {
	Protocols []Protocol `json:"protocols"`
	Pagination
}

// Contract is a deployed smart contract record.
type Contract struct {
	ContractID      int64  `json:"contract_id,omitempty"`
	ContractAddress string `json:"contract_address"`
	Blockchain      string `json:"blockchain"`
	ProtocolID      int64  `json:"protocol_id"`
	ProtocolName    string `json:"protocol_name,omitempty"`
	IsActive        *bool  `json:"is_active,omitempty"`
	CreatedAt       string `json:"created_at,omitempty"`
}

// ContractPage is one page of contracts.
type ContractPage struct {
	Contracts []Contract `json:"contracts"`
	Pagination
}

// User is an on-chain user record. Volume fields are decimal strings on the
// wire and are kept as strings to avoid losing precision.
type User struct {
	UserID               int64  `json:"user_id"`
	UserAddress          string `json:"user_address"`
	TotalTransactions    int64  `json:"total_transactions"`
	TotalVolume          string `json:"total_volume"`
	FirstTransactionDate string `json:"first_transaction_date,omitempty"`
	LastTransactionDate  string `json:"last_transaction_date,omitempty"`
	UserType             string `json:"user_type,omitempty"`
	CreatedAt            string `json:"created_at,omitempty"`
}

// UserPage is one page of users.
type UserPage struct {
	Users []User `json:"users"`
	Pagination
}

// TopUsers is the top-by-volume response.
type TopUsers struct {
	TopUsers []User `json:"top_users"`
}

// Transaction is a single on-chain transaction record.
type Transaction struct {
	TransactionID   int64  `json:"transaction_id"`
	TransactionHash string `json:"transaction_hash"`
	ContractID      int64  `json:"contract_id"`
	FromAddress     string `json:"from_address"`
	ToAddress       string `json:"to_address,omitempty"`
	Value           string `json:"value"`
	GasUsed         *int64 `json:"gas_used,omitempty"`
	GasPrice        string `json:"gas_price"`
	TransactionFee  string `json:"transaction_fee"`
	Timestamp       string `json:"timestamp"`
	BlockNumber     *int64 `json:"block_number,omitempty"`
	Status          string `json:"status"`
}

// TransactionPage is one page of transactions.
type TransactionPage struct {
	Transactions []Transaction `json:"transactions"`
	Pagination
}

package dto

import "github.com/shopspring/decimal"

// CreateDigitalPayoffRequest registers a digital payoff with the digital
// plugin pool.
type CreateDigitalPayoffRequest struct {
	Strike   decimal.Decimal `json:"strike" binding:"required" example:"100"`
	IsCall   bool            `json:"is_call" example:"true"`
	OracleID int64           `json:"oracle_id" example:"0"`
}

// PayoffResponse reports a newly registered payoff.
type PayoffResponse struct {
	Plugin   string `json:"plugin" example:"digital"`
	PayoffID int64  `json:"payoff_id" example:"1"`
}

// CreateOracleRequest registers a price source with the oracle adapter.
// Kind selects the source type: "http" reads URL, "static" reads Price.
type CreateOracleRequest struct {
	Kind  string          `json:"kind" binding:"required" example:"http"`
	URL   string          `json:"url,omitempty" example:"https://prices.example.com/spot/BTC"`
	Price decimal.Decimal `json:"price,omitempty" example:"101.5"`
}

// OracleResponse reports a newly registered price source.
type OracleResponse struct {
	OracleID    int64  `json:"oracle_id" example:"0"`
	Description string `json:"description" example:"http:https://prices.example.com/spot/BTC"`
}

// CreditRequest mints collateral onto a holder account.
type CreditRequest struct {
	Asset  string          `json:"asset" binding:"required" example:"USDC"`
	Holder string          `json:"holder" binding:"required" example:"alice"`
	Amount decimal.Decimal `json:"amount" binding:"required" example:"500"`
}

// BalanceResponse reports one holder's balance for one asset.
type BalanceResponse struct {
	Asset   string          `json:"asset" example:"USDC"`
	Holder  string          `json:"holder" example:"alice"`
	Balance decimal.Decimal `json:"balance" example:"500"`
}

// PauseResponse reports the pool's pause state after an admin toggle.
type PauseResponse struct {
	Paused bool `json:"paused" example:"true"`
}

package dto

import (
	"github.com/shopspring/decimal"

	"github.com/guttosm/tradepool/internal/domain/models"
)

// CreateTradeRequest carries the terms for POST /api/v1/trades.
//
// Window bounds are unix seconds. Amounts are decimal strings in the
// trade's collateral asset.
type CreateTradeRequest struct {
	CollateralAsset string          `json:"collateral_asset" binding:"required" example:"USDC"`
	PayoffPlugin    string          `json:"payoff_plugin" binding:"required" example:"digital"`
	PayoffID        int64           `json:"payoff_id" example:"1"`
	LongRequired    decimal.Decimal `json:"long_required" binding:"required" example:"10"`
	ShortRequired   decimal.Decimal `json:"short_required" binding:"required" example:"100"`
	DepositEnd      int64           `json:"deposit_end" binding:"required" example:"1767312000"`
	SettleStart     int64           `json:"settle_start" binding:"required" example:"1768435200"`
}

// CreateAndDepositRequest creates a trade and funds one side in a single
// call. The whole request unwinds if either step fails.
type CreateAndDepositRequest struct {
	CreateTradeRequest
	Side string `json:"side" binding:"required" example:"long"`
	User string `json:"user" binding:"required" example:"alice"`
}

// SideRequest identifies the acting party for deposit, claim and withdraw.
type SideRequest struct {
	Side string `json:"side" binding:"required" example:"long"`
	User string `json:"user" binding:"required" example:"alice"`
}

// TradeResponse is the JSON shape of a trade on every trade endpoint.
type TradeResponse struct {
	ID              int64           `json:"id" example:"1"`
	CollateralAsset string          `json:"collateral_asset" example:"USDC"`
	PayoffPlugin    string          `json:"payoff_plugin" example:"digital"`
	PayoffID        int64           `json:"payoff_id" example:"1"`
	DepositEnd      int64           `json:"deposit_end" example:"1767312000"`
	SettleStart     int64           `json:"settle_start" example:"1768435200"`
	LongRequired    decimal.Decimal `json:"long_required" example:"10"`
	ShortRequired   decimal.Decimal `json:"short_required" example:"100"`
	LongDeposited   decimal.Decimal `json:"long_deposited" example:"10"`
	ShortDeposited  decimal.Decimal `json:"short_deposited" example:"0"`
	LongUser        string          `json:"long_user,omitempty" example:"alice"`
	ShortUser       string          `json:"short_user,omitempty" example:"bob"`
	LongPayout      decimal.Decimal `json:"long_payout" example:"0"`
	ShortPayout     decimal.Decimal `json:"short_payout" example:"0"`
	Settled         bool            `json:"settled" example:"false"`
	LongClaimed     bool            `json:"long_claimed" example:"false"`
	ShortClaimed    bool            `json:"short_claimed" example:"false"`
	CreatedAt       int64           `json:"created_at" example:"1767139200"`
}

// NewTradeResponse maps a domain trade onto the API shape.
func NewTradeResponse(t *models.Trade) TradeResponse {
	return TradeResponse{
		ID:              t.ID,
		CollateralAsset: t.CollateralAsset,
		PayoffPlugin:    t.PayoffPlugin,
		PayoffID:        t.PayoffID,
		DepositEnd:      t.DepositEnd,
		SettleStart:     t.SettleStart,
		LongRequired:    t.LongRequired,
		ShortRequired:   t.ShortRequired,
		LongDeposited:   t.LongDeposited,
		ShortDeposited:  t.ShortDeposited,
		LongUser:        t.LongUser,
		ShortUser:       t.ShortUser,
		LongPayout:      t.LongPayout,
		ShortPayout:     t.ShortPayout,
		Settled:         t.Settled,
		LongClaimed:     t.LongClaimed,
		ShortClaimed:    t.ShortClaimed,
		CreatedAt:       t.CreatedAt,
	}
}

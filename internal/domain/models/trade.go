package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Side identifies one of the two participants of a trade.
type Side int

const (
	SideLong  Side = 0
	SideShort Side = 1
)

// String returns the canonical lowercase name of the side.
func (s Side) String() string {
	switch s {
	case SideLong:
		return "long"
	case SideShort:
		return "short"
	default:
		return fmt.Sprintf("side(%d)", int(s))
	}
}

// Valid reports whether the side value is one of the two supported sides.
func (s Side) Valid() bool { return s == SideLong || s == SideShort }

// ParseSide converts a wire representation ("long"/"short", "0"/"1",
// "buyer"/"seller") into a Side.
func ParseSide(raw string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "long", "buyer", "0":
		return SideLong, nil
	case "short", "seller", "1":
		return SideShort, nil
	default:
		return 0, fmt.Errorf("invalid side %q", raw)
	}
}

// Trade is one bilateral collateralized escrow agreement.
//
// Terms (asset, payoff reference, windows, required amounts) are fixed at
// creation and never change. Funding, settlement and claim fields advance
// monotonically: a side's deposited amount is either zero or exactly the
// required amount, Settled flips at most once, and each side's Claimed flag
// flips at most once regardless of whether the funds left through a claim or
// a withdraw.
type Trade struct {
	ID int64 `json:"id"`

	// Immutable terms.
	CollateralAsset string `json:"collateral_asset"`
	PayoffPlugin    string `json:"payoff_plugin"`
	PayoffID        int64  `json:"payoff_id"`
	DepositEnd      int64  `json:"deposit_end"`  // unix seconds, exclusive upper bound for deposits
	SettleStart     int64  `json:"settle_start"` // unix seconds, inclusive lower bound for settlement

	LongRequired  decimal.Decimal `json:"long_required"`
	ShortRequired decimal.Decimal `json:"short_required"`

	// Funding state. Users are bound on first deposit and empty before.
	LongUser       string          `json:"long_user"`
	ShortUser      string          `json:"short_user"`
	LongDeposited  decimal.Decimal `json:"long_deposited"`
	ShortDeposited decimal.Decimal `json:"short_deposited"`

	// Settlement state. Payouts are meaningful only when Settled is true.
	Settled     bool            `json:"settled"`
	LongPayout  decimal.Decimal `json:"long_payout"`
	ShortPayout decimal.Decimal `json:"short_payout"`

	// Claim state, shared by claim and withdraw paths.
	LongClaimed  bool `json:"long_claimed"`
	ShortClaimed bool `json:"short_claimed"`

	CreatedAt int64 `json:"created_at"`
}

// Clone returns a deep copy so callers can mutate the result without
// affecting the stored record. Decimal values are immutable, so a shallow
// struct copy is sufficient for them.
func (t *Trade) Clone() *Trade {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}

// Required returns the required collateral amount for the given side.
func (t *Trade) Required(side Side) decimal.Decimal {
	if side == SideLong {
		return t.LongRequired
	}
	return t.ShortRequired
}

// Deposited returns the escrowed amount for the given side.
func (t *Trade) Deposited(side Side) decimal.Decimal {
	if side == SideLong {
		return t.LongDeposited
	}
	return t.ShortDeposited
}

// User returns the account bound to the given side, empty if unfunded.
func (t *Trade) User(side Side) string {
	if side == SideLong {
		return t.LongUser
	}
	return t.ShortUser
}

// Payout returns the settled payout for the given side.
func (t *Trade) Payout(side Side) decimal.Decimal {
	if side == SideLong {
		return t.LongPayout
	}
	return t.ShortPayout
}

// Claimed reports whether the given side already released its funds,
// either through a claim or a withdraw.
func (t *Trade) Claimed(side Side) bool {
	if side == SideLong {
		return t.LongClaimed
	}
	return t.ShortClaimed
}

// Funded reports whether the given side has escrowed its full required amount.
func (t *Trade) Funded(side Side) bool {
	return t.Deposited(side).IsPositive()
}

// FullyFunded reports whether both sides have escrowed their required amounts.
func (t *Trade) FullyFunded() bool {
	return t.Funded(SideLong) && t.Funded(SideShort)
}

// SetDeposit binds the user and escrowed amount for the given side.
func (t *Trade) SetDeposit(side Side, user string, amount decimal.Decimal) {
	if side == SideLong {
		t.LongUser = user
		t.LongDeposited = amount
		return
	}
	t.ShortUser = user
	t.ShortDeposited = amount
}

// SetClaimed marks the given side as claimed.
func (t *Trade) SetClaimed(side Side) {
	if side == SideLong {
		t.LongClaimed = true
		return
	}
	t.ShortClaimed = true
}

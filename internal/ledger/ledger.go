// Package ledger implements the collateral transfer boundary of the pool: an
// account ledger that moves collateral units between holder accounts and the
// pool's custody account. Transfers either complete fully or report an error;
// there is no silent no-op path.
package ledger

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// Custody is the reserved holder name owning all escrowed collateral.
// Regular accounts cannot use it.
const Custody = "$escrow"

// ErrInsufficientFunds reports that the source account does not hold the
// requested amount.
var ErrInsufficientFunds = errors.New("ledger: insufficient funds")

// ErrInvalidAmount reports a zero or negative transfer amount.
var ErrInvalidAmount = errors.New("ledger: amount must be positive")

// ErrReservedHolder reports an attempt to address the custody account
// directly.
var ErrReservedHolder = errors.New("ledger: holder name is reserved")

// Ledger is the full account ledger surface: the escrow engine uses the two
// transfer methods, the HTTP layer additionally reads balances and credits
// accounts (provisioning).
type Ledger interface {
	// TransferIn moves amount of asset from the holder into custody.
	TransferIn(ctx context.Context, asset, from string, amount decimal.Decimal) error
	// TransferOut moves amount of asset from custody to the holder.
	TransferOut(ctx context.Context, asset, to string, amount decimal.Decimal) error
	// Balance returns the holder's balance for the asset (zero if absent).
	Balance(ctx context.Context, asset, holder string) (decimal.Decimal, error)
	// Credit mints amount of asset onto the holder's account.
	Credit(ctx context.Context, asset, holder string, amount decimal.Decimal) error
}

func validateTransfer(asset, holder string, amount decimal.Decimal) error {
	if asset == "" || holder == "" {
		return errors.New("ledger: missing asset or holder")
	}
	if holder == Custody {
		return ErrReservedHolder
	}
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

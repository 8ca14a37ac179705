package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// Memory is an in-process ledger with the same semantics as the Postgres
// implementation. Used by tests and by local development without a database.
type Memory struct {
	mu       sync.Mutex
	balances map[string]decimal.Decimal // key asset/holder
}

// NewMemory returns an empty in-memory ledger.
func NewMemory() *Memory {
	return &Memory{balances: map[string]decimal.Decimal{}}
}

var _ Ledger = (*Memory)(nil)

func memKey(asset, holder string) string { return asset + "/" + holder }

func (l *Memory) get(asset, holder string) decimal.Decimal {
	if b, ok := l.balances[memKey(asset, holder)]; ok {
		return b
	}
	return decimal.Zero
}

// TransferIn implements Ledger.
func (l *Memory) TransferIn(ctx context.Context, asset, from string, amount decimal.Decimal) error {
	if err := validateTransfer(asset, from, amount); err != nil {
		return err
	}
	return l.move(asset, from, Custody, amount)
}

// TransferOut implements Ledger.
func (l *Memory) TransferOut(ctx context.Context, asset, to string, amount decimal.Decimal) error {
	if err := validateTransfer(asset, to, amount); err != nil {
		return err
	}
	return l.move(asset, Custody, to, amount)
}

func (l *Memory) move(asset, from, to string, amount decimal.Decimal) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.get(asset, from).LessThan(amount) {
		return fmt.Errorf("%w: %s needs %s %s", ErrInsufficientFunds, from, amount, asset)
	}
	l.balances[memKey(asset, from)] = l.get(asset, from).Sub(amount)
	l.balances[memKey(asset, to)] = l.get(asset, to).Add(amount)
	return nil
}

// Balance implements Ledger.
func (l *Memory) Balance(_ context.Context, asset, holder string) (decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.get(asset, holder), nil
}

// Credit implements Ledger.
func (l *Memory) Credit(_ context.Context, asset, holder string, amount decimal.Decimal) error {
	if err := validateTransfer(asset, holder, amount); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[memKey(asset, holder)] = l.get(asset, holder).Add(amount)
	return nil
}

package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMemoryLedger_RoundTrip(t *testing.T) {
	ctx := context.Background()
	l := NewMemory()

	if err := l.Credit(ctx, "USDC", "alice", decimal.NewFromInt(100)); err != nil {
		t.Fatalf("credit: %v", err)
	}
	if err := l.TransferIn(ctx, "USDC", "alice", decimal.NewFromInt(40)); err != nil {
		t.Fatalf("transfer in: %v", err)
	}

	custody, _ := l.Balance(ctx, "USDC", Custody)
	if !custody.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("custody = %s, want 40", custody)
	}

	if err := l.TransferOut(ctx, "USDC", "bob", decimal.NewFromInt(40)); err != nil {
		t.Fatalf("transfer out: %v", err)
	}
	bob, _ := l.Balance(ctx, "USDC", "bob")
	if !bob.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("bob = %s, want 40", bob)
	}
	custody, _ = l.Balance(ctx, "USDC", Custody)
	if !custody.IsZero() {
		t.Fatalf("custody = %s, want 0", custody)
	}
}

func TestMemoryLedger_Rejections(t *testing.T) {
	ctx := context.Background()
	l := NewMemory()

	if err := l.TransferIn(ctx, "USDC", "alice", decimal.NewFromInt(1)); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("want ErrInsufficientFunds, got %v", err)
	}
	if err := l.TransferIn(ctx, "USDC", "alice", decimal.Zero); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("want ErrInvalidAmount, got %v", err)
	}
	if err := l.TransferIn(ctx, "USDC", "alice", decimal.NewFromInt(-3)); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("want ErrInvalidAmount, got %v", err)
	}
	if err := l.Credit(ctx, "USDC", Custody, decimal.NewFromInt(1)); !errors.Is(err, ErrReservedHolder) {
		t.Fatalf("want ErrReservedHolder, got %v", err)
	}
	if err := l.TransferOut(ctx, "USDC", "bob", decimal.NewFromInt(5)); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("custody overdraft: want ErrInsufficientFunds, got %v", err)
	}

	// Missing asset/holder.
	if err := l.Credit(ctx, "", "alice", decimal.NewFromInt(1)); err == nil {
		t.Fatal("empty asset accepted")
	}
	if err := l.Credit(ctx, "USDC", "", decimal.NewFromInt(1)); err == nil {
		t.Fatal("empty holder accepted")
	}
}

func TestMemoryLedger_BalanceDefaultsToZero(t *testing.T) {
	l := NewMemory()
	b, err := l.Balance(context.Background(), "USDC", "nobody")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if !b.IsZero() {
		t.Fatalf("balance = %s, want 0", b)
	}
}

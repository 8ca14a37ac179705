package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
)

// Postgres is the production ledger over the accounts table. Each transfer
// runs in one transaction: debit with a balance guard, then credit. The
// debit uses an UPDATE with a balance predicate so an insufficient balance
// surfaces as zero affected rows instead of a negative balance.
type Postgres struct {
	db *sql.DB
}

// NewPostgres returns a ledger backed by the given database handle.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

var _ Ledger = (*Postgres)(nil)

// TransferIn implements Ledger.
func (l *Postgres) TransferIn(ctx context.Context, asset, from string, amount decimal.Decimal) error {
	if err := validateTransfer(asset, from, amount); err != nil {
		return err
	}
	return l.move(ctx, asset, from, Custody, amount)
}

// TransferOut implements Ledger.
func (l *Postgres) TransferOut(ctx context.Context, asset, to string, amount decimal.Decimal) error {
	if err := validateTransfer(asset, to, amount); err != nil {
		return err
	}
	return l.move(ctx, asset, Custody, to, amount)
}

func (l *Postgres) move(ctx context.Context, asset, from, to string, amount decimal.Decimal) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transfer: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE accounts
		SET balance = balance - $3
		WHERE asset = $1 AND holder = $2 AND balance >= $3
	`, asset, from, amount)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("debit %s/%s: %w", asset, from, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("debit %s/%s: %w", asset, from, err)
	}
	if affected == 0 {
		_ = tx.Rollback()
		return fmt.Errorf("%w: %s needs %s %s", ErrInsufficientFunds, from, amount, asset)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO accounts (asset, holder, balance)
		VALUES ($1, $2, $3)
		ON CONFLICT (asset, holder)
		DO UPDATE SET balance = accounts.balance + EXCLUDED.balance
	`, asset, to, amount); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("credit %s/%s: %w", asset, to, err)
	}

	return tx.Commit()
}

// Balance implements Ledger.
func (l *Postgres) Balance(ctx context.Context, asset, holder string) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := l.db.QueryRowContext(ctx,
		`SELECT balance FROM accounts WHERE asset = $1 AND holder = $2`,
		asset, holder,
	).Scan(&balance)
	if err == sql.ErrNoRows {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("balance %s/%s: %w", asset, holder, err)
	}
	return balance, nil
}

// Credit implements Ledger.
func (l *Postgres) Credit(ctx context.Context, asset, holder string, amount decimal.Decimal) error {
	if err := validateTransfer(asset, holder, amount); err != nil {
		return err
	}
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO accounts (asset, holder, balance)
		VALUES ($1, $2, $3)
		ON CONFLICT (asset, holder)
		DO UPDATE SET balance = accounts.balance + EXCLUDED.balance
	`, asset, holder, amount)
	if err != nil {
		return fmt.Errorf("credit %s/%s: %w", asset, holder, err)
	}
	return nil
}

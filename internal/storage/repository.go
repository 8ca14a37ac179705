package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/guttosm/tradepool/internal/domain/models"
	"github.com/guttosm/tradepool/internal/escrow"
)

// TradeRepository defines the contract for trade persistence.
type TradeRepository interface {
	Create(ctx context.Context, trade *models.Trade) (int64, error)
	Get(ctx context.Context, id int64) (*models.Trade, error)
	Update(ctx context.Context, trade *models.Trade) error
	Delete(ctx context.Context, id int64) error
}

type tradeRepository struct {
	db *sql.DB
}

func NewTradeRepository(db *sql.DB) TradeRepository {
	return &tradeRepository{db: db}
}

var _ escrow.TradeState = (*tradeRepository)(nil)

const tradeColumns = `id, collateral_asset, payoff_plugin, payoff_id,
		deposit_end, settle_start,
		long_required, short_required, long_deposited, short_deposited,
		long_user, short_user, long_payout, short_payout,
		settled, long_claimed, short_claimed, created_at`

// Create inserts a new trade and returns its assigned identifier.
func (r *tradeRepository) Create(ctx context.Context, trade *models.Trade) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO trades (
			collateral_asset, payoff_plugin, payoff_id,
			deposit_end, settle_start,
			long_required, short_required, long_deposited, short_deposited,
			long_user, short_user, long_payout, short_payout,
			settled, long_claimed, short_claimed, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id
	`,
		trade.CollateralAsset, trade.PayoffPlugin, trade.PayoffID,
		trade.DepositEnd, trade.SettleStart,
		trade.LongRequired, trade.ShortRequired, trade.LongDeposited, trade.ShortDeposited,
		trade.LongUser, trade.ShortUser, trade.LongPayout, trade.ShortPayout,
		trade.Settled, trade.LongClaimed, trade.ShortClaimed, trade.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert trade: %w", err)
	}
	return id, nil
}

// Get loads one trade by id. A missing row reports escrow.ErrNotFound.
func (r *tradeRepository) Get(ctx context.Context, id int64) (*models.Trade, error) {
	var t models.Trade
	err := r.db.QueryRowContext(ctx,
		`SELECT `+tradeColumns+` FROM trades WHERE id = $1`, id,
	).Scan(
		&t.ID, &t.CollateralAsset, &t.PayoffPlugin, &t.PayoffID,
		&t.DepositEnd, &t.SettleStart,
		&t.LongRequired, &t.ShortRequired, &t.LongDeposited, &t.ShortDeposited,
		&t.LongUser, &t.ShortUser, &t.LongPayout, &t.ShortPayout,
		&t.Settled, &t.LongClaimed, &t.ShortClaimed, &t.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: trade %d", escrow.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get trade %d: %w", id, err)
	}
	return &t, nil
}

// Update persists the mutable fields of a trade.
func (r *tradeRepository) Update(ctx context.Context, trade *models.Trade) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE trades
		SET long_deposited = $2, short_deposited = $3,
			long_user = $4, short_user = $5,
			long_payout = $6, short_payout = $7,
			settled = $8, long_claimed = $9, short_claimed = $10
		WHERE id = $1
	`,
		trade.ID,
		trade.LongDeposited, trade.ShortDeposited,
		trade.LongUser, trade.ShortUser,
		trade.LongPayout, trade.ShortPayout,
		trade.Settled, trade.LongClaimed, trade.ShortClaimed,
	)
	if err != nil {
		return fmt.Errorf("update trade %d: %w", trade.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update trade %d: %w", trade.ID, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: trade %d", escrow.ErrNotFound, trade.ID)
	}
	return nil
}

// Delete removes a trade row. Used to unwind a failed create-and-deposit.
func (r *tradeRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM trades WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete trade %d: %w", id, err)
	}
	return nil
}

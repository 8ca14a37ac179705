package escrow

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/tradepool/internal/domain/models"
	"github.com/guttosm/tradepool/internal/logger"
)

// TradeState persists trade records. Implementations must return cloned
// records from Get so the engine can mutate freely, and must treat Update as
// a full-record replacement keyed by the trade identifier.
type TradeState interface {
	Create(ctx context.Context, t *models.Trade) (int64, error)
	Get(ctx context.Context, id int64) (*models.Trade, error)
	Update(ctx context.Context, t *models.Trade) error
	Delete(ctx context.Context, id int64) error
}

// CollateralTransfer moves collateral units between a holder account and the
// pool's custody. Implementations must report failure explicitly (never
// silently no-op) on insufficient balance.
type CollateralTransfer interface {
	TransferIn(ctx context.Context, asset, from string, amount decimal.Decimal) error
	TransferOut(ctx context.Context, asset, to string, amount decimal.Decimal) error
}

// PayoffResolver dispatches settlement computation to the payoff plugin
// referenced by a trade. Execute is a pure computation over the two committed
// amounts plus whatever oracle state the plugin consults; it must not touch
// escrow state. The conservation of payouts (longPayout + shortPayout is at
// most the total committed) is the plugin's contract, not checked here.
type PayoffResolver interface {
	Exists(plugin string, payoffID int64) bool
	Execute(ctx context.Context, plugin string, payoffID int64, long, short decimal.Decimal) (longPayout, shortPayout decimal.Decimal, err error)
}

// TradeTerms are the immutable creation parameters of a trade.
type TradeTerms struct {
	CollateralAsset string
	PayoffPlugin    string
	PayoffID        int64
	DepositEnd      int64
	SettleStart     int64
	LongRequired    decimal.Decimal
	ShortRequired   decimal.Decimal
}

const lockStripes = 64

// Engine owns the trade escrow state machine: creation, the bounded deposit
// window, oracle-driven settlement and the claim/withdraw terminal paths.
//
// Operations on the same trade are serialized by a striped lock, giving the
// single-writer-per-trade ordering the accounting relies on; operations on
// distinct trades proceed independently. Every external transfer is treated
// as untrusted: state is persisted only after the transfer confirms, and a
// transfer failure aborts the whole operation with no partial state change.
type Engine struct {
	state    TradeState
	ledger   CollateralTransfer
	payoffs  PayoffResolver
	emitter  Emitter
	pauses   PauseView
	nowFn    func() int64
	tradeMus [lockStripes]sync.Mutex
}

// NewEngine constructs an engine over the given state, ledger and payoff
// resolver. Events go nowhere until SetEmitter is called.
func NewEngine(state TradeState, ledger CollateralTransfer, payoffs PayoffResolver) *Engine {
	return &Engine{
		state:   state,
		ledger:  ledger,
		payoffs: payoffs,
		emitter: NoopEmitter{},
		nowFn:   func() int64 { return time.Now().Unix() },
	}
}

// SetEmitter configures the event emitter used by the engine.
func (e *Engine) SetEmitter(emitter Emitter) {
	if emitter == nil {
		e.emitter = NoopEmitter{}
		return
	}
	e.emitter = emitter
}

// SetPauses configures the pause gate consulted by fund-moving operations.
func (e *Engine) SetPauses(p PauseView) { e.pauses = p }

// SetNowFunc overrides the time source, primarily used in tests.
func (e *Engine) SetNowFunc(now func() int64) {
	if now == nil {
		e.nowFn = func() int64 { return time.Now().Unix() }
		return
	}
	e.nowFn = now
}

func (e *Engine) now() int64 { return e.nowFn() }

func (e *Engine) emit(evt Event) {
	if e.emitter != nil {
		e.emitter.Emit(evt)
	}
}

func (e *Engine) lock(id int64) *sync.Mutex {
	return &e.tradeMus[uint64(id)%lockStripes]
}

// CreateTrade validates the terms, allocates a new trade identifier and
// persists an immutable record with zeroed funding and settlement fields.
// No collateral moves and the pause gate does not apply: pausing halts
// movement of funds, not the recording of new agreements.
func (e *Engine) CreateTrade(ctx context.Context, terms TradeTerms) (*models.Trade, error) {
	if err := e.validateTerms(terms); err != nil {
		return nil, err
	}
	trade := &models.Trade{
		CollateralAsset: terms.CollateralAsset,
		PayoffPlugin:    terms.PayoffPlugin,
		PayoffID:        terms.PayoffID,
		DepositEnd:      terms.DepositEnd,
		SettleStart:     terms.SettleStart,
		LongRequired:    terms.LongRequired,
		ShortRequired:   terms.ShortRequired,
		LongDeposited:   decimal.Zero,
		ShortDeposited:  decimal.Zero,
		LongPayout:      decimal.Zero,
		ShortPayout:     decimal.Zero,
		CreatedAt:       e.now(),
	}
	id, err := e.state.Create(ctx, trade)
	if err != nil {
		return nil, err
	}
	trade.ID = id
	e.emit(newTradeCreatedEvent(trade))
	return trade.Clone(), nil
}

// Deposit escrows exactly the side's required amount from caller, binding the
// caller to the side. The transfer is pulled first; the record is persisted
// only once the ledger confirms, so a failed transfer leaves the trade
// untouched.
func (e *Engine) Deposit(ctx context.Context, tradeID int64, side models.Side, caller string) (*models.Trade, error) {
	if err := Guard(e.pauses); err != nil {
		return nil, err
	}
	if !side.Valid() {
		return nil, fmt.Errorf("%w: unknown side %d", ErrStateConflict, side)
	}
	if caller == "" {
		return nil, fmt.Errorf("%w: missing caller account", ErrUnauthorized)
	}

	mu := e.lock(tradeID)
	mu.Lock()
	defer mu.Unlock()

	trade, err := e.state.Get(ctx, tradeID)
	if err != nil {
		return nil, err
	}
	if e.now() >= trade.DepositEnd {
		return nil, fmt.Errorf("%w: deposit window closed at %d", ErrWindowViolation, trade.DepositEnd)
	}
	if trade.Funded(side) {
		return nil, fmt.Errorf("%w: %s side already funded", ErrStateConflict, side)
	}

	required := trade.Required(side)
	if err := e.ledger.TransferIn(ctx, trade.CollateralAsset, caller, required); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransferFailure, err)
	}
	trade.SetDeposit(side, caller, required)
	if err := e.state.Update(ctx, trade); err != nil {
		// Collateral is in custody but the record did not advance; hand it
		// back so the failed call has no lasting effect.
		if cerr := e.ledger.TransferOut(ctx, trade.CollateralAsset, caller, required); cerr != nil {
			logger.L().Error().Err(cerr).
				Int64("trade_id", trade.ID).
				Str("account", caller).
				Str("amount", required.String()).
				Msg("deposit rollback failed, collateral stranded in custody")
		}
		return nil, err
	}
	e.emit(newTradeDepositedEvent(trade, side, required))
	return trade.Clone(), nil
}

// CreateAndDeposit composes CreateTrade and Deposit as one atomic operation:
// if the deposit leg fails, the freshly created record is removed, a
// trade.voided event retracts the earlier trade.created, and the caller
// observes no trade at all.
func (e *Engine) CreateAndDeposit(ctx context.Context, terms TradeTerms, side models.Side, caller string) (*models.Trade, error) {
	if err := Guard(e.pauses); err != nil {
		return nil, err
	}
	created, err := e.CreateTrade(ctx, terms)
	if err != nil {
		return nil, err
	}
	funded, err := e.Deposit(ctx, created.ID, side, caller)
	if err != nil {
		if derr := e.state.Delete(ctx, created.ID); derr != nil {
			logger.L().Error().Err(derr).
				Int64("trade_id", created.ID).
				Msg("rollback of unfunded trade failed")
		}
		// Observers already saw trade.created; tell them the record is gone.
		e.emit(newTradeVoidedEvent(created))
		return nil, err
	}
	return funded, nil
}

// Settle invokes the trade's payoff plugin exactly once and records the
// resulting payouts. Callable by anyone once the settlement window is open
// and both sides are funded: the outcome is deterministic given oracle state,
// so caller identity carries no weight. A second call fails without a second
// plugin invocation. If the plugin itself fails the trade stays unsettled and
// settle can be retried.
func (e *Engine) Settle(ctx context.Context, tradeID int64) (*models.Trade, error) {
	mu := e.lock(tradeID)
	mu.Lock()
	defer mu.Unlock()

	trade, err := e.state.Get(ctx, tradeID)
	if err != nil {
		return nil, err
	}
	if trade.Settled {
		return nil, fmt.Errorf("%w: already settled", ErrStateConflict)
	}
	if e.now() < trade.SettleStart {
		return nil, fmt.Errorf("%w: settlement opens at %d", ErrWindowViolation, trade.SettleStart)
	}
	if !trade.FullyFunded() {
		return nil, fmt.Errorf("%w: not fully funded", ErrStateConflict)
	}

	longPayout, shortPayout, err := e.payoffs.Execute(ctx, trade.PayoffPlugin, trade.PayoffID, trade.LongDeposited, trade.ShortDeposited)
	if err != nil {
		return nil, fmt.Errorf("payoff %s/%d: %w", trade.PayoffPlugin, trade.PayoffID, err)
	}
	if longPayout.IsNegative() || shortPayout.IsNegative() {
		return nil, fmt.Errorf("payoff %s/%d: negative payout", trade.PayoffPlugin, trade.PayoffID)
	}
	trade.Settled = true
	trade.LongPayout = longPayout
	trade.ShortPayout = shortPayout
	if err := e.state.Update(ctx, trade); err != nil {
		return nil, err
	}
	e.emit(newTradeSettledEvent(trade))
	return trade.Clone(), nil
}

// Claim pays out the settled amount for a side to the account bound at
// deposit time. Each side claims independently and at most once; a zero
// payout still marks the side as claimed without moving funds.
func (e *Engine) Claim(ctx context.Context, tradeID int64, side models.Side, caller string) (*models.Trade, error) {
	if err := Guard(e.pauses); err != nil {
		return nil, err
	}
	if !side.Valid() {
		return nil, fmt.Errorf("%w: unknown side %d", ErrStateConflict, side)
	}

	mu := e.lock(tradeID)
	mu.Lock()
	defer mu.Unlock()

	trade, err := e.state.Get(ctx, tradeID)
	if err != nil {
		return nil, err
	}
	if !trade.Settled {
		return nil, fmt.Errorf("%w: not settled", ErrStateConflict)
	}
	if trade.Claimed(side) {
		return nil, fmt.Errorf("%w: %s side already claimed", ErrStateConflict, side)
	}
	if caller == "" || caller != trade.User(side) {
		return nil, fmt.Errorf("%w: %s side belongs to %q", ErrUnauthorized, side, trade.User(side))
	}

	payout := trade.Payout(side)
	if payout.IsPositive() {
		if err := e.ledger.TransferOut(ctx, trade.CollateralAsset, caller, payout); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTransferFailure, err)
		}
	}
	trade.SetClaimed(side)
	if err := e.state.Update(ctx, trade); err != nil {
		// The payout already left custody; pull it back so a retry cannot
		// pay the side twice.
		if payout.IsPositive() {
			if cerr := e.ledger.TransferIn(ctx, trade.CollateralAsset, caller, payout); cerr != nil {
				logger.L().Error().Err(cerr).
					Int64("trade_id", trade.ID).
					Str("account", caller).
					Str("amount", payout.String()).
					Msg("claim rollback failed, payout left outside custody")
			}
		}
		return nil, err
	}
	e.emit(newTradeClaimedEvent(trade, side, payout))
	return trade.Clone(), nil
}

// Withdraw refunds a side's own deposit when the trade never settled: the
// counterparty never showed up, or nobody triggered settlement. Only
// reachable after the deposit window closes, and never on a settled trade;
// settled trades release funds exclusively through Claim.
func (e *Engine) Withdraw(ctx context.Context, tradeID int64, side models.Side, caller string) (*models.Trade, error) {
	if err := Guard(e.pauses); err != nil {
		return nil, err
	}
	if !side.Valid() {
		return nil, fmt.Errorf("%w: unknown side %d", ErrStateConflict, side)
	}

	mu := e.lock(tradeID)
	mu.Lock()
	defer mu.Unlock()

	trade, err := e.state.Get(ctx, tradeID)
	if err != nil {
		return nil, err
	}
	if e.now() < trade.DepositEnd {
		return nil, fmt.Errorf("%w: deposit window still open until %d", ErrWindowViolation, trade.DepositEnd)
	}
	if trade.Settled {
		return nil, fmt.Errorf("%w: settled trades release through claim", ErrStateConflict)
	}
	if !trade.Funded(side) {
		return nil, fmt.Errorf("%w: %s side never deposited", ErrStateConflict, side)
	}
	if trade.Claimed(side) {
		return nil, fmt.Errorf("%w: %s side already withdrawn", ErrStateConflict, side)
	}
	if caller == "" || caller != trade.User(side) {
		return nil, fmt.Errorf("%w: %s side belongs to %q", ErrUnauthorized, side, trade.User(side))
	}

	deposit := trade.Deposited(side)
	if err := e.ledger.TransferOut(ctx, trade.CollateralAsset, caller, deposit); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransferFailure, err)
	}
	trade.SetClaimed(side)
	if err := e.state.Update(ctx, trade); err != nil {
		// The refund already left custody; pull it back so a retry cannot
		// refund the side twice.
		if cerr := e.ledger.TransferIn(ctx, trade.CollateralAsset, caller, deposit); cerr != nil {
			logger.L().Error().Err(cerr).
				Int64("trade_id", trade.ID).
				Str("account", caller).
				Str("amount", deposit.String()).
				Msg("withdraw rollback failed, refund left outside custody")
		}
		return nil, err
	}
	e.emit(newTradeWithdrawnEvent(trade, side, deposit))
	return trade.Clone(), nil
}

// Get returns a copy of the full trade record.
func (e *Engine) Get(ctx context.Context, tradeID int64) (*models.Trade, error) {
	return e.state.Get(ctx, tradeID)
}

func (e *Engine) validateTerms(terms TradeTerms) error {
	if terms.CollateralAsset == "" {
		return fmt.Errorf("%w: missing collateral asset", ErrInvalidTerms)
	}
	if !terms.LongRequired.IsPositive() || !terms.ShortRequired.IsPositive() {
		return fmt.Errorf("%w: required amounts must be positive", ErrInvalidTerms)
	}
	if terms.DepositEnd >= terms.SettleStart {
		return fmt.Errorf("%w: deposit window must close before settlement opens", ErrInvalidTerms)
	}
	if terms.DepositEnd <= e.now() {
		return fmt.Errorf("%w: deposit window already closed", ErrInvalidTerms)
	}
	if e.payoffs != nil && !e.payoffs.Exists(terms.PayoffPlugin, terms.PayoffID) {
		return fmt.Errorf("%w: unknown payoff %s/%d", ErrInvalidTerms, terms.PayoffPlugin, terms.PayoffID)
	}
	return nil
}

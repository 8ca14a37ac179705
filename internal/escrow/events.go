package escrow

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/guttosm/tradepool/internal/domain/models"
)

// Canonical event types published to external indexers.
const (
	EventTypeTradeCreated   = "trade.created"
	EventTypeTradeVoided    = "trade.voided"
	EventTypeTradeDeposited = "trade.deposited"
	EventTypeTradeSettled   = "trade.settled"
	EventTypeTradeClaimed   = "trade.claimed"
	EventTypeTradeWithdrawn = "trade.withdrawn"
	EventTypePoolPaused     = "pool.paused"
	EventTypePoolUnpaused   = "pool.unpaused"
)

// Event is the payload broadcast for every observable lifecycle transition.
// Events exist solely for external observers; the engine returns results
// directly and never reads its own events back.
type Event struct {
	Type       string            `json:"type"`
	Attributes map[string]string `json:"attributes"`
}

// Emitter receives lifecycle events. Implementations must not block the
// calling goroutine for long; the engine emits synchronously after the state
// change has been persisted.
type Emitter interface {
	Emit(Event)
}

// NoopEmitter drops every event. Used when no observer is wired.
type NoopEmitter struct{}

func (NoopEmitter) Emit(Event) {}

func newTradeCreatedEvent(t *models.Trade) Event {
	attrs := tradeAttrs(t)
	attrs["collateralAsset"] = t.CollateralAsset
	attrs["payoffPlugin"] = t.PayoffPlugin
	attrs["payoffId"] = strconv.FormatInt(t.PayoffID, 10)
	attrs["depositEnd"] = strconv.FormatInt(t.DepositEnd, 10)
	attrs["settleStart"] = strconv.FormatInt(t.SettleStart, 10)
	attrs["longRequired"] = t.LongRequired.String()
	attrs["shortRequired"] = t.ShortRequired.String()
	return Event{Type: EventTypeTradeCreated, Attributes: attrs}
}

// newTradeVoidedEvent retracts an earlier trade.created for observers: the
// record was removed before either side funded it.
func newTradeVoidedEvent(t *models.Trade) Event {
	return Event{Type: EventTypeTradeVoided, Attributes: tradeAttrs(t)}
}

func newTradeDepositedEvent(t *models.Trade, side models.Side, amount decimal.Decimal) Event {
	attrs := tradeAttrs(t)
	attrs["side"] = side.String()
	attrs["user"] = t.User(side)
	attrs["amount"] = amount.String()
	return Event{Type: EventTypeTradeDeposited, Attributes: attrs}
}

func newTradeSettledEvent(t *models.Trade) Event {
	attrs := tradeAttrs(t)
	attrs["longPayout"] = t.LongPayout.String()
	attrs["shortPayout"] = t.ShortPayout.String()
	return Event{Type: EventTypeTradeSettled, Attributes: attrs}
}

func newTradeClaimedEvent(t *models.Trade, side models.Side, amount decimal.Decimal) Event {
	attrs := tradeAttrs(t)
	attrs["side"] = side.String()
	attrs["user"] = t.User(side)
	attrs["amount"] = amount.String()
	return Event{Type: EventTypeTradeClaimed, Attributes: attrs}
}

func newTradeWithdrawnEvent(t *models.Trade, side models.Side, amount decimal.Decimal) Event {
	attrs := tradeAttrs(t)
	attrs["side"] = side.String()
	attrs["user"] = t.User(side)
	attrs["amount"] = amount.String()
	return Event{Type: EventTypeTradeWithdrawn, Attributes: attrs}
}

// NewPauseEvent returns the event published when the gate toggles.
func NewPauseEvent(paused bool) Event {
	if paused {
		return Event{Type: EventTypePoolPaused, Attributes: map[string]string{}}
	}
	return Event{Type: EventTypePoolUnpaused, Attributes: map[string]string{}}
}

func tradeAttrs(t *models.Trade) map[string]string {
	if t == nil {
		return map[string]string{}
	}
	return map[string]string{
		"tradeId": strconv.FormatInt(t.ID, 10),
	}
}

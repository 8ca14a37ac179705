package payoff

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// PluginDigital is the registry name of the digital payoff pool.
const PluginDigital = "digital"

// PriceReader is the slice of the oracle adapter the digital payoff consumes.
type PriceReader interface {
	Price(ctx context.Context, oracleID int64) (decimal.Decimal, error)
}

// digitalPayoff is one stored digital/binary payoff definition: the long side
// wins the whole pot when the oracle price ends on the predicted side of the
// strike, otherwise the short side takes everything.
type digitalPayoff struct {
	Strike   decimal.Decimal
	IsCall   bool
	OracleID int64
}

// DigitalPool stores digital payoff definitions and evaluates them against
// oracle prices at settlement time.
type DigitalPool struct {
	mu      sync.RWMutex
	oracle  PriceReader
	nextID  int64
	payoffs map[int64]digitalPayoff
}

// NewDigitalPool returns an empty pool reading prices from the given oracle.
func NewDigitalPool(oracle PriceReader) *DigitalPool {
	return &DigitalPool{oracle: oracle, payoffs: map[int64]digitalPayoff{}}
}

// Name implements Plugin.
func (p *DigitalPool) Name() string { return PluginDigital }

// CreateDigitalPayoff stores a new definition and returns its identifier.
// isCall true means the long side wins when price >= strike; false means the
// long side wins when price < strike.
func (p *DigitalPool) CreateDigitalPayoff(strike decimal.Decimal, isCall bool, oracleID int64) (int64, error) {
	if strike.IsNegative() {
		return 0, fmt.Errorf("payoff: strike must be non-negative")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextID++
	p.payoffs[p.nextID] = digitalPayoff{Strike: strike, IsCall: isCall, OracleID: oracleID}
	return p.nextID, nil
}

// Exists implements Plugin.
func (p *DigitalPool) Exists(payoffID int64) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.payoffs[payoffID]
	return ok
}

// Execute implements Plugin: winner takes the whole pot, so conservation
// holds exactly (longPayout + shortPayout == long + short).
func (p *DigitalPool) Execute(ctx context.Context, payoffID int64, long, short decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	p.mu.RLock()
	def, ok := p.payoffs[payoffID]
	p.mu.RUnlock()
	if !ok {
		return decimal.Zero, decimal.Zero, fmt.Errorf("payoff: digital payoff %d not found", payoffID)
	}

	spot, err := p.oracle.Price(ctx, def.OracleID)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("payoff: oracle %d: %w", def.OracleID, err)
	}

	pot := long.Add(short)
	longWins := spot.GreaterThanOrEqual(def.Strike)
	if !def.IsCall {
		longWins = spot.LessThan(def.Strike)
	}
	if longWins {
		return pot, decimal.Zero, nil
	}
	return decimal.Zero, pot, nil
}

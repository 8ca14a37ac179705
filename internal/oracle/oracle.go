// Package oracle provides the price data consumed by payoff plugins.
//
// Sources are insertable at runtime and referenced by an opaque identifier;
// the escrow engine never talks to the adapter directly, only payoff plugins
// do.
package oracle

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// PriceSource is one registered price feed.
type PriceSource interface {
	// LatestPrice returns the current price of the feed.
	LatestPrice(ctx context.Context) (decimal.Decimal, error)
	// Describe returns a short human-readable handle for logs and listings.
	Describe() string
}

// Adapter registers price sources and serves price lookups by identifier.
type Adapter struct {
	mu      sync.RWMutex
	nextID  int64
	sources map[int64]PriceSource
}

// NewAdapter returns an adapter with no sources.
func NewAdapter() *Adapter {
	return &Adapter{sources: map[int64]PriceSource{}}
}

// InsertOracle registers a source and returns its identifier. Identifiers
// start at 0 and grow monotonically, matching the handles payoff definitions
// store.
func (a *Adapter) InsertOracle(source PriceSource) (int64, error) {
	if source == nil {
		return 0, fmt.Errorf("oracle: nil source")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	id := a.nextID
	a.nextID++
	a.sources[id] = source
	return id, nil
}

// Price returns the latest price of the source registered under id.
func (a *Adapter) Price(ctx context.Context, id int64) (decimal.Decimal, error) {
	a.mu.RLock()
	source, ok := a.sources[id]
	a.mu.RUnlock()
	if !ok {
		return decimal.Zero, fmt.Errorf("oracle: source %d not registered", id)
	}
	price, err := source.LatestPrice(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("oracle: source %d (%s): %w", id, source.Describe(), err)
	}
	return price, nil
}

// Sources lists the registered sources keyed by identifier.
func (a *Adapter) Sources() map[int64]string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make(map[int64]string, len(a.sources))
	for id, s := range a.sources {
		out[id] = s.Describe()
	}
	return out
}

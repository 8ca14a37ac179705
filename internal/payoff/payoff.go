// Package payoff hosts the pluggable settlement computations of the pool.
//
// A payoff plugin converts the two committed collateral amounts plus oracle
// state into the two final payout amounts. Plugins keep their own payoff
// definitions (created ahead of trade creation and referenced by id) and are
// selected per trade through the registry by name, never by type inspection.
// The contract every plugin must honor: payoutLong + payoutShort never
// exceeds long + short. The escrow engine does not re-check conservation;
// a buggy plugin is a risk the integrator accepts when choosing it.
package payoff

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// Plugin is one payoff computation family (digital, and whatever shapes come
// later). Execute must be free of side effects on escrow state.
type Plugin interface {
	Name() string
	Exists(payoffID int64) bool
	Execute(ctx context.Context, payoffID int64, long, short decimal.Decimal) (longPayout, shortPayout decimal.Decimal, err error)
}

// Registry dispatches payoff execution to registered plugins by name.
// It implements the engine's PayoffResolver.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{plugins: map[string]Plugin{}}
}

// Register adds a plugin under its name, replacing any previous registration.
func (r *Registry) Register(p Plugin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plugins[p.Name()] = p
}

// Plugin returns the registered plugin with the given name.
func (r *Registry) Plugin(name string) (Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[name]
	return p, ok
}

// Exists reports whether the named plugin knows the given payoff definition.
func (r *Registry) Exists(name string, payoffID int64) bool {
	p, ok := r.Plugin(name)
	if !ok {
		return false
	}
	return p.Exists(payoffID)
}

// Execute dispatches to the named plugin.
func (r *Registry) Execute(ctx context.Context, name string, payoffID int64, long, short decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	p, ok := r.Plugin(name)
	if !ok {
		return decimal.Zero, decimal.Zero, fmt.Errorf("payoff: plugin %q not registered", name)
	}
	return p.Execute(ctx, payoffID, long, short)
}

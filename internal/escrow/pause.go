package escrow

import (
	"fmt"
	"sync/atomic"
)

// PauseView exposes the read side of the pause gate to the engine.
type PauseView interface {
	IsPaused() bool
}

// Guard returns ErrPaused when the gate is engaged. A nil view means the
// deployment runs without a pause gate and everything is allowed through.
func Guard(p PauseView) error {
	if p == nil {
		return nil
	}
	if p.IsPaused() {
		return ErrPaused
	}
	return nil
}

// Gate is the process-wide pause switch for fund-moving operations.
//
// While engaged, deposits, claims and withdrawals reject with ErrPaused;
// trade creation and reads stay available. Toggling is idempotent and has no
// side effects beyond the flag itself: no queued operations, no time
// adjustments. Owner restriction is enforced at the HTTP layer.
type Gate struct {
	paused atomic.Bool
}

// NewGate returns a gate in the active (unpaused) state.
func NewGate() *Gate { return &Gate{} }

// IsPaused reports whether the gate is engaged.
func (g *Gate) IsPaused() bool {
	if g == nil {
		return false
	}
	return g.paused.Load()
}

// Pause engages the gate.
func (g *Gate) Pause() { g.paused.Store(true) }

// Unpause releases the gate.
func (g *Gate) Unpause() { g.paused.Store(false) }

// State returns "paused" or "active" for status reporting.
func (g *Gate) State() string {
	if g.IsPaused() {
		return "paused"
	}
	return "active"
}

var _ PauseView = (*Gate)(nil)
var _ fmt.Stringer = (*Gate)(nil)

func (g *Gate) String() string { return g.State() }

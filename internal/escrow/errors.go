package escrow

import "errors"

// Sentinel errors for every rejection class of the pool. Handlers map these
// onto HTTP status codes with errors.Is, so operations must wrap (never
// replace) them when adding context.
var (
	// ErrInvalidTerms rejects malformed creation parameters: a zero or
	// negative required amount, or a deposit window that does not close
	// strictly before the settlement window opens.
	ErrInvalidTerms = errors.New("escrow: invalid trade terms")

	// ErrWindowViolation rejects operations attempted outside their time
	// window: deposits after depositEnd, settlement before settleStart,
	// withdrawals before depositEnd.
	ErrWindowViolation = errors.New("escrow: outside permitted time window")

	// ErrStateConflict rejects operations against a trade not in the
	// required lifecycle state: double deposits, double settlement, double
	// claims, claims before settlement, withdrawals after settlement.
	ErrStateConflict = errors.New("escrow: trade not in required state")

	// ErrUnauthorized rejects claim/withdraw calls from anyone but the
	// account bound to the side at deposit time.
	ErrUnauthorized = errors.New("escrow: caller does not own this side")

	// ErrTransferFailure wraps a failed collateral movement; the operation
	// that triggered the transfer leaves no state behind.
	ErrTransferFailure = errors.New("escrow: collateral transfer failed")

	// ErrPaused rejects fund-moving operations while the pause gate is
	// engaged.
	ErrPaused = errors.New("escrow: pool is paused")

	// ErrNotFound rejects operations against an unknown trade identifier.
	ErrNotFound = errors.New("escrow: trade not found")
)

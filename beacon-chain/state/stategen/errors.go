package stategen

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

var (
	// ErrUnknownBlock is returned when fork-choice has no such block, either
	// because it was pruned below the finalized anchor or never seen.
	ErrUnknownBlock = errors.New("unknown block")
	// ErrInvalidSlot is returned when the requested slot is below the
	// anchor block's own slot.
	ErrInvalidSlot = errors.New("invalid slot: below block's own slot")
	// ErrStateNotAvailable is returned when a state root is unknown to
	// persistent storage and not reachable by replay from any cached
	// ancestor.
	ErrStateNotAvailable = errors.New("state not available")
	// ErrTransitionError wraps a deterministic failure surfaced by the
	// Transitioner; it indicates inconsistent inputs to the state
	// transition, not a bug in the regenerator itself.
	ErrTransitionError = errors.New("state transition error")
	// ErrCancelled is returned to a waiter that abandoned a query before
	// its coalesced computation completed.
	ErrCancelled = errors.New("query cancelled")
	// ErrStateNotPersisted is returned by a StateSource that has no record
	// of the requested state root.
	ErrStateNotPersisted = errors.New("state not persisted")
)

// errTransition wraps a failure returned by the Transitioner so that
// callers can match it with errors.Is(err, ErrTransitionError) while still
// seeing the underlying cause in the error string.
func errTransition(cause error) error {
	return pkgerrors.Wrap(ErrTransitionError, cause.Error())
}

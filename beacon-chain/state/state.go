// Package state defines the narrow view of a beacon state the regenerator
// needs. The regenerator never constructs or mutates the full validator
// registry, balances, randao or committee state itself; that belongs to
// the state-transition function. It only threads opaque, immutable
// snapshots between caches, StateSource and the Transitioner.
package state

import "github.com/go-consensus/beacon-regen/consensus-types/primitives"

// BeaconState is the read-only view of a cached beacon state the
// regenerator operates on. Implementations are expected to be immutable:
// any logical mutation (processing a slot or a block) must produce a new
// BeaconState rather than modify the receiver, so that a reference handed
// to one caller is never surprised by another caller's replay.
type BeaconState interface {
	// Slot is the slot number this state corresponds to.
	Slot() primitives.Slot
	// StateRoot is the content-address this state is stored/retrieved under.
	StateRoot() primitives.Root
	// Copy returns a snapshot that is safe for a caller to hold onto
	// independently of whatever cache entry produced it.
	Copy() BeaconState
}

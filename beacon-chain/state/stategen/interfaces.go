package stategen

import (
	"context"

	"github.com/go-consensus/beacon-regen/beacon-chain/state"
	"github.com/go-consensus/beacon-regen/consensus-types/primitives"
)

// Block is the regenerator's view of a block: everything it needs to
// reason about the block/state DAG, and nothing else. The regenerator
// treats a block as opaque beyond these four fields.
type Block struct {
	Slot       primitives.Slot
	ParentRoot primitives.Root
	StateRoot  primitives.Root
	BlockRoot  primitives.Root
}

// BlockSource is the regenerator's read-only view over fork-choice and the
// block database. It is assumed internally thread-safe.
type BlockSource interface {
	// GetBlock returns the block with the given root if it is currently in
	// the non-pruned fork-choice subtree, and false otherwise.
	GetBlock(ctx context.Context, blockRoot primitives.Root) (Block, bool, error)
	// GetAncestors returns the chain of blocks from blockRoot down to and
	// including the first ancestor with slot <= stopSlot, ordered from
	// blockRoot to that ancestor (highest slot first). The sequence is
	// deterministic for a given (blockRoot, stopSlot) at a given finalized
	// anchor.
	GetAncestors(ctx context.Context, blockRoot primitives.Root, stopSlot primitives.Slot) ([]Block, error)
	// Finalized returns the current finalized anchor.
	Finalized(ctx context.Context) (epoch primitives.Epoch, blockRoot primitives.Root, slot primitives.Slot, err error)
}

// StateSource is the regenerator's read-only view over the persistent
// state store, the cold-load path.
type StateSource interface {
	// LoadState returns the persisted state for stateRoot, or
	// ErrStateNotPersisted if stateRoot is unknown to persistent storage.
	LoadState(ctx context.Context, stateRoot primitives.Root) (state.BeaconState, error)
}

// Transitioner is the regenerator's pure, deterministic state-transition
// engine. Concurrent invocations on distinct states are independent; the
// regenerator never mutates a state in place.
type Transitioner interface {
	// ProcessSlots advances s by empty slots up to and including
	// targetSlot, running per-slot and per-epoch processing as slot
	// boundaries are crossed. targetSlot must be >= s.Slot().
	ProcessSlots(ctx context.Context, s state.BeaconState, targetSlot primitives.Slot) (state.BeaconState, error)
	// ProcessBlock applies block to s, which must already be at
	// block.Slot (the caller runs ProcessSlots first).
	ProcessBlock(ctx context.Context, s state.BeaconState, block Block) (state.BeaconState, error)
}

// InterestingStateHook lets the block processor mark a state root as worth
// caching even off an epoch boundary. A nil hook means no state is ever
// considered interesting for this reason.
type InterestingStateHook interface {
	IsInteresting(stateRoot primitives.Root) bool
}

package stategen

import (
	"context"

	"github.com/go-consensus/beacon-regen/beacon-chain/state"
	"github.com/go-consensus/beacon-regen/consensus-types/primitives"
)

// StatePersister is an optional capability a StateSource may implement to
// receive hot states that are about to drop below the finalized slot and
// would otherwise simply be dropped by HotStateCache.Prune: it writes the
// soon-to-be-evicted hot state to durable storage before the in-memory
// copy is discarded.
//
// A StateSource that does not implement this is treated as having no
// durable migration path; eviction proceeds without it.
type StatePersister interface {
	PersistState(ctx context.Context, stateRoot primitives.Root, s state.BeaconState) error
}

// migrateBelowFinalized gives the StateSource a chance to persist every hot
// entry that OnFinalized is about to prune, before the prune actually runs.
// Persist failures are logged and otherwise ignored: a missed migration
// means a state that could have been reused cheaply must instead be
// replayed again later, not a correctness problem.
func (r *Regenerator) migrateBelowFinalized(ctx context.Context, finalizedSlot primitives.Slot) {
	persister, ok := r.states.(StatePersister)
	if !ok {
		return
	}
	for _, root := range r.hotCache.Keys() {
		s := r.hotCache.Get(root)
		if s == nil || s.Slot() >= finalizedSlot {
			continue
		}
		if err := persister.PersistState(ctx, root, s); err != nil {
			log.WithField("root", root).WithError(err).Warn("could not migrate hot state before eviction")
		}
	}
}

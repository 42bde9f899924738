package stategen

import (
	"context"

	"github.com/pkg/errors"
	"go.opencensus.io/trace"

	"github.com/go-consensus/beacon-regen/beacon-chain/state"
	"github.com/go-consensus/beacon-regen/consensus-types/primitives"
)

// GetState is a direct lookup by state root, cold-loading from StateSource
// on a miss. Concurrent callers for the same stateRoot coalesce onto a
// single StateSource.LoadState call.
func (r *Regenerator) GetState(ctx context.Context, stateRoot primitives.Root) (state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "stateGen.GetState")
	defer span.End()

	if s := r.hotCache.Get(stateRoot); s != nil {
		return s, nil
	}

	return r.coalescer.do(ctx, keyState(stateRoot), func(ctx context.Context) (state.BeaconState, error) {
		// Re-check under the coalescer: another caller may have installed
		// the handle and populated the cache between our first Get and
		// here.
		if s := r.hotCache.Get(stateRoot); s != nil {
			return s, nil
		}
		s, err := r.states.LoadState(ctx, stateRoot)
		if err != nil {
			if errors.Is(err, ErrStateNotPersisted) {
				return nil, ErrStateNotAvailable
			}
			return nil, errors.Wrap(err, "could not load state")
		}
		r.insertHot(stateRoot, s)
		return s, nil
	})
}

// HasState reports whether stateRoot is resolvable from the hot cache
// without touching StateSource.
func (r *Regenerator) HasState(stateRoot primitives.Root) bool {
	return r.hotCache.Has(stateRoot)
}

// PeekState returns the cached state for stateRoot without triggering a
// cold load, or nil if it is not currently cached. Useful for callers that
// only want to avoid a redundant replay, not force one.
func (r *Regenerator) PeekState(stateRoot primitives.Root) state.BeaconState {
	return r.hotCache.Get(stateRoot)
}

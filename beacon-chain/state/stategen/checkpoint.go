package stategen

import (
	"context"

	"go.opencensus.io/trace"

	"github.com/go-consensus/beacon-regen/beacon-chain/state"
	"github.com/go-consensus/beacon-regen/config/params"
	"github.com/go-consensus/beacon-regen/consensus-types/primitives"
)

// GetCheckpointState returns the canonical anchor state for a
// justification/finalization checkpoint. Two successive calls for the
// same (epoch, blockRoot) invoke the Transitioner at most once between
// them: the first materializes and caches it, the second is a
// CheckpointStateCache hit.
func (r *Regenerator) GetCheckpointState(ctx context.Context, epoch primitives.Epoch, blockRoot primitives.Root) (state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "stateGen.GetCheckpointState")
	defer span.End()

	if s := r.cpCache.Get(epoch, blockRoot); s != nil {
		return s, nil
	}

	return r.coalescer.do(ctx, keyCheckpoint(epoch, blockRoot), func(ctx context.Context) (state.BeaconState, error) {
		if s := r.cpCache.Get(epoch, blockRoot); s != nil {
			return s, nil
		}
		targetSlot, err := epoch.StartSlot(params.BeaconConfig().SlotsPerEpoch)
		if err != nil {
			return nil, err
		}
		s, err := r.GetBlockSlotState(ctx, blockRoot, targetSlot)
		if err != nil {
			return nil, err
		}
		r.cpCache.Put(epoch, blockRoot, s)
		checkpointCacheInsertCount.Inc()
		return s, nil
	})
}

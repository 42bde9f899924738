package stategen

import (
	"context"

	"go.opencensus.io/trace"

	"github.com/go-consensus/beacon-regen/beacon-chain/state"
	"github.com/go-consensus/beacon-regen/config/params"
	"github.com/go-consensus/beacon-regen/consensus-types/primitives"
)

// GetBlockSlotState returns the state rooted at blockRoot advanced to slot.
// The result is not unconditionally cached, since these states are
// transient, but is inserted into the checkpoint cache when slot lands on
// an epoch boundary.
func (r *Regenerator) GetBlockSlotState(ctx context.Context, blockRoot primitives.Root, slot primitives.Slot) (state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "stateGen.GetBlockSlotState")
	defer span.End()

	block, ok, err := r.blocks.GetBlock(ctx, blockRoot)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnknownBlock
	}
	if slot < block.Slot {
		return nil, ErrInvalidSlot
	}

	return r.coalescer.do(ctx, keyBlockSlot(blockRoot, slot), func(ctx context.Context) (state.BeaconState, error) {
		base, err := r.GetState(ctx, block.StateRoot)
		if err != nil {
			return nil, err
		}

		var advanced state.BeaconState
		if slot == base.Slot() {
			advanced = base
		} else {
			advanced, err = r.offloader.run(ctx, base.Slot(), slot, func(ctx context.Context) (state.BeaconState, error) {
				return r.transitioner.ProcessSlots(ctx, base, slot)
			})
			if err != nil {
				return nil, errTransition(err)
			}
			replaySlotCount.Observe(float64(slot - base.Slot()))
		}

		slotsPerEpoch := params.BeaconConfig().SlotsPerEpoch
		if advanced.Slot().IsEpochStart(slotsPerEpoch) {
			epoch := advanced.Slot().ToEpoch(slotsPerEpoch)
			r.cpCache.Put(epoch, blockRoot, advanced)
			checkpointCacheInsertCount.Inc()
		}
		return advanced, nil
	})
}

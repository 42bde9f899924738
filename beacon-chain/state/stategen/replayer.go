package stategen

import (
	"context"

	"go.opencensus.io/trace"

	"github.com/go-consensus/beacon-regen/beacon-chain/state"
	"github.com/go-consensus/beacon-regen/config/params"
)

// GetPreState returns a valid parent state on which block can be applied,
// chosen to maximize cache reuse within the latest viable epoch.
//
// The anchor is the greatest epoch boundary <= block's target epoch whose
// anchor block is still in the non-pruned subtree, clamped up to the
// finalized epoch when the naive target would fall below it.
func (r *Regenerator) GetPreState(ctx context.Context, block Block) (state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "stateGen.GetPreState")
	defer span.End()

	slotsPerEpoch := params.BeaconConfig().SlotsPerEpoch
	targetEpoch := block.Slot.ToEpoch(slotsPerEpoch)
	if fin := r.currentFinalized(); targetEpoch < fin.epoch {
		targetEpoch = fin.epoch
	}
	boundary, err := targetEpoch.StartSlot(slotsPerEpoch)
	if err != nil {
		return nil, err
	}

	ancestors, err := r.blocks.GetAncestors(ctx, block.ParentRoot, boundary)
	if err != nil {
		return nil, err
	}
	if len(ancestors) == 0 {
		// parentRoot is itself the anchor: nothing to replay.
		return r.GetCheckpointState(ctx, targetEpoch, block.ParentRoot)
	}

	anchor := ancestors[len(ancestors)-1]
	s, err := r.GetCheckpointState(ctx, targetEpoch, anchor.BlockRoot)
	if err != nil {
		return nil, err
	}

	// ancestors is ordered highest-slot-first, from parentRoot down to the
	// anchor; replay it oldest-first, excluding the anchor itself which the
	// checkpoint state already reflects.
	replayBlockCount.Observe(float64(len(ancestors) - 1))
	for i := len(ancestors) - 2; i >= 0; i-- {
		b := ancestors[i]
		s, err = r.offloader.run(ctx, s.Slot(), b.Slot, func(ctx context.Context) (state.BeaconState, error) {
			return r.transitioner.ProcessSlots(ctx, s, b.Slot)
		})
		if err != nil {
			return nil, errTransition(err)
		}
		s, err = r.transitioner.ProcessBlock(ctx, s, b)
		if err != nil {
			return nil, errTransition(err)
		}
		r.cacheIntermediate(s)
	}

	return s, nil
}

// cacheIntermediate installs an intermediate post-block state produced
// during GetPreState's replay into the hot cache when it lands on an
// epoch boundary or the block processor has flagged it as interesting,
// and never otherwise, since these are transient replay artifacts.
func (r *Regenerator) cacheIntermediate(s state.BeaconState) {
	slotsPerEpoch := params.BeaconConfig().SlotsPerEpoch
	interesting := r.interesting != nil && r.interesting.IsInteresting(s.StateRoot())
	if s.Slot().IsEpochStart(slotsPerEpoch) || interesting {
		r.insertHot(s.StateRoot(), s)
	}
}

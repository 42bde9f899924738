package stategen

import (
	"context"

	"github.com/pkg/errors"
	"go.opencensus.io/trace"

	"github.com/go-consensus/beacon-regen/beacon-chain/state"
)

// Resume seeds the regenerator's finalized anchor from BlockSource and
// pre-warms the hot cache with the finalized state. Callers normally
// invoke this once, right after constructing a Regenerator, before
// serving any queries.
func (r *Regenerator) Resume(ctx context.Context) (state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "stateGen.Resume")
	defer span.End()

	epoch, root, slot, err := r.blocks.Finalized(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "could not resume: fetch finalized anchor")
	}
	r.finalizedLock.Lock()
	r.finalized = finalizedAnchor{epoch: epoch, root: root, slot: slot}
	r.finalizedLock.Unlock()

	block, ok, err := r.blocks.GetBlock(ctx, root)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnknownBlock
	}
	return r.GetState(ctx, block.StateRoot)
}

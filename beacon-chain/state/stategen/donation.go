package stategen

import (
	"context"

	"go.opencensus.io/trace"

	"github.com/go-consensus/beacon-regen/beacon-chain/state"
)

// SubmitProcessedState lets the block processor donate a state it already
// computed while applying block, so the regenerator can populate its caches
// without a redundant replay. Cache-mutation ownership stays inside the
// regenerator: callers hand over the state, they never touch the caches
// directly.
//
// The donation is best-effort: a state that doesn't match block's own
// claimed post-state root fails the internal consistency check and is
// rejected with a logged warning, never causing the caller's block
// processing to fail.
func (r *Regenerator) SubmitProcessedState(ctx context.Context, block Block, s state.BeaconState) {
	_, span := trace.StartSpan(ctx, "stateGen.SubmitProcessedState")
	defer span.End()

	if s == nil || s.StateRoot() != block.StateRoot {
		donationRejectedCount.Inc()
		log.WithField("blockRoot", block.BlockRoot).Warn("rejected donated state: stateRoot mismatch")
		return
	}

	r.insertHot(s.StateRoot(), s)
}

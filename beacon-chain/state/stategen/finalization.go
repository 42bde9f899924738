package stategen

import (
	"context"

	"go.opencensus.io/trace"

	"github.com/go-consensus/beacon-regen/config/params"
	"github.com/go-consensus/beacon-regen/consensus-types/primitives"
)

// OnFinalized is the regenerator's finalization event hook: whenever
// fork-choice advances the finalized anchor it records the anchor, so
// future hot-cache insertions below it are rejected (service.go's
// insertHot), then prunes the hot cache below the new finalized slot and
// the checkpoint cache below the finalized epoch minus the configured
// retention window.
//
// In-flight queries rooted below the new anchor are allowed to run to
// completion; their results never reach the hot cache once this returns,
// since insertHot rejects anything strictly below the recorded finalized
// slot. Checkpoint-cache insertions are not filtered against the anchor:
// such a result can still be put into the checkpoint cache, where it stays
// until a later PruneFinalized or eviction removes it.
func (r *Regenerator) OnFinalized(ctx context.Context, epoch primitives.Epoch, blockRoot primitives.Root, slot primitives.Slot) {
	ctx, span := trace.StartSpan(ctx, "stateGen.OnFinalized")
	defer span.End()

	r.finalizedLock.Lock()
	r.finalized = finalizedAnchor{epoch: epoch, root: blockRoot, slot: slot}
	r.finalizedLock.Unlock()

	r.migrateFinalized(ctx, blockRoot)
	r.migrateBelowFinalized(ctx, slot)

	r.hotCache.Prune(slot)
	r.cpCache.PruneFinalized(epoch, primitives.Epoch(r.cfg.CheckpointRetentionEpochs))
	finalizationPruneCount.Inc()

	log.WithField("epoch", epoch).WithField("slot", slot).Debug("pruned caches to new finalized anchor")
}

// migrateFinalized promotes the incoming finalized block's own state to the
// checkpoint cache before pruning runs, so a state that would otherwise be
// evicted as a hot entry below the new anchor is not lost if it also serves
// as a checkpoint anchor. The hot cache is keyed by state root, not block
// root, so the block's own state root must be resolved first.
func (r *Regenerator) migrateFinalized(ctx context.Context, blockRoot primitives.Root) {
	block, ok, err := r.blocks.GetBlock(ctx, blockRoot)
	if err != nil || !ok {
		return
	}
	s := r.hotCache.Get(block.StateRoot)
	if s == nil {
		return
	}
	slotsPerEpoch := params.BeaconConfig().SlotsPerEpoch
	if !s.Slot().IsEpochStart(slotsPerEpoch) {
		return
	}
	epoch := s.Slot().ToEpoch(slotsPerEpoch)
	r.cpCache.Put(epoch, blockRoot, s)
}

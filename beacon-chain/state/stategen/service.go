package stategen

import (
	"fmt"
	"sync"

	"github.com/go-consensus/beacon-regen/beacon-chain/cache"
	"github.com/go-consensus/beacon-regen/beacon-chain/state"
	"github.com/go-consensus/beacon-regen/config/params"
	"github.com/go-consensus/beacon-regen/consensus-types/primitives"
)

// Regenerator answers the four state queries by composing the
// hot/checkpoint caches, BlockSource, StateSource and Transitioner,
// coalescing in-flight duplicate work.
type Regenerator struct {
	cfg *Config

	blocks       BlockSource
	states       StateSource
	transitioner Transitioner
	interesting  InterestingStateHook

	hotCache  *cache.HotStateCache
	cpCache   *cache.CheckpointStateCache
	coalescer *coalescer
	offloader *offloader

	finalizedLock sync.RWMutex
	finalized     finalizedAnchor
}

// finalizedAnchor tracks fork-choice's current finalized point.
type finalizedAnchor struct {
	epoch primitives.Epoch
	root  primitives.Root
	slot  primitives.Slot
}

// New returns a Regenerator wired to the given collaborators. opts
// override the documented defaults.
func New(blocks BlockSource, states StateSource, transitioner Transitioner, opts ...Option) *Regenerator {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Regenerator{
		cfg:          cfg,
		blocks:       blocks,
		states:       states,
		transitioner: transitioner,
		hotCache:     cache.NewHotStateCache(cfg.MaxHotStates),
		cpCache:      cache.NewCheckpointStateCache(cfg.MaxCheckpointStates),
		coalescer:    newCoalescer(),
		offloader:    newOffloader(cfg.CPUOffloadThresholdSlots),
		finalized:    finalizedAnchor{root: params.BeaconConfig().ZeroHash},
	}
}

// SetInterestingStateHook installs the block processor's optional hook
// used to decide whether an intermediate post-block state produced by
// getPreState is worth caching even off an epoch boundary.
func (r *Regenerator) SetInterestingStateHook(hook InterestingStateHook) {
	r.interesting = hook
}

// keyState, keyBlockSlot and keyCheckpoint build disjoint coalescer keys
// for the three query namespaces: S: for full-state loads, B: for
// block+slot replays, C: for checkpoint lookups.
func keyState(root primitives.Root) string {
	return fmt.Sprintf("S:%x", root)
}

func keyBlockSlot(root primitives.Root, slot primitives.Slot) string {
	return fmt.Sprintf("B:%x:%d", root, slot)
}

func keyCheckpoint(epoch primitives.Epoch, root primitives.Root) string {
	return fmt.Sprintf("C:%d:%x", epoch, root)
}

// currentFinalized returns a snapshot of the finalized anchor.
func (r *Regenerator) currentFinalized() finalizedAnchor {
	r.finalizedLock.RLock()
	defer r.finalizedLock.RUnlock()
	return r.finalized
}

// insertHot inserts s into the hot state cache unless it would be
// immediately pruned by the current finalized anchor. A result computed
// for a query rooted below finality is still returned to its waiters, but
// never published into the cache.
func (r *Regenerator) insertHot(root primitives.Root, s state.BeaconState) {
	if s.Slot() < r.currentFinalized().slot {
		return
	}
	r.hotCache.Put(root, s)
	hotCacheInsertCount.Inc()
}

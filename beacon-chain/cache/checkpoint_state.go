package cache

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/go-consensus/beacon-regen/beacon-chain/state"
	"github.com/go-consensus/beacon-regen/consensus-types/primitives"
)

// defaultMaxCheckpointStates is the fallback bound used when the caller
// does not size the cache explicitly via NewCheckpointStateCache.
const defaultMaxCheckpointStates = 32

var (
	checkpointStateHit = promauto.NewCounter(prometheus.CounterOpts{
		Name: "checkpoint_state_cache_hit",
		Help: "The number of checkpoint state requests that are present in the cache.",
	})
	checkpointStateMiss = promauto.NewCounter(prometheus.CounterOpts{
		Name: "checkpoint_state_cache_miss",
		Help: "The number of checkpoint state requests that aren't present in the cache.",
	})
)

// CheckpointKey identifies a checkpoint state by (epoch, blockRoot).
type CheckpointKey struct {
	Epoch     primitives.Epoch
	BlockRoot primitives.Root
}

type checkpointEntry struct {
	state      state.BeaconState
	lastAccess uint64
}

// CheckpointStateCache is an in-memory mapping from (epoch, blockRoot) to
// the materialized state at the first slot of epoch rooted at blockRoot.
// Unlike HotStateCache, eviction is not plain LRU: the entry with the
// smallest epoch is evicted first, with ties broken by recency. A standard
// hashicorp/golang-lru instance can't express that ordering, so this cache
// is hand-rolled behind the same hit/miss metric shape as HotStateCache.
type CheckpointStateCache struct {
	lock      sync.Mutex
	entries   map[CheckpointKey]*checkpointEntry
	maxN      int
	nextTick  uint64
	hit, miss prometheus.Counter
}

// NewCheckpointStateCache returns a checkpoint state cache bounded at
// maxCheckpointStates entries.
func NewCheckpointStateCache(maxCheckpointStates int) *CheckpointStateCache {
	if maxCheckpointStates <= 0 {
		maxCheckpointStates = defaultMaxCheckpointStates
	}
	return &CheckpointStateCache{
		entries: make(map[CheckpointKey]*checkpointEntry, maxCheckpointStates),
		maxN:    maxCheckpointStates,
		hit:     checkpointStateHit,
		miss:    checkpointStateMiss,
	}
}

// Get returns the cached checkpoint state for (epoch, blockRoot), or nil if
// absent.
func (c *CheckpointStateCache) Get(epoch primitives.Epoch, blockRoot primitives.Root) state.BeaconState {
	key := CheckpointKey{Epoch: epoch, BlockRoot: blockRoot}
	c.lock.Lock()
	defer c.lock.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		c.miss.Inc()
		return nil
	}
	c.hit.Inc()
	c.nextTick++
	entry.lastAccess = c.nextTick
	return entry.state
}

// Put inserts the materialized checkpoint state, evicting the
// smallest-epoch entry (ties broken by least-recently-used) if the cache
// is already at capacity and key is not already present. The caller is
// responsible for having already advanced empty slots to the epoch
// boundary before calling Put.
func (c *CheckpointStateCache) Put(epoch primitives.Epoch, blockRoot primitives.Root, s state.BeaconState) {
	key := CheckpointKey{Epoch: epoch, BlockRoot: blockRoot}
	c.lock.Lock()
	defer c.lock.Unlock()

	c.nextTick++
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxN {
		c.evictLocked()
	}
	c.entries[key] = &checkpointEntry{state: s, lastAccess: c.nextTick}
}

// evictLocked removes the entry with the smallest epoch, breaking ties by
// least-recently-used. Callers must hold c.lock.
func (c *CheckpointStateCache) evictLocked() {
	var victim CheckpointKey
	found := false
	for k, e := range c.entries {
		if !found {
			victim, found = k, true
			continue
		}
		cur := c.entries[victim]
		if k.Epoch < victim.Epoch || (k.Epoch == victim.Epoch && e.lastAccess < cur.lastAccess) {
			victim = k
		}
	}
	if found {
		delete(c.entries, victim)
	}
}

// PruneFinalized removes all entries with epoch strictly less than
// finalizedEpoch - retention. Underflow of the subtraction is clamped to
// zero, i.e. nothing is pruned before finalizedEpoch exceeds retention.
func (c *CheckpointStateCache) PruneFinalized(finalizedEpoch primitives.Epoch, retention primitives.Epoch) {
	floor, err := finalizedEpoch.Sub(retention)
	if err != nil {
		floor = 0
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	for k := range c.entries {
		if k.Epoch < floor {
			delete(c.entries, k)
		}
	}
}

// Len returns the current number of cached entries.
func (c *CheckpointStateCache) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return len(c.entries)
}

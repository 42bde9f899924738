package cache

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/go-consensus/beacon-regen/beacon-chain/state"
	"github.com/go-consensus/beacon-regen/consensus-types/primitives"
)

// defaultMaxHotStates is the fallback bound used when the caller does not
// size the cache explicitly via NewHotStateCache.
const defaultMaxHotStates = 32

var (
	hotStateCacheHit = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hot_state_cache_hit",
		Help: "The number of hot state requests that are present in the cache.",
	})
	hotStateCacheMiss = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hot_state_cache_miss",
		Help: "The number of hot state requests that aren't present in the cache.",
	})
)

// HotStateCache is a state-root-keyed LRU of ready-to-use states.
// Eviction is least-recently-used on Get/Put; Prune is authoritative and
// bypasses LRU order entirely.
type HotStateCache struct {
	lock  sync.Mutex
	lru   *lru.Cache[primitives.Root, state.BeaconState]
	hit   prometheus.Counter
	miss  prometheus.Counter
	maxN  int
}

// NewHotStateCache returns a hot state cache bounded at maxHotStates
// entries.
func NewHotStateCache(maxHotStates int) *HotStateCache {
	if maxHotStates <= 0 {
		maxHotStates = defaultMaxHotStates
	}
	c, err := lru.New[primitives.Root, state.BeaconState](maxHotStates)
	if err != nil {
		// Only returns an error for a non-positive size, which is guarded above.
		panic(err)
	}
	return &HotStateCache{
		lru:  c,
		hit:  hotStateCacheHit,
		miss: hotStateCacheMiss,
		maxN: maxHotStates,
	}
}

func (c *HotStateCache) backing() *lru.Cache[primitives.Root, state.BeaconState] { return c.lru }
func (c *HotStateCache) hitCache()                                               { c.hit.Inc() }
func (c *HotStateCache) missCache()                                              { c.miss.Inc() }

// Get returns the cached state for root, or nil if absent. A hit refreshes
// the entry's recency.
func (c *HotStateCache) Get(root primitives.Root) state.BeaconState {
	c.lock.Lock()
	defer c.lock.Unlock()
	s, err := get[primitives.Root, state.BeaconState](c, root)
	if err != nil {
		return nil
	}
	return s
}

// Has reports whether root is present without affecting LRU recency
// semantics beyond what the underlying Contains call does.
func (c *HotStateCache) Has(root primitives.Root) bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.lru.Contains(root)
}

// Put inserts or replaces the cached state for root, evicting the least
// recently used entry if the cache is at capacity.
func (c *HotStateCache) Put(root primitives.Root, s state.BeaconState) {
	c.lock.Lock()
	defer c.lock.Unlock()
	add[primitives.Root, state.BeaconState](c, root, s)
}

// Delete removes root from the cache, if present.
func (c *HotStateCache) Delete(root primitives.Root) {
	c.lock.Lock()
	defer c.lock.Unlock()
	remove[primitives.Root, state.BeaconState](c, root)
}

// Prune removes every entry whose slot is strictly less than finalizedSlot.
// Unlike Get/Put, this is authoritative and does not consult LRU order:
// the finalized frontier only moves forward, so entries below it can never
// become useful again.
func (c *HotStateCache) Prune(finalizedSlot primitives.Slot) {
	c.lock.Lock()
	defer c.lock.Unlock()
	for _, root := range keys[primitives.Root, state.BeaconState](c) {
		s, ok := c.lru.Peek(root)
		if !ok {
			continue
		}
		if s.Slot() < finalizedSlot {
			c.lru.Remove(root)
		}
	}
}

// Len returns the current number of cached entries.
func (c *HotStateCache) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.lru.Len()
}

// Keys returns a snapshot of the currently cached roots, in the same
// eviction-candidate order Prune walks. Used by callers that need to scan
// the cache without mutating it, e.g. a migration hook run just before
// finalization pruning.
func (c *HotStateCache) Keys() []primitives.Root {
	c.lock.Lock()
	defer c.lock.Unlock()
	return keys[primitives.Root, state.BeaconState](c)
}

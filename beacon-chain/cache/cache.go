// Package cache implements the regenerator's two in-memory state caches:
// a bounded hot-state LRU and a bounded checkpoint-state cache with a
// smallest-epoch-first eviction policy.
package cache

import "github.com/hashicorp/golang-lru/v2"

// lruBacked is satisfied by a cache that stores its entries in a
// hashicorp/golang-lru instance and exposes hit/miss counters for it.
type lruBacked[K comparable, V any] interface {
	backing() *lru.Cache[K, V]
	hitCache()
	missCache()
}

// get performs a lookup against an lruBacked cache, recording the hit/miss
// metric as a side effect.
func get[K comparable, V any](c lruBacked[K, V], key K) (V, error) {
	value, ok := c.backing().Get(key)
	if !ok {
		c.missCache()
		var zero V
		return zero, ErrNotFound
	}
	c.hitCache()
	return value, nil
}

func add[K comparable, V any](c lruBacked[K, V], key K, value V) {
	c.backing().Add(key, value)
}

func keys[K comparable, V any](c lruBacked[K, V]) []K {
	return c.backing().Keys()
}

func remove[K comparable, V any](c lruBacked[K, V], key K) {
	c.backing().Remove(key)
}

func purge[K comparable, V any](c lruBacked[K, V]) {
	c.backing().Purge()
}

package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-consensus/beacon-regen/consensus-types/primitives"
)

func TestHotStateCache_RoundTrip(t *testing.T) {
	c := NewHotStateCache(8)
	root := primitives.Root{'A'}

	assert.Nil(t, c.Get(root))
	assert.False(t, c.Has(root))

	s := &fakeState{slot: 10, root: root}
	c.Put(root, s)
	assert.True(t, c.Has(root))

	got := c.Get(root)
	require.NotNil(t, got)
	assert.Equal(t, primitives.Slot(10), got.Slot())

	c.Delete(root)
	assert.False(t, c.Has(root))
}

func TestHotStateCache_BoundedByMaxHotStates(t *testing.T) {
	const maxHot = 4
	c := NewHotStateCache(maxHot)
	for i := 0; i < maxHot+10; i++ {
		root := primitives.Root{byte(i)}
		c.Put(root, &fakeState{slot: primitives.Slot(i), root: root})
		assert.LessOrEqual(t, c.Len(), maxHot)
	}
	assert.Equal(t, maxHot, c.Len())
}

func TestHotStateCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewHotStateCache(2)
	rootA, rootB, rootC := primitives.Root{'A'}, primitives.Root{'B'}, primitives.Root{'C'}

	c.Put(rootA, &fakeState{slot: 1, root: rootA})
	c.Put(rootB, &fakeState{slot: 2, root: rootB})
	// Touch A so B becomes the least recently used entry.
	c.Get(rootA)
	c.Put(rootC, &fakeState{slot: 3, root: rootC})

	assert.True(t, c.Has(rootA))
	assert.False(t, c.Has(rootB))
	assert.True(t, c.Has(rootC))
}

func TestHotStateCache_Prune(t *testing.T) {
	c := NewHotStateCache(8)
	low, mid, high := primitives.Root{1}, primitives.Root{2}, primitives.Root{3}
	c.Put(low, &fakeState{slot: 30, root: low})
	c.Put(mid, &fakeState{slot: 64, root: mid})
	c.Put(high, &fakeState{slot: 96, root: high})

	c.Prune(96)

	assert.False(t, c.Has(low))
	assert.False(t, c.Has(mid))
	assert.True(t, c.Has(high))
}

package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-consensus/beacon-regen/consensus-types/primitives"
)

func TestCheckpointStateCache_RoundTrip(t *testing.T) {
	c := NewCheckpointStateCache(8)
	root := primitives.Root{'A'}

	assert.Nil(t, c.Get(1, root))

	s := &fakeState{slot: 32, root: root}
	c.Put(1, root, s)

	got := c.Get(1, root)
	assert.Equal(t, primitives.Slot(32), got.Slot())
}

func TestCheckpointStateCache_EvictsSmallestEpochFirst(t *testing.T) {
	c := NewCheckpointStateCache(2)
	rootA, rootB, rootC := primitives.Root{'A'}, primitives.Root{'B'}, primitives.Root{'C'}

	c.Put(5, rootA, &fakeState{slot: 160, root: rootA})
	c.Put(3, rootB, &fakeState{slot: 96, root: rootB})
	// Cache is full; epoch 3 is the smallest epoch present, so it is evicted
	// even though it was inserted more recently than epoch 5.
	c.Put(7, rootC, &fakeState{slot: 224, root: rootC})

	assert.NotNil(t, c.Get(5, rootA))
	assert.Nil(t, c.Get(3, rootB))
	assert.NotNil(t, c.Get(7, rootC))
}

func TestCheckpointStateCache_EvictsLRUOnEpochTie(t *testing.T) {
	c := NewCheckpointStateCache(2)
	rootA, rootB, rootC := primitives.Root{'A'}, primitives.Root{'B'}, primitives.Root{'C'}

	c.Put(3, rootA, &fakeState{slot: 96, root: rootA})
	c.Put(3, rootB, &fakeState{slot: 96, root: rootB})
	// Touch A so B becomes the least recently used entry among the tied epoch 3 entries.
	c.Get(3, rootA)
	c.Put(3, rootC, &fakeState{slot: 96, root: rootC})

	assert.NotNil(t, c.Get(3, rootA))
	assert.Nil(t, c.Get(3, rootB))
	assert.NotNil(t, c.Get(3, rootC))
}

func TestCheckpointStateCache_PruneFinalized(t *testing.T) {
	c := NewCheckpointStateCache(8)
	rootA, rootB, rootC := primitives.Root{'A'}, primitives.Root{'B'}, primitives.Root{'C'}

	c.Put(1, rootA, &fakeState{slot: 32, root: rootA})
	c.Put(3, rootB, &fakeState{slot: 96, root: rootB})
	c.Put(5, rootC, &fakeState{slot: 160, root: rootC})

	// finalizedEpoch=5, retention=2 -> floor is epoch 3; epoch 1 is pruned.
	c.PruneFinalized(5, 2)

	assert.Nil(t, c.Get(1, rootA))
	assert.NotNil(t, c.Get(3, rootB))
	assert.NotNil(t, c.Get(5, rootC))
}

func TestCheckpointStateCache_BoundedByMaxCheckpointStates(t *testing.T) {
	const maxCP = 4
	c := NewCheckpointStateCache(maxCP)
	for i := 0; i < maxCP+10; i++ {
		root := primitives.Root{byte(i)}
		c.Put(primitives.Epoch(i), root, &fakeState{slot: primitives.Slot(i), root: root})
		assert.LessOrEqual(t, c.Len(), maxCP)
	}
	assert.Equal(t, maxCP, c.Len())
}

package stategen_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-consensus/beacon-regen/beacon-chain/state/stategen"
	stgtesting "github.com/go-consensus/beacon-regen/beacon-chain/state/stategen/testing"
)

// round-trip: getBlockSlotState(b, s) where s == getBlock(b).slot returns a
// state with the block's own stateRoot, no slots advanced.
func TestRegenerator_GetBlockSlotState_NoAdvanceReturnsBaseIdentity(t *testing.T) {
	r, blocks, states, transitioner := newHarness(t)
	ctx := context.Background()

	stateRoot := rootFor(0x30)
	blockRoot := rootFor(0x31)
	base := stgtesting.NewState(1, stateRoot)
	states.Put(stateRoot, base)
	blocks.AddBlock(stategen.Block{Slot: 1, StateRoot: stateRoot, BlockRoot: blockRoot})

	got, err := r.GetBlockSlotState(ctx, blockRoot, 1)
	require.NoError(t, err)
	require.Same(t, base, got)
	require.Equal(t, 0, transitioner.ProcessSlotsCalls())
}

// boundary: s one less than the block's own slot fails InvalidSlot.
func TestRegenerator_GetBlockSlotState_InvalidSlot(t *testing.T) {
	r, blocks, _, _ := newHarness(t)
	ctx := context.Background()

	blockRoot := rootFor(0x32)
	blocks.AddBlock(stategen.Block{Slot: 10, StateRoot: rootFor(0x33), BlockRoot: blockRoot})

	_, err := r.GetBlockSlotState(ctx, blockRoot, 9)
	require.ErrorIs(t, err, stategen.ErrInvalidSlot)
}

func TestRegenerator_GetBlockSlotState_UnknownBlock(t *testing.T) {
	r, _, _, _ := newHarness(t)
	ctx := context.Background()

	_, err := r.GetBlockSlotState(ctx, rootFor(0x99), 5)
	require.ErrorIs(t, err, stategen.ErrUnknownBlock)
}

// scenario 3: checkpoint materialization via processSlots, second call is a
// cache hit and does not re-invoke the Transitioner.
func TestRegenerator_GetBlockSlotState_AdvancesAndCachesAtBoundary(t *testing.T) {
	r, blocks, states, transitioner := newHarness(t)
	ctx := context.Background()

	stateRoot := rootFor(0x40)
	blockRoot := rootFor(0x41)
	base := stgtesting.NewState(95, stateRoot)
	states.Put(stateRoot, base)
	blocks.AddBlock(stategen.Block{Slot: 95, StateRoot: stateRoot, BlockRoot: blockRoot})

	got, err := r.GetBlockSlotState(ctx, blockRoot, 96)
	require.NoError(t, err)
	require.EqualValues(t, 96, got.Slot())
	require.Equal(t, 1, transitioner.ProcessSlotsCalls())

	cp, err := r.GetCheckpointState(ctx, 3, blockRoot)
	require.NoError(t, err)
	require.EqualValues(t, 96, cp.Slot())
	require.Equal(t, 1, transitioner.ProcessSlotsCalls())
}

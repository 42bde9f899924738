package stategen_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-consensus/beacon-regen/beacon-chain/state/stategen"
	stgtesting "github.com/go-consensus/beacon-regen/beacon-chain/state/stategen/testing"
	"github.com/go-consensus/beacon-regen/consensus-types/primitives"
)

// scenario 5: entries below the new finalized slot are pruned from the hot
// cache; queries for their roots fall through to StateSource again.
func TestRegenerator_OnFinalized_PrunesHotCacheBelowFinalizedSlot(t *testing.T) {
	r, _, states, _ := newHarness(t)
	ctx := context.Background()

	donate := func(root primitives.Root, slot primitives.Slot) {
		s := stgtesting.NewState(slot, root)
		states.Put(root, s)
		r.SubmitProcessedState(ctx, stategen.Block{Slot: slot, StateRoot: root, BlockRoot: root}, s)
	}

	r30, r64, r96 := rootFor(0x90), rootFor(0x91), rootFor(0x92)
	donate(r30, 30)
	donate(r64, 64)
	donate(r96, 96)

	require.True(t, r.HasState(r30))
	require.True(t, r.HasState(r64))
	require.True(t, r.HasState(r96))

	r.OnFinalized(ctx, 3, r96, 96)

	require.False(t, r.HasState(r30))
	require.False(t, r.HasState(r64))
	require.True(t, r.HasState(r96))

	callsBefore := states.CallCount(r30)
	_, err := r.GetState(ctx, r30)
	require.NoError(t, err)
	require.Equal(t, callsBefore+1, states.CallCount(r30))
}

// invariant 4: checkpoint entries strictly below (finalizedEpoch - retention)
// are pruned on finalization.
func TestRegenerator_OnFinalized_PrunesCheckpointCacheBelowRetention(t *testing.T) {
	r, blocks, states, _ := newHarness(t)
	ctx := context.Background()

	mkCheckpoint := func(epoch primitives.Epoch, root primitives.Root, slot primitives.Slot) {
		stateRoot := root
		states.Put(stateRoot, stgtesting.NewState(slot, stateRoot))
		blocks.AddBlock(stategen.Block{Slot: slot, StateRoot: stateRoot, BlockRoot: root})
		_, err := r.GetCheckpointState(ctx, epoch, root)
		require.NoError(t, err)
	}

	e1, e2, e5 := rootFor(0xa1), rootFor(0xa2), rootFor(0xa5)
	mkCheckpoint(1, e1, 32)
	mkCheckpoint(2, e2, 64)
	mkCheckpoint(5, e5, 160)

	// default CheckpointRetentionEpochs is 2; finalizing epoch 5 prunes
	// everything strictly below epoch 3.
	r.OnFinalized(ctx, 5, e5, 160)

	_, err := r.GetCheckpointState(ctx, 1, e1)
	require.NoError(t, err)
	callsAfterRePrune := states.CallCount(e1)
	require.Greater(t, callsAfterRePrune, 1)

	_, err = r.GetCheckpointState(ctx, 5, e5)
	require.NoError(t, err)
	require.Equal(t, 1, states.CallCount(e5))
}

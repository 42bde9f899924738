package stategen_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-consensus/beacon-regen/beacon-chain/state/stategen"
	stgtesting "github.com/go-consensus/beacon-regen/beacon-chain/state/stategen/testing"
	"github.com/go-consensus/beacon-regen/consensus-types/primitives"
)

func rootFor(b byte) primitives.Root {
	var r primitives.Root
	r[0] = b
	return r
}

func newHarness(t *testing.T) (*stategen.Regenerator, *stgtesting.FakeBlockSource, *stgtesting.FakeStateSource, *stgtesting.FakeTransitioner) {
	t.Helper()
	blocks := stgtesting.NewFakeBlockSource()
	states := stgtesting.NewFakeStateSource()
	transitioner := stgtesting.NewFakeTransitioner()
	r := stategen.New(blocks, states, transitioner)
	return r, blocks, states, transitioner
}

// scenario 1: hot hit via donation never touches StateSource.
func TestRegenerator_HotHitViaDonation(t *testing.T) {
	r, _, states, _ := newHarness(t)
	ctx := context.Background()

	root := rootFor(0xaa)
	block := stategen.Block{Slot: 1, StateRoot: root, BlockRoot: root}
	s1 := stgtesting.NewState(1, root)

	r.SubmitProcessedState(ctx, block, s1)

	got, err := r.GetState(ctx, root)
	require.NoError(t, err)
	require.Same(t, s1, got)
	require.Equal(t, 0, states.CallCount(root))
}

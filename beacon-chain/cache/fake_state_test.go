package cache

import (
	"github.com/go-consensus/beacon-regen/beacon-chain/state"
	"github.com/go-consensus/beacon-regen/consensus-types/primitives"
)

// fakeState is a minimal state.BeaconState used across this package's
// tests; it carries just enough to exercise cache bookkeeping.
type fakeState struct {
	slot primitives.Slot
	root primitives.Root
}

func (f *fakeState) Slot() primitives.Slot      { return f.slot }
func (f *fakeState) StateRoot() primitives.Root { return f.root }
func (f *fakeState) Copy() state.BeaconState {
	cp := *f
	return &cp
}

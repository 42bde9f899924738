// Package testing provides in-memory fakes for the regenerator's three
// external contracts: one fake per contract rather than a single
// do-everything mock, since the regenerator depends on three narrow
// interfaces.
package testing

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/go-consensus/beacon-regen/beacon-chain/state"
	"github.com/go-consensus/beacon-regen/beacon-chain/state/stategen"
	"github.com/go-consensus/beacon-regen/consensus-types/primitives"
)

// State is a minimal state.BeaconState used by regenerator tests: only the
// two fields the regenerator itself ever reads or compares.
type State struct {
	slot      primitives.Slot
	stateRoot primitives.Root
}

// NewState builds a State at the given slot with the given stateRoot, used
// as-is: two States built with the same root report the same StateRoot
// whatever their slots.
func NewState(slot primitives.Slot, stateRoot primitives.Root) *State {
	return &State{slot: slot, stateRoot: stateRoot}
}

func (s *State) Slot() primitives.Slot      { return s.slot }
func (s *State) StateRoot() primitives.Root { return s.stateRoot }
func (s *State) Copy() state.BeaconState    { return &State{slot: s.slot, stateRoot: s.stateRoot} }

// FakeBlockSource is an in-memory BlockSource backed by a parent-pointer
// arena of blocks indexed by root.
type FakeBlockSource struct {
	mu       sync.Mutex
	byRoot   map[primitives.Root]stategen.Block
	finEpoch primitives.Epoch
	finRoot  primitives.Root
	finSlot  primitives.Slot
}

func NewFakeBlockSource() *FakeBlockSource {
	return &FakeBlockSource{byRoot: make(map[primitives.Root]stategen.Block)}
}

// AddBlock inserts b into the arena, overwriting any prior block at the
// same root.
func (f *FakeBlockSource) AddBlock(b stategen.Block) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byRoot[b.BlockRoot] = b
}

// SetFinalized sets the anchor returned by Finalized.
func (f *FakeBlockSource) SetFinalized(epoch primitives.Epoch, root primitives.Root, slot primitives.Slot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finEpoch, f.finRoot, f.finSlot = epoch, root, slot
}

func (f *FakeBlockSource) GetBlock(_ context.Context, blockRoot primitives.Root) (stategen.Block, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.byRoot[blockRoot]
	return b, ok, nil
}

// GetAncestors walks parentRoot pointers from blockRoot down to and
// including the first ancestor with slot <= stopSlot, highest slot first.
func (f *FakeBlockSource) GetAncestors(_ context.Context, blockRoot primitives.Root, stopSlot primitives.Slot) ([]stategen.Block, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var chain []stategen.Block
	root := blockRoot
	for {
		b, ok := f.byRoot[root]
		if !ok {
			return nil, errors.Errorf("unknown block %x while walking ancestors", root)
		}
		chain = append(chain, b)
		if b.Slot <= stopSlot {
			return chain, nil
		}
		root = b.ParentRoot
	}
}

func (f *FakeBlockSource) Finalized(_ context.Context) (primitives.Epoch, primitives.Root, primitives.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.finEpoch, f.finRoot, f.finSlot, nil
}

// FakeStateSource is an in-memory StateSource that counts LoadState calls
// per root, letting tests assert the coalescer's single-call guarantee.
type FakeStateSource struct {
	mu     sync.Mutex
	states map[primitives.Root]state.BeaconState
	calls  map[primitives.Root]int
	Err    error
	// Gate, when non-nil, is received from before each LoadState returns,
	// letting tests hold a call open to force concurrent callers to
	// coalesce onto it rather than racing to completion.
	Gate      chan struct{}
	persisted []primitives.Root
}

func NewFakeStateSource() *FakeStateSource {
	return &FakeStateSource{
		states: make(map[primitives.Root]state.BeaconState),
		calls:  make(map[primitives.Root]int),
	}
}

func (f *FakeStateSource) Put(stateRoot primitives.Root, s state.BeaconState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.states[stateRoot] = s
}

func (f *FakeStateSource) LoadState(_ context.Context, stateRoot primitives.Root) (state.BeaconState, error) {
	f.mu.Lock()
	f.calls[stateRoot]++
	gate := f.Gate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	s, ok := f.states[stateRoot]
	if !ok {
		return nil, stategen.ErrStateNotPersisted
	}
	return s, nil
}

// CallCount returns how many times LoadState was invoked for stateRoot.
func (f *FakeStateSource) CallCount(stateRoot primitives.Root) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[stateRoot]
}

// PersistState implements stategen.StatePersister, recording every root it
// is asked to persist so tests can assert the migration hook ran.
func (f *FakeStateSource) PersistState(_ context.Context, stateRoot primitives.Root, s state.BeaconState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.persisted = append(f.persisted, stateRoot)
	return nil
}

// Persisted returns the roots PersistState has been called with, in call
// order.
func (f *FakeStateSource) Persisted() []primitives.Root {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]primitives.Root, len(f.persisted))
	copy(out, f.persisted)
	return out
}

// FakeTransitioner is a deterministic Transitioner: ProcessSlots only
// advances the slot counter, ProcessBlock adopts the block's declared
// StateRoot. Tests that need a failure inject it via Err.
type FakeTransitioner struct {
	mu                sync.Mutex
	processSlotsCalls int
	processBlockCalls int
	Err               error
}

func NewFakeTransitioner() *FakeTransitioner {
	return &FakeTransitioner{}
}

func (f *FakeTransitioner) ProcessSlots(_ context.Context, s state.BeaconState, targetSlot primitives.Slot) (state.BeaconState, error) {
	f.mu.Lock()
	f.processSlotsCalls++
	f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	return NewState(targetSlot, s.StateRoot()), nil
}

func (f *FakeTransitioner) ProcessBlock(_ context.Context, s state.BeaconState, block stategen.Block) (state.BeaconState, error) {
	f.mu.Lock()
	f.processBlockCalls++
	f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	return NewState(block.Slot, block.StateRoot), nil
}

func (f *FakeTransitioner) ProcessSlotsCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.processSlotsCalls
}

func (f *FakeTransitioner) ProcessBlockCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.processBlockCalls
}

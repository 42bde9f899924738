package stategen

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/go-consensus/beacon-regen/beacon-chain/state"
	"github.com/go-consensus/beacon-regen/consensus-types/primitives"
)

// offloader bounds how many CPU-heavy processSlots calls run concurrently
// off the calling goroutine: calls that exceed a configured work threshold
// are routed through a bounded CPU pool, otherwise they run inline. A
// fixed-size semaphore caps how many offloaded calls run at once across
// the whole Regenerator; each individual call is run through an errgroup
// so ctx cancellation is propagated for a single unit of work.
type offloader struct {
	threshold primitives.Slot
	sem       chan struct{}
}

// defaultOffloadConcurrency bounds the number of simultaneous CPU-bound
// replay runs.
const defaultOffloadConcurrency = 4

func newOffloader(thresholdSlots int) *offloader {
	if thresholdSlots < 0 {
		thresholdSlots = 0
	}
	return &offloader{
		threshold: primitives.Slot(thresholdSlots),
		sem:       make(chan struct{}, defaultOffloadConcurrency),
	}
}

// run executes fn, which advances from fromSlot to toSlot, either inline or
// via the bounded CPU pool depending on how many slots it must advance.
func (o *offloader) run(ctx context.Context, fromSlot, toSlot primitives.Slot, fn func(ctx context.Context) (state.BeaconState, error)) (state.BeaconState, error) {
	diff, err := toSlot.SafeSubSlot(fromSlot)
	if err != nil || diff <= o.threshold {
		return fn(ctx)
	}

	cpuOffloadCount.Inc()
	select {
	case o.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { <-o.sem }()

	var out state.BeaconState
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := fn(gCtx)
		out = s
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

package stategen

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/go-consensus/beacon-regen/beacon-chain/state"
)

// coalescer is a mapping from query key to a pending-result handle. The
// first arrival for a key installs the handle and runs the work; later
// arrivals for the same key await the handle's outcome instead of
// repeating it. Keys are plain strings; callers are responsible for
// keeping the three namespaces (S:, B:, C:) disjoint, e.g. via the
// keyState/keyBlockSlot/keyCheckpoint helpers in this package.
type coalescer struct {
	mu       sync.Mutex
	inflight map[string]*workHandle
}

// workHandle is a message-passing handle owned by the coalescer, not by
// any single waiter, so a waiter dropping out does not disturb the
// others.
type workHandle struct {
	id   string
	done chan struct{}

	result state.BeaconState
	err    error

	mu      sync.Mutex
	waiters int
	cancel  context.CancelFunc
}

func newCoalescer() *coalescer {
	return &coalescer{inflight: make(map[string]*workHandle)}
}

// do runs fn exactly once per key among all concurrently overlapping
// callers: the first caller for key installs a handle and starts fn in a
// separate goroutine owned by the handle, then waits on it like any other
// waiter; subsequent callers for the same key block on the handle's
// completion instead of invoking fn again. If ctx is cancelled
// before the handle completes, do returns ErrCancelled for that caller
// only; the underlying work keeps running for any remaining waiters, and
// is only cancelled cooperatively once the last waiter has abandoned it.
func (c *coalescer) do(ctx context.Context, key string, fn func(ctx context.Context) (state.BeaconState, error)) (state.BeaconState, error) {
	c.mu.Lock()
	if h, ok := c.inflight[key]; ok {
		h.mu.Lock()
		h.waiters++
		h.mu.Unlock()
		c.mu.Unlock()
		coalescedJoinCount.Inc()
		return c.await(ctx, h)
	}

	workCtx, cancel := context.WithCancel(context.Background())
	h := &workHandle{
		id:      uuid.NewString(),
		done:    make(chan struct{}),
		waiters: 1,
		cancel:  cancel,
	}
	c.inflight[key] = h
	c.mu.Unlock()

	go func() {
		result, err := fn(workCtx)
		h.result, h.err = result, err
		c.mu.Lock()
		delete(c.inflight, key)
		c.mu.Unlock()
		close(h.done)
	}()

	return c.await(ctx, h)
}

// await blocks the calling waiter until h completes or ctx is cancelled,
// in which case it releases this waiter's slot and cooperatively cancels
// the work if no waiters remain.
func (c *coalescer) await(ctx context.Context, h *workHandle) (state.BeaconState, error) {
	select {
	case <-h.done:
		return h.result, h.err
	case <-ctx.Done():
		h.mu.Lock()
		h.waiters--
		last := h.waiters == 0
		h.mu.Unlock()
		if last {
			h.cancel()
		}
		return nil, ErrCancelled
	}
}

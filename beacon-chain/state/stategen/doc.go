// Package stategen answers "give me the beacon state valid for block B at
// slot S" by composing a bounded hot-state cache, a bounded checkpoint
// state cache, and a state-transition replay driver, while coalescing
// concurrent requests for the same piece of work so that the transition
// function is never invoked more than once for a given query key.
//
// It does not own the block or state database, the fork-choice store, or
// the state-transition function itself. Those are supplied by the
// BlockSource, StateSource and Transitioner interfaces in interfaces.go,
// the regenerator's only contact with the rest of the node.
package stategen

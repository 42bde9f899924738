// Package params defines the chain-wide constants the regenerator needs to
// reason about slot/epoch boundaries. It intentionally carries only the
// handful of constants the regenerator consumes; the full consensus
// parameter set (fork schedules, gwei constants, committee sizes, ...) is
// out of scope for this module.
package params

import (
	"github.com/go-consensus/beacon-regen/consensus-types/primitives"
)

// BeaconChainConfig contains the constants the regenerator's slot/epoch
// arithmetic is defined in terms of.
type BeaconChainConfig struct {
	SlotsPerEpoch primitives.Slot
	ZeroHash      primitives.Root
}

// MainnetConfig returns the canonical configuration used outside of tests.
func MainnetConfig() *BeaconChainConfig {
	return &BeaconChainConfig{
		SlotsPerEpoch: 32,
		ZeroHash:      primitives.ZeroRoot,
	}
}

// Copy returns a shallow copy of the config object; BeaconChainConfig has no
// reference fields so a struct copy is sufficient.
func (b *BeaconChainConfig) Copy() *BeaconChainConfig {
	c := *b
	return &c
}

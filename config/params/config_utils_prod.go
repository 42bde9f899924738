//go:build !develop
// +build !develop

package params

import "sync"

var (
	beaconConfigLock sync.RWMutex
	beaconConfig     = MainnetConfig()
)

// BeaconConfig retrieves the active beacon chain config.
func BeaconConfig() *BeaconChainConfig {
	beaconConfigLock.RLock()
	defer beaconConfigLock.RUnlock()
	return beaconConfig
}

// OverrideBeaconConfig replaces the active config. The preferred pattern is
// to call BeaconConfig(), change the specific parameters, and then call
// OverrideBeaconConfig(c). Any subsequent calls to BeaconConfig() return the
// new configuration.
func OverrideBeaconConfig(c *BeaconChainConfig) {
	beaconConfigLock.Lock()
	defer beaconConfigLock.Unlock()
	beaconConfig = c
}

package gcconfig

import (
	"runtime"
)

// Defaults returns the built-in tunable defaults, the first stage of the
// load pipeline (defaults -> environment -> flags -> validate).
func Defaults() Tunables {
	conc := uint(runtime.NumCPU() / 4)
	if conc < 1 {
		conc = 1
	}
	return Tunables{
		ConcGCThreads:               conc,
		ZCollectionIntervalMinor:    0,
		ZCollectionIntervalMajor:    0,
		ZCollectionIntervalOnly:     false,
		ZAllocationSpikeTolerance:   2.0,
		ZProactive:                  true,
		UseDynamicNumberOfGCThreads: true,

		MaxHeapSize:          16 << 30, // 16 GiB
		MaxTenuringThreshold: 14,

		ZPageSizeSmall:  2 << 20,  // 2 MiB
		ZPageSizeMedium: 32 << 20, // 32 MiB
		ZGranuleSize:    2 << 20,

		DecisionHz: 10,
	}
}

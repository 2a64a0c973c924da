// Package zheap defines the heap facade consumed by the heuristics core.
package zheap

// Facade exposes heap occupancy to the heuristics core. All methods are
// synchronous, non-blocking, and must return a value consistent with a
// single point in time.
type Facade interface {
	// SoftMaxCapacity returns the soft maximum heap capacity in bytes.
	SoftMaxCapacity() uint64
	// Used returns the total heap bytes currently in use.
	Used() uint64
	// UsedOld returns the bytes currently in use within the old generation.
	UsedOld() uint64
	// IsAllocStallingForOld reports whether a mutator allocation is
	// currently stalled waiting on an old-generation collection.
	IsAllocStallingForOld() bool
}

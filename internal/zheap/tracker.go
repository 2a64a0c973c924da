package zheap

import "sync/atomic"

// Tracker is a concrete, mutable Facade implementation driven by Set
// calls. A simulation driver or test feeds it synthetic occupancy changes;
// a production embedding would instead adapt the heap allocator's own
// occupancy counters to call the same setters.
type Tracker struct {
	softMaxCapacity atomic.Uint64
	used            atomic.Uint64
	usedOld         atomic.Uint64
	stalling        atomic.Bool
}

// NewTracker constructs a Tracker with the given soft maximum capacity.
func NewTracker(softMaxCapacity uint64) *Tracker {
	t := &Tracker{}
	t.softMaxCapacity.Store(softMaxCapacity)
	return t
}

// SetSoftMaxCapacity updates the soft maximum heap capacity.
func (t *Tracker) SetSoftMaxCapacity(v uint64) { t.softMaxCapacity.Store(v) }

// SetUsed updates the total heap bytes in use.
func (t *Tracker) SetUsed(v uint64) { t.used.Store(v) }

// SetUsedOld updates the old-generation bytes in use.
func (t *Tracker) SetUsedOld(v uint64) { t.usedOld.Store(v) }

// SetAllocStallingForOld updates the mutator-stall flag.
func (t *Tracker) SetAllocStallingForOld(v bool) { t.stalling.Store(v) }

// SoftMaxCapacity implements Facade.
func (t *Tracker) SoftMaxCapacity() uint64 { return t.softMaxCapacity.Load() }

// Used implements Facade.
func (t *Tracker) Used() uint64 { return t.used.Load() }

// UsedOld implements Facade.
func (t *Tracker) UsedOld() uint64 { return t.usedOld.Load() }

// IsAllocStallingForOld implements Facade.
func (t *Tracker) IsAllocStallingForOld() bool { return t.stalling.Load() }

// Package zstat defines the statistics facade consumed by the heuristics
// core: per-generation cycle timing, allocation rate, and warmup state.
//
// All methods are synchronous and non-blocking. Each heuristics rule calls
// the accessors it needs while it evaluates; nothing snapshots a facade as a
// whole, so values read through different accessors during one heuristics
// call may come from different moments of a concurrently-updated tracker.
package zstat

import "time"

// Timing is a decaying average/standard-deviation pair for a per-cycle
// timing series (serial time or parallelizable time).
type Timing struct {
	Davg float64 // decaying average, seconds
	Dsd  float64 // decaying standard deviation, seconds
}

// AllocRate is the mutator allocation-rate facade's snapshot: bytes/second.
type AllocRate struct {
	Avg     float64
	Sd      float64
	Predict float64
}

// MutatorAllocRateFacade exposes the mutator's allocation-rate statistics
// to the heuristics core.
type MutatorAllocRateFacade interface {
	// Stats returns the current average, standard deviation, and one-step
	// predictor of the mutator allocation rate, in bytes/second.
	Stats() AllocRate
}

// CycleFacade exposes one generation's (young or old) running cycle
// statistics to the heuristics core.
type CycleFacade interface {
	// SerialTime returns the decaying average/sd of serial (single-threaded)
	// phase duration for this generation's cycle.
	SerialTime() Timing
	// ParallelizableTime returns the decaying average/sd of the
	// parallelizable phase duration.
	ParallelizableTime() Timing
	// TimeSinceLast returns the time elapsed since the last completed cycle
	// of this generation.
	TimeSinceLast() time.Duration
	// IsWarm reports whether enough cycles have completed to trust this
	// generation's timing statistics.
	IsWarm() bool
	// IsTimeTrustable reports a cleaner signal than IsWarm that may become
	// true before the generation is warm.
	IsTimeTrustable() bool
	// NWarmupCycles returns the count of warmup cycles completed so far.
	NWarmupCycles() uint
	// LastActiveWorkers returns the worker count active during the last
	// completed cycle.
	LastActiveWorkers() uint
	// AvgCycleInterval returns the decaying average interval between the
	// starts of successive cycles.
	AvgCycleInterval() time.Duration
	// LiveAtMarkEnd returns the live-byte count measured at the end of the
	// last mark phase.
	LiveAtMarkEnd() uint64
	// ReclaimedAvg returns the decaying average of bytes reclaimed per
	// cycle.
	ReclaimedAvg() uint64
	// UsedAtRelocateEnd returns the used-byte count measured at the end of
	// the last relocation phase.
	UsedAtRelocateEnd() uint64
	// TotalCollections returns the lifetime count of completed cycles for
	// this generation.
	TotalCollections() uint64
	// TotalCollectionsAtLastOld returns the young generation's
	// TotalCollections() value as it stood when this generation's own last
	// cycle ended. Only meaningful on the old generation's facade; it is
	// the snapshot the major allocation-rate rule subtracts from the young
	// generation's current TotalCollections() to derive the lookahead
	// (number of young cycles since the last old cycle).
	TotalCollectionsAtLastOld() uint64
}

// Package workerpool defines the per-generation worker pool facade consumed
// by the heuristics core and the director, plus a concrete resizable pool
// implementation generalized from a stream-processing worker pool: an
// atomic current-worker count with asynchronous resize that spawns or
// retires workers.
package workerpool

import "github.com/ibs-source/zgc/director/internal/zstat"

// ResizeStats is what a pool reports back for one generation on each tick,
// combining pool-level activity state with the mid-cycle timing budget
// already spent ("time passed") so the dynamic allocation-rate model can
// re-evaluate worker counts mid-cycle.
type ResizeStats struct {
	IsActive             bool
	NWorkersCurrent      uint
	SerialGCTimePassed   float64 // seconds
	ParallelGCTimePassed float64 // seconds
}

// Facade is the per-generation worker pool contract consumed by the
// heuristics core and the director.
type Facade interface {
	// ResizeStats reports the pool's current activity and, for the given
	// cycle statistics facade, the mid-cycle timing already spent.
	ResizeStats(cycle zstat.CycleFacade) ResizeStats
	// RequestResizeWorkers asynchronously requests the pool converge to n
	// workers. The call does not block and does not guarantee n is reached
	// by any particular tick.
	RequestResizeWorkers(n uint)
}

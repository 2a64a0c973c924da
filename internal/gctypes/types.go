// Package gctypes defines the value types shared by the heuristics core,
// the director loop, and the facades it consumes.
package gctypes

import "github.com/google/uuid"

// Cause tags the reason a GCDecision requests a collection cycle.
type Cause string

// The distinguished no_gc value and the named reasons a cycle can fire for.
const (
	CauseNoGC           Cause = "no_gc"
	CauseTimer          Cause = "timer"
	CauseWarmup         Cause = "warmup"
	CauseProactive      Cause = "proactive"
	CauseAllocationRate Cause = "allocation_rate"
	CauseHighUsage      Cause = "high_usage"
)

// WorkerConfiguration is an ordered pair of worker counts, one per generation.
type WorkerConfiguration struct {
	Young uint
	Old   uint
}

// WorkerResizeInfo describes one generation's worker-pool resize candidacy
// for a single tick.
type WorkerResizeInfo struct {
	IsActive        bool
	CurrentNWorkers uint
	DesiredNWorkers uint
}

// GCDecision is the result of a GC-start rule evaluation.
type GCDecision struct {
	Cause   Cause
	Workers WorkerConfiguration
}

// ShouldGC reports whether the decision requests a collection cycle.
func (d GCDecision) ShouldGC() bool {
	return d.Cause != CauseNoGC
}

// WorkerDecision is the result of a worker-adjust rule evaluation.
type WorkerDecision struct {
	ShouldAdjustYoung bool
	ShouldAdjustOld   bool
	Workers           WorkerConfiguration
}

// PageConfiguration captures the page-sizing decisions made once at startup.
type PageConfiguration struct {
	UsePerCPUSharedSmallPages  bool
	UseMediumPages             bool
	MediumPageSize             uint64
	MediumPageSizeShift        uint
	MediumObjectSizeLimit      uint64
	MediumObjectAlignment      uint64
	MediumObjectAlignmentShift uint
}

// InitialConfiguration is the one-time startup sizing product.
type InitialConfiguration struct {
	PageConfiguration    PageConfiguration
	NumParallelWorkers   uint
	NumConcurrentWorkers uint
	TenuringThreshold    uint
}

// DriverRequest is submitted to the Driver Facade to start a collection
// cycle. CorrelationID identifies the request across logs and the replay
// recorder; callers that don't need one can leave it at its zero value.
type DriverRequest struct {
	CorrelationID uuid.UUID
	Cause         Cause
	YoungWorkers  uint
	OldWorkers    uint
}

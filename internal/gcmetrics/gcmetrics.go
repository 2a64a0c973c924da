// Package gcmetrics tracks the director's own operational counters: ticks
// run, decisions issued per cause, and resize requests issued.
package gcmetrics

import (
	"sync"
	"sync/atomic"

	"github.com/ibs-source/zgc/director/internal/gctypes"
)

// Recorder accumulates director activity counters. Safe for concurrent use.
type Recorder struct {
	ticksRun      atomic.Uint64
	resizesIssued atomic.Uint64
	byCause       sync.Map // gctypes.Cause -> *atomic.Uint64
}

// New constructs an empty Recorder.
func New() *Recorder {
	return &Recorder{}
}

// RecordTick increments the tick counter.
func (r *Recorder) RecordTick() {
	r.ticksRun.Add(1)
}

// RecordDecision increments the counter for the given cause.
func (r *Recorder) RecordDecision(cause gctypes.Cause) {
	v, _ := r.byCause.LoadOrStore(cause, new(atomic.Uint64))
	v.(*atomic.Uint64).Add(1)
}

// RecordResize increments the resize-requests-issued counter.
func (r *Recorder) RecordResize() {
	r.resizesIssued.Add(1)
}

// Snapshot is a point-in-time copy of the recorder's counters.
type Snapshot struct {
	TicksRun         uint64
	ResizesIssued    uint64
	DecisionsByCause map[gctypes.Cause]uint64
}

// Snapshot returns the recorder's current counters.
func (r *Recorder) Snapshot() Snapshot {
	byCause := make(map[gctypes.Cause]uint64)
	r.byCause.Range(func(k, v interface{}) bool {
		byCause[k.(gctypes.Cause)] = v.(*atomic.Uint64).Load()
		return true
	})
	return Snapshot{
		TicksRun:         r.ticksRun.Load(),
		ResizesIssued:    r.resizesIssued.Load(),
		DecisionsByCause: byCause,
	}
}

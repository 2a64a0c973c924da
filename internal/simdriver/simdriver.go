// Package simdriver implements a synthetic driver.Submitter for the
// "simulate" CLI mode: it does not perform any real marking or relocation
// work (out of scope), but models the busy/collect contract realistically
// enough to drive the heuristics core end to end — a fixed-latency
// goroutine stands in for an in-flight cycle, then folds a synthetic
// CycleSample back into the generation's zstat.Tracker and adjusts the
// zheap.Tracker's occupancy, so a subsequent tick sees a believable
// post-collection heap.
package simdriver

import (
	"sync/atomic"
	"time"

	"github.com/ibs-source/zgc/director/internal/gctypes"
	"github.com/ibs-source/zgc/director/internal/zheap"
	"github.com/ibs-source/zgc/director/internal/zstat"
)

// Submitter is a synthetic collection driver for one generation.
type Submitter struct {
	busy     atomic.Bool
	duration time.Duration
	stats    *zstat.Tracker
	heap     *zheap.Tracker
	isMajor  bool
}

// New constructs a Submitter that simulates a cycle taking duration and
// reports its completion into stats and heap.
func New(duration time.Duration, stats *zstat.Tracker, heap *zheap.Tracker, isMajor bool) *Submitter {
	return &Submitter{duration: duration, stats: stats, heap: heap, isMajor: isMajor}
}

// IsBusy implements driver.Submitter.
func (s *Submitter) IsBusy() bool {
	return s.busy.Load()
}

// Collect implements driver.Submitter: launches a goroutine that sleeps for
// the configured duration, then records a synthetic completed cycle.
func (s *Submitter) Collect(request gctypes.DriverRequest) {
	if !s.busy.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer s.busy.Store(false)
		time.Sleep(s.duration)

		serialFraction := 0.1
		total := s.duration.Seconds()
		sample := zstat.CycleSample{
			SerialSeconds:     total * serialFraction,
			ParallelSeconds:   total * (1 - serialFraction),
			ActiveWorkers:     request.YoungWorkers,
			LiveAtMarkEnd:     s.heap.Used(),
			ReclaimedBytes:    s.reclaimEstimate(),
			UsedAtRelocateEnd: s.heap.Used(),
		}
		if s.isMajor {
			sample.ActiveWorkers = request.OldWorkers
		}
		s.stats.RecordCycle(sample)

		reclaimed := sample.ReclaimedBytes
		used := s.heap.Used()
		if reclaimed > used {
			reclaimed = used
		}
		s.heap.SetUsed(used - reclaimed)
		if s.isMajor {
			usedOld := s.heap.UsedOld()
			if reclaimed > usedOld {
				reclaimed = usedOld
			}
			s.heap.SetUsedOld(usedOld - reclaimed)
		}
		s.heap.SetAllocStallingForOld(false)
	}()
}

// reclaimEstimate models a collection reclaiming a fixed fraction of the
// heap currently in use, a simplification appropriate only for driving the
// heuristics core's decision cadence, not for measuring real throughput.
func (s *Submitter) reclaimEstimate() uint64 {
	const reclaimFraction = 0.3
	return uint64(float64(s.heap.Used()) * reclaimFraction)
}

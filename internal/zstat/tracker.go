package zstat

import (
	"sync"
	"time"

	"github.com/ibs-source/zgc/director/pkg/ewma"
)

// Tracker is a concrete, mutable CycleFacade/MutatorAllocRateFacade
// implementation driven by RecordCycle/RecordAllocSample calls, backed by
// pkg/ewma for the decaying moments. It is the facade a simulation driver
// or an integration test feeds with synthetic cycle events; a production
// embedding would instead adapt the collector's own phase-timing hooks to
// call the same Record* methods.
type Tracker struct {
	mu sync.Mutex

	serial        *ewma.Decaying
	parallel      *ewma.Decaying
	cycleInterval *ewma.Decaying
	reclaimed     *ewma.Decaying
	allocRate     *ewma.Decaying

	lastCycleEnd      time.Time
	lastCycleStart    time.Time
	warmupCycles      uint
	warm              bool
	lastActiveWorkers uint
	liveAtMarkEnd     uint64
	usedAtRelocateEnd uint64
	totalCollections  uint64
	totalAtLastOld    uint64

	allocPredict float64
}

// NewTracker constructs a Tracker whose decaying statistics use alpha as
// the exponential-forgetting factor. A value around 0.3 gives a half-life
// of a handful of cycles; callers typically pass the same value for every
// generation's tracker.
func NewTracker(alpha float64) *Tracker {
	now := time.Now()
	return &Tracker{
		serial:         ewma.New(alpha),
		parallel:       ewma.New(alpha),
		cycleInterval:  ewma.New(alpha),
		reclaimed:      ewma.New(alpha),
		allocRate:      ewma.New(alpha),
		lastCycleEnd:   now,
		lastCycleStart: now,
	}
}

// CycleSample is one completed collection cycle's measurements, fed to
// RecordCycle.
type CycleSample struct {
	SerialSeconds     float64
	ParallelSeconds   float64
	ActiveWorkers     uint
	LiveAtMarkEnd     uint64
	ReclaimedBytes    uint64
	UsedAtRelocateEnd uint64
	YoungTotalAtCycle uint64 // only meaningful when recording on the old tracker
}

// RecordCycle folds one completed cycle's measurements into the decaying
// statistics and advances the warmup/warm state.
func (t *Tracker) RecordCycle(s CycleSample) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	if t.totalCollections > 0 {
		t.cycleInterval.Add(now.Sub(t.lastCycleStart).Seconds())
	}
	t.lastCycleStart = now
	t.lastCycleEnd = now

	t.serial.Add(s.SerialSeconds)
	t.parallel.Add(s.ParallelSeconds)
	t.reclaimed.Add(float64(s.ReclaimedBytes))

	t.lastActiveWorkers = s.ActiveWorkers
	t.liveAtMarkEnd = s.LiveAtMarkEnd
	t.usedAtRelocateEnd = s.UsedAtRelocateEnd
	t.totalCollections++
	t.totalAtLastOld = s.YoungTotalAtCycle

	if t.warmupCycles < 3 {
		t.warmupCycles++
	}
	if t.warmupCycles >= 3 {
		t.warm = true
	}
}

// RecordAllocSample folds one mutator allocation-rate sample (bytes
// allocated over the preceding interval, in bytes/second) into the
// decaying allocation-rate statistics.
func (t *Tracker) RecordAllocSample(bytesPerSecond float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.allocRate.Add(bytesPerSecond)
	t.allocPredict = t.allocRate.Davg() + 3.290527*t.allocRate.Dsd()
}

// SerialTime implements CycleFacade.
func (t *Tracker) SerialTime() Timing {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Timing{Davg: t.serial.Davg(), Dsd: t.serial.Dsd()}
}

// ParallelizableTime implements CycleFacade.
func (t *Tracker) ParallelizableTime() Timing {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Timing{Davg: t.parallel.Davg(), Dsd: t.parallel.Dsd()}
}

// TimeSinceLast implements CycleFacade.
func (t *Tracker) TimeSinceLast() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return time.Since(t.lastCycleEnd)
}

// IsWarm implements CycleFacade.
func (t *Tracker) IsWarm() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.warm
}

// IsTimeTrustable implements CycleFacade: at least one cycle recorded.
func (t *Tracker) IsTimeTrustable() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.totalCollections > 0
}

// NWarmupCycles implements CycleFacade.
func (t *Tracker) NWarmupCycles() uint {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.warmupCycles
}

// LastActiveWorkers implements CycleFacade.
func (t *Tracker) LastActiveWorkers() uint {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastActiveWorkers
}

// AvgCycleInterval implements CycleFacade.
func (t *Tracker) AvgCycleInterval() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return time.Duration(t.cycleInterval.Davg() * float64(time.Second))
}

// LiveAtMarkEnd implements CycleFacade.
func (t *Tracker) LiveAtMarkEnd() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.liveAtMarkEnd
}

// ReclaimedAvg implements CycleFacade.
func (t *Tracker) ReclaimedAvg() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.reclaimed.Davg() < 0 {
		return 0
	}
	return uint64(t.reclaimed.Davg())
}

// UsedAtRelocateEnd implements CycleFacade.
func (t *Tracker) UsedAtRelocateEnd() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.usedAtRelocateEnd
}

// TotalCollections implements CycleFacade.
func (t *Tracker) TotalCollections() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.totalCollections
}

// TotalCollectionsAtLastOld implements CycleFacade.
func (t *Tracker) TotalCollectionsAtLastOld() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.totalAtLastOld
}

// Stats implements MutatorAllocRateFacade.
func (t *Tracker) Stats() AllocRate {
	t.mu.Lock()
	defer t.mu.Unlock()
	return AllocRate{Avg: t.allocRate.Davg(), Sd: t.allocRate.Dsd(), Predict: t.allocPredict}
}

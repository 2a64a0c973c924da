package heuristics

import (
	"time"

	"github.com/ibs-source/zgc/director/internal/gctypes"
	"github.com/ibs-source/zgc/director/internal/workerpool"
	"github.com/ibs-source/zgc/director/internal/zstat"
)

// fakeCycle is a fully-settable zstat.CycleFacade for exercising individual
// rules in isolation.
type fakeCycle struct {
	serial, parallel  zstat.Timing
	timeSinceLast     time.Duration
	warm, trustable   bool
	nWarmup           uint
	lastActive        uint
	avgCycleInterval  time.Duration
	liveAtMarkEnd     uint64
	reclaimedAvg      uint64
	usedAtRelocateEnd uint64
	totalCollections  uint64
	totalAtLastOld    uint64
}

func (f fakeCycle) SerialTime() zstat.Timing                 { return f.serial }
func (f fakeCycle) ParallelizableTime() zstat.Timing          { return f.parallel }
func (f fakeCycle) TimeSinceLast() time.Duration              { return f.timeSinceLast }
func (f fakeCycle) IsWarm() bool                              { return f.warm }
func (f fakeCycle) IsTimeTrustable() bool                     { return f.trustable }
func (f fakeCycle) NWarmupCycles() uint                       { return f.nWarmup }
func (f fakeCycle) LastActiveWorkers() uint                   { return f.lastActive }
func (f fakeCycle) AvgCycleInterval() time.Duration           { return f.avgCycleInterval }
func (f fakeCycle) LiveAtMarkEnd() uint64                     { return f.liveAtMarkEnd }
func (f fakeCycle) ReclaimedAvg() uint64                      { return f.reclaimedAvg }
func (f fakeCycle) UsedAtRelocateEnd() uint64                 { return f.usedAtRelocateEnd }
func (f fakeCycle) TotalCollections() uint64                  { return f.totalCollections }
func (f fakeCycle) TotalCollectionsAtLastOld() uint64         { return f.totalAtLastOld }

type fakeAlloc struct {
	stats zstat.AllocRate
}

func (f fakeAlloc) Stats() zstat.AllocRate { return f.stats }

type fakeHeap struct {
	softMax, used, usedOld uint64
	stalling               bool
}

func (f fakeHeap) SoftMaxCapacity() uint64     { return f.softMax }
func (f fakeHeap) Used() uint64                { return f.used }
func (f fakeHeap) UsedOld() uint64             { return f.usedOld }
func (f fakeHeap) IsAllocStallingForOld() bool { return f.stalling }

type fakeSubmitter struct {
	busy bool
}

func (f *fakeSubmitter) IsBusy() bool                          { return f.busy }
func (f *fakeSubmitter) Collect(_ gctypes.DriverRequest) {}

type fakePool struct {
	stats workerpool.ResizeStats
}

func (f fakePool) ResizeStats(_ zstat.CycleFacade) workerpool.ResizeStats { return f.stats }
func (f fakePool) RequestResizeWorkers(_ uint)                            {}

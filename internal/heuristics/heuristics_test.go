package heuristics

import (
	"testing"
	"time"

	"github.com/ibs-source/zgc/director/internal/driver"
	"github.com/ibs-source/zgc/director/internal/gcconfig"
	"github.com/ibs-source/zgc/director/internal/gctypes"
	"github.com/ibs-source/zgc/director/internal/zstat"
	"github.com/stretchr/testify/assert"
)

func baseTunables() gcconfig.Tunables {
	return gcconfig.Tunables{
		ConcGCThreads:               4,
		ZAllocationSpikeTolerance:   2.0,
		ZProactive:                  true,
		UseDynamicNumberOfGCThreads: false,
		MaxHeapSize:                 16 << 30,
		MaxTenuringThreshold:        14,
		ZPageSizeSmall:              2 << 20,
		ZPageSizeMedium:             32 << 20,
		ZGranuleSize:                2 << 20,
		DecisionHz:                  10,
	}
}

func TestMakeMajorGCDecisionBusyIsNoGC(t *testing.T) {
	h := &RuleBasedHeuristics{
		Tunables: baseTunables(),
		Driver:   driver.Facade{Major: &fakeSubmitter{busy: true}, Minor: &fakeSubmitter{}},
		Old:      Generation{Stats: fakeCycle{}},
	}
	d := h.MakeMajorGCDecision()
	assert.False(t, d.ShouldGC())
	assert.Equal(t, gctypes.CauseNoGC, d.Cause)
}

func TestMakeMajorGCDecisionTimer(t *testing.T) {
	tn := baseTunables()
	tn.ZCollectionIntervalMajor = time.Second
	h := &RuleBasedHeuristics{
		Tunables: tn,
		Driver:   driver.Facade{Major: &fakeSubmitter{}, Minor: &fakeSubmitter{}},
		Old:      Generation{Stats: fakeCycle{timeSinceLast: 2 * time.Second}},
		Heap:     fakeHeap{},
	}
	d := h.MakeMajorGCDecision()
	assert.Equal(t, gctypes.CauseTimer, d.Cause)
}

func TestMakeMajorGCDecisionWarmup(t *testing.T) {
	h := &RuleBasedHeuristics{
		Tunables: baseTunables(),
		Driver:   driver.Facade{Major: &fakeSubmitter{}, Minor: &fakeSubmitter{}},
		Old:      Generation{Stats: fakeCycle{warm: false, nWarmup: 0}},
		Heap:     fakeHeap{softMax: 1000, used: 150},
	}
	d := h.MakeMajorGCDecision()
	assert.Equal(t, gctypes.CauseWarmup, d.Cause)
}

func TestMakeMajorGCDecisionProactive(t *testing.T) {
	h := &RuleBasedHeuristics{
		Tunables: baseTunables(),
		Driver:   driver.Facade{Major: &fakeSubmitter{}, Minor: &fakeSubmitter{}},
		Old: Generation{Stats: fakeCycle{
			warm:          true,
			timeSinceLast: 400 * time.Second,
		}},
		Heap: fakeHeap{softMax: 1000, used: 500},
	}
	d := h.MakeMajorGCDecision()
	assert.Equal(t, gctypes.CauseProactive, d.Cause)
}

func TestMakeMajorGCDecisionNoRuleFires(t *testing.T) {
	h := &RuleBasedHeuristics{
		Tunables: baseTunables(),
		Driver:   driver.Facade{Major: &fakeSubmitter{}, Minor: &fakeSubmitter{}},
		Old:      Generation{Stats: fakeCycle{warm: true, timeSinceLast: time.Second}},
		Heap:     fakeHeap{softMax: 1000, used: 10},
	}
	d := h.MakeMajorGCDecision()
	assert.False(t, d.ShouldGC())
}

func TestMakeMinorGCDecisionBusyIsNoGC(t *testing.T) {
	h := &RuleBasedHeuristics{
		Tunables: baseTunables(),
		Driver:   driver.Facade{Major: &fakeSubmitter{}, Minor: &fakeSubmitter{busy: true}},
	}
	d := h.MakeMinorGCDecision()
	assert.False(t, d.ShouldGC())
}

func TestMakeMinorGCDecisionTimer(t *testing.T) {
	tn := baseTunables()
	tn.ZCollectionIntervalMinor = time.Second
	h := &RuleBasedHeuristics{
		Tunables: tn,
		Driver:   driver.Facade{Major: &fakeSubmitter{}, Minor: &fakeSubmitter{}},
		Young:    Generation{Stats: fakeCycle{timeSinceLast: 2 * time.Second}},
		Old:      Generation{Stats: fakeCycle{}},
		Heap:     fakeHeap{},
	}
	d := h.MakeMinorGCDecision()
	assert.Equal(t, gctypes.CauseTimer, d.Cause)
}

func TestMakeMinorGCDecisionHighUsage(t *testing.T) {
	h := &RuleBasedHeuristics{
		Tunables: baseTunables(),
		Driver:   driver.Facade{Major: &fakeSubmitter{}, Minor: &fakeSubmitter{}},
		Young:    Generation{Stats: fakeCycle{}},
		Old:      Generation{Stats: fakeCycle{}},
		Heap:     fakeHeap{softMax: 1000, used: 960},
	}
	h.Tunables.ZPageSizeSmall = 0
	h.Tunables.ZPageSizeMedium = 0
	h.Tunables.ConcGCThreads = 0
	d := h.MakeMinorGCDecision()
	assert.Equal(t, gctypes.CauseHighUsage, d.Cause)
}

func TestMakeMinorGCDecisionStaticAllocationRate(t *testing.T) {
	h := &RuleBasedHeuristics{
		Tunables: baseTunables(),
		Driver:   driver.Facade{Major: &fakeSubmitter{}, Minor: &fakeSubmitter{}},
		Alloc:    fakeAlloc{stats: zstat.AllocRate{Avg: 1000, Sd: 0}},
		Young:    Generation{Stats: fakeCycle{serial: zstat.Timing{Davg: 1}, parallel: zstat.Timing{Davg: 1}}},
		Old:      Generation{Stats: fakeCycle{trustable: true}},
		Heap:     fakeHeap{softMax: 1000, used: 999},
	}
	h.Tunables.ConcGCThreads = 1
	h.Tunables.ZPageSizeSmall = 0
	h.Tunables.ZPageSizeMedium = 0
	d := h.MakeMinorGCDecision()
	assert.Equal(t, gctypes.CauseAllocationRate, d.Cause)
}

// TestMinorDecisionMergesIntoMajor exercises the director's "merging minor
// into major" contract: a firing minor rule that coincides with a held
// major allocation-rate rule also requests old workers in the same
// decision, per MakeMinorGCDecision's documented behavior.
func TestMinorDecisionMergesIntoMajor(t *testing.T) {
	tn := baseTunables()
	tn.ZCollectionIntervalMinor = time.Second
	tn.ConcGCThreads = 4

	h := &RuleBasedHeuristics{
		Tunables: tn,
		Driver:   driver.Facade{Major: &fakeSubmitter{}, Minor: &fakeSubmitter{}},
		Heap:     fakeHeap{usedOld: 100},
		Young: Generation{Stats: fakeCycle{
			timeSinceLast:    2 * time.Second,
			serial:           zstat.Timing{Davg: 1},
			parallel:         zstat.Timing{Davg: 1},
			reclaimedAvg:     10,
			totalCollections: 5,
		}},
		Old: Generation{Stats: fakeCycle{trustable: true}},
	}

	d := h.MakeMinorGCDecision()
	assert.Equal(t, gctypes.CauseTimer, d.Cause)
	assert.Equal(t, uint(2), d.Workers.Old, "major allocation-rate rule holds, so old workers are requested too")
	assert.Equal(t, uint(2), d.Workers.Young)
}

func TestInitialConfigurationWorkedExample(t *testing.T) {
	// 16 GB heap, ZGranuleSize = 2 MB, ZPageSizeSmall = 2 MB: medium page
	// size is clamp(16GB*0.03125, 2MB, 32MB) = 32MB, already a power of two.
	h := &RuleBasedHeuristics{Tunables: baseTunables()}

	cfg := h.calculatePageConfiguration()
	assert.Equal(t, uint64(32<<20), cfg.MediumPageSize)
	assert.True(t, cfg.UseMediumPages)
	assert.Equal(t, uint(25), cfg.MediumPageSizeShift) // 32MiB = 2^25
}

func TestNworkersBasedOnNCPUsWorkedExample(t *testing.T) {
	assert.Equal(t, uint(20), nworkersBasedOnNCPUs(32, 60.0))
	assert.Equal(t, uint(8), nworkersBasedOnNCPUs(32, 25.0))
}

func TestNworkersBasedOnHeapShareWorkedExample(t *testing.T) {
	h := &RuleBasedHeuristics{Tunables: baseTunables()}
	assert.Equal(t, uint(163), h.nworkersBasedOnHeapShare(reservedHeapSharePercent))
}

func TestCalculateTenuringThreshold(t *testing.T) {
	h := &RuleBasedHeuristics{Tunables: gcconfig.Tunables{
		MaxHeapSize:          1000,
		ZPageSizeMedium:      10,
		ZPageSizeSmall:       5,
		ConcGCThreads:        2,
		MaxTenuringThreshold: 10,
	}}
	assert.Equal(t, uint(2), h.calculateTenuringThreshold())
}

func TestAdjustWorkersClampsBothGenerations(t *testing.T) {
	young := gctypes.WorkerResizeInfo{IsActive: true, CurrentNWorkers: 2, DesiredNWorkers: 10}
	old := gctypes.WorkerResizeInfo{IsActive: true, CurrentNWorkers: 1, DesiredNWorkers: 5}

	decision := adjustWorkers(young, old, 8)

	assert.True(t, decision.ShouldAdjustYoung)
	assert.Equal(t, uint(7), decision.Workers.Young)
	assert.False(t, decision.ShouldAdjustOld)
}

func TestAdjustWorkersBothInactiveIsNoop(t *testing.T) {
	decision := adjustWorkers(gctypes.WorkerResizeInfo{}, gctypes.WorkerResizeInfo{}, 8)
	assert.False(t, decision.ShouldAdjustYoung)
	assert.False(t, decision.ShouldAdjustOld)
}

func TestAdjustWorkersForcesOldDownWhenTotalExceedsBudget(t *testing.T) {
	young := gctypes.WorkerResizeInfo{IsActive: true, CurrentNWorkers: 6, DesiredNWorkers: 6}
	old := gctypes.WorkerResizeInfo{IsActive: true, CurrentNWorkers: 6, DesiredNWorkers: 6}

	decision := adjustWorkers(young, old, 8)
	assert.True(t, decision.ShouldAdjustOld)
	assert.GreaterOrEqual(t, decision.Workers.Old, uint(1))
}

func TestMakeAdjustWorkersDecisionDisabledWhenStatic(t *testing.T) {
	h := &RuleBasedHeuristics{Tunables: gcconfig.Tunables{UseDynamicNumberOfGCThreads: false}}
	d := h.MakeAdjustWorkersDecision()
	assert.False(t, d.ShouldAdjustYoung)
	assert.False(t, d.ShouldAdjustOld)
}

func TestInitialWorkersStaticSplit(t *testing.T) {
	h := &RuleBasedHeuristics{Tunables: gcconfig.Tunables{ConcGCThreads: 4, UseDynamicNumberOfGCThreads: false}}
	assert.Equal(t, uint(2), h.initialOldWorkers())
	assert.Equal(t, uint(2), h.initialYoungWorkers())
}

package heuristics

import "github.com/ibs-source/zgc/director/internal/gctypes"

// ruleMinorTimer implements the minor timer rule.
func (h *RuleBasedHeuristics) ruleMinorTimer() bool {
	if h.Tunables.ZCollectionIntervalMinor <= 0 {
		return false
	}
	return h.Young.Stats.TimeSinceLast() >= h.Tunables.ZCollectionIntervalMinor
}

// ruleMinorAllocationRate implements the minor allocation-rate rule:
// dispatches to the dynamic or static model depending on
// UseDynamicNumberOfGCThreads. Disabled if ZCollectionIntervalOnly or the
// heap reports a mutator stalled waiting on old.
func (h *RuleBasedHeuristics) ruleMinorAllocationRate() bool {
	if h.Tunables.ZCollectionIntervalOnly || h.Heap.IsAllocStallingForOld() {
		return false
	}
	if h.Tunables.UseDynamicNumberOfGCThreads {
		return h.ruleMinorAllocationRateDynamic(0.0, 0.0).ShouldGC()
	}
	return h.ruleMinorAllocationRateStatic()
}

// ruleMinorHighUsage implements the minor high-usage rule: free_percent <= 5%.
func (h *RuleBasedHeuristics) ruleMinorHighUsage() bool {
	if h.Tunables.ZCollectionIntervalOnly {
		return false
	}
	softMax := float64(h.Heap.SoftMaxCapacity())
	if softMax <= 0 {
		return false
	}
	freePercent := h.freeAfterHeadroom() / softMax * 100.0
	return freePercent <= 5.0
}

// MakeMinorGCDecision evaluates the minor rules in order (timer,
// allocation_rate, high_usage); first match wins, no_gc if the minor driver
// is busy or none match. A minor decision that fires while the major
// allocation-rate rule holds also requests old workers, merging the minor
// into a major on the same submission.
func (h *RuleBasedHeuristics) MakeMinorGCDecision() gctypes.GCDecision {
	if h.Driver.Minor.IsBusy() {
		return gctypes.GCDecision{Cause: gctypes.CauseNoGC}
	}

	cause := gctypes.CauseNoGC
	switch {
	case h.ruleMinorTimer():
		cause = gctypes.CauseTimer
	case h.ruleMinorAllocationRate():
		cause = gctypes.CauseAllocationRate
	case h.ruleMinorHighUsage():
		cause = gctypes.CauseHighUsage
	}

	h.logDebug("minor-decision")

	if cause == gctypes.CauseNoGC {
		return gctypes.GCDecision{Cause: gctypes.CauseNoGC}
	}

	workers := gctypes.WorkerConfiguration{Young: h.initialYoungWorkers()}
	if !h.Driver.Major.IsBusy() && h.ruleMajorAllocationRate() {
		workers.Old = h.initialOldWorkers()
	}
	return gctypes.GCDecision{Cause: cause, Workers: workers}
}

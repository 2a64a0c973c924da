package heuristics

import "github.com/ibs-source/zgc/director/internal/gctypes"

// nwarmupCycles returns the old generation's warmup-cycle count.
func (h *RuleBasedHeuristics) nwarmupCycles() uint {
	return h.Old.Stats.NWarmupCycles()
}

// ruleMajorTimer implements the major timer rule.
func (h *RuleBasedHeuristics) ruleMajorTimer() bool {
	if h.Tunables.ZCollectionIntervalMajor <= 0 {
		return false
	}
	return h.Old.Stats.TimeSinceLast() >= h.Tunables.ZCollectionIntervalMajor
}

// ruleMajorWarmup implements the major warmup rule: three early collections
// at 10%, 20%, 30% used, to produce initial duration samples.
func (h *RuleBasedHeuristics) ruleMajorWarmup() bool {
	if h.Old.Stats.IsWarm() || h.Tunables.ZCollectionIntervalOnly {
		return false
	}
	n := h.nwarmupCycles()
	threshold := float64(h.Heap.SoftMaxCapacity()) * float64(n+1) / 10.0
	return float64(h.Heap.Used()) >= threshold
}

// gcDuration is the old generation's predicted cycle duration with the
// 3.29-sigma safety margin, used by both the proactive rule and the
// proactive gate's acceptable-interval derivation.
func (h *RuleBasedHeuristics) gcDuration() float64 {
	serial := h.Old.Stats.SerialTime()
	parallel := h.Old.Stats.ParallelizableTime()
	return (serial.Davg + oneIn1000*serial.Dsd) +
		(parallel.Davg+oneIn1000*parallel.Dsd)/float64(h.Tunables.ConcGCThreads)
}

// ruleMajorProactive implements the proactive major rule.
func (h *RuleBasedHeuristics) ruleMajorProactive() bool {
	if h.Tunables.ZCollectionIntervalOnly || !h.Tunables.ZProactive || !h.Old.Stats.IsWarm() {
		return false
	}

	timeSinceLastOld := h.Old.Stats.TimeSinceLast().Seconds()
	usedGrowth := float64(h.Heap.Used()) - float64(h.Old.Stats.UsedAtRelocateEnd())
	growthGate := usedGrowth >= 0.10*float64(h.Heap.SoftMaxCapacity()) || timeSinceLastOld >= 300.0
	if !growthGate {
		return false
	}

	acceptableGCInterval := h.gcDuration() * 49.0
	return timeSinceLastOld >= acceptableGCInterval
}

// MakeMajorGCDecision implements make_major_gc_decision: rules are
// evaluated in order (timer, warmup, proactive), first match wins, no_gc if
// the major driver is busy or none match.
func (h *RuleBasedHeuristics) MakeMajorGCDecision() gctypes.GCDecision {
	if h.Driver.Major.IsBusy() {
		return gctypes.GCDecision{Cause: gctypes.CauseNoGC}
	}

	cause := gctypes.CauseNoGC
	switch {
	case h.ruleMajorTimer():
		cause = gctypes.CauseTimer
	case h.ruleMajorWarmup():
		cause = gctypes.CauseWarmup
	case h.ruleMajorProactive():
		cause = gctypes.CauseProactive
	}

	h.logDebug("major-decision")

	if cause == gctypes.CauseNoGC {
		return gctypes.GCDecision{Cause: gctypes.CauseNoGC}
	}
	return gctypes.GCDecision{
		Cause: cause,
		Workers: gctypes.WorkerConfiguration{
			Young: h.initialYoungWorkers(),
			Old:   h.initialOldWorkers(),
		},
	}
}

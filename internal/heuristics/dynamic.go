package heuristics

import (
	"math"

	"github.com/ibs-source/zgc/director/internal/gclog"
	"github.com/ibs-source/zgc/director/internal/gctypes"
	pkgmath "github.com/ibs-source/zgc/director/pkg/mathx"
)

// dynamicBudgets holds the intermediate timing budgets the dynamic
// allocation-rate model computes, split out so the friction damper can
// reuse them when simulating the next cycle.
type dynamicBudgets struct {
	free           float64
	sdPercent      float64
	allocRate      float64
	timeUntilOOM   float64
	serialBudget   float64
	parallelBudget float64
}

// youngDynamicBudgets computes the shared inputs to the dynamic
// allocation-rate model: free heap, the allocation-rate estimate, and the
// absolute-value "time remaining in the budget" terms for the serial and
// parallelizable phases.
func (h *RuleBasedHeuristics) youngDynamicBudgets(serialGCTimePassed, parallelGCTimePassed float64) dynamicBudgets {
	alloc := h.Alloc.Stats()

	free := h.freeAfterHeadroom()
	sd := pkgmath.GuardNonNeg(alloc.Sd)
	avg := pkgmath.GuardNonNeg(alloc.Avg)
	predict := pkgmath.GuardNonNeg(alloc.Predict)

	sdPercent := sd / (avg + 1.0)
	allocRate := math.Max(predict, avg)*h.Tunables.ZAllocationSpikeTolerance + sd*oneIn1000 + 1.0
	timeUntilOOM := (free / allocRate) / (1.0 + sdPercent)

	serial := h.Young.Stats.SerialTime()
	parallel := h.Young.Stats.ParallelizableTime()
	serialBudget := math.Abs(serial.Davg + oneIn1000*serial.Dsd - serialGCTimePassed)
	parallelBudget := math.Abs(parallel.Davg + oneIn1000*parallel.Dsd - parallelGCTimePassed)

	return dynamicBudgets{
		free:           free,
		sdPercent:      sdPercent,
		allocRate:      allocRate,
		timeUntilOOM:   timeUntilOOM,
		serialBudget:   serialBudget,
		parallelBudget: parallelBudget,
	}
}

// estimatedGCWorkers is parallel_budget / max(time_until_deadline - serial_budget, 0.001).
func estimatedGCWorkers(serialBudget, parallelBudget, timeUntilDeadline float64) float64 {
	denom := pkgmath.Max(timeUntilDeadline-serialBudget, 0.001)
	return parallelBudget / denom
}

// discreteYoungGCWorkers discretizes a continuous worker estimate to
// [1, ConcGCThreads - (majorBusy?1:0)].
func (h *RuleBasedHeuristics) discreteYoungGCWorkers(gcWorkers float64, majorBusy bool) uint {
	maxWorkers := h.Tunables.ConcGCThreads
	if majorBusy && maxWorkers > 0 {
		maxWorkers--
	}
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	discrete := uint(math.Ceil(gcWorkers))
	return pkgmath.ClampUint(discrete, 1, maxWorkers)
}

// selectYoungGCWorkers picks the young worker count: all ConcGCThreads until
// the old generation is warm; otherwise estimate, discretize, and apply the
// friction damper so the count only decreases when the lower count remains
// safe in the simulated next cycle.
func (h *RuleBasedHeuristics) selectYoungGCWorkers(b dynamicBudgets, timeSinceLastYoung float64) uint {
	if !h.Old.Stats.IsWarm() {
		return h.Tunables.ConcGCThreads
	}

	majorBusy := h.Driver.Major.IsBusy()
	gcWorkers := estimatedGCWorkers(b.serialBudget, b.parallelBudget, b.timeUntilOOM)
	actual := h.discreteYoungGCWorkers(gcWorkers, majorBusy)

	lastActive := h.Young.Stats.LastActiveWorkers()
	if actual >= lastActive || lastActive == 0 {
		return actual
	}

	return h.frictionDamper(b, actual, lastActive, timeSinceLastYoung)
}

// frictionDamper simulates the next cycle at the lower worker count and
// refuses to decrease below what remains safe, returning a value in
// [actual, lastActive]. The +0.5 raises the bar for lowering the count.
func (h *RuleBasedHeuristics) frictionDamper(b dynamicBudgets, actual, lastActive uint, timeSinceLastYoung float64) uint {
	gcDurationDelta := b.parallelBudget/float64(actual) - b.parallelBudget/float64(lastActive)
	additionalTimeForAllocations := timeSinceLastYoung - gcDurationDelta
	nextTimeUntilOOM := b.timeUntilOOM + additionalTimeForAllocations

	nextAvoidOOMGCWorkers := estimatedGCWorkers(b.serialBudget, b.parallelBudget, nextTimeUntilOOM)
	next := uint(math.Ceil(nextAvoidOOMGCWorkers + 0.5))

	return pkgmath.ClampUint(next, actual, lastActive)
}

// ruleMinorAllocationRateDynamic evaluates the dynamic allocation-rate model
// at the given mid-cycle time-passed offsets (both zero for a pre-cycle
// call). Even when no GC is warranted the returned decision carries the
// computed young worker count for the worker-adjust path.
func (h *RuleBasedHeuristics) ruleMinorAllocationRateDynamic(serialGCTimePassed, parallelGCTimePassed float64) gctypes.GCDecision {
	if !h.Old.Stats.IsTimeTrustable() {
		// Rule disabled
		return gctypes.GCDecision{
			Cause:   gctypes.CauseNoGC,
			Workers: gctypes.WorkerConfiguration{Young: h.Tunables.ConcGCThreads},
		}
	}

	b := h.youngDynamicBudgets(serialGCTimePassed, parallelGCTimePassed)
	timeSinceLastYoung := h.Young.Stats.TimeSinceLast().Seconds()

	workers := h.selectYoungGCWorkers(b, timeSinceLastYoung)
	majorBusy := h.Driver.Major.IsBusy()
	actualGCWorkers := h.discreteYoungGCWorkers(float64(workers), majorBusy)
	actualGCDuration := b.serialBudget + b.parallelBudget/float64(actualGCWorkers)
	timeUntilGC := b.timeUntilOOM - actualGCDuration

	h.logDebug("minor-allocation-rate-dynamic",
		gclog.Float64("free", b.free),
		gclog.Float64("time_until_oom", b.timeUntilOOM),
		gclog.Float64("time_until_gc", timeUntilGC),
		gclog.Uint("workers", actualGCWorkers),
	)

	decision := gctypes.GCDecision{Cause: gctypes.CauseNoGC, Workers: gctypes.WorkerConfiguration{Young: actualGCWorkers}}
	// Bail out while we are not close to needing the GC yet, where close is
	// 5% of the time left until OOM. Without this the model keeps adding
	// threads instead of triggering until the thread budget is exhausted.
	if !pkgmath.Finite(timeUntilGC) || timeUntilGC > b.timeUntilOOM*0.05 {
		return decision
	}
	decision.Cause = gctypes.CauseAllocationRate
	return decision
}

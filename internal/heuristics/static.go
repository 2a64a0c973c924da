package heuristics

// ruleMinorAllocationRateStatic implements the static allocation-rate model,
// used when UseDynamicNumberOfGCThreads is false. Disabled (returns false)
// if the old generation's cycle time is not trustable.
func (h *RuleBasedHeuristics) ruleMinorAllocationRateStatic() bool {
	if !h.Old.Stats.IsTimeTrustable() {
		// Rule disabled
		return false
	}

	alloc := h.Alloc.Stats()
	free := h.freeAfterHeadroom()

	// Estimated max allocation rate: the moving average scaled by the spike
	// tolerance plus ~3.3 sigma for variance. The +1.0 B/s avoids division
	// by zero on an idle mutator.
	maxAllocRate := alloc.Avg*h.Tunables.ZAllocationSpikeTolerance + alloc.Sd*oneIn1000
	timeUntilOOM := free / (maxAllocRate + 1.0)

	serial := h.Young.Stats.SerialTime()
	parallel := h.Young.Stats.ParallelizableTime()
	gcDuration := (serial.Davg + oneIn1000*serial.Dsd) +
		(parallel.Davg+oneIn1000*parallel.Dsd)/float64(h.Tunables.ConcGCThreads)

	h.logDebug("minor-allocation-rate-static")
	return timeUntilOOM-gcDuration <= 0
}

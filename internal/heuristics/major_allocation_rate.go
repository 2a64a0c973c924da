package heuristics

// calculateExtraYoungGCTime estimates the extra young-GC time per reclaim
// batch incurred by not collecting the old generation: young cycles reclaim
// less per unit of work while old garbage sits uncollected. Returns 0 when
// the old generation's timing is not trustable.
//
// The serial term adds the parallelizable phase's dsd rather than the serial
// phase's own dsd. Possibly a typo, but changing it would silently alter the
// major allocation-rate rule's sensitivity, so it stays.
func (h *RuleBasedHeuristics) calculateExtraYoungGCTime() float64 {
	if !h.Old.Stats.IsTimeTrustable() {
		return 0.0
	}

	oldGarbage := float64(h.Heap.UsedOld()) - float64(h.Old.Stats.LiveAtMarkEnd())
	if oldGarbage < 0 {
		oldGarbage = 0
	}

	serial := h.Young.Stats.SerialTime()
	parallel := h.Young.Stats.ParallelizableTime()

	youngSerialGCTime := serial.Davg + parallel.Dsd*oneIn1000
	youngParallelizableGCTime := parallel.Davg + parallel.Dsd*oneIn1000
	youngGCTime := youngSerialGCTime + youngParallelizableGCTime

	reclaimedPerYoung := float64(h.Young.Stats.ReclaimedAvg())
	if reclaimedPerYoung <= 0 {
		return 0
	}

	extraPerCycle := (youngGCTime / reclaimedPerYoung) - (youngGCTime / (reclaimedPerYoung + oldGarbage))
	return extraPerCycle * (reclaimedPerYoung + oldGarbage)
}

// ruleMajorAllocationRate holds when the amortized extra young-GC cost over
// the lookahead horizon (young cycles since the last old cycle) exceeds the
// cost of running an old cycle now. Disabled if the old generation's timing
// is not trustable.
func (h *RuleBasedHeuristics) ruleMajorAllocationRate() bool {
	if !h.Old.Stats.IsTimeTrustable() {
		// Rule disabled
		return false
	}

	oldSerial := h.Old.Stats.SerialTime()
	oldParallel := h.Old.Stats.ParallelizableTime()
	oldGCTime := (oldSerial.Davg + oneIn1000*oldSerial.Dsd) + (oldParallel.Davg + oneIn1000*oldParallel.Dsd)

	// Signed: an inconsistent stat pair yields a small negative lookahead
	// (rule stays quiet) rather than wrapping to a huge unsigned count.
	lookahead := int64(h.Young.Stats.TotalCollections()) - int64(h.Old.Stats.TotalCollectionsAtLastOld())

	extraYoungGCTime := h.calculateExtraYoungGCTime()

	h.logDebug("major-allocation-rate")
	return extraYoungGCTime*float64(lookahead) > oldGCTime
}

package heuristics

import pkgmath "github.com/ibs-source/zgc/director/pkg/mathx"

// initialOldWorkers is half of ConcGCThreads when dynamic sizing is off,
// otherwise whatever calculateOldWorkers amortizes out.
func (h *RuleBasedHeuristics) initialOldWorkers() uint {
	if !h.Tunables.UseDynamicNumberOfGCThreads {
		return pkgmath.MaxUint(h.Tunables.ConcGCThreads/2, 1)
	}
	return h.calculateOldWorkers()
}

// initialYoungWorkers is the remainder of ConcGCThreads when dynamic sizing
// is off. With dynamic sizing on, it takes the young worker count the
// dynamic model computed at t=0; an in-flight major bounds that count to
// ConcGCThreads-1 through the model's discretization, except while the old
// generation's timing is not trustable, when the model reports the full
// ConcGCThreads with no reduction for a busy major.
func (h *RuleBasedHeuristics) initialYoungWorkers() uint {
	if !h.Tunables.UseDynamicNumberOfGCThreads {
		old := h.initialOldWorkers()
		return pkgmath.MaxUint(h.Tunables.ConcGCThreads-old, 1)
	}

	decision := h.ruleMinorAllocationRateDynamic(0.0, 0.0)
	return pkgmath.MaxUint(decision.Workers.Young, 1)
}

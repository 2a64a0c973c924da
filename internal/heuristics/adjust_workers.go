package heuristics

import (
	"github.com/ibs-source/zgc/director/internal/gctypes"
	pkgmath "github.com/ibs-source/zgc/director/pkg/mathx"
)

// wantedYoungNworkers implements wanted_young_nworkers: the young
// generation's desired worker count from the dynamic model evaluated at the
// mid-cycle timing already spent, zero if the model reports no urgency.
func (h *RuleBasedHeuristics) wantedYoungNworkers() gctypes.WorkerResizeInfo {
	stats := h.Young.Pool.ResizeStats(h.Young.Stats)
	if !stats.IsActive {
		return gctypes.WorkerResizeInfo{IsActive: false, CurrentNWorkers: stats.NWorkersCurrent}
	}

	decision := h.ruleMinorAllocationRateDynamic(stats.SerialGCTimePassed, stats.ParallelGCTimePassed)
	desired := uint(0)
	if decision.ShouldGC() {
		desired = decision.Workers.Young
	}
	return gctypes.WorkerResizeInfo{
		IsActive:        true,
		CurrentNWorkers: stats.NWorkersCurrent,
		DesiredNWorkers: desired,
	}
}

// wantedOldNworkers implements wanted_old_nworkers: the old generation's
// desired worker count from calculate_old_workers when the major
// allocation-rate rule holds, zero otherwise.
func (h *RuleBasedHeuristics) wantedOldNworkers() gctypes.WorkerResizeInfo {
	stats := h.Old.Pool.ResizeStats(h.Old.Stats)
	if !stats.IsActive {
		return gctypes.WorkerResizeInfo{IsActive: false, CurrentNWorkers: stats.NWorkersCurrent}
	}

	desired := uint(0)
	if h.ruleMajorAllocationRate() {
		desired = h.calculateOldWorkers()
	}
	return gctypes.WorkerResizeInfo{
		IsActive:        true,
		CurrentNWorkers: stats.NWorkersCurrent,
		DesiredNWorkers: desired,
	}
}

// adjustWorkers implements adjust_workers: given both generations' resize
// candidacy, decides which (if any) to resize and to what count.
func adjustWorkers(young, old gctypes.WorkerResizeInfo, concGCThreads uint) gctypes.WorkerDecision {
	if young.IsActive && old.IsActive {
		young.DesiredNWorkers = pkgmath.MinUint(young.DesiredNWorkers, pkgmath.MaxUint(concGCThreads-1, 1))
		oldCap := pkgmath.MaxUint(concGCThreads-pkgmath.MaxUint(young.CurrentNWorkers, young.DesiredNWorkers), 1)
		old.DesiredNWorkers = pkgmath.MinUint(old.DesiredNWorkers, oldCap)
	}

	maxTotal := pkgmath.MaxUint(concGCThreads, 2)
	needMoreYoung := young.DesiredNWorkers > young.CurrentNWorkers
	needMoreOld := old.DesiredNWorkers > old.CurrentNWorkers
	tooManyTotal := pkgmath.MaxUint(young.CurrentNWorkers, young.DesiredNWorkers)+old.CurrentNWorkers > maxTotal

	decision := gctypes.WorkerDecision{}

	if (old.DesiredNWorkers > 0 && needMoreOld) || tooManyTotal {
		decision.ShouldAdjustOld = true
		decision.Workers.Old = pkgmath.MaxUint(old.DesiredNWorkers, 1)
	}
	if young.DesiredNWorkers > 0 && needMoreYoung {
		decision.ShouldAdjustYoung = true
		decision.Workers.Young = young.DesiredNWorkers
	}

	return decision
}

// MakeAdjustWorkersDecision implements make_adjust_workers_decision.
func (h *RuleBasedHeuristics) MakeAdjustWorkersDecision() gctypes.WorkerDecision {
	if !h.Tunables.UseDynamicNumberOfGCThreads {
		return gctypes.WorkerDecision{}
	}

	young := h.wantedYoungNworkers()
	old := h.wantedOldNworkers()

	decision := adjustWorkers(young, old, h.Tunables.ConcGCThreads)
	h.logDebug("adjust-workers")
	return decision
}

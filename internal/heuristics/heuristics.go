// Package heuristics implements the rule-based GC-start and worker-adjust
// decision functions. Every exported decision method is a pure function of
// the facades it was constructed with: no hidden state beyond what those
// facades expose, so identical facade snapshots always produce identical
// decisions.
package heuristics

import (
	"github.com/ibs-source/zgc/director/internal/driver"
	"github.com/ibs-source/zgc/director/internal/gcconfig"
	"github.com/ibs-source/zgc/director/internal/gclog"
	"github.com/ibs-source/zgc/director/internal/gcruntime"
	"github.com/ibs-source/zgc/director/internal/gctypes"
	"github.com/ibs-source/zgc/director/internal/workerpool"
	"github.com/ibs-source/zgc/director/internal/zheap"
	"github.com/ibs-source/zgc/director/internal/zstat"
)

// oneIn1000 is the one-sided 99.9% confidence margin ("3.29 sigma") added to
// every predictive formula in this package.
const oneIn1000 = 3.290527

// Heuristics is the capability set the director drives each tick. An
// interface so an alternative policy is a drop-in; today RuleBased is the
// only implementation ("rules", per Name()).
type Heuristics interface {
	Name() string
	InitialConfiguration() gctypes.InitialConfiguration
	MakeMajorGCDecision() gctypes.GCDecision
	MakeMinorGCDecision() gctypes.GCDecision
	MakeAdjustWorkersDecision() gctypes.WorkerDecision
}

// Generation bundles everything the rules need about one generation: its
// cycle statistics facade and its worker pool facade.
type Generation struct {
	Stats zstat.CycleFacade
	Pool  workerpool.Facade
}

// RuleBasedHeuristics is the "rules" heuristics policy: moving averages with
// 3.29-sigma safety margins feeding a fixed rule chain per decision.
type RuleBasedHeuristics struct {
	Tunables gcconfig.Tunables
	Heap     zheap.Facade
	Alloc    zstat.MutatorAllocRateFacade
	Young    Generation
	Old      Generation
	Driver   driver.Facade
	Log      gclog.Logger
}

// Name identifies this heuristics policy.
func (h *RuleBasedHeuristics) Name() string { return "rules" }

func (h *RuleBasedHeuristics) ncpus() uint {
	return gcruntime.ActiveProcessorCount()
}

// freeAfterHeadroom is the free memory available to the mutator once the
// relocation headroom is reserved, clamped so neither subtraction can
// underflow when the heap is already past its soft max.
func (h *RuleBasedHeuristics) freeAfterHeadroom() float64 {
	softMax := h.Heap.SoftMaxCapacity()
	used := h.Heap.Used()
	if used > softMax {
		used = softMax
	}
	freeIncludingHeadroom := softMax - used
	headroom := h.Tunables.RelocationHeadroom()
	if headroom > freeIncludingHeadroom {
		headroom = freeIncludingHeadroom
	}
	return float64(freeIncludingHeadroom - headroom)
}

func (h *RuleBasedHeuristics) logDebug(rule string, fields ...gclog.Field) {
	if h.Log == nil {
		return
	}
	h.Log.Debug("rule evaluated", append([]gclog.Field{gclog.String("rule", rule)}, fields...)...)
}

package heuristics

import (
	"math"

	"github.com/ibs-source/zgc/director/internal/gctypes"
	pkgmath "github.com/ibs-source/zgc/director/pkg/mathx"
	"github.com/ibs-source/zgc/director/pkg/pow2"
)

// significantHeapOverhead is 3.125% of MaxHeapSize, the threshold used for
// both medium-page sizing and the tenuring threshold search.
func (h *RuleBasedHeuristics) significantHeapOverhead() float64 {
	return float64(h.Tunables.MaxHeapSize) * 0.03125
}

// nworkersBasedOnNCPUs is max(ceil(ncpus * cpuShareInPercent/100), 1).
func nworkersBasedOnNCPUs(ncpus uint, cpuShareInPercent float64) uint {
	n := uint(math.Ceil(float64(ncpus) * cpuShareInPercent / 100.0))
	return pkgmath.MaxUint(n, 1)
}

// reservedHeapSharePercent is the fixed heap-size cap (2%) every worker
// count estimate is bounded by, independent of the CPU share passed to
// nworkers. Caps workers so relocation never claims more than 2% of the max
// heap, which matters for small heaps on large machines.
const reservedHeapSharePercent = 2.0

// nworkersBasedOnHeapShare is max(floor(MaxHeapSize*heapSharePercent/100 /
// ZPageSizeSmall), 1).
func (h *RuleBasedHeuristics) nworkersBasedOnHeapShare(heapSharePercent float64) uint {
	n := uint(math.Floor(float64(h.Tunables.MaxHeapSize) * heapSharePercent / 100.0 / float64(h.Tunables.ZPageSizeSmall)))
	return pkgmath.MaxUint(n, 1)
}

// nworkers is the minimum of the CPU-count-based estimate at
// cpuShareInPercent and the heap-size-based estimate at the fixed
// reservedHeapSharePercent.
func (h *RuleBasedHeuristics) nworkers(cpuShareInPercent float64) uint {
	ncpu := nworkersBasedOnNCPUs(h.ncpus(), cpuShareInPercent)
	heap := h.nworkersBasedOnHeapShare(reservedHeapSharePercent)
	return pkgmath.MinUint(ncpu, heap)
}

// nparallelWorkers is nworkers at a 60% share.
func (h *RuleBasedHeuristics) nparallelWorkers() uint {
	return h.nworkers(60.0)
}

// nconcurrentWorkers is nworkers at a 25% share.
func (h *RuleBasedHeuristics) nconcurrentWorkers() uint {
	return h.nworkers(25.0)
}

// usePerCPUSharedSmallPages is true iff significant_heap_overhead/ncpus
// is at least a small page.
func (h *RuleBasedHeuristics) usePerCPUSharedSmallPages() bool {
	share := h.significantHeapOverhead() / float64(h.ncpus())
	return share >= float64(h.Tunables.ZPageSizeSmall)
}

// calculatePageConfiguration sizes medium pages so one occupies at most
// 3.125% of the max heap, clamped to [ZGranuleSize, 16*ZGranuleSize] and
// rounded down to a power of two. Medium pages are enabled only when that
// size exceeds a small page.
func (h *RuleBasedHeuristics) calculatePageConfiguration() gctypes.PageConfiguration {
	granule := h.Tunables.ZGranuleSize
	lo := granule
	hi := 16 * granule
	raw := uint64(h.significantHeapOverhead())
	clamped := raw
	if clamped < lo {
		clamped = lo
	}
	if clamped > hi {
		clamped = hi
	}
	mediumPageSize := pow2.RoundDownPow2(clamped)

	shift, _ := pow2.Log2Exact(mediumPageSize)

	cfg := gctypes.PageConfiguration{
		UsePerCPUSharedSmallPages: h.usePerCPUSharedSmallPages(),
		UseMediumPages:            mediumPageSize > h.Tunables.ZPageSizeSmall,
		MediumPageSize:            mediumPageSize,
		MediumPageSizeShift:       shift,
	}
	if cfg.UseMediumPages {
		cfg.MediumObjectSizeLimit = mediumPageSize / 8
		alignShift := uint(0)
		if shift > 13 {
			alignShift = shift - 13
		}
		cfg.MediumObjectAlignmentShift = alignShift
		cfg.MediumObjectAlignment = uint64(1) << alignShift
	}
	return cfg
}

// calculateTenuringThreshold implements calculate_tenuring_threshold:
// smallest t in [0, MaxTenuringThreshold] where the cumulative per-generation
// cost of retaining t ages reaches the significant heap overhead.
func (h *RuleBasedHeuristics) calculateTenuringThreshold() uint {
	overhead := h.significantHeapOverhead()
	for t := uint(0); t <= h.Tunables.MaxTenuringThreshold; t++ {
		cost := float64(h.Tunables.ZPageSizeMedium)*float64(t) +
			float64(h.Tunables.ZPageSizeSmall)*float64(h.Tunables.ConcGCThreads)*float64(t)
		if cost >= overhead {
			return t
		}
	}
	return h.Tunables.MaxTenuringThreshold
}

// InitialConfiguration implements initial_configuration: the one-time
// startup sizing computed before the director loop starts.
func (h *RuleBasedHeuristics) InitialConfiguration() gctypes.InitialConfiguration {
	return gctypes.InitialConfiguration{
		PageConfiguration:    h.calculatePageConfiguration(),
		NumParallelWorkers:   h.nparallelWorkers(),
		NumConcurrentWorkers: h.nconcurrentWorkers(),
		TenuringThreshold:    h.calculateTenuringThreshold(),
	}
}

package gcconfig

import "flag"

// RegisterFlags registers CLI flags bound directly to t's fields onto fs.
// The caller owns parsing (directly, or bridged into cobra via
// AddGoFlagSet), so t must already hold its defaults/environment-resolved
// values when flags are registered.
func RegisterFlags(fs *flag.FlagSet, t *Tunables) {
	fs.UintVar(&t.ConcGCThreads, "conc-gc-threads", t.ConcGCThreads, "concurrent/parallel GC worker budget")
	fs.DurationVar(&t.ZCollectionIntervalMinor, "collection-interval-minor", t.ZCollectionIntervalMinor, "fixed minor collection interval (0 disables)")
	fs.DurationVar(&t.ZCollectionIntervalMajor, "collection-interval-major", t.ZCollectionIntervalMajor, "fixed major collection interval (0 disables)")
	fs.BoolVar(&t.ZCollectionIntervalOnly, "collection-interval-only", t.ZCollectionIntervalOnly, "disable all rules except the fixed timers")
	fs.Float64Var(&t.ZAllocationSpikeTolerance, "allocation-spike-tolerance", t.ZAllocationSpikeTolerance, "multiplier applied to predicted allocation rate")
	fs.BoolVar(&t.ZProactive, "proactive", t.ZProactive, "enable the proactive major rule")
	fs.BoolVar(&t.UseDynamicNumberOfGCThreads, "dynamic-gc-threads", t.UseDynamicNumberOfGCThreads, "enable dynamic worker-count adjustment")
	fs.Uint64Var(&t.MaxHeapSize, "max-heap-size", t.MaxHeapSize, "soft max heap size in bytes")
	fs.UintVar(&t.MaxTenuringThreshold, "max-tenuring-threshold", t.MaxTenuringThreshold, "maximum tenuring threshold")
	fs.Uint64Var(&t.ZPageSizeSmall, "page-size-small", t.ZPageSizeSmall, "small page size in bytes")
	fs.Uint64Var(&t.ZPageSizeMedium, "page-size-medium", t.ZPageSizeMedium, "medium page size in bytes")
	fs.Uint64Var(&t.ZGranuleSize, "granule-size", t.ZGranuleSize, "heap granule size in bytes")
	fs.UintVar(&t.DecisionHz, "decision-hz", t.DecisionHz, "director tick frequency in Hz")
}

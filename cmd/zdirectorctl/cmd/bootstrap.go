package cmd

import (
	"flag"
	"fmt"

	"github.com/ibs-source/zgc/director/internal/director"
	"github.com/ibs-source/zgc/director/internal/driver"
	"github.com/ibs-source/zgc/director/internal/gcconfig"
	"github.com/ibs-source/zgc/director/internal/gclog"
	"github.com/ibs-source/zgc/director/internal/gcmetrics"
	"github.com/ibs-source/zgc/director/internal/gcreplay"
	"github.com/ibs-source/zgc/director/internal/heuristics"
	"github.com/ibs-source/zgc/director/internal/workerpool"
	"github.com/ibs-source/zgc/director/internal/zheap"
	"github.com/ibs-source/zgc/director/internal/zstat"
	"github.com/spf13/cobra"
)

var (
	logLevel  string
	logFormat string
)

// addLoggingFlags registers the ambient logging flags shared by every
// subcommand that starts a director.
func addLoggingFlags(c *cobra.Command) {
	c.Flags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	c.Flags().StringVar(&logFormat, "log-format", "json", "log format for the logrus backend (json or text); ignored when Z_LOG_BACKEND=zerolog")
}

// newTunables runs the defaults -> environment stages of the loader
// pipeline. Callers assign the result to a package-level var so it is ready
// before bindTunableFlags registers CLI flags against it — flags must see
// the environment-resolved value as their default, not the zero value, so
// that an override of one flag doesn't blank out every other field.
func newTunables() gcconfig.Tunables {
	return gcconfig.ApplyEnvironment(gcconfig.Defaults())
}

// bindTunableFlags registers gcconfig's flags onto a cobra command's flag
// set, bridging the stdlib flag.FlagSet gcconfig.RegisterFlags expects into
// cobra's pflag.FlagSet via AddGoFlagSet. t must already hold its defaults
// -> environment resolved value (see newTunables).
func bindTunableFlags(c *cobra.Command, t *gcconfig.Tunables) {
	fs := flag.NewFlagSet("gcconfig", flag.ContinueOnError)
	gcconfig.RegisterFlags(fs, t)
	c.Flags().AddGoFlagSet(fs)
}

// validateTunables is the pipeline's final stage, run once argv has been
// parsed into t by cobra.
func validateTunables(t gcconfig.Tunables) error {
	if err := gcconfig.Validate(t); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// buildDirector wires the heuristics core, worker pools, and driver
// submitters into a runnable Director, using the given generation facades.
func buildDirector(
	t gcconfig.Tunables,
	log gclog.Logger,
	heap zheap.Facade,
	alloc zstat.MutatorAllocRateFacade,
	youngStats, oldStats zstat.CycleFacade,
	majorDriver, minorDriver driver.Submitter,
) (*director.Director, *heuristics.RuleBasedHeuristics, *workerpool.Pool, *workerpool.Pool) {
	youngPool := workerpool.New("young", 1, t.ConcGCThreads*4, nil, log)
	oldPool := workerpool.New("old", 1, t.ConcGCThreads, nil, log)

	h := &heuristics.RuleBasedHeuristics{
		Tunables: t,
		Heap:     heap,
		Alloc:    alloc,
		Young:    heuristics.Generation{Stats: youngStats, Pool: youngPool},
		Old:      heuristics.Generation{Stats: oldStats, Pool: oldPool},
		Driver:   driver.Facade{Major: majorDriver, Minor: minorDriver},
		Log:      log,
	}

	d := director.New(h, youngPool, oldPool, driver.Facade{Major: majorDriver, Minor: minorDriver}, t.TickInterval(), log)
	return d, h, youngPool, oldPool
}

// logInitialConfiguration logs the one-time startup sizing decision.
func logInitialConfiguration(log gclog.Logger, h *heuristics.RuleBasedHeuristics) {
	cfg := h.InitialConfiguration()
	log.Info("initial configuration computed",
		gclog.Uint("num_parallel_workers", cfg.NumParallelWorkers),
		gclog.Uint("num_concurrent_workers", cfg.NumConcurrentWorkers),
		gclog.Uint("tenuring_threshold", cfg.TenuringThreshold),
		gclog.Bool("use_medium_pages", cfg.PageConfiguration.UseMediumPages),
	)
}

// gclogFromFlags constructs the process-wide logger from the --log-level /
// --log-format flags, selecting the backend via Z_LOG_BACKEND.
func gclogFromFlags() gclog.Logger {
	gclog.InitGlobal(logLevel, logFormat)
	return gclog.Global()
}

// snapshotFields renders a gcmetrics.Snapshot as logging fields.
func snapshotFields(snap gcmetrics.Snapshot) []gclog.Field {
	fields := []gclog.Field{
		gclog.Any("ticks_run", snap.TicksRun),
		gclog.Any("resizes_issued", snap.ResizesIssued),
	}
	for cause, count := range snap.DecisionsByCause {
		fields = append(fields, gclog.Any("decisions_"+string(cause), count))
	}
	return fields
}

// recordTick returns a director.OnTick callback that appends every tick's
// outcome to rec.
func recordTick(rec *gcreplay.Recorder) func(director.TickResult) {
	return func(r director.TickResult) {
		_ = rec.Record(gcreplay.Entry{
			CorrelationID: r.CorrelationID,
			Cause:         r.Cause,
			Adjusted:      r.Adjusted,
			YoungCount:    r.YoungCount,
			OldCount:      r.OldCount,
		})
	}
}

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ibs-source/zgc/director/internal/gcreplay"
	"github.com/ibs-source/zgc/director/internal/simdriver"
	"github.com/ibs-source/zgc/director/internal/zheap"
	"github.com/ibs-source/zgc/director/internal/zstat"
	"github.com/spf13/cobra"
)

var (
	runRecordPath string
	runRecordCap  uint32
)

var pendingTunables = newTunables()

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the director loop against a synthetic heap embedding",
	Long: `run starts the collection-scheduling director with the built-in
synthetic heap and statistics trackers, as a standalone process that can be
pointed at by external load generators. For a fully scripted workload, use
"simulate" instead.`,
	RunE: runRun,
}

func init() {
	addLoggingFlags(runCmd)
	bindTunableFlags(runCmd, &pendingTunables)
	runCmd.Flags().StringVar(&runRecordPath, "record", "", "path to a bbolt database recording every tick's decision")
	runCmd.Flags().Uint32Var(&runRecordCap, "record-buffer", 256, "in-memory recent-tick ring buffer capacity (power of two)")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	if err := validateTunables(pendingTunables); err != nil {
		return err
	}
	log := gclogFromFlags()

	heap := zheap.NewTracker(pendingTunables.MaxHeapSize)
	alloc := zstat.NewTracker(0.3)
	youngStats := zstat.NewTracker(0.3)
	oldStats := zstat.NewTracker(0.3)

	major := simdriver.New(pendingTunables.TickInterval()*5, oldStats, heap, true)
	minor := simdriver.New(pendingTunables.TickInterval()*2, youngStats, heap, false)

	d, h, youngPool, oldPool := buildDirector(pendingTunables, log, heap, alloc, youngStats, oldStats, major, minor)
	logInitialConfiguration(log, h)

	if runRecordPath != "" {
		rec := gcreplay.New(runRecordCap)
		if err := rec.Open(runRecordPath); err != nil {
			return err
		}
		defer func() { _ = rec.Close() }()
		d.OnTick = recordTick(rec)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := h.InitialConfiguration()
	youngPool.Start(ctx, cfg.NumParallelWorkers)
	oldPool.Start(ctx, cfg.NumConcurrentWorkers)
	d.Start(ctx)

	<-ctx.Done()
	log.Info("shutting down")
	d.StopService()
	youngPool.Stop()
	oldPool.Stop()

	log.Info("final metrics", snapshotFields(d.Snapshot())...)
	return nil
}

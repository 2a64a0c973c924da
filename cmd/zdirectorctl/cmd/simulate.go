package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/ibs-source/zgc/director/internal/gcreplay"
	"github.com/ibs-source/zgc/director/internal/simdriver"
	"github.com/ibs-source/zgc/director/internal/zheap"
	"github.com/ibs-source/zgc/director/internal/zstat"
	"github.com/spf13/cobra"
)

var (
	simDuration      time.Duration
	simAllocRateMBps float64
	simAllocJitter   float64
	simRecordPath    string
	simRecordCap     uint32
	simReplayPath    string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the director against a synthetic mutator workload",
	Long: `simulate drives the director for a fixed wall-clock duration against a
synthetic mutator that allocates at a jittered rate, and can optionally
record every tick's decision to a bbolt database for later replay with
"simulate --replay".`,
	RunE: runSimulate,
}

func init() {
	addLoggingFlags(simulateCmd)
	bindTunableFlags(simulateCmd, &simTunables)
	simulateCmd.Flags().DurationVar(&simDuration, "duration", 30*time.Second, "simulated wall-clock duration")
	simulateCmd.Flags().Float64Var(&simAllocRateMBps, "alloc-rate-mb", 64.0, "mean mutator allocation rate in MiB/s")
	simulateCmd.Flags().Float64Var(&simAllocJitter, "alloc-jitter", 0.25, "fractional jitter applied to the allocation rate each sample")
	simulateCmd.Flags().StringVar(&simRecordPath, "record", "", "path to a bbolt database recording every tick's decision")
	simulateCmd.Flags().Uint32Var(&simRecordCap, "record-buffer", 256, "in-memory recent-tick ring buffer capacity (power of two)")
	simulateCmd.Flags().StringVar(&simReplayPath, "replay", "", "path to a previously recorded bbolt database; replays it instead of simulating")
	rootCmd.AddCommand(simulateCmd)
}

var simTunables = newTunables()

func runSimulate(cmd *cobra.Command, args []string) error {
	if simReplayPath != "" {
		return runReplay(simReplayPath)
	}

	if err := validateTunables(simTunables); err != nil {
		return err
	}
	log := gclogFromFlags()

	heap := zheap.NewTracker(simTunables.MaxHeapSize)
	alloc := zstat.NewTracker(0.3)
	youngStats := zstat.NewTracker(0.3)
	oldStats := zstat.NewTracker(0.3)

	major := simdriver.New(simTunables.TickInterval()*5, oldStats, heap, true)
	minor := simdriver.New(simTunables.TickInterval()*2, youngStats, heap, false)

	d, h, youngPool, oldPool := buildDirector(simTunables, log, heap, alloc, youngStats, oldStats, major, minor)
	logInitialConfiguration(log, h)

	var rec *gcreplay.Recorder
	if simRecordPath != "" {
		rec = gcreplay.New(simRecordCap)
		if err := rec.Open(simRecordPath); err != nil {
			return err
		}
		defer func() { _ = rec.Close() }()
		d.OnTick = recordTick(rec)
	}

	ctx, cancel := context.WithTimeout(context.Background(), simDuration)
	defer cancel()

	cfg := h.InitialConfiguration()
	youngPool.Start(ctx, cfg.NumParallelWorkers)
	oldPool.Start(ctx, cfg.NumConcurrentWorkers)
	d.Start(ctx)

	go runMutator(ctx, heap, alloc, simTunables.TickInterval())

	<-ctx.Done()
	d.StopService()
	youngPool.Stop()
	oldPool.Stop()

	log.Info("simulation complete", snapshotFields(d.Snapshot())...)
	fmt.Printf("simulation complete: %+v\n", d.Snapshot())
	return nil
}

// runMutator is a synthetic allocator: every tick it grows heap.Used() by a
// jittered amount derived from the configured mean allocation rate and
// reports the instantaneous rate to the allocation-rate facade.
func runMutator(ctx context.Context, heap *zheap.Tracker, alloc *zstat.Tracker, period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	meanBytesPerSecond := simAllocRateMBps * (1 << 20)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		jitter := 1.0 + (rand.Float64()*2-1)*simAllocJitter
		rate := meanBytesPerSecond * jitter
		alloc.RecordAllocSample(rate)

		grown := rate * period.Seconds()
		heap.SetUsed(heap.Used() + uint64(grown))
		heap.SetUsedOld(heap.UsedOld() + uint64(grown)/4)
	}
}

func runReplay(path string) error {
	entries, err := gcreplay.Load(path)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Printf("seq=%d cause=%s adjusted=%v young=%d old=%d\n", e.Seq, e.Cause, e.Adjusted, e.YoungCount, e.OldCount)
	}
	fmt.Printf("%d entries replayed\n", len(entries))
	return nil
}

// Package director implements the collection-scheduling director: a single
// long-running goroutine that, on a fixed tick, asks the heuristics core for
// a GC-start decision and, failing that, a worker-adjust decision, and
// dispatches either to the driver or the worker pools.
//
// A time.Ticker selected against a context.Context stands in for a raw
// monitor wait; a capacity-1 channel implements Notify as a non-blocking
// send, coalescing redundant wakeups the same way a condition variable
// absorbs an extra signal.
package director

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/ibs-source/zgc/director/internal/driver"
	"github.com/ibs-source/zgc/director/internal/gclog"
	"github.com/ibs-source/zgc/director/internal/gcmetrics"
	"github.com/ibs-source/zgc/director/internal/gctypes"
	"github.com/ibs-source/zgc/director/internal/heuristics"
	"github.com/ibs-source/zgc/director/internal/workerpool"
)

// Director is the collection-scheduling control-plane agent.
type Director struct {
	heuristics heuristics.Heuristics
	youngPool  workerpool.Facade
	oldPool    workerpool.Facade
	driver     driver.Facade
	tick       time.Duration
	log        gclog.Logger
	metrics    *gcmetrics.Recorder

	startOnce sync.Once
	stopOnce  sync.Once

	started atomic.Bool
	stopped atomic.Bool
	wake    chan struct{}

	cancel context.CancelFunc
	done   chan struct{}

	// OnTick, if set, is invoked synchronously at the end of every tick with
	// that tick's outcome — the seam gcreplay's recorder hangs off of.
	OnTick func(TickResult)
}

// TickResult describes one tick's outcome for OnTick subscribers.
// CorrelationID is the zero UUID on ticks that submitted nothing.
type TickResult struct {
	CorrelationID uuid.UUID
	Cause         gctypes.Cause
	Adjusted      bool
	YoungCount    uint
	OldCount      uint
}

// New constructs a Director. tick is the quantum (1000/decision_hz ms); the
// caller computes it from gcconfig.Tunables.TickInterval().
func New(h heuristics.Heuristics, youngPool, oldPool workerpool.Facade, d driver.Facade, tick time.Duration, log gclog.Logger) *Director {
	return &Director{
		heuristics: h,
		youngPool:  youngPool,
		oldPool:    oldPool,
		driver:     d,
		tick:       tick,
		log:        log,
		metrics:    gcmetrics.New(),
		wake:       make(chan struct{}, 1),
		done:       make(chan struct{}),
	}
}

// Start begins the director loop in a new goroutine. Safe to call once;
// subsequent calls are no-ops.
func (d *Director) Start(ctx context.Context) {
	d.startOnce.Do(func() {
		runCtx, cancel := context.WithCancel(ctx)
		d.cancel = cancel
		d.started.Store(true)
		go d.run(runCtx)
	})
}

// Notify wakes the director before its next tick. Idempotent; safe to call
// from any goroutine, before Start or after StopService, and coalesces
// redundant wakeups into one.
func (d *Director) Notify() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// StopService sets the terminal flag and wakes the director; the director
// goroutine exits after observing the flag at the next tick boundary.
// Blocks until the goroutine has exited, or returns immediately if the
// director was never started.
func (d *Director) StopService() {
	d.stopOnce.Do(func() {
		d.stopped.Store(true)
		if d.cancel != nil {
			d.cancel()
		}
		d.Notify()
	})
	if d.started.Load() {
		<-d.done
	}
}

func (d *Director) run(ctx context.Context) {
	defer close(d.done)

	ticker := time.NewTicker(d.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-d.wake:
		}

		if d.stopped.Load() || ctx.Err() != nil {
			return
		}

		d.tickOnce()
		d.metrics.RecordTick()
	}
}

// tickOnce runs exactly one tick's strictly serial major-decide ->
// minor-decide -> adjust-decide phases, returning early the moment a
// decision is acted on.
func (d *Director) tickOnce() {
	major := d.heuristics.MakeMajorGCDecision()
	if major.ShouldGC() {
		id := d.submit(major)
		d.reportTick(id, major.Cause, false, major.Workers)
		return
	}

	minor := d.heuristics.MakeMinorGCDecision()
	if minor.ShouldGC() {
		id := d.submit(minor)
		d.reportTick(id, minor.Cause, false, minor.Workers)
		return
	}

	adjust := d.heuristics.MakeAdjustWorkersDecision()
	d.applyAdjust(adjust)
	adjusted := adjust.ShouldAdjustYoung || adjust.ShouldAdjustOld
	d.reportTick(uuid.Nil, gctypes.CauseNoGC, adjusted, adjust.Workers)
}

func (d *Director) reportTick(id uuid.UUID, cause gctypes.Cause, adjusted bool, workers gctypes.WorkerConfiguration) {
	if d.OnTick == nil {
		return
	}
	d.OnTick(TickResult{CorrelationID: id, Cause: cause, Adjusted: adjusted, YoungCount: workers.Young, OldCount: workers.Old})
}

// submit builds a DriverRequest and submits it to the major driver. Both
// major- and minor-initiated decisions route to Major, which multiplexes on
// the request's Cause; a minor-only request carries zero old workers.
func (d *Director) submit(decision gctypes.GCDecision) uuid.UUID {
	req := gctypes.DriverRequest{
		CorrelationID: uuid.New(),
		Cause:         decision.Cause,
		YoungWorkers:  decision.Workers.Young,
		OldWorkers:    decision.Workers.Old,
	}
	d.metrics.RecordDecision(decision.Cause)
	if d.log != nil {
		d.log.Debug("submitting collection request",
			gclog.String("correlation_id", req.CorrelationID.String()),
			gclog.String("cause", string(decision.Cause)),
			gclog.Uint("young_workers", decision.Workers.Young),
			gclog.Uint("old_workers", decision.Workers.Old),
		)
	}
	d.driver.Major.Collect(req)
	return req.CorrelationID
}

func (d *Director) applyAdjust(decision gctypes.WorkerDecision) {
	if decision.ShouldAdjustOld {
		d.oldPool.RequestResizeWorkers(decision.Workers.Old)
		d.metrics.RecordResize()
	}
	if decision.ShouldAdjustYoung {
		d.youngPool.RequestResizeWorkers(decision.Workers.Young)
		d.metrics.RecordResize()
	}
}

// Snapshot returns the director's current operational metrics.
func (d *Director) Snapshot() gcmetrics.Snapshot {
	return d.metrics.Snapshot()
}

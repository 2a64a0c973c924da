package workerpool

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/ibs-source/zgc/director/internal/gclog"
	"github.com/ibs-source/zgc/director/internal/zstat"
)

// Work is the unit of collection work a generation's worker runs. Real
// marking and relocation live outside this component; Work is the seam a
// caller plugs into to observe or simulate worker activity.
type Work func(ctx context.Context, workerID int)

// Pool is a resizable set of goroutines representing one generation's
// concurrent GC worker threads. Resize is asynchronous: RequestResizeWorkers
// records the desired count and a background goroutine converges toward it,
// spawning or retiring workers one at a time, the same incremental
// convergence a live worker pool must use since collection work in flight on
// a worker cannot be interrupted mid-step.
type Pool struct {
	name string
	log  gclog.Logger
	work Work

	min, max atomic.Uint64
	current  atomic.Uint64
	desired  atomic.Uint64
	active   atomic.Bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	workers   map[int]context.CancelFunc
	workersMu sync.Mutex
	nextID    atomic.Int64

	resizeWake chan struct{}
}

// New constructs a worker pool for one generation, bounded to [min, max]
// workers, running work on every live worker goroutine.
func New(name string, min, max uint, work Work, log gclog.Logger) *Pool {
	if max < min {
		max = min
	}
	p := &Pool{
		name:       name,
		log:        log,
		work:       work,
		workers:    make(map[int]context.CancelFunc),
		resizeWake: make(chan struct{}, 1),
	}
	p.min.Store(uint64(min))
	p.max.Store(uint64(max))
	return p
}

// Start spawns the pool's initial worker set (initial workers) and begins the
// background resize-convergence loop.
func (p *Pool) Start(ctx context.Context, initial uint) {
	p.ctx, p.cancel = context.WithCancel(ctx)
	p.active.Store(true)
	p.desired.Store(uint64(initial))

	p.wg.Add(1)
	go p.converge()

	p.wake()
}

// Stop cancels every live worker and waits for the convergence loop to exit.
func (p *Pool) Stop() {
	p.active.Store(false)
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()

	p.workersMu.Lock()
	for id, cancel := range p.workers {
		cancel()
		delete(p.workers, id)
	}
	p.workersMu.Unlock()
	p.current.Store(0)
}

// RequestResizeWorkers asynchronously requests the pool converge to n
// workers, clamped to [min, max].
func (p *Pool) RequestResizeWorkers(n uint) {
	lo, hi := uint(p.min.Load()), uint(p.max.Load())
	if n < lo {
		n = lo
	}
	if n > hi {
		n = hi
	}
	p.desired.Store(uint64(n))
	p.wake()
}

// ResizeStats implements Facade, reporting the pool's current activity.
// Pool reports only IsActive and NWorkersCurrent; it does not track time
// spent in a running cycle, so SerialGCTimePassed and ParallelGCTimePassed
// are always zero and the dynamic model evaluates as if no cycle time had
// passed yet.
func (p *Pool) ResizeStats(_ zstat.CycleFacade) ResizeStats {
	return ResizeStats{
		IsActive:        p.active.Load(),
		NWorkersCurrent: uint(p.current.Load()),
	}
}

// CurrentWorkers returns the live worker goroutine count.
func (p *Pool) CurrentWorkers() uint {
	return uint(p.current.Load())
}

func (p *Pool) wake() {
	select {
	case p.resizeWake <- struct{}{}:
	default:
	}
}

// converge is the background goroutine that incrementally spawns or retires
// workers until the live count matches the desired count.
func (p *Pool) converge() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-p.resizeWake:
		}

		for p.active.Load() {
			want := uint(p.desired.Load())
			have := uint(p.current.Load())
			if have == want {
				break
			}
			if have < want {
				p.spawnOne()
			} else {
				p.retireOne()
			}
		}
	}
}

func (p *Pool) spawnOne() {
	id := int(p.nextID.Add(1))
	workerCtx, cancel := context.WithCancel(p.ctx)

	p.workersMu.Lock()
	p.workers[id] = cancel
	p.workersMu.Unlock()
	p.current.Add(1)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		if p.log != nil {
			p.log.Debug("gc worker started", gclog.String("generation", p.name), gclog.Int("worker_id", id))
		}
		if p.work != nil {
			p.work(workerCtx, id)
		}
		<-workerCtx.Done()
	}()
}

func (p *Pool) retireOne() {
	p.workersMu.Lock()
	defer p.workersMu.Unlock()
	for id, cancel := range p.workers {
		cancel()
		delete(p.workers, id)
		p.current.Add(^uint64(0))
		return
	}
}

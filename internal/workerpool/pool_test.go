package workerpool

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForCurrent(t *testing.T, p *Pool, want uint) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if p.CurrentWorkers() == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	require.Equal(t, want, p.CurrentWorkers())
}

func TestPoolStartReachesInitial(t *testing.T) {
	p := New("young", 1, 8, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p.Start(ctx, 3)
	waitForCurrent(t, p, 3)

	stats := p.ResizeStats(nil)
	assert.True(t, stats.IsActive)
	assert.Equal(t, uint(3), stats.NWorkersCurrent)

	p.Stop()
	assert.Equal(t, uint(0), p.CurrentWorkers())
}

func TestPoolResizeUpAndDown(t *testing.T) {
	p := New("old", 1, 8, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p.Start(ctx, 2)
	waitForCurrent(t, p, 2)

	p.RequestResizeWorkers(6)
	waitForCurrent(t, p, 6)

	p.RequestResizeWorkers(1)
	waitForCurrent(t, p, 1)

	p.Stop()
}

func TestPoolResizeClampsToMinMax(t *testing.T) {
	p := New("old", 2, 4, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p.Start(ctx, 2)
	waitForCurrent(t, p, 2)

	p.RequestResizeWorkers(99)
	waitForCurrent(t, p, 4)

	p.RequestResizeWorkers(0)
	waitForCurrent(t, p, 2)

	p.Stop()
}

func TestPoolMaxLessThanMinIsRaised(t *testing.T) {
	p := New("old", 5, 1, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p.Start(ctx, 5)
	waitForCurrent(t, p, 5)
	p.Stop()
}

func TestPoolRunsWorkFunction(t *testing.T) {
	started := make(chan int, 4)
	work := func(ctx context.Context, workerID int) {
		started <- workerID
	}
	p := New("young", 1, 4, work, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p.Start(ctx, 2)
	waitForCurrent(t, p, 2)

	for i := 0; i < 2; i++ {
		select {
		case <-started:
		case <-time.After(time.Second):
			t.Fatal("expected work to run for each spawned worker")
		}
	}
	p.Stop()
}

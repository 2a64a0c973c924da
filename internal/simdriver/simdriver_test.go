package simdriver

import (
	"testing"
	"time"

	"github.com/ibs-source/zgc/director/internal/gctypes"
	"github.com/ibs-source/zgc/director/internal/zheap"
	"github.com/ibs-source/zgc/director/internal/zstat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitterBusyLifecycle(t *testing.T) {
	heap := zheap.NewTracker(1 << 20)
	heap.SetUsed(1 << 19)
	heap.SetUsedOld(1 << 18)
	stats := zstat.NewTracker(0.5)

	s := New(20*time.Millisecond, stats, heap, true)
	assert.False(t, s.IsBusy())

	s.Collect(gctypes.DriverRequest{OldWorkers: 2})
	assert.True(t, s.IsBusy())

	require.Eventually(t, func() bool { return !s.IsBusy() }, time.Second, time.Millisecond)
	assert.Equal(t, uint64(1), stats.TotalCollections())
}

func TestSubmitterIgnoresReentrantCollect(t *testing.T) {
	heap := zheap.NewTracker(1 << 20)
	stats := zstat.NewTracker(0.5)
	s := New(50*time.Millisecond, stats, heap, false)

	s.Collect(gctypes.DriverRequest{YoungWorkers: 1})
	s.Collect(gctypes.DriverRequest{YoungWorkers: 1}) // dropped: already busy

	require.Eventually(t, func() bool { return !s.IsBusy() }, time.Second, time.Millisecond)
	assert.Equal(t, uint64(1), stats.TotalCollections())
}

func TestSubmitterReducesHeapOccupancy(t *testing.T) {
	heap := zheap.NewTracker(1 << 20)
	heap.SetUsed(1000)
	heap.SetUsedOld(1000)
	stats := zstat.NewTracker(0.5)

	s := New(10*time.Millisecond, stats, heap, true)
	s.Collect(gctypes.DriverRequest{OldWorkers: 1})

	require.Eventually(t, func() bool { return !s.IsBusy() }, time.Second, time.Millisecond)
	assert.Less(t, heap.Used(), uint64(1000))
	assert.Less(t, heap.UsedOld(), uint64(1000))
	assert.False(t, heap.IsAllocStallingForOld())
}

package zheap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackerSettersAndFacade(t *testing.T) {
	tr := NewTracker(1 << 30)
	assert.Equal(t, uint64(1<<30), tr.SoftMaxCapacity())
	assert.Equal(t, uint64(0), tr.Used())
	assert.False(t, tr.IsAllocStallingForOld())

	tr.SetUsed(500)
	tr.SetUsedOld(200)
	tr.SetAllocStallingForOld(true)
	tr.SetSoftMaxCapacity(2 << 30)

	assert.Equal(t, uint64(500), tr.Used())
	assert.Equal(t, uint64(200), tr.UsedOld())
	assert.True(t, tr.IsAllocStallingForOld())
	assert.Equal(t, uint64(2<<30), tr.SoftMaxCapacity())
}

func TestTrackerImplementsFacade(t *testing.T) {
	var _ Facade = NewTracker(0)
}

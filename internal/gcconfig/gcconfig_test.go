package gcconfig

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	d := Defaults()
	assert.GreaterOrEqual(t, d.ConcGCThreads, uint(1))
	assert.True(t, d.ZProactive)
	assert.True(t, d.UseDynamicNumberOfGCThreads)
	assert.Equal(t, uint64(16<<30), d.MaxHeapSize)
	require.NoError(t, Validate(d))
}

func TestApplyEnvironmentOverridesAndFallsBack(t *testing.T) {
	t.Setenv("Z_CONC_GC_THREADS", "7")
	t.Setenv("Z_MAX_HEAP_SIZE", "1073741824")
	t.Setenv("Z_PROACTIVE", "false")
	t.Setenv("Z_ALLOCATION_SPIKE_TOLERANCE", "not-a-float")

	base := Defaults()
	got := ApplyEnvironment(base)

	assert.Equal(t, uint(7), got.ConcGCThreads)
	assert.Equal(t, uint64(1073741824), got.MaxHeapSize)
	assert.False(t, got.ZProactive)
	// invalid env value falls back to the base value unchanged.
	assert.Equal(t, base.ZAllocationSpikeTolerance, got.ZAllocationSpikeTolerance)
}

func TestApplyEnvironmentUnsetLeavesDefaults(t *testing.T) {
	base := Defaults()
	got := ApplyEnvironment(base)
	assert.Equal(t, base, got)
}

func TestValidateRejectsInconsistentValues(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Tunables)
	}{
		{"zero conc threads", func(tn *Tunables) { tn.ConcGCThreads = 0 }},
		{"zero spike tolerance", func(tn *Tunables) { tn.ZAllocationSpikeTolerance = 0 }},
		{"zero max heap", func(tn *Tunables) { tn.MaxHeapSize = 0 }},
		{"zero small page", func(tn *Tunables) { tn.ZPageSizeSmall = 0 }},
		{"medium smaller than small", func(tn *Tunables) { tn.ZPageSizeMedium = tn.ZPageSizeSmall / 2 }},
		{"zero decision hz", func(tn *Tunables) { tn.DecisionHz = 0 }},
		{"negative minor interval", func(tn *Tunables) { tn.ZCollectionIntervalMinor = -time.Second }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tn := Defaults()
			c.mut(&tn)
			assert.Error(t, Validate(tn))
		})
	}
}

func TestTickInterval(t *testing.T) {
	tn := Tunables{DecisionHz: 10}
	assert.Equal(t, 100*time.Millisecond, tn.TickInterval())

	tn.DecisionHz = 0
	assert.Equal(t, 100*time.Millisecond, tn.TickInterval())
}

func TestRelocationHeadroom(t *testing.T) {
	tn := Tunables{ConcGCThreads: 4, ZPageSizeSmall: 2 << 20, ZPageSizeMedium: 32 << 20}
	assert.Equal(t, uint64(4*(2<<20)+32<<20), tn.RelocationHeadroom())
}

func TestLoadPipeline(t *testing.T) {
	t.Setenv("Z_DECISION_HZ", "20")
	tn, err := Load()
	require.NoError(t, err)
	assert.Equal(t, uint(20), tn.DecisionHz)
}

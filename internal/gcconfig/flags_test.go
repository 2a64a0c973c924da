package gcconfig

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterFlagsOverridesDefaults(t *testing.T) {
	tn := Defaults()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	RegisterFlags(fs, &tn)

	require.NoError(t, fs.Parse([]string{"-conc-gc-threads=12", "-max-heap-size=2147483648"}))

	require.Equal(t, uint(12), tn.ConcGCThreads)
	require.Equal(t, uint64(2147483648), tn.MaxHeapSize)
	// untouched fields keep their pre-registration (already-resolved) values.
	require.Equal(t, Defaults().ZPageSizeSmall, tn.ZPageSizeSmall)
}

//go:build linux

// Package gcruntime provides the initial-configuration CPU-share helper.
// On Linux, ActiveProcessorCount reads the scheduler affinity mask via
// golang.org/x/sys/unix so that a cgroup- or taskset-restricted process
// sizes its worker counts to the CPU set it can actually run on, not the
// machine's full core count. Falls back to runtime.NumCPU() if the syscall
// is unavailable.
package gcruntime

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// ActiveProcessorCount returns the number of CPUs available to this process
// for the initial-configuration worker-count math.
func ActiveProcessorCount() uint {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err == nil {
		if n := set.Count(); n > 0 {
			return uint(n)
		}
	}
	if n := runtime.NumCPU(); n > 0 {
		return uint(n)
	}
	return 1
}

//go:build !linux

// Package gcruntime provides the initial-configuration CPU-share helper.
// Non-Linux builds have no portable affinity-mask syscall in x/sys, so this
// falls back to runtime.NumCPU() behind the same stable API.
package gcruntime

import "runtime"

// ActiveProcessorCount returns the number of CPUs available to this process
// for the initial-configuration worker-count math.
func ActiveProcessorCount() uint {
	if n := runtime.NumCPU(); n > 0 {
		return uint(n)
	}
	return 1
}

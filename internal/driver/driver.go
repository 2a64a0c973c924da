// Package driver defines the collection driver facade: the submitter the
// director hands GC-start decisions to. Marking and relocation live behind
// this boundary; the director only depends on the busy/collect contract.
package driver

import "github.com/ibs-source/zgc/director/internal/gctypes"

// Submitter is one generation's (major or minor) collection entry point.
type Submitter interface {
	// IsBusy reports whether a cycle is already in flight for this
	// submitter. Non-blocking.
	IsBusy() bool
	// Collect submits a fire-and-forget collection request. The director
	// never waits on it and never issues two Collect calls in one tick.
	Collect(request gctypes.DriverRequest)
}

// Facade is the director's view of the collection driver: a major and a
// minor submitter. Both major- and minor-initiated decisions submit through
// Major, which multiplexes on the request's Cause; Minor exists so the
// minor rules can observe an in-flight minor cycle's busy state.
type Facade struct {
	Major Submitter
	Minor Submitter
}

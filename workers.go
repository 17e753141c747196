package elem2keitaro

import "runtime"

// Worker sizing bounds for batch conversion.
const (
	// MinWorkers ensures at least one document is converted at a time.
	MinWorkers = 1

	// MaxWorkers caps automatic sizing. Each worker fans out its own image
	// fetches, so more workers mostly add open connections.
	MaxWorkers = 16
)

// ResolveWorkers determines how many documents to convert in parallel.
// An explicit positive value wins; otherwise GOMAXPROCS (adjusted by
// automaxprocs in containers) clamped to [MinWorkers, MaxWorkers].
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return workers
	}
	return min(max(runtime.GOMAXPROCS(0), MinWorkers), MaxWorkers)
}

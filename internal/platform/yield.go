package platform

import "runtime"

// ThreadYieldFunc lets an embedder override the yield hint, matching the
// source's "custom thread yield" build-time toggle.
var ThreadYieldFunc func() = runtime.Gosched

// ThreadYield is a best-effort hint that the current goroutine is willing
// to be descheduled briefly. It carries no ordering semantics.
func ThreadYield() {
	ThreadYieldFunc()
}

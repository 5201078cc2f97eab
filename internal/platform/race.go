//go:build corelock_racehooks

package platform

import (
	"runtime/race"
	"unsafe"
)

// With the corelock_racehooks build tag, the fence spinlock's acquire and
// release are annotated with runtime/race's mutex-lifecycle hooks. Go's
// race detector, like the source's ThreadSanitizer, cannot otherwise
// infer synchronization from a hand-rolled compare-and-swap spinlock;
// without this it would report false-positive data races on the
// registries the fence protects.
func RaceFenceAcquire(addr *Bool) {
	race.Acquire(unsafe.Pointer(addr))
}

func RaceFenceRelease(addr *Bool) {
	race.Release(unsafe.Pointer(addr))
}

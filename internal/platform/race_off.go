//go:build !corelock_racehooks

package platform

// RaceFenceAcquire/RaceFenceRelease are no-ops unless built with
// -tags corelock_racehooks.
func RaceFenceAcquire(addr *Bool) {}

func RaceFenceRelease(addr *Bool) {}

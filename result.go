package corelock

// Result is the outcome of an acquisition attempt. Values are stable
// across versions of this module, since some callers compare, log, or
// persist them independently of this package.
type Result uint8

const (
	// Ok means the acquisition succeeded.
	Ok Result = iota
	// OutOfMemory means a registry needed to grow and allocation failed.
	OutOfMemory
	// SharedBlockedByExclusive means another thread holds the lock
	// exclusively.
	SharedBlockedByExclusive
	// ExclusiveBlockedByOtherReaders means another thread holds a shared
	// acquisition, so exclusive access is denied; this applies both to a
	// reader attempting elevation and to a caller that holds no shared
	// acquisition.
	ExclusiveBlockedByOtherReaders
	// ExclusiveBlockedByExclusive means another thread holds the lock
	// exclusively (exclusive-vs-exclusive contention).
	ExclusiveBlockedByExclusive
	// Deadlock means an elevation deadlock with another thread was
	// detected; the caller must release its shared hold(s) to make
	// progress.
	Deadlock
)

func (r Result) String() string {
	switch r {
	case Ok:
		return "Ok"
	case OutOfMemory:
		return "OutOfMemory"
	case SharedBlockedByExclusive:
		return "SharedBlockedByExclusive"
	case ExclusiveBlockedByOtherReaders:
		return "ExclusiveBlockedByOtherReaders"
	case ExclusiveBlockedByExclusive:
		return "ExclusiveBlockedByExclusive"
	case Deadlock:
		return "Deadlock"
	default:
		return "Result(unknown)"
	}
}

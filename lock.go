package corelock

import (
	"github.com/anvil-lang/corelock/internal/platform"
	"github.com/anvil-lang/corelock/internal/registry"
	"github.com/anvil-lang/corelock/internal/threadid"
)

const (
	readerFirstCapacity   = 4
	elevatorFirstCapacity = 2
)

// Rwlock is a re-entrant reader/writer lock with deadlock-aware
// shared-to-exclusive elevation. Its zero value is a valid, unlocked
// lock; no constructor call is required.
//
// Rwlock must not be copied after first use.
type Rwlock struct {
	fence platform.Bool

	exclusiveID    platform.Word
	exclusiveCount platform.Word

	readers   registry.Registry
	elevators registry.Registry

	deadlockGeneration platform.Word
}

func (l *Rwlock) acquireFence() {
	var expected bool
	for !l.fence.CompareExchangeWeak(&expected, true, platform.SeqCst) {
		expected = false
		platform.ThreadYield()
	}
	platform.RaceFenceAcquire(&l.fence)
}

func (l *Rwlock) releaseFence() {
	platform.RaceFenceRelease(&l.fence)
	l.fence.Store(false, platform.SeqCst)
}

// TryAcquireShared attempts to take the lock for shared (read) access
// without blocking. It returns Ok, OutOfMemory, or
// SharedBlockedByExclusive.
func (l *Rwlock) TryAcquireShared() Result {
	self := threadid.ThisThreadID()

	if owner := l.exclusiveID.Load(platform.SeqCst); owner != 0 && owner != self {
		return SharedBlockedByExclusive
	}

	l.acquireFence()
	defer l.releaseFence()

	if owner := l.exclusiveID.Load(platform.SeqCst); owner != 0 && owner != self {
		return SharedBlockedByExclusive
	}

	if !l.readers.Append(self, readerFirstCapacity) {
		return OutOfMemory
	}
	return Ok
}

// AcquireShared blocks until shared access is granted or an unrecoverable
// condition (OutOfMemory) occurs.
func (l *Rwlock) AcquireShared() Result {
	for {
		switch r := l.TryAcquireShared(); r {
		case Ok, OutOfMemory:
			return r
		default:
			platform.ThreadYield()
		}
	}
}

// ReleaseShared releases one shared acquisition held by the calling
// thread. It is a fatal error to call this while another thread holds the
// lock exclusively, or while no thread holds a shared acquisition at all.
// If other threads hold shared acquisitions but the calling thread does
// not, the call removes nothing and is not reported.
func (l *Rwlock) ReleaseShared() {
	self := threadid.ThisThreadID()

	l.acquireFence()
	defer l.releaseFence()

	owner := l.exclusiveID.Load(platform.SeqCst)
	if owner != 0 && owner != self {
		platform.Fatal("corelock: cannot release shared lock when another thread holds exclusive access")
	}
	if l.readers.Len() == 0 {
		platform.Fatal("corelock: cannot release shared lock when no thread holds a shared lock")
	}

	l.readers.RemoveFirst(self)
}

// TryAcquireExclusive attempts to take the lock for exclusive (write)
// access without blocking, including via shared-to-exclusive elevation
// when the calling thread is the sole current reader. It returns Ok,
// OutOfMemory, ExclusiveBlockedByExclusive, ExclusiveBlockedByOtherReaders,
// or Deadlock.
func (l *Rwlock) TryAcquireExclusive() Result {
	oldGeneration := l.deadlockGeneration.Load(platform.SeqCst)
	self := threadid.ThisThreadID()

	if owner := l.exclusiveID.Load(platform.SeqCst); owner == self && owner != 0 {
		l.exclusiveCount.FetchAdd(1, platform.SeqCst)
		return Ok
	} else if owner != 0 {
		return ExclusiveBlockedByExclusive
	}

	thisThreadIsReader := false
	l.acquireFence()
	if l.readers.Contains(self) {
		if !l.elevators.Append(self, elevatorFirstCapacity) {
			l.releaseFence()
			return OutOfMemory
		}
		thisThreadIsReader = true
		l.releaseFence()
		// Give other elevating readers a window to register themselves
		// in the elevators registry before we evaluate the wait graph.
		platform.ThreadYield()
	} else {
		l.releaseFence()
	}

	l.acquireFence()
	defer l.releaseFence()

	if newGeneration := l.deadlockGeneration.Load(platform.SeqCst); newGeneration != oldGeneration {
		// Another thread detected a deadlock on this lock during our
		// registration window.
		if thisThreadIsReader {
			l.elevators.RemoveFirst(self)
		}
		return Deadlock
	}

	if thisThreadIsReader {
		if l.elevators.HasForeign(self) {
			l.deadlockGeneration.FetchAdd(1, platform.SeqCst)
			l.elevators.RemoveFirst(self)
			return Deadlock
		}
		l.elevators.RemoveFirst(self)
	}

	if owner := l.exclusiveID.Load(platform.SeqCst); owner != 0 {
		return ExclusiveBlockedByExclusive
	}

	if !l.readers.IsOnly(self) {
		return ExclusiveBlockedByOtherReaders
	}

	l.exclusiveID.Store(self, platform.SeqCst)
	l.exclusiveCount.FetchAdd(1, platform.SeqCst)
	return Ok
}

// AcquireExclusive blocks until exclusive access is granted, OutOfMemory
// occurs, or a deadlock is detected. It deliberately does not retry on
// ExclusiveBlockedByOtherReaders (doing so would itself risk a busy-wait
// deadlock with other elevating readers) nor on Deadlock (the caller must
// release its shared hold(s) first).
func (l *Rwlock) AcquireExclusive() Result {
	for {
		switch r := l.TryAcquireExclusive(); r {
		case Ok, OutOfMemory, Deadlock, ExclusiveBlockedByOtherReaders:
			return r
		default:
			platform.ThreadYield()
		}
	}
}

// ReleaseExclusive releases one exclusive acquisition held by the calling
// thread. It is a fatal error to call this without holding the exclusive
// lock.
func (l *Rwlock) ReleaseExclusive() {
	self := threadid.ThisThreadID()

	l.acquireFence()
	defer l.releaseFence()

	if owner := l.exclusiveID.Load(platform.SeqCst); owner != self {
		platform.Fatal("corelock: cannot release exclusive lock not held by this thread")
	}
	if l.exclusiveCount.Load(platform.SeqCst) < 1 {
		platform.Fatal("corelock: cannot release exclusive lock with a zero hold count")
	}

	if l.exclusiveCount.FetchSub(1, platform.SeqCst) == 1 {
		l.exclusiveID.Store(0, platform.SeqCst)
	}
}

// Destroy tears down the lock. It is a fatal error to destroy a lock
// while any thread holds it, shared or exclusive, or while any thread is
// attempting to elevate. Callers must ensure every goroutine that might
// hold the lock has already released it (and exited, or at least stopped
// using the lock) before calling Destroy.
func (l *Rwlock) Destroy() {
	l.acquireFence()
	defer l.releaseFence()

	if l.exclusiveID.Load(platform.SeqCst) != 0 {
		platform.Fatal("corelock: cannot destroy a lock while a thread has exclusive access")
	}
	if l.readers.Len() != 0 {
		platform.Fatal("corelock: cannot destroy a lock while a thread has shared access")
	}
	if l.elevators.Len() != 0 {
		platform.Fatal("corelock: cannot destroy a lock while a thread is attempting to elevate")
	}

	l.readers.Free()
	l.elevators.Free()
}

// Stats is a read-only snapshot of an Rwlock's internal bookkeeping,
// useful for diagnostics and tests. It is not synchronized with any
// single instant of lock activity beyond its own fence hold.
type Stats struct {
	ExclusiveID        uint64
	ExclusiveCount     uint64
	ReaderCount        int
	ReaderCapacity     int
	ElevatorCount      int
	ElevatorCapacity   int
	DeadlockGeneration uint64
}

// Stats returns a snapshot of the lock's current state.
func (l *Rwlock) Stats() Stats {
	l.acquireFence()
	defer l.releaseFence()

	return Stats{
		ExclusiveID:        l.exclusiveID.Load(platform.SeqCst),
		ExclusiveCount:     l.exclusiveCount.Load(platform.SeqCst),
		ReaderCount:        l.readers.Len(),
		ReaderCapacity:     l.readers.Cap(),
		ElevatorCount:      l.elevators.Len(),
		ElevatorCapacity:   l.elevators.Cap(),
		DeadlockGeneration: l.deadlockGeneration.Load(platform.SeqCst),
	}
}

package corelock

import (
	"fmt"

	"github.com/anvil-lang/corelock/internal/platform"
	"github.com/anvil-lang/corelock/internal/threadid"
)

// ReadGuard is a scoped shared-acquisition handle returned by
// LockShared. It must be unlocked by the same goroutine that created it;
// it is not safe to hand a guard to another goroutine, mirroring the
// thread-owned nature of the underlying acquisition.
type ReadGuard struct {
	l      *Rwlock
	owner  uint64
	active bool
}

// WriteGuard is the exclusive-acquisition analogue of ReadGuard.
type WriteGuard struct {
	l      *Rwlock
	owner  uint64
	active bool
}

// LockShared acquires l for shared access (blocking) and returns a guard
// whose Unlock releases it. The only possible error is ErrOutOfMemory.
func LockShared(l *Rwlock) (*ReadGuard, error) {
	switch r := l.AcquireShared(); r {
	case Ok:
		return &ReadGuard{l: l, owner: threadid.ThisThreadID(), active: true}, nil
	case OutOfMemory:
		return nil, ErrOutOfMemory
	default:
		platform.Fatal("corelock: AcquireShared returned unexpected result %s", r)
		return nil, nil
	}
}

// Unlock releases the shared acquisition this guard holds. Calling
// Unlock more than once, or from a goroutine other than the one that
// created the guard, is a fatal error.
func (g *ReadGuard) Unlock() {
	if !g.active {
		platform.Fatal("corelock: ReadGuard.Unlock called on an already-unlocked guard")
	}
	if current := threadid.ThisThreadID(); current != g.owner {
		platform.Fatal("corelock: ReadGuard.Unlock called from a different goroutine than the one that locked it")
	}
	g.l.ReleaseShared()
	g.active = false
}

// LockExclusive acquires l for exclusive access (blocking) and returns a
// guard whose Unlock releases it. Unlike LockShared, an exclusive
// acquisition can be denied by policy (ExclusiveBlockedByOtherReaders) or
// by deadlock detection (Deadlock); both are returned as errors rather
// than retried, matching AcquireExclusive's own non-retry policy for
// those two results.
func LockExclusive(l *Rwlock) (*WriteGuard, error) {
	switch r := l.AcquireExclusive(); r {
	case Ok:
		return &WriteGuard{l: l, owner: threadid.ThisThreadID(), active: true}, nil
	case OutOfMemory:
		return nil, ErrOutOfMemory
	case ExclusiveBlockedByOtherReaders:
		return nil, ErrBlockedByOtherReaders
	case Deadlock:
		return nil, ErrDeadlock
	default:
		platform.Fatal("corelock: AcquireExclusive returned unexpected result %s", r)
		return nil, nil
	}
}

// Unlock releases the exclusive acquisition this guard holds. Calling
// Unlock more than once, or from a goroutine other than the one that
// created the guard, is a fatal error.
func (g *WriteGuard) Unlock() {
	if !g.active {
		platform.Fatal("corelock: WriteGuard.Unlock called on an already-unlocked guard")
	}
	if current := threadid.ThisThreadID(); current != g.owner {
		platform.Fatal("corelock: WriteGuard.Unlock called from a different goroutine than the one that locked it")
	}
	g.l.ReleaseExclusive()
	g.active = false
}

var (
	// ErrOutOfMemory wraps Result OutOfMemory for the guard API.
	ErrOutOfMemory = guardError{OutOfMemory}
	// ErrBlockedByOtherReaders wraps Result ExclusiveBlockedByOtherReaders.
	ErrBlockedByOtherReaders = guardError{ExclusiveBlockedByOtherReaders}
	// ErrDeadlock wraps Result Deadlock.
	ErrDeadlock = guardError{Deadlock}
)

type guardError struct {
	result Result
}

func (e guardError) Error() string {
	return fmt.Sprintf("corelock: %s", e.result)
}

// Result reports the underlying acquisition result this error wraps.
func (e guardError) Result() Result {
	return e.result
}

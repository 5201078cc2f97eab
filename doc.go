// Copyright 2024 The corelock Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package corelock implements a re-entrant reader/writer lock with
// thread-identity tracking and deadlock-aware shared-to-exclusive
// elevation.
//
// ## Motivation
//
// A conventional reader/writer lock is not enough for a host that embeds
// a foreign, re-entrant caller: the motivating case here is a hosted
// interpreter that calls out to foreign code which may call back into the
// interpreter and re-acquire a lock the outer call already holds. An
// off-the-shelf sync.RWMutex forbids that: acquiring it twice from the
// same logical caller, even by way of a callback, deadlocks. corelock's
// Rwlock instead tracks *who* holds what, so the same logical caller can
// re-acquire shared or exclusive access across such a boundary.
//
// This also makes "upgrade my read lock to a write lock" meaningful: if
// and only if a thread is the *sole* current reader, it may elevate to
// exclusive without first releasing its shared hold. Because elevation
// can be attempted by more than one reader at once, the lock tracks
// elevation attempts in a second registry and detects the resulting
// deadlock (two readers, each wanting to be the other's sole reader)
// rather than hanging.
//
// ## States
//
// An Rwlock is in one of three conceptual states:
//
//	Free      no thread holds shared or exclusive access
//	Shared    one or more (re-entrant) shared holders, no exclusive owner
//	Exclusive one thread holds exclusive access, possibly re-entrantly
//
// Shared→Exclusive is only reachable via elevation (AcquireExclusive
// called by a thread already present in the reader registry), and only
// succeeds when every entry in the registry belongs to that thread.
//
//	+------------+----------+--------------------------+-----------------+
//	|Request     | Free     | Shared                   | Exclusive       |
//	+------------+----------+--------------------------+-----------------+
//	|AcquireShared  | Ok    | Ok                       | Ok (owner only) |
//	|AcquireExcl.   | Ok    | Ok iff sole reader,       | Ok (owner only, |
//	|               |       | else denied/deadlock     | re-entrant)     |
//	+------------+----------+--------------------------+-----------------+
//
// ## Re-entrancy and thread identity
//
// Every acquisition is attributed to the calling goroutine via
// internal/threadid, not to a call stack depth counter. Releasing an
// exclusive acquisition from a goroutine other than its owner is a fatal
// precondition violation, as is releasing a shared acquisition while no
// goroutine holds one. A shared release from a goroutine that holds no
// shared acquisition, while other goroutines do, removes nothing and is
// not reported.
//
// ## Ordering
//
// Every Rwlock operation behaves as if sequentially consistent: a
// successful acquire happens-before any later successful acquire on the
// same lock, and stores made while holding the lock are visible to the
// next acquirer that observes the post-store state. There is no fairness
// guarantee between competing threads.
package corelock

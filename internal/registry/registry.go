// Package registry implements the dense, append-only, doubling-capacity
// thread-id arrays the rwlock uses to track shared holders and would-be
// elevators. Backing storage is obtained through internal/platform's
// aligned allocator, so an embedder's AlignedAllocFunc/AlignedFreeFunc
// override (internal/platform/alloc.go) actually governs the memory the
// lock uses, not just memory platform's own tests touch.
package registry

import (
	"unsafe"

	"github.com/anvil-lang/corelock/internal/platform"
)

const wordSize = int(unsafe.Sizeof(uint64(0)))

// growFunc allocates a new backing array of the given capacity through
// platform.AlignedAlloc. It is a package variable so tests can inject
// allocation failure to exercise the OutOfMemory acquisition result
// without needing to exhaust real process memory.
var growFunc = func(length, capacity int) []uint64 {
	buf := platform.AlignedAlloc(capacity*wordSize, wordSize)
	if buf == nil {
		return nil
	}
	return bytesToWords(buf, capacity)[:length]
}

// Registry is a growable array of thread ids with multiplicity. Its zero
// value is an empty, unallocated registry (capacity 0, backing array
// nil) and is immediately usable: the caller-supplied firstCapacity
// passed to Append on first growth is what makes the reader registry
// start at 4 entries and the elevation registry start at 2, without
// requiring a constructor.
type Registry struct {
	ids []uint64
}

// Len reports the number of entries currently held, with multiplicity.
func (r *Registry) Len() int {
	return len(r.ids)
}

// Cap reports the registry's current physical capacity: 0 if nothing has
// been allocated yet, otherwise a power of two.
func (r *Registry) Cap() int {
	return cap(r.ids)
}

// Append adds id to the registry, growing the backing array by doubling
// if necessary. On the registry's first growth, the new capacity is
// firstCapacity (4 for the reader registry, 2 for the elevation
// registry); every subsequent growth doubles the previous capacity and
// releases the previous backing array through platform.AlignedFree.
// Append returns false if growth was required and allocation failed,
// which callers surface as an OutOfMemory acquisition result.
func (r *Registry) Append(id uint64, firstCapacity int) bool {
	if len(r.ids) == cap(r.ids) {
		oldCapacity := cap(r.ids)
		newCapacity := oldCapacity * 2
		if newCapacity == 0 {
			newCapacity = firstCapacity
		}
		grown := growFunc(len(r.ids), newCapacity)
		if grown == nil {
			return false
		}
		copy(grown, r.ids)
		if oldCapacity > 0 {
			freeBacking(r.ids[:oldCapacity])
		}
		r.ids = grown
	}
	r.ids = append(r.ids, id)
	return true
}

// RemoveFirst removes the first occurrence of id, preserving the
// relative order (and multiplicity) of every other entry. It is a no-op
// if id is not present.
func (r *Registry) RemoveFirst(id uint64) {
	for i, v := range r.ids {
		if v == id {
			r.ids = append(r.ids[:i], r.ids[i+1:]...)
			return
		}
	}
}

// Contains reports whether id appears anywhere in the registry.
func (r *Registry) Contains(id uint64) bool {
	for _, v := range r.ids {
		if v == id {
			return true
		}
	}
	return false
}

// IsOnly reports whether every entry in the registry equals id. An empty
// registry vacuously returns true, so a true result does not by itself
// mean id is present; use Contains for membership.
func (r *Registry) IsOnly(id uint64) bool {
	for _, v := range r.ids {
		if v != id {
			return false
		}
	}
	return true
}

// HasForeign reports whether any entry differs from id. This is the
// complement of IsOnly and is used by the elevation-conflict check, which
// needs to know "does anyone other than me want to elevate" without
// first asserting membership.
func (r *Registry) HasForeign(id uint64) bool {
	for _, v := range r.ids {
		if v != id {
			return true
		}
	}
	return false
}

// Snapshot returns a copy of the registry's current contents, for tests
// and diagnostics.
func (r *Registry) Snapshot() []uint64 {
	out := make([]uint64, len(r.ids))
	copy(out, r.ids)
	return out
}

// Reset clears the registry without releasing its backing capacity,
// matching the source's "capacity is never shrunk" policy.
func (r *Registry) Reset() {
	r.ids = r.ids[:0]
}

// Free releases the registry's backing array, if any, through
// platform.AlignedFree. Callers must not use the registry afterward
// except to Append again, which will allocate a fresh backing array.
func (r *Registry) Free() {
	if cap(r.ids) > 0 {
		freeBacking(r.ids[:cap(r.ids)])
	}
	r.ids = nil
}

func freeBacking(ids []uint64) {
	platform.AlignedFree(wordsToBytes(ids), len(ids)*wordSize, wordSize)
}

func bytesToWords(buf []byte, capacity int) []uint64 {
	return unsafe.Slice((*uint64)(unsafe.Pointer(unsafe.SliceData(buf))), capacity)
}

func wordsToBytes(ids []uint64) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(ids))), len(ids)*wordSize)
}

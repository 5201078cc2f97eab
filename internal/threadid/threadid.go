// Package threadid assigns a process-wide, non-zero, stable identifier to
// the calling goroutine, the Go analogue of the rwlock's OS-thread
// identity service.
//
// Go goroutines are not pinned to OS threads and have no language-level
// thread-local storage. Identity is tracked instead via a side map gated
// by a single mutex, keyed on the runtime's internal goroutine id
// (extracted portably by parsing runtime.Stack rather than via unsafe,
// version-pinned access to the scheduler's g struct).
//
// Unlike OS thread ids, the runtime's internal goroutine ids are drawn
// from a monotonic generator and are never recycled, so byGoID entries
// are never evicted. A terminated goroutine's id will never be seen
// again, so its entry is simply dead weight rather than a source of
// misattribution. An earlier revision tried to evict entries via a
// runtime.SetFinalizer-triggered callback tied to a per-call sentinel
// value, but that sentinel was never retained anywhere, so it could be
// collected (and its entry evicted) while the goroutine that owned it
// was still running and still holding the lock under that identity,
// trading a harmless memory-growth tradeoff for a real correctness bug.
// Plain unbounded growth, one entry per distinct goroutine ever seen, is
// the safer and simpler choice here.
package threadid

import (
	"runtime"
	"sync"

	"github.com/anvil-lang/corelock/internal/platform"
)

var (
	mu      sync.Mutex
	byGoID  = make(map[int64]uint64)
	counter platform.Word
)

// ThisThreadID returns the calling goroutine's lazily-assigned identifier.
// The smallest possible id is 1; 0 is reserved to mean "no thread."
// Exhausting the counter is a fatal error.
func ThisThreadID() uint64 {
	goID := currentGoroutineID()

	mu.Lock()
	defer mu.Unlock()

	if id, ok := byGoID[goID]; ok {
		return id
	}

	fetched := counter.FetchAdd(1, platform.SeqCst)
	if fetched == ^uint64(0)-1 {
		platform.Fatal("threadid: reached max value for thread id generator")
	}
	id := fetched + 1
	byGoID[goID] = id
	return id
}

// currentGoroutineID extracts the runtime's internal goroutine id by
// parsing the first line of runtime.Stack's output: "goroutine N [...]".
// It runs on every call to ThisThreadID, since the side map is keyed on
// it; at ~1.5us this is immaterial next to the fence's own linear scans
// and allocation-on-growth cost, and it avoids the unsafe, Go-version-
// pinned assembly shortcuts some goroutine-id libraries use instead.
func currentGoroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	return parseGoroutineID(buf[:n])
}

func parseGoroutineID(buf []byte) int64 {
	const prefix = "goroutine "
	if len(buf) < len(prefix) || string(buf[:len(prefix)]) != prefix {
		return 0
	}
	var id int64
	for _, c := range buf[len(prefix):] {
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + int64(c-'0')
	}
	return id
}

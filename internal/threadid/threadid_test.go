package threadid

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThisThreadIDIsStableAndNonZero(t *testing.T) {
	id1 := ThisThreadID()
	id2 := ThisThreadID()
	assert.NotZero(t, id1)
	assert.Equal(t, id1, id2)
}

func TestThisThreadIDDistinctAcrossGoroutines(t *testing.T) {
	const n = 32
	ids := make([]uint64, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			ids[i] = ThisThreadID()
		}(i)
	}
	wg.Wait()

	seen := make(map[uint64]bool, n)
	for _, id := range ids {
		assert.NotZero(t, id)
		assert.False(t, seen[id], "thread id %d assigned to more than one goroutine", id)
		seen[id] = true
	}
}

func TestParseGoroutineID(t *testing.T) {
	assert.EqualValues(t, 123, parseGoroutineID([]byte("goroutine 123 [running]:\n")))
	assert.EqualValues(t, 0, parseGoroutineID([]byte("not a goroutine line")))
	assert.EqualValues(t, 0, parseGoroutineID([]byte("goroutine")))
}

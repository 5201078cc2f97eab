package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anvil-lang/corelock/internal/platform"
)

func TestAppendGrowsByDoubling(t *testing.T) {
	var r Registry
	assert.Equal(t, 0, r.Cap())

	for i := 0; i < 4; i++ {
		assert.True(t, r.Append(uint64(i), 4))
	}
	assert.Equal(t, 4, r.Cap())
	assert.Equal(t, 4, r.Len())

	assert.True(t, r.Append(4, 4))
	assert.Equal(t, 8, r.Cap())
	assert.Equal(t, 5, r.Len())
}

func TestAppendStartsAtFirstCapacityForElevators(t *testing.T) {
	var r Registry
	assert.True(t, r.Append(1, 2))
	assert.Equal(t, 2, r.Cap())
}

func TestAppendPreservesMultiplicity(t *testing.T) {
	var r Registry
	r.Append(7, 4)
	r.Append(7, 4)
	r.Append(9, 4)
	assert.Equal(t, 3, r.Len())
	assert.True(t, r.Contains(7))
	assert.False(t, r.IsOnly(7))
}

func TestRemoveFirstKeepsOtherMultiplicity(t *testing.T) {
	var r Registry
	r.Append(1, 4)
	r.Append(2, 4)
	r.Append(1, 4)

	r.RemoveFirst(1)
	assert.Equal(t, []uint64{2, 1}, r.Snapshot())

	r.RemoveFirst(99) // no-op
	assert.Equal(t, []uint64{2, 1}, r.Snapshot())
}

func TestIsOnlyVacuousOnEmpty(t *testing.T) {
	var r Registry
	assert.True(t, r.IsOnly(42))
	assert.False(t, r.HasForeign(42))
}

func TestHasForeign(t *testing.T) {
	var r Registry
	r.Append(1, 4)
	assert.False(t, r.HasForeign(1))
	r.Append(2, 4)
	assert.True(t, r.HasForeign(1))
}

func TestAppendSurfacesAllocationFailure(t *testing.T) {
	old := growFunc
	defer func() { growFunc = old }()
	growFunc = func(length, capacity int) []uint64 { return nil }

	var r Registry
	assert.False(t, r.Append(1, 4))
	assert.Equal(t, 0, r.Len())
}

func TestResetKeepsCapacity(t *testing.T) {
	var r Registry
	for i := 0; i < 4; i++ {
		r.Append(uint64(i), 4)
	}
	r.Reset()
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, 4, r.Cap())
}

func TestAppendRoutesThroughAlignedAllocFunc(t *testing.T) {
	old := platform.AlignedAllocFunc
	defer func() { platform.AlignedAllocFunc = old }()

	var allocated []int
	platform.AlignedAllocFunc = func(length, align int) []byte {
		allocated = append(allocated, length)
		return make([]byte, length)
	}

	var r Registry
	assert.True(t, r.Append(1, 4))
	assert.True(t, r.Append(2, 4))

	assert.Equal(t, []int{4 * wordSize}, allocated)
}

func TestFreeRoutesThroughAlignedFreeFunc(t *testing.T) {
	oldAlloc, oldFree := platform.AlignedAllocFunc, platform.AlignedFreeFunc
	defer func() {
		platform.AlignedAllocFunc = oldAlloc
		platform.AlignedFreeFunc = oldFree
	}()

	freedLengths := []int{}
	platform.AlignedFreeFunc = func(buf []byte, align int) {
		freedLengths = append(freedLengths, len(buf))
	}

	var r Registry
	r.Append(1, 4)
	r.Append(2, 4)
	r.Free()

	a := assert.New(t)
	a.Contains(freedLengths, 4*wordSize)
	a.Equal(0, r.Len())
	a.Equal(0, r.Cap())
}

func TestGrowthFreesPreviousBackingArray(t *testing.T) {
	oldFree := platform.AlignedFreeFunc
	defer func() { platform.AlignedFreeFunc = oldFree }()

	freedLengths := []int{}
	platform.AlignedFreeFunc = func(buf []byte, align int) {
		freedLengths = append(freedLengths, len(buf))
	}

	var r Registry
	for i := 0; i < 4; i++ {
		r.Append(uint64(i), 4)
	}
	assert.Empty(t, freedLengths)

	r.Append(4, 4) // triggers growth from capacity 4 to 8
	assert.Equal(t, []int{4 * wordSize}, freedLengths)
}

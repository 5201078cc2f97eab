package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlignedAllocRespectsLength(t *testing.T) {
	buf := AlignedAlloc(64, 8)
	assert.Len(t, buf, 64)
}

func TestAlignedAllocRejectsNonPowerOfTwoAlign(t *testing.T) {
	assert.Panics(t, func() {
		AlignedAlloc(64, 3)
	})
}

func TestAlignedAllocRejectsLengthNotMultipleOfAlign(t *testing.T) {
	assert.Panics(t, func() {
		AlignedAlloc(10, 8)
	})
}

func TestAlignedFreeValidatesArgsToo(t *testing.T) {
	assert.Panics(t, func() {
		AlignedFree(nil, 0, 8)
	})
}

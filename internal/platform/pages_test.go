package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageSizeIsPositive(t *testing.T) {
	assert.Positive(t, PageSize())
}

func TestPageAllocFreeRoundTrip(t *testing.T) {
	size := PageSize()
	buf := PageAlloc(size)
	require.NotNil(t, buf)
	assert.Len(t, buf, size)

	buf[0] = 0xAB
	assert.Equal(t, byte(0xAB), buf[0])

	PageFree(buf, size)
}

func TestPageAllocRejectsNonMultipleLength(t *testing.T) {
	assert.Panics(t, func() {
		PageAlloc(1)
	})
}

func TestMakePagesReadOnlyThenReadWrite(t *testing.T) {
	size := PageSize()
	buf := PageAlloc(size)
	require.NotNil(t, buf)
	defer PageFree(buf, size)

	assert.NotPanics(t, func() {
		MakePagesReadOnly(buf, size)
		MakePagesReadWrite(buf, size)
	})
}

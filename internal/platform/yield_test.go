package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThreadYieldInvokesOverride(t *testing.T) {
	old := ThreadYieldFunc
	defer func() { ThreadYieldFunc = old }()

	called := false
	ThreadYieldFunc = func() { called = true }

	ThreadYield()
	assert.True(t, called)
}

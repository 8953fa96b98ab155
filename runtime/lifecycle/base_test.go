package lifecycle_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smauto-dev/engine/runtime/lifecycle"
)

func TestServiceStateString(t *testing.T) {
	assert.Equal(t, "ready", lifecycle.StateReady.String())
	assert.Equal(t, "stopped", lifecycle.StateStopped.String())
	assert.Equal(t, "failed", lifecycle.StateFailed.String())
	assert.Equal(t, "unknown", lifecycle.ServiceState(99).String())
}

// TestServiceBaseTracksRunnerLifecycle grounds the exact transitions
// runner.Runner drives: uninitialized until MarkStarted, ready while
// running, stopped on context cancellation.
func TestServiceBaseTracksRunnerLifecycle(t *testing.T) {
	b := lifecycle.NewServiceBase("motion_lamp")
	assert.Equal(t, "motion_lamp", b.Name())
	assert.Equal(t, lifecycle.StateUninitialized, b.State())

	b.MarkStarted()
	assert.Equal(t, lifecycle.StateReady, b.State())

	b.MarkStopped()
	assert.Equal(t, lifecycle.StateStopped, b.State())
}

func TestServiceBaseMarkFailedRecordsError(t *testing.T) {
	b := lifecycle.NewServiceBase("motion_lamp")
	assert.NoError(t, b.LastError())

	failure := errors.New("dispatch panicked")
	b.MarkFailed(failure)
	assert.Equal(t, lifecycle.StateFailed, b.State())
	assert.Equal(t, failure, b.LastError())
}

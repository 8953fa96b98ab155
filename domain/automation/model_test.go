package automation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smauto-dev/engine/domain/automation"
)

func TestNewAutomationDefaults(t *testing.T) {
	a := automation.NewAutomation("open_lights", nil, nil)
	assert.Equal(t, float64(1), a.EffectiveFreqHz())
	assert.True(t, a.Enabled())
	assert.True(t, a.Continuous)
	assert.False(t, a.CheckOnce)
	assert.Equal(t, automation.StateIdle, a.State())
}

func TestEffectiveFreqHzDefaultsOnZero(t *testing.T) {
	a := automation.NewAutomation("a", nil, nil)
	a.FreqHz = 0
	assert.Equal(t, float64(1), a.EffectiveFreqHz())
	a.FreqHz = 2.5
	assert.Equal(t, 2.5, a.EffectiveFreqHz())
}

func TestEnableDisableIdempotent(t *testing.T) {
	a := automation.NewAutomation("a", nil, nil)
	a.Disable()
	a.Disable()
	assert.False(t, a.Enabled())
	a.Enable()
	a.Enable()
	assert.True(t, a.Enabled())
}

func TestCompareAndSwapState(t *testing.T) {
	a := automation.NewAutomation("a", nil, nil)
	assert.True(t, a.CompareAndSwapState(automation.StateIdle, automation.StateRunning))
	assert.Equal(t, automation.StateRunning, a.State())
	assert.False(t, a.CompareAndSwapState(automation.StateIdle, automation.StateExitedSuccess))
	assert.Equal(t, automation.StateRunning, a.State())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "IDLE", automation.StateIdle.String())
	assert.Equal(t, "RUNNING", automation.StateRunning.String())
	assert.Equal(t, "EXITED_SUCCESS", automation.StateExitedSuccess.String())
	assert.Equal(t, "EXITED_FAILURE", automation.StateExitedFailure.String())
}

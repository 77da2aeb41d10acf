//go:build linux

package opencore

import (
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *Engine {
	return &Engine{cfg: defaultConfig()}
}

func TestEnableDisableRoundTrip(t *testing.T) {
	e := newTestEngine()
	assert.False(t, e.IsEnabled())

	require.NoError(t, e.Enable(syscall.SIGUSR1))
	assert.True(t, e.IsEnabled())

	e.Disable()
	assert.False(t, e.IsEnabled())
}

func TestEnableIsIdempotent(t *testing.T) {
	e := newTestEngine()
	require.NoError(t, e.Enable(syscall.SIGUSR1))
	require.NoError(t, e.Enable(syscall.SIGUSR1))
	assert.True(t, e.IsEnabled())
	e.Disable()
}

func TestDisableWithoutEnableIsNoop(t *testing.T) {
	e := newTestEngine()
	assert.NotPanics(t, e.Disable)
	assert.False(t, e.IsEnabled())
}

func TestConfigureUpdatesSnapshot(t *testing.T) {
	e := newTestEngine()
	e.Configure(WithDir("/var/crash"))

	e.switchMu.Lock()
	dir := e.cfg.Dir
	e.switchMu.Unlock()

	assert.Equal(t, "/var/crash", dir)
}

func TestInstanceIsASingleton(t *testing.T) {
	assert.Same(t, Instance(), Instance())
}

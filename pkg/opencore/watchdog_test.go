//go:build linux

package opencore

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWatchdogFiresOnce(t *testing.T) {
	var n int32
	wd := StartWatchdog(10*time.Millisecond, func() { atomic.AddInt32(&n, 1) })

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&n) == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&n))
	wd.Stop()
}

func TestWatchdogStopPreventsFire(t *testing.T) {
	var n int32
	wd := StartWatchdog(50*time.Millisecond, func() { atomic.AddInt32(&n, 1) })
	assert.True(t, wd.Stop())

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&n))
}

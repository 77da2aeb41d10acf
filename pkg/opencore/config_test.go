//go:build linux

package opencore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ja7ad/opencore/pkg/opencore/vma"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	assert.Equal(t, FlagCore|FlagTID, cfg.Flags)
	assert.Equal(t, vma.FilterNone, cfg.Filter)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.NotNil(t, cfg.Callback)
	assert.NotNil(t, cfg.Logger)
}

func TestOptionsApply(t *testing.T) {
	cfg := defaultConfig()
	var called string

	opts := []Option{
		WithDir("/var/crash"),
		WithFlags(FlagPID | FlagTID),
		WithFilter(vma.FilterSharedVMA),
		WithTimeout(5 * time.Second),
		WithCallback(func(path string) { called = path }),
	}
	for _, o := range opts {
		o(&cfg)
	}

	assert.Equal(t, "/var/crash", cfg.Dir)
	assert.Equal(t, FlagPID|FlagTID, cfg.Flags)
	assert.Equal(t, vma.FilterSharedVMA, cfg.Filter)
	assert.Equal(t, 5*time.Second, cfg.Timeout)

	cfg.Callback("/tmp/core.1")
	assert.Equal(t, "/tmp/core.1", called)
}

func TestWithCallbackIgnoresNil(t *testing.T) {
	cfg := defaultConfig()
	WithCallback(nil)(&cfg)
	assert.NotNil(t, cfg.Callback)
}

//go:build linux

package main

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ja7ad/opencore/pkg/opencore"
	"github.com/ja7ad/opencore/pkg/opencore/vma"
)

// fileConfig is the on-disk shape of an opencorectl config file, loading
// the same EngineConfig fields spec.md §3/§6 exposes through setters
// (SPEC_FULL.md §A "Configuration").
type fileConfig struct {
	Dir            string `yaml:"dir"`
	Flags          uint32 `yaml:"flags"`
	Filter         uint32 `yaml:"filter"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

func loadFileConfig(path string) (fileConfig, error) {
	var fc fileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// options translates the file config into Engine options, skipping any
// field left at its zero value so Configure only overrides what the file
// actually set.
func (fc fileConfig) options() []opencore.Option {
	var opts []opencore.Option
	if fc.Dir != "" {
		opts = append(opts, opencore.WithDir(fc.Dir))
	}
	if fc.Flags != 0 {
		opts = append(opts, opencore.WithFlags(opencore.FilenameFlag(fc.Flags)))
	}
	if fc.Filter != 0 {
		opts = append(opts, opencore.WithFilter(vma.FilterFlag(fc.Filter)))
	}
	if fc.TimeoutSeconds > 0 {
		opts = append(opts, opencore.WithTimeout(time.Duration(fc.TimeoutSeconds)*time.Second))
	}
	return opts
}

// File: cmd/ownctl/config.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/momentics/ownkit/api"
	"github.com/momentics/ownkit/scenario"
)

// Config controls an ownctl run.
type Config struct {
	App       string
	LogLevel  string
	Allocator string
	Deferred  bool
}

// DefaultConfig returns the settings used when no file overrides them.
func DefaultConfig() Config {
	return Config{
		App:       "ownctl",
		LogLevel:  "info",
		Allocator: scenario.AllocatorHeap,
	}
}

type fileConfig struct {
	App       string `toml:"app"`
	LogLevel  string `toml:"log_level"`
	Allocator string `toml:"allocator"`
	Deferred  bool   `toml:"deferred"`
}

// loadConfig overlays the keys defined in path on DefaultConfig.
func loadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load ownctl config: %w", err)
	}

	if meta.IsDefined("app") {
		if app := strings.TrimSpace(raw.App); app != "" {
			cfg.App = app
		}
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(raw.LogLevel))
	}
	if meta.IsDefined("allocator") {
		cfg.Allocator = strings.ToLower(strings.TrimSpace(raw.Allocator))
	}
	if meta.IsDefined("deferred") {
		cfg.Deferred = raw.Deferred
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Allocator {
	case scenario.AllocatorHeap, scenario.AllocatorSlab, scenario.AllocatorPooled, scenario.AllocatorMmap:
		return nil
	default:
		return fmt.Errorf("allocator %q: %w", c.Allocator, api.ErrInvalidArgument)
	}
}

func (c Config) options() scenario.Options {
	return scenario.Options{Allocator: c.Allocator, Deferred: c.Deferred}
}

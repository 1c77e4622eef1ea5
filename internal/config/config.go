// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads ormstat settings from an optional file and
// the environment.
package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds the settings that flags may override.
type Config struct {
	// QueryDir is where per-version query files are written.
	// Empty disables them.
	QueryDir string `yaml:"query_dir" env:"ORMSTAT_QUERY_DIR" env-default:"."`

	// Format is the report format: text, csv, json or html.
	Format string `yaml:"format" env:"ORMSTAT_FORMAT" env-default:"text"`

	// LogLevel is the logrus level for diagnostics.
	LogLevel string `yaml:"log_level" env:"ORMSTAT_LOG_LEVEL" env-default:"warn"`

	// Jobs is the number of inputs read concurrently.
	Jobs int `yaml:"jobs" env:"ORMSTAT_JOBS" env-default:"1"`

	// Chart, if set, is the path of a median bar chart to write.
	Chart string `yaml:"chart" env:"ORMSTAT_CHART"`
}

// Formats lists the accepted values of Config.Format.
var Formats = []string{"text", "csv", "json", "html"}

// Load reads path, if non-empty, and then the environment, which
// takes precedence over the file. Unset fields get their defaults.
func Load(path string) (*Config, error) {
	cfg := new(Config)
	if path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg's fields have acceptable values.
func (cfg *Config) Validate() error {
	ok := false
	for _, f := range Formats {
		if cfg.Format == f {
			ok = true
		}
	}
	if !ok {
		return fmt.Errorf("config: unknown format %q", cfg.Format)
	}
	if cfg.Jobs < 1 {
		return fmt.Errorf("config: jobs must be at least 1, got %d", cfg.Jobs)
	}
	return nil
}

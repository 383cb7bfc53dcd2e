// Package config handles application configuration and setup
package config

import (
	"math/rand/v2"

	"github.com/retroenv/chip8vm/internal/cpu"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CreateCPUConfig creates the CPU configuration for the given runner options.
// A zero seed leaves the random source unset so that the CPU seeds it from
// the current time.
func CreateCPUConfig(logger *log.Logger, opts options.Runner) cpu.Config {
	cfg := cpu.Config{
		Quirks: opts.Quirks,
		Logger: logger,
		Trace:  opts.Trace,
	}
	if opts.Seed != 0 {
		cfg.Rand = rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9E3779B97F4A7C15))
	}
	return cfg
}

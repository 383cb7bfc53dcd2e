// Package app provides the main application helpers for the virtual machine.
package app

import (
	"fmt"
	"strings"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/runner"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// PrintBanner prints application version information.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("chip8vm", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}

// PrintInfo prints the information about the input file and the run settings.
func PrintInfo(logger *log.Logger, opts options.Program, runOpts options.Runner, system arch.System, size int) {
	if opts.Quiet {
		return
	}

	logger.Info("Running Chip-8 ROM",
		log.String("file", opts.Input),
		log.Stringer("system", system),
		log.Int("size", size),
		log.Int("hz", runOpts.Hz),
		log.String("invalid", string(runOpts.Invalid)),
	)
	if opts.Legacy {
		logger.Info("Using COSMAC VIP instruction quirks")
	}
	if opts.Trace && !opts.Debug {
		logger.Warn("Instruction trace is only logged with debug logging enabled")
	}
}

// PrintReport prints the result of a run.
func PrintReport(logger *log.Logger, opts options.Program, report *runner.Report) {
	if opts.Quiet {
		return
	}

	logger.Info("Run finished",
		log.String("reason", string(report.Reason)),
		log.Int("cycles", int(report.Cycles)),
		log.Int("addresses", len(report.Addresses)),
		log.Int("timerTicks", report.TimerTicks),
		log.String("display", fmt.Sprintf("%08x", report.Digest)),
	)
	if report.Skipped > 0 {
		logger.Warn("Invalid instructions were skipped", log.Int("count", report.Skipped))
	}
}

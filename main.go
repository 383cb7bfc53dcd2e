// Package main implements the main entry point for a headless CHIP-8 virtual machine
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/chip8vm/internal/app"
	"github.com/retroenv/chip8vm/internal/cli"
	"github.com/retroenv/chip8vm/internal/config"
	"github.com/retroenv/chip8vm/internal/pipeline"
	retroapp "github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := retroapp.Context()

	opts, runOptions, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			app.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	app.PrintBanner(logger, opts, version, commit, date)

	report, err := pipeline.New(logger).Execute(ctx, opts, runOptions)
	if report != nil && opts.Dump {
		fmt.Print(report.Snapshot.Display.String())
	}
	if err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		logger.Error("Running failed", log.Err(err))
		os.Exit(1)
	}
}

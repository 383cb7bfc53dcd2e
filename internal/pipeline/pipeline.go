// Package pipeline orchestrates the workflow stages of a run.
package pipeline

import (
	"context"
	"fmt"

	"github.com/retroenv/chip8vm/internal/app"
	"github.com/retroenv/chip8vm/internal/detector"
	"github.com/retroenv/chip8vm/internal/loader"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/runner"
	"github.com/retroenv/chip8vm/internal/verification"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete run workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new run pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
	}
}

// Execute runs the complete pipeline: detect the system, load the ROM file,
// run it and verify the final display.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, runOpts options.Runner) (*runner.Report, error) {
	system, err := p.detector.Detect(opts)
	if err != nil {
		return nil, fmt.Errorf("detecting system: %w", err)
	}

	program, err := p.loader.Load(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("loading ROM: %w", err)
	}

	return p.ExecuteWithProgram(ctx, program, opts, runOpts, system)
}

// ExecuteWithProgram runs the pipeline with a pre-loaded program image.
// This is useful for testing and programmatic usage where the program is already in memory.
func (p *Pipeline) ExecuteWithProgram(ctx context.Context, program []byte, opts options.Program,
	runOpts options.Runner, system arch.System) (*runner.Report, error) {

	app.PrintInfo(p.logger, opts, runOpts, system, len(program))

	report, err := runner.New(p.logger, runOpts).Run(ctx, program)
	if report == nil {
		return nil, err
	}
	app.PrintReport(p.logger, opts, report)
	if err != nil {
		return report, err
	}

	if err := verification.VerifyDisplay(p.logger, runOpts, report); err != nil {
		return report, fmt.Errorf("verification failed: %w", err)
	}
	if runOpts.HasExpectation {
		p.logger.Info("Verification successful")
	}

	return report, nil
}


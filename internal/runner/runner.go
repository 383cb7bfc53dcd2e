// Package runner implements the headless host loop that drives a CPU at a
// configured instruction rate.
package runner

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/retroenv/chip8vm/internal/config"
	"github.com/retroenv/chip8vm/internal/cpu"
	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// StopReason describes why a run ended.
type StopReason string

// Reasons for the end of a run.
const (
	StopCycles   StopReason = "cycle limit reached"
	StopDuration StopReason = "run time elapsed"
	StopIdle     StopReason = "program is idle"
	StopCanceled StopReason = "canceled"
	StopError    StopReason = "error"
)

// Report contains the result of a run.
type Report struct {
	Reason     StopReason
	Cycles     uint64          // successfully executed instructions
	Skipped    int             // invalid instructions continued over by policy
	TimerTicks int             // elapsed 60 Hz timer intervals
	Addresses  set.Set[uint16] // addresses of executed instructions
	Snapshot   machine.Snapshot
	Digest     uint32 // CRC-32 of the final display
}

// Runner executes a program on a fresh machine.
type Runner struct {
	logger *log.Logger
	opts   options.Runner
	now    func() time.Time
}

// New creates a new runner.
func New(logger *log.Logger, opts options.Runner) *Runner {
	return &Runner{
		logger: logger,
		opts:   opts,
		now:    time.Now,
	}
}

// Run loads the program at the program start address and executes it until
// a configured limit is reached, the program idles, the context is canceled
// or a step fails. The report is returned in all cases where the program
// could be loaded.
func (r *Runner) Run(ctx context.Context, program []byte) (*Report, error) {
	state := machine.New()
	if err := state.Load(program, machine.ProgramStart); err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}

	c := cpu.New(state, config.CreateCPUConfig(r.logger, r.opts))
	report := &Report{
		Addresses: set.New[uint16](),
	}

	err := r.loop(ctx, c, report)

	report.Cycles = c.Cycles()
	report.Snapshot = state.Snapshot()
	report.Digest = report.Snapshot.Display.Digest()

	r.logger.Debug("Run finished",
		log.String("reason", string(report.Reason)),
		log.Int("cycles", int(report.Cycles)),
		log.Int("timerTicks", report.TimerTicks),
		log.Int("addresses", len(report.Addresses)),
		log.Hex("pc", report.Snapshot.PC))

	return report, err
}

func (r *Runner) loop(ctx context.Context, c *cpu.CPU, report *Report) error {
	state := c.State()
	events := slices.Clone(r.opts.KeyEvents)

	start := r.now()
	c.TickTimersAt(start)

	var ticks <-chan time.Time
	if r.opts.Hz > 0 {
		interval := max(time.Second/time.Duration(r.opts.Hz), 1)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		ticks = ticker.C
	}

	for {
		if err := ctx.Err(); err != nil {
			report.Reason = StopCanceled
			return fmt.Errorf("running program: %w", err)
		}
		if r.opts.Cycles > 0 && c.Cycles() >= r.opts.Cycles {
			report.Reason = StopCycles
			return nil
		}
		if r.opts.Duration > 0 && r.now().Sub(start) >= r.opts.Duration {
			report.Reason = StopDuration
			return nil
		}

		events = r.applyKeyEvents(state, events, c.Cycles())

		pc, sp := state.PC, state.SP
		if err := c.Step(); err != nil {
			if err := r.handleStepError(c, err); err != nil {
				report.Reason = StopError
				return fmt.Errorf("running program: %w", err)
			}
			report.Skipped++
		} else {
			report.Addresses.Add(pc)
			if r.opts.StopOnIdle && len(events) == 0 && isIdle(c, pc, sp) {
				report.Reason = StopIdle
				return nil
			}
		}

		report.TimerTicks += c.TickTimersAt(r.now())

		if ticks != nil {
			select {
			case <-ctx.Done():
			case <-ticks:
			}
		}
	}
}

// isIdle returns true if the last executed instruction was a jump to itself.
func isIdle(c *cpu.CPU, pc uint16, sp uint8) bool {
	state := c.State()
	return state.PC == pc && state.SP == sp && !c.WaitingForKey()
}

// applyKeyEvents applies all events that are due at the given cycle and
// returns the remaining ones.
func (r *Runner) applyKeyEvents(state *machine.State, events []options.KeyEvent, cycle uint64) []options.KeyEvent {
	for len(events) > 0 && events[0].Cycle <= cycle {
		event := events[0]
		events = events[1:]

		if err := state.SetKey(event.Key, event.Pressed); err != nil {
			r.logger.Warn("Ignoring key event", log.Err(err))
			continue
		}
		action := "release"
		if event.Pressed {
			action = "press"
		}
		r.logger.Debug("Key event",
			log.Uint8("key", event.Key),
			log.String("action", action),
			log.Int("cycle", int(cycle)))
	}
	return events
}

// handleStepError applies the invalid instruction policy. It returns nil if
// the run continues with the next instruction.
func (r *Runner) handleStepError(c *cpu.CPU, err error) error {
	if !errors.Is(err, cpu.ErrInvalidInstruction) {
		return err
	}

	switch r.opts.Invalid {
	case options.InvalidIgnore:
	case options.InvalidLog:
		var insErr *cpu.InstructionError
		if errors.As(err, &insErr) {
			r.logger.Warn("Skipping invalid instruction",
				log.Hex("address", insErr.Address),
				log.Hex("opcode", insErr.Opcode))
		}
	default:
		return err
	}

	c.SkipInstruction()
	return nil
}

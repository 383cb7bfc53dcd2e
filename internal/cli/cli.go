// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/retroenv/chip8vm/internal/cpu"
	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/chip8vm/internal/options"
)

// ParseFlags parses command line flags and returns program and runner options
func ParseFlags() (options.Program, options.Runner, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, options.Runner{}, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, options.Runner{}, err
	}

	if len(args) > 0 {
		opts.Input = args[0]
	}

	runnerOptions, err := createRunnerOptions(opts)
	if err != nil {
		return opts, options.Runner{}, err
	}

	return opts, runnerOptions, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: chip8vm [options] <rom file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// createRunnerOptions creates runner options based on program options
func createRunnerOptions(opts options.Program) (options.Runner, error) {
	runnerOptions := options.NewRunner()

	if opts.Hz < 0 || opts.Hz > options.MaxHz {
		return runnerOptions, fmt.Errorf("invalid instruction rate %d, valid range is 0 to %d", opts.Hz, options.MaxHz)
	}
	if opts.Duration < 0 {
		return runnerOptions, fmt.Errorf("invalid run duration %s", opts.Duration)
	}
	runnerOptions.Hz = opts.Hz
	runnerOptions.Cycles = opts.Cycles
	runnerOptions.Duration = opts.Duration
	runnerOptions.Seed = opts.Seed
	runnerOptions.Trace = opts.Trace

	policy, err := options.ParseInvalidPolicy(opts.Invalid)
	if err != nil {
		return runnerOptions, err
	}
	runnerOptions.Invalid = policy

	if opts.Legacy {
		runnerOptions.Quirks = cpu.LegacyQuirks()
	}

	events, err := parseKeyScript(opts.Keys)
	if err != nil {
		return runnerOptions, fmt.Errorf("parsing key script: %w", err)
	}
	runnerOptions.KeyEvents = events

	if opts.Expect != "" {
		digest, err := parseDigest(opts.Expect)
		if err != nil {
			return runnerOptions, err
		}
		runnerOptions.ExpectDigest = digest
		runnerOptions.HasExpectation = true
	}

	return runnerOptions, nil
}

// parseKeyScript parses a comma separated list of key events. Every event
// has the format <key>@<cycle> for a press or <key>-@<cycle> for a release,
// the key is a hexadecimal keypad digit.
func parseKeyScript(script string) ([]options.KeyEvent, error) {
	if script == "" {
		return nil, nil
	}

	var events []options.KeyEvent
	for entry := range strings.SplitSeq(script, ",") {
		entry = strings.TrimSpace(entry)
		keyPart, cyclePart, found := strings.Cut(entry, "@")
		if !found {
			return nil, fmt.Errorf("missing cycle in key event '%s'", entry)
		}

		pressed := true
		if strings.HasSuffix(keyPart, "-") {
			pressed = false
			keyPart = strings.TrimSuffix(keyPart, "-")
		}

		key, err := strconv.ParseUint(keyPart, 16, 8)
		if err != nil || key >= machine.KeyCount {
			return nil, fmt.Errorf("invalid key '%s' in key event '%s'", keyPart, entry)
		}
		cycle, err := strconv.ParseUint(cyclePart, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid cycle '%s' in key event '%s'", cyclePart, entry)
		}

		events = append(events, options.KeyEvent{
			Cycle:   cycle,
			Key:     uint8(key),
			Pressed: pressed,
		})
	}

	slices.SortStableFunc(events, func(a, b options.KeyEvent) int {
		switch {
		case a.Cycle < b.Cycle:
			return -1
		case a.Cycle > b.Cycle:
			return 1
		default:
			return 0
		}
	})
	return events, nil
}

// parseDigest parses a hexadecimal CRC-32 value with optional 0x or $ prefix.
func parseDigest(s string) (uint32, error) {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(s), "0x"), "$")
	digest, err := strconv.ParseUint(trimmed, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid display digest '%s': %w", s, err)
	}
	return uint32(digest), nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.System, "s", "", "system of the ROM (chip8) - if not auto-detected from file extension")
	flags.IntVar(&opts.Hz, "hz", 700, "instructions executed per second, 0 runs unthrottled")
	flags.Uint64Var(&opts.Cycles, "cycles", 0, "stop after this many executed instructions, 0 runs until interrupted")
	flags.DurationVar(&opts.Duration, "duration", 0, "stop after this much run time, for example 5s")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 uses a time based seed")
	flags.StringVar(&opts.Keys, "keys", "", "key script of presses and releases at cycle numbers, for example 5@100,5-@200")
	flags.StringVar(&opts.Expect, "expect", "", "expected CRC-32 of the final display in hex, the run fails on a mismatch")
	flags.StringVar(&opts.Invalid, "invalid", string(options.InvalidHalt), "invalid instruction policy (halt/log/ignore)")
	flags.BoolVar(&opts.Dump, "dump", false, "print the final display to stdout")
	flags.BoolVar(&opts.Legacy, "legacy", false, "use the instruction quirks of the COSMAC VIP interpreter")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, requires -debug")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}

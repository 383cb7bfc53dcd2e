// Package options contains the program options.
package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/retroenv/chip8vm/internal/cpu"
)

// InvalidPolicy defines how the runner treats instruction words that do not
// decode to a known instruction.
type InvalidPolicy string

// Supported invalid instruction policies.
const (
	InvalidHalt   InvalidPolicy = "halt"   // stop the run with an error
	InvalidLog    InvalidPolicy = "log"    // log a warning and continue
	InvalidIgnore InvalidPolicy = "ignore" // continue silently
)

// ParseInvalidPolicy returns the policy for the given name.
func ParseInvalidPolicy(name string) (InvalidPolicy, error) {
	policy := InvalidPolicy(strings.ToLower(name))
	switch policy {
	case InvalidHalt, InvalidLog, InvalidIgnore:
		return policy, nil
	case "":
		return InvalidHalt, nil
	default:
		return "", fmt.Errorf("unsupported invalid instruction policy '%s'. Valid options: %s, %s, %s",
			name, InvalidHalt, InvalidLog, InvalidIgnore)
	}
}

// MaxHz is the highest instruction rate that the runner can pace, one
// instruction per nanosecond.
const MaxHz = int(time.Second)

// KeyEvent presses or releases a key of the keypad once the given number of
// cycles has been executed.
type KeyEvent struct {
	Cycle   uint64
	Key     uint8
	Pressed bool
}

// Parameters contains file path and run limit options.
type Parameters struct {
	Input    string        `flag:"i" usage:"input ROM file"`
	System   string        `flag:"s" usage:"target system: chip8 (default: auto-detect)"`
	Hz       int           `flag:"hz" usage:"instructions per second, 0 runs unthrottled" default:"700"`
	Cycles   uint64        `flag:"cycles" usage:"stop after this many executed instructions"`
	Duration time.Duration `flag:"duration" usage:"stop after this much run time"`
	Seed     uint64        `flag:"seed" usage:"seed of the random number generator (default: time based)"`
	Keys     string        `flag:"keys" usage:"key script, for example 5@100,5-@200"`
	Expect   string        `flag:"expect" usage:"expected CRC-32 of the final display in hex"`
	Invalid  string        `flag:"invalid" usage:"invalid instruction policy: halt, log, ignore" default:"halt"`
}

// Flags contains behavior options.
type Flags struct {
	Dump   bool `flag:"dump" usage:"print the final display to stdout"`
	Legacy bool `flag:"legacy" usage:"use the COSMAC VIP instruction quirks"`
	Trace  bool `flag:"trace" usage:"log every executed instruction, requires -debug"`
	Debug  bool `flag:"debug" usage:"enable debug logging"`
	Quiet  bool `flag:"q" usage:"quiet mode"`
}

// Program options of the virtual machine.
type Program struct {
	Parameters
	Flags
}

// Runner defines options to control a headless run.
type Runner struct {
	Hz       int           // instructions per second, 0 runs unthrottled
	Cycles   uint64        // maximum executed instructions, 0 is unlimited
	Duration time.Duration // maximum run time, 0 is unlimited
	Seed     uint64        // random seed, 0 selects a time based seed

	KeyEvents      []KeyEvent // sorted by cycle
	Invalid        InvalidPolicy
	Quirks         cpu.Quirks
	StopOnIdle     bool   // stop when the program jumps to itself
	ExpectDigest   uint32 // expected display digest, checked if HasExpectation is set
	HasExpectation bool
	Trace          bool
}

// NewRunner returns a new runner options instance with default options.
func NewRunner() Runner {
	return Runner{
		Hz:         700,
		Invalid:    InvalidHalt,
		StopOnIdle: true,
	}
}

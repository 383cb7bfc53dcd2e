// Package cpu implements the CHIP-8 execution unit and cycle driver.
//
// A CPU borrows a machine.State and advances it one instruction per Step.
// Step never blocks: the block-until-keypress instruction is modelled as a
// pending wait that re-executes the same instruction on every step until a
// key transition is observed. Timers are decoupled from the instruction rate
// and are advanced from elapsed wall-clock time by TickTimersAt or
// AdvanceTimers.
package cpu

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/retroenv/chip8vm/internal/arch/chip8"
	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/retrogolib/log"
)

// DefaultTimerInterval is the 60 Hz delay and sound timer period.
const DefaultTimerInterval = time.Second / 60

// ErrInvalidInstruction is returned when an instruction word does not
// classify as a known instruction.
var ErrInvalidInstruction = errors.New("invalid instruction")

// InstructionError describes a failed step. It wraps ErrInvalidInstruction
// or the machine error that prevented the instruction from executing.
type InstructionError struct {
	Address uint16
	Opcode  uint16
	Kind    chip8.Kind
	Fetch   bool // the instruction word itself could not be read
	Err     error
}

func (e *InstructionError) Error() string {
	if e.Fetch {
		return fmt.Sprintf("fetching instruction at $%03X: %v", e.Address, e.Err)
	}
	return fmt.Sprintf("executing %s ($%04X) at $%03X: %v", e.Kind, e.Opcode, e.Address, e.Err)
}

func (e *InstructionError) Unwrap() error {
	return e.Err
}

// Config defines options to control the CPU.
type Config struct {
	Quirks        Quirks
	TimerInterval time.Duration // defaults to DefaultTimerInterval
	Rand          *rand.Rand    // random source, time seeded if nil
	Logger        *log.Logger
	Trace         bool // log every executed instruction at debug level
}

// CPU executes instructions on a machine state.
type CPU struct {
	state  *machine.State
	quirks Quirks
	rand   *rand.Rand
	logger *log.Logger
	trace  bool

	keyWait *keyWait
	timer   timerClock
	cycles  uint64
}

// New returns a CPU that operates on the given machine state.
func New(state *machine.State, cfg Config) *CPU {
	interval := cfg.TimerInterval
	if interval <= 0 {
		interval = DefaultTimerInterval
	}
	rnd := cfg.Rand
	if rnd == nil {
		seed := uint64(time.Now().UnixNano())
		rnd = rand.New(rand.NewPCG(seed, seed>>1))
	}

	return &CPU{
		state:  state,
		quirks: cfg.Quirks,
		rand:   rnd,
		logger: cfg.Logger,
		trace:  cfg.Trace && cfg.Logger != nil,
		timer:  timerClock{interval: interval},
	}
}

// State returns the machine state the CPU operates on.
func (c *CPU) State() *machine.State {
	return c.state
}

// Cycles returns the number of successfully executed steps.
func (c *CPU) Cycles() uint64 {
	return c.cycles
}

// WaitingForKey returns true while a block-until-keypress instruction is
// pending.
func (c *CPU) WaitingForKey() bool {
	return c.keyWait != nil
}

// Reset resets the machine state and all pending CPU state.
func (c *CPU) Reset() {
	c.state.Reset()
	c.keyWait = nil
	c.timer.reset()
	c.cycles = 0
}

// Step fetches, decodes and executes one instruction and advances the
// program counter. On error the machine state is left unchanged.
func (c *CPU) Step() error {
	pc := c.state.PC
	word, err := c.state.ReadWord(pc)
	if err != nil {
		return &InstructionError{Address: pc, Fetch: true, Err: err}
	}

	ins := chip8.Decode(word)
	if c.trace {
		c.logger.Debug("Executing",
			log.Hex("address", pc),
			log.Hex("opcode", word),
			log.String("instruction", ins.String()))
	}

	next, err := c.execute(pc, ins)
	if err != nil {
		return &InstructionError{Address: pc, Opcode: word, Kind: ins.Kind, Err: err}
	}

	switch next {
	case advance:
		c.state.PC = pc + chip8.OpcodeSize
	case skip:
		c.state.PC = pc + 2*chip8.OpcodeSize
	case stall, transfer:
	}

	c.cycles++
	return nil
}

// SkipInstruction advances the program counter past the current
// instruction. Hosts use it to treat an invalid instruction as a no-op.
func (c *CPU) SkipInstruction() {
	c.keyWait = nil
	c.state.PC += chip8.OpcodeSize
}

// Cycle executes one step and then applies the timer ticks that are due at
// the given time.
func (c *CPU) Cycle(now time.Time) error {
	if err := c.Step(); err != nil {
		return err
	}
	c.TickTimersAt(now)
	return nil
}

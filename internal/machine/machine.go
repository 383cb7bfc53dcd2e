// Package machine contains the CHIP-8 machine state: registers, memory,
// call stack, timers, keypad and display buffer.
//
// The state is owned by a single interpreter that mutates it one complete
// instruction at a time. Hosts may set key states and read snapshots between
// steps but never write registers, memory, stack or program counter directly.
package machine

import (
	"errors"
	"fmt"
)

// CHIP-8 memory map (4KB total):
//
//	0x000-0x1FF: Interpreter and font data (512 bytes)
//	0x200-0xFFF: User program space (3584 bytes)
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 0x1000

	// ProgramStart is the memory address where programs are loaded and
	// execution begins.
	ProgramStart = 0x200

	// RegisterCount is the number of general purpose registers V0-VF.
	RegisterCount = 16

	// FlagRegister is the index of VF, the carry, borrow and collision flag.
	FlagRegister = 0xF

	// StackDepth is the maximum number of nested subroutine calls.
	StackDepth = 16

	// KeyCount is the number of keys of the hexadecimal keypad.
	KeyCount = 16
)

var (
	ErrStackOverflow      = errors.New("stack overflow")
	ErrStackUnderflow     = errors.New("stack underflow")
	ErrAddressOutOfBounds = errors.New("address out of bounds")
	ErrProgramTooLarge    = errors.New("program too large")
	ErrInvalidKey         = errors.New("invalid key")
)

// State is the complete CHIP-8 machine state.
type State struct {
	V          [RegisterCount]uint8 // general purpose registers, VF doubles as flag
	I          uint16               // index register
	PC         uint16               // address of the next instruction
	SP         uint8                // index of the next free stack slot
	DelayTimer uint8
	SoundTimer uint8

	stack   [StackDepth]uint16
	memory  [MemorySize]byte
	keys    [KeyCount]bool
	display Display
}

// New returns a machine state in its reset state.
func New() *State {
	s := &State{}
	s.Reset()
	return s
}

// Reset clears registers, memory, stack, timers, keypad and display, writes
// the built-in font and sets the program counter to ProgramStart.
func (s *State) Reset() {
	*s = State{}
	s.PC = ProgramStart
	copy(s.memory[FontAddress:], font[:])
}

// Load copies a program image into memory starting at the given address.
// Memory is left untouched if the image does not fit.
func (s *State) Load(data []byte, address uint16) error {
	if int(address)+len(data) > MemorySize {
		return fmt.Errorf("%w: %d bytes at $%03X exceed memory of %d bytes",
			ErrProgramTooLarge, len(data), address, MemorySize)
	}
	copy(s.memory[address:], data)
	return nil
}

// SetKey sets the pressed state of a keypad key.
func (s *State) SetKey(key uint8, pressed bool) error {
	if key >= KeyCount {
		return fmt.Errorf("%w: %d", ErrInvalidKey, key)
	}
	s.keys[key] = pressed
	return nil
}

// KeyPressed returns whether the key is pressed. Only the low nibble of the
// key value selects the key.
func (s *State) KeyPressed(key uint8) bool {
	return s.keys[key&0x0F]
}

// Keys returns a copy of the keypad state.
func (s *State) Keys() [KeyCount]bool {
	return s.keys
}

// TickTimers decrements the delay and sound timers by one if non-zero.
func (s *State) TickTimers() {
	if s.DelayTimer > 0 {
		s.DelayTimer--
	}
	if s.SoundTimer > 0 {
		s.SoundTimer--
	}
}

// SoundActive returns true while the sound timer is non-zero.
func (s *State) SoundActive() bool {
	return s.SoundTimer != 0
}

// Push pushes a return address onto the call stack.
func (s *State) Push(address uint16) error {
	if s.SP >= StackDepth {
		return fmt.Errorf("%w: depth %d reached", ErrStackOverflow, StackDepth)
	}
	s.stack[s.SP] = address
	s.SP++
	return nil
}

// Pop removes and returns the most recent return address from the call stack.
func (s *State) Pop() (uint16, error) {
	if s.SP == 0 {
		return 0, ErrStackUnderflow
	}
	s.SP--
	return s.stack[s.SP], nil
}

// Stack returns a copy of the active stack frames, oldest first.
func (s *State) Stack() []uint16 {
	frames := make([]uint16, s.SP)
	copy(frames, s.stack[:s.SP])
	return frames
}

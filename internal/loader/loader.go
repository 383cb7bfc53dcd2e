// Package loader handles ROM file loading operations.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/retrogolib/arch/system/nes/cartridge"
)

// ErrEmptyProgram is returned for ROM images without any data.
var ErrEmptyProgram = errors.New("empty program")

// MaxProgramSize is the largest program image that fits into memory above
// the program start address.
const MaxProgramSize = machine.MemorySize - machine.ProgramStart

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the raw program image of the given ROM file.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("reading file info %s: %w", path, err)
	}

	return l.read(file, info.Size())
}

// LoadFromBytes returns the program image of ROM data that is already in memory.
func (l *Loader) LoadFromBytes(data []byte) ([]byte, error) {
	return l.read(bytes.NewReader(data), int64(len(data)))
}

// read parses a raw image of the given size. The cartridge buffer is padded
// to a full bank, the padding is cut off again.
func (l *Loader) read(reader io.Reader, size int64) ([]byte, error) {
	if size == 0 {
		return nil, ErrEmptyProgram
	}
	if size > MaxProgramSize {
		return nil, fmt.Errorf("%w: %d bytes exceed the available %d bytes",
			machine.ErrProgramTooLarge, size, MaxProgramSize)
	}

	cart, err := cartridge.LoadBuffer(reader)
	if err != nil {
		return nil, fmt.Errorf("loading cartridge: %w", err)
	}
	if int64(len(cart.PRG)) < size {
		return nil, fmt.Errorf("loading cartridge: read %d of %d bytes", len(cart.PRG), size)
	}

	program := make([]byte, size)
	copy(program, cart.PRG)
	return program, nil
}

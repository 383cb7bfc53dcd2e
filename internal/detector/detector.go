// Package detector handles system architecture detection.
package detector

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// ErrUnsupportedSystem is returned for ROMs of systems the virtual machine
// can not run.
var ErrUnsupportedSystem = errors.New("unsupported system")

// Detector handles system architecture detection from file extensions and options.
type Detector struct {
	logger *log.Logger
}

// New creates a new system detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the system architecture from options or file auto-detection
// and returns an error if the system can not be run.
func (d *Detector) Detect(opts options.Program) (arch.System, error) {
	system := d.detect(opts)
	if system != arch.CHIP8System {
		return system, fmt.Errorf("%w '%s'", ErrUnsupportedSystem, system)
	}
	return system, nil
}

func (d *Detector) detect(opts options.Program) arch.System {
	if opts.System != "" {
		system, _ := arch.SystemFromString(opts.System)
		if system == "" {
			return arch.System(opts.System)
		}
		return system
	}

	system := d.detectFromFile(opts.Input)
	d.logger.Debug("Auto-detected system",
		log.Stringer("system", system),
		log.String("file", opts.Input))
	return system
}

// detectFromFile determines the system type based on file extension.
func (d *Detector) detectFromFile(filename string) arch.System {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".nes":
		return arch.NES
	default:
		// .ch8, .c8, .rom and raw images without a known header
		return arch.CHIP8System
	}
}

// Package verification verifies that a run produced the expected display.
package verification

import (
	"errors"
	"fmt"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/runner"
	"github.com/retroenv/retrogolib/log"
)

// ErrDisplayMismatch is returned when the final display differs from the
// expected one.
var ErrDisplayMismatch = errors.New("display mismatch")

// VerifyDisplay compares the digest of the final display of a run against the
// expected digest. It does nothing if no expectation is configured.
func VerifyDisplay(logger *log.Logger, opts options.Runner, report *runner.Report) error {
	if !opts.HasExpectation {
		return nil
	}

	if report.Digest != opts.ExpectDigest {
		logger.Error("Final display differs",
			log.String("expected", fmt.Sprintf("%08x", opts.ExpectDigest)),
			log.String("actual", fmt.Sprintf("%08x", report.Digest)))
		logger.Debug("Final display\n" + report.Snapshot.Display.String())
		return fmt.Errorf("%w: expected %08x, got %08x", ErrDisplayMismatch, opts.ExpectDigest, report.Digest)
	}
	return nil
}

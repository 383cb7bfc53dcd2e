package runner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/retroenv/chip8vm/internal/cpu"
	"github.com/retroenv/chip8vm/internal/machine"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func encode(words ...uint16) []byte {
	data := make([]byte, 0, len(words)*2)
	for _, w := range words {
		data = append(data, byte(w>>8), byte(w))
	}
	return data
}

// newTestRunner returns an unthrottled runner whose clock advances by step
// on every read.
func newTestRunner(t *testing.T, opts options.Runner, step time.Duration) *Runner {
	t.Helper()

	opts.Hz = 0
	if opts.Seed == 0 {
		opts.Seed = 1
	}
	r := New(log.NewTestLogger(t), opts)

	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time {
		clock = clock.Add(step)
		return clock
	}
	return r
}

func TestRun_StopConditions(t *testing.T) {
	t.Run("idle loop", func(t *testing.T) {
		r := newTestRunner(t, options.NewRunner(), time.Millisecond)

		report, err := r.Run(t.Context(), encode(0x6005, 0xF015, 0x1204))
		assert.NoError(t, err)
		assert.Equal(t, StopIdle, report.Reason)
		assert.Equal(t, uint64(3), report.Cycles)
		assert.Len(t, report.Addresses, 3)
		assert.True(t, report.Addresses.Contains(0x204))
		assert.Equal(t, uint16(0x204), report.Snapshot.PC)
	})

	t.Run("cycle limit", func(t *testing.T) {
		opts := options.NewRunner()
		opts.Cycles = 10
		r := newTestRunner(t, opts, time.Millisecond)

		report, err := r.Run(t.Context(), encode(0x7001, 0x1200))
		assert.NoError(t, err)
		assert.Equal(t, StopCycles, report.Reason)
		assert.Equal(t, uint64(10), report.Cycles)
		assert.Equal(t, uint8(5), report.Snapshot.V[0])
	})

	t.Run("run time", func(t *testing.T) {
		opts := options.NewRunner()
		opts.Duration = 50 * time.Millisecond
		r := newTestRunner(t, opts, time.Millisecond)

		report, err := r.Run(t.Context(), encode(0x7001, 0x1200))
		assert.NoError(t, err)
		assert.Equal(t, StopDuration, report.Reason)
		assert.True(t, report.Cycles > 0)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		r := newTestRunner(t, options.NewRunner(), time.Millisecond)

		report, err := r.Run(ctx, encode(0x7001, 0x1200))
		assert.True(t, errors.Is(err, context.Canceled))
		assert.NotNil(t, report)
		assert.Equal(t, StopCanceled, report.Reason)
		assert.Equal(t, uint64(0), report.Cycles)
	})

	t.Run("idle detection disabled", func(t *testing.T) {
		opts := options.NewRunner()
		opts.StopOnIdle = false
		opts.Cycles = 25
		r := newTestRunner(t, opts, time.Millisecond)

		report, err := r.Run(t.Context(), encode(0x1200))
		assert.NoError(t, err)
		assert.Equal(t, StopCycles, report.Reason)
		assert.Len(t, report.Addresses, 1)
	})
}

func TestRun_InvalidInstructionPolicy(t *testing.T) {
	tests := []struct {
		name    string
		policy  options.InvalidPolicy
		wantErr bool
	}{
		{"halt", options.InvalidHalt, true},
		{"log", options.InvalidLog, false},
		{"ignore", options.InvalidIgnore, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := options.NewRunner()
			opts.Invalid = tt.policy
			r := newTestRunner(t, opts, time.Millisecond)

			report, err := r.Run(t.Context(), encode(0x0000, 0x6107, 0x1204))
			assert.NotNil(t, report)

			if tt.wantErr {
				assert.True(t, errors.Is(err, cpu.ErrInvalidInstruction))
				assert.Equal(t, StopError, report.Reason)
				assert.Equal(t, uint16(machine.ProgramStart), report.Snapshot.PC)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, StopIdle, report.Reason)
			assert.Equal(t, 1, report.Skipped)
			assert.Equal(t, uint8(7), report.Snapshot.V[1])
			assert.False(t, report.Addresses.Contains(machine.ProgramStart))
		})
	}
}

func TestRun_MachineErrorsAlwaysHalt(t *testing.T) {
	opts := options.NewRunner()
	opts.Invalid = options.InvalidIgnore
	r := newTestRunner(t, opts, time.Millisecond)

	report, err := r.Run(t.Context(), encode(0x2200))
	assert.True(t, errors.Is(err, machine.ErrStackOverflow))
	assert.Equal(t, StopError, report.Reason)
	assert.Equal(t, uint64(machine.StackDepth), report.Cycles)

	var insErr *cpu.InstructionError
	assert.True(t, errors.As(err, &insErr))
	assert.Equal(t, uint16(machine.ProgramStart), insErr.Address)
}

func TestRun_ProgramTooLarge(t *testing.T) {
	r := newTestRunner(t, options.NewRunner(), time.Millisecond)

	report, err := r.Run(t.Context(), make([]byte, machine.MemorySize))
	assert.True(t, errors.Is(err, machine.ErrProgramTooLarge))
	assert.True(t, report == nil)
}

func TestRun_KeyScript(t *testing.T) {
	opts := options.NewRunner()
	opts.KeyEvents = []options.KeyEvent{
		{Cycle: 3, Key: 7, Pressed: true},
	}
	r := newTestRunner(t, opts, time.Millisecond)

	// ld V3, K; jp self
	report, err := r.Run(t.Context(), encode(0xF30A, 0x1202))
	assert.NoError(t, err)
	assert.Equal(t, StopIdle, report.Reason)
	assert.Equal(t, uint8(7), report.Snapshot.V[3])
	assert.True(t, report.Snapshot.Keys[7])
	assert.Equal(t, uint64(5), report.Cycles)
}

func TestRun_InvalidKeyEventIsIgnored(t *testing.T) {
	opts := options.NewRunner()
	opts.KeyEvents = []options.KeyEvent{
		{Cycle: 0, Key: 0x10, Pressed: true},
	}
	r := newTestRunner(t, opts, time.Millisecond)

	report, err := r.Run(t.Context(), encode(0x1200))
	assert.NoError(t, err)
	assert.Equal(t, StopIdle, report.Reason)
}

func TestRun_Timers(t *testing.T) {
	opts := options.NewRunner()
	opts.Cycles = 20
	r := newTestRunner(t, opts, cpu.DefaultTimerInterval)

	// ld V0, $FF; ld DT, V0; loop: add V1, 1; jp loop
	report, err := r.Run(t.Context(), encode(0x60FF, 0xF015, 0x7101, 0x1204))
	assert.NoError(t, err)
	assert.Equal(t, 20, report.TimerTicks)
	assert.Equal(t, uint8(0xFF-19), report.Snapshot.DelayTimer)
}

func TestRun_DisplayDigest(t *testing.T) {
	r := newTestRunner(t, options.NewRunner(), time.Millisecond)

	// ld V0, $A; ld F, V0; drw V1, V1, 5; jp self
	report, err := r.Run(t.Context(), encode(0x600A, 0xF029, 0xD115, 0x1206))
	assert.NoError(t, err)
	assert.True(t, report.Snapshot.Display.Pixel(0, 0))
	assert.Equal(t, report.Snapshot.Display.Digest(), report.Digest)
	assert.True(t, report.Digest != machine.Display{}.Digest())
}

func TestRun_SeededRandomIsDeterministic(t *testing.T) {
	opts := options.NewRunner()
	opts.Seed = 1234
	program := encode(0xC0FF, 0xC1FF, 0xC2FF, 0x1206)

	first, err := newTestRunner(t, opts, time.Millisecond).Run(t.Context(), program)
	assert.NoError(t, err)
	second, err := newTestRunner(t, opts, time.Millisecond).Run(t.Context(), program)
	assert.NoError(t, err)

	assert.Equal(t, first.Snapshot.V, second.Snapshot.V)
}

func TestRun_Throttled(t *testing.T) {
	opts := options.NewRunner()
	opts.Hz = 1000
	opts.Cycles = 5
	r := New(log.NewTestLogger(t), opts)

	report, err := r.Run(t.Context(), encode(0x7001, 0x1200))
	assert.NoError(t, err)
	assert.Equal(t, StopCycles, report.Reason)
	assert.Equal(t, uint64(5), report.Cycles)
}

func TestRun_RateAboveTickerResolution(t *testing.T) {
	opts := options.NewRunner()
	opts.Hz = 2 * options.MaxHz
	opts.Cycles = 5
	r := New(log.NewTestLogger(t), opts)

	report, err := r.Run(t.Context(), encode(0x7001, 0x1200))
	assert.NoError(t, err)
	assert.Equal(t, StopCycles, report.Reason)
	assert.Equal(t, uint64(5), report.Cycles)
}

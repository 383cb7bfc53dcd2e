package cpu

import "time"

// maxTimerTicks bounds the decrements applied at once, after this many ticks
// both 8-bit timers are zero.
const maxTimerTicks = 0xFF

// timerClock converts elapsed wall-clock time into whole timer ticks.
type timerClock struct {
	interval time.Duration
	pending  time.Duration
	last     time.Time
}

func (t *timerClock) reset() {
	t.pending = 0
	t.last = time.Time{}
}

// TickTimersAt applies the timer ticks for the time elapsed since the
// previous call. The first call only records the reference time.
// It returns the number of elapsed tick intervals.
func (c *CPU) TickTimersAt(now time.Time) int {
	if c.timer.last.IsZero() {
		c.timer.last = now
		return 0
	}
	elapsed := now.Sub(c.timer.last)
	c.timer.last = now
	return c.AdvanceTimers(elapsed)
}

// AdvanceTimers accounts elapsed time and decrements the delay and sound
// timers once for every full tick interval. Partial intervals carry over to
// the next call. It returns the number of elapsed tick intervals.
func (c *CPU) AdvanceTimers(elapsed time.Duration) int {
	if elapsed <= 0 {
		return 0
	}

	c.timer.pending += elapsed
	ticks := int(c.timer.pending / c.timer.interval)
	c.timer.pending -= time.Duration(ticks) * c.timer.interval

	for range min(ticks, maxTimerTicks) {
		c.state.TickTimers()
	}
	return ticks
}

package cpu

import "github.com/retroenv/chip8vm/internal/machine"

// keyWait is the pending state of a block-until-keypress instruction.
type keyWait struct {
	address  uint16                  // address of the waiting instruction
	released [machine.KeyCount]bool // keys seen released since the wait began
}

// waitKey executes FX0A. The first execution records which keys are
// released and stalls. Following executions resume as soon as one of those
// keys is pressed and store its index in VX. Keys held down when the wait
// began count only after they have been released.
func (c *CPU) waitKey(pc uint16, x uint8) flow {
	keys := c.state.Keys()

	if c.keyWait == nil || c.keyWait.address != pc {
		c.keyWait = &keyWait{address: pc}
		for key, pressed := range keys {
			c.keyWait.released[key] = !pressed
		}
		return stall
	}

	for key, pressed := range keys {
		if pressed && c.keyWait.released[key] {
			c.state.V[x] = uint8(key)
			c.keyWait = nil
			return advance
		}
		if !pressed {
			c.keyWait.released[key] = true
		}
	}
	return stall
}

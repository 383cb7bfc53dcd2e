package cpu

import (
	"fmt"

	"github.com/retroenv/chip8vm/internal/arch/chip8"
	"github.com/retroenv/chip8vm/internal/machine"
)

// flow tells the cycle driver how to update the program counter after an
// instruction was executed.
type flow uint8

const (
	advance  flow = iota // continue with the next instruction
	skip                 // skip the next instruction
	transfer             // the instruction set the program counter itself
	stall                // re-execute the same instruction on the next step
)

const vf = machine.FlagRegister

// execute applies the state transition of a decoded instruction located at
// pc. Preconditions are checked before any state is modified, so a returned
// error leaves the machine state untouched.
func (c *CPU) execute(pc uint16, ins chip8.Instruction) (flow, error) {
	s := c.state
	op := ins.Operands
	x, y := op.RegX(), op.RegY()

	switch ins.Kind {
	case chip8.ClearScreen:
		s.ClearDisplay()

	case chip8.Return:
		address, err := s.Pop()
		if err != nil {
			return advance, err
		}
		s.PC = address
		return transfer, nil

	case chip8.Jump:
		s.PC = op.Addr12()
		return transfer, nil

	case chip8.Call:
		if err := s.Push(pc + chip8.OpcodeSize); err != nil {
			return advance, err
		}
		s.PC = op.Addr12()
		return transfer, nil

	case chip8.JumpIndexed:
		return c.jumpIndexed(op)

	case chip8.SkipEqualImmediate:
		return skipIf(s.V[x] == op.Imm8()), nil
	case chip8.SkipNotEqualImmediate:
		return skipIf(s.V[x] != op.Imm8()), nil
	case chip8.SkipEqualRegisters:
		return skipIf(s.V[x] == s.V[y]), nil
	case chip8.SkipNotEqualRegisters:
		return skipIf(s.V[x] != s.V[y]), nil
	case chip8.SkipKeyPressed:
		return skipIf(s.KeyPressed(s.V[x])), nil
	case chip8.SkipKeyNotPressed:
		return skipIf(!s.KeyPressed(s.V[x])), nil

	case chip8.LoadImmediate:
		s.V[x] = op.Imm8()
	case chip8.AddImmediate:
		s.V[x] += op.Imm8()

	case chip8.Copy, chip8.Or, chip8.And, chip8.Xor, chip8.AddCarry,
		chip8.SubtractBorrow, chip8.ShiftRight, chip8.ReverseSubtractBorrow, chip8.ShiftLeft:
		c.alu(ins.Kind, x, y)

	case chip8.LoadIndex:
		s.I = op.Addr12()
	case chip8.AddIndex:
		index, err := offsetIndex(s.I, uint32(s.V[x]))
		if err != nil {
			return advance, err
		}
		s.I = index
	case chip8.LoadFontGlyph:
		s.I = machine.GlyphAddress(s.V[x])

	case chip8.RandomMask:
		s.V[x] = uint8(c.rand.Uint32()) & op.Imm8()

	case chip8.DrawSprite:
		collision, err := s.DrawSprite(s.V[x], s.V[y], s.I, int(op.Nibble4()))
		if err != nil {
			return advance, err
		}
		s.V[vf] = boolToFlag(collision)

	case chip8.LoadFromDelayTimer:
		s.V[x] = s.DelayTimer
	case chip8.SetDelayTimer:
		s.DelayTimer = s.V[x]
	case chip8.SetSoundTimer:
		s.SoundTimer = s.V[x]

	case chip8.WaitKey:
		return c.waitKey(pc, x), nil

	case chip8.StoreBCD:
		v := s.V[x]
		return advance, s.WriteBytes(s.I, []byte{v / 100, v / 10 % 10, v % 10})
	case chip8.StoreRegisters:
		return advance, c.storeRegisters(x)
	case chip8.LoadRegisters:
		return advance, c.loadRegisters(x)

	default:
		return advance, ErrInvalidInstruction
	}

	return advance, nil
}

// alu executes the 8XYN register arithmetic and logic group. The result is
// written before the flag, so VF holds the flag when it is also the target.
func (c *CPU) alu(kind chip8.Kind, x, y uint8) {
	v := &c.state.V
	vx, vy := v[x], v[y]

	switch kind {
	case chip8.Copy:
		v[x] = vy

	case chip8.Or, chip8.And, chip8.Xor:
		switch kind {
		case chip8.Or:
			v[x] = vx | vy
		case chip8.And:
			v[x] = vx & vy
		default:
			v[x] = vx ^ vy
		}
		if c.quirks.ResetVFOnLogic {
			v[vf] = 0
		}

	case chip8.AddCarry:
		sum := uint16(vx) + uint16(vy)
		v[x] = uint8(sum)
		v[vf] = boolToFlag(sum > 0xFF)

	case chip8.SubtractBorrow:
		v[x] = vx - vy
		v[vf] = boolToFlag(vx >= vy)

	case chip8.ReverseSubtractBorrow:
		v[x] = vy - vx
		v[vf] = boolToFlag(vy >= vx)

	case chip8.ShiftRight:
		src := c.shiftSource(vx, vy)
		v[x] = src >> 1
		v[vf] = src & 0x01

	case chip8.ShiftLeft:
		src := c.shiftSource(vx, vy)
		v[x] = src << 1
		v[vf] = src >> 7
	}
}

func (c *CPU) shiftSource(vx, vy uint8) uint8 {
	if c.quirks.ShiftUsesVY {
		return vy
	}
	return vx
}

// jumpIndexed executes BNNN, the target has to be inside memory.
func (c *CPU) jumpIndexed(op chip8.Operands) (flow, error) {
	base := c.state.V[0]
	if c.quirks.JumpUsesVX {
		base = c.state.V[op.RegX()]
	}

	target := uint32(base) + uint32(op.Addr12())
	if target >= machine.MemorySize {
		return advance, fmt.Errorf("%w: jump target $%04X", machine.ErrAddressOutOfBounds, target)
	}
	c.state.PC = uint16(target)
	return transfer, nil
}

// storeRegisters writes V0..VX to memory starting at I.
func (c *CPU) storeRegisters(x uint8) error {
	s := c.state
	index, err := c.indexAfterTransfer(x)
	if err != nil {
		return err
	}
	if err := s.WriteBytes(s.I, s.V[:x+1]); err != nil {
		return err
	}
	s.I = index
	return nil
}

// loadRegisters reads V0..VX from memory starting at I.
func (c *CPU) loadRegisters(x uint8) error {
	s := c.state
	index, err := c.indexAfterTransfer(x)
	if err != nil {
		return err
	}
	data, err := s.ReadBytes(s.I, int(x)+1)
	if err != nil {
		return err
	}
	copy(s.V[:], data)
	s.I = index
	return nil
}

// indexAfterTransfer returns the value of I after a register transfer of
// V0..VX, which only changes with the LoadStoreIncrementsI quirk.
func (c *CPU) indexAfterTransfer(x uint8) (uint16, error) {
	if !c.quirks.LoadStoreIncrementsI {
		return c.state.I, nil
	}
	return offsetIndex(c.state.I, uint32(x)+1)
}

// offsetIndex adds offset to the index register value. Results above the
// memory size are kept and fail on the next access, results that do not fit
// into the 16-bit register are an error.
func offsetIndex(index uint16, offset uint32) (uint16, error) {
	sum := uint32(index) + offset
	if sum > 0xFFFF {
		return 0, fmt.Errorf("%w: index $%04X + $%02X overflows", machine.ErrAddressOutOfBounds, index, offset)
	}
	return uint16(sum), nil
}

func skipIf(condition bool) flow {
	if condition {
		return skip
	}
	return advance
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

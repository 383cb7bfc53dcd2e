package chip8

// OpcodeSize is the size of every CHIP-8 instruction in bytes.
const OpcodeSize = 2

// Instruction is a classified instruction word together with its operands.
type Instruction struct {
	Word     uint16
	Kind     Kind
	Operands Operands
}

// Decode classifies the given instruction word and exposes its operands.
func Decode(word uint16) Instruction {
	return Instruction{
		Word:     word,
		Kind:     Classify(word),
		Operands: Operands(word),
	}
}

// DecodeBytes decodes an instruction from its two big-endian bytes.
func DecodeBytes(high, low byte) Instruction {
	return Decode(uint16(high)<<8 | uint16(low))
}

// Classify maps a raw instruction word to its instruction kind.
// Words that match no defined pattern return Unknown.
func Classify(word uint16) Kind {
	op := Operands(word)

	switch op.group() {
	case 0x0:
		switch word {
		case 0x00E0:
			return ClearScreen
		case 0x00EE:
			return Return
		}
	case 0x1:
		return Jump
	case 0x2:
		return Call
	case 0x3:
		return SkipEqualImmediate
	case 0x4:
		return SkipNotEqualImmediate
	case 0x5:
		if op.Nibble4() == 0 {
			return SkipEqualRegisters
		}
	case 0x6:
		return LoadImmediate
	case 0x7:
		return AddImmediate
	case 0x8:
		return classifyALU(op.Nibble4())
	case 0x9:
		if op.Nibble4() == 0 {
			return SkipNotEqualRegisters
		}
	case 0xA:
		return LoadIndex
	case 0xB:
		return JumpIndexed
	case 0xC:
		return RandomMask
	case 0xD:
		return DrawSprite
	case 0xE:
		switch op.Imm8() {
		case 0x9E:
			return SkipKeyPressed
		case 0xA1:
			return SkipKeyNotPressed
		}
	case 0xF:
		return classifyMisc(op.Imm8())
	}
	return Unknown
}

// classifyALU handles the 8XYN register arithmetic group.
func classifyALU(n uint8) Kind {
	switch n {
	case 0x0:
		return Copy
	case 0x1:
		return Or
	case 0x2:
		return And
	case 0x3:
		return Xor
	case 0x4:
		return AddCarry
	case 0x5:
		return SubtractBorrow
	case 0x6:
		return ShiftRight
	case 0x7:
		return ReverseSubtractBorrow
	case 0xE:
		return ShiftLeft
	default:
		return Unknown
	}
}

// classifyMisc handles the FXNN timer, keypad and memory group.
func classifyMisc(nn uint8) Kind {
	switch nn {
	case 0x07:
		return LoadFromDelayTimer
	case 0x0A:
		return WaitKey
	case 0x15:
		return SetDelayTimer
	case 0x18:
		return SetSoundTimer
	case 0x1E:
		return AddIndex
	case 0x29:
		return LoadFontGlyph
	case 0x33:
		return StoreBCD
	case 0x55:
		return StoreRegisters
	case 0x65:
		return LoadRegisters
	default:
		return Unknown
	}
}

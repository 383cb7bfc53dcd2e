package chip8

// Operands exposes the addressing fields of a raw instruction word.
// All views are pure bit extractions, any word is valid to decode.
type Operands uint16

// Addr12 returns the low 12 bits, the target address of jump, call and
// index load instructions.
func (o Operands) Addr12() uint16 {
	return uint16(o) & 0x0FFF
}

// Imm8 returns the low 8 bits, an immediate byte.
func (o Operands) Imm8() uint8 {
	return uint8(o & 0x00FF)
}

// Nibble4 returns the low 4 bits, a sub-opcode or a row count.
func (o Operands) Nibble4() uint8 {
	return uint8(o & 0x000F)
}

// RegX returns the first register operand index from bits 8-11.
func (o Operands) RegX() uint8 {
	return uint8((o & 0x0F00) >> 8)
}

// RegY returns the second register operand index from bits 4-7.
func (o Operands) RegY() uint8 {
	return uint8((o & 0x00F0) >> 4)
}

// group returns the leading nibble that selects the instruction group.
func (o Operands) group() uint8 {
	return uint8((o & 0xF000) >> 12)
}

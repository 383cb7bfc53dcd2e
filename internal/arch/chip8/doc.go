// Package chip8 provides CHIP-8 instruction decoding for the interpreter.
//
// # Instruction Format
//
// Every CHIP-8 instruction is a big-endian 16-bit word. The leading nibble
// selects an instruction group, the remaining 12 bits carry the operands:
//
//	NNN: 12-bit address (Addr12)
//	NN:  8-bit immediate (Imm8)
//	N:   4-bit count or sub-opcode (Nibble4)
//	X:   first register index, bits 8-11 (RegX)
//	Y:   second register index, bits 4-7 (RegY)
//
// # Classification
//
// Classify maps a word to exactly one Kind of a closed set. Groups 0x0, 0x8,
// 0xE and 0xF are disambiguated by the low byte or low nibble. Words that fit
// no defined pattern classify as Unknown; this is not an error by itself, the
// execution unit reports it when such an instruction is executed.
//
// # Mnemonics
//
// Mnemonic returns the assembly name of an instruction word and
// Instruction.String renders a decoded instruction in assembly notation. Both
// use the mnemonic names of the retrogolib CHIP-8 opcode table.
//
// # Usage Example
//
//	ins := chip8.Decode(0x8124)
//	if ins.Kind == chip8.AddCarry {
//		x, y := ins.Operands.RegX(), ins.Operands.RegY()
//		...
//	}
package chip8

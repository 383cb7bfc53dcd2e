package chip8

import (
	"fmt"

	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// fallbackMnemonics is used for kinds that the retrogolib opcode table does
// not resolve.
var fallbackMnemonics = [kindCount]string{
	ClearScreen:           "cls",
	Return:                "ret",
	Jump:                  "jp",
	Call:                  "call",
	SkipEqualImmediate:    "se",
	SkipNotEqualImmediate: "sne",
	SkipEqualRegisters:    "se",
	LoadImmediate:         "ld",
	AddImmediate:          "add",
	Copy:                  "ld",
	Or:                    "or",
	And:                   "and",
	Xor:                   "xor",
	AddCarry:              "add",
	SubtractBorrow:        "sub",
	ShiftRight:            "shr",
	ReverseSubtractBorrow: "subn",
	ShiftLeft:             "shl",
	SkipNotEqualRegisters: "sne",
	LoadIndex:             "ld",
	JumpIndexed:           "jp",
	RandomMask:            "rnd",
	DrawSprite:            "drw",
	SkipKeyPressed:        "skp",
	SkipKeyNotPressed:     "sknp",
	LoadFromDelayTimer:    "ld",
	WaitKey:               "ld",
	SetDelayTimer:         "ld",
	SetSoundTimer:         "ld",
	AddIndex:              "add",
	LoadFontGlyph:         "ld",
	StoreBCD:              "ld",
	StoreRegisters:        "ld",
	LoadRegisters:         "ld",
}

// lookupOpcode finds the retrogolib opcode table entry matching the word.
func lookupOpcode(word uint16) (chip8cpu.Opcode, bool) {
	firstNibble := (word & 0xF000) >> 12
	opcodes := chip8cpu.Opcodes[int(firstNibble)]
	for _, op := range opcodes {
		if op.Info.Mask&word == op.Info.Value {
			return op, op.Instruction != nil
		}
	}
	return chip8cpu.Opcode{}, false
}

// Mnemonic returns the assembly mnemonic of the instruction word or an empty
// string for words that classify as Unknown.
func Mnemonic(word uint16) string {
	kind := Classify(word)
	if kind == Unknown {
		return ""
	}
	if op, ok := lookupOpcode(word); ok {
		return op.Instruction.Name
	}
	return fallbackMnemonics[kind]
}

// String returns the instruction in assembly notation.
func (i Instruction) String() string {
	name := Mnemonic(i.Word)
	if name == "" {
		return fmt.Sprintf(".byte $%02X, $%02X", i.Word>>8, i.Word&0xFF)
	}
	if params := i.formatParams(); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// formatParams formats the operands of the instruction.
func (i Instruction) formatParams() string {
	op := i.Operands
	x, y := op.RegX(), op.RegY()

	switch i.Kind {
	case Jump, Call:
		return fmt.Sprintf("$%03X", op.Addr12())
	case JumpIndexed:
		return fmt.Sprintf("V0, $%03X", op.Addr12())
	case LoadIndex:
		return fmt.Sprintf("I, $%03X", op.Addr12())
	case SkipEqualImmediate, SkipNotEqualImmediate, LoadImmediate, AddImmediate, RandomMask:
		return fmt.Sprintf("V%X, $%02X", x, op.Imm8())
	case SkipEqualRegisters, SkipNotEqualRegisters, Copy, Or, And, Xor,
		AddCarry, SubtractBorrow, ReverseSubtractBorrow:
		return fmt.Sprintf("V%X, V%X", x, y)
	case ShiftRight, ShiftLeft, SkipKeyPressed, SkipKeyNotPressed:
		return fmt.Sprintf("V%X", x)
	case DrawSprite:
		return fmt.Sprintf("V%X, V%X, $%X", x, y, op.Nibble4())
	case LoadFromDelayTimer:
		return fmt.Sprintf("V%X, DT", x)
	case WaitKey:
		return fmt.Sprintf("V%X, K", x)
	case SetDelayTimer:
		return fmt.Sprintf("DT, V%X", x)
	case SetSoundTimer:
		return fmt.Sprintf("ST, V%X", x)
	case AddIndex:
		return fmt.Sprintf("I, V%X", x)
	case LoadFontGlyph:
		return fmt.Sprintf("F, V%X", x)
	case StoreBCD:
		return fmt.Sprintf("B, V%X", x)
	case StoreRegisters:
		return fmt.Sprintf("[I], V%X", x)
	case LoadRegisters:
		return fmt.Sprintf("V%X, [I]", x)
	default:
		return ""
	}
}

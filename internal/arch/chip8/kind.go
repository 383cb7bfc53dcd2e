package chip8

// Kind identifies an instruction of the closed CHIP-8 instruction set.
type Kind uint8

// Instruction kinds. Unknown is the zero value so that an unset Kind never
// executes as a valid instruction.
const (
	Unknown               Kind = iota // no defined pattern matched
	ClearScreen                       // 00E0
	Return                            // 00EE
	Jump                              // 1NNN
	Call                              // 2NNN
	SkipEqualImmediate                // 3XNN
	SkipNotEqualImmediate             // 4XNN
	SkipEqualRegisters                // 5XY0
	LoadImmediate                     // 6XNN
	AddImmediate                      // 7XNN
	Copy                              // 8XY0
	Or                                // 8XY1
	And                               // 8XY2
	Xor                               // 8XY3
	AddCarry                          // 8XY4
	SubtractBorrow                    // 8XY5
	ShiftRight                        // 8XY6
	ReverseSubtractBorrow             // 8XY7
	ShiftLeft                         // 8XYE
	SkipNotEqualRegisters             // 9XY0
	LoadIndex                         // ANNN
	JumpIndexed                       // BNNN
	RandomMask                        // CXNN
	DrawSprite                        // DXYN
	SkipKeyPressed                    // EX9E
	SkipKeyNotPressed                 // EXA1
	LoadFromDelayTimer                // FX07
	WaitKey                           // FX0A
	SetDelayTimer                     // FX15
	SetSoundTimer                     // FX18
	AddIndex                          // FX1E
	LoadFontGlyph                     // FX29
	StoreBCD                          // FX33
	StoreRegisters                    // FX55
	LoadRegisters                     // FX65

	kindCount
)

// KindCount is the number of instruction kinds including Unknown.
const KindCount = int(kindCount)

var kindNames = [kindCount]string{
	Unknown:               "unknown",
	ClearScreen:           "clear-screen",
	Return:                "return",
	Jump:                  "jump",
	Call:                  "call",
	SkipEqualImmediate:    "skip-if-equal-immediate",
	SkipNotEqualImmediate: "skip-if-not-equal-immediate",
	SkipEqualRegisters:    "skip-if-registers-equal",
	LoadImmediate:         "load-immediate",
	AddImmediate:          "add-immediate",
	Copy:                  "register-copy",
	Or:                    "bitwise-or",
	And:                   "bitwise-and",
	Xor:                   "bitwise-xor",
	AddCarry:              "register-add-with-carry",
	SubtractBorrow:        "register-subtract-with-borrow",
	ShiftRight:            "shift-right",
	ReverseSubtractBorrow: "reverse-subtract-with-borrow",
	ShiftLeft:             "shift-left",
	SkipNotEqualRegisters: "skip-if-registers-not-equal",
	LoadIndex:             "load-index",
	JumpIndexed:           "jump-indexed",
	RandomMask:            "random-and-mask",
	DrawSprite:            "draw-sprite",
	SkipKeyPressed:        "skip-if-key-pressed",
	SkipKeyNotPressed:     "skip-if-key-not-pressed",
	LoadFromDelayTimer:    "load-register-from-delay-timer",
	WaitKey:               "block-until-keypress",
	SetDelayTimer:         "load-delay-timer",
	SetSoundTimer:         "load-sound-timer",
	AddIndex:              "add-to-index",
	LoadFontGlyph:         "load-index-to-font-glyph",
	StoreBCD:              "store-bcd-digits",
	StoreRegisters:        "dump-registers-to-memory",
	LoadRegisters:         "load-registers-from-memory",
}

// String returns the descriptive name of the kind.
func (k Kind) String() string {
	if k >= kindCount {
		return kindNames[Unknown]
	}
	return kindNames[k]
}

// IsSkip returns true if the instruction conditionally skips the next instruction.
func (k Kind) IsSkip() bool {
	switch k {
	case SkipEqualImmediate, SkipNotEqualImmediate, SkipEqualRegisters,
		SkipNotEqualRegisters, SkipKeyPressed, SkipKeyNotPressed:
		return true
	default:
		return false
	}
}

// SetsProgramCounter returns true if the instruction determines the next
// program counter itself, suppressing the default advance.
func (k Kind) SetsProgramCounter() bool {
	switch k {
	case Return, Jump, Call, JumpIndexed:
		return true
	default:
		return false
	}
}

package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestOperands(t *testing.T) {
	op := Operands(0xD3A7)

	assert.Equal(t, uint16(0x3A7), op.Addr12())
	assert.Equal(t, uint8(0xA7), op.Imm8())
	assert.Equal(t, uint8(0x7), op.Nibble4())
	assert.Equal(t, uint8(0x3), op.RegX())
	assert.Equal(t, uint8(0xA), op.RegY())
	assert.Equal(t, uint8(0xD), op.group())
}

func TestOperands_RegisterRange(t *testing.T) {
	for word := 0; word <= 0xFFFF; word += 0x0111 {
		op := Operands(word)
		assert.True(t, op.RegX() <= 0xF)
		assert.True(t, op.RegY() <= 0xF)
		assert.True(t, op.Nibble4() <= 0xF)
		assert.True(t, op.Addr12() <= 0xFFF)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		word uint16
		kind Kind
	}{
		{0x00E0, ClearScreen},
		{0x00EE, Return},
		{0x1234, Jump},
		{0x2ABC, Call},
		{0x3A12, SkipEqualImmediate},
		{0x4B34, SkipNotEqualImmediate},
		{0x5120, SkipEqualRegisters},
		{0x6CFF, LoadImmediate},
		{0x7D01, AddImmediate},
		{0x8120, Copy},
		{0x8121, Or},
		{0x8122, And},
		{0x8123, Xor},
		{0x8124, AddCarry},
		{0x8125, SubtractBorrow},
		{0x8126, ShiftRight},
		{0x8127, ReverseSubtractBorrow},
		{0x812E, ShiftLeft},
		{0x9120, SkipNotEqualRegisters},
		{0xA222, LoadIndex},
		{0xB300, JumpIndexed},
		{0xC40F, RandomMask},
		{0xD125, DrawSprite},
		{0xE59E, SkipKeyPressed},
		{0xE6A1, SkipKeyNotPressed},
		{0xF707, LoadFromDelayTimer},
		{0xF80A, WaitKey},
		{0xF915, SetDelayTimer},
		{0xFA18, SetSoundTimer},
		{0xFB1E, AddIndex},
		{0xFC29, LoadFontGlyph},
		{0xFD33, StoreBCD},
		{0xFE55, StoreRegisters},
		{0xFF65, LoadRegisters},

		// invalid patterns
		{0x0000, Unknown},
		{0x0123, Unknown},
		{0x00E1, Unknown},
		{0x5121, Unknown},
		{0x8128, Unknown},
		{0x812F, Unknown},
		{0x912F, Unknown},
		{0xE19F, Unknown},
		{0xF000, Unknown},
		{0xF1FF, Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.kind, Classify(tt.word), "word %04X", tt.word)
		})
	}
}

func TestClassify_CoversAllKinds(t *testing.T) {
	seen := make(map[Kind]bool)
	for word := 0; word <= 0xFFFF; word++ {
		seen[Classify(uint16(word))] = true
	}
	assert.Equal(t, KindCount, len(seen))
	assert.Equal(t, 35, KindCount)
}

func TestDecodeBytes(t *testing.T) {
	ins := DecodeBytes(0x81, 0x24)

	assert.Equal(t, uint16(0x8124), ins.Word)
	assert.Equal(t, AddCarry, ins.Kind)
	assert.Equal(t, uint8(1), ins.Operands.RegX())
	assert.Equal(t, uint8(2), ins.Operands.RegY())
}

func TestKind_Predicates(t *testing.T) {
	tests := []struct {
		kind     Kind
		skip     bool
		setsPC   bool
		expected string
	}{
		{SkipEqualImmediate, true, false, "skip-if-equal-immediate"},
		{SkipKeyNotPressed, true, false, "skip-if-key-not-pressed"},
		{Jump, false, true, "jump"},
		{Call, false, true, "call"},
		{Return, false, true, "return"},
		{JumpIndexed, false, true, "jump-indexed"},
		{DrawSprite, false, false, "draw-sprite"},
		{Unknown, false, false, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.skip, tt.kind.IsSkip())
			assert.Equal(t, tt.setsPC, tt.kind.SetsProgramCounter())
			assert.Equal(t, tt.expected, tt.kind.String())
		})
	}

	assert.Equal(t, "unknown", Kind(200).String())
}

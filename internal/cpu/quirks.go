package cpu

// Quirks selects between historical behaviors of the instruction set.
// The zero value is the common modern convention.
type Quirks struct {
	ShiftUsesVY          bool // 8XY6/8XYE shift VY and store the result in VX
	LoadStoreIncrementsI bool // FX55/FX65 leave I pointing past the last register
	JumpUsesVX           bool // BXNN jumps to VX + XNN instead of V0 + NNN
	ResetVFOnLogic       bool // 8XY1/8XY2/8XY3 clear VF
}

// LegacyQuirks returns the behavior of the original COSMAC VIP interpreter.
func LegacyQuirks() Quirks {
	return Quirks{
		ShiftUsesVY:          true,
		LoadStoreIncrementsI: true,
		ResetVFOnLogic:       true,
	}
}

package machine

// Snapshot is a consistent copy of the machine state taken between steps.
type Snapshot struct {
	V          [RegisterCount]uint8
	I          uint16
	PC         uint16
	SP         uint8
	Stack      []uint16
	DelayTimer uint8
	SoundTimer uint8
	Keys       [KeyCount]bool
	Display    Display
}

// Snapshot returns a copy of the observable machine state.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		V:          s.V,
		I:          s.I,
		PC:         s.PC,
		SP:         s.SP,
		Stack:      s.Stack(),
		DelayTimer: s.DelayTimer,
		SoundTimer: s.SoundTimer,
		Keys:       s.keys,
		Display:    s.display,
	}
}

// SoundActive returns true while the sound timer of the snapshot is non-zero.
func (s Snapshot) SoundActive() bool {
	return s.SoundTimer != 0
}

package machine

import "fmt"

// checkRange verifies that n bytes starting at address are inside memory.
func checkRange(address uint16, n int) error {
	if int(address)+n > MemorySize {
		return fmt.Errorf("%w: $%04X+%d", ErrAddressOutOfBounds, address, n)
	}
	return nil
}

// ReadByte reads a byte from memory.
func (s *State) ReadByte(address uint16) (byte, error) {
	if err := checkRange(address, 1); err != nil {
		return 0, err
	}
	return s.memory[address], nil
}

// WriteByte writes a byte to memory.
func (s *State) WriteByte(address uint16, value byte) error {
	if err := checkRange(address, 1); err != nil {
		return err
	}
	s.memory[address] = value
	return nil
}

// ReadWord reads a big-endian 16-bit word.
func (s *State) ReadWord(address uint16) (uint16, error) {
	if err := checkRange(address, 2); err != nil {
		return 0, err
	}
	return uint16(s.memory[address])<<8 | uint16(s.memory[address+1]), nil
}

// ReadBytes returns a copy of n bytes starting at address.
func (s *State) ReadBytes(address uint16, n int) ([]byte, error) {
	if err := checkRange(address, n); err != nil {
		return nil, err
	}
	data := make([]byte, n)
	copy(data, s.memory[address:])
	return data, nil
}

// WriteBytes writes all bytes starting at address. Nothing is written if
// the range does not fit into memory.
func (s *State) WriteBytes(address uint16, data []byte) error {
	if err := checkRange(address, len(data)); err != nil {
		return err
	}
	copy(s.memory[address:], data)
	return nil
}

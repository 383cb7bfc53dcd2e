package machine

import (
	"hash/crc32"
	"strings"
)

const (
	// DisplayWidth is the display width in pixels.
	DisplayWidth = 64

	// DisplayHeight is the display height in pixels.
	DisplayHeight = 32

	displayPitch = DisplayWidth / 8
)

// Display is a monochrome 64x32 pixel buffer. Each row is packed into bytes,
// most significant bit first, so pixel (0,0) is bit 0x80 of the first byte.
// Display is a value type, copies are independent snapshots.
type Display [DisplayHeight][displayPitch]byte

// Pixel returns whether the pixel at the given position is set.
// Coordinates wrap around the display edges.
func (d Display) Pixel(x, y int) bool {
	x, y = wrap(x, DisplayWidth), wrap(y, DisplayHeight)
	return d[y][x/8]&(0x80>>(x%8)) != 0
}

// Clear turns all pixels off.
func (d *Display) Clear() {
	*d = Display{}
}

// xorSprite XORs the sprite rows onto the display at the given position.
// Every pixel wraps around the display edges. It returns true if any set
// pixel was cleared.
func (d *Display) xorSprite(x, y int, rows []byte) bool {
	collision := false
	for row, data := range rows {
		py := wrap(y+row, DisplayHeight)
		for col := range 8 {
			if data&(0x80>>col) == 0 {
				continue
			}
			px := wrap(x+col, DisplayWidth)
			mask := byte(0x80 >> (px % 8))
			if d[py][px/8]&mask != 0 {
				collision = true
			}
			d[py][px/8] ^= mask
		}
	}
	return collision
}

// Bytes returns the packed display buffer, row by row.
func (d Display) Bytes() []byte {
	buf := make([]byte, 0, DisplayHeight*displayPitch)
	for _, row := range d {
		buf = append(buf, row[:]...)
	}
	return buf
}

// Digest returns a CRC-32 checksum of the packed display buffer.
func (d Display) Digest() uint32 {
	crc32q := crc32.MakeTable(crc32.IEEE)
	return crc32.Checksum(d.Bytes(), crc32q)
}

// String renders the display as text, one line per row, using '#' for set
// and '.' for cleared pixels.
func (d Display) String() string {
	var sb strings.Builder
	sb.Grow(DisplayHeight * (DisplayWidth + 1))
	for y := range DisplayHeight {
		for x := range DisplayWidth {
			if d.Pixel(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func wrap(v, size int) int {
	v %= size
	if v < 0 {
		v += size
	}
	return v
}

// ClearDisplay turns all display pixels off.
func (s *State) ClearDisplay() {
	s.display.Clear()
}

// DrawSprite XORs rows bytes of sprite data read from address onto the
// display at position x, y. It returns true if a set pixel was cleared.
// The display is not modified if the sprite data range is out of bounds.
func (s *State) DrawSprite(x, y uint8, address uint16, rows int) (bool, error) {
	if err := checkRange(address, rows); err != nil {
		return false, err
	}
	sprite := s.memory[address : int(address)+rows]
	return s.display.xorSprite(int(x), int(y), sprite), nil
}

// Display returns a snapshot of the display buffer.
func (s *State) Display() Display {
	return s.display
}

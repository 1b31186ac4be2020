// This file is part of kdump.
//
// kdump is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// kdump is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with kdump.  If not, see <https://www.gnu.org/licenses/>.

package cursor

import (
	"encoding/binary"
	"math"

	"github.com/jetsetilly/kdump/curated"
)

// UnexpectedEndOfInput is the sentinel pattern for reads beyond the end of
// the buffer. The values are the number of bytes requested and the offset of
// the read.
const UnexpectedEndOfInput = "unexpected end of input: %d byte(s) at offset %#x"

// UnsupportedWidth is the sentinel pattern for a variable width read of a
// width other than 1 to 4 bytes.
const UnsupportedWidth = "unsupported index width (%d)"

// Cursor reads sequentially from a byte buffer.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor is the preferred method of initialisation for the Cursor type.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Pos returns the offset of the next byte to be read.
func (c *Cursor) Pos() int {
	return c.pos
}

// Len returns the length of the underlying buffer.
func (c *Cursor) Len() int {
	return len(c.data)
}

// Remaining returns the number of bytes not yet read.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.pos
}

// EOF returns true if every byte in the buffer has been read.
func (c *Cursor) EOF() bool {
	return c.pos >= len(c.data)
}

func (c *Cursor) check(n int) error {
	if n < 0 || c.pos+n > len(c.data) {
		return curated.Errorf(UnexpectedEndOfInput, n, c.pos)
	}
	return nil
}

// Next returns the next byte and advances the cursor.
func (c *Cursor) Next() (byte, error) {
	if err := c.check(1); err != nil {
		return 0, err
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

// Peek returns the next byte without advancing the cursor.
func (c *Cursor) Peek() (byte, error) {
	if err := c.check(1); err != nil {
		return 0, err
	}
	return c.data[c.pos], nil
}

// PeekN returns the next n bytes without advancing the cursor. The returned
// slice shares memory with the buffer and must not be modified.
func (c *Cursor) PeekN(n int) ([]byte, error) {
	if err := c.check(n); err != nil {
		return nil, err
	}
	return c.data[c.pos : c.pos+n], nil
}

// PopN returns the next n bytes and advances the cursor. The returned slice
// shares memory with the buffer and must not be modified.
func (c *Cursor) PopN(n int) ([]byte, error) {
	b, err := c.PeekN(n)
	if err != nil {
		return nil, err
	}
	c.pos += n
	return b, nil
}

// Skip advances the cursor by n bytes.
func (c *Cursor) Skip(n int) error {
	_, err := c.PopN(n)
	return err
}

// Expect reads len(seq) bytes and reports whether they match seq. If the
// bytes do not match the cursor is not advanced.
func (c *Cursor) Expect(seq []byte) (bool, error) {
	b, err := c.PeekN(len(seq))
	if err != nil {
		return false, err
	}
	for i := range seq {
		if b[i] != seq[i] {
			return false, nil
		}
	}
	c.pos += len(seq)
	return true, nil
}

// Uint8 reads one byte.
func (c *Cursor) Uint8() (uint8, error) {
	return c.Next()
}

// Int8 reads one signed byte.
func (c *Cursor) Int8() (int8, error) {
	b, err := c.Next()
	return int8(b), err
}

// Uint16LE reads a little-endian unsigned 16 bit value.
func (c *Cursor) Uint16LE() (uint16, error) {
	b, err := c.PopN(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// Uint16BE reads a big-endian unsigned 16 bit value.
func (c *Cursor) Uint16BE() (uint16, error) {
	b, err := c.PopN(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// Int16LE reads a little-endian signed 16 bit value.
func (c *Cursor) Int16LE() (int16, error) {
	v, err := c.Uint16LE()
	return int16(v), err
}

// Int16BE reads a big-endian signed 16 bit value.
func (c *Cursor) Int16BE() (int16, error) {
	v, err := c.Uint16BE()
	return int16(v), err
}

// Uint32LE reads a little-endian unsigned 32 bit value.
func (c *Cursor) Uint32LE() (uint32, error) {
	b, err := c.PopN(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Uint32BE reads a big-endian unsigned 32 bit value.
func (c *Cursor) Uint32BE() (uint32, error) {
	b, err := c.PopN(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// Int32LE reads a little-endian signed 32 bit value.
func (c *Cursor) Int32LE() (int32, error) {
	v, err := c.Uint32LE()
	return int32(v), err
}

// Int32BE reads a big-endian signed 32 bit value.
func (c *Cursor) Int32BE() (int32, error) {
	v, err := c.Uint32BE()
	return int32(v), err
}

// Float32LE reads a little-endian IEEE 754 single precision value.
func (c *Cursor) Float32LE() (float32, error) {
	v, err := c.Uint32LE()
	return math.Float32frombits(v), err
}

// Float32BE reads a big-endian IEEE 754 single precision value.
func (c *Cursor) Float32BE() (float32, error) {
	v, err := c.Uint32BE()
	return math.Float32frombits(v), err
}

// Float64LE reads a little-endian IEEE 754 double precision value.
func (c *Cursor) Float64LE() (float64, error) {
	b, err := c.PopN(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}

// Float64BE reads a big-endian IEEE 754 double precision value.
func (c *Cursor) Float64BE() (float64, error) {
	b, err := c.PopN(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
}

// VarUint reads an unsigned value of 1 to 4 bytes, most significant byte
// first. This is the encoding of pool indices and debug range addresses in
// machine-code files.
func (c *Cursor) VarUint(width int) (uint32, error) {
	if width < 1 || width > 4 {
		return 0, curated.Errorf(UnsupportedWidth, width)
	}
	b, err := c.PopN(width)
	if err != nil {
		return 0, err
	}
	var v uint32
	for _, x := range b {
		v = v<<8 | uint32(x)
	}
	return v, nil
}

// PrefixedString reads a length prefixed string. The length is a single byte and
// each byte of the string is one character.
func (c *Cursor) PrefixedString() (string, error) {
	start := c.pos
	n, err := c.Next()
	if err != nil {
		return "", err
	}
	b, err := c.PopN(int(n))
	if err != nil {
		c.pos = start
		return "", err
	}
	return Latin1(b), nil
}

// Latin1 maps each byte to the character with the same code point.
func Latin1(b []byte) string {
	r := make([]rune, len(b))
	for i := range b {
		r[i] = rune(b[i])
	}
	return string(r)
}

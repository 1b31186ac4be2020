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

package kosvalue

import (
	"encoding/binary"
	"math"

	"github.com/jetsetilly/kdump/curated"
	"github.com/jetsetilly/kdump/cursor"
)

// UnknownConstantType is the sentinel pattern for a tag byte that does not
// name a Type. The values are the tag and the offset of the tag.
const UnknownConstantType = "unknown constant type (%d) at offset %#x"

// StringTooLong is the sentinel pattern for a string that cannot be encoded
// with a single length byte.
const StringTooLong = "string too long to encode (%d characters)"

// Decode a single Value from the cursor. The tag byte is followed by a
// little-endian payload of a length determined by the tag. Returns the value
// and the number of bytes consumed.
func Decode(c *cursor.Cursor) (Value, int, error) {
	start := c.Pos()

	tag, err := c.Next()
	if err != nil {
		return Value{}, 0, err
	}

	typ := Type(tag)
	var v Value

	switch typ {
	case Null:
		v = NewNull()
	case ArgMarker:
		v = NewArgMarker()
	case Bool, BoolValue:
		var b byte
		b, err = c.Next()
		v = NewBool(typ, b != 0)
	case Byte:
		var b int8
		b, err = c.Int8()
		v = NewByte(b)
	case Int16:
		var i int16
		i, err = c.Int16LE()
		v = NewInt16(i)
	case Int32, ScalarInt:
		var i int32
		i, err = c.Int32LE()
		v = NewInt32(typ, i)
	case Float:
		var f float32
		f, err = c.Float32LE()
		v = NewFloat(f)
	case Double, ScalarDouble:
		var f float64
		f, err = c.Float64LE()
		v = NewDouble(typ, f)
	case String, StringValue:
		var s string
		s, err = c.PrefixedString()
		v = NewString(typ, s)
	default:
		return Value{}, 0, curated.Errorf(UnknownConstantType, tag, start)
	}

	if err != nil {
		return Value{}, 0, err
	}

	return v, c.Pos() - start, nil
}

// EncodedLen returns the number of bytes required to encode the Value,
// including the tag byte.
func EncodedLen(v Value) int {
	switch v.typ {
	case Bool, BoolValue, Byte:
		return 2
	case Int16:
		return 3
	case Int32, ScalarInt, Float:
		return 5
	case Double, ScalarDouble:
		return 9
	case String, StringValue:
		return 2 + len([]rune(v.s))
	}
	return 1
}

// Encode a Value. It is the inverse of Decode().
func Encode(v Value) ([]byte, error) {
	b := make([]byte, 1, EncodedLen(v))
	b[0] = byte(v.typ)

	switch v.typ {
	case Null, ArgMarker:
	case Bool, BoolValue:
		if v.b {
			b = append(b, 1)
		} else {
			b = append(b, 0)
		}
	case Byte:
		b = append(b, byte(int8(v.i)))
	case Int16:
		b = binary.LittleEndian.AppendUint16(b, uint16(int16(v.i)))
	case Int32, ScalarInt:
		b = binary.LittleEndian.AppendUint32(b, uint32(v.i))
	case Float:
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(float32(v.f)))
	case Double, ScalarDouble:
		b = binary.LittleEndian.AppendUint64(b, math.Float64bits(v.f))
	case String, StringValue:
		r := []rune(v.s)
		if len(r) > math.MaxUint8 {
			return nil, curated.Errorf(StringTooLong, len(r))
		}
		b = append(b, byte(len(r)))
		for _, c := range r {
			b = append(b, byte(c))
		}
	default:
		return nil, curated.Errorf(UnknownConstantType, v.typ, 0)
	}

	return b, nil
}

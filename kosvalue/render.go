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
	"fmt"
	"strconv"
)

// Radix selects how integers are rendered.
type Radix int

// List of valid Radix values.
const (
	Decimal Radix = iota
	Hex
)

// Render the Value as text. Integers are rendered according to the radix.
// Floating point numbers always show five decimal places and strings are
// rendered verbatim, without quotes. Null and ArgMarker are shown as the
// sentinels "#" and "@".
func Render(v Value, radix Radix) string {
	switch v.typ {
	case Null:
		return "#"
	case ArgMarker:
		return "@"
	case Bool, BoolValue:
		return strconv.FormatBool(v.b)
	case Byte:
		if radix == Hex {
			return fmt.Sprintf("0x%x", uint8(v.i))
		}
	case Int16:
		if radix == Hex {
			return fmt.Sprintf("0x%02x", uint16(v.i))
		}
	case Int32, ScalarInt:
		if radix == Hex {
			return fmt.Sprintf("0x%04x", uint32(v.i))
		}
	case Float, Double, ScalarDouble:
		return fmt.Sprintf("%.5f", v.f)
	case String, StringValue:
		return v.s
	}
	return strconv.FormatInt(int64(v.i), 10)
}

// String implements the fmt.Stringer interface.
func (v Value) String() string {
	return Render(v, Decimal)
}

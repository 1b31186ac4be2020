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

// Package kosvalue implements the tagged constant values found in the
// argument section of machine-code files and in the data sections of object
// files, and the pools that hold them.
package kosvalue

import (
	"math"
	"strings"
)

// Type identifies the variant of a Value. The numeric value of a Type is the
// tag byte used in the encoded form.
type Type uint8

// List of valid Types.
const (
	Null Type = iota
	Bool
	Byte
	Int16
	Int32
	Float
	Double
	String
	ArgMarker
	ScalarInt
	ScalarDouble
	BoolValue
	StringValue

	numTypes
)

var typeNames = [numTypes]string{
	"NULL", "BOOL", "BYTE", "INT16", "INT32", "FLOAT", "DOUBLE", "STRING",
	"ARGMARKER", "SCALARINT", "SCALARDOUBLE", "BOOLVALUE", "STRINGVALUE",
}

func (t Type) String() string {
	if t >= numTypes {
		return "UNKNOWN"
	}
	return typeNames[t]
}

// Valid returns false if the Type is not one of the listed types.
func (t Type) Valid() bool {
	return t < numTypes
}

// Value is an immutable constant. Only the field appropriate to the Type is
// meaningful. Values are comparable with the == operator.
type Value struct {
	typ Type
	b   bool
	i   int32
	f   float64
	s   string
}

// NewNull returns a Value of type Null.
func NewNull() Value {
	return Value{typ: Null}
}

// NewArgMarker returns a Value of type ArgMarker.
func NewArgMarker() Value {
	return Value{typ: ArgMarker}
}

// NewBool returns a Value of type Bool or BoolValue.
func NewBool(typ Type, v bool) Value {
	if typ != BoolValue {
		typ = Bool
	}
	return Value{typ: typ, b: v}
}

// NewByte returns a Value of type Byte.
func NewByte(v int8) Value {
	return Value{typ: Byte, i: int32(v)}
}

// NewInt16 returns a Value of type Int16.
func NewInt16(v int16) Value {
	return Value{typ: Int16, i: int32(v)}
}

// NewInt32 returns a Value of type Int32 or ScalarInt.
func NewInt32(typ Type, v int32) Value {
	if typ != ScalarInt {
		typ = Int32
	}
	return Value{typ: typ, i: v}
}

// NewFloat returns a Value of type Float.
func NewFloat(v float32) Value {
	return Value{typ: Float, f: float64(v)}
}

// NewDouble returns a Value of type Double or ScalarDouble.
func NewDouble(typ Type, v float64) Value {
	if typ != ScalarDouble {
		typ = Double
	}
	return Value{typ: typ, f: v}
}

// NewString returns a Value of type String or StringValue. Characters must
// be in the range 0 to 255.
func NewString(typ Type, v string) Value {
	if typ != StringValue {
		typ = String
	}
	return Value{typ: typ, s: v}
}

// Type returns the variant of the Value.
func (v Value) Type() Type {
	return v.typ
}

// Bool returns the boolean for Bool and BoolValue types.
func (v Value) Bool() bool {
	return v.b
}

// Int returns the integer for Byte, Int16, Int32 and ScalarInt types.
func (v Value) Int() int32 {
	return v.i
}

// Float returns the floating point number for Float, Double and ScalarDouble
// types.
func (v Value) Float() float64 {
	return v.f
}

// Str returns the text for String and StringValue types.
func (v Value) Str() string {
	return v.s
}

// IsString returns true for the String and StringValue types.
func (v Value) IsString() bool {
	return v.typ == String || v.typ == StringValue
}

// IsVariableReference returns true if the value is a string that names a
// variable. Variable names begin with the dollar sign.
func (v Value) IsVariableReference() bool {
	return v.IsString() && strings.HasPrefix(v.s, "$")
}

// Equal is like the == operator except that floating point values are
// compared by bit pattern. This means that NaN values are equal to
// themselves.
func (v Value) Equal(w Value) bool {
	if v.typ != w.typ {
		return false
	}
	switch v.typ {
	case Float, Double, ScalarDouble:
		return math.Float64bits(v.f) == math.Float64bits(w.f)
	}
	return v == w
}

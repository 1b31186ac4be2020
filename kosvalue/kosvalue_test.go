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

package kosvalue_test

import (
	"math"
	"testing"

	"github.com/jetsetilly/kdump/cursor"
	"github.com/jetsetilly/kdump/kosvalue"
	"github.com/jetsetilly/kdump/test"
)

// one value for every variant
var everyVariant = []kosvalue.Value{
	kosvalue.NewNull(),
	kosvalue.NewBool(kosvalue.Bool, true),
	kosvalue.NewByte(-3),
	kosvalue.NewInt16(-1000),
	kosvalue.NewInt32(kosvalue.Int32, 1 << 20),
	kosvalue.NewFloat(2.5),
	kosvalue.NewDouble(kosvalue.Double, math.Pi),
	kosvalue.NewString(kosvalue.String, "print"),
	kosvalue.NewArgMarker(),
	kosvalue.NewInt32(kosvalue.ScalarInt, -7),
	kosvalue.NewDouble(kosvalue.ScalarDouble, -0.125),
	kosvalue.NewBool(kosvalue.BoolValue, false),
	kosvalue.NewString(kosvalue.StringValue, "$x"),
}

func TestRoundTrip(t *testing.T) {
	for _, v := range everyVariant {
		b, err := kosvalue.Encode(v)
		test.DemandSuccess(t, err, v.Type())
		test.ExpectEquality(t, len(b), kosvalue.EncodedLen(v), v.Type())

		c := cursor.NewCursor(b)
		w, n, err := kosvalue.Decode(c)
		test.DemandSuccess(t, err, v.Type())
		test.ExpectEquality(t, n, len(b), v.Type())
		test.ExpectSuccess(t, v.Equal(w), v.Type())
		test.ExpectSuccess(t, c.EOF(), v.Type())
	}
}

func TestUnknownTag(t *testing.T) {
	c := cursor.NewCursor([]byte{0x0d, 0x00})
	_, _, err := kosvalue.Decode(c)
	test.ExpectPattern(t, err, kosvalue.UnknownConstantType)
}

func TestTruncatedPayload(t *testing.T) {
	for _, v := range everyVariant {
		b, err := kosvalue.Encode(v)
		test.DemandSuccess(t, err)
		if len(b) < 2 {
			continue
		}
		_, _, err = kosvalue.Decode(cursor.NewCursor(b[:len(b)-1]))
		test.ExpectPattern(t, err, cursor.UnexpectedEndOfInput, v.Type())
	}
}

func TestPoolIndex(t *testing.T) {
	const base = 3

	var data []byte
	for _, v := range everyVariant {
		b, err := kosvalue.Encode(v)
		test.DemandSuccess(t, err)
		data = append(data, b...)
	}

	p := kosvalue.NewPool(base)
	err := p.DecodeValues(cursor.NewCursor(data), func(_ *cursor.Cursor) bool { return false })
	test.DemandSuccess(t, err)
	test.DemandEquality(t, p.Len(), len(everyVariant))

	// index of value i is the base plus the encoded length of values 0 to i-1
	idx := base
	for i, v := range everyVariant {
		test.ExpectEquality(t, p.Index(i), idx, i)
		w, ok := p.Get(idx)
		test.ExpectSuccess(t, ok, i)
		test.ExpectSuccess(t, v.Equal(w), i)
		idx += kosvalue.EncodedLen(v)
	}

	// an index that falls inside a value is not a reference to any value.
	// everyVariant[4] is an Int32 of five bytes
	_, ok := p.Get(p.Index(4) + 1)
	test.ExpectFailure(t, ok)
	_, ok = p.Get(p.Index(4) + 4)
	test.ExpectFailure(t, ok)

	_, ok = p.At(p.Len())
	test.ExpectFailure(t, ok)
}

func TestPoolStop(t *testing.T) {
	data := []byte{0x02, 0x05, 0x00, '%', 'F'}
	c := cursor.NewCursor(data)

	p := kosvalue.NewPool(0)
	err := p.DecodeValues(c, func(c *cursor.Cursor) bool {
		b, _ := c.Peek()
		return b == '%'
	})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.Len(), 2)
	test.ExpectEquality(t, c.Pos(), 3)
}

func TestRender(t *testing.T) {
	test.ExpectEquality(t, kosvalue.Render(kosvalue.NewNull(), kosvalue.Decimal), "#")
	test.ExpectEquality(t, kosvalue.Render(kosvalue.NewArgMarker(), kosvalue.Decimal), "@")
	test.ExpectEquality(t, kosvalue.Render(kosvalue.NewBool(kosvalue.BoolValue, true), kosvalue.Decimal), "true")
	test.ExpectEquality(t, kosvalue.Render(kosvalue.NewByte(-1), kosvalue.Decimal), "-1")
	test.ExpectEquality(t, kosvalue.Render(kosvalue.NewByte(-1), kosvalue.Hex), "0xff")
	test.ExpectEquality(t, kosvalue.Render(kosvalue.NewInt16(5), kosvalue.Hex), "0x05")
	test.ExpectEquality(t, kosvalue.Render(kosvalue.NewInt32(kosvalue.ScalarInt, 26), kosvalue.Hex), "0x001a")
	test.ExpectEquality(t, kosvalue.Render(kosvalue.NewInt32(kosvalue.Int32, 26), kosvalue.Decimal), "26")
	test.ExpectEquality(t, kosvalue.Render(kosvalue.NewFloat(1.5), kosvalue.Hex), "1.50000")
	test.ExpectEquality(t, kosvalue.Render(kosvalue.NewDouble(kosvalue.ScalarDouble, 1.0/3.0), kosvalue.Decimal), "0.33333")
	test.ExpectEquality(t, kosvalue.Render(kosvalue.NewString(kosvalue.String, "hello"), kosvalue.Decimal), "hello")
}

func TestVariableReference(t *testing.T) {
	test.ExpectSuccess(t, kosvalue.NewString(kosvalue.String, "$x").IsVariableReference())
	test.ExpectSuccess(t, kosvalue.NewString(kosvalue.StringValue, "$").IsVariableReference())
	test.ExpectFailure(t, kosvalue.NewString(kosvalue.String, "x$").IsVariableReference())
	test.ExpectFailure(t, kosvalue.NewInt32(kosvalue.Int32, 36).IsVariableReference())
}

func TestTypeNames(t *testing.T) {
	test.ExpectEquality(t, kosvalue.ScalarDouble.String(), "SCALARDOUBLE")
	test.ExpectEquality(t, kosvalue.StringValue.String(), "STRINGVALUE")
	test.ExpectEquality(t, kosvalue.Type(99).String(), "UNKNOWN")
}

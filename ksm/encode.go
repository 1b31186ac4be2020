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

package ksm

import (
	"bytes"
	"encoding/binary"

	"github.com/jetsetilly/kdump/kosvalue"
)

func putVarUint(b *bytes.Buffer, v uint32, width int) error {
	if width < 4 && v >= 1<<(8*width) {
		return malformed("value %#x does not fit in %d bytes", v, width)
	}
	for i := width - 1; i >= 0; i-- {
		b.WriteByte(byte(v >> (8 * i)))
	}
	return nil
}

// Encode the File in the uncompressed machine-code format. It is the inverse
// of Parse().
func (f *File) Encode() ([]byte, error) {
	if f.IndexWidth < 1 || f.IndexWidth > 4 {
		return nil, malformed("index width of %d bytes", f.IndexWidth)
	}

	var b bytes.Buffer

	b.Write(Magic)
	b.Write(argumentMarker)
	b.WriteByte(byte(f.IndexWidth))

	for _, v := range f.Pool.Values() {
		e, err := kosvalue.Encode(v)
		if err != nil {
			return nil, err
		}
		b.Write(e)
	}

	for _, s := range f.Sections {
		for _, m := range markers[:s.Type+1] {
			b.Write(m)
		}
		for _, ins := range s.Instructions {
			b.WriteByte(ins.Defn.OpCode)
			for _, o := range ins.Operands {
				if err := putVarUint(&b, o, f.IndexWidth); err != nil {
					return nil, err
				}
			}
		}
		for _, m := range markers[s.Type+1:] {
			b.Write(m)
		}
	}

	d := f.Debug
	if d == nil {
		d = &Debug{RangeWidth: f.IndexWidth}
	}
	if d.RangeWidth < 1 || d.RangeWidth > 4 {
		return nil, malformed("range width of %d bytes", d.RangeWidth)
	}

	b.Write(debugMarker)
	b.WriteByte(byte(d.RangeWidth))
	for _, e := range d.Entries {
		b.Write(binary.BigEndian.AppendUint16(nil, uint16(e.Line)))
		if len(e.Ranges) > 255 {
			return nil, malformed("line %d has too many ranges", e.Line)
		}
		b.WriteByte(byte(len(e.Ranges)))
		for _, r := range e.Ranges {
			if err := putVarUint(&b, r.Start, d.RangeWidth); err != nil {
				return nil, err
			}
			if err := putVarUint(&b, r.End, d.RangeWidth); err != nil {
				return nil, err
			}
		}
	}

	return b.Bytes(), nil
}

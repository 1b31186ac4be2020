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

package ko

import (
	"bytes"
	"encoding/binary"

	"github.com/jetsetilly/kdump/kosvalue"
)

func le16(v uint16) []byte {
	return binary.LittleEndian.AppendUint16(nil, v)
}

func le32(v uint32) []byte {
	return binary.LittleEndian.AppendUint32(nil, v)
}

// CurrentVersion is the version number written by Encode() for files created
// with NewFile().
const CurrentVersion = 4

// NewFile creates an object file with a null section and a name table.
func NewFile() *File {
	f := &File{
		Header: Header{Version: CurrentVersion, ShStrTabIdx: 1},
	}
	f.Sections = []*Section{
		{Index: 0, Header: SectionHeader{Kind: Null}},
		{Index: 1, Header: SectionHeader{Kind: StrTab}, Strings: NewStringTable()},
	}
	f.Sections[1].Header.NameIdx = f.Sections[1].Strings.Add(ShStrTabName)
	return f
}

// AddSection appends a section of the kind with the name. The body of the
// section is initialised and empty.
func (f *File) AddSection(name string, kind Kind) *Section {
	s := &Section{Index: len(f.Sections), Header: SectionHeader{Kind: kind}}
	s.Header.NameIdx = f.Sections[f.Header.ShStrTabIdx].Strings.Add(name)

	switch kind {
	case StrTab:
		s.Strings = NewStringTable()
	case Data:
		s.Data = &DataSection{Pool: kosvalue.NewPool(0)}
	case SymTab:
		s.Symbols = &SymbolTable{}
	case Reld:
		s.Relocation = &RelocationTable{}
	case Func:
		s.Function = &FuncSection{}
	}

	f.Sections = append(f.Sections, s)
	return s
}

// Encode the File. The number of headers, the section sizes and the section
// offsets are recalculated. It is the inverse of Parse().
func (f *File) Encode() ([]byte, error) {
	bodies := make([][]byte, len(f.Sections))
	for i, s := range f.Sections {
		b, err := s.body()
		if err != nil {
			return nil, err
		}
		bodies[i] = b
	}

	f.Header.NumHeaders = uint16(len(f.Sections))

	var b bytes.Buffer
	b.Write(Magic)
	b.WriteByte(f.Header.Version)
	b.Write(le16(f.Header.NumHeaders))
	b.Write(le16(f.Header.ShStrTabIdx))

	offset := headerSize + len(f.Sections)*sectHeaderSize
	for i, s := range f.Sections {
		s.Header.Size = uint32(len(bodies[i]))
		s.Header.Offset = offset
		offset += len(bodies[i])

		b.Write(le32(s.Header.NameIdx))
		b.WriteByte(byte(s.Header.Kind))
		b.Write(le32(s.Header.Size))
	}

	for _, body := range bodies {
		b.Write(body)
	}

	return b.Bytes(), nil
}

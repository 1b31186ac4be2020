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
	"fmt"

	"github.com/jetsetilly/kdump/curated"
	"github.com/jetsetilly/kdump/cursor"
	"github.com/jetsetilly/kdump/instructions"
	"github.com/jetsetilly/kdump/kosvalue"
	"github.com/jetsetilly/kdump/logger"
)

// Magic is the first four bytes of an object file.
var Magic = []byte{0x6b, 0x01, 0x6f, 0x66}

// NotObjectFile is the sentinel pattern for data that does not begin with
// the object file magic number.
const NotObjectFile = "not an object file"

// MalformedSectionStructure is the sentinel pattern for a section or section
// header that is impossible.
const MalformedSectionStructure = "malformed section structure: %v"

// DanglingReference is the sentinel pattern for an index that refers to a
// section, symbol, string or value that does not exist.
const DanglingReference = "dangling reference: %v"

func malformed(detail string, args ...any) error {
	return curated.Errorf(MalformedSectionStructure, fmt.Sprintf(detail, args...))
}

func dangling(detail string, args ...any) error {
	return curated.Errorf(DanglingReference, fmt.Sprintf(detail, args...))
}

// Well-known section names.
const (
	DataName       = ".data"
	SymTabName     = ".symtab"
	SymStrTabName  = ".symstrtab"
	ReldName       = ".reld"
	CommentName    = ".comment"
	ShStrTabName   = ".shstrtab"
	headerSize     = 9
	sectHeaderSize = 9
)

// Header is the file header.
type Header struct {
	Version     uint8
	NumHeaders  uint16
	ShStrTabIdx uint16
}

// File is a parsed object file.
type File struct {
	Header   Header
	Sections []*Section
}

// Parse an object file.
func Parse(data []byte) (*File, error) {
	c := cursor.NewCursor(data)

	ok, err := c.Expect(Magic)
	if err != nil {
		return nil, curated.Errorf("ko: %v", err)
	}
	if !ok {
		return nil, curated.Errorf("ko: %v", curated.Errorf(NotObjectFile))
	}

	f := &File{}

	err = f.parseHeader(c)
	if err != nil {
		return nil, curated.Errorf("ko: header: %v", err)
	}

	offset := headerSize + int(f.Header.NumHeaders)*sectHeaderSize
	for i := 0; i < int(f.Header.NumHeaders); i++ {
		s := &Section{Index: i}
		s.Header.NameIdx, err = c.Uint32LE()
		if err == nil {
			var k uint8
			k, err = c.Uint8()
			s.Header.Kind = Kind(k)
		}
		if err == nil {
			s.Header.Size, err = c.Uint32LE()
		}
		if err != nil {
			return nil, curated.Errorf("ko: section header %d: %v", i, err)
		}
		if s.Header.Kind >= numKinds {
			return nil, curated.Errorf("ko: section header %d: %v", i, malformed("unknown section kind (%d)", s.Header.Kind))
		}
		s.Header.Offset = offset
		offset += int(s.Header.Size)
		f.Sections = append(f.Sections, s)
	}

	for _, s := range f.Sections {
		body, err := c.PopN(int(s.Header.Size))
		if err != nil {
			return nil, curated.Errorf("ko: section %d: %v", s.Index, err)
		}
		err = s.parseBody(body)
		if err != nil {
			return nil, curated.Errorf("ko: section %d: %v", s.Index, err)
		}
	}

	if c.Remaining() > 0 {
		logger.Logf(logger.Allow, "ko", "%d bytes after the last section", c.Remaining())
	}

	if int(f.Header.ShStrTabIdx) >= len(f.Sections) || f.Sections[f.Header.ShStrTabIdx].Header.Kind != StrTab {
		return nil, curated.Errorf("ko: %v", malformed("name table index (%d) is not a string table", f.Header.ShStrTabIdx))
	}

	checkVersion(f.Header.Version)

	logger.Logf(logger.Allow, "ko", "version %d, %d sections", f.Header.Version, len(f.Sections))

	return f, nil
}

func (f *File) parseHeader(c *cursor.Cursor) error {
	var err error
	f.Header.Version, err = c.Uint8()
	if err != nil {
		return err
	}
	f.Header.NumHeaders, err = c.Uint16LE()
	if err != nil {
		return err
	}
	f.Header.ShStrTabIdx, err = c.Uint16LE()
	return err
}

func (s *Section) parseBody(body []byte) error {
	c := cursor.NewCursor(body)

	switch s.Header.Kind {
	case Null:
		if len(body) != 0 {
			return malformed("null section has a size of %d", len(body))
		}

	case StrTab:
		if len(body) == 0 || body[0] != 0 || body[len(body)-1] != 0 {
			return malformed("string table is not NUL delimited")
		}
		s.Strings = &StringTable{data: body}

	case Data:
		s.Data = &DataSection{Pool: kosvalue.NewPool(0)}
		err := s.Data.Pool.DecodeValues(c, func(_ *cursor.Cursor) bool { return false })
		if err != nil {
			if curated.Has(err, cursor.UnexpectedEndOfInput) {
				return malformed("value overruns data section: %v", err)
			}
			return err
		}

	case SymTab:
		if len(body)%symbolSize != 0 {
			return malformed("symbol table size (%d) is not a multiple of %d", len(body), symbolSize)
		}
		s.Symbols = &SymbolTable{}
		for !c.EOF() {
			var sym Symbol
			sym.NameIdx, _ = c.Uint32LE()
			sym.ValueIdx, _ = c.Uint32LE()
			sym.Size, _ = c.Uint16LE()
			b, _ := c.Uint8()
			t, _ := c.Uint8()
			sym.SectionIdx, _ = c.Uint16LE()
			sym.Bind = Binding(b)
			sym.Type = SymbolType(t)
			if sym.Bind > Extern {
				return malformed("symbol %d has unknown binding (%d)", len(s.Symbols.Symbols), b)
			}
			if sym.Type > FileSymbol {
				return malformed("symbol %d has unknown type (%d)", len(s.Symbols.Symbols), t)
			}
			s.Symbols.Symbols = append(s.Symbols.Symbols, sym)
		}

	case Reld:
		if len(body)%relocationSize != 0 {
			return malformed("relocation table size (%d) is not a multiple of %d", len(body), relocationSize)
		}
		s.Relocation = &RelocationTable{}
		for !c.EOF() {
			var r Relocation
			r.SectionIdx, _ = c.Uint16LE()
			r.InstrIdx, _ = c.Uint32LE()
			o, _ := c.Uint8()
			r.SymbolIdx, _ = c.Uint32LE()
			r.Operand = Operand(o)
			if r.Operand > SecondOperand {
				return malformed("relocation entry %d has operand position %d", len(s.Relocation.Entries), o)
			}
			s.Relocation.Entries = append(s.Relocation.Entries, r)
		}

	case Func:
		s.Function = &FuncSection{}
		for !c.EOF() {
			op, _ := c.Next()
			defn, err := instructions.Lookup(op)
			if err != nil {
				return curated.Errorf("instruction %d: %v", len(s.Function.Instructions), err)
			}
			ins := Instruction{Defn: defn, Operands: make([]uint32, defn.Operands)}
			for i := range ins.Operands {
				ins.Operands[i], err = c.Uint32LE()
				if err != nil {
					return malformed("instruction %d overruns function section", len(s.Function.Instructions))
				}
			}
			s.Function.Instructions = append(s.Function.Instructions, ins)
		}

	case Debug:
		s.Raw = body
	}

	return nil
}

// Name returns the name of the section. Names are resolved through the name
// table.
func (f *File) Name(s *Section) (string, error) {
	tab := f.Sections[f.Header.ShStrTabIdx].Strings
	n, ok := tab.Get(s.Header.NameIdx)
	if !ok {
		return "", dangling("section %d name index (%d)", s.Index, s.Header.NameIdx)
	}
	return n, nil
}

// SectionByName returns the first section with the name and of the kind.
func (f *File) SectionByName(name string, kind Kind) (*Section, bool) {
	for _, s := range f.Sections {
		if s.Header.Kind != kind {
			continue
		}
		if n, err := f.Name(s); err == nil && n == name {
			return s, true
		}
	}
	return nil, false
}

// SectionsOfKind returns every section of the kind, in header order.
func (f *File) SectionsOfKind(kind Kind) []*Section {
	var l []*Section
	for _, s := range f.Sections {
		if s.Header.Kind == kind {
			l = append(l, s)
		}
	}
	return l
}

// Section returns the section at the index.
func (f *File) Section(idx int) (*Section, error) {
	if idx < 0 || idx >= len(f.Sections) {
		return nil, dangling("section index (%d)", idx)
	}
	return f.Sections[idx], nil
}

// SymbolName returns the name of the symbol. Names are resolved through the
// .symstrtab section.
func (f *File) SymbolName(sym Symbol) (string, error) {
	s, ok := f.SectionByName(SymStrTabName, StrTab)
	if !ok {
		return "", dangling("symbol names require a %s section", SymStrTabName)
	}
	n, ok := s.Strings.Get(sym.NameIdx)
	if !ok {
		return "", dangling("symbol name index (%d)", sym.NameIdx)
	}
	return n, nil
}

// Comment returns the first string in the .comment section. The first
// boolean is false if there is no .comment section and the second boolean is
// false if the section contains no strings.
func (f *File) Comment() (string, bool, bool) {
	s, ok := f.SectionByName(CommentName, StrTab)
	if !ok {
		return "", false, false
	}
	c, ok := s.Strings.Get(1)
	return c, true, ok
}

// Relocations returns every relocation entry in every relocation section.
// There may be no more than one entry for an instruction operand.
func (f *File) Relocations() (map[RelocationKey]Relocation, error) {
	m := make(map[RelocationKey]Relocation)
	for _, s := range f.SectionsOfKind(Reld) {
		for _, r := range s.Relocation.Entries {
			k := RelocationKey{SectionIdx: r.SectionIdx, InstrIdx: r.InstrIdx, Operand: r.Operand}
			if _, ok := m[k]; ok {
				return nil, malformed("more than one relocation entry for section %d, instruction %d, operand %d",
					r.SectionIdx, r.InstrIdx, r.Operand)
			}
			m[k] = r
		}
	}
	return m, nil
}

// RelocationKey identifies an instruction operand.
type RelocationKey struct {
	SectionIdx uint16
	InstrIdx   uint32
	Operand    Operand
}

// bytes of a section body, for Encode()
func (s *Section) body() ([]byte, error) {
	var b bytes.Buffer

	switch s.Header.Kind {
	case StrTab:
		b.Write(s.Strings.data)
	case Data:
		for _, v := range s.Data.Pool.Values() {
			e, err := kosvalue.Encode(v)
			if err != nil {
				return nil, err
			}
			b.Write(e)
		}
	case SymTab:
		for _, sym := range s.Symbols.Symbols {
			b.Write(le32(sym.NameIdx))
			b.Write(le32(sym.ValueIdx))
			b.Write(le16(sym.Size))
			b.WriteByte(byte(sym.Bind))
			b.WriteByte(byte(sym.Type))
			b.Write(le16(sym.SectionIdx))
		}
	case Reld:
		for _, r := range s.Relocation.Entries {
			b.Write(le16(r.SectionIdx))
			b.Write(le32(r.InstrIdx))
			b.WriteByte(byte(r.Operand))
			b.Write(le32(r.SymbolIdx))
		}
	case Func:
		for _, ins := range s.Function.Instructions {
			b.WriteByte(ins.Defn.OpCode)
			for _, o := range ins.Operands {
				b.Write(le32(o))
			}
		}
	case Debug:
		b.Write(s.Raw)
	}

	return b.Bytes(), nil
}

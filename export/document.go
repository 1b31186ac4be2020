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

package export

import (
	"github.com/jetsetilly/kdump/disassembly"
	"github.com/jetsetilly/kdump/ko"
	"github.com/jetsetilly/kdump/kosvalue"
	"github.com/jetsetilly/kdump/ksm"
)

// Value is a constant value. For machine-code files the index is the byte
// index in the argument section. For object files it is the position in the
// data section.
type Value struct {
	Index int    `cbor:"index"`
	Type  string `cbor:"type"`
	Text  string `cbor:"text"`
}

// Instruction is a single disassembled instruction.
type Instruction struct {
	Address  int      `cbor:"address"`
	Label    string   `cbor:"label,omitempty"`
	Bytecode string   `cbor:"bytecode"`
	Mnemonic string   `cbor:"mnemonic"`
	Operands []string `cbor:"operands,omitempty"`
	Line     int      `cbor:"line,omitempty"`
}

// Code is a disassembled code section.
type Code struct {
	Index        int           `cbor:"index"`
	Name         string        `cbor:"name"`
	Instructions []Instruction `cbor:"instructions"`
}

// DebugEntry maps a line to address ranges.
type DebugEntry struct {
	Line   int         `cbor:"line"`
	Ranges [][2]uint32 `cbor:"ranges"`
}

// Header is the header of an object file.
type Header struct {
	Version     uint8  `cbor:"version"`
	ShStrTabIdx uint16 `cbor:"shstrtab"`
	NumHeaders  uint16 `cbor:"headers"`
}

// SectionHeader is an entry in the section header table of an object file.
type SectionHeader struct {
	Index int    `cbor:"index"`
	Name  string `cbor:"name"`
	Kind  string `cbor:"kind"`
	Size  uint32 `cbor:"size"`
}

// String is an entry in a string table.
type String struct {
	Offset uint32 `cbor:"offset"`
	Text   string `cbor:"text"`
}

// StringTable is a string table section.
type StringTable struct {
	Name    string   `cbor:"name"`
	Strings []String `cbor:"strings"`
}

// DataSection is a data section.
type DataSection struct {
	Name   string  `cbor:"name"`
	Values []Value `cbor:"values"`
}

// Symbol is an entry in a symbol table.
type Symbol struct {
	Table   string `cbor:"table"`
	Name    string `cbor:"name"`
	Value   uint32 `cbor:"value"`
	Size    uint16 `cbor:"size"`
	Binding string `cbor:"binding"`
	Type    string `cbor:"type"`
	Section uint16 `cbor:"section"`
}

// Relocation is a relocation entry.
type Relocation struct {
	Table       string `cbor:"table"`
	Section     uint16 `cbor:"section"`
	Instruction uint32 `cbor:"instruction"`
	Operand     uint8  `cbor:"operand"`
	Symbol      uint32 `cbor:"symbol"`
}

// Document is everything that is exported for a file. Fields that do not
// apply to the format of the file are omitted.
type Document struct {
	Format string `cbor:"format"`
	Info   string `cbor:"info"`

	// machine-code files
	IndexWidth int          `cbor:"indexwidth,omitempty"`
	Arguments  []Value      `cbor:"arguments,omitempty"`
	Debug      []DebugEntry `cbor:"debug,omitempty"`

	// object files
	Header       *Header         `cbor:"header,omitempty"`
	Sections     []SectionHeader `cbor:"sections,omitempty"`
	StringTables []StringTable   `cbor:"strings,omitempty"`
	Data         []DataSection   `cbor:"data,omitempty"`
	Symbols      []Symbol        `cbor:"symbols,omitempty"`
	Relocations  []Relocation    `cbor:"relocations,omitempty"`

	Code []Code `cbor:"code"`
}

func value(idx int, v kosvalue.Value) Value {
	return Value{Index: idx, Type: v.Type().String(), Text: v.String()}
}

func code(dsm *disassembly.Disassembly) []Code {
	var c []Code
	for _, sec := range dsm.Sections {
		s := Code{Index: sec.Index, Name: sec.Name, Instructions: []Instruction{}}
		for _, e := range sec.Entries {
			ins := Instruction{
				Address:  e.Address,
				Label:    e.Label,
				Bytecode: e.Bytecode,
				Mnemonic: e.Mnemonic(),
			}
			for _, op := range e.Operands {
				ins.Operands = append(ins.Operands, op.String())
			}
			if e.Gutter.State != disassembly.NoRange {
				ins.Line = e.Gutter.Line
			}
			s.Instructions = append(s.Instructions, ins)
		}
		c = append(c, s)
	}
	return c
}

// FromKSM creates a Document for a machine-code file.
func FromKSM(f *ksm.File) (*Document, error) {
	dsm, err := disassembly.FromKSM(f)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Format:     disassembly.KSM.String(),
		Info:       f.Info(),
		IndexWidth: f.IndexWidth,
		Code:       code(dsm),
	}

	for i, v := range f.Pool.Values() {
		doc.Arguments = append(doc.Arguments, value(f.Pool.Index(i), v))
	}

	if f.Debug != nil {
		for _, e := range f.Debug.Entries {
			d := DebugEntry{Line: e.Line}
			for _, r := range e.Ranges {
				d.Ranges = append(d.Ranges, [2]uint32{r.Start, r.End})
			}
			doc.Debug = append(doc.Debug, d)
		}
	}

	return doc, nil
}

// FromKO creates a Document for an object file.
func FromKO(f *ko.File) (*Document, error) {
	dsm, err := disassembly.FromKO(f)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Format: disassembly.KO.String(),
		Header: &Header{
			Version:     f.Header.Version,
			ShStrTabIdx: f.Header.ShStrTabIdx,
			NumHeaders:  f.Header.NumHeaders,
		},
		Code: code(dsm),
	}

	if c, _, ok := f.Comment(); ok {
		doc.Info = c
	}

	var symstr *ko.StringTable
	if s, ok := f.SectionByName(ko.SymStrTabName, ko.StrTab); ok {
		symstr = s.Strings
	}

	for _, s := range f.Sections {
		name, err := f.Name(s)
		if err != nil {
			return nil, err
		}

		doc.Sections = append(doc.Sections, SectionHeader{
			Index: s.Index,
			Name:  name,
			Kind:  s.Header.Kind.String(),
			Size:  s.Header.Size,
		})

		switch s.Header.Kind {
		case ko.StrTab:
			t := StringTable{Name: name}
			for _, e := range s.Strings.Entries() {
				t.Strings = append(t.Strings, String{Offset: e.Offset, Text: e.Text})
			}
			doc.StringTables = append(doc.StringTables, t)

		case ko.Data:
			d := DataSection{Name: name}
			for i, v := range s.Data.Pool.Values() {
				d.Values = append(d.Values, value(i, v))
			}
			doc.Data = append(doc.Data, d)

		case ko.SymTab:
			for _, sym := range s.Symbols.Symbols {
				var n string
				if symstr != nil {
					n, _ = symstr.Get(sym.NameIdx)
				}
				doc.Symbols = append(doc.Symbols, Symbol{
					Table:   name,
					Name:    n,
					Value:   sym.ValueIdx,
					Size:    sym.Size,
					Binding: sym.Bind.String(),
					Type:    sym.Type.String(),
					Section: sym.SectionIdx,
				})
			}

		case ko.Reld:
			for _, r := range s.Relocation.Entries {
				doc.Relocations = append(doc.Relocations, Relocation{
					Table:       name,
					Section:     r.SectionIdx,
					Instruction: r.InstrIdx,
					Operand:     uint8(r.Operand),
					Symbol:      r.SymbolIdx,
				})
			}
		}
	}

	return doc, nil
}

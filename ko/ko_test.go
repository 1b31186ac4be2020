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

package ko_test

import (
	"testing"

	"github.com/jetsetilly/kdump/cursor"
	"github.com/jetsetilly/kdump/instructions"
	"github.com/jetsetilly/kdump/ko"
	"github.com/jetsetilly/kdump/kosvalue"
	"github.com/jetsetilly/kdump/test"
)

func sample(t *testing.T) *ko.File {
	t.Helper()

	f := ko.NewFile()

	comment := f.AddSection(ko.CommentName, ko.StrTab)
	comment.Strings.Add("Compiled by test")

	data := f.AddSection(ko.DataName, ko.Data)
	x := data.Data.Add(kosvalue.NewString(kosvalue.String, "$x"))
	n := data.Data.Add(kosvalue.NewInt32(kosvalue.ScalarInt, 5))

	symstr := f.AddSection(ko.SymStrTabName, ko.StrTab)
	symtab := f.AddSection(ko.SymTabName, ko.SymTab)

	fn := f.AddSection("_start", ko.Func)
	test.DemandSuccess(t, fn.Function.Add(0x4e, x))
	test.DemandSuccess(t, fn.Function.Add(0x4c, n, n))
	test.DemandSuccess(t, fn.Function.Add(0x32))

	symtab.Symbols.Symbols = append(symtab.Symbols.Symbols, ko.Symbol{
		NameIdx:    symstr.Strings.Add("_start"),
		Size:       9,
		Bind:       ko.Global,
		Type:       ko.FuncSymbol,
		SectionIdx: uint16(fn.Index),
	})

	reld := f.AddSection(ko.ReldName, ko.Reld)
	reld.Relocation.Entries = append(reld.Relocation.Entries, ko.Relocation{
		SectionIdx: uint16(fn.Index),
		InstrIdx:   1,
		Operand:    ko.SecondOperand,
		SymbolIdx:  0,
	})

	return f
}

func TestRoundTrip(t *testing.T) {
	b, err := sample(t).Encode()
	test.DemandSuccess(t, err)

	f, err := ko.Parse(b)
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, f.Header.Version, uint8(ko.CurrentVersion))
	test.ExpectEquality(t, f.Header.NumHeaders, uint16(8))
	test.ExpectEquality(t, f.Header.ShStrTabIdx, uint16(1))
	test.DemandEquality(t, len(f.Sections), 8)

	names := []string{"", ".shstrtab", ".comment", ".data", ".symstrtab", ".symtab", "_start", ".reld"}
	for i, s := range f.Sections {
		n, err := f.Name(s)
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, n, names[i])
	}

	// section bodies follow the header table in order
	test.ExpectEquality(t, f.Sections[0].Header.Offset, 9+8*9)
	for i := 1; i < len(f.Sections); i++ {
		prev := f.Sections[i-1].Header
		test.ExpectEquality(t, f.Sections[i].Header.Offset, prev.Offset+int(prev.Size))
	}

	c, ok, nonEmpty := f.Comment()
	test.ExpectSuccess(t, ok)
	test.ExpectSuccess(t, nonEmpty)
	test.ExpectEquality(t, c, "Compiled by test")

	data, ok := f.SectionByName(ko.DataName, ko.Data)
	test.DemandSuccess(t, ok)
	v, ok := data.Data.Get(0)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, kosvalue.NewString(kosvalue.String, "$x"))
	_, ok = data.Data.Get(2)
	test.ExpectFailure(t, ok)

	fn, ok := f.SectionByName("_start", ko.Func)
	test.DemandSuccess(t, ok)
	test.DemandEquality(t, len(fn.Function.Instructions), 3)
	test.ExpectEquality(t, fn.Function.Instructions[1].Defn.Mnemonic, "call")
	test.ExpectEquality(t, fn.Function.Instructions[1].Operands[1], uint32(1))
	test.ExpectEquality(t, fn.Function.Instructions[1].Size(), 9)

	symtab, ok := f.SectionByName(ko.SymTabName, ko.SymTab)
	test.DemandSuccess(t, ok)
	sym, ok := symtab.Symbols.Get(0)
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, sym.Type, ko.FuncSymbol)
	test.ExpectEquality(t, sym.Bind, ko.Global)
	name, err := f.SymbolName(sym)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, name, "_start")

	relocs, err := f.Relocations()
	test.DemandSuccess(t, err)
	r, ok := relocs[ko.RelocationKey{SectionIdx: uint16(fn.Index), InstrIdx: 1, Operand: ko.SecondOperand}]
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, r.SymbolIdx, uint32(0))
	_, ok = relocs[ko.RelocationKey{SectionIdx: uint16(fn.Index), InstrIdx: 1, Operand: ko.FirstOperand}]
	test.ExpectFailure(t, ok)

	test.ExpectEquality(t, len(f.SectionsOfKind(ko.StrTab)), 3)

	// dropping the last byte of a valid file is always detected
	_, err = ko.Parse(b[:len(b)-1])
	test.ExpectPattern(t, err, cursor.UnexpectedEndOfInput)
}

func TestStringTable(t *testing.T) {
	tab := ko.NewStringTable()
	a := tab.Add("alpha")
	b := tab.Add("beta")
	test.ExpectEquality(t, a, uint32(1))
	test.ExpectEquality(t, b, uint32(7))
	test.ExpectEquality(t, tab.Add("alpha"), a)

	s, ok := tab.Get(0)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, s, "")
	s, ok = tab.Get(b)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, s, "beta")

	// offset into the middle of a string
	s, ok = tab.Get(3)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, s, "pha")

	_, ok = tab.Get(100)
	test.ExpectFailure(t, ok)

	e := tab.Entries()
	test.DemandEquality(t, len(e), 3)
	test.ExpectEquality(t, e[2], ko.StringEntry{Offset: 7, Text: "beta"})
	test.ExpectEquality(t, tab.Len(), 12)
}

func TestDuplicateRelocation(t *testing.T) {
	f := sample(t)
	reld, ok := f.SectionByName(ko.ReldName, ko.Reld)
	test.DemandSuccess(t, ok)
	reld.Relocation.Entries = append(reld.Relocation.Entries, reld.Relocation.Entries[0])

	b, err := f.Encode()
	test.DemandSuccess(t, err)
	g, err := ko.Parse(b)
	test.DemandSuccess(t, err)

	_, err = g.Relocations()
	test.ExpectPattern(t, err, ko.MalformedSectionStructure)
}

func TestMalformed(t *testing.T) {
	// wrong magic
	_, err := ko.Parse([]byte{0x6b, 0x03, 0x58, 0x45, 0x04, 0x00, 0x00, 0x00, 0x00})
	test.ExpectPattern(t, err, ko.NotObjectFile)

	// name table index refers to a section that doesn't exist
	f := ko.NewFile()
	f.Header.ShStrTabIdx = 5
	b, err := f.Encode()
	test.DemandSuccess(t, err)
	_, err = ko.Parse(b)
	test.ExpectPattern(t, err, ko.MalformedSectionStructure)

	// unknown opcode in a function section
	f = ko.NewFile()
	fn := f.AddSection("broken", ko.Func)
	fn.Function.Instructions = append(fn.Function.Instructions, ko.Instruction{
		Defn: instructions.Definition{OpCode: 0x01},
	})
	b, err = f.Encode()
	test.DemandSuccess(t, err)
	_, err = ko.Parse(b)
	test.ExpectPattern(t, err, instructions.UnknownOpcode)

	// wrong number of operands
	err = fn.Function.Add(0x4c, 1)
	test.ExpectPattern(t, err, ko.MalformedSectionStructure)
}

func TestSupportedVersions(t *testing.T) {
	test.ExpectSuccess(t, ko.IsSupportedVersion(4))
	test.ExpectSuccess(t, ko.IsSupportedVersion(3))
	test.ExpectFailure(t, ko.IsSupportedVersion(2))
	test.ExpectFailure(t, ko.IsSupportedVersion(5))
}

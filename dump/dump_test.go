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

package dump_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/jetsetilly/kdump/ansi"
	"github.com/jetsetilly/kdump/disassembly"
	"github.com/jetsetilly/kdump/dump"
	"github.com/jetsetilly/kdump/ko"
	"github.com/jetsetilly/kdump/kosvalue"
	"github.com/jetsetilly/kdump/ksm"
	"github.com/jetsetilly/kdump/test"
)

var minimal = []byte{
	0x6b, 0x03, 0x58, 0x45,
	'%', 'A', 0x01,
	0x07, 0x05, 'h', 'e', 'l', 'l', 'o',
	'%', 'F', '%', 'I', '%', 'M',
	0x33,
	'%', 'D', 0x01,
}

func contains(lines []string, s string) bool {
	for _, l := range lines {
		if l == s {
			return true
		}
	}
	return false
}

func TestKSM(t *testing.T) {
	f, err := ksm.Parse(minimal)
	test.DemandSuccess(t, err)

	w := &test.CompareWriter{}
	err = dump.KSM(w, f, dump.Options{
		Info:        true,
		Arguments:   true,
		Disassemble: true,
		Debug:       true,
	})
	test.DemandSuccess(t, err)

	expected := []string{
		"",
		"KSM File Info:",
		"\thello",
		"",
		"Argument section:",
		fmt.Sprintf("  %-18s%-12s%-24s", "Index (1 byte)", "Type", "Value"),
		fmt.Sprintf("%-20s%-12s%s", "  03", "STRING", `"hello"`),
		"",
		"MAIN:",
		"  @000001 33        nop",
		"",
		"Debug section:",
	}

	lines := w.Lines()
	test.DemandEquality(t, len(lines), len(expected))
	for i := range expected {
		test.ExpectEquality(t, lines[i], expected[i], i)
	}
}

func TestKSMColumns(t *testing.T) {
	f, err := ksm.Parse(minimal)
	test.DemandSuccess(t, err)

	w := &test.CompareWriter{}
	err = dump.KSM(w, f, dump.Options{
		Disassemble: true,
		NoRaw:       true,
		NoLabels:    true,
	})
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, w.Compare("\nMAIN:\n   nop\n"))
}

func TestKSMFunction(t *testing.T) {
	f, err := ksm.Parse(minimal)
	test.DemandSuccess(t, err)

	w := &test.CompareWriter{}
	err = dump.KSM(w, f, dump.Options{Function: "Main", NoRaw: true, NoLabels: true})
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, w.Compare("\nMAIN:\n   nop\n"))

	w.Clear()
	err = dump.KSM(w, f, dump.Options{Function: "missing"})
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, w.Compare("\nNo section found with that symbol.\n"))
}

func TestKSMDebug(t *testing.T) {
	f := ksm.NewFile(1)
	f.Debug = &ksm.Debug{
		RangeWidth: 2,
		Entries: []ksm.DebugEntry{
			{Line: 1, Ranges: []ksm.DebugRange{{Start: 2, End: 7}}},
			{Line: 30, Ranges: []ksm.DebugRange{{Start: 10, End: 12}, {Start: 0x1f, End: 0x20}}},
		},
	}

	w := &test.CompareWriter{}
	test.DemandSuccess(t, dump.KSM(w, f, dump.Options{Debug: true}))

	lines := w.Lines()
	test.DemandEquality(t, len(lines), 4)
	test.ExpectEquality(t, lines[2], "  Line 1, 1 range: [000002, 000007]")
	test.ExpectEquality(t, lines[3], "  Line 30, 2 ranges: [00000a, 00000c] [00001f, 000020]")
}

func TestKSMColour(t *testing.T) {
	f := ksm.NewFile(1)
	v := uint32(f.Pool.Append(kosvalue.NewString(kosvalue.String, "$x")))
	ins, err := ksm.NewInstruction(0x4e, v)
	test.DemandSuccess(t, err)
	f.Sections = []*ksm.Section{{Type: ksm.Main, Instructions: []ksm.Instruction{ins}}}
	f.Layout()

	w := &test.CompareWriter{}
	err = dump.KSM(w, f, dump.Options{Disassemble: true, Arguments: true, Colour: true})
	test.DemandSuccess(t, err)

	s := w.String()
	test.ExpectSuccess(t, strings.Contains(s, ansi.Paint(ansi.Pens["magenta"], "@000001")))
	test.ExpectSuccess(t, strings.Contains(s, ansi.Paint(ansi.Pens["red"], `"$x"`)))
	test.ExpectSuccess(t, strings.Contains(s, `"`+ansi.Paint(ansi.Pens["red"], "$x")+`"`))

	// no colour sequences unless asked for
	w.Clear()
	err = dump.KSM(w, f, dump.Options{Disassemble: true, Arguments: true})
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, strings.Contains(w.String(), "\033["))
}

func sampleKO(t *testing.T) *ko.File {
	t.Helper()

	f := ko.NewFile()

	comment := f.AddSection(ko.CommentName, ko.StrTab)
	comment.Strings.Add("Compiled by test")

	data := f.AddSection(ko.DataName, ko.Data)
	x := data.Data.Add(kosvalue.NewString(kosvalue.String, "$x"))
	n := data.Data.Add(kosvalue.NewInt32(kosvalue.ScalarInt, 255))

	symstr := f.AddSection(ko.SymStrTabName, ko.StrTab)
	symtab := f.AddSection(ko.SymTabName, ko.SymTab)

	fn := f.AddSection("_start", ko.Func)
	test.DemandSuccess(t, fn.Function.Add(0x4e, x))
	test.DemandSuccess(t, fn.Function.Add(0x4c, n, n))

	symtab.Symbols.Symbols = append(symtab.Symbols.Symbols, ko.Symbol{
		NameIdx: symstr.Strings.Add("print"),
		Bind:    ko.Extern,
		Type:    ko.FuncSymbol,
	})

	reld := f.AddSection(ko.ReldName, ko.Reld)
	reld.Relocation.Entries = append(reld.Relocation.Entries, ko.Relocation{
		SectionIdx: uint16(fn.Index),
		InstrIdx:   1,
		Operand:    ko.FirstOperand,
		SymbolIdx:  0,
	})

	dbg := f.AddSection(".debug", ko.Debug)
	dbg.Raw = []byte{1, 2, 3}

	b, err := f.Encode()
	test.DemandSuccess(t, err)
	g, err := ko.Parse(b)
	test.DemandSuccess(t, err)

	return g
}

func TestKO(t *testing.T) {
	w := &test.CompareWriter{}
	err := dump.KO(w, sampleKO(t), dump.Options{
		Info:           true,
		FileHeader:     true,
		SectionHeaders: true,
		Full:           true,
		Hex:            true,
	})
	test.DemandSuccess(t, err)

	lines := w.Lines()

	expected := []string{
		"KO File Info:",
		"  Compiled by test",
		"\tVersion: 4",
		"\tShstrtab Index: 1",
		"\tNumber of section headers: 9",
		fmt.Sprintf("%-7d%-16s%-12s%d", 6, "_start", "FUNC", 14),
		"String tables:",
		".comment",
		"  [    1]  Compiled by test",
		"Section .data",
		fmt.Sprintf("  %-10d%-12s%s", 0, "STRING", `"$x"`),
		fmt.Sprintf("  %-10d%-12s%s", 1, "SCALARINT", "0x00ff"),
		"Table .symtab",
		fmt.Sprintf("%-16s%08x  %04x    %-10s%-10s%d", "print", 0, 0, "EXTERN", "FUNC", 0),
		"Reld section .reld:",
		fmt.Sprintf("%-12d%08d      %-12d%08d", 6, 1, 0, 0),
		"Function sections:",
		"_start:",
		`  00000001 4e 00000000           push "$x"`,
		`  00000002 4c 00000001 00000001  call <print>,0x00ff`,
		"Debug sections:",
		".debug (3 bytes)",
	}

	for _, e := range expected {
		test.ExpectSuccess(t, contains(lines, e), e)
	}
}

func TestKOMissingSections(t *testing.T) {
	f := ko.NewFile()
	b, err := f.Encode()
	test.DemandSuccess(t, err)
	f, err = ko.Parse(b)
	test.DemandSuccess(t, err)

	w := &test.CompareWriter{}
	err = dump.KO(w, f, dump.Options{Info: true, Symbols: true, Relocations: true, Debug: true})
	test.DemandSuccess(t, err)

	lines := w.Lines()
	test.ExpectSuccess(t, contains(lines, "  No info"))
	test.ExpectSuccess(t, contains(lines, "None."))
}

func TestKOEmptyComment(t *testing.T) {
	f := ko.NewFile()
	f.AddSection(ko.CommentName, ko.StrTab)
	b, err := f.Encode()
	test.DemandSuccess(t, err)
	f, err = ko.Parse(b)
	test.DemandSuccess(t, err)

	w := &test.CompareWriter{}
	test.DemandSuccess(t, dump.KO(w, f, dump.Options{Info: true}))
	test.ExpectSuccess(t, contains(w.Lines(), "  Comment section empty."))
}

func TestKOFunction(t *testing.T) {
	f := sampleKO(t)

	w := &test.CompareWriter{}
	err := dump.KO(w, f, dump.Options{Function: "prin", Policy: disassembly.SubstringMatch, NoRaw: true, NoLabels: true})
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, contains(w.Lines(), "_start:"))

	w.Clear()
	err = dump.KO(w, f, dump.Options{Function: "prin", Policy: disassembly.ExactMatch})
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, contains(w.Lines(), "No section found with that symbol."))
}

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

package dump

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/jetsetilly/kdump/ansi"
	"github.com/jetsetilly/kdump/disassembly"
	"github.com/jetsetilly/kdump/ko"
)

// KO writes the listings of an object file.
func KO(w io.Writer, f *ko.File, opts Options) error {
	p := newPalette(opts.Colour)

	if opts.Info {
		koInfo(w, f)
	}

	if opts.FileHeader {
		fmt.Fprintf(w, "\nFile header:\n")
		fmt.Fprintf(w, "\tVersion: %d\n", f.Header.Version)
		fmt.Fprintf(w, "\tShstrtab Index: %d\n", f.Header.ShStrTabIdx)
		fmt.Fprintf(w, "\tNumber of section headers: %d\n", f.Header.NumHeaders)
	}

	if opts.SectionHeaders {
		if err := koSectionHeaders(w, f, p); err != nil {
			return err
		}
	}

	if opts.StringTables || opts.Full {
		if err := koStringTables(w, f, p); err != nil {
			return err
		}
	}

	if opts.Data || opts.Full {
		if err := koData(w, f, opts, p); err != nil {
			return err
		}
	}

	if opts.Symbols || opts.Full {
		if err := koSymbols(w, f, p); err != nil {
			return err
		}
	}

	if opts.Relocations || opts.Full {
		if err := koRelocations(w, f, p); err != nil {
			return err
		}
	}

	if opts.Disassemble || opts.Full || opts.Function != "" {
		dsm, err := disassembly.FromKO(f)
		if err != nil {
			return err
		}

		attr := opts.writeAttr(p)

		if opts.Disassemble || opts.Full {
			fmt.Fprintf(w, "\nFunction sections:\n")
			dsm.Write(w, attr)
		}

		if opts.Function != "" {
			writeFunction(w, dsm, attr, opts)
		}
	}

	if opts.Debug || opts.Full {
		if err := koDebug(w, f); err != nil {
			return err
		}
	}

	return nil
}

// column pads the text and paints it with the pen
func column(pen string, s string, width int) string {
	return ansi.Paint(pen, fmt.Sprintf("%-*s", width, s))
}

func koInfo(w io.Writer, f *ko.File) {
	fmt.Fprintf(w, "\nKO File Info:\n")

	c, ok, nonEmpty := f.Comment()
	switch {
	case !ok:
		fmt.Fprintf(w, "  No info\n")
	case !nonEmpty:
		fmt.Fprintf(w, "  Comment section empty.\n")
	default:
		fmt.Fprintf(w, "  %s\n", c)
	}
}

func koSectionHeaders(w io.Writer, f *ko.File, p palette) error {
	fmt.Fprintf(w, "\nSections:\n")
	fmt.Fprintf(w, "%-7s%-16s%-12s%s\n", "Index", "Name", "Kind", "Size")

	for _, s := range f.Sections {
		n, err := f.Name(s)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%-7d%s%s%d\n", s.Index,
			column(p.variable, n, 16),
			column(p.kind, s.Header.Kind.String(), 12),
			s.Header.Size)
	}

	return nil
}

func koStringTables(w io.Writer, f *ko.File, p palette) error {
	fmt.Fprintf(w, "\nString tables:\n")

	for _, s := range f.SectionsOfKind(ko.StrTab) {
		n, err := f.Name(s)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\n", n)

		for _, e := range s.Strings.Entries() {
			// the empty string at the start of every table is not shown
			if e.Offset == 0 {
				continue
			}
			fmt.Fprintf(w, "  [%s]  %s\n", ansi.Paint(p.index, fmt.Sprintf("%5d", e.Offset)), ansi.Paint(p.variable, e.Text))
		}
	}

	return nil
}

func koData(w io.Writer, f *ko.File, opts Options, p palette) error {
	fmt.Fprintf(w, "\nSymbol Data Sections:\n")

	for _, s := range f.SectionsOfKind(ko.Data) {
		n, err := f.Name(s)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Section %s\n", n)
		fmt.Fprintf(w, "%-12s%-12sValue\n", "Index", "Type")

		for i, v := range s.Data.Pool.Values() {
			fmt.Fprintf(w, "  %-10d%s\n", i, p.typeAndValue(v, opts.radix()))
		}
	}

	return nil
}

func koSymbols(w io.Writer, f *ko.File, p palette) error {
	fmt.Fprintf(w, "\nSymbol Tables:\n")

	symstr, ok := f.SectionByName(ko.SymStrTabName, ko.StrTab)
	if !ok {
		fmt.Fprintf(w, "None.\n")
		return nil
	}

	for _, s := range f.SectionsOfKind(ko.SymTab) {
		n, err := f.Name(s)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Table %s\n", n)
		fmt.Fprintf(w, "%-16s%-10s%-8s%-10s%-10sSection\n", "Name", "Value", "Size", "Binding", "Type")

		for _, sym := range s.Symbols.Symbols {
			// a symbol with a bad name index is still listed
			sn, _ := symstr.Strings.Get(sym.NameIdx)
			if len(sn) > 16 {
				sn = sn[:16]
			}
			fmt.Fprintf(w, "%s%s  %s    %s%s%d\n",
				column(p.variable, sn, 16),
				ansi.Paint(p.index, fmt.Sprintf("%08x", sym.ValueIdx)),
				ansi.Paint(p.index, fmt.Sprintf("%04x", sym.Size)),
				column(p.kind, sym.Bind.String(), 10),
				column(p.kind, sym.Type.String(), 10),
				sym.SectionIdx)
		}
	}

	return nil
}

func koRelocations(w io.Writer, f *ko.File, p palette) error {
	fmt.Fprintf(w, "\nRelocation data sections:\n")

	reld := f.SectionsOfKind(ko.Reld)
	if len(reld) == 0 {
		fmt.Fprintf(w, "None.\n")
		return nil
	}

	for _, s := range reld {
		n, err := f.Name(s)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Reld section %s:\n", n)
		fmt.Fprintf(w, "%-12s%-14s%-12s%s\n", "Section", "Instruction", "Operand", "Symbol index")

		for _, r := range s.Relocation.Entries {
			fmt.Fprintln(w, ansi.Paint(p.index, fmt.Sprintf("%-12d%08d      %-12d%08d",
				r.SectionIdx, r.InstrIdx, r.Operand, r.SymbolIdx)))
		}
	}

	return nil
}

func koDebug(w io.Writer, f *ko.File) error {
	fmt.Fprintf(w, "\nDebug sections:\n")

	dbg := f.SectionsOfKind(ko.Debug)
	if len(dbg) == 0 {
		fmt.Fprintf(w, "None.\n")
		return nil
	}

	for _, s := range dbg {
		n, err := f.Name(s)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s (%d bytes)\n", n, len(s.Raw))
		fmt.Fprint(w, hex.Dump(s.Raw))
	}

	return nil
}

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
	"fmt"
	"io"

	"github.com/jetsetilly/kdump/disassembly"
	"github.com/jetsetilly/kdump/ksm"
)

// KSM writes the listings of a machine-code file.
func KSM(w io.Writer, f *ksm.File, opts Options) error {
	p := newPalette(opts.Colour)

	if opts.Info {
		fmt.Fprintf(w, "\nKSM File Info:\n")
		fmt.Fprintf(w, "\t%s\n", f.Info())
	}

	if opts.Arguments || opts.Full {
		ksmArguments(w, f, opts, p)
	}

	if opts.Disassemble || opts.Full || opts.Function != "" {
		dsm, err := disassembly.FromKSM(f)
		if err != nil {
			return err
		}

		attr := opts.writeAttr(p)

		if opts.Disassemble || opts.Full {
			for _, sec := range dsm.Sections {
				// empty sections are not shown
				if len(sec.Entries) == 0 {
					continue
				}
				dsm.WriteSection(w, attr, sec)
			}
		}

		if opts.Function != "" {
			writeFunction(w, dsm, attr, opts)
		}
	}

	if opts.Debug || opts.Full {
		ksmDebug(w, f)
	}

	return nil
}

func ksmArguments(w io.Writer, f *ksm.File, opts Options, p palette) {
	fmt.Fprintf(w, "\nArgument section:\n")

	plural := ""
	if f.IndexWidth > 1 {
		plural = "s"
	}
	fmt.Fprintf(w, "  %-18s%-12s%-24s\n", fmt.Sprintf("Index (%d byte%s)", f.IndexWidth, plural), "Type", "Value")

	for i, v := range f.Pool.Values() {
		idx := fmt.Sprintf("  %0*x", f.IndexWidth*2, f.Pool.Index(i))
		fmt.Fprintf(w, "%-20s%s\n", idx, p.typeAndValue(v, opts.radix()))
	}
}

func ksmDebug(w io.Writer, f *ksm.File) {
	fmt.Fprintf(w, "\nDebug section:\n")
	if f.Debug == nil {
		return
	}

	for _, e := range f.Debug.Entries {
		plural := ""
		if len(e.Ranges) != 1 {
			plural = "s"
		}
		fmt.Fprintf(w, "  Line %d, %d range%s:", e.Line, len(e.Ranges), plural)
		for _, r := range e.Ranges {
			fmt.Fprintf(w, " [%06x, %06x]", r.Start, r.End)
		}
		fmt.Fprintf(w, "\n")
	}
}

// writeFunction writes the first section that matches the function name in
// the options
func writeFunction(w io.Writer, dsm *disassembly.Disassembly, attr disassembly.WriteAttr, opts Options) {
	sec, ok := dsm.Lookup(opts.Function, opts.Policy)
	if !ok {
		fmt.Fprintf(w, "\nNo section found with that symbol.\n")
		return
	}
	dsm.WriteSection(w, attr, sec)
}

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

package disassembly

import (
	"fmt"
	"io"
	"strings"

	"github.com/jetsetilly/kdump/kosvalue"
)

// WriteAttr controls what is printed by the Write*() functions
type WriteAttr struct {
	LineNumbers bool
	Address     bool
	Labels      bool
	Bytecode    bool

	// radix of integer operands
	Radix kosvalue.Radix

	// Style is applied to every field before it is written. Can be nil
	Style func(field Field, s string) string
}

func (attr WriteAttr) style(field Field, s string) string {
	if attr.Style == nil {
		return s
	}
	return attr.Style(field, s)
}

// Write the entire disassembly to io.Writer
func (dsm *Disassembly) Write(output io.Writer, attr WriteAttr) {
	for _, sec := range dsm.Sections {
		dsm.WriteSection(output, attr, sec)
	}
}

// WriteSection writes the disassembly of a single section to io.Writer
func (dsm *Disassembly) WriteSection(output io.Writer, attr WriteAttr, sec *Section) {
	output.Write([]byte(fmt.Sprintf("\n%s:\n", sec.Name)))
	for _, e := range sec.Entries {
		dsm.WriteLine(output, attr, e)
	}
}

// WriteLine writes a single entry to io.Writer
func (dsm *Disassembly) WriteLine(output io.Writer, attr WriteAttr, e *Entry) {
	s := strings.Builder{}

	if attr.LineNumbers && dsm.Format == KSM {
		s.WriteString(attr.style(FldLineNumber, dsm.GetField(FldLineNumber, e)))
	} else {
		s.WriteString("  ")
	}

	if attr.Address && dsm.Format == KSM {
		s.WriteString(attr.style(FldAddress, dsm.GetField(FldAddress, e)))
		s.WriteString("  ")
	}

	if attr.Labels {
		s.WriteString(attr.style(FldLabel, dsm.GetField(FldLabel, e)))
		s.WriteString(" ")
	}

	if attr.Bytecode {
		s.WriteString(attr.style(FldBytecode, dsm.GetField(FldBytecode, e)))
		s.WriteString(" ")
	}

	s.WriteString(" ")
	s.WriteString(attr.style(FldMnemonic, dsm.GetField(FldMnemonic, e)))

	for i, op := range e.Operands {
		if i == 0 {
			s.WriteString(" ")
		} else {
			s.WriteString(",")
		}

		field := FldOperand
		switch {
		case op.Kind == SymbolOperand:
			field = FldSymbol
		case op.IsVariable():
			field = FldVariable
		}
		s.WriteString(attr.style(field, op.Text(attr.Radix)))
	}

	output.Write([]byte(strings.TrimRight(s.String(), " ")))
	output.Write([]byte("\n"))
}

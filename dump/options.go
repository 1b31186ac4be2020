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

	"github.com/jetsetilly/kdump/ansi"
	"github.com/jetsetilly/kdump/disassembly"
	"github.com/jetsetilly/kdump/kosvalue"
)

// Options decides what is written by KSM() and KO().
type Options struct {
	// file information. the compiler for machine-code files and the comment
	// section for object files
	Info bool

	// argument section of machine-code files
	Arguments bool

	// disassemble all code sections
	Disassemble bool

	// disassemble the first section that matches the name. empty string for
	// no function
	Function string
	Policy   disassembly.MatchPolicy

	// object file listings
	FileHeader     bool
	SectionHeaders bool
	StringTables   bool
	Data           bool
	Symbols        bool
	Relocations    bool

	// the debug section
	Debug bool

	// full contents implies Arguments, Disassemble, StringTables, Data,
	// Symbols and Relocations
	Full bool

	// disassembly columns. line numbers are only available for machine-code
	// files. the address column is shown with the line numbers
	LineNumbers bool
	NoRaw       bool
	NoLabels    bool

	// show integers as hexadecimal
	Hex bool

	// use ANSI colour sequences
	Colour bool
}

func (opts Options) radix() kosvalue.Radix {
	if opts.Hex {
		return kosvalue.Hex
	}
	return kosvalue.Decimal
}

func (opts Options) writeAttr(p palette) disassembly.WriteAttr {
	return disassembly.WriteAttr{
		LineNumbers: opts.LineNumbers,
		Address:     opts.LineNumbers,
		Labels:      !opts.NoLabels,
		Bytecode:    !opts.NoRaw,
		Radix:       opts.radix(),
		Style:       p.style,
	}
}

// the pens used for each part of a listing. an empty pen is no colour
type palette struct {
	label    string
	mnemonic string
	variable string
	kind     string
	index    string
	symbol   string
	line     string
	address  string
}

func newPalette(colour bool) palette {
	if !colour {
		return palette{}
	}
	return palette{
		label:    ansi.Pens["magenta"],
		mnemonic: ansi.DimPens["red"],
		variable: ansi.Pens["red"],
		kind:     ansi.Pens["green"],
		index:    ansi.Pens["magenta"],
		symbol:   ansi.Pens["green"],
		line:     ansi.DimPens["cyan"],
		address:  ansi.DimPens["yellow"],
	}
}

func (p palette) style(field disassembly.Field, s string) string {
	switch field {
	case disassembly.FldLineNumber:
		return ansi.Paint(p.line, s)
	case disassembly.FldAddress:
		return ansi.Paint(p.address, s)
	case disassembly.FldLabel:
		return ansi.Paint(p.label, s)
	case disassembly.FldMnemonic:
		return ansi.Paint(p.mnemonic, s)
	case disassembly.FldVariable:
		return ansi.Paint(p.variable, s)
	case disassembly.FldSymbol:
		return ansi.Paint(p.symbol, s)
	}
	return s
}

// valueText renders the value. strings are quoted and variable names are
// shown with the variable pen
func (p palette) valueText(v kosvalue.Value, radix kosvalue.Radix) string {
	if !v.IsString() {
		return kosvalue.Render(v, radix)
	}
	if v.IsVariableReference() {
		return `"` + ansi.Paint(p.variable, v.Str()) + `"`
	}
	return `"` + v.Str() + `"`
}

// typeAndValue is the type column followed by the value. types with no
// value are not padded
func (p palette) typeAndValue(v kosvalue.Value, radix kosvalue.Radix) string {
	switch v.Type() {
	case kosvalue.Null, kosvalue.ArgMarker:
		return ansi.Paint(p.kind, v.Type().String())
	}
	return ansi.Paint(p.kind, fmt.Sprintf("%-12s", v.Type())) + p.valueText(v, radix)
}

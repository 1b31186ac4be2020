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

	"github.com/jetsetilly/kdump/kosvalue"
)

type widths struct {
	label    int
	address  int
	bytecode int
	mnemonic int
}

type format struct {
	label    string
	address  string
	bytecode string
	mnemonic string
}

type fields struct {
	widths widths
	fmt    format
}

// Update width and formatting information for entry fields
func (fld *fields) update(e *Entry) {
	if len(e.Label) > fld.widths.label {
		fld.widths.label = len(e.Label)
	}
	if a := len(fmt.Sprintf("%06x", e.Address)); a > fld.widths.address {
		fld.widths.address = a
	}
	if len(e.Bytecode) > fld.widths.bytecode {
		fld.widths.bytecode = len(e.Bytecode)
	}
	if len(e.Mnemonic()) > fld.widths.mnemonic {
		fld.widths.mnemonic = len(e.Mnemonic())
	}

	fld.fmt.label = fmt.Sprintf("%%-%ds", fld.widths.label)
	fld.fmt.address = fmt.Sprintf("%%0%dx", fld.widths.address)
	fld.fmt.bytecode = fmt.Sprintf("%%-%ds", fld.widths.bytecode)
	fld.fmt.mnemonic = fmt.Sprintf("%%-%ds", fld.widths.mnemonic)
}

// Field identifies which part of the disassmbly entry is of interest
type Field int

// List of valid fields
const (
	FldLineNumber Field = iota
	FldAddress
	FldLabel
	FldBytecode
	FldMnemonic
	FldOperand
	FldVariable
	FldSymbol
)

// GetField returns the formatted field from the speficied Entry. Line number
// and operand fields are not padded.
func (dsm *Disassembly) GetField(field Field, e *Entry) string {
	switch field {
	case FldLineNumber:
		return e.Gutter.Format(dsm.LineDigits)
	case FldAddress:
		return fmt.Sprintf(dsm.fields.fmt.address, e.Address)
	case FldLabel:
		return fmt.Sprintf(dsm.fields.fmt.label, e.Label)
	case FldBytecode:
		return fmt.Sprintf(dsm.fields.fmt.bytecode, e.Bytecode)
	case FldMnemonic:
		return fmt.Sprintf(dsm.fields.fmt.mnemonic, e.Mnemonic())
	case FldOperand:
		return e.OperandText(kosvalue.Decimal)
	}
	return ""
}

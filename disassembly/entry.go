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
	"strings"

	"github.com/jetsetilly/kdump/instructions"
	"github.com/jetsetilly/kdump/ko"
	"github.com/jetsetilly/kdump/kosvalue"
)

// OperandKind describes how an Operand was resolved.
type OperandKind int

// List of valid OperandKind values.
const (
	// a value from the argument section or the .data section
	ValueOperand OperandKind = iota

	// a symbol referred to by a relocation entry. symbols that refer to a
	// value in the .data section are ValueOperands with the Relocated field
	// set
	SymbolOperand
)

// Operand is a resolved instruction operand.
type Operand struct {
	// the index as it appears in the instruction
	Raw uint32

	Kind OperandKind

	// valid if Kind is ValueOperand
	Value kosvalue.Value

	// valid if Kind is SymbolOperand or if Relocated is true
	Symbol     string
	SymbolType ko.SymbolType

	// the operand was resolved through a relocation entry
	Relocated bool
}

// IsVariable returns true if the operand is a reference to a variable.
func (op Operand) IsVariable() bool {
	return op.Kind == ValueOperand && op.Value.IsVariableReference()
}

// Text returns the operand as it should be displayed. Strings are quoted and
// symbols are shown by name inside angle brackets.
func (op Operand) Text(radix kosvalue.Radix) string {
	if op.Kind == SymbolOperand {
		return fmt.Sprintf("<%s>", op.Symbol)
	}
	if op.Value.IsString() {
		return fmt.Sprintf("\"%s\"", op.Value.Str())
	}
	return kosvalue.Render(op.Value, radix)
}

// String implements the fmt.Stringer interface.
func (op Operand) String() string {
	return op.Text(kosvalue.Decimal)
}

// strings returns the text that the operand can be looked up by. the name of
// a relocated symbol and the value of a string operand.
func (op Operand) strings() []string {
	var s []string
	if op.Relocated {
		s = append(s, op.Symbol)
	}
	if op.Kind == ValueOperand && op.Value.IsString() {
		s = append(s, op.Value.Str())
	}
	return s
}

// Entry is a disassembled instruction.
type Entry struct {
	// address of the instruction. for machine-code files this is the code
	// address used by the debug section. for object files it is the
	// position of the instruction in the function section
	Address int

	// synthesised label. label reset instructions have an empty label
	Label string

	Defn     instructions.Definition
	Operands []Operand

	// the instruction as it appears in the file. opcode followed by the
	// operand indexes as hexadecimal
	Bytecode string

	// line number gutter. the zero value is an empty gutter
	Gutter Gutter
}

// Mnemonic returns the mnemonic of the instruction.
func (e *Entry) Mnemonic() string {
	return e.Defn.Mnemonic
}

// IsLabelReset returns true if the entry is a label reset marker.
func (e *Entry) IsLabelReset() bool {
	return e.Defn.IsLabelReset()
}

// OperandText returns all operands separated by commas.
func (e *Entry) OperandText(radix kosvalue.Radix) string {
	s := make([]string, len(e.Operands))
	for i, op := range e.Operands {
		s[i] = op.Text(radix)
	}
	return strings.Join(s, ",")
}

// bytecode formats the raw instruction. absent operands are padded with
// spaces so that the column is the same width for every instruction
func bytecode(defn instructions.Definition, operands []uint32, width int) string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%02x", defn.OpCode))
	for i := 0; i < 2; i++ {
		s.WriteString(" ")
		if i < len(operands) {
			s.WriteString(fmt.Sprintf("%0*x", width*2, operands[i]))
		} else {
			s.WriteString(strings.Repeat(" ", width*2))
		}
	}
	return s.String()
}

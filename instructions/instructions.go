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

// Package instructions defines the instruction set of the virtual machine.
// Each instruction has a one byte opcode and zero, one or two operands. The
// width of an operand depends on the file format and is not part of the
// definition.
package instructions

import (
	"fmt"

	"github.com/jetsetilly/kdump/curated"
)

// UnknownOpcode is the sentinel pattern for a byte that is not the opcode of
// any instruction.
const UnknownOpcode = "unknown opcode (%#02x)"

// LabelReset is the opcode of the label reset instruction. It is a marker
// that changes the label of the instruction that follows it and is not
// counted as a real instruction.
const LabelReset uint8 = 0xf0

// Definition defines each instruction in the instruction set; one per
// instruction.
type Definition struct {
	OpCode   uint8
	Mnemonic string
	Operands int
	Name     string
}

// String returns a single instruction definition as a string.
func (defn Definition) String() string {
	if defn.Mnemonic == "" {
		return "undecoded instruction"
	}
	return fmt.Sprintf("%02x %s (%s) +%d operands", defn.OpCode, defn.Mnemonic, defn.Name, defn.Operands)
}

// IsLabelReset returns true if the instruction is the label reset marker.
func (defn Definition) IsLabelReset() bool {
	return defn.OpCode == LabelReset
}

// Size returns the number of bytes in the encoded instruction when operands
// are the specified width.
func (defn Definition) Size(operandWidth int) int {
	return 1 + defn.Operands*operandWidth
}

var definitions = []Definition{
	{OpCode: 0x31, Mnemonic: "eof", Operands: 0, Name: "end of file"},
	{OpCode: 0x32, Mnemonic: "eop", Operands: 0, Name: "end of program"},
	{OpCode: 0x33, Mnemonic: "nop", Operands: 0, Name: "no operation"},
	{OpCode: 0x34, Mnemonic: "sto", Operands: 1, Name: "store"},
	{OpCode: 0x35, Mnemonic: "uns", Operands: 0, Name: "unset"},
	{OpCode: 0x36, Mnemonic: "gmb", Operands: 1, Name: "get member"},
	{OpCode: 0x37, Mnemonic: "smb", Operands: 1, Name: "set member"},
	{OpCode: 0x38, Mnemonic: "gidx", Operands: 0, Name: "get index"},
	{OpCode: 0x39, Mnemonic: "sidx", Operands: 0, Name: "set index"},
	{OpCode: 0x3a, Mnemonic: "bfa", Operands: 1, Name: "branch if false"},
	{OpCode: 0x3b, Mnemonic: "jmp", Operands: 1, Name: "jump"},
	{OpCode: 0x3c, Mnemonic: "add", Operands: 0, Name: "add"},
	{OpCode: 0x3d, Mnemonic: "sub", Operands: 0, Name: "subtract"},
	{OpCode: 0x3e, Mnemonic: "mul", Operands: 0, Name: "multiply"},
	{OpCode: 0x3f, Mnemonic: "div", Operands: 0, Name: "divide"},
	{OpCode: 0x40, Mnemonic: "pow", Operands: 0, Name: "power"},
	{OpCode: 0x41, Mnemonic: "cgt", Operands: 0, Name: "compare greater than"},
	{OpCode: 0x42, Mnemonic: "clt", Operands: 0, Name: "compare less than"},
	{OpCode: 0x43, Mnemonic: "cge", Operands: 0, Name: "compare greater or equal"},
	{OpCode: 0x44, Mnemonic: "cle", Operands: 0, Name: "compare less or equal"},
	{OpCode: 0x45, Mnemonic: "ceq", Operands: 0, Name: "compare equal"},
	{OpCode: 0x46, Mnemonic: "cne", Operands: 0, Name: "compare not equal"},
	{OpCode: 0x47, Mnemonic: "neg", Operands: 0, Name: "negate"},
	{OpCode: 0x48, Mnemonic: "bool", Operands: 0, Name: "convert to boolean"},
	{OpCode: 0x49, Mnemonic: "not", Operands: 0, Name: "logical not"},
	{OpCode: 0x4a, Mnemonic: "and", Operands: 0, Name: "logical and"},
	{OpCode: 0x4b, Mnemonic: "or", Operands: 0, Name: "logical or"},
	{OpCode: 0x4c, Mnemonic: "call", Operands: 2, Name: "call"},
	{OpCode: 0x4d, Mnemonic: "ret", Operands: 1, Name: "return"},
	{OpCode: 0x4e, Mnemonic: "push", Operands: 1, Name: "push"},
	{OpCode: 0x4f, Mnemonic: "pop", Operands: 0, Name: "pop"},
	{OpCode: 0x50, Mnemonic: "dup", Operands: 0, Name: "duplicate"},
	{OpCode: 0x51, Mnemonic: "swap", Operands: 0, Name: "swap"},
	{OpCode: 0x52, Mnemonic: "eval", Operands: 0, Name: "evaluate"},
	{OpCode: 0x53, Mnemonic: "addt", Operands: 2, Name: "add trigger"},
	{OpCode: 0x54, Mnemonic: "rmvt", Operands: 0, Name: "remove trigger"},
	{OpCode: 0x55, Mnemonic: "wait", Operands: 0, Name: "wait"},
	{OpCode: 0x56, Mnemonic: "endw", Operands: 0, Name: "end wait"},
	{OpCode: 0x57, Mnemonic: "gmet", Operands: 1, Name: "get method"},
	{OpCode: 0x58, Mnemonic: "stol", Operands: 1, Name: "store local"},
	{OpCode: 0x59, Mnemonic: "stog", Operands: 1, Name: "store global"},
	{OpCode: 0x5a, Mnemonic: "bscp", Operands: 2, Name: "begin scope"},
	{OpCode: 0x5b, Mnemonic: "escp", Operands: 1, Name: "end scope"},
	{OpCode: 0x5c, Mnemonic: "stoe", Operands: 1, Name: "store exist"},
	{OpCode: 0x5d, Mnemonic: "phdl", Operands: 2, Name: "push delegate"},
	{OpCode: 0x5e, Mnemonic: "btr", Operands: 1, Name: "branch if true"},
	{OpCode: 0x5f, Mnemonic: "exst", Operands: 0, Name: "exists"},
	{OpCode: 0x60, Mnemonic: "argb", Operands: 0, Name: "argument bottom"},
	{OpCode: 0x61, Mnemonic: "targ", Operands: 0, Name: "test argument bottom"},
	{OpCode: 0x62, Mnemonic: "tcan", Operands: 0, Name: "test cancelled"},
	{OpCode: 0xcd, Mnemonic: "pdrl", Operands: 2, Name: "push delegate relocate later"},
	{OpCode: 0xce, Mnemonic: "prl", Operands: 1, Name: "push relocate later"},
	{OpCode: LabelReset, Mnemonic: "lbrt", Operands: 1, Name: "label reset"},
}

// indexed by opcode. a nil entry is an unknown opcode
var table [256]*Definition

func init() {
	for i := range definitions {
		d := &definitions[i]
		if table[d.OpCode] != nil {
			panic(fmt.Sprintf("instructions: duplicate opcode %#02x", d.OpCode))
		}
		if d.Mnemonic == "" {
			panic(fmt.Sprintf("instructions: opcode %#02x has no mnemonic", d.OpCode))
		}
		if d.Operands < 0 || d.Operands > 2 {
			panic(fmt.Sprintf("instructions: %s has %d operands", d.Mnemonic, d.Operands))
		}
		table[d.OpCode] = d
	}
}

// Lookup returns the Definition for the opcode.
func Lookup(opcode uint8) (Definition, error) {
	d := table[opcode]
	if d == nil {
		return Definition{}, curated.Errorf(UnknownOpcode, opcode)
	}
	return *d, nil
}

// Definitions returns every instruction definition in opcode order.
func Definitions() []Definition {
	d := make([]Definition, 0, len(definitions))
	for _, p := range table {
		if p != nil {
			d = append(d, *p)
		}
	}
	return d
}

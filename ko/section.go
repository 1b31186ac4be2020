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

package ko

import (
	"github.com/jetsetilly/kdump/instructions"
	"github.com/jetsetilly/kdump/kosvalue"
)

// Kind is the type of a section.
type Kind uint8

// List of valid Kinds.
const (
	Null Kind = iota
	Func
	Data
	StrTab
	SymTab
	Reld
	Debug

	numKinds
)

var kindNames = [numKinds]string{"NULL", "FUNC", "DATA", "STRTAB", "SYMTAB", "RELD", "DEBUG"}

func (k Kind) String() string {
	if k >= numKinds {
		return "UNKNOWN"
	}
	return kindNames[k]
}

// SectionHeader is an entry in the section header table.
type SectionHeader struct {
	NameIdx uint32
	Kind    Kind
	Size    uint32

	// offset of the section body from the start of the file. not stored in
	// the file
	Offset int
}

// Section is a section header and the decoded section body. Only the body
// field appropriate to the Kind is used.
type Section struct {
	Index  int
	Header SectionHeader

	Strings    *StringTable
	Data       *DataSection
	Symbols    *SymbolTable
	Relocation *RelocationTable
	Function   *FuncSection
	Raw        []byte
}

// DataSection is a pool of constant values. Values are referred to by
// position.
type DataSection struct {
	Pool *kosvalue.Pool
}

// Add a value to the section and return its position.
func (d *DataSection) Add(v kosvalue.Value) uint32 {
	d.Pool.Append(v)
	return uint32(d.Pool.Len() - 1)
}

// Get the value at the position.
func (d *DataSection) Get(idx uint32) (kosvalue.Value, bool) {
	return d.Pool.At(int(idx))
}

// Instruction in a function section. Operands are positions in the .data
// section unless a relocation entry says otherwise.
type Instruction struct {
	Defn     instructions.Definition
	Operands []uint32
}

// Size of the encoded instruction.
func (ins Instruction) Size() int {
	return ins.Defn.Size(OperandWidth)
}

// OperandWidth is the width of every instruction operand in an object file.
const OperandWidth = 4

// FuncSection is a sequence of instructions.
type FuncSection struct {
	Instructions []Instruction
}

// Add an instruction to the section. The number of operands must match the
// definition of the opcode.
func (fn *FuncSection) Add(opcode uint8, operands ...uint32) error {
	defn, err := instructions.Lookup(opcode)
	if err != nil {
		return err
	}
	if len(operands) != defn.Operands {
		return malformed("wrong number of operands for %s", defn.Mnemonic)
	}
	fn.Instructions = append(fn.Instructions, Instruction{Defn: defn, Operands: operands})
	return nil
}

// InstructionCount returns the number of real instructions in the section.
// Label reset markers are not counted.
func (fn *FuncSection) InstructionCount() int {
	n := 0
	for _, ins := range fn.Instructions {
		if !ins.Defn.IsLabelReset() {
			n++
		}
	}
	return n
}

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

package ksm

import (
	"github.com/jetsetilly/kdump/instructions"
)

// SectionType distinguishes the three kinds of code section.
type SectionType int

// List of valid SectionTypes. The value of each type is the number of
// repeated markers that follow the %F marker.
const (
	Function SectionType = iota
	Initialization
	Main
)

func (t SectionType) String() string {
	switch t {
	case Function:
		return "FUNCTION"
	case Initialization:
		return "INITIALIZATION"
	case Main:
		return "MAIN"
	}
	return "UNKNOWN"
}

// every code section is a group of three markers. the markers not in front of
// the instructions are after them
var markers = [3][]byte{[]byte("%F"), []byte("%I"), []byte("%M")}

// HeaderSize is the number of marker bytes in front of the instructions.
func (t SectionType) HeaderSize() int {
	return 2 * (int(t) + 1)
}

// TrailerSize is the number of marker bytes after the instructions.
func (t SectionType) TrailerSize() int {
	return 2 * (2 - int(t))
}

// Instruction is a single decoded instruction.
type Instruction struct {
	Defn     instructions.Definition
	Operands []uint32

	// number of bytes in the encoded instruction
	Size int
}

// NewInstruction creates an Instruction for the opcode. The number of
// operands must match the definition of the opcode. The Size field is set by
// File.Layout().
func NewInstruction(opcode uint8, operands ...uint32) (Instruction, error) {
	defn, err := instructions.Lookup(opcode)
	if err != nil {
		return Instruction{}, err
	}
	if len(operands) != defn.Operands {
		return Instruction{}, malformed("wrong number of operands for %s", defn.Mnemonic)
	}
	return Instruction{Defn: defn, Operands: operands}, nil
}

// Section is a code section.
type Section struct {
	Type         SectionType
	Instructions []Instruction

	// address of the first byte of the section marker. addresses begin at
	// zero with the first code section
	Offset int
}

// Start returns the address of the first instruction.
func (s *Section) Start() int {
	return s.Offset + s.Type.HeaderSize()
}

// Size returns the size of the section. The instructions and the marker
// bytes in front of them.
func (s *Section) Size() int {
	n := s.Type.HeaderSize()
	for _, ins := range s.Instructions {
		n += ins.Size
	}
	return n
}

// Footprint returns the number of bytes occupied by the section, including
// the markers after the instructions.
func (s *Section) Footprint() int {
	return s.Size() + s.Type.TrailerSize()
}

// InstructionCount returns the number of real instructions in the section.
// Label reset markers are not counted.
func (s *Section) InstructionCount() int {
	n := 0
	for _, ins := range s.Instructions {
		if !ins.Defn.IsLabelReset() {
			n++
		}
	}
	return n
}

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

// Binding of a symbol.
type Binding uint8

// List of valid Bindings.
const (
	Local Binding = iota
	Global
	Extern
)

func (b Binding) String() string {
	switch b {
	case Local:
		return "LOCAL"
	case Global:
		return "GLOBAL"
	case Extern:
		return "EXTERN"
	}
	return "UNKNOWN"
}

// SymbolType is the kind of thing a symbol names.
type SymbolType uint8

// List of valid SymbolTypes.
const (
	NoType SymbolType = iota
	Object
	FuncSymbol
	SectionSymbol
	FileSymbol
)

func (t SymbolType) String() string {
	switch t {
	case NoType:
		return "NOTYPE"
	case Object:
		return "OBJECT"
	case FuncSymbol:
		return "FUNC"
	case SectionSymbol:
		return "SECTION"
	case FileSymbol:
		return "FILE"
	}
	return "UNKNOWN"
}

// Symbol is an entry in a symbol table.
type Symbol struct {
	// offset into the .symstrtab section
	NameIdx uint32

	// position in the .data section
	ValueIdx uint32

	Size       uint16
	Bind       Binding
	Type       SymbolType
	SectionIdx uint16
}

// size of an encoded symbol
const symbolSize = 14

// SymbolTable is a list of symbols, referred to by position.
type SymbolTable struct {
	Symbols []Symbol
}

// Get the symbol at the position.
func (tab *SymbolTable) Get(idx uint32) (Symbol, bool) {
	if int64(idx) >= int64(len(tab.Symbols)) {
		return Symbol{}, false
	}
	return tab.Symbols[idx], true
}

// Operand identifies which operand of an instruction a relocation entry
// applies to.
type Operand uint8

// List of valid Operand values.
const (
	FirstOperand Operand = iota
	SecondOperand
)

// Relocation says that an instruction operand refers to a symbol and not to
// a value in the .data section.
type Relocation struct {
	SectionIdx uint16
	InstrIdx   uint32
	Operand    Operand
	SymbolIdx  uint32
}

// size of an encoded relocation entry
const relocationSize = 11

// RelocationTable is a list of relocation entries.
type RelocationTable struct {
	Entries []Relocation
}

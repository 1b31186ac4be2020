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

	"github.com/jetsetilly/kdump/curated"
	"github.com/jetsetilly/kdump/ko"
	"github.com/jetsetilly/kdump/kosvalue"
	"github.com/jetsetilly/kdump/ksm"
	"github.com/jetsetilly/kdump/logger"
)

// DanglingReference is the pattern for an operand that refers to a value or
// symbol that does not exist. It is the same pattern used by the ko package.
const DanglingReference = ko.DanglingReference

// UnsupportedSymbolKind is the pattern for an operand that refers to a symbol
// that cannot be shown in a disassembly.
const UnsupportedSymbolKind = "unsupported symbol kind: %v"

// Format of the file that was disassembled.
type Format int

// List of valid Format values.
const (
	KSM Format = iota
	KO
)

func (f Format) String() string {
	switch f {
	case KSM:
		return "KSM"
	case KO:
		return "KO"
	}
	return "unknown format"
}

// Section is a disassembled code section.
type Section struct {
	// index of the section. for machine-code files this is the position of
	// the section in the file. for object files it is the section header
	// index
	Index int

	// MAIN, INIT, FUNC or the name of a function. for object files the name
	// of the section
	Name string

	Entries []*Entry
}

// InstructionCount returns the number of real instructions in the section.
// Label reset markers are not counted.
func (s *Section) InstructionCount() int {
	n := 0
	for _, e := range s.Entries {
		if !e.IsLabelReset() {
			n++
		}
	}
	return n
}

// Disassembly is the disassembly of every code section in a file.
type Disassembly struct {
	Format   Format
	Sections []*Section

	// width of operand indexes in bytes
	OperandWidth int

	// number of digits in the largest line number of the debug section. zero
	// if there is no debug information
	LineDigits int

	// formatting information for all entries
	fields fields
}

// FromKSM disassembles every code section in a machine-code file.
func FromKSM(f *ksm.File) (*Disassembly, error) {
	dsm := &Disassembly{
		Format:       KSM,
		OperandWidth: f.IndexWidth,
	}
	if m := f.Debug.MaxLine(); m > 0 {
		dsm.LineDigits = len(fmt.Sprintf("%d", m))
	}

	// the label counter continues from one section to the next
	lab := newLabeller("@%06d")
	count := 0

	for si, s := range f.Sections {
		sec := &Section{Index: si}
		lab.endSection()

		addr := s.Start()
		for i, ins := range s.Instructions {
			e := &Entry{
				Address:  addr,
				Defn:     ins.Defn,
				Bytecode: bytecode(ins.Defn, ins.Operands, f.IndexWidth),
			}

			for _, raw := range ins.Operands {
				v, ok := f.Pool.Get(int(raw))
				if !ok {
					return nil, curated.Errorf("disassembly: %v",
						curated.Errorf(DanglingReference, fmt.Sprintf("argument index (%#x) in section %d, instruction %d", raw, si, i)))
				}
				e.Operands = append(e.Operands, Operand{Raw: raw, Kind: ValueOperand, Value: v})
			}

			nextSize := 0
			if i+1 < len(s.Instructions) {
				nextSize = s.Instructions[i+1].Size
			}
			e.Gutter = gutterFor(f.Debug, addr, ins.Size, nextSize)

			if e.IsLabelReset() {
				if t, ok := labelText(e); ok {
					lab.reset(t)
				}
			} else {
				count++
				e.Label = lab.label(count)
			}

			sec.Entries = append(sec.Entries, e)
			dsm.fields.update(e)
			addr += ins.Size
		}

		sec.Name = ksmSectionName(s.Type, sec)
		dsm.Sections = append(dsm.Sections, sec)
	}

	logger.Logf(logger.Allow, "disassembly", "%d code sections, %d instructions", len(dsm.Sections), count)

	return dsm, nil
}

// the text of the label in a label reset entry
func labelText(e *Entry) (string, bool) {
	if len(e.Operands) == 0 || !e.Operands[0].Value.IsString() {
		return "", false
	}
	return e.Operands[0].Value.Str(), true
}

// the name of the function defined by the section. functions from the
// official compiler are mangled with a backtick separated suffix
func functionName(sec *Section) (string, bool) {
	if len(sec.Entries) == 0 || !sec.Entries[0].IsLabelReset() {
		return "", false
	}
	t, ok := labelText(sec.Entries[0])
	if !ok {
		return "", false
	}
	t, _, _ = strings.Cut(t, "`")
	return t, true
}

func ksmSectionName(typ ksm.SectionType, sec *Section) string {
	switch typ {
	case ksm.Main:
		return "MAIN"
	case ksm.Initialization:
		return "INIT"
	}
	if n, ok := functionName(sec); ok {
		return n
	}
	return "FUNC"
}

// FromKO disassembles every function section in an object file. Operands are
// resolved through the .data section unless a relocation entry says that the
// operand refers to a symbol.
func FromKO(f *ko.File) (*Disassembly, error) {
	dsm := &Disassembly{
		Format:       KO,
		OperandWidth: ko.OperandWidth,
	}

	res, err := newResolver(f)
	if err != nil {
		return nil, curated.Errorf("disassembly: %v", err)
	}

	for _, s := range f.SectionsOfKind(ko.Func) {
		name, err := f.Name(s)
		if err != nil {
			return nil, curated.Errorf("disassembly: %v", err)
		}

		sec := &Section{Index: s.Index, Name: name}
		lab := newLabeller("%08x")

		for i, ins := range s.Function.Instructions {
			e := &Entry{
				Address:  i,
				Defn:     ins.Defn,
				Bytecode: bytecode(ins.Defn, ins.Operands, ko.OperandWidth),
			}

			for j, raw := range ins.Operands {
				op, err := res.resolve(s.Index, i, j, raw)
				if err != nil {
					return nil, curated.Errorf("disassembly: %s: instruction %d: %v", name, i, err)
				}
				e.Operands = append(e.Operands, op)
			}

			if e.IsLabelReset() {
				if t, ok := labelText(e); ok {
					lab.reset(t)
				}
			} else {
				e.Label = lab.label(i + 1)
			}

			sec.Entries = append(sec.Entries, e)
			dsm.fields.update(e)
		}

		dsm.Sections = append(dsm.Sections, sec)
	}

	logger.Logf(logger.Allow, "disassembly", "%d function sections", len(dsm.Sections))

	return dsm, nil
}

// resolver finds the value or symbol referred to by an object file operand.
type resolver struct {
	f      *ko.File
	data   *ko.Section
	symtab *ko.Section
	relocs map[ko.RelocationKey]ko.Relocation
}

func newResolver(f *ko.File) (*resolver, error) {
	res := &resolver{f: f}

	var err error
	res.relocs, err = f.Relocations()
	if err != nil {
		return nil, err
	}

	res.data, _ = f.SectionByName(ko.DataName, ko.Data)
	res.symtab, _ = f.SectionByName(ko.SymTabName, ko.SymTab)

	return res, nil
}

func (res *resolver) value(idx uint32) (kosvalue.Value, error) {
	if res.data == nil {
		return kosvalue.Value{}, curated.Errorf(DanglingReference, fmt.Sprintf("operand refers to the missing %s section", ko.DataName))
	}
	v, ok := res.data.Data.Get(idx)
	if !ok {
		return kosvalue.Value{}, curated.Errorf(DanglingReference, fmt.Sprintf("%s index (%d)", ko.DataName, idx))
	}
	return v, nil
}

func (res *resolver) resolve(section int, instr int, operand int, raw uint32) (Operand, error) {
	key := ko.RelocationKey{
		SectionIdx: uint16(section),
		InstrIdx:   uint32(instr),
		Operand:    ko.Operand(operand),
	}

	r, ok := res.relocs[key]
	if !ok {
		v, err := res.value(raw)
		if err != nil {
			return Operand{}, err
		}
		return Operand{Raw: raw, Kind: ValueOperand, Value: v}, nil
	}

	if res.symtab == nil {
		return Operand{}, curated.Errorf(DanglingReference, fmt.Sprintf("relocation refers to the missing %s section", ko.SymTabName))
	}
	sym, ok := res.symtab.Symbols.Get(r.SymbolIdx)
	if !ok {
		return Operand{}, curated.Errorf(DanglingReference, fmt.Sprintf("symbol index (%d)", r.SymbolIdx))
	}
	name, err := res.f.SymbolName(sym)
	if err != nil {
		return Operand{}, err
	}

	op := Operand{
		Raw:        raw,
		Symbol:     name,
		SymbolType: sym.Type,
		Relocated:  true,
	}

	switch sym.Type {
	case ko.FuncSymbol, ko.SectionSymbol:
		op.Kind = SymbolOperand
	case ko.Object, ko.NoType:
		op.Kind = ValueOperand
		op.Value, err = res.value(sym.ValueIdx)
		if err != nil {
			return Operand{}, err
		}
	default:
		return Operand{}, curated.Errorf(UnsupportedSymbolKind, fmt.Sprintf("%s symbol %q", sym.Type, name))
	}

	return op, nil
}

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
	"bytes"
	"fmt"
	"strings"

	"github.com/jetsetilly/kdump/curated"
	"github.com/jetsetilly/kdump/cursor"
	"github.com/jetsetilly/kdump/instructions"
	"github.com/jetsetilly/kdump/kosvalue"
	"github.com/jetsetilly/kdump/logger"
)

// Magic is the first four bytes of a decompressed machine-code file.
var Magic = []byte{0x6b, 0x03, 0x58, 0x45}

// NotMachineCode is the sentinel pattern for data that does not begin with
// the machine-code magic number.
const NotMachineCode = "not a machine-code file"

// UnknownSectionMarker is the sentinel pattern for a section marker that is
// not recognised in the current context.
const UnknownSectionMarker = "unknown section marker (%q) at offset %#x"

// MalformedSectionStructure is the sentinel pattern for a section with a
// missing or misplaced marker, or an otherwise impossible structure.
const MalformedSectionStructure = "malformed section structure: %v"

func malformed(detail string, args ...any) error {
	return curated.Errorf(MalformedSectionStructure, fmt.Sprintf(detail, args...))
}

var (
	argumentMarker = []byte("%A")
	debugMarker    = []byte("%D")
)

// File is a parsed machine-code file.
type File struct {
	// width in bytes of instruction operands
	IndexWidth int

	Pool     *kosvalue.Pool
	Sections []*Section
	Debug    *Debug
}

// NewFile creates an empty File with the specified index width.
func NewFile(indexWidth int) *File {
	return &File{
		IndexWidth: indexWidth,
		Pool:       kosvalue.NewPool(poolBase()),
		Debug:      &Debug{RangeWidth: indexWidth},
	}
}

// byte index of the first pool value. indices are counted from the end of
// the magic number and the first value follows the %A marker and the index
// width byte
func poolBase() int {
	return len(argumentMarker) + 1
}

// Parse the decompressed content of a machine-code file.
func Parse(data []byte) (*File, error) {
	c := cursor.NewCursor(data)

	ok, err := c.Expect(Magic)
	if err != nil {
		return nil, curated.Errorf("ksm: %v", err)
	}
	if !ok {
		return nil, curated.Errorf("ksm: %v", curated.Errorf(NotMachineCode))
	}

	f := &File{}

	err = f.parseArguments(c)
	if err != nil {
		return nil, curated.Errorf("ksm: argument section: %v", err)
	}

	for {
		m, err := c.PeekN(2)
		if err != nil {
			return nil, curated.Errorf("ksm: %v", err)
		}
		if bytes.Equal(m, debugMarker) {
			break
		}
		if !bytes.Equal(m, markers[0]) {
			return nil, curated.Errorf("ksm: %v", curated.Errorf(UnknownSectionMarker, string(m), c.Pos()))
		}

		s, err := f.parseSection(c)
		if err != nil {
			return nil, curated.Errorf("ksm: code section %d: %v", len(f.Sections), err)
		}
		f.Sections = append(f.Sections, s)
	}

	err = f.parseDebug(c)
	if err != nil {
		return nil, curated.Errorf("ksm: debug section: %v", err)
	}

	f.Layout()

	logger.Logf(logger.Allow, "ksm", "%d code sections, %d debug entries", len(f.Sections), len(f.Debug.Entries))

	return f, nil
}

func (f *File) parseArguments(c *cursor.Cursor) error {
	ok, err := c.Expect(argumentMarker)
	if err != nil {
		return err
	}
	if !ok {
		m, _ := c.PeekN(2)
		return curated.Errorf(UnknownSectionMarker, string(m), c.Pos())
	}

	w, err := c.Next()
	if err != nil {
		return err
	}
	if w < 1 || w > 4 {
		return malformed("index width of %d bytes", w)
	}
	f.IndexWidth = int(w)

	// the pool base could be calculated from the cursor position but it is
	// always the same value
	f.Pool = kosvalue.NewPool(poolBase())

	err = f.Pool.DecodeValues(c, atMarker)
	if err != nil {
		return err
	}

	// values are terminated by the next section marker, not by the end of the
	// data
	if c.EOF() {
		_, err = c.Peek()
		return err
	}

	logger.Logf(logger.Allow, "ksm", "%d arguments, index width %d", f.Pool.Len(), f.IndexWidth)

	return nil
}

func atMarker(c *cursor.Cursor) bool {
	b, err := c.Peek()
	return err == nil && b == '%'
}

func (f *File) parseSection(c *cursor.Cursor) (*Section, error) {
	// the %F marker has already been peeked
	if err := c.Skip(2); err != nil {
		return nil, err
	}

	s := &Section{}

	for atMarker(c) {
		m, err := c.PeekN(2)
		if err != nil {
			return nil, err
		}
		if !bytes.Equal(m, markers[1]) && !bytes.Equal(m, markers[2]) {
			break
		}
		if s.Type == Main {
			return nil, malformed("too many section markers at offset %#x", c.Pos())
		}
		if !bytes.Equal(m, markers[s.Type+1]) {
			return nil, malformed("section marker %q out of order at offset %#x", string(m), c.Pos())
		}
		_ = c.Skip(2)
		s.Type++
	}

	for {
		b, err := c.Peek()
		if err != nil {
			return nil, err
		}
		if b == '%' {
			break
		}

		ins, err := f.parseInstruction(c)
		if err != nil {
			return nil, curated.Errorf("instruction %d: %v", len(s.Instructions), err)
		}
		s.Instructions = append(s.Instructions, ins)
	}

	for _, m := range markers[s.Type+1:] {
		ok, err := c.Expect(m)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, malformed("%s section is missing the %q marker at offset %#x", s.Type, string(m), c.Pos())
		}
	}

	return s, nil
}

func (f *File) parseInstruction(c *cursor.Cursor) (Instruction, error) {
	start := c.Pos()

	op, err := c.Next()
	if err != nil {
		return Instruction{}, err
	}

	ins := Instruction{}
	ins.Defn, err = instructions.Lookup(op)
	if err != nil {
		return Instruction{}, curated.Errorf("offset %#x: %v", start, err)
	}

	ins.Operands = make([]uint32, ins.Defn.Operands)
	for i := range ins.Operands {
		ins.Operands[i], err = c.VarUint(f.IndexWidth)
		if err != nil {
			return Instruction{}, err
		}
	}

	ins.Size = c.Pos() - start

	return ins, nil
}

func (f *File) parseDebug(c *cursor.Cursor) error {
	// the %D marker has already been peeked
	if err := c.Skip(2); err != nil {
		return err
	}

	w, err := c.Next()
	if err != nil {
		return err
	}
	if w < 1 || w > 4 {
		return malformed("range width of %d bytes", w)
	}

	f.Debug = &Debug{RangeWidth: int(w)}

	for !c.EOF() {
		line, err := c.Uint16BE()
		if err != nil {
			return err
		}

		n, err := c.Next()
		if err != nil {
			return err
		}

		e := DebugEntry{Line: int(line), Ranges: make([]DebugRange, n)}
		for i := range e.Ranges {
			e.Ranges[i].Start, err = c.VarUint(f.Debug.RangeWidth)
			if err != nil {
				return err
			}
			e.Ranges[i].End, err = c.VarUint(f.Debug.RangeWidth)
			if err != nil {
				return err
			}
		}

		f.Debug.Entries = append(f.Debug.Entries, e)
	}

	return nil
}

// Layout sets the size of every instruction and the offset of every section.
// Parse() calls Layout() automatically but it should be called after a File
// has been built or modified by hand.
func (f *File) Layout() {
	offset := 0
	for _, s := range f.Sections {
		s.Offset = offset
		for i := range s.Instructions {
			s.Instructions[i].Size = s.Instructions[i].Defn.Size(f.IndexWidth)
		}
		offset += s.Footprint()
	}
}

// Info returns a short description of the compiler that created the file. The
// first value in the pool is the only clue available.
func (f *File) Info() string {
	v, ok := f.Pool.At(0)
	if !ok || !v.IsString() {
		return "Unknown compiler"
	}

	// the official compiler places a label or a mangled function name at the
	// start of the pool
	if strings.HasPrefix(v.Str(), "@") || strings.Contains(v.Str(), "`") {
		return "Compiled using official kOS compiler."
	}

	return v.Str()
}

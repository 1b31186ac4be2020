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

	"github.com/jetsetilly/kdump/ksm"
)

// GutterState describes the position of an instruction within the debug
// range that covers it.
type GutterState int

// List of valid GutterState values.
const (
	// no debug range covers the instruction
	NoRange GutterState = iota

	// the range covers this instruction only
	Single

	// the range starts with this instruction and ends with the next
	OpensNextCloses

	// the range starts with this instruction
	Opens

	// the range ends with this instruction
	Closes

	// the middle of the range falls inside this instruction
	Middle

	// the instruction is inside the range
	Continues

	// the instruction starts inside the range but ends outside of it
	Overrun
)

var glyphs = map[GutterState]string{
	NoRange:         "    ",
	Single:          "═══ ",
	OpensNextCloses: "═╦═ ",
	Opens:           " ╔═ ",
	Closes:          " ╚═ ",
	Middle:          "═╣  ",
	Continues:       " ║  ",
	Overrun:         "    ",
}

// Gutter is the line number gutter of a single entry.
type Gutter struct {
	State GutterState
	Line  int
}

// ShowsLine returns true if the line number should be shown in the gutter.
func (g Gutter) ShowsLine() bool {
	switch g.State {
	case Single, OpensNextCloses, Middle:
		return true
	}
	return false
}

// Glyph returns the box drawing characters for the gutter.
func (g Gutter) Glyph() string {
	return glyphs[g.State]
}

// Format the gutter. The digits argument is the number of digits in the
// largest line number that will be shown. Gutters are all the same width for
// the same value of digits.
func (g Gutter) Format(digits int) string {
	width := digits + 4
	if !g.ShowsLine() {
		return fmt.Sprintf("%s%s", strings.Repeat(" ", width), g.Glyph())
	}
	return fmt.Sprintf("%*s%s", width, fmt.Sprintf("   %d ", g.Line), g.Glyph())
}

// span is an instruction considered for its position in a debug range. all
// addresses are inclusive
type span struct {
	addr uint32

	// address of the last byte of the instruction
	last uint32

	// size of the next instruction in the section. zero if there is no next
	// instruction
	nextSize uint32

	r ksm.DebugRange
}

// the order of rules is important. the first matching rule decides the state
var gutterRules = []struct {
	state GutterState
	match func(s span) bool
}{
	{Single, func(s span) bool {
		return s.addr == s.r.Start && s.last == s.r.End
	}},
	{OpensNextCloses, func(s span) bool {
		return s.addr == s.r.Start && s.nextSize > 0 && s.last+s.nextSize == s.r.End
	}},
	{Opens, func(s span) bool {
		return s.addr == s.r.Start
	}},
	{Closes, func(s span) bool {
		return s.last == s.r.End
	}},
	{Middle, func(s span) bool {
		m := s.r.Mid()
		return m >= s.addr && m <= s.last
	}},
	{Continues, func(s span) bool {
		return s.last < s.r.End && s.addr > s.r.Start
	}},
}

// classify the instruction at the address. size is the number of bytes in the
// instruction and nextSize is the number of bytes in the instruction that
// follows it in the same section (zero if there isn't one).
func classify(addr uint32, size int, nextSize int, r ksm.DebugRange) GutterState {
	s := span{
		addr:     addr,
		last:     addr + uint32(size) - 1,
		nextSize: uint32(nextSize),
		r:        r,
	}
	for _, rule := range gutterRules {
		if rule.match(s) {
			return rule.state
		}
	}
	return Overrun
}

// gutterFor returns the gutter for the instruction using the debug section
// of the file. a nil debug section results in an empty gutter
func gutterFor(dbg *ksm.Debug, addr int, size int, nextSize int) Gutter {
	e, r, ok := dbg.Find(uint32(addr))
	if !ok {
		return Gutter{}
	}
	return Gutter{
		State: classify(uint32(addr), size, nextSize, r),
		Line:  e.Line,
	}
}

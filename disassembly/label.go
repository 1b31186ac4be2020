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
)

// the number of characters in a label, including the @ prefix
const labelLen = 7

// normaliseLabel formats text taken from a label reset instruction. labels
// that start with @ are zero padded to the same width as synthesised labels.
//
// padding differs from inserting a fixed two zeros after the @ and
// truncating. the two agree for labels of up to four digits but not for longer
// labels: @10000 is @010000 and not @001000.
func normaliseLabel(text string) string {
	if strings.HasPrefix(text, "@") {
		n := text[1:]
		if len(n) < labelLen-1 {
			n = strings.Repeat("0", labelLen-1-len(n)) + n
		}
		text = "@" + n
	}

	r := []rune(text)
	if len(r) > labelLen {
		r = r[:labelLen]
	}
	return string(r)
}

// labeller synthesises the labels for a sequence of instructions.
type labeller struct {
	// the format of a synthesised label
	format string

	// the label applied to the next instruction instead of a synthesised
	// label
	override string
	pending  bool
}

func newLabeller(format string) *labeller {
	return &labeller{format: format}
}

// reset sets the label for the next instruction.
func (l *labeller) reset(text string) {
	l.override = normaliseLabel(text)
	l.pending = true
}

// endSection discards a reset that was not followed by an instruction in the
// same section.
func (l *labeller) endSection() {
	l.pending = false
}

// label returns the label for an instruction. n is the number used to
// synthesise the label if no reset is pending.
func (l *labeller) label(n int) string {
	if l.pending {
		l.pending = false
		return l.override
	}
	return fmt.Sprintf(l.format, n)
}

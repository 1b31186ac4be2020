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

package instructions_test

import (
	"testing"

	"github.com/jetsetilly/kdump/instructions"
	"github.com/jetsetilly/kdump/test"
)

func TestLookup(t *testing.T) {
	d, err := instructions.Lookup(0x4c)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, d.Mnemonic, "call")
	test.ExpectEquality(t, d.Operands, 2)
	test.ExpectEquality(t, d.Size(2), 5)
	test.ExpectEquality(t, d.Size(4), 9)

	d, err = instructions.Lookup(instructions.LabelReset)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, d.Mnemonic, "lbrt")
	test.ExpectSuccess(t, d.IsLabelReset())

	_, err = instructions.Lookup(0x00)
	test.ExpectPattern(t, err, instructions.UnknownOpcode)
	_, err = instructions.Lookup(0x63)
	test.ExpectPattern(t, err, instructions.UnknownOpcode)
}

func TestTableConsistency(t *testing.T) {
	defs := instructions.Definitions()
	test.ExpectEquality(t, len(defs), 53)

	seen := make(map[string]bool)
	for i, d := range defs {
		if i > 0 {
			test.ExpectSuccess(t, defs[i-1].OpCode < d.OpCode, d.Mnemonic)
		}
		test.ExpectInequality(t, d.Mnemonic, "", d.OpCode)
		test.ExpectFailure(t, seen[d.Mnemonic], d.Mnemonic)
		seen[d.Mnemonic] = true

		l, err := instructions.Lookup(d.OpCode)
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, l, d)
	}
}

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

package prefs_test

import (
	"testing"

	"github.com/jetsetilly/kdump/prefs"
	"github.com/jetsetilly/kdump/test"
)

func TestCommandLineUnused(t *testing.T) {
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	// the string returned by pop is the normalised form of the pushed string
	tests := []struct {
		push   string
		unused string
	}{
		{push: "hex::true", unused: "hex::true"},
		{push: "  hex:: true ", unused: "hex::true"},
		{push: "raw::false; hex::true", unused: "hex::true; raw::false"},
		{push: "hex::true;;", unused: "hex::true"},
		{push: "hex_true", unused: ""},
		{push: "hex_true;raw::false", unused: "raw::false"},
	}

	for i, tst := range tests {
		prefs.PushCommandLineStack(tst.push)
		test.ExpectEquality(t, prefs.SizeCommandLineStack(), 1, i)
		test.ExpectEquality(t, prefs.PopCommandLineStack(), tst.unused, i)
		test.ExpectEquality(t, prefs.SizeCommandLineStack(), 0, i)
	}
}

func TestCommandLineGet(t *testing.T) {
	prefs.PushCommandLineStack("hex::true; colour::never")
	defer prefs.PopCommandLineStack()

	ok, v := prefs.GetCommandLinePref("hex")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, prefs.Value("true"))

	// a value can only be used once
	ok, _ = prefs.GetCommandLinePref("hex")
	test.ExpectFailure(t, ok)

	ok, _ = prefs.GetCommandLinePref("lookup")
	test.ExpectFailure(t, ok)
}

func TestCommandLineGroups(t *testing.T) {
	prefs.PushCommandLineStack("hex::true")
	prefs.PushCommandLineStack("raw::false")
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 2)

	// only the top group is consulted
	ok, _ := prefs.GetCommandLinePref("hex")
	test.ExpectFailure(t, ok)

	test.ExpectEquality(t, prefs.PopCommandLineStack(), "raw::false")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "hex::true")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")
}

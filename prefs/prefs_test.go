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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/kdump/prefs"
	"github.com/jetsetilly/kdump/test"
)

func TestDefaults(t *testing.T) {
	p := prefs.NewPrefs()
	test.ExpectEquality(t, p.Colour.String(), prefs.ColourAuto)
	test.ExpectSuccess(t, p.Raw.Bool())
	test.ExpectSuccess(t, p.Labels.Bool())
	test.ExpectFailure(t, p.LineNumbers.Bool())
	test.ExpectFailure(t, p.Hex.Bool())
	test.ExpectEquality(t, p.Lookup.String(), prefs.LookupExact)
	test.ExpectEquality(t, len(p.Keys()), 6)
}

func TestSet(t *testing.T) {
	p := prefs.NewPrefs()

	test.ExpectSuccess(t, p.Set("hex", true))
	test.ExpectSuccess(t, p.Hex.Bool())
	test.ExpectSuccess(t, p.Set("hex", "FALSE"))
	test.ExpectFailure(t, p.Hex.Bool())
	test.ExpectFailure(t, p.Set("hex", 10))

	test.ExpectSuccess(t, p.Set("colour", "Never"))
	test.ExpectEquality(t, p.Colour.String(), prefs.ColourNever)
	test.ExpectFailure(t, p.Set("colour", "sometimes"))
	test.ExpectEquality(t, p.Colour.String(), prefs.ColourNever)

	err := p.Set("foo", true)
	test.ExpectPattern(t, err, prefs.UnknownPreference)

	v, err := p.Get("colour")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, prefs.Value(prefs.ColourNever))

	test.ExpectSuccess(t, p.Reset())
	test.ExpectEquality(t, p.Colour.String(), prefs.ColourAuto)
}

func TestMissingFile(t *testing.T) {
	p := prefs.NewPrefs()
	test.ExpectSuccess(t, p.Load(filepath.Join(t.TempDir(), "missing.toml")))
	test.ExpectEquality(t, p.Colour.String(), prefs.ColourAuto)
}

func TestSaveLoad(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prefs.toml")

	p := prefs.NewPrefs()
	test.DemandSuccess(t, p.Set("lookup", prefs.LookupSubstring))
	test.DemandSuccess(t, p.Set("linenumbers", true))
	test.DemandSuccess(t, p.Set("raw", false))
	test.DemandSuccess(t, p.Save(fn))

	data, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(string(data), `lookup = "substring"`))
	test.ExpectSuccess(t, strings.Contains(string(data), "linenumbers = true"))

	q := prefs.NewPrefs()
	test.DemandSuccess(t, q.Load(fn))
	test.ExpectEquality(t, q.Lookup.String(), prefs.LookupSubstring)
	test.ExpectSuccess(t, q.LineNumbers.Bool())
	test.ExpectFailure(t, q.Raw.Bool())
	test.ExpectEquality(t, q.String(), p.String())
}

func TestLoadUnknownKey(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prefs.toml")
	test.DemandSuccess(t, os.WriteFile(fn, []byte("hex = true\naddress = false\n"), 0o600))

	p := prefs.NewPrefs()
	test.ExpectSuccess(t, p.Load(fn))
	test.ExpectSuccess(t, p.Hex.Bool())
}

func TestLoadBadValue(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prefs.toml")
	test.DemandSuccess(t, os.WriteFile(fn, []byte("colour = \"purple\"\n"), 0o600))

	p := prefs.NewPrefs()
	test.ExpectFailure(t, p.Load(fn))
}

func TestLoadMalformed(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prefs.toml")
	test.DemandSuccess(t, os.WriteFile(fn, []byte("colour = \n"), 0o600))

	p := prefs.NewPrefs()
	test.ExpectFailure(t, p.Load(fn))
}

func TestCommandLineOverride(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prefs.toml")
	test.DemandSuccess(t, os.WriteFile(fn, []byte("hex = false\n"), 0o600))

	prefs.PushCommandLineStack("hex::true; colour::never; foo::bar")
	defer prefs.PopCommandLineStack()

	p := prefs.NewPrefs()
	test.DemandSuccess(t, p.Load(fn))
	test.ExpectSuccess(t, p.Hex.Bool())
	test.ExpectEquality(t, p.Colour.String(), prefs.ColourNever)

	// used entries are removed from the stack
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "foo::bar")
}

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

package version

import (
	"testing"

	"github.com/jetsetilly/kdump/test"
)

func TestParseNumber(t *testing.T) {
	v, r := parseNumber("")
	test.ExpectEquality(t, v, "local")
	test.ExpectFailure(t, r)

	v, r = parseNumber("1.2.3")
	test.ExpectEquality(t, v, "v1.2.3")
	test.ExpectSuccess(t, r)

	v, r = parseNumber("v0.4.0-rc1")
	test.ExpectEquality(t, v, "v0.4.0-rc1")
	test.ExpectSuccess(t, r)

	v, r = parseNumber("banana")
	test.ExpectEquality(t, v, "banana (invalid)")
	test.ExpectFailure(t, r)
}

func TestVersion(t *testing.T) {
	v, rev, _ := Version()
	test.ExpectInequality(t, v, "")
	test.ExpectInequality(t, rev, "")
}

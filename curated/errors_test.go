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

package curated_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/kdump/curated"
	"github.com/jetsetilly/kdump/test"
)

const testPattern = "test error: %d"
const wrapPattern = "wrap: %v"

func TestIs(t *testing.T) {
	e := curated.Errorf(testPattern, 10)
	test.ExpectEquality(t, e.Error(), "test error: 10")
	test.ExpectSuccess(t, curated.IsAny(e))
	test.ExpectSuccess(t, curated.Is(e, testPattern))
	test.ExpectFailure(t, curated.Is(e, wrapPattern))

	test.ExpectFailure(t, curated.IsAny(errors.New("plain")))
	test.ExpectFailure(t, curated.IsAny(nil))
}

func TestHas(t *testing.T) {
	e := curated.Errorf(testPattern, 10)
	f := curated.Errorf(wrapPattern, e)

	test.ExpectFailure(t, curated.Is(f, testPattern))
	test.ExpectSuccess(t, curated.Has(f, testPattern))
	test.ExpectSuccess(t, curated.Has(f, wrapPattern))
	test.ExpectFailure(t, curated.Has(f, "not present"))

	// the standard errors package can see through curated wrapping
	test.ExpectSuccess(t, curated.Is(errors.Unwrap(f), testPattern))
	test.ExpectSuccess(t, errors.Unwrap(e) == nil)
}

func TestDeduplication(t *testing.T) {
	e := curated.Errorf("ko: %v", curated.Errorf("ko: %v", curated.Errorf("bad section")))
	test.ExpectEquality(t, e.Error(), "ko: bad section")

	// non-adjacent duplicates are left alone
	e = curated.Errorf("a: b: %v", curated.Errorf("a: c"))
	test.ExpectEquality(t, e.Error(), "a: b: a: c")
}

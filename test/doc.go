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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The Expect*() functions report a test error and allow the test to continue.
// The Demand*() functions are fatal and should be used when the result is
// needed by later parts of the test. For example, the length of a slice must
// be correct before the elements of the slice can be examined.
//
// Success and failure are judged according to the type of the value. A bool
// is successful if it is true and an error is successful if it is nil. The
// nil type is considered a success, because of how errors usually work.
//
// ExpectPattern() checks that an error is a curated error with the specified
// pattern somewhere in its chain.
//
// The CompareWriter type implements the io.Writer interface and should be
// used to capture output for comparison.
package test

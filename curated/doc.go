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

// Package curated is a helper package for the plain Go language error type.
// Every error raised by kdump is a curated error.
//
// Curated errors are created with the Errorf() function. It takes a
// formatting pattern and placeholder values, in the same way as the Errorf()
// function in the fmt package. The pattern is the identity of the error:
//
//	e := curated.Errorf("unexpected end of input at offset %d", 10)
//
//	if curated.Is(e, "unexpected end of input at offset %d") {
//		fmt.Println("true")
//	}
//
// The Has() function checks whether a pattern occurs anywhere in the chain of
// wrapped errors. Wrapping is done by passing a curated error as one of the
// placeholder values:
//
//	f := curated.Errorf("ksm: %v", e)
//	curated.Is(f, "unexpected end of input at offset %d")  // false
//	curated.Has(f, "unexpected end of input at offset %d") // true
//
// Sentinel patterns are stored as exported const strings in the package that
// raises them. For example, cursor.UnexpectedEndOfInput.
//
// The Error() implementation normalises the message so that it does not
// contain duplicate adjacent parts. Parts are separated by the sub-string ": "
// (see p239 of "The Go Programming Language", Donovan & Kernighan). So a chain
// that would print as
//
//	ko: ko: section 3 is malformed
//
// is printed as
//
//	ko: section 3 is malformed
package curated

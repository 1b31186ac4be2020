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

// Package cursor provides sequential, bounds-checked reading of an in-memory
// byte buffer. It is the lowest layer of both the machine-code and the object
// file parsers.
//
// Every read that would go beyond the end of the buffer fails with an error
// matching the UnexpectedEndOfInput pattern. A failed read does not advance
// the cursor.
//
// Multi-byte reads are available in both byte orders because the two file
// formats differ. Object files are little-endian throughout. Machine-code
// files use big-endian variable width indices.
package cursor

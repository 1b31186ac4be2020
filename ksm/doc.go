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

// Package ksm parses compiled machine-code files. The input to Parse() is
// the decompressed content of the file. Decompression is the job of the
// fileloader package.
//
// A machine-code file is a four byte magic number followed by a sequence of
// sections. Each section begins with a two byte marker, the percent sign
// followed by a letter:
//
//	%A	argument section. one byte index width followed by the
//		constant pool values
//	%F	code section. followed by zero, one or two of the repeated
//		markers %I and %M, which select the type of the section
//	%D	debug section. one byte range width followed by line entries
//
// The argument section is always first and the debug section is always last.
// Instructions in code sections refer to pool values by byte index. The byte
// index of the first pool value is three.
//
// Field encodings:
//
//	pool values		little-endian (see kosvalue package)
//	instruction operands	big-endian, 1 to 4 bytes (the index width)
//	debug line number	big-endian, 2 bytes
//	debug range count	1 byte
//	debug range addresses	big-endian, 1 to 4 bytes (the range width)
package ksm

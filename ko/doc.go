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

// Package ko parses relocatable object files.
//
// An object file begins with a fixed header:
//
//	magic			4 bytes
//	version			1 byte
//	number of sections	2 bytes
//	name table index	2 bytes
//
// followed by one section header per section:
//
//	name index	4 bytes (offset into the name table)
//	kind		1 byte
//	size		4 bytes
//
// Section bodies follow the header table, in header order, with no padding.
// The offset of a section body is therefore derived from the sizes of the
// preceding sections. All multi-byte fields are little-endian.
//
// Section names are not resolved when the file is parsed. The Name()
// function resolves them on demand through the name table, which is itself a
// string table section.
//
// Some section names are significant:
//
//	.data		the constants referred to by instruction operands
//	.symtab		the symbol table referred to by relocation entries
//	.symstrtab	the names of the symbols in .symtab
//	.reld		relocation entries
//	.comment	the first string is a description of the file
package ko

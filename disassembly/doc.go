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

// Package disassembly turns a parsed machine-code file (package ksm) or a
// parsed object file (package ko) into a list of sections, each made up of
// display ready entries.
//
// Every Entry has the same constituent parts regardless of the file format:
// label, address, bytecode, mnemonic and a list of resolved operands. Entries
// from machine-code files may also have a line number gutter, which is built
// from the debug section of the file.
//
// For quick disassemblies the FromKSM() and FromKO() functions can be used
// and the results written with the Write*() functions. The dump package
// writes more elaborate listings from the same Disassembly.
//
// Operand resolution for object files takes relocation entries into account.
// If a relocation entry exists for an operand then the operand refers to a
// symbol and never to the .data section directly.
package disassembly

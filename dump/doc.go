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

// Package dump writes the human readable listings of machine-code and object
// files. Which listings are written is decided by the Options type.
//
// Disassembly listings are produced by the disassembly package and the dump
// package adds colour and the listings of the other parts of a file: the
// argument section, the debug section, the section headers, string tables,
// data sections, symbol tables and relocation entries.
package dump

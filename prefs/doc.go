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

// Package prefs holds the display preferences of kdump. Preferences are the
// defaults for the command line flags and are stored on disk as a TOML file.
//
// A preference can be overridden for a single run with the command line
// stack. The -prefs flag pushes a string of key::value pairs separated by
// semicolons. For example:
//
//	hex::true; colour::never
//
// Load() consults the top of the stack after reading the file. Each value on
// the stack is used once.
package prefs

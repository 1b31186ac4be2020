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

// Package logger is the central log for kdump. Entries are made up of a tag
// and a detail string. The tag should be a short indicator of where the
// entry was made, usually the package name.
//
// Parsers log milestones of interest when diagnosing a malformed file, for
// example the width of pool indices or the number of sections found. The log
// is normally silent. SetEcho() prints entries as they are made and
// Configure() mirrors entries to the commonlog backend.
package logger

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

package ksm

// DebugRange is an inclusive range of code addresses.
type DebugRange struct {
	Start uint32
	End   uint32
}

// Contains returns true if the address is in the range.
func (r DebugRange) Contains(addr uint32) bool {
	return addr >= r.Start && addr <= r.End
}

// Mid returns the address half way through the range, rounded down.
func (r DebugRange) Mid() uint32 {
	return (r.End-r.Start)/2 + r.Start
}

// DebugEntry maps a source line to the code addresses compiled from it.
type DebugEntry struct {
	Line   int
	Ranges []DebugRange
}

// Debug is the debug section of a machine-code file.
type Debug struct {
	RangeWidth int
	Entries    []DebugEntry
}

// Find returns the first entry and range covering the address.
func (d *Debug) Find(addr uint32) (DebugEntry, DebugRange, bool) {
	if d == nil {
		return DebugEntry{}, DebugRange{}, false
	}
	for _, e := range d.Entries {
		for _, r := range e.Ranges {
			if r.Contains(addr) {
				return e, r, true
			}
		}
	}
	return DebugEntry{}, DebugRange{}, false
}

// MaxLine returns the largest line number in the section.
func (d *Debug) MaxLine() int {
	if d == nil {
		return 0
	}
	m := 0
	for _, e := range d.Entries {
		if e.Line > m {
			m = e.Line
		}
	}
	return m
}

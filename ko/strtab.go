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

package ko

import (
	"bytes"
)

// StringTable is a list of NUL terminated strings. A string is referred to by
// the byte offset of its first character. The first byte of a string table
// is always NUL, so offset zero is the empty string.
type StringTable struct {
	data []byte
}

// NewStringTable is the preferred method of initialisation for the
// StringTable type.
func NewStringTable() *StringTable {
	return &StringTable{data: []byte{0}}
}

// Add a string to the table and return its offset. If the string is already
// in the table the existing offset is returned.
func (tab *StringTable) Add(s string) uint32 {
	for _, e := range tab.Entries() {
		if e.Text == s {
			return e.Offset
		}
	}
	o := uint32(len(tab.data))
	tab.data = append(tab.data, s...)
	tab.data = append(tab.data, 0)
	return o
}

// Get the string at the offset. Offsets part way through a string return
// the tail of that string.
func (tab *StringTable) Get(offset uint32) (string, bool) {
	if int64(offset) >= int64(len(tab.data)) {
		return "", false
	}
	d := tab.data[offset:]
	n := bytes.IndexByte(d, 0)
	if n == -1 {
		return "", false
	}
	return string(d[:n]), true
}

// StringEntry is a string and its offset in a StringTable.
type StringEntry struct {
	Offset uint32
	Text   string
}

// Entries returns every string in the table, including the empty string at
// offset zero.
func (tab *StringTable) Entries() []StringEntry {
	var e []StringEntry
	o := 0
	for o < len(tab.data) {
		n := bytes.IndexByte(tab.data[o:], 0)
		if n == -1 {
			break
		}
		e = append(e, StringEntry{Offset: uint32(o), Text: string(tab.data[o : o+n])})
		o += n + 1
	}
	return e
}

// Len returns the encoded size of the table.
func (tab *StringTable) Len() int {
	return len(tab.data)
}

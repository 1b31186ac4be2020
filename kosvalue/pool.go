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

package kosvalue

import (
	"github.com/jetsetilly/kdump/cursor"
)

// Pool is an ordered list of Values. Every Value has a position (its place in
// the list) and a byte index. The byte index of the first value is the base
// of the pool and the index of every other value is the index of the
// preceding value plus the encoded length of the preceding value.
//
// Machine-code files refer to pool values by byte index. Object files refer
// to them by position.
type Pool struct {
	base   int
	values []Value
	index  []int

	// byte index -> position
	lookup map[int]int

	// byte index of the next value to be appended
	next int
}

// NewPool is the preferred method of initialisation for the Pool type.
func NewPool(base int) *Pool {
	return &Pool{
		base:   base,
		lookup: make(map[int]int),
		next:   base,
	}
}

// Append a Value to the pool and return its byte index.
func (p *Pool) Append(v Value) int {
	idx := p.next
	p.lookup[idx] = len(p.values)
	p.values = append(p.values, v)
	p.index = append(p.index, idx)
	p.next += EncodedLen(v)
	return idx
}

// Base returns the byte index of the first value.
func (p *Pool) Base() int {
	return p.base
}

// Len returns the number of values in the pool.
func (p *Pool) Len() int {
	return len(p.values)
}

// Get returns the Value at the byte index. The boolean is false if no value
// begins at that index.
func (p *Pool) Get(index int) (Value, bool) {
	pos, ok := p.lookup[index]
	if !ok {
		return Value{}, false
	}
	return p.values[pos], true
}

// At returns the Value at the position. The boolean is false if the position
// is out of range.
func (p *Pool) At(pos int) (Value, bool) {
	if pos < 0 || pos >= len(p.values) {
		return Value{}, false
	}
	return p.values[pos], true
}

// Index returns the byte index of the value at the position.
func (p *Pool) Index(pos int) int {
	return p.index[pos]
}

// Values returns the values in order. The returned slice must not be
// modified.
func (p *Pool) Values() []Value {
	return p.values
}

// DecodeValues reads Values from the cursor and appends them to the pool
// until the stop function returns true or the cursor is exhausted.
func (p *Pool) DecodeValues(c *cursor.Cursor, stop func(c *cursor.Cursor) bool) error {
	for !c.EOF() && !stop(c) {
		v, _, err := Decode(c)
		if err != nil {
			return err
		}
		p.Append(v)
	}
	return nil
}

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

package prefs

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/jetsetilly/kdump/curated"
)

// Value represents the actual Go preference value.
type Value any

// pref is the interface implemented by every preference type.
type pref interface {
	fmt.Stringer
	Set(value Value) error
	Get() Value
	Reset() error
}

// Bool implements a boolean type in the prefs system.
type Bool struct {
	value   atomic.Value // bool
	initial bool
}

// NewBool creates a Bool with the default value. Reset() restores the
// default.
func NewBool(initial bool) *Bool {
	p := &Bool{initial: initial}
	p.value.Store(initial)
	return p
}

func (p *Bool) String() string {
	return fmt.Sprintf("%v", p.Get())
}

// Set new value to Bool type. New value must be of type bool or string. A
// string value of anything other than "true" (case insensitive) will set the
// value to false.
func (p *Bool) Set(v Value) error {
	var nv bool
	switch v := v.(type) {
	case bool:
		nv = v
	case string:
		nv = strings.ToLower(strings.TrimSpace(v)) == "true"
	default:
		return curated.Errorf("prefs: cannot convert %T to prefs.Bool", v)
	}
	p.value.Store(nv)
	return nil
}

// Get returns the raw pref value.
func (p *Bool) Get() Value {
	ov := p.value.Load()
	if ov == nil {
		return p.initial
	}
	return ov.(bool)
}

// Bool returns the value as a bool.
func (p *Bool) Bool() bool {
	return p.Get().(bool)
}

// Reset sets the boolean value to the default.
func (p *Bool) Reset() error {
	return p.Set(p.initial)
}

// String implements a string type in the prefs system. The value is limited
// to a list of options.
type String struct {
	value   atomic.Value // string
	options []string
}

// NewString creates a String restricted to the options. The first option is
// the default.
func NewString(options ...string) *String {
	p := &String{options: options}
	p.value.Store(options[0])
	return p
}

func (p *String) String() string {
	ov := p.value.Load()
	if ov == nil {
		return p.options[0]
	}
	return ov.(string)
}

// Set new value to String type. The value is converted to a lower case
// string and must be one of the options.
func (p *String) Set(v Value) error {
	nv := strings.ToLower(strings.TrimSpace(fmt.Sprintf("%v", v)))
	for _, o := range p.options {
		if nv == o {
			p.value.Store(nv)
			return nil
		}
	}
	return curated.Errorf("prefs: %q is not one of %s", nv, strings.Join(p.options, ", "))
}

// Get returns the raw pref value.
func (p *String) Get() Value {
	return p.String()
}

// Reset sets the string value to the default.
func (p *String) Reset() error {
	return p.Set(p.options[0])
}

// Options returns the permitted values.
func (p *String) Options() []string {
	return p.options
}

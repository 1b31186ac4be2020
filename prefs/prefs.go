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
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/jetsetilly/kdump/curated"
	"github.com/jetsetilly/kdump/logger"
	"github.com/jetsetilly/kdump/paths"
)

// DefaultFilename is the name of the preferences file in the resource
// directory.
const DefaultFilename = "prefs.toml"

// UnknownPreference is the error pattern for a key that does not name a
// preference.
const UnknownPreference = "prefs: unknown preference: %s"

// Colour preference values.
const (
	ColourAuto   = "auto"
	ColourAlways = "always"
	ColourNever  = "never"
)

// Lookup preference values.
const (
	LookupExact     = "exact"
	LookupSubstring = "substring"
)

// Prefs is the set of display preferences.
type Prefs struct {
	// whether output is coloured. auto means coloured when standard output
	// is a terminal
	Colour *String

	Raw         *Bool
	Labels      *Bool
	LineNumbers *Bool
	Hex         *Bool

	// how a name given to -D is matched to a section
	Lookup *String

	entries map[string]pref
}

// NewPrefs is the preferred method of initialisation for the Prefs type.
// Values are the defaults.
func NewPrefs() *Prefs {
	p := &Prefs{
		Colour:      NewString(ColourAuto, ColourAlways, ColourNever),
		Raw:         NewBool(true),
		Labels:      NewBool(true),
		LineNumbers: NewBool(false),
		Hex:         NewBool(false),
		Lookup:      NewString(LookupExact, LookupSubstring),
	}
	p.entries = map[string]pref{
		"colour":      p.Colour,
		"raw":         p.Raw,
		"labels":      p.Labels,
		"linenumbers": p.LineNumbers,
		"hex":         p.Hex,
		"lookup":      p.Lookup,
	}
	return p
}

// DefaultPath returns the path of the preferences file in the resource
// directory.
func DefaultPath() (string, error) {
	return paths.ResourcePath("", DefaultFilename)
}

// Keys returns the preference keys in sorted order.
func (p *Prefs) Keys() []string {
	keys := make([]string, 0, len(p.entries))
	for k := range p.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set the preference named by key.
func (p *Prefs) Set(key string, v Value) error {
	e, ok := p.entries[key]
	if !ok {
		return curated.Errorf(UnknownPreference, key)
	}
	return e.Set(v)
}

// Get the value of the preference named by key.
func (p *Prefs) Get(key string) (Value, error) {
	e, ok := p.entries[key]
	if !ok {
		return nil, curated.Errorf(UnknownPreference, key)
	}
	return e.Get(), nil
}

// Reset every preference to the default.
func (p *Prefs) Reset() error {
	for _, k := range p.Keys() {
		if err := p.entries[k].Reset(); err != nil {
			return err
		}
	}
	return nil
}

// Load preferences from the TOML file. A missing file is not an error and
// the current values are kept. Unknown keys are logged and ignored.
//
// Values on the top of the command line stack are applied after the file has
// been read.
func (p *Prefs) Load(path string) error {
	var m map[string]any

	md, err := toml.DecodeFile(path, &m)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return curated.Errorf("prefs: %v", err)
		}
		logger.Logf(logger.Allow, "prefs", "%s not found. using defaults", path)
	}

	for _, k := range md.Keys() {
		key := k.String()
		if _, ok := p.entries[key]; !ok {
			logger.Logf(logger.Allow, "prefs", "ignoring unknown preference: %s", key)
			continue
		}
		if err := p.Set(key, m[key]); err != nil {
			return curated.Errorf("prefs: %s: %v", path, err)
		}
	}

	for _, key := range p.Keys() {
		if ok, v := GetCommandLinePref(key); ok {
			if err := p.Set(key, v); err != nil {
				return err
			}
		}
	}

	return nil
}

// Save preferences to the TOML file.
func (p *Prefs) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return curated.Errorf("prefs: %v", err)
	}
	defer f.Close()

	if err := p.Write(f); err != nil {
		return err
	}

	return nil
}

// Write preferences as TOML to io.Writer.
func (p *Prefs) Write(w io.Writer) error {
	m := make(map[string]any, len(p.entries))
	for k, e := range p.entries {
		m[k] = e.Get()
	}
	if err := toml.NewEncoder(w).Encode(m); err != nil {
		return curated.Errorf("prefs: %v", err)
	}
	return nil
}

func (p *Prefs) String() string {
	s := ""
	for _, k := range p.Keys() {
		s = fmt.Sprintf("%s%-12s %s\n", s, k, p.entries[k])
	}
	return s
}

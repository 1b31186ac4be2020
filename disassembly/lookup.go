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

package disassembly

import "strings"

// MatchPolicy decides how the name given to Lookup() is compared.
type MatchPolicy int

// List of valid MatchPolicy values.
const (
	ExactMatch MatchPolicy = iota
	SubstringMatch
)

func (p MatchPolicy) String() string {
	switch p {
	case ExactMatch:
		return "exact"
	case SubstringMatch:
		return "substring"
	}
	return "unknown policy"
}

func (p MatchPolicy) match(s string, name string) bool {
	if p == SubstringMatch {
		return strings.Contains(s, name)
	}
	return s == name
}

// Lookup finds the first section that matches the name. A section matches if
// its name matches or if any of its operands has a string value or a
// relocated symbol that matches.
//
// The name "main" matches the MAIN section of a machine-code file regardless
// of case.
func (dsm *Disassembly) Lookup(name string, policy MatchPolicy) (*Section, bool) {
	for _, sec := range dsm.Sections {
		if dsm.matches(sec, name, policy) {
			return sec, true
		}
	}
	return nil, false
}

func (dsm *Disassembly) matches(sec *Section, name string, policy MatchPolicy) bool {
	if dsm.Format == KSM && sec.Name == "MAIN" && strings.EqualFold(name, "main") {
		return true
	}

	if policy.match(sec.Name, name) {
		return true
	}

	for _, e := range sec.Entries {
		for _, op := range e.Operands {
			for _, s := range op.strings() {
				if policy.match(s, name) {
					return true
				}
			}
		}
	}

	return false
}

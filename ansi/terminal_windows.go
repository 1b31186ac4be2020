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

package ansi

import "os"

// IsTerminal always returns false on windows. Colour output must be requested
// explicitly.
func IsTerminal(f *os.File) bool {
	return false
}

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

// Package paths should be used whenever a request to the filesystem is made
// for a kdump resource, for example the preferences file. The functions make
// sure that the correct path, depending on how the program was built, is
// used for the resource.
//
// For release builds the resource directory is in the user's configuration
// directory, as defined by os.UserConfigDir(). For non-release builds the
// resource directory is ".kdump" in the current working directory.
//
// Release builds are made by specifying the "release" build tag.
package paths

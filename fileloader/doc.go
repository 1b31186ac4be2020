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

// Package fileloader is used to load the file that is to be dumped.
//
// The Load() function handles loading of data from different sources.
// Currently local files and data over HTTP are supported. After loading, the
// type of the file is decided by looking at the first few bytes of the data.
// Machine-code files are gzip compressed and are decompressed by Load(). The
// Data field is always the uncompressed data.
//
// The simplest instance of the Loader type:
//
//	ld := fileloader.Loader{
//		Filename: "boot/launch.ksm",
//	}
//
// It is preferred however that the NewLoader() function is used. The
// NewLoader() function will set the Hint field according to the filename
// extension.
package fileloader

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

// Package version reports the version of kdump.
package version

import (
	"fmt"
	"runtime/debug"

	"github.com/Masterminds/semver/v3"
)

// ApplicationName is the name to use when referring to the application.
const ApplicationName = "kdump"

// number is set by the linker for release builds:
//
//	go build -tags release -ldflags "-X github.com/jetsetilly/kdump/version.number=v1.0.0"
var number string

var (
	version  string
	revision string
	release  bool
)

// Version returns the version string, the vcs revision and whether this is a
// numbered release.
//
// The version string is "unreleased" for builds from a vcs checkout without a
// release number and "local" when there is no vcs information either. The
// revision is suffixed with "+dirty" if the checkout had uncommitted changes.
func Version() (string, string, bool) {
	return version, revision, release
}

func init() {
	version, release = parseNumber(number)

	info, ok := debug.ReadBuildInfo()
	if !ok {
		revision = "no revision"
		return
	}

	var vcs, dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs":
			vcs = true
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}

	if revision == "" {
		revision = "no revision"
	} else if dirty {
		revision = fmt.Sprintf("%s+dirty", revision)
	}

	if !release && vcs {
		version = "unreleased"
	}
}

// parseNumber normalises a release number. a number that is not a semantic
// version is not a release
func parseNumber(n string) (string, bool) {
	if n == "" {
		return "local", false
	}
	v, err := semver.NewVersion(n)
	if err != nil {
		return fmt.Sprintf("%s (invalid)", n), false
	}
	return fmt.Sprintf("v%s", v), true
}

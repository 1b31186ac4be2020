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
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/jetsetilly/kdump/logger"
)

// SupportedVersions is the range of object file versions that are known to
// parse correctly.
const SupportedVersions = ">= 3, <= 4"

var supported *semver.Constraints

func init() {
	var err error
	supported, err = semver.NewConstraint(SupportedVersions)
	if err != nil {
		panic(fmt.Sprintf("ko: %v", err))
	}
}

// IsSupportedVersion returns true if the version number is in the range of
// supported versions.
func IsSupportedVersion(version uint8) bool {
	v, err := semver.NewVersion(fmt.Sprintf("%d", version))
	if err != nil {
		return false
	}
	return supported.Check(v)
}

// files of other versions are parsed anyway but the result may be wrong
func checkVersion(version uint8) {
	if !IsSupportedVersion(version) {
		logger.Logf(logger.Allow, "ko", "version %d is outside the supported range (%s)", version, SupportedVersions)
	}
}

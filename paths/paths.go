// This file is part of DMGopher.
//
// DMGopher is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// DMGopher is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with DMGopher.  If not, see <https://www.gnu.org/licenses/>.

// Package paths decides where durable resources (boot ROM image, cartridge
// save files, profiles) live on the host filesystem.
package paths

import (
	"os"
	"path"
)

// the base path for all resources. note that we don't use this value directly
// except in the getBasePath() function. that function should be used instead.
const baseResourcePath = ".dmgopher"

// ResourcePath returns the resource string (representing the resource to be
// loaded) prepended with operating system specific details.
func ResourcePath(resource ...string) string {
	var p []string

	p = make([]string, 0, len(resource)+1)
	p = append(p, getBasePath())
	p = append(p, resource...)

	return path.Join(p...)
}

// getBasePath() returns baseResourcePath with the user's config directory
// prepended if the unadorned baseResourcePath cannot be found in the current
// directory.
//
// note that we're not checking for the existence of the resource requested by
// the caller, or even the existence of 'baseResourcePath' in the config
// directory.
func getBasePath() string {
	if _, err := os.Stat(baseResourcePath); err == nil {
		return baseResourcePath
	}

	home, err := os.UserConfigDir()
	if err != nil {
		return baseResourcePath
	}
	return path.Join(home, baseResourcePath[1:])
}

// This file is part of Chiptracker.
//
// Chiptracker is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Chiptracker is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Chiptracker.  If not, see <https://www.gnu.org/licenses/>.

package paths

import (
	"path/filepath"

	"github.com/jetsetilly/chiptracker/curated"
)

// Sentinal error returned by ResourcePath.
const ResourceError = "paths: %v"

// ResourcePath returns the resource string (representing the resource to be
// loaded) prepended with operating system specific details. The directory
// containing the resource is created if necessary. Empty resource elements are
// ignored.
func ResourcePath(resource ...string) (string, error) {
	var dir []string
	var file string

	if len(resource) > 0 {
		dir = resource[:len(resource)-1]
		file = resource[len(resource)-1]
	}

	base, err := getBasePath(filepath.Join(dir...))
	if err != nil {
		return "", curated.Errorf(ResourceError, err)
	}

	return filepath.Join(base, file), nil
}

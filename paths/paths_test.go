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

package paths_test

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/jetsetilly/chiptracker/paths"
	"github.com/jetsetilly/chiptracker/test"
)

func TestPaths(t *testing.T) {
	// resources are created relative to the working directory in development
	// builds
	t.Chdir(t.TempDir())

	pth, err := paths.ResourcePath("foo/bar", "baz")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".chiptracker", "foo", "bar", "baz"))

	info, err := os.Stat(filepath.Join(".chiptracker", "foo", "bar"))
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, info.IsDir())

	pth, err = paths.ResourcePath("", "baz")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".chiptracker", "baz"))

	pth, err = paths.ResourcePath("preferences")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".chiptracker", "preferences"))

	pth, err = paths.ResourcePath()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, ".chiptracker")
}

func TestUniqueFilename(t *testing.T) {
	fn := paths.UniqueFilename("sfx", "Jump! 2", "s")
	test.ExpectSuccess(t, regexp.MustCompile(`^sfx_Jump__2_\d{8}_\d{6}\.s$`).MatchString(fn))

	fn = paths.UniqueFilename("regs", "", "")
	test.ExpectSuccess(t, regexp.MustCompile(`^regs_\d{8}_\d{6}$`).MatchString(fn))
}

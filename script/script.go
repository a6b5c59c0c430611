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

package script

import (
	"context"
	"os"

	lua "github.com/yuin/gopher-lua"

	"github.com/jetsetilly/chiptracker/curated"
	"github.com/jetsetilly/chiptracker/logger"
	"github.com/jetsetilly/chiptracker/notifications"
	"github.com/jetsetilly/chiptracker/song"
)

// Sentinal errors returned by the script package.
const (
	ScriptError = "script: %s: %v"
	NoSongs     = "script: %s: script did not create any songs"
)

// the libraries opened in the Lua state. the io and os libraries are not
// included
var libraries = []struct {
	name string
	open lua.LGFunction
}{
	{lua.LoadLibName, lua.OpenPackage},
	{lua.BaseLibName, lua.OpenBase},
	{lua.TabLibName, lua.OpenTable},
	{lua.StringLibName, lua.OpenString},
	{lua.MathLibName, lua.OpenMath},
}

func newState(ctx context.Context) *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range libraries {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}

	// scripts cannot load other files
	for _, f := range []string{"dofile", "loadfile", "require"} {
		L.SetGlobal(f, lua.LNil)
	}

	L.SetContext(ctx)

	return L
}

// Load runs the Lua script in the file and returns the project it built.
// Notifications of repaired data are sent to notify, which can be nil.
func Load(ctx context.Context, filename string, notify notifications.Notify) (*song.Project, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, curated.Errorf(ScriptError, filename, err)
	}
	return LoadString(ctx, filename, string(src), notify)
}

// LoadString runs the Lua script and returns the project it built. The name
// is used in error messages and as the default name of the project.
func LoadString(ctx context.Context, name string, src string, notify notifications.Notify) (*song.Project, error) {
	L := newState(ctx)
	defer L.Close()

	b := newBuilder(name, notify)
	b.register(L)

	fn, err := L.LoadString(src)
	if err != nil {
		return nil, curated.Errorf(ScriptError, name, err)
	}

	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		return nil, curated.Errorf(ScriptError, name, err)
	}

	if len(b.project.Songs()) == 0 {
		return nil, curated.Errorf(NoSongs, name)
	}

	b.finalise()

	logger.Logf(logger.Allow, "script", "%s: %d songs, %d instruments", name, len(b.project.Songs()), len(b.project.Instruments()))

	return b.project, nil
}

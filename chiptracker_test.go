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

package main

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/jetsetilly/chiptracker/test"
)

const demoScript = `
project{name = "demo"}
beep = instrument{name = "beep", volume = {15, 10, 5, 0}}
s = song{name = "beep", length = 1, patternLength = 4, groove = {2}}
notes(s, "Square1", 0, {{0, "C-4", duration = 2, instrument = beep}})
`

func writeScript(t *testing.T) string {
	t.Helper()
	t.Chdir(t.TempDir())
	err := os.WriteFile("demo.lua", []byte(demoScript), 0o644)
	test.DemandSuccess(t, err)
	return "demo.lua"
}

func TestVersion(t *testing.T) {
	var out strings.Builder
	test.ExpectEquality(t, launch(context.Background(), []string{"VERSION"}, &out), exitOK)
	test.ExpectSuccess(t, strings.HasPrefix(out.String(), "Chiptracker "))
}

func TestHelp(t *testing.T) {
	var out strings.Builder
	test.ExpectEquality(t, launch(context.Background(), []string{"--help"}, &out), exitOK)
	test.ExpectSuccess(t, strings.Contains(out.String(), "available sub-modes: EXPORT, SFX, DUMP, VERSION"))
}

func TestExport(t *testing.T) {
	fn := writeScript(t)

	var out strings.Builder
	test.DemandEquality(t, launch(context.Background(), []string{"EXPORT", "--output", "out.txt", fn}, &out), exitOK, out.String())

	b, err := os.ReadFile("out.txt")
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.HasPrefix(string(b), "; beep ("))

	// EXPORT is the default mode
	out.Reset()
	test.ExpectEquality(t, launch(context.Background(), []string{"--output=-", fn}, &out), exitOK)
	test.ExpectSuccess(t, strings.HasPrefix(out.String(), "; beep ("))
}

func TestExportDigest(t *testing.T) {
	fn := writeScript(t)

	var a, b strings.Builder
	test.DemandEquality(t, launch(context.Background(), []string{"EXPORT", "--digest", "--output=-", fn}, &a), exitOK, a.String())
	test.DemandEquality(t, launch(context.Background(), []string{"EXPORT", "--digest", "--output=-", fn}, &b), exitOK, b.String())
	test.ExpectEquality(t, a.String(), b.String())
	test.ExpectSuccess(t, strings.HasSuffix(a.String(), " beep\n"))
}

func TestExportNotes(t *testing.T) {
	fn := writeScript(t)

	var out strings.Builder
	test.DemandEquality(t, launch(context.Background(), []string{"EXPORT", "--notes", "--output=-", fn}, &out), exitOK, out.String())
	test.ExpectSuccess(t, strings.HasPrefix(out.String(), "; beep ("))
	test.ExpectSuccess(t, strings.Contains(out.String(), " frames)\n"))
	test.ExpectSuccess(t, strings.Contains(out.String(), " ; C4\n"))
}

func TestExportErrors(t *testing.T) {
	writeScript(t)

	var out strings.Builder
	test.ExpectEquality(t, launch(context.Background(), []string{"EXPORT"}, &out), exitMode)
	test.ExpectEquality(t, launch(context.Background(), []string{"EXPORT", "missing.lua"}, &out), exitMode)
	test.ExpectEquality(t, launch(context.Background(), []string{"EXPORT", "--song", "nope", "demo.lua"}, &out), exitMode)
}

func TestSoundEffects(t *testing.T) {
	fn := writeScript(t)

	var out strings.Builder
	test.DemandEquality(t, launch(context.Background(), []string{"SFX", "--mode", "dual", "--output=-", fn}, &out), exitOK, out.String())
	test.ExpectSuccess(t, strings.Contains(out.String(), "sounds:"))
	test.ExpectSuccess(t, strings.Contains(out.String(), "sfx_ntsc_beep:"))
	test.ExpectSuccess(t, strings.Contains(out.String(), "sfx_pal_beep:"))

	out.Reset()
	test.ExpectEquality(t, launch(context.Background(), []string{"SFX", "--format", "nope", fn}, &out), exitMode)

	// the machine defaults to the sfx.mode preference
	out.Reset()
	args := []string{"SFX", "--prefs", "sfx.mode::pal", "--output=-", fn}
	test.DemandEquality(t, launch(context.Background(), args, &out), exitOK, out.String())
	test.ExpectSuccess(t, strings.Contains(out.String(), "sfx_pal_beep:"))
	test.ExpectFailure(t, strings.Contains(out.String(), "sfx_ntsc_beep:"))
}

func TestDump(t *testing.T) {
	fn := writeScript(t)

	var out strings.Builder
	test.DemandEquality(t, launch(context.Background(), []string{"DUMP", "--output=-", fn}, &out), exitOK, out.String())
	test.ExpectSuccess(t, strings.Contains(out.String(), "Name: (string) (len=4) \"beep\""))

	out.Reset()
	test.DemandEquality(t, launch(context.Background(), []string{"DUMP", "--graph", "--output=-", fn}, &out), exitOK, out.String())
	test.ExpectSuccess(t, strings.Contains(out.String(), "digraph"))
}

func TestPrefsOverride(t *testing.T) {
	fn := writeScript(t)

	var ntsc, pal strings.Builder
	test.DemandEquality(t, launch(context.Background(), []string{"EXPORT", "--digest", "--output=-", fn}, &ntsc), exitOK)

	args := []string{"EXPORT", "--digest", "--prefs", "player.pal::true", "--output=-", fn}
	test.DemandEquality(t, launch(context.Background(), args, &pal), exitOK)
	test.ExpectInequality(t, ntsc.String(), pal.String())

	// the override is not saved
	b, err := os.ReadFile(".chiptracker/preferences")
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(string(b), "player.pal :: false"))
}

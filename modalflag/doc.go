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

// Package modalflag handles program modes and the flags of each mode. Flag
// parsing is provided by github.com/spf13/pflag, so flags take the POSIX form
// (--flag or -f).
//
// Arguments are given to the Modes type with NewArgs() and then parsed with
// Parse(), which takes no arguments. This allows the arguments to be parsed
// in stages, one stage for each mode:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("EXPORT", "SFX", "VERSION")
//
//	p, err := md.Parse()
//	if p != modalflag.ParseContinue {
//		return err
//	}
//
//	switch md.Mode() {
//	case "SFX":
//		md.NewMode()
//		pal := md.AddBool("pal", false, "export for PAL machines")
//		p, err = md.Parse()
//		...
//	}
//
// The first sub-mode is the default mode and is selected if the next argument
// is not the name of a sub-mode. Sub-mode comparisons are case insensitive.
//
// Flag parsing stops at the first argument that is not a flag. The remaining
// arguments are available with RemainingArgs() and GetArg().
//
// The path of modes selected so far is returned by Path(). For example,
// "EXPORT" or "DUMP/GRAPH".
package modalflag

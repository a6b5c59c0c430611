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

// Package prefs holds typed preference values and stores them on disk.
//
// Preference values are declared as one of the live types (Bool, String or
// Int) or as a Generic value. Values are registered with a Disk instance
// under a key and the Disk saves and loads them as "key :: value" lines.
//
// Values can be overridden for a single run of the program with the command
// line stack:
//
//	prefs.PushCommandLineStack("player.pal::true; player.loopCount::2")
//
// A Disk consumes the entries at the top of the stack when a key is added.
// Overridden values are not saved back to disk.
package prefs

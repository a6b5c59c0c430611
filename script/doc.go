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

// Package script builds projects from Lua scripts. Scripts are run by
// github.com/yuin/gopher-lua in a state that has the base, table, string and
// math libraries but no access to files or to the operating system.
//
// The following functions are available to the script:
//
//	project{name = "demo", expansions = {"VRC6", "S5B"}, n163 = 4}
//
// Sets the name and the expansion chips of the project. Should be called
// before any instruments are created.
//
//	lead = instrument{name = "lead", expansion = "VRC6",
//		volume = {15, 12, 10, 8}, volumeLoop = 3, volumeRelease = 2,
//		arpeggio = {0, 4, 7}, pitch = {0, 1, -1}, duty = {2},
//		patch = 0, patchRegs = {0x01, 0x21, ...}, saw = "full"}
//
// Creates an instrument. Every field other than the name is optional. Each
// envelope field (volume, arpeggio, pitch, duty) can be given a loop point
// and a release point with the Loop and Release suffixes. FDS instruments also
// take modSpeed, modDepth and modDelay. N163 instruments take waveSize and
// wavePos.
//
//	arp = arpeggio{name = "major", values = {0, 4, 7}, loop = 0}
//
// Creates an arpeggio that can be applied to notes.
//
//	s = song{name = "title", length = 4, loop = 0, patternLength = 16,
//		beatLength = 4, groove = {6}, tempo = "FamiTracker", speed = 6,
//		bpm = 150}
//
// Creates a song. The tempo field is either "FamiStudio" (the default) or
// "FamiTracker". The speed and bpm fields are only used by the FamiTracker
// tempo.
//
//	custom(s, 2, {length = 12, beatLength = 4, groove = {5, 6}})
//
// Sets custom pattern settings for a song position.
//
//	notes(s, "Square1", 0, {
//		{0, "C-4", duration = 4, instrument = lead},
//		{4, "E-4", attack = false, volume = 10},
//		{8, "G-4", slide = "C-5", release = 2},
//		{12, "stop"},
//	})
//
// Adds notes to the pattern at the song position of the channel, creating
// the pattern if necessary. The channel is given by its short name. The first
// two values of each note are the note index and the note, which is one of
// a musical note name, "stop", "release" or "---" for a note that only
// carries effects. Effect fields are volume, finePitch, vibratoSpeed,
// vibratoDepth, fdsModDepth, fdsModSpeed, speed, duty, noteDelay, cutDelay,
// volumeSlide and rhythm. An arpeggio created by the arpeggio function can be
// applied with the arpeggio field.
//
// Musical notes without a duration last until the next note.
package script

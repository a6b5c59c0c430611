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

// Package chips describes the sound chips supported by the sequencer. The
// base console APU is always present. Expansion chips add channels to a
// project and are selected with an ExpansionMask.
//
// Every channel in a project has a ChannelType. The type identifies the chip
// and the voice on that chip. The order of the ChannelType values is the
// order in which channels are processed by the player.
//
// The package also contains the per-chip data that the rest of the sequencer
// needs. The bit shifts used by pitch slides are returned by Shifts() and the
// note to period conversion tables are returned by NoteTable().
package chips

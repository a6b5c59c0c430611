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

// Package player plays songs by advancing the channel states one frame at a
// time and sending the resulting register writes to a sink.
//
// A Session plays a single song. Each session owns a channel state for every
// channel of the song and plays a shallow clone of the song, so any number of
// sessions can play the same song at the same time. The song must not be
// edited while a session is playing it.
//
// Each frame is processed in two passes. In the first pass the note event for
// every channel is given to its channel state with Advance(). In the second
// pass every channel state writes its registers with Update(). The first pass
// is where shared instrument notifications are delivered, so every channel
// knows whether it must reload its instrument before it writes to the
// hardware.
//
// The ExportSongs() function plays several songs concurrently, one session
// per song, and returns the register writes of each song.
package player

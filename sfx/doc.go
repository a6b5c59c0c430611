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

// Package sfx encodes the register writes of the 2A03 tone channels into the
// compact sound effect stream used by the FamiTone2 sound engine.
//
// The stream is a list of register index and value pairs. Runs of frames
// without any register changes are encoded as a single byte holding the
// number of frames. A zero byte terminates the stream.
//
// Silence at the end of the effect is trimmed. Streams longer than MaxLength
// bytes are truncated and a warning is logged and sent to the notifier.
package sfx

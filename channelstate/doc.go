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

// Package channelstate implements the playback state of a single channel.
// A ChannelState is advanced once per frame with the note event for that
// frame (if any) and then updated, at which point it writes the register
// values for the frame to an apu.Sink.
//
// The chip specific part of the state is a variant selected by the channel
// type when the ChannelState is created. Every variant implements the same
// small set of operations: loading an instrument, reacting to a shared
// instrument being loaded on a sibling channel, and writing the registers for
// a frame.
//
// Channels of the FM chips share the registers of the custom patch. When a
// channel loads an instrument that uses the custom patch it broadcasts the
// fact through the Broadcaster interface. Every channel in the broadcast mask
// decides for itself whether it needs to reload its instrument the next time
// it is advanced.
//
// The YM2413 can also operate in rhythm mode. In rhythm mode the last three
// FM channels drive the percussion voices of the chip. Not every combination
// of drum, pitch and volume can be produced by the percussion registers and
// combinations that cannot be produced are silent.
package channelstate

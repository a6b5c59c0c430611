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

// Package apu contains the register addresses of the sound chips and the
// types used to move register writes from the channel state machines to
// whatever is consuming them.
//
// Register writes are represented by the Write type. A Write is sent to a
// Sink. The Sink is not expected to return an error because the core never
// stops playback because of a register write.
//
// Some expansion chips use an address port and a data port to reach their
// internal registers. The functions IsAddressPort() and DataPortFor() can be
// used to identify these pairs.
package apu

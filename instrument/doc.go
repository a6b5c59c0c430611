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

// Package instrument contains the instruments and arpeggios that notes refer
// to. An instrument is a bundle of envelopes plus some static configuration
// for the chip the instrument is for. For example, the FM chips use a patch
// of eight registers and the wavetable chips use a waveform.
//
// Instruments are owned by the project. Notes refer to instruments but do not
// own them.
//
// Envelope values loaded from older projects can be outside of the range
// that is now accepted. ClampEnvelopes() repairs the values and reports the
// repair to a notifications.Notify implementation.
package instrument

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

package chips

// Shifts returns the number of bits by which pitch values and slide values
// are shifted for the channel type. The number of N163 channels is only
// relevant for N163 channel types.
//
// A positive slideShift means that slide values are divided by 1<<slideShift
// so that chips with large period values can still use an 8-bit slide step.
// A negative slideShift adds -slideShift bits of fraction to the slide
// value.
//
// The pitchShift is applied to fine pitch and pitch envelope values before
// they are added to the period.
func Shifts(ct ChannelType, numN163Channels int) (pitchShift int, slideShift int) {
	switch {
	case ct >= Vrc7Fm1 && ct <= Vrc7Fm6:
		return 3, 3

	case ct >= YM2413Fm1 && ct <= YM2413Fm9:
		return 3, 3

	case ct >= N163Wave1 && ct <= N163Wave8:
		// pitch values double every time the number of N163 channels doubles
		switch numN163Channels {
		case 1:
			return 2, 2
		case 2:
			return 3, 3
		case 3, 4:
			return 4, 4
		default:
			return 5, 5
		}

	case ct == Noise:
		return 0, -4
	}

	// one bit of fraction for all other channels
	return 0, -1
}

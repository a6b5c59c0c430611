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

import "math"

// Clock rates of the CPU in the two television standards. Most of the sound
// chips are clocked by the CPU.
const (
	ClockNTSC = 1789773
	ClockPAL  = 1662607
)

// the sample rate of the FM chips. the FM chips have their own oscillator
// and so the rate is the same for both television standards
const fmSampleRate = 49716.0

// reference wave length used to build the N163 note table
const N163ReferenceWaveLength = 16

// NoteCount is the number of entries in a note table. Entry zero is not used
// because note value zero is the stop note.
const NoteCount = 97

// frequency of note value 1 (C0)
const baseFrequency = 16.351597831287414

// NoteFrequency returns the frequency in hertz of the musical note value.
func NoteFrequency(value int) float64 {
	return baseFrequency * math.Pow(2.0, float64(value-1)/12.0)
}

// NoteTable is a list of values in the native units of a chip for every
// musical note value. Depending on the chip the values are periods (larger
// values mean lower pitch) or frequencies (larger values mean higher pitch).
type NoteTable []int

type tableKey struct {
	family tableFamily
	pal    bool
	n163   int
}

type tableFamily int

const (
	familySquare tableFamily = iota
	familyTriangle
	familyVrc6Square
	familyVrc6Saw
	familyFM
	familyFds
	familyN163
	familyS5B
)

var tables = map[tableKey]NoteTable{}

func init() {
	for _, pal := range []bool{false, true} {
		for f := familySquare; f <= familyS5B; f++ {
			if f == familyN163 {
				for n := 1; n <= MaxN163Channels; n++ {
					k := tableKey{family: f, pal: pal, n163: n}
					tables[k] = buildTable(k)
				}
				continue
			}
			k := tableKey{family: f, pal: pal}
			tables[k] = buildTable(k)
		}
	}
}

func buildTable(k tableKey) NoteTable {
	clock := float64(ClockNTSC)
	if k.pal {
		clock = ClockPAL
	}

	t := make(NoteTable, NoteCount)
	for i := 1; i < NoteCount; i++ {
		f := NoteFrequency(i)

		var v float64
		var limit int

		switch k.family {
		case familySquare:
			v, limit = clock/(16.0*f)-1.0, 0x7ff
		case familyTriangle:
			v, limit = clock/(32.0*f)-1.0, 0x7ff
		case familyVrc6Square:
			v, limit = clock/(16.0*f)-1.0, 0xfff
		case familyVrc6Saw:
			v, limit = clock/(14.0*f)-1.0, 0xfff
		case familyFM:
			v, limit = f*524288.0/fmSampleRate, 0xffff
		case familyFds:
			v, limit = f*4194304.0/clock, 0xfff
		case familyN163:
			v, limit = f*15.0*65536.0*float64(k.n163)*N163ReferenceWaveLength/clock, 0x3ffff
		case familyS5B:
			v, limit = clock/(16.0*f), 0xfff
		}

		t[i] = min(max(int(math.Round(v)), 0), limit)
	}

	return t
}

// NoteTableFor returns the note table for the channel type. Channels that do
// not use a note table (noise and DPCM) return nil.
//
// The returned table is shared and must not be modified.
func NoteTableFor(ct ChannelType, pal bool, numN163Channels int) NoteTable {
	k := tableKey{pal: pal}

	switch ct.Expansion() {
	case ExpansionNone:
		switch ct {
		case Square1, Square2:
			k.family = familySquare
		case Triangle:
			k.family = familyTriangle
		default:
			return nil
		}
	case ExpansionMmc5:
		if ct == Mmc5Dpcm {
			return nil
		}
		k.family = familySquare
	case ExpansionVrc6:
		if ct == Vrc6Saw {
			k.family = familyVrc6Saw
		} else {
			k.family = familyVrc6Square
		}
	case ExpansionVrc7, ExpansionYM2413:
		// FM chips are not affected by the television standard
		k.family = familyFM
		k.pal = false
	case ExpansionFds:
		k.family = familyFds
	case ExpansionN163:
		k.family = familyN163
		k.n163 = min(max(numN163Channels, 1), MaxN163Channels)
	case ExpansionS5B:
		k.family = familyS5B
	default:
		return nil
	}

	return tables[k]
}

// IsPeriodTable returns true if larger values in the note table for the
// channel type mean a lower pitch.
func IsPeriodTable(ct ChannelType) bool {
	switch ct.Expansion() {
	case ExpansionVrc7, ExpansionYM2413, ExpansionFds, ExpansionN163:
		return false
	}
	return true
}

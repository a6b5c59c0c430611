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

import (
	"fmt"
	"slices"
)

// Expansion identifies a sound chip. The base APU is ExpansionNone.
type Expansion int

// List of valid Expansion values.
const (
	ExpansionNone Expansion = iota
	ExpansionVrc6
	ExpansionVrc7
	ExpansionFds
	ExpansionMmc5
	ExpansionN163
	ExpansionS5B
	ExpansionYM2413
	ExpansionCount
)

var expansionNames = [ExpansionCount]string{
	"2A03",
	"Konami VRC6",
	"Konami VRC7",
	"Famicom Disk System",
	"Nintendo MMC5",
	"Namco 163",
	"Sunsoft 5B",
	"Yamaha YM2413",
}

var expansionShortNames = [ExpansionCount]string{
	"",
	"VRC6",
	"VRC7",
	"FDS",
	"MMC5",
	"N163",
	"S5B",
	"YM2413",
}

func (e Expansion) String() string {
	if e < 0 || e >= ExpansionCount {
		return fmt.Sprintf("unknown expansion (%d)", int(e))
	}
	return expansionNames[e]
}

// ShortName returns the abbreviated name of the expansion. The base APU has
// no short name.
func (e Expansion) ShortName() string {
	if e < 0 || e >= ExpansionCount {
		return ""
	}
	return expansionShortNames[e]
}

// Mask returns the ExpansionMask bit for the expansion. The base APU has no
// mask bit because it is always present.
func (e Expansion) Mask() ExpansionMask {
	if e <= ExpansionNone || e >= ExpansionCount {
		return 0
	}
	return 1 << (e - 1)
}

// ExpansionFromShortName returns the Expansion for the short name. The
// boolean is false if the name is not recognised.
func ExpansionFromShortName(name string) (Expansion, bool) {
	i := slices.Index(expansionShortNames[:], name)
	if i <= 0 {
		return ExpansionNone, false
	}
	return Expansion(i), true
}

// ExpansionMask is a bit mask of the expansion chips active in a project.
type ExpansionMask uint8

// Has returns true if the expansion is in the mask. ExpansionNone is always
// in the mask.
func (m ExpansionMask) Has(e Expansion) bool {
	if e == ExpansionNone {
		return true
	}
	return m&e.Mask() != 0
}

func (m ExpansionMask) String() string {
	var s []string
	for e := ExpansionVrc6; e < ExpansionCount; e++ {
		if m.Has(e) {
			s = append(s, e.ShortName())
		}
	}
	if len(s) == 0 {
		return "none"
	}
	return fmt.Sprintf("%v", s)
}

// MaxN163Channels is the maximum number of channels the N163 can be
// configured to use.
const MaxN163Channels = 8

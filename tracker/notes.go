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

package tracker

import (
	"github.com/jetsetilly/chiptracker/chips"
	"github.com/jetsetilly/chiptracker/hardware/apu"
	"github.com/jetsetilly/chiptracker/song"
)

// LookupMusicalNote returns the name of the musical note nearest to the
// period (or frequency) value for the channel type. Returns "---" for
// channels without a note table.
func LookupMusicalNote(ct chips.ChannelType, period int, pal bool, numN163Channels int) string {
	table := chips.NoteTableFor(ct, pal, numN163Channels)
	if table == nil {
		return song.NoteName(song.NoteInvalid)
	}

	best := 1
	bestDist := -1
	for v := 1; v < len(table); v++ {
		d := table[v] - period
		if d < 0 {
			d = -d
		}
		if bestDist == -1 || d < bestDist {
			best = v
			bestDist = d
		}
	}

	return song.NoteName(uint8(best))
}

// the period registers of the channels that the tracker can name notes for
var periodRegisters = map[uint16]struct {
	ct    chips.ChannelType
	lo    uint16
	hi    uint16
	hiMsk uint8
}{
	apu.Pulse1Lo:     {chips.Square1, apu.Pulse1Lo, apu.Pulse1Hi, 0x07},
	apu.Pulse1Hi:     {chips.Square1, apu.Pulse1Lo, apu.Pulse1Hi, 0x07},
	apu.Pulse2Lo:     {chips.Square2, apu.Pulse2Lo, apu.Pulse2Hi, 0x07},
	apu.Pulse2Hi:     {chips.Square2, apu.Pulse2Lo, apu.Pulse2Hi, 0x07},
	apu.TriLo:        {chips.Triangle, apu.TriLo, apu.TriHi, 0x07},
	apu.TriHi:        {chips.Triangle, apu.TriLo, apu.TriHi, 0x07},
	apu.Vrc6Pulse1Lo: {chips.Vrc6Square1, apu.Vrc6Pulse1Lo, apu.Vrc6Pulse1Hi, 0x0f},
	apu.Vrc6Pulse1Hi: {chips.Vrc6Square1, apu.Vrc6Pulse1Lo, apu.Vrc6Pulse1Hi, 0x0f},
	apu.Vrc6Pulse2Lo: {chips.Vrc6Square2, apu.Vrc6Pulse2Lo, apu.Vrc6Pulse2Hi, 0x0f},
	apu.Vrc6Pulse2Hi: {chips.Vrc6Square2, apu.Vrc6Pulse2Lo, apu.Vrc6Pulse2Hi, 0x0f},
	apu.Vrc6SawLo:    {chips.Vrc6Saw, apu.Vrc6SawLo, apu.Vrc6SawHi, 0x0f},
	apu.Vrc6SawHi:    {chips.Vrc6Saw, apu.Vrc6SawLo, apu.Vrc6SawHi, 0x0f},
}

// MusicalNote returns the musical note currently selected by the period
// registers of the channel that owns the register. The PAL argument selects
// the note table. Returns false if the register is not a period register or
// if the period has not been written.
func (tr *Tracker) MusicalNote(reg uint16, pal bool) (string, bool) {
	pr, ok := periodRegisters[reg]
	if !ok {
		return "", false
	}

	tr.crit.Lock()
	defer tr.crit.Unlock()

	lo, okLo := tr.shadow[pr.lo]
	hi, okHi := tr.shadow[pr.hi]
	if !okLo || !okHi {
		return "", false
	}

	period := int(hi&pr.hiMsk)<<8 | int(lo)
	return LookupMusicalNote(pr.ct, period, pal, 1), true
}

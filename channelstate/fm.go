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

package channelstate

import (
	"github.com/jetsetilly/chiptracker/chips"
	"github.com/jetsetilly/chiptracker/hardware/apu"
	"github.com/jetsetilly/chiptracker/instrument"
	"github.com/jetsetilly/chiptracker/song"
)

// the first FM channel of the YM2413 that can drive the percussion voices
const firstRhythmChannel = 6

// FM channels of the VRC7 and the YM2413. both chips are reached through the
// same ports and have the same channel registers
type fm struct {
	cs *ChannelState

	// channel index on the chip
	idx uint8

	ym2413 bool

	// the channels of the chip that share the custom patch registers
	siblings chips.ChannelMask

	// patch number in the upper nibble of the volume register
	patchReg uint8

	// previous value written to the period high register
	prevHi uint8

	// set when a rhythm patch is loaded. the rhythm mode effect of a note
	// overrides it
	drum bool

	rhythm struct {
		enabled bool
		keys    uint8
		last    *rhythmEntry

		// key register shared with the other rhythm channels of the chip
		shared *RhythmKeys
	}
}

func newFM(cs *ChannelState) *fm {
	f := &fm{cs: cs}
	if cs.ctype.Expansion() == chips.ExpansionYM2413 {
		f.ym2413 = true
		f.idx = uint8(cs.ctype - chips.YM2413Fm1)
		f.siblings = chips.MaskForRange(chips.YM2413Fm1, chips.YM2413Fm9)
		f.rhythm.shared = cs.opts.Rhythm
		if f.rhythm.shared == nil {
			f.rhythm.shared = NewRhythmKeys()
		}
	} else {
		f.idx = uint8(cs.ctype - chips.Vrc7Fm1)
		f.siblings = chips.MaskForRange(chips.Vrc7Fm1, chips.Vrc7Fm6)
	}
	return f
}

func (f *fm) write(reg uint8, value uint8) {
	f.cs.writeIndirect(apu.FMRegSel, reg, value)
}

func (f *fm) loadInstrument(inst *instrument.Instrument) {
	patch, regs, ok := inst.Patch()
	if !ok {
		return
	}

	if patch == 0 {
		// every other channel that uses the custom patch must reload its
		// instrument
		if f.cs.broadcaster != nil {
			f.cs.broadcaster.NotifyInstrumentLoaded(inst, f.siblings)
		}
		for i := range uint8(apu.FMPatchLength) {
			f.write(apu.FMPatch+i, regs[i])
		}
	}

	f.drum = f.ym2413 && instrument.IsYM2413RhythmPatch(patch)
	if f.drum {
		f.patchReg = 0
	} else {
		f.patchReg = patch << 4
	}
}

func (f *fm) sharedInstrumentLoaded(inst *instrument.Instrument) {
	cs := f.cs
	if cs.inst != nil && cs.inst != inst && cs.inst.UsesSharedPatch() {
		cs.forceReload = true
	}
}

// the rhythm mode of the channel. only the last three channels of the YM2413
// can be used for percussion
func (f *fm) rhythmMode() int {
	if !f.ym2413 || f.idx < firstRhythmChannel {
		return song.RhythmModeOff
	}
	if n := f.cs.note; n != nil && n.HasEffect(song.EffectRhythmMode) {
		return n.EffectValue(song.EffectRhythmMode)
	}
	if f.drum {
		return song.RhythmModeSingle
	}
	return song.RhythmModeOff
}

// octave returns the block number for the period and reduces the period to
// the nine bits of the frequency register
func octave(period int) (int, int) {
	var oct int
	for period >= 0x200 {
		period >>= 1
		oct++
	}
	return period, oct
}

func (f *fm) updateAPU() {
	if mode := f.rhythmMode(); mode != song.RhythmModeOff {
		f.updateRhythm(mode)
		return
	}

	if f.rhythm.enabled {
		// rhythm mode stays on while another rhythm channel has a drum keyed
		f.setKeys(0)
		if f.rhythm.shared.keyed() == 0 {
			f.write(apu.FMRhythmMode, 0x00)
		} else {
			f.write(apu.FMRhythmMode, f.rhythm.shared.value())
		}
		f.rhythm.enabled = false
		f.rhythm.last = nil
	}

	cs := f.cs
	hiReg := apu.FMHi + f.idx

	switch {
	case cs.state == Stopped || cs.state == Idle || !cs.note.IsMusical() || f.drum:
		f.prevHi &^= apu.FMKeyOn | apu.FMSustain
		f.write(hiReg, f.prevHi)

	case cs.state == Releasing:
		f.prevHi &^= apu.FMKeyOn
		f.write(hiReg, f.prevHi)

	default:
		period, oct := octave(cs.period(0xffff))
		volume := 15 - cs.outputVolume()

		lo := uint8(period & 0xff)
		hi := apu.FMKeyOn | apu.FMSustain | uint8(oct&0x07)<<1 | uint8((period>>8)&0x01)

		// key off before key on so that the chip restarts the note
		if cs.noteTriggered && f.prevHi&apu.FMKeyOn != 0 {
			f.write(hiReg, f.prevHi&^apu.FMKeyOn)
		}

		f.write(apu.FMLo+f.idx, lo)
		f.write(hiReg, hi)
		f.write(apu.FMVol+f.idx, f.patchReg|uint8(volume))

		f.prevHi = hi
	}
}

// the drum voice played by the channel. the voice comes from the rhythm patch
// of the instrument or from the channel if the instrument is not a rhythm
// instrument
func (f *fm) drumVoice(mode int) drumVoice {
	var v drumVoice

	patch := f.patchNumber()
	switch patch {
	case instrument.YM2413BassDrum:
		v = drumBass
	case instrument.YM2413SnareDrum:
		v = drumSnare
	case instrument.YM2413HighHat:
		v = drumHiHat
	case instrument.YM2413Toms:
		v = drumTom
	case instrument.YM2413Cymbal:
		v = drumCymbal
	default:
		switch f.idx {
		case firstRhythmChannel:
			v = drumBass
		case firstRhythmChannel + 1:
			v = drumSnare
		default:
			v = drumTom
		}
	}

	if mode == song.RhythmModePaired {
		switch v {
		case drumBass, drumSnare:
			v = drumBassSnare
		case drumHiHat:
			v = drumSnareHiHat
		case drumTom, drumCymbal:
			v = drumTomCymbal
		}
	}

	return v
}

func (f *fm) patchNumber() uint8 {
	if f.cs.inst == nil {
		return 0
	}
	p, _, _ := f.cs.inst.Patch()
	return p
}

// setKeys changes the key bits of this channel. the key bits of the other
// rhythm channels are unchanged
func (f *fm) setKeys(keys uint8) {
	f.rhythm.keys = keys
	f.rhythm.shared.set(int(f.idx-firstRhythmChannel), keys)
}

func (f *fm) keyOff() {
	if f.rhythm.keys != 0 {
		f.setKeys(0)
		f.write(apu.FMRhythmMode, f.rhythm.shared.value())
	}
	f.rhythm.last = nil
}

func (f *fm) updateRhythm(mode int) {
	cs := f.cs

	if cs.state != Sounding || !cs.note.IsMusical() {
		f.keyOff()
		return
	}

	level, ok := volumeLevelFor(cs.outputVolume())
	if !ok {
		return
	}

	entry, ok := rhythmTable[rhythmKey{
		voice: f.drumVoice(mode),
		pitch: pitchClassFor(cs.noteValue()),
		level: level,
	}]
	if !ok {
		return
	}

	if !cs.noteTriggered && entry == f.rhythm.last {
		return
	}

	// a drum is only struck when its key bit changes from zero to one
	if cs.noteTriggered && f.rhythm.keys != 0 {
		f.setKeys(0)
		f.write(apu.FMRhythmMode, f.rhythm.shared.value())
	}

	for _, w := range entry.writes {
		f.write(w.reg, w.value)
	}

	f.setKeys(entry.keys)
	f.write(apu.FMRhythmMode, f.rhythm.shared.value())

	f.rhythm.enabled = true
	f.rhythm.last = entry
}

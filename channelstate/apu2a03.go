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
)

// square channels of the 2A03 and the MMC5
type square struct {
	cs *ChannelState

	regVol   uint16
	regSweep uint16
	regLo    uint16
	regHi    uint16

	// the high period register resets the phase of the square wave so it is
	// only written when it changes
	prevHi int
}

func newSquare(cs *ChannelState) *square {
	sq := &square{cs: cs, prevHi: -1}
	switch cs.ctype {
	case chips.Square1:
		sq.regVol, sq.regSweep, sq.regLo, sq.regHi = apu.Pulse1Vol, apu.Pulse1Sweep, apu.Pulse1Lo, apu.Pulse1Hi
	case chips.Square2:
		sq.regVol, sq.regSweep, sq.regLo, sq.regHi = apu.Pulse2Vol, apu.Pulse2Sweep, apu.Pulse2Lo, apu.Pulse2Hi
	case chips.Mmc5Square1:
		sq.regVol, sq.regLo, sq.regHi = apu.Mmc5Pulse1Vol, apu.Mmc5Pulse1Lo, apu.Mmc5Pulse1Hi
	case chips.Mmc5Square2:
		sq.regVol, sq.regLo, sq.regHi = apu.Mmc5Pulse2Vol, apu.Mmc5Pulse2Lo, apu.Mmc5Pulse2Hi
	}
	return sq
}

func (sq *square) loadInstrument(_ *instrument.Instrument) {
}

func (sq *square) sharedInstrumentLoaded(_ *instrument.Instrument) {
}

func (sq *square) updateAPU() {
	cs := sq.cs

	if !cs.note.IsMusical() || cs.state == Stopped {
		cs.write(sq.regVol, 0x30)
		return
	}

	period := cs.period(0x7ff)
	duty := uint8(cs.duty()&0x03) << 6

	cs.write(sq.regVol, duty|0x30|uint8(cs.outputVolume()))

	// the sweep unit is disabled so that it does not mute high notes
	if sq.regSweep != 0 && cs.noteTriggered {
		cs.write(sq.regSweep, 0x08)
	}

	cs.write(sq.regLo, uint8(period&0xff))

	hi := (period >> 8) & 0x07
	if hi != sq.prevHi {
		cs.write(sq.regHi, uint8(hi))
		sq.prevHi = hi
	}
}

// triangle channel of the 2A03. the triangle has no volume control and is
// either sounding or silent
type triangle struct {
	cs *ChannelState
}

func (tri *triangle) loadInstrument(_ *instrument.Instrument) {
}

func (tri *triangle) sharedInstrumentLoaded(_ *instrument.Instrument) {
}

func (tri *triangle) updateAPU() {
	cs := tri.cs

	if !cs.note.IsMusical() || cs.state == Stopped {
		cs.write(apu.TriLinear, 0x80)
		return
	}

	period := cs.period(0x7ff)

	if cs.outputVolume() > 0 {
		cs.write(apu.TriLinear, 0xff)
	} else {
		cs.write(apu.TriLinear, 0x80)
	}
	cs.write(apu.TriLo, uint8(period&0xff))
	cs.write(apu.TriHi, uint8((period>>8)&0x07))
}

// noise channel of the 2A03. the note value selects one of sixteen noise
// periods
type noise struct {
	cs *ChannelState
}

func (ns *noise) loadInstrument(_ *instrument.Instrument) {
}

func (ns *noise) sharedInstrumentLoaded(_ *instrument.Instrument) {
}

func (ns *noise) updateAPU() {
	cs := ns.cs

	if !cs.note.IsMusical() || cs.state == Stopped {
		cs.write(apu.NoiseVol, 0x30)
		return
	}

	p := cs.noteValue() - 1
	if cs.slidePitch != 0 {
		p += cs.slidePitch >> -cs.slideShift
	}
	p += cs.envelopes[instrument.EnvelopePitch].value() + cs.finePitch
	p &= 0x0f

	mode := uint8(cs.duty()&0x01) << 7

	cs.write(apu.NoiseVol, 0x30|uint8(cs.outputVolume()))
	cs.write(apu.NoiseLo, uint8(p^0x0f)|mode)
}

// the DPCM channels only need to be silenced. samples are not played
type dpcm struct {
	cs     *ChannelState
	silent bool
}

func (dm *dpcm) loadInstrument(_ *instrument.Instrument) {
}

func (dm *dpcm) sharedInstrumentLoaded(_ *instrument.Instrument) {
}

func (dm *dpcm) updateAPU() {
	cs := dm.cs
	if cs.state != Stopped {
		dm.silent = false
		return
	}
	if !dm.silent && cs.ctype == chips.Dpcm {
		cs.write(apu.DmcRaw, 0x00)
	}
	dm.silent = true
}

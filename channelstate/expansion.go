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

type vrc6Square struct {
	cs *ChannelState

	regVol uint16
	regLo  uint16
	regHi  uint16
}

func newVrc6Square(cs *ChannelState) *vrc6Square {
	if cs.ctype == chips.Vrc6Square1 {
		return &vrc6Square{cs: cs, regVol: apu.Vrc6Pulse1Vol, regLo: apu.Vrc6Pulse1Lo, regHi: apu.Vrc6Pulse1Hi}
	}
	return &vrc6Square{cs: cs, regVol: apu.Vrc6Pulse2Vol, regLo: apu.Vrc6Pulse2Lo, regHi: apu.Vrc6Pulse2Hi}
}

func (sq *vrc6Square) loadInstrument(_ *instrument.Instrument) {
}

func (sq *vrc6Square) sharedInstrumentLoaded(_ *instrument.Instrument) {
}

func (sq *vrc6Square) updateAPU() {
	cs := sq.cs

	if !cs.note.IsMusical() || cs.state == Stopped {
		cs.write(sq.regHi, 0x00)
		return
	}

	period := cs.period(0xfff)
	duty := uint8(cs.duty()&0x07) << 4

	cs.write(sq.regVol, duty|uint8(cs.outputVolume()))
	cs.write(sq.regLo, uint8(period&0xff))
	cs.write(sq.regHi, 0x80|uint8((period>>8)&0x0f))
}

type vrc6Saw struct {
	cs *ChannelState
}

func (saw *vrc6Saw) loadInstrument(_ *instrument.Instrument) {
}

func (saw *vrc6Saw) sharedInstrumentLoaded(_ *instrument.Instrument) {
}

// the accumulator rate of the saw channel. full volume overflows the
// accumulator and distorts
func (saw *vrc6Saw) rate(vol int) uint8 {
	master := instrument.Vrc6SawHalf
	if saw.cs.inst != nil {
		master = saw.cs.inst.Vrc6SawMasterVolume
	}
	switch master {
	case instrument.Vrc6SawFull:
		return uint8(vol << 2)
	case instrument.Vrc6SawQuarter:
		return uint8(vol)
	}
	return uint8(vol << 1)
}

func (saw *vrc6Saw) updateAPU() {
	cs := saw.cs

	if !cs.note.IsMusical() || cs.state == Stopped {
		cs.write(apu.Vrc6SawHi, 0x00)
		return
	}

	period := cs.period(0xfff)

	cs.write(apu.Vrc6SawVol, saw.rate(cs.outputVolume())&0x3f)
	cs.write(apu.Vrc6SawLo, uint8(period&0xff))
	cs.write(apu.Vrc6SawHi, 0x80|uint8((period>>8)&0x0f))
}

type s5b struct {
	cs  *ChannelState
	idx uint8
}

func (sq *s5b) loadInstrument(_ *instrument.Instrument) {
}

func (sq *s5b) sharedInstrumentLoaded(_ *instrument.Instrument) {
}

func (sq *s5b) updateAPU() {
	cs := sq.cs

	if !cs.note.IsMusical() || cs.state == Stopped {
		cs.writeIndirect(apu.S5BAddr, apu.S5BVol+sq.idx, 0x00)
		return
	}

	period := cs.period(0xfff)

	cs.writeIndirect(apu.S5BAddr, apu.S5BToneLo+sq.idx*2, uint8(period&0xff))
	cs.writeIndirect(apu.S5BAddr, apu.S5BToneHi+sq.idx*2, uint8((period>>8)&0x0f))
	cs.writeIndirect(apu.S5BAddr, apu.S5BVol+sq.idx, uint8(cs.outputVolume()))
}

// the FDS has a single channel with a 64 sample waveform and a 32 step
// modulation table
type fds struct {
	cs *ChannelState
}

func (f *fds) loadInstrument(inst *instrument.Instrument) {
	if inst == nil || inst.Expansion != chips.ExpansionFds {
		return
	}

	cs := f.cs

	// waveform RAM is only writable while bit 7 of the wave control register
	// is set
	cs.write(apu.FdsWaveCtl, 0x80)
	wave := inst.Envelopes[instrument.EnvelopeFdsWaveform]
	for i := range apu.FdsWaveLength {
		cs.write(apu.FdsWaveStart+uint16(i), uint8(wave.Value(instrument.EnvelopeFdsWaveform, i))&0x3f)
	}
	cs.write(apu.FdsWaveCtl, uint8(inst.FdsMasterVolume)&0x03)

	// the modulation table is loaded while the modulator is halted
	cs.write(apu.FdsModFreqHi, 0x80)
	mod := inst.Envelopes[instrument.EnvelopeFdsModulation]
	for i := range apu.FdsModLength {
		cs.write(apu.FdsModTable, uint8(mod.Value(instrument.EnvelopeFdsModulation, i))&0x07)
	}

	cs.fdsModDepth = inst.FdsModDepth
	cs.fdsModSpeed = inst.FdsModSpeed
}

func (f *fds) sharedInstrumentLoaded(_ *instrument.Instrument) {
}

func (f *fds) updateAPU() {
	cs := f.cs

	if !cs.note.IsMusical() || cs.state == Stopped {
		cs.write(apu.FdsVolEnv, 0x80)
		cs.write(apu.FdsFreqHi, 0x80)
		return
	}

	period := cs.period(0xfff)

	// volume range of the FDS is 0 to 32
	cs.write(apu.FdsVolEnv, 0x80|uint8(min(cs.outputVolume()*2, 32)))
	cs.write(apu.FdsFreqLo, uint8(period&0xff))
	cs.write(apu.FdsFreqHi, uint8((period>>8)&0x0f))

	if cs.fdsModDepth > 0 {
		cs.write(apu.FdsModEnv, 0x80|uint8(cs.fdsModDepth&0x3f))
		cs.write(apu.FdsModFreqLo, uint8(cs.fdsModSpeed&0xff))
		cs.write(apu.FdsModFreqHi, uint8((cs.fdsModSpeed>>8)&0x0f))
	} else {
		cs.write(apu.FdsModFreqHi, 0x80)
	}
}

// the N163 has up to eight channels sharing 128 bytes of internal RAM. the
// top of the RAM holds the channel registers and the waveforms are stored
// below them
type n163 struct {
	cs  *ChannelState
	idx int
}

func (n *n163) reg(r uint8) uint8 {
	return apu.N163ChannelReg(n.idx, r)
}

func (n *n163) loadInstrument(inst *instrument.Instrument) {
	if inst == nil || inst.Expansion != chips.ExpansionN163 {
		return
	}

	cs := n.cs
	wave := inst.Envelopes[instrument.EnvelopeN163Waveform]
	size := inst.N163WaveSize()
	pos := inst.N163WavePos()

	// two samples are packed into each byte of RAM
	cs.write(apu.N163Addr, apu.N163AutoIncrement|uint8(pos/2))
	for i := 0; i < size; i += 2 {
		lo := uint8(wave.Value(instrument.EnvelopeN163Waveform, i)) & 0x0f
		hi := uint8(wave.Value(instrument.EnvelopeN163Waveform, i+1)) & 0x0f
		cs.write(apu.N163Data, lo|hi<<4)
	}

	cs.writeIndirect(apu.N163Addr, n.reg(apu.N163WavePos), uint8(pos))
}

func (n *n163) sharedInstrumentLoaded(_ *instrument.Instrument) {
}

func (n *n163) updateAPU() {
	cs := n.cs

	// the volume register of the first channel also holds the number of
	// active channels
	var count uint8
	if n.idx == 0 {
		count = uint8(min(max(cs.opts.N163Channels, 1), chips.MaxN163Channels)-1) << 4
	}

	if !cs.note.IsMusical() || cs.state == Stopped {
		cs.writeIndirect(apu.N163Addr, n.reg(apu.N163Vol), count)
		return
	}

	size := instrument.N163DefaultWaveSize
	if cs.inst != nil {
		size = cs.inst.N163WaveSize()
	}

	period := cs.period(0x3ffff)

	cs.writeIndirect(apu.N163Addr, n.reg(apu.N163FreqLo), uint8(period&0xff))
	cs.writeIndirect(apu.N163Addr, n.reg(apu.N163FreqMid), uint8((period>>8)&0xff))
	cs.writeIndirect(apu.N163Addr, n.reg(apu.N163FreqHi), uint8(256-size)&0xfc|uint8((period>>16)&0x03))
	cs.writeIndirect(apu.N163Addr, n.reg(apu.N163Vol), count|uint8(cs.outputVolume()))
}

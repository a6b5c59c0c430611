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
	"math"

	"github.com/jetsetilly/chiptracker/chips"
	"github.com/jetsetilly/chiptracker/instrument"
)

// plays the values of an envelope, one value per frame
type envelopePlayer struct {
	env *instrument.Envelope
	t   instrument.EnvelopeType
	idx int

	// accumulated value of a relative envelope
	acc int
}

func (p *envelopePlayer) reset(env *instrument.Envelope, t instrument.EnvelopeType) {
	p.env = env
	p.t = t
	p.idx = 0
	p.acc = 0
	if p.env != nil && p.env.Relative {
		p.acc = p.env.Value(t, 0)
	}
}

// value returns the current value of the envelope or the default value for
// the envelope type if there is no envelope
func (p *envelopePlayer) value() int {
	if p.env == nil || p.env.Len() == 0 {
		return p.t.DefaultValue()
	}
	if p.env.Relative {
		return p.acc
	}
	return p.env.Value(p.t, p.idx)
}

func (p *envelopePlayer) active() bool {
	return p.env != nil && !p.env.IsEmpty(p.t)
}

func (p *envelopePlayer) step(released bool) {
	if p.env == nil || p.env.Len() == 0 {
		return
	}

	// hold at the release point until the note is released
	if p.idx == p.env.Release && !released {
		return
	}

	p.idx++
	if p.idx >= p.env.Len() {
		if p.env.Loop >= 0 {
			p.idx = p.env.Loop
		} else {
			p.idx = p.env.Len() - 1
			return
		}
	}

	if p.env.Relative {
		p.acc = min(max(p.acc+p.env.Value(p.t, p.idx), -128), 127)
	}
}

// jump past the release point
func (p *envelopePlayer) release() {
	if p.env == nil || p.env.Release < 0 {
		return
	}
	if p.idx <= p.env.Release {
		p.idx = min(p.env.Release+1, p.env.Len()-1)
	}
}

func (cs *ChannelState) resetEnvelopes(arp *instrument.Arpeggio) {
	for t := range instrument.EnvelopeCount {
		var env *instrument.Envelope
		if cs.inst != nil {
			env = cs.inst.Envelopes[t]
		}
		if t == instrument.EnvelopeArpeggio && arp != nil {
			env = arp.Envelope
		}
		cs.envelopes[t].reset(env, t)
	}
}

// the note volume has four bits of fraction to support volume slides
const volumeFraction = 4

// number of steps in one period of vibrato
const vibratoPeriod = 64

// vibrato depth in pitch units for each value of the vibrato depth effect
var vibratoDepths = [16]int{0, 1, 2, 3, 4, 5, 6, 8, 9, 10, 12, 14, 16, 20, 24, 28}

func (cs *ChannelState) vibratoOffset() int {
	if cs.vibratoSpeed == 0 || cs.vibratoDepth == 0 {
		return 0
	}
	depth := vibratoDepths[min(cs.vibratoDepth, len(vibratoDepths)-1)]
	return int(math.Round(math.Sin(2.0*math.Pi*float64(cs.vibratoPhase)/vibratoPeriod) * float64(depth)))
}

// noteValue returns the note value with the arpeggio applied. during a slide
// the slide target is the base note
func (cs *ChannelState) noteValue() int {
	v := int(cs.note.Value)
	if cs.slideStep != 0 || cs.slidePitch != 0 {
		v = int(cs.note.SlideTarget)
	}
	v += cs.envelopes[instrument.EnvelopeArpeggio].value()
	return min(max(v, 1), chips.NoteCount-1)
}

// period returns the pitch of the current note in the native units of the
// chip. the max argument is the largest value the chip accepts
func (cs *ChannelState) period(maxValue int) int {
	if cs.table == nil {
		return 0
	}

	p := cs.table[cs.noteValue()]

	if cs.slidePitch != 0 {
		if cs.slideShift < 0 {
			p += cs.slidePitch >> -cs.slideShift
		} else {
			p += cs.slidePitch << cs.slideShift
		}
	}

	offset := (cs.envelopes[instrument.EnvelopePitch].value() + cs.finePitch + cs.vibratoOffset()) << cs.pitchShift
	if chips.IsPeriodTable(cs.ctype) {
		p -= offset
	} else {
		p += offset
	}

	return min(max(p, 0), maxValue)
}

func multiplyVolumes(a int, b int) int {
	if a <= 0 || b <= 0 {
		return 0
	}
	return min(max((a*b+14)/15, 1), 15)
}

// outputVolume combines the volume envelope and the note volume. the result
// is in the range 0 to 15
func (cs *ChannelState) outputVolume() int {
	if cs.state != Sounding && cs.state != Releasing {
		return 0
	}
	return multiplyVolumes(cs.envelopes[instrument.EnvelopeVolume].value(), cs.volume>>volumeFraction)
}

// duty returns the duty cycle of the channel. the duty envelope of the
// instrument takes precedence over the duty cycle effect
func (cs *ChannelState) duty() int {
	if cs.envelopes[instrument.EnvelopeDutyCycle].active() {
		return cs.envelopes[instrument.EnvelopeDutyCycle].value()
	}
	return cs.dutyCycle
}

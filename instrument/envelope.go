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

package instrument

import (
	"fmt"
	"math"
)

// EnvelopeType identifies what an envelope controls.
type EnvelopeType int

// List of valid EnvelopeType values.
const (
	EnvelopeVolume EnvelopeType = iota
	EnvelopeArpeggio
	EnvelopePitch
	EnvelopeDutyCycle
	EnvelopeFdsWaveform
	EnvelopeFdsModulation
	EnvelopeN163Waveform
	EnvelopeCount
)

var envelopeNames = [EnvelopeCount]string{
	"Volume",
	"Arpeggio",
	"Pitch",
	"Duty Cycle",
	"FDS Waveform",
	"FDS Modulation",
	"N163 Waveform",
}

func (t EnvelopeType) String() string {
	if t < 0 || t >= EnvelopeCount {
		return fmt.Sprintf("unknown envelope (%d)", int(t))
	}
	return envelopeNames[t]
}

// ValidRange returns the minimum and maximum values for the envelope type.
func (t EnvelopeType) ValidRange() (int, int) {
	switch t {
	case EnvelopeVolume:
		return 0, 15
	case EnvelopeArpeggio, EnvelopePitch:
		return -64, 63
	case EnvelopeDutyCycle:
		return 0, 7
	case EnvelopeFdsWaveform:
		return 0, 63
	case EnvelopeFdsModulation:
		return -4, 3
	case EnvelopeN163Waveform:
		return 0, 15
	}
	return 0, 0
}

// DefaultValue returns the value used when the envelope has no values.
func (t EnvelopeType) DefaultValue() int {
	if t == EnvelopeVolume {
		return 15
	}
	return 0
}

// MaxLength returns the maximum number of values in an envelope of the
// type.
func (t EnvelopeType) MaxLength() int {
	switch t {
	case EnvelopeFdsWaveform:
		return 64
	case EnvelopeFdsModulation:
		return 32
	case EnvelopeN163Waveform:
		return N163MaxWaveSize
	}
	return 256
}

// Envelope is a list of values played one per frame. When the end of the
// envelope is reached playback continues from the loop point or holds the
// last value if there is no loop point.
//
// If the envelope has a release point then playback will not continue past
// the release point until the note is released.
type Envelope struct {
	Values []int8

	// Loop and Release are -1 if the envelope has no loop point or release
	// point
	Loop    int
	Release int

	// relative envelopes accumulate their values over time. only the pitch
	// envelope can be relative
	Relative bool
}

// NewEnvelope is the preferred method of initialisation for the Envelope
// type.
func NewEnvelope(t EnvelopeType) *Envelope {
	e := &Envelope{
		Loop:     -1,
		Release:  -1,
		Relative: t == EnvelopePitch,
	}
	return e
}

// Len returns the number of values in the envelope.
func (e *Envelope) Len() int {
	return len(e.Values)
}

// IsEmpty returns true if playing the envelope would have no effect.
func (e *Envelope) IsEmpty(t EnvelopeType) bool {
	if len(e.Values) == 0 {
		return true
	}
	def := t.DefaultValue()
	for _, v := range e.Values {
		if int(v) != def {
			return false
		}
	}
	return true
}

// Value returns the value at the index or the default value for the type if
// the index is out of range.
func (e *Envelope) Value(t EnvelopeType, idx int) int {
	if idx < 0 || idx >= len(e.Values) {
		return t.DefaultValue()
	}
	return int(e.Values[idx])
}

// ClampToValidRange changes every value that is outside the valid range for
// the type. Returns the number of values that were changed.
func (e *Envelope) ClampToValidRange(t EnvelopeType) int {
	lo, hi := t.ValidRange()
	var n int
	for i, v := range e.Values {
		c := min(max(int(v), lo), hi)
		if c != int(v) {
			e.Values[i] = int8(c)
			n++
		}
	}
	if e.Loop >= len(e.Values) {
		e.Loop = -1
	}
	if e.Release >= len(e.Values) || e.Release <= e.Loop {
		e.Release = -1
	}
	return n
}

// Clone returns a copy of the envelope.
func (e *Envelope) Clone() *Envelope {
	c := *e
	c.Values = append([]int8(nil), e.Values...)
	return &c
}

// WavePreset is a predefined waveform used by the wavetable chips.
type WavePreset int

// List of valid WavePreset values.
const (
	WaveSine WavePreset = iota
	WaveTriangle
	WaveSawtooth
	WaveSquare50
	WaveSquare25
	WaveFlat
	WaveCustom
)

// SetFromPreset replaces the values of the envelope with the waveform. The
// size argument is the number of values in the waveform. The custom preset
// leaves the values unchanged except for the length.
func (e *Envelope) SetFromPreset(t EnvelopeType, preset WavePreset, size int) {
	if preset == WaveCustom {
		if len(e.Values) != size {
			v := make([]int8, size)
			copy(v, e.Values)
			e.Values = v
		}
		return
	}

	lo, hi := t.ValidRange()
	e.Values = make([]int8, size)
	e.Loop = -1
	e.Release = -1

	for i := range size {
		var f float64
		phase := float64(i) / float64(size)

		switch preset {
		case WaveSine:
			f = (math.Sin(2.0*math.Pi*phase) + 1.0) / 2.0
		case WaveTriangle:
			if phase < 0.5 {
				f = phase * 2.0
			} else {
				f = 2.0 - phase*2.0
			}
		case WaveSawtooth:
			f = phase
		case WaveSquare50:
			if phase < 0.5 {
				f = 1.0
			}
		case WaveSquare25:
			if phase < 0.25 {
				f = 1.0
			}
		case WaveFlat:
			f = 0.5
		}

		// the modulation table is centered on zero
		if t == EnvelopeFdsModulation && preset == WaveFlat {
			e.Values[i] = 0
			continue
		}

		v := int(math.Round(float64(lo) + f*float64(hi-lo)))
		e.Values[i] = int8(min(max(v, lo), hi))
	}
}

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

package instrument_test

import (
	"testing"

	"github.com/jetsetilly/chiptracker/chips"
	"github.com/jetsetilly/chiptracker/instrument"
	"github.com/jetsetilly/chiptracker/notifications"
	"github.com/jetsetilly/chiptracker/test"
)

func TestEnvelopeClamp(t *testing.T) {
	e := instrument.NewEnvelope(instrument.EnvelopeVolume)
	e.Values = []int8{0, 5, 20, -3, 15}
	e.Loop = 2
	e.Release = 7

	n := e.ClampToValidRange(instrument.EnvelopeVolume)
	test.ExpectEquality(t, n, 2)
	test.ExpectEquality(t, e.Values[2], int8(15))
	test.ExpectEquality(t, e.Values[3], int8(0))
	test.ExpectEquality(t, e.Loop, 2)
	test.ExpectEquality(t, e.Release, -1)

	// nothing to clamp the second time
	n = e.ClampToValidRange(instrument.EnvelopeVolume)
	test.ExpectEquality(t, n, 0)
}

func TestEnvelopeValue(t *testing.T) {
	e := instrument.NewEnvelope(instrument.EnvelopeVolume)
	test.ExpectSuccess(t, e.IsEmpty(instrument.EnvelopeVolume))
	test.ExpectEquality(t, e.Value(instrument.EnvelopeVolume, 0), 15)

	e.Values = []int8{15, 15}
	test.ExpectSuccess(t, e.IsEmpty(instrument.EnvelopeVolume))

	e.Values = []int8{15, 3}
	test.ExpectFailure(t, e.IsEmpty(instrument.EnvelopeVolume))
	test.ExpectEquality(t, e.Value(instrument.EnvelopeVolume, 1), 3)

	p := instrument.NewEnvelope(instrument.EnvelopePitch)
	test.ExpectSuccess(t, p.Relative)
}

func TestWavePresets(t *testing.T) {
	e := instrument.NewEnvelope(instrument.EnvelopeN163Waveform)
	e.SetFromPreset(instrument.EnvelopeN163Waveform, instrument.WaveSquare50, 16)
	test.ExpectEquality(t, e.Len(), 16)
	test.ExpectEquality(t, e.Values[0], int8(15))
	test.ExpectEquality(t, e.Values[15], int8(0))

	e.SetFromPreset(instrument.EnvelopeN163Waveform, instrument.WaveSawtooth, 16)
	test.ExpectEquality(t, e.Values[0], int8(0))
	for i := 1; i < e.Len(); i++ {
		test.ExpectSuccess(t, e.Values[i] >= e.Values[i-1], i)
	}

	// custom preset keeps existing values
	e.SetFromPreset(instrument.EnvelopeN163Waveform, instrument.WaveCustom, 20)
	test.ExpectEquality(t, e.Len(), 20)
	test.ExpectEquality(t, e.Values[15], int8(14))
	test.ExpectEquality(t, e.Values[19], int8(0))
}

func TestNewInstrument(t *testing.T) {
	inst := instrument.NewInstrument(1, chips.ExpansionNone, "lead")
	test.ExpectSuccess(t, inst.IsEnvelopeActive(instrument.EnvelopeDutyCycle))
	test.ExpectFailure(t, inst.IsEnvelopeActive(instrument.EnvelopeFdsWaveform))
	test.ExpectSuccess(t, inst.Envelopes[instrument.EnvelopeFdsWaveform] == nil)
	test.ExpectEquality(t, inst.NameWithExpansion(), "lead")

	fds := instrument.NewInstrument(2, chips.ExpansionFds, "bass")
	test.ExpectEquality(t, fds.Envelopes[instrument.EnvelopeFdsWaveform].Len(), 64)
	test.ExpectEquality(t, fds.Envelopes[instrument.EnvelopeFdsModulation].Len(), 32)
	test.ExpectEquality(t, fds.NameWithExpansion(), "bass (FDS)")

	vrc7 := instrument.NewInstrument(3, chips.ExpansionVrc7, "bell")
	p, regs, ok := vrc7.Patch()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, p, instrument.Vrc7Bell)
	test.ExpectEquality(t, regs, instrument.Vrc7Patches[instrument.Vrc7Bell].Data)
	test.ExpectFailure(t, vrc7.UsesSharedPatch())
}

func TestPatches(t *testing.T) {
	inst := instrument.NewInstrument(1, chips.ExpansionYM2413, "violin")
	test.ExpectEquality(t, inst.YM2413Patch(), instrument.YM2413Violin)

	// selecting the custom patch keeps the previous register data
	inst.SetYM2413Patch(instrument.YM2413Custom)
	test.ExpectSuccess(t, inst.UsesSharedPatch())
	test.ExpectEquality(t, inst.YM2413PatchRegs, instrument.YM2413Patches[instrument.YM2413Violin].Data)

	inst.SetYM2413Patch(instrument.YM2413BassDrum)
	test.ExpectSuccess(t, instrument.IsYM2413RhythmPatch(inst.YM2413Patch()))
	test.ExpectFailure(t, instrument.IsYM2413RhythmPatch(instrument.YM2413ElectricGuitar))

	// out of range patch numbers are ignored
	inst.SetYM2413Patch(200)
	test.ExpectEquality(t, inst.YM2413Patch(), instrument.YM2413BassDrum)

	none := instrument.NewInstrument(2, chips.ExpansionNone, "square")
	_, _, ok := none.Patch()
	test.ExpectFailure(t, ok)
}

func TestN163Wave(t *testing.T) {
	inst := instrument.NewInstrument(1, chips.ExpansionN163, "wave")
	test.ExpectEquality(t, inst.N163WaveSize(), instrument.N163DefaultWaveSize)

	inst.SetN163WaveSize(33)
	test.ExpectEquality(t, inst.N163WaveSize(), 32)
	test.ExpectEquality(t, inst.Envelopes[instrument.EnvelopeN163Waveform].Len(), 32)

	inst.SetN163WaveSize(1000)
	test.ExpectEquality(t, inst.N163WaveSize(), instrument.N163MaxWaveSize)

	inst.SetN163WavePos(100)
	test.ExpectEquality(t, inst.N163WavePos(), 0)

	inst.SetN163WaveSize(16)
	inst.SetN163WavePos(300)
	test.ExpectEquality(t, inst.N163WavePos(), instrument.N163MaxWaveSize-16)
}

func TestClampEnvelopes(t *testing.T) {
	var c notifications.Collector

	inst := instrument.NewInstrument(1, chips.ExpansionNone, "old")
	inst.Envelopes[instrument.EnvelopeDutyCycle].Values = []int8{0, 1, 9}
	inst.Envelopes[instrument.EnvelopeArpeggio].Values = []int8{0, 100}
	inst.ClampEnvelopes(&c)

	test.ExpectEquality(t, c.Count(notifications.NotifyEnvelopeClamped), 2)
	test.ExpectEquality(t, inst.Envelopes[instrument.EnvelopeDutyCycle].Values[2], int8(7))
	test.ExpectEquality(t, inst.Envelopes[instrument.EnvelopeArpeggio].Values[1], int8(63))

	// nil notifier is allowed
	inst.Envelopes[instrument.EnvelopeDutyCycle].Values[0] = 10
	inst.ClampEnvelopes(nil)
	test.ExpectEquality(t, inst.Envelopes[instrument.EnvelopeDutyCycle].Values[0], int8(7))
}

func TestClone(t *testing.T) {
	inst := instrument.NewInstrument(1, chips.ExpansionNone, "lead")
	inst.Envelopes[instrument.EnvelopeVolume].Values = []int8{15, 10}

	c := inst.Clone()
	c.Envelopes[instrument.EnvelopeVolume].Values[0] = 1
	test.ExpectEquality(t, inst.Envelopes[instrument.EnvelopeVolume].Values[0], int8(15))
}

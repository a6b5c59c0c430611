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

	"github.com/jetsetilly/chiptracker/chips"
	"github.com/jetsetilly/chiptracker/logger"
	"github.com/jetsetilly/chiptracker/notifications"
)

// FdsMasterVolume is the output level of the FDS channel.
type FdsMasterVolume int

// List of valid FdsMasterVolume values.
const (
	FdsVolume100 FdsMasterVolume = iota
	FdsVolume66
	FdsVolume50
	FdsVolume40
)

// Vrc6SawMasterVolume is the output level of the VRC6 saw channel.
type Vrc6SawMasterVolume int

// List of valid Vrc6SawMasterVolume values.
const (
	Vrc6SawFull Vrc6SawMasterVolume = iota
	Vrc6SawHalf
	Vrc6SawQuarter
)

// Limits of the N163 wave RAM available to a single instrument.
const (
	N163MinWaveSize     = 4
	N163MaxWaveSize     = 248
	N163DefaultWaveSize = 16
)

// Instrument is the set of envelopes and chip specific settings used to play
// a note.
type Instrument struct {
	ID        int
	Name      string
	Expansion chips.Expansion

	// envelopes that are not supported by the expansion are nil
	Envelopes [EnvelopeCount]*Envelope

	FdsMasterVolume FdsMasterVolume
	FdsWavePreset   WavePreset
	FdsModPreset    WavePreset
	FdsModSpeed     int
	FdsModDepth     int
	FdsModDelay     int

	N163WavePreset WavePreset
	n163WaveSize   int
	n163WavePos    int

	Vrc6SawMasterVolume Vrc6SawMasterVolume

	vrc7Patch     uint8
	Vrc7PatchRegs [8]uint8

	ym2413Patch     uint8
	YM2413PatchRegs [8]uint8
}

// NewInstrument is the preferred method of initialisation for the Instrument
// type.
func NewInstrument(id int, expansion chips.Expansion, name string) *Instrument {
	inst := &Instrument{
		ID:                  id,
		Name:                name,
		Expansion:           expansion,
		Vrc6SawMasterVolume: Vrc6SawHalf,
		N163WavePreset:      WaveSine,
		n163WaveSize:        N163DefaultWaveSize,
		FdsWavePreset:       WaveSine,
		FdsModPreset:        WaveFlat,
	}

	for t := range EnvelopeCount {
		if inst.IsEnvelopeActive(t) {
			inst.Envelopes[t] = NewEnvelope(t)
		}
	}

	switch expansion {
	case chips.ExpansionFds:
		inst.Envelopes[EnvelopeFdsWaveform].SetFromPreset(EnvelopeFdsWaveform, inst.FdsWavePreset, 64)
		inst.Envelopes[EnvelopeFdsModulation].SetFromPreset(EnvelopeFdsModulation, inst.FdsModPreset, 32)
	case chips.ExpansionN163:
		inst.Envelopes[EnvelopeN163Waveform].SetFromPreset(EnvelopeN163Waveform, inst.N163WavePreset, inst.n163WaveSize)
	case chips.ExpansionVrc7:
		inst.SetVrc7Patch(Vrc7Bell)
	case chips.ExpansionYM2413:
		inst.SetYM2413Patch(YM2413Violin)
	}

	return inst
}

func (inst *Instrument) String() string {
	return inst.NameWithExpansion()
}

// NameWithExpansion returns the name of the instrument with the short name of
// the expansion appended.
func (inst *Instrument) NameWithExpansion() string {
	if inst.Expansion == chips.ExpansionNone {
		return inst.Name
	}
	return fmt.Sprintf("%s (%s)", inst.Name, inst.Expansion.ShortName())
}

// IsEnvelopeActive returns true if the envelope type is used by the
// instrument's expansion.
func (inst *Instrument) IsEnvelopeActive(t EnvelopeType) bool {
	switch t {
	case EnvelopeVolume, EnvelopeArpeggio, EnvelopePitch:
		return true
	case EnvelopeDutyCycle:
		switch inst.Expansion {
		case chips.ExpansionNone, chips.ExpansionVrc6, chips.ExpansionMmc5:
			return true
		}
	case EnvelopeFdsWaveform, EnvelopeFdsModulation:
		return inst.Expansion == chips.ExpansionFds
	case EnvelopeN163Waveform:
		return inst.Expansion == chips.ExpansionN163
	}
	return false
}

// HasReleaseEnvelope returns true if the volume envelope has a release
// point.
func (inst *Instrument) HasReleaseEnvelope() bool {
	e := inst.Envelopes[EnvelopeVolume]
	return e != nil && e.Release >= 0
}

// IsFM returns true if the instrument belongs to one of the FM chips.
func (inst *Instrument) IsFM() bool {
	return inst.Expansion == chips.ExpansionVrc7 || inst.Expansion == chips.ExpansionYM2413
}

// Vrc7Patch returns the VRC7 patch number.
func (inst *Instrument) Vrc7Patch() uint8 {
	return inst.vrc7Patch
}

// SetVrc7Patch selects the VRC7 patch. The register data of the built-in
// patches is copied into Vrc7PatchRegs. Selecting the custom patch leaves the
// register data unchanged.
func (inst *Instrument) SetVrc7Patch(patch uint8) {
	if int(patch) >= len(Vrc7Patches) {
		return
	}
	inst.vrc7Patch = patch
	if patch != Vrc7Custom {
		inst.Vrc7PatchRegs = Vrc7Patches[patch].Data
	}
}

// YM2413Patch returns the YM2413 patch number.
func (inst *Instrument) YM2413Patch() uint8 {
	return inst.ym2413Patch
}

// SetYM2413Patch selects the YM2413 patch. Behaves in the same way as
// SetVrc7Patch().
func (inst *Instrument) SetYM2413Patch(patch uint8) {
	if int(patch) >= len(YM2413Patches) {
		return
	}
	inst.ym2413Patch = patch
	if patch != YM2413Custom {
		inst.YM2413PatchRegs = YM2413Patches[patch].Data
	}
}

// Patch returns the FM patch number of the instrument and the register data
// for that patch. Returns false if the instrument is not an FM instrument.
func (inst *Instrument) Patch() (uint8, [8]uint8, bool) {
	switch inst.Expansion {
	case chips.ExpansionVrc7:
		return inst.vrc7Patch, inst.Vrc7PatchRegs, true
	case chips.ExpansionYM2413:
		return inst.ym2413Patch, inst.YM2413PatchRegs, true
	}
	return 0, [8]uint8{}, false
}

// UsesSharedPatch returns true if the instrument uses the custom patch of an
// FM chip. The custom patch registers are shared by every channel of the chip.
func (inst *Instrument) UsesSharedPatch() bool {
	p, _, ok := inst.Patch()
	return ok && p == 0
}

// N163WaveSize returns the number of samples in the N163 waveform.
func (inst *Instrument) N163WaveSize() int {
	return inst.n163WaveSize
}

// SetN163WaveSize changes the size of the N163 waveform. The size is rounded
// down to a multiple of four and clamped to the valid range. The wave position
// is adjusted so that the waveform fits in wave RAM.
func (inst *Instrument) SetN163WaveSize(size int) {
	size = min(max(size&^3, N163MinWaveSize), N163MaxWaveSize)
	inst.n163WaveSize = size
	inst.n163WavePos = min(inst.n163WavePos, N163MaxWaveSize-size)
	if e := inst.Envelopes[EnvelopeN163Waveform]; e != nil {
		e.SetFromPreset(EnvelopeN163Waveform, inst.N163WavePreset, size)
	}
}

// N163WavePos returns the position of the waveform in N163 wave RAM.
func (inst *Instrument) N163WavePos() int {
	return inst.n163WavePos
}

// SetN163WavePos changes the position of the waveform in N163 wave RAM.
func (inst *Instrument) SetN163WavePos(pos int) {
	inst.n163WavePos = min(max(pos&^1, 0), N163MaxWaveSize-inst.n163WaveSize)
}

// ClampEnvelopes forces every envelope value into the valid range for the
// envelope type. Older project files can contain values that are out of range.
// Each envelope that is changed is logged and sent to the notifier, if one is
// provided.
func (inst *Instrument) ClampEnvelopes(notify notifications.Notify) {
	for t, e := range inst.Envelopes {
		if e == nil {
			continue
		}
		n := e.ClampToValidRange(EnvelopeType(t))
		if n == 0 {
			continue
		}
		detail := fmt.Sprintf("%s: %d values clamped in %s envelope", inst.Name, n, EnvelopeType(t))
		logger.Log(logger.Allow, "instrument", detail)
		if notify != nil {
			_ = notify.Notify(notifications.NotifyEnvelopeClamped, detail)
		}
	}
}

// Clone returns a deep copy of the instrument.
func (inst *Instrument) Clone() *Instrument {
	c := *inst
	for t, e := range inst.Envelopes {
		if e != nil {
			c.Envelopes[t] = e.Clone()
		}
	}
	return &c
}

// Arpeggio is a named arpeggio envelope that can be applied to notes
// independently of the instrument.
type Arpeggio struct {
	ID       int
	Name     string
	Envelope *Envelope
}

// NewArpeggio is the preferred method of initialisation for the Arpeggio
// type.
func NewArpeggio(id int, name string) *Arpeggio {
	return &Arpeggio{
		ID:       id,
		Name:     name,
		Envelope: NewEnvelope(EnvelopeArpeggio),
	}
}

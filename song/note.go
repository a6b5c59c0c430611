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

package song

import (
	"encoding/binary"
	"fmt"
	"hash"

	"github.com/jetsetilly/chiptracker/instrument"
)

// Special note values. Musical notes are in the range NoteMusicalMin to
// NoteMusicalMax inclusive.
const (
	NoteStop       = 0x00
	NoteMusicalMin = 0x01
	NoteMusicalMax = 0x60
	NoteRelease    = 0xf7
	NoteInvalid    = 0xff

	// used when there is no previous note to refer to
	MusicalNoteC4 = 49
)

// Effect identifies one of the effect values that can be carried by a note.
type Effect int

// List of valid Effect values.
const (
	EffectVolume Effect = iota
	EffectFinePitch
	EffectVibratoSpeed
	EffectVibratoDepth
	EffectFdsModDepth
	EffectFdsModSpeed
	EffectSpeed
	EffectDutyCycle
	EffectNoteDelay
	EffectCutDelay
	EffectVolumeSlide
	EffectRhythmMode
	EffectCount
)

type effectInfo struct {
	name string
	min  int
	max  int
}

var effectInfos = [EffectCount]effectInfo{
	{"Volume", 0, 15},
	{"Fine Pitch", -128, 127},
	{"Vibrato Speed", 0, 12},
	{"Vibrato Depth", 0, 15},
	{"FDS Mod Depth", 0, 63},
	{"FDS Mod Speed", 0, 4095},
	{"Speed", 1, 31},
	{"Duty Cycle", 0, 7},
	{"Note Delay", 0, 31},
	{"Cut Delay", 0, 31},
	{"Volume Slide", 0, 15},
	{"Rhythm Mode", 0, 2},
}

func (e Effect) String() string {
	if e < 0 || e >= EffectCount {
		return fmt.Sprintf("unknown effect (%d)", int(e))
	}
	return effectInfos[e].name
}

// Range returns the minimum and maximum values of the effect.
func (e Effect) Range() (int, int) {
	return effectInfos[e].min, effectInfos[e].max
}

// Values of the rhythm mode effect.
const (
	RhythmModeOff = iota
	RhythmModeSingle
	RhythmModePaired
)

// EffectDefaultValue returns the value of an effect when no note in the song
// has set it.
func EffectDefaultValue(s *Song, e Effect) int {
	switch e {
	case EffectVolume:
		return 15
	case EffectSpeed:
		if s != nil {
			return s.FamiTrackerSpeed
		}
		return DefaultFamiTrackerSpeed
	}
	return 0
}

// NoteFilter is a bitmask used to select notes by kind or by the effects
// they carry.
type NoteFilter uint32

// List of NoteFilter bits. Effect bits are derived from the Effect value.
const (
	FilterMusical NoteFilter = 1 << iota
	FilterStop
	FilterRelease

	filterEffectShift = iota
)

// FilterForEffect returns the filter bit for notes that carry the effect.
func FilterForEffect(e Effect) NoteFilter {
	return 1 << (filterEffectShift + int(e))
}

// Commonly used filters.
const (
	FilterEffectVolume   NoteFilter = 1 << (filterEffectShift + int(EffectVolume))
	FilterEffectCutDelay NoteFilter = 1 << (filterEffectShift + int(EffectCutDelay))

	// notes that end the duration of a musical note
	FilterCutDurationMask = FilterMusical | FilterStop | FilterEffectCutDelay

	FilterAll NoteFilter = 0xffffffff
)

// Note is a single event in a pattern. A note is either musical, a stop
// note, a release note or invalid. An invalid note can still carry effect
// values.
type Note struct {
	Value uint8

	// duration and release are measured in notes from the start of the note.
	// a release of zero means the note has no release point
	Duration int
	Release  int

	// NoteInvalid if the note is not a slide note
	SlideTarget uint8

	// if HasAttack is false then the note continues the previous note
	// without restarting the instrument envelopes
	HasAttack bool

	Instrument *instrument.Instrument
	Arpeggio   *instrument.Arpeggio

	effectMask uint16
	effects    [EffectCount]int
}

// NewNote is the preferred method of initialisation for the Note type.
func NewNote(value uint8) *Note {
	return &Note{
		Value:       value,
		SlideTarget: NoteInvalid,
		HasAttack:   true,
	}
}

// NewMusicalNote creates a musical note with a duration and instrument.
func NewMusicalNote(value uint8, duration int, inst *instrument.Instrument) *Note {
	n := NewNote(value)
	n.Duration = duration
	n.Instrument = inst
	return n
}

func (n *Note) String() string {
	switch {
	case n.IsStop():
		return "stop"
	case n.IsRelease():
		return "release"
	case n.IsMusical():
		return fmt.Sprintf("%s (%d)", NoteName(n.Value), n.Duration)
	}
	return "---"
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName returns the name and octave of a musical note value.
func NoteName(value uint8) string {
	if value < NoteMusicalMin || value > NoteMusicalMax {
		return "---"
	}
	v := int(value) - 1
	return fmt.Sprintf("%s%d", noteNames[v%12], v/12)
}

// IsValid returns false if the note is not musical, stop or release.
func (n *Note) IsValid() bool {
	return n.Value != NoteInvalid
}

// IsMusical returns true if the note has a pitch.
func (n *Note) IsMusical() bool {
	return n.Value >= NoteMusicalMin && n.Value <= NoteMusicalMax
}

// IsStop returns true if the note is a stop note.
func (n *Note) IsStop() bool {
	return n.Value == NoteStop
}

// IsRelease returns true if the note is a release note.
func (n *Note) IsRelease() bool {
	return n.Value == NoteRelease
}

// IsMusicalOrStop returns true if the note is musical or a stop note.
func (n *Note) IsMusicalOrStop() bool {
	return n.IsMusical() || n.IsStop()
}

// IsEmpty returns true if the note is invalid and carries no effects.
func (n *Note) IsEmpty() bool {
	return !n.IsValid() && n.effectMask == 0
}

// IsSlideNote returns true if the note is a musical note with a valid slide
// target.
func (n *Note) IsSlideNote() bool {
	return n.IsMusical() && n.SlideTarget >= NoteMusicalMin && n.SlideTarget <= NoteMusicalMax
}

// IsArpeggio returns true if the note is a musical note with an arpeggio.
func (n *Note) IsArpeggio() bool {
	return n.IsMusical() && n.Arpeggio != nil
}

// HasRelease returns true if the note has a release point.
func (n *Note) HasRelease() bool {
	return n.Release > 0
}

// ClearReleaseIfPastDuration removes the release point if it would happen
// after the note has ended.
func (n *Note) ClearReleaseIfPastDuration() {
	if n.Release >= n.Duration {
		n.Release = 0
	}
}

// HasAnyEffect returns true if the note carries any effect value.
func (n *Note) HasAnyEffect() bool {
	return n.effectMask != 0
}

// HasEffect returns true if the effect value has been set.
func (n *Note) HasEffect(e Effect) bool {
	return n.effectMask&(1<<e) != 0
}

// EffectValue returns the value of the effect. The value is zero if the
// effect has not been set.
func (n *Note) EffectValue(e Effect) int {
	return n.effects[e]
}

// SetEffect sets the value of the effect. The value is clamped to the valid
// range of the effect.
func (n *Note) SetEffect(e Effect, v int) {
	lo, hi := e.Range()
	n.effects[e] = min(max(v, lo), hi)
	n.effectMask |= 1 << e
}

// ClearEffect removes the effect value from the note.
func (n *Note) ClearEffect(e Effect) {
	n.effects[e] = 0
	n.effectMask &^= 1 << e
}

// ClearAllEffects removes every effect value from the note.
func (n *Note) ClearAllEffects() {
	n.effects = [EffectCount]int{}
	n.effectMask = 0
}

// HasVolume returns true if the note sets the volume.
func (n *Note) HasVolume() bool {
	return n.HasEffect(EffectVolume)
}

// Volume returns the volume effect value.
func (n *Note) Volume() int {
	return n.effects[EffectVolume]
}

// HasVolumeSlide returns true if the note has a volume slide target. A
// volume slide is only meaningful if the note also sets the volume.
func (n *Note) HasVolumeSlide() bool {
	return n.HasEffect(EffectVolumeSlide) && n.HasVolume()
}

// VolumeSlideTarget returns the target of the volume slide.
func (n *Note) VolumeSlideTarget() int {
	return n.effects[EffectVolumeSlide]
}

// HasNoteDelay returns true if the note has a note delay effect.
func (n *Note) HasNoteDelay() bool {
	return n.HasEffect(EffectNoteDelay)
}

// NoteDelay returns the note delay in frames.
func (n *Note) NoteDelay() int {
	return n.effects[EffectNoteDelay]
}

// HasCutDelay returns true if the note has a cut delay effect.
func (n *Note) HasCutDelay() bool {
	return n.HasEffect(EffectCutDelay)
}

// CutDelay returns the cut delay in frames.
func (n *Note) CutDelay() int {
	return n.effects[EffectCutDelay]
}

// MatchesFilter returns true if the note is of a kind selected by the filter
// or carries an effect selected by the filter.
func (n *Note) MatchesFilter(filter NoteFilter) bool {
	if filter&FilterMusical != 0 && n.IsMusical() {
		return true
	}
	if filter&FilterStop != 0 && n.IsStop() {
		return true
	}
	if filter&FilterRelease != 0 && n.IsRelease() {
		return true
	}
	return NoteFilter(n.effectMask)<<filterEffectShift&filter != 0
}

// Clone returns a copy of the note. Instruments and arpeggios are shared
// with the original note.
func (n *Note) Clone() *Note {
	c := *n
	return &c
}

// hash writes the content of the note to the hash.
func (n *Note) hash(h hash.Hash32) {
	var b [8]byte

	instID := int32(-1)
	if n.Instrument != nil {
		instID = int32(n.Instrument.ID)
	}
	arpID := int32(-1)
	if n.Arpeggio != nil {
		arpID = int32(n.Arpeggio.ID)
	}

	h.Write([]byte{n.Value, n.SlideTarget, boolByte(n.HasAttack)})
	binary.LittleEndian.PutUint32(b[:], uint32(n.Duration))
	binary.LittleEndian.PutUint32(b[4:], uint32(n.Release))
	h.Write(b[:])
	binary.LittleEndian.PutUint32(b[:], uint32(instID))
	binary.LittleEndian.PutUint32(b[4:], uint32(arpID))
	h.Write(b[:])
	binary.LittleEndian.PutUint16(b[:], n.effectMask)
	h.Write(b[:2])
	for e := range EffectCount {
		if n.HasEffect(e) {
			binary.LittleEndian.PutUint32(b[:], uint32(n.effects[e]))
			h.Write(b[:4])
		}
	}
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

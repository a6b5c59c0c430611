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
	"slices"

	"github.com/jetsetilly/chiptracker/chips"
	"github.com/jetsetilly/chiptracker/curated"
)

// MaxLength is the maximum number of pattern positions in a song.
const MaxLength = 256

// Default values for a new song.
const (
	DefaultPatternLength    = 16
	DefaultBeatLength       = 4
	DefaultFamiTrackerSpeed = 6
	DefaultFamiTrackerTempo = 150
)

// the number of frames per note at a FamiTracker speed of one and a tempo of
// one. the value is 2.5 times the frame rate of the console
const (
	famiTrackerTempoNTSC = 150.0
	famiTrackerTempoPAL  = 125.0
)

// TempoMode selects how the duration of a note in frames is determined.
type TempoMode int

// List of valid TempoMode values.
const (
	// the number of frames of each note is given by the groove of the
	// pattern. the groove restarts at the beginning of every pattern
	TempoFamiStudio TempoMode = iota

	// the number of frames of each note is determined by the speed and tempo
	// values. the speed can be changed by the speed effect
	TempoFamiTracker
)

func (m TempoMode) String() string {
	if m == TempoFamiTracker {
		return "FamiTracker"
	}
	return "FamiStudio"
}

// GroovePaddingMode describes where the extra frames are placed when a
// groove does not divide the length of a beat evenly.
type GroovePaddingMode int

// List of valid GroovePaddingMode values.
const (
	GroovePadMiddle GroovePaddingMode = iota
	GroovePadBeginning
	GroovePadEnd
)

// PatternSettings are the settings of a single pattern position. A position
// with UseCustom set to false uses the default settings of the song.
type PatternSettings struct {
	UseCustom         bool
	PatternLength     int
	BeatLength        int
	Groove            []int
	GroovePaddingMode GroovePaddingMode
}

// Song is a list of channels and the settings that are common to all
// channels.
type Song struct {
	ID   int
	Name string

	project  *Project
	channels []*Channel

	length    int
	loopPoint int

	TempoMode TempoMode

	patternLength     int
	beatLength        int
	groove            []int
	groovePaddingMode GroovePaddingMode

	FamiTrackerSpeed int
	FamiTrackerTempo int

	settings [MaxLength]PatternSettings
}

func newSong(project *Project, id int, name string) *Song {
	s := &Song{
		ID:                id,
		Name:              name,
		project:           project,
		length:            1,
		loopPoint:         0,
		patternLength:     DefaultPatternLength,
		beatLength:        DefaultBeatLength,
		groove:            []int{DefaultFamiTrackerSpeed},
		groovePaddingMode: GroovePadMiddle,
		FamiTrackerSpeed:  DefaultFamiTrackerSpeed,
		FamiTrackerTempo:  DefaultFamiTrackerTempo,
	}
	s.createChannels()
	return s
}

// createChannels makes sure there is a channel for every channel type that is
// active in the project. existing channels are kept
func (s *Song) createChannels() {
	types := chips.ChannelsForExpansionMask(s.project.expansionMask, s.project.numN163Channels)
	channels := make([]*Channel, 0, len(types))
	for _, ct := range types {
		if c := s.Channel(ct); c != nil {
			channels = append(channels, c)
		} else {
			channels = append(channels, newChannel(s, ct))
		}
	}
	s.channels = channels
}

func (s *Song) String() string {
	return s.Name
}

// Project returns the project the song belongs to.
func (s *Song) Project() *Project {
	return s.project
}

// Channels returns the channels of the song in channel index order.
func (s *Song) Channels() []*Channel {
	return s.channels
}

// Channel returns the channel of the specified type. Returns nil if the
// channel type is not active in the project.
func (s *Song) Channel(ct chips.ChannelType) *Channel {
	for _, c := range s.channels {
		if c.ctype == ct {
			return c
		}
	}
	return nil
}

// Length returns the number of pattern positions in the song.
func (s *Song) Length() int {
	return s.length
}

// SetLength changes the number of pattern positions in the song. Pattern
// instances past the new length are cleared.
func (s *Song) SetLength(length int) error {
	if length < 1 || length > MaxLength {
		return curated.Errorf(InvalidSongLength, length)
	}
	s.length = length
	if s.loopPoint >= length {
		s.loopPoint = -1
	}
	for _, c := range s.channels {
		c.ClearPatternsInstancesPastSongLength()
		c.InvalidateCache()
	}
	return nil
}

// LoopPoint returns the pattern position playback continues from at the end
// of the song. Returns -1 if the song does not loop.
func (s *Song) LoopPoint() int {
	return s.loopPoint
}

// SetLoopPoint changes the loop point. Any value outside of the song disables
// looping.
func (s *Song) SetLoopPoint(p int) {
	if p < 0 || p >= s.length {
		p = -1
	}
	s.loopPoint = p
}

// UsesFamiTrackerTempo returns true if the tempo mode is TempoFamiTracker.
func (s *Song) UsesFamiTrackerTempo() bool {
	return s.TempoMode == TempoFamiTracker
}

// DefaultPatternLength returns the pattern length used by positions without
// custom settings.
func (s *Song) DefaultPatternLength() int {
	return s.patternLength
}

// SetDefaultPatternLength changes the default pattern length. Caches are
// invalidated.
func (s *Song) SetDefaultPatternLength(l int) {
	s.patternLength = min(max(l, 1), MaxPatternLength)
	s.InvalidateCaches()
}

// SetDefaultBeatLength changes the number of notes in a beat. The beat length
// is used when padding grooves.
func (s *Song) SetDefaultBeatLength(l int) {
	s.beatLength = max(l, 1)
}

// SetDefaultGroove changes the default groove. The groove is the number of
// frames of each note, repeated for the length of the pattern.
func (s *Song) SetDefaultGroove(groove []int, pad GroovePaddingMode) {
	if len(groove) == 0 {
		return
	}
	s.groove = slices.Clone(groove)
	s.groovePaddingMode = pad
	s.InvalidateCaches()
}

// PatternSettings returns the settings of a pattern position.
func (s *Song) PatternSettings(p int) PatternSettings {
	if p >= 0 && p < MaxLength && s.settings[p].UseCustom {
		return s.settings[p]
	}
	return PatternSettings{
		PatternLength:     s.patternLength,
		BeatLength:        s.beatLength,
		Groove:            s.groove,
		GroovePaddingMode: s.groovePaddingMode,
	}
}

// SetPatternCustomSettings sets custom settings for a pattern position.
//
// The caller must call MakePatternsWithDifferentLengthsUnique() and
// MakePatternsWithDifferentGroovesUnique() on every channel afterwards. The
// SetPatternCustomSettingsAndFix() function does this automatically.
func (s *Song) SetPatternCustomSettings(p int, length int, beat int, groove []int, pad GroovePaddingMode) error {
	if p < 0 || p >= MaxLength {
		return curated.Errorf(InvalidPatternPosition, p)
	}
	if len(groove) == 0 {
		groove = s.groove
	}
	s.settings[p] = PatternSettings{
		UseCustom:         true,
		PatternLength:     min(max(length, 1), MaxPatternLength),
		BeatLength:        beat,
		Groove:            slices.Clone(groove),
		GroovePaddingMode: pad,
	}
	s.InvalidateCaches()
	return nil
}

// SetPatternCustomSettingsAndFix is the same as SetPatternCustomSettings()
// but also makes patterns unique where the new settings require it.
func (s *Song) SetPatternCustomSettingsAndFix(p int, length int, beat int, groove []int, pad GroovePaddingMode) error {
	if err := s.SetPatternCustomSettings(p, length, beat, groove, pad); err != nil {
		return err
	}
	for _, c := range s.channels {
		c.MakePatternsWithDifferentLengthsUnique()
		c.MakePatternsWithDifferentGroovesUnique()
	}
	return nil
}

// ClearPatternCustomSettings returns the pattern position to the default
// settings.
func (s *Song) ClearPatternCustomSettings(p int) {
	if p < 0 || p >= MaxLength {
		return
	}
	s.settings[p] = PatternSettings{}
	s.InvalidateCaches()
}

// PatternHasCustomSettings returns true if the pattern position has custom
// settings.
func (s *Song) PatternHasCustomSettings(p int) bool {
	return p >= 0 && p < MaxLength && s.settings[p].UseCustom
}

// PatternLength returns the number of notes in the pattern position.
func (s *Song) PatternLength(p int) int {
	if p >= 0 && p < MaxLength && s.settings[p].UseCustom {
		return s.settings[p].PatternLength
	}
	return s.patternLength
}

// PatternGroove returns the groove of the pattern position.
func (s *Song) PatternGroove(p int) []int {
	if p >= 0 && p < MaxLength && s.settings[p].UseCustom {
		return s.settings[p].Groove
	}
	return s.groove
}

// PatternGroovePaddingMode returns the groove padding mode of the pattern
// position.
func (s *Song) PatternGroovePaddingMode(p int) GroovePaddingMode {
	if p >= 0 && p < MaxLength && s.settings[p].UseCustom {
		return s.settings[p].GroovePaddingMode
	}
	return s.groovePaddingMode
}

// StartLocation is the location of the first note of the song.
func (s *Song) StartLocation() NoteLocation {
	return NoteLocation{}
}

// EndLocation is the location immediately after the last note of the song.
func (s *Song) EndLocation() NoteLocation {
	return NoteLocation{PatternIndex: s.length}
}

// CountNotesBetween returns the number of notes from location a to location
// b. The result is negative if b is before a.
func (s *Song) CountNotesBetween(a NoteLocation, b NoteLocation) int {
	if b.Less(a) {
		return -s.CountNotesBetween(b, a)
	}
	n := b.NoteIndex - a.NoteIndex
	for p := a.PatternIndex; p < b.PatternIndex; p++ {
		n += s.PatternLength(p)
	}
	return n
}

// AdvanceNumberOfNotes moves the location forward by a number of notes.
// Locations past the end of the song are not wrapped.
func (s *Song) AdvanceNumberOfNotes(loc *NoteLocation, n int) {
	loc.NoteIndex += n
	for loc.PatternIndex < s.length && loc.NoteIndex >= s.PatternLength(loc.PatternIndex) {
		loc.NoteIndex -= s.PatternLength(loc.PatternIndex)
		loc.PatternIndex++
	}
}

// CountFramesBetween returns the number of frames from location a to location
// b. The famiTrackerSpeed argument is only used with the FamiTracker tempo
// mode. A value of zero uses the speed of the song.
func (s *Song) CountFramesBetween(a NoteLocation, b NoteLocation, famiTrackerSpeed int, pal bool) float64 {
	if b.Less(a) {
		return -s.CountFramesBetween(b, a, famiTrackerSpeed, pal)
	}

	if s.UsesFamiTrackerTempo() {
		if famiTrackerSpeed <= 0 {
			famiTrackerSpeed = s.FamiTrackerSpeed
		}
		tempo := famiTrackerTempoNTSC
		if pal {
			tempo = famiTrackerTempoPAL
		}
		return float64(s.CountNotesBetween(a, b)) * float64(famiTrackerSpeed) * tempo / float64(max(1, s.FamiTrackerTempo))
	}

	var frames int
	for p := a.PatternIndex; p <= b.PatternIndex; p++ {
		start := 0
		if p == a.PatternIndex {
			start = a.NoteIndex
		}
		end := s.PatternLength(p)
		if p == b.PatternIndex {
			end = b.NoteIndex
		}
		groove := s.PatternGroove(p)
		for n := start; n < end; n++ {
			frames += groove[n%len(groove)]
		}
	}
	return float64(frames)
}

// FramesPerNote returns the number of frames of the note at the location.
func (s *Song) FramesPerNote(loc NoteLocation, famiTrackerSpeed int, pal bool) float64 {
	next := loc
	s.AdvanceNumberOfNotes(&next, 1)
	return s.CountFramesBetween(loc, next, famiTrackerSpeed, pal)
}

// InvalidateCaches invalidates the cumulative cache of every channel.
func (s *Song) InvalidateCaches() {
	for _, c := range s.channels {
		c.InvalidateCache()
	}
}

// UpdateCaches brings the cumulative cache of every channel up to date for
// the entire song. Calling this before the song is read by more than one
// goroutine means that readers do not need to update the cache.
func (s *Song) UpdateCaches() {
	for _, c := range s.channels {
		c.UpdateCache(s.length - 1)
	}
}

// ExtendForLooping repeats the section of the song from the loop point to the
// end of the song. The song is extended so that the loop section is played
// loopCount times in total. Custom pattern settings are copied with the
// pattern instances. The song is not extended past MaxLength.
//
// Nothing happens if loopCount is less than two or if the song does not loop.
func (s *Song) ExtendForLooping(loopCount int) {
	if loopCount <= 1 || s.loopPoint < 0 || s.loopPoint >= s.length {
		return
	}

	originalLength := s.length
	loopLength := originalLength - s.loopPoint
	newLength := min(MaxLength, originalLength+loopLength*(loopCount-1))

	s.length = newLength

	for p := originalLength; p < newLength; p++ {
		src := s.loopPoint + (p-originalLength)%loopLength
		for _, c := range s.channels {
			c.instances[p] = c.instances[src]
		}
		s.settings[p] = s.settings[src]
		s.settings[p].Groove = slices.Clone(s.settings[src].Groove)
	}

	s.InvalidateCaches()
}

// ShallowClone creates a copy of the song. Every channel of the copy owns a
// copy of the patterns of the original channel, so changes to the length,
// loop point, pattern instances or notes of the copy do not affect the
// original song. Instruments and arpeggios are shared.
//
// The copy is not added to the project. It is useful for operations like
// ExtendForLooping() that should not change the song being edited.
func (s *Song) ShallowClone() *Song {
	c := *s
	c.groove = slices.Clone(s.groove)
	for i := range c.settings {
		c.settings[i].Groove = slices.Clone(s.settings[i].Groove)
	}
	c.channels = make([]*Channel, len(s.channels))
	for i, ch := range s.channels {
		cc := newChannel(&c, ch.ctype)
		remap := make(map[*Pattern]*Pattern, len(ch.patterns))
		cc.patterns = make([]*Pattern, len(ch.patterns))
		for j, p := range ch.patterns {
			cc.patterns[j] = p.copyFor(cc)
			remap[p] = cc.patterns[j]
		}
		for j, p := range ch.instances {
			if p != nil {
				cc.instances[j] = remap[p]
			}
		}
		c.channels[i] = cc
	}
	return &c
}

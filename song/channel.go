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
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/jetsetilly/chiptracker/chips"
	"github.com/jetsetilly/chiptracker/curated"
	"github.com/jetsetilly/chiptracker/instrument"
)

// Channel is the sequence of pattern instances for one channel of a song.
type Channel struct {
	song  *Song
	ctype chips.ChannelType

	// one pattern instance for every song position. nil if the position
	// has no pattern
	instances [MaxLength]*Pattern

	// every pattern owned by the channel. a pattern can be instanced more
	// than once
	patterns []*Pattern

	cache cumulativeCache
}

func newChannel(s *Song, ct chips.ChannelType) *Channel {
	c := &Channel{
		song:  s,
		ctype: ct,
	}
	c.cache.maxValid = -1
	return c
}

func (c *Channel) String() string {
	return c.ctype.NameWithExpansion()
}

// Type returns the channel type.
func (c *Channel) Type() chips.ChannelType {
	return c.ctype
}

// Song returns the song the channel belongs to.
func (c *Channel) Song() *Song {
	return c.song
}

// Index returns the index of the channel in the song.
func (c *Channel) Index() int {
	p := c.song.project
	return c.ctype.Index(p.expansionMask, p.numN163Channels)
}

// Patterns returns every pattern owned by the channel.
func (c *Channel) Patterns() []*Pattern {
	return c.patterns
}

// Instance returns the pattern at the song position or nil if the position
// has no pattern.
func (c *Channel) Instance(p int) *Pattern {
	if p < 0 || p >= MaxLength {
		return nil
	}
	return c.instances[p]
}

// SetInstance places the pattern at the song position. A nil pattern clears
// the position. The pattern must belong to the channel.
func (c *Channel) SetInstance(p int, pat *Pattern) error {
	if p < 0 || p >= MaxLength {
		return curated.Errorf(InvalidPatternPosition, p)
	}
	if pat != nil && pat.channel != c {
		return curated.Errorf(PatternNotInChannel, pat.Name)
	}
	c.instances[p] = pat
	c.cache.invalidateFrom(p)
	return nil
}

// PatternByName returns the pattern with the name or nil if there is no
// such pattern.
func (c *Channel) PatternByName(name string) *Pattern {
	for _, p := range c.patterns {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// PatternByID returns the pattern with the ID or nil if there is no such
// pattern.
func (c *Channel) PatternByID(id int) *Pattern {
	for _, p := range c.patterns {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// NoteAt returns the note at the location or nil if there is no note.
func (c *Channel) NoteAt(loc NoteLocation) *Note {
	if loc.PatternIndex < 0 || loc.PatternIndex >= c.song.length {
		return nil
	}
	pat := c.instances[loc.PatternIndex]
	if pat == nil {
		return nil
	}
	return pat.NoteAt(loc.NoteIndex)
}

// SupportsInstrument returns true if the instrument can be played by the
// channel. Only the DPCM channel plays notes without an instrument.
func (c *Channel) SupportsInstrument(inst *instrument.Instrument) bool {
	if inst == nil || c.ctype == chips.Dpcm {
		return inst == nil && c.ctype == chips.Dpcm
	}
	exp := c.ctype.Expansion()
	if inst.Expansion == chips.ExpansionNone && (exp == chips.ExpansionNone || exp == chips.ExpansionMmc5) {
		return true
	}
	return inst.Expansion == exp
}

// SupportsReleaseNotes returns true if notes on the channel can have a
// release point.
func (c *Channel) SupportsReleaseNotes() bool {
	return c.ctype != chips.Dpcm
}

// SupportsSlideNotes returns true if notes on the channel can slide.
func (c *Channel) SupportsSlideNotes() bool {
	return c.ctype != chips.Dpcm
}

// SupportsArpeggios returns true if notes on the channel can use arpeggios.
func (c *Channel) SupportsArpeggios() bool {
	return c.ctype != chips.Dpcm
}

// SupportsNoAttackNotes returns true if notes on the channel can continue
// the previous note without an attack.
func (c *Channel) SupportsNoAttackNotes() bool {
	return c.ctype != chips.Dpcm
}

// SupportsEffect returns true if the effect is meaningful for the channel.
func (c *Channel) SupportsEffect(e Effect) bool {
	switch e {
	case EffectVolume, EffectVolumeSlide:
		return c.ctype != chips.Dpcm
	case EffectFinePitch, EffectVibratoSpeed, EffectVibratoDepth:
		return c.ctype != chips.Noise && c.ctype != chips.Dpcm
	case EffectFdsModDepth, EffectFdsModSpeed:
		return c.ctype == chips.FdsWave
	case EffectSpeed, EffectNoteDelay, EffectCutDelay:
		return c.song.UsesFamiTrackerTempo()
	case EffectDutyCycle:
		switch c.ctype {
		case chips.Square1, chips.Square2, chips.Mmc5Square1, chips.Mmc5Square2, chips.Vrc6Square1, chips.Vrc6Square2, chips.Noise:
			return true
		}
		return false
	case EffectRhythmMode:
		return c.ctype == chips.YM2413Fm7 || c.ctype == chips.YM2413Fm8 || c.ctype == chips.YM2413Fm9
	}
	return true
}

// UsesArpeggios returns true if any musical note in the channel uses an
// arpeggio.
func (c *Channel) UsesArpeggios() bool {
	for _, p := range c.patterns {
		for _, n := range p.notes {
			if n.IsArpeggio() {
				return true
			}
		}
	}
	return false
}

// IsPatternNameUnique returns true if no pattern in the channel has the
// name.
func (c *Channel) IsPatternNameUnique(name string) bool {
	return c.PatternByName(name) == nil
}

// GenerateUniquePatternName returns a name made of the base name and the
// lowest number that makes the name unique. The default base name is used if
// the base name is empty.
func (c *Channel) GenerateUniquePatternName(baseName string) string {
	if baseName == "" {
		baseName = "Pattern "
	}
	for i := 1; ; i++ {
		name := fmt.Sprintf("%s%d", baseName, i)
		if c.IsPatternNameUnique(name) {
			return name
		}
	}
}

// GenerateUniquePatternNameSmart creates a unique name based on an existing
// name. If the existing name ends with a number then the number is
// incremented until the name is unique.
func (c *Channel) GenerateUniquePatternNameSmart(oldName string) string {
	base := strings.TrimRightFunc(oldName, unicode.IsDigit)

	if len(base) == len(oldName) {
		if !strings.HasSuffix(base, " ") {
			base += " "
		}
		return c.GenerateUniquePatternName(base)
	}

	number, err := strconv.Atoi(oldName[len(base):])
	if err != nil {
		return c.GenerateUniquePatternName(oldName + " ")
	}

	for number++; ; number++ {
		name := fmt.Sprintf("%s%d", base, number)
		if c.IsPatternNameUnique(name) {
			return name
		}
	}
}

// CreatePattern adds a new pattern to the channel. If the name is empty then
// a unique name is generated.
func (c *Channel) CreatePattern(name string) (*Pattern, error) {
	if name == "" {
		name = c.GenerateUniquePatternName("")
	} else if !c.IsPatternNameUnique(name) {
		return nil, curated.Errorf(PatternNameNotUnique, name)
	}
	p := newPattern(c.song.project.GenerateUniqueID(), c, name)
	c.patterns = append(c.patterns, p)
	return p, nil
}

// CreatePatternAndInstance creates a new pattern and places it at the song
// position.
func (c *Channel) CreatePatternAndInstance(idx int, name string) (*Pattern, error) {
	if idx < 0 || idx >= MaxLength {
		return nil, curated.Errorf(InvalidPatternPosition, idx)
	}
	p, err := c.CreatePattern(name)
	if err != nil {
		return nil, err
	}
	c.instances[idx] = p
	c.cache.invalidateFrom(idx)
	return p, nil
}

// RenamePattern changes the name of the pattern. Returns false if another
// pattern already has the name.
func (c *Channel) RenamePattern(p *Pattern, name string) bool {
	if p.Name == name {
		return true
	}
	if !c.IsPatternNameUnique(name) {
		return false
	}
	p.Name = name
	return true
}

// DeleteEmptyPatterns clears every instance of patterns without notes and
// then removes the patterns from the channel.
func (c *Channel) DeleteEmptyPatterns() {
	for i, p := range c.instances {
		if p != nil && !p.HasAnyNotes() {
			c.instances[i] = nil
		}
	}
	c.DeleteUnusedPatterns()
	c.InvalidateCache()
}

// DeleteUnusedPatterns removes patterns that are not instanced anywhere in
// the song. The order of the remaining patterns is preserved.
func (c *Channel) DeleteUnusedPatterns() {
	used := make(map[*Pattern]bool)
	for i := range c.song.length {
		if p := c.instances[i]; p != nil {
			used[p] = true
		}
	}

	patterns := c.patterns[:0]
	for _, p := range c.patterns {
		if used[p] {
			patterns = append(patterns, p)
		}
	}
	clear(c.patterns[len(patterns):])
	c.patterns = patterns
}

// DeleteNotesPastMaxInstanceLength removes notes that are past the end of
// every instance of their pattern.
func (c *Channel) DeleteNotesPastMaxInstanceLength() {
	for _, p := range c.patterns {
		p.ClearNotesPastMaxInstanceLength()
	}
	c.InvalidateCache()
}

// ClearPatternsInstancesPastSongLength clears the song positions past the end
// of the song.
func (c *Channel) ClearPatternsInstancesPastSongLength() {
	clear(c.instances[c.song.length:])
}

// DeleteEmptyNotes removes invalid notes without effects from every pattern.
func (c *Channel) DeleteEmptyNotes() {
	for _, p := range c.patterns {
		p.DeleteEmptyNotes()
	}
}

// DeleteNotesBetween removes notes between two absolute note indexes. The
// maximum index is not included. If preserveFx is true then notes with
// effects are kept as effect only notes.
func (c *Channel) DeleteNotesBetween(minNote int, maxNote int, preserveFx bool) {
	minLoc := LocationFromAbsoluteNoteIndex(c.song, minNote)
	maxLoc := LocationFromAbsoluteNoteIndex(c.song, maxNote)

	if minLoc.PatternIndex == maxLoc.PatternIndex {
		if minLoc.PatternIndex < c.song.length {
			if p := c.instances[minLoc.PatternIndex]; p != nil {
				p.DeleteNotesBetween(minLoc.NoteIndex, maxLoc.NoteIndex, preserveFx)
			}
		}
	} else {
		for i := minLoc.PatternIndex; i <= maxLoc.PatternIndex && i < c.song.length; i++ {
			p := c.instances[i]
			if p == nil {
				continue
			}
			switch {
			case i == minLoc.PatternIndex:
				p.DeleteNotesBetween(minLoc.NoteIndex, MaxPatternLength, preserveFx)
			case i == maxLoc.PatternIndex:
				p.DeleteNotesBetween(0, maxLoc.NoteIndex, preserveFx)
			case preserveFx:
				p.DeleteNotesBetween(0, MaxPatternLength, true)
			default:
				p.DeleteAllNotes()
			}
		}
	}

	c.InvalidateCacheRange(minLoc.PatternIndex, maxLoc.PatternIndex)
}

// FindPatternFirstMusicalNote returns the first musical note in the pattern
// at the song position.
func (c *Channel) FindPatternFirstMusicalNote(p int) *Note {
	pat := c.Instance(p)
	if pat == nil {
		return nil
	}
	for _, n := range pat.notes {
		if n.IsMusical() {
			return n
		}
	}
	return nil
}

// SetNoteDurationToMaximumLength sets the duration of every musical note to
// the longest duration the note is heard for in any of its instances.
func (c *Channel) SetNoteDurationToMaximumLength() {
	durations := make(map[*Note]int)

	for it := c.SparseNoteIterator(c.song.StartLocation(), c.song.EndLocation(), FilterCutDurationMask); !it.Done(); it.Next() {
		n := it.Note()
		if !n.IsMusical() {
			continue
		}
		d := min(n.Duration, it.DistanceToNextCut())
		if m, ok := durations[n]; ok {
			durations[n] = max(m, d)
		} else {
			durations[n] = d
		}
	}

	for n, d := range durations {
		n.Duration = d
	}

	c.InvalidateCache()
}

// MakePatternsWithDifferentLengthsUnique duplicates pattern instances where
// the same pattern is used at song positions with different pattern lengths.
func (c *Channel) MakePatternsWithDifferentLengthsUnique() {
	lengths := make(map[*Pattern]int)

	for i := range c.song.length {
		p := c.instances[i]
		if p == nil {
			continue
		}
		l := c.song.PatternLength(i)
		if prev, ok := lengths[p]; ok && prev != l {
			p = p.ShallowClone()
			c.instances[i] = p
		}
		lengths[p] = l
	}

	c.InvalidateCache()
}

type grooveKey struct {
	groove string
	pad    GroovePaddingMode
}

// MakePatternsWithDifferentGroovesUnique duplicates pattern instances where
// the same pattern is used at song positions with different grooves. Grooves
// are compared by content.
func (c *Channel) MakePatternsWithDifferentGroovesUnique() {
	grooves := make(map[*Pattern]grooveKey)

	for i := range c.song.length {
		p := c.instances[i]
		if p == nil {
			continue
		}
		k := grooveKey{
			groove: fmt.Sprint(c.song.PatternGroove(i)),
			pad:    c.song.PatternGroovePaddingMode(i),
		}
		if prev, ok := grooves[p]; ok && prev != k {
			p = p.ShallowClone()
			c.instances[i] = p
		}
		grooves[p] = k
	}

	c.InvalidateCache()
}

// MergeIdenticalPatterns replaces patterns with the same notes as an earlier
// pattern by the earlier pattern. The merged patterns are removed from the
// channel.
func (c *Channel) MergeIdenticalPatterns() {
	crcs := make(map[uint32]*Pattern)

	for i := 0; i < len(c.patterns); {
		p := c.patterns[i]
		crc := p.ComputeCRC()

		if match, ok := crcs[crc]; ok {
			c.patterns = append(c.patterns[:i], c.patterns[i+1:]...)
			for j := range c.song.length {
				if c.instances[j] == p {
					c.instances[j] = match
				}
			}
		} else {
			crcs[crc] = p
			i++
		}
	}

	c.InvalidateCache()
}

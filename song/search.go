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
	"github.com/jetsetilly/chiptracker/assert"
)

// the maximum number of notes searched by the slide functions
const maxSlideNotes = 256

// DistanceToNextNote returns the number of notes from the location to the
// next note that matches the filter. If endAfterCutDelay is true and the
// next note has a cut delay then the distance includes that note.
//
// If there is no next note then the distance to the end of the song is
// returned.
func (c *Channel) DistanceToNextNote(loc NoteLocation, filter NoteFilter, endAfterCutDelay bool) int {
	s := c.song
	start := loc

	s.AdvanceNumberOfNotes(&loc, 1)

	if loc.PatternIndex < s.length {
		if pat := c.instances[loc.PatternIndex]; pat != nil {
			patternLen := s.PatternLength(loc.PatternIndex)
			for i := pat.search(loc.NoteIndex); i < len(pat.keys) && pat.keys[i] < patternLen; i++ {
				n := pat.notes[i]
				if n.MatchesFilter(filter) {
					loc.NoteIndex = pat.keys[i]
					return s.CountNotesBetween(start, loc) + cutDelayExtension(n, endAfterCutDelay)
				}
			}
		}

		for p := loc.PatternIndex + 1; p < s.length; p++ {
			k := c.firstIndexForFilter(p, filter)
			if k >= 0 {
				loc = NoteLocation{PatternIndex: p, NoteIndex: k}
				return s.CountNotesBetween(start, loc) + cutDelayExtension(c.instances[p].NoteAt(k), endAfterCutDelay)
			}
		}
	}

	return s.CountNotesBetween(start, s.EndLocation())
}

func cutDelayExtension(n *Note, endAfterCutDelay bool) int {
	if endAfterCutDelay && n.HasCutDelay() {
		return 1
	}
	return 0
}

// firstIndexForFilter returns the note index of the first note in the pattern
// position that matches the filter. the cache is used for the common filters
func (c *Channel) firstIndexForFilter(p int, filter NoteFilter) int {
	switch filter {
	case FilterCutDurationMask:
		return c.CachedFirstNoteIndex(p)
	case FilterEffectVolume:
		return c.CachedFirstVolumeIndex(p)
	}

	pat := c.instances[p]
	if pat == nil {
		return -1
	}
	patternLen := c.song.PatternLength(p)
	for i := 0; i < len(pat.keys) && pat.keys[i] < patternLen; i++ {
		if pat.notes[i].MatchesFilter(filter) {
			return pat.keys[i]
		}
	}
	return -1
}

// FindNextNoteForSlide returns the location where the slide of the musical
// note at the location ends. The slide ends at the next note or after the
// duration of the note, whichever is sooner, and never more than maxNotes
// away. A note with a cut delay ends at its own location.
func (c *Channel) FindNextNoteForSlide(loc NoteLocation, maxNotes int, endAfterCutDelay bool) NoteLocation {
	n := c.NoteAt(loc)
	assert.That(n != nil && n.IsMusical(), "song: slide search from non-musical note at %s", loc)
	if n == nil {
		return loc
	}

	if n.HasCutDelay() {
		return loc
	}

	d := c.DistanceToNextNote(loc, FilterCutDurationMask, endAfterCutDelay)
	if d < 0 {
		d = maxNotes
	}
	d = min(n.Duration, min(d, maxNotes))

	next := loc
	c.song.AdvanceNumberOfNotes(&next, d)
	return next
}

// FindNextNoteForVolumeSlide returns the location where the volume slide of
// the note at the location ends. The slide ends at the next note with a
// volume effect and never more than maxNotes away.
func (c *Channel) FindNextNoteForVolumeSlide(loc NoteLocation, maxNotes int) NoteLocation {
	s := c.song

	assert.That(c.NoteAt(loc) != nil && c.NoteAt(loc).HasVolume(), "song: volume slide search from note without volume at %s", loc)

	maxLoc := loc
	s.AdvanceNumberOfNotes(&maxLoc, maxNotes)
	s.AdvanceNumberOfNotes(&loc, 1)

	if loc.PatternIndex < s.length {
		if pat := c.instances[loc.PatternIndex]; pat != nil {
			patternLen := s.PatternLength(loc.PatternIndex)
			for i := pat.search(loc.NoteIndex); i < len(pat.keys) && pat.keys[i] < patternLen; i++ {
				if pat.notes[i].MatchesFilter(FilterEffectVolume) {
					loc.NoteIndex = pat.keys[i]
					return MinLocation(maxLoc, loc)
				}
			}
		}

		for p := loc.PatternIndex + 1; p < s.length; p++ {
			if k := c.CachedFirstVolumeIndex(p); k >= 0 {
				return MinLocation(maxLoc, NoteLocation{PatternIndex: p, NoteIndex: k})
			}
		}
	}

	return MinLocation(maxLoc, s.EndLocation())
}

// SlideNoteDuration returns the length of the slide of the musical note at
// the location, measured in notes.
func (c *Channel) SlideNoteDuration(loc NoteLocation) int {
	next := c.FindNextNoteForSlide(loc, maxSlideNotes, true)
	return c.song.CountNotesBetween(loc, next)
}

// VolumeSlideDuration returns the length of the volume slide of the note at
// the location, measured in notes.
func (c *Channel) VolumeSlideDuration(loc NoteLocation) int {
	next := c.FindNextNoteForVolumeSlide(loc, maxSlideNotes)
	return c.song.CountNotesBetween(loc, next)
}

// FindMusicalNoteAtLocation returns the musical note that is sounding at the
// location. The location of the note is also returned. If noteValue is not
// negative then the note is only returned if it has that value.
//
// Returns nil and the location argument if no note is sounding.
func (c *Channel) FindMusicalNoteAtLocation(loc NoteLocation, noteValue int) (*Note, NoteLocation) {
	s := c.song
	start := NoteLocation{PatternIndex: loc.PatternIndex}
	lastValue := MusicalNoteC4

	if last := c.CachedLastMusicalNoteWithAttackLocation(loc.PatternIndex - 1); last.IsValid() {
		if n := c.NoteAt(last); n != nil {
			lastValue = int(n.Value)
			start = last
		}
	}

	for it := c.SparseNoteIterator(start, loc, FilterCutDurationMask); !it.Done(); it.Next() {
		n := it.Note()

		if n.IsMusical() {
			lastValue = int(n.Value)
		}

		if !n.IsMusicalOrStop() {
			continue
		}

		d := s.CountNotesBetween(it.Location(), loc)
		if d < it.DistanceToNextCut() && d < n.Duration {
			if noteValue < 0 || lastValue == noteValue {
				return n, it.Location()
			}
			return nil, loc
		}
	}

	return nil, loc
}

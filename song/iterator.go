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

// SparseNoteIterator walks forward through the notes of a channel that match
// a filter. The iterator visits every matching note from the start location
// to the end location inclusive.
//
// The location of the next matching note is found when the iterator moves to
// a note, so the distance to the next note is always available.
//
//	for it := c.SparseNoteIterator(start, end, song.FilterCutDurationMask); !it.Done(); it.Next() {
//		...
//	}
type SparseNoteIterator struct {
	channel *Channel
	filter  NoteFilter

	current NoteLocation
	next    NoteLocation
	end     NoteLocation

	pattern *Pattern
	note    *Note

	// position of the current and next notes in the pattern's note list
	currIdx int
	nextIdx int
}

// SparseNoteIterator creates a new iterator for the channel. The end location
// is clamped to the end of the song.
func (c *Channel) SparseNoteIterator(start NoteLocation, end NoteLocation, filter NoteFilter) *SparseNoteIterator {
	assert.That(!end.Less(start), "song: iterator start %s is after end %s", start, end)

	s := c.song
	if end.PatternIndex >= s.length {
		end.PatternIndex = s.length - 1
		end.NoteIndex = s.PatternLength(end.PatternIndex)
	}

	it := &SparseNoteIterator{
		channel: c,
		filter:  filter,
		end:     end,
	}

	for ; start.PatternIndex <= end.PatternIndex; start.PatternIndex, start.NoteIndex = start.PatternIndex+1, 0 {
		pat := c.instances[start.PatternIndex]
		if pat == nil {
			continue
		}

		patternLen := s.PatternLength(start.PatternIndex)
		for i := pat.search(start.NoteIndex); i < len(pat.keys) && pat.keys[i] < patternLen; i++ {
			if pat.notes[i].MatchesFilter(filter) {
				start.NoteIndex = pat.keys[i]
				it.setCurrent(start, i)
				return it
			}
		}
	}

	it.current = end
	it.current.PatternIndex++

	return it
}

// Done returns true if there are no more notes.
func (it *SparseNoteIterator) Done() bool {
	return it.end.Less(it.current)
}

// Next moves the iterator to the next matching note.
func (it *SparseNoteIterator) Next() {
	it.setCurrent(it.next, it.nextIdx)
}

// Location of the current note.
func (it *SparseNoteIterator) Location() NoteLocation {
	return it.current
}

// NextLocation is the location of the next matching note. If there is no
// next matching note then the location is the end of the song.
func (it *SparseNoteIterator) NextLocation() NoteLocation {
	return it.next
}

// Pattern of the current note.
func (it *SparseNoteIterator) Pattern() *Pattern {
	return it.pattern
}

// Note is the current note.
func (it *SparseNoteIterator) Note() *Note {
	return it.note
}

// DistanceToNextNote is the number of notes between the current note and
// the next matching note.
func (it *SparseNoteIterator) DistanceToNextNote() int {
	return it.channel.song.CountNotesBetween(it.current, it.next)
}

// DistanceToNextCut is the same as DistanceToNextNote() but takes delayed
// cuts into account. A note with a cut delay lasts for one note. A note
// followed by an effect only note with a cut delay lasts one note longer.
func (it *SparseNoteIterator) DistanceToNextCut() int {
	if it.note != nil && it.note.HasCutDelay() {
		return 1
	}

	d := it.DistanceToNextNote()

	if it.next.IsValid() && it.next.IsInSong(it.channel.song) {
		n := it.channel.NoteAt(it.next)
		if n != nil && !n.IsMusicalOrStop() && n.HasCutDelay() {
			return d + 1
		}
	}

	return d
}

func (it *SparseNoteIterator) setCurrent(loc NoteLocation, listIdx int) {
	it.current = loc

	if it.Done() {
		return
	}

	c := it.channel
	s := c.song

	it.pattern = c.instances[loc.PatternIndex]
	it.currIdx = listIdx
	it.note = it.pattern.notes[listIdx]

	assert.That(it.note.MatchesFilter(it.filter), "song: iterator note at %s does not match filter", loc)

	// same pattern
	patternLen := s.PatternLength(loc.PatternIndex)
	for i := listIdx + 1; i < len(it.pattern.keys) && it.pattern.keys[i] < patternLen; i++ {
		if it.pattern.notes[i].MatchesFilter(it.filter) {
			it.next = NoteLocation{PatternIndex: loc.PatternIndex, NoteIndex: it.pattern.keys[i]}
			it.nextIdx = i
			return
		}
	}

	// following patterns
	for p := loc.PatternIndex + 1; p <= it.end.PatternIndex; p++ {
		pat := c.instances[p]
		if pat == nil || len(pat.keys) == 0 {
			continue
		}

		// the cache knows the first note for the most common filters
		switch it.filter {
		case FilterCutDurationMask:
			if k := c.CachedFirstNoteIndex(p); k >= 0 {
				it.next = NoteLocation{PatternIndex: p, NoteIndex: k}
				it.nextIdx = pat.search(k)
				return
			}
			continue
		case FilterEffectVolume:
			if k := c.CachedFirstVolumeIndex(p); k >= 0 {
				it.next = NoteLocation{PatternIndex: p, NoteIndex: k}
				it.nextIdx = pat.search(k)
				return
			}
			continue
		}

		patternLen = s.PatternLength(p)
		for i := 0; i < len(pat.keys) && pat.keys[i] < patternLen; i++ {
			if pat.notes[i].MatchesFilter(it.filter) {
				it.next = NoteLocation{PatternIndex: p, NoteIndex: pat.keys[i]}
				it.nextIdx = i
				return
			}
		}
	}

	it.next = s.EndLocation()
}

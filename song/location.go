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

import "fmt"

// NoteLocation is the position of a note in a song. Locations are ordered by
// pattern index and then by note index.
type NoteLocation struct {
	PatternIndex int
	NoteIndex    int
}

// InvalidLocation is used to indicate a location that does not exist.
var InvalidLocation = NoteLocation{PatternIndex: -1, NoteIndex: -1}

func (l NoteLocation) String() string {
	return fmt.Sprintf("%03d:%03d", l.PatternIndex, l.NoteIndex)
}

// IsValid returns false if the location is not a position in any song.
func (l NoteLocation) IsValid() bool {
	return l.PatternIndex >= 0 && l.NoteIndex >= 0
}

// IsInSong returns true if the location is before the end of the song.
func (l NoteLocation) IsInSong(s *Song) bool {
	return l.PatternIndex < s.Length()
}

// Compare returns -1 if the location is before the other location, 1 if it
// is after and 0 if the locations are the same.
func (l NoteLocation) Compare(o NoteLocation) int {
	switch {
	case l.PatternIndex < o.PatternIndex:
		return -1
	case l.PatternIndex > o.PatternIndex:
		return 1
	case l.NoteIndex < o.NoteIndex:
		return -1
	case l.NoteIndex > o.NoteIndex:
		return 1
	}
	return 0
}

// Less returns true if the location is before the other location.
func (l NoteLocation) Less(o NoteLocation) bool {
	return l.Compare(o) < 0
}

// MinLocation returns the earliest of the two locations.
func MinLocation(a NoteLocation, b NoteLocation) NoteLocation {
	if b.Less(a) {
		return b
	}
	return a
}

// MaxLocation returns the latest of the two locations.
func MaxLocation(a NoteLocation, b NoteLocation) NoteLocation {
	if a.Less(b) {
		return b
	}
	return a
}

// LocationFromAbsoluteNoteIndex converts a count of notes from the start of
// the song to a location. Patterns can be of different lengths so the song is
// required to perform the conversion.
func LocationFromAbsoluteNoteIndex(s *Song, idx int) NoteLocation {
	l := NoteLocation{}
	s.AdvanceNumberOfNotes(&l, idx)
	return l
}

// AbsoluteNoteIndex is the inverse of LocationFromAbsoluteNoteIndex().
func (l NoteLocation) AbsoluteNoteIndex(s *Song) int {
	return s.CountNotesBetween(NoteLocation{}, l)
}

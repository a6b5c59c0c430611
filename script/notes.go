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

package script

import (
	"strings"

	"github.com/jetsetilly/chiptracker/curated"
	"github.com/jetsetilly/chiptracker/song"
)

// Sentinal error returned by ParseNote.
const InvalidNote = "script: invalid note (%s)"

var semitones = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// ParseNote converts a note name to a note value. Musical notes are written
// as a letter, an optional sharp or a dash, and an octave. For example, "C-4",
// "C#4" or "c4". The special names "stop", "release" and "---" are also
// accepted.
func ParseNote(s string) (uint8, error) {
	s = strings.TrimSpace(s)

	switch strings.ToLower(s) {
	case "stop", "off":
		return song.NoteStop, nil
	case "release", "===":
		return song.NoteRelease, nil
	case "---", "":
		return song.NoteInvalid, nil
	}

	if len(s) < 2 {
		return 0, curated.Errorf(InvalidNote, s)
	}

	semi, ok := semitones[strings.ToUpper(s[:1])[0]]
	if !ok {
		return 0, curated.Errorf(InvalidNote, s)
	}

	oct := s[1:]
	switch oct[0] {
	case '#':
		semi++
		oct = oct[1:]
	case '-':
		oct = oct[1:]
	}

	if len(oct) != 1 || oct[0] < '0' || oct[0] > '7' {
		return 0, curated.Errorf(InvalidNote, s)
	}

	v := int(oct[0]-'0')*12 + semi + song.NoteMusicalMin
	if v > song.NoteMusicalMax {
		return 0, curated.Errorf(InvalidNote, s)
	}

	return uint8(v), nil
}

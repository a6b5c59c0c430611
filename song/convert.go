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

	"github.com/jetsetilly/chiptracker/notifications"
)

// ConvertToCompoundNotes converts a channel that uses stop and release notes
// to mark the end and release of musical notes, to a channel where every
// musical note carries its own duration and release point.
//
// Stop notes that do not agree with the duration of the note before them
// are kept as orphan stop notes. A stop note at the start of the loop section
// is also kept. Every other stop and release note is removed.
func (c *Channel) ConvertToCompoundNotes() {
	s := c.song

	for _, pat := range c.patterns {
		for _, n := range pat.notes {
			if n.IsMusical() {
				n.Duration = 0
			} else if n.IsStop() || n.IsRelease() {
				n.Duration = 1
			}
		}
	}

	// first pass sets the duration and release of every musical note. a
	// note that is instanced more than once gets the longest duration
	var l0 NoteLocation
	var n0 *Note

	for p := range s.length {
		pat := c.instances[p]
		if pat == nil {
			continue
		}

		for i, key := range pat.keys {
			l1 := NoteLocation{PatternIndex: p, NoteIndex: key}
			n1 := pat.notes[i]

			switch {
			case n1.IsRelease():
				if n0 == nil {
					continue
				}
				release := s.CountNotesBetween(l0, l1)
				if n0.Release == 0 {
					n0.Release = release
				} else {
					n0.Release = min(release, n0.Duration)
				}

			case n1.IsMusicalOrStop():
				if n0 != nil {
					d := s.CountNotesBetween(l0, l1)
					if n0.Duration == 0 {
						n0.Duration = d
					} else {
						n0.Duration = max(d, n0.Duration)
					}
				}
				if n1.IsStop() {
					n0 = nil
				} else {
					l0 = l1
					n0 = n1
				}
			}
		}
	}

	// the last note lasts until the end of the song
	if n0 != nil {
		d := s.CountNotesBetween(l0, s.EndLocation())
		if n0.Duration == 0 {
			n0.Duration = d
		} else {
			n0.Duration = max(d, n0.Duration)
		}
	}

	// second pass finds the stop notes that must be kept
	inconsistent := make(map[*Note]*Pattern)
	var loopStop *Note
	var loopStopPattern *Pattern
	var foundMusicalAfterLoop bool

	n0 = nil

	for p := range s.length {
		pat := c.instances[p]
		if pat == nil {
			continue
		}

		for i, key := range pat.keys {
			l1 := NoteLocation{PatternIndex: p, NoteIndex: key}
			n1 := pat.notes[i]
			inLoop := s.loopPoint >= 0 && p >= s.loopPoint

			switch {
			case n1.IsStop():
				if n0 != nil {
					if n0.Duration != s.CountNotesBetween(l0, l1) {
						inconsistent[n1] = pat
					}
					n0 = nil
				}
				if inLoop && !foundMusicalAfterLoop && loopStop == nil {
					loopStop = n1
					loopStopPattern = pat
				}

			case n1.IsMusical():
				l0 = l1
				n0 = n1
				if inLoop {
					foundMusicalAfterLoop = true
				}
			}
		}
	}

	for n, pat := range inconsistent {
		s.project.warn(notifications.NotifyInconsistentDuration,
			fmt.Sprintf("inconsistent note duration, orphan stop note added (song %s, channel %s, pattern %s, note %d)",
				s.Name, c, pat.Name, pat.keyOf(n)))
	}

	if loopStop != nil {
		s.project.warn(notifications.NotifyLoopPointStop,
			fmt.Sprintf("stop note found at beginning of loop point, orphan stop note added (song %s, channel %s, pattern %s)",
				s.Name, c, loopStopPattern.Name))
	}

	for _, pat := range c.patterns {
		for _, n := range pat.notes {
			if (n.IsStop() || n.IsRelease()) && inconsistent[n] == nil && n != loopStop {
				n.Value = NoteInvalid
				n.Duration = 0
			}
			n.ClearReleaseIfPastDuration()
		}
	}

	c.DeleteEmptyNotes()
	c.InvalidateCache()
	c.DeleteUnusedPatterns()
}

// keyOf returns the note index of the note or -1 if the note is not in the
// pattern
func (p *Pattern) keyOf(n *Note) int {
	for i, v := range p.notes {
		if v == n {
			return p.keys[i]
		}
	}
	return -1
}

// the release and stop locations that must be injected into a pattern
// position because of a note in an earlier pattern position
type injectedMarkers struct {
	release int
	stop    int
}

type injectionKey struct {
	pattern *Pattern
	markers injectedMarkers
}

// ConvertToSimpleNotes converts a channel of compound notes to a channel
// where the end of every musical note is marked with a stop note and the
// release point with a release note.
//
// Markers that fall in a later pattern position are injected into the
// pattern of that position. If two positions share a pattern but need
// different markers then the pattern is duplicated. Positions that need the
// same markers share the same duplicate.
func (c *Channel) ConvertToSimpleNotes() error {
	s := c.song

	injected := make([]injectedMarkers, s.length)
	for i := range injected {
		injected[i] = injectedMarkers{release: -1, stop: -1}
	}

	var releases []NoteLocation
	var stops []NoteLocation

	loc0 := s.StartLocation()
	loc1 := s.EndLocation()

	for it := c.SparseNoteIterator(loc0, loc1, FilterCutDurationMask); !it.Done(); it.Next() {
		n := it.Note()
		if !n.IsMusical() {
			continue
		}

		d := min(n.Duration, it.DistanceToNextCut())

		if n.HasRelease() && n.Release < d {
			rel := it.Location()
			s.AdvanceNumberOfNotes(&rel, n.Release)
			if rel.Less(loc1) {
				if rel.PatternIndex != it.Location().PatternIndex {
					if c.instances[rel.PatternIndex] == nil {
						if _, err := c.CreatePatternAndInstance(rel.PatternIndex, ""); err != nil {
							return err
						}
					}
					injected[rel.PatternIndex].release = rel.NoteIndex
				}
				releases = append(releases, rel)
			}
		}

		stop := it.Location()
		s.AdvanceNumberOfNotes(&stop, d)
		if stop.Less(loc1) {
			if stop.PatternIndex != it.Location().PatternIndex {
				if c.instances[stop.PatternIndex] == nil {
					if _, err := c.CreatePatternAndInstance(stop.PatternIndex, ""); err != nil {
						return err
					}
				}
				injected[stop.PatternIndex].stop = stop.NoteIndex
			}
			stops = append(stops, stop)
		}
	}

	// duplicate patterns so that every combination of injected markers has
	// its own pattern
	visited := make(map[*Pattern]bool)
	duplicates := make(map[injectionKey]*Pattern)

	for i := range s.length {
		if injected[i].release < 0 && injected[i].stop < 0 {
			continue
		}

		pat := c.instances[i]
		key := injectionKey{pattern: pat, markers: injected[i]}

		if !visited[pat] {
			visited[pat] = true
			duplicates[key] = pat
			continue
		}

		if dup, ok := duplicates[key]; ok {
			c.instances[i] = dup
		} else {
			s.project.warn(notifications.NotifyPatternDuplicated,
				fmt.Sprintf("duplicating pattern %s in song %s since it has inconsistent previous notes", pat.Name, s.Name))
			dup = pat.ShallowClone()
			c.instances[i] = dup
			duplicates[key] = dup
		}
	}

	for _, loc := range releases {
		n := c.instances[loc.PatternIndex].GetOrCreateNoteAt(loc.NoteIndex)
		if !n.IsValid() {
			n.Value = NoteRelease
			n.Duration = 1
		}
	}

	for _, loc := range stops {
		n := c.instances[loc.PatternIndex].GetOrCreateNoteAt(loc.NoteIndex)
		if !n.IsValid() {
			n.Value = NoteStop
			n.Duration = 1
		}
	}

	c.InvalidateCache()
	c.DeleteUnusedPatterns()
	return nil
}

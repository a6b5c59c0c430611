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
	"hash/crc32"
	"slices"
)

// MaxPatternLength is the maximum number of notes in a pattern.
const MaxPatternLength = 256

// Pattern is a sparse list of notes. Notes are keyed by their note index
// within the pattern and kept in key order.
//
// A pattern can hold notes at indexes beyond the length of some or all of
// its instances. Those notes are ignored when the pattern is played.
type Pattern struct {
	ID   int
	Name string

	channel *Channel

	// keys and notes are the same length. keys are unique and sorted
	keys  []int
	notes []*Note
}

func newPattern(id int, channel *Channel, name string) *Pattern {
	return &Pattern{
		ID:      id,
		Name:    name,
		channel: channel,
	}
}

func (p *Pattern) String() string {
	return p.Name
}

// Channel returns the channel that owns the pattern.
func (p *Pattern) Channel() *Channel {
	return p.channel
}

// Len returns the number of notes in the pattern.
func (p *Pattern) Len() int {
	return len(p.keys)
}

// HasAnyNotes returns true if the pattern has at least one note.
func (p *Pattern) HasAnyNotes() bool {
	return len(p.keys) > 0
}

// Key returns the note index of the i'th note in the pattern.
func (p *Pattern) Key(i int) int {
	return p.keys[i]
}

// NoteByPosition returns the i'th note in the pattern.
func (p *Pattern) NoteByPosition(i int) *Note {
	return p.notes[i]
}

// search returns the position of the first key that is equal to or greater
// than the note index
func (p *Pattern) search(idx int) int {
	i, _ := slices.BinarySearch(p.keys, idx)
	return i
}

// NoteAt returns the note at the note index or nil if there is no note.
func (p *Pattern) NoteAt(idx int) *Note {
	i, ok := slices.BinarySearch(p.keys, idx)
	if !ok {
		return nil
	}
	return p.notes[i]
}

// SetNoteAt inserts the note at the note index, replacing any note that is
// already there. A nil note deletes the note at the index.
func (p *Pattern) SetNoteAt(idx int, n *Note) {
	if n == nil {
		p.DeleteNoteAt(idx)
		return
	}
	i, ok := slices.BinarySearch(p.keys, idx)
	if ok {
		p.notes[i] = n
		return
	}
	p.keys = slices.Insert(p.keys, i, idx)
	p.notes = slices.Insert(p.notes, i, n)
}

// GetOrCreateNoteAt returns the note at the note index. If there is no note
// then an invalid note is created.
func (p *Pattern) GetOrCreateNoteAt(idx int) *Note {
	if n := p.NoteAt(idx); n != nil {
		return n
	}
	n := NewNote(NoteInvalid)
	p.SetNoteAt(idx, n)
	return n
}

// DeleteNoteAt removes the note at the note index. Returns false if there
// was no note.
func (p *Pattern) DeleteNoteAt(idx int) bool {
	i, ok := slices.BinarySearch(p.keys, idx)
	if !ok {
		return false
	}
	p.keys = slices.Delete(p.keys, i, i+1)
	p.notes = slices.Delete(p.notes, i, i+1)
	return true
}

// DeleteNotesBetween removes notes from the minimum note index up to but not
// including the maximum note index. If preserveFx is true then notes with
// effect values are kept as invalid notes with their effects.
func (p *Pattern) DeleteNotesBetween(minIdx int, maxIdx int, preserveFx bool) {
	p.deleteWhere(func(key int, n *Note) bool {
		if key < minIdx || key >= maxIdx {
			return false
		}
		if preserveFx && n.HasAnyEffect() {
			n.Value = NoteInvalid
			n.Duration = 0
			n.Release = 0
			n.SlideTarget = NoteInvalid
			n.Instrument = nil
			n.Arpeggio = nil
			return false
		}
		return true
	})
}

// DeleteAllNotes removes every note from the pattern.
func (p *Pattern) DeleteAllNotes() {
	p.keys = p.keys[:0]
	p.notes = p.notes[:0]
}

// DeleteEmptyNotes removes invalid notes that carry no effects.
func (p *Pattern) DeleteEmptyNotes() {
	p.deleteWhere(func(_ int, n *Note) bool {
		return n.IsEmpty()
	})
}

// ClearNotesPastMaxInstanceLength removes notes that can not be heard in
// any instance of the pattern.
func (p *Pattern) ClearNotesPastMaxInstanceLength() {
	l := p.MaxInstanceLength()
	p.deleteWhere(func(key int, _ *Note) bool {
		return key >= l
	})
}

// MaxInstanceLength returns the longest length of all instances of the
// pattern in the song.
func (p *Pattern) MaxInstanceLength() int {
	s := p.channel.song
	var l int
	for i := range s.Length() {
		if p.channel.instances[i] == p {
			l = max(l, s.PatternLength(i))
		}
	}
	return l
}

func (p *Pattern) deleteWhere(f func(key int, n *Note) bool) {
	var j int
	for i := range p.keys {
		if !f(p.keys[i], p.notes[i]) {
			p.keys[j] = p.keys[i]
			p.notes[j] = p.notes[i]
			j++
		}
	}
	clear(p.notes[j:])
	p.keys = p.keys[:j]
	p.notes = p.notes[:j]
}

// ComputeCRC returns a checksum of the content of the pattern. Patterns with
// the same notes have the same checksum. The name and ID of the pattern are
// not part of the checksum.
func (p *Pattern) ComputeCRC() uint32 {
	h := crc32.NewIEEE()
	var b [4]byte
	for i, k := range p.keys {
		b[0] = byte(k)
		b[1] = byte(k >> 8)
		b[2] = byte(k >> 16)
		b[3] = byte(k >> 24)
		h.Write(b[:])
		p.notes[i].hash(h)
	}
	return h.Sum32()
}

// ShallowClone creates a copy of the pattern with a unique name and adds it
// to the channel. The notes are copied but instruments and arpeggios are
// shared.
func (p *Pattern) ShallowClone() *Pattern {
	c := p.channel
	clone := newPattern(c.song.project.GenerateUniqueID(), c, c.GenerateUniquePatternNameSmart(p.Name))
	clone.keys = slices.Clone(p.keys)
	clone.notes = make([]*Note, len(p.notes))
	for i, n := range p.notes {
		clone.notes[i] = n.Clone()
	}
	c.patterns = append(c.patterns, clone)
	return clone
}

// copyFor creates a copy of the pattern with the same ID and name for another
// channel. the copy is not added to the channel
func (p *Pattern) copyFor(c *Channel) *Pattern {
	cp := newPattern(p.ID, c, p.Name)
	cp.keys = slices.Clone(p.keys)
	cp.notes = make([]*Note, len(p.notes))
	for i, n := range p.notes {
		cp.notes[i] = n.Clone()
	}
	return cp
}

// Dump writes a human readable description of every note in the pattern.
func (p *Pattern) Dump() string {
	s := fmt.Sprintf("%s (%d notes)\n", p.Name, len(p.keys))
	for i, k := range p.keys {
		s = fmt.Sprintf("%s  %03d: %s\n", s, k, p.notes[i])
	}
	return s
}

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

package song_test

import (
	"slices"
	"testing"

	"github.com/jetsetilly/chiptracker/chips"
	"github.com/jetsetilly/chiptracker/notifications"
	"github.com/jetsetilly/chiptracker/song"
	"github.com/jetsetilly/chiptracker/test"
)

func TestCompoundRoundTrip(t *testing.T) {
	_, s := newTestSong(t, 4)
	c := s.Channel(chips.Square1)

	a := patternAt(t, c, 0)
	c1 := song.NewMusicalNote(49, 4, nil)
	c1.Release = 2
	a.SetNoteAt(0, c1)
	e1 := song.NewMusicalNote(53, 8, nil)
	a.SetNoteAt(8, e1)

	b := patternAt(t, c, 1)
	g1 := song.NewMusicalNote(56, 3, nil)
	b.SetNoteAt(0, g1)
	g2 := song.NewMusicalNote(58, 6, nil)
	g2.Release = 5
	b.SetNoteAt(10, g2)

	test.DemandSuccess(t, c.SetInstance(2, a))

	test.DemandSuccess(t, c.ConvertToSimpleNotes())

	// stop and release notes have been injected
	test.ExpectSuccess(t, a.NoteAt(2).IsRelease())
	test.ExpectSuccess(t, a.NoteAt(4).IsStop())
	test.ExpectSuccess(t, b.NoteAt(3).IsStop())
	test.ExpectSuccess(t, c.Instance(3) != nil)
	test.ExpectSuccess(t, c.Instance(3).NoteAt(0).IsStop())

	// release of the last note of pattern 1
	test.ExpectSuccess(t, b.NoteAt(15).IsRelease())

	c.ConvertToCompoundNotes()

	test.ExpectEquality(t, c1.Duration, 4)
	test.ExpectEquality(t, c1.Release, 2)
	test.ExpectEquality(t, e1.Duration, 8)
	test.ExpectEquality(t, e1.Release, 0)
	test.ExpectEquality(t, g1.Duration, 3)
	test.ExpectEquality(t, g2.Duration, 6)
	test.ExpectEquality(t, g2.Release, 5)

	// every marker has been removed
	for _, pat := range c.Patterns() {
		for i := range pat.Len() {
			n := pat.NoteByPosition(i)
			test.ExpectFailure(t, n.IsStop() || n.IsRelease(), pat.Name, pat.Key(i))
		}
	}

	test.ExpectSuccess(t, c.ValidateIntegrity())
}

func TestCompoundInconsistent(t *testing.T) {
	p, s := newTestSong(t, 4)
	var notify notifications.Collector
	p.Notify = &notify

	c := s.Channel(chips.Square1)

	a := patternAt(t, c, 0)
	n := song.NewNote(49)
	a.SetNoteAt(10, n)

	b := patternAt(t, c, 1)
	b.SetNoteAt(0, song.NewNote(song.NoteStop))

	test.DemandSuccess(t, c.SetInstance(2, a))

	d := patternAt(t, c, 3)
	d.SetNoteAt(4, song.NewNote(song.NoteStop))

	c.ConvertToCompoundNotes()

	// longest duration is used
	test.ExpectEquality(t, n.Duration, 10)

	// the stop note that disagrees with the duration is kept
	test.ExpectSuccess(t, b.NoteAt(0) != nil && b.NoteAt(0).IsStop())
	test.ExpectSuccess(t, d.NoteAt(4) == nil)
	test.ExpectEquality(t, notify.Count(notifications.NotifyInconsistentDuration), 1)
	test.ExpectEquality(t, notify.Count(notifications.NotifyLoopPointStop), 0)
}

func TestCompoundLoopPointStop(t *testing.T) {
	p, s := newTestSong(t, 3)
	var notify notifications.Collector
	p.Notify = &notify
	s.SetLoopPoint(2)

	c := s.Channel(chips.Square1)

	a := patternAt(t, c, 0)
	a.SetNoteAt(0, song.NewNote(49))

	b := patternAt(t, c, 2)
	b.SetNoteAt(0, song.NewNote(song.NoteStop))
	b.SetNoteAt(4, song.NewNote(50))

	c.ConvertToCompoundNotes()

	test.ExpectEquality(t, a.NoteAt(0).Duration, 32)
	test.ExpectEquality(t, b.NoteAt(4).Duration, 12)
	test.ExpectSuccess(t, b.NoteAt(0) != nil && b.NoteAt(0).IsStop())
	test.ExpectEquality(t, notify.Count(notifications.NotifyLoopPointStop), 1)
}

func TestSimpleNotesDuplicatePattern(t *testing.T) {
	p, s := newTestSong(t, 4)
	var notify notifications.Collector
	p.Notify = &notify

	c := s.Channel(chips.Square1)

	// note in pattern 0 extends four notes into pattern 1
	a := patternAt(t, c, 0)
	a.SetNoteAt(12, song.NewMusicalNote(49, 8, nil))

	// pattern b is used at position 1 and 3
	b := patternAt(t, c, 1)
	b.SetNoteAt(8, song.NewMusicalNote(50, 2, nil))
	test.DemandSuccess(t, c.SetInstance(3, b))

	// note in pattern 2 extends six notes into pattern 3
	d := patternAt(t, c, 2)
	d.SetNoteAt(14, song.NewMusicalNote(51, 8, nil))

	test.DemandSuccess(t, c.ConvertToSimpleNotes())

	test.ExpectEquality(t, notify.Count(notifications.NotifyPatternDuplicated), 1)
	test.ExpectSuccess(t, c.Instance(1) == b)
	test.ExpectSuccess(t, c.Instance(3) != b)
	test.ExpectSuccess(t, b.NoteAt(4).IsStop())
	test.ExpectSuccess(t, c.Instance(3).NoteAt(6).IsStop())
	test.ExpectSuccess(t, c.Instance(3).NoteAt(4) == nil)
	test.ExpectSuccess(t, b.NoteAt(6) == nil)
	test.ExpectEquality(t, len(c.Patterns()), 4)
}

func TestMergeIdenticalPatterns(t *testing.T) {
	_, s := newTestSong(t, 4)
	c := s.Channel(chips.Square1)

	p1 := patternAt(t, c, 0)
	p2 := patternAt(t, c, 1)
	p3 := patternAt(t, c, 2)
	test.DemandSuccess(t, c.SetInstance(3, p2))

	p1.SetNoteAt(0, song.NewMusicalNote(49, 4, nil))
	p2.SetNoteAt(0, song.NewMusicalNote(49, 4, nil))
	p3.SetNoteAt(0, song.NewMusicalNote(50, 4, nil))

	c.MergeIdenticalPatterns()

	check := func() {
		t.Helper()
		test.DemandEquality(t, len(c.Patterns()), 2)
		test.ExpectSuccess(t, c.Patterns()[0] == p1)
		test.ExpectSuccess(t, c.Patterns()[1] == p3)
		test.ExpectSuccess(t, c.Instance(0) == p1)
		test.ExpectSuccess(t, c.Instance(1) == p1)
		test.ExpectSuccess(t, c.Instance(2) == p3)
		test.ExpectSuccess(t, c.Instance(3) == p1)
	}

	check()

	// running a second time changes nothing
	c.MergeIdenticalPatterns()
	check()

	test.ExpectSuccess(t, c.ValidateIntegrity())
}

func TestMakePatternsUnique(t *testing.T) {
	_, s := newTestSong(t, 3)
	c := s.Channel(chips.Square1)

	a := patternAt(t, c, 0)
	a.SetNoteAt(0, song.NewMusicalNote(49, 4, nil))
	test.DemandSuccess(t, c.SetInstance(1, a))
	test.DemandSuccess(t, c.SetInstance(2, a))

	test.DemandSuccess(t, s.SetPatternCustomSettingsAndFix(1, 8, 4, nil, song.GroovePadMiddle))
	test.ExpectSuccess(t, c.Instance(0) == a)
	test.ExpectSuccess(t, c.Instance(1) != a)
	test.ExpectSuccess(t, c.Instance(2) == a)
	test.ExpectEquality(t, c.Instance(1).Name, "Pattern 2")

	// the notes of the clone are copies
	test.ExpectSuccess(t, c.Instance(1).NoteAt(0) != a.NoteAt(0))
	test.ExpectEquality(t, c.Instance(1).NoteAt(0).Value, uint8(49))

	// same length but a different groove
	test.DemandSuccess(t, s.SetPatternCustomSettingsAndFix(2, 16, 4, []int{5, 6}, song.GroovePadMiddle))
	test.ExpectSuccess(t, c.Instance(2) != a)

	// same groove content is not a difference
	test.DemandSuccess(t, s.SetPatternCustomSettings(0, 16, 4, []int{5, 6}, song.GroovePadMiddle))
	test.DemandSuccess(t, s.SetPatternCustomSettings(1, 16, 4, []int{5, 6}, song.GroovePadMiddle))
	test.DemandSuccess(t, c.SetInstance(1, a))
	c.MakePatternsWithDifferentLengthsUnique()
	c.MakePatternsWithDifferentGroovesUnique()
	test.ExpectSuccess(t, c.Instance(0) == a)
	test.ExpectSuccess(t, c.Instance(1) == a)
}

func TestLoopExtension(t *testing.T) {
	_, s := newTestSong(t, 10)
	s.SetLoopPoint(4)
	c := s.Channel(chips.Square1)

	var patterns [10]*song.Pattern
	for i := range 10 {
		patterns[i] = patternAt(t, c, i)
		patterns[i].SetNoteAt(i, song.NewMusicalNote(uint8(i+1), 1, nil))
	}
	test.DemandSuccess(t, s.SetPatternCustomSettings(5, 8, 4, []int{4}, song.GroovePadEnd))

	s.ExtendForLooping(3)
	test.DemandEquality(t, s.Length(), 22)
	test.ExpectEquality(t, s.LoopPoint(), 4)

	for i := 10; i < 22; i++ {
		src := 4 + (i-10)%6
		test.ExpectSuccess(t, c.Instance(i) == patterns[src], i)
		test.ExpectEquality(t, s.PatternLength(i), s.PatternLength(src), i)
		test.ExpectEquality(t, s.PatternHasCustomSettings(i), s.PatternHasCustomSettings(src), i)
	}
	test.ExpectEquality(t, s.PatternLength(11), 8)
	test.ExpectEquality(t, s.PatternLength(17), 8)
	test.ExpectEquality(t, s.PatternGroovePaddingMode(17), song.GroovePadEnd)
	test.ExpectEquality(t, s.PatternLength(12), song.DefaultPatternLength)

	test.ExpectSuccess(t, c.ValidateIntegrity())

	// no change without a loop
	_, s = newTestSong(t, 10)
	s.SetLoopPoint(-1)
	s.ExtendForLooping(3)
	test.ExpectEquality(t, s.Length(), 10)

	// the song is never longer than the maximum length
	_, s = newTestSong(t, 200)
	s.SetLoopPoint(0)
	s.ExtendForLooping(2)
	test.ExpectEquality(t, s.Length(), song.MaxLength)
}

func TestShallowCloneExtension(t *testing.T) {
	_, s := newTestSong(t, 4)
	s.SetLoopPoint(2)
	c := s.Channel(chips.Square1)
	a := patternAt(t, c, 2)

	clone := s.ShallowClone()
	clone.ExtendForLooping(2)
	test.ExpectEquality(t, clone.Length(), 6)
	test.ExpectEquality(t, s.Length(), 4)
	cc := clone.Channel(chips.Square1)
	test.ExpectSuccess(t, cc.Instance(4) == cc.Instance(2))
	test.ExpectSuccess(t, cc.Instance(4) != a)
	test.ExpectEquality(t, cc.Instance(4).ID, a.ID)
	test.ExpectSuccess(t, c.Instance(4) == nil)
}

func TestShallowCloneIsolation(t *testing.T) {
	_, s := newTestSong(t, 3)
	c := s.Channel(chips.Square1)
	a := patternAt(t, c, 0)
	test.DemandSuccess(t, c.SetInstance(1, a))
	a.SetNoteAt(0, song.NewMusicalNote(49, 4, nil))

	clone := s.ShallowClone()
	cc := clone.Channel(chips.Square1)
	for _, ch := range clone.Channels() {
		test.ExpectSuccess(t, ch.ValidateIntegrity())
	}
	test.ExpectSuccess(t, cc.Instance(0) == cc.Instance(1))
	test.ExpectSuccess(t, cc.Instance(0).Channel() == cc)

	// splitting the shared pattern in the clone leaves the original alone
	test.DemandSuccess(t, clone.SetPatternCustomSettingsAndFix(1, 8, 4, nil, song.GroovePadMiddle))
	test.ExpectEquality(t, len(c.Patterns()), 1)
	test.ExpectEquality(t, len(cc.Patterns()), 2)
	test.ExpectSuccess(t, slices.Contains(cc.Patterns(), cc.Instance(1)))
	test.ExpectSuccess(t, c.Instance(1) == a)
	test.ExpectSuccess(t, cc.ValidateIntegrity())
	test.ExpectSuccess(t, c.ValidateIntegrity())

	// notes of the clone are copies
	cc.Instance(0).NoteAt(0).Value = 50
	test.ExpectEquality(t, a.NoteAt(0).Value, uint8(49))
}

func TestDeleteEmptyPatterns(t *testing.T) {
	_, s := newTestSong(t, 3)
	c := s.Channel(chips.Square1)

	a := patternAt(t, c, 0)
	patternAt(t, c, 1)
	a.SetNoteAt(0, song.NewMusicalNote(49, 4, nil))

	c.DeleteEmptyPatterns()
	test.ExpectEquality(t, len(c.Patterns()), 1)
	test.ExpectSuccess(t, c.Instance(1) == nil)

	// notes past the longest instance are removed
	a.SetNoteAt(20, song.NewMusicalNote(49, 4, nil))
	c.DeleteNotesPastMaxInstanceLength()
	test.ExpectEquality(t, a.Len(), 1)
}

func TestSetNoteDurationToMaximumLength(t *testing.T) {
	_, s := newTestSong(t, 2)
	c := s.Channel(chips.Square1)

	a := patternAt(t, c, 0)
	n := song.NewMusicalNote(49, 100, nil)
	a.SetNoteAt(8, n)

	b := patternAt(t, c, 1)
	b.SetNoteAt(4, song.NewMusicalNote(50, 1, nil))

	c.SetNoteDurationToMaximumLength()
	test.ExpectEquality(t, n.Duration, 12)
}

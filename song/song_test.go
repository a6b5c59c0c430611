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
	"testing"

	"github.com/jetsetilly/chiptracker/chips"
	"github.com/jetsetilly/chiptracker/song"
	"github.com/jetsetilly/chiptracker/test"
)

// newTestSong creates a project with a single song of the specified length.
// Only the 2A03 channels are active
func newTestSong(t *testing.T, length int) (*song.Project, *song.Song) {
	t.Helper()
	p := song.NewProject("test")
	s, err := p.CreateSong("")
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, s.SetLength(length))
	return p, s
}

// patternAt creates a pattern and places it at the song position
func patternAt(t *testing.T, c *song.Channel, pos int) *song.Pattern {
	t.Helper()
	pat, err := c.CreatePatternAndInstance(pos, "")
	test.DemandSuccess(t, err)
	return pat
}

func loc(p int, n int) song.NoteLocation {
	return song.NoteLocation{PatternIndex: p, NoteIndex: n}
}

func TestLocation(t *testing.T) {
	_, s := newTestSong(t, 4)
	test.DemandSuccess(t, s.SetPatternCustomSettings(1, 8, 4, nil, song.GroovePadMiddle))

	test.ExpectEquality(t, loc(0, 5).Compare(loc(0, 5)), 0)
	test.ExpectEquality(t, loc(0, 5).Compare(loc(1, 0)), -1)
	test.ExpectEquality(t, loc(2, 0).Compare(loc(1, 15)), 1)
	test.ExpectEquality(t, song.MinLocation(loc(1, 3), loc(0, 9)), loc(0, 9))
	test.ExpectEquality(t, song.MaxLocation(loc(1, 3), loc(0, 9)), loc(1, 3))
	test.ExpectFailure(t, song.InvalidLocation.IsValid())

	// pattern 1 is eight notes long
	test.ExpectEquality(t, s.CountNotesBetween(loc(0, 0), loc(2, 0)), 24)
	test.ExpectEquality(t, s.CountNotesBetween(loc(2, 0), loc(0, 0)), -24)
	test.ExpectEquality(t, s.CountNotesBetween(loc(0, 10), loc(1, 2)), 8)

	l := loc(0, 10)
	s.AdvanceNumberOfNotes(&l, 10)
	test.ExpectEquality(t, l, loc(1, 4))
	s.AdvanceNumberOfNotes(&l, 4)
	test.ExpectEquality(t, l, loc(2, 0))

	test.ExpectEquality(t, song.LocationFromAbsoluteNoteIndex(s, 30), loc(2, 6))
	test.ExpectEquality(t, loc(2, 6).AbsoluteNoteIndex(s), 30)

	test.ExpectEquality(t, s.EndLocation(), loc(4, 0))
	test.ExpectSuccess(t, loc(3, 15).IsInSong(s))
	test.ExpectFailure(t, s.EndLocation().IsInSong(s))
}

func TestFrameCount(t *testing.T) {
	_, s := newTestSong(t, 2)

	s.SetDefaultGroove([]int{6, 5}, song.GroovePadMiddle)
	test.ExpectApproximate(t, s.CountFramesBetween(loc(0, 0), loc(0, 4), 0, false), 22, 0)
	test.ExpectApproximate(t, s.CountFramesBetween(loc(0, 1), loc(0, 2), 0, false), 5, 0)

	// the groove restarts at the start of every pattern
	test.ExpectApproximate(t, s.CountFramesBetween(loc(0, 15), loc(1, 1), 0, false), 11, 0)

	s.TempoMode = song.TempoFamiTracker
	test.ExpectApproximate(t, s.CountFramesBetween(loc(0, 0), loc(0, 4), 0, false), 24, 0.0001)
	test.ExpectApproximate(t, s.CountFramesBetween(loc(0, 0), loc(0, 4), 0, true), 20, 0.0001)
	test.ExpectApproximate(t, s.CountFramesBetween(loc(0, 0), loc(0, 4), 3, false), 12, 0.0001)
	test.ExpectApproximate(t, s.FramesPerNote(loc(1, 3), 0, false), 6, 0.0001)
}

func TestPattern(t *testing.T) {
	_, s := newTestSong(t, 1)
	c := s.Channel(chips.Square1)
	pat := patternAt(t, c, 0)

	pat.SetNoteAt(8, song.NewNote(10))
	pat.SetNoteAt(2, song.NewNote(20))
	pat.SetNoteAt(5, song.NewNote(30))
	test.DemandEquality(t, pat.Len(), 3)
	test.ExpectEquality(t, pat.Key(0), 2)
	test.ExpectEquality(t, pat.Key(1), 5)
	test.ExpectEquality(t, pat.Key(2), 8)

	// replace
	pat.SetNoteAt(5, song.NewNote(31))
	test.ExpectEquality(t, pat.Len(), 3)
	test.ExpectEquality(t, pat.NoteAt(5).Value, uint8(31))

	n := pat.GetOrCreateNoteAt(3)
	test.ExpectFailure(t, n.IsValid())
	test.ExpectSuccess(t, n.IsEmpty())
	test.ExpectEquality(t, pat.Len(), 4)
	pat.DeleteEmptyNotes()
	test.ExpectEquality(t, pat.Len(), 3)

	// effect only markers are preserved when asked
	pat.NoteAt(5).SetEffect(song.EffectVolume, 7)
	pat.DeleteNotesBetween(0, 6, true)
	test.ExpectEquality(t, pat.Len(), 2)
	test.ExpectFailure(t, pat.NoteAt(5).IsValid())
	test.ExpectEquality(t, pat.NoteAt(5).Volume(), 7)

	pat.DeleteNotesBetween(0, 16, false)
	test.ExpectFailure(t, pat.HasAnyNotes())

	// nil deletes
	pat.SetNoteAt(1, song.NewNote(1))
	pat.SetNoteAt(1, nil)
	test.ExpectFailure(t, pat.HasAnyNotes())
}

func TestPatternCRC(t *testing.T) {
	_, s := newTestSong(t, 1)
	c := s.Channel(chips.Square1)

	a, err := c.CreatePattern("")
	test.DemandSuccess(t, err)
	b, err := c.CreatePattern("")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, a.Name, "Pattern 1")
	test.ExpectEquality(t, b.Name, "Pattern 2")

	a.SetNoteAt(0, song.NewMusicalNote(49, 4, nil))
	b.SetNoteAt(0, song.NewMusicalNote(49, 4, nil))
	test.ExpectEquality(t, a.ComputeCRC(), b.ComputeCRC())

	b.NoteAt(0).SetEffect(song.EffectVolume, 3)
	test.ExpectInequality(t, a.ComputeCRC(), b.ComputeCRC())

	b.NoteAt(0).ClearEffect(song.EffectVolume)
	test.ExpectEquality(t, a.ComputeCRC(), b.ComputeCRC())

	b.NoteAt(0).Duration = 5
	test.ExpectInequality(t, a.ComputeCRC(), b.ComputeCRC())
}

func TestPatternNames(t *testing.T) {
	_, s := newTestSong(t, 1)
	c := s.Channel(chips.Square1)

	_, err := c.CreatePattern("Intro")
	test.DemandSuccess(t, err)
	_, err = c.CreatePattern("Intro")
	test.ExpectFailure(t, err)

	test.ExpectEquality(t, c.GenerateUniquePatternNameSmart("Intro"), "Intro 1")

	_, err = c.CreatePattern("Verse 9")
	test.DemandSuccess(t, err)
	_, err = c.CreatePattern("Verse 10")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, c.GenerateUniquePatternNameSmart("Verse 9"), "Verse 11")

	p := c.PatternByName("Intro")
	test.ExpectSuccess(t, c.RenamePattern(p, "Intro"))
	test.ExpectFailure(t, c.RenamePattern(p, "Verse 9"))
	test.ExpectSuccess(t, c.RenamePattern(p, "Chorus"))
	test.ExpectEquality(t, p.Name, "Chorus")
}

func TestSupportsEffect(t *testing.T) {
	p := song.NewProject("test")
	test.DemandSuccess(t, p.SetExpansionAudio(chips.ExpansionYM2413.Mask()|chips.ExpansionFds.Mask(), 1))
	s, err := p.CreateSong("")
	test.DemandSuccess(t, err)

	test.ExpectFailure(t, s.Channel(chips.Dpcm).SupportsEffect(song.EffectVolume))
	test.ExpectFailure(t, s.Channel(chips.Noise).SupportsEffect(song.EffectFinePitch))
	test.ExpectSuccess(t, s.Channel(chips.Noise).SupportsEffect(song.EffectDutyCycle))
	test.ExpectSuccess(t, s.Channel(chips.FdsWave).SupportsEffect(song.EffectFdsModDepth))
	test.ExpectFailure(t, s.Channel(chips.Square1).SupportsEffect(song.EffectFdsModDepth))
	test.ExpectFailure(t, s.Channel(chips.Square1).SupportsEffect(song.EffectNoteDelay))
	test.ExpectSuccess(t, s.Channel(chips.YM2413Fm8).SupportsEffect(song.EffectRhythmMode))
	test.ExpectFailure(t, s.Channel(chips.YM2413Fm6).SupportsEffect(song.EffectRhythmMode))

	s.TempoMode = song.TempoFamiTracker
	test.ExpectSuccess(t, s.Channel(chips.Square1).SupportsEffect(song.EffectNoteDelay))

	test.ExpectSuccess(t, s.Channel(chips.Dpcm).SupportsInstrument(nil))
	test.ExpectFailure(t, s.Channel(chips.Square1).SupportsInstrument(nil))

	fm, err := p.CreateInstrument(chips.ExpansionYM2413, "fm")
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, s.Channel(chips.YM2413Fm1).SupportsInstrument(fm))
	test.ExpectFailure(t, s.Channel(chips.FdsWave).SupportsInstrument(fm))

	_, err = p.CreateInstrument(chips.ExpansionVrc7, "vrc7")
	test.ExpectFailure(t, err)
}

func TestDeleteInstrument(t *testing.T) {
	p, s := newTestSong(t, 1)
	inst, err := p.CreateInstrument(chips.ExpansionNone, "lead")
	test.DemandSuccess(t, err)

	pat := patternAt(t, s.Channel(chips.Square1), 0)
	pat.SetNoteAt(0, song.NewMusicalNote(49, 4, inst))

	p.DeleteInstrument(inst)
	test.ExpectEquality(t, len(p.Instruments()), 0)
	test.ExpectSuccess(t, pat.NoteAt(0).Instrument == nil)
}

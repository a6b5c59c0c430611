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
	"math"
	"testing"

	"github.com/jetsetilly/chiptracker/chips"
	"github.com/jetsetilly/chiptracker/song"
	"github.com/jetsetilly/chiptracker/test"
)

func TestIteratorSingle(t *testing.T) {
	_, s := newTestSong(t, 1)
	c := s.Channel(chips.Square1)
	pat := patternAt(t, c, 0)
	pat.SetNoteAt(2, song.NewMusicalNote(49, 3, nil))
	pat.SetNoteAt(5, song.NewMusicalNote(50, 3, nil))
	pat.SetNoteAt(9, song.NewMusicalNote(51, 3, nil))

	it := c.SparseNoteIterator(loc(0, 5), loc(0, 5), song.FilterCutDurationMask)
	test.DemandFailure(t, it.Done())
	test.ExpectEquality(t, it.Location(), loc(0, 5))
	test.ExpectEquality(t, it.Note().Value, uint8(50))
	it.Next()
	test.ExpectSuccess(t, it.Done())

	// no matching note in range
	it = c.SparseNoteIterator(loc(0, 6), loc(0, 8), song.FilterCutDurationMask)
	test.ExpectSuccess(t, it.Done())
}

func TestIteratorAcrossPatterns(t *testing.T) {
	_, s := newTestSong(t, 3)
	c := s.Channel(chips.Square1)

	a := patternAt(t, c, 0)
	a.SetNoteAt(2, song.NewMusicalNote(49, 3, nil))
	a.SetNoteAt(5, song.NewMusicalNote(50, 30, nil))

	// effect only notes do not match the default filter
	a.GetOrCreateNoteAt(7).SetEffect(song.EffectVolume, 4)

	// notes past the end of the pattern are ignored
	a.SetNoteAt(20, song.NewMusicalNote(60, 1, nil))

	b := patternAt(t, c, 2)
	b.SetNoteAt(3, song.NewNote(song.NoteStop))

	type visit struct {
		l song.NoteLocation
		d int
	}
	var visits []visit

	for it := c.SparseNoteIterator(s.StartLocation(), s.EndLocation(), song.FilterCutDurationMask); !it.Done(); it.Next() {
		visits = append(visits, visit{l: it.Location(), d: it.DistanceToNextNote()})
	}

	test.DemandEquality(t, len(visits), 3)
	test.ExpectEquality(t, visits[0], visit{l: loc(0, 2), d: 3})
	test.ExpectEquality(t, visits[1], visit{l: loc(0, 5), d: 30})
	test.ExpectEquality(t, visits[2], visit{l: loc(2, 3), d: 13})

	// volume filter
	it := c.SparseNoteIterator(s.StartLocation(), s.EndLocation(), song.FilterEffectVolume)
	test.DemandFailure(t, it.Done())
	test.ExpectEquality(t, it.Location(), loc(0, 7))
	test.ExpectEquality(t, it.NextLocation(), s.EndLocation())
	it.Next()
	test.ExpectSuccess(t, it.Done())
}

func TestIteratorCutDelay(t *testing.T) {
	_, s := newTestSong(t, 1)
	s.TempoMode = song.TempoFamiTracker
	c := s.Channel(chips.Square1)
	pat := patternAt(t, c, 0)

	pat.SetNoteAt(0, song.NewMusicalNote(49, 10, nil))
	cut := song.NewNote(song.NoteInvalid)
	cut.SetEffect(song.EffectCutDelay, 2)
	pat.SetNoteAt(4, cut)

	it := c.SparseNoteIterator(s.StartLocation(), s.EndLocation(), song.FilterCutDurationMask)
	test.ExpectEquality(t, it.DistanceToNextNote(), 4)
	test.ExpectEquality(t, it.DistanceToNextCut(), 5)

	it.Next()
	test.ExpectEquality(t, it.Location(), loc(0, 4))
	test.ExpectEquality(t, it.DistanceToNextCut(), 1)

	test.ExpectEquality(t, c.DistanceToNextNote(loc(0, 0), song.FilterCutDurationMask, true), 5)
	test.ExpectEquality(t, c.DistanceToNextNote(loc(0, 0), song.FilterCutDurationMask, false), 4)
	test.ExpectEquality(t, c.DistanceToNextNote(loc(0, 4), song.FilterCutDurationMask, false), 12)
}

func TestFindNextNote(t *testing.T) {
	_, s := newTestSong(t, 3)
	c := s.Channel(chips.Square1)

	a := patternAt(t, c, 0)
	a.SetNoteAt(0, song.NewMusicalNote(49, 4, nil))
	a.SetNoteAt(8, song.NewMusicalNote(49, 100, nil))
	a.NoteAt(8).SetEffect(song.EffectVolume, 15)

	b := patternAt(t, c, 2)
	b.SetNoteAt(4, song.NewMusicalNote(49, 4, nil))
	b.GetOrCreateNoteAt(6).SetEffect(song.EffectVolume, 3)

	// duration is shorter than the distance to the next note
	test.ExpectEquality(t, c.FindNextNoteForSlide(loc(0, 0), 256, false), loc(0, 4))
	test.ExpectEquality(t, c.SlideNoteDuration(loc(0, 0)), 4)

	// next note is sooner than the duration
	test.ExpectEquality(t, c.FindNextNoteForSlide(loc(0, 8), 256, false), loc(2, 4))

	// search is limited by the maximum number of notes
	test.ExpectEquality(t, c.FindNextNoteForSlide(loc(0, 8), 10, false), loc(1, 2))

	test.ExpectEquality(t, c.FindNextNoteForVolumeSlide(loc(0, 8), 256), loc(2, 6))
	test.ExpectEquality(t, c.VolumeSlideDuration(loc(0, 8)), 30)
	test.ExpectEquality(t, c.FindNextNoteForVolumeSlide(loc(0, 8), 5), loc(0, 13))
	test.ExpectEquality(t, c.FindNextNoteForVolumeSlide(loc(2, 6), 256), s.EndLocation())
}

func TestFindMusicalNoteAtLocation(t *testing.T) {
	_, s := newTestSong(t, 2)
	c := s.Channel(chips.Square1)

	a := patternAt(t, c, 0)
	a.SetNoteAt(0, song.NewMusicalNote(49, 4, nil))
	a.SetNoteAt(8, song.NewMusicalNote(53, 16, nil))

	n, l := c.FindMusicalNoteAtLocation(loc(0, 2), -1)
	test.DemandSuccess(t, n != nil)
	test.ExpectEquality(t, l, loc(0, 0))

	// past the duration of the first note
	n, _ = c.FindMusicalNoteAtLocation(loc(0, 5), -1)
	test.ExpectSuccess(t, n == nil)

	// note continues into the next pattern
	n, l = c.FindMusicalNoteAtLocation(loc(1, 3), 53)
	test.DemandSuccess(t, n != nil)
	test.ExpectEquality(t, n.Value, uint8(53))
	test.ExpectEquality(t, l, loc(0, 8))

	n, _ = c.FindMusicalNoteAtLocation(loc(1, 3), 49)
	test.ExpectSuccess(t, n == nil)
}

func TestSlideEqualPitch(t *testing.T) {
	_, s := newTestSong(t, 1)
	c := s.Channel(chips.Square1)
	pat := patternAt(t, c, 0)

	n := song.NewMusicalNote(49, 4, nil)
	n.SlideTarget = 49
	pat.SetNoteAt(0, n)

	table := chips.NoteTableFor(chips.Square1, false, 1)
	p, ok := c.ComputeSlideNoteParams(n, loc(0, 0), 0, table, false, true)
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, p.StepSize, 0)
	test.ExpectEquality(t, p.StepSizeFloat, 0.0)
}

func TestSlideParams(t *testing.T) {
	_, s := newTestSong(t, 1)
	c := s.Channel(chips.Square1)
	pat := patternAt(t, c, 0)

	n := song.NewMusicalNote(49, 4, nil)
	n.SlideTarget = 61
	pat.SetNoteAt(0, n)
	pat.SetNoteAt(4, song.NewMusicalNote(50, 4, nil))

	table := chips.NoteTableFor(chips.Square1, false, 1)
	p, ok := c.ComputeSlideNoteParams(n, loc(0, 0), 0, table, false, true)
	test.DemandSuccess(t, ok)

	// slide shift of the square channel is one bit of fraction. four notes
	// of six frames
	delta := (table[49] - table[61]) << 1
	test.ExpectEquality(t, p.Delta, delta)
	test.ExpectEquality(t, p.StepSize, -int(math.Ceil(float64(delta)/24.0)))
	test.ExpectApproximate(t, p.StepSizeFloat, float64(delta)/24.0, 0.0001)

	// without shifts
	p, ok = c.ComputeSlideNoteParams(n, loc(0, 0), 0, table, false, false)
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, p.Delta, table[49]-table[61])
}

func TestSlideNoise(t *testing.T) {
	_, s := newTestSong(t, 1)
	c := s.Channel(chips.Noise)
	pat := patternAt(t, c, 0)

	n := song.NewMusicalNote(10, 8, nil)
	n.SlideTarget = 14
	pat.SetNoteAt(0, n)

	p, ok := c.ComputeSlideNoteParams(n, loc(0, 0), 0, nil, false, true)
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, p.Delta, -64)
	test.ExpectEquality(t, p.StepSize, 2)
	test.ExpectApproximate(t, p.StepSizeFloat, -64.0/48.0, 0.0001)
}

func TestSlideClamp(t *testing.T) {
	_, s := newTestSong(t, 1)
	c := s.Channel(chips.Square1)
	pat := patternAt(t, c, 0)

	// a very large slide over a single note is clamped to a signed byte
	n := song.NewMusicalNote(1, 1, nil)
	n.SlideTarget = 96
	pat.SetNoteAt(0, n)

	table := chips.NoteTableFor(chips.Square1, false, 1)
	p, ok := c.ComputeSlideNoteParams(n, loc(0, 0), 0, table, false, true)
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, p.StepSize, -128)
}

func TestSlideDelays(t *testing.T) {
	_, s := newTestSong(t, 1)
	s.TempoMode = song.TempoFamiTracker
	c := s.Channel(chips.Noise)
	pat := patternAt(t, c, 0)

	n := song.NewMusicalNote(10, 8, nil)
	n.SlideTarget = 11
	n.SetEffect(song.EffectNoteDelay, 2)
	pat.SetNoteAt(0, n)

	next := song.NewMusicalNote(20, 1, nil)
	next.SetEffect(song.EffectNoteDelay, 5)
	next.SetEffect(song.EffectCutDelay, 3)
	pat.SetNoteAt(4, next)

	// four notes of six frames, minus two frames of delay on the note, plus
	// the smaller of the delays on the next note
	p, ok := c.ComputeSlideNoteParams(n, loc(0, 0), 0, nil, false, true)
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, p.Delta, -16)
	test.ExpectApproximate(t, p.StepSizeFloat, -16.0/25.0, 0.0001)

	// a note with a cut delay slides for the length of the cut delay
	cut := song.NewMusicalNote(30, 4, nil)
	cut.SlideTarget = 31
	cut.SetEffect(song.EffectCutDelay, 4)
	pat.SetNoteAt(8, cut)
	p, ok = c.ComputeSlideNoteParams(cut, loc(0, 8), 0, nil, false, true)
	test.DemandSuccess(t, ok)
	test.ExpectApproximate(t, p.StepSizeFloat, -16.0/4.0, 0.0001)
}

func TestVolumeSlide(t *testing.T) {
	_, s := newTestSong(t, 1)
	c := s.Channel(chips.Square1)
	pat := patternAt(t, c, 0)

	n := song.NewMusicalNote(49, 8, nil)
	n.SetEffect(song.EffectVolume, 15)
	n.SetEffect(song.EffectVolumeSlide, 0)
	pat.SetNoteAt(0, n)
	pat.GetOrCreateNoteAt(4).SetEffect(song.EffectVolume, 10)

	p, ok := c.ComputeVolumeSlideNoteParams(n, loc(0, 0), 0, false)
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, p.Delta, 15<<4)
	test.ExpectEquality(t, p.StepSize, -10)
	test.ExpectApproximate(t, p.StepSizeFloat, 0.625, 0.0001)

	n.SetEffect(song.EffectVolumeSlide, 15)
	_, ok = c.ComputeVolumeSlideNoteParams(n, loc(0, 0), 0, false)
	test.ExpectFailure(t, ok)
}

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
	"math/rand/v2"
	"testing"

	"github.com/jetsetilly/chiptracker/chips"
	"github.com/jetsetilly/chiptracker/curated"
	"github.com/jetsetilly/chiptracker/song"
	"github.com/jetsetilly/chiptracker/test"
)

// scanVolume finds the last volume value up to and including the pattern
// position by looking at every note
func scanVolume(c *song.Channel, p int) (int, song.NoteLocation) {
	v := song.EffectDefaultValue(c.Song(), song.EffectVolume)
	l := song.InvalidLocation
	for i := 0; i <= p; i++ {
		pat := c.Instance(i)
		if pat == nil {
			continue
		}
		for k := range pat.Len() {
			key := pat.Key(k)
			if key >= c.Song().PatternLength(i) {
				break
			}
			if n := pat.NoteByPosition(k); n.HasVolume() {
				v = n.Volume()
				l = loc(i, key)
			}
		}
	}
	return v, l
}

// scanLastAttack finds the last musical note with an attack by looking at
// every note. the first musical note is always counted
func scanLastAttack(c *song.Channel, p int) song.NoteLocation {
	l := song.InvalidLocation
	for i := 0; i <= p; i++ {
		pat := c.Instance(i)
		if pat == nil {
			continue
		}
		for k := range pat.Len() {
			key := pat.Key(k)
			if key >= c.Song().PatternLength(i) {
				break
			}
			if n := pat.NoteByPosition(k); n.IsMusical() && (!l.IsValid() || n.HasAttack) {
				l = loc(i, key)
			}
		}
	}
	return l
}

func TestCacheMetamorphic(t *testing.T) {
	const length = 8

	_, s := newTestSong(t, length)
	test.DemandSuccess(t, s.SetPatternCustomSettings(3, 12, 4, nil, song.GroovePadMiddle))
	c := s.Channel(chips.Square1)

	var patterns []*song.Pattern
	for range 3 {
		p, err := c.CreatePattern("")
		test.DemandSuccess(t, err)
		patterns = append(patterns, p)
	}

	rng := rand.New(rand.NewPCG(2600, 2413))

	for i := range length {
		if i == 5 {
			continue
		}
		test.DemandSuccess(t, c.SetInstance(i, patterns[rng.IntN(len(patterns))]))
	}

	for step := range 200 {
		pat := patterns[rng.IntN(len(patterns))]

		switch rng.IntN(4) {
		case 0:
			n := song.NewMusicalNote(uint8(1+rng.IntN(96)), 1+rng.IntN(8), nil)
			n.HasAttack = rng.IntN(3) != 0
			pat.SetNoteAt(rng.IntN(18), n)
		case 1:
			n := pat.GetOrCreateNoteAt(rng.IntN(18))
			n.SetEffect(song.EffectVolume, rng.IntN(16))
		case 2:
			n := song.NewNote(song.NoteStop)
			n.SetEffect(song.EffectCutDelay, rng.IntN(4))
			pat.SetNoteAt(rng.IntN(18), n)
		case 3:
			pat.DeleteNoteAt(rng.IntN(18))
		}

		c.InvalidateCacheForPattern(pat)

		// extend the cache by a random amount so that invalidation happens
		// in the middle of the valid range
		p := rng.IntN(length)
		c.UpdateCache(p)

		for q := range length {
			v, l := c.CachedLastValidEffectValue(q, song.EffectVolume)
			ev, el := scanVolume(c, q)
			test.ExpectEquality(t, v, ev, step, q)
			test.ExpectEquality(t, l, el, step, q)
			test.ExpectEquality(t, c.CachedLastMusicalNoteWithAttackLocation(q), scanLastAttack(c, q), step, q)
		}

		test.ExpectSuccess(t, c.ValidateIntegrity(), step)
	}
}

func TestCacheStale(t *testing.T) {
	_, s := newTestSong(t, 4)
	c := s.Channel(chips.Square1)

	a := patternAt(t, c, 0)
	b := patternAt(t, c, 1)
	test.DemandSuccess(t, c.SetInstance(3, a))

	a.SetNoteAt(0, song.NewMusicalNote(49, 4, nil))
	b.GetOrCreateNoteAt(2).SetEffect(song.EffectVolume, 9)
	c.UpdateCache(3)

	v, l := c.CachedLastValidEffectValue(3, song.EffectVolume)
	test.ExpectEquality(t, v, 9)
	test.ExpectEquality(t, l, loc(1, 2))
	test.ExpectEquality(t, c.CachedFirstNoteIndex(0), 0)
	test.ExpectEquality(t, c.CachedFirstNoteIndex(1), -1)
	test.ExpectEquality(t, c.CachedFirstVolumeIndex(1), 2)

	// a change without invalidation is detected
	a.GetOrCreateNoteAt(5).SetEffect(song.EffectVolume, 3)
	err := c.ValidateIntegrity()
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, song.CacheIntegrity))

	// validation recomputes the cache
	test.ExpectSuccess(t, c.ValidateIntegrity())
	v, l = c.CachedLastValidEffectValue(3, song.EffectVolume)
	test.ExpectEquality(t, v, 3)
	test.ExpectEquality(t, l, loc(3, 5))

	// the effect value at a location includes earlier notes in the pattern
	test.ExpectEquality(t, c.EffectValueAt(loc(1, 1), song.EffectVolume), 3)
	test.ExpectEquality(t, c.EffectValueAt(loc(1, 2), song.EffectVolume), 9)
	test.ExpectEquality(t, c.EffectValueAt(loc(0, 4), song.EffectVolume), 15)
	test.ExpectEquality(t, c.EffectValueAt(loc(0, 4), song.EffectSpeed), song.DefaultFamiTrackerSpeed)
}

func TestCacheInvalidateRange(t *testing.T) {
	_, s := newTestSong(t, 4)
	c := s.Channel(chips.Square1)

	for i := range 4 {
		patternAt(t, c, i)
	}
	c.Instance(2).GetOrCreateNoteAt(0).SetEffect(song.EffectVolume, 4)
	c.UpdateCache(3)

	// deleting notes in pattern 2 invalidates from pattern 2 onwards
	c.DeleteNotesBetween(32, 40, false)
	test.ExpectSuccess(t, c.ValidateIntegrity())
	v, _ := c.CachedLastValidEffectValue(3, song.EffectVolume)
	test.ExpectEquality(t, v, 15)
}

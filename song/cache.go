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
	"sync"

	"github.com/jetsetilly/chiptracker/curated"
)

// cacheEntry is the cumulative state of a channel at the end of a pattern
// position.
type cacheEntry struct {
	// note index of the first note in the pattern that ends the duration of
	// a previous note. not cumulative. -1 if there is no such note
	firstNoteIndex int

	// note index of the first note in the pattern with a volume effect. not
	// cumulative. -1 if there is no such note
	firstVolumeIndex int

	// location of the last musical note with an attack up to and including
	// this pattern
	lastNoteLocation NoteLocation

	// the last value of each effect up to and including this pattern
	lastEffectMask     uint16
	lastEffectValues   [EffectCount]int
	lastEffectLocation [EffectCount]NoteLocation
}

func (e *cacheEntry) reset() {
	e.firstNoteIndex = -1
	e.firstVolumeIndex = -1
	e.lastNoteLocation = InvalidLocation
	e.lastEffectMask = 0
}

// continueFrom copies the cumulative part of the previous entry
func (e *cacheEntry) continueFrom(prev *cacheEntry) {
	e.firstNoteIndex = -1
	e.firstVolumeIndex = -1
	e.lastNoteLocation = prev.lastNoteLocation
	e.lastEffectMask = prev.lastEffectMask
	e.lastEffectValues = prev.lastEffectValues
	e.lastEffectLocation = prev.lastEffectLocation
}

// equal compares two entries. effect values that are not in the effect mask
// are ignored
func (e *cacheEntry) equal(o *cacheEntry) (bool, string) {
	if e.firstNoteIndex != o.firstNoteIndex {
		return false, "first note index"
	}
	if e.firstVolumeIndex != o.firstVolumeIndex {
		return false, "first volume index"
	}
	if e.lastNoteLocation != o.lastNoteLocation {
		return false, "last note location"
	}
	if e.lastEffectMask != o.lastEffectMask {
		return false, "effect mask"
	}
	for i := range EffectCount {
		if e.lastEffectMask&(1<<i) == 0 {
			continue
		}
		if e.lastEffectValues[i] != o.lastEffectValues[i] || e.lastEffectLocation[i] != o.lastEffectLocation[i] {
			return false, fmt.Sprintf("%s effect", i)
		}
	}
	return true, ""
}

// cumulativeCache is an arena of cache entries, one for every song
// position. Entries up to and including maxValid are valid.
type cumulativeCache struct {
	crit     sync.Mutex
	maxValid int
	entries  [MaxLength]cacheEntry
}

// invalidateFrom rolls back the watermark so that the entry for the pattern
// position is no longer valid
func (cc *cumulativeCache) invalidateFrom(p int) {
	cc.crit.Lock()
	defer cc.crit.Unlock()
	cc.maxValid = min(cc.maxValid, p-1)
}

// InvalidateCache invalidates the entire cumulative cache of the channel.
func (c *Channel) InvalidateCache() {
	c.cache.invalidateFrom(0)
}

// InvalidateCacheRange invalidates the cache from the earliest instance of
// any of the patterns found at the song positions between start and end
// inclusive.
func (c *Channel) InvalidateCacheRange(start int, end int) {
	for p := max(start, 0); p <= end && p < MaxLength; p++ {
		if c.cacheWatermark() == -1 {
			return
		}
		if pat := c.instances[p]; pat != nil {
			c.InvalidateCacheForPattern(pat)
		}
	}
}

// InvalidateCacheForPattern invalidates the cache from the earliest instance
// of the pattern. This must be called after any change to the notes of a
// pattern.
func (c *Channel) InvalidateCacheForPattern(pat *Pattern) {
	c.cache.crit.Lock()
	defer c.cache.crit.Unlock()

	for i := 0; i <= c.cache.maxValid; i++ {
		if c.instances[i] == pat {
			c.cache.maxValid = min(i-1, c.cache.maxValid)
			return
		}
	}
}

func (c *Channel) cacheWatermark() int {
	c.cache.crit.Lock()
	defer c.cache.crit.Unlock()
	return c.cache.maxValid
}

// UpdateCache makes sure the cache is valid up to and including the song
// position. The cache is extended from the last valid position one pattern
// at a time.
func (c *Channel) UpdateCache(p int) {
	c.cache.crit.Lock()
	defer c.cache.crit.Unlock()
	c.updateCache(p)
}

// updateCache is the same as UpdateCache() but without the critical section
func (c *Channel) updateCache(p int) {
	p = min(p, MaxLength-1)

	for i := c.cache.maxValid + 1; i <= p; i++ {
		e := &c.cache.entries[i]

		if i > 0 {
			e.continueFrom(&c.cache.entries[i-1])
		} else {
			e.reset()
		}

		pat := c.instances[i]
		if pat == nil {
			continue
		}

		patternLen := c.song.PatternLength(i)

		for k, key := range pat.keys {
			if key >= patternLen {
				break
			}

			n := pat.notes[k]

			if e.firstNoteIndex < 0 && n.MatchesFilter(FilterCutDurationMask) {
				e.firstNoteIndex = key
			}

			if e.firstVolumeIndex < 0 && n.HasVolume() {
				e.firstVolumeIndex = key
			}

			// the first musical note of the song is treated as an attack even
			// if it has no attack
			if n.IsMusical() && (!e.lastNoteLocation.IsValid() || n.HasAttack) {
				e.lastNoteLocation = NoteLocation{PatternIndex: i, NoteIndex: key}
			}

			for fx := range EffectCount {
				if n.HasEffect(fx) {
					e.lastEffectMask |= 1 << fx
					e.lastEffectValues[fx] = n.effects[fx]
					e.lastEffectLocation[fx] = NoteLocation{PatternIndex: i, NoteIndex: key}
				}
			}
		}
	}

	c.cache.maxValid = max(c.cache.maxValid, p)
}

// cacheEntry returns a copy of the cache entry for the song position,
// updating the cache if required
func (c *Channel) cacheEntry(p int) cacheEntry {
	c.cache.crit.Lock()
	defer c.cache.crit.Unlock()
	c.updateCache(p)
	return c.cache.entries[p]
}

// CachedLastValidEffectValue returns the value of the effect at the end of
// the pattern position and the location the value was set. If no note has
// set the effect then the default value and InvalidLocation are returned.
func (c *Channel) CachedLastValidEffectValue(p int, fx Effect) (int, NoteLocation) {
	if p >= 0 && p < MaxLength {
		e := c.cacheEntry(p)
		if e.lastEffectMask&(1<<fx) != 0 {
			return e.lastEffectValues[fx], e.lastEffectLocation[fx]
		}
	}
	return EffectDefaultValue(c.song, fx), InvalidLocation
}

// CachedLastMusicalNoteWithAttackLocation returns the location of the last
// musical note with an attack up to and including the pattern position.
func (c *Channel) CachedLastMusicalNoteWithAttackLocation(p int) NoteLocation {
	if p >= 0 && p < MaxLength {
		return c.cacheEntry(p).lastNoteLocation
	}
	return InvalidLocation
}

// CachedFirstNoteIndex returns the note index of the first note in the
// pattern position that ends a previous note. Returns -1 if there is no such
// note.
func (c *Channel) CachedFirstNoteIndex(p int) int {
	if p >= 0 && p < MaxLength {
		return c.cacheEntry(p).firstNoteIndex
	}
	return -1
}

// CachedFirstVolumeIndex returns the note index of the first note in the
// pattern position with a volume effect. Returns -1 if there is no such note.
func (c *Channel) CachedFirstVolumeIndex(p int) int {
	if p >= 0 && p < MaxLength {
		return c.cacheEntry(p).firstVolumeIndex
	}
	return -1
}

// EffectValueAt returns the value of the effect at the location. Notes at the
// location itself are included.
func (c *Channel) EffectValueAt(loc NoteLocation, fx Effect) int {
	v, _ := c.CachedLastValidEffectValue(loc.PatternIndex-1, fx)

	start := NoteLocation{PatternIndex: loc.PatternIndex}
	for it := c.SparseNoteIterator(start, loc, FilterForEffect(fx)); !it.Done(); it.Next() {
		v = it.Note().EffectValue(fx)
	}

	return v
}

// ValidateIntegrity checks that every pattern instance belongs to the
// channel and that the valid part of the cumulative cache is the same as a
// cache computed from scratch.
func (c *Channel) ValidateIntegrity() error {
	owned := make(map[*Pattern]bool, len(c.patterns))
	for _, p := range c.patterns {
		owned[p] = true
		if p.channel != c {
			return curated.Errorf(InstanceIntegrity, c, -1)
		}
	}
	for i, p := range c.instances {
		if p != nil && !owned[p] {
			return curated.Errorf(InstanceIntegrity, c, i)
		}
	}

	c.cache.crit.Lock()
	defer c.cache.crit.Unlock()

	n := c.cache.maxValid + 1
	if n == 0 {
		return nil
	}

	for i := range n {
		e := &c.cache.entries[i]
		if e.lastNoteLocation.IsValid() {
			note := c.NoteAt(e.lastNoteLocation)
			if note == nil || !note.IsMusical() {
				return curated.Errorf(CacheIntegrity, c, i, "last note is not musical")
			}
		}
		if e.firstNoteIndex >= 0 {
			note := c.instances[i].NoteAt(e.firstNoteIndex)
			if note == nil || !note.MatchesFilter(FilterCutDurationMask) {
				return curated.Errorf(CacheIntegrity, c, i, "first note does not end a note")
			}
		}
	}

	previous := make([]cacheEntry, n)
	copy(previous, c.cache.entries[:n])

	c.cache.maxValid = -1
	c.updateCache(n - 1)

	for i := range n {
		if ok, detail := previous[i].equal(&c.cache.entries[i]); !ok {
			return curated.Errorf(CacheIntegrity, c, i, detail)
		}
	}

	return nil
}

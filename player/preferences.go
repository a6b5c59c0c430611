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

package player

import (
	"github.com/jetsetilly/chiptracker/curated"
	"github.com/jetsetilly/chiptracker/paths"
	"github.com/jetsetilly/chiptracker/prefs"
)

// Preferences defines and collates the preference values used by the player.
type Preferences struct {
	dsk *prefs.Disk

	// play songs at the speed of a PAL machine
	PAL prefs.Bool

	// number of times the loop section of a song is played during an export.
	// a song that has been played to the end stops
	LoopCount prefs.Int

	// the maximum number of frames of any single export. zero means no limit
	MaxFrames prefs.Int

	// only record register writes that change the value of a register
	TrackChangesOnly prefs.Bool
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type.
func NewPreferences() (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	p.LoopCount.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 1 {
			return curated.Errorf("player: loop count must be at least one (%d)", v)
		}
		return nil
	})

	p.MaxFrames.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 0 {
			return curated.Errorf("player: max frames cannot be negative (%d)", v)
		}
		return nil
	})

	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("player.pal", &p.PAL)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("player.loopCount", &p.LoopCount)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("player.maxFrames", &p.MaxFrames)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("player.trackChangesOnly", &p.TrackChangesOnly)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Load(true)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all settings to default values.
func (p *Preferences) SetDefaults() {
	_ = p.PAL.Set(false)
	_ = p.LoopCount.Set(1)
	_ = p.MaxFrames.Set(60 * 60 * 10)
	_ = p.TrackChangesOnly.Set(true)
}

// Load current player preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// Save current player preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// Options returns the session options described by the preferences.
func (p *Preferences) Options() Options {
	return Options{
		PAL:         p.PAL.Get().(bool),
		LoopCount:   p.LoopCount.Get().(int),
		MaxFrames:   p.MaxFrames.Get().(int),
		ChangesOnly: p.TrackChangesOnly.Get().(bool),
	}
}

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

package sfx

import (
	"sync"

	"github.com/jetsetilly/chiptracker/paths"
	"github.com/jetsetilly/chiptracker/prefs"
)

// Preferences defines and collates the preference values used when exporting
// sound effects. The values are used when the SFX mode flags are not given.
type Preferences struct {
	dsk *prefs.Disk

	// assembler syntax of the exported source
	Format prefs.String

	// machines that the effects are encoded for
	Mode *prefs.Generic

	crit sync.Mutex
	mode Mode
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type.
func NewPreferences() (*Preferences, error) {
	p := &Preferences{}

	p.Format.SetHookPre(func(v prefs.Value) error {
		_, err := ParseFormat(v.(string))
		return err
	})

	p.Mode = prefs.NewGeneric(
		func(s string) error {
			m := ModeNTSC
			if s != "" {
				var err error
				m, err = ParseMode(s)
				if err != nil {
					return err
				}
			}
			p.crit.Lock()
			defer p.crit.Unlock()
			p.mode = m
			return nil
		},
		func() string {
			p.crit.Lock()
			defer p.crit.Unlock()
			return p.mode.String()
		},
	)

	p.SetDefaults()

	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("sfx.format", &p.Format)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("sfx.mode", p.Mode)
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
	_ = p.Format.Set(FormatCA65.String())
	_ = p.Mode.Set(ModeNTSC.String())
}

// Save current sound effect preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// Settings returns the format and mode described by the preferences.
func (p *Preferences) Settings() (Format, Mode) {
	f, _ := ParseFormat(p.Format.String())
	p.crit.Lock()
	defer p.crit.Unlock()
	return f, p.mode
}

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

	"github.com/jetsetilly/chiptracker/chips"
	"github.com/jetsetilly/chiptracker/curated"
	"github.com/jetsetilly/chiptracker/instrument"
	"github.com/jetsetilly/chiptracker/logger"
	"github.com/jetsetilly/chiptracker/notifications"
)

// Project is the top level container of songs, instruments and arpeggios.
type Project struct {
	Name string

	songs       []*Song
	instruments []*instrument.Instrument
	arpeggios   []*instrument.Arpeggio

	expansionMask   chips.ExpansionMask
	numN163Channels int

	nextID int

	// notifications of repaired data are sent to Notify if it is not nil.
	// notifications are always logged
	Notify notifications.Notify
}

// NewProject is the preferred method of initialisation for the Project type.
func NewProject(name string) *Project {
	return &Project{
		Name:            name,
		numN163Channels: 1,
	}
}

// GenerateUniqueID returns an ID that has not been used in the project.
func (p *Project) GenerateUniqueID() int {
	p.nextID++
	return p.nextID
}

// ExpansionMask returns the expansion chips used by the project.
func (p *Project) ExpansionMask() chips.ExpansionMask {
	return p.expansionMask
}

// N163ChannelCount returns the number of N163 channels used by the project.
func (p *Project) N163ChannelCount() int {
	return p.numN163Channels
}

// SetExpansionAudio changes the expansion chips used by the project. Every
// song has channels added or removed to match. Instruments for expansions
// that are no longer used are deleted.
func (p *Project) SetExpansionAudio(mask chips.ExpansionMask, numN163Channels int) error {
	if mask>>(chips.ExpansionCount-1) != 0 {
		return curated.Errorf(UnsupportedExpansion, mask)
	}
	if mask.Has(chips.ExpansionN163) {
		numN163Channels = min(max(numN163Channels, 1), chips.MaxN163Channels)
	} else {
		numN163Channels = 1
	}

	p.expansionMask = mask
	p.numN163Channels = numN163Channels

	for _, s := range p.songs {
		s.createChannels()
	}

	for i := 0; i < len(p.instruments); {
		inst := p.instruments[i]
		if inst.Expansion != chips.ExpansionNone && !mask.Has(inst.Expansion) {
			p.DeleteInstrument(inst)
		} else {
			i++
		}
	}

	return nil
}

// Songs returns the songs in the project.
func (p *Project) Songs() []*Song {
	return p.songs
}

// Song returns the song with the name or nil if there is no such song.
func (p *Project) Song(name string) *Song {
	for _, s := range p.songs {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// CreateSong adds a new song to the project. If the name is empty then a
// unique name is generated.
func (p *Project) CreateSong(name string) (*Song, error) {
	if name == "" {
		for i := 1; ; i++ {
			name = fmt.Sprintf("Song %d", i)
			if p.Song(name) == nil {
				break
			}
		}
	} else if p.Song(name) != nil {
		return nil, curated.Errorf(SongNameNotUnique, name)
	}

	s := newSong(p, p.GenerateUniqueID(), name)
	p.songs = append(p.songs, s)
	return s, nil
}

// Instruments returns the instruments in the project.
func (p *Project) Instruments() []*instrument.Instrument {
	return p.instruments
}

// Instrument returns the instrument with the name or nil if there is no such
// instrument.
func (p *Project) Instrument(name string) *instrument.Instrument {
	for _, inst := range p.instruments {
		if inst.Name == name {
			return inst
		}
	}
	return nil
}

// CreateInstrument adds a new instrument to the project. The expansion must
// be used by the project.
func (p *Project) CreateInstrument(expansion chips.Expansion, name string) (*instrument.Instrument, error) {
	if expansion != chips.ExpansionNone && !p.expansionMask.Has(expansion) {
		return nil, curated.Errorf(UnsupportedExpansion, expansion)
	}
	if p.Instrument(name) != nil {
		return nil, curated.Errorf(InstrumentNotUnique, name)
	}
	inst := instrument.NewInstrument(p.GenerateUniqueID(), expansion, name)
	p.instruments = append(p.instruments, inst)
	return inst, nil
}

// DeleteInstrument removes the instrument from the project. Notes that refer
// to the instrument no longer refer to any instrument.
func (p *Project) DeleteInstrument(inst *instrument.Instrument) {
	for i, v := range p.instruments {
		if v == inst {
			p.instruments = append(p.instruments[:i], p.instruments[i+1:]...)
			break
		}
	}

	for _, s := range p.songs {
		for _, c := range s.channels {
			for _, pat := range c.patterns {
				for _, n := range pat.notes {
					if n.Instrument == inst {
						n.Instrument = nil
					}
				}
			}
			c.InvalidateCache()
		}
	}
}

// Arpeggios returns the arpeggios in the project.
func (p *Project) Arpeggios() []*instrument.Arpeggio {
	return p.arpeggios
}

// CreateArpeggio adds a new arpeggio to the project.
func (p *Project) CreateArpeggio(name string) *instrument.Arpeggio {
	arp := instrument.NewArpeggio(p.GenerateUniqueID(), name)
	p.arpeggios = append(p.arpeggios, arp)
	return arp
}

// DeleteArpeggio removes the arpeggio from the project. Notes that refer to
// the arpeggio no longer refer to any arpeggio.
func (p *Project) DeleteArpeggio(arp *instrument.Arpeggio) {
	for i, v := range p.arpeggios {
		if v == arp {
			p.arpeggios = append(p.arpeggios[:i], p.arpeggios[i+1:]...)
			break
		}
	}

	for _, s := range p.songs {
		for _, c := range s.channels {
			for _, pat := range c.patterns {
				for _, n := range pat.notes {
					if n.Arpeggio == arp {
						n.Arpeggio = nil
					}
				}
			}
		}
	}
}

// ClampEnvelopes repairs the envelopes of every instrument in the project.
func (p *Project) ClampEnvelopes() {
	for _, inst := range p.instruments {
		inst.ClampEnvelopes(p.Notify)
	}
}

// warn logs the detail and forwards the notice to the notifier
func (p *Project) warn(notice notifications.Notice, detail string) {
	logger.Log(logger.Allow, "song", detail)
	if p.Notify != nil {
		_ = p.Notify.Notify(notice, detail)
	}
}

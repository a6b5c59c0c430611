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

package tracker

import (
	"fmt"
	"sync"

	"github.com/jetsetilly/chiptracker/hardware/apu"
	"github.com/jetsetilly/chiptracker/logger"
)

// Entry is a single register write recorded by the Tracker.
type Entry struct {
	Write apu.Write

	// human readable name of the register. writes to the data port of an
	// indirectly addressed chip are named after the internal register
	Name string
}

func (e Entry) String() string {
	return fmt.Sprintf("%d: %s = %#02x", e.Write.Frame, e.Name, e.Write.Value)
}

// Tracker implements the apu.Sink interface and keeps a history of register
// writes. Writes are forwarded to the next sink, if there is one.
type Tracker struct {
	crit sync.Mutex

	entries []Entry

	// the maximum number of entries. zero means no limit
	maxEntries int

	// only record writes that change the value of a register
	changedOnly bool

	// previous register values so we can compare to see whether a register
	// has changed and thus worth recording
	shadow map[uint16]uint8

	// shadow values of internal registers keyed by address port and internal
	// register number
	internal map[uint32]uint8

	// the selected internal register for each address port and whether the
	// address write has been forwarded yet
	selected map[uint16]selection

	lastFrame int

	next apu.Sink
}

type selection struct {
	reg       uint8
	forwarded bool
}

// NewTracker is the preferred method of initialisation for the Tracker type.
// The next argument can be nil.
func NewTracker(changedOnly bool, maxEntries int, next apu.Sink) *Tracker {
	return &Tracker{
		entries:     make([]Entry, 0, 1024),
		maxEntries:  maxEntries,
		changedOnly: changedOnly,
		shadow:      make(map[uint16]uint8),
		internal:    make(map[uint32]uint8),
		selected:    make(map[uint16]selection),
		next:        next,
	}
}

// RegisterWrite implements the apu.Sink interface.
func (tr *Tracker) RegisterWrite(w apu.Write) {
	tr.crit.Lock()
	defer tr.crit.Unlock()

	// frame numbers must never decrease
	if w.Frame < tr.lastFrame {
		logger.Logf(logger.Allow, "tracker", "write to %s in frame %d after frame %d", apu.RegisterName(w.Register), w.Frame, tr.lastFrame)
		w.Frame = tr.lastFrame
	}
	tr.lastFrame = w.Frame

	// address port writes are held until the data write so that an
	// unchanged internal register can be dropped along with its address
	if apu.IsAddressPort(w.Register) {
		tr.selected[w.Register] = selection{reg: w.Value}
		if !tr.changedOnly {
			tr.record(w, apu.RegisterName(w.Register))
			tr.selected[w.Register] = selection{reg: w.Value, forwarded: true}
		}
		return
	}

	if addrPort, ok := addressPortFor(w.Register); ok {
		sel, ok := tr.selected[addrPort]
		if !ok {
			// data write without a selected register
			tr.record(w, apu.RegisterName(w.Register))
			return
		}

		key := uint32(addrPort)<<8 | uint32(sel.reg)
		if prev, ok := tr.internal[key]; ok && prev == w.Value && tr.changedOnly {
			return
		}
		tr.internal[key] = w.Value

		if !sel.forwarded {
			tr.record(apu.Write{Frame: w.Frame, Register: addrPort, Value: sel.reg}, apu.RegisterName(addrPort))
			tr.selected[addrPort] = selection{reg: sel.reg, forwarded: true}
		}
		tr.record(w, apu.InternalRegisterName(addrPort, sel.reg))
		return
	}

	if prev, ok := tr.shadow[w.Register]; ok && prev == w.Value && tr.changedOnly {
		return
	}
	tr.shadow[w.Register] = w.Value

	tr.record(w, apu.RegisterName(w.Register))
}

func (tr *Tracker) record(w apu.Write, name string) {
	tr.entries = append(tr.entries, Entry{Write: w, Name: name})
	if tr.maxEntries > 0 && len(tr.entries) > tr.maxEntries {
		tr.entries = tr.entries[1:]
	}
	if tr.next != nil {
		tr.next.RegisterWrite(w)
	}
}

func addressPortFor(dataPort uint16) (uint16, bool) {
	switch dataPort {
	case apu.FMRegData:
		return apu.FMRegSel, true
	case apu.N163Data:
		return apu.N163Addr, true
	case apu.S5BData:
		return apu.S5BAddr, true
	}
	return 0, false
}

// Copy makes a copy of the Tracker entries.
func (tr *Tracker) Copy() []Entry {
	tr.crit.Lock()
	defer tr.crit.Unlock()
	e := make([]Entry, len(tr.entries))
	copy(e, tr.entries)
	return e
}

// Writes returns the recorded register writes.
func (tr *Tracker) Writes() apu.Writes {
	tr.crit.Lock()
	defer tr.crit.Unlock()
	w := make(apu.Writes, len(tr.entries))
	for i, e := range tr.entries {
		w[i] = e.Write
	}
	return w
}

// Len returns the number of recorded entries.
func (tr *Tracker) Len() int {
	tr.crit.Lock()
	defer tr.crit.Unlock()
	return len(tr.entries)
}

// LastFrame returns the frame number of the most recent write.
func (tr *Tracker) LastFrame() int {
	tr.crit.Lock()
	defer tr.crit.Unlock()
	return tr.lastFrame
}

// Reset forgets every recorded entry and every shadow register value.
func (tr *Tracker) Reset() {
	tr.crit.Lock()
	defer tr.crit.Unlock()
	tr.entries = tr.entries[:0]
	clear(tr.shadow)
	clear(tr.internal)
	clear(tr.selected)
	tr.lastFrame = 0
}

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

package notifications

import (
	"fmt"
	"sync"
)

// Notice describes data that has been repaired or truncated. These
// notifications can be used to present additional information to the user
type Notice string

// List of defined notifications.
const (
	// a stop note did not agree with the duration of the note before it. the
	// stop note is kept as an orphan stop note
	NotifyInconsistentDuration Notice = "NotifyInconsistentDuration"

	// a stop note was found at the start of the loop section. the stop note
	// is kept so that the loop does not continue a note from the end of the
	// song
	NotifyLoopPointStop Notice = "NotifyLoopPointStop"

	// a pattern instance needed different release or stop notes to other
	// instances of the same pattern and so the pattern has been duplicated
	NotifyPatternDuplicated Notice = "NotifyPatternDuplicated"

	// an envelope value was outside of the valid range for the envelope type
	NotifyEnvelopeClamped Notice = "NotifyEnvelopeClamped"

	// a sound effect stream was longer than the maximum length allowed
	NotifySoundEffectTruncated Notice = "NotifySoundEffectTruncated"
)

// Notify is used to communicate a Notice to the caller. The detail string is
// a human readable description of the specific object that was affected.
type Notify interface {
	Notify(notice Notice, detail string) error
}

// Entry is a single notice and its detail.
type Entry struct {
	Notice Notice
	Detail string
}

func (e Entry) String() string {
	return fmt.Sprintf("%s: %s", e.Notice, e.Detail)
}

// Collector implements the Notify interface and keeps a list of every notice
// it receives. It is safe to use from more than one goroutine.
type Collector struct {
	crit    sync.Mutex
	entries []Entry
}

// Notify implements the Notify interface.
func (c *Collector) Notify(notice Notice, detail string) error {
	c.crit.Lock()
	defer c.crit.Unlock()
	c.entries = append(c.entries, Entry{Notice: notice, Detail: detail})
	return nil
}

// Entries returns a copy of the notices received so far.
func (c *Collector) Entries() []Entry {
	c.crit.Lock()
	defer c.crit.Unlock()
	e := make([]Entry, len(c.entries))
	copy(e, c.entries)
	return e
}

// Count returns the number of times a specific notice has been received.
func (c *Collector) Count(notice Notice) int {
	c.crit.Lock()
	defer c.crit.Unlock()
	var n int
	for _, e := range c.entries {
		if e.Notice == notice {
			n++
		}
	}
	return n
}

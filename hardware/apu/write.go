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

package apu

import (
	"fmt"
	"strings"
)

// Write is a single register write. Frame is the number of the frame in
// which the write happened. The first frame is frame zero.
type Write struct {
	Frame    int
	Register uint16
	Value    uint8
}

func (w Write) String() string {
	return fmt.Sprintf("%d: %s = %#02x", w.Frame, RegisterName(w.Register), w.Value)
}

// Sink implementations receive register writes in the order they were made.
// The frame number of successive writes never decreases.
type Sink interface {
	RegisterWrite(w Write)
}

// Writes is a simple implementation of the Sink interface that keeps every
// write in a slice.
type Writes []Write

// RegisterWrite implements the Sink interface.
func (w *Writes) RegisterWrite(wr Write) {
	*w = append(*w, wr)
}

func (w Writes) String() string {
	s := strings.Builder{}
	for _, wr := range w {
		s.WriteString(wr.String())
		s.WriteString("\n")
	}
	return s.String()
}

// Frame returns the writes for a single frame.
func (w Writes) Frame(frame int) Writes {
	var f Writes
	for _, wr := range w {
		if wr.Frame == frame {
			f = append(f, wr)
		}
	}
	return f
}

// Internal resolves the writes to an indirectly addressed chip. Every pair of
// address and data port writes is converted to a single write with the
// internal register in the Register field. Writes to other registers are
// dropped.
func (w Writes) Internal(addrPort uint16) Writes {
	dataPort, ok := DataPortFor(addrPort)
	if !ok {
		return nil
	}

	var f Writes
	var sel uint8
	for _, wr := range w {
		switch wr.Register {
		case addrPort:
			sel = wr.Value
		case dataPort:
			f = append(f, Write{Frame: wr.Frame, Register: uint16(sel), Value: wr.Value})
		}
	}
	return f
}

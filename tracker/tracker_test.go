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

package tracker_test

import (
	"testing"

	"github.com/jetsetilly/chiptracker/chips"
	"github.com/jetsetilly/chiptracker/hardware/apu"
	"github.com/jetsetilly/chiptracker/tracker"
	"github.com/jetsetilly/chiptracker/test"
)

func TestChangedOnly(t *testing.T) {
	var next apu.Writes
	tr := tracker.NewTracker(true, 0, &next)

	tr.RegisterWrite(apu.Write{Frame: 0, Register: apu.Pulse1Vol, Value: 0x3f})
	tr.RegisterWrite(apu.Write{Frame: 1, Register: apu.Pulse1Vol, Value: 0x3f})
	tr.RegisterWrite(apu.Write{Frame: 2, Register: apu.Pulse1Vol, Value: 0x3e})
	test.ExpectEquality(t, tr.Len(), 2)
	test.ExpectEquality(t, len(next), 2)

	// unchanged internal registers are dropped along with the address write
	tr.RegisterWrite(apu.Write{Frame: 3, Register: apu.FMRegSel, Value: 0x10})
	tr.RegisterWrite(apu.Write{Frame: 3, Register: apu.FMRegData, Value: 0x55})
	tr.RegisterWrite(apu.Write{Frame: 4, Register: apu.FMRegSel, Value: 0x10})
	tr.RegisterWrite(apu.Write{Frame: 4, Register: apu.FMRegData, Value: 0x55})
	tr.RegisterWrite(apu.Write{Frame: 5, Register: apu.FMRegSel, Value: 0x20})
	tr.RegisterWrite(apu.Write{Frame: 5, Register: apu.FMRegData, Value: 0x55})

	entries := tr.Copy()
	test.DemandEquality(t, len(entries), 6)
	test.ExpectEquality(t, entries[2].Name, "FM_REG_SEL")
	test.ExpectEquality(t, entries[3].Name, "FM_LO_1")
	test.ExpectEquality(t, entries[4].Write.Value, uint8(0x20))
	test.ExpectEquality(t, entries[5].Name, "FM_HI_1")
	test.ExpectEquality(t, entries[5].String(), "5: FM_HI_1 = 0x55")

	// the internal writes are recoverable from the forwarded writes
	internal := next.Internal(apu.FMRegSel)
	test.DemandEquality(t, len(internal), 2)
	test.ExpectEquality(t, internal[1].Register, uint16(0x20))
}

func TestAllWrites(t *testing.T) {
	tr := tracker.NewTracker(false, 0, nil)
	for range 3 {
		tr.RegisterWrite(apu.Write{Frame: 0, Register: apu.S5BAddr, Value: 0x08})
		tr.RegisterWrite(apu.Write{Frame: 0, Register: apu.S5BData, Value: 0x0f})
	}
	test.ExpectEquality(t, tr.Len(), 6)
}

func TestMaxEntries(t *testing.T) {
	tr := tracker.NewTracker(false, 4, nil)
	for i := range 10 {
		tr.RegisterWrite(apu.Write{Frame: i, Register: apu.NoiseVol, Value: uint8(i)})
	}
	entries := tr.Copy()
	test.DemandEquality(t, len(entries), 4)
	test.ExpectEquality(t, entries[0].Write.Frame, 6)
}

func TestFrameMonotonicity(t *testing.T) {
	tr := tracker.NewTracker(false, 0, nil)
	tr.RegisterWrite(apu.Write{Frame: 5, Register: apu.TriLo, Value: 1})
	tr.RegisterWrite(apu.Write{Frame: 3, Register: apu.TriLo, Value: 2})
	w := tr.Writes()
	test.DemandEquality(t, len(w), 2)
	test.ExpectEquality(t, w[1].Frame, 5)
	test.ExpectEquality(t, tr.LastFrame(), 5)

	tr.Reset()
	test.ExpectEquality(t, tr.Len(), 0)
	test.ExpectEquality(t, tr.LastFrame(), 0)
}

func TestMusicalNote(t *testing.T) {
	period := chips.NoteTableFor(chips.Square1, false, 1)[49]
	test.ExpectEquality(t, tracker.LookupMusicalNote(chips.Square1, period, false, 1), "C4")
	test.ExpectEquality(t, tracker.LookupMusicalNote(chips.Noise, 3, false, 1), "---")

	tr := tracker.NewTracker(true, 0, nil)
	_, ok := tr.MusicalNote(apu.Pulse1Lo, false)
	test.ExpectFailure(t, ok)

	tr.RegisterWrite(apu.Write{Frame: 0, Register: apu.Pulse1Lo, Value: uint8(period & 0xff)})
	tr.RegisterWrite(apu.Write{Frame: 0, Register: apu.Pulse1Hi, Value: uint8(period >> 8)})
	n, ok := tr.MusicalNote(apu.Pulse1Hi, false)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, n, "C4")

	_, ok = tr.MusicalNote(apu.NoiseVol, false)
	test.ExpectFailure(t, ok)
}

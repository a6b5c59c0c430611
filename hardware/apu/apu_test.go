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

package apu_test

import (
	"testing"

	"github.com/jetsetilly/chiptracker/hardware/apu"
	"github.com/jetsetilly/chiptracker/test"
)

func TestRegisterNames(t *testing.T) {
	test.ExpectEquality(t, apu.RegisterName(apu.Pulse1Vol), "PL1_VOL")
	test.ExpectEquality(t, apu.RegisterName(apu.FdsWaveStart+3), "FDS_WAVE_03")
	test.ExpectEquality(t, apu.RegisterName(0x1234), "0x1234")

	test.ExpectEquality(t, apu.InternalRegisterName(apu.FMRegSel, 0x21), "FM_HI_2")
	test.ExpectEquality(t, apu.InternalRegisterName(apu.FMRegSel, apu.FMRhythmMode), "FM_RHYTHM")
	test.ExpectEquality(t, apu.InternalRegisterName(apu.N163Addr, apu.N163ChannelReg(1, apu.N163Vol)), "N163_CH2_7")
	test.ExpectEquality(t, apu.InternalRegisterName(apu.S5BAddr, 0x09), "S5B_VOL_2")
}

func TestPorts(t *testing.T) {
	test.ExpectSuccess(t, apu.IsAddressPort(apu.FMRegSel))
	test.ExpectFailure(t, apu.IsAddressPort(apu.FMRegData))

	d, ok := apu.DataPortFor(apu.N163Addr)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, d, apu.N163Data)

	_, ok = apu.DataPortFor(apu.Pulse1Vol)
	test.ExpectFailure(t, ok)
}

func TestInternalWrites(t *testing.T) {
	var w apu.Writes
	w.RegisterWrite(apu.Write{Frame: 0, Register: apu.FMRegSel, Value: 0x10})
	w.RegisterWrite(apu.Write{Frame: 0, Register: apu.FMRegData, Value: 0xab})
	w.RegisterWrite(apu.Write{Frame: 0, Register: apu.Pulse1Vol, Value: 0x30})
	w.RegisterWrite(apu.Write{Frame: 1, Register: apu.FMRegSel, Value: 0x20})
	w.RegisterWrite(apu.Write{Frame: 1, Register: apu.FMRegData, Value: 0x3c})

	i := w.Internal(apu.FMRegSel)
	test.DemandEquality(t, len(i), 2)
	test.ExpectEquality(t, i[0], apu.Write{Frame: 0, Register: 0x10, Value: 0xab})
	test.ExpectEquality(t, i[1], apu.Write{Frame: 1, Register: 0x20, Value: 0x3c})

	test.ExpectEquality(t, len(w.Frame(1)), 2)
}

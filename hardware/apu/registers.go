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

// Register addresses of the 2A03.
const (
	Pulse1Vol   uint16 = 0x4000
	Pulse1Sweep uint16 = 0x4001
	Pulse1Lo    uint16 = 0x4002
	Pulse1Hi    uint16 = 0x4003
	Pulse2Vol   uint16 = 0x4004
	Pulse2Sweep uint16 = 0x4005
	Pulse2Lo    uint16 = 0x4006
	Pulse2Hi    uint16 = 0x4007
	TriLinear   uint16 = 0x4008
	TriLo       uint16 = 0x400a
	TriHi       uint16 = 0x400b
	NoiseVol    uint16 = 0x400c
	NoiseLo     uint16 = 0x400e
	NoiseHi     uint16 = 0x400f
	DmcFreq     uint16 = 0x4010
	DmcRaw      uint16 = 0x4011
	DmcStart    uint16 = 0x4012
	DmcLen      uint16 = 0x4013
	SndChn      uint16 = 0x4015
)

// Register addresses of the VRC6.
const (
	Vrc6Pulse1Vol uint16 = 0x9000
	Vrc6Pulse1Lo  uint16 = 0x9001
	Vrc6Pulse1Hi  uint16 = 0x9002
	Vrc6Pulse2Vol uint16 = 0xa000
	Vrc6Pulse2Lo  uint16 = 0xa001
	Vrc6Pulse2Hi  uint16 = 0xa002
	Vrc6SawVol    uint16 = 0xb000
	Vrc6SawLo     uint16 = 0xb001
	Vrc6SawHi     uint16 = 0xb002
)

// Ports of the FM chips. The YM2413 sits in the same slot as the VRC7 and is
// reached through the same ports.
const (
	FMRegSel  uint16 = 0x9010
	FMRegData uint16 = 0x9030
)

// Internal registers of the FM chips. The per-channel registers are offset by
// the channel index.
const (
	FMPatch      uint8 = 0x00
	FMRhythmMode uint8 = 0x0e
	FMLo         uint8 = 0x10
	FMHi         uint8 = 0x20
	FMVol        uint8 = 0x30

	// frequency and volume registers used by the YM2413 rhythm voices
	FMRhythmLo   uint8 = 0x16
	FMRhythmHi   uint8 = 0x26
	FMDrumBD     uint8 = 0x36
	FMDrumSDHH   uint8 = 0x37
	FMDrumTOMCYM uint8 = 0x38
)

// FMPatchLength is the number of internal registers used by a custom patch.
const FMPatchLength = 8

// Bits of the FM period high register.
const (
	FMKeyOn   uint8 = 0x10
	FMSustain uint8 = 0x20
)

// Bits of the YM2413 rhythm register.
const (
	RhythmEnable  uint8 = 0x20
	RhythmBD      uint8 = 0x10
	RhythmSD      uint8 = 0x08
	RhythmTOM     uint8 = 0x04
	RhythmTCY     uint8 = 0x02
	RhythmHH      uint8 = 0x01
	RhythmKeyBits uint8 = 0x1f
)

// Register addresses of the FDS.
const (
	FdsWaveStart uint16 = 0x4040
	FdsVolEnv    uint16 = 0x4080
	FdsFreqLo    uint16 = 0x4082
	FdsFreqHi    uint16 = 0x4083
	FdsModEnv    uint16 = 0x4084
	FdsModCount  uint16 = 0x4085
	FdsModFreqLo uint16 = 0x4086
	FdsModFreqHi uint16 = 0x4087
	FdsModTable  uint16 = 0x4088
	FdsWaveCtl   uint16 = 0x4089
	FdsEnvSpeed  uint16 = 0x408a

	FdsWaveLength = 64
	FdsModLength  = 32
)

// Register addresses of the MMC5.
const (
	Mmc5Pulse1Vol uint16 = 0x5000
	Mmc5Pulse1Lo  uint16 = 0x5002
	Mmc5Pulse1Hi  uint16 = 0x5003
	Mmc5Pulse2Vol uint16 = 0x5004
	Mmc5Pulse2Lo  uint16 = 0x5006
	Mmc5Pulse2Hi  uint16 = 0x5007
	Mmc5SndChn    uint16 = 0x5015
)

// Ports and internal registers of the N163.
const (
	N163Addr uint16 = 0xf800
	N163Data uint16 = 0x4800

	// internal register block of the first channel. each channel is 8 bytes
	// below the previous one
	N163RegBase uint8 = 0x78
	N163RegSize uint8 = 8

	N163FreqLo   uint8 = 0
	N163PhaseLo  uint8 = 1
	N163FreqMid  uint8 = 2
	N163PhaseMid uint8 = 3
	N163FreqHi   uint8 = 4
	N163PhaseHi  uint8 = 5
	N163WavePos  uint8 = 6
	N163Vol      uint8 = 7

	// bit 7 of the address port increments the address after every data
	// write
	N163AutoIncrement uint8 = 0x80
)

// N163ChannelReg returns the internal register for the N163 channel.
func N163ChannelReg(channel int, reg uint8) uint8 {
	return N163RegBase - uint8(channel)*N163RegSize + reg
}

// Ports and internal registers of the S5B.
const (
	S5BAddr uint16 = 0xc000
	S5BData uint16 = 0xe000

	S5BToneLo uint8 = 0x00
	S5BToneHi uint8 = 0x01
	S5BMixer  uint8 = 0x07
	S5BVol    uint8 = 0x08
)

// IsAddressPort returns true if the register address is the address port of
// an indirectly addressed chip.
func IsAddressPort(reg uint16) bool {
	switch reg {
	case FMRegSel, N163Addr, S5BAddr:
		return true
	}
	return false
}

// DataPortFor returns the data port that is paired with the address port.
// Returns false if the register is not an address port.
func DataPortFor(addr uint16) (uint16, bool) {
	switch addr {
	case FMRegSel:
		return FMRegData, true
	case N163Addr:
		return N163Data, true
	case S5BAddr:
		return S5BData, true
	}
	return 0, false
}

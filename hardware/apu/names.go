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

import "fmt"

var registerNames = map[uint16]string{
	Pulse1Vol:   "PL1_VOL",
	Pulse1Sweep: "PL1_SWEEP",
	Pulse1Lo:    "PL1_LO",
	Pulse1Hi:    "PL1_HI",
	Pulse2Vol:   "PL2_VOL",
	Pulse2Sweep: "PL2_SWEEP",
	Pulse2Lo:    "PL2_LO",
	Pulse2Hi:    "PL2_HI",
	TriLinear:   "TRI_LINEAR",
	TriLo:       "TRI_LO",
	TriHi:       "TRI_HI",
	NoiseVol:    "NOISE_VOL",
	NoiseLo:     "NOISE_LO",
	NoiseHi:     "NOISE_HI",
	DmcFreq:     "DMC_FREQ",
	DmcRaw:      "DMC_RAW",
	DmcStart:    "DMC_START",
	DmcLen:      "DMC_LEN",
	SndChn:      "SND_CHN",

	Vrc6Pulse1Vol: "VRC6_PL1_VOL",
	Vrc6Pulse1Lo:  "VRC6_PL1_LO",
	Vrc6Pulse1Hi:  "VRC6_PL1_HI",
	Vrc6Pulse2Vol: "VRC6_PL2_VOL",
	Vrc6Pulse2Lo:  "VRC6_PL2_LO",
	Vrc6Pulse2Hi:  "VRC6_PL2_HI",
	Vrc6SawVol:    "VRC6_SAW_VOL",
	Vrc6SawLo:     "VRC6_SAW_LO",
	Vrc6SawHi:     "VRC6_SAW_HI",

	FMRegSel:  "FM_REG_SEL",
	FMRegData: "FM_REG_DATA",

	FdsVolEnv:    "FDS_VOL_ENV",
	FdsFreqLo:    "FDS_FREQ_LO",
	FdsFreqHi:    "FDS_FREQ_HI",
	FdsModEnv:    "FDS_MOD_ENV",
	FdsModCount:  "FDS_MOD_COUNT",
	FdsModFreqLo: "FDS_MOD_FREQ_LO",
	FdsModFreqHi: "FDS_MOD_FREQ_HI",
	FdsModTable:  "FDS_MOD_TABLE",
	FdsWaveCtl:   "FDS_WAVE_CTL",
	FdsEnvSpeed:  "FDS_ENV_SPEED",

	Mmc5Pulse1Vol: "MMC5_PL1_VOL",
	Mmc5Pulse1Lo:  "MMC5_PL1_LO",
	Mmc5Pulse1Hi:  "MMC5_PL1_HI",
	Mmc5Pulse2Vol: "MMC5_PL2_VOL",
	Mmc5Pulse2Lo:  "MMC5_PL2_LO",
	Mmc5Pulse2Hi:  "MMC5_PL2_HI",
	Mmc5SndChn:    "MMC5_SND_CHN",

	N163Addr: "N163_ADDR",
	N163Data: "N163_DATA",

	S5BAddr: "S5B_ADDR",
	S5BData: "S5B_DATA",
}

// RegisterName returns a human readable name for the register address. An
// address with no name is returned as a hex string.
func RegisterName(reg uint16) string {
	if n, ok := registerNames[reg]; ok {
		return n
	}
	if reg >= FdsWaveStart && reg < FdsWaveStart+FdsWaveLength {
		return fmt.Sprintf("FDS_WAVE_%02d", reg-FdsWaveStart)
	}
	return fmt.Sprintf("%#04x", reg)
}

// InternalRegisterName returns a human readable name for an internal register
// of an indirectly addressed chip. The chip is identified by its address
// port.
func InternalRegisterName(addrPort uint16, reg uint8) string {
	switch addrPort {
	case FMRegSel:
		switch {
		case reg < FMPatchLength:
			return fmt.Sprintf("FM_PATCH_%d", reg)
		case reg == FMRhythmMode:
			return "FM_RHYTHM"
		case reg >= FMLo && reg < FMLo+9:
			return fmt.Sprintf("FM_LO_%d", reg-FMLo+1)
		case reg >= FMHi && reg < FMHi+9:
			return fmt.Sprintf("FM_HI_%d", reg-FMHi+1)
		case reg >= FMVol && reg < FMVol+9:
			return fmt.Sprintf("FM_VOL_%d", reg-FMVol+1)
		}
	case N163Addr:
		if reg >= 0x40 && reg < 0x80 {
			ch := int(N163RegBase+N163RegSize-1-reg) / int(N163RegSize)
			return fmt.Sprintf("N163_CH%d_%d", ch+1, reg%N163RegSize)
		}
		return fmt.Sprintf("N163_RAM_%02x", reg)
	case S5BAddr:
		switch {
		case reg < 6:
			if reg&1 == 0 {
				return fmt.Sprintf("S5B_TONE_LO_%d", reg/2+1)
			}
			return fmt.Sprintf("S5B_TONE_HI_%d", reg/2+1)
		case reg == S5BMixer:
			return "S5B_MIXER"
		case reg >= S5BVol && reg < S5BVol+3:
			return fmt.Sprintf("S5B_VOL_%d", reg-S5BVol+1)
		}
	}
	return fmt.Sprintf("%#02x", reg)
}

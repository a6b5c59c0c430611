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

package channelstate

import "github.com/jetsetilly/chiptracker/hardware/apu"

// the percussion voices and pairs of voices that a rhythm channel can play
type drumVoice int

const (
	drumBass drumVoice = iota
	drumSnare
	drumHiHat
	drumTom
	drumCymbal
	drumBassSnare
	drumSnareHiHat
	drumTomCymbal
)

// the percussion registers only allow a coarse choice of pitch
type pitchClass int

const (
	pitchLow pitchClass = iota
	pitchMid
	pitchHigh
)

func pitchClassFor(noteValue int) pitchClass {
	octave := (noteValue - 1) / 12
	switch {
	case octave <= 2:
		return pitchLow
	case octave <= 4:
		return pitchMid
	}
	return pitchHigh
}

// the percussion registers only allow a coarse choice of volume
type volumeLevel int

const (
	volumeLoud volumeLevel = iota
	volumeMedium
	volumeSoft
)

// returns false if the volume is silent
func volumeLevelFor(volume int) (volumeLevel, bool) {
	switch {
	case volume >= 12:
		return volumeLoud, true
	case volume >= 6:
		return volumeMedium, true
	case volume >= 1:
		return volumeSoft, true
	}
	return volumeLoud, false
}

type regValue struct {
	reg   uint8
	value uint8
}

type rhythmKey struct {
	voice drumVoice
	pitch pitchClass
	level volumeLevel
}

// the frequency and volume writes for a combination of voice, pitch and
// volume. the write to the key register is not part of the entry because the
// key register is shared by all the rhythm channels of the chip
type rhythmEntry struct {
	keys   uint8
	writes []regValue
}

// the frequency settings for the percussion voices recommended by the YM2413
// application manual ($16=$20 $26=$05, $17=$50 $27=$05, $18=$c0 $28=$01). the
// mid pitch class uses the recommended block
type drumFrequency struct {
	lo    uint8
	block int
}

var drumFrequencies = [3]drumFrequency{
	{lo: 0x20, block: 2},
	{lo: 0x50, block: 2},
	{lo: 0xc0, block: 0},
}

// a volume nibble in one of the three drum volume registers
type drumVolume struct {
	reg   uint8
	shift uint8
}

type drumRegs struct {
	keys    uint8
	freq    []int
	volumes []drumVolume
}

var (
	volumeBass   = drumVolume{reg: apu.FMDrumBD}
	volumeSnare  = drumVolume{reg: apu.FMDrumSDHH}
	volumeHiHat  = drumVolume{reg: apu.FMDrumSDHH, shift: 4}
	volumeTom    = drumVolume{reg: apu.FMDrumTOMCYM, shift: 4}
	volumeCymbal = drumVolume{reg: apu.FMDrumTOMCYM}
)

// bass drum is in rhythm channel zero. snare drum and high hat are in channel
// one. tom and cymbal are in channel two
var drumVoices = map[drumVoice]drumRegs{
	drumBass:       {keys: 0x10, freq: []int{0}, volumes: []drumVolume{volumeBass}},
	drumSnare:      {keys: 0x08, freq: []int{1}, volumes: []drumVolume{volumeSnare}},
	drumHiHat:      {keys: 0x01, freq: []int{1}, volumes: []drumVolume{volumeHiHat}},
	drumTom:        {keys: 0x04, freq: []int{2}, volumes: []drumVolume{volumeTom}},
	drumCymbal:     {keys: 0x02, freq: []int{2}, volumes: []drumVolume{volumeCymbal}},
	drumBassSnare:  {keys: 0x18, freq: []int{0, 1}, volumes: []drumVolume{volumeBass, volumeSnare}},
	drumSnareHiHat: {keys: 0x09, freq: []int{1}, volumes: []drumVolume{volumeSnare, volumeHiHat}},
	drumTomCymbal:  {keys: 0x06, freq: []int{2}, volumes: []drumVolume{volumeTom, volumeCymbal}},
}

// attenuation in 3dB steps for each volume level
var drumAttenuation = [...]uint8{
	volumeLoud:   0,
	volumeMedium: 4,
	volumeSoft:   8,
}

// the combinations that can be played. anything else is silent
var rhythmSupport = []rhythmKey{
	{drumBass, pitchLow, volumeLoud},
	{drumBass, pitchLow, volumeMedium},
	{drumBass, pitchMid, volumeLoud},
	{drumBass, pitchMid, volumeMedium},
	{drumBass, pitchMid, volumeSoft},
	{drumBass, pitchHigh, volumeMedium},
	{drumSnare, pitchMid, volumeLoud},
	{drumSnare, pitchMid, volumeMedium},
	{drumSnare, pitchMid, volumeSoft},
	{drumSnare, pitchHigh, volumeLoud},
	{drumSnare, pitchHigh, volumeMedium},
	{drumHiHat, pitchMid, volumeSoft},
	{drumHiHat, pitchHigh, volumeLoud},
	{drumHiHat, pitchHigh, volumeMedium},
	{drumHiHat, pitchHigh, volumeSoft},
	{drumTom, pitchMid, volumeLoud},
	{drumTom, pitchMid, volumeMedium},
	{drumTom, pitchHigh, volumeLoud},
	{drumCymbal, pitchHigh, volumeLoud},
	{drumCymbal, pitchHigh, volumeMedium},
	{drumCymbal, pitchHigh, volumeSoft},
	{drumBassSnare, pitchLow, volumeLoud},
	{drumBassSnare, pitchMid, volumeLoud},
	{drumBassSnare, pitchMid, volumeMedium},
	{drumSnareHiHat, pitchMid, volumeMedium},
	{drumSnareHiHat, pitchHigh, volumeLoud},
	{drumSnareHiHat, pitchHigh, volumeMedium},
	{drumTomCymbal, pitchMid, volumeLoud},
	{drumTomCymbal, pitchHigh, volumeMedium},
}

var rhythmTable = buildRhythmTable()

func buildRhythmTable() map[rhythmKey]*rhythmEntry {
	tab := make(map[rhythmKey]*rhythmEntry, len(rhythmSupport))
	for _, k := range rhythmSupport {
		tab[k] = newRhythmEntry(k)
	}
	return tab
}

func newRhythmEntry(k rhythmKey) *rhythmEntry {
	v := drumVoices[k.voice]
	e := &rhythmEntry{keys: v.keys}

	for _, ch := range v.freq {
		fr := drumFrequencies[ch]
		block := fr.block + int(k.pitch) - int(pitchMid)
		e.writes = append(e.writes,
			regValue{apu.FMRhythmLo + uint8(ch), fr.lo},
			regValue{apu.FMRhythmHi + uint8(ch), uint8(block&0x07)<<1 | 0x01},
		)
	}

	// the unused nibbles of the snare and tom registers are fully attenuated.
	// the upper nibble of the bass drum register is unused by the chip
	atten := drumAttenuation[k.level]
	for _, vol := range v.volumes {
		n := len(e.writes) - 1
		if n < 0 || e.writes[n].reg != vol.reg {
			value := uint8(0xff)
			if vol.reg == apu.FMDrumBD {
				value = 0x00
			}
			e.writes = append(e.writes, regValue{vol.reg, value})
			n++
		}
		e.writes[n].value = e.writes[n].value&^(0x0f<<vol.shift) | atten<<vol.shift
	}

	return e
}

// RhythmKeys is the key register of the YM2413 percussion voices. The three
// rhythm channels of a chip must share the same RhythmKeys instance.
type RhythmKeys struct {
	channel [3]uint8
}

// NewRhythmKeys is the preferred method of initialisation for the RhythmKeys
// type.
func NewRhythmKeys() *RhythmKeys {
	return &RhythmKeys{}
}

func (r *RhythmKeys) set(ch int, keys uint8) {
	r.channel[ch] = keys
}

// the value of the key register with rhythm mode enabled
func (r *RhythmKeys) value() uint8 {
	return apu.RhythmEnable | r.keyed()
}

func (r *RhythmKeys) keyed() uint8 {
	var k uint8
	for _, c := range r.channel {
		k |= c
	}
	return k
}

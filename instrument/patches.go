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

package instrument

// PatchInfo describes a built-in patch of an FM chip.
type PatchInfo struct {
	Name string
	Data [8]uint8
}

// Patch numbers of the VRC7. Patch zero is the custom patch. The custom patch
// occupies registers that are shared by all channels of the chip.
const (
	Vrc7Custom uint8 = iota
	Vrc7Bell
	Vrc7Guitar
	Vrc7Piano
	Vrc7Flute
	Vrc7Clarinet
	Vrc7RattlingBell
	Vrc7Trumpet
	Vrc7ReedOrgan
	Vrc7SoftBell
	Vrc7Xylophone
	Vrc7Vibraphone
	Vrc7Brass
	Vrc7BassGuitar
	Vrc7Synthesizer
	Vrc7Chorus
)

// Vrc7Patches is the table of built-in VRC7 patches.
var Vrc7Patches = [...]PatchInfo{
	{"Custom", [8]uint8{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}},
	{"Bell", [8]uint8{0x03, 0x21, 0x05, 0x06, 0xe8, 0x81, 0x42, 0x27}},
	{"Guitar", [8]uint8{0x13, 0x41, 0x14, 0x0d, 0xd8, 0xf6, 0x23, 0x12}},
	{"Piano", [8]uint8{0x11, 0x11, 0x08, 0x08, 0xfa, 0xb2, 0x20, 0x12}},
	{"Flute", [8]uint8{0x31, 0x61, 0x0c, 0x07, 0xa8, 0x64, 0x61, 0x27}},
	{"Clarinet", [8]uint8{0x32, 0x21, 0x1e, 0x06, 0xe1, 0x76, 0x01, 0x28}},
	{"RattlingBell", [8]uint8{0x02, 0x01, 0x06, 0x00, 0xa3, 0xe2, 0xf4, 0xf4}},
	{"Trumpet", [8]uint8{0x21, 0x61, 0x1d, 0x07, 0x82, 0x81, 0x11, 0x07}},
	{"ReedOrgan", [8]uint8{0x23, 0x21, 0x22, 0x17, 0xa2, 0x72, 0x01, 0x17}},
	{"SoftBell", [8]uint8{0x35, 0x11, 0x25, 0x00, 0x40, 0x73, 0x72, 0x01}},
	{"Xylophone", [8]uint8{0xb5, 0x01, 0x0f, 0x0f, 0xa8, 0xa5, 0x51, 0x02}},
	{"Vibraphone", [8]uint8{0x17, 0xc1, 0x24, 0x07, 0xf8, 0xf8, 0x22, 0x12}},
	{"Brass", [8]uint8{0x71, 0x23, 0x11, 0x06, 0x65, 0x74, 0x18, 0x16}},
	{"BassGuitar", [8]uint8{0x01, 0x02, 0xd3, 0x05, 0xc9, 0x95, 0x03, 0x02}},
	{"Synthesizer", [8]uint8{0x61, 0x63, 0x0c, 0x00, 0x94, 0xc0, 0x33, 0xf6}},
	{"Chorus", [8]uint8{0x21, 0x72, 0x0d, 0x00, 0xc1, 0xd5, 0x56, 0x06}},
}

// Patch numbers of the YM2413. Patch zero is the custom patch. Patches from
// YM2413HighHat onwards are the rhythm voices.
const (
	YM2413Custom uint8 = iota
	YM2413Violin
	YM2413Guitar
	YM2413Piano
	YM2413Flute
	YM2413Clarinet
	YM2413Oboe
	YM2413Trumpet
	YM2413Organ
	YM2413Horn
	YM2413Synthesizer
	YM2413Harpsichord
	YM2413Vibraphone
	YM2413SynthBass
	YM2413AcousticBass
	YM2413ElectricGuitar
	YM2413HighHat
	YM2413Cymbal
	YM2413Toms
	YM2413SnareDrum
	YM2413BassDrum
)

// YM2413Patches is the table of built-in YM2413 patches. The rhythm voices
// have no register data because they are fixed in the chip.
var YM2413Patches = [...]PatchInfo{
	{"Custom", [8]uint8{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}},
	{"Violin", [8]uint8{0x71, 0x61, 0x1e, 0x17, 0xd0, 0x78, 0x00, 0x17}},
	{"Guitar", [8]uint8{0x13, 0x41, 0x1a, 0x0d, 0xd8, 0xf7, 0x23, 0x13}},
	{"Piano", [8]uint8{0x13, 0x01, 0x99, 0x00, 0xf2, 0xd4, 0x21, 0x23}},
	{"Flute", [8]uint8{0x11, 0x61, 0x0e, 0x07, 0x8d, 0x64, 0x70, 0x27}},
	{"Clarinet", [8]uint8{0x32, 0x21, 0x1e, 0x06, 0xe1, 0x76, 0x01, 0x28}},
	{"Oboe", [8]uint8{0x31, 0x22, 0x16, 0x05, 0xe0, 0x71, 0x00, 0x18}},
	{"Trumpet", [8]uint8{0x21, 0x61, 0x1d, 0x07, 0x82, 0x81, 0x11, 0x07}},
	{"Organ", [8]uint8{0x33, 0x21, 0x2d, 0x13, 0xb0, 0x70, 0x00, 0x07}},
	{"Horn", [8]uint8{0x61, 0x61, 0x1b, 0x06, 0x64, 0x65, 0x10, 0x17}},
	{"Synthesizer", [8]uint8{0x41, 0x61, 0x0b, 0x18, 0x85, 0xf0, 0x81, 0x07}},
	{"Harpsichord", [8]uint8{0x33, 0x01, 0x83, 0x11, 0xea, 0xef, 0x10, 0x04}},
	{"Vibraphone", [8]uint8{0x17, 0xc1, 0x24, 0x07, 0xf8, 0xf8, 0x22, 0x12}},
	{"Synth Bass", [8]uint8{0x61, 0x50, 0x0c, 0x05, 0xd2, 0xf5, 0x40, 0x42}},
	{"Acoustic Bass", [8]uint8{0x01, 0x01, 0x55, 0x03, 0xe4, 0x90, 0x03, 0x02}},
	{"Electric Guitar", [8]uint8{0x41, 0x41, 0x89, 0x03, 0xf1, 0xe4, 0xc0, 0x13}},
	{"High Hat", [8]uint8{}},
	{"Cymbal", [8]uint8{}},
	{"Toms", [8]uint8{}},
	{"Snare Drum", [8]uint8{}},
	{"Bass Drum", [8]uint8{}},
}

// IsYM2413RhythmPatch returns true if the patch number is one of the rhythm
// voices.
func IsYM2413RhythmPatch(patch uint8) bool {
	return patch >= YM2413HighHat && patch <= YM2413BassDrum
}

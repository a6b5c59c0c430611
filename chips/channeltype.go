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

package chips

import (
	"fmt"
	"slices"
)

// ChannelType identifies a voice on one of the sound chips.
type ChannelType int

// List of valid ChannelType values.
const (
	Square1 ChannelType = iota
	Square2
	Triangle
	Noise
	Dpcm
	Vrc6Square1
	Vrc6Square2
	Vrc6Saw
	Vrc7Fm1
	Vrc7Fm2
	Vrc7Fm3
	Vrc7Fm4
	Vrc7Fm5
	Vrc7Fm6
	FdsWave
	Mmc5Square1
	Mmc5Square2
	Mmc5Dpcm
	N163Wave1
	N163Wave2
	N163Wave3
	N163Wave4
	N163Wave5
	N163Wave6
	N163Wave7
	N163Wave8
	S5BSquare1
	S5BSquare2
	S5BSquare3
	YM2413Fm1
	YM2413Fm2
	YM2413Fm3
	YM2413Fm4
	YM2413Fm5
	YM2413Fm6
	YM2413Fm7
	YM2413Fm8
	YM2413Fm9
	ChannelTypeCount

	// the first channel type that belongs to an expansion chip
	ExpansionAudioStart = Vrc6Square1
)

// the number of channels in the base APU
const baseChannelCount = 5

type channelInfo struct {
	name      string
	shortName string
	expansion Expansion
	index     int
}

var channelInfos = [ChannelTypeCount]channelInfo{
	{"Square 1", "Square1", ExpansionNone, 0},
	{"Square 2", "Square2", ExpansionNone, 1},
	{"Triangle", "Triangle", ExpansionNone, 2},
	{"Noise", "Noise", ExpansionNone, 3},
	{"DPCM", "DPCM", ExpansionNone, 4},
	{"Square 1", "VRC6Square1", ExpansionVrc6, 0},
	{"Square 2", "VRC6Square2", ExpansionVrc6, 1},
	{"Saw", "VRC6Saw", ExpansionVrc6, 2},
	{"FM 1", "VRC7FM1", ExpansionVrc7, 0},
	{"FM 2", "VRC7FM2", ExpansionVrc7, 1},
	{"FM 3", "VRC7FM3", ExpansionVrc7, 2},
	{"FM 4", "VRC7FM4", ExpansionVrc7, 3},
	{"FM 5", "VRC7FM5", ExpansionVrc7, 4},
	{"FM 6", "VRC7FM6", ExpansionVrc7, 5},
	{"FDS", "FDS", ExpansionFds, 0},
	{"Square 1", "MMC5Square1", ExpansionMmc5, 0},
	{"Square 2", "MMC5Square2", ExpansionMmc5, 1},
	{"DPCM", "MMC5DPCM", ExpansionMmc5, 2},
	{"Wave 1", "N163Wave1", ExpansionN163, 0},
	{"Wave 2", "N163Wave2", ExpansionN163, 1},
	{"Wave 3", "N163Wave3", ExpansionN163, 2},
	{"Wave 4", "N163Wave4", ExpansionN163, 3},
	{"Wave 5", "N163Wave5", ExpansionN163, 4},
	{"Wave 6", "N163Wave6", ExpansionN163, 5},
	{"Wave 7", "N163Wave7", ExpansionN163, 6},
	{"Wave 8", "N163Wave8", ExpansionN163, 7},
	{"Square 1", "S5BSquare1", ExpansionS5B, 0},
	{"Square 2", "S5BSquare2", ExpansionS5B, 1},
	{"Square 3", "S5BSquare3", ExpansionS5B, 2},
	{"FM 1", "YM2413FM1", ExpansionYM2413, 0},
	{"FM 2", "YM2413FM2", ExpansionYM2413, 1},
	{"FM 3", "YM2413FM3", ExpansionYM2413, 2},
	{"FM 4", "YM2413FM4", ExpansionYM2413, 3},
	{"FM 5", "YM2413FM5", ExpansionYM2413, 4},
	{"FM 6", "YM2413FM6", ExpansionYM2413, 5},
	{"FM 7", "YM2413FM7", ExpansionYM2413, 6},
	{"FM 8", "YM2413FM8", ExpansionYM2413, 7},
	{"FM 9", "YM2413FM9", ExpansionYM2413, 8},
}

// Valid returns true if the value is a known channel type.
func (ct ChannelType) Valid() bool {
	return ct >= 0 && ct < ChannelTypeCount
}

func (ct ChannelType) String() string {
	if !ct.Valid() {
		return fmt.Sprintf("unknown channel (%d)", int(ct))
	}
	return channelInfos[ct].name
}

// ShortName returns a name for the channel type that is unique and contains
// no spaces.
func (ct ChannelType) ShortName() string {
	if !ct.Valid() {
		return ""
	}
	return channelInfos[ct].shortName
}

// NameWithExpansion returns the name of the channel followed by the short
// name of the expansion in brackets. Channels of the base APU have no suffix.
func (ct ChannelType) NameWithExpansion() string {
	s := ct.String()
	if e := ct.Expansion(); e != ExpansionNone {
		s = fmt.Sprintf("%s (%s)", s, e.ShortName())
	}
	return s
}

// Expansion returns the chip the channel type belongs to.
func (ct ChannelType) Expansion() Expansion {
	if !ct.Valid() {
		return ExpansionNone
	}
	return channelInfos[ct].expansion
}

// ExpansionChannelIndex returns the index of the channel within its chip.
func (ct ChannelType) ExpansionChannelIndex() int {
	if !ct.Valid() {
		return -1
	}
	return channelInfos[ct].index
}

// IsExpansion returns true if the channel type does not belong to the base
// APU.
func (ct ChannelType) IsExpansion() bool {
	return ct >= ExpansionAudioStart
}

// IsActive returns true if the channel exists in a project with the
// specified expansions and number of N163 channels. The MMC5 DPCM channel is
// never active.
func (ct ChannelType) IsActive(mask ExpansionMask, numN163Channels int) bool {
	if !ct.Valid() || ct == Mmc5Dpcm {
		return false
	}
	e := ct.Expansion()
	if !mask.Has(e) {
		return false
	}
	if e == ExpansionN163 {
		return ct.ExpansionChannelIndex() < numN163Channels
	}
	return true
}

// Index returns the position of the channel type in the list of channels
// for a project with the specified expansions. The order of expansions in
// the list is VRC6, VRC7, YM2413, FDS, MMC5, N163, S5B.
//
// The result for a channel type that is not active in the project is
// meaningless.
func (ct ChannelType) Index(mask ExpansionMask, numN163Channels int) int {
	if ct < ExpansionAudioStart {
		return int(ct)
	}

	e := ct.Expansion()
	idx := baseChannelCount + ct.ExpansionChannelIndex()

	order := []struct {
		exp   Expansion
		count int
	}{
		{ExpansionVrc6, 3},
		{ExpansionVrc7, 6},
		{ExpansionYM2413, 9},
		{ExpansionFds, 1},

		// the MMC5 DPCM channel is never used
		{ExpansionMmc5, 2},

		{ExpansionN163, numN163Channels},
	}

	for _, o := range order {
		if e == o.exp {
			return idx
		}
		if mask.Has(o.exp) {
			idx += o.count
		}
	}

	return idx
}

// ChannelTypeFromShortName returns the ChannelType for the short name. The
// boolean is false if the name is not recognised.
func ChannelTypeFromShortName(name string) (ChannelType, bool) {
	i := slices.IndexFunc(channelInfos[:], func(c channelInfo) bool {
		return c.shortName == name
	})
	if i < 0 {
		return 0, false
	}
	return ChannelType(i), true
}

// ChannelsForExpansionMask returns the channel types that are active for the
// expansions and number of N163 channels. The channels are returned in
// ChannelType order.
func ChannelsForExpansionMask(mask ExpansionMask, numN163Channels int) []ChannelType {
	var channels []ChannelType
	for ct := range ChannelTypeCount {
		if ct.IsActive(mask, numN163Channels) {
			channels = append(channels, ct)
		}
	}
	return channels
}

// ChannelCountForExpansionMask returns the number of channels used by a
// project with the specified expansions. The MMC5 DPCM channel is not counted.
func ChannelCountForExpansionMask(mask ExpansionMask, numN163Channels int) int {
	count := baseChannelCount
	if mask.Has(ExpansionVrc6) {
		count += 3
	}
	if mask.Has(ExpansionVrc7) {
		count += 6
	}
	if mask.Has(ExpansionFds) {
		count += 1
	}
	if mask.Has(ExpansionMmc5) {
		count += 2
	}
	if mask.Has(ExpansionN163) {
		count += numN163Channels
	}
	if mask.Has(ExpansionS5B) {
		count += 3
	}
	if mask.Has(ExpansionYM2413) {
		count += 9
	}
	return count
}

// ChannelMask is a bit mask of channel types. Used to address a group of
// channels in a single message.
type ChannelMask uint64

// Bit returns the ChannelMask bit for the channel type.
func (ct ChannelType) Bit() ChannelMask {
	return 1 << uint(ct)
}

// Has returns true if the channel type is in the mask.
func (m ChannelMask) Has(ct ChannelType) bool {
	return m&ct.Bit() != 0
}

// MaskForRange returns a ChannelMask with all channel types from first to
// last inclusive.
func MaskForRange(first ChannelType, last ChannelType) ChannelMask {
	var m ChannelMask
	for ct := first; ct <= last; ct++ {
		m |= ct.Bit()
	}
	return m
}

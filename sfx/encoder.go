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

package sfx

import (
	"fmt"

	"github.com/jetsetilly/chiptracker/hardware/apu"
	"github.com/jetsetilly/chiptracker/logger"
	"github.com/jetsetilly/chiptracker/notifications"
)

// MaxLength is the maximum number of bytes in a stream, not including the
// terminating zero.
const MaxLength = 255

// the longest run of empty frames that can be encoded in one byte
const maxEmptyFrames = 127

// index of each 2A03 register in the sound engine's register buffer. a zero
// means the register is not used by sound effects
var registerMap = [...]uint8{0x80, 0, 0x81, 0x82, 0x83, 0, 0x84, 0x85, 0x86, 0, 0x87, 0x88, 0x89, 0, 0x8a}

// Encoder implements the apu.Sink interface and encodes the writes to the
// 2A03 tone channels as a sound effect stream.
type Encoder struct {
	name string

	stream []byte

	// shadow of the 2A03 registers. -1 means the register has never been
	// written
	regs [len(registerMap)]int

	volume [4]int

	// the stream is cut at lastZeroVolume if the effect ends in silence
	volumeAllZero  bool
	lastZeroVolume int

	lastChangeFrame int
	lastFrame       int
}

// NewEncoder is the preferred method of initialisation for the Encoder type.
// The name is used in warning messages.
func NewEncoder(name string) *Encoder {
	enc := &Encoder{
		name:           name,
		volumeAllZero:  true,
		lastZeroVolume: -1,
	}

	for i := range enc.regs {
		enc.regs[i] = -1
	}

	// the state of the registers when the sound engine starts an effect
	enc.regs[apu.Pulse1Vol-apu.Pulse1Vol] = 0x30
	enc.regs[apu.Pulse2Vol-apu.Pulse1Vol] = 0x30
	enc.regs[apu.TriLinear-apu.Pulse1Vol] = 0x80
	enc.regs[apu.NoiseVol-apu.Pulse1Vol] = 0x30

	return enc
}

func (enc *Encoder) emptyFrames(n int) {
	for n > 0 {
		enc.stream = append(enc.stream, uint8(min(n, maxEmptyFrames)))
		n -= maxEmptyFrames
	}
}

// RegisterWrite implements the apu.Sink interface.
func (enc *Encoder) RegisterWrite(w apu.Write) {
	enc.lastFrame = max(enc.lastFrame, w.Frame)

	if w.Register < apu.Pulse1Vol || w.Register > apu.NoiseLo {
		return
	}

	idx := w.Register - apu.Pulse1Vol
	if registerMap[idx] == 0 {
		return
	}

	if enc.regs[idx] == int(w.Value) {
		return
	}

	if w.Frame != enc.lastChangeFrame {
		enc.emptyFrames(w.Frame - enc.lastChangeFrame)
	}

	switch w.Register {
	case apu.Pulse1Vol:
		enc.volume[0] = int(w.Value & 0x0f)
	case apu.Pulse2Vol:
		enc.volume[1] = int(w.Value & 0x0f)
	case apu.TriLinear:
		enc.volume[2] = int(w.Value & 0x7f)
	case apu.NoiseVol:
		enc.volume[3] = int(w.Value & 0x0f)
	}

	silent := enc.volume == [4]int{}
	if !enc.volumeAllZero && silent {
		enc.volumeAllZero = true
		enc.lastZeroVolume = len(enc.stream)
	} else if enc.volumeAllZero && !silent {
		enc.volumeAllZero = false
	}

	enc.stream = append(enc.stream, registerMap[idx], w.Value)
	enc.regs[idx] = int(w.Value)
	enc.lastChangeFrame = w.Frame
}

// Finish completes the stream and returns it. The returned stream includes
// the terminating zero. The notifier can be nil.
func (enc *Encoder) Finish(notify notifications.Notify) []byte {
	stream := enc.stream

	if !enc.volumeAllZero {
		enc.emptyFrames(enc.lastFrame - enc.lastChangeFrame)
		stream = enc.stream
	} else if enc.lastZeroVolume >= 0 {
		stream = stream[:enc.lastZeroVolume]
	} else {
		// the effect never made a sound
		stream = stream[:0]
	}

	if len(stream) > MaxLength {
		detail := fmt.Sprintf("effect %s was longer than %d bytes (%d) and was truncated", enc.name, MaxLength+1, len(stream))
		logger.Log(logger.Allow, "sfx", detail)
		if notify != nil {
			_ = notify.Notify(notifications.NotifySoundEffectTruncated, detail)
		}
		stream = stream[:MaxLength]
	}

	out := make([]byte, len(stream), len(stream)+1)
	copy(out, stream)
	return append(out, 0)
}

// Encode is a convenience function that encodes a list of writes.
func Encode(name string, writes apu.Writes, notify notifications.Notify) []byte {
	enc := NewEncoder(name)
	for _, w := range writes {
		enc.RegisterWrite(w)
	}
	return enc.Finish(notify)
}

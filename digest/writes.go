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

package digest

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"

	"github.com/jetsetilly/chiptracker/hardware/apu"
)

// the number of bytes used to encode a single write in the buffer
const writeSize = 7

// the length of the buffer. writes are added to the buffer until it is full
// and then the digest is computed
const writesBufferLength = sha1.Size + writeSize*1024

// the previous digest value is stored at the beginning of the buffer so that
// every digest depends on every write that came before it
const writesBufferStart = sha1.Size

// Writes implements the apu.Sink interface.
type Writes struct {
	digest   [sha1.Size]byte
	buffer   []uint8
	bufferCt int

	// every write is forwarded to next if it is not nil
	next apu.Sink
}

// NewWrites is the preferred method of initialisation for the Writes type.
// The next argument can be nil.
func NewWrites(next apu.Sink) *Writes {
	dig := &Writes{
		next:     next,
		buffer:   make([]uint8, writesBufferLength),
		bufferCt: writesBufferStart,
	}
	return dig
}

func (dig *Writes) String() string {
	return dig.Hash()
}

// Hash implements the Digest interface. Writes that have not yet been
// flushed are included in the hash.
func (dig *Writes) Hash() string {
	if dig.bufferCt == writesBufferStart {
		return fmt.Sprintf("%x", dig.digest)
	}
	return fmt.Sprintf("%x", sha1.Sum(dig.buffer[:dig.bufferCt]))
}

// ResetDigest implements the Digest interface.
func (dig *Writes) ResetDigest() {
	clear(dig.digest[:])
	clear(dig.buffer[:writesBufferStart])
	dig.bufferCt = writesBufferStart
}

// RegisterWrite implements the apu.Sink interface.
func (dig *Writes) RegisterWrite(w apu.Write) {
	b := dig.buffer[dig.bufferCt : dig.bufferCt+writeSize]
	binary.LittleEndian.PutUint32(b, uint32(w.Frame))
	binary.LittleEndian.PutUint16(b[4:], w.Register)
	b[6] = w.Value

	dig.bufferCt += writeSize
	if dig.bufferCt >= writesBufferLength {
		dig.flush()
	}

	if dig.next != nil {
		dig.next.RegisterWrite(w)
	}
}

func (dig *Writes) flush() {
	dig.digest = sha1.Sum(dig.buffer)
	copy(dig.buffer, dig.digest[:])
	dig.bufferCt = writesBufferStart
}

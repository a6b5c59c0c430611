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

import (
	"fmt"

	"github.com/jetsetilly/chiptracker/chips"
	"github.com/jetsetilly/chiptracker/hardware/apu"
	"github.com/jetsetilly/chiptracker/instrument"
	"github.com/jetsetilly/chiptracker/song"
)

// State of the channel.
type State int

// List of valid State values.
const (
	Idle State = iota
	Sounding
	Releasing
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Sounding:
		return "sounding"
	case Releasing:
		return "releasing"
	case Stopped:
		return "stopped"
	}
	return fmt.Sprintf("unknown state (%d)", int(s))
}

// Broadcaster delivers the notification that a shared instrument has been
// loaded to every channel in the mask. Delivery must be synchronous.
type Broadcaster interface {
	NotifyInstrumentLoaded(inst *instrument.Instrument, mask chips.ChannelMask)
}

// Event is the resolved note event for a channel in a single frame.
type Event struct {
	Note *song.Note

	// the instrument that the note will use. resolved by the caller
	Instrument *instrument.Instrument

	// slide parameters. a zero StepSize means there is no slide
	Slide       song.SlideParams
	VolumeSlide song.SlideParams

	// note and cut delays are only honoured with the FamiTracker tempo mode
	FamiTrackerTempo bool
}

// Options that affect how the channel state writes registers.
type Options struct {
	PAL          bool
	N163Channels int

	// the key register of the YM2413 percussion voices. channels of the same
	// chip should share the instance. a nil value gives the channel a key
	// register of its own
	Rhythm *RhythmKeys
}

// the chip specific part of the channel state
type chip interface {
	loadInstrument(inst *instrument.Instrument)
	sharedInstrumentLoaded(inst *instrument.Instrument)
	updateAPU()
}

// ChannelState is the playback state of a single channel.
type ChannelState struct {
	ctype       chips.ChannelType
	broadcaster Broadcaster
	sink        apu.Sink
	opts        Options

	chip chip

	// frame number used for register writes
	frame int

	state State

	// the note currently sounding (or the last note that sounded). the note
	// is a copy and is owned by the channel state
	note *song.Note
	inst *instrument.Instrument

	// true during the frame in which a note has been attacked
	noteTriggered bool

	// set when a sibling channel has overwritten the shared patch registers
	forceReload bool

	// note and cut delays
	delayed      *Event
	delayCounter int
	cutCounter   int

	table      chips.NoteTable
	pitchShift int
	slideShift int

	envelopes [instrument.EnvelopeCount]envelopePlayer
	released  bool

	// pitch slide in shifted units. counts towards zero
	slidePitch int
	slideStep  int

	// note volume with four bits of fraction
	volume            int
	volumeSlideStep   int
	volumeSlideTarget int

	finePitch    int
	vibratoSpeed int
	vibratoDepth int
	vibratoPhase int
	dutyCycle    int
	fdsModDepth  int
	fdsModSpeed  int
}

// NewChannelState is the preferred method of initialisation for the
// ChannelState type.
func NewChannelState(ct chips.ChannelType, broadcaster Broadcaster, sink apu.Sink, opts Options) *ChannelState {
	cs := &ChannelState{
		ctype:       ct,
		broadcaster: broadcaster,
		sink:        sink,
		opts:        opts,
		cutCounter:  -1,
		note:        song.NewNote(song.NoteStop),
		volume:      15 << volumeFraction,
		table:       chips.NoteTableFor(ct, opts.PAL, opts.N163Channels),
	}
	cs.pitchShift, cs.slideShift = chips.Shifts(ct, opts.N163Channels)
	cs.chip = newChip(cs)
	return cs
}

func newChip(cs *ChannelState) chip {
	switch cs.ctype {
	case chips.Square1, chips.Square2, chips.Mmc5Square1, chips.Mmc5Square2:
		return newSquare(cs)
	case chips.Triangle:
		return &triangle{cs: cs}
	case chips.Noise:
		return &noise{cs: cs}
	case chips.Dpcm, chips.Mmc5Dpcm:
		return &dpcm{cs: cs}
	case chips.Vrc6Square1, chips.Vrc6Square2:
		return newVrc6Square(cs)
	case chips.Vrc6Saw:
		return &vrc6Saw{cs: cs}
	case chips.FdsWave:
		return &fds{cs: cs}
	case chips.S5BSquare1, chips.S5BSquare2, chips.S5BSquare3:
		return &s5b{cs: cs, idx: uint8(cs.ctype - chips.S5BSquare1)}
	}

	switch cs.ctype.Expansion() {
	case chips.ExpansionVrc7, chips.ExpansionYM2413:
		return newFM(cs)
	case chips.ExpansionN163:
		return &n163{cs: cs, idx: int(cs.ctype - chips.N163Wave1)}
	}

	return &dpcm{cs: cs}
}

func (cs *ChannelState) String() string {
	return fmt.Sprintf("%s: %s", cs.ctype, cs.state)
}

// Type returns the channel type of the channel state.
func (cs *ChannelState) Type() chips.ChannelType {
	return cs.ctype
}

// State returns the current state of the channel.
func (cs *ChannelState) State() State {
	return cs.state
}

// Note returns the current note of the channel. Can be nil.
func (cs *ChannelState) Note() *song.Note {
	return cs.note
}

// Instrument returns the currently loaded instrument. Can be nil.
func (cs *ChannelState) Instrument() *instrument.Instrument {
	return cs.inst
}

// ForceReload returns true if the instrument will be reloaded the next time
// the channel is advanced.
func (cs *ChannelState) ForceReload() bool {
	return cs.forceReload
}

// OnSharedInstrumentLoaded is called when a channel has loaded an instrument
// that uses the shared registers of the chip.
func (cs *ChannelState) OnSharedInstrumentLoaded(inst *instrument.Instrument) {
	cs.chip.sharedInstrumentLoaded(inst)
}

func (cs *ChannelState) write(reg uint16, value uint8) {
	cs.sink.RegisterWrite(apu.Write{Frame: cs.frame, Register: reg, Value: value})
}

// write to an internal register of an indirectly addressed chip
func (cs *ChannelState) writeIndirect(addrPort uint16, reg uint8, value uint8) {
	dataPort, _ := apu.DataPortFor(addrPort)
	cs.write(addrPort, reg)
	cs.write(dataPort, value)
}

// Silence writes the registers that stop the channel from sounding. Used at
// the start of a session.
func (cs *ChannelState) Silence(frame int) {
	cs.frame = frame
	cs.state = Stopped
	cs.note = song.NewNote(song.NoteStop)
	cs.chip.updateAPU()
}

// Advance processes the event for the frame. The event can be nil if the
// channel has no new note in this frame.
//
// Advance must be called for every channel before any channel is updated so
// that shared instrument notifications are delivered before registers are
// written.
func (cs *ChannelState) Advance(frame int, ev *Event) {
	cs.frame = frame
	cs.noteTriggered = false

	if ev != nil && ev.Note != nil {
		// a new event takes the place of a delayed event
		if cs.delayed != nil {
			cs.playNote(cs.delayed)
			cs.delayed = nil
		}

		if ev.FamiTrackerTempo && ev.Note.HasNoteDelay() && ev.Note.NoteDelay() > 0 {
			cs.delayed = ev
			cs.delayCounter = ev.Note.NoteDelay()
		} else {
			cs.playNote(ev)
		}
	} else if cs.delayed != nil {
		cs.delayCounter--
		if cs.delayCounter <= 0 {
			cs.playNote(cs.delayed)
			cs.delayed = nil
		}
	}

	if cs.cutCounter >= 0 {
		if cs.cutCounter == 0 {
			cs.stop()
		}
		cs.cutCounter--
	}

	if cs.forceReload && cs.inst != nil {
		cs.forceReload = false
		cs.chip.loadInstrument(cs.inst)
	}
}

func (cs *ChannelState) playNote(ev *Event) {
	n := ev.Note

	cs.applyEffects(n)

	if ev.FamiTrackerTempo && n.HasCutDelay() {
		cs.cutCounter = n.CutDelay()
	}

	switch {
	case n.IsStop():
		cs.stop()

	case n.IsRelease():
		if cs.state == Sounding || cs.state == Releasing {
			cs.state = Releasing
			cs.released = true
			for t := range cs.envelopes {
				cs.envelopes[t].release()
			}
		}

	case n.IsMusical():
		attack := n.HasAttack || cs.state == Idle || cs.state == Stopped

		if ev.Instrument != nil && (ev.Instrument != cs.inst || cs.forceReload) {
			cs.inst = ev.Instrument
			cs.forceReload = false
			cs.chip.loadInstrument(cs.inst)
		}

		cs.note = n.Clone()

		if attack {
			cs.noteTriggered = true
			cs.state = Sounding
			cs.released = false
			cs.vibratoPhase = 0
			cs.resetEnvelopes(n.Arpeggio)
		}

		cs.slidePitch = 0
		cs.slideStep = 0
		if n.IsSlideNote() && ev.Slide.StepSize != 0 {
			cs.slidePitch = ev.Slide.Delta
			cs.slideStep = ev.Slide.StepSize
		}
	}

	if n.HasVolumeSlide() && ev.VolumeSlide.StepSize != 0 {
		cs.volumeSlideStep = ev.VolumeSlide.StepSize
		cs.volumeSlideTarget = n.VolumeSlideTarget() << volumeFraction
	}
}

func (cs *ChannelState) stop() {
	cs.state = Stopped
	cs.slideStep = 0
	cs.slidePitch = 0
	cs.note = song.NewNote(song.NoteStop)
}

func (cs *ChannelState) applyEffects(n *song.Note) {
	if n.HasVolume() {
		cs.volume = n.Volume() << volumeFraction
		cs.volumeSlideStep = 0
	}
	if n.HasEffect(song.EffectFinePitch) {
		cs.finePitch = n.EffectValue(song.EffectFinePitch)
	}
	if n.HasEffect(song.EffectVibratoSpeed) {
		cs.vibratoSpeed = n.EffectValue(song.EffectVibratoSpeed)
	}
	if n.HasEffect(song.EffectVibratoDepth) {
		cs.vibratoDepth = n.EffectValue(song.EffectVibratoDepth)
	}
	if n.HasEffect(song.EffectDutyCycle) {
		cs.dutyCycle = n.EffectValue(song.EffectDutyCycle)
	}
	if n.HasEffect(song.EffectFdsModDepth) {
		cs.fdsModDepth = n.EffectValue(song.EffectFdsModDepth)
	}
	if n.HasEffect(song.EffectFdsModSpeed) {
		cs.fdsModSpeed = n.EffectValue(song.EffectFdsModSpeed)
	}
}

// Update writes the registers for the frame and then advances the envelopes
// and slides of the channel.
func (cs *ChannelState) Update(frame int) {
	cs.frame = frame
	cs.chip.updateAPU()

	if cs.state == Sounding || cs.state == Releasing {
		for t := range cs.envelopes {
			cs.envelopes[t].step(cs.released)
		}

		if cs.slideStep != 0 {
			cs.slidePitch += cs.slideStep
			if (cs.slideStep < 0 && cs.slidePitch <= 0) || (cs.slideStep > 0 && cs.slidePitch >= 0) {
				cs.slidePitch = 0
				cs.slideStep = 0
			}
		}

		if cs.vibratoSpeed > 0 && cs.vibratoDepth > 0 {
			cs.vibratoPhase = (cs.vibratoPhase + cs.vibratoSpeed) % vibratoPeriod
		}
	}

	if cs.volumeSlideStep != 0 {
		cs.volume += cs.volumeSlideStep
		if (cs.volumeSlideStep < 0 && cs.volume <= cs.volumeSlideTarget) || (cs.volumeSlideStep > 0 && cs.volume >= cs.volumeSlideTarget) {
			cs.volume = cs.volumeSlideTarget
			cs.volumeSlideStep = 0
		}
	}
}

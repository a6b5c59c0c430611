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

package player

import (
	"context"

	"github.com/jetsetilly/chiptracker/assert"
	"github.com/jetsetilly/chiptracker/channelstate"
	"github.com/jetsetilly/chiptracker/chips"
	"github.com/jetsetilly/chiptracker/curated"
	"github.com/jetsetilly/chiptracker/hardware/apu"
	"github.com/jetsetilly/chiptracker/instrument"
	"github.com/jetsetilly/chiptracker/logger"
	"github.com/jetsetilly/chiptracker/song"
)

// Resolver returns the instrument that a channel should use for a note.
type Resolver func(ch *song.Channel, n *song.Note) *instrument.Instrument

// NoteInstrument is the default Resolver. It returns the instrument of the
// note if the channel supports it.
func NoteInstrument(ch *song.Channel, n *song.Note) *instrument.Instrument {
	if n.Instrument == nil || !ch.SupportsInstrument(n.Instrument) {
		return nil
	}
	return n.Instrument
}

// Options for a playback session.
type Options struct {
	PAL bool

	// number of times the loop section of the song is played. a value of zero
	// loops forever, in which case the session only ends when MaxFrames is
	// reached or when the context is cancelled
	LoopCount int

	// the maximum number of frames to play. zero means no limit
	MaxFrames int

	// only record writes that change the value of a register. used by the
	// export functions
	ChangesOnly bool

	// nil means NoteInstrument
	Resolver Resolver
}

// Sentinal error returned by Run() when the context is done.
const Cancelled = "player: cancelled at frame %d: %v"

// a channel of the song and its playback state
type channel struct {
	ch    *song.Channel
	state *channelstate.ChannelState
	table chips.NoteTable

	// number of notes until the current note is released or stopped. a
	// negative value means the note has no release or stop point
	releaseIn int
	stopIn    int
}

// Session plays a song to a register write sink. A Session must only be used
// by the goroutine that created it.
type Session struct {
	goroutine uint64

	song *song.Song
	opts Options
	sink apu.Sink

	channels []*channel

	frame int
	loc   song.NoteLocation

	// frames remaining for the current note
	noteFrames int

	// fractional frames carried between notes with the FamiTracker tempo
	fraction float64

	famiTrackerSpeed int

	started bool
	ended   bool
}

// NewSession is the preferred method of initialisation for the Session type.
func NewSession(s *song.Song, sink apu.Sink, opts Options) *Session {
	if opts.Resolver == nil {
		opts.Resolver = NoteInstrument
	}

	sess := &Session{
		goroutine:        assert.GetGoRoutineID(),
		opts:             opts,
		sink:             sink,
		famiTrackerSpeed: s.FamiTrackerSpeed,
	}

	// the session plays a clone of the song so that the song can be extended
	// without changing the song that is being edited
	sess.song = s.ShallowClone()
	if opts.LoopCount > 1 {
		sess.song.ExtendForLooping(opts.LoopCount)
	}
	sess.song.UpdateCaches()

	numN163 := s.Project().N163ChannelCount()
	copts := channelstate.Options{
		PAL:          opts.PAL,
		N163Channels: numN163,
		Rhythm:       channelstate.NewRhythmKeys(),
	}

	for _, ch := range sess.song.Channels() {
		sess.channels = append(sess.channels, &channel{
			ch:        ch,
			state:     channelstate.NewChannelState(ch.Type(), sess, sink, copts),
			table:     chips.NoteTableFor(ch.Type(), opts.PAL, numN163),
			releaseIn: -1,
			stopIn:    -1,
		})
	}

	return sess
}

func (sess *Session) String() string {
	return sess.song.String()
}

// Song returns the song being played. This is the clone of the song given to
// NewSession(), extended for looping if necessary.
func (sess *Session) Song() *song.Song {
	return sess.song
}

// Frame returns the number of the next frame to be played.
func (sess *Session) Frame() int {
	return sess.frame
}

// Location returns the location of the note being played.
func (sess *Session) Location() song.NoteLocation {
	return sess.loc
}

// Ended returns true if the session has played to the end of the song.
func (sess *Session) Ended() bool {
	return sess.ended
}

// ChannelState returns the state of the channel type. Returns nil if the
// channel type is not in the song.
func (sess *Session) ChannelState(ct chips.ChannelType) *channelstate.ChannelState {
	for _, c := range sess.channels {
		if c.ch.Type() == ct {
			return c.state
		}
	}
	return nil
}

// NotifyInstrumentLoaded implements the channelstate.Broadcaster interface.
// Delivery is synchronous, in channel order.
func (sess *Session) NotifyInstrumentLoaded(inst *instrument.Instrument, mask chips.ChannelMask) {
	for _, c := range sess.channels {
		if mask.Has(c.ch.Type()) {
			c.state.OnSharedInstrumentLoaded(inst)
		}
	}
}

// start enables the channels of every chip used by the song and silences all
// channels
func (sess *Session) start() {
	sess.started = true

	sess.sink.RegisterWrite(apu.Write{Frame: 0, Register: apu.SndChn, Value: 0x0f})

	mask := sess.song.Project().ExpansionMask()
	if mask.Has(chips.ExpansionMmc5) {
		sess.sink.RegisterWrite(apu.Write{Frame: 0, Register: apu.Mmc5SndChn, Value: 0x03})
	}
	if mask.Has(chips.ExpansionS5B) {
		// tone enabled and noise disabled for all three channels
		sess.sink.RegisterWrite(apu.Write{Frame: 0, Register: apu.S5BAddr, Value: apu.S5BMixer})
		sess.sink.RegisterWrite(apu.Write{Frame: 0, Register: apu.S5BData, Value: 0x38})
	}

	for _, c := range sess.channels {
		c.state.Silence(0)
	}
}

// event returns the note event for the channel at the current location. the
// release and stop points of compound notes are turned into release and stop
// events. returns nil if there is nothing for the channel to do
func (sess *Session) event(c *channel) *channelstate.Event {
	if c.releaseIn > 0 {
		c.releaseIn--
	}
	if c.stopIn > 0 {
		c.stopIn--
	}

	n := c.ch.NoteAt(sess.loc)
	if n != nil && n.IsEmpty() {
		n = nil
	}

	switch {
	case n != nil && n.IsMusical():
		c.stopIn = -1
		if n.Duration > 0 {
			c.stopIn = n.Duration
		}
		c.releaseIn = -1
		if n.HasRelease() {
			c.releaseIn = n.Release
		}

	case n != nil && n.IsStop():
		c.stopIn = -1
		c.releaseIn = -1

	case n != nil && n.IsRelease():
		c.releaseIn = -1

	case c.stopIn == 0:
		n = sess.synthesize(n, song.NoteStop)
		c.stopIn = -1
		c.releaseIn = -1

	case c.releaseIn == 0:
		n = sess.synthesize(n, song.NoteRelease)
		c.releaseIn = -1
	}

	if n == nil {
		return nil
	}

	ev := &channelstate.Event{
		Note:             n,
		FamiTrackerTempo: sess.song.UsesFamiTrackerTempo(),
	}

	if n.IsMusical() {
		ev.Instrument = sess.opts.Resolver(c.ch, n)

		if n.IsSlideNote() && c.ch.SupportsSlideNotes() {
			if p, ok := c.ch.ComputeSlideNoteParams(n, sess.loc, sess.famiTrackerSpeed, c.table, sess.opts.PAL, true); ok {
				ev.Slide = p
			}
		}
	}

	if n.HasVolumeSlide() {
		if p, ok := c.ch.ComputeVolumeSlideNoteParams(n, sess.loc, sess.famiTrackerSpeed, sess.opts.PAL); ok {
			ev.VolumeSlide = p
		}
	}

	return ev
}

// synthesize a stop or release note. the effects of the note at the location,
// if there is one, are kept
func (sess *Session) synthesize(n *song.Note, value uint8) *song.Note {
	if n == nil {
		return song.NewNote(value)
	}
	s := n.Clone()
	s.Value = value
	return s
}

// beginNote prepares the events for the note at the current location and sets
// the number of frames the note will last
func (sess *Session) beginNote() []*channelstate.Event {
	events := make([]*channelstate.Event, len(sess.channels))
	for i, c := range sess.channels {
		events[i] = sess.event(c)
	}

	if sess.song.UsesFamiTrackerTempo() {
		for _, ev := range events {
			if ev != nil && ev.Note.HasEffect(song.EffectSpeed) {
				sess.famiTrackerSpeed = max(1, ev.Note.EffectValue(song.EffectSpeed))
			}
		}
	}

	sess.fraction += sess.song.FramesPerNote(sess.loc, sess.famiTrackerSpeed, sess.opts.PAL)
	sess.noteFrames = int(sess.fraction)
	sess.fraction -= float64(sess.noteFrames)
	if sess.noteFrames < 1 {
		sess.noteFrames = 1
	}

	return events
}

// Step plays a single frame. Returns false if the session has ended.
func (sess *Session) Step() bool {
	assert.SameGoroutine(sess.goroutine)

	if sess.ended {
		return false
	}

	if !sess.started {
		sess.start()
	}

	if sess.opts.MaxFrames > 0 && sess.frame >= sess.opts.MaxFrames {
		sess.ended = true
		return false
	}

	var events []*channelstate.Event

	if sess.noteFrames == 0 {
		if !sess.loc.IsInSong(sess.song) {
			if sess.opts.LoopCount > 0 || sess.song.LoopPoint() < 0 {
				sess.ended = true
				return false
			}
			sess.loc = song.NoteLocation{PatternIndex: sess.song.LoopPoint()}
		}
		events = sess.beginNote()
	}

	for i, c := range sess.channels {
		var ev *channelstate.Event
		if events != nil {
			ev = events[i]
		}
		c.state.Advance(sess.frame, ev)
	}

	for _, c := range sess.channels {
		c.state.Update(sess.frame)
	}

	sess.frame++

	sess.noteFrames--
	if sess.noteFrames == 0 {
		sess.song.AdvanceNumberOfNotes(&sess.loc, 1)
	}

	return true
}

// Run plays the song until it ends or until the context is done. Writes that
// have already been sent to the sink remain valid if the context is done
// before the end of the song.
func (sess *Session) Run(ctx context.Context) error {
	for sess.Step() {
		if err := ctx.Err(); err != nil {
			return curated.Errorf(Cancelled, sess.frame, err)
		}
	}

	logger.Logf(logger.Allow, "player", "%s: %d frames", sess.song, sess.frame)

	return nil
}

// Stop silences every channel in the next frame and ends the session.
func (sess *Session) Stop() {
	assert.SameGoroutine(sess.goroutine)

	if sess.ended {
		return
	}
	for _, c := range sess.channels {
		c.state.Silence(sess.frame)
	}
	sess.frame++
	sess.ended = true
}

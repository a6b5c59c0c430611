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

package player_test

import (
	"context"
	"testing"

	"github.com/jetsetilly/chiptracker/channelstate"
	"github.com/jetsetilly/chiptracker/chips"
	"github.com/jetsetilly/chiptracker/curated"
	"github.com/jetsetilly/chiptracker/hardware/apu"
	"github.com/jetsetilly/chiptracker/instrument"
	"github.com/jetsetilly/chiptracker/player"
	"github.com/jetsetilly/chiptracker/song"
	"github.com/jetsetilly/chiptracker/test"
)

// newTestSong creates a project with a single song of the specified length.
// the default pattern length is 16 notes and each note lasts 6 frames
func newTestSong(t *testing.T, p *song.Project, length int) *song.Song {
	t.Helper()
	if p == nil {
		p = song.NewProject("test")
	}
	s, err := p.CreateSong("")
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, s.SetLength(length))
	return s
}

func noteAt(t *testing.T, s *song.Song, ct chips.ChannelType, pos int, idx int, n *song.Note) {
	t.Helper()
	c := s.Channel(ct)
	test.DemandSuccess(t, c != nil)
	pat := c.Instance(pos)
	if pat == nil {
		var err error
		pat, err = c.CreatePatternAndInstance(pos, "")
		test.DemandSuccess(t, err)
	}
	pat.SetNoteAt(idx, n)
}

func steps(sess *player.Session, n int) {
	for range n {
		sess.Step()
	}
}

func TestEnableChannels(t *testing.T) {
	p := song.NewProject("test")
	test.DemandSuccess(t, p.SetExpansionAudio(chips.ExpansionMmc5.Mask()|chips.ExpansionS5B.Mask(), 0))
	s := newTestSong(t, p, 1)

	var w apu.Writes
	sess := player.NewSession(s, &w, player.Options{})
	sess.Step()

	test.DemandSuccess(t, len(w) > 4)
	test.ExpectEquality(t, w[0], apu.Write{Frame: 0, Register: apu.SndChn, Value: 0x0f})
	test.ExpectEquality(t, w[1], apu.Write{Frame: 0, Register: apu.Mmc5SndChn, Value: 0x03})
	test.ExpectEquality(t, w[2], apu.Write{Frame: 0, Register: apu.S5BAddr, Value: apu.S5BMixer})
	test.ExpectEquality(t, w[3], apu.Write{Frame: 0, Register: apu.S5BData, Value: 0x38})

	// the channels are silent
	test.ExpectEquality(t, sess.ChannelState(chips.Square1).State(), channelstate.Stopped)
	test.ExpectEquality(t, sess.ChannelState(chips.S5BSquare3).State(), channelstate.Stopped)
	test.ExpectSuccess(t, sess.ChannelState(chips.Vrc6Saw) == nil)
}

func TestSessionLength(t *testing.T) {
	s := newTestSong(t, nil, 2)

	var w apu.Writes
	sess := player.NewSession(s, &w, player.Options{LoopCount: 1})
	test.ExpectSuccess(t, sess.Run(context.Background()))
	test.ExpectSuccess(t, sess.Ended())
	test.ExpectEquality(t, sess.Frame(), 2*16*6)
	test.ExpectFailure(t, sess.Step())
}

func TestLoopCount(t *testing.T) {
	s := newTestSong(t, nil, 2)
	s.SetLoopPoint(1)

	sess := player.NewSession(s, &apu.Writes{}, player.Options{LoopCount: 3})
	test.ExpectSuccess(t, sess.Run(context.Background()))
	test.ExpectEquality(t, sess.Frame(), 4*16*6)

	// the original song has not changed
	test.ExpectEquality(t, s.Length(), 2)
	test.ExpectEquality(t, sess.Song().Length(), 4)
}

func TestLoopForever(t *testing.T) {
	s := newTestSong(t, nil, 2)
	s.SetLoopPoint(1)

	sess := player.NewSession(s, &apu.Writes{}, player.Options{LoopCount: 0, MaxFrames: 500})
	test.ExpectSuccess(t, sess.Run(context.Background()))
	test.ExpectEquality(t, sess.Frame(), 500)

	// 500 frames is 83 notes and a bit. the song is played once and then
	// pattern 1 is played over and over
	test.ExpectEquality(t, sess.Location(), song.NoteLocation{PatternIndex: 1, NoteIndex: (83 - 32) % 16})
}

func TestFamiTrackerSpeed(t *testing.T) {
	s := newTestSong(t, nil, 1)
	s.TempoMode = song.TempoFamiTracker

	n := song.NewNote(song.NoteInvalid)
	n.SetEffect(song.EffectSpeed, 3)
	noteAt(t, s, chips.Square1, 0, 8, n)

	sess := player.NewSession(s, &apu.Writes{}, player.Options{LoopCount: 1})
	test.ExpectSuccess(t, sess.Run(context.Background()))

	// speed 6 for eight notes and speed 3 for eight notes, at the default
	// tempo of 150
	test.ExpectEquality(t, sess.Frame(), 8*6+8*3)
}

func TestCompoundNote(t *testing.T) {
	s := newTestSong(t, nil, 1)

	n := song.NewMusicalNote(49, 4, nil)
	n.Release = 2
	noteAt(t, s, chips.Square1, 0, 0, n)

	sess := player.NewSession(s, &apu.Writes{}, player.Options{})
	cs := sess.ChannelState(chips.Square1)

	steps(sess, 12)
	test.ExpectEquality(t, cs.State(), channelstate.Sounding)

	// release point at the third note
	steps(sess, 1)
	test.ExpectEquality(t, cs.State(), channelstate.Releasing)

	// the note stops at the end of its duration
	steps(sess, 11)
	test.ExpectEquality(t, cs.State(), channelstate.Releasing)
	steps(sess, 1)
	test.ExpectEquality(t, cs.State(), channelstate.Stopped)
}

func TestStopKeepsEffects(t *testing.T) {
	s := newTestSong(t, nil, 1)

	noteAt(t, s, chips.Square1, 0, 0, song.NewMusicalNote(49, 1, nil))

	// effect only note at the point where the first note stops
	fx := song.NewNote(song.NoteInvalid)
	fx.SetEffect(song.EffectVolume, 5)
	noteAt(t, s, chips.Square1, 0, 1, fx)

	sess := player.NewSession(s, &apu.Writes{}, player.Options{})
	cs := sess.ChannelState(chips.Square1)

	steps(sess, 7)
	test.ExpectEquality(t, cs.State(), channelstate.Stopped)
}

func TestSharedPatch(t *testing.T) {
	p := song.NewProject("test")
	test.DemandSuccess(t, p.SetExpansionAudio(chips.ExpansionYM2413.Mask(), 0))
	s := newTestSong(t, p, 1)

	custom1, err := p.CreateInstrument(chips.ExpansionYM2413, "custom 1")
	test.DemandSuccess(t, err)
	custom1.SetYM2413Patch(instrument.YM2413Custom)
	custom2, err := p.CreateInstrument(chips.ExpansionYM2413, "custom 2")
	test.DemandSuccess(t, err)
	custom2.SetYM2413Patch(instrument.YM2413Custom)

	noteAt(t, s, chips.YM2413Fm2, 0, 0, song.NewMusicalNote(49, 16, custom2))
	noteAt(t, s, chips.YM2413Fm1, 0, 1, song.NewMusicalNote(52, 15, custom1))

	var w apu.Writes
	sess := player.NewSession(s, &w, player.Options{})
	steps(sess, 7)

	patchWrites := func(frame int) int {
		var n int
		for _, wr := range w.Frame(frame).Internal(apu.FMRegSel) {
			if wr.Register < apu.FMPatchLength {
				n++
			}
		}
		return n
	}

	test.ExpectEquality(t, patchWrites(0), apu.FMPatchLength)

	// channel 1 loads its patch and channel 2 reloads its own patch in the
	// same frame, before any registers of channel 2 are written
	test.ExpectEquality(t, patchWrites(6), apu.FMPatchLength*2)
}

func TestCancel(t *testing.T) {
	s := newTestSong(t, nil, 4)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w, err := player.Export(ctx, s, player.Options{}, nil)
	test.ExpectSuccess(t, curated.Is(err, player.Cancelled))

	// the writes of the first frame were made
	test.ExpectSuccess(t, len(w) > 0)
	test.ExpectEquality(t, len(w.Frame(1)), 0)
}

func TestExportSongs(t *testing.T) {
	p := song.NewProject("test")

	var songs []*song.Song
	for range 4 {
		s := newTestSong(t, p, 2)
		noteAt(t, s, chips.Square1, 0, 0, song.NewMusicalNote(49, 8, nil))
		noteAt(t, s, chips.Triangle, 1, 4, song.NewMusicalNote(37, 4, nil))
		songs = append(songs, s)
	}

	results, err := player.ExportSongs(context.Background(), songs, player.Options{LoopCount: 1, ChangesOnly: true})
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(results), 4)

	// every export is the same
	for _, w := range results[1:] {
		test.ExpectEquality(t, w.String(), results[0].String())
	}

	// the same as an export in this goroutine
	w, err := player.Export(context.Background(), songs[0], player.Options{LoopCount: 1, ChangesOnly: true}, nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, w.String(), results[0].String())
}

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

package song

import (
	"math"

	"github.com/jetsetilly/chiptracker/assert"
	"github.com/jetsetilly/chiptracker/chips"
)

// SlideParams are the per-frame step sizes of a pitch or volume slide.
type SlideParams struct {
	// difference between the start and end of the slide. for pitch slides
	// this is in chip period units with the slide shift applied
	Delta int

	// step applied every frame. the step is rounded away from zero and
	// clamped to the range of a signed byte
	StepSize int

	// exact step size. used for display
	StepSizeFloat float64
}

// slide frame count after note and cut delays have been applied
func (c *Channel) slideFrames(note *Note, loc NoteLocation, next NoteLocation, famiTrackerSpeed int, pal bool, cutDelayEnds bool) float64 {
	s := c.song

	delay := 0
	if note.HasNoteDelay() {
		delay = -note.NoteDelay()
	}

	if s.UsesFamiTrackerTempo() {
		if nn := c.NoteAt(next); nn != nil {
			switch {
			case nn.HasNoteDelay() && nn.HasCutDelay() && cutDelayEnds:
				delay += min(nn.NoteDelay(), nn.CutDelay())
			case nn.HasNoteDelay():
				delay += nn.NoteDelay()
			case nn.HasCutDelay() && cutDelayEnds:
				delay += nn.CutDelay()
			}
		}
	}

	return s.CountFramesBetween(loc, next, famiTrackerSpeed, pal) + float64(delay)
}

func stepSize(delta int, frames float64) (int, float64) {
	frames = math.Max(1, frames)
	abs := math.Abs(float64(delta)) / frames
	step := int(math.Ceil(abs))
	if delta > 0 {
		step = -step
	}
	return min(max(step, math.MinInt8), math.MaxInt8), float64(delta) / frames
}

// ComputeSlideNoteParams calculates the slide of the musical note at the
// location. The note table is the period table for the channel and is not
// used by the noise channel. If applyShifts is true then the slide shift of
// the channel type is applied to the pitch difference.
//
// Returns false if the slide target is the same pitch as the note.
func (c *Channel) ComputeSlideNoteParams(note *Note, loc NoteLocation, famiTrackerSpeed int, table chips.NoteTable, pal bool, applyShifts bool) (SlideParams, bool) {
	assert.That(note.IsMusical(), "song: slide parameters for non-musical note at %s", loc)

	var slideShift int
	if applyShifts {
		_, slideShift = chips.Shifts(c.ctype, c.song.project.numN163Channels)
	}

	var delta int
	if c.ctype == chips.Noise || table == nil {
		delta = int(note.Value) - int(note.SlideTarget)
	} else {
		delta = table[note.Value] - table[note.SlideTarget]
	}

	if delta == 0 {
		return SlideParams{}, false
	}

	if slideShift < 0 {
		delta <<= -slideShift
	} else {
		delta >>= slideShift
	}

	next := c.FindNextNoteForSlide(loc, maxSlideNotes, false)

	var frames float64
	if loc != next {
		frames = c.slideFrames(note, loc, next, famiTrackerSpeed, pal, true)
	} else if note.HasCutDelay() {
		// the slide starts and ends on the same note because of a cut delay
		frames = float64(note.CutDelay())
	}

	p := SlideParams{Delta: delta}
	p.StepSize, p.StepSizeFloat = stepSize(delta, frames)
	return p, true
}

// volume slides have four bits of fraction
const volumeSlideShift = 4

// ComputeVolumeSlideNoteParams calculates the volume slide of the note at the
// location. The step size has four bits of fraction. The float step size
// does not.
//
// Returns false if the volume slide target is the same as the volume.
func (c *Channel) ComputeVolumeSlideNoteParams(note *Note, loc NoteLocation, famiTrackerSpeed int, pal bool) (SlideParams, bool) {
	assert.That(note.HasVolumeSlide(), "song: volume slide parameters for note without volume slide at %s", loc)

	delta := note.Volume() - note.VolumeSlideTarget()
	if delta == 0 {
		return SlideParams{}, false
	}

	next := c.FindNextNoteForVolumeSlide(loc, maxSlideNotes)
	frames := c.slideFrames(note, loc, next, famiTrackerSpeed, pal, false)

	p := SlideParams{Delta: delta << volumeSlideShift}
	p.StepSize, _ = stepSize(p.Delta, frames)
	_, p.StepSizeFloat = stepSize(delta, frames)
	return p, true
}

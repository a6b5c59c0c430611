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

package script

import (
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/jetsetilly/chiptracker/chips"
	"github.com/jetsetilly/chiptracker/instrument"
	"github.com/jetsetilly/chiptracker/notifications"
	"github.com/jetsetilly/chiptracker/song"
)

// names of the userdata types
const (
	instrumentType = "instrument"
	arpeggioType   = "arpeggio"
	songType       = "song"
)

// builder constructs a project from the calls made by a script
type builder struct {
	project *song.Project

	// channels with musical notes that were given without a duration
	openDurations map[*song.Channel]bool
}

func newBuilder(name string, notify notifications.Notify) *builder {
	p := song.NewProject(name)
	p.Notify = notify
	return &builder{
		project:       p,
		openDurations: make(map[*song.Channel]bool),
	}
}

func (b *builder) register(L *lua.LState) {
	for _, t := range []string{instrumentType, arpeggioType, songType} {
		mt := L.NewTypeMetatable(t)
		L.SetField(mt, "__tostring", L.NewFunction(func(L *lua.LState) int {
			L.Push(lua.LString(fmt.Sprintf("%s: %v", t, L.CheckUserData(1).Value)))
			return 1
		}))
	}

	L.SetGlobal("project", L.NewFunction(b.luaProject))
	L.SetGlobal("instrument", L.NewFunction(b.luaInstrument))
	L.SetGlobal("arpeggio", L.NewFunction(b.luaArpeggio))
	L.SetGlobal("song", L.NewFunction(b.luaSong))
	L.SetGlobal("custom", L.NewFunction(b.luaCustom))
	L.SetGlobal("notes", L.NewFunction(b.luaNotes))
}

// finalise is called after the script has run successfully
func (b *builder) finalise() {
	for c := range b.openDurations {
		c.SetNoteDurationToMaximumLength()
	}
	b.project.ClampEnvelopes()
	for _, s := range b.project.Songs() {
		s.InvalidateCaches()
	}
}

func userData(L *lua.LState, v any, t string) *lua.LUserData {
	ud := L.NewUserData()
	ud.Value = v
	L.SetMetatable(ud, L.GetTypeMetatable(t))
	return ud
}

func checkSong(L *lua.LState, n int) *song.Song {
	if s, ok := L.CheckUserData(n).Value.(*song.Song); ok {
		return s
	}
	L.ArgError(n, "song expected")
	return nil
}

// field access for option tables. each function raises a Lua error if the
// field is present but of the wrong type

func optString(L *lua.LState, t *lua.LTable, key string, def string) string {
	switch v := L.GetField(t, key).(type) {
	case *lua.LNilType:
		return def
	case lua.LString:
		return string(v)
	}
	L.RaiseError("%s must be a string", key)
	return def
}

func optInt(L *lua.LState, t *lua.LTable, key string, def int) int {
	switch v := L.GetField(t, key).(type) {
	case *lua.LNilType:
		return def
	case lua.LNumber:
		return int(v)
	}
	L.RaiseError("%s must be a number", key)
	return def
}

func optBool(L *lua.LState, t *lua.LTable, key string, def bool) bool {
	switch v := L.GetField(t, key).(type) {
	case *lua.LNilType:
		return def
	case lua.LBool:
		return bool(v)
	}
	L.RaiseError("%s must be a boolean", key)
	return def
}

func optInts(L *lua.LState, t *lua.LTable, key string) []int {
	switch v := L.GetField(t, key).(type) {
	case *lua.LNilType:
		return nil
	case *lua.LTable:
		vals := make([]int, 0, v.Len())
		for i := 1; i <= v.Len(); i++ {
			n, ok := v.RawGetInt(i).(lua.LNumber)
			if !ok {
				L.RaiseError("%s must be a list of numbers", key)
			}
			vals = append(vals, int(n))
		}
		return vals
	}
	L.RaiseError("%s must be a list of numbers", key)
	return nil
}

func optUserData[T any](L *lua.LState, t *lua.LTable, key string) T {
	var zero T
	switch v := L.GetField(t, key).(type) {
	case *lua.LNilType:
		return zero
	case *lua.LUserData:
		if d, ok := v.Value.(T); ok {
			return d
		}
	}
	L.RaiseError("%s is not of the correct type", key)
	return zero
}

func (b *builder) luaProject(L *lua.LState) int {
	t := L.CheckTable(1)

	b.project.Name = optString(L, t, "name", b.project.Name)

	var mask chips.ExpansionMask
	if exps, ok := L.GetField(t, "expansions").(*lua.LTable); ok {
		exps.ForEach(func(_ lua.LValue, v lua.LValue) {
			e, ok := chips.ExpansionFromShortName(strings.ToUpper(lua.LVAsString(v)))
			if !ok || e == chips.ExpansionNone {
				L.RaiseError("unknown expansion: %s", lua.LVAsString(v))
			}
			mask |= e.Mask()
		})
	}

	if err := b.project.SetExpansionAudio(mask, optInt(L, t, "n163", 1)); err != nil {
		L.RaiseError("%v", err)
	}

	return 0
}

// the envelopes that can be set by a script and the name of the field
var envelopeFields = []struct {
	field string
	t     instrument.EnvelopeType
}{
	{"volume", instrument.EnvelopeVolume},
	{"arpeggio", instrument.EnvelopeArpeggio},
	{"pitch", instrument.EnvelopePitch},
	{"duty", instrument.EnvelopeDutyCycle},
}

func setEnvelope(L *lua.LState, t *lua.LTable, field string, env *instrument.Envelope) {
	vals := optInts(L, t, field)
	if vals == nil {
		return
	}
	env.Values = env.Values[:0]
	for _, v := range vals {
		env.Values = append(env.Values, int8(v))
	}
	env.Loop = optInt(L, t, field+"Loop", -1)
	env.Release = optInt(L, t, field+"Release", -1)
	if env.Loop >= len(vals) {
		L.RaiseError("%sLoop is past the end of the envelope", field)
	}
	if env.Release >= len(vals) {
		L.RaiseError("%sRelease is past the end of the envelope", field)
	}
}

func (b *builder) luaInstrument(L *lua.LState) int {
	t := L.CheckTable(1)

	exp := chips.ExpansionNone
	if s := optString(L, t, "expansion", ""); s != "" {
		var ok bool
		exp, ok = chips.ExpansionFromShortName(strings.ToUpper(s))
		if !ok {
			L.RaiseError("unknown expansion: %s", s)
		}
	}

	name := optString(L, t, "name", "")
	if name == "" {
		name = fmt.Sprintf("Instrument %d", len(b.project.Instruments())+1)
	}

	inst, err := b.project.CreateInstrument(exp, name)
	if err != nil {
		L.RaiseError("%v", err)
	}

	for _, f := range envelopeFields {
		if env := inst.Envelopes[f.t]; env != nil {
			setEnvelope(L, t, f.field, env)
		} else if L.GetField(t, f.field) != lua.LNil {
			L.RaiseError("%s envelope is not supported by %s instruments", f.field, exp)
		}
	}

	switch exp {
	case chips.ExpansionVrc6:
		switch strings.ToLower(optString(L, t, "saw", "half")) {
		case "full":
			inst.Vrc6SawMasterVolume = instrument.Vrc6SawFull
		case "half":
			inst.Vrc6SawMasterVolume = instrument.Vrc6SawHalf
		case "quarter":
			inst.Vrc6SawMasterVolume = instrument.Vrc6SawQuarter
		default:
			L.RaiseError("saw must be full, half or quarter")
		}

	case chips.ExpansionVrc7, chips.ExpansionYM2413:
		def := inst.Vrc7Patch()
		if exp == chips.ExpansionYM2413 {
			def = inst.YM2413Patch()
		}
		patch := uint8(optInt(L, t, "patch", int(def)))

		regs := optInts(L, t, "patchRegs")
		if regs != nil && len(regs) != 8 {
			L.RaiseError("patchRegs must have eight values")
		}

		var custom [8]uint8
		for i, r := range regs {
			custom[i] = uint8(r)
		}

		if exp == chips.ExpansionVrc7 {
			inst.SetVrc7Patch(patch)
			if regs != nil {
				inst.Vrc7PatchRegs = custom
			}
		} else {
			inst.SetYM2413Patch(patch)
			if regs != nil {
				inst.YM2413PatchRegs = custom
			}
		}

	case chips.ExpansionFds:
		inst.FdsModSpeed = optInt(L, t, "modSpeed", inst.FdsModSpeed)
		inst.FdsModDepth = optInt(L, t, "modDepth", inst.FdsModDepth)
		inst.FdsModDelay = optInt(L, t, "modDelay", inst.FdsModDelay)

	case chips.ExpansionN163:
		inst.SetN163WaveSize(optInt(L, t, "waveSize", inst.N163WaveSize()))
		inst.SetN163WavePos(optInt(L, t, "wavePos", inst.N163WavePos()))
	}

	L.Push(userData(L, inst, instrumentType))
	return 1
}

func (b *builder) luaArpeggio(L *lua.LState) int {
	t := L.CheckTable(1)

	name := optString(L, t, "name", "")
	if name == "" {
		name = fmt.Sprintf("Arpeggio %d", len(b.project.Arpeggios())+1)
	}

	arp := b.project.CreateArpeggio(name)
	setEnvelope(L, t, "values", arp.Envelope)
	arp.Envelope.Loop = optInt(L, t, "loop", arp.Envelope.Loop)

	L.Push(userData(L, arp, arpeggioType))
	return 1
}

func (b *builder) luaSong(L *lua.LState) int {
	t := L.CheckTable(1)

	s, err := b.project.CreateSong(optString(L, t, "name", ""))
	if err != nil {
		L.RaiseError("%v", err)
	}

	if err := s.SetLength(optInt(L, t, "length", s.Length())); err != nil {
		L.RaiseError("%v", err)
	}
	s.SetLoopPoint(optInt(L, t, "loop", s.LoopPoint()))
	s.SetDefaultPatternLength(optInt(L, t, "patternLength", s.DefaultPatternLength()))
	s.SetDefaultBeatLength(optInt(L, t, "beatLength", song.DefaultBeatLength))
	if groove := optInts(L, t, "groove"); groove != nil {
		s.SetDefaultGroove(groove, song.GroovePadMiddle)
	}

	switch strings.ToLower(optString(L, t, "tempo", "famistudio")) {
	case "famistudio":
		s.TempoMode = song.TempoFamiStudio
	case "famitracker":
		s.TempoMode = song.TempoFamiTracker
	default:
		L.RaiseError("tempo must be FamiStudio or FamiTracker")
	}
	s.FamiTrackerSpeed = optInt(L, t, "speed", s.FamiTrackerSpeed)
	s.FamiTrackerTempo = optInt(L, t, "bpm", s.FamiTrackerTempo)

	L.Push(userData(L, s, songType))
	return 1
}

func (b *builder) luaCustom(L *lua.LState) int {
	s := checkSong(L, 1)
	pos := L.CheckInt(2)
	t := L.CheckTable(3)

	settings := s.PatternSettings(pos)
	err := s.SetPatternCustomSettingsAndFix(pos,
		optInt(L, t, "length", settings.PatternLength),
		optInt(L, t, "beatLength", settings.BeatLength),
		optInts(L, t, "groove"),
		song.GroovePadMiddle)
	if err != nil {
		L.RaiseError("%v", err)
	}

	return 0
}

// the effects that can be set by a script and the name of the field
var effectFields = []struct {
	field string
	fx    song.Effect
}{
	{"volume", song.EffectVolume},
	{"finePitch", song.EffectFinePitch},
	{"vibratoSpeed", song.EffectVibratoSpeed},
	{"vibratoDepth", song.EffectVibratoDepth},
	{"fdsModDepth", song.EffectFdsModDepth},
	{"fdsModSpeed", song.EffectFdsModSpeed},
	{"speed", song.EffectSpeed},
	{"duty", song.EffectDutyCycle},
	{"noteDelay", song.EffectNoteDelay},
	{"cutDelay", song.EffectCutDelay},
	{"volumeSlide", song.EffectVolumeSlide},
	{"rhythm", song.EffectRhythmMode},
}

// longest possible duration of a note. shortened by finalise()
const openDuration = song.MaxLength * song.MaxPatternLength

func (b *builder) luaNotes(L *lua.LState) int {
	s := checkSong(L, 1)
	chName := L.CheckString(2)
	pos := L.CheckInt(3)
	list := L.CheckTable(4)

	ct, ok := chips.ChannelTypeFromShortName(chName)
	if !ok {
		L.ArgError(2, fmt.Sprintf("unknown channel: %s", chName))
	}
	c := s.Channel(ct)
	if c == nil {
		L.ArgError(2, fmt.Sprintf("channel is not active in the project: %s", chName))
	}

	if pos < 0 || pos >= s.Length() {
		L.ArgError(3, fmt.Sprintf("position is not in the song: %d", pos))
	}

	pat := c.Instance(pos)
	if pat == nil {
		var err error
		pat, err = c.CreatePatternAndInstance(pos, "")
		if err != nil {
			L.RaiseError("%v", err)
		}
	}

	for i := 1; i <= list.Len(); i++ {
		t, ok := list.RawGetInt(i).(*lua.LTable)
		if !ok {
			L.RaiseError("note %d: not a table", i)
		}

		idx, ok := t.RawGetInt(1).(lua.LNumber)
		if !ok || int(idx) < 0 || int(idx) >= s.PatternLength(pos) {
			L.RaiseError("note %d: invalid note index", i)
		}

		value, err := ParseNote(lua.LVAsString(t.RawGetInt(2)))
		if err != nil {
			L.RaiseError("note %d: %v", i, err)
		}

		n := song.NewNote(value)
		n.HasAttack = optBool(L, t, "attack", true)
		n.Instrument = optUserData[*instrument.Instrument](L, t, "instrument")
		n.Arpeggio = optUserData[*instrument.Arpeggio](L, t, "arpeggio")

		if n.IsMusical() {
			if n.Instrument != nil && !c.SupportsInstrument(n.Instrument) {
				L.RaiseError("note %d: instrument %s cannot be used on %s", i, n.Instrument, c)
			}

			n.Duration = optInt(L, t, "duration", 0)
			if n.Duration <= 0 {
				n.Duration = openDuration
				b.openDurations[c] = true
			}
			n.Release = optInt(L, t, "release", 0)

			if slide := optString(L, t, "slide", ""); slide != "" {
				if !c.SupportsSlideNotes() {
					L.RaiseError("note %d: %s does not support slide notes", i, c)
				}
				v, err := ParseNote(slide)
				if err != nil {
					L.RaiseError("note %d: %v", i, err)
				}
				n.SlideTarget = v
			}
		}

		for _, f := range effectFields {
			if L.GetField(t, f.field) == lua.LNil {
				continue
			}
			if !c.SupportsEffect(f.fx) {
				L.RaiseError("note %d: %s does not support the %s effect", i, c, f.fx)
			}
			lo, hi := f.fx.Range()
			v := optInt(L, t, f.field, 0)
			if v < lo || v > hi {
				L.RaiseError("note %d: %s must be between %d and %d", i, f.field, lo, hi)
			}
			n.SetEffect(f.fx, v)
		}

		pat.SetNoteAt(int(idx), n)
	}

	c.InvalidateCacheForPattern(pat)

	return 0
}
